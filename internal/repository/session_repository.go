package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"qanda/api/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository struct {
	db DB
}

func NewSessionRepository(db DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session *models.AuthSession) error {
	const query = `
		INSERT INTO user_auth (
			uuid, user_id, access_token, login_at, expires_at, logout_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
		RETURNING id
	`

	row := r.db.QueryRow(ctx, query,
		session.UUID,
		session.UserID,
		session.AccessToken,
		session.LoginAt,
		session.ExpiresAt,
		session.LogoutAt,
	)
	return row.Scan(&session.ID)
}

// ByToken loads a session record with its owning user embedded.
func (r *SessionRepository) ByToken(ctx context.Context, token string) (*models.AuthSession, error) {
	const query = `
		SELECT
			a.id, a.uuid, a.user_id, a.access_token, a.login_at, a.expires_at, a.logout_at,
			u.id, u.uuid, u.first_name, u.last_name, u.user_name, u.email, u.password, u.salt,
			u.country, u.about_me, u.dob, u.role, u.contact_number
		FROM user_auth a
		JOIN users u ON u.id = a.user_id
		WHERE a.access_token = $1
	`

	row := r.db.QueryRow(ctx, query, token)
	var session models.AuthSession
	if err := row.Scan(
		&session.ID,
		&session.UUID,
		&session.UserID,
		&session.AccessToken,
		&session.LoginAt,
		&session.ExpiresAt,
		&session.LogoutAt,
		&session.User.ID,
		&session.User.UUID,
		&session.User.FirstName,
		&session.User.LastName,
		&session.User.Username,
		&session.User.Email,
		&session.User.PasswordHash,
		&session.User.Salt,
		&session.User.Country,
		&session.User.AboutMe,
		&session.User.DOB,
		&session.User.Role,
		&session.User.ContactNumber,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) MarkLoggedOut(ctx context.Context, sessionID int64, at time.Time) error {
	const query = `UPDATE user_auth SET logout_at = $2 WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query, sessionID, at)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}
