package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"qanda/api/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, uuid, first_name, last_name, user_name, email, password, salt, country, about_me, dob, role, contact_number`

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	const query = `
		INSERT INTO users (
			uuid, first_name, last_name, user_name, email, password, salt, country, about_me, dob, role, contact_number
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
		RETURNING id
	`

	row := r.db.QueryRow(ctx, query,
		user.UUID,
		user.FirstName,
		user.LastName,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Salt,
		user.Country,
		user.AboutMe,
		user.DOB,
		user.Role,
		user.ContactNumber,
	)
	return row.Scan(&user.ID)
}

func (r *UserRepository) ByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.one(ctx, `SELECT `+userColumns+` FROM users WHERE user_name = $1`, username)
}

func (r *UserRepository) ByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.one(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) ByUUID(ctx context.Context, uuid string) (*models.User, error) {
	return r.one(ctx, `SELECT `+userColumns+` FROM users WHERE uuid = $1`, uuid)
}

func (r *UserRepository) one(ctx context.Context, query string, arg any) (*models.User, error) {
	row := r.db.QueryRow(ctx, query, arg)
	var user models.User
	if err := row.Scan(
		&user.ID,
		&user.UUID,
		&user.FirstName,
		&user.LastName,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Salt,
		&user.Country,
		&user.AboutMe,
		&user.DOB,
		&user.Role,
		&user.ContactNumber,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) DeleteByUUID(ctx context.Context, uuid string) error {
	const query = `DELETE FROM users WHERE uuid = $1`
	cmd, err := r.db.Exec(ctx, query, uuid)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
