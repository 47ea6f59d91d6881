package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"qanda/api/internal/models"
)

// DB is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so the same
// repositories run inside or outside a transaction.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	ByUsername(ctx context.Context, username string) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	ByUUID(ctx context.Context, uuid string) (*models.User, error)
	DeleteByUUID(ctx context.Context, uuid string) error
}

type SessionStore interface {
	Create(ctx context.Context, session *models.AuthSession) error
	ByToken(ctx context.Context, token string) (*models.AuthSession, error)
	MarkLoggedOut(ctx context.Context, sessionID int64, at time.Time) error
}

type QuestionStore interface {
	Create(ctx context.Context, question *models.Question) error
	All(ctx context.Context) ([]models.Question, error)
	ByUUID(ctx context.Context, uuid string) (*models.Question, error)
	UpdateContent(ctx context.Context, id int64, content string) error
	DeleteByUUID(ctx context.Context, uuid string) error
	ByAuthorUUID(ctx context.Context, userUUID string) ([]models.Question, error)
}

// Store groups the repositories behind one handle. InTx yields a Store whose
// repositories share a single transaction; business operations run their
// reads, validations and final write through it as one unit.
type Store interface {
	Users() UserStore
	Sessions() SessionStore
	Questions() QuestionStore
	InTx(ctx context.Context, fn func(Store) error) error
}

type PGStore struct {
	pool      *pgxpool.Pool
	users     *UserRepository
	sessions  *SessionRepository
	questions *QuestionRepository
}

func NewStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{
		pool:      pool,
		users:     NewUserRepository(pool),
		sessions:  NewSessionRepository(pool),
		questions: NewQuestionRepository(pool),
	}
}

func (s *PGStore) Users() UserStore         { return s.users }
func (s *PGStore) Sessions() SessionStore   { return s.sessions }
func (s *PGStore) Questions() QuestionStore { return s.questions }

func (s *PGStore) InTx(ctx context.Context, fn func(Store) error) error {
	if s.pool == nil {
		// Already transactional; nested calls join the outer transaction.
		return fn(s)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	txStore := &PGStore{
		users:     NewUserRepository(tx),
		sessions:  NewSessionRepository(tx),
		questions: NewQuestionRepository(tx),
	}

	if err := fn(txStore); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
