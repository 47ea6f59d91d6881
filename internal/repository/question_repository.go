package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"qanda/api/internal/models"
)

var ErrQuestionNotFound = errors.New("question not found")

type QuestionRepository struct {
	db DB
}

func NewQuestionRepository(db DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

func (r *QuestionRepository) Create(ctx context.Context, question *models.Question) error {
	const query = `
		INSERT INTO question (uuid, user_id, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	row := r.db.QueryRow(ctx, query,
		question.UUID,
		question.UserID,
		question.Content,
		question.CreatedAt,
	)
	return row.Scan(&question.ID)
}

const questionSelect = `
	SELECT
		q.id, q.uuid, q.user_id, q.content, q.created_at,
		u.id, u.uuid, u.user_name, u.role
	FROM question q
	JOIN users u ON u.id = q.user_id
`

func (r *QuestionRepository) All(ctx context.Context) ([]models.Question, error) {
	rows, err := r.db.Query(ctx, questionSelect+` ORDER BY q.id`)
	if err != nil {
		return nil, err
	}
	return scanQuestions(rows)
}

func (r *QuestionRepository) ByAuthorUUID(ctx context.Context, userUUID string) ([]models.Question, error) {
	rows, err := r.db.Query(ctx, questionSelect+` WHERE u.uuid = $1 ORDER BY q.id`, userUUID)
	if err != nil {
		return nil, err
	}
	return scanQuestions(rows)
}

func (r *QuestionRepository) ByUUID(ctx context.Context, uuid string) (*models.Question, error) {
	row := r.db.QueryRow(ctx, questionSelect+` WHERE q.uuid = $1`, uuid)
	var question models.Question
	if err := scanQuestion(row, &question); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) UpdateContent(ctx context.Context, id int64, content string) error {
	const query = `UPDATE question SET content = $2 WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query, id, content)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

func (r *QuestionRepository) DeleteByUUID(ctx context.Context, uuid string) error {
	const query = `DELETE FROM question WHERE uuid = $1`
	cmd, err := r.db.Exec(ctx, query, uuid)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

func scanQuestion(row pgx.Row, question *models.Question) error {
	return row.Scan(
		&question.ID,
		&question.UUID,
		&question.UserID,
		&question.Content,
		&question.CreatedAt,
		&question.Author.ID,
		&question.Author.UUID,
		&question.Author.Username,
		&question.Author.Role,
	)
}

func scanQuestions(rows pgx.Rows) ([]models.Question, error) {
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var question models.Question
		if err := scanQuestion(rows, &question); err != nil {
			return nil, err
		}
		questions = append(questions, question)
	}
	return questions, rows.Err()
}
