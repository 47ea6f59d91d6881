package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"qanda/api/internal/apperr"
	"qanda/api/internal/models"
	"qanda/api/internal/repository"
)

type QuestionService struct {
	store repository.Store
	log   zerolog.Logger
	now   func() time.Time
}

func NewQuestionService(store repository.Store, log zerolog.Logger) *QuestionService {
	return &QuestionService{
		store: store,
		log:   log,
		now:   time.Now,
	}
}

func (s *QuestionService) Create(ctx context.Context, token, content string) (*models.Question, error) {
	var created *models.Question

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		session, err := resolveSession(ctx, tx, token, "User is signed out.Sign in first to post a question")
		if err != nil {
			return err
		}

		question := &models.Question{
			UUID:      uuid.NewString(),
			UserID:    session.User.ID,
			Content:   content,
			CreatedAt: s.now(),
			Author:    session.User,
		}
		if err := tx.Questions().Create(ctx, question); err != nil {
			return err
		}
		created = question
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("question_uuid", created.UUID).Str("user_uuid", created.Author.UUID).Msg("question created")
	return created, nil
}

func (s *QuestionService) All(ctx context.Context, token string) ([]models.Question, error) {
	var questions []models.Question

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		if _, err := resolveSession(ctx, tx, token, "User is signed out.Sign in first to get all questions"); err != nil {
			return err
		}

		var err error
		questions, err = tx.Questions().All(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// Edit replaces a question's content. Existence is checked before ownership,
// and ownership compares surrogate primary keys.
func (s *QuestionService) Edit(ctx context.Context, token, questionUUID, content string) (*models.Question, error) {
	var edited *models.Question

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		session, err := resolveSession(ctx, tx, token, "User is signed out.Sign in first to edit the question")
		if err != nil {
			return err
		}

		existing, err := tx.Questions().ByUUID(ctx, questionUUID)
		if err != nil {
			if errors.Is(err, repository.ErrQuestionNotFound) {
				return apperr.New(apperr.CodeQuestionNotFound, "Entered question uuid does not exist")
			}
			return err
		}

		if session.User.ID != existing.Author.ID {
			return apperr.New(apperr.CodeForbidden, "Only the question owner can edit the question")
		}

		if err := tx.Questions().UpdateContent(ctx, existing.ID, content); err != nil {
			return err
		}
		existing.Content = content
		edited = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("question_uuid", edited.UUID).Msg("question edited")
	return edited, nil
}

// Delete removes a question. A non-owner is denied only when their role is
// exactly nonadmin; any other role value passes regardless of ownership.
// Ownership here compares opaque ids, unlike Edit.
func (s *QuestionService) Delete(ctx context.Context, token, questionUUID string) error {
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		session, err := resolveSession(ctx, tx, token, "User is signed out.Sign in first to delete a question")
		if err != nil {
			return err
		}

		existing, err := tx.Questions().ByUUID(ctx, questionUUID)
		if err != nil {
			if errors.Is(err, repository.ErrQuestionNotFound) {
				return apperr.New(apperr.CodeQuestionNotFound, "Entered question uuid does not exist")
			}
			return err
		}

		if session.User.UUID != existing.Author.UUID {
			if session.User.Role == models.RoleNonAdmin {
				return apperr.New(apperr.CodeForbidden, "Only the question owner or admin can delete the question")
			}
		}

		return tx.Questions().DeleteByUUID(ctx, questionUUID)
	})
	if err != nil {
		return err
	}

	s.log.Info().Str("question_uuid", questionUUID).Msg("question deleted")
	return nil
}

func (s *QuestionService) AllByUser(ctx context.Context, token, userUUID string) ([]models.Question, error) {
	var questions []models.Question

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		if _, err := resolveSession(ctx, tx, token, "User is signed out.Sign in first to get all questions posted by a specific user"); err != nil {
			return err
		}

		if _, err := tx.Users().ByUUID(ctx, userUUID); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return apperr.New(apperr.CodeUserNotFound, "User with entered uuid whose question details are to be seen does not exist")
			}
			return err
		}

		var err error
		questions, err = tx.Questions().ByAuthorUUID(ctx, userUUID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return questions, nil
}
