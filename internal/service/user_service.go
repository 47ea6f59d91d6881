package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"qanda/api/internal/apperr"
	"qanda/api/internal/models"
	"qanda/api/internal/repository"
)

type UserService struct {
	store repository.Store
	log   zerolog.Logger
}

func NewUserService(store repository.Store, log zerolog.Logger) *UserService {
	return &UserService{store: store, log: log}
}

// Profile returns another user's profile to any caller with a live session.
func (s *UserService) Profile(ctx context.Context, token, userUUID string) (*models.User, error) {
	var user *models.User

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		if _, err := resolveSession(ctx, tx, token, "User is signed out.Sign in first to get user details"); err != nil {
			return err
		}

		found, err := tx.Users().ByUUID(ctx, userUUID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return apperr.New(apperr.CodeUserNotFound, "User with entered uuid does not exist")
			}
			return err
		}
		user = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user. The admin-role check runs before the target
// existence check.
func (s *UserService) Delete(ctx context.Context, token, targetUUID string) error {
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		session, err := resolveSession(ctx, tx, token, "User is signed out")
		if err != nil {
			return err
		}

		if session.User.Role == models.RoleNonAdmin {
			return apperr.New(apperr.CodeForbidden, "Unauthorized Access, Entered user is not an admin")
		}

		if _, err := tx.Users().ByUUID(ctx, targetUUID); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return apperr.New(apperr.CodeUserNotFound, "User with entered uuid to be deleted does not exist")
			}
			return err
		}

		return tx.Users().DeleteByUUID(ctx, targetUUID)
	})
	if err != nil {
		return err
	}

	s.log.Info().Str("user_uuid", targetUUID).Msg("user deleted")
	return nil
}
