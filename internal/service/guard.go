package service

import (
	"context"
	"errors"

	"qanda/api/internal/apperr"
	"qanda/api/internal/models"
	"qanda/api/internal/repository"
)

// resolveSession classifies the session behind a bearer token: unknown token,
// signed-out session, or live session with its user embedded. The caller
// supplies the signed-out message since it varies per operation. Expiry is
// deliberately not checked here; the logout stamp is the only liveness
// signal business operations act on.
func resolveSession(ctx context.Context, store repository.Store, token, signedOutMessage string) (*models.AuthSession, error) {
	session, err := store.Sessions().ByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, apperr.New(apperr.CodeNotSignedIn, "User has not signed in")
		}
		return nil, err
	}

	if session.LogoutAt != nil {
		return nil, apperr.New(apperr.CodeSignedOut, signedOutMessage)
	}

	return session, nil
}
