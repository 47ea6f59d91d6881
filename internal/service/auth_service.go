package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"qanda/api/internal/apperr"
	"qanda/api/internal/models"
	"qanda/api/internal/repository"
	"qanda/api/internal/security"
)

// tokenTTL is how long after signin an issued session is marked valid. Only
// the token issuer and the persisted expires_at column carry this; session
// resolution never re-checks it (see resolveSession).
const defaultTokenTTL = 8 * time.Hour

type AuthService struct {
	store  repository.Store
	tokens *security.TokenIssuer
	ttl    time.Duration
	log    zerolog.Logger
	now    func() time.Time
}

func NewAuthService(store repository.Store, tokens *security.TokenIssuer, ttl time.Duration, log zerolog.Logger) *AuthService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &AuthService{
		store:  store,
		tokens: tokens,
		ttl:    ttl,
		log:    log,
		now:    time.Now,
	}
}

type SignupInput struct {
	FirstName     string
	LastName      string
	Username      string
	Email         string
	Password      string
	Country       string
	AboutMe       string
	DOB           string
	ContactNumber string
}

// Signup registers a new user. Username then email uniqueness is checked in
// that order; the first conflict aborts the operation.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*models.User, error) {
	var created *models.User

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Users().ByUsername(ctx, input.Username); err == nil {
			return apperr.New(apperr.CodeUsernameTaken, "Try any other Username, this Username has already been taken")
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return err
		}

		if _, err := tx.Users().ByEmail(ctx, input.Email); err == nil {
			return apperr.New(apperr.CodeEmailTaken, "This user has already been registered, try with any other emailId")
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return err
		}

		salt, digest, err := security.HashPassword(input.Password)
		if err != nil {
			return err
		}

		user := &models.User{
			UUID:          uuid.NewString(),
			FirstName:     input.FirstName,
			LastName:      input.LastName,
			Username:      input.Username,
			Email:         input.Email,
			PasswordHash:  digest,
			Salt:          salt,
			Country:       input.Country,
			AboutMe:       input.AboutMe,
			DOB:           input.DOB,
			Role:          models.RoleNonAdmin,
			ContactNumber: input.ContactNumber,
		}

		if err := tx.Users().Create(ctx, user); err != nil {
			return err
		}
		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_uuid", created.UUID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Signin authenticates a "Basic base64(username:password)" credential and
// persists a fresh session. Malformed input is a generic failure distinct
// from the authentication failures.
func (s *AuthService) Signin(ctx context.Context, authorization string) (*models.AuthSession, error) {
	username, password, err := decodeBasicCredentials(authorization)
	if err != nil {
		return nil, apperr.New(apperr.CodeMalformedInput, "Malformed Basic authentication credentials")
	}

	var session *models.AuthSession

	err = s.store.InTx(ctx, func(tx repository.Store) error {
		user, err := tx.Users().ByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return apperr.New(apperr.CodeUnknownUsername, "This username does not exist")
			}
			return err
		}

		if !security.VerifyPassword(password, user.Salt, user.PasswordHash) {
			return apperr.New(apperr.CodeBadCredentials, "Password failed")
		}

		now := s.now()
		expiresAt := now.Add(s.ttl)
		token, err := s.tokens.Issue(user.UUID, now, expiresAt)
		if err != nil {
			return err
		}

		session = &models.AuthSession{
			UUID:        user.UUID,
			UserID:      user.ID,
			AccessToken: token,
			LoginAt:     now,
			ExpiresAt:   expiresAt,
			User:        *user,
		}
		return tx.Sessions().Create(ctx, session)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_uuid", session.User.UUID).Msg("user signed in")
	return session, nil
}

// Signout stamps the session's logout time and returns the owning user. Only
// existence is checked: signing out an already signed-out session succeeds
// again and re-stamps the logout time.
func (s *AuthService) Signout(ctx context.Context, token string) (*models.User, error) {
	var user *models.User

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		session, err := tx.Sessions().ByToken(ctx, token)
		if err != nil {
			if errors.Is(err, repository.ErrSessionNotFound) {
				return apperr.New(apperr.CodeNotSignedIn, "User is not Signed in")
			}
			return err
		}

		if err := tx.Sessions().MarkLoggedOut(ctx, session.ID, s.now()); err != nil {
			return err
		}
		user = &session.User
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_uuid", user.UUID).Msg("user signed out")
	return user, nil
}

func decodeBasicCredentials(authorization string) (username, password string, err error) {
	_, encoded, found := strings.Cut(authorization, "Basic ")
	if !found {
		return "", "", errors.New("missing Basic prefix")
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", err
	}

	username, password, found = strings.Cut(string(decoded), ":")
	if !found {
		return "", "", errors.New("missing credential delimiter")
	}
	return username, password, nil
}
