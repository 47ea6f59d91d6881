// Package memstore is an in-memory repository.Store used by service and
// handler tests. InTx runs the callback directly; single-goroutine tests do
// not need transactional isolation.
package memstore

import (
	"context"
	"sync"
	"time"

	"qanda/api/internal/models"
	"qanda/api/internal/repository"
)

type Store struct {
	mu        sync.Mutex
	nextID    int64
	users     []*models.User
	sessions  []*models.AuthSession
	questions []*models.Question
}

func New() *Store {
	return &Store{}
}

func (s *Store) Users() repository.UserStore         { return userStore{s} }
func (s *Store) Sessions() repository.SessionStore   { return sessionStore{s} }
func (s *Store) Questions() repository.QuestionStore { return questionStore{s} }

func (s *Store) InTx(_ context.Context, fn func(repository.Store) error) error {
	return fn(s)
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

type userStore struct{ s *Store }

func (u userStore) Create(_ context.Context, user *models.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	user.ID = u.s.id()
	clone := *user
	u.s.users = append(u.s.users, &clone)
	return nil
}

func (u userStore) ByUsername(_ context.Context, username string) (*models.User, error) {
	return u.find(func(user *models.User) bool { return user.Username == username })
}

func (u userStore) ByEmail(_ context.Context, email string) (*models.User, error) {
	return u.find(func(user *models.User) bool { return user.Email == email })
}

func (u userStore) ByUUID(_ context.Context, uuid string) (*models.User, error) {
	return u.find(func(user *models.User) bool { return user.UUID == uuid })
}

func (u userStore) find(match func(*models.User) bool) (*models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	for _, user := range u.s.users {
		if match(user) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (u userStore) DeleteByUUID(_ context.Context, uuid string) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	for i, user := range u.s.users {
		if user.UUID == uuid {
			id := user.ID
			u.s.users = append(u.s.users[:i], u.s.users[i+1:]...)
			u.s.cascadeUser(id)
			return nil
		}
	}
	return repository.ErrUserNotFound
}

// cascadeUser mirrors the ON DELETE CASCADE constraints of the real schema.
func (s *Store) cascadeUser(userID int64) {
	sessions := s.sessions[:0]
	for _, session := range s.sessions {
		if session.UserID != userID {
			sessions = append(sessions, session)
		}
	}
	s.sessions = sessions

	questions := s.questions[:0]
	for _, question := range s.questions {
		if question.UserID != userID {
			questions = append(questions, question)
		}
	}
	s.questions = questions
}

type sessionStore struct{ s *Store }

func (st sessionStore) Create(_ context.Context, session *models.AuthSession) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	session.ID = st.s.id()
	clone := *session
	clone.User = models.User{}
	st.s.sessions = append(st.s.sessions, &clone)
	return nil
}

func (st sessionStore) ByToken(_ context.Context, token string) (*models.AuthSession, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	for _, session := range st.s.sessions {
		if session.AccessToken == token {
			clone := *session
			for _, user := range st.s.users {
				if user.ID == session.UserID {
					clone.User = *user
					break
				}
			}
			return &clone, nil
		}
	}
	return nil, repository.ErrSessionNotFound
}

func (st sessionStore) MarkLoggedOut(_ context.Context, sessionID int64, at time.Time) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	for _, session := range st.s.sessions {
		if session.ID == sessionID {
			stamp := at
			session.LogoutAt = &stamp
			return nil
		}
	}
	return repository.ErrSessionNotFound
}

type questionStore struct{ s *Store }

func (q questionStore) Create(_ context.Context, question *models.Question) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()

	question.ID = q.s.id()
	clone := *question
	clone.Author = models.User{}
	q.s.questions = append(q.s.questions, &clone)
	return nil
}

func (q questionStore) All(_ context.Context) ([]models.Question, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()

	out := make([]models.Question, 0, len(q.s.questions))
	for _, question := range q.s.questions {
		out = append(out, q.withAuthor(question))
	}
	return out, nil
}

func (q questionStore) ByUUID(_ context.Context, uuid string) (*models.Question, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()

	for _, question := range q.s.questions {
		if question.UUID == uuid {
			clone := q.withAuthor(question)
			return &clone, nil
		}
	}
	return nil, repository.ErrQuestionNotFound
}

func (q questionStore) UpdateContent(_ context.Context, id int64, content string) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()

	for _, question := range q.s.questions {
		if question.ID == id {
			question.Content = content
			return nil
		}
	}
	return repository.ErrQuestionNotFound
}

func (q questionStore) DeleteByUUID(_ context.Context, uuid string) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()

	for i, question := range q.s.questions {
		if question.UUID == uuid {
			q.s.questions = append(q.s.questions[:i], q.s.questions[i+1:]...)
			return nil
		}
	}
	return repository.ErrQuestionNotFound
}

func (q questionStore) ByAuthorUUID(_ context.Context, userUUID string) ([]models.Question, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()

	var author *models.User
	for _, user := range q.s.users {
		if user.UUID == userUUID {
			author = user
			break
		}
	}

	var out []models.Question
	if author == nil {
		return out, nil
	}
	for _, question := range q.s.questions {
		if question.UserID == author.ID {
			out = append(out, q.withAuthor(question))
		}
	}
	return out, nil
}

func (q questionStore) withAuthor(question *models.Question) models.Question {
	clone := *question
	for _, user := range q.s.users {
		if user.ID == question.UserID {
			clone.Author = *user
			break
		}
	}
	return clone
}
