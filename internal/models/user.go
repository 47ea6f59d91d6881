package models

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleNonAdmin Role = "nonadmin"
)

type User struct {
	ID            int64
	UUID          string
	FirstName     string
	LastName      string
	Username      string
	Email         string
	PasswordHash  string
	Salt          string
	Country       string
	AboutMe       string
	DOB           string
	Role          Role
	ContactNumber string
}

// AuthSession binds an issued access token to a user. Sessions are never
// deleted; signout only stamps LogoutAt and the record stays as history.
type AuthSession struct {
	ID          int64
	UUID        string
	UserID      int64
	AccessToken string
	LoginAt     time.Time
	ExpiresAt   time.Time
	LogoutAt    *time.Time

	User User
}

type Question struct {
	ID        int64
	UUID      string
	UserID    int64
	Content   string
	CreatedAt time.Time

	Author User
}
