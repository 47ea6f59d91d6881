// Package apperr defines the coded failures business operations surface to
// callers. Every validation failure aborts the operation immediately and
// reaches the transport layer as one of these codes.
package apperr

import "errors"

const (
	CodeUsernameTaken = "SGR-001"
	CodeEmailTaken    = "SGR-002"

	CodeUnknownUsername = "ATH-001"
	CodeBadCredentials  = "ATH-002"

	CodeMalformedInput = "GEN-001"

	CodeNotSignedIn = "ATHR-001"
	CodeSignedOut   = "ATHR-002"
	CodeForbidden   = "ATHR-003"

	CodeUserNotFound     = "USR-001"
	CodeQuestionNotFound = "QUES-001"
)

type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// CodeOf returns the code carried by err, or "" if err is not a coded error.
func CodeOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

func Is(err error, code string) bool {
	return CodeOf(err) == code
}
