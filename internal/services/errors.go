package services

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound covers both missing records and records the viewer may not see.
	ErrNotFound           = errors.New("not found")
	ErrUsernameTaken      = errors.New("a user with that username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidImage       = errors.New("upload a valid image")
)

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// usernameConflict reports a unique index violation on users as ErrUsernameTaken.
func usernameConflict(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrUsernameTaken
	}
	return err
}
