package service

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound   = errors.New("cafe not found")
	ErrConflict   = errors.New("cafe with that name already exists")
	ErrEmptyStore = errors.New("no cafes in the database")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + " " + e.Message
}

func required(field string) *ValidationError {
	return &ValidationError{Field: field, Message: "is required"}
}

// isDuplicate relies on the store being opened with TranslateError.
func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
