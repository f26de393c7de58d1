package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrMissingAPIKey = errors.New("API key is required: set --api-key or GEMINI_API_KEY")
)

// NotFoundError names the stored entity that was looked up. It matches
// ErrNotFound under errors.Is.
type NotFoundError struct {
	Entity string
	ID     uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func NewNotFoundError(entity string, id uuid.UUID) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
