package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is matched by every NotFoundError.
var ErrNotFound = errors.New("not found")

// ValidationError is a user-correctable input problem. Nothing was written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// AuthorizationError is a failed role check. TerminateSession is set when an
// authenticated principal asked for something above its role.
type AuthorizationError struct {
	Reason           string
	TerminateSession bool
}

func (e *AuthorizationError) Error() string { return e.Reason }

// PersistenceError wraps a store failure. The transaction has been rolled back.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *PersistenceError) Unwrap() error { return e.Err }

// storeErr classifies an error coming back from gorm. Errors that are already
// part of the taxonomy pass through untouched.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var (
		ve *ValidationError
		ne *NotFoundError
		ae *AuthorizationError
		pe *PersistenceError
	)
	switch {
	case errors.As(err, &ve), errors.As(err, &ne), errors.As(err, &ae), errors.As(err, &pe):
		return err
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return invalid("", "a record with the same value already exists")
	}
	return &PersistenceError{Op: op, Err: err}
}

// findErr turns a gorm lookup failure into NotFoundError when the row is missing.
func findErr(entity string, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return storeErr("load "+entity, err)
}
