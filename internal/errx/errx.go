// Package errx carries a small error taxonomy shared by the stores, the
// consultation funnel and the recommendation engine.
package errx

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Kind classifies an error so callers can react without string matching.
type Kind uint8

const (
	KindInternal Kind = iota
	KindConfig
	KindNotFound
	KindStorage
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindNotFound:
		return "not_found"
	case KindStorage:
		return "storage"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

const (
	// StorageErrorMessage describes persistence failures.
	StorageErrorMessage = "storage operation failed"
	// NotFoundMessage describes missing records.
	NotFoundMessage = "record not found"
)

// Error wraps an underlying error with a kind and a safe message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error of the given kind.
func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Configf builds a KindConfig error with a formatted message.
func Configf(format string, args ...any) *Error {
	return &Error{Kind: KindConfig, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first *Error in the chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// WrapRedis maps Redis errors onto kinds.
func WrapRedis(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, redis.Nil) {
		return New(KindNotFound, NotFoundMessage, err)
	}
	return New(KindStorage, StorageErrorMessage, err)
}

// WrapGorm maps gorm errors onto kinds.
func WrapGorm(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return New(KindNotFound, NotFoundMessage, err)
	}
	return New(KindStorage, StorageErrorMessage, err)
}

// WrapSQL maps database/sql errors onto kinds.
func WrapSQL(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return New(KindNotFound, NotFoundMessage, err)
	}
	return New(KindStorage, StorageErrorMessage, err)
}
