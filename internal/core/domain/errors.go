package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrEntityExists         = errors.New("entity already exists")
	ErrUnknownEntity        = errors.New("unknown entity")
	ErrGraphUnavailable     = errors.New("graph unavailable")
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")
	ErrSearchFailure        = errors.New("search failure")
	ErrGenerationFailure    = errors.New("generation failure")
	ErrTemporary            = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
