package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMissingInput = errors.New("missing input")
	ErrPrecondition = errors.New("precondition failed")
	ErrUpload       = errors.New("upload failed")
	ErrQuery        = errors.New("query failed")
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

// KindOf returns the sentinel carried by err, or nil for unclassified errors.
func KindOf(err error) error {
	for _, kind := range []error{ErrMissingInput, ErrPrecondition, ErrUpload, ErrQuery} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
