package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrRemoteUnavailable  = errors.New("remote unavailable")
	ErrRemoteUpdateFailed = errors.New("remote update failed")
	ErrRemoteDeleteFailed = errors.New("remote delete failed")
	ErrWatchTimeout       = errors.New("processing watch timed out")
)

var (
	errPersonWithGST     = errors.New("person entity carries a gst number")
	errBusinessWithPAN   = errors.New("business entity carries a pan")
	errUnknownEntityKind = errors.New("unknown entity kind")
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
