package brcode

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTag     = errors.New("tag must be two ASCII digits")
	ErrValueTooLong   = errors.New("value exceeds the field length limit")
	ErrEmptyKey       = errors.New("pix key is required")
	ErrEmptyName      = errors.New("merchant name is required")
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrUnknownKeyType = errors.New("unrecognized pix key format")
	ErrInvalidTxID    = errors.New("txid must be *** or up to 25 alphanumeric characters")
)

// EncodingError is returned for any input that would produce a malformed payload.
type EncodingError struct {
	Tag string
	Err error
}

func (e *EncodingError) Error() string {
	if e.Tag == "" {
		return fmt.Sprintf("brcode: %v", e.Err)
	}
	return fmt.Sprintf("brcode: field %s: %v", e.Tag, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// IsEncodingError reports whether err (or anything it wraps) is an *EncodingError.
func IsEncodingError(err error) bool {
	var encErr *EncodingError
	return errors.As(err, &encErr)
}
