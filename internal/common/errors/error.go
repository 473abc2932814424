package errors

import (
	"errors"
)

var (
	ErrEmptyAuth          = errors.New("missing authorization")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrInvalidQuantity    = errors.New("quantity must not be negative")
	ErrVariantNotFound    = errors.New("no variant matches the selected options")
	ErrCartMutationFailed = errors.New("cart mutation failed")
	ErrStaleResponse      = errors.New("response superseded by a newer mutation")
	ErrProductNotFound    = errors.New("product not found")
	ErrMalformedCart      = errors.New("malformed cart payload")
)
