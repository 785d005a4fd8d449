package tokenizer

import "errors"

// Common errors.
var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrInvalidEncoding      = errors.New("invalid encoding")
	ErrIO                   = errors.New("i/o failure")
	ErrMalformedMerges      = errors.New("malformed merges")
)
