package core

import "errors"

var (
	// ErrInvalidPrice is returned by Admit when a limit intent carries a
	// non-positive price.
	ErrInvalidPrice = errors.New("order price must be positive")
	// ErrInvalidSize is returned by Admit when an intent carries a
	// non-positive size.
	ErrInvalidSize = errors.New("order size must be positive")
)
