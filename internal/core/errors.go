package core

import "errors"

var (
	ErrNotAvailable = errors.New("not available")
	ErrNotFound     = errors.New("not found")
	ErrInvalidArg   = errors.New("invalid arguments")

	ErrPageLimit            = errors.New("page limit exceeded")
	ErrAccumulationOverflow = errors.New("fee total overflows 256 bits")
)
