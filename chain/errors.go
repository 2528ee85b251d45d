package chain

import "errors"

var (
	// ErrInvalidArgument is returned on an empty key, a key or value that breaks a constant size contract,
	// a zero resize target and other malformed arguments.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfMemory is returned when a bucket array can not be allocated.
	ErrOutOfMemory = errors.New("out of memory")

	// ErrDestroyed is returned by mutating operations on a table after Destroy.
	ErrDestroyed = errors.New("table is destroyed")
)
