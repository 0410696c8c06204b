package encryption

import "errors"

var (
	// ErrKeyMaterial is returned when key material is missing, malformed
	// or of invalid length.
	ErrKeyMaterial = errors.New("invalid key material")

	// ErrUnreadable is returned when a source file cannot be opened for
	// reading or read from.
	ErrUnreadable = errors.New("unreadable file")

	// ErrUnwritable is returned when a file cannot be opened for writing
	// or written back.
	ErrUnwritable = errors.New("unwritable destination")
)
