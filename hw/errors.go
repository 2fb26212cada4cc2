package hw

import "errors"

var (
	// ErrUnknownBackend is returned by New for an unrecognised backend type.
	ErrUnknownBackend = errors.New("unknown gpio backend")

	// ErrNotSupported is returned when a backend is not built for this platform.
	ErrNotSupported = errors.New("gpio backend not supported on this platform")

	// ErrKeypadLost is returned when reading a keypad pin after the input
	// device has disappeared.
	ErrKeypadLost = errors.New("keypad device lost")

	// ErrInvalidPin is returned for a pin number the backend cannot address.
	ErrInvalidPin = errors.New("invalid pin")
)
