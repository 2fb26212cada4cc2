//go:build !linux

package hw

// Keypad is a stub for non-linux platforms.
type Keypad struct {
	Pins
}

// NewKeypad returns ErrNotSupported on non-linux platforms.
func NewKeypad(p Pins, cfg KeypadConfig) (*Keypad, error) {
	return nil, ErrNotSupported
}

// Unwrap returns the backend behind the keypad.
func (k *Keypad) Unwrap() Pins {
	return k.Pins
}
