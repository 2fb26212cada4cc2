//go:build !linux

package hw

// Cdev is a stub for non-linux platforms.
type Cdev struct{}

// NewCdev returns ErrNotSupported on non-linux platforms.
func NewCdev(chip string) (*Cdev, error) {
	return nil, ErrNotSupported
}

func (c *Cdev) Output(pin int) error             { return ErrNotSupported }
func (c *Cdev) Input(pin int) error              { return ErrNotSupported }
func (c *Cdev) Write(pin int, level Level) error { return ErrNotSupported }
func (c *Cdev) Read(pin int) (Level, error)      { return Low, ErrNotSupported }
func (c *Cdev) Release() error                   { return nil }
