//go:build linux

package hw

import (
	"fmt"
	"sync"

	"github.com/warthog618/go-gpiocdev"
)

// Cdev implements Pins using the Linux GPIO character device. Each pin is
// requested as its own line the first time it is configured.
type Cdev struct {
	chip  string
	mu    sync.Mutex
	lines map[int]*gpiocdev.Line
}

// NewCdev returns a Cdev on chip, "gpiochip0" if empty.
func NewCdev(chip string) (*Cdev, error) {
	if chip == "" {
		chip = "gpiochip0"
	}
	return &Cdev{
		chip:  chip,
		lines: make(map[int]*gpiocdev.Line),
	}, nil
}

func (c *Cdev) configure(pin int, opts ...gpiocdev.LineReqOption) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if l, ok := c.lines[pin]; ok {
		l.Close()
		delete(c.lines, pin)
	}
	l, err := gpiocdev.RequestLine(c.chip, pin, opts...)
	if err != nil {
		return fmt.Errorf("request line %s:%d: %w", c.chip, pin, err)
	}
	c.lines[pin] = l
	return nil
}

func (c *Cdev) line(pin int) (*gpiocdev.Line, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.lines[pin]
	if !ok {
		return nil, fmt.Errorf("%w: %d not requested", ErrInvalidPin, pin)
	}
	return l, nil
}

// Output implements Pins.Output.
func (c *Cdev) Output(pin int) error {
	return c.configure(pin, gpiocdev.AsOutput(0))
}

// Input implements Pins.Input.
func (c *Cdev) Input(pin int) error {
	return c.configure(pin, gpiocdev.AsInput, gpiocdev.WithPullDown)
}

// Write implements Pins.Write.
func (c *Cdev) Write(pin int, level Level) error {
	l, err := c.line(pin)
	if err != nil {
		return err
	}
	v := 0
	if level {
		v = 1
	}
	return l.SetValue(v)
}

// Read implements Pins.Read.
func (c *Cdev) Read(pin int) (Level, error) {
	l, err := c.line(pin)
	if err != nil {
		return Low, err
	}
	v, err := l.Value()
	if err != nil {
		return Low, fmt.Errorf("read line %s:%d: %w", c.chip, pin, err)
	}
	return Level(v != 0), nil
}

// Release implements Pins.Release.
func (c *Cdev) Release() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var lastErr error
	for pin, l := range c.lines {
		if err := l.Close(); err != nil {
			lastErr = err
		}
		delete(c.lines, pin)
	}
	return lastErr
}
