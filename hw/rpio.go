package hw

import (
	"fmt"

	"github.com/stianeikeland/go-rpio/v4"
)

// RPIO implements Pins with go-rpio's memory-mapped driver.
type RPIO struct{}

// NewRPIO maps the GPIO memory.
func NewRPIO() (*RPIO, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("open rpio: %w", err)
	}
	return &RPIO{}, nil
}

func (r *RPIO) pin(pin int) (rpio.Pin, error) {
	if pin < 0 || pin > bcmMaxPin {
		return 0, fmt.Errorf("%w: %d", ErrInvalidPin, pin)
	}
	return rpio.Pin(pin), nil
}

// Output implements Pins.Output.
func (r *RPIO) Output(pin int) error {
	p, err := r.pin(pin)
	if err != nil {
		return err
	}
	p.Output()
	return nil
}

// Input implements Pins.Input.
func (r *RPIO) Input(pin int) error {
	p, err := r.pin(pin)
	if err != nil {
		return err
	}
	p.Input()
	p.PullDown()
	return nil
}

// Write implements Pins.Write.
func (r *RPIO) Write(pin int, level Level) error {
	p, err := r.pin(pin)
	if err != nil {
		return err
	}
	if level {
		p.High()
	} else {
		p.Low()
	}
	return nil
}

// Read implements Pins.Read.
func (r *RPIO) Read(pin int) (Level, error) {
	p, err := r.pin(pin)
	if err != nil {
		return Low, err
	}
	return Level(p.Read() == rpio.High), nil
}

// Release implements Pins.Release.
func (r *RPIO) Release() error {
	return rpio.Close()
}
