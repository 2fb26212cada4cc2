package hw

import (
	"fmt"
	"strconv"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Periph implements Pins through the periph.io pin registry. Pins are
// looked up by GPIO number, as "GPIO<n>" or plain "<n>".
type Periph struct{}

// NewPeriph initialises the periph host drivers.
func NewPeriph() (*Periph, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}
	return &Periph{}, nil
}

func (p *Periph) pin(pin int) (gpio.PinIO, error) {
	if err := checkPin(pin); err != nil {
		return nil, err
	}
	io := gpioreg.ByName("GPIO" + strconv.Itoa(pin))
	if io == nil {
		io = gpioreg.ByName(strconv.Itoa(pin))
	}
	if io == nil {
		return nil, fmt.Errorf("%w: %d not registered", ErrInvalidPin, pin)
	}
	return io, nil
}

// Output implements Pins.Output.
func (p *Periph) Output(pin int) error {
	io, err := p.pin(pin)
	if err != nil {
		return err
	}
	return io.Out(gpio.Low)
}

// Input implements Pins.Input.
func (p *Periph) Input(pin int) error {
	io, err := p.pin(pin)
	if err != nil {
		return err
	}
	return io.In(gpio.PullDown, gpio.NoEdge)
}

// Write implements Pins.Write.
func (p *Periph) Write(pin int, level Level) error {
	io, err := p.pin(pin)
	if err != nil {
		return err
	}
	return io.Out(gpio.Level(level))
}

// Read implements Pins.Read.
func (p *Periph) Read(pin int) (Level, error) {
	io, err := p.pin(pin)
	if err != nil {
		return Low, err
	}
	return Level(io.Read()), nil
}

// Release implements Pins.Release.
func (p *Periph) Release() error {
	return nil
}
