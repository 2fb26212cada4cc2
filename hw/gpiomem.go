package hw

import (
	"fmt"
	"sync"

	"github.com/warthog618/gpio"
)

// GPIOMem implements Pins through /dev/gpiomem using warthog618/gpio.
type GPIOMem struct {
	mu   sync.Mutex
	pins map[int]*gpio.Pin
}

// NewGPIOMem maps the GPIO memory.
func NewGPIOMem() (*GPIOMem, error) {
	if err := gpio.Open(); err != nil {
		return nil, fmt.Errorf("open gpiomem: %w", err)
	}
	return &GPIOMem{pins: make(map[int]*gpio.Pin)}, nil
}

func (g *GPIOMem) pin(pin int) (*gpio.Pin, error) {
	if pin < 0 || pin > bcmMaxPin {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPin, pin)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	p, ok := g.pins[pin]
	if !ok {
		p = gpio.NewPin(pin)
		g.pins[pin] = p
	}
	return p, nil
}

// Output implements Pins.Output.
func (g *GPIOMem) Output(pin int) error {
	p, err := g.pin(pin)
	if err != nil {
		return err
	}
	p.Output()
	return nil
}

// Input implements Pins.Input.
func (g *GPIOMem) Input(pin int) error {
	p, err := g.pin(pin)
	if err != nil {
		return err
	}
	p.Input()
	p.PullDown()
	return nil
}

// Write implements Pins.Write.
func (g *GPIOMem) Write(pin int, level Level) error {
	p, err := g.pin(pin)
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
func (g *GPIOMem) Read(pin int) (Level, error) {
	p, err := g.pin(pin)
	if err != nil {
		return Low, err
	}
	return Level(p.Read() == gpio.High), nil
}

// Release implements Pins.Release.
func (g *GPIOMem) Release() error {
	return gpio.Close()
}
