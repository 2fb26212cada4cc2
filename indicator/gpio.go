package indicator

import (
	"fmt"
	"time"

	"gateopener/clock"
	"gateopener/hw"
)

// GPIO implements Indicator with a single LED pin.
type GPIO struct {
	pins     hw.Pins
	pin      int
	clock    clock.Clock
	interval time.Duration
}

// NewGPIO configures pin as an output and turns the light off.
func NewGPIO(p hw.Pins, pin int, c clock.Clock, interval time.Duration) (*GPIO, error) {
	if err := p.Output(pin); err != nil {
		return nil, fmt.Errorf("configure warning pin %d: %w", pin, err)
	}

	g := &GPIO{
		pins:     p,
		pin:      pin,
		clock:    c,
		interval: interval,
	}

	// Start off
	if err := g.Off(); err != nil {
		return nil, err
	}
	return g, nil
}

// Toggle implements Indicator.Toggle.
func (g *GPIO) Toggle() error {
	l, err := g.pins.Read(g.pin)
	if err != nil {
		return fmt.Errorf("read warning pin: %w", err)
	}
	return g.pins.Write(g.pin, !l)
}

// Off implements Indicator.Off.
func (g *GPIO) Off() error {
	return g.pins.Write(g.pin, hw.Low)
}

// Blink implements Indicator.Blink.
func (g *GPIO) Blink() error {
	log.WithField("interval", g.interval).Debug("Blink")
	if err := g.Toggle(); err != nil {
		return err
	}
	g.clock.Sleep(g.interval)
	return g.Toggle()
}

// Release implements Indicator.Release.
func (g *GPIO) Release() error {
	return g.Off()
}
