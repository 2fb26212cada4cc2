package hw

import (
	"fmt"

	"github.com/hjkoskel/govattu"
)

// bcmMaxPin is the highest GPIO on the BCM283x register bank.
const bcmMaxPin = 53

// BCM implements Pins by mapping the BCM283x GPIO registers directly.
// The chip has no per-pin pull configuration here, so buttons need
// external pull-down resistors.
type BCM struct {
	hw govattu.Vattu
}

// NewBCM opens the BCM GPIO registers.
func NewBCM() (*BCM, error) {
	hw, err := govattu.Open()
	if err != nil {
		return nil, fmt.Errorf("open gpio: %w", err)
	}
	return &BCM{hw: hw}, nil
}

func (b *BCM) pin(pin int) (uint8, error) {
	if pin < 0 || pin > bcmMaxPin {
		return 0, fmt.Errorf("%w: %d", ErrInvalidPin, pin)
	}
	return uint8(pin), nil
}

// Output implements Pins.Output.
func (b *BCM) Output(pin int) error {
	p, err := b.pin(pin)
	if err != nil {
		return err
	}
	b.hw.PinMode(p, govattu.ALToutput)
	return nil
}

// Input implements Pins.Input.
func (b *BCM) Input(pin int) error {
	p, err := b.pin(pin)
	if err != nil {
		return err
	}
	b.hw.PinMode(p, govattu.ALTinput)
	return nil
}

// Write implements Pins.Write.
func (b *BCM) Write(pin int, level Level) error {
	p, err := b.pin(pin)
	if err != nil {
		return err
	}
	if level {
		b.hw.PinSet(p)
	} else {
		b.hw.PinClear(p)
	}
	return nil
}

// Read implements Pins.Read.
func (b *BCM) Read(pin int) (Level, error) {
	p, err := b.pin(pin)
	if err != nil {
		return Low, err
	}
	return Level(b.hw.ReadAllPinLevels()&(1<<p) != 0), nil
}

// Release implements Pins.Release.
func (b *BCM) Release() error {
	return b.hw.Close()
}
