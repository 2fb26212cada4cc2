package hw

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "hw")

// Level is the logic level of a digital pin.
type Level bool

const (
	Low  Level = false
	High Level = true
)

func (l Level) String() string {
	if l {
		return "high"
	}
	return "low"
}

// Pins is the digital I/O capability of a board. Pins are identified by
// the board's GPIO number.
type Pins interface {
	// Output configures pin as a digital output.
	Output(pin int) error

	// Input configures pin as a digital input. Backends that can will
	// enable the internal pull-down so an open button reads low.
	Input(pin int) error

	// Write drives an output pin to level.
	Write(pin int, level Level) error

	// Read returns the current level of pin. For an output this is the
	// level last driven.
	Read(pin int) (Level, error)

	// Release returns the hardware to the OS.
	Release() error
}

// Config selects and configures a Pins backend.
type Config struct {
	Type   string       `yaml:"type"` // "bcm", "cdev", "gpiomem", "rpio", "periph", "sim"
	Chip   string       `yaml:"chip"` // character device for "cdev", e.g. "gpiochip0"
	Keypad KeypadConfig `yaml:"keypad"`
}

// New opens the backend named by cfg.Type. If a keypad device is
// configured the backend is wrapped so the mapped pins read from it.
func New(cfg Config) (Pins, error) {
	var (
		p   Pins
		err error
	)
	switch cfg.Type {
	case "", "bcm":
		p, err = NewBCM()
	case "cdev":
		p, err = NewCdev(cfg.Chip)
	case "gpiomem":
		p, err = NewGPIOMem()
	case "rpio":
		p, err = NewRPIO()
	case "periph":
		p, err = NewPeriph()
	case "sim":
		p = NewSim()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Type)
	}
	if err != nil {
		return nil, err
	}
	log.WithField("type", cfg.Type).Debug("GPIO backend opened")

	if cfg.Keypad.Device == "" {
		return p, nil
	}
	kp, err := NewKeypad(p, cfg.Keypad)
	if err != nil {
		p.Release()
		return nil, err
	}
	return kp, nil
}

func checkPin(pin int) error {
	if pin < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPin, pin)
	}
	return nil
}

// KeypadConfig maps button pins to keys on an input device.
type KeypadConfig struct {
	Device string         `yaml:"device"` // e.g. "/dev/input/event0"; empty disables the keypad
	Keys   map[int]string `yaml:"keys"`   // pin -> key name ("up", "keypad8"/"kp8", "escape"/"esc"); a number is a raw key code, so "1" is Escape
}

// AsSim returns the Sim behind p, looking through wrappers such as Keypad.
func AsSim(p Pins) (*Sim, bool) {
	for {
		switch v := p.(type) {
		case *Sim:
			return v, true
		case interface{ Unwrap() Pins }:
			p = v.Unwrap()
		default:
			return nil, false
		}
	}
}
