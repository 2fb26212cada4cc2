package motor

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"gateopener/hw"
)

var log = logrus.WithField("component", "motor")

// Driver is the interface for gate motor implementations.
type Driver interface {
	// Forward drives the motor in the opening direction.
	Forward() error

	// Reverse drives the motor in the closing direction.
	Reverse() error

	// Stop removes all drive current. Safe to call in any state.
	Stop() error

	// Release stops the motor before the program exits.
	Release() error
}

// Config holds the H-bridge pin assignment.
type Config struct {
	EnablePin  int `yaml:"enable_pin"`
	ForwardPin int `yaml:"forward_pin"` // direction A
	ReversePin int `yaml:"reverse_pin"` // direction B
}

// New creates an H-bridge driver on p from the configured pins.
func New(p hw.Pins, cfg Config) (Driver, error) {
	m, err := NewHBridge(p, cfg.EnablePin, cfg.ForwardPin, cfg.ReversePin)
	if err != nil {
		return nil, fmt.Errorf("init motor: %w", err)
	}
	return m, nil
}
