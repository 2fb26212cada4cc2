package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"gateopener/eventpipe"
	"gateopener/gate"
	"gateopener/hw"
	"gateopener/indicator"
	"gateopener/motor"
)

// Config is the main configuration structure for the gate opener.
type Config struct {
	// Log level: "debug", "info", "warn", "error"
	LogLevel string `yaml:"log_level"`

	// Delay after each tick
	PollMillis int `yaml:"poll_millis"`

	// GPIO backend
	GPIO hw.Config `yaml:"gpio"`

	// H-bridge pins
	Motor motor.Config `yaml:"motor"`

	// Warning light
	Warning indicator.Config `yaml:"warning"`

	// Button input pins
	Buttons ButtonsConfig `yaml:"buttons"`

	// State machine variant
	Control ControlConfig `yaml:"control"`

	// Button injection for simulated runs
	EventPipe eventpipe.Config `yaml:"event_pipe"`
}

// ButtonsConfig holds the button input pins.
type ButtonsConfig struct {
	UpPin    int `yaml:"up_pin"`
	DownPin  int `yaml:"down_pin"`
	PausePin int `yaml:"pause_pin"`
	EstopPin int `yaml:"estop_pin"`
}

// ControlConfig selects the controller behaviour.
type ControlConfig struct {
	AutoStopMillis int    `yaml:"auto_stop_ms"` // 0 = run until a stop button
	Priority       string `yaml:"priority"`     // "estop" or "pause"
}

// DefaultConfig returns the standard wiring: H-bridge on 2/3/4, warning
// light on 5, buttons on 6-9.
func DefaultConfig() Config {
	return Config{
		LogLevel:   "info",
		PollMillis: 50,
		GPIO:       hw.Config{Type: "bcm"},
		Motor:      motor.Config{EnablePin: 2, ForwardPin: 3, ReversePin: 4},
		Warning:    indicator.Config{Pin: 5, BlinkMillis: 400},
		Buttons:    ButtonsConfig{UpPin: 6, DownPin: 7, PausePin: 8, EstopPin: 9},
		Control:    ControlConfig{Priority: "estop"},
	}
}

// LoadConfig reads path over the defaults and validates the result.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg := DefaultConfig()
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks pin numbers and options.
func (c *Config) Validate() error {
	if c.PollMillis < 0 {
		return fmt.Errorf("poll_millis: must not be negative")
	}
	if c.Control.AutoStopMillis < 0 {
		return fmt.Errorf("control.auto_stop_ms: must not be negative")
	}
	if _, err := gate.ParsePriority(c.Control.Priority); err != nil {
		return fmt.Errorf("control.priority: %w", err)
	}

	pins := []struct {
		name string
		pin  int
	}{
		{"motor.enable_pin", c.Motor.EnablePin},
		{"motor.forward_pin", c.Motor.ForwardPin},
		{"motor.reverse_pin", c.Motor.ReversePin},
		{"buttons.up_pin", c.Buttons.UpPin},
		{"buttons.down_pin", c.Buttons.DownPin},
		{"buttons.pause_pin", c.Buttons.PausePin},
		{"buttons.estop_pin", c.Buttons.EstopPin},
	}
	// A negative warning pin means no light is fitted.
	if c.Warning.Pin >= 0 {
		pins = append(pins, struct {
			name string
			pin  int
		}{"warning.pin", c.Warning.Pin})
	}

	seen := make(map[int]string, len(pins))
	for _, p := range pins {
		if p.pin < 0 {
			return fmt.Errorf("%s: pin %d must not be negative", p.name, p.pin)
		}
		if other, ok := seen[p.pin]; ok {
			return fmt.Errorf("%s: pin %d already used by %s", p.name, p.pin, other)
		}
		seen[p.pin] = p.name
	}
	return nil
}

// PollInterval is the delay between ticks.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollMillis) * time.Millisecond
}

// GateButtons returns the button pins for the controller.
func (c *Config) GateButtons() gate.Buttons {
	return gate.Buttons{
		Up:            c.Buttons.UpPin,
		Down:          c.Buttons.DownPin,
		Pause:         c.Buttons.PausePin,
		EmergencyStop: c.Buttons.EstopPin,
	}
}

// GateOptions returns the controller variant options. Call after Validate.
func (c *Config) GateOptions() gate.Options {
	prio, _ := gate.ParsePriority(c.Control.Priority)
	return gate.Options{
		AutoStop: time.Duration(c.Control.AutoStopMillis) * time.Millisecond,
		Priority: prio,
	}
}

// ButtonNames maps button names to pins for the event pipe.
func (c *Config) ButtonNames() map[string]int {
	return map[string]int{
		"up":    c.Buttons.UpPin,
		"down":  c.Buttons.DownPin,
		"pause": c.Buttons.PausePin,
		"estop": c.Buttons.EstopPin,
	}
}
