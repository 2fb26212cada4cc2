package motor

import (
	"errors"
	"fmt"

	"gateopener/hw"
)

// HBridge implements Driver with an enable pin and two direction pins.
// It keeps no state of its own; the pins are the state.
type HBridge struct {
	pins    hw.Pins
	enable  int
	forward int
	reverse int
}

// NewHBridge configures the three pins as outputs and stops the motor.
func NewHBridge(p hw.Pins, enable, forward, reverse int) (*HBridge, error) {
	for _, pin := range []int{enable, forward, reverse} {
		if err := p.Output(pin); err != nil {
			return nil, fmt.Errorf("configure pin %d: %w", pin, err)
		}
	}

	m := &HBridge{
		pins:    p,
		enable:  enable,
		forward: forward,
		reverse: reverse,
	}

	// Start stopped
	if err := m.Stop(); err != nil {
		return nil, err
	}
	return m, nil
}

// Forward implements Driver.Forward.
func (m *HBridge) Forward() error {
	log.Debug("Forward")
	return m.drive(hw.High, hw.Low)
}

// Reverse implements Driver.Reverse.
func (m *HBridge) Reverse() error {
	log.Debug("Reverse")
	return m.drive(hw.Low, hw.High)
}

// Direction pins are set before enable so the bridge never sees enable
// with a stale direction.
func (m *HBridge) drive(fwd, rev hw.Level) error {
	if err := m.pins.Write(m.forward, fwd); err != nil {
		return fmt.Errorf("write forward pin: %w", err)
	}
	if err := m.pins.Write(m.reverse, rev); err != nil {
		return fmt.Errorf("write reverse pin: %w", err)
	}
	if err := m.pins.Write(m.enable, hw.High); err != nil {
		return fmt.Errorf("write enable pin: %w", err)
	}
	return nil
}

// Stop implements Driver.Stop. Enable drops first, and every pin is
// written even if an earlier write fails.
func (m *HBridge) Stop() error {
	log.Debug("Stop")
	var errs []error
	for _, pin := range []int{m.enable, m.forward, m.reverse} {
		if err := m.pins.Write(pin, hw.Low); err != nil {
			errs = append(errs, fmt.Errorf("write pin %d: %w", pin, err))
		}
	}
	return errors.Join(errs...)
}

// Release implements Driver.Release.
func (m *HBridge) Release() error {
	return m.Stop()
}
