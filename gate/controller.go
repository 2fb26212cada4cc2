// Package gate implements the gate motion state machine. The controller
// is driven by repeated calls to Tick from a single goroutine.
package gate

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"gateopener/clock"
	"gateopener/hw"
	"gateopener/indicator"
	"gateopener/motor"
)

var log = logrus.WithField("component", "gate")

// Buttons holds the input pin of each button. A button is pressed when
// its pin reads high.
type Buttons struct {
	Up            int
	Down          int
	Pause         int
	EmergencyStop int
}

// Options selects between the behaviour variants of the controller.
type Options struct {
	// AutoStop stops a moving gate once it has run this long with no
	// stop button pressed. Zero disables it.
	AutoStop time.Duration

	// Priority orders the emergency-stop and pause checks.
	Priority Priority
}

// Controller owns the gate state and the motor and warning light it drives.
type Controller struct {
	motor   motor.Driver
	light   indicator.Indicator
	pins    hw.Pins
	buttons Buttons
	clock   clock.Clock
	opts    Options

	state     State
	startedAt time.Time
	errs      []error
}

// New configures the button pins as inputs and returns a stopped controller.
func New(m motor.Driver, light indicator.Indicator, p hw.Pins, b Buttons, c clock.Clock, opts Options) (*Controller, error) {
	for _, pin := range []int{b.Up, b.Down, b.Pause, b.EmergencyStop} {
		if err := p.Input(pin); err != nil {
			return nil, fmt.Errorf("configure button pin %d: %w", pin, err)
		}
	}
	return &Controller{
		motor:   m,
		light:   light,
		pins:    p,
		buttons: b,
		clock:   c,
		opts:    opts,
		state:   Stopped,
	}, nil
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Init puts the hardware in its rest state: motor stopped, light off,
// state Stopped and the run timer reset. Call once before the first Tick.
func (c *Controller) Init() error {
	c.errs = nil
	c.note(c.motor.Stop())
	c.note(c.light.Off())
	c.state = Stopped
	c.startedAt = c.clock.Now()
	log.WithFields(logrus.Fields{
		"auto_stop": c.opts.AutoStop,
		"priority":  c.opts.Priority,
	}).Info("Gate controller ready")
	return errors.Join(c.errs...)
}

// Tick reads the buttons once and acts on them, then forces the warning
// light off. Hardware errors do not stop the tick: a button that cannot be
// read counts as released, and every error seen is returned joined.
func (c *Controller) Tick() error {
	c.errs = nil

	switch c.state {
	case Stopped:
		if c.pressed(c.buttons.Up) {
			c.note(c.motor.Forward())
			c.startMoving(MovingForward)
		} else if c.pressed(c.buttons.Down) {
			c.note(c.motor.Reverse())
			c.startMoving(MovingReverse)
		}
	case MovingForward, MovingReverse:
		c.checkStop()
	}

	c.note(c.light.Off())
	return errors.Join(c.errs...)
}

func (c *Controller) checkStop() {
	first, second := c.buttons.EmergencyStop, c.buttons.Pause
	if c.opts.Priority == PauseFirst {
		first, second = second, first
	}

	for _, pin := range []int{first, second} {
		if !c.pressed(pin) {
			continue
		}
		c.note(c.motor.Stop())
		reason := "emergency stop"
		if pin == c.buttons.Pause {
			reason = "pause"
			c.note(c.light.Blink())
		}
		c.enter(Stopped, reason)
		return
	}

	if c.opts.AutoStop > 0 && c.clock.Now().Sub(c.startedAt) >= c.opts.AutoStop {
		c.note(c.motor.Stop())
		c.enter(Stopped, "auto stop")
	}
}

func (c *Controller) startMoving(s State) {
	c.startedAt = c.clock.Now()
	c.enter(s, "button")
}

func (c *Controller) enter(s State, reason string) {
	log.WithFields(logrus.Fields{
		"from":   c.state,
		"to":     s,
		"reason": reason,
	}).Info("Gate state change")
	c.state = s
}

func (c *Controller) pressed(pin int) bool {
	l, err := c.pins.Read(pin)
	if err != nil {
		c.note(fmt.Errorf("read button pin %d: %w", pin, err))
		return false
	}
	return l == hw.High
}

func (c *Controller) note(err error) {
	if err != nil {
		c.errs = append(c.errs, err)
	}
}
