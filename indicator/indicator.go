package indicator

import (
	"time"

	"github.com/sirupsen/logrus"

	"gateopener/clock"
	"gateopener/hw"
)

var log = logrus.WithField("component", "indicator")

// DefaultBlink is how long a blink holds the light on.
const DefaultBlink = 400 * time.Millisecond

// Indicator is the interface for the warning light.
type Indicator interface {
	// Toggle inverts the light based on its current hardware level.
	Toggle() error

	// Off forces the light off.
	Off() error

	// Blink gives one on/off pulse. It blocks the caller for the whole
	// pulse and cannot be cancelled.
	Blink() error

	// Release turns the light off before the program exits.
	Release() error
}

// Config holds configuration for the warning light.
type Config struct {
	Pin         int `yaml:"pin"`          // negative = no light fitted
	BlinkMillis int `yaml:"blink_millis"` // 0 = DefaultBlink
}

// New creates an Indicator from cfg. A negative pin gives a Noop.
func New(p hw.Pins, c clock.Clock, cfg Config) (Indicator, error) {
	if cfg.Pin < 0 {
		log.Info("No warning light configured")
		return &Noop{}, nil
	}
	interval := DefaultBlink
	if cfg.BlinkMillis > 0 {
		interval = time.Duration(cfg.BlinkMillis) * time.Millisecond
	}
	return NewGPIO(p, cfg.Pin, c, interval)
}
