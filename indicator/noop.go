package indicator

// Noop implements Indicator but does nothing.
// Used when no warning light is fitted.
type Noop struct{}

// Toggle implements Indicator.Toggle.
func (n *Noop) Toggle() error { return nil }

// Off implements Indicator.Off.
func (n *Noop) Off() error { return nil }

// Blink implements Indicator.Blink.
func (n *Noop) Blink() error { return nil }

// Release implements Indicator.Release.
func (n *Noop) Release() error { return nil }
