package hw

import "sync"

// Write records one write made to a Sim.
type Write struct {
	Pin   int
	Level Level
}

// Sim is an in-memory pin bank. It is used by tests and for desk runs
// without hardware; inputs are driven with Set.
type Sim struct {
	mu      sync.Mutex
	levels  map[int]Level
	outputs map[int]bool
	writes  []Write
}

// NewSim returns a Sim with every pin low.
func NewSim() *Sim {
	return &Sim{
		levels:  make(map[int]Level),
		outputs: make(map[int]bool),
	}
}

// Output implements Pins.Output.
func (s *Sim) Output(pin int) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outputs[pin] = true
	return nil
}

// Input implements Pins.Input.
func (s *Sim) Input(pin int) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.outputs, pin)
	return nil
}

// Write implements Pins.Write.
func (s *Sim) Write(pin int, level Level) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.levels[pin] = level
	s.writes = append(s.writes, Write{Pin: pin, Level: level})
	return nil
}

// Read implements Pins.Read. Pins never written read low.
func (s *Sim) Read(pin int) (Level, error) {
	if err := checkPin(pin); err != nil {
		return Low, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.levels[pin], nil
}

// Release implements Pins.Release.
func (s *Sim) Release() error {
	return nil
}

// Set drives an input pin from outside, as a pressed or released button would.
func (s *Sim) Set(pin int, level Level) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.levels[pin] = level
}

// Level returns the current level of pin.
func (s *Sim) Level(pin int) Level {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.levels[pin]
}

// IsOutput reports whether pin has been configured as an output.
func (s *Sim) IsOutput(pin int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outputs[pin]
}

// Writes returns the writes made so far, oldest first.
func (s *Sim) Writes() []Write {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Write(nil), s.writes...)
}

// WritesTo returns the levels written to pin, oldest first.
func (s *Sim) WritesTo(pin int) []Level {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Level
	for _, w := range s.writes {
		if w.Pin == pin {
			out = append(out, w.Level)
		}
	}
	return out
}

// ResetWrites clears the write log.
func (s *Sim) ResetWrites() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes = nil
}
