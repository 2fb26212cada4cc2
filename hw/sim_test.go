package hw

import (
	"errors"
	"testing"
)

func TestSimReadsLowUntilDriven(t *testing.T) {
	s := NewSim()
	if err := s.Input(6); err != nil {
		t.Fatalf("Input: %v", err)
	}
	l, err := s.Read(6)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if l != Low {
		t.Errorf("unpressed button reads %v, want low", l)
	}

	s.Set(6, High)
	if l, _ := s.Read(6); l != High {
		t.Errorf("pressed button reads %v, want high", l)
	}
}

func TestSimRecordsWrites(t *testing.T) {
	s := NewSim()
	s.Output(2)
	s.Write(2, High)
	s.Write(3, Low)
	s.Write(2, Low)

	if !s.IsOutput(2) || s.IsOutput(3) {
		t.Errorf("output modes wrong: 2=%v 3=%v", s.IsOutput(2), s.IsOutput(3))
	}
	got := s.WritesTo(2)
	if len(got) != 2 || got[0] != High || got[1] != Low {
		t.Errorf("WritesTo(2) = %v, want [high low]", got)
	}
	if n := len(s.Writes()); n != 3 {
		t.Errorf("len(Writes()) = %d, want 3", n)
	}
	s.ResetWrites()
	if n := len(s.Writes()); n != 0 {
		t.Errorf("len(Writes()) after reset = %d, want 0", n)
	}
	if s.Level(2) != Low {
		t.Errorf("Level(2) = %v, want low", s.Level(2))
	}
}

func TestSimRejectsNegativePin(t *testing.T) {
	s := NewSim()
	if err := s.Write(-1, High); !errors.Is(err, ErrInvalidPin) {
		t.Errorf("Write(-1) error = %v, want ErrInvalidPin", err)
	}
	if _, err := s.Read(-1); !errors.Is(err, ErrInvalidPin) {
		t.Errorf("Read(-1) error = %v, want ErrInvalidPin", err)
	}
}

func TestNew(t *testing.T) {
	p, err := New(Config{Type: "sim"})
	if err != nil {
		t.Fatalf("New(sim): %v", err)
	}
	if _, ok := p.(*Sim); !ok {
		t.Errorf("New(sim) returned %T, want *Sim", p)
	}

	if _, err := New(Config{Type: "relay-board"}); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("New(relay-board) error = %v, want ErrUnknownBackend", err)
	}
}

func TestLevelString(t *testing.T) {
	if High.String() != "high" || Low.String() != "low" {
		t.Errorf("Level strings = %q, %q", High.String(), Low.String())
	}
}

func TestAsSimLooksThroughKeypad(t *testing.T) {
	sim := NewSim()
	if got, ok := AsSim(sim); !ok || got != sim {
		t.Errorf("AsSim(sim) = %v, %v", got, ok)
	}
	if got, ok := AsSim(&Keypad{Pins: sim}); !ok || got != sim {
		t.Errorf("AsSim(keypad over sim) = %v, %v", got, ok)
	}
	if _, ok := AsSim(&Keypad{Pins: &BCM{}}); ok {
		t.Error("AsSim(keypad over bcm) found a Sim")
	}
}

func TestMachineBackendRemoved(t *testing.T) {
	if _, err := New(Config{Type: "machine"}); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("New(machine) error = %v, want ErrUnknownBackend", err)
	}
}
