//go:build linux

package hw

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kenshaw/evdev"
)

func TestLookupKey(t *testing.T) {
	tests := []struct {
		name    string
		want    int
		wantErr bool
	}{
		{name: "103", want: 103},
		{name: "1", want: 1},
		{name: "99999", wantErr: true},
		{name: "no-such-key", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := lookupKey(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Errorf("lookupKey(%q) = %v, want error", tt.name, k)
				}
				return
			}
			if err != nil {
				t.Fatalf("lookupKey(%q): %v", tt.name, err)
			}
			if int(k) != tt.want {
				t.Errorf("lookupKey(%q) = %d, want %d", tt.name, k, tt.want)
			}
		})
	}
}

func TestLookupKeyRoundTripsNames(t *testing.T) {
	// Whatever name evdev gives a code must resolve back to that code.
	for _, code := range []int{28, 57, 103, 108} {
		name := evdev.KeyType(code).String()
		k, err := lookupKey(name)
		if err != nil {
			t.Fatalf("lookupKey(%q): %v", name, err)
		}
		if k.String() != name {
			t.Errorf("lookupKey(%q) = %d, names differ", name, k)
		}
	}
}

func TestLookupKeyDocumentedNames(t *testing.T) {
	tests := []struct {
		name string
		want evdev.KeyType
	}{
		{"up", evdev.KeyUp},
		{"down", evdev.KeyDown},
		{"space", evdev.KeySpace},
		{"enter", evdev.KeyEnter},
		{"escape", evdev.KeyEscape},
		{"esc", evdev.KeyEscape},
		{"ESC", evdev.KeyEscape},
		{"keypad8", evdev.KeyKeypad8},
		{"kp8", evdev.KeyKeypad8},
		{"KEY_KP8", evdev.KeyKeypad8},
		{"kpenter", evdev.KeyKeypadEnter},
		{"1", evdev.KeyEscape},
	}
	for _, tt := range tests {
		got, err := lookupKey(tt.name)
		if err != nil {
			t.Errorf("lookupKey(%q): %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("lookupKey(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func newTestKeypad(sim *Sim, keys map[int]evdev.KeyType) *Keypad {
	return &Keypad{
		Pins: sim,
		keys: keys,
		held: make(map[evdev.KeyType]bool),
		done: make(chan struct{}),
	}
}

func TestKeypadLostDeviceReleasesKeys(t *testing.T) {
	sim := NewSim()
	k := newTestKeypad(sim, map[int]evdev.KeyType{6: evdev.KeyUp})
	ch := make(chan *evdev.EventEnvelope)
	go k.track(context.Background(), ch)

	ch <- &evdev.EventEnvelope{Event: evdev.Event{Code: uint16(evdev.KeyUp), Value: 1}, Type: evdev.KeyUp}
	// A second send only completes once the first event has been applied.
	ch <- &evdev.EventEnvelope{Event: evdev.Event{Code: uint16(evdev.KeyUp), Value: 2}, Type: evdev.KeyUp}
	close(ch)
	<-k.done

	l, err := k.Read(6)
	if !errors.Is(err, ErrKeypadLost) {
		t.Errorf("Read(6) after device loss = %v, %v; want ErrKeypadLost", l, err)
	}
	if l != Low {
		t.Errorf("Read(6) after device loss = %v, want low", l)
	}

	// Pins not on the keypad still read from the backend.
	sim.Set(7, High)
	if l, err := k.Read(7); err != nil || l != High {
		t.Errorf("Read(7) = %v, %v; want high, nil", l, err)
	}
}

func TestKeypadTracksHeldKeys(t *testing.T) {
	sim := NewSim()
	k := newTestKeypad(sim, map[int]evdev.KeyType{6: evdev.KeyUp})
	ch := make(chan *evdev.EventEnvelope)
	ctx, cancel := context.WithCancel(context.Background())
	go k.track(ctx, ch)

	ch <- &evdev.EventEnvelope{Event: evdev.Event{Code: uint16(evdev.KeyUp), Value: 1}, Type: evdev.KeyUp}
	ch <- &evdev.EventEnvelope{Event: evdev.Event{Code: uint16(evdev.KeyDown), Value: 1}, Type: evdev.KeyDown}
	if l, err := k.Read(6); err != nil || l != High {
		t.Errorf("Read(6) with up held = %v, %v; want high, nil", l, err)
	}

	ch <- &evdev.EventEnvelope{Event: evdev.Event{Code: uint16(evdev.KeyUp), Value: 0}, Type: evdev.KeyUp}
	ch <- &evdev.EventEnvelope{Event: evdev.Event{Code: uint16(evdev.KeyDown), Value: 0}, Type: evdev.KeyDown}
	if l, _ := k.Read(6); l != Low {
		t.Errorf("Read(6) after release = %v, want low", l)
	}

	cancel()
	close(ch)
	<-k.done
}

func TestKeypadCancelDrainsEvents(t *testing.T) {
	k := newTestKeypad(NewSim(), nil)
	ch := make(chan *evdev.EventEnvelope)
	ctx, cancel := context.WithCancel(context.Background())
	go k.track(ctx, ch)
	cancel()

	// The reader keeps sending after cancellation; none of these may block.
	sent := make(chan struct{})
	go func() {
		for i := 0; i < 3; i++ {
			ch <- &evdev.EventEnvelope{Event: evdev.Event{Code: uint16(evdev.KeyUp), Value: 1}, Type: evdev.KeyUp}
		}
		close(ch)
		close(sent)
	}()

	select {
	case <-sent:
	case <-time.After(5 * time.Second):
		t.Fatal("sends blocked after cancel")
	}
	<-k.done
}
