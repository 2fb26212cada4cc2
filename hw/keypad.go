//go:build linux

package hw

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/kenshaw/evdev"
)

// maxKeyCode bounds the key name lookup (KEY_MAX in linux/input-event-codes.h).
const maxKeyCode = 0x2ff

// Keypad wraps a Pins backend so that selected input pins read the held
// state of keys on an evdev input device. Everything else passes through.
type Keypad struct {
	Pins
	dev    *evdev.Evdev
	keys   map[int]evdev.KeyType
	cancel context.CancelFunc

	mu   sync.Mutex
	held map[evdev.KeyType]bool
	lost bool
	done chan struct{}
}

// NewKeypad opens cfg.Device and starts tracking key state.
func NewKeypad(p Pins, cfg KeypadConfig) (*Keypad, error) {
	keys := make(map[int]evdev.KeyType, len(cfg.Keys))
	for pin, name := range cfg.Keys {
		k, err := lookupKey(name)
		if err != nil {
			return nil, fmt.Errorf("keypad pin %d: %w", pin, err)
		}
		keys[pin] = k
	}

	dev, err := evdev.OpenFile(cfg.Device)
	if err != nil {
		return nil, fmt.Errorf("open evdev %s: %w", cfg.Device, err)
	}
	log.WithField("device", dev.Name()).Info("Keypad opened")

	ctx, cancel := context.WithCancel(context.Background())
	k := &Keypad{
		Pins:   p,
		dev:    dev,
		keys:   keys,
		cancel: cancel,
		held:   make(map[evdev.KeyType]bool),
		done:   make(chan struct{}),
	}
	go k.track(ctx, dev.Poll(ctx))
	return k, nil
}

// track keeps held up to date from ch until ch closes. Once cancelled it
// drains ch so the evdev reader can exit.
func (k *Keypad) track(ctx context.Context, ch <-chan *evdev.EventEnvelope) {
	defer close(k.done)
	for {
		select {
		case <-ctx.Done():
			for range ch {
			}
			return
		case event, ok := <-ch:
			if !ok || event == nil {
				log.Warn("Keypad device closed")
				k.mu.Lock()
				k.lost = true
				k.held = make(map[evdev.KeyType]bool)
				k.mu.Unlock()
				return
			}
			key, ok := event.Type.(evdev.KeyType)
			if !ok {
				continue
			}
			// 1 = press, 2 = autorepeat, 0 = release
			k.mu.Lock()
			k.held[key] = event.Value != 0
			k.mu.Unlock()
		}
	}
}

// Input implements Pins.Input. Keypad pins need no GPIO configuration.
func (k *Keypad) Input(pin int) error {
	if _, ok := k.keys[pin]; ok {
		return nil
	}
	return k.Pins.Input(pin)
}

// Read implements Pins.Read. Keypad pins fail with ErrKeypadLost once
// the input device has gone away.
func (k *Keypad) Read(pin int) (Level, error) {
	key, ok := k.keys[pin]
	if !ok {
		return k.Pins.Read(pin)
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.lost {
		return Low, fmt.Errorf("pin %d: %w", pin, ErrKeypadLost)
	}
	return Level(k.held[key]), nil
}

// Unwrap returns the backend behind the keypad.
func (k *Keypad) Unwrap() Pins {
	return k.Pins
}

// Release implements Pins.Release. Closing the device ends the evdev
// reader, which closes the event channel that track is draining.
func (k *Keypad) Release() error {
	k.cancel()
	err := k.dev.Close()
	<-k.done
	if perr := k.Pins.Release(); perr != nil {
		return perr
	}
	return err
}

// keyAliases maps common short names onto evdev key names.
var keyAliases = map[string]string{
	"esc":    "escape",
	"return": "enter",
	"del":    "delete",
	"ins":    "insert",
	"pgup":   "pageup",
	"pgdn":   "pagedown",
}

// lookupKey resolves an evdev key name ("up", "escape", "keypad8"), a
// short alias ("esc", "kp8") or a numeric key code. Numbers are always
// codes: "1" is code 1 (Escape), not the "1" key.
func lookupKey(name string) (evdev.KeyType, error) {
	if code, err := strconv.Atoi(name); err == nil {
		if code < 0 || code > maxKeyCode {
			return 0, fmt.Errorf("key code %d out of range", code)
		}
		return evdev.KeyType(code), nil
	}
	want := strings.TrimPrefix(strings.ToLower(name), "key_")
	if alias, ok := keyAliases[want]; ok {
		want = alias
	} else if rest, ok := strings.CutPrefix(want, "kp"); ok {
		want = "keypad" + rest
	}
	for code := 0; code <= maxKeyCode; code++ {
		k := evdev.KeyType(code)
		got := strings.TrimPrefix(strings.ToLower(k.String()), "key_")
		if got == want {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown key %q", name)
}
