package main

import (
	"context"
	"path/filepath"
	"testing"

	"gateopener/clock"
	"gateopener/eventpipe"
	"gateopener/gate"
	"gateopener/hw"
)

func newSimApp(t *testing.T) *App {
	t.Helper()
	cfg := DefaultConfig()
	cfg.GPIO.Type = "sim"
	cfg.PollMillis = 0
	app, err := NewApp(&cfg, clock.NewFake())
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	if app.sim == nil {
		t.Fatal("sim backend not selected")
	}
	return app
}

func runOnce(app *App) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	app.Run(ctx)
}

func TestAppUpThenEmergencyStop(t *testing.T) {
	app := newSimApp(t)

	app.sim.Set(6, hw.High)
	runOnce(app)
	app.sim.Set(6, hw.Low)
	if got := app.gate.State(); got != gate.MovingForward {
		t.Fatalf("state = %v, want forward", got)
	}
	if app.sim.Level(2) != hw.High || app.sim.Level(3) != hw.High || app.sim.Level(4) != hw.Low {
		t.Errorf("motor pins = %v %v %v, want high high low", app.sim.Level(2), app.sim.Level(3), app.sim.Level(4))
	}

	app.onPipeEvent(eventpipe.Event{Pin: 9, Level: hw.High})
	runOnce(app)
	if got := app.gate.State(); got != gate.Stopped {
		t.Fatalf("state = %v, want stopped", got)
	}
	for _, pin := range []int{2, 3, 4, 5} {
		if app.sim.Level(pin) != hw.Low {
			t.Errorf("pin %d high after emergency stop", pin)
		}
	}
}

func TestAppCloseStopsMotor(t *testing.T) {
	app := newSimApp(t)
	app.sim.Set(7, hw.High)
	runOnce(app)
	if app.sim.Level(2) != hw.High {
		t.Fatal("motor not running")
	}
	app.Close()
	for _, pin := range []int{2, 3, 4, 5} {
		if app.sim.Level(pin) != hw.Low {
			t.Errorf("pin %d high after Close", pin)
		}
	}
}

func TestAppEventPipeOnSimulatedGPIO(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GPIO.Type = "sim"
	cfg.EventPipe.Path = filepath.Join(t.TempDir(), "buttons")
	app, err := NewApp(&cfg, clock.NewFake())
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	defer app.Close()
	if app.pipe == nil {
		t.Fatal("event pipe not created for simulated GPIO")
	}
}
