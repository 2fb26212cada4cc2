package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"gateopener/clock"
	"gateopener/eventpipe"
	"gateopener/gate"
	"gateopener/hw"
	"gateopener/indicator"
	"gateopener/motor"
)

var myBuild string

var log = logrus.WithField("component", "main")

// App holds the application state and dependencies.
type App struct {
	cfg   *Config
	pins  hw.Pins
	sim   *hw.Sim
	motor motor.Driver
	light indicator.Indicator
	gate  *gate.Controller
	pipe  *eventpipe.EventPipe
}

func main() {
	fmt.Printf("gateopener build %s\n", myBuild)

	cfgfile := flag.String("cfg", "gateopener.cfg", "Config file")
	simulate := flag.Bool("simulate", false, "Use simulated GPIO instead of hardware")
	flag.Parse()

	cfg, err := LoadConfig(*cfgfile)
	if err != nil {
		logrus.Fatalf("Load config: %v", err)
	}
	if *simulate {
		cfg.GPIO.Type = "sim"
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Fatalf("log_level: %v", err)
	}
	logrus.SetLevel(level)

	app, err := NewApp(cfg, clock.Real{})
	if err != nil {
		logrus.Fatalf("Init: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if app.pipe != nil {
		go app.pipe.Start()
	}
	app.Run(ctx)

	fmt.Println("Shutting down...")
	app.Close()
	fmt.Println("Shutdown complete")
}

// NewApp opens the GPIO backend and builds the motor, light and controller.
func NewApp(cfg *Config, clk clock.Clock) (*App, error) {
	app := &App{cfg: cfg}

	var err error
	app.pins, err = hw.New(cfg.GPIO)
	if err != nil {
		return nil, fmt.Errorf("init gpio: %w", err)
	}
	app.sim, _ = hw.AsSim(app.pins)

	app.motor, err = motor.New(app.pins, cfg.Motor)
	if err != nil {
		app.pins.Release()
		return nil, err
	}

	app.light, err = indicator.New(app.pins, clk, cfg.Warning)
	if err != nil {
		app.pins.Release()
		return nil, fmt.Errorf("init warning light: %w", err)
	}

	app.gate, err = gate.New(app.motor, app.light, app.pins, cfg.GateButtons(), clk, cfg.GateOptions())
	if err != nil {
		app.pins.Release()
		return nil, fmt.Errorf("init gate: %w", err)
	}
	if err := app.gate.Init(); err != nil {
		log.WithError(err).Warn("Gate init")
	}

	// Only a simulated bank can be driven from the pipe. Keypad pins keep
	// reading from the keypad.
	if app.sim != nil {
		app.pipe, err = eventpipe.New(cfg.EventPipe, cfg.ButtonNames(), app.onPipeEvent)
		if err != nil {
			app.pins.Release()
			return nil, err
		}
	} else if cfg.EventPipe.Path != "" {
		log.WithField("gpio", cfg.GPIO.Type).Warn("event_pipe ignored: needs gpio type sim or -simulate")
	}

	return app, nil
}

// Run ticks the controller until ctx is done. The delay follows each tick,
// so a blink pushes the next tick back.
func (app *App) Run(ctx context.Context) {
	interval := app.cfg.PollInterval()
	for {
		if err := app.gate.Tick(); err != nil {
			log.WithError(err).Warn("Tick")
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}
	}
}

// Close stops the motor, turns the light off and releases the hardware.
func (app *App) Close() {
	if app.pipe != nil {
		if err := app.pipe.Close(); err != nil {
			log.WithError(err).Warn("Close event pipe")
		}
	}
	if err := app.motor.Release(); err != nil {
		log.WithError(err).Error("Stop motor")
	}
	if err := app.light.Release(); err != nil {
		log.WithError(err).Warn("Warning light off")
	}
	if err := app.pins.Release(); err != nil {
		log.WithError(err).Warn("Release gpio")
	}
}

func (app *App) onPipeEvent(evt eventpipe.Event) {
	log.WithFields(logrus.Fields{"pin": evt.Pin, "level": evt.Level}).Debug("Simulated button")
	app.sim.Set(evt.Pin, evt.Level)
}
