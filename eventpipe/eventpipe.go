package eventpipe

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"gateopener/hw"
)

var log = logrus.WithField("component", "eventpipe")

// Config holds configuration for the event pipe.
type Config struct {
	Path string `yaml:"path"` // Path to named pipe (e.g., "/tmp/gateopener-buttons")
}

// Event is one button level change read from the pipe.
type Event struct {
	Pin   int
	Level hw.Level
}

// Handler is called for each event read from the pipe.
type Handler func(Event)

// EventPipe reads button presses from a named pipe so a simulated gate
// can be driven from a shell.
type EventPipe struct {
	path    string
	names   map[string]int
	handler Handler
	ctx     context.Context
	cancel  context.CancelFunc
}

// New creates the named pipe. Returns nil if path is empty. names maps
// button names ("up", "estop", ...) to pins.
func New(cfg Config, names map[string]int, handler Handler) (*EventPipe, error) {
	if cfg.Path == "" {
		return nil, nil
	}

	// Remove existing pipe if it exists
	os.Remove(cfg.Path)

	if err := syscall.Mkfifo(cfg.Path, 0666); err != nil {
		return nil, fmt.Errorf("create named pipe %s: %w", cfg.Path, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &EventPipe{
		path:    cfg.Path,
		names:   names,
		handler: handler,
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

// Start reads events until Close. Run it in its own goroutine.
func (ep *EventPipe) Start() {
	log.WithField("path", ep.path).Info("Event pipe listening")

	for {
		select {
		case <-ep.ctx.Done():
			return
		default:
		}

		// Blocks until a writer connects
		file, err := os.OpenFile(ep.path, os.O_RDONLY, 0)
		if err != nil {
			if ep.ctx.Err() != nil {
				return
			}
			log.WithError(err).Warn("Event pipe open")
			continue
		}

		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			if ep.ctx.Err() != nil {
				file.Close()
				return
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			event, err := ParseLine(line, ep.names)
			if err != nil {
				log.WithError(err).Warn("Event pipe parse")
				continue
			}
			if ep.handler != nil {
				ep.handler(event)
			}
		}

		file.Close()
		// Writer closed the pipe, wait for the next one
	}
}

// Close stops the listener and removes the pipe.
func (ep *EventPipe) Close() error {
	ep.cancel()
	// Unblock a Start waiting in open.
	if f, err := os.OpenFile(ep.path, os.O_WRONLY|syscall.O_NONBLOCK, 0); err == nil {
		f.Close()
	}
	return os.Remove(ep.path)
}

// ParseLine parses one command.
//
//	press <button>         - button goes high
//	release <button>       - button goes low
//	pin <button> <0|1>     - set button level
//
// <button> is a name from names or a pin number.
func ParseLine(line string, names map[string]int) (Event, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Event{}, fmt.Errorf("empty command")
	}

	cmd := strings.ToLower(parts[0])
	switch cmd {
	case "press", "release":
		if len(parts) < 2 {
			return Event{}, fmt.Errorf("%s requires a button", cmd)
		}
		pin, err := parsePin(parts[1], names)
		if err != nil {
			return Event{}, err
		}
		return Event{Pin: pin, Level: hw.Level(cmd == "press")}, nil

	case "pin":
		if len(parts) < 3 {
			return Event{}, fmt.Errorf("pin requires <button> <0|1>")
		}
		pin, err := parsePin(parts[1], names)
		if err != nil {
			return Event{}, err
		}
		pressed := parts[2] == "1" || strings.ToLower(parts[2]) == "true"
		return Event{Pin: pin, Level: hw.Level(pressed)}, nil

	default:
		return Event{}, fmt.Errorf("unknown command: %s", cmd)
	}
}

func parsePin(name string, names map[string]int) (int, error) {
	if pin, ok := names[strings.ToLower(name)]; ok {
		return pin, nil
	}
	pin, err := strconv.Atoi(name)
	if err != nil || pin < 0 {
		return 0, fmt.Errorf("unknown button: %s", name)
	}
	return pin, nil
}
