// Package observability wires process-wide logging, tracing and profiling.
package observability

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/footmate/internal/config"
	"github.com/riskibarqy/footmate/internal/platform/logging"
)

// Telemetry owns every exporter started by Setup. Logger is the process
// logger, shipping to Better Stack when enabled.
type Telemetry struct {
	Logger  *logging.Logger
	closers []closer
}

type closer struct {
	name  string
	close func(context.Context) error
}

// Setup starts log shipping, tracing and profiling as configured. On error
// everything already started is stopped again.
func Setup(cfg config.Config) (*Telemetry, error) {
	t := &Telemetry{Logger: logging.NewJSON(cfg.LogLevel)}

	steps := []struct {
		name string
		run  func(config.Config) error
	}{
		{"betterstack", t.startLogShipping},
		{"uptrace", t.startTracing},
		{"pyroscope", t.startProfiler},
		{"pprof", t.startPprof},
	}
	for _, step := range steps {
		if err := step.run(cfg); err != nil {
			_ = t.Shutdown(context.Background())
			return nil, fmt.Errorf("start %s: %w", step.name, err)
		}
	}
	return t, nil
}

func (t *Telemetry) onShutdown(name string, fn func(context.Context) error) {
	t.closers = append(t.closers, closer{name: name, close: fn})
}

// Shutdown stops exporters in reverse start order, so log shipping is the
// last to go and still carries the shutdown logs.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(t.closers) - 1; i >= 0; i-- {
		c := t.closers[i]
		if err := c.close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop %s: %w", c.name, err))
		}
	}
	t.closers = nil
	if err := t.Logger.Sync(); err != nil && !isIgnorableSyncError(err) {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// isIgnorableSyncError matches the errors fsync returns for stdout on
// terminals and pipes.
func isIgnorableSyncError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "bad file descriptor") || strings.Contains(msg, "invalid argument")
}
