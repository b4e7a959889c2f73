// Package cli holds the session logic behind the cadence command. It
// assembles an engine from flags or a YAML config and drives a subprocess
// through it: each iteration is one attempt of the command, success
// finishes the loop, failures are absorbed up to the skip limit.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/cadence"
	"github.com/aretw0/cadence/internal/config"
	"github.com/aretw0/cadence/internal/logging"
	"github.com/aretw0/cadence/pkg/adapters/pool"
	"github.com/aretw0/cadence/pkg/handler"
	"github.com/aretw0/cadence/pkg/listeners"
	"github.com/aretw0/cadence/pkg/policy"
	"github.com/aretw0/cadence/pkg/ports"
)

// RunOptions configures one CLI session.
type RunOptions struct {
	Command     []string
	Attempts    int
	SkipLimit   int
	Parallel    int
	Isolated    bool
	ConfigPath  string
	MetricsAddr string
	Debug       bool
}

// ErrNeverSucceeded is reported when the loop ends without the command
// ever finishing successfully.
var ErrNeverSucceeded = fmt.Errorf("command never succeeded within the attempt budget")

func createLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return logging.New(level)
}

func buildStrategies(opts RunOptions) (ports.CompletionPolicy, ports.ExceptionHandler, RunOptions, error) {
	if opts.ConfigPath != "" {
		cfg, err := config.Load(opts.ConfigPath)
		if err != nil {
			return nil, nil, opts, err
		}
		p, err := cfg.BuildPolicy()
		if err != nil {
			return nil, nil, opts, err
		}
		h, err := cfg.BuildHandler()
		if err != nil {
			return nil, nil, opts, err
		}
		if cfg.Parallel > 0 {
			opts.Parallel = cfg.Parallel
		}
		if cfg.Isolated {
			opts.Isolated = true
		}
		return p, h, opts, nil
	}

	p, err := policy.NewFixedCount(opts.Attempts)
	if err != nil {
		return nil, nil, opts, err
	}
	skip := opts.SkipLimit
	if skip <= 0 {
		// Absorb every failure inside the attempt budget.
		skip = opts.Attempts
	}
	h, err := handler.NewThreshold(skip)
	if err != nil {
		return nil, nil, opts, err
	}
	return p, h, opts, nil
}

// RunSession executes one loop over the configured command. It returns
// nil when the command succeeded within the budget.
func RunSession(opts RunOptions) error {
	logger := createLogger(opts.Debug)

	if len(opts.Command) == 0 {
		return fmt.Errorf("no command given: usage is 'cadence run [flags] -- command [args...]'")
	}

	pol, hdl, opts, err := buildStrategies(opts)
	if err != nil {
		return fmt.Errorf("error assembling engine: %w", err)
	}

	engineOpts := []cadence.Option{
		cadence.WithPolicy(pol),
		cadence.WithExceptionHandler(hdl),
		cadence.WithListeners(listeners.NewSlog(logger)),
	}
	if opts.Debug {
		engineOpts = append(engineOpts, cadence.WithLogger(logger))
	}
	if opts.MetricsAddr != "" {
		prom, err := listeners.NewPrometheus(prometheus.DefaultRegisterer)
		if err != nil {
			return fmt.Errorf("error registering metrics: %w", err)
		}
		engineOpts = append(engineOpts, cadence.WithListeners(prom))
		stop := StartMetricsServer(opts.MetricsAddr, logger)
		defer stop()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cb := commandCallback(opts.Command, logger)

	var status cadence.Status
	if opts.Parallel > 1 {
		workers := pool.New(opts.Parallel)
		defer workers.Shutdown()
		if opts.Isolated {
			engineOpts = append(engineOpts, cadence.WithIsolatedScopes())
		}
		engineOpts = append(engineOpts, cadence.WithMaxInFlight(opts.Parallel))
		status, err = cadence.NewConcurrent(workers, engineOpts...).Run(ctx, cb)
	} else {
		status, err = cadence.New(engineOpts...).Run(ctx, cb)
	}
	if err != nil {
		return err
	}
	if status != cadence.Finished {
		return ErrNeverSucceeded
	}
	return nil
}

// commandCallback adapts one subprocess attempt to the callback contract:
// a clean exit finishes the loop, a failing exit is a callback error for
// the exception handler to rule on.
func commandCallback(argv []string, logger *slog.Logger) cadence.Callback {
	return func(ctx context.Context, _ *cadence.Scope) (cadence.Status, error) {
		cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			logger.Debug("attempt failed", "err", err)
			return cadence.Continue, fmt.Errorf("command failed: %w", err)
		}
		return cadence.Finished, nil
	}
}
