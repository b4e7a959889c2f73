// Package redis provides a Redis-backed observer listener: loop and
// iteration counters are published with INCR so external dashboards can
// watch engine activity. The engine itself stays memory-resident; this
// adapter observes, it never feeds state back into the loop.
package redis

import (
	"context"
	"log/slog"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/cadence/internal/logging"
	"github.com/aretw0/cadence/pkg/domain"
)

// Listener publishes loop counters to Redis.
type Listener struct {
	client *backend.Client
	prefix string
	logger *slog.Logger
}

type Option func(*Listener)

// WithPrefix sets the key prefix for published counters.
func WithPrefix(prefix string) Option {
	return func(l *Listener) {
		l.prefix = prefix
	}
}

// WithLogger sets the logger used to report publish failures. Failures
// never surface into the loop.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Listener) {
		l.logger = logger
	}
}

// New creates a Redis listener with its own client.
func New(address, password string, db int, opts ...Option) *Listener {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a Redis listener from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Listener {
	l := &Listener{
		client: client,
		prefix: "cadence:",
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Listener) incr(key string) {
	if err := l.client.Incr(context.Background(), l.prefix+key).Err(); err != nil {
		l.logger.Warn("failed to publish counter", "key", l.prefix+key, "err", err)
	}
}

func (l *Listener) Open(_ *domain.Scope) {
	l.incr("loops")
}

func (l *Listener) Before(_ *domain.Scope) {}

func (l *Listener) After(_ *domain.Scope, _ domain.Status) {
	l.incr("iterations")
}

func (l *Listener) OnError(_ *domain.Scope, _ error) {
	l.incr("errors")
}

func (l *Listener) Close(_ *domain.Scope) {}
