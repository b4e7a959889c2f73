package listeners

import (
	"log/slog"

	"github.com/aretw0/cadence/pkg/domain"
)

// Slog logs loop and iteration lifecycle events through a structured
// logger. Loop open/close log at Info, per-iteration events at Debug,
// callback errors at Warn (the engine decides separately whether they
// terminate the loop).
type Slog struct {
	logger *slog.Logger
}

// NewSlog creates a logging listener.
func NewSlog(logger *slog.Logger) *Slog {
	return &Slog{logger: logger}
}

func (l *Slog) Open(scope *domain.Scope) {
	l.logger.Info("loop_open", "scope", scope.ID())
}

func (l *Slog) Before(scope *domain.Scope) {
	l.logger.Debug("iteration_start", "scope", scope.ID())
}

func (l *Slog) After(scope *domain.Scope, status domain.Status) {
	l.logger.Debug("iteration_end", "scope", scope.ID(), "status", status.String())
}

func (l *Slog) OnError(scope *domain.Scope, err error) {
	l.logger.Warn("iteration_error", "scope", scope.ID(), "err", err)
}

func (l *Slog) Close(scope *domain.Scope) {
	l.logger.Info("loop_close", "scope", scope.ID())
}
