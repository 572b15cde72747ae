// Package saga runs compensating actions for multi-step operations that the
// storage layer cannot make atomic.
//
// Each successful step pushes its undo action; on failure Rollback runs them
// in reverse order. Compensations are best effort and never retried: a failed
// undo is logged, counted, and reported alongside the others.
package saga

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.uber.org/multierr"

	"github.com/vendemas/pedidos-api/internal/metrics"
)

// UndoFunc reverts a completed step.
type UndoFunc func(ctx context.Context) error

type step struct {
	name string
	undo UndoFunc
}

// Compensator is the ordered stack of undo actions of one operation.
// It is not safe for concurrent use.
type Compensator struct {
	steps []step
	log   zerolog.Logger
}

// New returns an empty Compensator.
func New(log zerolog.Logger) *Compensator {
	return &Compensator{log: log}
}

// Push registers the undo action of a step that just succeeded.
func (c *Compensator) Push(name string, undo UndoFunc) {
	c.steps = append(c.steps, step{name: name, undo: undo})
}

// Len returns the number of pending undo actions.
func (c *Compensator) Len() int {
	return len(c.steps)
}

// Rollback runs every pending undo action, last pushed first, and empties the
// stack. The returned error combines all compensation failures.
//
// Undo actions run on a context detached from ctx's cancellation so that a
// client hanging up mid-request does not leave orphans behind.
func (c *Compensator) Rollback(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)

	var errs error
	for i := len(c.steps) - 1; i >= 0; i-- {
		s := c.steps[i]
		if err := s.undo(ctx); err != nil {
			metrics.SagaCompensationsTotal.WithLabelValues(s.name, "failed").Inc()
			c.log.Error().Err(err).Str("step", s.name).Msg("compensation failed, orphan left behind")
			errs = multierr.Append(errs, fmt.Errorf("undo %s: %w", s.name, err))
			continue
		}
		metrics.SagaCompensationsTotal.WithLabelValues(s.name, "ok").Inc()
		c.log.Debug().Str("step", s.name).Msg("step compensated")
	}
	c.steps = nil
	return errs
}
