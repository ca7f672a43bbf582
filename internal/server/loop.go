package server

import (
	"context"
	"errors"
	"time"

	"github.com/impactgrid/impactgrid/internal/game"
	"go.uber.org/zap"
)

// ErrStopped is returned by Do once the loop has exited.
var ErrStopped = errors.New("sim loop stopped")

type command struct {
	fn   func(*game.Sim)
	done chan struct{}
}

// Loop is the single goroutine that owns the Sim. Everything else reaches
// the Sim through Do.
type Loop struct {
	sim      *game.Sim
	interval time.Duration
	logger   *zap.Logger

	cmds    chan command
	stopped chan struct{}
}

// NewLoop creates a loop ticking the sim tickRate times per second.
func NewLoop(sim *game.Sim, tickRate int, logger *zap.Logger) *Loop {
	if tickRate <= 0 {
		tickRate = game.TickRate
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loop{
		sim:      sim,
		interval: time.Second / time.Duration(tickRate),
		logger:   logger,
		cmds:     make(chan command),
		stopped:  make(chan struct{}),
	}
}

// Run ticks the sim and serves commands until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.stopped)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.logger.Info("sim loop started", zap.Duration("tick", l.interval))
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("sim loop stopped", zap.Uint64("ticks", l.sim.Ticks))
			return nil
		case c := <-l.cmds:
			c.fn(l.sim)
			close(c.done)
		case <-ticker.C:
			l.sim.Tick()
		}
	}
}

// Do runs fn on the loop goroutine and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func(*game.Sim)) error {
	c := command{fn: fn, done: make(chan struct{})}
	select {
	case l.cmds <- c:
	case <-l.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
