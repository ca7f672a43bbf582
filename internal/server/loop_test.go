package server

import (
	"context"
	"testing"
	"time"

	"github.com/impactgrid/impactgrid/internal/game"
	"github.com/impactgrid/impactgrid/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestLoopRunsCommandsAndStops(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	sim := game.NewSim(game.WithSeed(1), game.WithPlaceInterval(1))
	loop := NewLoop(sim, 1000, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	var donateErr error
	require.NoError(t, loop.Do(context.Background(), func(s *game.Sim) {
		donateErr = s.Donate(world.CategoryEnvironmental, 5)
	}))
	require.NoError(t, donateErr)
	require.Eventually(t, func() bool {
		var spent int
		_ = loop.Do(context.Background(), func(s *game.Sim) {
			spent = s.Ledger.Account(world.CategoryEnvironmental).Spent
		})
		return spent == 5
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.ErrorIs(t, loop.Do(context.Background(), func(*game.Sim) {}), ErrStopped)
}

func TestLoopDoHonorsContext(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	// Never started, so nothing receives the command.
	loop := NewLoop(game.NewSim(), 60, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, loop.Do(ctx, func(*game.Sim) {}), context.DeadlineExceeded)
}
