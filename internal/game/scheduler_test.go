package game

import (
	"testing"

	"github.com/impactgrid/impactgrid/internal/world"
	"github.com/stretchr/testify/assert"
)

func TestSchedulerPacesPlacements(t *testing.T) {
	s := NewScheduler(12)
	s.Schedule(world.CategoryAnimal, 2, 0)
	assert.Equal(t, 2, s.Pending(world.CategoryAnimal))
	assert.False(t, s.Idle())

	for tick := uint64(1); tick < 12; tick++ {
		assert.Empty(t, s.Due(tick), "tick %d", tick)
	}
	assert.Equal(t, []world.Category{world.CategoryAnimal}, s.Due(12))
	s.Consume(world.CategoryAnimal)
	assert.Empty(t, s.Due(13))
	assert.Equal(t, []world.Category{world.CategoryAnimal}, s.Due(24))
	s.Consume(world.CategoryAnimal)

	assert.True(t, s.Idle())
	assert.Empty(t, s.Due(36))
}

func TestSchedulerRescheduleKeepsCadence(t *testing.T) {
	s := NewScheduler(10)
	s.Schedule(world.CategoryEducation, 1, 0)
	s.Schedule(world.CategoryEducation, 3, 5)
	assert.Equal(t, 3, s.Pending(world.CategoryEducation))
	assert.Empty(t, s.Due(9))
	assert.NotEmpty(t, s.Due(10))
}

func TestSchedulerInterleavesCategoriesInOrder(t *testing.T) {
	s := NewScheduler(1)
	s.Schedule(world.CategoryEducation, 1, 0)
	s.Schedule(world.CategoryEnvironmental, 1, 0)
	s.Schedule(world.CategoryAnimal, 1, 0)
	assert.Equal(t, world.Categories, s.Due(1))
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler(1)
	s.Schedule(world.CategoryAnimal, 4, 0)
	s.Schedule(world.CategoryEnvironmental, 4, 0)

	s.Cancel(world.CategoryAnimal)
	assert.Zero(t, s.Pending(world.CategoryAnimal))
	assert.Equal(t, []world.Category{world.CategoryEnvironmental}, s.Due(1))

	s.CancelAll()
	assert.True(t, s.Idle())
	assert.Empty(t, s.Due(2))

	s.Schedule(world.CategoryAnimal, 0, 3)
	assert.True(t, s.Idle())
}

func TestSchedulerZeroIntervalClamped(t *testing.T) {
	assert.Equal(t, uint64(1), NewScheduler(0).Interval())
}
