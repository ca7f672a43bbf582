package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSheltersFillInCreationOrder(t *testing.T) {
	s := Shelters{Capacity: 2}
	assert.Equal(t, -1, s.FindSpace())

	s.Add(4)
	s.Add(9)
	assert.True(t, s.Admit(s.FindSpace()))
	assert.True(t, s.Admit(s.FindSpace()))
	assert.Equal(t, 1, s.FindSpace())
	assert.False(t, s.Admit(0))
	assert.False(t, s.Admit(7))
	assert.Equal(t, 2, s.TotalAnimals())

	s.Clear()
	assert.Empty(t, s.List)
}

func TestSchoolsStagesAndSeats(t *testing.T) {
	s := Schools{MaxStage: 3, StudentCapacity: 1}
	s.Found(0)
	assert.Equal(t, -1, s.FindOpenSeat())
	assert.False(t, s.Enroll(0))

	for want := 1; want <= 3; want++ {
		assert.Equal(t, want, s.Advance(0))
	}
	assert.Equal(t, -1, s.Advance(0))
	assert.Equal(t, -1, s.FindUnfinished())

	assert.Equal(t, 0, s.FindOpenSeat())
	assert.True(t, s.Enroll(0))
	assert.False(t, s.Enroll(0))
	assert.Equal(t, -1, s.FindOpenSeat())
	assert.Equal(t, 1, s.TotalStudents())
}
