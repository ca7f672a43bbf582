package game

import (
	"testing"

	"github.com/impactgrid/impactgrid/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecideFirstMatchingRule(t *testing.T) {
	s := newTestSim(t)

	rule, ok := s.Policy.Decide(s, world.CategoryEducation)
	require.True(t, ok)
	assert.Equal(t, "found", rule.Name)

	rule, ok = s.Policy.Decide(s, world.CategoryAnimal)
	require.True(t, ok)
	assert.Equal(t, "shelter", rule.Name)

	rule, ok = s.Policy.Decide(s, world.CategoryEnvironmental)
	require.True(t, ok)
	assert.Equal(t, "plant", rule.Name)

	_, ok = s.Policy.Decide(s, world.CategoryNone)
	assert.False(t, ok)
}

func TestEducationBuildsThenEnrolls(t *testing.T) {
	s := newTestSim(t)
	maxStage := s.Catalog.Education.MaxStage()

	require.True(t, s.Place(world.CategoryEducation))
	sl := s.Grid.Get(0)
	assert.Equal(t, world.OccupantSchool, sl.Occupant)
	assert.Equal(t, 0, sl.Stage)
	assert.Equal(t, "assets/images/education/foundation.png", sl.Image.Path)
	assert.Equal(t, "School foundation", sl.Image.Alt)

	for stage := 1; stage <= maxStage; stage++ {
		require.True(t, s.Place(world.CategoryEducation))
		sl = s.Grid.Get(0)
		assert.Equal(t, stage, sl.Stage)
		assert.Equal(t, "School part", sl.Image.Alt)
	}
	assert.Equal(t, "assets/images/education/school_complete.png", sl.Image.Path)

	texts := logTexts(s)
	assert.Equal(t, []string{msgOpen, msgRoof, msgWalls, msgFound}, texts)

	// The completed school now takes students in random empty slots.
	require.True(t, s.Place(world.CategoryEducation))
	assert.Equal(t, 1, s.Schools.List[0].Students)
	assert.Equal(t, 1, s.Grid.CountOccupant(world.OccupantStudent))
	assert.Equal(t, msgStudent, s.Log.Recent(1)[0].Text)
}

func TestEducationFoundsSecondSchoolWhenFull(t *testing.T) {
	s := newTestSim(t)
	s.Grid.Occupy(0, world.Slot{Occupant: world.OccupantSchool, Category: world.CategoryEducation, Stage: 3})
	s.Schools.List = []School{{Slot: 0, Stage: 3, Students: s.Schools.StudentCapacity}}

	require.True(t, s.Place(world.CategoryEducation))
	require.Len(t, s.Schools.List, 2)
	assert.Equal(t, 1, s.Schools.List[1].Slot)
	assert.Equal(t, 0, s.Schools.List[1].Stage)
}

func TestEducationDoesNotFallThroughWhenGridFull(t *testing.T) {
	s := newTestSim(t)
	s.Grid.Occupy(0, world.Slot{Occupant: world.OccupantSchool, Category: world.CategoryEducation, Stage: 3})
	s.Grid.Occupy(1, world.Slot{Occupant: world.OccupantSchool, Category: world.CategoryEducation, Stage: 1})
	s.Schools.List = []School{{Slot: 0, Stage: 3}, {Slot: 1, Stage: 1}}
	fillGrid(s)

	// Enrollment matches first and fails; the unfinished school is not built.
	assert.False(t, s.Place(world.CategoryEducation))
	assert.Equal(t, 1, s.Schools.List[1].Stage)
	assert.Zero(t, s.Schools.List[0].Students)
	assert.Zero(t, s.Log.Len())
}

func TestSchoolStageMessage(t *testing.T) {
	assert.Equal(t, msgWalls, schoolStageMessage(1, 3))
	assert.Equal(t, msgRoof, schoolStageMessage(2, 3))
	assert.Equal(t, msgOpen, schoolStageMessage(3, 3))
	assert.Equal(t, msgBuilding, schoolStageMessage(3, 5))
}

func TestAnimalShelterThenRescue(t *testing.T) {
	s := newTestSim(t)
	capacity := s.Shelters.Capacity

	require.True(t, s.Place(world.CategoryAnimal))
	sh := s.Grid.Get(0)
	assert.Equal(t, world.OccupantShelter, sh.Occupant)
	assert.Equal(t, "assets/images/animals/shelter.png", sh.Image.Path)

	for i := 0; i < capacity; i++ {
		require.True(t, s.Place(world.CategoryAnimal))
	}
	assert.Equal(t, capacity, s.Shelters.List[0].Animals)
	assert.Equal(t, capacity, s.Grid.CountOccupant(world.OccupantAnimal))

	// A full shelter means the next purchase builds another one.
	first := s.Grid.FirstEmpty()
	require.True(t, s.Place(world.CategoryAnimal))
	require.Len(t, s.Shelters.List, 2)
	assert.Equal(t, first, s.Shelters.List[1].Slot)
	assert.Equal(t, world.OccupantShelter, s.Grid.Get(first).Occupant)
}

func TestAnimalDoesNotFallThroughWhenGridFull(t *testing.T) {
	s := newTestSim(t)
	s.Grid.Occupy(0, world.Slot{Occupant: world.OccupantShelter, Category: world.CategoryAnimal})
	s.Shelters.List = []Shelter{{Slot: 0, Animals: 2}}
	fillGrid(s)

	assert.False(t, s.Place(world.CategoryAnimal))
	assert.Len(t, s.Shelters.List, 1)
	assert.Equal(t, 2, s.Shelters.List[0].Animals)
}

func TestAdmitAndEnrollRequireCapacity(t *testing.T) {
	s := newTestSim(t)

	// No shelter or school exists, so nothing may be placed or counted.
	assert.False(t, rescueAnimal(s))
	assert.False(t, enrollStudent(s))
	assert.Zero(t, s.Grid.Occupied())
	assert.Zero(t, s.Shelters.TotalAnimals())
	assert.Zero(t, s.Schools.TotalStudents())
	assert.Empty(t, logTexts(s))
}

func TestEnvironmentalPlantsThenGrows(t *testing.T) {
	s := newTestSim(t)
	env := s.Catalog.Environmental

	require.True(t, s.Place(world.CategoryEnvironmental))
	trees := s.Grid.Find(func(sl world.Slot) bool { return sl.Occupant == world.OccupantTree })
	require.Len(t, trees, 1)
	tree := s.Grid.Get(trees[0])
	assert.Equal(t, 0, tree.Stage)
	assert.Equal(t, "assets/images/trees/sapling.png", tree.Image.Path)
	assert.Equal(t, "Donated Item", tree.Image.Alt)

	// An existing growable tree always wins over planting.
	for stage := 1; stage <= env.MaxStage(); stage++ {
		require.True(t, s.Place(world.CategoryEnvironmental))
		tree = s.Grid.Get(trees[0])
		assert.Equal(t, stage, tree.Stage)
		assert.Contains(t, imagePaths(s.Catalog, env.GrowthImages[stage]), tree.Image.Path)
	}
	assert.Equal(t, 1, s.Grid.Occupied())

	// The only tree is fully grown, so the next purchase plants again.
	require.True(t, s.Place(world.CategoryEnvironmental))
	assert.Equal(t, 2, s.Grid.Occupied())
	assert.Equal(t, []string{msgPlant, msgGrow, msgGrow, msgPlant}, logTexts(s))
}

func TestEnvironmentalGrowsWhenGridFull(t *testing.T) {
	s := newTestSim(t)
	s.Grid.Occupy(7, world.Slot{Occupant: world.OccupantTree, Category: world.CategoryEnvironmental, Stage: 1})
	fillGrid(s)

	require.True(t, s.Place(world.CategoryEnvironmental))
	assert.Equal(t, 2, s.Grid.Get(7).Stage)
	assert.False(t, s.Place(world.CategoryEnvironmental))
}

func TestSaturatedGridRejectsEveryCategory(t *testing.T) {
	s := newTestSim(t)
	fillGrid(s)
	for _, c := range world.Categories {
		assert.False(t, s.Place(c), c.String())
	}
	assert.Zero(t, s.Log.Len())
}

func logTexts(s *Sim) []string {
	var out []string
	for _, e := range s.Log.All() {
		out = append(out, e.Text)
	}
	return out
}

func imagePaths(c *world.Catalog, files []string) []string {
	var out []string
	for _, f := range files {
		out = append(out, c.Image(world.CategoryEnvironmental, f, "").Path)
	}
	return out
}
