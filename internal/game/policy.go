package game

import "github.com/impactgrid/impactgrid/internal/world"

// Rule is one row of a category's placement table. When inspects state
// without changing it; Do performs the placement and reports whether
// anything changed.
type Rule struct {
	Name string
	When func(s *Sim) bool
	Do   func(s *Sim) bool
}

// Policy holds the ordered rule tables, indexed by category.
type Policy [world.CategoryCount][]Rule

// DefaultPolicy returns the placement tables for the three charities.
func DefaultPolicy() Policy {
	var p Policy
	p[world.CategoryEducation] = []Rule{
		{Name: "enroll", When: hasOpenSeat, Do: enrollStudent},
		{Name: "build", When: hasUnfinishedSchool, Do: advanceSchool},
		{Name: "found", When: hasEmptySlot, Do: foundSchool},
	}
	p[world.CategoryAnimal] = []Rule{
		{Name: "rescue", When: hasShelterSpace, Do: rescueAnimal},
		{Name: "shelter", When: hasEmptySlot, Do: buildShelter},
	}
	p[world.CategoryEnvironmental] = []Rule{
		{Name: "grow", When: hasGrowableTree, Do: growTree},
		{Name: "plant", When: hasEmptySlot, Do: plantSapling},
	}
	return p
}

// Decide returns the first rule in the category's table whose predicate holds.
// Only that rule may act this tick; a failing Do does not fall through.
func (p *Policy) Decide(s *Sim, c world.Category) (Rule, bool) {
	if !validCategory(c) {
		return Rule{}, false
	}
	for _, r := range p[c] {
		if r.When(s) {
			return r, true
		}
	}
	return Rule{}, false
}

// Log narration.
const (
	msgStudent  = "A new student has been enrolled."
	msgWalls    = "School walls have been built."
	msgRoof     = "The school roof is complete!"
	msgOpen     = "The school is now open!"
	msgBuilding = "School construction continues."
	msgFound    = "A new school foundation was laid."
	msgRescue   = "An animal has been rescued!"
	msgShelter  = "A new animal shelter has been built."
	msgGrow     = "A tree has grown larger."
	msgPlant    = "A sapling was planted."
)

// schoolStageMessages[stage-1] narrates reaching an intermediate stage.
var schoolStageMessages = []string{msgWalls, msgRoof}

func hasEmptySlot(s *Sim) bool { return s.Grid.FirstEmpty() >= 0 }

// --- education ---

func hasOpenSeat(s *Sim) bool { return s.Schools.FindOpenSeat() >= 0 }

func hasUnfinishedSchool(s *Sim) bool { return s.Schools.FindUnfinished() >= 0 }

func enrollStudent(s *Sim) bool {
	slot, ok := s.randomEmpty()
	if !ok {
		return false
	}
	edu := &s.Catalog.Education
	if !s.Schools.Enroll(s.Schools.FindOpenSeat()) {
		return false
	}
	s.setSlot(slot, world.Slot{
		Occupant: world.OccupantStudent,
		Category: world.CategoryEducation,
		Image:    s.Catalog.Image(world.CategoryEducation, s.pick(edu.StudentImages), "Student"),
	})
	s.narrate(world.CategoryEducation, msgStudent)
	return true
}

func advanceSchool(s *Sim) bool {
	i := s.Schools.FindUnfinished()
	stage := s.Schools.Advance(i)
	if stage < 0 {
		return false
	}
	b := s.Schools.List[i]
	edu := &s.Catalog.Education
	s.setSlot(b.Slot, world.Slot{
		Occupant: world.OccupantSchool,
		Category: world.CategoryEducation,
		Stage:    stage,
		Image:    s.Catalog.Image(world.CategoryEducation, edu.BuildingImages[stage], "School part"),
	})
	s.narrate(world.CategoryEducation, schoolStageMessage(stage, edu.MaxStage()))
	return true
}

func schoolStageMessage(stage, maxStage int) string {
	switch {
	case stage == maxStage:
		return msgOpen
	case stage-1 < len(schoolStageMessages):
		return schoolStageMessages[stage-1]
	default:
		return msgBuilding
	}
}

// foundSchool always uses the first empty slot, not a random one.
func foundSchool(s *Sim) bool {
	slot := s.Grid.FirstEmpty()
	if slot < 0 {
		return false
	}
	edu := &s.Catalog.Education
	s.Schools.Found(slot)
	s.setSlot(slot, world.Slot{
		Occupant: world.OccupantSchool,
		Category: world.CategoryEducation,
		Image:    s.Catalog.Image(world.CategoryEducation, edu.BuildingImages[0], "School foundation"),
	})
	s.narrate(world.CategoryEducation, msgFound)
	return true
}

// --- animal ---

func hasShelterSpace(s *Sim) bool { return s.Shelters.FindSpace() >= 0 }

func rescueAnimal(s *Sim) bool {
	slot, ok := s.randomEmpty()
	if !ok {
		return false
	}
	an := &s.Catalog.Animal
	if !s.Shelters.Admit(s.Shelters.FindSpace()) {
		return false
	}
	s.setSlot(slot, world.Slot{
		Occupant: world.OccupantAnimal,
		Category: world.CategoryAnimal,
		Image:    s.Catalog.Image(world.CategoryAnimal, s.pick(an.AnimalImages), "Rescued Animal"),
	})
	s.narrate(world.CategoryAnimal, msgRescue)
	return true
}

// buildShelter always uses the first empty slot.
func buildShelter(s *Sim) bool {
	slot := s.Grid.FirstEmpty()
	if slot < 0 {
		return false
	}
	s.Shelters.Add(slot)
	s.setSlot(slot, world.Slot{
		Occupant: world.OccupantShelter,
		Category: world.CategoryAnimal,
		Image:    s.Catalog.Image(world.CategoryAnimal, s.Catalog.Animal.ShelterImage, "Animal Shelter"),
	})
	s.narrate(world.CategoryAnimal, msgShelter)
	return true
}

// --- environmental ---

func growableTrees(s *Sim) []int {
	maxStage := s.Catalog.Environmental.MaxStage()
	return s.Grid.Find(func(sl world.Slot) bool {
		return sl.Category == world.CategoryEnvironmental && sl.Occupant == world.OccupantTree && sl.Stage < maxStage
	})
}

func hasGrowableTree(s *Sim) bool { return len(growableTrees(s)) > 0 }

func growTree(s *Sim) bool {
	trees := growableTrees(s)
	if len(trees) == 0 {
		return false
	}
	slot := trees[s.rng.IntN(len(trees))]
	next := s.Grid.Get(slot).Stage + 1
	env := &s.Catalog.Environmental
	s.setSlot(slot, world.Slot{
		Occupant: world.OccupantTree,
		Category: world.CategoryEnvironmental,
		Stage:    next,
		Image:    s.Catalog.Image(world.CategoryEnvironmental, s.pick(env.GrowthImages[next]), "Upgraded Tree"),
	})
	s.narrate(world.CategoryEnvironmental, msgGrow)
	return true
}

func plantSapling(s *Sim) bool {
	slot, ok := s.randomEmpty()
	if !ok {
		return false
	}
	env := &s.Catalog.Environmental
	s.setSlot(slot, world.Slot{
		Occupant: world.OccupantTree,
		Category: world.CategoryEnvironmental,
		Image:    s.Catalog.Image(world.CategoryEnvironmental, env.GrowthImages[0][0], "Donated Item"),
	})
	s.narrate(world.CategoryEnvironmental, msgPlant)
	return true
}
