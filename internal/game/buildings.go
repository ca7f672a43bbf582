package game

// Shelter is an animal shelter drawn at a grid slot.
type Shelter struct {
	Slot    int // grid index; the grid owns the slot
	Animals int
}

// School is a school building drawn at a grid slot.
// Students only grow once Stage reaches the catalog's max stage.
type School struct {
	Slot     int
	Stage    int
	Students int
}

// Shelters is the animal charity's shelter set, in creation order.
type Shelters struct {
	List     []Shelter
	Capacity int
}

// FindSpace returns the index of the first shelter with room, or -1.
func (s *Shelters) FindSpace() int {
	for i, sh := range s.List {
		if sh.Animals < s.Capacity {
			return i
		}
	}
	return -1
}

// Add builds a new empty shelter at a grid slot.
func (s *Shelters) Add(slot int) {
	s.List = append(s.List, Shelter{Slot: slot})
}

// Admit puts one animal into shelter i. It returns false if the shelter is full.
func (s *Shelters) Admit(i int) bool {
	if i < 0 || i >= len(s.List) || s.List[i].Animals >= s.Capacity {
		return false
	}
	s.List[i].Animals++
	return true
}

// TotalAnimals returns the number of rescued animals across all shelters.
func (s *Shelters) TotalAnimals() int {
	n := 0
	for _, sh := range s.List {
		n += sh.Animals
	}
	return n
}

// Clear drops every shelter.
func (s *Shelters) Clear() { s.List = nil }

// Schools is the education charity's building set, in creation order.
type Schools struct {
	List            []School
	MaxStage        int
	StudentCapacity int
}

// FindOpenSeat returns the index of the first complete school with a free
// seat, or -1.
func (s *Schools) FindOpenSeat() int {
	for i, b := range s.List {
		if b.Stage == s.MaxStage && b.Students < s.StudentCapacity {
			return i
		}
	}
	return -1
}

// FindUnfinished returns the index of the first school still under
// construction, or -1.
func (s *Schools) FindUnfinished() int {
	for i, b := range s.List {
		if b.Stage < s.MaxStage {
			return i
		}
	}
	return -1
}

// Found lays a new stage-0 school at a grid slot.
func (s *Schools) Found(slot int) {
	s.List = append(s.List, School{Slot: slot})
}

// Advance raises school i one construction stage and returns the new stage,
// or -1 if it is already complete.
func (s *Schools) Advance(i int) int {
	if i < 0 || i >= len(s.List) || s.List[i].Stage >= s.MaxStage {
		return -1
	}
	s.List[i].Stage++
	return s.List[i].Stage
}

// Enroll adds a student to school i. Only complete schools with a free seat accept.
func (s *Schools) Enroll(i int) bool {
	if i < 0 || i >= len(s.List) {
		return false
	}
	b := &s.List[i]
	if b.Stage != s.MaxStage || b.Students >= s.StudentCapacity {
		return false
	}
	b.Students++
	return true
}

// TotalStudents returns the number of enrolled students.
func (s *Schools) TotalStudents() int {
	n := 0
	for _, b := range s.List {
		n += b.Students
	}
	return n
}

// Clear drops every school.
func (s *Schools) Clear() { s.List = nil }
