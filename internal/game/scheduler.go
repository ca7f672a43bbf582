package game

import "github.com/impactgrid/impactgrid/internal/world"

// Tick pacing (at 60 TPS).
const (
	TickRate             = 60
	DefaultPlaceInterval = 12 // one placement every 200ms
)

// run is one category's paced purchase sequence.
type run struct {
	pending int    // placements still owed
	next    uint64 // tick at which the next placement fires
}

// Scheduler turns lump purchases into placements paced one per interval.
// Each category has at most one run; runs of different categories interleave
// at tick granularity.
type Scheduler struct {
	interval uint64
	runs     [world.CategoryCount]run
}

// NewScheduler creates a scheduler placing one item every interval ticks.
func NewScheduler(interval uint64) *Scheduler {
	if interval == 0 {
		interval = 1
	}
	return &Scheduler{interval: interval}
}

// Interval returns the placement spacing in ticks.
func (s *Scheduler) Interval() uint64 { return s.interval }

// Schedule sets the number of placements owed for a category. An idle
// category fires its first placement one interval after now; a running
// category keeps its cadence. n <= 0 cancels the run.
func (s *Scheduler) Schedule(c world.Category, n int, now uint64) {
	if !validCategory(c) {
		return
	}
	if n <= 0 {
		s.Cancel(c)
		return
	}
	r := &s.runs[c]
	if r.pending == 0 {
		r.next = now + s.interval
	}
	r.pending = n
}

// Due returns the categories whose placement fires at tick now, in fixed
// category order, and books their following placement one interval later.
func (s *Scheduler) Due(now uint64) []world.Category {
	var out []world.Category
	for _, c := range world.Categories {
		r := &s.runs[c]
		if r.pending > 0 && now >= r.next {
			out = append(out, c)
			r.next = now + s.interval
		}
	}
	return out
}

// Consume marks one owed placement as done.
func (s *Scheduler) Consume(c world.Category) {
	if validCategory(c) && s.runs[c].pending > 0 {
		s.runs[c].pending--
	}
}

// Cancel drops whatever a category still owes.
func (s *Scheduler) Cancel(c world.Category) {
	if validCategory(c) {
		s.runs[c] = run{}
	}
}

// CancelAll drops every pending run.
func (s *Scheduler) CancelAll() {
	for i := range s.runs {
		s.runs[i] = run{}
	}
}

// Pending returns the placements still owed for a category.
func (s *Scheduler) Pending(c world.Category) int {
	if !validCategory(c) {
		return 0
	}
	return s.runs[c].pending
}

// Idle reports whether no category has placements owed.
func (s *Scheduler) Idle() bool {
	for _, c := range world.Categories {
		if s.runs[c].pending > 0 {
			return false
		}
	}
	return true
}
