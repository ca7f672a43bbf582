package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/impactgrid/impactgrid/internal/world"
	"go.uber.org/zap"
)

// PromptNoAmount is shown when a donation is attempted with nothing selected.
const PromptNoAmount = "Please select an amount to donate first."

var (
	// ErrNoAmount means the donation amount was zero or negative.
	ErrNoAmount = errors.New("no donation amount selected")
	// ErrUnknownCategory means the category identifier is not a charity.
	ErrUnknownCategory = errors.New("unknown charity category")
	// ErrAmountTooLarge means the donation would overflow the category total.
	ErrAmountTooLarge = errors.New("donation amount too large")
)

// Sim is the donation simulation. It owns all state: grid, ledger,
// buildings, log, amount selection and pending purchase runs.
// It is not safe for concurrent use; one goroutine must own it.
type Sim struct {
	Catalog   *world.Catalog
	Grid      *world.Grid
	Ledger    *Ledger
	Shelters  Shelters
	Schools   Schools
	Log       *EventLog
	Selection Selection
	Sched     *Scheduler
	Policy    Policy
	Ticks     uint64

	rng     *rand.Rand
	now     func() time.Time
	logger  *zap.Logger
	metrics *Metrics
	surface Surface
}

// Option configures a Sim.
type Option func(*options)

type options struct {
	seed     uint64
	catalog  *world.Catalog
	logger   *zap.Logger
	metrics  *Metrics
	surface  Surface
	interval uint64
	clock    func() time.Time
}

// WithSeed fixes the random source used for slot and image picks.
func WithSeed(seed uint64) Option { return func(o *options) { o.seed = seed } }

// WithCatalog replaces the embedded catalog.
func WithCatalog(c *world.Catalog) Option { return func(o *options) { o.catalog = c } }

// WithLogger sets the structured logger.
func WithLogger(l *zap.Logger) Option { return func(o *options) { o.logger = l } }

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *Metrics) Option { return func(o *options) { o.metrics = m } }

// WithSurface sets the receiver of visible changes.
func WithSurface(s Surface) Option { return func(o *options) { o.surface = s } }

// WithPlaceInterval sets the ticks between paced placements.
func WithPlaceInterval(ticks uint64) Option { return func(o *options) { o.interval = ticks } }

// WithClock sets the time source used to stamp log entries.
func WithClock(now func() time.Time) Option { return func(o *options) { o.clock = now } }

// NewSim creates an empty simulation.
func NewSim(opts ...Option) *Sim {
	o := options{
		seed:     uint64(time.Now().UnixNano()),
		logger:   zap.NewNop(),
		surface:  NopSurface{},
		interval: DefaultPlaceInterval,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.catalog == nil {
		o.catalog = world.DefaultCatalog()
	}

	return &Sim{
		Catalog:  o.catalog,
		Grid:     world.NewGrid(),
		Ledger:   NewLedger(o.catalog),
		Shelters: Shelters{Capacity: o.catalog.Animal.ShelterCapacity},
		Schools: Schools{
			MaxStage:        o.catalog.Education.MaxStage(),
			StudentCapacity: o.catalog.Education.StudentCapacity,
		},
		Log:     NewEventLog(),
		Sched:   NewScheduler(o.interval),
		Policy:  DefaultPolicy(),
		rng:     rand.New(rand.NewPCG(o.seed, o.seed>>16|7)),
		now:     o.clock,
		logger:  o.logger,
		metrics: o.metrics,
		surface: o.surface,
	}
}

// SetSurface swaps the receiver of visible changes.
func (s *Sim) SetSurface(sf Surface) {
	if sf == nil {
		sf = NopSurface{}
	}
	s.surface = sf
}

// Donate records a donation and schedules the placements it can now afford.
// Nothing is mutated when amount <= 0.
func (s *Sim) Donate(c world.Category, amount int) error {
	if !validCategory(c) {
		return fmt.Errorf("%w: %d", ErrUnknownCategory, c)
	}
	if amount <= 0 {
		return ErrNoAmount
	}

	if !s.Ledger.RecordDonation(c, amount) {
		return fmt.Errorf("%w: %s", ErrAmountTooLarge, FormatDollars(amount))
	}
	s.metrics.donation(c, amount)
	s.pushTotals(c)

	n := s.Ledger.AffordableUnplaced(c)
	s.logger.Debug("donation recorded",
		zap.Stringer("category", c),
		zap.Int("amount", amount),
		zap.Int("affordable", n))
	if n == 0 {
		return nil
	}
	// Pending is replaced, not added to: n already counts items owed by a
	// run still in progress.
	s.Sched.Schedule(c, n, s.Ticks)
	s.metrics.setPending(c, n)
	return nil
}

// DonateSelected donates the currently selected amount.
func (s *Sim) DonateSelected(c world.Category) error {
	return s.Donate(c, s.Selection.Amount())
}

// Tick advances the simulation one step and runs any due placements.
func (s *Sim) Tick() {
	s.Ticks++
	for _, c := range s.Sched.Due(s.Ticks) {
		if s.Place(c) {
			s.Ledger.RecordPurchase(c)
			s.Sched.Consume(c)
			s.pushTotals(c)
		} else {
			s.Sched.Cancel(c)
			s.metrics.stalled(c)
			s.logger.Debug("no empty slot or valid action, purchase run stopped",
				zap.Stringer("category", c),
				zap.Int("occupied", s.Grid.Occupied()))
		}
		s.metrics.setPending(c, s.Sched.Pending(c))
	}
}

// Place applies exactly one placement for a category and reports whether
// anything changed. It does not touch the ledger.
func (s *Sim) Place(c world.Category) bool {
	rule, ok := s.Policy.Decide(s, c)
	if !ok {
		return false
	}
	if !rule.Do(s) {
		return false
	}
	s.metrics.placed(c, rule.Name)
	return true
}

// Reset clears the grid, accounts, buildings, log and selection, and cancels
// every pending purchase run.
func (s *Sim) Reset() {
	s.Grid.ClearAll()
	s.Log.Clear()
	s.Ledger.Reset()
	s.Shelters.Clear()
	s.Schools.Clear()
	s.Selection.Clear()
	s.Sched.CancelAll()
	s.metrics.reset()

	s.surface.Cleared()
	for _, c := range world.Categories {
		s.pushTotals(c)
	}
	s.logger.Info("simulation has been reset")
}

func (s *Sim) pushTotals(c world.Category) {
	s.surface.Totals(c, s.Ledger.DonatedDisplay(c), s.Ledger.SpentDisplay(c))
}

func (s *Sim) setSlot(i int, slot world.Slot) {
	s.Grid.Occupy(i, slot)
	s.surface.SlotChanged(i, slot)
}

func (s *Sim) narrate(c world.Category, text string) {
	e := s.Log.Add(s.now(), c, text)
	s.surface.Logged(e)
}

// randomEmpty picks a uniformly random empty slot.
func (s *Sim) randomEmpty() (int, bool) {
	empty := s.Grid.EmptySlots()
	if len(empty) == 0 {
		return 0, false
	}
	return empty[s.rng.IntN(len(empty))], true
}

// pick returns a uniformly random element of a non-empty image list.
func (s *Sim) pick(files []string) string {
	return files[s.rng.IntN(len(files))]
}
