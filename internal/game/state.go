package game

import "github.com/impactgrid/impactgrid/internal/world"

// State is a read-only copy of everything a front end displays.
type State struct {
	Tick      uint64         `json:"tick"`
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	Accounts  []AccountState `json:"accounts"`
	Slots     []SlotState    `json:"slots"`
	Log       []Entry        `json:"log"`
	Selection int            `json:"selection"`
}

// AccountState is one category's totals and progress.
type AccountState struct {
	Category       string `json:"category"`
	Donated        int    `json:"donated"`
	Spent          int    `json:"spent"`
	ItemsBought    int    `json:"items_bought"`
	ItemCost       int    `json:"item_cost"`
	DonatedDisplay string `json:"donated_display"`
	SpentDisplay   string `json:"spent_display"`
	Pending        int    `json:"pending"`
}

// SlotState is one grid slot as the rendering surface sees it.
type SlotState struct {
	Index    int             `json:"index"`
	Occupant string          `json:"occupant"`
	Category string          `json:"category,omitempty"`
	Stage    int             `json:"stage,omitempty"`
	Image    *world.ImageRef `json:"image,omitempty"`
}

// NewSlotState converts a grid slot for display.
func NewSlotState(i int, sl world.Slot) SlotState {
	st := SlotState{Index: i, Occupant: sl.Occupant.String()}
	if sl.Empty() {
		return st
	}
	img := sl.Image
	st.Category = sl.Category.String()
	st.Stage = sl.Stage
	st.Image = &img
	return st
}

// Snapshot copies the current state.
func (s *Sim) Snapshot() State {
	st := State{
		Tick:      s.Ticks,
		Width:     s.Grid.Width,
		Height:    s.Grid.Height,
		Accounts:  make([]AccountState, 0, len(world.Categories)),
		Slots:     make([]SlotState, 0, s.Grid.Len()),
		Log:       s.Log.All(),
		Selection: s.Selection.Amount(),
	}
	for _, c := range world.Categories {
		st.Accounts = append(st.Accounts, s.AccountState(c))
	}
	for i, sl := range s.Grid.Slots {
		st.Slots = append(st.Slots, NewSlotState(i, sl))
	}
	return st
}

// AccountState returns one category's totals and pending count.
func (s *Sim) AccountState(c world.Category) AccountState {
	a := s.Ledger.Account(c)
	return AccountState{
		Category:       c.String(),
		Donated:        a.Donated,
		Spent:          a.Spent,
		ItemsBought:    a.ItemsBought,
		ItemCost:       a.ItemCost,
		DonatedDisplay: FormatDollars(a.Donated),
		SpentDisplay:   FormatDollars(a.Spent),
		Pending:        s.Sched.Pending(c),
	}
}
