package game

import (
	"math"

	"github.com/dustin/go-humanize"
	"github.com/impactgrid/impactgrid/internal/world"
)

// Account tracks one charity's money.
// Spent == ItemsBought*ItemCost and Spent <= Donated hold after every mutation.
type Account struct {
	Donated     int
	Spent       int
	ItemsBought int
	ItemCost    int
}

// Unspent returns donated money not yet turned into placements.
func (a *Account) Unspent() int { return a.Donated - a.Spent }

// Ledger holds one Account per category.
type Ledger struct {
	accounts [world.CategoryCount]Account
}

// NewLedger creates zeroed accounts priced from the catalog.
func NewLedger(cat *world.Catalog) *Ledger {
	l := &Ledger{}
	for _, c := range world.Categories {
		l.accounts[c].ItemCost = cat.ItemCost(c)
	}
	return l
}

// Account returns a copy of a category's account.
func (l *Ledger) Account(c world.Category) Account {
	if c >= world.CategoryCount {
		return Account{}
	}
	return l.accounts[c]
}

// RecordDonation adds amount to the category's donated total and reports
// whether it was recorded. Non-positive amounts and amounts above Headroom
// are ignored.
func (l *Ledger) RecordDonation(c world.Category, amount int) bool {
	if amount <= 0 || amount > l.Headroom(c) {
		return false
	}
	l.accounts[c].Donated += amount
	return true
}

// Headroom returns the largest donation the category's total can still take.
func (l *Ledger) Headroom(c world.Category) int {
	if !validCategory(c) {
		return 0
	}
	return math.MaxInt - l.accounts[c].Donated
}

// AffordableUnplaced returns how many items the unspent balance can still buy.
func (l *Ledger) AffordableUnplaced(c world.Category) int {
	if !validCategory(c) {
		return 0
	}
	a := &l.accounts[c]
	if a.ItemCost <= 0 {
		return 0
	}
	return a.Unspent() / a.ItemCost
}

// RecordPurchase books one placed item.
func (l *Ledger) RecordPurchase(c world.Category) {
	if !validCategory(c) {
		return
	}
	a := &l.accounts[c]
	a.ItemsBought++
	a.Spent = a.ItemsBought * a.ItemCost
}

// Reset zeroes every account, keeping item costs.
func (l *Ledger) Reset() {
	for _, c := range world.Categories {
		cost := l.accounts[c].ItemCost
		l.accounts[c] = Account{ItemCost: cost}
	}
}

// DonatedDisplay returns the donated total as shown to the user, e.g. "$1,250".
func (l *Ledger) DonatedDisplay(c world.Category) string {
	return FormatDollars(l.Account(c).Donated)
}

// SpentDisplay returns the spent total as shown to the user.
func (l *Ledger) SpentDisplay(c world.Category) string {
	return FormatDollars(l.Account(c).Spent)
}

// FormatDollars renders a whole-dollar amount with no decimals.
func FormatDollars(n int) string {
	return "$" + humanize.Comma(int64(n))
}

func validCategory(c world.Category) bool {
	return c > world.CategoryNone && c < world.CategoryCount
}
