package game

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// PresetAmounts are the one-click donation buttons, in dollars.
var PresetAmounts = []int{5, 10, 20, 50}

// Selection is the pending donation amount chosen in the UI. Choosing a
// preset clears the custom text; typing custom text clears the preset.
// Focusing the custom box only moves the highlight.
type Selection struct {
	Preset int    // selected preset button amount, 0 if none
	Custom string // raw custom input
	active bool   // custom input box is highlighted
	typed  bool   // custom text has been entered since the last preset
}

// ChoosePreset selects a preset button.
func (s *Selection) ChoosePreset(amount int) {
	s.Preset = amount
	s.Custom = ""
	s.active = false
	s.typed = false
}

// FocusCustom highlights the custom input box. The amount is unchanged
// until text is entered.
func (s *Selection) FocusCustom() {
	s.active = true
}

// SetCustom replaces the custom input text and selects the box.
func (s *Selection) SetCustom(text string) {
	s.Preset = 0
	s.Custom = text
	s.active = true
	s.typed = true
}

// CustomActive reports whether the custom box is highlighted.
func (s *Selection) CustomActive() bool { return s.active }

// Amount returns the selected amount. Zero or negative means nothing usable
// is selected.
func (s *Selection) Amount() int {
	if s.typed {
		return ParseAmount(s.Custom)
	}
	return s.Preset
}

// Clear drops any selection and custom text.
func (s *Selection) Clear() { *s = Selection{} }

// ParseAmount reads a leading integer from free text: surrounding junk is
// ignored, "12abc" is 12, "3.7" is 3, and text with no leading digits is 0.
// Digits past the int range clamp to math.MaxInt or math.MinInt.
func ParseAmount(text string) int {
	t := strings.TrimLeftFunc(text, unicode.IsSpace)
	sign := ""
	if strings.HasPrefix(t, "-") || strings.HasPrefix(t, "+") {
		sign, t = t[:1], t[1:]
	}
	end := 0
	for end < len(t) && t[end] >= '0' && t[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(sign + t[:end])
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return n
}
