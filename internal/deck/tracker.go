package deck

import (
	"errors"
	"fmt"
)

// InitialSize is the number of cards in a fresh Flip 7 deck
// (79 numbers + 11 modifiers + 6 actions)
const InitialSize = 96

var (
	// ErrExhausted is returned when consuming a card with no copies remaining
	ErrExhausted = errors.New("no copies remaining in deck")

	// ErrInvalidCard is returned for values outside the deck's composition
	ErrInvalidCard = errors.New("invalid card")
)

// Tracker tracks the remaining composition of a depleting Flip 7 deck.
// It never goes negative: consuming an exhausted card is rejected and
// leaves the tracker unchanged.
type Tracker struct {
	numbers   map[int]int
	modifiers map[Modifier]int
	actions   map[Action]int
}

// NewTracker creates a tracker holding a full deck
func NewTracker() *Tracker {
	t := &Tracker{}
	t.Reset()
	return t
}

// Reset restores the tracker to the full initial composition
func (t *Tracker) Reset() {
	// Pyramid distribution: one 0, one 1, then n copies of n
	t.numbers = map[int]int{0: 1, 1: 1}
	for n := 2; n <= MaxNumber; n++ {
		t.numbers[n] = n
	}

	t.modifiers = map[Modifier]int{MultiplierX2: 2}
	for b := MinBonus; b <= MaxBonus; b++ {
		t.modifiers[Modifier(b)] = 1
	}

	t.actions = map[Action]int{
		Freeze:       2,
		FlipThree:    2,
		SecondChance: 2,
	}
}

// RemainingNumber returns how many copies of number v remain
func (t *Tracker) RemainingNumber(v int) int {
	return t.numbers[v]
}

// RemainingModifier returns how many copies of modifier m remain
func (t *Tracker) RemainingModifier(m Modifier) int {
	return t.modifiers[m]
}

// RemainingAction returns how many copies of action a remain
func (t *Tracker) RemainingAction(a Action) int {
	return t.actions[a]
}

// NumberTotal returns the number of number cards remaining
func (t *Tracker) NumberTotal() int {
	total := 0
	for _, count := range t.numbers {
		total += count
	}
	return total
}

// ModifierTotal returns the number of modifier cards remaining
func (t *Tracker) ModifierTotal() int {
	total := 0
	for _, count := range t.modifiers {
		total += count
	}
	return total
}

// ActionTotal returns the number of action cards remaining
func (t *Tracker) ActionTotal() int {
	total := 0
	for _, count := range t.actions {
		total += count
	}
	return total
}

// TotalRemaining returns the total cards remaining across all three pools
func (t *Tracker) TotalRemaining() int {
	return t.NumberTotal() + t.ModifierTotal() + t.ActionTotal()
}

// ConsumeNumber removes one copy of number v from the deck
func (t *Tracker) ConsumeNumber(v int) error {
	if !ValidNumber(v) {
		return fmt.Errorf("number %d: %w", v, ErrInvalidCard)
	}
	if t.numbers[v] == 0 {
		return fmt.Errorf("number %d: %w", v, ErrExhausted)
	}
	t.numbers[v]--
	return nil
}

// ConsumeModifier removes one copy of modifier m from the deck
func (t *Tracker) ConsumeModifier(m Modifier) error {
	if !m.Valid() {
		return fmt.Errorf("modifier %s: %w", m, ErrInvalidCard)
	}
	if t.modifiers[m] == 0 {
		return fmt.Errorf("modifier %s: %w", m, ErrExhausted)
	}
	t.modifiers[m]--
	return nil
}

// ConsumeAction removes one copy of action a from the deck
func (t *Tracker) ConsumeAction(a Action) error {
	if !a.Valid() {
		return fmt.Errorf("action %s: %w", a, ErrInvalidCard)
	}
	if t.actions[a] == 0 {
		return fmt.Errorf("action %s: %w", a, ErrExhausted)
	}
	t.actions[a]--
	return nil
}
