// Package hand tracks the cards a player has flipped in the current round
// and the score they are worth.
package hand

import (
	"sort"

	"github.com/lox/flip7/internal/deck"
)

const (
	// MaxUniqueNumbers is the hand size that wins the round outright
	MaxUniqueNumbers = 7

	// SevenCardBonus is the flat bonus awarded for flipping seven unique
	// numbers. The engine exposes the raw score; callers compose the bonus.
	SevenCardBonus = 15
)

// Hand represents the visible cards held for the active round. Number cards
// are a set: a duplicate number is a bust, which callers gate before adding.
type Hand struct {
	numbers         map[int]bool
	modifiers       []int // additive bonuses in draw order
	hasSecondChance bool
	hasMultiplier   bool
}

// New creates an empty hand
func New() *Hand {
	return &Hand{numbers: make(map[int]bool)}
}

// AddNumber inserts a number card into the hand. Callers are responsible for
// checking Contains first; adding a duplicate is a no-op on a set.
func (h *Hand) AddNumber(v int) {
	h.numbers[v] = true
}

// Contains returns true if the hand already holds number v
func (h *Hand) Contains(v int) bool {
	return h.numbers[v]
}

// AddModifier adds a modifier card. The x2 multiplier sets a flag; additive
// modifiers accumulate.
func (h *Hand) AddModifier(m deck.Modifier) {
	if m.IsMultiplier() {
		h.hasMultiplier = true
		return
	}
	h.modifiers = append(h.modifiers, m.Bonus())
}

// AddSecondChance marks the hand as holding a Second Chance card
func (h *Hand) AddSecondChance() {
	h.hasSecondChance = true
}

// HasSecondChance returns true if the hand holds a Second Chance card
func (h *Hand) HasSecondChance() bool {
	return h.hasSecondChance
}

// HasMultiplier returns true if the hand holds the x2 multiplier
func (h *Hand) HasMultiplier() bool {
	return h.hasMultiplier
}

// Numbers returns the held number values in ascending order
func (h *Hand) Numbers() []int {
	numbers := make([]int, 0, len(h.numbers))
	for v := range h.numbers {
		numbers = append(numbers, v)
	}
	sort.Ints(numbers)
	return numbers
}

// Modifiers returns the additive modifier bonuses in draw order
func (h *Hand) Modifiers() []int {
	modifiers := make([]int, len(h.modifiers))
	copy(modifiers, h.modifiers)
	return modifiers
}

// BaseScore returns the sum of unique number cards held
func (h *Hand) BaseScore() int {
	sum := 0
	for v := range h.numbers {
		sum += v
	}
	return sum
}

// TotalScore returns the round score: the base sum, doubled if the x2
// multiplier is held, plus all additive modifiers.
func (h *Hand) TotalScore() int {
	base := h.BaseScore()
	if h.hasMultiplier {
		base *= 2
	}
	for _, bonus := range h.modifiers {
		base += bonus
	}
	return base
}

// CardCount returns the count of unique number cards held (0-7)
func (h *Hand) CardCount() int {
	return len(h.numbers)
}

// Reset clears the hand for a new round
func (h *Hand) Reset() {
	h.numbers = make(map[int]bool)
	h.modifiers = nil
	h.hasSecondChance = false
	h.hasMultiplier = false
}
