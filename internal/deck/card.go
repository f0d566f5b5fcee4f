package deck

import "fmt"

// Kind identifies which of the three card pools a card belongs to
type Kind int

const (
	KindNumber Kind = iota
	KindModifier
	KindAction
)

// String returns the string representation of a kind
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindModifier:
		return "modifier"
	case KindAction:
		return "action"
	default:
		return "?"
	}
}

// Number card values run from MinNumber to MaxNumber inclusive
const (
	MinNumber = 0
	MaxNumber = 12
)

// ValidNumber returns true if v is a legal number card value
func ValidNumber(v int) bool {
	return v >= MinNumber && v <= MaxNumber
}

// Modifier represents a modifier card. Additive modifiers carry their face
// value (Modifier(2) through Modifier(10)); the x2 multiplier is the
// MultiplierX2 sentinel.
type Modifier int

// MultiplierX2 doubles the base number sum instead of adding points
const MultiplierX2 Modifier = -1

// Additive modifier bonuses run from MinBonus to MaxBonus inclusive
const (
	MinBonus = 2
	MaxBonus = 10
)

// IsMultiplier returns true for the x2 multiplier card
func (m Modifier) IsMultiplier() bool {
	return m == MultiplierX2
}

// Bonus returns the additive point value of the modifier (0 for x2)
func (m Modifier) Bonus() int {
	if m.IsMultiplier() {
		return 0
	}
	return int(m)
}

// Valid returns true if the modifier is x2 or an additive bonus in range
func (m Modifier) Valid() bool {
	return m == MultiplierX2 || (m >= MinBonus && m <= MaxBonus)
}

// String returns the string representation of a modifier (e.g., "+5" or "x2")
func (m Modifier) String() string {
	if m.IsMultiplier() {
		return "x2"
	}
	return fmt.Sprintf("+%d", int(m))
}

// Action represents an action card
type Action int

const (
	Freeze Action = iota
	FlipThree
	SecondChance
)

// Valid returns true if the action is one of the three known action cards
func (a Action) Valid() bool {
	return a >= Freeze && a <= SecondChance
}

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case Freeze:
		return "Freeze"
	case FlipThree:
		return "Flip Three"
	case SecondChance:
		return "Second Chance"
	default:
		return "?"
	}
}
