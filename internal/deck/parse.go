package deck

import (
	"fmt"
	"strconv"
	"strings"
)

// Card is a tagged union over the three pools, used where callers deal in
// "some card" rather than a specific pool (parsing, wire commands).
type Card struct {
	Kind     Kind
	Number   int
	Modifier Modifier
	Action   Action
}

// NumberCard builds a number card value
func NumberCard(v int) Card {
	return Card{Kind: KindNumber, Number: v}
}

// ModifierCard builds a modifier card value
func ModifierCard(m Modifier) Card {
	return Card{Kind: KindModifier, Modifier: m}
}

// ActionCard builds an action card value
func ActionCard(a Action) Card {
	return Card{Kind: KindAction, Action: a}
}

// String returns the user-facing token for the card
func (c Card) String() string {
	switch c.Kind {
	case KindNumber:
		return strconv.Itoa(c.Number)
	case KindModifier:
		return c.Modifier.String()
	case KindAction:
		return c.Action.String()
	default:
		return "?"
	}
}

// ParseCard parses a user-facing card token: "7", "+5", "x2", "sc",
// "freeze", "flip3"
func ParseCard(s string) (Card, error) {
	token := strings.ToLower(strings.TrimSpace(s))

	switch token {
	case "x2":
		return ModifierCard(MultiplierX2), nil
	case "sc", "secondchance", "second chance", "second_chance":
		return ActionCard(SecondChance), nil
	case "freeze":
		return ActionCard(Freeze), nil
	case "flip3", "flip-three", "flip three":
		return ActionCard(FlipThree), nil
	}

	if bonus, ok := strings.CutPrefix(token, "+"); ok {
		v, err := strconv.Atoi(bonus)
		if err != nil || !Modifier(v).Valid() || Modifier(v).IsMultiplier() {
			return Card{}, fmt.Errorf("modifier %q: %w", s, ErrInvalidCard)
		}
		return ModifierCard(Modifier(v)), nil
	}

	if v, err := strconv.Atoi(token); err == nil {
		if !ValidNumber(v) {
			return Card{}, fmt.Errorf("number %q: %w", s, ErrInvalidCard)
		}
		return NumberCard(v), nil
	}

	return Card{}, fmt.Errorf("card %q: %w", s, ErrInvalidCard)
}

// Consume removes one copy of the card from the deck
func (t *Tracker) Consume(c Card) error {
	switch c.Kind {
	case KindNumber:
		return t.ConsumeNumber(c.Number)
	case KindModifier:
		return t.ConsumeModifier(c.Modifier)
	case KindAction:
		return t.ConsumeAction(c.Action)
	default:
		return fmt.Errorf("kind %d: %w", int(c.Kind), ErrInvalidCard)
	}
}

// Remaining returns how many copies of the card remain
func (t *Tracker) Remaining(c Card) int {
	switch c.Kind {
	case KindNumber:
		return t.RemainingNumber(c.Number)
	case KindModifier:
		return t.RemainingModifier(c.Modifier)
	case KindAction:
		return t.RemainingAction(c.Action)
	default:
		return 0
	}
}
