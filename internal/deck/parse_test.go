package deck

import (
	"errors"
	"testing"
)

func TestParseCard(t *testing.T) {
	tests := []struct {
		input    string
		expected Card
		hasError bool
	}{
		{input: "7", expected: NumberCard(7)},
		{input: "0", expected: NumberCard(0)},
		{input: "12", expected: NumberCard(12)},
		{input: "+5", expected: ModifierCard(Modifier(5))},
		{input: "+10", expected: ModifierCard(Modifier(10))},
		{input: "x2", expected: ModifierCard(MultiplierX2)},
		{input: "X2", expected: ModifierCard(MultiplierX2)},
		{input: "sc", expected: ActionCard(SecondChance)},
		{input: "second chance", expected: ActionCard(SecondChance)},
		{input: "freeze", expected: ActionCard(Freeze)},
		{input: "flip3", expected: ActionCard(FlipThree)},
		{input: "flip three", expected: ActionCard(FlipThree)},
		{input: " 9 ", expected: NumberCard(9)},
		{input: "13", hasError: true},
		{input: "-1", hasError: true},
		{input: "+1", hasError: true},
		{input: "+11", hasError: true},
		{input: "+x", hasError: true},
		{input: "banana", hasError: true},
		{input: "", hasError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			card, err := ParseCard(tt.input)

			if tt.hasError {
				if !errors.Is(err, ErrInvalidCard) {
					t.Errorf("ParseCard(%q) error = %v, want ErrInvalidCard", tt.input, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseCard(%q) returned error: %v", tt.input, err)
			}
			if card != tt.expected {
				t.Errorf("ParseCard(%q) = %+v, want %+v", tt.input, card, tt.expected)
			}
		})
	}
}

func TestCardString(t *testing.T) {
	tests := []struct {
		card     Card
		expected string
	}{
		{NumberCard(7), "7"},
		{ModifierCard(Modifier(5)), "+5"},
		{ModifierCard(MultiplierX2), "x2"},
		{ActionCard(Freeze), "Freeze"},
	}

	for _, tt := range tests {
		if got := tt.card.String(); got != tt.expected {
			t.Errorf("Card.String() = %q, want %q", got, tt.expected)
		}
	}
}

func TestTrackerConsumeCard(t *testing.T) {
	tracker := NewTracker()

	for _, token := range []string{"7", "+5", "x2", "sc"} {
		card, err := ParseCard(token)
		if err != nil {
			t.Fatalf("ParseCard(%q) returned error: %v", token, err)
		}
		if err := tracker.Consume(card); err != nil {
			t.Errorf("Consume(%s) returned error: %v", card, err)
		}
	}

	if got := tracker.TotalRemaining(); got != InitialSize-4 {
		t.Errorf("TotalRemaining() = %d, want %d", got, InitialSize-4)
	}
	if got := tracker.Remaining(NumberCard(7)); got != 6 {
		t.Errorf("Remaining(7) = %d, want 6", got)
	}
	if got := tracker.Remaining(ModifierCard(Modifier(5))); got != 0 {
		t.Errorf("Remaining(+5) = %d, want 0", got)
	}
}
