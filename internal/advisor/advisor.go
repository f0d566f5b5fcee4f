// Package advisor implements the hit/stay decision engine: bust probability
// from deck composition, a one-ply expected value model, and a threshold
// ladder that turns them into a recommendation.
package advisor

import (
	"fmt"

	"github.com/lox/flip7/internal/deck"
	"github.com/lox/flip7/internal/hand"
)

// Diagnostics carries the numeric evidence behind an analysis
type Diagnostics struct {
	CurrentScore        int     `json:"current_score"`
	BustProbability     float64 `json:"bust_probability"`
	SafeCardProbability float64 `json:"safe_card_probability"`
	AvgSafeValue        float64 `json:"avg_safe_value"`
	ExpectedValue       float64 `json:"expected_value"`
	CardsInHand         int     `json:"cards_in_hand"`
	HasSecondChance     bool    `json:"has_second_chance"`
	NoCardsRemaining    bool    `json:"no_cards_remaining,omitempty"`
}

// Recommendation is the advisor's verdict for the current state
type Recommendation struct {
	ShouldHit   bool        `json:"should_hit"`
	Reason      string      `json:"reason"`
	Diagnostics Diagnostics `json:"diagnostics"`
}

// Advisor computes recommendations from a deck tracker and a hand. It is a
// pure reader: no method mutates either.
type Advisor struct {
	deck     *deck.Tracker
	hand     *hand.Hand
	strategy Strategy
}

// New creates an advisor with the default strategy
func New(d *deck.Tracker, h *hand.Hand) *Advisor {
	return NewWithStrategy(d, h, DefaultStrategy())
}

// NewWithStrategy creates an advisor with custom strategy constants
func NewWithStrategy(d *deck.Tracker, h *hand.Hand, strategy Strategy) *Advisor {
	return &Advisor{deck: d, hand: h, strategy: strategy}
}

// BustProbability returns the chance the next draw duplicates a held number.
// Only a second copy of an already-held value busts; every other card is
// safe. An empty hand or an empty deck both yield 0.
func (a *Advisor) BustProbability() float64 {
	if a.hand.CardCount() == 0 {
		return 0.0
	}

	total := a.deck.TotalRemaining()
	if total == 0 {
		return 0.0
	}

	duplicates := 0
	for _, v := range a.hand.Numbers() {
		duplicates += a.deck.RemainingNumber(v)
	}

	return float64(duplicates) / float64(total)
}

// SafeCards returns the remaining count of every number value not yet held.
// Values with no copies left are omitted.
func (a *Advisor) SafeCards() map[int]int {
	safe := make(map[int]int)
	for v := deck.MinNumber; v <= deck.MaxNumber; v++ {
		if a.hand.Contains(v) {
			continue
		}
		if count := a.deck.RemainingNumber(v); count > 0 {
			safe[v] = count
		}
	}
	return safe
}

// ExpectedValue computes the one-ply expected score of hitting. It weighs
// the next draw only, with no recursive continuation value. An empty deck
// is a defined degenerate case: EV is the current score.
func (a *Advisor) ExpectedValue() (float64, Diagnostics) {
	currentScore := a.hand.TotalScore()
	diagnostics := Diagnostics{
		CurrentScore:    currentScore,
		CardsInHand:     a.hand.CardCount(),
		HasSecondChance: a.hand.HasSecondChance(),
	}

	total := a.deck.TotalRemaining()
	if total == 0 {
		diagnostics.NoCardsRemaining = true
		diagnostics.ExpectedValue = float64(currentScore)
		return float64(currentScore), diagnostics
	}

	bustProb := a.BustProbability()

	safeCards := a.SafeCards()
	safeCount := 0
	weightedSum := 0
	for v, count := range safeCards {
		safeCount += count
		weightedSum += v * count
	}
	safeProb := float64(safeCount) / float64(total)

	avgSafeValue := 0.0
	if safeCount > 0 {
		avgSafeValue = float64(weightedSum) / float64(safeCount)
	}

	modifierProb := float64(a.deck.ModifierTotal()) / float64(total)
	actionProb := float64(a.deck.ActionTotal()) / float64(total)

	// One draw ahead: a safe number grows the score by its value, a modifier
	// by the fixed average, an action leaves it alone, a bust zeroes it.
	ev := safeProb*(float64(currentScore)+avgSafeValue) +
		modifierProb*(float64(currentScore)+a.strategy.AvgModifierValue) +
		actionProb*float64(currentScore) +
		bustProb*0

	diagnostics.BustProbability = bustProb
	diagnostics.SafeCardProbability = safeProb
	diagnostics.AvgSafeValue = avgSafeValue
	diagnostics.ExpectedValue = ev

	return ev, diagnostics
}

// Recommend returns the hit/stay verdict for the current state. The rules
// are evaluated in strict priority order; the first matching branch wins.
func (a *Advisor) Recommend() Recommendation {
	currentScore := a.hand.TotalScore()
	cardCount := a.hand.CardCount()

	// One card from the seven-card bonus: a dedicated risk/reward tradeoff
	// replaces the EV ladder entirely.
	if cardCount == 6 {
		return a.recommendSixCards(currentScore)
	}

	ev, diagnostics := a.ExpectedValue()
	bustProb := diagnostics.BustProbability

	thresholdAdjustment := 0.0
	if a.hand.HasSecondChance() {
		thresholdAdjustment = a.strategy.SecondChanceSlack
	}

	switch {
	case cardCount <= 2:
		if bustProb < a.strategy.EarlyBustMax {
			return Recommendation{
				ShouldHit:   true,
				Reason:      fmt.Sprintf("early game, low bust risk (%.1f%%)", bustProb*100),
				Diagnostics: diagnostics,
			}
		}
		if currentScore < a.strategy.EarlyScoreMax {
			return Recommendation{
				ShouldHit:   true,
				Reason:      fmt.Sprintf("score too low to stay (%d points)", currentScore),
				Diagnostics: diagnostics,
			}
		}

	case cardCount <= 4:
		if bustProb < a.strategy.MidBustMax && currentScore < a.strategy.MidScoreMax {
			return Recommendation{
				ShouldHit:   true,
				Reason:      fmt.Sprintf("reasonable risk (%.1f%%), score under %d", bustProb*100, a.strategy.MidScoreMax),
				Diagnostics: diagnostics,
			}
		}
		if bustProb < a.strategy.MidLowBustMax {
			return Recommendation{
				ShouldHit:   true,
				Reason:      fmt.Sprintf("low bust risk (%.1f%%)", bustProb*100),
				Diagnostics: diagnostics,
			}
		}

	case cardCount == 5:
		if currentScore < a.strategy.LateScoreMax && bustProb < a.strategy.LateBustMax {
			return Recommendation{
				ShouldHit:   true,
				Reason:      fmt.Sprintf("worth pushing for the 7-card bonus (bust risk %.1f%%)", bustProb*100),
				Diagnostics: diagnostics,
			}
		}
		if bustProb < a.strategy.LateLowBustMax {
			return Recommendation{
				ShouldHit:   true,
				Reason:      fmt.Sprintf("still reasonable risk (%.1f%%)", bustProb*100),
				Diagnostics: diagnostics,
			}
		}
	}

	// Fallback: compare EV against the current score directly
	if ev > float64(currentScore)+thresholdAdjustment {
		return Recommendation{
			ShouldHit:   true,
			Reason:      fmt.Sprintf("positive expected value (EV %.1f vs current %d)", ev, currentScore),
			Diagnostics: diagnostics,
		}
	}
	return Recommendation{
		ShouldHit:   false,
		Reason:      fmt.Sprintf("protect your score (EV %.1f vs current %d)", ev, currentScore),
		Diagnostics: diagnostics,
	}
}

// recommendSixCards handles the six-card special case: the bonus attempt is
// risk-free with Second Chance, otherwise hit when the expected bonus
// outweighs the expected loss.
func (a *Advisor) recommendSixCards(currentScore int) Recommendation {
	_, diagnostics := a.ExpectedValue()
	bustProb := diagnostics.BustProbability

	if a.hand.HasSecondChance() {
		return Recommendation{
			ShouldHit:   true,
			Reason:      "go for the 7-card bonus, Second Chance makes the attempt risk-free",
			Diagnostics: diagnostics,
		}
	}

	expectedBonus := a.strategy.SevenBonusEV * (1 - bustProb)
	expectedLoss := float64(currentScore) * bustProb

	if expectedBonus > expectedLoss {
		return Recommendation{
			ShouldHit:   true,
			Reason:      fmt.Sprintf("go for the 7-card bonus (EV +%.1f)", expectedBonus-expectedLoss),
			Diagnostics: diagnostics,
		}
	}
	return Recommendation{
		ShouldHit:   false,
		Reason:      fmt.Sprintf("bonus risk too high, would risk %d points for %.1f", currentScore, expectedBonus),
		Diagnostics: diagnostics,
	}
}
