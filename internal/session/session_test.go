package session

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/flip7/internal/advisor"
	"github.com/lox/flip7/internal/deck"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	logger := log.New(io.Discard)
	return New(logger, advisor.DefaultStrategy())
}

func TestDrawNumber(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.DrawNumber(7))

	status := s.Status()
	assert.Equal(t, []int{7}, status.Numbers)
	assert.Equal(t, 7, status.TotalScore)
	assert.Equal(t, deck.InitialSize-1, status.CardsRemaining)
}

func TestDrawNumberValidation(t *testing.T) {
	s := newTestSession(t)

	assert.ErrorIs(t, s.DrawNumber(-1), ErrInvalidNumber)
	assert.ErrorIs(t, s.DrawNumber(13), ErrInvalidNumber)

	// Rejected input leaves state untouched
	status := s.Status()
	assert.Equal(t, 0, status.CardCount)
	assert.Equal(t, deck.InitialSize, status.CardsRemaining)
}

func TestBustConfirmationFlow(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.DrawNumber(4))

	// A duplicate is a decision point, not a mutation
	assert.False(t, s.WouldBust(5))
	assert.True(t, s.WouldBust(4))
	assert.ErrorIs(t, s.DrawNumber(4), ErrWouldBust)
	assert.False(t, s.Busted())
	assert.Equal(t, 1, s.Status().CardCount)

	// Confirming applies the bust: the duplicate depletes the deck and the
	// round is over
	require.NoError(t, s.ConfirmBust(4))
	assert.True(t, s.Busted())
	assert.ErrorIs(t, s.DrawNumber(6), ErrRoundOver)

	_, err := s.Recommend()
	assert.ErrorIs(t, err, ErrRoundOver)
}

func TestConfirmBustRequiresHeldNumber(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.DrawNumber(4))
	assert.ErrorIs(t, s.ConfirmBust(9), ErrInvalidNumber)
	assert.False(t, s.Busted())
}

func TestConfirmBustAfterSevenCardWin(t *testing.T) {
	s := newTestSession(t)

	for v := 0; v <= 6; v++ {
		require.NoError(t, s.DrawNumber(v))
	}
	require.True(t, s.SevenCardWin())

	// The round is already won; confirming a bust on a held number must not
	// flip it into a loss
	assert.ErrorIs(t, s.ConfirmBust(3), ErrRoundOver)
	assert.False(t, s.Busted())
	assert.True(t, s.Status().SevenCardWin)
}

func TestDrawModifiers(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.DrawNumber(3))
	require.NoError(t, s.DrawNumber(4))
	require.NoError(t, s.DrawMultiplier())
	require.NoError(t, s.DrawModifier(2))

	status := s.Status()
	assert.Equal(t, 7, status.BaseScore)
	assert.Equal(t, 16, status.TotalScore) // (3+4)*2 + 2
	assert.True(t, status.HasMultiplier)
	assert.Equal(t, []int{2}, status.Modifiers)

	assert.ErrorIs(t, s.DrawModifier(1), ErrInvalidModifier)
	assert.ErrorIs(t, s.DrawModifier(11), ErrInvalidModifier)
}

func TestDrawSecondChance(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.DrawSecondChance())

	status := s.Status()
	assert.True(t, status.HasSecondChance)
	assert.Equal(t, deck.InitialSize-1, status.CardsRemaining)
}

func TestDrawActionDepletionOnly(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.DrawAction(deck.Freeze))
	require.NoError(t, s.DrawAction(deck.FlipThree))

	status := s.Status()
	assert.Equal(t, 0, status.CardCount)
	assert.Equal(t, 0, status.TotalScore)
	assert.Equal(t, deck.InitialSize-2, status.CardsRemaining)
}

func TestDrawDispatch(t *testing.T) {
	s := newTestSession(t)

	for _, token := range []string{"7", "+3", "x2", "sc", "freeze"} {
		card, err := deck.ParseCard(token)
		require.NoError(t, err)
		require.NoError(t, s.Draw(card))
	}

	status := s.Status()
	assert.Equal(t, 1, status.CardCount)
	assert.True(t, status.HasMultiplier)
	assert.True(t, status.HasSecondChance)
	assert.Equal(t, 17, status.TotalScore) // 7*2 + 3
	assert.Equal(t, deck.InitialSize-5, status.CardsRemaining)
}

func TestMarkSeen(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.DrawNumber(5))

	// Another player draws a 5: our bust odds drop, our hand is untouched
	before := s.Status().BustProbability
	require.NoError(t, s.MarkSeen(deck.NumberCard(5)))
	after := s.Status().BustProbability

	assert.Less(t, after, before)
	assert.Equal(t, 1, s.Status().CardCount)

	require.NoError(t, s.MarkSeen(deck.ModifierCard(deck.MultiplierX2)))
	require.NoError(t, s.MarkSeen(deck.ActionCard(deck.Freeze)))

	status := s.Status()
	assert.False(t, status.HasMultiplier)
	assert.Equal(t, deck.InitialSize-4, status.CardsRemaining)
}

func TestExhaustedDeckIsAdvisory(t *testing.T) {
	s := newTestSession(t)

	// Both copies of the x2 leave the tracker
	require.NoError(t, s.MarkSeen(deck.ModifierCard(deck.MultiplierX2)))
	require.NoError(t, s.MarkSeen(deck.ModifierCard(deck.MultiplierX2)))

	// A third sighting of the card still lands in the hand; the error is a
	// warning that the tracker disagrees with the table
	err := s.DrawMultiplier()
	assert.ErrorIs(t, err, deck.ErrExhausted)
	assert.True(t, s.Status().HasMultiplier)

	// The tracker did not go negative
	assert.Equal(t, deck.InitialSize-2, s.Status().CardsRemaining)
}

func TestRecommendEmptyHand(t *testing.T) {
	s := newTestSession(t)

	_, err := s.Recommend()
	assert.ErrorIs(t, err, ErrEmptyHand)

	require.NoError(t, s.DrawNumber(5))
	rec, err := s.Recommend()
	require.NoError(t, err)
	assert.NotEmpty(t, rec.Reason)
}

func TestSevenCardWin(t *testing.T) {
	s := newTestSession(t)

	for _, v := range []int{0, 1, 2, 3, 4, 5} {
		require.NoError(t, s.DrawNumber(v))
	}
	assert.False(t, s.SevenCardWin())

	require.NoError(t, s.DrawNumber(6))
	assert.True(t, s.SevenCardWin())
	assert.True(t, s.Status().SevenCardWin)

	// Round is over: further draws are rejected
	assert.ErrorIs(t, s.DrawNumber(7), ErrRoundOver)

	// The engine exposes the raw score; the +15 bonus is composed by callers
	assert.Equal(t, 21, s.Status().TotalScore)
}

func TestReset(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.DrawNumber(5))
	require.NoError(t, s.DrawNumber(8))
	require.NoError(t, s.ConfirmBust(5))
	require.True(t, s.Busted())

	s.Reset()

	status := s.Status()
	assert.False(t, status.Busted)
	assert.Equal(t, 0, status.CardCount)
	assert.Equal(t, deck.InitialSize, status.CardsRemaining)

	require.NoError(t, s.DrawNumber(5))
}

func TestSessionsAreIsolated(t *testing.T) {
	a := newTestSession(t)
	b := newTestSession(t)

	require.NoError(t, a.DrawNumber(12))

	assert.Equal(t, deck.InitialSize-1, a.Status().CardsRemaining)
	assert.Equal(t, deck.InitialSize, b.Status().CardsRemaining)
	assert.Equal(t, 0, b.Status().CardCount)
}

func TestStatusSafeCards(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.DrawNumber(3))

	status := s.Status()
	_, held := status.SafeCards[3]
	assert.False(t, held, "held numbers are not safe")
	assert.Equal(t, 12, status.SafeCards[12])
	assert.InDelta(t, 2.0/95.0, status.BustProbability, 1e-9)
}

func TestErrorsAreNonFatal(t *testing.T) {
	s := newTestSession(t)

	// A burst of rejected inputs must leave the session usable
	_ = s.DrawNumber(99)
	_ = s.DrawModifier(0)
	_ = s.MarkSeen(deck.NumberCard(-5))
	invalid := s.MarkSeen(deck.ModifierCard(deck.Modifier(1)))
	assert.ErrorIs(t, invalid, deck.ErrInvalidCard)

	require.NoError(t, s.DrawNumber(6))
	rec, err := s.Recommend()
	require.NoError(t, err)
	assert.NotEmpty(t, rec.Reason)
}
