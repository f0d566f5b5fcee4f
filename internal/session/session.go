// Package session ties one deck tracker, one hand and one advisor together
// into an isolated analysis session. Shells (TUI, websocket service) own a
// session each; sessions share nothing.
package session

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/flip7/internal/advisor"
	"github.com/lox/flip7/internal/deck"
	"github.com/lox/flip7/internal/hand"
)

var (
	// ErrInvalidNumber is returned for number values outside 0-12
	ErrInvalidNumber = errors.New("number cards run 0-12")

	// ErrInvalidModifier is returned for additive modifiers outside +2..+10
	ErrInvalidModifier = errors.New("modifier cards run +2 to +10")

	// ErrWouldBust is returned when drawing a number already held. The
	// caller must confirm the bust explicitly via ConfirmBust.
	ErrWouldBust = errors.New("drawing this number would bust")

	// ErrRoundOver is returned for draws after a bust or a seven-card win
	ErrRoundOver = errors.New("round is over, reset to continue")

	// ErrEmptyHand is returned when asking for advice before any card is drawn
	ErrEmptyHand = errors.New("no cards in hand yet")
)

// Status is a read-only snapshot of the session for rendering
type Status struct {
	Numbers         []int       `json:"numbers"`
	CardCount       int         `json:"card_count"`
	BaseScore       int         `json:"base_score"`
	TotalScore      int         `json:"total_score"`
	Modifiers       []int       `json:"modifiers"`
	HasMultiplier   bool        `json:"has_multiplier"`
	HasSecondChance bool        `json:"has_second_chance"`
	Busted          bool        `json:"busted"`
	SevenCardWin    bool        `json:"seven_card_win"`
	CardsRemaining  int         `json:"cards_remaining"`
	BustProbability float64     `json:"bust_probability"`
	SafeCards       map[int]int `json:"safe_cards"`
}

// Session holds the mutable state for one player's round analysis
type Session struct {
	deck    *deck.Tracker
	hand    *hand.Hand
	advisor *advisor.Advisor
	logger  *log.Logger
	busted  bool
}

// New creates a session with a full deck, an empty hand and the given
// strategy constants
func New(logger *log.Logger, strategy advisor.Strategy) *Session {
	d := deck.NewTracker()
	h := hand.New()
	return &Session{
		deck:    d,
		hand:    h,
		advisor: advisor.NewWithStrategy(d, h, strategy),
		logger:  logger.WithPrefix("session"),
	}
}

// WouldBust reports whether drawing number v would duplicate a held card
func (s *Session) WouldBust(v int) bool {
	return s.hand.Contains(v)
}

// DrawNumber records the player drawing number card v. Drawing a held value
// is rejected with ErrWouldBust; the caller confirms via ConfirmBust. When
// the tracker has no copies left the hand is still updated (the card is on
// the table regardless) and the returned error wraps deck.ErrExhausted as
// an advisory warning.
func (s *Session) DrawNumber(v int) error {
	if s.roundOver() {
		return ErrRoundOver
	}
	if !deck.ValidNumber(v) {
		return fmt.Errorf("%d: %w", v, ErrInvalidNumber)
	}
	if s.hand.Contains(v) {
		return fmt.Errorf("%d: %w", v, ErrWouldBust)
	}

	err := s.deck.ConsumeNumber(v)
	if err != nil {
		s.logger.Warn("deck tracker out of sync", "card", v, "error", err)
	}
	s.hand.AddNumber(v)
	s.logger.Debug("drew number", "value", v, "cards", s.hand.CardCount(), "score", s.hand.TotalScore())
	return err
}

// ConfirmBust records an intentional bust on number v after the caller has
// confirmed it. The duplicate still depletes the deck; the round score
// becomes zero until Reset.
func (s *Session) ConfirmBust(v int) error {
	if s.roundOver() {
		return ErrRoundOver
	}
	if !deck.ValidNumber(v) {
		return fmt.Errorf("%d: %w", v, ErrInvalidNumber)
	}
	if !s.hand.Contains(v) {
		return fmt.Errorf("%d is not held: %w", v, ErrInvalidNumber)
	}

	err := s.deck.ConsumeNumber(v)
	if err != nil {
		s.logger.Warn("deck tracker out of sync", "card", v, "error", err)
	}
	s.busted = true
	s.logger.Info("bust confirmed", "value", v)
	return err
}

// DrawModifier records drawing an additive modifier card (+2..+10)
func (s *Session) DrawModifier(bonus int) error {
	if s.roundOver() {
		return ErrRoundOver
	}
	m := deck.Modifier(bonus)
	if m.IsMultiplier() || !m.Valid() {
		return fmt.Errorf("+%d: %w", bonus, ErrInvalidModifier)
	}

	err := s.deck.ConsumeModifier(m)
	if err != nil {
		s.logger.Warn("deck tracker out of sync", "card", m.String(), "error", err)
	}
	s.hand.AddModifier(m)
	return err
}

// DrawMultiplier records drawing the x2 multiplier card
func (s *Session) DrawMultiplier() error {
	if s.roundOver() {
		return ErrRoundOver
	}
	err := s.deck.ConsumeModifier(deck.MultiplierX2)
	if err != nil {
		s.logger.Warn("deck tracker out of sync", "card", "x2", "error", err)
	}
	s.hand.AddModifier(deck.MultiplierX2)
	return err
}

// DrawSecondChance records drawing a Second Chance card
func (s *Session) DrawSecondChance() error {
	if s.roundOver() {
		return ErrRoundOver
	}
	err := s.deck.ConsumeAction(deck.SecondChance)
	if err != nil {
		s.logger.Warn("deck tracker out of sync", "card", "second chance", "error", err)
	}
	s.hand.AddSecondChance()
	return err
}

// DrawAction records drawing a Freeze or Flip Three card. These only matter
// as deck depletion; they never change the hand. Second Chance goes through
// DrawSecondChance instead.
func (s *Session) DrawAction(a deck.Action) error {
	if s.roundOver() {
		return ErrRoundOver
	}
	if a == deck.SecondChance {
		return s.DrawSecondChance()
	}
	return s.deck.ConsumeAction(a)
}

// Draw dispatches any card the player drew to the matching typed operation
func (s *Session) Draw(c deck.Card) error {
	switch c.Kind {
	case deck.KindNumber:
		return s.DrawNumber(c.Number)
	case deck.KindModifier:
		if c.Modifier.IsMultiplier() {
			return s.DrawMultiplier()
		}
		return s.DrawModifier(c.Modifier.Bonus())
	case deck.KindAction:
		return s.DrawAction(c.Action)
	default:
		return fmt.Errorf("%s: %w", c, deck.ErrInvalidCard)
	}
}

// MarkSeen records a card drawn by another player: deck depletion with no
// effect on this hand
func (s *Session) MarkSeen(c deck.Card) error {
	return s.deck.Consume(c)
}

// Recommend returns the advisor's verdict for the current state
func (s *Session) Recommend() (advisor.Recommendation, error) {
	if s.hand.CardCount() == 0 {
		return advisor.Recommendation{}, ErrEmptyHand
	}
	if s.busted {
		return advisor.Recommendation{}, ErrRoundOver
	}
	return s.advisor.Recommend(), nil
}

// ExpectedValue exposes the advisor's one-ply EV model
func (s *Session) ExpectedValue() (float64, advisor.Diagnostics) {
	return s.advisor.ExpectedValue()
}

// Busted returns true once an intentional bust has been confirmed
func (s *Session) Busted() bool {
	return s.busted
}

// SevenCardWin returns true when seven unique numbers are held
func (s *Session) SevenCardWin() bool {
	return s.hand.CardCount() == hand.MaxUniqueNumbers
}

// Status returns a snapshot for rendering
func (s *Session) Status() Status {
	return Status{
		Numbers:         s.hand.Numbers(),
		CardCount:       s.hand.CardCount(),
		BaseScore:       s.hand.BaseScore(),
		TotalScore:      s.hand.TotalScore(),
		Modifiers:       s.hand.Modifiers(),
		HasMultiplier:   s.hand.HasMultiplier(),
		HasSecondChance: s.hand.HasSecondChance(),
		Busted:          s.busted,
		SevenCardWin:    s.SevenCardWin(),
		CardsRemaining:  s.deck.TotalRemaining(),
		BustProbability: s.advisor.BustProbability(),
		SafeCards:       s.advisor.SafeCards(),
	}
}

// Reset restores the deck to its full composition and clears the hand,
// starting a new round
func (s *Session) Reset() {
	s.deck.Reset()
	s.hand.Reset()
	s.busted = false
	s.logger.Debug("session reset")
}

func (s *Session) roundOver() bool {
	return s.busted || s.SevenCardWin()
}
