// Package tui implements the interactive terminal shell around a session:
// a command prompt, a scrolling log and a live status sidebar. All game
// logic stays behind the session; this package only parses and renders.
package tui

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/flip7/internal/deck"
	"github.com/lox/flip7/internal/hand"
	"github.com/lox/flip7/internal/session"
)

const sidebarWidth = 28

// Model is the Bubble Tea model for the advisor shell
type Model struct {
	session *session.Session
	logger  *log.Logger

	logViewport viewport.Model
	input       textinput.Model

	lines       []string
	pendingBust *int // number awaiting bust confirmation

	width       int
	height      int
	initialized bool
	quitting    bool
}

// NewModel creates the shell model around an existing session
func NewModel(sess *session.Session, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "number, +5, x2, sc, freeze, flip3, seen <card>, recommend, status, reset"
	ti.Focus()
	ti.CharLimit = 64
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)

	m := &Model{
		session:     sess,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		input:       ti,
	}
	m.appendLines(helpLines()...)
	return m
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewport()
		m.initialized = true

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "enter":
			command := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if command != "" {
				lines, quit := m.handleCommand(command)
				m.appendLines(lines...)
				if quit {
					m.quitting = true
					return m, tea.Sequence(tea.ClearScreen, tea.Quit)
				}
			}
		case "pgup":
			m.logViewport.HalfPageUp()
		case "pgdown":
			m.logViewport.HalfPageDown()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the shell
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.initialized {
		return "Loading..."
	}

	title := TitleStyle.Render(" Flip 7 Strategy Advisor ")

	logPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(m.logWidth()).
		Height(m.logHeight()).
		Render(m.logViewport.View())

	sidebar := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(sidebarWidth).
		Height(m.logHeight()).
		Render(m.renderSidebar())

	main := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebar)

	inputPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#04B575")).
		Width(m.width - 2).
		Render(m.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, title, main, inputPane)
}

func (m *Model) logWidth() int {
	w := m.width - sidebarWidth - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) logHeight() int {
	h := m.height - 7
	if h < 5 {
		h = 5
	}
	return h
}

func (m *Model) resizeViewport() {
	m.logViewport.Width = m.logWidth()
	m.logViewport.Height = m.logHeight()
	m.logViewport.SetContent(LogStyle.Render(strings.Join(m.lines, "\n")))
	m.logViewport.GotoBottom()
}

func (m *Model) appendLines(lines ...string) {
	m.lines = append(m.lines, lines...)
	m.logViewport.SetContent(LogStyle.Render(strings.Join(m.lines, "\n")))
	m.logViewport.GotoBottom()
}

// handleCommand parses one line of input, applies it to the session and
// returns the lines to log plus whether the shell should exit
func (m *Model) handleCommand(input string) ([]string, bool) {
	command := strings.ToLower(strings.TrimSpace(input))

	// A pending bust confirmation consumes the next input
	if m.pendingBust != nil {
		v := *m.pendingBust
		m.pendingBust = nil
		if command == "y" || command == "yes" {
			if err := m.session.ConfirmBust(v); err != nil && !errors.Is(err, deck.ErrExhausted) {
				return []string{WarningStyle.Render(err.Error())}, false
			}
			return []string{
				BustStyle.Render("BUST! You scored 0 points this round."),
				"Type 'reset' to start a new round.",
			}, false
		}
		return []string{fmt.Sprintf("kept your hand, %d not drawn", v)}, false
	}

	switch command {
	case "quit", "q", "exit":
		return nil, true

	case "reset", "shuffle", "new", "restart":
		m.session.Reset()
		return []string{"deck shuffled, starting a new round"}, false

	case "status", "s", "state":
		return m.statusLines(), false

	case "recommend", "r", "rec", "advice":
		return m.recommendationLines(), false

	case "help", "h", "?":
		return helpLines(), false

	case "x2":
		return m.ackDraw(m.session.DrawMultiplier(), "added x2 multiplier"), false

	case "sc", "second chance", "secondchance":
		return m.ackDraw(m.session.DrawSecondChance(), "added Second Chance"), false

	case "freeze":
		return m.ackDraw(m.session.DrawAction(deck.Freeze), "Freeze drawn, removed from deck"), false

	case "flip3", "flip three", "flip-three":
		return m.ackDraw(m.session.DrawAction(deck.FlipThree), "Flip Three drawn, removed from deck"), false
	}

	if arg, ok := strings.CutPrefix(command, "seen "); ok {
		return m.handleSeen(strings.TrimSpace(arg)), false
	}

	if bonus, ok := strings.CutPrefix(command, "+"); ok {
		value, err := strconv.Atoi(bonus)
		if err != nil {
			return []string{WarningStyle.Render("invalid modifier, example: +5")}, false
		}
		return m.ackDraw(m.session.DrawModifier(value), fmt.Sprintf("added modifier +%d", value)), false
	}

	if value, err := strconv.Atoi(command); err == nil {
		return m.handleNumber(value), false
	}

	return []string{WarningStyle.Render(fmt.Sprintf("unknown command %q, type 'help' for commands", input))}, false
}

// handleNumber applies a number draw, routing duplicates into the bust
// confirmation flow
func (m *Model) handleNumber(value int) []string {
	if m.session.WouldBust(value) {
		m.pendingBust = &value
		return []string{
			WarningStyle.Render(fmt.Sprintf("you already have %d, drawing it is a BUST", value)),
			"confirm the bust? (y/n)",
		}
	}

	err := m.session.DrawNumber(value)
	lines := m.ackDraw(err, fmt.Sprintf("added number card %d", value))
	if err != nil && !errors.Is(err, deck.ErrExhausted) {
		return lines
	}

	if m.session.SevenCardWin() {
		final := m.session.Status().TotalScore + hand.SevenCardBonus
		lines = append(lines,
			WinStyle.Render("SEVEN UNIQUE CARDS - INSTANT ROUND WIN!"),
			WinStyle.Render(fmt.Sprintf("final score: %d points (+%d bonus)", final, hand.SevenCardBonus)),
			"Type 'reset' to start a new round.",
		)
	}
	return lines
}

// handleSeen marks a card drawn by another player
func (m *Model) handleSeen(arg string) []string {
	card, err := deck.ParseCard(arg)
	if err != nil {
		return []string{WarningStyle.Render(err.Error())}
	}
	return m.ackDraw(m.session.MarkSeen(card), fmt.Sprintf("marked %s as drawn by another player", card))
}

// ackDraw turns a session mutation result into log lines. Exhausted-deck
// warnings are advisory: the draw is still acknowledged.
func (m *Model) ackDraw(err error, ack string) []string {
	if err == nil {
		return []string{ack}
	}
	if errors.Is(err, deck.ErrExhausted) {
		return []string{
			ack,
			WarningStyle.Render(fmt.Sprintf("warning: %v", err)),
		}
	}
	return []string{WarningStyle.Render(err.Error())}
}

func (m *Model) recommendationLines() []string {
	rec, err := m.session.Recommend()
	if err != nil {
		if errors.Is(err, session.ErrEmptyHand) {
			return []string{WarningStyle.Render("no cards in hand yet, draw some cards first")}
		}
		return []string{WarningStyle.Render(err.Error())}
	}

	action := StayStyle.Render("STAY (keep your current score)")
	if rec.ShouldHit {
		action = HitStyle.Render("HIT (draw another card)")
	}

	d := rec.Diagnostics
	return []string{
		"",
		fmt.Sprintf("recommendation: %s", action),
		fmt.Sprintf("reason: %s", rec.Reason),
		fmt.Sprintf("  bust probability: %.1f%%", d.BustProbability*100),
		fmt.Sprintf("  safe-card probability: %.1f%%", d.SafeCardProbability*100),
		fmt.Sprintf("  expected value: %.1f (current score %d)", d.ExpectedValue, d.CurrentScore),
		"",
	}
}

func (m *Model) statusLines() []string {
	status := m.session.Status()

	lines := []string{
		"",
		fmt.Sprintf("hand: %v  (%d/%d cards)", status.Numbers, status.CardCount, hand.MaxUniqueNumbers),
		fmt.Sprintf("score: %d  (base %d, modifiers %v, x2: %v)",
			status.TotalScore, status.BaseScore, status.Modifiers, status.HasMultiplier),
		fmt.Sprintf("second chance: %v", status.HasSecondChance),
		fmt.Sprintf("cards remaining in deck: %d", status.CardsRemaining),
		fmt.Sprintf("bust probability if you draw: %.1f%%", status.BustProbability*100),
	}

	if len(status.SafeCards) > 0 {
		values := make([]int, 0, len(status.SafeCards))
		for v := range status.SafeCards {
			values = append(values, v)
		}
		sort.Ints(values)

		parts := make([]string, 0, len(values))
		for _, v := range values {
			parts = append(parts, fmt.Sprintf("%d:%d", v, status.SafeCards[v]))
		}
		lines = append(lines, fmt.Sprintf("safe numbers (value:left): %s", strings.Join(parts, " ")))
	}

	if status.Busted {
		lines = append(lines, BustStyle.Render("round over: BUST"))
	}

	return append(lines, "")
}

func (m *Model) renderSidebar() string {
	status := m.session.Status()

	label := SidebarLabelStyle.Render
	value := SidebarValueStyle.Render

	lines := []string{
		label("hand"),
		value(fmt.Sprintf("%v", status.Numbers)),
		"",
		label("cards") + value(fmt.Sprintf(" %d/%d", status.CardCount, hand.MaxUniqueNumbers)),
		label("score") + value(fmt.Sprintf(" %d", status.TotalScore)),
		label("deck") + value(fmt.Sprintf(" %d left", status.CardsRemaining)),
		label("bust") + value(fmt.Sprintf(" %.1f%%", status.BustProbability*100)),
	}

	if status.HasMultiplier {
		lines = append(lines, HitStyle.Render("x2 active"))
	}
	if status.HasSecondChance {
		lines = append(lines, HitStyle.Render("second chance held"))
	}
	if status.Busted {
		lines = append(lines, BustStyle.Render("BUSTED"))
	}
	if status.SevenCardWin {
		lines = append(lines, WinStyle.Render("7-CARD WIN"))
	}

	return strings.Join(lines, "\n")
}

func helpLines() []string {
	return []string{
		"Flip 7 Strategy Advisor - track your cards, then ask whether to hit or stay.",
		"",
		"  0-12            add a number card to your hand",
		"  +2 .. +10       add a modifier card",
		"  x2              add the x2 multiplier",
		"  sc              add a Second Chance card",
		"  freeze, flip3   record an action card you drew",
		"  seen <card>     record a card another player drew",
		"  recommend, r    get the hit/stay recommendation",
		"  status, s       show the current game state",
		"  reset           shuffle and start a new round",
		"  quit, q         exit",
		"",
	}
}
