package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/flip7/internal/advisor"
	"github.com/lox/flip7/internal/deck"
	"github.com/lox/flip7/internal/hand"
	"github.com/lox/flip7/internal/session"
)

// OddsCmd analyzes one described game state and prints the verdict
type OddsCmd struct {
	Cards    []string `arg:"" help:"Cards in your hand (e.g. 7 11 +5 x2 sc)" required:""`
	Seen     []string `short:"s" help:"Cards other players have drawn"`
	Strategy string   `help:"Path to an HCL strategy override file" type:"path"`
}

var (
	// Style definitions
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	hitStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	stayStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("11"))

	percentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))
)

func (c *OddsCmd) Run() error {
	// Styling degrades to plain text on dumb terminals and pipes
	if termenv.EnvColorProfile() == termenv.Ascii {
		plain := lipgloss.NewStyle()
		headerStyle, hitStyle, stayStyle, percentStyle, warnStyle = plain, plain, plain, plain, plain
	}

	strategy, err := advisor.LoadStrategy(c.Strategy)
	if err != nil {
		return fmt.Errorf("failed to load strategy: %w", err)
	}

	logger := log.New(io.Discard)
	sess := session.New(logger, strategy)

	if err := replayCards(sess, c.Cards, c.Seen); err != nil {
		return err
	}

	displayAnalysis(sess)
	return nil
}

// replayCards rebuilds the described state: the player's cards first, then
// cards seen leaving the deck in other hands
func replayCards(sess *session.Session, cards, seen []string) error {
	for _, token := range cards {
		card, err := deck.ParseCard(token)
		if err != nil {
			return err
		}
		if err := sess.Draw(card); err != nil {
			if errors.Is(err, deck.ErrExhausted) {
				fmt.Fprintln(os.Stderr, warnStyle.Render(fmt.Sprintf("warning: %v", err)))
				continue
			}
			if errors.Is(err, session.ErrWouldBust) {
				return fmt.Errorf("hand holds %s twice, a hand cannot contain duplicates", token)
			}
			return err
		}
	}

	for _, token := range seen {
		card, err := deck.ParseCard(token)
		if err != nil {
			return err
		}
		if err := sess.MarkSeen(card); err != nil {
			if errors.Is(err, deck.ErrExhausted) {
				fmt.Fprintln(os.Stderr, warnStyle.Render(fmt.Sprintf("warning: %v", err)))
				continue
			}
			return err
		}
	}

	return nil
}

func displayAnalysis(sess *session.Session) {
	status := sess.Status()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s\t%v\n", headerStyle.Render("hand"), status.Numbers)
	fmt.Fprintf(w, "%s\t%d/7\n", headerStyle.Render("cards"), status.CardCount)
	fmt.Fprintf(w, "%s\t%d\n", headerStyle.Render("score"), status.TotalScore)
	fmt.Fprintf(w, "%s\t%d\n", headerStyle.Render("deck"), status.CardsRemaining)
	fmt.Fprintf(w, "%s\t%s\n", headerStyle.Render("bust"),
		percentStyle.Render(fmt.Sprintf("%.1f%%", status.BustProbability*100)))
	w.Flush()

	if len(status.SafeCards) > 0 {
		fmt.Println()
		fmt.Println(headerStyle.Render("safe numbers remaining"))

		values := make([]int, 0, len(status.SafeCards))
		for v := range status.SafeCards {
			values = append(values, v)
		}
		sort.Ints(values)

		sw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, v := range values {
			fmt.Fprintf(sw, "%d\t%d\n", v, status.SafeCards[v])
		}
		sw.Flush()
	}

	fmt.Println()
	if status.SevenCardWin {
		final := status.TotalScore + hand.SevenCardBonus
		fmt.Println(hitStyle.Render(fmt.Sprintf("seven unique numbers, instant round win for %d points", final)))
		return
	}
	if status.CardCount == 0 {
		fmt.Println(warnStyle.Render("no number cards in hand yet, nothing to decide"))
		return
	}

	rec, err := sess.Recommend()
	if err != nil {
		fmt.Println(warnStyle.Render(err.Error()))
		return
	}

	verdict := stayStyle.Render("STAY")
	if rec.ShouldHit {
		verdict = hitStyle.Render("HIT")
	}
	fmt.Printf("%s %s\n", verdict, rec.Reason)

	d := rec.Diagnostics
	fmt.Printf("expected value %.1f vs current score %d\n", d.ExpectedValue, d.CurrentScore)
}
