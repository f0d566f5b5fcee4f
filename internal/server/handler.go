package server

import (
	"errors"
	"fmt"

	"github.com/lox/flip7/internal/deck"
	"github.com/lox/flip7/internal/session"
)

// Handle applies one command to a session and builds the response. It is
// pure request/response: the caller owns ordering and transport.
func Handle(sess *session.Session, cmd Command) Response {
	switch cmd.Type {
	case CmdDraw:
		card, err := deck.ParseCard(cmd.Card)
		if err != nil {
			return errorResponse(cmd, err)
		}
		return mutationResponse(cmd, sess, sess.Draw(card))

	case CmdSeen:
		card, err := deck.ParseCard(cmd.Card)
		if err != nil {
			return errorResponse(cmd, err)
		}
		return mutationResponse(cmd, sess, sess.MarkSeen(card))

	case CmdWouldBust:
		card, err := deck.ParseCard(cmd.Card)
		if err != nil {
			return errorResponse(cmd, err)
		}
		if card.Kind != deck.KindNumber {
			return errorResponse(cmd, fmt.Errorf("only number cards bust: %w", deck.ErrInvalidCard))
		}
		wouldBust := sess.WouldBust(card.Number)
		return Response{Type: cmd.Type, OK: true, WouldBust: &wouldBust}

	case CmdConfirmBust:
		card, err := deck.ParseCard(cmd.Card)
		if err != nil {
			return errorResponse(cmd, err)
		}
		if card.Kind != deck.KindNumber {
			return errorResponse(cmd, fmt.Errorf("only number cards bust: %w", deck.ErrInvalidCard))
		}
		return mutationResponse(cmd, sess, sess.ConfirmBust(card.Number))

	case CmdRecommend:
		rec, err := sess.Recommend()
		if err != nil {
			return errorResponse(cmd, err)
		}
		return Response{Type: cmd.Type, OK: true, Recommendation: &rec}

	case CmdStatus:
		return statusResponse(cmd, sess)

	case CmdReset:
		sess.Reset()
		return statusResponse(cmd, sess)

	default:
		return errorResponse(cmd, fmt.Errorf("unknown command type %q", cmd.Type))
	}
}

// mutationResponse reports a state change, downgrading exhausted-deck
// errors to warnings: the mutation was applied, the tracker just disagreed
// with the table.
func mutationResponse(cmd Command, sess *session.Session, err error) Response {
	if err != nil && !errors.Is(err, deck.ErrExhausted) {
		return errorResponse(cmd, err)
	}

	resp := statusResponse(cmd, sess)
	if err != nil {
		resp.Warning = err.Error()
	}
	return resp
}

func statusResponse(cmd Command, sess *session.Session) Response {
	status := sess.Status()
	return Response{Type: cmd.Type, OK: true, Status: &status}
}

func errorResponse(cmd Command, err error) Response {
	return Response{Type: cmd.Type, OK: false, Error: err.Error()}
}
