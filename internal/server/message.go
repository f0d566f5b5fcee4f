package server

import (
	"github.com/lox/flip7/internal/advisor"
	"github.com/lox/flip7/internal/session"
)

// Command types accepted over the wire
const (
	CmdDraw        = "draw"
	CmdSeen        = "seen"
	CmdWouldBust   = "would_bust"
	CmdConfirmBust = "confirm_bust"
	CmdRecommend   = "recommend"
	CmdStatus      = "status"
	CmdReset       = "reset"
)

// Command is one request from a client. Card carries the same tokens the
// interactive shell accepts ("7", "+5", "x2", "sc", "freeze", "flip3").
type Command struct {
	Type string `json:"type"`
	Card string `json:"card,omitempty"`
}

// Response is the reply to a single command. Warning carries non-fatal
// deck-tracking advisories; Error means the command was rejected and state
// is unchanged.
type Response struct {
	Type           string                  `json:"type"`
	OK             bool                    `json:"ok"`
	Error          string                  `json:"error,omitempty"`
	Warning        string                  `json:"warning,omitempty"`
	WouldBust      *bool                   `json:"would_bust,omitempty"`
	Status         *session.Status         `json:"status,omitempty"`
	Recommendation *advisor.Recommendation `json:"recommendation,omitempty"`
}
