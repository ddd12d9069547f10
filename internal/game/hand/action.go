package hand

import "fmt"

// ActionType is the closed set of things a player can do when facing the
// action. Only Raise carries an amount.
type ActionType int

const (
	Fold ActionType = iota
	Check
	Call
	Raise
)

func (t ActionType) String() string {
	switch t {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Raise:
		return "raise"
	}
	return "?"
}

// Action is one submitted move. Amount is the TOTAL the player will have
// contributed to the current street after the action (not a delta) and is
// only meaningful for Raise.
type Action struct {
	Type   ActionType
	Amount int64
}

func (a Action) String() string {
	if a.Type == Raise {
		return fmt.Sprintf("raise(%d)", a.Amount)
	}
	return a.Type.String()
}

// Option is one entry of the legal-action set. Call carries the amount the
// server will take; Raise carries the inclusive [Min, Max] total range.
type Option struct {
	Type ActionType `json:"type"`
	Call int64      `json:"call,omitempty"`
	Min  int64      `json:"min,omitempty"`
	Max  int64      `json:"max,omitempty"`
}
