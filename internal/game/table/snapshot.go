package table

import (
	"HeadsUpPoker/internal/game/dealer"
	"HeadsUpPoker/internal/game/hand"
)

// Snapshot is the one structure that ever crosses the table boundary. It
// is rendered for a specific seat: the opponent's hole cards are withheld
// unless the previous hand reached showdown.
type Snapshot struct {
	TableID    int64    `json:"table_id"`
	Seat       int      `json:"seat"`
	SmallBlind int64    `json:"small_blind"`
	BigBlind   int64    `json:"big_blind"`
	Button     int      `json:"button"`
	Finished   bool     `json:"finished"`
	Street     string   `json:"street"`
	Pot        int64    `json:"pot"`
	Stacks     [2]int64 `json:"stacks"`      // remaining chips by seat
	StreetBets [2]int64 `json:"street_bets"` // chips wagered on the open street, by seat

	Board      []dealer.Card `json:"board"`
	HoleCards  []dealer.Card `json:"hole_cards,omitempty"` // the requester's own cards
	ActiveSeat int           `json:"active_seat"`          // -1 when no hand is live
	Options    []hand.Option `json:"options,omitempty"`    // present when the requester acts

	Last *LastHand `json:"last_hand,omitempty"`
}

// LastHand summarizes the most recently completed hand. Hole cards are
// only present if the hand was decided at showdown.
type LastHand struct {
	Winner   string           `json:"winner"`
	Transfer int64            `json:"transfer"`
	Showdown bool             `json:"showdown"`
	Button   int              `json:"button"`
	Board    []dealer.Card    `json:"board"`
	Holes    [2][]dealer.Card `json:"holes,omitempty"` // by seat, showdown only
}

// clone deep-copies the summary so a snapshot holder cannot reach back
// into table state.
func (l *LastHand) clone() *LastHand {
	if l == nil {
		return nil
	}
	out := *l
	out.Board = append([]dealer.Card(nil), l.Board...)
	for i := range l.Holes {
		if l.Holes[i] != nil {
			out.Holes[i] = append([]dealer.Card(nil), l.Holes[i]...)
		}
	}
	return &out
}

// SnapshotFor renders the table for one seat. It is a pure read: two calls
// with no action in between return identical values.
func (t *Table) SnapshotFor(seat int) (Snapshot, error) {
	if seat != 0 && seat != 1 {
		return Snapshot{}, ErrUnknownSeat
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Snapshot{
		TableID:    t.id,
		Seat:       seat,
		SmallBlind: t.sb,
		BigBlind:   t.bb,
		Button:     t.button,
		Finished:   t.finished,
		ActiveSeat: -1,
		Last:       t.last.clone(),
	}
	h := t.hand
	if h == nil {
		s.Street = hand.Complete.String()
		s.Stacks = t.stacks
		return s, nil
	}

	s.Street = h.Street().String()
	s.Pot = h.Pot()
	bets := h.StreetBets()
	for seatIdx := 0; seatIdx < 2; seatIdx++ {
		pos := t.position(seatIdx)
		s.Stacks[seatIdx] = h.Remaining(pos)
		s.StreetBets[seatIdx] = bets[pos]
	}
	s.Board = h.Board()
	hole := h.Hole(t.position(seat))
	s.HoleCards = hole[:]
	s.ActiveSeat = t.seatOf(h.Active())
	if s.ActiveSeat == seat {
		s.Options = h.Options()
	}
	return s, nil
}
