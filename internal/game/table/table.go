package table

import (
	"errors"
	"sync"
	"time"

	"HeadsUpPoker/internal/game/dealer"
	"HeadsUpPoker/internal/game/evaluator"
	"HeadsUpPoker/internal/game/hand"
)

var (
	// ErrInvalidConfig rejects a table with a non-positive blind or stack.
	ErrInvalidConfig = errors.New("invalid table config")
	// ErrUnknownSeat rejects a seat outside 0/1.
	ErrUnknownSeat = errors.New("unknown seat")
	// ErrTableFinished means a stack hit zero and no further hands start.
	ErrTableFinished = errors.New("table finished")
)

// Options tunes a table. The zero value picks the production evaluator, a
// time-seeded dealer, and awards a split pot's odd chip to the big blind
// (the player left of the button).
type Options struct {
	Evaluator evaluator.Evaluator
	OddChipTo hand.Position
	Seed      func() int64
}

// Table owns the two persistent stacks and the button, and is the only
// creator of hands. One mutex guards the whole structure: actions and
// snapshot reads are serialized, so two connections racing on the same
// seat cannot corrupt state; the loser of the race just gets an error.
type Table struct {
	id int64
	sb int64
	bb int64

	mu       sync.Mutex
	stacks   [2]int64 // by seat, settled between hands
	button   int      // seat currently holding the button
	hand     *hand.Hand
	last     *LastHand
	finished bool

	eval      evaluator.Evaluator
	oddChipTo hand.Position
	seed      func() int64
}

// New validates the config and deals the first hand immediately.
func New(id, smallBlind int64, stacks [2]int64, opts Options) (*Table, error) {
	if smallBlind <= 0 || stacks[0] <= 0 || stacks[1] <= 0 {
		return nil, ErrInvalidConfig
	}
	if opts.Evaluator == nil {
		opts.Evaluator = evaluator.New()
	}
	if opts.Seed == nil {
		opts.Seed = func() int64 { return time.Now().UnixNano() }
	}
	t := &Table{
		id:        id,
		sb:        smallBlind,
		bb:        2 * smallBlind,
		stacks:    stacks,
		eval:      opts.Evaluator,
		oddChipTo: opts.OddChipTo,
		seed:      opts.Seed,
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.startHand(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Table) ID() int64 { return t.id }

// position maps a seat to its role in the current hand.
func (t *Table) position(seat int) hand.Position {
	if seat == t.button {
		return hand.Button
	}
	return hand.BigBlind
}

func (t *Table) seatOf(p hand.Position) int {
	if p == hand.Button {
		return t.button
	}
	return 1 - t.button
}

// startHand deals a new hand from the current stacks. A hand can complete
// during the deal (a blind posting can put the button all-in), in which
// case it settles and the next one starts right away.
func (t *Table) startHand() error {
	d := dealer.NewDealer(t.seed())
	h, err := hand.New(d, t.eval, t.sb, t.stacks[t.button], t.stacks[1-t.button], t.oddChipTo)
	if err != nil {
		return err
	}
	t.hand = h
	if h.Result() != nil {
		return t.settle()
	}
	return nil
}

// settle applies a completed hand to the stacks, records the outcome,
// flips the button, and starts the next hand while both players have
// chips.
func (t *Table) settle() error {
	h := t.hand
	res := h.Result()
	final := h.FinalStacks()

	btnSeat := t.button
	bbSeat := 1 - t.button
	t.stacks[btnSeat] = final[hand.Button]
	t.stacks[bbSeat] = final[hand.BigBlind]

	last := &LastHand{
		Winner:   res.Winner.String(),
		Transfer: res.Transfer,
		Showdown: res.Showdown,
		Button:   btnSeat,
		Board:    h.Board(),
	}
	if res.Showdown {
		btnHole := h.Hole(hand.Button)
		bbHole := h.Hole(hand.BigBlind)
		last.Holes[btnSeat] = btnHole[:]
		last.Holes[bbSeat] = bbHole[:]
	}
	t.last = last
	t.hand = nil
	t.button = 1 - t.button

	if t.stacks[0] <= 0 || t.stacks[1] <= 0 {
		t.finished = true
		return nil
	}
	// an evaluator failure during the deal leaves no live hand; the table
	// cannot continue, but its stacks are already settled
	if err := t.startHand(); err != nil {
		t.finished = true
		return err
	}
	return nil
}

// SubmitAction forwards one action from a seat to the live hand. On hand
// completion it settles atomically under the same lock.
func (t *Table) SubmitAction(seat int, a hand.Action) error {
	if seat != 0 && seat != 1 {
		return ErrUnknownSeat
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.finished || t.hand == nil {
		return ErrTableFinished
	}
	h := t.hand
	pos := t.position(seat)
	if pos != h.Active() {
		return hand.ErrNotActivePlayer
	}
	if err := h.Apply(pos, a); err != nil {
		return err
	}
	if h.Result() != nil {
		return t.settle()
	}
	return nil
}
