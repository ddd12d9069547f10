package hand

import (
	"errors"
	"fmt"

	"HeadsUpPoker/internal/game/dealer"
	"HeadsUpPoker/internal/game/evaluator"
)

var (
	// ErrNotActivePlayer rejects an action submitted out of turn or into a
	// completed hand. The client should resynchronize via a snapshot.
	ErrNotActivePlayer = errors.New("not the active player")
	// ErrIllegalAction rejects an action outside the current legal set.
	ErrIllegalAction = errors.New("illegal action")
)

// Result is the terminal outcome of a hand.
type Result struct {
	Winner   evaluator.Winner
	Transfer int64 // chips the winner nets from the loser; odd chip on a split
	Showdown bool  // true if hole cards were revealed
}

// Hand tracks a single hand from deal to showdown or fold. All amounts are
// indexed by Position. Money never enters or leaves: for each position,
// remaining stack == start stack - contributed, and
// pot + bets[0] + bets[1] == contributed[0] + contributed[1].
type Hand struct {
	sb, bb int64

	startStacks [2]int64 // stacks when the hand began
	contributed [2]int64 // total chips put in this hand, current street included
	bets        [2]int64 // chips put in during the open street
	pot         int64    // chips from streets already closed

	street    Street
	active    Position
	acted     [2]bool // has the position acted during the open street
	lastRaise int64   // size of the last raise increment this street

	holes [2][2]dealer.Card
	board []dealer.Card

	dlr       *dealer.Dealer
	eval      evaluator.Evaluator
	oddChipTo Position

	result      *Result
	finalStacks [2]int64
}

// New posts the blinds (clamped to the stacks: posting all-in is legal),
// deals both hole hands from a freshly shuffled deck, and leaves the button
// to act. If a clamped blind already puts a player all-in with their bet
// covered there is no decision left to make and the hand runs out
// immediately; an all-in player is never asked to act.
func New(dlr *dealer.Dealer, eval evaluator.Evaluator, sb, btnStack, bbStack int64, oddChipTo Position) (*Hand, error) {
	h := &Hand{
		sb:          sb,
		bb:          2 * sb,
		startStacks: [2]int64{btnStack, bbStack},
		street:      Preflop,
		active:      Button,
		board:       make([]dealer.Card, 0, 5),
		dlr:         dlr,
		eval:        eval,
		oddChipTo:   oddChipTo,
	}
	dlr.NewDeck()
	h.holes[Button] = dlr.DealHole()
	h.holes[BigBlind] = dlr.DealHole()

	h.post(Button, min64(h.sb, btnStack))
	h.post(BigBlind, min64(h.bb, bbStack))

	if h.remaining(Button) == 0 || (h.remaining(BigBlind) == 0 && h.bets[BigBlind] <= h.bets[Button]) {
		if err := h.closeStreet(); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *Hand) post(p Position, amount int64) {
	h.bets[p] += amount
	h.contributed[p] += amount
}

func (h *Hand) remaining(p Position) int64 {
	return h.startStacks[p] - h.contributed[p]
}

// Options computes the legal actions for the active player. It is always
// recomputed from the current state, never cached.
func (h *Hand) Options() []Option {
	if h.street >= Showdown {
		return nil
	}
	me := h.active
	opp := me.Other()
	diff := h.bets[opp] - h.bets[me]
	stack := h.remaining(me)

	var opts []Option
	if diff > 0 {
		opts = append(opts,
			Option{Type: Fold},
			Option{Type: Call, Call: min64(diff, stack)},
		)
	} else {
		opts = append(opts, Option{Type: Check})
	}
	// Raising needs chips beyond the call and an opponent able to respond.
	if stack > diff && h.remaining(opp) > 0 {
		maxTotal := h.bets[me] + stack
		minTotal := h.bets[opp] + max64(h.lastRaise, h.bb)
		if minTotal > maxTotal {
			minTotal = maxTotal // a shove below the normal minimum is legal
		}
		opts = append(opts, Option{Type: Raise, Min: minTotal, Max: maxTotal})
	}
	return opts
}

// Apply validates one action from pos and mutates the hand. Validation
// precedes every mutation, so a rejected action leaves the hand untouched.
func (h *Hand) Apply(pos Position, a Action) error {
	if h.street == Complete {
		return ErrNotActivePlayer
	}
	if pos != h.active {
		return ErrNotActivePlayer
	}
	opt, ok := findOption(h.Options(), a.Type)
	if !ok {
		return fmt.Errorf("%w: %s not available on the %s", ErrIllegalAction, a.Type, h.street)
	}
	if a.Type == Raise && (a.Amount < opt.Min || a.Amount > opt.Max) {
		return fmt.Errorf("%w: raise to %d outside [%d, %d]", ErrIllegalAction, a.Amount, opt.Min, opt.Max)
	}

	opp := pos.Other()
	switch a.Type {
	case Fold:
		h.pot += h.bets[Button] + h.bets[BigBlind]
		h.bets = [2]int64{}
		h.finish(&Result{
			Winner:   winnerAt(opp),
			Transfer: h.contributed[pos],
		})
		return nil

	case Check:
		h.acted[pos] = true
		if h.acted[opp] {
			return h.closeStreet()
		}
		h.active = opp
		return nil

	case Call:
		h.post(pos, opt.Call)
		h.acted[pos] = true
		return h.closeStreet()

	case Raise:
		h.lastRaise = a.Amount - h.bets[opp]
		h.post(pos, a.Amount-h.bets[pos])
		h.bets[pos] = a.Amount
		h.acted[pos] = true
		h.active = opp
		return nil
	}
	return fmt.Errorf("%w: unknown action %d", ErrIllegalAction, a.Type)
}

// closeStreet folds the street's wagers into the pot, deals the next board
// cards, and hands the action to the big blind. When a player is all-in no
// further betting is possible and the remaining streets run out directly to
// showdown.
func (h *Hand) closeStreet() error {
	h.settleStreetBets()
	h.acted = [2]bool{}
	h.lastRaise = 0
	h.active = BigBlind

	for {
		switch h.street {
		case Preflop:
			h.street = Flop
		case Flop:
			h.street = Turn
		case Turn:
			h.street = River
		case River:
			h.street = Showdown
			return h.runShowdown()
		}
		h.board = append(h.board, h.dlr.DealCommunity(h.street.BoardSize()-len(h.board))...)
		if h.remaining(Button) > 0 && h.remaining(BigBlind) > 0 {
			return nil
		}
	}
}

// settleStreetBets refunds the uncalled part of a wager the all-in opponent
// could not match, then moves the matched chips into the pot.
func (h *Hand) settleStreetBets() {
	matched := min64(h.bets[Button], h.bets[BigBlind])
	for _, p := range []Position{Button, BigBlind} {
		if excess := h.bets[p] - matched; excess > 0 {
			h.bets[p] = matched
			h.contributed[p] -= excess
		}
	}
	h.pot += h.bets[Button] + h.bets[BigBlind]
	h.bets = [2]int64{}
}

func (h *Hand) runShowdown() error {
	w, err := h.eval.Evaluate(h.holes[Button], h.holes[BigBlind], h.board)
	if err != nil {
		return fmt.Errorf("showdown evaluation: %w", err)
	}
	res := &Result{Winner: w, Showdown: true}
	switch w {
	case evaluator.ButtonWins:
		res.Transfer = h.contributed[BigBlind]
	case evaluator.BigBlindWins:
		res.Transfer = h.contributed[Button]
	case evaluator.Tie:
		res.Transfer = h.pot % 2
	}
	h.finish(res)
	return nil
}

func (h *Hand) finish(res *Result) {
	h.result = res
	h.street = Complete

	for _, p := range []Position{Button, BigBlind} {
		h.finalStacks[p] = h.startStacks[p] - h.contributed[p]
	}
	switch res.Winner {
	case evaluator.ButtonWins:
		h.finalStacks[Button] += h.pot
	case evaluator.BigBlindWins:
		h.finalStacks[BigBlind] += h.pot
	case evaluator.Tie:
		half := h.pot / 2
		h.finalStacks[Button] += half
		h.finalStacks[BigBlind] += half
		h.finalStacks[h.oddChipTo] += h.pot % 2
	}
}

// Accessors. The hand hands out copies only; callers cannot reach its
// interior state.

func (h *Hand) Street() Street          { return h.street }
func (h *Hand) Active() Position        { return h.active }
func (h *Hand) Pot() int64              { return h.pot }
func (h *Hand) StreetBets() [2]int64    { return h.bets }
func (h *Hand) Contributed() [2]int64   { return h.contributed }
func (h *Hand) Remaining(p Position) int64 { return h.remaining(p) }

func (h *Hand) Hole(p Position) [2]dealer.Card { return h.holes[p] }

func (h *Hand) Board() []dealer.Card {
	out := make([]dealer.Card, len(h.board))
	copy(out, h.board)
	return out
}

// Result returns the terminal result, or nil while the hand is live.
func (h *Hand) Result() *Result {
	if h.result == nil {
		return nil
	}
	res := *h.result
	return &res
}

// FinalStacks is only meaningful once Result() is non-nil.
func (h *Hand) FinalStacks() [2]int64 { return h.finalStacks }

func winnerAt(p Position) evaluator.Winner {
	if p == Button {
		return evaluator.ButtonWins
	}
	return evaluator.BigBlindWins
}

func findOption(opts []Option, t ActionType) (Option, bool) {
	for _, o := range opts {
		if o.Type == t {
			return o, true
		}
	}
	return Option{}, false
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
