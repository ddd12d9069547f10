package hand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"HeadsUpPoker/internal/game/dealer"
	"HeadsUpPoker/internal/game/evaluator"
)

// fixedEval returns a preset winner and counts invocations.
type fixedEval struct {
	winner evaluator.Winner
	calls  int
}

func (f *fixedEval) Evaluate(_, _ [2]dealer.Card, board []dealer.Card) (evaluator.Winner, error) {
	f.calls++
	if len(board) != 5 {
		panic("evaluator called without a full board")
	}
	return f.winner, nil
}

func newHand(t *testing.T, sb, btnStack, bbStack int64, eval evaluator.Evaluator) *Hand {
	t.Helper()
	if eval == nil {
		eval = &fixedEval{winner: evaluator.ButtonWins}
	}
	h, err := New(dealer.NewDealer(1), eval, sb, btnStack, bbStack, BigBlind)
	require.NoError(t, err)
	return h
}

func optionByType(opts []Option, typ ActionType) (Option, bool) {
	for _, o := range opts {
		if o.Type == typ {
			return o, true
		}
	}
	return Option{}, false
}

// assertConserved checks the money identity that must hold after every
// transition.
func assertConserved(t *testing.T, h *Hand, btnStart, bbStart int64) {
	t.Helper()
	contrib := h.Contributed()
	bets := h.StreetBets()
	assert.Equal(t, btnStart-contrib[Button], h.Remaining(Button))
	assert.Equal(t, bbStart-contrib[BigBlind], h.Remaining(BigBlind))
	assert.Equal(t, contrib[Button]+contrib[BigBlind], h.Pot()+bets[Button]+bets[BigBlind])
}

func TestBlindsPostedAndButtonActsFirst(t *testing.T) {
	h := newHand(t, 5, 200, 300, nil)

	assert.Equal(t, Preflop, h.Street())
	assert.Equal(t, Button, h.Active())
	assert.Equal(t, [2]int64{5, 10}, h.StreetBets())
	assert.Equal(t, int64(195), h.Remaining(Button))
	assert.Equal(t, int64(290), h.Remaining(BigBlind))
	assert.Len(t, h.Board(), 0)
	assertConserved(t, h, 200, 300)
}

func TestPreflopOptionsForButton(t *testing.T) {
	h := newHand(t, 5, 200, 300, nil)
	opts := h.Options()

	_, hasFold := optionByType(opts, Fold)
	assert.True(t, hasFold)

	call, hasCall := optionByType(opts, Call)
	require.True(t, hasCall)
	assert.Equal(t, int64(5), call.Call)

	raise, hasRaise := optionByType(opts, Raise)
	require.True(t, hasRaise)
	assert.Equal(t, int64(20), raise.Min)
	assert.Equal(t, int64(200), raise.Max)

	_, hasCheck := optionByType(opts, Check)
	assert.False(t, hasCheck)
}

func TestCallClosesStreetAndDealsFlop(t *testing.T) {
	h := newHand(t, 5, 200, 300, nil)
	require.NoError(t, h.Apply(Button, Action{Type: Call}))

	assert.Equal(t, Flop, h.Street())
	assert.Equal(t, int64(20), h.Pot())
	assert.Equal(t, [2]int64{0, 0}, h.StreetBets())
	assert.Len(t, h.Board(), 3)
	assert.Equal(t, BigBlind, h.Active())

	opts := h.Options()
	_, hasCheck := optionByType(opts, Check)
	assert.True(t, hasCheck)
	raise, hasRaise := optionByType(opts, Raise)
	require.True(t, hasRaise)
	assert.Equal(t, int64(10), raise.Min)
	assert.Equal(t, int64(290), raise.Max)

	assertConserved(t, h, 200, 300)
}

func TestCheckCheckClosesStreet(t *testing.T) {
	h := newHand(t, 5, 200, 300, nil)
	require.NoError(t, h.Apply(Button, Action{Type: Call}))

	require.NoError(t, h.Apply(BigBlind, Action{Type: Check}))
	assert.Equal(t, Flop, h.Street())
	assert.Equal(t, Button, h.Active())

	require.NoError(t, h.Apply(Button, Action{Type: Check}))
	assert.Equal(t, Turn, h.Street())
	assert.Len(t, h.Board(), 4)
	assert.Equal(t, BigBlind, h.Active())
}

func TestRaiseBoundsAreInclusive(t *testing.T) {
	h := newHand(t, 5, 200, 300, nil)

	err := h.Apply(Button, Action{Type: Raise, Amount: 19})
	assert.ErrorIs(t, err, ErrIllegalAction)
	err = h.Apply(Button, Action{Type: Raise, Amount: 201})
	assert.ErrorIs(t, err, ErrIllegalAction)

	// a rejected raise leaves the hand untouched
	assert.Equal(t, Preflop, h.Street())
	assert.Equal(t, Button, h.Active())
	assert.Equal(t, [2]int64{5, 10}, h.StreetBets())

	require.NoError(t, h.Apply(Button, Action{Type: Raise, Amount: 20}))
	assert.Equal(t, BigBlind, h.Active())
	assert.Equal(t, [2]int64{20, 10}, h.StreetBets())
	assertConserved(t, h, 200, 300)
}

func TestMinReraiseUsesLastIncrement(t *testing.T) {
	h := newHand(t, 5, 200, 300, nil)
	require.NoError(t, h.Apply(Button, Action{Type: Raise, Amount: 30}))

	raise, ok := optionByType(h.Options(), Raise)
	require.True(t, ok)
	// last increment was 20 (10 -> 30), so the minimum total is 30+20
	assert.Equal(t, int64(50), raise.Min)
	assert.Equal(t, int64(300), raise.Max)
}

func TestFoldAwardsPotWithoutShowdown(t *testing.T) {
	eval := &fixedEval{winner: evaluator.ButtonWins}
	h := newHand(t, 5, 200, 300, eval)
	require.NoError(t, h.Apply(Button, Action{Type: Fold}))

	res := h.Result()
	require.NotNil(t, res)
	assert.Equal(t, evaluator.BigBlindWins, res.Winner)
	assert.Equal(t, int64(5), res.Transfer)
	assert.False(t, res.Showdown)
	assert.Equal(t, 0, eval.calls)

	final := h.FinalStacks()
	assert.Equal(t, int64(195), final[Button])
	assert.Equal(t, int64(305), final[BigBlind])
	assert.Equal(t, Complete, h.Street())
}

func TestActionsRejectedOutOfTurnAndAfterCompletion(t *testing.T) {
	h := newHand(t, 5, 200, 300, nil)

	err := h.Apply(BigBlind, Action{Type: Check})
	assert.ErrorIs(t, err, ErrNotActivePlayer)

	require.NoError(t, h.Apply(Button, Action{Type: Fold}))
	err = h.Apply(BigBlind, Action{Type: Check})
	assert.ErrorIs(t, err, ErrNotActivePlayer)
}

func TestAllInShoveCappedCallAndRunout(t *testing.T) {
	eval := &fixedEval{winner: evaluator.ButtonWins}
	h, err := New(dealer.NewDealer(1), eval, 5, 50, 300, BigBlind)
	require.NoError(t, err)

	raise, ok := optionByType(h.Options(), Raise)
	require.True(t, ok)
	assert.Equal(t, int64(50), raise.Max)
	require.NoError(t, h.Apply(Button, Action{Type: Raise, Amount: 50}))

	// facing an all-in opponent the big blind cannot raise back
	opts := h.Options()
	_, hasRaise := optionByType(opts, Raise)
	assert.False(t, hasRaise)
	call, hasCall := optionByType(opts, Call)
	require.True(t, hasCall)
	assert.Equal(t, int64(40), call.Call)

	require.NoError(t, h.Apply(BigBlind, Action{Type: Call}))

	res := h.Result()
	require.NotNil(t, res)
	assert.True(t, res.Showdown)
	assert.Equal(t, 1, eval.calls)
	assert.Len(t, h.Board(), 5)
	assert.Equal(t, int64(100), h.Pot())
	assert.Equal(t, int64(50), res.Transfer)

	final := h.FinalStacks()
	assert.Equal(t, int64(100), final[Button])
	assert.Equal(t, int64(250), final[BigBlind])
	assert.Equal(t, int64(350), final[Button]+final[BigBlind])
}

func TestShortAllInCallRefundsExcess(t *testing.T) {
	eval := &fixedEval{winner: evaluator.BigBlindWins}
	h, err := New(dealer.NewDealer(1), eval, 5, 200, 30, BigBlind)
	require.NoError(t, err)

	require.NoError(t, h.Apply(Button, Action{Type: Raise, Amount: 100}))

	call, ok := optionByType(h.Options(), Call)
	require.True(t, ok)
	// the big blind has only 20 behind, the call is capped there
	assert.Equal(t, int64(20), call.Call)
	require.NoError(t, h.Apply(BigBlind, Action{Type: Call}))

	res := h.Result()
	require.NotNil(t, res)
	assert.True(t, res.Showdown)
	// the uncalled 70 went back to the button before showdown
	assert.Equal(t, int64(60), h.Pot())
	assert.Equal(t, int64(30), res.Transfer)

	final := h.FinalStacks()
	assert.Equal(t, int64(170), final[Button])
	assert.Equal(t, int64(60), final[BigBlind])
}

func TestBlindPostingCanCompleteHandImmediately(t *testing.T) {
	eval := &fixedEval{winner: evaluator.ButtonWins}
	h, err := New(dealer.NewDealer(1), eval, 5, 3, 300, BigBlind)
	require.NoError(t, err)

	res := h.Result()
	require.NotNil(t, res)
	assert.True(t, res.Showdown)
	assert.Equal(t, int64(6), h.Pot())

	final := h.FinalStacks()
	assert.Equal(t, int64(6), final[Button])
	assert.Equal(t, int64(297), final[BigBlind])
}

func TestShortBigBlindPostRunsOutImmediately(t *testing.T) {
	eval := &fixedEval{winner: evaluator.ButtonWins}
	h, err := New(dealer.NewDealer(1), eval, 5, 200, 3, BigBlind)
	require.NoError(t, err)

	// the big blind is all-in below the small blind; its bet is already
	// covered, so nobody has a decision left
	res := h.Result()
	require.NotNil(t, res)
	assert.True(t, res.Showdown)
	assert.Equal(t, 1, eval.calls)
	assert.Len(t, h.Board(), 5)
	assert.Equal(t, int64(6), h.Pot())
	assert.Equal(t, int64(3), res.Transfer)

	final := h.FinalStacks()
	assert.Equal(t, int64(203), final[Button])
	assert.Equal(t, int64(0), final[BigBlind])
}

func TestBigBlindAllInExactlyMatchedRunsOut(t *testing.T) {
	eval := &fixedEval{winner: evaluator.ButtonWins}
	h, err := New(dealer.NewDealer(1), eval, 5, 200, 5, BigBlind)
	require.NoError(t, err)

	res := h.Result()
	require.NotNil(t, res)
	assert.True(t, res.Showdown)
	assert.Equal(t, int64(10), h.Pot())

	final := h.FinalStacks()
	assert.Equal(t, int64(205), final[Button])
	assert.Equal(t, int64(0), final[BigBlind])
}

func TestShortBigBlindStillOwedKeepsButtonDecision(t *testing.T) {
	eval := &fixedEval{winner: evaluator.ButtonWins}
	h, err := New(dealer.NewDealer(1), eval, 5, 200, 8, BigBlind)
	require.NoError(t, err)

	// the big blind's all-in post exceeds the small blind, so the button
	// still owes a decision and is the only one who gets one
	require.Nil(t, h.Result())
	assert.Equal(t, Button, h.Active())

	opts := h.Options()
	_, hasFold := optionByType(opts, Fold)
	assert.True(t, hasFold)
	call, hasCall := optionByType(opts, Call)
	require.True(t, hasCall)
	assert.Equal(t, int64(3), call.Call)
	_, hasRaise := optionByType(opts, Raise)
	assert.False(t, hasRaise)

	require.NoError(t, h.Apply(Button, Action{Type: Call}))
	res := h.Result()
	require.NotNil(t, res)
	assert.True(t, res.Showdown)
	assert.Equal(t, int64(16), h.Pot())
}

func TestTieSplitsPotEvenly(t *testing.T) {
	eval := &fixedEval{winner: evaluator.Tie}
	h := newHand(t, 5, 200, 300, eval)

	require.NoError(t, h.Apply(Button, Action{Type: Call}))
	for _, p := range []Position{BigBlind, Button, BigBlind, Button, BigBlind, Button} {
		require.NoError(t, h.Apply(p, Action{Type: Check}))
	}

	res := h.Result()
	require.NotNil(t, res)
	assert.Equal(t, evaluator.Tie, res.Winner)
	assert.Equal(t, int64(0), res.Transfer)

	final := h.FinalStacks()
	assert.Equal(t, int64(200), final[Button])
	assert.Equal(t, int64(300), final[BigBlind])
}

func TestFullHandToShowdownConservesChips(t *testing.T) {
	eval := &fixedEval{winner: evaluator.BigBlindWins}
	h := newHand(t, 5, 200, 300, eval)

	require.NoError(t, h.Apply(Button, Action{Type: Raise, Amount: 25}))
	require.NoError(t, h.Apply(BigBlind, Action{Type: Call}))
	assert.Equal(t, Flop, h.Street())
	assert.Equal(t, int64(50), h.Pot())

	require.NoError(t, h.Apply(BigBlind, Action{Type: Raise, Amount: 40}))
	require.NoError(t, h.Apply(Button, Action{Type: Call}))
	assert.Equal(t, Turn, h.Street())
	assert.Equal(t, int64(130), h.Pot())

	require.NoError(t, h.Apply(BigBlind, Action{Type: Check}))
	require.NoError(t, h.Apply(Button, Action{Type: Check}))
	assert.Equal(t, River, h.Street())

	require.NoError(t, h.Apply(BigBlind, Action{Type: Check}))
	require.NoError(t, h.Apply(Button, Action{Type: Check}))

	res := h.Result()
	require.NotNil(t, res)
	assert.True(t, res.Showdown)
	assert.Equal(t, int64(65), res.Transfer)
	assert.Equal(t, 1, eval.calls)

	final := h.FinalStacks()
	assert.Equal(t, int64(135), final[Button])
	assert.Equal(t, int64(365), final[BigBlind])
	assert.Equal(t, int64(500), final[Button]+final[BigBlind])
}

func TestBigBlindActsFirstAfterPreflopRaiseCall(t *testing.T) {
	h := newHand(t, 5, 200, 300, nil)
	require.NoError(t, h.Apply(Button, Action{Type: Raise, Amount: 25}))
	assert.Equal(t, BigBlind, h.Active())
	require.NoError(t, h.Apply(BigBlind, Action{Type: Call}))
	// the caller closed the street, yet it is still the big blind's turn
	assert.Equal(t, Flop, h.Street())
	assert.Equal(t, BigBlind, h.Active())
}

func TestBoardIsACopy(t *testing.T) {
	h := newHand(t, 5, 200, 300, nil)
	require.NoError(t, h.Apply(Button, Action{Type: Call}))

	board := h.Board()
	require.Len(t, board, 3)
	orig := board[0]
	board[0] = dealer.Card{Suit: (orig.Suit + 1) % 4, Rank: orig.Rank}
	again := h.Board()
	assert.Equal(t, orig, again[0], "mutating the returned board must not reach the hand")
}
