package evaluator

import (
	"fmt"

	"github.com/paulhankin/poker"

	"HeadsUpPoker/internal/game/dealer"
)

// Winner is the outcome of comparing both hands against the board.
type Winner int

const (
	ButtonWins Winner = iota
	BigBlindWins
	Tie
)

func (w Winner) String() string {
	switch w {
	case ButtonWins:
		return "button"
	case BigBlindWins:
		return "big_blind"
	case Tie:
		return "tie"
	}
	return "?"
}

// Evaluator decides a showdown. The hand engine only depends on this
// contract; the ranking algorithm behind it is not its business.
type Evaluator interface {
	Evaluate(btnHole, bbHole [2]dealer.Card, board []dealer.Card) (Winner, error)
}

// SevenCard evaluates showdowns with github.com/paulhankin/poker's
// 7-card evaluator.
type SevenCard struct{}

func New() SevenCard {
	return SevenCard{}
}

func (SevenCard) Evaluate(btnHole, bbHole [2]dealer.Card, board []dealer.Card) (Winner, error) {
	if len(board) != 5 {
		return 0, fmt.Errorf("evaluator: showdown needs a 5-card board, got %d", len(board))
	}
	btn, err := score(btnHole, board)
	if err != nil {
		return 0, err
	}
	bb, err := score(bbHole, board)
	if err != nil {
		return 0, err
	}
	switch {
	case btn > bb:
		return ButtonWins, nil
	case bb > btn:
		return BigBlindWins, nil
	default:
		return Tie, nil
	}
}

func score(hole [2]dealer.Card, board []dealer.Card) (int16, error) {
	var cards [7]poker.Card
	for i, c := range board {
		pc, err := convert(c)
		if err != nil {
			return 0, fmt.Errorf("invalid board card %s: %w", c, err)
		}
		cards[i] = pc
	}
	for i, c := range hole {
		pc, err := convert(c)
		if err != nil {
			return 0, fmt.Errorf("invalid hole card %s: %w", c, err)
		}
		cards[5+i] = pc
	}
	return poker.Eval7(&cards), nil
}

// convert maps the ace-high card model (rank 2-14) onto the library's
// ace-low ranks (1-13).
func convert(c dealer.Card) (poker.Card, error) {
	r := c.Rank
	if r == 14 {
		r = 1
	}
	return poker.MakeCard(poker.Suit(c.Suit), poker.Rank(r))
}
