package hand

// Street is one betting round of a hand.
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
	Complete
)

func (s Street) String() string {
	switch s {
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	case Showdown:
		return "showdown"
	case Complete:
		return "complete"
	}
	return "?"
}

// BoardSize is derived from the street, never stored, so a street/board
// mismatch is unrepresentable.
func (s Street) BoardSize() int {
	switch s {
	case Preflop:
		return 0
	case Flop:
		return 3
	case Turn:
		return 4
	default:
		return 5
	}
}

// Position is a seat's role within one hand. The button posts the small
// blind and acts first preflop; the big blind acts first on every later
// street.
type Position int

const (
	Button Position = iota
	BigBlind
)

func (p Position) Other() Position {
	if p == Button {
		return BigBlind
	}
	return Button
}

func (p Position) String() string {
	if p == Button {
		return "button"
	}
	return "big_blind"
}
