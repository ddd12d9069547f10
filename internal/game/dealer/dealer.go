package dealer

import "math/rand"

// Dealer shuffles and deals; it knows nothing about betting rules.
type Dealer struct {
	deck []Card
	rnd  *rand.Rand
}

func NewDealer(seed int64) *Dealer {
	return &Dealer{
		deck: make([]Card, 0, 52),
		rnd:  rand.New(rand.NewSource(seed)),
	}
}

// NewDeck builds a fresh 52-card deck and shuffles it.
func (d *Dealer) NewDeck() {
	d.deck = d.makeDeck()
	d.shuffle()
}

func (d *Dealer) makeDeck() []Card {
	deck := make([]Card, 0, 52)
	for s := 0; s < 4; s++ {
		for r := 2; r <= 14; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

func (d *Dealer) shuffle() {
	d.rnd.Shuffle(len(d.deck), func(i, j int) {
		d.deck[i], d.deck[j] = d.deck[j], d.deck[i]
	})
}

// DealHole deals two hole cards for one seat.
func (d *Dealer) DealHole() [2]Card {
	return [2]Card{d.draw(), d.draw()}
}

// DealCommunity deals n board cards (no burn).
func (d *Dealer) DealCommunity(n int) []Card {
	out := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, d.draw())
	}
	return out
}

// Remaining reports how many cards are left in the deck.
func (d *Dealer) Remaining() int {
	return len(d.deck)
}

func (d *Dealer) draw() Card {
	if len(d.deck) == 0 {
		// a heads-up hand consumes at most 9 of 52 cards
		panic("dealer: draw from empty deck")
	}
	c := d.deck[0]
	d.deck = d.deck[1:]
	return c
}
