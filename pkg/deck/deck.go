package deck

import (
	"errors"
)

// Size is the number of cards in the deck
const Size = 52

// ErrIndexOutOfRange is returned when a deck index is not between 0 and 51
var ErrIndexOutOfRange = errors.New("card index out of range")

var rankSymbols = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

var suitOrder = []Suit{Clubs, Hearts, Diamonds, Spades}

var rankBySymbol = make(map[string]int, len(rankSymbols))

// the deck never changes once built
var cards []Card
var cardStrings []string

func init() {
	for i, symbol := range rankSymbols {
		rankBySymbol[symbol] = i + lowestRank
	}

	cards = make([]Card, 0, Size)
	cardStrings = make([]string, 0, Size)
	for _, suit := range suitOrder {
		for rank := lowestRank; rank <= Ace; rank++ {
			card := Card{Rank: rank, Suit: suit}
			cards = append(cards, card)
			cardStrings = append(cardStrings, CardToString(card))
		}
	}
}

// AllCards returns the 52 canonical card strings.
// The order is fixed: clubs 2..A, hearts 2..A, diamonds 2..A, spades 2..A
func AllCards() []string {
	c := make([]string, len(cardStrings))
	copy(c, cardStrings)
	return c
}

// Ranks returns the 13 rank symbols from low to high
func Ranks() []string {
	r := make([]string, len(rankSymbols))
	copy(r, rankSymbols)
	return r
}

// Suits returns the 4 suit symbols in deck order
func Suits() []string {
	s := make([]string, len(suitOrder))
	for i, suit := range suitOrder {
		s[i] = suit.Symbol()
	}

	return s
}

// Index returns the position of the card in AllCards()
func Index(card Card) int {
	for i, suit := range suitOrder {
		if suit == card.Suit {
			return i*len(rankSymbols) + card.RankIndex()
		}
	}

	return -1
}

// CardAt returns the card at position i of AllCards()
func CardAt(i int) (Card, error) {
	if i < 0 || i >= Size {
		return Card{}, ErrIndexOutOfRange
	}

	return cards[i], nil
}
