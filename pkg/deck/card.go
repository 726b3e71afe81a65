package deck

import (
	"fmt"
	"strconv"
	"strings"
)

// Suit represents a card suit
type Suit string

// suit constants
const (
	Clubs    Suit = "clubs"
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Spades   Suit = "spades"
)

// Symbol returns the one letter suit symbol used in the canonical card string
func (s Suit) Symbol() string {
	switch s {
	case Clubs:
		return "C"
	case Hearts:
		return "H"
	case Diamonds:
		return "D"
	case Spades:
		return "S"
	}

	return ""
}

// face cards
const (
	Jack  = 11
	Queen = 12
	King  = 13
	Ace   = 14

	lowestRank = 2
)

// Card is an individual playing card
type Card struct {
	Rank int  `json:"rank"`
	Suit Suit `json:"suit"`
}

// ParseError is returned when a card or a hand cannot be parsed
type ParseError struct {
	Input  string
	Reason string
}

func (p *ParseError) Error() string {
	return fmt.Sprintf("could not parse %q: %s", p.Input, p.Reason)
}

func (c Card) String() string {
	return CardToString(c)
}

// Equal returns true if the cards are equal (matches suit and rank)
func (c Card) Equal(card Card) bool {
	return c.Suit == card.Suit && c.Rank == card.Rank
}

// RankIndex returns the position of the rank in Ranks(), 0 (two) to 12 (ace)
func (c Card) RankIndex() int {
	return c.Rank - lowestRank
}

// RankSymbol returns the rank portion of the canonical string
func (c Card) RankSymbol() string {
	switch c.Rank {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return strconv.Itoa(c.Rank)
	}
}

// CardFromString returns a Card from its canonical string.
// The last character is the suit (C, H, D or S) and the remainder is the rank (2-10, J, Q, K or A).
func CardFromString(s string) (Card, error) {
	if len(s) < 2 {
		return Card{}, &ParseError{Input: s, Reason: "card must be a rank followed by a suit"}
	}

	upper := strings.ToUpper(s)
	suitSymbol := upper[len(upper)-1:]
	rankSymbol := upper[:len(upper)-1]

	var suit Suit
	switch suitSymbol {
	case "C":
		suit = Clubs
	case "H":
		suit = Hearts
	case "D":
		suit = Diamonds
	case "S":
		suit = Spades
	default:
		return Card{}, &ParseError{Input: s, Reason: fmt.Sprintf("unknown suit %q", suitSymbol)}
	}

	rank, ok := rankBySymbol[rankSymbol]
	if !ok {
		return Card{}, &ParseError{Input: s, Reason: fmt.Sprintf("unknown rank %q", rankSymbol)}
	}

	return Card{
		Rank: rank,
		Suit: suit,
	}, nil
}

// MustCardFromString is like CardFromString but panics on error.
// It should only be used with literal cards, e.g., in tests
func MustCardFromString(s string) Card {
	card, err := CardFromString(s)
	if err != nil {
		panic(err)
	}

	return card
}

// CardToString converts a card (Ace of Spades) to a string (AS)
func CardToString(card Card) string {
	return card.RankSymbol() + card.Suit.Symbol()
}

// CardsFromString returns a slice of cards from a comma separated list
func CardsFromString(s string) ([]Card, error) {
	if s == "" {
		return []Card{}, nil
	}

	cardStrings := strings.Split(s, ",")
	cards := make([]Card, len(cardStrings))
	for i, cardString := range cardStrings {
		card, err := CardFromString(strings.TrimSpace(cardString))
		if err != nil {
			return nil, err
		}

		cards[i] = card
	}

	return cards, nil
}

// CardsToString will convert a slice of cards to a string in the format of 2C,3H,4S,...
func CardsToString(cards []Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = CardToString(card)
	}

	return strings.Join(c, ",")
}
