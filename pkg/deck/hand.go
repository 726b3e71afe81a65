package deck

import (
	"strings"
)

// Hand is a player's two cards
// A canonical hand has the higher rank first
type Hand [2]Card

// NewHand returns the cards as a canonical hand
func NewHand(a, b Card) Hand {
	return Hand{a, b}.Sorted()
}

// HandFromString parses a "<card>,<card>" string.
// The result is not reordered; use SortHand for the canonical order
func HandFromString(s string) (Hand, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Hand{}, &ParseError{Input: s, Reason: "a hand must have exactly two cards"}
	}

	var h Hand
	for i, part := range parts {
		card, err := CardFromString(strings.TrimSpace(part))
		if err != nil {
			return Hand{}, &ParseError{Input: s, Reason: err.Error()}
		}

		h[i] = card
	}

	if h[0].Equal(h[1]) {
		return Hand{}, &ParseError{Input: s, Reason: "a hand cannot hold the same card twice"}
	}

	return h, nil
}

// SortHand parses the hand and returns it in canonical order
func SortHand(s string) (Hand, error) {
	h, err := HandFromString(s)
	if err != nil {
		return Hand{}, err
	}

	return h.Sorted(), nil
}

// Sorted returns the hand with the higher rank first.
// Cards of equal rank are ordered by their position in the deck
func (h Hand) Sorted() Hand {
	if h[1].Rank > h[0].Rank {
		return Hand{h[1], h[0]}
	}

	if h[1].Rank == h[0].Rank && Index(h[1]) < Index(h[0]) {
		return Hand{h[1], h[0]}
	}

	return h
}

// High returns the first card
func (h Hand) High() Card {
	return h[0]
}

// Low returns the second card
func (h Hand) Low() Card {
	return h[1]
}

// HasCard returns true if the hand contains the specified card
func (h Hand) HasCard(card Card) bool {
	return h[0].Equal(card) || h[1].Equal(card)
}

// Indexes returns the deck positions of both cards
func (h Hand) Indexes() []int {
	return []int{Index(h[0]), Index(h[1])}
}

func (h Hand) String() string {
	return CardsToString(h[:])
}
