package ranking

import (
	"encoding/json"
	"fmt"

	"twocardpoker-server/pkg/deck"
)

// Category is the classification bucket of a two-card hand
// The order of the constants is the display order of the buckets
type Category int

const (
	// Pair is a hand with two cards of the same rank
	Pair Category = iota
	// StraightFlush is a suited hand with consecutive ranks (no ace-low wrap)
	StraightFlush
	// Flush is any other suited hand
	Flush
	// Other is everything else
	Other
)

var categoryNames = map[Category]string{
	Pair:          "Pair",
	StraightFlush: "Straight Flush",
	Flush:         "Flush",
	Other:         "Other",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}

	return "Unknown"
}

// MarshalJSON encodes the category by name
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a category name
func (c *Category) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}

	for category, n := range categoryNames {
		if n == name {
			*c = category
			return nil
		}
	}

	return fmt.Errorf("unknown category: %s", name)
}

// IsPair returns true if both cards share a rank
func IsPair(h deck.Hand) bool {
	return h[0].Rank == h[1].Rank
}

// IsFlush returns true if both cards share a suit
func IsFlush(h deck.Hand) bool {
	return h[0].Suit == h[1].Suit
}

// IsStraightFlush returns true if the hand is suited and the ranks are consecutive.
// An ace is only high, so AH,2H is not a straight flush
func IsStraightFlush(h deck.Hand) bool {
	if !IsFlush(h) {
		return false
	}

	diff := h[0].RankIndex() - h[1].RankIndex()
	return diff == 1 || diff == -1
}

// Classify returns the hand's category, checking Pair, StraightFlush and Flush in that order
func Classify(h deck.Hand) Category {
	switch {
	case IsPair(h):
		return Pair
	case IsStraightFlush(h):
		return StraightFlush
	case IsFlush(h):
		return Flush
	default:
		return Other
	}
}

// ClassifyString parses the hand then classifies it
func ClassifyString(s string) (Category, error) {
	h, err := deck.HandFromString(s)
	if err != nil {
		return Other, err
	}

	return Classify(h), nil
}
