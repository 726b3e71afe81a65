// Package ranking classifies two-card hands and orders players for display
package ranking

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"twocardpoker-server/pkg/deck"
	"twocardpoker-server/pkg/model"
)

// Standing is a player's place on the board
type Standing struct {
	Player   *model.Player `json:"player"`
	Category Category      `json:"category"`

	hand deck.Hand
}

// Hand returns the player's hand in canonical order
func (s Standing) Hand() deck.Hand {
	return s.hand
}

// Rank orders the players for display.
// See Standings for the ordering rules
func Rank(players []*model.Player) ([]*model.Player, error) {
	standings, err := Standings(players)
	if err != nil {
		return nil, err
	}

	ranked := make([]*model.Player, len(standings))
	for i, s := range standings {
		ranked[i] = s.Player
	}

	return ranked, nil
}

// Standings classifies every player's hand and returns them in display order:
// all pairs, then straight flushes, then flushes, then everything else.
//
// Pairs, straight flushes and flushes are ordered by the rank of the high card, descending.
// The other hands are grouped by the high card, descending, then sorted by the low card, descending,
// across the whole bucket. Every sort is stable, so ties keep their input order.
//
// A player whose cards do not parse fails the whole pass. Neither the slice nor the players are modified.
func Standings(players []*model.Player) ([]Standing, error) {
	var buckets [4][]Standing

	for _, p := range players {
		hand, err := deck.SortHand(p.Cards)
		if err != nil {
			return nil, fmt.Errorf("player %s: %w", p.ID, err)
		}

		category := Classify(hand)
		buckets[category] = append(buckets[category], Standing{
			Player:   p,
			Category: category,
			hand:     hand,
		})
	}

	for _, c := range []Category{Pair, StraightFlush, Flush} {
		sortByHighCard(buckets[c])
	}

	sortByHighCard(buckets[Other])
	sortByLowCard(buckets[Other])

	standings := make([]Standing, 0, len(players))
	for _, bucket := range buckets {
		standings = append(standings, bucket...)
	}

	logrus.WithFields(logrus.Fields{
		"pairs":           len(buckets[Pair]),
		"straightFlushes": len(buckets[StraightFlush]),
		"flushes":         len(buckets[Flush]),
		"others":          len(buckets[Other]),
	}).Trace("ranked players")

	return standings, nil
}

func sortByHighCard(s []Standing) {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].hand.High().Rank > s[j].hand.High().Rank
	})
}

func sortByLowCard(s []Standing) {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].hand.Low().Rank > s[j].hand.Low().Rank
	})
}
