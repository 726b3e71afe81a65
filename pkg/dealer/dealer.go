// Package dealer draws two-card hands from the cards that are not already in play
package dealer

import (
	"errors"
	"fmt"

	"twocardpoker-server/internal/rng"
	"twocardpoker-server/pkg/deck"
)

// ErrInsufficientCards is returned when there are not enough cards left to deal a hand
var ErrInsufficientCards = errors.New("not enough cards left in the deck")

// ErrInvalidCardIndex is returned when an excluded index is not a position in the deck
var ErrInvalidCardIndex = errors.New("excluded card index must be between 0 and 51")

// InsufficientCardsError contains how many cards were left when the draw failed
type InsufficientCardsError struct {
	Remaining int
}

func (i *InsufficientCardsError) Error() string {
	return fmt.Sprintf("%s: %d remaining", ErrInsufficientCards, i.Remaining)
}

// Is allows errors.Is(err, ErrInsufficientCards)
func (i *InsufficientCardsError) Is(target error) bool {
	return target == ErrInsufficientCards
}

// Dealer deals hands
type Dealer struct {
	rng rng.Generator
}

// New returns a dealer that picks cards with the generator
func New(gen rng.Generator) *Dealer {
	if gen == nil {
		gen = rng.Crypto{}
	}

	return &Dealer{rng: gen}
}

// Draw picks two cards that are not in excluded.
// The second card is picked after the first has been added to the exclusions, so the two never collide.
// The hand is returned in canonical order.
func (d *Dealer) Draw(excluded []int) (deck.Hand, error) {
	used, err := newUsedSet(excluded)
	if err != nil {
		return deck.Hand{}, err
	}

	return d.draw(used)
}

func (d *Dealer) draw(used map[int]bool) (deck.Hand, error) {
	if n := deck.Size - len(used); n < 2 {
		return deck.Hand{}, &InsufficientCardsError{Remaining: n}
	}

	var picked [2]deck.Card
	for i := range picked {
		pool := remaining(used)
		if len(pool) == 0 {
			return deck.Hand{}, &InsufficientCardsError{Remaining: 0}
		}

		index := pool[d.rng.Intn(len(pool))]
		used[index] = true

		// index always comes from the pool, so CardAt cannot fail
		card, _ := deck.CardAt(index)
		picked[i] = card
	}

	return deck.NewHand(picked[0], picked[1]), nil
}

// DealAll deals a new hand to every player ID in order.
// Cards dealt earlier in the pass are excluded from later draws, along with the excluded indices.
// On failure no hands are returned.
func (d *Dealer) DealAll(ids []string, excluded []int) (map[string]deck.Hand, error) {
	used, err := newUsedSet(excluded)
	if err != nil {
		return nil, err
	}

	hands := make(map[string]deck.Hand, len(ids))
	for _, id := range ids {
		hand, err := d.draw(used)
		if err != nil {
			return nil, err
		}

		hands[id] = hand
	}

	return hands, nil
}

// Exclusions returns the deck positions of both cards of every hand.
// Empty strings are skipped, which is what a player without a hand stores.
func Exclusions(hands ...string) ([]int, error) {
	excluded := make([]int, 0, len(hands)*2)
	for _, s := range hands {
		if s == "" {
			continue
		}

		hand, err := deck.HandFromString(s)
		if err != nil {
			return nil, err
		}

		excluded = append(excluded, hand.Indexes()...)
	}

	return excluded, nil
}

func newUsedSet(excluded []int) (map[int]bool, error) {
	used := make(map[int]bool, len(excluded)+2)
	for _, index := range excluded {
		if index < 0 || index >= deck.Size {
			return nil, ErrInvalidCardIndex
		}

		used[index] = true
	}

	return used, nil
}

// remaining returns the deck positions not in used, in deck order
func remaining(used map[int]bool) []int {
	pool := make([]int, 0, deck.Size)
	for i := 0; i < deck.Size; i++ {
		if !used[i] {
			pool = append(pool, i)
		}
	}

	return pool
}
