package table

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"twocardpoker-server/pkg/deck"
)

// Dealt is a hand that was written for a player
type Dealt struct {
	ID    string `json:"id"`
	Cards string `json:"cards"`
}

// Deal draws a hand that avoids the excluded deck positions
// Nothing is written to the store
func (t *Table) Deal(excluded []int) (deck.Hand, error) {
	hand, err := t.dealer.Draw(excluded)
	if err != nil {
		t.recordDealError(err)
		return deck.Hand{}, err
	}

	dealsTotal.WithLabelValues(reasonRequest).Inc()
	return hand, nil
}

// Reshuffle deals every player a new hand from a fresh deck
// Each hand is written on its own. A failed write does not stop or undo the others;
// the hands that were written are returned along with every failure
func (t *Table) Reshuffle(ctx context.Context) ([]Dealt, error) {
	t.dealLock.Lock()
	defer t.dealLock.Unlock()

	players, err := t.store.GetPlayers(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}

	hands, err := t.dealer.DealAll(ids, nil)
	if err != nil {
		t.recordDealError(err)
		return nil, err
	}

	dealt := make([]Dealt, 0, len(ids))
	var result *multierror.Error
	for _, id := range ids {
		cards := hands[id].String()
		dealsTotal.WithLabelValues(reasonReshuffle).Inc()

		if err := t.store.UpdatePlayerCards(ctx, id, cards); err != nil {
			t.recordWriteError(err)
			logrus.WithError(err).WithField("id", id).Warn("could not write reshuffled hand")
			result = multierror.Append(result, err)
			continue
		}

		dealt = append(dealt, Dealt{ID: id, Cards: cards})
	}

	logrus.WithField("players", len(ids)).WithField("written", len(dealt)).Info("reshuffled")
	t.refresh(ctx)
	return dealt, result.ErrorOrNil()
}
