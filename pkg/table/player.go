package table

import (
	"context"

	"github.com/sirupsen/logrus"
	"twocardpoker-server/pkg/dealer"
	"twocardpoker-server/pkg/model"
	"twocardpoker-server/pkg/store"
)

// Save creates or updates the player being edited
// A new player is dealt a hand that doesn't collide with any other player's cards.
// On success the returned session is closed; on failure the same session is returned so the draft can be fixed and saved again
func (t *Table) Save(ctx context.Context, session model.EditSession) (*model.Player, model.EditSession, error) {
	if !session.IsActive() {
		return nil, session, ErrNoSession
	}

	draft := session.Draft
	if err := draft.Validate(); err != nil {
		return nil, session, err
	}

	var saved *model.Player
	var err error
	if session.IsNew() {
		saved, err = t.create(ctx, &draft)
	} else {
		saved, err = t.update(ctx, &draft)
	}

	if err != nil {
		return nil, session, err
	}

	t.refresh(ctx)
	return saved, session.Close(), nil
}

func (t *Table) create(ctx context.Context, draft *model.Player) (*model.Player, error) {
	t.dealLock.Lock()
	defer t.dealLock.Unlock()

	players, err := t.store.GetPlayers(ctx)
	if err != nil {
		return nil, err
	}

	if len(players) >= t.maxPlayers {
		return nil, ErrTableFull
	}

	excluded, err := dealer.Exclusions(heldHands(players)...)
	if err != nil {
		return nil, err
	}

	hand, err := t.dealer.Draw(excluded)
	if err != nil {
		t.recordDealError(err)
		return nil, err
	}

	dealsTotal.WithLabelValues(reasonCreate).Inc()
	draft.Cards = hand.String()

	created, err := t.store.CreatePlayer(ctx, draft)
	if err != nil {
		t.recordWriteError(err)
		return nil, err
	}

	logrus.WithField("id", created.ID).WithField("cards", created.Cards).Info("player created")
	return created, nil
}

func (t *Table) update(ctx context.Context, draft *model.Player) (*model.Player, error) {
	updated, err := t.store.UpdatePlayer(ctx, draft)
	if err != nil {
		t.recordWriteError(err)
		return nil, err
	}

	logrus.WithField("id", updated.ID).Debug("player updated")
	return updated, nil
}

// Delete removes the player
func (t *Table) Delete(ctx context.Context, id string) error {
	if err := t.store.DeletePlayer(ctx, id); err != nil {
		t.recordWriteError(err)
		return err
	}

	logrus.WithField("id", id).Info("player deleted")
	t.refresh(ctx)
	return nil
}

// Redeal gives the player a new hand
// Both cards of every held hand, the player's own included, are excluded
func (t *Table) Redeal(ctx context.Context, id string) (*model.Player, error) {
	t.dealLock.Lock()
	defer t.dealLock.Unlock()

	players, err := t.store.GetPlayers(ctx)
	if err != nil {
		return nil, err
	}

	var target *model.Player
	for _, p := range players {
		if p.ID == id {
			target = p
			break
		}
	}

	if target == nil {
		return nil, store.ErrNotFound
	}

	excluded, err := dealer.Exclusions(heldHands(players)...)
	if err != nil {
		return nil, err
	}

	hand, err := t.dealer.Draw(excluded)
	if err != nil {
		t.recordDealError(err)
		return nil, err
	}

	dealsTotal.WithLabelValues(reasonRedeal).Inc()
	if err := t.store.UpdatePlayerCards(ctx, id, hand.String()); err != nil {
		t.recordWriteError(err)
		return nil, err
	}

	target.Cards = hand.String()
	t.refresh(ctx)
	return target, nil
}

func heldHands(players []*model.Player) []string {
	hands := make([]string, len(players))
	for i, p := range players {
		hands[i] = p.Cards
	}

	return hands
}
