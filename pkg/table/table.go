// Package table runs the player table: registering players, dealing their hands and keeping the board current
package table

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"twocardpoker-server/pkg/dealer"
	"twocardpoker-server/pkg/leaderboard"
	"twocardpoker-server/pkg/model"
	"twocardpoker-server/pkg/ranking"
	"twocardpoker-server/pkg/store"
)

// MaxPlayers is the most players that can be dealt in from one deck
const MaxPlayers = 26

// ErrTableFull is returned when a player is created at a full table
const ErrTableFull = model.UserError("the table is full")

// ErrNoSession is returned when an inactive edit session is saved
const ErrNoSession = model.UserError("no player is being edited")

// Table coordinates the store, the dealer and the leaderboard
type Table struct {
	store      store.Store
	dealer     *dealer.Dealer
	board      *leaderboard.Leaderboard
	maxPlayers int

	// held while cards are picked and written, so two deals never see the same free cards
	dealLock sync.Mutex
}

// New returns a table
// board may be nil; maxPlayers <= 0 or above MaxPlayers uses MaxPlayers
func New(s store.Store, d *dealer.Dealer, board *leaderboard.Leaderboard, maxPlayers int) *Table {
	if maxPlayers <= 0 || maxPlayers > MaxPlayers {
		maxPlayers = MaxPlayers
	}

	if d == nil {
		d = dealer.New(nil)
	}

	return &Table{
		store:      s,
		dealer:     d,
		board:      board,
		maxPlayers: maxPlayers,
	}
}

// MaxPlayers returns the table's capacity
func (t *Table) MaxPlayers() int {
	return t.maxPlayers
}

// Players returns every player in the order they were created
func (t *Table) Players(ctx context.Context) ([]*model.Player, error) {
	return t.store.GetPlayers(ctx)
}

// Player returns a single player
func (t *Table) Player(ctx context.Context, id string) (*model.Player, error) {
	return t.store.GetPlayerByID(ctx, id)
}

// Ranked returns the players in display order with their categories
func (t *Table) Ranked(ctx context.Context) ([]ranking.Standing, error) {
	players, err := t.store.GetPlayers(ctx)
	if err != nil {
		return nil, err
	}

	return ranking.Standings(players)
}

// Refresh reads the players and publishes them to the board
func (t *Table) Refresh(ctx context.Context) error {
	if t.board == nil {
		return nil
	}

	players, err := t.store.GetPlayers(ctx)
	if err != nil {
		return err
	}

	t.board.Publish(players)
	return nil
}

// Watch refreshes the board every interval until the context is done
// Changes made by other writers to the store reach the board this way
func (t *Table) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := t.Refresh(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logrus.WithError(err).Warn("could not refresh the board")
			}
		}
	}
}

func (t *Table) refresh(ctx context.Context) {
	if err := t.Refresh(ctx); err != nil {
		logrus.WithError(err).Warn("could not refresh the board")
	}
}

func (t *Table) recordWriteError(err error) {
	var rwe *store.RemoteWriteError
	if errors.As(err, &rwe) {
		storeWriteFailures.WithLabelValues(rwe.Op).Inc()
	}
}

func (t *Table) recordDealError(err error) {
	if errors.Is(err, dealer.ErrInsufficientCards) {
		insufficientCards.Inc()
	}
}
