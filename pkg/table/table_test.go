package table

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"twocardpoker-server/internal/rng"
	"twocardpoker-server/internal/util"
	"twocardpoker-server/pkg/dealer"
	"twocardpoker-server/pkg/deck"
	"twocardpoker-server/pkg/leaderboard"
	"twocardpoker-server/pkg/model"
	"twocardpoker-server/pkg/ranking"
	"twocardpoker-server/pkg/store"
)

var cbg = context.Background()

// flakyStore fails card writes for the listed players
type flakyStore struct {
	*store.MemoryStore

	mu       sync.Mutex
	failCard map[string]bool
}

func newFlakyStore() *flakyStore {
	return &flakyStore{
		MemoryStore: store.NewMemoryStore(),
		failCard:    make(map[string]bool),
	}
}

func (f *flakyStore) failCardsFor(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failCard[id] = true
}

func (f *flakyStore) UpdatePlayerCards(ctx context.Context, id, cards string) error {
	f.mu.Lock()
	fail := f.failCard[id]
	f.mu.Unlock()

	if fail {
		return &store.RemoteWriteError{Op: store.OpUpdateCards, PlayerID: id, Err: errors.New("connection reset")}
	}

	return f.MemoryStore.UpdatePlayerCards(ctx, id, cards)
}

func newTable(s store.Store, maxPlayers int) (*Table, *leaderboard.Leaderboard) {
	board := leaderboard.New(time.Hour)
	return New(s, dealer.New(rng.NewSeeded(1)), board, maxPlayers), board
}

func draft() model.EditSession {
	session := model.NewPlayerSession()
	session.Draft.FirstName = "Test"
	session.Draft.LastName = "Player"
	session.Draft.Email = util.RandomEmail()
	session.Draft.PhoneNumber = "+1 555-123-4567"
	session.Draft.Username = util.RandomUsername() + fmt.Sprint(time.Now().UnixNano())
	return session
}

func seat(t *testing.T, tbl *Table, n int) []*model.Player {
	t.Helper()

	players := make([]*model.Player, n)
	for i := range players {
		p, _, err := tbl.Save(cbg, draft())
		if err != nil {
			t.Fatalf("could not seat player %d: %v", i, err)
		}

		players[i] = p
	}

	return players
}

func assertNoCollisions(t *testing.T, players []*model.Player) {
	t.Helper()

	seen := make(map[int]string)
	for _, p := range players {
		hand, err := p.Hand()
		if !assert.NoError(t, err) {
			continue
		}

		for _, index := range hand.Indexes() {
			if other, found := seen[index]; found {
				t.Errorf("card %d is held by %s and %s", index, other, p.ID)
			}

			seen[index] = p.ID
		}
	}
}

func TestTable_Save_create(t *testing.T) {
	a := assert.New(t)
	tbl, board := newTable(store.NewMemoryStore(), 0)

	session := draft()
	p, closed, err := tbl.Save(cbg, session)
	a.NoError(err)
	a.NotEmpty(p.ID)
	a.False(closed.IsActive())

	hand, err := deck.HandFromString(p.Cards)
	a.NoError(err)
	a.Equal(hand.Sorted(), hand, "stored in canonical order")

	a.True(board.Flush(), "the new player was published")
	a.Equal([]string{p.ID}, board.Current().IDs())
}

func TestTable_Save_noCollisions(t *testing.T) {
	tbl, _ := newTable(store.NewMemoryStore(), 0)
	seat(t, tbl, MaxPlayers)

	players, err := tbl.Players(cbg)
	assert.NoError(t, err)
	assert.Len(t, players, MaxPlayers)
	assertNoCollisions(t, players)
}

func TestTable_Save_tableFull(t *testing.T) {
	a := assert.New(t)
	tbl, _ := newTable(store.NewMemoryStore(), 2)
	seat(t, tbl, 2)

	session := draft()
	p, returned, err := tbl.Save(cbg, session)
	a.Nil(p)
	a.Equal(ErrTableFull, err)
	a.True(returned.IsActive())
	a.Equal(session.Draft, returned.Draft)
}

func TestTable_Save_validation(t *testing.T) {
	a := assert.New(t)
	s := store.NewMemoryStore()
	tbl, _ := newTable(s, 0)

	session := draft()
	session.Draft.Email = "bad"
	_, returned, err := tbl.Save(cbg, session)
	a.Equal(model.ErrInvalidEmail, err)
	a.Equal("bad", returned.Draft.Email)

	players, _ := s.GetPlayers(cbg)
	a.Empty(players, "nothing is written")

	_, _, err = tbl.Save(cbg, model.EditSession{})
	a.Equal(ErrNoSession, err)
}

func TestTable_Save_update(t *testing.T) {
	a := assert.New(t)
	tbl, _ := newTable(store.NewMemoryStore(), 0)
	p := seat(t, tbl, 1)[0]

	session := model.EditPlayerSession(p)
	a.False(session.IsNew())
	session.Draft.FirstName = "Renamed"
	session.Draft.Cards = "AS,AH" // identity updates don't touch the hand

	updated, closed, err := tbl.Save(cbg, session)
	a.NoError(err)
	a.False(closed.IsActive())
	a.Equal("Renamed", updated.FirstName)
	a.Equal(p.Cards, updated.Cards)
	a.Equal("Test", p.FirstName, "the original is not modified")
}

func TestTable_Save_duplicateUsername(t *testing.T) {
	a := assert.New(t)
	tbl, _ := newTable(store.NewMemoryStore(), 0)
	p := seat(t, tbl, 1)[0]

	session := draft()
	session.Draft.Username = p.Username
	_, returned, err := tbl.Save(cbg, session)
	a.True(errors.Is(err, store.ErrDuplicateKey))
	a.True(returned.IsActive())

	var rwe *store.RemoteWriteError
	a.True(errors.As(err, &rwe))
}

func TestTable_Delete(t *testing.T) {
	a := assert.New(t)
	tbl, _ := newTable(store.NewMemoryStore(), 0)
	players := seat(t, tbl, 2)

	a.NoError(tbl.Delete(cbg, players[0].ID))
	a.True(errors.Is(tbl.Delete(cbg, players[0].ID), store.ErrNotFound))

	remaining, err := tbl.Players(cbg)
	a.NoError(err)
	if a.Len(remaining, 1) {
		a.Equal(players[1].ID, remaining[0].ID)
	}
}

func TestTable_Redeal(t *testing.T) {
	a := assert.New(t)
	tbl, _ := newTable(store.NewMemoryStore(), 0)
	players := seat(t, tbl, 5)

	p, err := tbl.Redeal(cbg, players[2].ID)
	a.NoError(err)
	a.NotEqual(players[2].Cards, p.Cards)

	found, err := tbl.Player(cbg, players[2].ID)
	a.NoError(err)
	a.Equal(p.Cards, found.Cards)

	all, _ := tbl.Players(cbg)
	assertNoCollisions(t, all)

	_, err = tbl.Redeal(cbg, "missing")
	a.Equal(store.ErrNotFound, err)
}

func TestTable_Deal(t *testing.T) {
	a := assert.New(t)
	tbl, _ := newTable(store.NewMemoryStore(), 0)

	excluded := make([]int, 0, deck.Size)
	for i := 0; i < deck.Size-2; i++ {
		excluded = append(excluded, i)
	}

	hand, err := tbl.Deal(excluded)
	a.NoError(err)
	a.Equal("AD,AS", hand.String())

	_, err = tbl.Deal(append(excluded, 50))
	a.True(errors.Is(err, dealer.ErrInsufficientCards))

	_, err = tbl.Deal([]int{52})
	a.Equal(dealer.ErrInvalidCardIndex, err)
}

func TestTable_Reshuffle(t *testing.T) {
	a := assert.New(t)
	tbl, board := newTable(store.NewMemoryStore(), 0)
	seat(t, tbl, 10)
	board.Flush()

	dealt, err := tbl.Reshuffle(cbg)
	a.NoError(err)
	a.Len(dealt, 10)

	players, _ := tbl.Players(cbg)
	for i, p := range players {
		a.Equal(dealt[i].ID, p.ID)
		a.Equal(dealt[i].Cards, p.Cards)
	}

	assertNoCollisions(t, players)
	a.True(board.Flush())
}

func TestTable_Reshuffle_partialFailure(t *testing.T) {
	a := assert.New(t)
	s := newFlakyStore()
	tbl, _ := newTable(s, 0)
	players := seat(t, tbl, 4)

	s.failCardsFor(players[1].ID)
	s.failCardsFor(players[3].ID)

	dealt, err := tbl.Reshuffle(cbg)
	a.Len(dealt, 2)
	a.Equal(players[0].ID, dealt[0].ID)
	a.Equal(players[2].ID, dealt[1].ID)

	var merr *multierror.Error
	if a.True(errors.As(err, &merr)) {
		a.Len(merr.Errors, 2)
	}

	var rwe *store.RemoteWriteError
	if a.True(errors.As(err, &rwe)) {
		a.Equal(players[1].ID, rwe.PlayerID)
	}

	// the failed players keep their previous hands
	p1, _ := tbl.Player(cbg, players[1].ID)
	a.Equal(players[1].Cards, p1.Cards)
	p0, _ := tbl.Player(cbg, players[0].ID)
	a.Equal(dealt[0].Cards, p0.Cards)
}

func TestTable_Reshuffle_empty(t *testing.T) {
	a := assert.New(t)
	tbl, _ := newTable(store.NewMemoryStore(), 0)

	dealt, err := tbl.Reshuffle(cbg)
	a.NoError(err)
	a.Empty(dealt)
}

func TestTable_Ranked(t *testing.T) {
	a := assert.New(t)
	s := store.NewMemoryStore()
	tbl, _ := newTable(s, 0)

	for _, cards := range []string{"QC,3H", "2H,2C", "KH,AH"} {
		p := draft().Draft
		p.Cards = cards
		_, err := s.CreatePlayer(cbg, &p)
		a.NoError(err)
	}

	standings, err := tbl.Ranked(cbg)
	a.NoError(err)
	if a.Len(standings, 3) {
		a.Equal(ranking.Pair, standings[0].Category)
		a.Equal(ranking.StraightFlush, standings[1].Category)
		a.Equal(ranking.Other, standings[2].Category)
	}
}

func TestTable_Watch(t *testing.T) {
	a := assert.New(t)
	s := store.NewMemoryStore()
	tbl, board := newTable(s, 0)

	p := draft().Draft
	p.Cards = "AH,AC"
	_, err := s.CreatePlayer(cbg, &p)
	a.NoError(err)

	ctx, cancel := context.WithCancel(cbg)
	done := make(chan bool)
	go func() {
		tbl.Watch(ctx, 10*time.Millisecond)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for !board.Flush() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	a.Len(board.Current().Entries, 1)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watch did not stop")
	}
}
