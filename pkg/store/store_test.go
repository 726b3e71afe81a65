package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"twocardpoker-server/pkg/db"
	"twocardpoker-server/pkg/model"
)

type storeFactory func(t *testing.T) Store

func factories(t *testing.T) map[string]storeFactory {
	f := map[string]storeFactory{
		"memory": func(t *testing.T) Store {
			return NewMemoryStore()
		},
		"sqlite": func(t *testing.T) Store {
			s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "players.db"))
			require.NoError(t, err)

			t.Cleanup(func() {
				_ = s.Close()
			})

			return s
		},
	}

	if dsn := os.Getenv("PG_DSN"); dsn != "" {
		f["postgres"] = func(t *testing.T) Store {
			sqlDB, err := db.Open(dsn)
			require.NoError(t, err)
			require.NoError(t, db.MigrateInstance(sqlDB, "../../sql"))

			_, err = sqlDB.Exec(`DELETE FROM players`)
			require.NoError(t, err)

			t.Cleanup(func() {
				_ = sqlDB.Close()
			})

			return NewPostgresStore(sqlDB)
		}
	} else {
		t.Log("PG_DSN is not set, skipping postgres")
	}

	return f
}

func newPlayer(username, cards string) *model.Player {
	return &model.Player{
		FirstName:   "Test",
		LastName:    "Player",
		Email:       username + "@example.com",
		PhoneNumber: "+1 555-123-4567",
		Username:    username,
		Cards:       cards,
	}
}

func TestStore_createAndGet(t *testing.T) {
	for name, factory := range factories(t) {
		t.Run(name, func(t *testing.T) {
			a := assert.New(t)
			ctx := context.Background()
			s := factory(t)

			p1, err := s.CreatePlayer(ctx, newPlayer("first", "AH,KH"))
			a.NoError(err)
			a.NotEmpty(p1.ID)
			a.False(p1.Created.IsZero())

			p2, err := s.CreatePlayer(ctx, newPlayer("second", "2C,2D"))
			a.NoError(err)

			players, err := s.GetPlayers(ctx)
			a.NoError(err)
			if a.Len(players, 2) {
				a.Equal(p1.ID, players[0].ID)
				a.Equal(p2.ID, players[1].ID)
				a.Equal("AH,KH", players[0].Cards)
				a.Equal("second@example.com", players[1].Email)
			}

			found, err := s.GetPlayerByID(ctx, p2.ID)
			a.NoError(err)
			a.Equal("second", found.Username)
		})
	}
}

func TestStore_duplicateUsername(t *testing.T) {
	for name, factory := range factories(t) {
		t.Run(name, func(t *testing.T) {
			a := assert.New(t)
			ctx := context.Background()
			s := factory(t)

			_, err := s.CreatePlayer(ctx, newPlayer("taken", "AH,KH"))
			a.NoError(err)

			_, err = s.CreatePlayer(ctx, newPlayer("taken", "2C,2D"))
			a.True(errors.Is(err, ErrDuplicateKey))

			var rwe *RemoteWriteError
			if a.True(errors.As(err, &rwe)) {
				a.Equal(OpCreate, rwe.Op)
			}
		})
	}
}

func TestStore_notFound(t *testing.T) {
	for name, factory := range factories(t) {
		t.Run(name, func(t *testing.T) {
			a := assert.New(t)
			ctx := context.Background()
			s := factory(t)

			missing := "5b8e0b9a-4a0a-4a43-9d7e-0d7f2b1f2b1f"

			_, err := s.GetPlayerByID(ctx, missing)
			a.Equal(ErrNotFound, err)

			_, err = s.UpdatePlayer(ctx, &model.Player{ID: missing, Username: "x"})
			a.True(errors.Is(err, ErrNotFound))

			err = s.UpdatePlayerCards(ctx, missing, "AH,KH")
			a.True(errors.Is(err, ErrNotFound))

			err = s.DeletePlayer(ctx, missing)
			a.True(errors.Is(err, ErrNotFound))

			var rwe *RemoteWriteError
			if a.True(errors.As(err, &rwe)) {
				a.Equal(OpDelete, rwe.Op)
				a.Equal(missing, rwe.PlayerID)
			}
		})
	}
}

func TestStore_update(t *testing.T) {
	for name, factory := range factories(t) {
		t.Run(name, func(t *testing.T) {
			a := assert.New(t)
			ctx := context.Background()
			s := factory(t)

			p, err := s.CreatePlayer(ctx, newPlayer("before", "AH,KH"))
			a.NoError(err)

			edit := p.Clone()
			edit.Username = "after"
			edit.FirstName = "Changed"
			edit.Cards = "2C,2D" // ignored by UpdatePlayer

			updated, err := s.UpdatePlayer(ctx, edit)
			a.NoError(err)
			a.Equal("after", updated.Username)
			a.Equal("Changed", updated.FirstName)
			a.Equal("AH,KH", updated.Cards)

			a.NoError(s.UpdatePlayerCards(ctx, p.ID, "3S,3H"))
			found, err := s.GetPlayerByID(ctx, p.ID)
			a.NoError(err)
			a.Equal("3S,3H", found.Cards)
			a.Equal("after", found.Username)
		})
	}
}

func TestStore_updateDuplicateUsername(t *testing.T) {
	for name, factory := range factories(t) {
		t.Run(name, func(t *testing.T) {
			a := assert.New(t)
			ctx := context.Background()
			s := factory(t)

			_, err := s.CreatePlayer(ctx, newPlayer("one", "AH,KH"))
			a.NoError(err)
			p2, err := s.CreatePlayer(ctx, newPlayer("two", "2C,2D"))
			a.NoError(err)

			edit := p2.Clone()
			edit.Username = "one"
			_, err = s.UpdatePlayer(ctx, edit)
			a.True(errors.Is(err, ErrDuplicateKey))
		})
	}
}

func TestStore_delete(t *testing.T) {
	for name, factory := range factories(t) {
		t.Run(name, func(t *testing.T) {
			a := assert.New(t)
			ctx := context.Background()
			s := factory(t)

			p, err := s.CreatePlayer(ctx, newPlayer("gone", "AH,KH"))
			a.NoError(err)

			a.NoError(s.DeletePlayer(ctx, p.ID))

			_, err = s.GetPlayerByID(ctx, p.ID)
			a.Equal(ErrNotFound, err)

			players, err := s.GetPlayers(ctx)
			a.NoError(err)
			a.Empty(players)
		})
	}
}

func TestMemoryStore_returnsCopies(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()
	s := NewMemoryStore()

	p, err := s.CreatePlayer(ctx, newPlayer("copy", "AH,KH"))
	a.NoError(err)

	p.Cards = "2C,2D"

	found, err := s.GetPlayerByID(ctx, p.ID)
	a.NoError(err)
	a.Equal("AH,KH", found.Cards)
}

func TestRemoteWriteError_Error(t *testing.T) {
	a := assert.New(t)

	err := &RemoteWriteError{Op: OpDelete, PlayerID: "abc", Err: ErrNotFound}
	a.Equal("delete player abc: player not found", err.Error())

	err = &RemoteWriteError{Op: OpCreate, Err: ErrDuplicateKey}
	a.Equal("create player: duplicate key constraint violation", err.Error())

	a.Nil(writeError(OpCreate, "abc", nil))
}
