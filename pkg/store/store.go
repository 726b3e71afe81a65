// Package store persists player records
package store

import (
	"context"
	"errors"
	"fmt"

	"twocardpoker-server/pkg/model"
)

// ErrNotFound is returned when the player does not exist
var ErrNotFound = errors.New("player not found")

// ErrDuplicateKey happens if a player is created with a taken username
var ErrDuplicateKey = errors.New("duplicate key constraint violation")

// Store is the data store that owns the authoritative player records
type Store interface {
	// CreatePlayer inserts the player and returns the stored record
	// An ID is generated if the player doesn't have one
	CreatePlayer(ctx context.Context, p *model.Player) (*model.Player, error)
	// GetPlayers returns every player in the order they were created
	GetPlayers(ctx context.Context) ([]*model.Player, error)
	// GetPlayerByID returns ErrNotFound if the player doesn't exist
	GetPlayerByID(ctx context.Context, id string) (*model.Player, error)
	// UpdatePlayer saves the identity fields of the player
	UpdatePlayer(ctx context.Context, p *model.Player) (*model.Player, error)
	// UpdatePlayerCards saves a new hand for the player
	UpdatePlayerCards(ctx context.Context, id, cards string) error
	// DeletePlayer removes the player
	DeletePlayer(ctx context.Context, id string) error
}

// RemoteWriteError is returned when the store rejects or fails a write
type RemoteWriteError struct {
	Op       string
	PlayerID string
	Err      error
}

func (r *RemoteWriteError) Error() string {
	if r.PlayerID == "" {
		return fmt.Sprintf("%s player: %v", r.Op, r.Err)
	}

	return fmt.Sprintf("%s player %s: %v", r.Op, r.PlayerID, r.Err)
}

func (r *RemoteWriteError) Unwrap() error {
	return r.Err
}

// write operations
const (
	OpCreate      = "create"
	OpUpdate      = "update"
	OpUpdateCards = "update cards of"
	OpDelete      = "delete"
)

func writeError(op, id string, err error) error {
	if err == nil {
		return nil
	}

	return &RemoteWriteError{
		Op:       op,
		PlayerID: id,
		Err:      err,
	}
}
