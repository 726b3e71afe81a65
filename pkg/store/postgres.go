package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"twocardpoker-server/pkg/db"
	"twocardpoker-server/pkg/model"
)

const pgColumns = `id, first_name, last_name, email, phone_number, username, cards, created, updated`

// PostgresStore keeps players in PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore returns a store backed by an open database
// The schema is expected to be migrated already, see db.MigrateInstance()
func NewPostgresStore(sqlDB *sql.DB) *PostgresStore {
	return &PostgresStore{db: sqlDB}
}

// CreatePlayer inserts the player
func (p *PostgresStore) CreatePlayer(ctx context.Context, player *model.Player) (*model.Player, error) {
	id := player.ID
	if id == "" {
		id = uuid.New().String()
	} else if _, err := uuid.Parse(id); err != nil {
		return nil, writeError(OpCreate, id, err)
	}

	const query = `
INSERT INTO players (id, first_name, last_name, email, phone_number, username, cards)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + pgColumns

	row := p.db.QueryRowContext(ctx, query,
		id,
		player.FirstName,
		player.LastName,
		player.Email,
		player.PhoneNumber,
		player.Username,
		player.Cards)

	created, err := scanPlayer(row)
	if err != nil {
		return nil, writeError(OpCreate, id, pgError(err))
	}

	return created, nil
}

// GetPlayers returns every player in the order they were created
func (p *PostgresStore) GetPlayers(ctx context.Context) ([]*model.Player, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT `+pgColumns+` FROM players ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]*model.Player, 0)
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}

		players = append(players, player)
	}

	return players, rows.Err()
}

// GetPlayerByID returns the player
func (p *PostgresStore) GetPlayerByID(ctx context.Context, id string) (*model.Player, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	row := p.db.QueryRowContext(ctx, `SELECT `+pgColumns+` FROM players WHERE id = $1`, id)
	player, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return player, nil
}

// UpdatePlayer saves the identity fields
func (p *PostgresStore) UpdatePlayer(ctx context.Context, player *model.Player) (*model.Player, error) {
	if _, err := uuid.Parse(player.ID); err != nil {
		return nil, writeError(OpUpdate, player.ID, ErrNotFound)
	}

	const query = `
UPDATE players
SET first_name = $1,
    last_name = $2,
    email = $3,
    phone_number = $4,
    username = $5,
    updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $6
RETURNING ` + pgColumns

	row := p.db.QueryRowContext(ctx, query,
		player.FirstName,
		player.LastName,
		player.Email,
		player.PhoneNumber,
		player.Username,
		player.ID)

	updated, err := scanPlayer(row)
	if err != nil {
		return nil, writeError(OpUpdate, player.ID, pgError(err))
	}

	return updated, nil
}

// UpdatePlayerCards saves the hand
func (p *PostgresStore) UpdatePlayerCards(ctx context.Context, id, cards string) error {
	if _, err := uuid.Parse(id); err != nil {
		return writeError(OpUpdateCards, id, ErrNotFound)
	}

	const query = `UPDATE players SET cards = $1, updated = (NOW() AT TIME ZONE 'utc') WHERE id = $2`
	res, err := p.db.ExecContext(ctx, query, cards, id)
	return writeError(OpUpdateCards, id, affectedOne(res, err))
}

// DeletePlayer removes the player
func (p *PostgresStore) DeletePlayer(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return writeError(OpDelete, id, ErrNotFound)
	}

	res, err := p.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	return writeError(OpDelete, id, affectedOne(res, err))
}

func scanPlayer(row db.Scanner) (*model.Player, error) {
	var player model.Player
	if err := row.Scan(
		&player.ID,
		&player.FirstName,
		&player.LastName,
		&player.Email,
		&player.PhoneNumber,
		&player.Username,
		&player.Cards,
		&player.Created,
		&player.Updated,
	); err != nil {
		return nil, err
	}

	return &player, nil
}

func pgError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicateKey
	}

	return err
}

func affectedOne(res sql.Result, err error) error {
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if n == 0 {
		return ErrNotFound
	}

	return nil
}
