package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"twocardpoker-server/pkg/db"
	"twocardpoker-server/pkg/model"

	_ "modernc.org/sqlite" // needed
)

//go:embed migrations/*.sql
var migrationFS embed.FS

var migrationSetupOnce sync.Once

const sqliteColumns = `id, first_name, last_name, email, phone_number, username, cards, created, updated`

// SQLiteStore keeps players in a local SQLite file
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database at path and runs the embedded migrations
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// one writer at a time
	sqlDB.SetMaxOpenConns(1)

	if _, err := sqlDB.Exec(`PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;`); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("set sqlite pragmas: %w", err)
	}

	if err := runMigrations(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return &SQLiteStore{db: sqlDB}, nil
}

func runMigrations(sqlDB *sql.DB) error {
	var setupErr error
	migrationSetupOnce.Do(func() {
		goose.SetBaseFS(migrationFS)
		setupErr = goose.SetDialect("sqlite3")
	})
	if setupErr != nil {
		return fmt.Errorf("setup goose: %w", setupErr)
	}

	if err := goose.Up(sqlDB, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreatePlayer inserts the player
func (s *SQLiteStore) CreatePlayer(ctx context.Context, player *model.Player) (*model.Player, error) {
	cp := player.Clone()
	if cp.ID == "" {
		cp.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	cp.Created = now
	cp.Updated = now

	const query = `
INSERT INTO players (id, first_name, last_name, email, phone_number, username, cards, created, updated)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		cp.ID,
		cp.FirstName,
		cp.LastName,
		cp.Email,
		cp.PhoneNumber,
		cp.Username,
		cp.Cards,
		formatTime(cp.Created),
		formatTime(cp.Updated))
	if err != nil {
		return nil, writeError(OpCreate, cp.ID, sqliteError(err))
	}

	return cp, nil
}

// GetPlayers returns every player in the order they were created
func (s *SQLiteStore) GetPlayers(ctx context.Context) ([]*model.Player, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+sqliteColumns+` FROM players ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]*model.Player, 0)
	for rows.Next() {
		player, err := scanSQLitePlayer(rows)
		if err != nil {
			return nil, err
		}

		players = append(players, player)
	}

	return players, rows.Err()
}

// GetPlayerByID returns the player
func (s *SQLiteStore) GetPlayerByID(ctx context.Context, id string) (*model.Player, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sqliteColumns+` FROM players WHERE id = ?`, id)
	player, err := scanSQLitePlayer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return player, nil
}

// UpdatePlayer saves the identity fields
func (s *SQLiteStore) UpdatePlayer(ctx context.Context, player *model.Player) (*model.Player, error) {
	const query = `
UPDATE players
SET first_name = ?, last_name = ?, email = ?, phone_number = ?, username = ?, updated = ?
WHERE id = ?`

	res, err := s.db.ExecContext(ctx, query,
		player.FirstName,
		player.LastName,
		player.Email,
		player.PhoneNumber,
		player.Username,
		formatTime(time.Now().UTC()),
		player.ID)
	if err := affectedOne(res, err); err != nil {
		return nil, writeError(OpUpdate, player.ID, sqliteError(err))
	}

	updated, err := s.GetPlayerByID(ctx, player.ID)
	if err != nil {
		return nil, writeError(OpUpdate, player.ID, err)
	}

	return updated, nil
}

// UpdatePlayerCards saves the hand
func (s *SQLiteStore) UpdatePlayerCards(ctx context.Context, id, cards string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE players SET cards = ?, updated = ? WHERE id = ?`,
		cards,
		formatTime(time.Now().UTC()),
		id)
	return writeError(OpUpdateCards, id, affectedOne(res, err))
}

// DeletePlayer removes the player
func (s *SQLiteStore) DeletePlayer(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, id)
	return writeError(OpDelete, id, affectedOne(res, err))
}

func scanSQLitePlayer(row db.Scanner) (*model.Player, error) {
	var player model.Player
	var created, updated string
	if err := row.Scan(
		&player.ID,
		&player.FirstName,
		&player.LastName,
		&player.Email,
		&player.PhoneNumber,
		&player.Username,
		&player.Cards,
		&created,
		&updated,
	); err != nil {
		return nil, err
	}

	var err error
	if player.Created, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, err
	}

	if player.Updated, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return nil, err
	}

	return &player, nil
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func sqliteError(err error) error {
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrDuplicateKey
	}

	return err
}
