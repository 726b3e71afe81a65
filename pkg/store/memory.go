package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"twocardpoker-server/pkg/model"
)

// MemoryStore keeps players in memory
// It is used by tests and by the server when no database is configured
type MemoryStore struct {
	mu      sync.RWMutex
	players map[string]*model.Player
	seq     map[string]int
	nextSeq int
}

// NewMemoryStore returns an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		players: make(map[string]*model.Player),
		seq:     make(map[string]int),
	}
}

// CreatePlayer inserts a copy of the player
func (m *MemoryStore) CreatePlayer(_ context.Context, p *model.Player) (*model.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := p.Clone()
	if cp.ID == "" {
		cp.ID = uuid.New().String()
	}

	if _, found := m.players[cp.ID]; found {
		return nil, writeError(OpCreate, cp.ID, ErrDuplicateKey)
	}

	for _, existing := range m.players {
		if existing.Username == cp.Username {
			return nil, writeError(OpCreate, cp.ID, ErrDuplicateKey)
		}
	}

	now := time.Now().UTC()
	cp.Created = now
	cp.Updated = now

	m.players[cp.ID] = cp
	m.seq[cp.ID] = m.nextSeq
	m.nextSeq++

	return cp.Clone(), nil
}

// GetPlayers returns copies of every player in the order they were created
func (m *MemoryStore) GetPlayers(_ context.Context) ([]*model.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	players := make([]*model.Player, 0, len(m.players))
	for _, p := range m.players {
		players = append(players, p.Clone())
	}

	sort.Slice(players, func(i, j int) bool {
		return m.seq[players[i].ID] < m.seq[players[j].ID]
	})

	return players, nil
}

// GetPlayerByID returns a copy of the player
func (m *MemoryStore) GetPlayerByID(_ context.Context, id string) (*model.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, found := m.players[id]
	if !found {
		return nil, ErrNotFound
	}

	return p.Clone(), nil
}

// UpdatePlayer saves the identity fields
func (m *MemoryStore) UpdatePlayer(_ context.Context, p *model.Player) (*model.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, found := m.players[p.ID]
	if !found {
		return nil, writeError(OpUpdate, p.ID, ErrNotFound)
	}

	for id, other := range m.players {
		if id != p.ID && other.Username == p.Username {
			return nil, writeError(OpUpdate, p.ID, ErrDuplicateKey)
		}
	}

	existing.SetIdentity(p)
	existing.Updated = time.Now().UTC()

	return existing.Clone(), nil
}

// UpdatePlayerCards saves the hand
func (m *MemoryStore) UpdatePlayerCards(_ context.Context, id, cards string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, found := m.players[id]
	if !found {
		return writeError(OpUpdateCards, id, ErrNotFound)
	}

	existing.Cards = cards
	existing.Updated = time.Now().UTC()
	return nil
}

// DeletePlayer removes the player
func (m *MemoryStore) DeletePlayer(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, found := m.players[id]; !found {
		return writeError(OpDelete, id, ErrNotFound)
	}

	delete(m.players, id)
	delete(m.seq, id)
	return nil
}
