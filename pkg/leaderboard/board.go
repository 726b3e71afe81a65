package leaderboard

import (
	"time"

	"twocardpoker-server/pkg/ranking"
)

// Entry is a player's position on the board
type Entry struct {
	Position  int              `json:"position"`
	ID        string           `json:"id"`
	Username  string           `json:"username"`
	FirstName string           `json:"firstName"`
	LastName  string           `json:"lastName"`
	Cards     string           `json:"cards"`
	Category  ranking.Category `json:"category"`
}

// Board is the result of one ranking pass
type Board struct {
	Version uint64    `json:"version"`
	Updated time.Time `json:"updated"`
	Entries []Entry   `json:"entries"`
}

func newBoard(version uint64, standings []ranking.Standing) Board {
	entries := make([]Entry, len(standings))
	for i, s := range standings {
		entries[i] = Entry{
			Position:  i + 1,
			ID:        s.Player.ID,
			Username:  s.Player.Username,
			FirstName: s.Player.FirstName,
			LastName:  s.Player.LastName,
			Cards:     s.Hand().String(),
			Category:  s.Category,
		}
	}

	return Board{
		Version: version,
		Updated: time.Now().UTC(),
		Entries: entries,
	}
}

// IDs returns the player IDs in board order
func (b Board) IDs() []string {
	ids := make([]string, len(b.Entries))
	for i, e := range b.Entries {
		ids[i] = e.ID
	}

	return ids
}
