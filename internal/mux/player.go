package mux

import (
	"net/http"

	gmux "github.com/gorilla/mux"
	"twocardpoker-server/pkg/model"
	"twocardpoker-server/pkg/ranking"
)

type playerPayload struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Username    string `json:"username"`
}

func (p playerPayload) apply(draft *model.Player) {
	draft.FirstName = p.FirstName
	draft.LastName = p.LastName
	draft.Email = p.Email
	draft.PhoneNumber = p.PhoneNumber
	draft.Username = p.Username
}

type rankedPlayer struct {
	*model.Player
	Position int              `json:"position"`
	Category ranking.Category `json:"category"`
}

// getPlayer returns the players in display order
func (m *Mux) getPlayer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, rows, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		standings, err := m.table.Ranked(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		from, to := page(len(standings), start, rows)
		players := make([]rankedPlayer, 0, to-from)
		for i := from; i < to; i++ {
			players = append(players, rankedPlayer{
				Player:   standings[i].Player,
				Position: i + 1,
				Category: standings[i].Category,
			})
		}

		writeJSON(w, http.StatusOK, players)
	}
}

func (m *Mux) getPlayerID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player, err := m.table.Player(r.Context(), gmux.Vars(r)["id"])
		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, player)
	}
}

// postPlayer creates a player and deals them in
func (m *Mux) postPlayer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload playerPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		session := model.NewPlayerSession()
		payload.apply(&session.Draft)

		player, _, err := m.table.Save(r.Context(), session)
		if err != nil {
			writeTableError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, player)
	}
}

// postPlayerID updates the player's identity fields
func (m *Mux) postPlayerID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload playerPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		existing, err := m.table.Player(r.Context(), gmux.Vars(r)["id"])
		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		session := model.EditPlayerSession(existing)
		payload.apply(&session.Draft)

		player, _, err := m.table.Save(r.Context(), session)
		if err != nil {
			writeTableError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, player)
	}
}

func (m *Mux) deletePlayerID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := m.table.Delete(r.Context(), gmux.Vars(r)["id"]); err != nil {
			writeTableError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, "OK")
	}
}
