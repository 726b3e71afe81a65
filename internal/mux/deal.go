package mux

import (
	"errors"
	"net/http"

	gmux "github.com/gorilla/mux"
	"github.com/hashicorp/go-multierror"
	"twocardpoker-server/pkg/table"
)

type dealPayload struct {
	ExcludedCardIndices []int `json:"excludedCardIndices"`
}

type dealResponse struct {
	Cards string `json:"cards"`
}

type reshuffleResponse struct {
	Players []table.Dealt `json:"players"`
	Errors  []string      `json:"errors"`
}

// postDeal draws a hand without writing it anywhere
func (m *Mux) postDeal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload dealPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		hand, err := m.table.Deal(payload.ExcludedCardIndices)
		if err != nil {
			writeTableError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, dealResponse{Cards: hand.String()})
	}
}

func (m *Mux) postPlayerIDDeal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player, err := m.table.Redeal(r.Context(), gmux.Vars(r)["id"])
		if err != nil {
			writeTableError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, table.Dealt{ID: player.ID, Cards: player.Cards})
	}
}

// postReshuffle deals everybody a new hand
// Hands that could not be written are reported in errors, the rest stay written
func (m *Mux) postReshuffle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dealt, err := m.table.Reshuffle(r.Context())
		if dealt == nil && err != nil {
			writeTableError(w, err)
			return
		}

		resp := reshuffleResponse{
			Players: dealt,
			Errors:  make([]string, 0),
		}

		var merr *multierror.Error
		if errors.As(err, &merr) {
			for _, e := range merr.Errors {
				resp.Errors = append(resp.Errors, e.Error())
			}
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
