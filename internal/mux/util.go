package mux

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"twocardpoker-server/pkg/dealer"
	"twocardpoker-server/pkg/deck"
	"twocardpoker-server/pkg/model"
	"twocardpoker-server/pkg/store"
	"twocardpoker-server/pkg/table"
)

const maxRows = 100
const defaultRows = table.MaxPlayers

func parsePaginationOptions(r *http.Request) (int, int, error) {
	start := 0
	rows := defaultRows

	if startStr := r.FormValue("start"); startStr != "" {
		val, err := strconv.Atoi(startStr)
		if err != nil {
			return 0, 0, err
		}

		if val < 0 {
			return 0, 0, errors.New("start cannot be less than zero")
		}

		start = val
	}

	if rowsStr := r.FormValue("rows"); rowsStr != "" {
		val, err := strconv.Atoi(rowsStr)
		if err != nil {
			return 0, 0, err
		}

		if val <= 0 {
			return 0, 0, errors.New("rows must be greater than zero")
		}

		if val > maxRows {
			return 0, 0, fmt.Errorf("rows cannot be greater than %d", maxRows)
		}

		rows = val
	}

	return start, rows, nil
}

// page returns the bounds of a page over n items
func page(n, start, rows int) (int, int) {
	if start > n {
		start = n
	}

	end := start + rows
	if end > n {
		end = n
	}

	return start, end
}

func remoteAddr(r *http.Request) string {
	parts := strings.Split(r.RemoteAddr, ":")
	if len(parts) == 1 {
		return parts[0]
	}

	return strings.Join(parts[0:len(parts)-1], ":")
}

func decodeRequest(w http.ResponseWriter, r *http.Request, payload interface{}) bool {
	if ct := r.Header.Get("Content-Type"); ct != "application/json" && ct != "text/json" {
		writeJSONError(w, http.StatusUnsupportedMediaType, nil)
		return false
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return false
	}

	return true
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("could not write JSON response")
	}
}

type errorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// errUsernameTaken replaces the store's duplicate key error
const errUsernameTaken = model.UserError("username is already taken")

// writeTableError maps errors from the table to a status code
func writeTableError(w http.ResponseWriter, err error) {
	var userErr model.UserError
	var parseErr *deck.ParseError
	var writeErr *store.RemoteWriteError

	switch {
	case errors.Is(err, table.ErrTableFull), errors.Is(err, dealer.ErrInsufficientCards):
		writeJSONError(w, http.StatusConflict, err)
	case errors.Is(err, store.ErrDuplicateKey):
		writeJSONError(w, http.StatusBadRequest, errUsernameTaken)
	case errors.Is(err, store.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, nil)
	case errors.As(err, &userErr),
		errors.As(err, &parseErr),
		errors.Is(err, dealer.ErrInvalidCardIndex):
		writeJSONError(w, http.StatusBadRequest, err)
	case errors.As(err, &writeErr):
		writeJSONError(w, http.StatusBadGateway, err)
	default:
		writeJSONError(w, http.StatusInternalServerError, err)
	}
}

// if err is store.ErrNotFound, treat as 404, otherwise treat as a 500
func writeMaybeNotFoundError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeJSONError(w, http.StatusNotFound, nil)
		return
	}

	writeJSONError(w, http.StatusInternalServerError, err)
}

func writeJSONError(w http.ResponseWriter, statusCode int, err error) {
	var msg string

	if statusCode < 500 && err != nil {
		msg = err.Error()
	} else {
		msg = http.StatusText(statusCode)
	}

	if statusCode >= 500 {
		logrus.WithField("statusCode", statusCode).Error(err)
	}

	writeJSON(w, statusCode, errorResponse{
		Message:    msg,
		StatusCode: statusCode,
	})
}
