package mux

import (
	"crypto/subtle"
	"net/http"

	gmux "github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"twocardpoker-server/pkg/leaderboard"
	"twocardpoker-server/pkg/table"
)

// AdminSecretHeader carries the admin secret on mutating requests
const AdminSecretHeader = "X-Admin-Secret"

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	config  config
	version string
	table   *table.Table
	board   *leaderboard.Leaderboard

	// store for testing purposes
	adminRouter *gmux.Router
}

type config struct {
	// adminSecret is required on mutating requests, unless empty
	adminSecret string
}

// NewMux returns a new HTTP mux
func NewMux(version string, tbl *table.Table, board *leaderboard.Leaderboard, adminSecret string) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		table:   tbl,
		board:   board,
		config: config{
			adminSecret: adminSecret,
		},
	}

	this.adminRouter = this.Router.NewRoute().Subrouter()
	this.adminRouter.Use(this.adminMiddleware)

	// public endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodGet).Path("/metrics").Handler(promhttp.Handler())
		r.Methods(http.MethodGet).Path("/player").Handler(this.getPlayer())
		r.Methods(http.MethodGet).Path("/player/{id}").Handler(this.getPlayerID())
		r.Methods(http.MethodGet).Path("/board").Handler(this.getBoard())
		r.Methods(http.MethodGet).Path("/board/ws").Handler(this.getBoardWS())
		r.Methods(http.MethodPost).Path("/deal").Handler(this.postDeal())
	}

	// requires the admin secret
	{
		r := this.adminRouter
		r.Methods(http.MethodPost).Path("/player").Handler(this.postPlayer())
		r.Methods(http.MethodPost).Path("/player/{id}").Handler(this.postPlayerID())
		r.Methods(http.MethodDelete).Path("/player/{id}").Handler(this.deletePlayerID())
		r.Methods(http.MethodPost).Path("/player/{id}/deal").Handler(this.postPlayerIDDeal())
		r.Methods(http.MethodPost).Path("/reshuffle").Handler(this.postReshuffle())
	}

	return this
}

func (m *Mux) adminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.config.adminSecret != "" {
			given := r.Header.Get(AdminSecretHeader)
			if subtle.ConstantTimeCompare([]byte(given), []byte(m.config.adminSecret)) != 1 {
				logrus.WithField("remoteAddr", remoteAddr(r)).WithField("path", r.URL.Path).Warn("invalid admin secret")
				writeJSONError(w, http.StatusForbidden, nil)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}
