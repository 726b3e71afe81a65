package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"twocardpoker-server/internal/config"
	"twocardpoker-server/internal/mux"
	"twocardpoker-server/pkg/dealer"
	"twocardpoker-server/pkg/leaderboard"
	"twocardpoker-server/pkg/store"
	"twocardpoker-server/pkg/table"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", "", "the listen address, overrides the configuration")

func main() {
	flag.Parse()
	setupLogger()

	cfg := config.Instance()
	if *addr != "" {
		cfg.Addr = *addr
	}

	if cfg.AdminSecret == "" {
		logrus.Warn("no admin secret configured, anybody can change players")
	}

	s, closeStore, err := store.Open(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("could not open the store")
	}
	defer closeStore()

	board := leaderboard.New(time.Duration(cfg.DebounceMS) * time.Millisecond)
	board.StartShift()
	defer board.EndShift()

	tbl := table.New(s, dealer.New(nil), board, cfg.MaxPlayers)
	if err := tbl.Refresh(context.Background()); err != nil {
		logrus.WithError(err).Fatal("could not load players")
	}

	if cfg.PollIntervalMS > 0 {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go tbl.Watch(ctx, time.Duration(cfg.PollIntervalMS)*time.Millisecond)
	}

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", mux.AdminSecretHeader},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, tbl, board, cfg.AdminSecret))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithField("addr", srv.Addr).WithField("driver", cfg.Store.Driver).Info("listening")
	if err := srv.ListenAndServe(); err != nil {
		logrus.WithError(err).Error("server stopped")
	}
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
