package main

import (
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"
	"twocardpoker-server/internal/config"
	"twocardpoker-server/pkg/db"
)

func main() {
	if driver := config.Instance().Store.Driver; driver != config.DriverPostgres {
		logrus.WithField("driver", driver).Info("nothing to migrate, only postgres uses external migrations")
		return
	}

	waitForDB()
	db.Migrate()
	logrus.Info("migrations complete")
}

func waitForDB() {
	timeout := time.NewTimer(time.Second * 10)
	for {
		select {
		case <-timeout.C:
			logrus.Fatal("could not connect to database")
		default:
			dbh := func() *sql.DB {
				defer func() { _ = recover() }()
				return db.Instance()
			}()

			if dbh != nil {
				return
			}

			time.Sleep(time.Millisecond * 500)
		}
	}
}
