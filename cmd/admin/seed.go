package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/Pallinder/go-randomdata"
	"twocardpoker-server/internal/util"
	"twocardpoker-server/pkg/model"
	"twocardpoker-server/pkg/table"
)

// randomPlayer returns a session for a made up player
func randomPlayer(n int) model.EditSession {
	session := model.NewPlayerSession()

	p := &session.Draft
	p.FirstName = randomdata.FirstName(randomdata.RandomGender)
	p.LastName = randomdata.LastName()
	p.Email = fmt.Sprintf("%s.%d@example.domain", strings.ToLower(randomdata.SillyName()), n)
	p.PhoneNumber = fmt.Sprintf("+1 555-%03d-%04d", randomdata.Number(0, 1000), randomdata.Number(0, 10000))
	p.Username = fmt.Sprintf("%s-%d", util.RandomUsername(), n)

	return session
}

// seed creates n random players, stopping at the first failure
func seed(ctx context.Context, tbl *table.Table, n int) (int, error) {
	for i := 0; i < n; i++ {
		if _, _, err := tbl.Save(ctx, randomPlayer(i)); err != nil {
			return i, err
		}
	}

	return n, nil
}
