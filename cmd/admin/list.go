package main

import (
	"context"
	"strconv"

	"github.com/pterm/pterm"
	"twocardpoker-server/pkg/table"
)

func list(ctx context.Context, tbl *table.Table) error {
	standings, err := tbl.Ranked(ctx)
	if err != nil {
		return err
	}

	if len(standings) == 0 {
		pterm.Info.Println("No players")
		return nil
	}

	data := pterm.TableData{{"#", "Username", "Name", "Cards", "Category"}}
	for i, s := range standings {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			s.Player.Username,
			s.Player.FirstName + " " + s.Player.LastName,
			s.Hand().String(),
			s.Category.String(),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
