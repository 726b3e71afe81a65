package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/badoux/checkmail"
	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
	"twocardpoker-server/internal/config"
	"twocardpoker-server/pkg/dealer"
	"twocardpoker-server/pkg/model"
	"twocardpoker-server/pkg/store"
	"twocardpoker-server/pkg/table"
)

var command = flag.String("c", "list", "specifies the command (list, user, seed, reshuffle, deal)")
var count = flag.Int("n", 10, "how many players to seed")
var yes = flag.Bool("y", false, "don't ask for confirmation")

func main() {
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		pterm.DisableStyling()
	}

	cfg := config.Instance()
	s, closeStore, err := store.Open(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("could not open the store")
	}
	defer closeStore()

	ctx := context.Background()
	tbl := table.New(s, dealer.New(nil), nil, cfg.MaxPlayers)

	switch *command {
	case "list":
		if err := list(ctx, tbl); err != nil {
			logrus.WithError(err).Fatal("could not list players")
		}
	case "user":
		session := model.NewPlayerSession()
		if !readPlayer(&session.Draft) {
			os.Exit(1)
		}

		player, err := saveUntilValid(ctx, tbl, session)
		if err != nil {
			logrus.WithError(err).Fatal("could not create player")
		}

		pterm.Success.Printfln("Created %s with %s", player.Username, player.Cards)
	case "seed":
		created, err := seed(ctx, tbl, *count)
		pterm.Info.Printfln("Seeded %d players", created)
		if err != nil {
			logrus.WithError(err).Fatal("could not seed players")
		}
	case "reshuffle":
		if !confirm("Deal every player a new hand?") {
			return
		}

		dealt, err := tbl.Reshuffle(ctx)
		pterm.Info.Printfln("Dealt %d hands", len(dealt))
		if err != nil {
			logrus.WithError(err).Fatal("reshuffle failed")
		}
	case "deal":
		hand, err := tbl.Deal(nil)
		if err != nil {
			logrus.WithError(err).Fatal("could not deal")
		}

		pterm.Println(hand.String())
	default:
		logrus.Fatalf("unknown command: %s", *command)
	}
}

func confirm(question string) bool {
	if *yes {
		return true
	}

	ok, err := pterm.DefaultInteractiveConfirm.Show(question)
	if err != nil {
		logrus.WithError(err).Warn("could not read answer")
		return false
	}

	return ok
}

// saveUntilValid asks again for the player's details until the table accepts them
func saveUntilValid(ctx context.Context, tbl *table.Table, session model.EditSession) (*model.Player, error) {
	for {
		player, returned, err := tbl.Save(ctx, session)
		if err == nil {
			return player, nil
		}

		var userErr model.UserError
		switch {
		case errors.Is(err, table.ErrTableFull):
			return nil, err
		case errors.Is(err, store.ErrDuplicateKey):
			pterm.Error.Println("username is already taken")
		case errors.As(err, &userErr):
			pterm.Error.Println(userErr.Error())
		default:
			return nil, err
		}

		session = returned
		if !readPlayer(&session.Draft) {
			return nil, err
		}
	}
}

// readPlayer prompts for the identity fields, keeping the current value on an empty answer
// It returns false if no email was given
func readPlayer(p *model.Player) bool {
	p.Email = getEmail(p.Email)
	if p.Email == "" {
		return false
	}

	p.FirstName = getInput("First name", p.FirstName)
	p.LastName = getInput("Last name", p.LastName)
	p.PhoneNumber = getInput("Phone number", p.PhoneNumber)
	p.Username = getInput("Username", p.Username)
	return true
}

func getEmail(current string) string {
	for {
		str := getInput("Email", current)
		if str == "" {
			return ""
		}

		if err := checkmail.ValidateFormat(str); err != nil {
			_, _ = fmt.Fprintln(os.Stderr, err)
			current = ""
			continue
		}

		return str
	}
}

var stdin = bufio.NewReader(os.Stdin)

func getInput(question, current string) string {
	if current != "" {
		fmt.Printf("%s [%s]: ", question, current)
	} else {
		fmt.Printf("%s: ", question)
	}

	str, err := stdin.ReadString('\n')
	if err != nil {
		logrus.WithError(err).Warn("could not read answer")
	}

	str = strings.TrimRight(str, "\r\n")
	if str == "" {
		return current
	}

	return str
}
