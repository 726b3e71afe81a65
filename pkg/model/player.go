package model

import (
	"regexp"
	"strings"
	"time"

	"github.com/badoux/checkmail"
	"twocardpoker-server/pkg/deck"
)

// validation errors
const (
	ErrInvalidEmail    = UserError("email invalid")
	ErrInvalidPhone    = UserError("phone invalid")
	ErrMissingFields   = UserError("please fill all fields")
	ErrPlayerHasNoHand = UserError("player has not been dealt a hand")
)

var phoneRx = regexp.MustCompile(`^[+]*[(]{0,1}[0-9]{1,4}[)]{0,1}[-\s\./0-9]*$`)

// Player is a record in the `players` table
type Player struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	Username    string    `json:"username"`
	Cards       string    `json:"cards"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}

// Validate checks the identity fields before a create or an update
func (p *Player) Validate() error {
	if err := checkmail.ValidateFormat(p.Email); err != nil {
		return ErrInvalidEmail
	}

	if !phoneRx.MatchString(strings.ToLower(p.PhoneNumber)) {
		return ErrInvalidPhone
	}

	if p.Username == "" || p.FirstName == "" || p.LastName == "" {
		return ErrMissingFields
	}

	return nil
}

// Hand parses the player's cards
func (p *Player) Hand() (deck.Hand, error) {
	if p.Cards == "" {
		return deck.Hand{}, ErrPlayerHasNoHand
	}

	return deck.HandFromString(p.Cards)
}

// Clone returns a copy of the player
func (p *Player) Clone() *Player {
	cp := *p
	return &cp
}

// SetIdentity copies the identity fields from other.
// The id, cards and timestamps are left alone
func (p *Player) SetIdentity(other *Player) {
	p.FirstName = other.FirstName
	p.LastName = other.LastName
	p.Email = other.Email
	p.PhoneNumber = other.PhoneNumber
	p.Username = other.Username
}
