package model

// EditSession is a player record that is being created or edited.
// It is passed into the table's editing operations and returned from them,
// so a failed save hands back the same session with the draft unchanged.
type EditSession struct {
	Draft  Player `json:"draft"`
	active bool
}

// NewPlayerSession starts a session for a player that doesn't exist yet
func NewPlayerSession() EditSession {
	return EditSession{active: true}
}

// EditPlayerSession starts a session for an existing player
// The draft is a copy, so changes don't leak into p until the session is saved
func EditPlayerSession(p *Player) EditSession {
	return EditSession{
		Draft:  *p,
		active: true,
	}
}

// IsNew returns true if saving the session creates a player
func (e EditSession) IsNew() bool {
	return e.Draft.ID == ""
}

// IsActive returns false once the session has been saved or cancelled
func (e EditSession) IsActive() bool {
	return e.active
}

// Close returns a finished session
func (e EditSession) Close() EditSession {
	return EditSession{}
}
