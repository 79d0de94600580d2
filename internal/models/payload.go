package models

// Payload is the persisted state of one account.
type Payload struct {
	User    User        `json:"user"`
	History HistoryData `json:"history"`
	Notes   []Note      `json:"notes"`
}

// NewPayload returns an empty payload for a fresh account.
func NewPayload(name, email string) Payload {
	return Payload{
		User:    NewUser(name, email),
		History: HistoryData{},
		Notes:   []Note{},
	}
}

// Clone returns a deep copy.
func (p Payload) Clone() Payload {
	out := Payload{
		User:    p.User,
		History: p.History.Clone(),
		Notes:   make([]Note, len(p.Notes)),
	}
	out.User.SelectedActivityIDs = append([]string{}, p.User.SelectedActivityIDs...)
	out.User.ActiveWidgets = append([]string{}, p.User.ActiveWidgets...)
	copy(out.Notes, p.Notes)
	return out
}
