package models

import "time"

// Account is an entry in the local account index.
type Account struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	LastLogin int64  `json:"lastLogin"` // unix milliseconds
}

func (a Account) LastLoginTime() time.Time {
	return time.UnixMilli(a.LastLogin)
}
