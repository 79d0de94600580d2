// Package storage defines the persistence gateway for account payloads.
package storage

import (
	"errors"
	"sort"

	"github.com/julianstephens/pulse/internal/models"
)

// ErrNotFound is returned by Load when no payload exists for a key.
var ErrNotFound = errors.New("payload not found")

// ErrMalformed is returned when a stored payload is not a JSON object.
var ErrMalformed = errors.New("payload is not a JSON object")

// Gateway persists one payload per account plus the local account index.
// Keys are normalized account emails. Implementations are single-writer
// local stores; Save replaces the whole payload.
type Gateway interface {
	Init() error
	Close() error

	Load(key string) (models.Payload, error)
	Save(key string, p models.Payload) error

	Accounts() ([]models.Account, error)
	TouchAccount(models.Account) error

	// Location identifies the backing store for display. File-backed
	// stores return the path that changes when another process writes.
	Location() string
}

// SortAccounts orders accounts by most recent login first.
func SortAccounts(accounts []models.Account) {
	sort.SliceStable(accounts, func(i, j int) bool {
		return accounts[i].LastLogin > accounts[j].LastLogin
	})
}
