package storage

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/julianstephens/pulse/internal/logger"
	"github.com/julianstephens/pulse/internal/models"
)

// EncodePayload serializes a payload. Map keys are written sorted, so
// encoding the result of DecodePayload is stable.
func EncodePayload(p models.Payload) ([]byte, error) {
	if p.History == nil {
		p.History = models.HistoryData{}
	}
	if p.Notes == nil {
		p.Notes = []models.Note{}
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}
	return data, nil
}

// DecodePayload parses a stored payload for key.
//
// Only a document that is not a JSON object is an error. Fallbacks apply
// per element: an undecodable note, day entry or user field is dropped
// and logged while its siblings are kept. A missing user is rebuilt from
// defaults.
func DecodePayload(key string, data []byte) (models.Payload, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.Payload{}, fmt.Errorf("%w: %s: %v", ErrMalformed, key, err)
	}
	if doc == nil {
		return models.Payload{}, fmt.Errorf("%w: %s: null document", ErrMalformed, key)
	}

	return models.Payload{
		User:    decodeUser(key, doc["user"]),
		History: decodeHistory(key, doc["history"]),
		Notes:   decodeNotes(key, doc["notes"]),
	}, nil
}

func decodeHistory(key string, raw json.RawMessage) models.HistoryData {
	history := models.HistoryData{}
	if isAbsent(raw) {
		return history
	}
	var days map[string]json.RawMessage
	if err := json.Unmarshal(raw, &days); err != nil {
		logger.Warn("Discarding undecodable history", "account", key, "error", err)
		return history
	}
	for date, rawDay := range days {
		if isAbsent(rawDay) {
			continue
		}
		var entries map[string]json.RawMessage
		if err := json.Unmarshal(rawDay, &entries); err != nil {
			logger.Warn("Discarding undecodable day", "account", key, "date", date, "error", err)
			continue
		}
		day := make(models.DayProgress, len(entries))
		for id, rawDone := range entries {
			var done bool
			if err := json.Unmarshal(rawDone, &done); err != nil {
				logger.Warn("Discarding undecodable completion", "account", key, "date", date, "activity", id, "error", err)
				continue
			}
			day[id] = done
		}
		history[date] = day
	}
	return history
}

func decodeNotes(key string, raw json.RawMessage) []models.Note {
	notes := []models.Note{}
	if isAbsent(raw) {
		return notes
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		logger.Warn("Discarding undecodable notes", "account", key, "error", err)
		return notes
	}
	for i, elem := range elems {
		var n models.Note
		if err := json.Unmarshal(elem, &n); err != nil {
			logger.Warn("Discarding undecodable note", "account", key, "index", i, "error", err)
			continue
		}
		n.ApplyDefaults()
		notes = append(notes, n)
	}
	return notes
}

func decodeUser(key string, raw json.RawMessage) models.User {
	u := models.NewUser(nameFromEmail(key), key)
	if isAbsent(raw) {
		logger.Warn("Payload has no user, using defaults", "account", key)
		return u
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		logger.Warn("Discarding undecodable user, using defaults", "account", key, "error", err)
		return u
	}
	for name, value := range fields {
		single, err := json.Marshal(map[string]json.RawMessage{name: value})
		if err != nil {
			continue
		}
		// decode into a copy so a half-applied field never leaks through
		candidate := u
		candidate.SelectedActivityIDs = slices.Clone(u.SelectedActivityIDs)
		candidate.ActiveWidgets = slices.Clone(u.ActiveWidgets)
		if err := json.Unmarshal(single, &candidate); err != nil {
			logger.Warn("Discarding undecodable user field", "account", key, "field", name, "error", err)
			continue
		}
		u = candidate
	}
	if u.Name == "" {
		u.Name = nameFromEmail(key)
	}
	if u.Email == "" {
		u.Email = key
	}
	if u.SelectedActivityIDs == nil {
		u.SelectedActivityIDs = []string{}
	}
	if u.ActiveWidgets == nil {
		u.ActiveWidgets = []string{}
	}
	return u
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func nameFromEmail(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}
