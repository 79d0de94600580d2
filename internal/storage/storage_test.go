package storage

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/pulse/internal/models"
)

func TestDecodePayloadTolerance(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		check func(t *testing.T, p models.Payload)
	}{
		{
			name: "missing history and notes",
			data: `{"user":{"name":"Ada","email":"ada@example.com","selectedActivityIds":["run"],"themeColor":"#059669"}}`,
			check: func(t *testing.T, p models.Payload) {
				if p.History == nil || len(p.History) != 0 || p.Notes == nil || len(p.Notes) != 0 {
					t.Errorf("history/notes = %v/%v", p.History, p.Notes)
				}
				if p.User.ThemeColor != "#059669" || p.User.SelectedActivityIDs[0] != "run" {
					t.Errorf("user = %+v", p.User)
				}
				// fields absent from the stored user keep their defaults
				if p.User.NotificationSettings.ReminderTime != "09:00" {
					t.Errorf("reminderTime = %q", p.User.NotificationSettings.ReminderTime)
				}
			},
		},
		{
			name: "undecodable history",
			data: `{"user":{"name":"Ada","email":"ada@example.com"},"history":"oops","notes":[{"id":"1","title":"x","dueTime":"2024-01-01T09:00:00Z"}]}`,
			check: func(t *testing.T, p models.Payload) {
				if len(p.History) != 0 {
					t.Errorf("history = %v", p.History)
				}
				if len(p.Notes) != 1 || p.Notes[0].Priority != models.PriorityMedium || p.Notes[0].Recurring != models.RecurrenceNone {
					t.Errorf("notes = %+v", p.Notes)
				}
			},
		},
		{
			name: "missing user",
			data: `{"history":{"2024-01-01":{"run":true}},"notes":7}`,
			check: func(t *testing.T, p models.Payload) {
				if p.User.Email != "ada@example.com" || p.User.Name != "ada" {
					t.Errorf("user = %+v", p.User)
				}
				if !p.History["2024-01-01"]["run"] {
					t.Errorf("history = %v", p.History)
				}
				if len(p.Notes) != 0 {
					t.Errorf("notes = %v", p.Notes)
				}
			},
		},
		{
			name: "one bad note among good ones",
			data: `{"notes":[{"id":"1","title":"Stretch","dueTime":"2024-01-01T09:00:00Z"},{"id":"2","title":"bad","dueTime":""},{"id":"3","title":"Walk","dueTime":"2024-01-02T18:00:00Z","priority":"high"}]}`,
			check: func(t *testing.T, p models.Payload) {
				if len(p.Notes) != 2 || p.Notes[0].ID != "1" || p.Notes[1].ID != "3" {
					t.Fatalf("notes = %+v", p.Notes)
				}
				if p.Notes[1].Priority != models.PriorityHigh || p.Notes[0].Priority != models.PriorityMedium {
					t.Errorf("priorities = %q, %q", p.Notes[0].Priority, p.Notes[1].Priority)
				}
			},
		},
		{
			name: "one bad day among good ones",
			data: `{"history":{"2024-01-01":{"run":true},"2024-01-02":"oops","2024-01-03":{"run":"yes","water":true}}}`,
			check: func(t *testing.T, p models.Payload) {
				if !p.History["2024-01-01"]["run"] {
					t.Errorf("2024-01-01 = %v", p.History["2024-01-01"])
				}
				if _, ok := p.History["2024-01-02"]; ok {
					t.Errorf("undecodable day kept: %v", p.History["2024-01-02"])
				}
				day := p.History["2024-01-03"]
				if _, ok := day["run"]; ok || !day["water"] {
					t.Errorf("2024-01-03 = %v", day)
				}
			},
		},
		{
			name: "one bad user field",
			data: `{"user":{"name":"Ada","email":"ada@example.com","selectedActivityIds":"run","themeColor":"#059669","notificationSettings":{"enabled":true,"reminderTime":"07:30"}}}`,
			check: func(t *testing.T, p models.Payload) {
				u := p.User
				if u.Name != "Ada" || u.ThemeColor != "#059669" {
					t.Errorf("user = %+v", u)
				}
				if u.SelectedActivityIDs == nil || len(u.SelectedActivityIDs) != 0 {
					t.Errorf("selectedActivityIds = %v", u.SelectedActivityIDs)
				}
				if !u.NotificationSettings.Enabled || u.NotificationSettings.ReminderTime != "07:30" {
					t.Errorf("notificationSettings = %+v", u.NotificationSettings)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := DecodePayload("ada@example.com", []byte(tt.data))
			if err != nil {
				t.Fatalf("DecodePayload() error = %v", err)
			}
			tt.check(t, p)
		})
	}
}

func TestDecodePayloadRejectsNonObject(t *testing.T) {
	for _, data := range []string{`[]`, `"text"`, `null`, `{`} {
		if _, err := DecodePayload("a@b.c", []byte(data)); !errors.Is(err, ErrMalformed) {
			t.Errorf("DecodePayload(%s) = %v, want ErrMalformed", data, err)
		}
	}
}

func TestEncodeDecodeStable(t *testing.T) {
	p := models.NewPayload("Ada", "ada@example.com")
	p.User.SelectedActivityIDs = []string{"run", "water"}
	p.History.Record("2024-01-02", "run", true)
	p.History.Record("2024-01-01", "water", false)
	p.Notes = []models.Note{{
		ID:        "n1",
		Title:     "Stretch",
		DueTime:   time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Priority:  models.PriorityLow,
		Recurring: models.RecurrenceDaily,
		CreatedAt: 1704099600000,
	}}

	first, err := EncodePayload(p)
	if err != nil {
		t.Fatal(err)
	}
	loaded, err := DecodePayload("ada@example.com", first)
	if err != nil {
		t.Fatal(err)
	}
	second, err := EncodePayload(loaded)
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Errorf("encode(decode(x)) differs:\n%s\n%s", first, second)
	}
	if !reflect.DeepEqual(p, loaded) {
		t.Errorf("decoded payload differs: %+v", loaded)
	}
}

func TestSortAccounts(t *testing.T) {
	accounts := []models.Account{
		{Email: "a", LastLogin: 1},
		{Email: "b", LastLogin: 3},
		{Email: "c", LastLogin: 2},
	}
	SortAccounts(accounts)
	if accounts[0].Email != "b" || accounts[2].Email != "a" {
		t.Errorf("SortAccounts() = %+v", accounts)
	}
}
