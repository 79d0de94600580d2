package sqlite

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/pulse/internal/models"
	"github.com/julianstephens/pulse/internal/storage"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	s := New(filepath.Join(t.TempDir(), "pulse.db"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInitIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pulse.db")
	for i := 0; i < 2; i++ {
		s := New(path)
		if err := s.Init(); err != nil {
			t.Fatalf("Init() #%d error = %v", i, err)
		}
		s.Close()
	}
}

func TestSaveLoad(t *testing.T) {
	s := setupStore(t)

	if _, err := s.Load("ada@example.com"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Load() = %v, want ErrNotFound", err)
	}

	p := models.NewPayload("Ada", "ada@example.com")
	p.History.Record("2024-01-01", "run", true)
	p.Notes = []models.Note{{
		ID: "n1", Title: "Read", DueTime: time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC),
		Priority: models.PriorityHigh, Recurring: models.RecurrenceWeekly, CreatedAt: 1,
	}}
	if err := s.Save("ada@example.com", p); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := s.Load("ada@example.com")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, p) {
		t.Errorf("Load() = %+v, want %+v", got, p)
	}

	got.History.Record("2024-01-02", "run", true)
	if err := s.Save("ada@example.com", got); err != nil {
		t.Fatal(err)
	}
	again, _ := s.Load("ada@example.com")
	if len(again.History) != 2 {
		t.Errorf("overwrite lost: %v", again.History)
	}
}

func TestAccounts(t *testing.T) {
	s := setupStore(t)
	for _, a := range []models.Account{
		{Name: "Ada", Email: "ada@example.com", LastLogin: 10},
		{Name: "Bob", Email: "bob@example.com", LastLogin: 20},
		{Name: "Ada", Email: "ada@example.com", LastLogin: 30},
	} {
		if err := s.TouchAccount(a); err != nil {
			t.Fatalf("TouchAccount() error = %v", err)
		}
	}
	got, err := s.Accounts()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Email != "ada@example.com" || got[0].LastLogin != 30 {
		t.Errorf("Accounts() = %+v", got)
	}
}
