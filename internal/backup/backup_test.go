package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/pulse/internal/session"
	"github.com/julianstephens/pulse/internal/storage/jsonfile"
)

func setupSession(t *testing.T, email string) *session.Session {
	t.Helper()
	store := jsonfile.New(filepath.Join(t.TempDir(), "data"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	sess, err := session.Login(store, "Ada", email)
	if err != nil {
		t.Fatalf("failed to log in: %v", err)
	}
	return sess
}

func TestExportAndImport(t *testing.T) {
	src := setupSession(t, "ada@example.com")
	if err := src.SelectActivities([]string{"run", "reading"}); err != nil {
		t.Fatal(err)
	}
	if err := src.RecordCompletion("2024-01-03", "run", true); err != nil {
		t.Fatal(err)
	}
	if _, err := src.AddNote(session.NoteInput{Title: "Call mom", DueTime: time.Now().Add(time.Hour)}); err != nil {
		t.Fatal(err)
	}

	configDir := t.TempDir()
	mgr := NewManager(configDir, src.Email())
	path, err := mgr.Export(src, "")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if filepath.Dir(path) != mgr.BackupDir() {
		t.Errorf("export written to %s, want %s", path, mgr.BackupDir())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "\n  \"user\"") {
		t.Errorf("export is not indented:\n%s", data)
	}

	dst := setupSession(t, "grace@example.com")
	if err := Import(dst, path); err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	user, _ := dst.User()
	if user.Email != "grace@example.com" {
		t.Errorf("imported email = %q, want the active account", user.Email)
	}
	if len(user.SelectedActivityIDs) != 2 {
		t.Errorf("imported selection = %v", user.SelectedActivityIDs)
	}
	day, _ := dst.GetDay("2024-01-03")
	if !day["run"] {
		t.Error("imported history is missing run on 2024-01-03")
	}
	notes, _ := dst.Notes()
	if len(notes) != 1 || notes[0].Title != "Call mom" {
		t.Errorf("imported notes = %+v", notes)
	}
}

func TestExportToExplicitPath(t *testing.T) {
	sess := setupSession(t, "ada@example.com")
	mgr := NewManager(t.TempDir(), sess.Email())
	path := filepath.Join(t.TempDir(), "out.json")

	got, err := mgr.Export(sess, path)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if got != path {
		t.Errorf("Export() = %s, want %s", got, path)
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 0 {
		t.Errorf("explicit export should not land in the backup directory, found %d", len(backups))
	}
}

func TestRotateBackups(t *testing.T) {
	sess := setupSession(t, "ada@example.com")
	mgr := NewManager(t.TempDir(), sess.Email())
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)
	for i := 0; i < MaxBackups+3; i++ {
		stamp := base.Add(time.Duration(i) * time.Minute)
		mgr.now = func() time.Time { return stamp }
		if _, err := mgr.Export(sess, ""); err != nil {
			t.Fatalf("Export %d failed: %v", i, err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != MaxBackups {
		t.Fatalf("expected %d backups after rotation, got %d", MaxBackups, len(backups))
	}
	newest := base.Add(time.Duration(MaxBackups+2) * time.Minute)
	if !backups[0].Timestamp.Equal(newest) {
		t.Errorf("newest backup = %v, want %v", backups[0].Timestamp, newest)
	}
}

func TestUniqueNames(t *testing.T) {
	sess := setupSession(t, "ada@example.com")
	mgr := NewManager(t.TempDir(), sess.Email())
	stamp := time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)
	mgr.now = func() time.Time { return stamp }

	first, err := mgr.Export(sess, "")
	if err != nil {
		t.Fatal(err)
	}
	second, err := mgr.Export(sess, "")
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatalf("both exports were written to %s", first)
	}
	backups, _ := mgr.ListBackups()
	if len(backups) != 2 {
		t.Errorf("expected 2 backups, got %d", len(backups))
	}
}

func TestImportRejects(t *testing.T) {
	sess := setupSession(t, "ada@example.com")
	dir := t.TempDir()
	tests := []struct {
		name string
		body string
	}{
		{"not an object", `[1, 2, 3]`},
		{"bad theme", `{"user": {"name": "Ada", "themeColor": "blue"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".json")
			if err := os.WriteFile(path, []byte(tt.body), 0600); err != nil {
				t.Fatal(err)
			}
			if err := Import(sess, path); err == nil {
				t.Error("expected import to fail")
			}
		})
	}
	if err := Import(sess, filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected import of a missing file to fail")
	}
}

func TestImportTolerant(t *testing.T) {
	sess := setupSession(t, "ada@example.com")
	path := filepath.Join(t.TempDir(), "partial.json")
	if err := os.WriteFile(path, []byte(`{"history": {"2024-01-02": {"walk": true}}, "notes": "oops"}`), 0600); err != nil {
		t.Fatal(err)
	}
	if err := Import(sess, path); err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	day, _ := sess.GetDay("2024-01-02")
	if !day["walk"] {
		t.Error("history was not imported")
	}
	notes, _ := sess.Notes()
	if len(notes) != 0 {
		t.Errorf("undecodable notes should become empty, got %d", len(notes))
	}
}
