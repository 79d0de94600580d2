package backups

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/pulse/internal/cli"
	"github.com/julianstephens/pulse/internal/config"
)

func setupContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	cfg := config.NewDefault(t.TempDir())
	cfg.Tray.Enabled = false
	ctx := cli.NewContext(cfg)
	out := &bytes.Buffer{}
	ctx.Out = out
	t.Cleanup(func() { _ = ctx.Close() })
	if _, err := ctx.Login("Ada", "ada@example.com"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	return ctx, out
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx, out := setupContext(t)
	sess, _ := ctx.Session()
	if err := sess.RecordCompletion("2024-06-05", "run", true); err != nil {
		t.Fatal(err)
	}

	file := filepath.Join(t.TempDir(), "ada.json")
	if err := (&ExportCmd{Output: file}).Run(ctx); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	if err := sess.RecordCompletion("2024-06-06", "run", true); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := (&ImportCmd{File: file, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	history, _ := sess.History()
	if !history["2024-06-05"]["run"] || history["2024-06-06"]["run"] {
		t.Errorf("history after import = %v", history)
	}
	if !strings.Contains(out.String(), "previous data saved") {
		t.Errorf("output = %q", out.String())
	}

	// The pre-import safety copy is listed.
	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "1 total") {
		t.Errorf("list output = %q", out.String())
	}
}

func TestImportCancelled(t *testing.T) {
	ctx, out := setupContext(t)
	file := filepath.Join(t.TempDir(), "ada.json")
	if err := (&ExportCmd{Output: file}).Run(ctx); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	orig := confirm
	defer func() { confirm = orig }()
	confirm = func(string) (bool, error) { return false, nil }

	if err := (&ImportCmd{File: file}).Run(ctx); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if !strings.Contains(out.String(), "Import cancelled") {
		t.Errorf("output = %q", out.String())
	}
}

func TestImportFromBackupDir(t *testing.T) {
	ctx, out := setupContext(t)
	if err := (&ExportCmd{}).Run(ctx); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	path := strings.TrimSpace(strings.TrimPrefix(out.String(), "✓ Exported to "))
	if err := (&ImportCmd{File: filepath.Base(path), Yes: true}).Run(ctx); err != nil {
		t.Fatalf("import by name failed: %v", err)
	}
	if err := (&ImportCmd{File: "nope.json", Yes: true}).Run(ctx); err == nil {
		t.Error("expected missing file error")
	}
}

func TestBackupListEmpty(t *testing.T) {
	ctx, out := setupContext(t)
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No backups found") {
		t.Errorf("output = %q", out.String())
	}
}
