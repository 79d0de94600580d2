package backups

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/pulse/internal/backup"
	"github.com/julianstephens/pulse/internal/cli"
)

type ExportCmd struct {
	Output string `arg:"" optional:"" help:"Destination file. Omit to write a rotated backup under the config directory." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	mgr := backup.NewManager(ctx.Config.Dir, sess.Email())
	path, err := mgr.Export(sess, c.Output)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	fmt.Fprintf(ctx.Out, "✓ Exported to %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	mgr := backup.NewManager(ctx.Config.Dir, sess.Email())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Fprintln(ctx.Out, "No backups found.")
		fmt.Fprintf(ctx.Out, "Backups are stored in: %s\n", mgr.BackupDir())
		return nil
	}

	fmt.Fprintf(ctx.Out, "Available backups (%d total, keeping most recent %d):\n\n", len(backups), backup.MaxBackups)
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		fmt.Fprintf(ctx.Out, "  %s  %s  (%.1f KB)\n", b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), sizeKB)
	}
	fmt.Fprintf(ctx.Out, "\nBackup directory: %s\n", mgr.BackupDir())
	return nil
}

// confirm asks a yes/no question. Tests replace it.
var confirm = func(title string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title(title).Affirmative("Yes").Negative("No").Value(&ok),
		),
	).WithTheme(huh.ThemeDracula()).Run()
	return ok, err
}

type ImportCmd struct {
	File string `arg:"" help:"Path or backup filename to import."`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	mgr := backup.NewManager(ctx.Config.Dir, sess.Email())

	path := c.File
	if _, err := os.Stat(path); err != nil {
		candidate := filepath.Join(mgr.BackupDir(), c.File)
		if _, err := os.Stat(candidate); err != nil {
			return fmt.Errorf("backup file not found: tried %s and %s", c.File, mgr.BackupDir())
		}
		path = candidate
	}

	if !c.Yes {
		fmt.Fprintf(ctx.Out, "⚠️  This replaces all data for %s with %s.\n", sess.Email(), path)
		ok, err := confirm("Continue?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(ctx.Out, "Import cancelled.")
			return nil
		}
	}

	safety, err := mgr.Export(sess, "")
	if err != nil {
		return fmt.Errorf("failed to back up current data: %w", err)
	}
	if err := backup.Import(sess, path); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	fmt.Fprintf(ctx.Out, "✓ Imported %s (previous data saved to %s)\n", filepath.Base(path), filepath.Base(safety))
	return nil
}
