package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/pulse/internal/logger"
	"github.com/julianstephens/pulse/internal/notifier"
	"github.com/julianstephens/pulse/internal/scheduler"
	"github.com/julianstephens/pulse/internal/session"
	"github.com/julianstephens/pulse/internal/watcher"
)

// programSink delivers alerts to a running program.
type programSink struct {
	p *tea.Program
}

func (s programSink) Notify(title, body string) error {
	s.p.Send(AlertMsg{Title: title, Body: body})
	return nil
}

// Options configures Run.
type Options struct {
	Interval time.Duration
	// Sink receives alerts in addition to the dashboard.
	Sink      notifier.Sink
	WatchPath string
}

// Run shows the dashboard until the user quits, with the scheduler and the
// store watcher feeding it.
func Run(ctx context.Context, sess *session.Session, opts Options) error {
	m, err := NewModel(sess)
	if err != nil {
		return fmt.Errorf("failed to load dashboard: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	sinks := notifier.Multi{programSink{p: p}}
	if opts.Sink != nil {
		sinks = append(sinks, opts.Sink)
	}
	var schedOpts []scheduler.Option
	if opts.Interval > 0 {
		schedOpts = append(schedOpts, scheduler.WithInterval(opts.Interval))
	}
	sched := scheduler.New(sess, sinks, schedOpts...)
	if err := sched.Start(ctx); err != nil {
		return err
	}
	defer sched.Stop()

	if opts.WatchPath != "" {
		go func() {
			err := watcher.Watch(ctx, opts.WatchPath, 0, func() {
				if err := sess.Reload(); err != nil {
					logger.Warn("Failed to reload after external change", "error", err)
					return
				}
				p.Send(ReloadMsg{})
			})
			if err != nil {
				logger.Warn("Store watcher stopped", "error", err)
			}
		}()
	}

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}
