package system

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/julianstephens/pulse/internal/cli"
	"github.com/julianstephens/pulse/internal/keyring"
	"github.com/julianstephens/pulse/internal/logger"
	"github.com/julianstephens/pulse/internal/mcpserver"
	"github.com/julianstephens/pulse/internal/notifier"
	"github.com/julianstephens/pulse/internal/scheduler"
	"github.com/julianstephens/pulse/internal/server"
	"github.com/julianstephens/pulse/internal/tui"
	"github.com/julianstephens/pulse/internal/watcher"
)

// WatchCmd runs the reminder scheduler in the foreground and prints alerts.
type WatchCmd struct{}

func (c *WatchCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sink := notifier.Multi{notifier.NewWriter(ctx.Out), ctx.Sink()}
	sched := scheduler.New(sess, sink, scheduler.WithInterval(ctx.Config.Scheduler.Interval))
	if err := sched.Start(sigCtx); err != nil {
		return err
	}
	defer sched.Stop()

	if path := ctx.WatchPath(); path != "" {
		go func() {
			err := watcher.Watch(sigCtx, path, 0, func() {
				if err := sess.Reload(); err != nil {
					logger.Warn("Failed to reload after external change", "error", err)
					return
				}
				logger.Info("Reloaded state after external change")
			})
			if err != nil {
				logger.Warn("Store watcher stopped", "error", err)
			}
		}()
	}

	fmt.Fprintf(ctx.Out, "Watching reminders for %s (Ctrl+C to stop)\n", sess.Email())
	<-sigCtx.Done()
	return nil
}

// ServeCmd runs the HTTP API with the scheduler and watcher.
type ServeCmd struct {
	Port int `help:"Listen port. Overrides http.port." default:"0"`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	addr := ctx.Config.HTTP.Address()
	if c.Port > 0 {
		addr = "127.0.0.1:" + strconv.Itoa(c.Port)
	}
	token := ctx.Config.HTTP.Token
	if token == "" {
		token = keyring.Lookup(keyring.HTTPToken)
	}
	if token == "" {
		logger.Warn("HTTP API has no token; any local process can use it")
	}
	fmt.Fprintf(ctx.Out, "Serving %s on http://%s\n", sess.Email(), addr)
	return server.Run(context.Background(), sess, server.Options{
		Addr:      addr,
		Token:     token,
		Interval:  ctx.Config.Scheduler.Interval,
		Sink:      ctx.Sink(),
		WatchPath: ctx.WatchPath(),
	})
}

// McpCmd serves the MCP tools on stdio.
type McpCmd struct{}

func (c *McpCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	return mcpserver.New(sess).ServeStdio()
}

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	return tui.Run(context.Background(), sess, tui.Options{
		Interval:  ctx.Config.Scheduler.Interval,
		Sink:      ctx.Sink(),
		WatchPath: ctx.WatchPath(),
	})
}
