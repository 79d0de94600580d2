// Package scheduler runs the periodic reminder check for a session.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/pulse/internal/catalog"
	"github.com/julianstephens/pulse/internal/constants"
	"github.com/julianstephens/pulse/internal/logger"
	"github.com/julianstephens/pulse/internal/notifier"
	"github.com/julianstephens/pulse/internal/session"
	"github.com/julianstephens/pulse/internal/stats"
	"github.com/julianstephens/pulse/internal/utils"
)

var ErrRunning = errors.New("scheduler already running")

// Trigger names a fixed time-of-day alert.
type Trigger string

const (
	Morning   Trigger = "morning"
	Evening   Trigger = "evening"
	Afternoon Trigger = "afternoon"
)

// Result describes what one tick delivered.
type Result struct {
	Notes    int
	Triggers []Trigger
}

type Option func(*Scheduler)

// WithInterval overrides the tick cadence.
func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) { s.interval = d }
}

// WithClock replaces time.Now for the background loop.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

type Scheduler struct {
	sess     *session.Session
	sink     notifier.Sink
	interval time.Duration
	now      func() time.Time

	mu sync.Mutex
	// last date+minute each trigger fired, so two ticks in one minute
	// deliver once
	fired  map[Trigger]string
	cancel context.CancelFunc
	done   chan struct{}
}

func New(sess *session.Session, sink notifier.Sink, opts ...Option) *Scheduler {
	s := &Scheduler{
		sess:     sess,
		sink:     sink,
		interval: constants.SchedulerInterval,
		now:      time.Now,
		fired:    make(map[Trigger]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start runs Tick every interval until ctx is done or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return ErrRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.loop(ctx, s.done)
	logger.Debug("Scheduler started", "interval", s.interval)
	return nil
}

func (s *Scheduler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer s.release(done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Tick(s.now()); err != nil {
				if errors.Is(err, session.ErrClosed) {
					logger.Debug("Scheduler exiting: session closed")
					return
				}
				logger.Error("Scheduler tick failed", "error", err)
			}
		}
	}
}

// release clears the running state if it still belongs to the loop that
// owns done, so a loop that exits on its own can be started again.
func (s *Scheduler) release(done chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != done {
		return
	}
	s.cancel()
	s.cancel, s.done = nil, nil
}

// Stop cancels the loop and waits for it to exit. After Stop returns no tick
// is in flight. Stop on a scheduler that is not running is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
	logger.Debug("Scheduler stopped")
}

// Wait blocks until the loop exits.
func (s *Scheduler) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Tick runs one check at now: due notes first, then the fixed triggers.
// Nothing happens while notifications are disabled. Delivery failures are
// logged and never stop a note from rolling over.
func (s *Scheduler) Tick(now time.Time) (Result, error) {
	var res Result
	user, err := s.sess.User()
	if err != nil {
		return res, err
	}
	ns := user.NotificationSettings
	if !ns.Enabled {
		return res, nil
	}

	fired, persistErr := s.sess.FireDueNotes(now)
	if errors.Is(persistErr, session.ErrClosed) {
		return res, persistErr
	}
	for _, n := range fired {
		s.deliver(n.AlertTitle(), n.Text)
	}
	res.Notes = len(fired)

	date, clock := utils.DateKey(now), utils.ClockKey(now)
	if ns.MorningReminder && clock == constants.MorningTrigger && s.claim(Morning, date, clock) {
		s.deliver("Rise & Pulse", "Today is a fresh canvas. Ignite your productivity!")
		res.Triggers = append(res.Triggers, Morning)
	}

	if clock == constants.EveningTrigger || clock == constants.AfternoonTrigger {
		day, err := s.sess.GetDay(date)
		if err != nil {
			return res, err
		}
		done := stats.CompletedCount(day, user.SelectedActivityIDs)

		if ns.EveningSummary && clock == constants.EveningTrigger && s.claim(Evening, date, clock) {
			s.deliver("Day Concluded", fmt.Sprintf("You finished %d goals today. Great work!", done))
			res.Triggers = append(res.Triggers, Evening)
		}

		tracked := len(catalog.Tracked(user.SelectedActivityIDs))
		if clock == constants.AfternoonTrigger && float64(done) < float64(tracked)/2 && s.claim(Afternoon, date, clock) {
			s.deliver("Afternoon Nudge", "You've still got major goals to hit. Keep going!")
			res.Triggers = append(res.Triggers, Afternoon)
		}
	}

	if persistErr != nil {
		return res, fmt.Errorf("failed to persist fired notes: %w", persistErr)
	}
	return res, nil
}

// claim records that t fires at date+clock and reports whether it had not
// already fired then.
func (s *Scheduler) claim(t Trigger, date, clock string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := date + " " + clock
	if s.fired[t] == key {
		return false
	}
	s.fired[t] = key
	return true
}

func (s *Scheduler) deliver(title, body string) {
	logger.Info("Firing alert", "title", title)
	if err := s.sink.Notify(title, body); err != nil {
		logger.Warn("Alert delivery failed", "title", title, "error", err)
	}
}
