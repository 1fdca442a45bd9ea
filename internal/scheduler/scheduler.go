// Package scheduler arms one-shot timers for enabled reminders and delivers
// them through a notify.Notifier when they fire.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron"
	"go.uber.org/zap"

	"github.com/vcscsvcscs/fitflow/apps/backend/internal/notify"
	"github.com/vcscsvcscs/fitflow/apps/backend/pkg/model"
)

// Source is the reminder state the scheduler reads when a timer fires or a
// resync runs. Implementations must not call back into the scheduler while
// holding a lock that Arm or Cancel callers also hold.
type Source interface {
	Settings() model.NotificationSettings
	Reminders() []model.Reminder
	Reminder(id string) (model.Reminder, bool)
	// MarkTriggered records a delivery and re-arms the reminder
	MarkTriggered(ctx context.Context, id string, at time.Time) error
	// Rearm re-reads the reminder under the source's own lock and arms or
	// cancels it from that state, recording the resulting next trigger.
	// ok is false when nothing was armed.
	Rearm(ctx context.Context, id string) (next time.Time, ok bool, err error)
}

// Config controls the background resync loop
type Config struct {
	Enabled bool
	// ResyncSpec is a robfig/cron spec (seconds field first, or a descriptor such as "@every 15m")
	ResyncSpec string
}

type stopper interface {
	Stop() bool
}

type handle struct {
	timer stopper
	gen   uint64
	next  time.Time
}

// Scheduler owns at most one pending timer per reminder ID
type Scheduler struct {
	source   Source
	notifier notify.Notifier
	cfg      Config
	logger   *zap.Logger

	mu      sync.Mutex
	handles map[string]*handle
	gen     uint64
	cron    *cron.Cron

	now       func() time.Time
	afterFunc func(d time.Duration, f func()) stopper
}

// New creates a new Scheduler
func New(source Source, notifier notify.Notifier, cfg Config, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		source:   source,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
		handles:  make(map[string]*handle),
		now:      time.Now,
		afterFunc: func(d time.Duration, f func()) stopper {
			return time.AfterFunc(d, f)
		},
	}
}

// Start arms every enabled reminder and starts the resync loop
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.notifier.Supported() {
		s.logger.Warn("notifications are not supported on this platform, reminders will not be scheduled")
		return nil
	}

	s.Resync(ctx)

	if !s.cfg.Enabled {
		return nil
	}

	c := cron.New()
	if err := c.AddFunc(s.cfg.ResyncSpec, func() { s.Resync(context.Background()) }); err != nil {
		return fmt.Errorf("failed to schedule reminder resync: %w", err)
	}
	c.Start()

	s.mu.Lock()
	s.cron = c
	s.mu.Unlock()

	s.logger.Info("reminder scheduler started", zap.String("resync_spec", s.cfg.ResyncSpec))
	return nil
}

// Stop halts the resync loop and cancels every pending timer
func (s *Scheduler) Stop() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()

	if c != nil {
		c.Stop()
	}
	s.CancelAll()
}

// Arm computes the next trigger for r and replaces any pending timer for it.
// It reports false, leaving no timer behind, when nothing should be scheduled.
func (s *Scheduler) Arm(r model.Reminder, settings model.NotificationSettings) (time.Time, bool) {
	if !s.notifier.Supported() {
		return time.Time{}, false
	}

	now := s.now()
	next, ok := NextTrigger(r, settings, now)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked(r.ID)
	if !ok {
		s.logger.Debug("reminder not scheduled", zap.String("reminder_id", r.ID))
		return time.Time{}, false
	}

	s.gen++
	gen := s.gen
	id := r.ID
	timer := s.afterFunc(next.Sub(now), func() { s.fire(id, gen) })
	s.handles[id] = &handle{timer: timer, gen: gen, next: next}

	s.logger.Debug("reminder scheduled",
		zap.String("reminder_id", id),
		zap.Time("next_trigger", next),
	)
	return next, true
}

// Cancel stops and forgets the pending timer for id, if any
func (s *Scheduler) Cancel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(id)
}

// CancelAll stops every pending timer
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.handles {
		s.cancelLocked(id)
	}
}

func (s *Scheduler) cancelLocked(id string) {
	if h, ok := s.handles[id]; ok {
		h.timer.Stop()
		delete(s.handles, id)
	}
}

// Pending returns the instant the reminder is armed for
func (s *Scheduler) Pending(id string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.handles[id]
	if !ok {
		return time.Time{}, false
	}
	return h.next, true
}

// PendingCount returns the number of armed timers
func (s *Scheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handles)
}

// Resync arms every enabled reminder that has no pending timer, so a
// reminder skipped during quiet hours is picked up once they end.
// Arming goes through Source.Rearm so a reminder disabled or deleted after
// the snapshot was taken is cancelled rather than armed.
func (s *Scheduler) Resync(ctx context.Context) {
	if !s.notifier.Supported() {
		return
	}

	settings := s.source.Settings()
	if !settings.Enabled {
		return
	}

	armed := 0
	for _, r := range s.source.Reminders() {
		if !r.Enabled {
			continue
		}
		if _, pending := s.Pending(r.ID); pending {
			continue
		}
		next, ok, err := s.source.Rearm(ctx, r.ID)
		if err != nil {
			s.logger.Warn("failed to rearm reminder", zap.Error(err), zap.String("reminder_id", r.ID))
			continue
		}
		if !ok {
			continue
		}
		armed++
		s.logger.Debug("reminder resynced", zap.String("reminder_id", r.ID), zap.Time("next_trigger", next))
	}

	if armed > 0 {
		s.logger.Info("reminders resynced", zap.Int("armed", armed))
	}
}

// fire runs on the timer goroutine
func (s *Scheduler) fire(id string, gen uint64) {
	s.mu.Lock()
	h, ok := s.handles[id]
	if !ok || h.gen != gen {
		// replaced or cancelled after the timer went off
		s.mu.Unlock()
		return
	}
	delete(s.handles, id)
	s.mu.Unlock()

	at := s.now()
	settings := s.source.Settings()
	r, ok := s.source.Reminder(id)
	if !ok || !settings.Enabled || !r.Enabled {
		return
	}

	ctx := context.Background()
	alert := notify.Alert{
		Title:              r.Title,
		Body:               r.Message,
		Tag:                r.ID,
		RequireInteraction: r.Priority == model.PriorityHigh,
		Silent:             !settings.Sound,
	}
	if err := s.notifier.ShowAlert(ctx, alert); err != nil {
		s.logger.Error("failed to show reminder alert", zap.Error(err), zap.String("reminder_id", id))
	}

	if err := s.source.MarkTriggered(ctx, id, at); err != nil {
		s.logger.Error("failed to mark reminder triggered", zap.Error(err), zap.String("reminder_id", id))
	}
}
