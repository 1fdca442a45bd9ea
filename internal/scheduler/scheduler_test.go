package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vcscsvcscs/fitflow/apps/backend/internal/notify"
	"github.com/vcscsvcscs/fitflow/apps/backend/pkg/model"
)

// 2024-01-01 is a Monday
var monday9am = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func reminder(id, clock string, days ...int) model.Reminder {
	return model.Reminder{
		ID:        id,
		Type:      model.ReminderExercise,
		Title:     "Hora do Treino! 💪",
		Message:   "Mantenha a consistência!",
		Time:      clock,
		Days:      days,
		Enabled:   true,
		Frequency: model.FrequencyCustom,
		Priority:  model.PriorityHigh,
	}
}

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

type fakeNotifier struct {
	supported bool
	mu        sync.Mutex
	alerts    []notify.Alert
}

func (n *fakeNotifier) Supported() bool { return n.supported }

func (n *fakeNotifier) RequestPermission(context.Context) (bool, error) { return n.supported, nil }

func (n *fakeNotifier) ShowAlert(_ context.Context, a notify.Alert) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, a)
	return nil
}

type fakeSource struct {
	mu        sync.Mutex
	settings  model.NotificationSettings
	reminders map[string]model.Reminder
	triggered map[string]time.Time
	recorded  map[string]time.Time
	sched     *Scheduler
}

func newFakeSource(reminders ...model.Reminder) *fakeSource {
	src := &fakeSource{
		settings:  model.DefaultNotificationSettings(),
		reminders: make(map[string]model.Reminder),
		triggered: make(map[string]time.Time),
		recorded:  make(map[string]time.Time),
	}
	for _, r := range reminders {
		src.reminders[r.ID] = r
	}
	return src
}

func (f *fakeSource) Settings() model.NotificationSettings {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.settings
}

func (f *fakeSource) Reminders() []model.Reminder {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Reminder, 0, len(f.reminders))
	for _, r := range f.reminders {
		out = append(out, r)
	}
	return out
}

func (f *fakeSource) Reminder(id string) (model.Reminder, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reminders[id]
	return r, ok
}

func (f *fakeSource) MarkTriggered(_ context.Context, id string, at time.Time) error {
	f.mu.Lock()
	f.triggered[id] = at
	r := f.reminders[id]
	settings := f.settings
	f.mu.Unlock()

	f.sched.Arm(r, settings)
	return nil
}

func (f *fakeSource) Rearm(_ context.Context, id string) (time.Time, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reminders[id]
	if !ok || !r.Enabled {
		f.sched.Cancel(id)
		delete(f.recorded, id)
		return time.Time{}, false, nil
	}
	next, ok := f.sched.Arm(r, f.settings)
	if ok {
		f.recorded[id] = next
	}
	return next, ok, nil
}

func (f *fakeSource) disable(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := f.reminders[id]
	r.Enabled = false
	f.reminders[id] = r
	f.sched.Cancel(id)
}

// snapshotThenDisable disables one reminder right after returning a snapshot
type snapshotThenDisable struct {
	*fakeSource
	id string
}

func (s *snapshotThenDisable) Reminders() []model.Reminder {
	snapshot := s.fakeSource.Reminders()
	s.disable(s.id)
	return snapshot
}

type harness struct {
	sched    *Scheduler
	source   *fakeSource
	notifier *fakeNotifier
	timers   []*fakeTimer
	now      time.Time
}

func newHarness(t *testing.T, reminders ...model.Reminder) *harness {
	t.Helper()
	h := &harness{
		source:   newFakeSource(reminders...),
		notifier: &fakeNotifier{supported: true},
		now:      monday9am,
	}
	h.sched = New(h.source, h.notifier, Config{}, zap.NewNop())
	h.sched.now = func() time.Time { return h.now }
	h.sched.afterFunc = func(d time.Duration, f func()) stopper {
		timer := &fakeTimer{d: d, f: f}
		h.timers = append(h.timers, timer)
		return timer
	}
	h.source.sched = h.sched
	return h
}

func (h *harness) last() *fakeTimer {
	return h.timers[len(h.timers)-1]
}

func TestNextTrigger(t *testing.T) {
	settings := model.DefaultNotificationSettings()

	tests := []struct {
		name     string
		reminder model.Reminder
		want     time.Time
	}{
		{"later today", reminder("1", "10:00", 0, 1, 2, 3, 4, 5, 6), time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"passed today rolls to tomorrow", reminder("1", "07:00", 1, 2, 3, 4, 5), time.Date(2024, 1, 2, 7, 0, 0, 0, time.UTC)},
		{"exactly now is not in the future", reminder("1", "09:00", 1), time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)},
		{"sunday only", reminder("1", "07:00", 0), time.Date(2024, 1, 7, 7, 0, 0, 0, time.UTC)},
		{"friday from monday", reminder("1", "18:30", 5), time.Date(2024, 1, 5, 18, 30, 0, 0, time.UTC)},
		{"duplicate and invalid days ignored", reminder("1", "08:00", 3, 3, 9, -1), time.Date(2024, 1, 3, 8, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextTrigger(tt.reminder, settings, monday9am)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextTrigger_NotScheduled(t *testing.T) {
	settings := model.DefaultNotificationSettings()

	disabled := reminder("1", "10:00", 1)
	disabled.Enabled = false
	_, ok := NextTrigger(disabled, settings, monday9am)
	assert.False(t, ok, "disabled reminder")

	off := settings
	off.Enabled = false
	_, ok = NextTrigger(reminder("1", "10:00", 1), off, monday9am)
	assert.False(t, ok, "notifications disabled")

	_, ok = NextTrigger(reminder("1", "10:00"), settings, monday9am)
	assert.False(t, ok, "no days")

	_, ok = NextTrigger(reminder("1", "25:00", 1), settings, monday9am)
	assert.False(t, ok, "bad time")

	quiet := settings
	quiet.QuietHours = model.QuietHours{Enabled: true, Start: "22:00", End: "08:00"}
	_, ok = NextTrigger(reminder("1", "10:00", 1), quiet, monday9am.Add(14*time.Hour))
	assert.False(t, ok, "inside quiet hours")

	got, ok := NextTrigger(reminder("1", "10:00", 1), quiet, monday9am)
	require.True(t, ok, "outside quiet hours")
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), got)
}

func TestNextTrigger_KeepsLocation(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, loc)

	got, ok := NextTrigger(reminder("1", "10:00", 1), model.DefaultNotificationSettings(), now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, loc), got)
}

func TestInQuietHours(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2024, 1, 1, h, m, 0, 0, time.UTC) }
	overnight := model.QuietHours{Enabled: true, Start: "22:00", End: "08:00"}

	assert.True(t, InQuietHours(overnight, at(23, 0)))
	assert.True(t, InQuietHours(overnight, at(3, 0)))
	assert.True(t, InQuietHours(overnight, at(8, 0)))
	assert.True(t, InQuietHours(overnight, at(22, 0)))
	assert.False(t, InQuietHours(overnight, at(8, 1)))
	assert.False(t, InQuietHours(overnight, at(12, 0)))

	// a same-day window matches on either side of it
	lunch := model.QuietHours{Enabled: true, Start: "13:00", End: "14:00"}
	assert.True(t, InQuietHours(lunch, at(9, 0)))
	assert.True(t, InQuietHours(lunch, at(13, 30)))
	assert.True(t, InQuietHours(lunch, at(20, 0)))

	lunch.Enabled = false
	assert.False(t, InQuietHours(lunch, at(13, 30)))

	assert.False(t, InQuietHours(model.QuietHours{Enabled: true, Start: "bad", End: "08:00"}, at(23, 0)))
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("07:05")
	require.NoError(t, err)
	assert.Equal(t, 7, h)
	assert.Equal(t, 5, m)

	for _, bad := range []string{"", "7:00", "24:00", "12:60", "ab:cd", "12-00", "12:000"} {
		_, _, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestScheduler_ArmReplacesPendingTimer(t *testing.T) {
	h := newHarness(t)
	r := reminder("1", "10:00", 1)

	next, ok := h.sched.Arm(r, h.source.Settings())
	require.True(t, ok)
	assert.Equal(t, time.Hour, h.last().d)
	first := h.last()

	_, ok = h.sched.Arm(r, h.source.Settings())
	require.True(t, ok)

	assert.True(t, first.stopped)
	assert.False(t, h.last().stopped)
	assert.Equal(t, 1, h.sched.PendingCount())

	pending, ok := h.sched.Pending("1")
	require.True(t, ok)
	assert.Equal(t, next, pending)
}

func TestScheduler_ArmNotScheduledClearsPending(t *testing.T) {
	h := newHarness(t)
	r := reminder("1", "10:00", 1)
	_, ok := h.sched.Arm(r, h.source.Settings())
	require.True(t, ok)

	r.Enabled = false
	_, ok = h.sched.Arm(r, h.source.Settings())
	assert.False(t, ok)
	assert.True(t, h.timers[0].stopped)
	assert.Zero(t, h.sched.PendingCount())
}

func TestScheduler_Cancel(t *testing.T) {
	h := newHarness(t)
	h.sched.Arm(reminder("1", "10:00", 1), h.source.Settings())
	h.sched.Arm(reminder("2", "11:00", 1), h.source.Settings())

	h.sched.Cancel("1")
	assert.True(t, h.timers[0].stopped)
	assert.False(t, h.timers[1].stopped)
	_, pending := h.sched.Pending("1")
	assert.False(t, pending)

	h.sched.Cancel("missing")
	h.sched.CancelAll()
	assert.True(t, h.timers[1].stopped)
	assert.Zero(t, h.sched.PendingCount())
}

func TestScheduler_FireDeliversAndRearms(t *testing.T) {
	r := reminder("1", "10:00", 1, 2)
	h := newHarness(t, r)
	h.source.settings.Sound = false

	h.sched.Arm(r, h.source.Settings())
	h.now = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	h.last().f()

	require.Len(t, h.notifier.alerts, 1)
	alert := h.notifier.alerts[0]
	assert.Equal(t, "Hora do Treino! 💪", alert.Title)
	assert.Equal(t, "Mantenha a consistência!", alert.Body)
	assert.Equal(t, "1", alert.Tag)
	assert.True(t, alert.RequireInteraction)
	assert.True(t, alert.Silent)

	assert.Equal(t, h.now, h.source.triggered["1"])

	require.Len(t, h.timers, 2)
	pending, ok := h.sched.Pending("1")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC), pending)
}

func TestScheduler_StaleTimerIsIgnored(t *testing.T) {
	r := reminder("1", "10:00", 1)
	h := newHarness(t, r)

	h.sched.Arm(r, h.source.Settings())
	stale := h.last()
	h.sched.Arm(r, h.source.Settings())

	stale.f()
	assert.Empty(t, h.notifier.alerts)
	assert.Equal(t, 1, h.sched.PendingCount())
}

func TestScheduler_CancelledTimerIsIgnored(t *testing.T) {
	r := reminder("1", "10:00", 1)
	h := newHarness(t, r)

	h.sched.Arm(r, h.source.Settings())
	h.sched.Cancel("1")
	h.timers[0].f()

	assert.Empty(t, h.notifier.alerts)
	assert.Empty(t, h.source.triggered)
}

func TestScheduler_FireRechecksState(t *testing.T) {
	r := reminder("1", "10:00", 1)
	h := newHarness(t, r)
	h.sched.Arm(r, h.source.Settings())

	disabled := r
	disabled.Enabled = false
	h.source.reminders["1"] = disabled
	h.last().f()
	assert.Empty(t, h.notifier.alerts)

	h.source.reminders["1"] = r
	h.sched.Arm(r, h.source.Settings())
	h.source.settings.Enabled = false
	h.last().f()
	assert.Empty(t, h.notifier.alerts)

	h.source.settings.Enabled = true
	h.sched.Arm(r, h.source.Settings())
	delete(h.source.reminders, "1")
	h.last().f()
	assert.Empty(t, h.notifier.alerts)
}

func TestScheduler_Unsupported(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	h := newHarness(t, reminder("1", "10:00", 1))
	h.notifier.supported = false
	h.sched.logger = zap.New(core)

	require.NoError(t, h.sched.Start(context.Background()))
	assert.Equal(t, 1, logs.Len())

	_, ok := h.sched.Arm(reminder("1", "10:00", 1), h.source.Settings())
	assert.False(t, ok)
	h.sched.Resync(context.Background())
	assert.Empty(t, h.timers)
}

func TestScheduler_Resync(t *testing.T) {
	disabled := reminder("3", "12:00", 1)
	disabled.Enabled = false
	h := newHarness(t, reminder("1", "10:00", 1), reminder("2", "11:00", 1), disabled)

	h.sched.Arm(reminder("1", "10:00", 1), h.source.Settings())
	h.sched.Resync(context.Background())

	assert.Len(t, h.timers, 2, "only the unarmed enabled reminder is armed")
	assert.Equal(t, 2, h.sched.PendingCount())
	assert.Equal(t, time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC), h.source.recorded["2"])
	_, recorded := h.source.recorded["1"]
	assert.False(t, recorded)
}

func TestScheduler_ResyncSkipsReminderDisabledAfterSnapshot(t *testing.T) {
	h := newHarness(t, reminder("1", "10:00", 1), reminder("2", "11:00", 1))
	source := &snapshotThenDisable{fakeSource: h.source, id: "1"}
	h.sched.source = source

	h.sched.Resync(context.Background())

	_, pending := h.sched.Pending("1")
	assert.False(t, pending)
	_, recorded := h.source.recorded["1"]
	assert.False(t, recorded)
	assert.Equal(t, 1, h.sched.PendingCount())
	assert.Equal(t, time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC), h.source.recorded["2"])
}

func TestScheduler_ResyncAfterQuietHours(t *testing.T) {
	h := newHarness(t, reminder("1", "09:30", 1, 2))
	h.source.settings.QuietHours = model.QuietHours{Enabled: true, Start: "22:00", End: "08:00"}

	h.now = time.Date(2024, 1, 1, 7, 0, 0, 0, time.UTC)
	h.sched.Resync(context.Background())
	assert.Zero(t, h.sched.PendingCount())

	h.now = time.Date(2024, 1, 1, 8, 30, 0, 0, time.UTC)
	h.sched.Resync(context.Background())
	assert.Equal(t, 1, h.sched.PendingCount())
}

func TestScheduler_StartAndStop(t *testing.T) {
	h := newHarness(t, reminder("1", "10:00", 1))
	h.sched.cfg = Config{Enabled: true, ResyncSpec: "@every 15m"}

	require.NoError(t, h.sched.Start(context.Background()))
	assert.Equal(t, 1, h.sched.PendingCount())

	h.sched.Stop()
	assert.Zero(t, h.sched.PendingCount())
	assert.True(t, h.timers[0].stopped)
}

func TestScheduler_StartRejectsBadSpec(t *testing.T) {
	h := newHarness(t)
	h.sched.cfg = Config{Enabled: true, ResyncSpec: "not a spec"}

	assert.Error(t, h.sched.Start(context.Background()))
}

// Property 1: Next Trigger Placement
// The next trigger is strictly in the future, within 7 days, on a listed
// weekday and at the reminder's wall-clock time
func TestProperty_NextTriggerPlacement(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	settings := model.DefaultNotificationSettings()

	properties.Property("next trigger lands on a selected day", prop.ForAll(
		func(offsetMinutes, hour, minute int, days []int) bool {
			if len(days) == 0 {
				return true
			}
			now := monday9am.Add(time.Duration(offsetMinutes) * time.Minute)
			r := reminder("p", time.Date(2000, 1, 1, hour, minute, 0, 0, time.UTC).Format("15:04"), days...)

			next, ok := NextTrigger(r, settings, now)
			if !ok || !next.After(now) || next.Sub(now) > 7*24*time.Hour {
				return false
			}
			if next.Hour() != hour || next.Minute() != minute || next.Second() != 0 {
				return false
			}
			for _, d := range days {
				if time.Weekday(d) == next.Weekday() {
					return true
				}
			}
			return false
		},
		gen.IntRange(0, 60*24*14),
		gen.IntRange(0, 23),
		gen.IntRange(0, 59),
		gen.SliceOf(gen.IntRange(0, 6)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Property 2: Timer Replacement
// However many times a reminder is armed, exactly one live timer remains
func TestProperty_ArmNeverStacksTimers(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("one live timer per reminder", prop.ForAll(
		func(n int) bool {
			h := newHarness(t)
			r := reminder("1", "10:00", 1, 3, 5)
			for i := 0; i < n; i++ {
				h.sched.Arm(r, h.source.Settings())
			}
			live := 0
			for _, timer := range h.timers {
				if !timer.stopped {
					live++
				}
			}
			return live == 1 && h.sched.PendingCount() == 1
		},
		gen.IntRange(1, 20),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
