package service

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vcscsvcscs/fitflow/apps/backend/internal/repository"
	"github.com/vcscsvcscs/fitflow/apps/backend/internal/scheduler"
	"github.com/vcscsvcscs/fitflow/apps/backend/pkg/model"
)

// ReminderScheduler arms and cancels reminder timers.
// Implementations must not call back into the ReminderService from Arm or Cancel.
type ReminderScheduler interface {
	Arm(r model.Reminder, settings model.NotificationSettings) (time.Time, bool)
	Cancel(id string)
}

// TimeStatus classifies how close today's occurrence of a reminder is
type TimeStatus string

const (
	StatusOverdue  TimeStatus = "overdue"
	StatusUrgent   TimeStatus = "urgent"
	StatusSoon     TimeStatus = "soon"
	StatusUpcoming TimeStatus = "upcoming"
)

// DefaultUpcomingHours is the window UpcomingReminders uses when none is given
const DefaultUpcomingHours = 24

// MaxUpcomingHours caps the window; larger values would overflow time.Duration
const MaxUpcomingHours = 168

// AgendaItem is a reminder of today with its time status
type AgendaItem struct {
	model.Reminder
	Status TimeStatus `json:"status"`
}

// ReminderService owns the reminders and the notification settings and
// keeps the scheduler in step with them
type ReminderService struct {
	repo   *repository.ReminderRepository
	logger *zap.Logger
	newID  func() string

	mu        sync.RWMutex
	reminders []model.Reminder
	settings  model.NotificationSettings
	sched     ReminderScheduler
}

var _ scheduler.Source = (*ReminderService)(nil)

// NewReminderService creates a new ReminderService with default settings; call Load to read the store
func NewReminderService(repo *repository.ReminderRepository, logger *zap.Logger) *ReminderService {
	return &ReminderService{
		repo:      repo,
		logger:    logger,
		newID:     func() string { return uuid.New().String() },
		reminders: []model.Reminder{},
		settings:  model.DefaultNotificationSettings(),
	}
}

// DefaultReminders returns the reminders seeded on first use
func DefaultReminders() []model.Reminder {
	weekdays := []int{1, 2, 3, 4, 5}
	everyDay := []int{1, 2, 3, 4, 5, 6, 0}
	return []model.Reminder{
		{
			ID:        "1",
			Type:      model.ReminderExercise,
			Title:     "Hora do Treino! 💪",
			Message:   "Mantenha a consistência! Seu corpo agradece.",
			Time:      "07:00",
			Days:      weekdays,
			Enabled:   true,
			Frequency: model.FrequencyDaily,
			Priority:  model.PriorityHigh,
			Category:  "Fitness",
			Icon:      "🏋️",
			Color:     "primary",
		},
		{
			ID:        "2",
			Type:      model.ReminderMeal,
			Title:     "Café da Manhã ☕",
			Message:   "Comece o dia com energia! Não pule o café da manhã.",
			Time:      "08:00",
			Days:      slices.Clone(everyDay),
			Enabled:   true,
			Frequency: model.FrequencyDaily,
			Priority:  model.PriorityMedium,
			Category:  "Nutrição",
			Icon:      "🍳",
			Color:     "accent",
		},
		{
			ID:        "3",
			Type:      model.ReminderHydration,
			Title:     "Hora de Beber Água 💧",
			Message:   "Mantenha-se hidratado! Beba um copo de água.",
			Time:      "10:00",
			Days:      slices.Clone(everyDay),
			Enabled:   true,
			Frequency: model.FrequencyDaily,
			Priority:  model.PriorityLow,
			Category:  "Saúde",
			Icon:      "💧",
			Color:     "secondary",
		},
	}
}

// AttachScheduler connects the scheduler that timers are armed on
func (s *ReminderService) AttachScheduler(sched ReminderScheduler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sched = sched
}

// Load replaces the in-memory state with what the store holds. When no
// reminders were ever stored, or notifications are enabled with an empty
// list, the defaults are seeded and persisted.
func (s *ReminderService) Load(ctx context.Context) {
	reminders, found := s.repo.LoadReminders(ctx)
	settings := s.repo.LoadSettings(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = settings
	s.reminders = reminders
	if !found || (settings.Enabled && len(reminders) == 0) {
		s.seedDefaultsLocked(ctx)
	}

	s.logger.Info("reminder state loaded",
		zap.Int("reminders", len(s.reminders)),
		zap.Bool("notifications_enabled", s.settings.Enabled),
	)
}

func (s *ReminderService) seedDefaultsLocked(ctx context.Context) {
	defaults := DefaultReminders()
	if err := s.repo.SaveReminders(ctx, defaults); err != nil {
		s.logger.Warn("failed to persist default reminders", zap.Error(err))
	}
	s.reminders = defaults
	s.logger.Info("default reminders seeded", zap.Int("count", len(defaults)))
}

// Settings returns the notification settings
func (s *ReminderService) Settings() model.NotificationSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Reminders returns every reminder in creation order
func (s *ReminderService) Reminders() []model.Reminder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneReminders(s.reminders)
}

// Reminder returns the reminder with the given ID
func (s *ReminderService) Reminder(id string) (model.Reminder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexLocked(id)
	if i < 0 {
		return model.Reminder{}, false
	}
	return cloneReminder(s.reminders[i]), true
}

// Create adds a reminder and arms it when enabled
func (s *ReminderService) Create(ctx context.Context, r model.Reminder) (model.Reminder, error) {
	applyReminderDefaults(&r)
	if err := validateReminder(r); err != nil {
		return model.Reminder{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = s.newID()
	r.Days = slices.Clone(r.Days)
	r.LastTriggered = nil
	r.NextTrigger = nil
	s.armLocked(&r)

	reminders := append(cloneReminders(s.reminders), r)
	if err := s.persistLocked(ctx, reminders); err != nil {
		s.cancelLocked(r.ID)
		s.logger.Error("failed to create reminder", zap.Error(err), zap.String("reminder_id", r.ID))
		return model.Reminder{}, fmt.Errorf("failed to create reminder: %w", err)
	}

	s.logger.Info("reminder created successfully",
		zap.String("reminder_id", r.ID),
		zap.String("type", string(r.Type)),
		zap.String("time", r.Time),
	)
	return cloneReminder(r), nil
}

// Update applies a partial update and re-arms or cancels the reminder
func (s *ReminderService) Update(ctx context.Context, id string, update model.ReminderUpdate) (model.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return model.Reminder{}, fmt.Errorf("reminder %s: %w", id, ErrNotFound)
	}

	r := cloneReminder(s.reminders[i])
	applyReminderUpdate(&r, update)
	if err := validateReminder(r); err != nil {
		return model.Reminder{}, err
	}

	return s.replaceLocked(ctx, i, r, "reminder updated successfully")
}

// Toggle flips the enabled flag, arming on enable and cancelling on disable
func (s *ReminderService) Toggle(ctx context.Context, id string) (model.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return model.Reminder{}, fmt.Errorf("reminder %s: %w", id, ErrNotFound)
	}

	r := cloneReminder(s.reminders[i])
	r.Enabled = !r.Enabled
	return s.replaceLocked(ctx, i, r, "reminder toggled")
}

func (s *ReminderService) replaceLocked(ctx context.Context, i int, r model.Reminder, msg string) (model.Reminder, error) {
	s.armLocked(&r)

	reminders := cloneReminders(s.reminders)
	reminders[i] = r
	if err := s.persistLocked(ctx, reminders); err != nil {
		s.logger.Error("failed to save reminder", zap.Error(err), zap.String("reminder_id", r.ID))
		return model.Reminder{}, fmt.Errorf("failed to save reminder: %w", err)
	}

	s.logger.Info(msg,
		zap.String("reminder_id", r.ID),
		zap.Bool("enabled", r.Enabled),
	)
	return cloneReminder(r), nil
}

// Delete removes a reminder and cancels its pending timer
func (s *ReminderService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("reminder %s: %w", id, ErrNotFound)
	}

	s.cancelLocked(id)
	reminders := slices.Delete(cloneReminders(s.reminders), i, i+1)
	if err := s.persistLocked(ctx, reminders); err != nil {
		s.logger.Error("failed to delete reminder", zap.Error(err), zap.String("reminder_id", id))
		return fmt.Errorf("failed to delete reminder: %w", err)
	}

	s.logger.Info("reminder deleted successfully", zap.String("reminder_id", id))
	return nil
}

// UpdateSettings merges the update into the settings, validates the result
// and re-arms every reminder against the new settings
func (s *ReminderService) UpdateSettings(ctx context.Context, update model.SettingsUpdate) (model.NotificationSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := s.settings
	applySettingsUpdate(&settings, update)
	if err := validateSettings(settings); err != nil {
		return model.NotificationSettings{}, err
	}

	if err := s.repo.SaveSettings(ctx, settings); err != nil {
		s.logger.Error("failed to save notification settings", zap.Error(err))
		return model.NotificationSettings{}, fmt.Errorf("failed to save notification settings: %w", err)
	}
	s.settings = settings

	if settings.Enabled && len(s.reminders) == 0 {
		s.seedDefaultsLocked(ctx)
	}
	s.rearmAllLocked(ctx)

	s.logger.Info("notification settings updated",
		zap.Bool("enabled", settings.Enabled),
		zap.Bool("quiet_hours", settings.QuietHours.Enabled),
	)
	return settings, nil
}

func (s *ReminderService) rearmAllLocked(ctx context.Context) {
	if s.sched == nil {
		return
	}
	reminders := cloneReminders(s.reminders)
	for i := range reminders {
		s.armLocked(&reminders[i])
	}
	if err := s.persistLocked(ctx, reminders); err != nil {
		s.logger.Warn("failed to persist next triggers", zap.Error(err))
	}
}

// MarkTriggered records a delivery and arms the next occurrence
func (s *ReminderService) MarkTriggered(ctx context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("reminder %s: %w", id, ErrNotFound)
	}

	r := cloneReminder(s.reminders[i])
	r.LastTriggered = &at
	s.armLocked(&r)

	reminders := cloneReminders(s.reminders)
	reminders[i] = r
	if err := s.persistLocked(ctx, reminders); err != nil {
		return fmt.Errorf("failed to mark reminder triggered: %w", err)
	}

	s.logger.Debug("reminder triggered", zap.String("reminder_id", id), zap.Time("at", at))
	return nil
}

// Rearm arms or cancels the reminder from its current state and stores the
// resulting next trigger. A missing reminder has any stale timer cancelled.
func (s *ReminderService) Rearm(ctx context.Context, id string) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		s.cancelLocked(id)
		return time.Time{}, false, fmt.Errorf("reminder %s: %w", id, ErrNotFound)
	}

	r := cloneReminder(s.reminders[i])
	s.armLocked(&r)

	reminders := cloneReminders(s.reminders)
	reminders[i] = r
	if err := s.persistLocked(ctx, reminders); err != nil {
		return time.Time{}, false, fmt.Errorf("failed to record next trigger: %w", err)
	}
	if r.NextTrigger == nil {
		return time.Time{}, false, nil
	}
	return *r.NextTrigger, true, nil
}

// TodaysReminders returns the enabled reminders scheduled on now's weekday, by time
func (s *ReminderService) TodaysReminders(now time.Time) []model.Reminder {
	weekday := int(now.Weekday())

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Reminder{}
	for _, r := range s.reminders {
		if r.Enabled && slices.Contains(r.Days, weekday) {
			out = append(out, cloneReminder(r))
		}
	}
	sortByTime(out)
	return out
}

// TodaysAgenda returns today's reminders with their time status
func (s *ReminderService) TodaysAgenda(now time.Time) []AgendaItem {
	reminders := s.TodaysReminders(now)
	items := make([]AgendaItem, 0, len(reminders))
	for _, r := range reminders {
		status, err := ReminderTimeStatus(r.Time, now)
		if err != nil {
			s.logger.Warn("reminder has malformed time", zap.String("reminder_id", r.ID), zap.String("time", r.Time))
			continue
		}
		items = append(items, AgendaItem{Reminder: r, Status: status})
	}
	return items
}

// UpcomingReminders returns enabled reminders whose occurrence today falls
// within [now, now+hours]. Weekdays are not consulted and the window does
// not reach into the next day. A non-positive hours uses DefaultUpcomingHours
// and anything above MaxUpcomingHours is clamped to it.
func (s *ReminderService) UpcomingReminders(now time.Time, hours int) []model.Reminder {
	if hours <= 0 {
		hours = DefaultUpcomingHours
	}
	hours = min(hours, MaxUpcomingHours)
	end := now.Add(time.Duration(hours) * time.Hour)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Reminder{}
	for _, r := range s.reminders {
		if !r.Enabled {
			continue
		}
		at, err := occurrenceOn(r.Time, now)
		if err != nil {
			continue
		}
		if !at.Before(now) && !at.After(end) {
			out = append(out, cloneReminder(r))
		}
	}
	sortByTime(out)
	return out
}

// ReminderTimeStatus classifies an HH:MM time against now using whole
// minutes until today's occurrence
func ReminderTimeStatus(clock string, now time.Time) (TimeStatus, error) {
	at, err := occurrenceOn(clock, now)
	if err != nil {
		return "", err
	}
	diff := int(math.Floor(at.Sub(now).Minutes()))
	switch {
	case diff < 0:
		return StatusOverdue, nil
	case diff <= 15:
		return StatusUrgent, nil
	case diff <= 60:
		return StatusSoon, nil
	default:
		return StatusUpcoming, nil
	}
}

func occurrenceOn(clock string, day time.Time) (time.Time, error) {
	hour, minute, err := scheduler.ParseClock(clock)
	if err != nil {
		return time.Time{}, validationError("%s", err.Error())
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location()), nil
}

func sortByTime(reminders []model.Reminder) {
	sort.SliceStable(reminders, func(i, j int) bool {
		return reminders[i].Time < reminders[j].Time
	})
}

// armLocked arms or cancels r and records the resulting next trigger on it
func (s *ReminderService) armLocked(r *model.Reminder) {
	if s.sched == nil {
		return
	}
	if !r.Enabled || !s.settings.Enabled {
		s.sched.Cancel(r.ID)
		r.NextTrigger = nil
		return
	}
	next, ok := s.sched.Arm(*r, s.settings)
	if !ok {
		r.NextTrigger = nil
		return
	}
	r.NextTrigger = &next
}

func (s *ReminderService) cancelLocked(id string) {
	if s.sched != nil {
		s.sched.Cancel(id)
	}
}

func (s *ReminderService) persistLocked(ctx context.Context, reminders []model.Reminder) error {
	if err := s.repo.SaveReminders(ctx, reminders); err != nil {
		return err
	}
	s.reminders = reminders
	return nil
}

func (s *ReminderService) indexLocked(id string) int {
	return slices.IndexFunc(s.reminders, func(r model.Reminder) bool { return r.ID == id })
}

func cloneReminder(r model.Reminder) model.Reminder {
	r.Days = slices.Clone(r.Days)
	if r.LastTriggered != nil {
		t := *r.LastTriggered
		r.LastTriggered = &t
	}
	if r.NextTrigger != nil {
		t := *r.NextTrigger
		r.NextTrigger = &t
	}
	return r
}

func cloneReminders(in []model.Reminder) []model.Reminder {
	out := make([]model.Reminder, len(in))
	for i, r := range in {
		out[i] = cloneReminder(r)
	}
	return out
}

func applyReminderDefaults(r *model.Reminder) {
	if r.Frequency == "" {
		r.Frequency = model.FrequencyDaily
	}
	if r.Priority == "" {
		r.Priority = model.PriorityMedium
	}
}

func applyReminderUpdate(r *model.Reminder, u model.ReminderUpdate) {
	if u.Type != nil {
		r.Type = *u.Type
	}
	if u.Title != nil {
		r.Title = *u.Title
	}
	if u.Message != nil {
		r.Message = *u.Message
	}
	if u.Time != nil {
		r.Time = *u.Time
	}
	if u.Days != nil {
		r.Days = slices.Clone(u.Days)
	}
	if u.Enabled != nil {
		r.Enabled = *u.Enabled
	}
	if u.Frequency != nil {
		r.Frequency = *u.Frequency
	}
	if u.Priority != nil {
		r.Priority = *u.Priority
	}
	if u.Category != nil {
		r.Category = *u.Category
	}
	if u.Icon != nil {
		r.Icon = *u.Icon
	}
	if u.Color != nil {
		r.Color = *u.Color
	}
}

func applySettingsUpdate(s *model.NotificationSettings, u model.SettingsUpdate) {
	if u.Enabled != nil {
		s.Enabled = *u.Enabled
	}
	if u.Sound != nil {
		s.Sound = *u.Sound
	}
	if u.Vibration != nil {
		s.Vibration = *u.Vibration
	}
	if u.QuietHours != nil {
		s.QuietHours = *u.QuietHours
	}
	if u.ReminderAdvance != nil {
		s.ReminderAdvance = *u.ReminderAdvance
	}
	if u.MaxRemindersPerDay != nil {
		s.MaxRemindersPerDay = *u.MaxRemindersPerDay
	}
	if u.SnoozeEnabled != nil {
		s.SnoozeEnabled = *u.SnoozeEnabled
	}
	if u.SnoozeDuration != nil {
		s.SnoozeDuration = *u.SnoozeDuration
	}
}

func validateReminder(r model.Reminder) error {
	if !slices.Contains([]model.ReminderType{model.ReminderExercise, model.ReminderMeal, model.ReminderHydration, model.ReminderProgress, model.ReminderGoal}, r.Type) {
		return validationError("invalid reminder type %q", r.Type)
	}
	if strings.TrimSpace(r.Title) == "" {
		return validationError("reminder title is required")
	}
	if strings.TrimSpace(r.Message) == "" {
		return validationError("reminder message is required")
	}
	if _, _, err := scheduler.ParseClock(r.Time); err != nil {
		return validationError("%s", err.Error())
	}
	if len(r.Days) == 0 {
		return validationError("at least one day must be selected")
	}
	for _, d := range r.Days {
		if d < 0 || d > 6 {
			return validationError("invalid day %d: expected 0-6", d)
		}
	}
	if !slices.Contains([]model.ReminderFrequency{model.FrequencyDaily, model.FrequencyWeekly, model.FrequencyCustom}, r.Frequency) {
		return validationError("invalid frequency %q", r.Frequency)
	}
	if !slices.Contains([]model.Priority{model.PriorityLow, model.PriorityMedium, model.PriorityHigh}, r.Priority) {
		return validationError("invalid priority %q", r.Priority)
	}
	return nil
}

func validateSettings(s model.NotificationSettings) error {
	if _, _, err := scheduler.ParseClock(s.QuietHours.Start); err != nil {
		return validationError("quiet hours start: %s", err.Error())
	}
	if _, _, err := scheduler.ParseClock(s.QuietHours.End); err != nil {
		return validationError("quiet hours end: %s", err.Error())
	}
	if s.ReminderAdvance < 1 || s.ReminderAdvance > 60 {
		return validationError("reminder advance must be between 1 and 60 minutes")
	}
	if s.MaxRemindersPerDay < 1 || s.MaxRemindersPerDay > 20 {
		return validationError("max reminders per day must be between 1 and 20")
	}
	if s.SnoozeDuration < 5 || s.SnoozeDuration > 60 || s.SnoozeDuration%5 != 0 {
		return validationError("snooze duration must be between 5 and 60 minutes in steps of 5")
	}
	return nil
}
