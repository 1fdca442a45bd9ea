package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/vcscsvcscs/fitflow/apps/backend/internal/storage"
	"github.com/vcscsvcscs/fitflow/apps/backend/pkg/model"
)

// ReminderRepository persists reminders and notification settings
type ReminderRepository struct {
	store  storage.Store
	logger *zap.Logger
}

// NewReminderRepository creates a new ReminderRepository
func NewReminderRepository(store storage.Store, logger *zap.Logger) *ReminderRepository {
	return &ReminderRepository{
		store:  store,
		logger: logger,
	}
}

// LoadReminders returns the stored reminders and whether a usable list was found
func (r *ReminderRepository) LoadReminders(ctx context.Context) ([]model.Reminder, bool) {
	var reminders []model.Reminder
	if !loadJSON(ctx, r.store, r.logger, storage.KeyReminders, &reminders) {
		return []model.Reminder{}, false
	}
	if reminders == nil {
		reminders = []model.Reminder{}
	}
	for i := range reminders {
		if reminders[i].Days == nil {
			reminders[i].Days = []int{}
		}
	}
	return reminders, true
}

// SaveReminders replaces the stored reminder list
func (r *ReminderRepository) SaveReminders(ctx context.Context, reminders []model.Reminder) error {
	if err := saveJSON(ctx, r.store, storage.KeyReminders, reminders); err != nil {
		r.logger.Error("failed to save reminders", zap.Error(err), zap.Int("count", len(reminders)))
		return err
	}
	return nil
}

// LoadSettings returns the stored settings laid over the defaults
func (r *ReminderRepository) LoadSettings(ctx context.Context) model.NotificationSettings {
	settings := model.DefaultNotificationSettings()
	if !loadJSON(ctx, r.store, r.logger, storage.KeyNotificationSettings, &settings) {
		return model.DefaultNotificationSettings()
	}
	return settings
}

// SaveSettings stores the notification settings
func (r *ReminderRepository) SaveSettings(ctx context.Context, settings model.NotificationSettings) error {
	if err := saveJSON(ctx, r.store, storage.KeyNotificationSettings, settings); err != nil {
		r.logger.Error("failed to save notification settings", zap.Error(err))
		return err
	}
	return nil
}
