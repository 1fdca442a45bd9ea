package storage

import "context"

// Keys used by the application. They match the layout written by earlier
// releases so existing data keeps loading.
const (
	KeyProfile              = "fitflow_user"
	KeyWorkouts             = "fitflow_workouts"
	KeyMeals                = "fitflow_meals"
	KeyProgress             = "fitflow_progress"
	KeyReminders            = "fitflow-reminders"
	KeyNotificationSettings = "fitflow-notification-settings"
	KeyAuditTrail           = "fitflow-audit"
)

// Store is the key-value persistence capability the application depends on
type Store interface {
	// Get returns the value for key and whether it was present
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	// RemoveKeys deletes every key or none of them
	RemoveKeys(ctx context.Context, keys ...string) error
}
