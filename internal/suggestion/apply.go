package suggestion

import (
	"slices"

	"github.com/vcscsvcscs/fitflow/apps/backend/pkg/model"
)

// ApplySuggestedWorkout turns the suggested exercise names into pending
// exercise entries for a new workout form
func ApplySuggestedWorkout(s model.WorkoutSuggestion) []model.Exercise {
	exercises := make([]model.Exercise, 0, len(s.Exercises))
	for _, name := range s.Exercises {
		exercises = append(exercises, model.Exercise{Name: name})
	}
	return exercises
}

// ApplySuggestedReminder converts a suggestion into a new-reminder draft
func ApplySuggestedReminder(s model.SuggestedReminder) model.Reminder {
	return model.Reminder{
		Type:      s.Type,
		Title:     s.Title,
		Message:   s.Message,
		Time:      s.Time,
		Days:      slices.Clone(s.Days),
		Enabled:   true,
		Frequency: model.FrequencyCustom,
		Priority:  s.Priority,
		Category:  s.Category,
		Icon:      s.Icon,
		Color:     s.Color,
	}
}
