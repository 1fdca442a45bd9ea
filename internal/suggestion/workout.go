// Package suggestion derives workout, diet, meal and reminder suggestions
// from the user profile. Every function here is pure.
package suggestion

import (
	"slices"
	"time"

	"github.com/vcscsvcscs/fitflow/apps/backend/pkg/model"
)

// Suggestion types reported in WorkoutSuggestion.Type
const (
	TypeInfo    = "info"
	TypeGym     = "gym"
	TypeHome    = "home"
	TypeDefault = "default"
)

const (
	incompleteProfileMessage = "Complete seu perfil para receber sugestões personalizadas de treino."
	limitationSuffix         = " (Considere suas limitações)"
)

// IncompleteProfile is returned when the profile cannot drive a suggestion
func IncompleteProfile() model.WorkoutSuggestion {
	return model.WorkoutSuggestion{
		Type:      TypeInfo,
		Focus:     incompleteProfileMessage,
		Exercises: []string{},
	}
}

// WeekdayLabel returns the Portuguese weekday name for t
func WeekdayLabel(t time.Time) string {
	return weekdayLabels[t.Weekday()]
}

func profileComplete(p *model.UserProfile) bool {
	return p.Gender != "" && p.Goal != "" && p.WorkoutLocation != "" &&
		p.ExperienceLevel != "" && p.AvailableTime != ""
}

// SuggestWorkout builds today's workout from the profile
func SuggestWorkout(profile *model.UserProfile, today time.Time) model.WorkoutSuggestion {
	if profile == nil || !profileComplete(profile) {
		return IncompleteProfile()
	}

	todayLabel := WeekdayLabel(today)

	switch profile.WorkoutLocation {
	case model.LocationGym:
		if profile.Goal == model.GoalLose {
			return model.WorkoutSuggestion{
				Type:            TypeGym,
				DurationMinutes: 45,
				Focus:           "Cardio e resistência para emagrecimento",
				Exercises:       []string{"Esteira", "Bicicleta", "Elíptico", "HIIT", "Abdominal"},
				Weekday:         todayLabel,
			}
		}

		day := LookupRoutineDay(RoutineFor(profile.Gender, profile.Goal), todayLabel)
		focus := day.Focus
		if len(profile.PhysicalLimitations) > 0 {
			focus += limitationSuffix
		}
		return model.WorkoutSuggestion{
			Type:            TypeGym,
			DurationMinutes: 60,
			Focus:           focus,
			Exercises:       slices.Clone(day.Exercises),
			Weekday:         day.Day,
		}

	case model.LocationHome:
		suggestion := model.WorkoutSuggestion{
			Type:            TypeHome,
			DurationMinutes: 40,
			Weekday:         todayLabel,
		}
		switch profile.Goal {
		case model.GoalGain:
			suggestion.Focus = "Treino funcional para hipertrofia"
			suggestion.Exercises = []string{"Flexão", "Agachamento", "Avanço", "Prancha", "Burpee"}
		case model.GoalLose:
			suggestion.Focus = "Cardio e resistência"
			suggestion.Exercises = []string{"Polichinelo", "Corrida estacionária", "Mountain climber", "Abdominal", "Prancha"}
		default:
			suggestion.Focus = "Manutenção física"
			suggestion.Exercises = []string{"Agachamento", "Prancha", "Abdominal", "Flexão", "Alongamento"}
		}
		return suggestion
	}

	return model.WorkoutSuggestion{
		Type:            TypeDefault,
		DurationMinutes: 30,
		Focus:           "Treino leve para saúde geral",
		Exercises:       []string{"Caminhada", "Alongamento", "Abdominal"},
		Weekday:         todayLabel,
	}
}
