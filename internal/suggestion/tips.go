package suggestion

import (
	"strings"

	"github.com/vcscsvcscs/fitflow/apps/backend/pkg/model"
)

// DailyTip returns the "tip of the day" text for the profile's goal
func DailyTip(profile *model.UserProfile) string {
	if profile == nil {
		return ""
	}

	var parts []string

	switch profile.Goal {
	case model.GoalLose:
		routine := "Um treino regular"
		if profile.WorkoutLocation == model.LocationHome {
			routine = "Um treino de 30 minutos em casa todos os dias"
		}
		parts = append(parts,
			"Lembre-se: a consistência é mais importante que a intensidade.",
			routine+" é melhor que um treino longo esporádico.",
		)
		if profile.ExperienceLevel == model.ExperienceBeginner {
			parts = append(parts, "Como iniciante, comece devagar e aumente gradualmente.")
		}

	case model.GoalGain:
		parts = append(parts, "Para ganhar massa muscular, priorize o descanso adequado e a alimentação rica em proteínas.")
		if profile.DietaryPreferences == model.DietVegetarian || profile.DietaryPreferences == model.DietVegan {
			parts = append(parts, "Como vegetariano, foque em proteínas vegetais como quinoa, lentilhas e tofu.")
		} else {
			parts = append(parts, "O músculo cresce durante o repouso, não durante o treino.")
		}
		if profile.WorkoutLocation == model.LocationGym {
			parts = append(parts, "Aproveite os equipamentos da academia para exercícios compostos.")
		}

	case model.GoalMaintain:
		parts = append(parts, "Manter a forma física é um estilo de vida.")
		switch profile.BodyTypeGoal {
		case model.BodyTypeFlexible:
			parts = append(parts, "Para um corpo flexível, inclua alongamentos e yoga em sua rotina.")
		case model.BodyTypeAthletic:
			parts = append(parts, "Para um corpo atlético, equilibre força e cardio.")
		default:
			parts = append(parts, "Encontre atividades que você realmente goste para manter a motivação a longo prazo.")
		}
	}

	return strings.Join(parts, " ")
}
