package suggestion

import (
	"math"

	"github.com/vcscsvcscs/fitflow/apps/backend/pkg/model"
)

type dietRule struct {
	multiplier float64
	focus      string
	tips       []string
}

var dietRules = map[model.Goal]dietRule{
	model.GoalLose: {
		multiplier: 25,
		focus:      "Déficit calórico moderado",
		tips:       []string{"Priorize proteínas magras", "Consuma muitas fibras", "Evite açúcares refinados"},
	},
	model.GoalGain: {
		multiplier: 35,
		focus:      "Superávit calórico controlado",
		tips:       []string{"Aumente o consumo de proteínas", "Inclua carboidratos complexos", "Consuma gorduras boas"},
	},
	model.GoalMaintain: {
		multiplier: 30,
		focus:      "Equilíbrio calórico",
		tips:       []string{"Mantenha uma dieta balanceada", "Varie os alimentos", "Hidrate-se bem"},
	},
}

// SuggestDiet returns the daily calorie target for the profile's goal.
// Only body weight is considered. ok is false for a nil profile or an unknown goal.
func SuggestDiet(profile *model.UserProfile) (model.DietSuggestion, bool) {
	if profile == nil {
		return model.DietSuggestion{}, false
	}

	rule, ok := dietRules[profile.Goal]
	if !ok {
		return model.DietSuggestion{}, false
	}

	tips := make([]string, len(rule.tips))
	copy(tips, rule.tips)

	return model.DietSuggestion{
		DailyCalories: int(math.Round(profile.Weight * rule.multiplier)),
		Focus:         rule.focus,
		Tips:          tips,
	}, true
}
