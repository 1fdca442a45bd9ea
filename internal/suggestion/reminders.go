package suggestion

import (
	"slices"

	"github.com/vcscsvcscs/fitflow/apps/backend/pkg/model"
)

var (
	weekdaysOnly = []int{1, 2, 3, 4, 5}
	everyDay     = []int{1, 2, 3, 4, 5, 6, 0}
	sundayOnly   = []int{0}
)

var goalReminders = map[model.Goal][]model.SuggestedReminder{
	model.GoalLose: {
		{
			Type: model.ReminderExercise, Title: "🌅 Treino Matinal para Emagrecer",
			Message: "Comece o dia queimando calorias! Treino matinal acelera o metabolismo.",
			Time:    "06:30", Days: weekdaysOnly, Priority: model.PriorityHigh,
			Category: "Fitness", Icon: "🏃", Color: "primary",
			Reason: "Treino matinal acelera o metabolismo e queima mais gordura",
		},
		{
			Type: model.ReminderMeal, Title: "🍳 Café da Manhã Proteico",
			Message: "Proteína no café da manhã ajuda a controlar o apetite o dia todo.",
			Time:    "07:30", Days: everyDay, Priority: model.PriorityHigh,
			Category: "Nutrição", Icon: "🥚", Color: "accent",
			Reason: "Proteína no café controla o apetite e mantém massa muscular",
		},
		{
			Type: model.ReminderMeal, Title: "🥗 Almoço Equilibrado",
			Message: "Foco em proteínas magras e vegetais para saciedade duradoura.",
			Time:    "12:30", Days: everyDay, Priority: model.PriorityMedium,
			Category: "Nutrição", Icon: "🥗", Color: "accent",
			Reason: "Almoço equilibrado evita lanches calóricos à tarde",
		},
		{
			Type: model.ReminderHydration, Title: "💧 Hidratação Matinal",
			Message: "Beba água com limão para desintoxicar e acelerar o metabolismo.",
			Time:    "06:00", Days: everyDay, Priority: model.PriorityMedium,
			Category: "Saúde", Icon: "💧", Color: "secondary",
			Reason: "Água com limão desintoxica e acelera o metabolismo",
		},
	},
	model.GoalGain: {
		{
			Type: model.ReminderExercise, Title: "🏋️ Treino para Hipertrofia",
			Message: "Horário ideal para treino de força! Seus hormônios estão no pico.",
			Time:    "17:00", Days: weekdaysOnly, Priority: model.PriorityHigh,
			Category: "Fitness", Icon: "💪", Color: "primary",
			Reason: "Tarde é o pico de testosterona para ganho muscular",
		},
		{
			Type: model.ReminderMeal, Title: "🥛 Shake Pós-Treino",
			Message: "Proteína + carboidrato nas primeiras 2 horas pós-treino.",
			Time:    "19:00", Days: weekdaysOnly, Priority: model.PriorityHigh,
			Category: "Nutrição", Icon: "🥛", Color: "accent",
			Reason: "Janela anabólica para máxima absorção de nutrientes",
		},
		{
			Type: model.ReminderMeal, Title: "🌙 Ceia Proteica",
			Message: "Proteína caseína para recuperação muscular durante o sono.",
			Time:    "21:30", Days: everyDay, Priority: model.PriorityMedium,
			Category: "Nutrição", Icon: "🌙", Color: "accent",
			Reason: "Proteína caseína repara músculos durante o sono",
		},
	},
}

var maintainReminders = []model.SuggestedReminder{
	{
		Type: model.ReminderExercise, Title: "⚖️ Treino de Manutenção",
		Message: "Mantenha a consistência! Treino regular é melhor que intenso.",
		Time:    "18:00", Days: weekdaysOnly, Priority: model.PriorityMedium,
		Category: "Fitness", Icon: "⚖️", Color: "primary",
		Reason: "Horário equilibrado para manter forma física",
	},
	{
		Type: model.ReminderMeal, Title: "🍽️ Refeições Regulares",
		Message: "Mantenha horários regulares para estabilizar o metabolismo.",
		Time:    "08:00", Days: everyDay, Priority: model.PriorityMedium,
		Category: "Nutrição", Icon: "🍽️", Color: "accent",
		Reason: "Horários regulares estabilizam o metabolismo",
	},
}

var locationReminders = map[model.WorkoutLocation]model.SuggestedReminder{
	model.LocationGym: {
		Type: model.ReminderExercise, Title: "🏋️ Preparar para Academia",
		Message: "Separe roupas e prepare sua garrafa de água para o treino.",
		Time:    "16:30", Days: weekdaysOnly, Priority: model.PriorityLow,
		Category: "Preparação", Icon: "🎒", Color: "primary",
		Reason: "Preparação antecipada aumenta a chance de ir treinar",
	},
	model.LocationHome: {
		Type: model.ReminderExercise, Title: "🏠 Preparar Espaço de Treino",
		Message: "Organize o espaço e prepare os equipamentos para treinar em casa.",
		Time:    "06:00", Days: weekdaysOnly, Priority: model.PriorityLow,
		Category: "Preparação", Icon: "🏠", Color: "primary",
		Reason: "Ambiente organizado motiva o treino em casa",
	},
}

var experienceReminders = map[model.ExperienceLevel]model.SuggestedReminder{
	model.ExperienceBeginner: {
		Type: model.ReminderProgress, Title: "📊 Medir Progresso Semanal",
		Message: "Como iniciante, medir progresso semanal te motiva a continuar.",
		Time:    "09:00", Days: sundayOnly, Priority: model.PriorityMedium,
		Category: "Progresso", Icon: "📊", Color: "success",
		Reason: "Medir progresso motiva iniciantes a manter consistência",
	},
	model.ExperienceAdvanced: {
		Type: model.ReminderGoal, Title: "🎯 Revisar Metas Mensais",
		Message: "Como avançado, revise e ajuste suas metas mensais.",
		Time:    "20:00", Days: sundayOnly, Priority: model.PriorityMedium,
		Category: "Metas", Icon: "🎯", Color: "warning",
		Reason: "Revisão mensal mantém avançados focados em evolução",
	},
}

var highActivityReminders = []model.SuggestedReminder{
	{
		Type: model.ReminderHydration, Title: "💧 Hidratação Intensiva",
		Message: "Nível alto de atividade requer hidratação extra.",
		Time:    "10:00", Days: everyDay, Priority: model.PriorityMedium,
		Category: "Saúde", Icon: "💧", Color: "secondary",
		Reason: "Atividade alta requer hidratação extra",
	},
	{
		Type: model.ReminderHydration, Title: "💧 Hidratação Intensiva",
		Message: "Continue hidratando para recuperação muscular.",
		Time:    "15:00", Days: everyDay, Priority: model.PriorityMedium,
		Category: "Saúde", Icon: "💧", Color: "secondary",
		Reason: "Hidratação contínua para recuperação muscular",
	},
}

var plantBasedReminder = model.SuggestedReminder{
	Type: model.ReminderMeal, Title: "🥬 Suplementação Vegetariana",
	Message: "Considere suplementar vitamina B12 e ômega-3.",
	Time:    "08:30", Days: everyDay, Priority: model.PriorityLow,
	Category: "Nutrição", Icon: "🥬", Color: "accent",
	Reason: "Vegetarianos precisam suplementar B12 e ômega-3",
}

func appendReminder(out []model.SuggestedReminder, r model.SuggestedReminder) []model.SuggestedReminder {
	r.Days = slices.Clone(r.Days)
	return append(out, r)
}

// SuggestReminders builds reminder drafts from goal, location, experience,
// activity level and dietary preference, in that order
func SuggestReminders(profile *model.UserProfile) []model.SuggestedReminder {
	out := []model.SuggestedReminder{}
	if profile == nil {
		return out
	}

	byGoal, ok := goalReminders[profile.Goal]
	if !ok {
		byGoal = maintainReminders
	}
	for _, r := range byGoal {
		out = appendReminder(out, r)
	}

	if r, ok := locationReminders[profile.WorkoutLocation]; ok {
		out = appendReminder(out, r)
	}
	if r, ok := experienceReminders[profile.ExperienceLevel]; ok {
		out = appendReminder(out, r)
	}
	if profile.ActivityLevel == model.ActivityHigh {
		for _, r := range highActivityReminders {
			out = appendReminder(out, r)
		}
	}
	if profile.DietaryPreferences == model.DietVegetarian || profile.DietaryPreferences == model.DietVegan {
		out = appendReminder(out, plantBasedReminder)
	}

	return out
}

// OptimalWorkoutTime returns the preferred HH:MM training slot for the goal
func OptimalWorkoutTime(profile *model.UserProfile) string {
	switch profile.Goal {
	case model.GoalLose:
		return "06:30"
	case model.GoalGain:
		return "17:00"
	default:
		return "18:00"
	}
}

// OptimalMealTimes returns the preferred meal slots for the goal
func OptimalMealTimes(profile *model.UserProfile) []string {
	switch profile.Goal {
	case model.GoalLose:
		return []string{"07:30", "12:30", "18:00"}
	case model.GoalGain:
		return []string{"07:00", "10:00", "13:00", "16:00", "19:00", "21:30"}
	default:
		return []string{"08:00", "12:00", "18:00"}
	}
}

// OptimalHydrationTimes returns the preferred hydration slots for the activity level
func OptimalHydrationTimes(profile *model.UserProfile) []string {
	if profile.ActivityLevel == model.ActivityHigh {
		return []string{"06:00", "10:00", "15:00", "20:00"}
	}
	return []string{"08:00", "12:00", "18:00"}
}
