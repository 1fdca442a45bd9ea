// Package achievement evaluates the fixed badge catalog against the user's logs.
package achievement

import (
	"math"
	"slices"
	"time"

	"github.com/vcscsvcscs/fitflow/apps/backend/pkg/model"
)

const day = 24 * time.Hour

// Catalog IDs
const (
	FirstWorkout         = "first-workout"
	WeeklyWarrior        = "weekly-warrior"
	MonthlyMaster        = "monthly-master"
	Streak7              = "streak-7"
	Streak30             = "streak-30"
	MealTracker          = "meal-tracker"
	NutritionConsistency = "nutrition-consistency"
	WeightGoal           = "weight-goal"
	FitnessLongevity     = "fitness-longevity"
)

// longevityMinFrequency is the workouts-per-day ratio fitness-longevity requires
const longevityMinFrequency = 0.5

type definition struct {
	id          string
	title       string
	description string
	icon        string
	maxProgress int
}

var catalog = []definition{
	{FirstWorkout, "Primeiro Treino", "Registre seu primeiro treino", "🎯", 1},
	{WeeklyWarrior, "Guerreiro Semanal", "Treine 5 vezes em uma semana", "⚔️", 5},
	{MonthlyMaster, "Mestre do Mês", "Complete 20 treinos em um mês", "👑", 20},
	{Streak7, "Sequência de 7 Dias", "Treine 7 dias seguidos", "🔥", 7},
	{Streak30, "Sequência de 30 Dias", "Treine 30 dias seguidos", "💎", 30},
	{MealTracker, "Controle Alimentar", "Registre 10 refeições", "🍎", 10},
	{NutritionConsistency, "Nutrição Consistente", "Registre refeições por 7 dias seguidos", "🥗", 7},
	{WeightGoal, "Meta de Peso", "Alcance sua meta de peso", "⚖️", 1},
	{FitnessLongevity, "Longevidade Fitness", "Mantenha-se ativo por 90 dias", "🏆", 90},
}

// Input is the snapshot of logs the evaluator works on.
// A zero CreatedAt counts as created at evaluation time.
type Input struct {
	Workouts  []model.Workout
	Meals     []model.Meal
	Progress  []model.ProgressSnapshot
	CreatedAt time.Time
}

// Evaluate returns the full catalog with progress computed at now.
// Badges without a rule yet always report zero progress.
func Evaluate(in Input, now time.Time) []model.Achievement {
	totalWorkouts := len(in.Workouts)
	dates := make([]time.Time, 0, totalWorkouts)
	for _, w := range in.Workouts {
		dates = append(dates, w.Date)
	}
	streak := Streak(dates, now)
	createdAt := in.CreatedAt
	if createdAt.IsZero() {
		// no profile yet, or one stored before createdAt existed
		createdAt = now
	}
	days := DaysSince(createdAt, now)
	frequency := WorkoutFrequency(totalWorkouts, days)

	progress := map[string]int{
		FirstWorkout:     min(totalWorkouts, 1),
		Streak7:          min(streak, 7),
		Streak30:         min(streak, 30),
		MealTracker:      min(len(in.Meals), 10),
		FitnessLongevity: min(max(days, 0), 90),
	}

	out := make([]model.Achievement, 0, len(catalog))
	for _, def := range catalog {
		a := model.Achievement{
			ID:          def.id,
			Title:       def.title,
			Description: def.description,
			Icon:        def.icon,
			Progress:    progress[def.id],
			MaxProgress: def.maxProgress,
		}

		if def.id == FitnessLongevity {
			a.Unlocked = days >= 90 && frequency >= longevityMinFrequency
		} else {
			a.Unlocked = a.Progress >= a.MaxProgress
		}
		if a.Unlocked {
			unlockedAt := now
			a.UnlockedAt = &unlockedAt
		}
		out = append(out, a)
	}
	return out
}

// Streak counts consecutive days ending today that have at least one entry.
// Several entries on the same day count once; the first gap ends the streak.
func Streak(dates []time.Time, now time.Time) int {
	sorted := slices.Clone(dates)
	slices.SortFunc(sorted, func(a, b time.Time) int { return b.Compare(a) })

	streak := 0
	for _, d := range sorted {
		daysAgo := DaysSince(d, now)
		if daysAgo == streak {
			streak++
		} else if daysAgo > streak {
			break
		}
	}
	return streak
}

// DaysSince returns the whole number of 24h periods between t and now
func DaysSince(t, now time.Time) int {
	return int(math.Floor(float64(now.Sub(t)) / float64(day)))
}

// WorkoutFrequency returns workouts per day since the profile was created
func WorkoutFrequency(total, days int) float64 {
	return float64(total) / float64(max(1, days))
}
