package suggestion

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcscsvcscs/fitflow/apps/backend/pkg/model"
)

// 2024-01-01 is a Monday
var monday = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func completeProfile() *model.UserProfile {
	return &model.UserProfile{
		ID:                 "p1",
		Name:               "Ana",
		Age:                30,
		Weight:             70,
		Height:             170,
		Gender:             model.GenderMale,
		Goal:               model.GoalGain,
		ActivityLevel:      model.ActivityMedium,
		WorkoutLocation:    model.LocationGym,
		BodyTypeGoal:       model.BodyTypeMuscular,
		ExperienceLevel:    model.ExperienceIntermediate,
		DietaryPreferences: model.DietNone,
		AvailableTime:      model.Time60Min,
	}
}

func TestSuggestWorkout_IncompleteProfile(t *testing.T) {
	assert.Equal(t, TypeInfo, SuggestWorkout(nil, monday).Type)

	p := completeProfile()
	p.AvailableTime = ""
	got := SuggestWorkout(p, monday)
	assert.Equal(t, TypeInfo, got.Type)
	assert.Equal(t, 0, got.DurationMinutes)
	assert.Empty(t, got.Exercises)
	assert.Contains(t, got.Focus, "Complete seu perfil")
}

func TestSuggestWorkout_GymLoseIgnoresRoutine(t *testing.T) {
	p := completeProfile()
	p.Goal = model.GoalLose
	p.PhysicalLimitations = []string{"joelho"}

	got := SuggestWorkout(p, monday)
	assert.Equal(t, TypeGym, got.Type)
	assert.Equal(t, 45, got.DurationMinutes)
	assert.Equal(t, "Cardio e resistência para emagrecimento", got.Focus)
	assert.Equal(t, []string{"Esteira", "Bicicleta", "Elíptico", "HIIT", "Abdominal"}, got.Exercises)
	assert.Equal(t, "Segunda", got.Weekday)
}

func TestSuggestWorkout_GymRoutine(t *testing.T) {
	tests := []struct {
		name   string
		gender model.Gender
		goal   model.Goal
		day    time.Time
		focus  string
		first  string
	}{
		{"male gain monday", model.GenderMale, model.GoalGain, monday, "Peito e Tríceps", "Supino reto"},
		{"male maintain tuesday", model.GenderMale, model.GoalMaintain, monday.AddDate(0, 0, 1), "Cardio e Core", "Corrida"},
		{"female gain wednesday", model.GenderFemale, model.GoalGain, monday.AddDate(0, 0, 2), "Superior completo", "Desenvolvimento"},
		{"female maintain friday", model.GenderFemale, model.GoalMaintain, monday.AddDate(0, 0, 4), "Superior completo", "Desenvolvimento"},
		{"unknown gender uses female split", model.Gender("other"), model.GoalGain, monday, "Quadríceps", "Agachamento"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := completeProfile()
			p.Gender = tt.gender
			p.Goal = tt.goal

			got := SuggestWorkout(p, tt.day)
			assert.Equal(t, TypeGym, got.Type)
			assert.Equal(t, 60, got.DurationMinutes)
			assert.Equal(t, tt.focus, got.Focus)
			require.NotEmpty(t, got.Exercises)
			assert.Equal(t, tt.first, got.Exercises[0])
			assert.Equal(t, WeekdayLabel(tt.day), got.Weekday)
		})
	}
}

func TestSuggestWorkout_LimitationSuffix(t *testing.T) {
	p := completeProfile()
	p.PhysicalLimitations = []string{"ombro"}

	got := SuggestWorkout(p, monday)
	assert.Equal(t, "Peito e Tríceps (Considere suas limitações)", got.Focus)
}

func TestSuggestWorkout_SundayRestDay(t *testing.T) {
	p := completeProfile()
	p.Goal = model.GoalMaintain

	got := SuggestWorkout(p, monday.AddDate(0, 0, 6))
	assert.Equal(t, "Descanso", got.Focus)
	assert.Empty(t, got.Exercises)
	assert.Equal(t, "Domingo", got.Weekday)
}

func TestSuggestWorkout_HomeAndDefault(t *testing.T) {
	p := completeProfile()
	p.WorkoutLocation = model.LocationHome

	got := SuggestWorkout(p, monday)
	assert.Equal(t, TypeHome, got.Type)
	assert.Equal(t, 40, got.DurationMinutes)
	assert.Equal(t, "Treino funcional para hipertrofia", got.Focus)

	p.Goal = model.GoalLose
	assert.Equal(t, "Cardio e resistência", SuggestWorkout(p, monday).Focus)

	p.Goal = model.GoalMaintain
	assert.Equal(t, "Manutenção física", SuggestWorkout(p, monday).Focus)

	p.WorkoutLocation = model.LocationOutdoor
	got = SuggestWorkout(p, monday)
	assert.Equal(t, TypeDefault, got.Type)
	assert.Equal(t, 30, got.DurationMinutes)
	assert.Equal(t, []string{"Caminhada", "Alongamento", "Abdominal"}, got.Exercises)
}

func TestSuggestWorkout_ExercisesAreCopies(t *testing.T) {
	p := completeProfile()
	got := SuggestWorkout(p, monday)
	got.Exercises[0] = "changed"

	again := SuggestWorkout(p, monday)
	assert.Equal(t, "Supino reto", again.Exercises[0])
}

func TestLookupRoutineDay_Fallback(t *testing.T) {
	routine := RoutineFor(model.GenderMale, model.GoalGain)

	day := LookupRoutineDay(routine, "Feriado")
	assert.Equal(t, "Segunda", day.Day)
	assert.Equal(t, "Peito e Tríceps", day.Focus)
}

func TestRoutineFor_GoalFallback(t *testing.T) {
	assert.Equal(t, RoutineFor(model.GenderMale, model.GoalGain), RoutineFor(model.GenderMale, model.GoalLose))
	assert.Equal(t, RoutineFor(model.GenderFemale, model.GoalGain), RoutineFor(model.GenderFemale, model.Goal("bulk")))
}

func TestSuggestDiet(t *testing.T) {
	tests := []struct {
		goal     model.Goal
		weight   float64
		calories int
		focus    string
	}{
		{model.GoalGain, 70, 2450, "Superávit calórico controlado"},
		{model.GoalLose, 80, 2000, "Déficit calórico moderado"},
		{model.GoalMaintain, 65.5, 1965, "Equilíbrio calórico"},
	}

	for _, tt := range tests {
		t.Run(string(tt.goal), func(t *testing.T) {
			p := completeProfile()
			p.Goal = tt.goal
			p.Weight = tt.weight

			got, ok := SuggestDiet(p)
			require.True(t, ok)
			assert.Equal(t, tt.calories, got.DailyCalories)
			assert.Equal(t, tt.focus, got.Focus)
			assert.Len(t, got.Tips, 3)
		})
	}
}

func TestSuggestDiet_NoResult(t *testing.T) {
	_, ok := SuggestDiet(nil)
	assert.False(t, ok)

	p := completeProfile()
	p.Goal = "unknown"
	_, ok = SuggestDiet(p)
	assert.False(t, ok)
}

func TestSuggestFoodsForMealType(t *testing.T) {
	p := completeProfile()

	breakfast := SuggestFoodsForMealType(p, model.MealBreakfast)
	require.Len(t, breakfast, 4)
	assert.Equal(t, "Ovos mexidos", breakfast[0].Name)

	assert.Len(t, SuggestFoodsForMealType(p, model.MealDinner), 3)
	assert.Empty(t, SuggestFoodsForMealType(p, "brunch"))
	assert.Empty(t, SuggestFoodsForMealType(nil, model.MealLunch))

	breakfast[0].Name = "changed"
	assert.Equal(t, "Ovos mexidos", SuggestFoodsForMealType(p, model.MealBreakfast)[0].Name)
}

func TestSuggestMealFoods_BodyTypeAdjustment(t *testing.T) {
	p := completeProfile()
	p.Goal = model.GoalLose
	p.BodyTypeGoal = model.BodyTypeMuscular

	foods := SuggestMealFoods(p)
	require.Len(t, foods, 4)

	chicken := foods[0]
	assert.Equal(t, "Peito de Frango", chicken.Name)
	assert.InDelta(t, 43.4, chicken.Protein, 0.001)
	assert.InDelta(t, 0, chicken.Carbs, 0.001)
	assert.InDelta(t, 3.6, chicken.Fat, 0.001)
	assert.Equal(t, 205.0, chicken.Calories)
}

func TestSuggestMealFoods_Fallbacks(t *testing.T) {
	p := completeProfile()
	p.BodyTypeGoal = "unknown"
	p.Goal = "unknown"
	p.DietaryPreferences = "unknown"

	q := completeProfile()
	q.BodyTypeGoal = model.BodyTypeToned
	q.Goal = model.GoalMaintain
	q.DietaryPreferences = model.DietNone

	assert.Equal(t, SuggestMealFoods(q), SuggestMealFoods(p))
	assert.Empty(t, SuggestMealFoods(nil))
}

func TestSuggestMealFoods_Vegan(t *testing.T) {
	p := completeProfile()
	p.Goal = model.GoalLose
	p.DietaryPreferences = model.DietVegan
	p.BodyTypeGoal = model.BodyTypeFlexible

	foods := SuggestMealFoods(p)
	require.NotEmpty(t, foods)
	assert.Equal(t, "Tempeh", foods[0].Name)
}

func TestSuggestReminders(t *testing.T) {
	p := completeProfile()
	p.Goal = model.GoalLose
	p.WorkoutLocation = model.LocationHome
	p.ExperienceLevel = model.ExperienceBeginner
	p.ActivityLevel = model.ActivityHigh
	p.DietaryPreferences = model.DietVegan

	got := SuggestReminders(p)
	// 4 goal + 1 location + 1 experience + 2 hydration + 1 plant-based
	require.Len(t, got, 9)
	assert.Equal(t, "🌅 Treino Matinal para Emagrecer", got[0].Title)
	assert.Equal(t, "🏠 Preparar Espaço de Treino", got[4].Title)
	assert.Equal(t, []int{0}, got[5].Days)
	assert.Equal(t, model.ReminderProgress, got[5].Type)
	assert.Equal(t, "10:00", got[6].Time)
	assert.Equal(t, "15:00", got[7].Time)
	assert.Equal(t, "🥬 Suplementação Vegetariana", got[8].Title)

	for _, r := range got {
		assert.NotEmpty(t, r.Reason, r.Title)
	}
}

func TestSuggestReminders_MaintainAndGain(t *testing.T) {
	p := completeProfile()
	p.Goal = model.GoalMaintain
	p.WorkoutLocation = model.LocationOutdoor
	p.ExperienceLevel = model.ExperienceIntermediate

	got := SuggestReminders(p)
	require.Len(t, got, 2)
	assert.Equal(t, "⚖️ Treino de Manutenção", got[0].Title)

	p.Goal = model.GoalGain
	p.WorkoutLocation = model.LocationGym
	p.ExperienceLevel = model.ExperienceAdvanced
	got = SuggestReminders(p)
	require.Len(t, got, 5)
	assert.Equal(t, "🏋️ Preparar para Academia", got[3].Title)
	assert.Equal(t, model.ReminderGoal, got[4].Type)

	assert.Empty(t, SuggestReminders(nil))
}

func TestSuggestReminders_DaysAreCopies(t *testing.T) {
	p := completeProfile()
	got := SuggestReminders(p)
	got[0].Days[0] = 6

	assert.Equal(t, 1, SuggestReminders(p)[0].Days[0])
}

func TestOptimalTimes(t *testing.T) {
	p := completeProfile()
	assert.Equal(t, "17:00", OptimalWorkoutTime(p))
	assert.Len(t, OptimalMealTimes(p), 6)

	p.Goal = model.GoalLose
	assert.Equal(t, "06:30", OptimalWorkoutTime(p))
	assert.Equal(t, []string{"07:30", "12:30", "18:00"}, OptimalMealTimes(p))

	p.Goal = model.GoalMaintain
	assert.Equal(t, "18:00", OptimalWorkoutTime(p))

	assert.Equal(t, []string{"08:00", "12:00", "18:00"}, OptimalHydrationTimes(p))
	p.ActivityLevel = model.ActivityHigh
	assert.Len(t, OptimalHydrationTimes(p), 4)
}

func TestDailyTip(t *testing.T) {
	p := completeProfile()
	p.Goal = model.GoalLose
	p.WorkoutLocation = model.LocationHome
	p.ExperienceLevel = model.ExperienceBeginner
	tip := DailyTip(p)
	assert.Contains(t, tip, "30 minutos em casa")
	assert.Contains(t, tip, "Como iniciante")

	p.Goal = model.GoalGain
	p.DietaryPreferences = model.DietVegetarian
	p.WorkoutLocation = model.LocationGym
	tip = DailyTip(p)
	assert.Contains(t, tip, "quinoa, lentilhas e tofu")
	assert.Contains(t, tip, "equipamentos da academia")

	p.Goal = model.GoalMaintain
	p.BodyTypeGoal = model.BodyTypeAthletic
	assert.Contains(t, DailyTip(p), "equilibre força e cardio")

	assert.Empty(t, DailyTip(nil))
}

func TestApplySuggestedWorkout(t *testing.T) {
	exercises := ApplySuggestedWorkout(SuggestWorkout(completeProfile(), monday))
	require.Len(t, exercises, 5)
	assert.Equal(t, "Supino reto", exercises[0].Name)
	assert.Zero(t, exercises[0].Sets)
	assert.Zero(t, exercises[0].Reps)
}

func TestApplySuggestedReminder(t *testing.T) {
	s := SuggestReminders(completeProfile())[0]
	r := ApplySuggestedReminder(s)

	assert.True(t, r.Enabled)
	assert.Equal(t, model.FrequencyCustom, r.Frequency)
	assert.Equal(t, s.Title, r.Title)
	assert.Equal(t, s.Days, r.Days)
	assert.Empty(t, r.ID)

	r.Days[0] = 6
	assert.NotEqual(t, 6, s.Days[0])
}

// Property 1: Completeness Gate
// Any profile missing a required field yields the informational suggestion
func TestProperty_IncompleteProfileGate(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("missing field gives info suggestion", prop.ForAll(
		func(field int, offset int) bool {
			p := completeProfile()
			switch field {
			case 0:
				p.Gender = ""
			case 1:
				p.Goal = ""
			case 2:
				p.WorkoutLocation = ""
			case 3:
				p.ExperienceLevel = ""
			default:
				p.AvailableTime = ""
			}
			got := SuggestWorkout(p, monday.AddDate(0, 0, offset))
			return got.Type == TypeInfo && got.DurationMinutes == 0 && len(got.Exercises) == 0
		},
		gen.IntRange(0, 4),
		gen.IntRange(0, 6),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Property 2: Diet Calories
// Calories are the rounded product of weight and the goal multiplier
func TestProperty_DietCalories(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	multipliers := map[model.Goal]float64{
		model.GoalLose:     25,
		model.GoalGain:     35,
		model.GoalMaintain: 30,
	}

	properties.Property("calories scale with weight", prop.ForAll(
		func(weight float64, goal model.Goal) bool {
			p := completeProfile()
			p.Weight = weight
			p.Goal = goal
			got, ok := SuggestDiet(p)
			if !ok {
				return false
			}
			diff := float64(got.DailyCalories) - weight*multipliers[goal]
			return diff >= -0.5 && diff <= 0.5
		},
		gen.Float64Range(30, 200),
		gen.OneConstOf(model.GoalLose, model.GoalGain, model.GoalMaintain),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Property 3: Gym Routine Weekday
// A complete gym profile outside the lose goal always trains on today's routine day
func TestProperty_GymRoutineMatchesWeekday(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("routine day equals today", prop.ForAll(
		func(offset int, gender model.Gender, goal model.Goal) bool {
			p := completeProfile()
			p.Gender = gender
			p.Goal = goal
			day := monday.AddDate(0, 0, offset)
			got := SuggestWorkout(p, day)
			return got.Type == TypeGym && got.DurationMinutes == 60 && got.Weekday == WeekdayLabel(day)
		},
		gen.IntRange(0, 365),
		gen.OneConstOf(model.GenderMale, model.GenderFemale),
		gen.OneConstOf(model.GoalGain, model.GoalMaintain),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
