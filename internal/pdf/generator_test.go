package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vcscsvcscs/fitflow/apps/backend/pkg/model"
)

func TestPDFGenerator_Generate_Success(t *testing.T) {
	// Arrange
	generator := NewPDFGenerator(zap.NewNop())
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	notes := "Treino pesado"

	reportData := &ReportData{
		UserName:    "João Silva",
		DateRange:   "2024-02-10 a 2024-03-10",
		GeneratedAt: now,
		Profile: &model.UserProfile{
			ID:              "p1",
			Name:            "João Silva",
			Age:             30,
			Weight:          80,
			Height:          180,
			Gender:          model.GenderMale,
			Goal:            model.GoalLose,
			WorkoutLocation: model.LocationGym,
			ExperienceLevel: model.ExperienceBeginner,
			AvailableTime:   model.Time60Min,
		},
		BMI:      24.7,
		BMILabel: "Peso Ideal",
		Diet:     &model.DietSuggestion{DailyCalories: 2000, Focus: "Déficit calórico moderado"},
		Stats: &model.ProgressStats{
			WeightChange:        -2.5,
			WeightChangePercent: -3.1,
			WaistChange:         -3,
			WaistChangePercent:  -3.3,
			TotalDays:           28,
		},
		Workouts: []model.Workout{
			{
				ID:        "w1",
				Date:      now.AddDate(0, 0, -1),
				Type:      model.WorkoutStrength,
				Duration:  60,
				Exercises: []model.Exercise{{Name: "Supino", Sets: 4, Reps: 10}},
				Notes:     &notes,
			},
		},
		Meals: []model.Meal{
			{
				ID:   "m1",
				Date: now,
				Type: model.MealLunch,
				Foods: []model.Food{
					{Name: "Frango", Quantity: 150, Unit: "g", Calories: 248, Protein: 46.5},
				},
			},
		},
		Progress: []model.ProgressSnapshot{
			{ID: "s1", Date: now, Weight: 80, Measurements: model.Measurements{Chest: 100, Waist: 88, Hips: 98, Arms: 35, Thighs: 58}},
			{ID: "s0", Date: now.AddDate(0, 0, -28), Weight: 82.5, Measurements: model.Measurements{Waist: 91}},
		},
		Achievements: []model.Achievement{
			{ID: "first-workout", Title: "Primeiro Treino", Description: "Complete seu primeiro treino", Unlocked: true, Progress: 1, MaxProgress: 1},
			{ID: "streak-7", Title: "Sequência de 7 Dias", Description: "Treine 7 dias seguidos", Progress: 1, MaxProgress: 7},
		},
	}

	// Act
	pdfBytes, err := generator.Generate(reportData)

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, pdfBytes)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}

func TestPDFGenerator_Generate_EmptyData(t *testing.T) {
	generator := NewPDFGenerator(zap.NewNop())

	pdfBytes, err := generator.Generate(&ReportData{UserName: "Test User", DateRange: "-"})

	require.NoError(t, err)
	assert.NotEmpty(t, pdfBytes)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}

func TestPDFGenerator_Generate_NilData(t *testing.T) {
	generator := NewPDFGenerator(zap.NewNop())

	_, err := generator.Generate(nil)
	assert.Error(t, err)
}

func TestPDFGenerator_Generate_ManyWorkoutsPaginates(t *testing.T) {
	generator := NewPDFGenerator(zap.NewNop())
	now := time.Now()

	workouts := make([]model.Workout, 0, 120)
	for i := 0; i < 120; i++ {
		workouts = append(workouts, model.Workout{
			ID:       "w",
			Date:     now.AddDate(0, 0, -i),
			Type:     model.WorkoutCardio,
			Duration: 30,
		})
	}

	short, err := generator.Generate(&ReportData{UserName: "A", Workouts: workouts[:1]})
	require.NoError(t, err)
	long, err := generator.Generate(&ReportData{UserName: "A", Workouts: workouts})
	require.NoError(t, err)

	assert.Greater(t, len(long), len(short))
}

func TestPDFGenerator_LogsSize(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	generator := NewPDFGenerator(zap.New(core))

	_, err := generator.Generate(&ReportData{UserName: "A"})
	require.NoError(t, err)

	entries := logs.FilterMessage("PDF report generated successfully").All()
	require.Len(t, entries, 1)
	assert.Positive(t, entries[0].ContextMap()["size_bytes"])
}
