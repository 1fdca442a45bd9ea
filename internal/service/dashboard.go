package service

import (
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/vcscsvcscs/fitflow/apps/backend/internal/achievement"
	"github.com/vcscsvcscs/fitflow/apps/backend/internal/bmi"
	"github.com/vcscsvcscs/fitflow/apps/backend/internal/suggestion"
	"github.com/vcscsvcscs/fitflow/apps/backend/pkg/model"
)

// MealsPerDay is the number of meals the dashboard counts as a complete day
const MealsPerDay = 4

// DashboardService aggregates the profile, logs and derived rules into the
// day's summary
type DashboardService struct {
	profiles *ProfileService
	logger   *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(profiles *ProfileService, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		profiles: profiles,
		logger:   logger,
	}
}

// BodyMetrics is the BMI with its band and derived theme
type BodyMetrics struct {
	BMI         float64            `json:"bmi"`
	Category    bmi.WeightCategory `json:"category"`
	Description string             `json:"description"`
	Theme       bmi.Theme          `json:"theme"`
}

// DashboardSummary represents the day at a glance
type DashboardSummary struct {
	Profile           model.UserProfile       `json:"profile"`
	GoalText          string                  `json:"goalText"`
	ActivityText      string                  `json:"activityText"`
	Metrics           BodyMetrics             `json:"metrics"`
	TodayWorkout      *model.Workout          `json:"todayWorkout,omitempty"`
	TodayMeals        int                     `json:"todayMeals"`
	MealTarget        int                     `json:"mealTarget"`
	MealsComplete     bool                    `json:"mealsComplete"`
	Consistency       int                     `json:"consistency"`
	WorkoutSuggestion model.WorkoutSuggestion `json:"workoutSuggestion"`
	DietSuggestion    *model.DietSuggestion   `json:"dietSuggestion,omitempty"`
	Tip               string                  `json:"tip"`
	ProgressStats     *model.ProgressStats    `json:"progressStats,omitempty"`
	UnlockedBadges    int                     `json:"unlockedBadges"`
}

var goalTexts = map[model.Goal]string{
	model.GoalLose:     "Emagrecer",
	model.GoalGain:     "Ganhar Massa",
	model.GoalMaintain: "Manter Forma",
}

var activityTexts = map[model.ActivityLevel]string{
	model.ActivityLow:    "Baixo",
	model.ActivityMedium: "Médio",
	model.ActivityHigh:   "Alto",
}

// GoalText returns the display label of a goal
func GoalText(goal model.Goal) string {
	if t, ok := goalTexts[goal]; ok {
		return t
	}
	return "Fitness"
}

// ActivityText returns the display label of an activity level
func ActivityText(level model.ActivityLevel) string {
	if t, ok := activityTexts[level]; ok {
		return t
	}
	return "Médio"
}

// Metrics computes the BMI, band, description and theme of the profile
func (s *DashboardService) Metrics() (BodyMetrics, error) {
	profile := s.profiles.Profile()
	if profile == nil {
		return BodyMetrics{}, ErrNoProfile
	}
	return bodyMetrics(profile)
}

func bodyMetrics(p *model.UserProfile) (BodyMetrics, error) {
	value := bmi.Calculate(p.Weight, p.Height)
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return BodyMetrics{}, validationError("height must be positive to compute BMI")
	}
	category := bmi.CategoryFor(value)
	return BodyMetrics{
		BMI:         value,
		Category:    bmi.Classify(p.Weight, p.Height),
		Description: bmi.Describe(value),
		Theme:       bmi.ThemeForCategory(category),
	}, nil
}

// Achievements evaluates the badge catalog against the logs
func (s *DashboardService) Achievements(now time.Time) []model.Achievement {
	snap := s.profiles.Snapshot()
	return achievement.Evaluate(achievementInput(snap), now)
}

func achievementInput(snap Snapshot) achievement.Input {
	in := achievement.Input{
		Workouts: snap.Workouts,
		Meals:    snap.Meals,
		Progress: snap.Progress,
	}
	if snap.Profile != nil {
		in.CreatedAt = snap.Profile.CreatedAt
	}
	return in
}

// GetSummary builds the dashboard for the day containing now
func (s *DashboardService) GetSummary(now time.Time) (*DashboardSummary, error) {
	snap := s.profiles.Snapshot()
	if snap.Profile == nil {
		return nil, ErrNoProfile
	}
	profile := snap.Profile

	metrics, err := bodyMetrics(profile)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		Profile:           *profile,
		GoalText:          GoalText(profile.Goal),
		ActivityText:      ActivityText(profile.ActivityLevel),
		Metrics:           metrics,
		MealTarget:        MealsPerDay,
		Consistency:       Consistency(len(snap.Workouts), profile.CreatedAt, now),
		WorkoutSuggestion: suggestion.SuggestWorkout(profile, now),
		Tip:               suggestion.DailyTip(profile),
		ProgressStats:     ComputeProgressStats(snap.Progress),
	}

	for i := range snap.Workouts {
		if sameDay(snap.Workouts[i].Date, now) {
			w := snap.Workouts[i]
			summary.TodayWorkout = &w
			break
		}
	}
	for _, m := range snap.Meals {
		if sameDay(m.Date, now) {
			summary.TodayMeals++
		}
	}
	summary.MealsComplete = summary.TodayMeals == MealsPerDay

	if diet, ok := suggestion.SuggestDiet(profile); ok {
		summary.DietSuggestion = &diet
	}

	for _, a := range achievement.Evaluate(achievementInput(snap), now) {
		if a.Unlocked {
			summary.UnlockedBadges++
		}
	}

	s.logger.Debug("dashboard summary built",
		zap.String("profile_id", profile.ID),
		zap.Int("today_meals", summary.TodayMeals),
		zap.Int("consistency", summary.Consistency),
	)
	return summary, nil
}

// Consistency is the percentage of days since profile creation that have a
// workout, where partial days count as whole ones
func Consistency(workouts int, createdAt, now time.Time) int {
	days := 1.0
	if !createdAt.IsZero() {
		days = math.Max(1, math.Ceil(now.Sub(createdAt).Hours()/24))
	}
	return int(math.Round(float64(workouts) / days * 100))
}

// ComputeProgressStats compares the oldest and newest snapshots. It returns
// nil with fewer than two snapshots. Percentages are rounded to one decimal
// and are zero when the baseline is zero.
func ComputeProgressStats(progress []model.ProgressSnapshot) *model.ProgressStats {
	if len(progress) < 2 {
		return nil
	}

	sorted := make([]model.ProgressSnapshot, len(progress))
	copy(sorted, progress)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	first := sorted[0]
	latest := sorted[len(sorted)-1]

	weightChange := latest.Weight - first.Weight
	waistChange := latest.Measurements.Waist - first.Measurements.Waist

	return &model.ProgressStats{
		WeightChange:        weightChange,
		WeightChangePercent: percentOf(weightChange, first.Weight),
		WaistChange:         waistChange,
		WaistChangePercent:  percentOf(waistChange, first.Measurements.Waist),
		TotalDays:           int(math.Ceil(latest.Date.Sub(first.Date).Hours() / 24)),
	}
}

func percentOf(change, base float64) float64 {
	if base == 0 {
		return 0
	}
	return math.Round(change/base*1000) / 10
}

func sameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
