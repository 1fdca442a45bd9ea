package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vcscsvcscs/fitflow/apps/backend/internal/audit"
	"github.com/vcscsvcscs/fitflow/apps/backend/internal/repository"
	"github.com/vcscsvcscs/fitflow/apps/backend/pkg/model"
)

// ProfileService owns the single profile and the workout, meal and progress logs.
// Every mutation is persisted before readers can observe it.
type ProfileService struct {
	repo        *repository.ProfileRepository
	auditLogger *audit.Logger
	logger      *zap.Logger

	activitySnapshots bool
	now               func() time.Time
	newID             func() string

	mu       sync.RWMutex
	profile  *model.UserProfile
	workouts []model.Workout
	meals    []model.Meal
	progress []model.ProgressSnapshot
}

// Snapshot is a consistent copy of everything the ProfileService owns
type Snapshot struct {
	Profile  *model.UserProfile       `json:"profile"`
	Workouts []model.Workout          `json:"workouts"`
	Meals    []model.Meal             `json:"meals"`
	Progress []model.ProgressSnapshot `json:"progress"`
}

// NewProfileService creates a new ProfileService with empty state; call Load to read the store
func NewProfileService(repo *repository.ProfileRepository, auditLogger *audit.Logger, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		repo:        repo,
		auditLogger: auditLogger,
		logger:      logger,
		now:         time.Now,
		newID:       func() string { return uuid.New().String() },
		workouts:    []model.Workout{},
		meals:       []model.Meal{},
		progress:    []model.ProgressSnapshot{},
	}
}

// SetActivitySnapshots controls whether logging a workout or meal also
// records a progress snapshot carrying the current profile weight
func (s *ProfileService) SetActivitySnapshots(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activitySnapshots = enabled
}

// Load replaces the in-memory state with what the store holds
func (s *ProfileService) Load(ctx context.Context) {
	profile := s.repo.LoadProfile(ctx)
	workouts := s.repo.LoadWorkouts(ctx)
	meals := s.repo.LoadMeals(ctx)
	progress := s.repo.LoadProgress(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = profile
	s.workouts = workouts
	s.meals = meals
	s.progress = progress

	s.logger.Info("profile state loaded",
		zap.Bool("has_profile", profile != nil),
		zap.Int("workouts", len(workouts)),
		zap.Int("meals", len(meals)),
		zap.Int("progress", len(progress)),
	)
}

// Profile returns a copy of the profile, or nil when none is configured
func (s *ProfileService) Profile() *model.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProfile(s.profile)
}

// Workouts returns the workout log, newest first
func (s *ProfileService) Workouts() []model.Workout {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneWorkouts(s.workouts)
}

// Meals returns the meal log, newest first
func (s *ProfileService) Meals() []model.Meal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneMeals(s.meals)
}

// Progress returns the progress log, newest first
func (s *ProfileService) Progress() []model.ProgressSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.progress)
}

// Snapshot returns the profile and all logs read under one lock
func (s *ProfileService) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Profile:  cloneProfile(s.profile),
		Workouts: cloneWorkouts(s.workouts),
		Meals:    cloneMeals(s.meals),
		Progress: slices.Clone(s.progress),
	}
}

// SaveProfile creates the profile or replaces the existing one.
// A replacement keeps the existing ID and creation time.
func (s *ProfileService) SaveProfile(ctx context.Context, profile model.UserProfile) (model.UserProfile, error) {
	repository.ApplyProfileDefaults(&profile)
	profile.PhysicalLimitations = slices.Clone(profile.PhysicalLimitations)
	if err := validateProfile(&profile); err != nil {
		return model.UserProfile{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile != nil {
		profile.ID = s.profile.ID
		profile.CreatedAt = s.profile.CreatedAt
	}
	if profile.ID == "" {
		profile.ID = s.newID()
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = s.now()
	}

	if err := s.repo.SaveProfile(ctx, &profile); err != nil {
		s.logger.Error("failed to save profile", zap.Error(err), zap.String("profile_id", profile.ID))
		return model.UserProfile{}, fmt.Errorf("failed to save profile: %w", err)
	}
	s.profile = &profile

	s.logger.Info("profile saved successfully",
		zap.String("profile_id", profile.ID),
		zap.String("goal", string(profile.Goal)),
	)
	return *cloneProfile(&profile), nil
}

// UpdateProfile applies a partial update to the existing profile
func (s *ProfileService) UpdateProfile(ctx context.Context, update model.ProfileUpdate) (model.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil {
		return model.UserProfile{}, ErrNoProfile
	}

	updated := *cloneProfile(s.profile)
	applyProfileUpdate(&updated, update)
	if err := validateProfile(&updated); err != nil {
		return model.UserProfile{}, err
	}

	if err := s.repo.SaveProfile(ctx, &updated); err != nil {
		s.logger.Error("failed to update profile", zap.Error(err), zap.String("profile_id", updated.ID))
		return model.UserProfile{}, fmt.Errorf("failed to update profile: %w", err)
	}
	s.profile = &updated

	s.logger.Info("profile updated successfully", zap.String("profile_id", updated.ID))
	return *cloneProfile(&updated), nil
}

// AddWorkout prepends a workout to the log
func (s *ProfileService) AddWorkout(ctx context.Context, workout model.Workout) (model.Workout, error) {
	if workout.Type == "" {
		workout.Type = model.WorkoutStrength
	}
	if err := validateWorkout(workout); err != nil {
		return model.Workout{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	workout.ID = s.newID()
	if workout.Date.IsZero() {
		workout.Date = s.now()
	}
	workout = cloneWorkout(workout)
	if workout.Exercises == nil {
		workout.Exercises = []model.Exercise{}
	}

	workouts := prepend(s.workouts, workout)
	if err := s.repo.SaveWorkouts(ctx, workouts); err != nil {
		s.logger.Error("failed to save workout", zap.Error(err), zap.String("workout_id", workout.ID))
		return model.Workout{}, fmt.Errorf("failed to save workout: %w", err)
	}
	s.workouts = workouts

	s.logger.Info("workout logged successfully",
		zap.String("workout_id", workout.ID),
		zap.String("type", string(workout.Type)),
		zap.Int("duration", workout.Duration),
	)

	s.recordActivityLocked(ctx, workout.Date)
	return cloneWorkout(workout), nil
}

// AddMeal prepends a meal to the log
func (s *ProfileService) AddMeal(ctx context.Context, meal model.Meal) (model.Meal, error) {
	if err := validateMeal(meal); err != nil {
		return model.Meal{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	meal.ID = s.newID()
	if meal.Date.IsZero() {
		meal.Date = s.now()
	}
	meal = cloneMeal(meal)
	if meal.Foods == nil {
		meal.Foods = []model.Food{}
	}

	meals := prepend(s.meals, meal)
	if err := s.repo.SaveMeals(ctx, meals); err != nil {
		s.logger.Error("failed to save meal", zap.Error(err), zap.String("meal_id", meal.ID))
		return model.Meal{}, fmt.Errorf("failed to save meal: %w", err)
	}
	s.meals = meals

	s.logger.Info("meal logged successfully",
		zap.String("meal_id", meal.ID),
		zap.String("type", string(meal.Type)),
		zap.Int("foods", len(meal.Foods)),
	)

	s.recordActivityLocked(ctx, meal.Date)
	return cloneMeal(meal), nil
}

// AddProgress prepends a body measurement snapshot to the log
func (s *ProfileService) AddProgress(ctx context.Context, snapshot model.ProgressSnapshot) (model.ProgressSnapshot, error) {
	if err := validateSnapshot(snapshot); err != nil {
		return model.ProgressSnapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot.ID = s.newID()
	if snapshot.Date.IsZero() {
		snapshot.Date = s.now()
	}

	if err := s.appendProgressLocked(ctx, snapshot); err != nil {
		return model.ProgressSnapshot{}, err
	}

	s.logger.Info("progress recorded successfully",
		zap.String("progress_id", snapshot.ID),
		zap.Float64("weight", snapshot.Weight),
	)
	return snapshot, nil
}

func (s *ProfileService) appendProgressLocked(ctx context.Context, snapshot model.ProgressSnapshot) error {
	progress := prepend(s.progress, snapshot)
	if err := s.repo.SaveProgress(ctx, progress); err != nil {
		s.logger.Error("failed to save progress", zap.Error(err), zap.String("progress_id", snapshot.ID))
		return fmt.Errorf("failed to save progress: %w", err)
	}
	s.progress = progress
	return nil
}

// recordActivityLocked stores a weight-only snapshot after a logged activity.
// Failure is logged and does not fail the activity itself.
func (s *ProfileService) recordActivityLocked(ctx context.Context, at time.Time) {
	if !s.activitySnapshots || s.profile == nil {
		return
	}
	snapshot := model.ProgressSnapshot{
		ID:     s.newID(),
		Date:   at,
		Weight: s.profile.Weight,
	}
	if err := s.appendProgressLocked(ctx, snapshot); err != nil {
		s.logger.Warn("failed to record activity snapshot", zap.Error(err))
	}
}

// ClearAll removes the profile and every log in one store operation and
// writes an audit entry. Reminders and notification settings are kept.
func (s *ProfileService) ClearAll(ctx context.Context, ipAddress, userAgent string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profileID := ""
	if s.profile != nil {
		profileID = s.profile.ID
	}

	s.logger.Info("clearing all profile data", zap.String("profile_id", profileID))

	if err := s.repo.ClearAll(ctx); err != nil {
		s.logger.Error("failed to clear profile data", zap.Error(err))
		return fmt.Errorf("failed to clear profile data: %w", err)
	}

	s.profile = nil
	s.workouts = []model.Workout{}
	s.meals = []model.Meal{}
	s.progress = []model.ProgressSnapshot{}

	if s.auditLogger != nil {
		if err := s.auditLogger.LogDelete(ctx, audit.ResourceProfile, profileID, ipAddress, userAgent); err != nil {
			s.logger.Error("failed to write audit log for clear-all", zap.Error(err))
		}
	}

	s.logger.Info("profile data cleared successfully", zap.String("profile_id", profileID))
	return nil
}

func prepend[T any](list []T, item T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, item)
	return append(out, list...)
}

func cloneProfile(p *model.UserProfile) *model.UserProfile {
	if p == nil {
		return nil
	}
	c := *p
	c.PhysicalLimitations = slices.Clone(p.PhysicalLimitations)
	return &c
}

func cloneWorkouts(in []model.Workout) []model.Workout {
	out := make([]model.Workout, len(in))
	for i, w := range in {
		out[i] = cloneWorkout(w)
	}
	return out
}

// cloneWorkout copies the exercise list and every optional field so the
// caller shares no memory with the log
func cloneWorkout(w model.Workout) model.Workout {
	w.Notes = clonePtr(w.Notes)
	if w.Exercises == nil {
		return w
	}
	exercises := make([]model.Exercise, len(w.Exercises))
	for i, e := range w.Exercises {
		e.Weight = clonePtr(e.Weight)
		e.Duration = clonePtr(e.Duration)
		e.Rest = clonePtr(e.Rest)
		e.Type = clonePtr(e.Type)
		e.Intensity = clonePtr(e.Intensity)
		e.Notes = clonePtr(e.Notes)
		exercises[i] = e
	}
	w.Exercises = exercises
	return w
}

func cloneMeals(in []model.Meal) []model.Meal {
	out := make([]model.Meal, len(in))
	for i, m := range in {
		out[i] = cloneMeal(m)
	}
	return out
}

func cloneMeal(m model.Meal) model.Meal {
	m.Foods = slices.Clone(m.Foods)
	m.Notes = clonePtr(m.Notes)
	return m
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func applyProfileUpdate(p *model.UserProfile, u model.ProfileUpdate) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Age != nil {
		p.Age = *u.Age
	}
	if u.Weight != nil {
		p.Weight = *u.Weight
	}
	if u.Height != nil {
		p.Height = *u.Height
	}
	if u.Gender != nil {
		p.Gender = *u.Gender
	}
	if u.Goal != nil {
		p.Goal = *u.Goal
	}
	if u.ActivityLevel != nil {
		p.ActivityLevel = *u.ActivityLevel
	}
	if u.WorkoutLocation != nil {
		p.WorkoutLocation = *u.WorkoutLocation
	}
	if u.BodyTypeGoal != nil {
		p.BodyTypeGoal = *u.BodyTypeGoal
	}
	if u.ExperienceLevel != nil {
		p.ExperienceLevel = *u.ExperienceLevel
	}
	if u.PhysicalLimitations != nil {
		p.PhysicalLimitations = slices.Clone(u.PhysicalLimitations)
	}
	if u.DietaryPreferences != nil {
		p.DietaryPreferences = *u.DietaryPreferences
	}
	if u.AvailableTime != nil {
		p.AvailableTime = *u.AvailableTime
	}
}

func validateProfile(p *model.UserProfile) error {
	if strings.TrimSpace(p.Name) == "" {
		return validationError("profile name is required")
	}
	if p.Age <= 0 {
		return validationError("age must be positive")
	}
	if p.Weight <= 0 {
		return validationError("weight must be positive")
	}
	if p.Height <= 0 {
		return validationError("height must be positive")
	}
	if p.Gender != "" && !slices.Contains([]model.Gender{model.GenderMale, model.GenderFemale}, p.Gender) {
		return validationError("invalid gender %q", p.Gender)
	}
	if p.Goal != "" && !slices.Contains([]model.Goal{model.GoalLose, model.GoalGain, model.GoalMaintain}, p.Goal) {
		return validationError("invalid goal %q", p.Goal)
	}
	if p.ActivityLevel != "" && !slices.Contains([]model.ActivityLevel{model.ActivityLow, model.ActivityMedium, model.ActivityHigh}, p.ActivityLevel) {
		return validationError("invalid activity level %q", p.ActivityLevel)
	}
	if !slices.Contains([]model.WorkoutLocation{model.LocationHome, model.LocationGym, model.LocationCrossfit, model.LocationOutdoor, model.LocationMixed}, p.WorkoutLocation) {
		return validationError("invalid workout location %q", p.WorkoutLocation)
	}
	if !slices.Contains([]model.BodyTypeGoal{model.BodyTypeAthletic, model.BodyTypeLean, model.BodyTypeMuscular, model.BodyTypeToned, model.BodyTypeFlexible}, p.BodyTypeGoal) {
		return validationError("invalid body type goal %q", p.BodyTypeGoal)
	}
	if !slices.Contains([]model.ExperienceLevel{model.ExperienceBeginner, model.ExperienceIntermediate, model.ExperienceAdvanced}, p.ExperienceLevel) {
		return validationError("invalid experience level %q", p.ExperienceLevel)
	}
	if !slices.Contains([]model.DietaryPreference{model.DietNone, model.DietVegetarian, model.DietVegan, model.DietGlutenFree, model.DietLactoseFree, model.DietKeto, model.DietPaleo}, p.DietaryPreferences) {
		return validationError("invalid dietary preference %q", p.DietaryPreferences)
	}
	if !slices.Contains([]model.AvailableTime{model.Time15Min, model.Time30Min, model.Time45Min, model.Time60Min, model.Time90Min, model.TimeFlexible}, p.AvailableTime) {
		return validationError("invalid available time %q", p.AvailableTime)
	}
	return nil
}

func validateWorkout(w model.Workout) error {
	if !slices.Contains([]model.WorkoutType{model.WorkoutStrength, model.WorkoutCardio, model.WorkoutFlexibility, model.WorkoutMixed}, w.Type) {
		return validationError("invalid workout type %q", w.Type)
	}
	if w.Duration < 0 {
		return validationError("duration must not be negative")
	}
	for i, ex := range w.Exercises {
		if strings.TrimSpace(ex.Name) == "" {
			return validationError("exercise %d: name is required", i+1)
		}
		if ex.Sets < 0 || ex.Reps < 0 {
			return validationError("exercise %d: sets and reps must not be negative", i+1)
		}
	}
	return nil
}

func validateMeal(m model.Meal) error {
	if !slices.Contains([]model.MealType{model.MealBreakfast, model.MealLunch, model.MealDinner, model.MealSnack}, m.Type) {
		return validationError("invalid meal type %q", m.Type)
	}
	for i, f := range m.Foods {
		if strings.TrimSpace(f.Name) == "" {
			return validationError("food %d: name is required", i+1)
		}
		if f.Quantity < 0 || f.Calories < 0 || f.Protein < 0 || f.Carbs < 0 || f.Fat < 0 {
			return validationError("food %d: quantities and macros must not be negative", i+1)
		}
	}
	return nil
}

func validateSnapshot(p model.ProgressSnapshot) error {
	m := p.Measurements
	if p.Weight < 0 || m.Chest < 0 || m.Waist < 0 || m.Hips < 0 || m.Arms < 0 || m.Thighs < 0 {
		return validationError("weight and measurements must not be negative")
	}
	return nil
}
