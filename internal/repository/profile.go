package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vcscsvcscs/fitflow/apps/backend/internal/storage"
	"github.com/vcscsvcscs/fitflow/apps/backend/pkg/model"
)

// ProfileRepository persists the profile and the workout, meal and progress logs
type ProfileRepository struct {
	store  storage.Store
	logger *zap.Logger
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(store storage.Store, logger *zap.Logger) *ProfileRepository {
	return &ProfileRepository{
		store:  store,
		logger: logger,
	}
}

// ApplyProfileDefaults fills fields that older saves did not carry
func ApplyProfileDefaults(p *model.UserProfile) {
	if p.WorkoutLocation == "" {
		p.WorkoutLocation = model.LocationHome
	}
	if p.BodyTypeGoal == "" {
		p.BodyTypeGoal = model.BodyTypeToned
	}
	if p.ExperienceLevel == "" {
		p.ExperienceLevel = model.ExperienceBeginner
	}
	if p.PhysicalLimitations == nil {
		p.PhysicalLimitations = []string{}
	}
	if p.DietaryPreferences == "" {
		p.DietaryPreferences = model.DietNone
	}
	if p.AvailableTime == "" {
		p.AvailableTime = model.Time45Min
	}
}

// LoadProfile returns the stored profile, or nil when there is none
func (r *ProfileRepository) LoadProfile(ctx context.Context) *model.UserProfile {
	var profile model.UserProfile
	if !loadJSON(ctx, r.store, r.logger, storage.KeyProfile, &profile) {
		return nil
	}
	ApplyProfileDefaults(&profile)
	return &profile
}

// SaveProfile stores the profile
func (r *ProfileRepository) SaveProfile(ctx context.Context, profile *model.UserProfile) error {
	if err := saveJSON(ctx, r.store, storage.KeyProfile, profile); err != nil {
		r.logger.Error("failed to save profile", zap.Error(err), zap.String("profile_id", profile.ID))
		return err
	}
	return nil
}

// LoadWorkouts returns the workout log, newest first
func (r *ProfileRepository) LoadWorkouts(ctx context.Context) []model.Workout {
	workouts := []model.Workout{}
	if !loadJSON(ctx, r.store, r.logger, storage.KeyWorkouts, &workouts) || workouts == nil {
		return []model.Workout{}
	}
	return workouts
}

// SaveWorkouts replaces the workout log
func (r *ProfileRepository) SaveWorkouts(ctx context.Context, workouts []model.Workout) error {
	return saveJSON(ctx, r.store, storage.KeyWorkouts, workouts)
}

// LoadMeals returns the meal log, newest first
func (r *ProfileRepository) LoadMeals(ctx context.Context) []model.Meal {
	meals := []model.Meal{}
	if !loadJSON(ctx, r.store, r.logger, storage.KeyMeals, &meals) || meals == nil {
		return []model.Meal{}
	}
	return meals
}

// SaveMeals replaces the meal log
func (r *ProfileRepository) SaveMeals(ctx context.Context, meals []model.Meal) error {
	return saveJSON(ctx, r.store, storage.KeyMeals, meals)
}

// LoadProgress returns the progress log, newest first
func (r *ProfileRepository) LoadProgress(ctx context.Context) []model.ProgressSnapshot {
	progress := []model.ProgressSnapshot{}
	if !loadJSON(ctx, r.store, r.logger, storage.KeyProgress, &progress) || progress == nil {
		return []model.ProgressSnapshot{}
	}
	return progress
}

// SaveProgress replaces the progress log
func (r *ProfileRepository) SaveProgress(ctx context.Context, progress []model.ProgressSnapshot) error {
	return saveJSON(ctx, r.store, storage.KeyProgress, progress)
}

// ClearAll removes the profile and every log in one step
func (r *ProfileRepository) ClearAll(ctx context.Context) error {
	err := r.store.RemoveKeys(ctx,
		storage.KeyProfile,
		storage.KeyWorkouts,
		storage.KeyMeals,
		storage.KeyProgress,
	)
	if err != nil {
		r.logger.Error("failed to clear profile data", zap.Error(err))
		return fmt.Errorf("failed to clear profile data: %w", err)
	}
	return nil
}
