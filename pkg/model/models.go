package model

import "time"

// Gender represents the biological sex used by the routine tables
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Goal represents the user's body-weight goal
type Goal string

const (
	GoalLose     Goal = "lose"
	GoalGain     Goal = "gain"
	GoalMaintain Goal = "maintain"
)

// ActivityLevel represents how active the user is outside workouts
type ActivityLevel string

const (
	ActivityLow    ActivityLevel = "low"
	ActivityMedium ActivityLevel = "medium"
	ActivityHigh   ActivityLevel = "high"
)

// WorkoutLocation represents where the user trains
type WorkoutLocation string

const (
	LocationHome     WorkoutLocation = "home"
	LocationGym      WorkoutLocation = "gym"
	LocationCrossfit WorkoutLocation = "crossfit"
	LocationOutdoor  WorkoutLocation = "outdoor"
	LocationMixed    WorkoutLocation = "mixed"
)

// BodyTypeGoal represents the physique the user is aiming for
type BodyTypeGoal string

const (
	BodyTypeAthletic BodyTypeGoal = "athletic"
	BodyTypeLean     BodyTypeGoal = "lean"
	BodyTypeMuscular BodyTypeGoal = "muscular"
	BodyTypeToned    BodyTypeGoal = "toned"
	BodyTypeFlexible BodyTypeGoal = "flexible"
)

// ExperienceLevel represents training experience
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

// DietaryPreference represents the user's diet restriction
type DietaryPreference string

const (
	DietNone        DietaryPreference = "none"
	DietVegetarian  DietaryPreference = "vegetarian"
	DietVegan       DietaryPreference = "vegan"
	DietGlutenFree  DietaryPreference = "glutenFree"
	DietLactoseFree DietaryPreference = "lactoseFree"
	DietKeto        DietaryPreference = "keto"
	DietPaleo       DietaryPreference = "paleo"
)

// AvailableTime represents how long the user can train per session
type AvailableTime string

const (
	Time15Min    AvailableTime = "15min"
	Time30Min    AvailableTime = "30min"
	Time45Min    AvailableTime = "45min"
	Time60Min    AvailableTime = "60min"
	Time90Min    AvailableTime = "90min"
	TimeFlexible AvailableTime = "flexible"
)

// UserProfile is the single profile of the installation
type UserProfile struct {
	ID                  string            `json:"id"`
	Name                string            `json:"name"`
	Age                 int               `json:"age"`
	Weight              float64           `json:"weight"`
	Height              float64           `json:"height"`
	Gender              Gender            `json:"gender"`
	Goal                Goal              `json:"goal"`
	ActivityLevel       ActivityLevel     `json:"activityLevel"`
	WorkoutLocation     WorkoutLocation   `json:"workoutLocation"`
	BodyTypeGoal        BodyTypeGoal      `json:"bodyTypeGoal"`
	ExperienceLevel     ExperienceLevel   `json:"experienceLevel"`
	PhysicalLimitations []string          `json:"physicalLimitations"`
	DietaryPreferences  DietaryPreference `json:"dietaryPreferences"`
	AvailableTime       AvailableTime     `json:"availableTime"`
	CreatedAt           time.Time         `json:"createdAt"`
}

// ProfileUpdate carries a partial profile update; nil fields are left untouched
type ProfileUpdate struct {
	Name                *string            `json:"name,omitempty"`
	Age                 *int               `json:"age,omitempty"`
	Weight              *float64           `json:"weight,omitempty"`
	Height              *float64           `json:"height,omitempty"`
	Gender              *Gender            `json:"gender,omitempty"`
	Goal                *Goal              `json:"goal,omitempty"`
	ActivityLevel       *ActivityLevel     `json:"activityLevel,omitempty"`
	WorkoutLocation     *WorkoutLocation   `json:"workoutLocation,omitempty"`
	BodyTypeGoal        *BodyTypeGoal      `json:"bodyTypeGoal,omitempty"`
	ExperienceLevel     *ExperienceLevel   `json:"experienceLevel,omitempty"`
	PhysicalLimitations []string           `json:"physicalLimitations,omitempty"`
	DietaryPreferences  *DietaryPreference `json:"dietaryPreferences,omitempty"`
	AvailableTime       *AvailableTime     `json:"availableTime,omitempty"`
}

// WorkoutType classifies a logged workout
type WorkoutType string

const (
	WorkoutStrength    WorkoutType = "strength"
	WorkoutCardio      WorkoutType = "cardio"
	WorkoutFlexibility WorkoutType = "flexibility"
	WorkoutMixed       WorkoutType = "mixed"
)

// Exercise is a single entry of a workout
type Exercise struct {
	Name      string   `json:"name"`
	Sets      int      `json:"sets"`
	Reps      int      `json:"reps"`
	Weight    *float64 `json:"weight,omitempty"`
	Duration  *int     `json:"duration,omitempty"`
	Rest      *int     `json:"rest,omitempty"`
	Type      *string  `json:"type,omitempty"`
	Intensity *string  `json:"intensity,omitempty"`
	Notes     *string  `json:"notes,omitempty"`
}

// Workout is a logged training session
type Workout struct {
	ID        string      `json:"id"`
	Date      time.Time   `json:"date"`
	Type      WorkoutType `json:"type"`
	Duration  int         `json:"duration"`
	Exercises []Exercise  `json:"exercises"`
	Notes     *string     `json:"notes,omitempty"`
}

// MealType classifies a logged meal
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// Food is a single entry of a meal
type Food struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Meal is a logged meal
type Meal struct {
	ID    string    `json:"id"`
	Date  time.Time `json:"date"`
	Type  MealType  `json:"type"`
	Foods []Food    `json:"foods"`
	Notes *string   `json:"notes,omitempty"`
}

// Measurements holds body circumferences in centimetres
type Measurements struct {
	Chest  float64 `json:"chest"`
	Waist  float64 `json:"waist"`
	Hips   float64 `json:"hips"`
	Arms   float64 `json:"arms"`
	Thighs float64 `json:"thighs"`
}

// ProgressSnapshot is a dated body measurement
type ProgressSnapshot struct {
	ID           string       `json:"id"`
	Date         time.Time    `json:"date"`
	Weight       float64      `json:"weight"`
	Measurements Measurements `json:"measurements"`
}

// ReminderType classifies a reminder
type ReminderType string

const (
	ReminderExercise  ReminderType = "exercise"
	ReminderMeal      ReminderType = "meal"
	ReminderHydration ReminderType = "hydration"
	ReminderProgress  ReminderType = "progress"
	ReminderGoal      ReminderType = "goal"
)

// ReminderFrequency is informational; days drive scheduling
type ReminderFrequency string

const (
	FrequencyDaily  ReminderFrequency = "daily"
	FrequencyWeekly ReminderFrequency = "weekly"
	FrequencyCustom ReminderFrequency = "custom"
)

// Priority of a reminder
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Reminder is a recurring local notification
type Reminder struct {
	ID            string            `json:"id"`
	Type          ReminderType      `json:"type"`
	Title         string            `json:"title"`
	Message       string            `json:"message"`
	Time          string            `json:"time"`
	Days          []int             `json:"days"`
	Enabled       bool              `json:"enabled"`
	Frequency     ReminderFrequency `json:"frequency"`
	Priority      Priority          `json:"priority"`
	LastTriggered *time.Time        `json:"lastTriggered,omitempty"`
	NextTrigger   *time.Time        `json:"nextTrigger,omitempty"`
	Category      string            `json:"category"`
	Icon          string            `json:"icon"`
	Color         string            `json:"color"`
}

// ReminderUpdate carries a partial reminder update; nil fields are left untouched
type ReminderUpdate struct {
	Type      *ReminderType      `json:"type,omitempty"`
	Title     *string            `json:"title,omitempty"`
	Message   *string            `json:"message,omitempty"`
	Time      *string            `json:"time,omitempty"`
	Days      []int              `json:"days,omitempty"`
	Enabled   *bool              `json:"enabled,omitempty"`
	Frequency *ReminderFrequency `json:"frequency,omitempty"`
	Priority  *Priority          `json:"priority,omitempty"`
	Category  *string            `json:"category,omitempty"`
	Icon      *string            `json:"icon,omitempty"`
	Color     *string            `json:"color,omitempty"`
}

// QuietHours suppresses scheduling between start and end
type QuietHours struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// NotificationSettings are the global reminder settings
type NotificationSettings struct {
	Enabled            bool       `json:"enabled"`
	Sound              bool       `json:"sound"`
	Vibration          bool       `json:"vibration"`
	QuietHours         QuietHours `json:"quietHours"`
	ReminderAdvance    int        `json:"reminderAdvance"`
	MaxRemindersPerDay int        `json:"maxRemindersPerDay"`
	SnoozeEnabled      bool       `json:"snoozeEnabled"`
	SnoozeDuration     int        `json:"snoozeDuration"`
}

// SettingsUpdate carries a partial settings update
type SettingsUpdate struct {
	Enabled            *bool       `json:"enabled,omitempty"`
	Sound              *bool       `json:"sound,omitempty"`
	Vibration          *bool       `json:"vibration,omitempty"`
	QuietHours         *QuietHours `json:"quietHours,omitempty"`
	ReminderAdvance    *int        `json:"reminderAdvance,omitempty"`
	MaxRemindersPerDay *int        `json:"maxRemindersPerDay,omitempty"`
	SnoozeEnabled      *bool       `json:"snoozeEnabled,omitempty"`
	SnoozeDuration     *int        `json:"snoozeDuration,omitempty"`
}

// DefaultNotificationSettings returns the settings used when none are stored
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		Enabled:   true,
		Sound:     true,
		Vibration: true,
		QuietHours: QuietHours{
			Enabled: false,
			Start:   "22:00",
			End:     "08:00",
		},
		ReminderAdvance:    15,
		MaxRemindersPerDay: 10,
		SnoozeEnabled:      true,
		SnoozeDuration:     15,
	}
}

// Achievement is a badge with its evaluated progress
type Achievement struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Unlocked    bool       `json:"unlocked"`
	Progress    int        `json:"progress"`
	MaxProgress int        `json:"maxProgress"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty"`
}

// WorkoutSuggestion is the engine's workout plan for a given day
type WorkoutSuggestion struct {
	Type            string   `json:"type"`
	DurationMinutes int      `json:"duration"`
	Focus           string   `json:"focus"`
	Exercises       []string `json:"exercises"`
	Weekday         string   `json:"day"`
}

// DietSuggestion is the engine's daily diet plan
type DietSuggestion struct {
	DailyCalories int      `json:"calories"`
	Focus         string   `json:"focus"`
	Tips          []string `json:"tips"`
}

// SuggestedReminder is a reminder draft produced from the profile
type SuggestedReminder struct {
	Type     ReminderType `json:"type"`
	Title    string       `json:"title"`
	Message  string       `json:"message"`
	Time     string       `json:"time"`
	Days     []int        `json:"days"`
	Priority Priority     `json:"priority"`
	Category string       `json:"category"`
	Icon     string       `json:"icon"`
	Color    string       `json:"color"`
	Reason   string       `json:"reason"`
}

// ProgressStats compares the oldest and newest progress snapshots
type ProgressStats struct {
	WeightChange        float64 `json:"weightChange"`
	WeightChangePercent float64 `json:"weightChangePercent"`
	WaistChange         float64 `json:"waistChange"`
	WaistChangePercent  float64 `json:"waistChangePercent"`
	TotalDays           int     `json:"totalDays"`
}
