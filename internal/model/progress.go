package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressEntry is an append-only daily check-in.
type ProgressEntry struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"user_id" json:"user_id"`
	Date            time.Time          `bson:"date" json:"date"`
	Weight          float64            `bson:"weight" json:"weight"`
	EnergyLevel     float64            `bson:"energy_level" json:"energy_level"`
	Mood            float64            `bson:"mood" json:"mood"`
	SleepQuality    float64            `bson:"sleep_quality" json:"sleep_quality"`
	WaterIntake     float64            `bson:"water_intake" json:"water_intake"`
	ExerciseMinutes float64            `bson:"exercise_minutes" json:"exercise_minutes"`
	Notes           string             `bson:"notes" json:"notes"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
}

// ProgressRequest uses pointers so that missing required metrics can be told
// apart from zero values.
type ProgressRequest struct {
	Date            *string  `json:"date"`
	Weight          *float64 `json:"weight"`
	EnergyLevel     *float64 `json:"energy_level"`
	Mood            *float64 `json:"mood"`
	SleepQuality    *float64 `json:"sleep_quality"`
	WaterIntake     *float64 `json:"water_intake"`
	ExerciseMinutes *float64 `json:"exercise_minutes"`
	Notes           *string  `json:"notes"`
}

// ProgressQuery filters the progress log.
type ProgressQuery struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

// ProgressAnalytics holds window averages. The zero value marshals to {}.
type ProgressAnalytics struct {
	AvgWeight    *float64 `bson:"avg_weight,omitempty" json:"avg_weight,omitempty"`
	AvgEnergy    *float64 `bson:"avg_energy,omitempty" json:"avg_energy,omitempty"`
	AvgMood      *float64 `bson:"avg_mood,omitempty" json:"avg_mood,omitempty"`
	AvgSleep     *float64 `bson:"avg_sleep,omitempty" json:"avg_sleep,omitempty"`
	AvgWater     *float64 `bson:"avg_water,omitempty" json:"avg_water,omitempty"`
	AvgExercise  *float64 `bson:"avg_exercise,omitempty" json:"avg_exercise,omitempty"`
	TotalEntries int      `bson:"total_entries,omitempty" json:"total_entries,omitempty"`
}

// WeeklyTrend averages the subjective scores of one ISO week.
type WeeklyTrend struct {
	Year      int      `bson:"year" json:"year"`
	Week      int      `bson:"week" json:"week"`
	AvgEnergy *float64 `bson:"avg_energy,omitempty" json:"avg_energy,omitempty"`
	AvgMood   *float64 `bson:"avg_mood,omitempty" json:"avg_mood,omitempty"`
	AvgSleep  *float64 `bson:"avg_sleep,omitempty" json:"avg_sleep,omitempty"`
}

// AnalyticsResult is the payload of the analytics endpoint.
type AnalyticsResult struct {
	Analytics  ProgressAnalytics `json:"analytics"`
	PeriodDays int               `json:"period_days"`
	Trends     []WeeklyTrend     `json:"trends"`
}
