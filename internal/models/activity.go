// ABOUTME: Activity model and ActivityKind enum for logged workouts.
// ABOUTME: Holds the MET table used to estimate calories burned per kind.
package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ErrInvalidInput is returned by Validate methods when user input is rejected.
var ErrInvalidInput = errors.New("invalid input")

// ActivityKind is the closed set of workout kinds a user can log.
type ActivityKind string

const (
	ActivityRunning       ActivityKind = "running"
	ActivityWalking       ActivityKind = "walking"
	ActivityCycling       ActivityKind = "cycling"
	ActivitySwimming      ActivityKind = "swimming"
	ActivityWeightlifting ActivityKind = "weightlifting"
	ActivityYoga          ActivityKind = "yoga"
	ActivityOther         ActivityKind = "other"
)

// AllActivityKinds lists every valid activity kind in display order.
var AllActivityKinds = []ActivityKind{
	ActivityRunning, ActivityWalking, ActivityCycling, ActivitySwimming,
	ActivityWeightlifting, ActivityYoga, ActivityOther,
}

// IsValidActivityKind checks if a string is a valid activity kind.
func IsValidActivityKind(s string) bool {
	for _, k := range AllActivityKinds {
		if string(k) == s {
			return true
		}
	}
	return false
}

// MET returns the metabolic equivalent for the kind.
func (k ActivityKind) MET() float64 {
	switch k {
	case ActivityRunning:
		return 9.8 // 6 mph
	case ActivityWalking:
		return 3.5 // 4 mph
	case ActivityCycling:
		return 8.0 // 12-14 mph
	case ActivitySwimming:
		return 7.0
	case ActivityWeightlifting:
		return 3.5
	case ActivityYoga:
		return 2.5 // hatha
	case ActivityOther:
		return 4.0
	}
	panic(fmt.Sprintf("models: no MET value for activity kind %q", string(k)))
}

// Label returns a human readable name for the kind.
func (k ActivityKind) Label() string {
	if k == ActivityWeightlifting {
		return "Weight Lifting"
	}
	s := string(k)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// EstimateCalories computes calories = MET x weight (kg) x duration (hours),
// rounded to the nearest whole calorie.
func EstimateCalories(kind ActivityKind, durationMinutes int, weightKg float64) int {
	hours := float64(durationMinutes) / 60
	return int(math.Round(kind.MET() * weightKg * hours))
}

// Activity is a single logged workout. It is immutable once created.
type Activity struct {
	ID              string       `json:"id" yaml:"id"`
	Kind            ActivityKind `json:"type" yaml:"type"`
	DurationMinutes int          `json:"duration" yaml:"duration"`
	DistanceKm      *float64     `json:"distance,omitempty" yaml:"distance,omitempty"`
	Calories        int          `json:"calories" yaml:"calories"`
	Date            time.Time    `json:"date" yaml:"date"`
	Notes           *string      `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Distance returns the distance in km, or 0 when none was recorded.
func (a Activity) Distance() float64 {
	if a.DistanceKm == nil {
		return 0
	}
	return *a.DistanceKm
}

// ActivityInput is what a caller supplies to log an activity. Calories are
// computed by the caller, usually with EstimateCalories.
type ActivityInput struct {
	Kind            ActivityKind
	DurationMinutes int
	DistanceKm      *float64
	Calories        int
	Date            time.Time
	Notes           *string
}

// NewActivityInput creates an input with the required fields set.
func NewActivityInput(kind ActivityKind, durationMinutes int, date time.Time) ActivityInput {
	return ActivityInput{
		Kind:            kind,
		DurationMinutes: durationMinutes,
		Date:            date,
	}
}

// WithDistance sets the distance in kilometers.
func (in ActivityInput) WithDistance(km float64) ActivityInput {
	in.DistanceKm = &km
	return in
}

// WithNotes sets trimmed notes; blank notes are dropped.
func (in ActivityInput) WithNotes(notes string) ActivityInput {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		in.Notes = nil
		return in
	}
	in.Notes = &notes
	return in
}

// WithCalories sets an explicit calorie value.
func (in ActivityInput) WithCalories(calories int) ActivityInput {
	in.Calories = calories
	return in
}

// WithEstimatedCalories fills Calories from the MET table and body weight.
func (in ActivityInput) WithEstimatedCalories(weightKg float64) ActivityInput {
	in.Calories = EstimateCalories(in.Kind, in.DurationMinutes, weightKg)
	return in
}

// Validate rejects input the store must never see.
func (in ActivityInput) Validate() error {
	if !IsValidActivityKind(string(in.Kind)) {
		return fmt.Errorf("%w: unknown activity type %q", ErrInvalidInput, in.Kind)
	}
	if in.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be a positive number of minutes", ErrInvalidInput)
	}
	if in.DistanceKm != nil && !positive(*in.DistanceKm) {
		return fmt.Errorf("%w: distance must be positive", ErrInvalidInput)
	}
	if in.Calories < 0 {
		return fmt.Errorf("%w: calories must not be negative", ErrInvalidInput)
	}
	if in.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
