// ABOUTME: UserStats model with BMI calculation and categories.
// ABOUTME: Also provides duration formatting used by list and report output.
package models

import (
	"fmt"
	"math"
)

// UserStats holds body measurements and the BMI derived from them.
type UserStats struct {
	WeightKg float64 `json:"weight" yaml:"weight"`
	HeightCm float64 `json:"height" yaml:"height"`
	BMI      float64 `json:"bmi" yaml:"bmi"`
}

// DefaultUserStats returns the stats used before the user enters their own.
func DefaultUserStats() UserStats {
	return UserStats{WeightKg: 70, HeightCm: 170, BMI: CalculateBMI(70, 170)}
}

// CalculateBMI returns weight / (height in m)^2 rounded to one decimal.
func CalculateBMI(weightKg, heightCm float64) float64 {
	if heightCm <= 0 {
		return 0
	}
	m := heightCm / 100
	return math.Round(weightKg/(m*m)*10) / 10
}

// BMICategory names the WHO weight class for a BMI value.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal weight"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obesity"
	}
}

// HealthyWeight returns the weight at BMI 22.5 for the given height.
func HealthyWeight(heightCm float64) int {
	return int(math.Round(22.5 * heightCm * heightCm / 10000))
}

// positive reports whether v is a finite number above zero. NaN fails the
// comparison on its own.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// StatsUpdate holds measurements to merge into UserStats.
type StatsUpdate struct {
	WeightKg *float64
	HeightCm *float64
}

// Validate rejects measurements that are not positive finite numbers.
func (u StatsUpdate) Validate() error {
	if u.WeightKg != nil && !positive(*u.WeightKg) {
		return fmt.Errorf("%w: weight must be positive", ErrInvalidInput)
	}
	if u.HeightCm != nil && !positive(*u.HeightCm) {
		return fmt.Errorf("%w: height must be positive", ErrInvalidInput)
	}
	return nil
}

// Apply merges the update and recomputes BMI when a measurement changed.
func (u StatsUpdate) Apply(s *UserStats) {
	if u.WeightKg != nil {
		s.WeightKg = *u.WeightKg
	}
	if u.HeightCm != nil {
		s.HeightCm = *u.HeightCm
	}
	if u.WeightKg != nil || u.HeightCm != nil {
		s.BMI = CalculateBMI(s.WeightKg, s.HeightCm)
	}
}

// FormatDuration renders minutes as "1h 5m" or "45 min".
func FormatDuration(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%d min", m)
}
