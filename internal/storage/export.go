// ABOUTME: Export and import functionality for fitness data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/fitness/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is the current export document version.
const ExportVersion = "1.0"

// ExportData represents the full export format for fitness data.
type ExportData struct {
	Version        string                `json:"version" yaml:"version"`
	ExportedAt     time.Time             `json:"exported_at" yaml:"exported_at"`
	Tool           string                `json:"tool" yaml:"tool"`
	Activities     []models.Activity     `json:"activities" yaml:"activities"`
	Goals          []models.Goal         `json:"goals" yaml:"goals"`
	UserStats      models.UserStats      `json:"user_stats" yaml:"user_stats"`
	WeeklyActivity models.WeeklyActivity `json:"weekly_activity" yaml:"weekly_activity"`
}

// Export wraps a state snapshot in an export document.
func Export(state *models.State, now time.Time) *ExportData {
	s := state.Clone()
	return &ExportData{
		Version:        ExportVersion,
		ExportedAt:     now,
		Tool:           "fitness",
		Activities:     s.Activities,
		Goals:          s.Goals,
		UserStats:      s.Stats,
		WeeklyActivity: s.Weekly,
	}
}

// State returns the tracker state held by the document.
func (e *ExportData) State() *models.State {
	s := &models.State{
		Activities: e.Activities,
		Goals:      e.Goals,
		Stats:      e.UserStats,
		Weekly:     e.WeeklyActivity,
	}
	if s.Activities == nil {
		s.Activities = []models.Activity{}
	}
	if s.Goals == nil {
		s.Goals = []models.Goal{}
	}
	return s.Clone()
}

// ExportJSON renders the document as indented JSON.
func ExportJSON(state *models.State, now time.Time) ([]byte, error) {
	return json.MarshalIndent(Export(state, now), "", "  ")
}

// ExportYAML renders a human oriented YAML view with activities grouped
// by type.
func ExportYAML(state *models.State, now time.Time) ([]byte, error) {
	data := Export(state, now)

	yamlData := struct {
		Version    string                    `yaml:"version"`
		ExportedAt string                    `yaml:"exported_at"`
		Tool       string                    `yaml:"tool"`
		Stats      yamlStats                 `yaml:"user_stats"`
		Weekly     map[string]int            `yaml:"weekly_activity"`
		Activities map[string][]yamlActivity `yaml:"activities"`
		Goals      []yamlGoal                `yaml:"goals"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Stats: yamlStats{
			Weight:   data.UserStats.WeightKg,
			Height:   data.UserStats.HeightCm,
			BMI:      data.UserStats.BMI,
			Category: models.BMICategory(data.UserStats.BMI),
		},
		Weekly:     make(map[string]int, 7),
		Activities: make(map[string][]yamlActivity),
		Goals:      make([]yamlGoal, 0, len(data.Goals)),
	}

	for day, cal := range data.WeeklyActivity {
		yamlData.Weekly[time.Weekday(day).String()] = cal
	}

	// Group activities by type
	for _, a := range data.Activities {
		ya := yamlActivity{
			ID:       shortID(a.ID),
			Date:     a.Date.Format(time.RFC3339),
			Duration: models.FormatDuration(a.DurationMinutes),
			Calories: a.Calories,
		}
		if a.DistanceKm != nil {
			ya.DistanceKm = *a.DistanceKm
		}
		if a.Notes != nil {
			ya.Notes = *a.Notes
		}
		yamlData.Activities[string(a.Kind)] = append(yamlData.Activities[string(a.Kind)], ya)
	}

	for _, g := range data.Goals {
		yg := yamlGoal{
			ID:        shortID(g.ID),
			Type:      string(g.Kind),
			Progress:  fmt.Sprintf("%.0f/%.0f %s", g.Current, g.Target, g.Unit),
			Completed: g.Completed,
		}
		if g.Deadline != nil {
			yg.Deadline = g.Deadline.Format("2006-01-02")
		}
		yamlData.Goals = append(yamlData.Goals, yg)
	}

	return yaml.Marshal(yamlData)
}

type yamlStats struct {
	Weight   float64 `yaml:"weight_kg"`
	Height   float64 `yaml:"height_cm"`
	BMI      float64 `yaml:"bmi"`
	Category string  `yaml:"category"`
}

type yamlActivity struct {
	ID         string  `yaml:"id"`
	Date       string  `yaml:"date"`
	Duration   string  `yaml:"duration"`
	DistanceKm float64 `yaml:"distance_km,omitempty"`
	Calories   int     `yaml:"calories"`
	Notes      string  `yaml:"notes,omitempty"`
}

type yamlGoal struct {
	ID        string `yaml:"id"`
	Type      string `yaml:"type"`
	Progress  string `yaml:"progress"`
	Deadline  string `yaml:"deadline,omitempty"`
	Completed bool   `yaml:"completed"`
}

// ExportMarkdown renders activities and goals as Markdown tables.
func ExportMarkdown(state *models.State, now time.Time) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Fitness Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	s := state.Stats
	sb.WriteString("## Stats\n\n")
	sb.WriteString(fmt.Sprintf("- Weight: %.1f kg\n", s.WeightKg))
	sb.WriteString(fmt.Sprintf("- Height: %.1f cm\n", s.HeightCm))
	sb.WriteString(fmt.Sprintf("- BMI: %.1f (%s)\n\n", s.BMI, models.BMICategory(s.BMI)))

	if len(state.Activities) > 0 {
		sb.WriteString("## Activities\n\n")
		sb.WriteString("| Date | Type | Duration | Distance | Calories | Notes |\n")
		sb.WriteString("|------|------|----------|----------|----------|-------|\n")
		for _, a := range state.Activities {
			distance := ""
			if a.DistanceKm != nil {
				distance = fmt.Sprintf("%.1f km", *a.DistanceKm)
			}
			notes := ""
			if a.Notes != nil {
				notes = *a.Notes
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %d | %s |\n",
				a.Date.Format("2006-01-02 15:04"),
				a.Kind.Label(), models.FormatDuration(a.DurationMinutes),
				distance, a.Calories, notes))
		}
		sb.WriteString("\n")
	}

	if len(state.Goals) > 0 {
		sb.WriteString("## Goals\n\n")
		sb.WriteString("| Type | Progress | Deadline | Status |\n")
		sb.WriteString("|------|----------|----------|--------|\n")
		for _, g := range state.Goals {
			status := fmt.Sprintf("%.0f%%", g.Progress())
			if g.Completed {
				status = "Completed"
			}
			sb.WriteString(fmt.Sprintf("| %s | %.1f / %.1f %s | %s | %s |\n",
				g.Kind, g.Current, g.Target, g.Unit, g.DeadlineStatus(now), status))
		}
	}

	return sb.String()
}

// ImportJSON parses an export document and validates its records.
func ImportJSON(data []byte) (*models.State, error) {
	var exportData ExportData
	if err := json.Unmarshal(data, &exportData); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	for _, a := range exportData.Activities {
		if !models.IsValidActivityKind(string(a.Kind)) {
			return nil, fmt.Errorf("%w: activity %s has unknown type %q", models.ErrInvalidInput, a.ID, a.Kind)
		}
	}
	for _, g := range exportData.Goals {
		if !models.IsValidGoalKind(string(g.Kind)) {
			return nil, fmt.Errorf("%w: goal %s has unknown type %q", models.ErrInvalidInput, g.ID, g.Kind)
		}
	}
	return exportData.State(), nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
