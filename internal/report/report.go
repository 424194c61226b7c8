// ABOUTME: Renders dashboard, weekly chart, goals and calendar views for the terminal.
// ABOUTME: Pure functions from tracker data to strings; callers print them.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/harperreed/fitness/internal/models"
	"github.com/harperreed/fitness/internal/tracker"
)

const (
	barWidth   = 24
	chartWidth = 30
)

// ProgressBar draws a fixed width bar for a percentage in [0, 100].
func ProgressBar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(pct / 100 * float64(width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return barStyle.Render(strings.Repeat("█", filled)) + labelStyle.Render(strings.Repeat("░", width-filled))
}

// WeeklyChart draws one horizontal bar per weekday, Sunday first, scaled
// to the busiest day. The current weekday is highlighted.
func WeeklyChart(w models.WeeklyActivity, current time.Weekday) string {
	peak := 0
	for _, c := range w {
		if c > peak {
			peak = c
		}
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Weekly Activity"))
	sb.WriteString("\n")
	for day := time.Sunday; day <= time.Saturday; day++ {
		name := day.String()[:3]
		if day == current {
			name = todayStyle.Render(name)
		} else {
			name = labelStyle.Render(name)
		}
		width := 0
		if peak > 0 {
			width = w[day] * chartWidth / peak
		}
		sb.WriteString(fmt.Sprintf("%s %s %d kcal\n", name, barStyle.Render(strings.Repeat("█", width)), w[day]))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Goals lists goals with their progress bars and deadline status.
func Goals(goals []models.Goal, now time.Time) string {
	if len(goals) == 0 {
		return warningStyle.Render("No goals yet. Add one with: fitness goal add <type> <target>")
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Goals"))
	sb.WriteString("\n")
	for _, g := range goals {
		status := fmt.Sprintf("%3.0f%%", g.Progress())
		if g.Completed {
			status = doneStyle.Render("done")
		}
		sb.WriteString(fmt.Sprintf("%s %-9s %s %s  %.1f/%.1f %s  %s\n",
			labelStyle.Render(shortID(g.ID)),
			g.Kind,
			ProgressBar(g.Progress(), barWidth),
			status,
			g.Current, g.Target, g.Unit,
			labelStyle.Render(g.DeadlineStatus(now))))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Activities renders one line per activity.
func Activities(activities []models.Activity) string {
	if len(activities) == 0 {
		return warningStyle.Render("No activities logged.")
	}
	var sb strings.Builder
	for _, a := range activities {
		sb.WriteString(ActivityLine(a))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// ActivityLine renders a single activity.
func ActivityLine(a models.Activity) string {
	line := fmt.Sprintf("%s %s  %-14s %8s",
		labelStyle.Render(shortID(a.ID)),
		a.Date.Format("2006-01-02 15:04"),
		a.Kind.Label(),
		models.FormatDuration(a.DurationMinutes))
	if a.DistanceKm != nil {
		line += fmt.Sprintf("  %.1f km", *a.DistanceKm)
	}
	line += "  " + valueStyle.Render(fmt.Sprintf("%d kcal", a.Calories))
	if a.Notes != nil {
		line += "  " + labelStyle.Render(*a.Notes)
	}
	return line
}

// Stats renders body measurements with the BMI class and healthy range.
func Stats(s models.UserStats) string {
	rows := []string{
		titleStyle.Render("Body Stats"),
		fmt.Sprintf("%s %s", labelStyle.Render("Weight:"), valueStyle.Render(fmt.Sprintf("%.1f kg", s.WeightKg))),
		fmt.Sprintf("%s %s", labelStyle.Render("Height:"), valueStyle.Render(fmt.Sprintf("%.1f cm", s.HeightCm))),
		fmt.Sprintf("%s %s (%s)", labelStyle.Render("BMI:"), valueStyle.Render(fmt.Sprintf("%.1f", s.BMI)), models.BMICategory(s.BMI)),
		fmt.Sprintf("%s ~%d kg", labelStyle.Render("Healthy weight:"), models.HealthyWeight(s.HeightCm)),
	}
	return strings.Join(rows, "\n")
}

// Dashboard lays out today's calories, totals, stats, the weekly chart,
// goals and recent activities.
func Dashboard(d tracker.Dashboard) string {
	today := strings.Join([]string{
		titleStyle.Render("Today"),
		valueStyle.Render(fmt.Sprintf("%d kcal", d.Today)),
		labelStyle.Render(d.GeneratedAt.Format("Mon Jan 2")),
	}, "\n")

	totals := strings.Join([]string{
		titleStyle.Render("All Time"),
		fmt.Sprintf("%s %d", labelStyle.Render("Workouts:"), d.Summary.Activities),
		fmt.Sprintf("%s %s", labelStyle.Render("Time:"), models.FormatDuration(d.Summary.DurationMinutes)),
		fmt.Sprintf("%s %.1f km", labelStyle.Render("Distance:"), d.Summary.DistanceKm),
		fmt.Sprintf("%s %d kcal", labelStyle.Render("Burned:"), d.Summary.Calories),
	}, "\n")

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(today),
		panelStyle.Render(totals),
		panelStyle.Render(Stats(d.Stats)),
	)

	recent := titleStyle.Render("Recent Activities") + "\n" + Activities(d.Recent)

	return lipgloss.JoinVertical(lipgloss.Left,
		top,
		panelStyle.Render(WeeklyChart(d.Weekly, d.CurrentWeekday)),
		panelStyle.Render(Goals(d.Goals, d.GeneratedAt)),
		panelStyle.Render(recent),
	)
}

// Calendar draws a month grid, Sunday first. Days with activities show
// their calorie total marker; today is highlighted.
func Calendar(year int, month time.Month, days map[int][]models.Activity, today time.Time) string {
	first := time.Date(year, month, 1, 0, 0, 0, 0, today.Location())
	daysIn := first.AddDate(0, 1, -1).Day()

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s %d", month, year)))
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render(" Su  Mo  Tu  We  Th  Fr  Sa"))
	sb.WriteString("\n")

	col := int(first.Weekday())
	sb.WriteString(strings.Repeat("    ", col))
	for day := 1; day <= daysIn; day++ {
		cell := fmt.Sprintf("%3d", day)
		marker := " "
		if len(days[day]) > 0 {
			marker = "*"
		}
		switch {
		case today.Year() == year && today.Month() == month && today.Day() == day:
			cell = todayStyle.Render(cell)
		case len(days[day]) > 0:
			cell = doneStyle.Render(cell)
		}
		sb.WriteString(cell + marker)
		col++
		if col == 7 && day != daysIn {
			sb.WriteString("\n")
			col = 0
		}
	}
	sb.WriteString("\n")

	total := 0
	count := 0
	for _, acts := range days {
		for _, a := range acts {
			total += a.Calories
			count++
		}
	}
	sb.WriteString(labelStyle.Render(fmt.Sprintf("%d activities, %d kcal this month (* = active day)", count, total)))
	return sb.String()
}

// Day lists the activities for a single day with a calorie total.
func Day(day time.Time, activities []models.Activity) string {
	total := 0
	for _, a := range activities {
		total += a.Calories
	}
	header := titleStyle.Render(day.Format("Monday, January 2, 2006"))
	if len(activities) == 0 {
		return header + "\n" + warningStyle.Render("No activities on this day.")
	}
	return header + "\n" + Activities(activities) + "\n" +
		valueStyle.Render(fmt.Sprintf("Total: %d kcal", total))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
