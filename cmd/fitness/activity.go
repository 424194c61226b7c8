// ABOUTME: CLI commands for logging, listing and deleting activities.
// ABOUTME: Calories are estimated from stored body weight unless given.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fitness/internal/models"
	"github.com/spf13/cobra"
)

var (
	activityDuration int
	activityDistance float64
	activityCalories int
	activityDate     string
	activityNotes    string

	activityListKind  string
	activityListLimit int
)

var activityCmd = &cobra.Command{
	Use:     "activity",
	Aliases: []string{"act", "a"},
	Short:   "Log and review workouts",
	Long: `Log and review workouts.

Every activity updates the goals it counts toward:
  calories goals   + calories burned
  distance goals   + distance, when one was recorded
  workouts goals   + 1 session

Deleting an activity rolls those contributions back.`,
}

var activityAddCmd = &cobra.Command{
	Use:   "add <type>",
	Short: "Log an activity",
	Long: `Log an activity.

TYPES:

  running, walking, cycling, swimming, weightlifting, yoga, other

Calories are estimated with MET x weight (kg) x hours using the weight
from 'fitness stats'. Use --calories to record your own number.

EXAMPLES:

  fitness activity add running --duration 30 --distance 5
  fitness activity add yoga -d 45 --notes "Evening stretch"
  fitness activity add cycling -d 60 --calories 550 --date "2025-06-10 18:00"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := models.ActivityKind(args[0])
		if !models.IsValidActivityKind(args[0]) {
			return fmt.Errorf("unknown activity type: %s\nValid types: %s", args[0], activityKindNames())
		}

		date := timeNow()
		if activityDate != "" {
			t, err := parseTime(activityDate)
			if err != nil {
				return fmt.Errorf("invalid date: %s", activityDate)
			}
			date = t
		}

		in := models.NewActivityInput(kind, activityDuration, date).WithNotes(activityNotes)
		if cmd.Flags().Changed("distance") {
			in = in.WithDistance(activityDistance)
		}
		if cmd.Flags().Changed("calories") {
			in = in.WithCalories(activityCalories)
		} else {
			in = in.WithEstimatedCalories(trk.UserStats().WeightKg)
		}
		if err := in.Validate(); err != nil {
			return err
		}

		a := trk.AddActivity(in)

		color.Green("✓ Logged %s", a.Kind.Label())
		fmt.Printf("  %s %s, %d kcal\n",
			color.New(color.Faint).Sprint(shortID(a.ID)),
			models.FormatDuration(a.DurationMinutes),
			a.Calories)
		return nil
	},
}

var activityListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List activities",
	Long: `List activities, most recent first.

OUTPUT FORMAT:

  ID  DATE  TYPE  DURATION  DISTANCE  CALORIES  (NOTES)

  The ID is an 8-character prefix you can use with 'activity delete'.

EXAMPLES:

  fitness activity list                 # Last 20 activities
  fitness activity list --kind running  # Only runs
  fitness activity list -n 0            # Everything`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var kind *models.ActivityKind
		if activityListKind != "" {
			if !models.IsValidActivityKind(activityListKind) {
				return fmt.Errorf("unknown activity type: %s", activityListKind)
			}
			k := models.ActivityKind(activityListKind)
			kind = &k
		}

		activities := trk.ListActivities(kind, activityListLimit)
		if len(activities) == 0 {
			fmt.Println("No activities found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, a := range activities {
			distance := ""
			if a.DistanceKm != nil {
				distance = fmt.Sprintf("%.1f km", *a.DistanceKm)
			}
			notes := ""
			if a.Notes != nil {
				notes = faint.Sprintf(" (%s)", truncate(*a.Notes, 30))
			}
			fmt.Printf("%s %s %s %s %s %d kcal%s\n",
				faint.Sprint(shortID(a.ID)),
				faint.Sprint(a.Date.Format("2006-01-02 15:04")),
				padRight(string(a.Kind), 14),
				padRight(models.FormatDuration(a.DurationMinutes), 8),
				padRight(distance, 9),
				a.Calories,
				notes)
		}
		return nil
	},
}

var activityDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete an activity",
	Long: `Delete an activity by its ID or a unique ID prefix.

Goal progress and the weekly chart are rolled back. Goals that were
already completed stay completed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := trk.ResolveActivityID(args[0])
		if err != nil {
			return describeIDError("activity", args[0], err)
		}

		a, ok := trk.DeleteActivity(id)
		if !ok {
			return fmt.Errorf("activity not found: %s", args[0])
		}

		color.Yellow("✗ Deleted %s", a.Kind.Label())
		fmt.Printf("  %s %s, %d kcal\n",
			color.New(color.Faint).Sprint(shortID(a.ID)),
			a.Date.Format("2006-01-02"),
			a.Calories)
		return nil
	},
}

func init() {
	activityAddCmd.Flags().IntVarP(&activityDuration, "duration", "d", 0, "duration in minutes (required)")
	activityAddCmd.Flags().Float64Var(&activityDistance, "distance", 0, "distance in kilometers")
	activityAddCmd.Flags().IntVar(&activityCalories, "calories", 0, "calories burned (default: estimated)")
	activityAddCmd.Flags().StringVar(&activityDate, "date", "", "when it happened (YYYY-MM-DD HH:MM)")
	activityAddCmd.Flags().StringVar(&activityNotes, "notes", "", "notes for the activity")
	_ = activityAddCmd.MarkFlagRequired("duration")

	activityListCmd.Flags().StringVarP(&activityListKind, "kind", "k", "", "filter by activity type")
	activityListCmd.Flags().IntVarP(&activityListLimit, "limit", "n", 20, "max number of results (0 for all)")

	activityCmd.AddCommand(activityAddCmd)
	activityCmd.AddCommand(activityListCmd)
	activityCmd.AddCommand(activityDeleteCmd)
	rootCmd.AddCommand(activityCmd)
}
