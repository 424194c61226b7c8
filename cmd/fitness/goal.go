// ABOUTME: CLI commands for creating and managing goals.
// ABOUTME: Progress is driven by logged activities; complete marks a goal done by hand.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/fitness/internal/models"
	"github.com/harperreed/fitness/internal/report"
	"github.com/spf13/cobra"
)

var (
	goalDeadline string
	goalUnit     string

	goalListStatus string

	goalUpdateTarget   float64
	goalUpdateCurrent  float64
	goalUpdateDeadline string
	goalUpdateUnit     string
)

var goalCmd = &cobra.Command{
	Use:     "goal",
	Aliases: []string{"goals", "g"},
	Short:   "Track goals",
	Long: `Track calories, distance and workout goals.

A goal completes on its own once logged activities push it to its target.
Completion is permanent: deleting activities later lowers progress but
never reopens a goal.`,
}

var goalAddCmd = &cobra.Command{
	Use:   "add <type> <target>",
	Short: "Create a goal",
	Long: `Create a goal.

TYPES:

  calories   kcal burned
  distance   km covered
  workouts   number of sessions

EXAMPLES:

  fitness goal add calories 5000 --deadline 2025-07-01
  fitness goal add distance 100
  fitness goal add workouts 12 --unit sessions`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !models.IsValidGoalKind(args[0]) {
			return fmt.Errorf("unknown goal type: %s\nValid types: %s", args[0], goalKindNames())
		}
		target, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid target: %s", args[1])
		}

		in := models.NewGoalInput(models.GoalKind(args[0]), target)
		if goalUnit != "" {
			in.Unit = goalUnit
		}
		if goalDeadline != "" {
			d, err := parseTime(goalDeadline)
			if err != nil {
				return fmt.Errorf("invalid deadline: %s", goalDeadline)
			}
			in = in.WithDeadline(d)
		}
		if err := in.Validate(); err != nil {
			return err
		}

		g := trk.AddGoal(in)
		color.Green("✓ Added %s goal", g.Kind)
		fmt.Printf("  %s %.1f/%.1f %s\n",
			color.New(color.Faint).Sprint(shortID(g.ID)),
			g.Current, g.Target, g.Unit)
		return nil
	},
}

var goalListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List goals with progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		switch goalListStatus {
		case "", "all", "open", "completed":
		default:
			return fmt.Errorf("invalid status: %s (use open, completed or all)", goalListStatus)
		}

		var goals []models.Goal
		for _, g := range trk.Goals() {
			if goalListStatus == "open" && g.Completed {
				continue
			}
			if goalListStatus == "completed" && !g.Completed {
				continue
			}
			goals = append(goals, g)
		}
		fmt.Println(report.Goals(goals, timeNow()))
		return nil
	},
}

var goalUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change a goal",
	Long: `Change a goal's target, current value, unit or deadline.

Only the flags you pass are changed. Completion is not affected; use
'fitness goal complete' to finish a goal by hand.

EXAMPLES:

  fitness goal update abc123 --target 8000
  fitness goal update abc123 --deadline 2025-08-01`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := trk.ResolveGoalID(args[0])
		if err != nil {
			return describeIDError("goal", args[0], err)
		}

		var upd models.GoalUpdate
		flags := cmd.Flags()
		if flags.Changed("target") {
			upd.Target = &goalUpdateTarget
		}
		if flags.Changed("current") {
			upd.Current = &goalUpdateCurrent
		}
		if flags.Changed("unit") {
			upd.Unit = &goalUpdateUnit
		}
		if flags.Changed("deadline") {
			d, err := parseTime(goalUpdateDeadline)
			if err != nil {
				return fmt.Errorf("invalid deadline: %s", goalUpdateDeadline)
			}
			upd.Deadline = &d
		}
		if upd.IsEmpty() {
			return fmt.Errorf("nothing to update (use --target, --current, --unit or --deadline)")
		}
		if err := upd.Validate(); err != nil {
			return err
		}

		g, ok := trk.UpdateGoal(id, upd)
		if !ok {
			return fmt.Errorf("goal not found: %s", args[0])
		}
		color.Green("✓ Updated goal")
		fmt.Printf("  %s %.1f/%.1f %s\n",
			color.New(color.Faint).Sprint(shortID(g.ID)),
			g.Current, g.Target, g.Unit)
		return nil
	},
}

var goalCompleteCmd = &cobra.Command{
	Use:     "complete <id>",
	Aliases: []string{"done"},
	Short:   "Mark a goal completed",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := trk.ResolveGoalID(args[0])
		if err != nil {
			return describeIDError("goal", args[0], err)
		}
		g, ok := trk.CompleteGoal(id)
		if !ok {
			return fmt.Errorf("goal not found: %s", args[0])
		}
		color.Green("✓ Completed %s goal %s", g.Kind, shortID(g.ID))
		return nil
	},
}

var goalDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a goal",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := trk.ResolveGoalID(args[0])
		if err != nil {
			return describeIDError("goal", args[0], err)
		}
		if !trk.DeleteGoal(id) {
			return fmt.Errorf("goal not found: %s", args[0])
		}
		color.Yellow("✗ Deleted goal %s", shortID(id))
		return nil
	},
}

func init() {
	goalAddCmd.Flags().StringVar(&goalDeadline, "deadline", "", "deadline (YYYY-MM-DD)")
	goalAddCmd.Flags().StringVar(&goalUnit, "unit", "", "display unit (default: kcal, km or sessions)")

	goalListCmd.Flags().StringVar(&goalListStatus, "status", "all", "open, completed or all")

	goalUpdateCmd.Flags().Float64Var(&goalUpdateTarget, "target", 0, "new target")
	goalUpdateCmd.Flags().Float64Var(&goalUpdateCurrent, "current", 0, "override current progress")
	goalUpdateCmd.Flags().StringVar(&goalUpdateDeadline, "deadline", "", "new deadline (YYYY-MM-DD)")
	goalUpdateCmd.Flags().StringVar(&goalUpdateUnit, "unit", "", "new display unit")

	goalCmd.AddCommand(goalAddCmd)
	goalCmd.AddCommand(goalListCmd)
	goalCmd.AddCommand(goalUpdateCmd)
	goalCmd.AddCommand(goalCompleteCmd)
	goalCmd.AddCommand(goalDeleteCmd)
	rootCmd.AddCommand(goalCmd)
}
