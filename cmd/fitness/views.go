// ABOUTME: CLI commands for body stats, the dashboard and the calendar.
// ABOUTME: Rendering is delegated to the report package.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fitness/internal/models"
	"github.com/harperreed/fitness/internal/report"
	"github.com/spf13/cobra"
)

var (
	statsWeight float64
	statsHeight float64

	calendarMonth string
	calendarDay   string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show or update body stats",
	Long: `Show weight, height, BMI and a healthy weight estimate.

Pass --weight and/or --height to update them; BMI is recalculated.

EXAMPLES:

  fitness stats
  fitness stats --weight 72.5
  fitness stats --weight 72.5 --height 178`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var upd models.StatsUpdate
		if cmd.Flags().Changed("weight") {
			upd.WeightKg = &statsWeight
		}
		if cmd.Flags().Changed("height") {
			upd.HeightCm = &statsHeight
		}

		if upd.WeightKg != nil || upd.HeightCm != nil {
			if err := upd.Validate(); err != nil {
				return err
			}
			trk.UpdateUserStats(upd)
			color.Green("✓ Updated body stats")
		}

		fmt.Println(report.Stats(trk.UserStats()))
		return nil
	},
}

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash", "d"},
	Short:   "Show today's calories, weekly chart, goals and recent activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(report.Dashboard(trk.Dashboard()))
		return nil
	},
}

var calendarCmd = &cobra.Command{
	Use:     "calendar",
	Aliases: []string{"cal"},
	Short:   "Show a month of activity",
	Long: `Show a month grid with active days marked, or one day's activities.

EXAMPLES:

  fitness calendar                    # Current month
  fitness calendar --month 2025-05    # Another month
  fitness calendar --day 2025-06-11   # Activities on one day`,
	RunE: func(cmd *cobra.Command, args []string) error {
		now := timeNow()

		if calendarDay != "" {
			day, err := parseTime(calendarDay)
			if err != nil {
				return fmt.Errorf("invalid day: %s (use YYYY-MM-DD)", calendarDay)
			}
			fmt.Println(report.Day(day, trk.ActivitiesOn(day)))
			return nil
		}

		year, month := now.Year(), now.Month()
		if calendarMonth != "" {
			y, m, err := parseMonth(calendarMonth)
			if err != nil {
				return err
			}
			year, month = y, m
		}

		fmt.Println(report.Calendar(year, month, trk.CalendarMonth(year, month), now))
		return nil
	},
}

func init() {
	statsCmd.Flags().Float64Var(&statsWeight, "weight", 0, "body weight in kg")
	statsCmd.Flags().Float64Var(&statsHeight, "height", 0, "height in cm")

	calendarCmd.Flags().StringVar(&calendarMonth, "month", "", "month to show (YYYY-MM)")
	calendarCmd.Flags().StringVar(&calendarDay, "day", "", "show one day's activities (YYYY-MM-DD)")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(calendarCmd)
}
