// ABOUTME: MCP tool implementations for activities, goals and body stats.
// ABOUTME: Inputs are validated before the tracker is touched.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/fitness/internal/models"
	"github.com/harperreed/fitness/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// add_activity
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_activity",
		Description: "Log a workout (running, walking, cycling, swimming, weightlifting, yoga, other). Calories are estimated from body weight when omitted.",
	}, s.handleAddActivity)

	// list_activities
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_activities",
		Description: "List recent activities, most recent first, optionally filtered by type",
	}, s.handleListActivities)

	// delete_activity
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_activity",
		Description: "Delete an activity by ID or ID prefix and roll back its goal progress",
	}, s.handleDeleteActivity)

	// add_goal
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_goal",
		Description: "Create a calories, distance or workouts goal",
	}, s.handleAddGoal)

	// list_goals
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_goals",
		Description: "List goals with progress percentage and deadline status",
	}, s.handleListGoals)

	// update_goal
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_goal",
		Description: "Change a goal's target, current value, unit, type or deadline",
	}, s.handleUpdateGoal)

	// complete_goal
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "complete_goal",
		Description: "Mark a goal completed regardless of progress",
	}, s.handleCompleteGoal)

	// delete_goal
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_goal",
		Description: "Delete a goal by ID or ID prefix",
	}, s.handleDeleteGoal)

	// update_stats
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_stats",
		Description: "Update body weight (kg) and/or height (cm); BMI is recalculated",
	}, s.handleUpdateStats)

	// get_stats
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_stats",
		Description: "Get weight, height, BMI and BMI category",
	}, s.handleGetStats)

	// estimate_calories
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "estimate_calories",
		Description: "Estimate calories burned for an activity using MET values",
	}, s.handleEstimateCalories)
}

// Tool input/output types. Outputs carrying timestamps are returned as any
// so no output schema is inferred for them.

type addActivityInput struct {
	Type     string   `json:"type" jsonschema:"Activity type: running, walking, cycling, swimming, weightlifting, yoga or other"`
	Duration int      `json:"duration" jsonschema:"Duration in minutes"`
	Distance *float64 `json:"distance,omitempty" jsonschema:"Distance in kilometers"`
	Calories *int     `json:"calories,omitempty" jsonschema:"Calories burned; estimated from body weight when omitted"`
	Date     string   `json:"date,omitempty" jsonschema:"When it happened (RFC 3339 or YYYY-MM-DD HH:MM), defaults to now"`
	Notes    string   `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type activityOutput struct {
	Activity models.Activity `json:"activity"`
	Message  string          `json:"message"`
}

type listActivitiesInput struct {
	Type  string `json:"type,omitempty" jsonschema:"Filter by activity type"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type listActivitiesOutput struct {
	Activities []models.Activity `json:"activities"`
	Count      int               `json:"count"`
}

type idInput struct {
	ID string `json:"id" jsonschema:"ID or unique ID prefix"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type addGoalInput struct {
	Type     string  `json:"type" jsonschema:"Goal type: calories, distance or workouts"`
	Target   float64 `json:"target" jsonschema:"Target value (kcal, km or sessions)"`
	Unit     string  `json:"unit,omitempty" jsonschema:"Display unit, defaults to the type's unit"`
	Deadline string  `json:"deadline,omitempty" jsonschema:"Deadline date (YYYY-MM-DD)"`
}

type goalView struct {
	models.Goal
	Progress       float64 `json:"progress"`
	DeadlineStatus string  `json:"deadline_status"`
}

type goalOutput struct {
	Goal    goalView `json:"goal"`
	Message string   `json:"message"`
}

type listGoalsInput struct {
	Status string `json:"status,omitempty" jsonschema:"Filter: open, completed or all (default all)"`
}

type listGoalsOutput struct {
	Goals []goalView `json:"goals"`
	Count int        `json:"count"`
}

type updateGoalInput struct {
	ID       string   `json:"id" jsonschema:"Goal ID or unique ID prefix"`
	Type     string   `json:"type,omitempty" jsonschema:"New goal type"`
	Target   *float64 `json:"target,omitempty" jsonschema:"New target value"`
	Current  *float64 `json:"current,omitempty" jsonschema:"Override current progress"`
	Unit     string   `json:"unit,omitempty" jsonschema:"New display unit"`
	Deadline string   `json:"deadline,omitempty" jsonschema:"New deadline date (YYYY-MM-DD)"`
}

type updateStatsInput struct {
	Weight *float64 `json:"weight,omitempty" jsonschema:"Body weight in kilograms"`
	Height *float64 `json:"height,omitempty" jsonschema:"Height in centimeters"`
}

type statsOutput struct {
	Weight        float64 `json:"weight"`
	Height        float64 `json:"height"`
	BMI           float64 `json:"bmi"`
	Category      string  `json:"bmi_category"`
	HealthyWeight int     `json:"healthy_weight"`
}

type estimateCaloriesInput struct {
	Type     string   `json:"type" jsonschema:"Activity type"`
	Duration int      `json:"duration" jsonschema:"Duration in minutes"`
	Weight   *float64 `json:"weight,omitempty" jsonschema:"Body weight in kilograms, defaults to the stored weight"`
}

type estimateCaloriesOutput struct {
	Calories int     `json:"calories"`
	MET      float64 `json:"met"`
	Weight   float64 `json:"weight"`
}

// Tool handlers

func (s *Server) handleAddActivity(ctx context.Context, req *mcp.CallToolRequest, input addActivityInput) (*mcp.CallToolResult, any, error) {
	date := s.tracker.Now()
	if input.Date != "" {
		d, err := models.ParseDate(input.Date, date.Location())
		if err != nil {
			return nil, nil, err
		}
		date = d
	}

	in := models.NewActivityInput(models.ActivityKind(input.Type), input.Duration, date).WithNotes(input.Notes)
	if input.Distance != nil {
		in = in.WithDistance(*input.Distance)
	}
	if err := in.Validate(); err != nil {
		return nil, nil, err
	}
	if input.Calories != nil {
		in = in.WithCalories(*input.Calories)
	} else {
		in = in.WithEstimatedCalories(s.tracker.UserStats().WeightKg)
	}
	if err := in.Validate(); err != nil {
		return nil, nil, err
	}

	a := s.tracker.AddActivity(in)
	s.logger.Info("activity added via mcp", "id", a.ID, "type", a.Kind)

	return nil, activityOutput{
		Activity: a,
		Message:  fmt.Sprintf("Logged %s: %s, %d kcal (ID: %s)", a.Kind.Label(), models.FormatDuration(a.DurationMinutes), a.Calories, shortID(a.ID)),
	}, nil
}

func (s *Server) handleListActivities(ctx context.Context, req *mcp.CallToolRequest, input listActivitiesInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	var kind *models.ActivityKind
	if input.Type != "" {
		if !models.IsValidActivityKind(input.Type) {
			return nil, nil, fmt.Errorf("%w: unknown activity type %q", models.ErrInvalidInput, input.Type)
		}
		k := models.ActivityKind(input.Type)
		kind = &k
	}

	activities := s.tracker.ListActivities(kind, input.Limit)
	return nil, listActivitiesOutput{Activities: activities, Count: len(activities)}, nil
}

func (s *Server) handleDeleteActivity(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	id, err := s.tracker.ResolveActivityID(input.ID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("activity %s: %w", input.ID, err)
	}
	a, ok := s.tracker.DeleteActivity(id)
	if !ok {
		return nil, simpleOutput{}, fmt.Errorf("activity %s: %w", input.ID, tracker.ErrNotFound)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted %s activity from %s (ID: %s)", a.Kind.Label(), a.Date.Format("2006-01-02"), shortID(a.ID)),
	}, nil
}

func (s *Server) handleAddGoal(ctx context.Context, req *mcp.CallToolRequest, input addGoalInput) (*mcp.CallToolResult, any, error) {
	in := models.NewGoalInput(models.GoalKind(input.Type), input.Target)
	if input.Unit != "" {
		in.Unit = input.Unit
	}
	if input.Deadline != "" {
		d, err := models.ParseDate(input.Deadline, s.tracker.Now().Location())
		if err != nil {
			return nil, nil, err
		}
		in = in.WithDeadline(d)
	}
	if err := in.Validate(); err != nil {
		return nil, nil, err
	}

	g := s.tracker.AddGoal(in)
	return nil, goalOutput{
		Goal:    s.goalView(g),
		Message: fmt.Sprintf("Added %s goal: %.1f %s (ID: %s)", g.Kind, g.Target, g.Unit, shortID(g.ID)),
	}, nil
}

func (s *Server) handleListGoals(ctx context.Context, req *mcp.CallToolRequest, input listGoalsInput) (*mcp.CallToolResult, any, error) {
	switch input.Status {
	case "", "all", "open", "completed":
	default:
		return nil, nil, fmt.Errorf("%w: status must be open, completed or all", models.ErrInvalidInput)
	}

	views := []goalView{}
	for _, g := range s.tracker.Goals() {
		if input.Status == "open" && g.Completed {
			continue
		}
		if input.Status == "completed" && !g.Completed {
			continue
		}
		views = append(views, s.goalView(g))
	}
	return nil, listGoalsOutput{Goals: views, Count: len(views)}, nil
}

func (s *Server) handleUpdateGoal(ctx context.Context, req *mcp.CallToolRequest, input updateGoalInput) (*mcp.CallToolResult, any, error) {
	id, err := s.tracker.ResolveGoalID(input.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("goal %s: %w", input.ID, err)
	}

	var upd models.GoalUpdate
	if input.Type != "" {
		k := models.GoalKind(input.Type)
		upd.Kind = &k
	}
	upd.Target = input.Target
	upd.Current = input.Current
	if input.Unit != "" {
		upd.Unit = &input.Unit
	}
	if input.Deadline != "" {
		d, err := models.ParseDate(input.Deadline, s.tracker.Now().Location())
		if err != nil {
			return nil, nil, err
		}
		upd.Deadline = &d
	}
	if upd.IsEmpty() {
		return nil, nil, fmt.Errorf("%w: nothing to update", models.ErrInvalidInput)
	}
	if err := upd.Validate(); err != nil {
		return nil, nil, err
	}

	g, ok := s.tracker.UpdateGoal(id, upd)
	if !ok {
		return nil, nil, fmt.Errorf("goal %s: %w", input.ID, tracker.ErrNotFound)
	}
	return nil, goalOutput{Goal: s.goalView(g), Message: fmt.Sprintf("Updated goal %s", shortID(g.ID))}, nil
}

func (s *Server) handleCompleteGoal(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, any, error) {
	id, err := s.tracker.ResolveGoalID(input.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("goal %s: %w", input.ID, err)
	}
	g, ok := s.tracker.CompleteGoal(id)
	if !ok {
		return nil, nil, fmt.Errorf("goal %s: %w", input.ID, tracker.ErrNotFound)
	}
	return nil, goalOutput{Goal: s.goalView(g), Message: fmt.Sprintf("Completed %s goal %s", g.Kind, shortID(g.ID))}, nil
}

func (s *Server) handleDeleteGoal(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	id, err := s.tracker.ResolveGoalID(input.ID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("goal %s: %w", input.ID, err)
	}
	if !s.tracker.DeleteGoal(id) {
		return nil, simpleOutput{}, fmt.Errorf("goal %s: %w", input.ID, tracker.ErrNotFound)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted goal: %s", shortID(id))}, nil
}

func (s *Server) handleUpdateStats(ctx context.Context, req *mcp.CallToolRequest, input updateStatsInput) (*mcp.CallToolResult, statsOutput, error) {
	upd := models.StatsUpdate{WeightKg: input.Weight, HeightCm: input.Height}
	if upd.WeightKg == nil && upd.HeightCm == nil {
		return nil, statsOutput{}, fmt.Errorf("%w: provide weight and/or height", models.ErrInvalidInput)
	}
	if err := upd.Validate(); err != nil {
		return nil, statsOutput{}, err
	}
	return nil, newStatsOutput(s.tracker.UpdateUserStats(upd)), nil
}

func (s *Server) handleGetStats(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, statsOutput, error) {
	return nil, newStatsOutput(s.tracker.UserStats()), nil
}

func (s *Server) handleEstimateCalories(ctx context.Context, req *mcp.CallToolRequest, input estimateCaloriesInput) (*mcp.CallToolResult, estimateCaloriesOutput, error) {
	kind := models.ActivityKind(input.Type)
	if err := models.NewActivityInput(kind, input.Duration, time.Now()).Validate(); err != nil {
		return nil, estimateCaloriesOutput{}, err
	}

	weight := s.tracker.UserStats().WeightKg
	if input.Weight != nil {
		if *input.Weight <= 0 {
			return nil, estimateCaloriesOutput{}, fmt.Errorf("%w: weight must be positive", models.ErrInvalidInput)
		}
		weight = *input.Weight
	}

	return nil, estimateCaloriesOutput{
		Calories: models.EstimateCalories(kind, input.Duration, weight),
		MET:      kind.MET(),
		Weight:   weight,
	}, nil
}

func (s *Server) goalView(g models.Goal) goalView {
	return goalView{
		Goal:           g,
		Progress:       g.Progress(),
		DeadlineStatus: g.DeadlineStatus(s.tracker.Now()),
	}
}

func newStatsOutput(st models.UserStats) statsOutput {
	return statsOutput{
		Weight:        st.WeightKg,
		Height:        st.HeightCm,
		BMI:           st.BMI,
		Category:      models.BMICategory(st.BMI),
		HealthyWeight: models.HealthyWeight(st.HeightCm),
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
