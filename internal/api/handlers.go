// ABOUTME: JSON handlers for activities, goals, stats, dashboard and calendar.
// ABOUTME: Validation errors map to 400 and unknown ids to 404.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/harperreed/fitness/internal/models"
	"github.com/harperreed/fitness/internal/tracker"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrInvalidInput), errors.Is(err, tracker.ErrAmbiguousID):
		status = http.StatusBadRequest
	case errors.Is(err, tracker.ErrNotFound):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: decode body: %v", models.ErrInvalidInput, err)
	}
	return nil
}

type activityRequest struct {
	Type     string   `json:"type"`
	Duration int      `json:"duration"`
	Distance *float64 `json:"distance,omitempty"`
	Calories *int     `json:"calories,omitempty"`
	Date     string   `json:"date,omitempty"`
	Notes    string   `json:"notes,omitempty"`
}

type goalRequest struct {
	Type     string  `json:"type"`
	Target   float64 `json:"target"`
	Unit     string  `json:"unit,omitempty"`
	Deadline string  `json:"deadline,omitempty"`
}

type goalPatch struct {
	Type     *string  `json:"type,omitempty"`
	Target   *float64 `json:"target,omitempty"`
	Current  *float64 `json:"current,omitempty"`
	Unit     *string  `json:"unit,omitempty"`
	Deadline *string  `json:"deadline,omitempty"`
}

type statsPatch struct {
	Weight *float64 `json:"weight,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

type goalView struct {
	models.Goal
	Progress       float64 `json:"progress"`
	DeadlineStatus string  `json:"deadline_status"`
}

type statsView struct {
	models.UserStats
	Category      string `json:"bmi_category"`
	HealthyWeight int    `json:"healthy_weight"`
}

func (s *Server) goalView(g models.Goal) goalView {
	return goalView{Goal: g, Progress: g.Progress(), DeadlineStatus: g.DeadlineStatus(s.tracker.Now())}
}

func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var kind *models.ActivityKind
	if t := q.Get("type"); t != "" {
		if !models.IsValidActivityKind(t) {
			s.writeError(w, fmt.Errorf("%w: unknown activity type %q", models.ErrInvalidInput, t))
			return
		}
		k := models.ActivityKind(t)
		kind = &k
	}

	limit := 0
	if l := q.Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 {
			s.writeError(w, fmt.Errorf("%w: limit must be a non-negative integer", models.ErrInvalidInput))
			return
		}
		limit = n
	}

	activities := s.tracker.ListActivities(kind, limit)
	if activities == nil {
		activities = []models.Activity{}
	}
	writeJSON(w, http.StatusOK, activities)
}

func (s *Server) handleAddActivity(w http.ResponseWriter, r *http.Request) {
	var req activityRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	date := s.tracker.Now()
	if req.Date != "" {
		d, err := models.ParseDate(req.Date, date.Location())
		if err != nil {
			s.writeError(w, err)
			return
		}
		date = d
	}

	in := models.NewActivityInput(models.ActivityKind(req.Type), req.Duration, date).WithNotes(req.Notes)
	if req.Distance != nil {
		in = in.WithDistance(*req.Distance)
	}
	if err := in.Validate(); err != nil {
		s.writeError(w, err)
		return
	}
	if req.Calories != nil {
		in = in.WithCalories(*req.Calories)
	} else {
		in = in.WithEstimatedCalories(s.tracker.UserStats().WeightKg)
	}
	if err := in.Validate(); err != nil {
		s.writeError(w, err)
		return
	}

	a := s.tracker.AddActivity(in)
	s.metrics.CounterActivities.WithLabelValues(string(a.Kind)).Inc()
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleDeleteActivity(w http.ResponseWriter, r *http.Request) {
	ref := mux.Vars(r)["id"]
	id, err := s.tracker.ResolveActivityID(ref)
	if err != nil {
		s.writeError(w, fmt.Errorf("activity %s: %w", ref, err))
		return
	}
	if _, ok := s.tracker.DeleteActivity(id); !ok {
		s.writeError(w, fmt.Errorf("activity %s: %w", ref, tracker.ErrNotFound))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	switch status {
	case "", "all", "open", "completed":
	default:
		s.writeError(w, fmt.Errorf("%w: status must be open, completed or all", models.ErrInvalidInput))
		return
	}

	views := []goalView{}
	for _, g := range s.tracker.Goals() {
		if status == "open" && g.Completed {
			continue
		}
		if status == "completed" && !g.Completed {
			continue
		}
		views = append(views, s.goalView(g))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleAddGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	in := models.NewGoalInput(models.GoalKind(req.Type), req.Target)
	if req.Unit != "" {
		in.Unit = req.Unit
	}
	if req.Deadline != "" {
		d, err := models.ParseDate(req.Deadline, s.tracker.Now().Location())
		if err != nil {
			s.writeError(w, err)
			return
		}
		in = in.WithDeadline(d)
	}
	if err := in.Validate(); err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, s.goalView(s.tracker.AddGoal(in)))
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	ref := mux.Vars(r)["id"]
	id, err := s.tracker.ResolveGoalID(ref)
	if err != nil {
		s.writeError(w, fmt.Errorf("goal %s: %w", ref, err))
		return
	}

	var req goalPatch
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	upd := models.GoalUpdate{Target: req.Target, Current: req.Current, Unit: req.Unit}
	if req.Type != nil {
		k := models.GoalKind(*req.Type)
		upd.Kind = &k
	}
	if req.Deadline != nil {
		d, err := models.ParseDate(*req.Deadline, s.tracker.Now().Location())
		if err != nil {
			s.writeError(w, err)
			return
		}
		upd.Deadline = &d
	}
	if upd.IsEmpty() {
		s.writeError(w, fmt.Errorf("%w: nothing to update", models.ErrInvalidInput))
		return
	}
	if err := upd.Validate(); err != nil {
		s.writeError(w, err)
		return
	}

	g, ok := s.tracker.UpdateGoal(id, upd)
	if !ok {
		s.writeError(w, fmt.Errorf("goal %s: %w", ref, tracker.ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, s.goalView(g))
}

func (s *Server) handleCompleteGoal(w http.ResponseWriter, r *http.Request) {
	ref := mux.Vars(r)["id"]
	id, err := s.tracker.ResolveGoalID(ref)
	if err != nil {
		s.writeError(w, fmt.Errorf("goal %s: %w", ref, err))
		return
	}
	g, ok := s.tracker.CompleteGoal(id)
	if !ok {
		s.writeError(w, fmt.Errorf("goal %s: %w", ref, tracker.ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, s.goalView(g))
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	ref := mux.Vars(r)["id"]
	id, err := s.tracker.ResolveGoalID(ref)
	if err != nil {
		s.writeError(w, fmt.Errorf("goal %s: %w", ref, err))
		return
	}
	if !s.tracker.DeleteGoal(id) {
		s.writeError(w, fmt.Errorf("goal %s: %w", ref, tracker.ErrNotFound))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func newStatsView(st models.UserStats) statsView {
	return statsView{
		UserStats:     st,
		Category:      models.BMICategory(st.BMI),
		HealthyWeight: models.HealthyWeight(st.HeightCm),
	}
}

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newStatsView(s.tracker.UserStats()))
}

func (s *Server) handleUpdateStats(w http.ResponseWriter, r *http.Request) {
	var req statsPatch
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	upd := models.StatsUpdate{WeightKg: req.Weight, HeightCm: req.Height}
	if upd.WeightKg == nil && upd.HeightCm == nil {
		s.writeError(w, fmt.Errorf("%w: provide weight and/or height", models.ErrInvalidInput))
		return
	}
	if err := upd.Validate(); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newStatsView(s.tracker.UpdateUserStats(upd)))
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Dashboard())
}

type calendarResponse struct {
	Year  int                       `json:"year"`
	Month int                       `json:"month"`
	Days  map[int][]models.Activity `json:"days"`
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	// the route pattern guarantees digits
	year, _ := strconv.Atoi(vars["year"])
	month, _ := strconv.Atoi(vars["month"])
	if month < 1 || month > 12 {
		s.writeError(w, fmt.Errorf("%w: month must be between 1 and 12", models.ErrInvalidInput))
		return
	}

	writeJSON(w, http.StatusOK, calendarResponse{
		Year:  year,
		Month: month,
		Days:  s.tracker.CalendarMonth(year, time.Month(month)),
	})
}
