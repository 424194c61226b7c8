// ABOUTME: MCP resource implementations for the fitness tracker.
// ABOUTME: Provides fitness://today, fitness://weekly, and fitness://summary resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/fitness/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	todayURI   = "fitness://today"
	weeklyURI  = "fitness://weekly"
	summaryURI = "fitness://summary"
)

func (s *Server) registerResources() {
	// fitness://today - activities and calories for the current day
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         todayURI,
		Name:        "Today's Activity",
		Description: "Activities logged today and total calories burned",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// fitness://weekly - calories per weekday
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         weeklyURI,
		Name:        "Weekly Activity",
		Description: "Calories burned per weekday, Sunday first",
		MIMEType:    "application/json",
	}, s.handleWeeklyResource)

	// fitness://summary - dashboard snapshot
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         summaryURI,
		Name:        "Fitness Summary Dashboard",
		Description: "Totals, body stats, goals and recent activities",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	now := s.tracker.Now()
	activities := s.tracker.ActivitiesOn(now)
	if activities == nil {
		activities = []models.Activity{}
	}

	result := map[string]interface{}{
		"date":       now.Format("2006-01-02"),
		"calories":   s.tracker.TodaysCalories(),
		"activities": activities,
	}
	return jsonResource(todayURI, result)
}

func (s *Server) handleWeeklyResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	weekly := s.tracker.Weekly()

	days := make([]map[string]interface{}, 0, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		days = append(days, map[string]interface{}{
			"day":      day.String(),
			"calories": weekly[day],
		})
	}

	result := map[string]interface{}{
		"days":            days,
		"total":           weekly.Total(),
		"current_weekday": s.tracker.Now().Weekday().String(),
	}
	return jsonResource(weeklyURI, result)
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource(summaryURI, s.tracker.Dashboard())
}

func jsonResource(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
