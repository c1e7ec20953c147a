// ABOUTME: MCP resource implementations for FitTrack.
// ABOUTME: Provides fittrack://profile, fittrack://workouts/recent, and fittrack://summary.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/fittrack/internal/stats"
	"github.com/harperreed/fittrack/internal/workouts"
)

const (
	profileURI        = "fittrack://profile"
	recentWorkoutsURI = "fittrack://workouts/recent"
	summaryURI        = "fittrack://summary"

	recentWorkoutLimit = 10
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         profileURI,
		Name:        "Profile",
		Description: "The signed-in user's profile with weight and muscle-mass history",
		MIMEType:    "application/json",
	}, s.handleProfileResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         recentWorkoutsURI,
		Name:        "Recent Workouts",
		Description: "The 10 most recent workouts, newest first",
		MIMEType:    "application/json",
	}, s.handleRecentWorkoutsResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         summaryURI,
		Name:        "Training Summary",
		Description: "Streak, weekly counts, total volume and recent weekly volume",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

// Resource handlers

func (s *Server) handleProfileResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	if err := s.app.RequireAuth(); err != nil {
		return nil, err
	}
	return jsonResource(profileURI, s.app.Session.User())
}

func (s *Server) handleRecentWorkoutsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	if err := s.app.RequireAuth(); err != nil {
		return nil, err
	}

	list := s.app.Workouts.List()
	workouts.SortByDateDesc(list)
	if len(list) > recentWorkoutLimit {
		list = list[:recentWorkoutLimit]
	}

	return jsonResource(recentWorkoutsURI, map[string]interface{}{
		"workouts": list,
		"count":    len(list),
	})
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	summary, err := s.app.Summary()
	if err != nil {
		return nil, err
	}

	weekly := stats.WeeklyVolume(s.app.Workouts.List())
	if len(weekly) > 8 {
		weekly = weekly[len(weekly)-8:]
	}

	return jsonResource(summaryURI, map[string]interface{}{
		"generated_at":  s.app.Now().Format(time.RFC3339),
		"summary":       summary,
		"weekly_volume": weekly,
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
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
