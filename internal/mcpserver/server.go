// Package mcpserver exposes a session to LLM clients as MCP tools over
// stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/julianstephens/pulse/internal/catalog"
	"github.com/julianstephens/pulse/internal/constants"
	"github.com/julianstephens/pulse/internal/models"
	"github.com/julianstephens/pulse/internal/session"
	"github.com/julianstephens/pulse/internal/stats"
	"github.com/julianstephens/pulse/internal/utils"
)

const catalogURI = "pulse://catalog"

type Server struct {
	mcp  *server.MCPServer
	sess *session.Session
}

func New(sess *session.Session) *Server {
	s := &Server{sess: sess}

	s.mcp = server.NewMCPServer(
		"Pulse",
		constants.Version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("get_stats",
		mcp.WithDescription("Completion statistics, streaks and the daily series for the tracked activities."),
		mcp.WithString("range", mcp.Description("weekly (7 days, default) or monthly (30 days)"), mcp.Enum("weekly", "monthly")),
		mcp.WithString("end", mcp.Description("Last day of the window as YYYY-MM-DD (default today)")),
	), s.getStats)

	s.mcp.AddTool(mcp.NewTool("get_day",
		mcp.WithDescription("Which tracked activities were completed on a day."),
		mcp.WithString("date", mcp.Description("Day as YYYY-MM-DD (default today)")),
	), s.getDay)

	s.mcp.AddTool(mcp.NewTool("mark_activity",
		mcp.WithDescription("Mark an activity done or not done on a day. Activity ids are listed by the "+catalogURI+" resource."),
		mcp.WithString("activity", mcp.Required(), mcp.Description("Activity id, e.g. run or reading")),
		mcp.WithString("date", mcp.Description("Day as YYYY-MM-DD (default today)")),
		mcp.WithBoolean("completed", mcp.Description("false to clear the activity (default true)")),
	), s.markActivity)

	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List reminder notes, newest first."),
		mcp.WithBoolean("include_completed", mcp.Description("Include completed notes (default false)")),
	), s.listNotes)

	s.mcp.AddTool(mcp.NewTool("add_note",
		mcp.WithDescription("Create a reminder note that alerts when it falls due."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Short title")),
		mcp.WithString("due", mcp.Required(), mcp.Description("Local due time as YYYY-MM-DD HH:MM, or RFC 3339")),
		mcp.WithString("text", mcp.Description("Optional body")),
		mcp.WithString("priority", mcp.Enum("low", "medium", "high"), mcp.Description("Default medium")),
		mcp.WithString("recurring", mcp.Enum("none", "daily", "weekly"), mcp.Description("Default none")),
	), s.addNote)

	s.mcp.AddResource(
		mcp.NewResource(catalogURI, "Activity catalog",
			mcp.WithResourceDescription("Every activity id that can be tracked, grouped by category."),
			mcp.WithMIMEType("application/json"),
		),
		s.readCatalog,
	)

	return s
}

func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) dateArg(req mcp.CallToolRequest, key string) (string, error) {
	date := req.GetString(key, "")
	if date == "" {
		return s.sess.Today(), nil
	}
	if !utils.ValidateDateFormat(date) {
		return "", fmt.Errorf("%s must be YYYY-MM-DD, got %q", key, date)
	}
	return date, nil
}

type statsResult struct {
	Range      string                `json:"range"`
	End        string                `json:"end"`
	Summary    stats.SummaryStats    `json:"summary"`
	Streaks    stats.StreakInfo      `json:"streaks"`
	Categories []stats.CategoryShare `json:"categories"`
	Series     []stats.SeriesPoint   `json:"series"`
}

func (s *Server) getStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rangeName := req.GetString("range", "weekly")
	window := stats.Weekly
	switch rangeName {
	case "weekly":
	case "monthly":
		window = stats.Monthly
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown range %q", rangeName)), nil
	}
	end, err := s.dateArg(req, "end")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	p, err := s.sess.Snapshot()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	selected := p.User.SelectedActivityIDs
	series, err := stats.TimeSeries(p.History, selected, end, window)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	streaks, err := stats.Streaks(p.History, selected, end)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(statsResult{
		Range:      rangeName,
		End:        end,
		Summary:    stats.Summary(p.History, selected),
		Streaks:    streaks,
		Categories: stats.CategoryMix(p.History, selected, stats.DateRange{From: series[0].Date, To: end}),
		Series:     series,
	})
}

type dayActivity struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

type dayResult struct {
	Date       string        `json:"date"`
	Percentage int           `json:"percentage"`
	Activities []dayActivity `json:"activities"`
}

func (s *Server) dayResult(date string) (dayResult, error) {
	p, err := s.sess.Snapshot()
	if err != nil {
		return dayResult{}, err
	}
	day := p.History.Day(date)
	out := dayResult{
		Date:       date,
		Percentage: stats.CompletionPercentage(day, p.User.SelectedActivityIDs),
		Activities: []dayActivity{},
	}
	for _, a := range catalog.Filter(p.User.SelectedActivityIDs) {
		out.Activities = append(out.Activities, dayActivity{ID: a.ID, Name: a.Name, Completed: day[a.ID]})
	}
	return out, nil
}

func (s *Server) getDay(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := s.dateArg(req, "date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := s.dayResult(date)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res)
}

func (s *Server) markActivity(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	activity, err := req.RequireString("activity")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	date, err := s.dateArg(req, "date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.sess.RecordCompletion(date, activity, req.GetBool("completed", true)); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := s.dayResult(date)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res)
}

func (s *Server) listNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	notes, err := s.sess.Notes()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	all := req.GetBool("include_completed", false)
	out := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		if all || !n.Completed {
			out = append(out, n)
		}
	}
	return jsonResult(out)
}

func (s *Server) addNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dueStr, err := req.RequireString("due")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	due, err := utils.ParseDue(dueStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	n, err := s.sess.AddNote(session.NoteInput{
		Title:     title,
		Text:      req.GetString("text", ""),
		DueTime:   due,
		Priority:  models.Priority(req.GetString("priority", "")),
		Recurring: models.Recurrence(req.GetString("recurring", "")),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(n)
}

func (s *Server) readCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	out, err := json.MarshalIndent(map[string]any{
		"version":    catalog.Version,
		"categories": catalog.Categories(),
		"activities": catalog.All(),
	}, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: catalogURI, MIMEType: "application/json", Text: string(out)},
	}, nil
}
