package mcpserver

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/julianstephens/pulse/internal/models"
	"github.com/julianstephens/pulse/internal/session"
	"github.com/julianstephens/pulse/internal/storage/jsonfile"
)

var fixedNow = time.Date(2024, 1, 4, 10, 0, 0, 0, time.Local)

func testServer(t *testing.T) (*Server, *session.Session) {
	t.Helper()
	store := jsonfile.New(filepath.Join(t.TempDir(), "data"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	sess, err := session.Login(store, "Ada", "ada@example.com", session.WithClock(func() time.Time { return fixedNow }))
	if err != nil {
		t.Fatal(err)
	}
	if err := sess.SelectActivities([]string{"run", "reading"}); err != nil {
		t.Fatal(err)
	}
	return New(sess), sess
}

func callTool(t *testing.T, srv *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	handlers := map[string]func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error){
		"get_stats":     srv.getStats,
		"get_day":       srv.getDay,
		"mark_activity": srv.markActivity,
		"list_notes":    srv.listNotes,
		"add_note":      srv.addNote,
	}
	h, ok := handlers[name]
	if !ok {
		t.Fatalf("unknown tool: %s", name)
	}
	result, err := h(context.Background(), req)
	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func decodeResult[T any](t *testing.T, r *mcp.CallToolResult) T {
	t.Helper()
	if r.IsError {
		t.Fatalf("tool returned error: %s", resultText(r))
	}
	var v T
	if err := json.Unmarshal([]byte(resultText(r)), &v); err != nil {
		t.Fatalf("decode %q: %v", resultText(r), err)
	}
	return v
}

func TestMarkActivityAndGetDay(t *testing.T) {
	srv, sess := testServer(t)

	r := callTool(t, srv, "mark_activity", map[string]any{"activity": "run"})
	day := decodeResult[dayResult](t, r)
	if day.Date != "2024-01-04" || day.Percentage != 50 {
		t.Errorf("mark result = %+v", day)
	}

	stored, _ := sess.GetDay("2024-01-04")
	if !stored["run"] {
		t.Error("completion was not recorded on the session")
	}

	r = callTool(t, srv, "mark_activity", map[string]any{"activity": "run", "completed": false})
	if day := decodeResult[dayResult](t, r); day.Percentage != 0 {
		t.Errorf("after clearing, percentage = %d", day.Percentage)
	}

	r = callTool(t, srv, "get_day", map[string]any{"date": "2024-01-04"})
	day = decodeResult[dayResult](t, r)
	if len(day.Activities) != 2 {
		t.Fatalf("activities = %+v", day.Activities)
	}
	for _, a := range day.Activities {
		if a.Completed {
			t.Errorf("%s should not be completed", a.ID)
		}
	}
}

func TestMarkActivityErrors(t *testing.T) {
	srv, _ := testServer(t)
	tests := []struct {
		name string
		args map[string]any
	}{
		{"missing activity", map[string]any{}},
		{"unknown activity", map[string]any{"activity": "flying"}},
		{"bad date", map[string]any{"activity": "run", "date": "yesterday"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if r := callTool(t, srv, "mark_activity", tt.args); !r.IsError {
				t.Errorf("expected error, got %q", resultText(r))
			}
		})
	}
}

func TestGetStats(t *testing.T) {
	srv, sess := testServer(t)
	for _, date := range []string{"2024-01-03", "2024-01-04"} {
		if err := sess.RecordCompletion(date, "reading", true); err != nil {
			t.Fatal(err)
		}
	}

	r := callTool(t, srv, "get_stats", map[string]any{"range": "monthly"})
	res := decodeResult[statsResult](t, r)
	if len(res.Series) != 30 || res.Streaks.Current != 2 || res.Summary.TotalCompletions != 2 {
		t.Errorf("stats = %+v", res)
	}
	if len(res.Categories) != 1 || res.Categories[0].Percentage != 100 {
		t.Errorf("categories = %+v", res.Categories)
	}

	if r := callTool(t, srv, "get_stats", map[string]any{"range": "yearly"}); !r.IsError {
		t.Error("expected error for unknown range")
	}
}

func TestAddAndListNotes(t *testing.T) {
	srv, sess := testServer(t)

	r := callTool(t, srv, "add_note", map[string]any{
		"title":     "Stretch",
		"due":       "2024-01-04 18:30",
		"recurring": "daily",
	})
	n := decodeResult[models.Note](t, r)
	want := time.Date(2024, 1, 4, 18, 30, 0, 0, time.Local)
	if !n.DueTime.Equal(want) || n.Recurring != models.RecurrenceDaily || n.Priority != models.PriorityMedium {
		t.Errorf("note = %+v", n)
	}

	if _, err := sess.ToggleNote(n.ID); err != nil {
		t.Fatal(err)
	}
	r = callTool(t, srv, "list_notes", map[string]any{})
	if notes := decodeResult[[]models.Note](t, r); len(notes) != 0 {
		t.Errorf("completed notes should be hidden, got %d", len(notes))
	}
	r = callTool(t, srv, "list_notes", map[string]any{"include_completed": true})
	if notes := decodeResult[[]models.Note](t, r); len(notes) != 1 {
		t.Errorf("expected 1 note, got %d", len(notes))
	}
}

func TestAddNoteErrors(t *testing.T) {
	srv, _ := testServer(t)
	tests := []map[string]any{
		{"due": "2024-01-04 18:30"},
		{"title": "x"},
		{"title": "x", "due": "tomorrow"},
		{"title": "x", "due": "2024-01-04 18:30", "priority": "urgent"},
	}
	for _, args := range tests {
		if r := callTool(t, srv, "add_note", args); !r.IsError {
			t.Errorf("args %v: expected error, got %q", args, resultText(r))
		}
	}
}

func TestReadCatalog(t *testing.T) {
	srv, _ := testServer(t)
	contents, err := srv.readCatalog(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok || !strings.Contains(tc.Text, `"id": "run"`) {
		t.Errorf("catalog resource = %+v", contents)
	}
}
