package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/julianstephens/pulse/internal/catalog"
	"github.com/julianstephens/pulse/internal/models"
	"github.com/julianstephens/pulse/internal/session"
	"github.com/julianstephens/pulse/internal/sse"
	"github.com/julianstephens/pulse/internal/stats"
	"github.com/julianstephens/pulse/internal/utils"
)

// Handler serves the API for one session.
type Handler struct {
	sess   *session.Session
	broker *sse.Broker
}

func NewHandler(sess *session.Session, broker *sse.Broker) *Handler {
	return &Handler{sess: sess, broker: broker}
}

func (h *Handler) publish(kind string, data any) {
	if h.broker != nil {
		h.broker.Publish(sse.Event{Type: kind, Data: data})
	}
}

// dateParam reads an optional YYYY-MM-DD query value, defaulting to today.
func (h *Handler) dateParam(r *http.Request, key string) (string, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return h.sess.Today(), true
	}
	return v, utils.ValidateDateFormat(v)
}

func windowFor(rangeName string) (int, bool) {
	switch rangeName {
	case "", "weekly":
		return stats.Weekly, true
	case "monthly":
		return stats.Monthly, true
	}
	return 0, false
}

type catalogResponse struct {
	Version    string                `json:"version"`
	Categories []models.CategoryInfo `json:"categories"`
	Activities []models.Activity     `json:"activities"`
}

// Catalog handles GET /api/catalog.
func (h *Handler) Catalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, catalogResponse{
		Version:    catalog.Version,
		Categories: catalog.Categories(),
		Activities: catalog.All(),
	})
}

// User handles GET /api/user.
func (h *Handler) User(w http.ResponseWriter, _ *http.Request) {
	u, err := h.sess.User()
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// SelectActivities handles PUT /api/user/activities.
func (h *Handler) SelectActivities(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.sess.SelectActivities(req.IDs); err != nil {
		writeSessionError(w, err)
		return
	}
	h.User(w, r)
}

type statsResponse struct {
	Date       string                  `json:"date"`
	Completed  int                     `json:"completed"`
	Percentage int                     `json:"percentage"`
	Summary    stats.SummaryStats      `json:"summary"`
	Categories []stats.CategoryShare   `json:"categories"`
	Series     []stats.SeriesPoint     `json:"series"`
	Focus      stats.ProductivityStats `json:"focus"`
}

// Stats handles GET /api/stats?range=weekly|monthly&end=YYYY-MM-DD.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	window, ok := windowFor(r.URL.Query().Get("range"))
	if !ok {
		writeError(w, http.StatusBadRequest, "range must be weekly or monthly")
		return
	}
	end, ok := h.dateParam(r, "end")
	if !ok {
		writeError(w, http.StatusBadRequest, "end must be YYYY-MM-DD")
		return
	}
	p, err := h.sess.Snapshot()
	if err != nil {
		writeSessionError(w, err)
		return
	}
	selected := p.User.SelectedActivityIDs
	series, err := stats.TimeSeries(p.History, selected, end, window)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	focus, err := stats.Productivity(p.History, selected, end)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	day := p.History.Day(end)
	writeJSON(w, http.StatusOK, statsResponse{
		Date:       end,
		Completed:  stats.CompletedCount(day, selected),
		Percentage: stats.CompletionPercentage(day, selected),
		Summary:    stats.Summary(p.History, selected),
		Categories: stats.CategoryMix(p.History, selected, stats.DateRange{From: series[0].Date, To: end}),
		Series:     series,
		Focus:      focus,
	})
}

// Streaks handles GET /api/streaks.
func (h *Handler) Streaks(w http.ResponseWriter, r *http.Request) {
	today, ok := h.dateParam(r, "today")
	if !ok {
		writeError(w, http.StatusBadRequest, "today must be YYYY-MM-DD")
		return
	}
	p, err := h.sess.Snapshot()
	if err != nil {
		writeSessionError(w, err)
		return
	}
	info, err := stats.Streaks(p.History, p.User.SelectedActivityIDs, today)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// Series handles GET /api/series?window=N&end=YYYY-MM-DD.
func (h *Handler) Series(w http.ResponseWriter, r *http.Request) {
	window := stats.Weekly
	if v := r.URL.Query().Get("window"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 366 {
			writeError(w, http.StatusBadRequest, "window must be between 1 and 366")
			return
		}
		window = n
	}
	end, ok := h.dateParam(r, "end")
	if !ok {
		writeError(w, http.StatusBadRequest, "end must be YYYY-MM-DD")
		return
	}
	p, err := h.sess.Snapshot()
	if err != nil {
		writeSessionError(w, err)
		return
	}
	series, err := stats.TimeSeries(p.History, p.User.SelectedActivityIDs, end, window)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, series)
}

type dayResponse struct {
	Date       string             `json:"date"`
	Progress   models.DayProgress `json:"progress"`
	Completed  int                `json:"completed"`
	Percentage int                `json:"percentage"`
}

func (h *Handler) dayBody(date string) (dayResponse, error) {
	day, err := h.sess.GetDay(date)
	if err != nil {
		return dayResponse{}, err
	}
	u, err := h.sess.User()
	if err != nil {
		return dayResponse{}, err
	}
	return dayResponse{
		Date:       date,
		Progress:   day,
		Completed:  stats.CompletedCount(day, u.SelectedActivityIDs),
		Percentage: stats.CompletionPercentage(day, u.SelectedActivityIDs),
	}, nil
}

// GetDay handles GET /api/history/{date}.
func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if !utils.ValidateDateFormat(date) {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	body, err := h.dayBody(date)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

// RecordCompletion handles PUT /api/history/{date}/{activity} with
// {"completed": bool}.
func (h *Handler) RecordCompletion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Completed *bool `json:"completed"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Completed == nil {
		writeError(w, http.StatusBadRequest, "completed is required")
		return
	}
	date, activity := chi.URLParam(r, "date"), chi.URLParam(r, "activity")
	if err := h.sess.RecordCompletion(date, activity, *req.Completed); err != nil {
		writeSessionError(w, err)
		return
	}
	body, err := h.dayBody(date)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	h.publish(sse.EventHistory, body)
	writeJSON(w, http.StatusOK, body)
}

// ListNotes handles GET /api/notes.
func (h *Handler) ListNotes(w http.ResponseWriter, _ *http.Request) {
	notes, err := h.sess.Notes()
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

type noteRequest struct {
	Title     string            `json:"title"`
	Text      string            `json:"text"`
	DueTime   time.Time         `json:"dueTime"`
	Priority  models.Priority   `json:"priority"`
	Recurring models.Recurrence `json:"recurring"`
}

// CreateNote handles POST /api/notes.
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	n, err := h.sess.AddNote(session.NoteInput(req))
	if err != nil {
		writeSessionError(w, err)
		return
	}
	h.publish(sse.EventNotes, map[string]string{"id": n.ID, "action": "created"})
	writeJSON(w, http.StatusCreated, n)
}

// GetNote handles GET /api/notes/{id}.
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	n, err := h.sess.Note(chi.URLParam(r, "id"))
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// ToggleNote handles POST /api/notes/{id}/toggle.
func (h *Handler) ToggleNote(w http.ResponseWriter, r *http.Request) {
	n, err := h.sess.ToggleNote(chi.URLParam(r, "id"))
	if err != nil {
		writeSessionError(w, err)
		return
	}
	h.publish(sse.EventNotes, map[string]string{"id": n.ID, "action": "toggled"})
	writeJSON(w, http.StatusOK, n)
}

// SnoozeNote handles POST /api/notes/{id}/snooze with {"minutes": n}.
func (h *Handler) SnoozeNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Minutes int `json:"minutes"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Minutes <= 0 {
		writeError(w, http.StatusBadRequest, "minutes must be positive")
		return
	}
	n, err := h.sess.SnoozeNote(chi.URLParam(r, "id"), req.Minutes)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	h.publish(sse.EventNotes, map[string]string{"id": n.ID, "action": "snoozed"})
	writeJSON(w, http.StatusOK, n)
}

// DeleteNote handles DELETE /api/notes/{id}.
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.sess.DeleteNote(id); err != nil {
		writeSessionError(w, err)
		return
	}
	h.publish(sse.EventNotes, map[string]string{"id": id, "action": "deleted"})
	w.WriteHeader(http.StatusNoContent)
}
