// Package report renders the insights view as a PDF document.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/julianstephens/pulse/internal/constants"
	"github.com/julianstephens/pulse/internal/models"
	"github.com/julianstephens/pulse/internal/stats"
)

// Insights is everything the report shows, computed for one account.
type Insights struct {
	Name         string
	Today        string
	Window       int
	Summary      stats.SummaryStats
	Streaks      stats.StreakInfo
	Productivity stats.ProductivityStats
	Categories   []stats.CategoryShare
	Series       []stats.SeriesPoint
	GeneratedAt  time.Time
}

// Build computes the insights for the window days ending today.
func Build(user models.User, history models.HistoryData, today string, window int) (Insights, error) {
	selected := user.SelectedActivityIDs
	streaks, err := stats.Streaks(history, selected, today)
	if err != nil {
		return Insights{}, err
	}
	prod, err := stats.Productivity(history, selected, today)
	if err != nil {
		return Insights{}, err
	}
	series, err := stats.TimeSeries(history, selected, today, window)
	if err != nil {
		return Insights{}, err
	}
	return Insights{
		Name:         user.Name,
		Today:        today,
		Window:       window,
		Summary:      stats.Summary(history, selected),
		Streaks:      streaks,
		Productivity: prod,
		Categories:   stats.CategoryMix(history, selected, stats.DateRange{From: series[0].Date, To: today}),
		Series:       series,
		GeneratedAt:  time.Now(),
	}, nil
}

// Render writes the PDF for ins to w.
func Render(w io.Writer, ins Insights) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Pulse insights", false)
	pdf.SetAuthor(ins.Name, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, latin1(fmt.Sprintf("Pulse insights for %s", ins.Name)))
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(110, 110, 110)
	pdf.Cell(0, 6, fmt.Sprintf("%d days ending %s, generated %s", ins.Window, ins.Today, ins.GeneratedAt.Format("2006-01-02 15:04")))
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(12)

	section(pdf, "Summary")
	rows := [][2]string{
		{"Total completions", strconv.Itoa(ins.Summary.TotalCompletions)},
		{"Average per day", strconv.FormatFloat(ins.Summary.AveragePerDay, 'f', 1, 64)},
		{"Days tracked", strconv.Itoa(ins.Summary.DaysTracked)},
		{"Efficiency", fmt.Sprintf("%d%%", ins.Summary.Efficiency)},
		{"Current streak", fmt.Sprintf("%d days", ins.Streaks.Current)},
		{"Longest streak", fmt.Sprintf("%d days", ins.Streaks.Longest)},
		{"Focus today", ins.Productivity.TodayTime},
		{"Focus this week", ins.Productivity.WeeklyTime},
	}
	pdf.SetFont("Helvetica", "", 11)
	for _, r := range rows {
		pdf.CellFormat(60, 7, r[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, r[1], "", 1, "L", false, 0, "")
	}
	pdf.SetFont("Helvetica", "I", 11)
	pdf.CellFormat(0, 8, latin1(ins.Productivity.Motivation), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	section(pdf, "Category mix")
	pdf.SetFont("Helvetica", "", 11)
	if len(ins.Categories) == 0 {
		pdf.Cell(0, 7, "No completions in this period.")
		pdf.Ln(9)
	}
	for _, c := range ins.Categories {
		r, g, b := hexRGB(c.Color)
		pdf.CellFormat(40, 7, c.Label, "", 0, "L", false, 0, "")
		pdf.SetFillColor(r, g, b)
		pdf.Rect(pdf.GetX(), pdf.GetY()+1.5, float64(c.Percentage)*1.0, 4, "F")
		pdf.SetX(pdf.GetX() + 105)
		pdf.CellFormat(0, 7, fmt.Sprintf("%d (%d%%)", c.Count, c.Percentage), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	section(pdf, "Daily completions")
	seriesChart(pdf, ins.Series)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

func section(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
}

func seriesChart(pdf *fpdf.Fpdf, series []stats.SeriesPoint) {
	const height = 50.0
	peak := 1
	for _, p := range series {
		peak = max(peak, p.Count)
	}
	left, _, right, _ := pdf.GetMargins()
	pageW, _ := pdf.GetPageSize()
	width := pageW - left - right
	slot := width / float64(max(1, len(series)))
	top := pdf.GetY()
	base := top + height

	pdf.SetFillColor(79, 70, 229)
	pdf.SetFont("Helvetica", "", 6)
	for i, p := range series {
		x := left + float64(i)*slot
		h := height * float64(p.Count) / float64(peak)
		if h > 0 {
			pdf.Rect(x+slot*0.15, base-h, slot*0.7, h, "F")
		}
		if len(series) <= constants.WeeklyWindow || i%5 == 0 {
			pdf.Text(x, base+4, p.Label)
		}
	}
	pdf.SetDrawColor(180, 180, 180)
	pdf.Line(left, base, left+width, base)
	pdf.SetY(base + 8)
}

// hexRGB parses #rrggbb, falling back to gray.
func hexRGB(hex string) (int, int, int) {
	v, err := strconv.ParseUint(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil || len(hex) != 7 {
		return 128, 128, 128
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}

// latin1 drops runes the core PDF fonts cannot draw.
func latin1(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < 0x80 {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// WriteFile renders ins into dir as pulse-insights-<date>.pdf.
func WriteFile(dir string, ins Insights) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}
	path := filepath.Join(dir, constants.ReportFilePrefix+ins.Today+".pdf")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report: %w", err)
	}
	if err := Render(f, ins); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

