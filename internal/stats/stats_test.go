package stats

import (
	"testing"

	"github.com/julianstephens/pulse/internal/models"
)

func TestCompletionPercentage(t *testing.T) {
	day := models.DayProgress{"run": true, "walk": false, "water": true, "ghost": true}
	tests := []struct {
		name     string
		selected []string
		want     int
	}{
		{"empty selection", nil, 0},
		{"all done", []string{"run", "water"}, 100},
		{"two of three", []string{"run", "walk", "water"}, 67},
		{"stale id ignored", []string{"run", "ghost"}, 100},
		{"none done", []string{"gym"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompletionPercentage(day, tt.selected); got != tt.want {
				t.Errorf("CompletionPercentage() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCompletionPercentageNilDay(t *testing.T) {
	if got := CompletionPercentage(nil, []string{"run"}); got != 0 {
		t.Errorf("CompletionPercentage(nil) = %d", got)
	}
}

func TestEfficiency(t *testing.T) {
	h := models.HistoryData{
		"2024-01-01": {"run": true, "water": true},
		"2024-01-02": {"run": true},
		"2024-01-03": {},
	}
	// 3 completions over 3 days × 2 activities
	if got := Efficiency(h, []string{"run", "water"}); got != 50 {
		t.Errorf("Efficiency() = %d, want 50", got)
	}
	if got := Efficiency(models.HistoryData{}, nil); got != 0 {
		t.Errorf("Efficiency(empty) = %d, want 0", got)
	}
}

func TestSummary(t *testing.T) {
	h := models.HistoryData{
		"2024-01-01": {"run": true, "water": true},
		"2024-01-02": {"run": true},
		"2024-01-03": {},
	}
	got := Summary(h, []string{"run", "water"})
	want := SummaryStats{TotalCompletions: 3, AveragePerDay: 1, DaysTracked: 3, Efficiency: 50}
	if got != want {
		t.Errorf("Summary() = %+v, want %+v", got, want)
	}

	empty := Summary(nil, nil)
	if empty.DaysTracked != 1 || empty.TotalCompletions != 0 {
		t.Errorf("Summary(empty) = %+v", empty)
	}
}

func TestCategoryMix(t *testing.T) {
	t.Run("physical only", func(t *testing.T) {
		h := models.HistoryData{
			"2024-01-01": {"run": true, "water": false},
			"2024-01-02": {"gym": true},
		}
		got := CategoryMix(h, []string{"run", "gym", "water"}, DateRange{})
		if len(got) != 1 {
			t.Fatalf("CategoryMix() = %+v, want one entry", got)
		}
		if got[0].Category != models.CategoryPhysical || got[0].Percentage != 100 || got[0].Count != 2 {
			t.Errorf("CategoryMix()[0] = %+v", got[0])
		}
	})

	t.Run("ordered and ranged", func(t *testing.T) {
		h := models.HistoryData{
			"2024-01-01": {"gaming": true, "run": true},
			"2024-01-02": {"water": true, "run": true},
			"2024-02-01": {"dsa": true},
		}
		sel := []string{"gaming", "run", "water", "dsa"}
		got := CategoryMix(h, sel, DateRange{From: "2024-01-01", To: "2024-01-31"})
		if len(got) != 3 {
			t.Fatalf("CategoryMix() = %+v", got)
		}
		wantOrder := []models.Category{models.CategoryPhysical, models.CategoryHealth, models.CategoryFun}
		for i, c := range wantOrder {
			if got[i].Category != c {
				t.Errorf("entry %d = %s, want %s", i, got[i].Category, c)
			}
		}
		if got[0].Percentage != 50 || got[1].Percentage != 25 {
			t.Errorf("percentages = %d/%d", got[0].Percentage, got[1].Percentage)
		}
	})

	t.Run("unselected ignored", func(t *testing.T) {
		h := models.HistoryData{"2024-01-01": {"run": true}}
		if got := CategoryMix(h, nil, DateRange{}); len(got) != 0 {
			t.Errorf("CategoryMix() = %+v", got)
		}
	})
}

func TestTimeSeries(t *testing.T) {
	h := models.HistoryData{
		"2024-02-28": {"run": true},
		"2024-03-01": {"run": true, "water": true},
	}
	got, err := TimeSeries(h, []string{"run", "water"}, "2024-03-01", Weekly)
	if err != nil {
		t.Fatalf("TimeSeries() error = %v", err)
	}
	if len(got) != 7 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0].Date != "2024-02-24" || got[6].Date != "2024-03-01" {
		t.Errorf("window = %s..%s", got[0].Date, got[6].Date)
	}
	if got[4].Date != "2024-02-28" || got[4].Count != 1 {
		t.Errorf("point 4 = %+v", got[4])
	}
	if got[5].Date != "2024-02-29" || got[5].Count != 0 {
		t.Errorf("leap day point = %+v", got[5])
	}
	if got[6].Count != 2 || got[6].Label != "Fri 1" {
		t.Errorf("last point = %+v", got[6])
	}

	monthly, err := TimeSeries(h, nil, "2024-03-01", Monthly)
	if err != nil || len(monthly) != 30 {
		t.Errorf("monthly len = %d, err = %v", len(monthly), err)
	}

	if _, err := TimeSeries(h, nil, "March 1", Weekly); err == nil {
		t.Error("expected error for bad end date")
	}
}
