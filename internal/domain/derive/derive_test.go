package derive

import (
	"reflect"
	"testing"
	"time"

	"github.com/quackworks/duckfarm/internal/domain/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAgeMonths(t *testing.T) {
	now := date(2024, time.July, 1)

	tests := []struct {
		name     string
		entry    time.Time
		expected float64
	}{
		{name: "about one month", entry: date(2024, time.June, 1), expected: 1.0},
		{name: "about six months", entry: date(2024, time.January, 1), expected: 6.0},
		{name: "zero time", entry: time.Time{}, expected: 0},
		{name: "future entry date", entry: date(2024, time.August, 1), expected: 0},
		{name: "same instant", entry: now, expected: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := AgeMonths(tc.entry, now); got != tc.expected {
				t.Errorf("AgeMonths(%v) = %v, want %v", tc.entry, got, tc.expected)
			}
		})
	}
}

func TestStatusForAge(t *testing.T) {
	tests := []struct {
		age      float64
		expected models.DuckStatus
	}{
		{0, models.StatusYoung},
		{5.9, models.StatusYoung},
		{6, models.StatusLaying},
		{12.9, models.StatusLaying},
		{13, models.StatusOld},
		{18.9, models.StatusOld},
		{19, models.StatusCulled},
		{30, models.StatusCulled},
	}

	for _, tc := range tests {
		if got := StatusForAge(tc.age); got != tc.expected {
			t.Errorf("StatusForAge(%v) = %v, want %v", tc.age, got, tc.expected)
		}
	}
}

func TestCageSizeLabel(t *testing.T) {
	if got := CageSizeLabel(2, 1.5); got != "2 x 1.5 m" {
		t.Errorf("CageSizeLabel(2, 1.5) = %q", got)
	}
	if got := CageSizeLabel(0, 1.5); got != "" {
		t.Errorf("zero length should yield empty label, got %q", got)
	}
}

func TestPricePerKg(t *testing.T) {
	if got := PricePerKg(350000); got != 7000 {
		t.Errorf("PricePerKg(350000) = %v, want 7000", got)
	}
	if got := PricePerKg(0); got != 0 {
		t.Errorf("PricePerKg(0) = %v, want 0", got)
	}
}

func TestProductivity(t *testing.T) {
	tests := []struct {
		eggs     int
		ducks    int
		expected float64
	}{
		{80, 100, 80},
		{0, 100, 0},
		{50, 0, 0},
		{1, 3, 33.3},
	}

	for _, tc := range tests {
		if got := Productivity(tc.eggs, tc.ducks); got != tc.expected {
			t.Errorf("Productivity(%d, %d) = %v, want %v", tc.eggs, tc.ducks, got, tc.expected)
		}
	}
}

func TestWeeklyTotals(t *testing.T) {
	week := models.WeeklyProduction{
		GradeA:      models.EggGrade{Quantity: 100, Price: 2500},
		GradeB:      models.EggGrade{Quantity: 50, Price: 2000},
		GradeC:      models.EggGrade{Quantity: 20, Price: 1500},
		Consumption: models.EggGrade{Quantity: 10, Price: 0},
	}

	eggs, value := WeeklyTotals(week)
	if eggs != 180 {
		t.Errorf("totalEggs = %d, want 180", eggs)
	}
	if value != 100*2500+50*2000+20*1500 {
		t.Errorf("totalValue = %v", value)
	}
}

func weekEntry(start time.Time, gradeA, gradeB int) models.WeeklyProduction {
	return models.WeeklyProduction{
		StartDate: start,
		GradeA:    models.EggGrade{Quantity: gradeA, Price: 2000},
		GradeB:    models.EggGrade{Quantity: gradeB, Price: 1500},
	}
}

func TestRebuildMonthly(t *testing.T) {
	weeks := []models.WeeklyProduction{
		weekEntry(date(2024, time.May, 1), 100, 50),
		weekEntry(date(2024, time.May, 20), 80, 40),
		weekEntry(date(2024, time.June, 3), 60, 30),
	}

	months := RebuildMonthly(weeks)
	if len(months) != 2 {
		t.Fatalf("expected 2 months, got %d", len(months))
	}

	may := months[0]
	if may.Month != "2024-05" {
		t.Fatalf("months not sorted, first = %s", may.Month)
	}
	if may.GradeA != 180 || may.GradeB != 90 {
		t.Errorf("may grades = A:%d B:%d, want A:180 B:90", may.GradeA, may.GradeB)
	}
	if may.TotalEggs != 270 {
		t.Errorf("may totalEggs = %d, want 270", may.TotalEggs)
	}

	if months[1].Month != "2024-06" || months[1].TotalEggs != 90 {
		t.Errorf("june = %+v", months[1])
	}
}

func TestRebuildMonthlyIdempotent(t *testing.T) {
	weeks := []models.WeeklyProduction{
		weekEntry(date(2024, time.May, 1), 100, 50),
		weekEntry(date(2024, time.June, 3), 60, 30),
	}

	first := RebuildMonthly(weeks)
	second := RebuildMonthly(weeks)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("rebuild is not deterministic:\n%+v\n%+v", first, second)
	}
}

func TestRebuildMonthlyRemovesEmptyMonth(t *testing.T) {
	weeks := []models.WeeklyProduction{
		weekEntry(date(2024, time.May, 1), 100, 50),
		weekEntry(date(2024, time.June, 3), 60, 30),
	}

	// Drop the only June entry; the month must disappear, not linger with
	// zero values.
	months := RebuildMonthly(weeks[:1])
	if len(months) != 1 || months[0].Month != "2024-05" {
		t.Errorf("expected only 2024-05, got %+v", months)
	}

	if got := RebuildMonthly(nil); len(got) != 0 {
		t.Errorf("empty weekly collection should yield no months, got %+v", got)
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, time.May, 1, 8, 30, 0, 0, time.UTC)
	b := time.Date(2024, time.May, 1, 22, 0, 0, 0, time.UTC)
	if !SameDay(a, b) {
		t.Error("same calendar day with different times should match")
	}
	if SameDay(a, date(2024, time.May, 2)) {
		t.Error("different days should not match")
	}
}

func TestSumCageEggs(t *testing.T) {
	if got := SumCageEggs(map[string]int{"1": 30, "2": 50}); got != 80 {
		t.Errorf("SumCageEggs = %d, want 80", got)
	}
	if got := SumCageEggs(nil); got != 0 {
		t.Errorf("SumCageEggs(nil) = %d, want 0", got)
	}
}
