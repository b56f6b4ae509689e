// Package derive holds the pure derivation functions shared by the state
// store: flock age and status, price and total recomputation, productivity,
// and the monthly production aggregate.
package derive

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/quackworks/duckfarm/internal/domain/models"
)

// daysPerMonth is the average Gregorian month length used for age math.
const daysPerMonth = 30.44

// Age status thresholds in months.
const (
	youngMaxMonths  = 6.0
	layingMaxMonths = 13.0
	oldMaxMonths    = 19.0
)

const monthKeyLayout = "2006-01"

// AgeMonths computes a flock's age in months from its entry date, rounded to
// one decimal. A future entry date or zero time yields 0.
func AgeMonths(entryDate, now time.Time) float64 {
	if entryDate.IsZero() || !entryDate.Before(now) {
		return 0
	}
	days := now.Sub(entryDate).Hours() / 24
	return round1(days / daysPerMonth)
}

// StatusForAge maps an age in months onto the flock lifecycle status.
func StatusForAge(ageMonths float64) models.DuckStatus {
	switch {
	case ageMonths < youngMaxMonths:
		return models.StatusYoung
	case ageMonths < layingMaxMonths:
		return models.StatusLaying
	case ageMonths < oldMaxMonths:
		return models.StatusOld
	default:
		return models.StatusCulled
	}
}

// CageSizeLabel renders the display string for a cage's dimensions. Either
// dimension being zero yields an empty label.
func CageSizeLabel(length, width float64) string {
	if length <= 0 || width <= 0 {
		return ""
	}
	return fmt.Sprintf("%g x %g m", length, width)
}

// RefreshDuck recomputes the derived triplet (AgeMonths, Status, CageSize)
// from the row's current entry date and dimensions.
func RefreshDuck(d *models.Duck, now time.Time) {
	d.AgeMonths = AgeMonths(d.EntryDate, now)
	d.Status = StatusForAge(d.AgeMonths)
	d.CageSize = CageSizeLabel(d.CageLength, d.CageWidth)
}

// PricePerKg derives the per-kilogram feed price from the bag price.
func PricePerKg(pricePerBag float64) float64 {
	if pricePerBag <= 0 {
		return 0
	}
	return pricePerBag / models.BagWeightKg
}

// LineTotal derives a ledger row total.
func LineTotal(quantity, unitPrice float64) float64 {
	return quantity * unitPrice
}

// Productivity expresses eggs collected as a percentage of the current total
// duck population, rounded to one decimal. Zero population yields 0.
func Productivity(totalEggs, totalDucks int) float64 {
	if totalDucks <= 0 {
		return 0
	}
	return round1(float64(totalEggs) / float64(totalDucks) * 100)
}

// WeeklyTotals derives the egg count and sale value across all four grades.
func WeeklyTotals(w models.WeeklyProduction) (totalEggs int, totalValue float64) {
	for _, g := range []models.EggGrade{w.GradeA, w.GradeB, w.GradeC, w.Consumption} {
		totalEggs += g.Quantity
		totalValue += float64(g.Quantity) * g.Price
	}
	return totalEggs, totalValue
}

// RefreshWeekly recomputes the derived totals on a weekly entry.
func RefreshWeekly(w *models.WeeklyProduction) {
	w.TotalEggs, w.TotalValue = WeeklyTotals(*w)
}

// RebuildMonthly recomputes the monthly aggregate from the entire weekly
// collection, grouped by the calendar month of each entry's start date and
// sorted by month key. The result is a deterministic function of its input;
// months without any weekly entry simply do not appear.
func RebuildMonthly(weeks []models.WeeklyProduction) []models.MonthlyProduction {
	byMonth := make(map[string]*models.MonthlyProduction)

	for _, w := range weeks {
		key := w.StartDate.Format(monthKeyLayout)
		row, ok := byMonth[key]
		if !ok {
			row = &models.MonthlyProduction{Month: key}
			byMonth[key] = row
		}
		row.GradeA += w.GradeA.Quantity
		row.GradeB += w.GradeB.Quantity
		row.GradeC += w.GradeC.Quantity
		row.Consumption += w.Consumption.Quantity

		eggs, value := WeeklyTotals(w)
		row.TotalEggs += eggs
		row.TotalValue += value
	}

	months := make([]models.MonthlyProduction, 0, len(byMonth))
	for _, row := range byMonth {
		months = append(months, *row)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Month < months[j].Month })

	return months
}

// SameDay reports calendar-day equality, ignoring time of day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// SumCageEggs totals a per-cage egg count map.
func SumCageEggs(cageEggs map[string]int) int {
	var total int
	for _, n := range cageEggs {
		total += n
	}
	return total
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
