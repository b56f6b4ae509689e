package models

import "time"

// DailyProduction captures one calendar day's egg collection. At most one
// record exists per date; callers upsert by calendar-day equality.
type DailyProduction struct {
	ID           string         `json:"id"`
	Date         time.Time      `json:"date"`
	CageEggs     map[string]int `json:"cageEggs"` // cage number -> eggs collected
	TotalEggs    int            `json:"totalEggs"`
	Productivity float64        `json:"productivity"` // percent of current population
}

// EggGrade holds the quantity and unit price for one quality tier.
type EggGrade struct {
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// WeeklyProduction is one sale/period entry. Multiple entries may cover
// overlapping periods (one per buyer). TotalEggs and TotalValue are derived
// from the four grades on every write.
type WeeklyProduction struct {
	ID          string    `json:"id"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Buyer       string    `json:"buyer"`
	GradeA      EggGrade  `json:"gradeA"`
	GradeB      EggGrade  `json:"gradeB"`
	GradeC      EggGrade  `json:"gradeC"`
	Consumption EggGrade  `json:"consumption"`
	TotalEggs   int       `json:"totalEggs"`
	TotalValue  float64   `json:"totalValue"`
}

// MonthlyProduction is a pure aggregate over the weekly collection, grouped
// by the calendar month of each entry's start date. It is rebuilt in full on
// every weekly mutation and on every load; it is never authoritative.
type MonthlyProduction struct {
	Month       string  `json:"month"` // "2006-01"
	GradeA      int     `json:"gradeA"`
	GradeB      int     `json:"gradeB"`
	GradeC      int     `json:"gradeC"`
	Consumption int     `json:"consumption"`
	TotalEggs   int     `json:"totalEggs"`
	TotalValue  float64 `json:"totalValue"`
}
