package models

import "time"

// DuckStatus classifies a cage's flock by age.
type DuckStatus string

const (
	StatusYoung  DuckStatus = "Young"
	StatusLaying DuckStatus = "Laying"
	StatusOld    DuckStatus = "Old"
	StatusCulled DuckStatus = "Culled"
)

// CageSystem enumerates the supported housing systems.
type CageSystem string

const (
	CageSystemBattery   CageSystem = "battery-cage"
	CageSystemFreeRange CageSystem = "free-range"
)

// Duck represents one cage holding a batch of birds, not an individual
// animal. AgeMonths, Status and CageSize are derived from EntryDate and the
// cage dimensions and are recomputed on every mutation, never edited
// directly.
type Duck struct {
	ID         string     `json:"id"`
	Cage       int        `json:"cage"`
	Quantity   int        `json:"quantity"`
	Deaths     int        `json:"deaths"`
	EntryDate  time.Time  `json:"entryDate"`
	AgeMonths  float64    `json:"ageMonths"`
	Status     DuckStatus `json:"status"`
	CageLength float64    `json:"cageLength"` // meters
	CageWidth  float64    `json:"cageWidth"`  // meters
	CageSize   string     `json:"cageSize"`   // display label, e.g. "2 x 1.5 m"
	CageSystem CageSystem `json:"cageSystem"`
}

// DeathRecord logs a mortality incident against a cage. Creating one also
// increments the matching Duck's cumulative Deaths counter.
type DeathRecord struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	Cage     int       `json:"cage"`
	Quantity int       `json:"quantity"`
	Notes    string    `json:"notes,omitempty"`
}
