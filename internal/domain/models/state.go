package models

import "time"

// AppState is the full persisted entity graph. One snapshot of it is the
// unit of save/load and of backup/restore. Transient UI flags (dirty,
// authenticated, active tab) live on the store, outside the snapshot.
type AppState struct {
	CompanyInfo       CompanyInfo         `json:"companyInfo"`
	Ducks             []Duck              `json:"ducks"`
	DailyProduction   []DailyProduction   `json:"dailyProduction"`
	WeeklyProduction  []WeeklyProduction  `json:"weeklyProduction"`
	MonthlyProduction []MonthlyProduction `json:"monthlyProduction"`
	Feeds             []Feed              `json:"feeds"`
	Transactions      []Transaction       `json:"transactions"`
	DeathRecords      []DeathRecord       `json:"deathRecords"`
	LastStockUpdate   time.Time           `json:"lastStockUpdate"`
}

// DefaultState returns a fresh empty state graph.
func DefaultState() AppState {
	return AppState{
		Ducks:             []Duck{},
		DailyProduction:   []DailyProduction{},
		WeeklyProduction:  []WeeklyProduction{},
		MonthlyProduction: []MonthlyProduction{},
		Feeds:             []Feed{},
		Transactions:      []Transaction{},
		DeathRecords:      []DeathRecord{},
	}
}
