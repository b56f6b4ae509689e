package store

import (
	"time"

	"github.com/quackworks/duckfarm/internal/domain/derive"
	"github.com/quackworks/duckfarm/internal/domain/models"
)

// DuckInput carries the caller-supplied fields for a new cage row. Derived
// fields are computed here, never accepted from the caller.
type DuckInput struct {
	Cage       int
	Quantity   int
	Deaths     int
	EntryDate  time.Time
	CageLength float64
	CageWidth  float64
	CageSystem models.CageSystem
}

// DuckPatch is a partial update; nil fields are left untouched. The derived
// triplet is recomputed regardless of which fields change.
type DuckPatch struct {
	Cage       *int
	Quantity   *int
	Deaths     *int
	EntryDate  *time.Time
	CageLength *float64
	CageWidth  *float64
	CageSystem *models.CageSystem
}

// AddDuck creates a cage row with a fresh id and fully derived fields.
func (s *Store) AddDuck(input DuckInput) models.Duck {
	s.mu.Lock()
	defer s.mu.Unlock()

	duck := models.Duck{
		ID:         s.newID(),
		Cage:       input.Cage,
		Quantity:   input.Quantity,
		Deaths:     input.Deaths,
		EntryDate:  input.EntryDate,
		CageLength: input.CageLength,
		CageWidth:  input.CageWidth,
		CageSystem: input.CageSystem,
	}
	derive.RefreshDuck(&duck, s.now())

	s.state.Ducks = append(s.state.Ducks, duck)
	s.markDirtyLocked()
	return duck
}

// UpdateDuck merges the patch onto the row and recomputes AgeMonths, Status
// and CageSize from the resulting entry date and dimensions, even when those
// inputs were not part of the patch.
func (s *Store) UpdateDuck(id string, patch DuckPatch) (models.Duck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Ducks {
		if s.state.Ducks[i].ID != id {
			continue
		}

		duck := &s.state.Ducks[i]
		if patch.Cage != nil {
			duck.Cage = *patch.Cage
		}
		if patch.Quantity != nil {
			duck.Quantity = *patch.Quantity
		}
		if patch.Deaths != nil {
			duck.Deaths = *patch.Deaths
		}
		if patch.EntryDate != nil {
			duck.EntryDate = *patch.EntryDate
		}
		if patch.CageLength != nil {
			duck.CageLength = *patch.CageLength
		}
		if patch.CageWidth != nil {
			duck.CageWidth = *patch.CageWidth
		}
		if patch.CageSystem != nil {
			duck.CageSystem = *patch.CageSystem
		}
		derive.RefreshDuck(duck, s.now())

		s.markDirtyLocked()
		return *duck, nil
	}

	return models.Duck{}, ErrNotFound
}

// RemoveDuck deletes the row and cascades deletion of death records that
// reference the same cage number. Cage numbers are assumed unique per active
// row; duplicates would widen the cascade.
func (s *Store) RemoveDuck(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Ducks {
		if s.state.Ducks[i].ID != id {
			continue
		}
		cage := s.state.Ducks[i].Cage
		s.state.Ducks = append(s.state.Ducks[:i], s.state.Ducks[i+1:]...)

		kept := s.state.DeathRecords[:0]
		for _, rec := range s.state.DeathRecords {
			if rec.Cage != cage {
				kept = append(kept, rec)
			}
		}
		s.state.DeathRecords = kept

		s.markDirtyLocked()
		return nil
	}
	return ErrNotFound
}

// ResetDuck zeroes quantity and deaths in place, preserving the row and its
// death history.
func (s *Store) ResetDuck(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Ducks {
		if s.state.Ducks[i].ID != id {
			continue
		}
		s.state.Ducks[i].Quantity = 0
		s.state.Ducks[i].Deaths = 0
		derive.RefreshDuck(&s.state.Ducks[i], s.now())
		s.markDirtyLocked()
		return nil
	}
	return ErrNotFound
}

// TotalDuckQuantity sums alive birds across all cages.
func (s *Store) TotalDuckQuantity() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalDuckQuantityLocked()
}

func (s *Store) totalDuckQuantityLocked() int {
	var total int
	for _, d := range s.state.Ducks {
		total += d.Quantity
	}
	return total
}

// UpdateCompanyInfo replaces the profile wholesale.
func (s *Store) UpdateCompanyInfo(info models.CompanyInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CompanyInfo = info
	s.markDirtyLocked()
}

// DailyByDate looks up the record for a calendar day, ignoring time of day.
func (s *Store) DailyByDate(date time.Time) (models.DailyProduction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.state.DailyProduction {
		if derive.SameDay(rec.Date, date) {
			return rec, true
		}
	}
	return models.DailyProduction{}, false
}

// AddDailyProduction records a day's per-cage counts. TotalEggs is the sum
// of the submitted map; productivity is computed against the present-day
// duck population, not the population at any historical moment. Callers are
// responsible for upsert semantics: look up by date first, then add or
// update.
func (s *Store) AddDailyProduction(date time.Time, cageEggs map[string]int) models.DailyProduction {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := models.DailyProduction{
		ID:       s.newID(),
		Date:     date,
		CageEggs: cageEggs,
	}
	rec.TotalEggs = derive.SumCageEggs(cageEggs)
	rec.Productivity = derive.Productivity(rec.TotalEggs, s.totalDuckQuantityLocked())

	s.state.DailyProduction = append(s.state.DailyProduction, rec)
	s.markDirtyLocked()
	return rec
}

// UpdateDailyProduction replaces the counts on the record matching the given
// calendar day.
func (s *Store) UpdateDailyProduction(date time.Time, cageEggs map[string]int) (models.DailyProduction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.DailyProduction {
		rec := &s.state.DailyProduction[i]
		if !derive.SameDay(rec.Date, date) {
			continue
		}
		rec.CageEggs = cageEggs
		rec.TotalEggs = derive.SumCageEggs(cageEggs)
		rec.Productivity = derive.Productivity(rec.TotalEggs, s.totalDuckQuantityLocked())
		s.markDirtyLocked()
		return *rec, nil
	}
	return models.DailyProduction{}, ErrNotFound
}

// WeeklyInput carries a new sale/period entry.
type WeeklyInput struct {
	StartDate   time.Time
	EndDate     time.Time
	Buyer       string
	GradeA      models.EggGrade
	GradeB      models.EggGrade
	GradeC      models.EggGrade
	Consumption models.EggGrade
}

// WeeklyPatch is a partial update to a weekly entry.
type WeeklyPatch struct {
	StartDate   *time.Time
	EndDate     *time.Time
	Buyer       *string
	GradeA      *models.EggGrade
	GradeB      *models.EggGrade
	GradeC      *models.EggGrade
	Consumption *models.EggGrade
}

// AddWeeklyProduction appends a sale entry and rebuilds the monthly
// aggregate from the full weekly collection.
func (s *Store) AddWeeklyProduction(input WeeklyInput) models.WeeklyProduction {
	s.mu.Lock()
	defer s.mu.Unlock()

	week := models.WeeklyProduction{
		ID:          s.newID(),
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Buyer:       input.Buyer,
		GradeA:      input.GradeA,
		GradeB:      input.GradeB,
		GradeC:      input.GradeC,
		Consumption: input.Consumption,
	}
	derive.RefreshWeekly(&week)

	s.state.WeeklyProduction = append(s.state.WeeklyProduction, week)
	s.rebuildMonthlyLocked()
	s.markDirtyLocked()
	return week
}

// UpdateWeeklyProduction merges the patch, recomputes the entry's totals and
// rebuilds the monthly aggregate.
func (s *Store) UpdateWeeklyProduction(id string, patch WeeklyPatch) (models.WeeklyProduction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.WeeklyProduction {
		if s.state.WeeklyProduction[i].ID != id {
			continue
		}

		week := &s.state.WeeklyProduction[i]
		if patch.StartDate != nil {
			week.StartDate = *patch.StartDate
		}
		if patch.EndDate != nil {
			week.EndDate = *patch.EndDate
		}
		if patch.Buyer != nil {
			week.Buyer = *patch.Buyer
		}
		if patch.GradeA != nil {
			week.GradeA = *patch.GradeA
		}
		if patch.GradeB != nil {
			week.GradeB = *patch.GradeB
		}
		if patch.GradeC != nil {
			week.GradeC = *patch.GradeC
		}
		if patch.Consumption != nil {
			week.Consumption = *patch.Consumption
		}
		derive.RefreshWeekly(week)

		s.rebuildMonthlyLocked()
		s.markDirtyLocked()
		return *week, nil
	}
	return models.WeeklyProduction{}, ErrNotFound
}

// RemoveWeeklyProduction deletes a sale entry and rebuilds the monthly
// aggregate; a month whose only entry is removed disappears entirely.
func (s *Store) RemoveWeeklyProduction(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.WeeklyProduction {
		if s.state.WeeklyProduction[i].ID != id {
			continue
		}
		s.state.WeeklyProduction = append(s.state.WeeklyProduction[:i], s.state.WeeklyProduction[i+1:]...)
		s.rebuildMonthlyLocked()
		s.markDirtyLocked()
		return nil
	}
	return ErrNotFound
}

// The monthly collection is always recomputed in full rather than patched
// incrementally, so arbitrary edits and deletes cannot make it drift.
func (s *Store) rebuildMonthlyLocked() {
	s.state.MonthlyProduction = derive.RebuildMonthly(s.state.WeeklyProduction)
}

// FeedInput carries a new feed inventory row.
type FeedInput struct {
	Name          string
	Supplier      string
	Stock         float64
	PricePerBag   float64
	FeedingSchema float64
}

// FeedPatch is a partial update to a feed row.
type FeedPatch struct {
	Name          *string
	Supplier      *string
	Stock         *float64
	PricePerBag   *float64
	FeedingSchema *float64
}

// AddFeed creates an inventory row, deriving the per-kg price from the bag
// price and stamping the update time.
func (s *Store) AddFeed(input FeedInput) models.Feed {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	feed := models.Feed{
		ID:            s.newID(),
		Name:          input.Name,
		Supplier:      input.Supplier,
		Stock:         input.Stock,
		PricePerBag:   input.PricePerBag,
		PricePerKg:    derive.PricePerKg(input.PricePerBag),
		FeedingSchema: input.FeedingSchema,
		UpdatedAt:     now,
	}

	s.state.Feeds = append(s.state.Feeds, feed)
	s.state.LastStockUpdate = now
	s.markDirtyLocked()
	return feed
}

// UpdateFeed merges the patch and re-derives the per-kg price.
func (s *Store) UpdateFeed(id string, patch FeedPatch) (models.Feed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Feeds {
		if s.state.Feeds[i].ID != id {
			continue
		}

		feed := &s.state.Feeds[i]
		if patch.Name != nil {
			feed.Name = *patch.Name
		}
		if patch.Supplier != nil {
			feed.Supplier = *patch.Supplier
		}
		if patch.Stock != nil {
			feed.Stock = *patch.Stock
		}
		if patch.PricePerBag != nil {
			feed.PricePerBag = *patch.PricePerBag
		}
		if patch.FeedingSchema != nil {
			feed.FeedingSchema = *patch.FeedingSchema
		}
		feed.PricePerKg = derive.PricePerKg(feed.PricePerBag)
		feed.UpdatedAt = s.now()
		s.state.LastStockUpdate = feed.UpdatedAt

		s.markDirtyLocked()
		return *feed, nil
	}
	return models.Feed{}, ErrNotFound
}

// RemoveFeed deletes an inventory row.
func (s *Store) RemoveFeed(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Feeds {
		if s.state.Feeds[i].ID != id {
			continue
		}
		s.state.Feeds = append(s.state.Feeds[:i], s.state.Feeds[i+1:]...)
		s.markDirtyLocked()
		return nil
	}
	return ErrNotFound
}

// TransactionInput carries a new ledger row.
type TransactionInput struct {
	Date        time.Time
	Description string
	Quantity    float64
	UnitPrice   float64
	Type        models.TransactionType
}

// TransactionPatch is a partial update to a ledger row.
type TransactionPatch struct {
	Date        *time.Time
	Description *string
	Quantity    *float64
	UnitPrice   *float64
	Type        *models.TransactionType
}

// AddTransaction creates a ledger row with the total derived from quantity
// and unit price.
func (s *Store) AddTransaction(input TransactionInput) models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := models.Transaction{
		ID:          s.newID(),
		Date:        input.Date,
		Description: input.Description,
		Quantity:    input.Quantity,
		UnitPrice:   input.UnitPrice,
		Total:       derive.LineTotal(input.Quantity, input.UnitPrice),
		Type:        input.Type,
	}

	s.state.Transactions = append(s.state.Transactions, tx)
	s.markDirtyLocked()
	return tx
}

// UpdateTransaction merges the patch and re-derives the total.
func (s *Store) UpdateTransaction(id string, patch TransactionPatch) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Transactions {
		if s.state.Transactions[i].ID != id {
			continue
		}

		tx := &s.state.Transactions[i]
		if patch.Date != nil {
			tx.Date = *patch.Date
		}
		if patch.Description != nil {
			tx.Description = *patch.Description
		}
		if patch.Quantity != nil {
			tx.Quantity = *patch.Quantity
		}
		if patch.UnitPrice != nil {
			tx.UnitPrice = *patch.UnitPrice
		}
		if patch.Type != nil {
			tx.Type = *patch.Type
		}
		tx.Total = derive.LineTotal(tx.Quantity, tx.UnitPrice)

		s.markDirtyLocked()
		return *tx, nil
	}
	return models.Transaction{}, ErrNotFound
}

// RemoveTransaction deletes a ledger row.
func (s *Store) RemoveTransaction(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Transactions {
		if s.state.Transactions[i].ID != id {
			continue
		}
		s.state.Transactions = append(s.state.Transactions[:i], s.state.Transactions[i+1:]...)
		s.markDirtyLocked()
		return nil
	}
	return ErrNotFound
}

// DeathInput carries a new mortality incident. The record date is stamped
// server-side, never caller-supplied.
type DeathInput struct {
	Cage     int
	Quantity int
	Notes    string
}

// AddDeathRecord logs the incident and increments the matching cage's
// cumulative death counter. Editing or deleting a record later does not
// reverse the increment; the counter is maintained only on this path.
func (s *Store) AddDeathRecord(input DeathInput) models.DeathRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := models.DeathRecord{
		ID:       s.newID(),
		Date:     s.now(),
		Cage:     input.Cage,
		Quantity: input.Quantity,
		Notes:    input.Notes,
	}

	for i := range s.state.Ducks {
		if s.state.Ducks[i].Cage == input.Cage {
			s.state.Ducks[i].Deaths += input.Quantity
			break
		}
	}

	s.state.DeathRecords = append(s.state.DeathRecords, rec)
	s.markDirtyLocked()
	return rec
}

// RemoveDeathRecord deletes the record without adjusting the cage's death
// counter.
func (s *Store) RemoveDeathRecord(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.DeathRecords {
		if s.state.DeathRecords[i].ID != id {
			continue
		}
		s.state.DeathRecords = append(s.state.DeathRecords[:i], s.state.DeathRecords[i+1:]...)
		s.markDirtyLocked()
		return nil
	}
	return ErrNotFound
}
