// Package reporting exports production and finance summaries from the state
// store to a Google Sheet. Exports always rewrite their whole range, mirroring
// how the monthly aggregate itself is rebuilt rather than patched.
package reporting

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/quackworks/duckfarm/internal/domain/models"
	repo "github.com/quackworks/duckfarm/internal/repository/sheets"
	"github.com/quackworks/duckfarm/internal/store"
)

const (
	monthlyRange = "MonthlyProduction!A:G"
	financeRange = "Finance!A:E"
	monthLayout  = "2006-01"
)

// Service exposes spreadsheet exports over the state store.
type Service struct {
	repo   repo.Repository
	store  *store.Store
	logger *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(repository repo.Repository, st *store.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repository, store: st, logger: logger}
}

// ExportMonthlyProduction rewrites the monthly production sheet from the
// current aggregate. Returns the number of data rows written.
func (s *Service) ExportMonthlyProduction(ctx context.Context) (int, error) {
	months := s.store.State().MonthlyProduction

	if err := s.repo.ClearRange(ctx, monthlyRange); err != nil {
		return 0, fmt.Errorf("clear monthly sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Month", "Grade A", "Grade B", "Grade C", "Consumption", "Total Eggs", "Total Value"},
	}
	for _, m := range months {
		rows = append(rows, []interface{}{
			m.Month, m.GradeA, m.GradeB, m.GradeC, m.Consumption, m.TotalEggs, m.TotalValue,
		})
	}

	if err := s.repo.AppendRows(ctx, monthlyRange, rows); err != nil {
		return 0, fmt.Errorf("export monthly production: %w", err)
	}

	s.logger.Info("monthly production exported", zap.Int("months", len(months)))
	return len(months), nil
}

// financeSummary is one month of ledger totals.
type financeSummary struct {
	month   string
	income  float64
	expense float64
}

// ExportFinanceSummary rewrites the finance sheet with per-month income,
// expense and net totals derived from the transaction ledger.
func (s *Service) ExportFinanceSummary(ctx context.Context) (int, error) {
	transactions := s.store.State().Transactions
	summaries := summarizeFinance(transactions)

	if err := s.repo.ClearRange(ctx, financeRange); err != nil {
		return 0, fmt.Errorf("clear finance sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Month", "Income", "Expenses", "Net", "Entries"},
	}
	counts := countByMonth(transactions)
	for _, sum := range summaries {
		rows = append(rows, []interface{}{
			sum.month, sum.income, sum.expense, sum.income - sum.expense, counts[sum.month],
		})
	}

	if err := s.repo.AppendRows(ctx, financeRange, rows); err != nil {
		return 0, fmt.Errorf("export finance summary: %w", err)
	}

	s.logger.Info("finance summary exported", zap.Int("months", len(summaries)))
	return len(summaries), nil
}

// ExportAll runs every export, returning the first failure.
func (s *Service) ExportAll(ctx context.Context) error {
	if _, err := s.ExportMonthlyProduction(ctx); err != nil {
		return err
	}
	if _, err := s.ExportFinanceSummary(ctx); err != nil {
		return err
	}
	return nil
}

func summarizeFinance(transactions []models.Transaction) []financeSummary {
	byMonth := make(map[string]*financeSummary)

	for _, tx := range transactions {
		key := tx.Date.Format(monthLayout)
		sum, ok := byMonth[key]
		if !ok {
			sum = &financeSummary{month: key}
			byMonth[key] = sum
		}
		switch tx.Type {
		case models.TransactionDebit:
			sum.income += tx.Total
		case models.TransactionCredit:
			sum.expense += tx.Total
		}
	}

	out := make([]financeSummary, 0, len(byMonth))
	for _, sum := range byMonth {
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].month < out[j].month })
	return out
}

func countByMonth(transactions []models.Transaction) map[string]int {
	counts := make(map[string]int)
	for _, tx := range transactions {
		counts[tx.Date.Format(monthLayout)]++
	}
	return counts
}
