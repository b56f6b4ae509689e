package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quackworks/duckfarm/internal/broadcast"
	"github.com/quackworks/duckfarm/internal/domain/models"
	"github.com/quackworks/duckfarm/internal/snapshot"
	"github.com/quackworks/duckfarm/internal/store"
)

type fakeSheetRepo struct {
	cleared  []string
	appended map[string][][]interface{}
}

func newFakeSheetRepo() *fakeSheetRepo {
	return &fakeSheetRepo{appended: make(map[string][][]interface{})}
}

func (f *fakeSheetRepo) AppendRows(_ context.Context, sheetRange string, rows [][]interface{}) error {
	f.appended[sheetRange] = append(f.appended[sheetRange], rows...)
	return nil
}

func (f *fakeSheetRepo) ClearRange(_ context.Context, sheetRange string) error {
	f.cleared = append(f.cleared, sheetRange)
	return nil
}

func newReportingStore(t *testing.T) *store.Store {
	t.Helper()
	snaps, err := snapshot.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return store.New(snaps, broadcast.NewBus(nil), nil)
}

func TestExportMonthlyProduction(t *testing.T) {
	st := newReportingStore(t)
	st.AddWeeklyProduction(store.WeeklyInput{
		StartDate: time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		GradeA:    models.EggGrade{Quantity: 100, Price: 2500},
		GradeB:    models.EggGrade{Quantity: 40, Price: 2000},
	})

	repo := newFakeSheetRepo()
	svc := NewService(repo, st, nil)

	count, err := svc.ExportMonthlyProduction(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, count)

	require.Equal(t, []string{monthlyRange}, repo.cleared)

	rows := repo.appended[monthlyRange]
	require.Len(t, rows, 2, "header plus one data row")
	require.Equal(t, "Month", rows[0][0])
	require.Equal(t, "2024-05", rows[1][0])
	require.Equal(t, 140, rows[1][5])
}

func TestExportFinanceSummary(t *testing.T) {
	st := newReportingStore(t)
	may := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)

	st.AddTransaction(store.TransactionInput{
		Date: may, Description: "egg sale", Quantity: 100, UnitPrice: 2500,
		Type: models.TransactionDebit,
	})
	st.AddTransaction(store.TransactionInput{
		Date: may, Description: "feed purchase", Quantity: 2, UnitPrice: 350000,
		Type: models.TransactionCredit,
	})

	repo := newFakeSheetRepo()
	svc := NewService(repo, st, nil)

	count, err := svc.ExportFinanceSummary(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, count)

	rows := repo.appended[financeRange]
	require.Len(t, rows, 2)
	require.Equal(t, "2024-05", rows[1][0])
	require.Equal(t, 250000.0, rows[1][1])
	require.Equal(t, 700000.0, rows[1][2])
	require.Equal(t, -450000.0, rows[1][3])
	require.Equal(t, 2, rows[1][4])
}

func TestExportAllStopsOnFirstFailure(t *testing.T) {
	st := newReportingStore(t)
	repo := newFakeSheetRepo()
	svc := NewService(repo, st, nil)

	require.NoError(t, svc.ExportAll(context.Background()))
	require.Len(t, repo.cleared, 2)
}
