package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"faturacli/internal/infrastructure"
	"faturacli/pkg/contracts/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// workbook builds an in-memory xlsx from sheet name to rows, in order.
func workbook(t *testing.T, names []string, sheets map[string][][]interface{}) io.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, name := range names {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			require.NoError(t, f.SetSheetRow(name, fmt.Sprintf("A%d", r+1), &row))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

var header = []interface{}{"CÓDIGO", "DIA", "NOME CLIENTE", "EMISSÃO", "VLR BRUTO", "VLR PREVISÃO"}

func billingWorkbook(t *testing.T) io.Reader {
	return workbook(t,
		[]string{"Janeiro 2026", "Fevereiro 2026"},
		map[string][][]interface{}{
			"Janeiro 2026": {
				header,
				{"001", "10", "ACME LTDA", "05/01/2026", "120,00", ""},
			},
			"Fevereiro 2026": {
				header,
				{"001", "10", "ACME LTDA", "03/02/2026", "100,00", ""},
				{"002", "5", "BETA SA", "01/02/2026", "-", "400,00"},
			},
		})
}

func newTestService(t *testing.T) *BillingService {
	t.Helper()
	return NewBillingService(testLogger(), infrastructure.NewMetrics())
}

func TestLoadWorkbook(t *testing.T) {
	svc := newTestService(t)

	summary, err := svc.LoadWorkbook(context.Background(), billingWorkbook(t))
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Rows)
	assert.Equal(t, []string{"Janeiro 2026", "Fevereiro 2026"}, summary.Sheets)

	ledger, err := svc.Ledger(context.Background())
	require.NoError(t, err)
	assert.Len(t, ledger, 3)
}

func TestLoadWorkbookNoDataKeepsPreviousLedger(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.LoadWorkbook(context.Background(), billingWorkbook(t))
	require.NoError(t, err)

	empty := workbook(t, []string{"Resumo"}, map[string][][]interface{}{
		"Resumo": {{"nada aqui"}},
	})
	_, err = svc.LoadWorkbook(context.Background(), empty)
	assert.ErrorIs(t, err, ErrNoData)

	// The earlier ledger survives the failed upload.
	ledger, err := svc.Ledger(context.Background())
	require.NoError(t, err)
	assert.Len(t, ledger, 3)
}

func TestMetricsBeforeFirstUpload(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Metrics(context.Background(), time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC), nil)
	assert.ErrorIs(t, err, ErrNoLedger)

	_, err = svc.Ledger(context.Background())
	assert.ErrorIs(t, err, ErrNoLedger)

	_, err = svc.Status(context.Background(), time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrNoLedger)
}

func TestMetrics(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.LoadWorkbook(context.Background(), billingWorkbook(t))
	require.NoError(t, err)

	ref := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)

	m, err := svc.Metrics(context.Background(), ref, nil)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, m.CurrentAccumulated, 1e-9)
	assert.InDelta(t, 120.0, m.PreviousAccumulated, 1e-9)
	assert.InDelta(t, 120.0, m.GoalTotal, 1e-9)
	assert.Equal(t, 1, m.OverdueCount)
}

func TestMetricsCustomerFilter(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.LoadWorkbook(context.Background(), billingWorkbook(t))
	require.NoError(t, err)

	ref := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)

	// Case-insensitive name filter.
	m, err := svc.Metrics(context.Background(), ref, []string{"acme ltda"})
	require.NoError(t, err)
	assert.InDelta(t, 100.0, m.CurrentAccumulated, 1e-9)
	assert.Equal(t, 0, m.OverdueCount)

	// Filtering everything away is the no-data condition.
	_, err = svc.Metrics(context.Background(), ref, []string{"NINGUÉM"})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestStatus(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.LoadWorkbook(context.Background(), billingWorkbook(t))
	require.NoError(t, err)

	statuses, err := svc.Status(context.Background(), time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	// Ordered by billing day: BETA (day 5, overdue) before ACME (day 10,
	// completed).
	assert.Equal(t, "BETA SA", statuses[0].CustomerName)
	assert.Equal(t, domain.StatusOverdue, statuses[0].Status)
	assert.Equal(t, "ACME LTDA", statuses[1].CustomerName)
	assert.Equal(t, domain.StatusCompleted, statuses[1].Status)

	// A month with no rows yields an empty table, not an error.
	statuses, err = svc.Status(context.Background(), time.Date(2026, 7, 9, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, statuses)
}
