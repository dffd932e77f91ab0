package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"faturacli/internal/dataprocessing"
	"faturacli/internal/infrastructure"
	"faturacli/pkg/contracts/domain"
)

// WorkbookSummary describes the outcome of one workbook ingestion.
type WorkbookSummary struct {
	Rows   int      `json:"rows"`
	Sheets []string `json:"sheets"`
}

// BillingService owns the in-memory billing ledger and serves metric
// computations over it. Each upload replaces the ledger wholesale with an
// immutable snapshot; readers never observe a partially built ledger, and
// nothing is cached between requests because the ledger can change between
// calls.
type BillingService struct {
	normalizer *dataprocessing.Normalizer
	logger     *slog.Logger
	metrics    *infrastructure.Metrics

	mu     sync.RWMutex
	ledger domain.Ledger
}

// NewBillingService creates the billing service.
func NewBillingService(logger *slog.Logger, metrics *infrastructure.Metrics) *BillingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BillingService{
		normalizer: dataprocessing.NewNormalizer(logger),
		logger:     logger.With(slog.String("service", "billing")),
		metrics:    metrics,
	}
}

// LoadWorkbook normalizes an uploaded workbook and swaps it in as the
// current ledger. The previous ledger is kept untouched when normalization
// fails, including the ErrNoData case.
func (s *BillingService) LoadWorkbook(ctx context.Context, r io.Reader) (WorkbookSummary, error) {
	start := time.Now()

	ledger, err := s.normalizer.Normalize(ctx, r)
	if err != nil {
		if s.metrics != nil {
			s.metrics.NormalizationErrors.Inc()
		}
		if errors.Is(err, domain.ErrNoData) {
			s.logger.WarnContext(ctx, "workbook contained no billing data")
			return WorkbookSummary{}, ErrNoData
		}
		return WorkbookSummary{}, err
	}

	s.mu.Lock()
	s.ledger = ledger
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.WorkbooksNormalized.Inc()
		s.metrics.LedgerRows.Set(float64(len(ledger)))
		s.metrics.NormalizationSeconds.Observe(time.Since(start).Seconds())
	}

	summary := WorkbookSummary{
		Rows:   len(ledger),
		Sheets: sheetNames(ledger),
	}

	s.logger.InfoContext(ctx, "workbook loaded",
		slog.Int("rows", summary.Rows),
		slog.Int("sheets", len(summary.Sheets)),
		slog.Duration("duration", time.Since(start)))

	return summary, nil
}

// Metrics computes the comparative billing metrics for the reference date.
// An optional customer filter restricts the ledger before computation; the
// engine itself is unaware of the filtering.
func (s *BillingService) Metrics(ctx context.Context, ref time.Time, customers []string) (domain.BillingMetrics, error) {
	ledger, err := s.snapshot()
	if err != nil {
		return domain.BillingMetrics{}, err
	}

	ledger = ledger.FilterCustomers(customers)
	if ledger.Empty() {
		return domain.BillingMetrics{}, ErrNoData
	}

	if s.metrics != nil {
		s.metrics.MetricsRequests.Inc()
	}

	result := dataprocessing.ComputeMetrics(ledger, ref)

	s.logger.DebugContext(ctx, "metrics computed",
		slog.Time("reference_date", ref),
		slog.Float64("current_accumulated", result.CurrentAccumulated),
		slog.Float64("previous_accumulated", result.PreviousAccumulated))

	return result, nil
}

// Ledger returns the current ledger snapshot for audit-table display.
func (s *BillingService) Ledger(ctx context.Context) (domain.Ledger, error) {
	return s.snapshot()
}

// Status builds the per-customer status table for the reference date's
// month, scoped to that month's source sheet.
func (s *BillingService) Status(ctx context.Context, ref time.Time) ([]domain.CustomerStatus, error) {
	ledger, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	monthRows := ledger.FilterSheet(dataprocessing.MonthSheetName(ref))
	if monthRows.Empty() {
		return []domain.CustomerStatus{}, nil
	}

	return dataprocessing.ClassifyLedger(monthRows, ref.Day()), nil
}

// snapshot returns the current ledger or ErrNoLedger before the first
// successful upload.
func (s *BillingService) snapshot() (domain.Ledger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.ledger.Empty() {
		return nil, ErrNoLedger
	}
	return s.ledger, nil
}

// sheetNames collects the distinct source sheets in first-seen order.
func sheetNames(ledger domain.Ledger) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, row := range ledger {
		if _, ok := seen[row.SourceSheet]; !ok {
			seen[row.SourceSheet] = struct{}{}
			names = append(names, row.SourceSheet)
		}
	}
	return names
}
