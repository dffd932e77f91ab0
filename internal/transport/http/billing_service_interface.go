package http

import (
	"context"
	"io"
	"time"

	"faturacli/internal/services"
	"faturacli/pkg/contracts/domain"
)

// BillingServiceInterface defines the contract between the HTTP adapter and
// the billing service. Handlers depend on this interface so tests can swap
// the service for a stub.
type BillingServiceInterface interface {
	LoadWorkbook(ctx context.Context, r io.Reader) (services.WorkbookSummary, error)
	Metrics(ctx context.Context, ref time.Time, customers []string) (domain.BillingMetrics, error)
	Ledger(ctx context.Context) (domain.Ledger, error)
	Status(ctx context.Context, ref time.Time) ([]domain.CustomerStatus, error)
}
