package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	buildTime string
	billing   *BillingService
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Ledger    map[string]interface{} `json:"ledger,omitempty"`
}

// VersionInfo represents version metadata
type VersionInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version"`
}

// NewHealthService creates a new health service
func NewHealthService(version, buildTime string, billing *BillingService, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		buildTime: buildTime,
		billing:   billing,
		startTime: time.Now(),
		logger:    logger.With(slog.String("service", "health")),
	}
}

// HealthCheck returns the overall service health. A server with no ledger
// loaded is still healthy; the ledger section reports loaded=false.
func (s *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   s.version,
		Runtime: map[string]interface{}{
			"go_version":     runtime.Version(),
			"goroutines":     runtime.NumGoroutine(),
			"uptime_seconds": time.Since(s.startTime).Seconds(),
		},
	}

	ledgerInfo := map[string]interface{}{"loaded": false}
	if s.billing != nil {
		if ledger, err := s.billing.Ledger(ctx); err == nil {
			ledgerInfo["loaded"] = true
			ledgerInfo["rows"] = len(ledger)
		}
	}
	status.Ledger = ledgerInfo

	return status
}

// LivenessCheck reports whether the process is alive
func (s *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   s.version,
	}
}

// ReadinessCheck reports whether the service can serve traffic
func (s *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	// Readiness does not depend on a loaded ledger; the upload endpoint
	// must be reachable before any data exists.
	return HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   s.version,
	}
}

// Version returns build metadata
func (s *HealthService) Version() VersionInfo {
	return VersionInfo{
		Version:   s.version,
		BuildTime: s.buildTime,
		GoVersion: runtime.Version(),
	}
}
