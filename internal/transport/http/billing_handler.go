package http

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "faturacli/internal/errors"
	"faturacli/internal/exporter"
	"faturacli/internal/middleware"
	"faturacli/internal/services"
	"faturacli/internal/validation"
	api "faturacli/pkg/contracts/api/v1"
)

// referenceDateLayout is the wire format for reference dates.
const referenceDateLayout = "2006-01-02"

// BillingHandler handles billing HTTP requests with RFC 7807 compliance
type BillingHandler struct {
	service        BillingServiceInterface
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
	validate       *validator.Validate
	fileValidator  *validation.WorkbookValidator
	maxUploadBytes int64
}

// NewBillingHandler creates a new billing handler with RFC 7807 error handling
func NewBillingHandler(service BillingServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, maxUploadBytes int64) *BillingHandler {
	return &BillingHandler{
		service:        service,
		logger:         logger.With(slog.String("component", "billing_handler")),
		errorHandler:   errorHandler,
		validate:       validator.New(),
		fileValidator:  validation.NewWorkbookValidator(logger),
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes returns the billing routes with proper Chi patterns
func (h *BillingHandler) Routes() chi.Router {
	r := chi.NewRouter()

	// Use render for consistent JSON responses
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/workbook", h.UploadWorkbook)
	r.Get("/metrics", h.GetMetrics)
	r.Get("/ledger", h.GetLedger)
	r.Get("/ledger/export", h.ExportLedger)
	r.Get("/status", h.GetStatus)

	return r
}

// UploadWorkbook handles POST /api/billing/workbook. The ledger is rebuilt
// from scratch on every upload; there is no incremental update path.
func (h *BillingHandler) UploadWorkbook(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusBadRequest,
			"INVALID_REQUEST",
			"Invalid multipart upload",
			err.Error(),
		))
		return
	}

	file, header, err := r.FormFile("workbook")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("workbook", "Workbook file is required"))
		return
	}
	defer file.Close()

	if err := h.fileValidator.ValidateFilename(header.Filename); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("workbook", err.Error()))
		return
	}

	// Sniff the container magic before handing the body to the parser.
	head := make([]byte, 8)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("workbook", "Workbook file is empty"))
		return
	}
	if err := h.fileValidator.ValidateContent(head[:n]); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("workbook", err.Error()))
		return
	}
	body := io.MultiReader(bytes.NewReader(head[:n]), file)

	h.logger.InfoContext(r.Context(), "uploading workbook",
		slog.String("request_id", reqID),
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size),
	)

	summary, err := h.service.LoadWorkbook(r.Context(), body)
	if err != nil {
		if errors.Is(err, services.ErrNoData) {
			// Empty is a data condition, not a failure: the client shows
			// its idle state.
			render.JSON(w, r, api.NewEmptyResponse("workbook contained no billing data"))
			return
		}

		h.logger.ErrorContext(r.Context(), "failed to load workbook",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, api.NewSuccessResponse(summary))
}

// GetMetrics handles GET /api/billing/metrics with RFC 7807 errors
func (h *BillingHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	req := api.MetricsRequest{
		Date:      r.URL.Query().Get("date"),
		Customers: splitCustomers(r.URL.Query().Get("customers")),
	}
	if err := h.validate.Struct(req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("date", "Date must be a valid YYYY-MM-DD value"))
		return
	}
	ref, err := time.Parse(referenceDateLayout, req.Date)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("date", "Date must be a valid YYYY-MM-DD value"))
		return
	}

	h.logger.InfoContext(r.Context(), "computing billing metrics",
		slog.String("request_id", reqID),
		slog.String("reference_date", req.Date),
		slog.Int("customer_filter", len(req.Customers)),
	)

	metrics, err := h.service.Metrics(r.Context(), ref, req.Customers)
	if err != nil {
		if errors.Is(err, services.ErrNoLedger) || errors.Is(err, services.ErrNoData) {
			render.JSON(w, r, api.NewEmptyResponse("no billing data loaded"))
			return
		}

		h.logger.ErrorContext(r.Context(), "failed to compute metrics",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, api.NewSuccessResponse(metrics))
}

// GetLedger handles GET /api/billing/ledger with RFC 7807 errors
func (h *BillingHandler) GetLedger(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	h.logger.InfoContext(r.Context(), "fetching ledger",
		slog.String("request_id", reqID),
	)

	ledger, err := h.service.Ledger(r.Context())
	if err != nil {
		if errors.Is(err, services.ErrNoLedger) {
			render.JSON(w, r, api.NewEmptyResponse("no billing data loaded"))
			return
		}

		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, api.NewListResponse(ledger, len(ledger)))
}

// ExportLedger handles GET /api/billing/ledger/export, streaming the
// normalized ledger as CSV
func (h *BillingHandler) ExportLedger(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	ledger, err := h.service.Ledger(r.Context())
	if err != nil {
		if errors.Is(err, services.ErrNoLedger) {
			render.JSON(w, r, api.NewEmptyResponse("no billing data loaded"))
			return
		}

		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "exporting ledger as CSV",
		slog.String("request_id", reqID),
		slog.Int("rows", len(ledger)),
	)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="ledger.csv"`)

	if err := exporter.NewLedgerExporter().Export(w, ledger); err != nil {
		// Headers are already written; all we can do is log.
		h.logger.ErrorContext(r.Context(), "failed to stream ledger export",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
	}
}

// GetStatus handles GET /api/billing/status with RFC 7807 errors
func (h *BillingHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	req := api.StatusRequest{Date: r.URL.Query().Get("date")}
	if err := h.validate.Struct(req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("date", "Date must be a valid YYYY-MM-DD value"))
		return
	}
	ref, err := time.Parse(referenceDateLayout, req.Date)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("date", "Date must be a valid YYYY-MM-DD value"))
		return
	}

	h.logger.InfoContext(r.Context(), "fetching customer status",
		slog.String("request_id", reqID),
		slog.String("reference_date", req.Date),
	)

	statuses, err := h.service.Status(r.Context(), ref)
	if err != nil {
		if errors.Is(err, services.ErrNoLedger) {
			render.JSON(w, r, api.NewEmptyResponse("no billing data loaded"))
			return
		}

		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, api.NewListResponse(statuses, len(statuses)))
}

// splitCustomers parses the comma-separated customers query parameter.
func splitCustomers(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
