// Package handler exposes the HTTP surface of the export service.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/pometrix/ledger-export/internal/application/service"
	"github.com/pometrix/ledger-export/internal/domain/entity"
	"github.com/pometrix/ledger-export/internal/infrastructure/logger"
	"github.com/pometrix/ledger-export/internal/infrastructure/middleware"
)

// ExportHandler handles HTTP requests for ledger exports.
type ExportHandler struct {
	service  *service.ExportService
	validate *validator.Validate
	logger   logger.Logger
}

// NewExportHandler creates a new export handler.
func NewExportHandler(svc *service.ExportService, log logger.Logger) *ExportHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &ExportHandler{
		service:  svc,
		validate: validator.New(),
		logger:   log,
	}
}

// CreateExport converts a posting batch into a ledger file and stores it.
func (h *ExportHandler) CreateExport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Invalid request body",
			"The request body could not be parsed as valid JSON", http.StatusBadRequest, requestID)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.logger.Warn("Request validation failed", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Invalid posting payload",
			"The posting array is required, must be non-empty, and dates must be YYYY-MM-DD",
			http.StatusBadRequest, requestID)
		return
	}

	items := req.ToEntities()

	// The upstream omits the date on same-day batches.
	if items[0].Date == "" {
		items[0].Date = time.Now().Format("2006-01-02")
	}

	result, err := h.service.Export(r.Context(), items)
	if err != nil {
		h.sendExportError(w, requestID, err)
		return
	}

	h.logger.Info("Export request served", map[string]interface{}{
		"request_id": requestID,
		"file":       result.FileName,
		"lines":      result.Lines,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(ExportResponse{
		OK:           true,
		File:         result.FileName,
		FileID:       result.StoredID,
		ExchangeRate: result.RateBuy,
		RateDate:     result.RateDate.Format("2006-01-02"),
		Lines:        result.Lines,
	})
}

// sendExportError maps the service's failure kinds to status codes. The
// split matters to callers: 400s mean the payload was bad, 502 means the
// quotation dependency failed, 500 means the document was built but not
// saved (or something unexpected broke).
func (h *ExportHandler) sendExportError(w http.ResponseWriter, requestID string, err error) {
	switch {
	case errors.Is(err, entity.ErrEmptyBatch):
		h.logger.Warn("Empty posting batch", map[string]interface{}{
			"request_id": requestID,
		})
		sendErrorResponse(w, h.logger, "Empty posting batch",
			"The posting array must contain at least one item", http.StatusBadRequest, requestID)
	case errors.Is(err, entity.ErrInvalidDate):
		h.logger.Warn("Invalid batch date", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Invalid date",
			"The batch date must be in YYYY-MM-DD format", http.StatusBadRequest, requestID)
	case errors.Is(err, entity.ErrRateUnavailable):
		h.logger.Error("No exchange rate available", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "No exchange rate available",
			"No exchange rate was published within 30 days before the batch date",
			http.StatusBadGateway, requestID)
	case errors.Is(err, entity.ErrStorageFailure):
		h.logger.Error("Document built but not stored", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Storage failure",
			"The document was generated but could not be persisted",
			http.StatusInternalServerError, requestID)
	default:
		h.logger.Error("Unexpected error in export handler", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Internal server error",
			"An unexpected error occurred while processing the export",
			http.StatusInternalServerError, requestID)
	}
}

// RegisterRoutes registers the export handler routes.
func (h *ExportHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/exports", h.CreateExport).Methods("POST")

	h.logger.Info("Export routes registered", map[string]interface{}{
		"routes": []string{"POST /exports"},
	})
}

// sendErrorResponse sends a standardized error response.
func sendErrorResponse(w http.ResponseWriter, log logger.Logger, message, description string, statusCode int, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := ErrorResponse{
		Error:       message,
		Status:      statusCode,
		Description: description,
		RequestID:   requestID,
	}

	log.Debug("Sending error response", map[string]interface{}{
		"request_id":  requestID,
		"status_code": statusCode,
		"message":     message,
	})

	json.NewEncoder(w).Encode(resp)
}
