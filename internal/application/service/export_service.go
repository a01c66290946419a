package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pometrix/ledger-export/internal/domain/entity"
	"github.com/pometrix/ledger-export/internal/domain/ledger"
	"github.com/pometrix/ledger-export/internal/domain/repository"
	"github.com/pometrix/ledger-export/internal/infrastructure/logger"
	"github.com/pometrix/ledger-export/internal/infrastructure/middleware"
)

// batchDateFormat is the only accepted shape for the batch date.
const batchDateFormat = "2006-01-02"

// ExportResult describes one completed export.
type ExportResult struct {
	FileName string          `json:"file_name"`
	StoredID string          `json:"stored_id"`
	RateBuy  decimal.Decimal `json:"rate_buy"`
	RateDate time.Time       `json:"rate_date"`
	Lines    int             `json:"lines"`
}

// ExportService turns a posting batch into a ledger import file and
// persists it under the next sequential name.
type ExportService struct {
	resolver *RateResolver
	builder  *ledger.Builder
	naming   *NamingService
	store    repository.FileStore
	logger   logger.Logger
}

// NewExportService creates a new export service.
func NewExportService(resolver *RateResolver, builder *ledger.Builder, naming *NamingService, store repository.FileStore, log logger.Logger) *ExportService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &ExportService{
		resolver: resolver,
		builder:  builder,
		naming:   naming,
		store:    store,
		logger:   log,
	}
}

// Export runs a full conversion request: resolve the batch's exchange rate,
// build the document, assign a name and persist it. An empty batch is
// rejected before any remote call. The batch date is read from the first
// item only.
func (s *ExportService) Export(ctx context.Context, batch []entity.PostingItem) (*ExportResult, error) {
	requestID := middleware.GetRequestID(ctx)

	if len(batch) == 0 {
		return nil, entity.ErrEmptyBatch
	}

	batchDate, err := time.Parse(batchDateFormat, batch[0].Date)
	if err != nil {
		return nil, fmt.Errorf("batch date %q is not %s: %w", batch[0].Date, "YYYY-MM-DD", entity.ErrInvalidDate)
	}

	s.logger.Info("Export started", map[string]interface{}{
		"request_id": requestID,
		"date":       batch[0].Date,
		"items":      len(batch),
	})

	rate, err := s.resolver.Resolve(ctx, batchDate)
	if err != nil {
		return nil, fmt.Errorf("resolving rate: %w", err)
	}

	doc, err := s.builder.Build(batch, rate)
	if err != nil {
		return nil, fmt.Errorf("building document: %w", err)
	}

	name, err := s.naming.NextFileName(ctx)
	if err != nil {
		return nil, fmt.Errorf("assigning file name: %w", err)
	}

	storedID, err := s.store.Put(ctx, name, doc.Bytes())
	if err != nil {
		// The document was valid; the caller needs to see this as a
		// persistence problem, not a data problem.
		return nil, fmt.Errorf("storing %s: %w", name, err)
	}

	s.logger.Info("Export completed", map[string]interface{}{
		"request_id": requestID,
		"file":       name,
		"stored_id":  storedID,
		"rate_buy":   rate.Buy.String(),
		"rate_date":  rate.Date.Format(batchDateFormat),
		"lines":      doc.LineCount(),
	})

	return &ExportResult{
		FileName: name,
		StoredID: storedID,
		RateBuy:  rate.Buy,
		RateDate: rate.Date,
		Lines:    doc.LineCount(),
	}, nil
}
