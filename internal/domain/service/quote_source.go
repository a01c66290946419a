package service

import (
	"context"
	"time"

	"github.com/pometrix/ledger-export/internal/domain/entity"
)

// QuoteSource defines the interface for a remote currency quotation feed.
type QuoteSource interface {
	// Query fetches the quotation published for the given calendar day.
	// A (nil, nil) return means no quotation exists for that day, which is
	// the normal outcome for weekends and holidays. A non-nil error means
	// the query itself could not be completed; the resolver decides whether
	// that is fatal.
	Query(ctx context.Context, date time.Time) (*entity.ExchangeRate, error)
}
