package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pometrix/ledger-export/internal/domain/entity"
	domainsvc "github.com/pometrix/ledger-export/internal/domain/service"
	"github.com/pometrix/ledger-export/internal/infrastructure/logger"
)

// maxSearchDays bounds the backward search to 30 calendar days strictly
// before the requested date. Quotation feeds lag a day or two around
// holidays; the bound caps worst-case remote calls while keeping a
// deterministic "most recent known rate" result.
const maxSearchDays = 30

// RateResolver finds the exchange rate to apply for a given calendar date,
// falling back to the nearest prior business day with a published rate.
type RateResolver struct {
	source domainsvc.QuoteSource
	logger logger.Logger
}

// NewRateResolver creates a new rate resolver.
func NewRateResolver(source domainsvc.QuoteSource, log logger.Logger) *RateResolver {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &RateResolver{
		source: source,
		logger: log,
	}
}

// Resolve returns the rate for target, or for the nearest prior business
// day that has one. The returned rate carries the day it was actually
// published on. It fails with entity.ErrRateUnavailable when nothing was
// published within the search bound, and with entity.ErrInvalidDate when
// the quotation source rejects the requested date itself as malformed.
func (r *RateResolver) Resolve(ctx context.Context, target time.Time) (*entity.ExchangeRate, error) {
	rate, err := r.source.Query(ctx, target)
	if err != nil {
		// A malformed requested date is the caller's problem, not a gap in
		// the feed; nothing before it would be valid either.
		if errors.Is(err, entity.ErrInvalidDate) {
			return nil, fmt.Errorf("querying rate for %s: %w", target.Format("2006-01-02"), err)
		}

		r.logger.Warn("Direct quote query failed, continuing with backward search", map[string]interface{}{
			"date":  target.Format("2006-01-02"),
			"error": err.Error(),
		})
	}
	if rate != nil {
		return rate, nil
	}

	// Walk backward one calendar day at a time, querying only business
	// days. Transient failures on a given day count as "nothing published
	// that day" and the walk continues.
	limit := target.AddDate(0, 0, -maxSearchDays)
	for day := target.AddDate(0, 0, -1); day.After(limit) || day.Equal(limit); day = day.AddDate(0, 0, -1) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !entity.IsBusinessDay(day) {
			continue
		}

		rate, err := r.source.Query(ctx, day)
		if err != nil {
			r.logger.Warn("Quote query failed during backward search", map[string]interface{}{
				"date":  day.Format("2006-01-02"),
				"error": err.Error(),
			})
			continue
		}

		if rate != nil {
			r.logger.Info("Using earlier business day's rate", map[string]interface{}{
				"requested_date": target.Format("2006-01-02"),
				"rate_date":      rate.Date.Format("2006-01-02"),
				"buy":            rate.Buy.String(),
			})
			return rate, nil
		}
	}

	return nil, fmt.Errorf("no rate published within %d days before %s: %w",
		maxSearchDays, target.Format("2006-01-02"), entity.ErrRateUnavailable)
}
