package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a buy/sell quotation published for one business day.
// Date is the day the quotation was actually published on, which may be
// earlier than the day a caller asked for.
type ExchangeRate struct {
	Date time.Time       `json:"date"`
	Buy  decimal.Decimal `json:"buy"`
	Sell decimal.Decimal `json:"sell"`
}

// IsBusinessDay reports whether d falls Monday through Friday. No holiday
// calendar is consulted; the quotation source simply publishes nothing on
// holidays and the backward search absorbs that.
func IsBusinessDay(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
