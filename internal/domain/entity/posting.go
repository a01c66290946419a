package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PostingItem is one line of an incoming posting batch. Amounts are kept in
// the item's native currency until the ledger is built; Date, SupplierID and
// SupplierName are header-level fields read only from the first item of a
// batch.
type PostingItem struct {
	Account      string          `json:"account"`
	Description  string          `json:"description"`
	DebitCredit  string          `json:"debit_credit"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	CostCenter   string          `json:"cost_center"`
	Date         string          `json:"date"`
	SupplierID   string          `json:"supplier_id"`
	SupplierName string          `json:"supplier_name"`
}

// usdAliases are the spellings the upstream system uses for US dollars.
// Anything else is treated as local currency (UYU).
var usdAliases = map[string]struct{}{
	"USD":   {},
	"US$":   {},
	"DOL":   {},
	"DÓLAR": {},
}

// IsForeign reports whether the item's amount needs conversion to local
// currency. An absent currency defaults to local.
func (p PostingItem) IsForeign() bool {
	_, ok := usdAliases[strings.ToUpper(strings.TrimSpace(p.Currency))]
	return ok
}
