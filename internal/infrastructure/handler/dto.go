package handler

import (
	"github.com/shopspring/decimal"

	"github.com/pometrix/ledger-export/internal/domain/entity"
)

// PostingItemDTO is one posting line as the upstream system sends it. The
// JSON keys are the upstream's own, including the space in "proveedor id";
// they are part of the wire contract and must not be renamed.
type PostingItemDTO struct {
	Account      string          `json:"Cuenta"`
	Description  string          `json:"Descripcion"`
	DebitCredit  string          `json:"D/H" validate:"omitempty,oneof=D H"`
	Amount       decimal.Decimal `json:"Monto"`
	Currency     string          `json:"moneda"`
	CostCenter   string          `json:"centroDeCosto"`
	Date         string          `json:"fecha" validate:"omitempty,datetime=2006-01-02"`
	SupplierID   string          `json:"proveedor id"`
	SupplierName string          `json:"proveedor nombre"`
}

// ExportRequest is the request body for the export endpoint.
type ExportRequest struct {
	Posting []PostingItemDTO `json:"posting" validate:"required,min=1,dive"`
}

// ToEntities maps the wire items to domain posting items.
func (r ExportRequest) ToEntities() []entity.PostingItem {
	items := make([]entity.PostingItem, 0, len(r.Posting))
	for _, p := range r.Posting {
		items = append(items, entity.PostingItem{
			Account:      p.Account,
			Description:  p.Description,
			DebitCredit:  p.DebitCredit,
			Amount:       p.Amount,
			Currency:     p.Currency,
			CostCenter:   p.CostCenter,
			Date:         p.Date,
			SupplierID:   p.SupplierID,
			SupplierName: p.SupplierName,
		})
	}
	return items
}

// ExportResponse is the success envelope for the export endpoint.
type ExportResponse struct {
	OK           bool            `json:"ok"`
	File         string          `json:"file"`
	FileID       string          `json:"fileId"`
	ExchangeRate decimal.Decimal `json:"tipoCambioUSD"`
	RateDate     string          `json:"rateDate"`
	Lines        int             `json:"lineas"`
}

// ErrorResponse is the standardized error envelope.
type ErrorResponse struct {
	Error       string `json:"error"`
	Status      int    `json:"status"`
	Description string `json:"description,omitempty"`
	RequestID   string `json:"request_id,omitempty"`
}
