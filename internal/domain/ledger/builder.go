package ledger

import (
	"fmt"
	"strings"

	"github.com/pometrix/ledger-export/internal/domain/entity"
)

// Document is a fully assembled ledger import file: one header line, one
// summary line, then one detail line per posting item, in input order.
// It is immutable after Build returns.
type Document struct {
	lines []string
}

// Text returns the document as a single string. Every line already carries
// its own line break.
func (d *Document) Text() string {
	return strings.Join(d.lines, "")
}

// Bytes returns the document encoded for storage.
func (d *Document) Bytes() []byte {
	return []byte(d.Text())
}

// LineCount returns the number of records in the document.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Lines returns a copy of the document's records.
func (d *Document) Lines() []string {
	out := make([]string, len(d.lines))
	copy(out, d.lines)
	return out
}

// Header defaults substituted when the first posting item omits supplier
// information. They come from the upstream system's own conventions.
const (
	defaultSupplierID   = "000000"
	defaultSupplierName = "SIN NOMBRE"
)

// headerConcept is the fixed concept code stamped on every header line.
const headerConcept = "GASTOS"

// Builder assembles ledger documents from posting batches and a resolved
// exchange rate.
type Builder struct {
	enc *Encoder
}

// NewBuilder creates a builder that encodes lines with enc. A nil enc gets
// the default encoder (no trailing delimiter).
func NewBuilder(enc *Encoder) *Builder {
	if enc == nil {
		enc = &Encoder{}
	}
	return &Builder{enc: enc}
}

// Build converts a posting batch into a ledger document using the given
// exchange rate for foreign-currency items. The batch date, supplier id and
// supplier name are read from the first item only. Currency conversion is
// done in the decimal domain first, so rounding happens exactly once, at
// encoding time.
func (b *Builder) Build(batch []entity.PostingItem, rate *entity.ExchangeRate) (*Document, error) {
	if len(batch) == 0 {
		return nil, entity.ErrEmptyBatch
	}

	first := batch[0]

	supplierID := first.SupplierID
	if supplierID == "" {
		supplierID = defaultSupplierID
	}
	supplierName := normalize(first.SupplierName)
	if supplierName == "" {
		supplierName = defaultSupplierName
	}
	supplierInfo := strings.TrimSpace(supplierID + " " + supplierName)

	lines := make([]string, 0, 2+len(batch))

	header, err := b.enc.Encode(KindHeader, map[string]any{
		"tipo":        "L",
		"fecha":       strings.ReplaceAll(first.Date, "-", ""),
		"concepto":    headerConcept,
		"nro_asiento": "0",
	})
	if err != nil {
		return nil, fmt.Errorf("encoding header line: %w", err)
	}
	lines = append(lines, header)

	summary, err := b.enc.Encode(KindSummary, map[string]any{
		"tipo":         "A",
		"nro_linea":    "1",
		"espacio_fijo": " ",
		"importe":      EncodeRate(rate.Buy),
		"detalle":      "- " + supplierInfo,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding summary line: %w", err)
	}
	lines = append(lines, summary)

	for i, item := range batch {
		amount := item.Amount
		if item.IsForeign() {
			amount = amount.Mul(rate.Buy)
		}

		debitCredit := item.DebitCredit
		if debitCredit == "" {
			debitCredit = "D"
		}

		detail, err := b.enc.Encode(KindDetail, map[string]any{
			"tipo":          "R",
			"cuenta":        item.Account,
			"descripcion":   normalize(item.Description),
			"debe_haber":    debitCredit,
			"monto":         amount,
			"espacio_1":     "",
			"centro_costo":  item.CostCenter,
			"espacio_2":     "",
			"espacio_final": "",
		})
		if err != nil {
			return nil, fmt.Errorf("encoding detail line %d: %w", i+1, err)
		}
		lines = append(lines, detail)
	}

	return &Document{lines: lines}, nil
}

// normalize replaces embedded newlines with spaces; the format is strictly
// one record per line.
func normalize(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}
