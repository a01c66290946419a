// Package ledger implements the fixed-width ledger import format: record
// encoding and document assembly. Everything in here is pure; no I/O.
package ledger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind identifies one of the fixed record layouts of the import format.
type Kind string

const (
	// KindHeader is the single "L" record opening a document.
	KindHeader Kind = "L"
	// KindSummary is the single "A" record carrying the exchange rate.
	KindSummary Kind = "A"
	// KindDetail is the per-item "R" record.
	KindDetail Kind = "R"
)

type field struct {
	name  string
	width int
}

// layouts is the exact column contract of the import format. Field order
// and widths must not change; the importer reads by position.
var layouts = map[Kind][]field{
	KindHeader: {
		{"tipo", 1}, {"fecha", 8}, {"concepto", 6}, {"nro_asiento", 1},
	},
	KindSummary: {
		{"tipo", 1}, {"nro_linea", 6}, {"espacio_fijo", 1},
		{"importe", 12}, {"detalle", 45},
	},
	KindDetail: {
		{"tipo", 1}, {"cuenta", 6}, {"descripcion", 30}, {"debe_haber", 1},
		{"monto", 13}, {"espacio_1", 13}, {"centro_costo", 6},
		{"espacio_2", 6}, {"espacio_final", 8},
	},
}

// rightAligned fields get leading-space padding; everything else is
// left-aligned with trailing spaces.
var rightAligned = map[string]struct{}{
	"importe":     {},
	"monto":       {},
	"nro_linea":   {},
	"nro_asiento": {},
}

// Encoder renders fixed-width, pipe-delimited record lines.
//
// TrailingDelimiter controls whether a final "|" appears before the line
// break. Both variants of the format exist among historical files; new
// documents default to no trailing bar.
type Encoder struct {
	TrailingDelimiter bool
}

// ScaleAmount applies the numeric scaling rule of the format: multiply by
// 100 and round half-to-even to an integer, rendered without separators.
// 1234.56 becomes "123456"; the two trailing digits are implicitly cents.
func ScaleAmount(v decimal.Decimal) string {
	return v.Shift(2).RoundBank(0).String()
}

// EncodeRate renders an exchange rate for the summary line's importe field:
// the scaled rate followed by a literal "0000", so 41.95 becomes
// "41950000". The suffix is fixed filler the importer expects, not further
// scaling, which is why this is its own function.
func EncodeRate(rate decimal.Decimal) string {
	return ScaleAmount(rate) + "0000"
}

// Encode renders one record of the given kind. Values may be strings, ints
// or decimals; decimals go through ScaleAmount, missing fields encode as
// blanks, and oversized strings are truncated to the column width.
// Truncation is silent; the format is lossy by contract.
func (e *Encoder) Encode(kind Kind, values map[string]any) (string, error) {
	layout, ok := layouts[kind]
	if !ok {
		return "", fmt.Errorf("unknown record kind %q", kind)
	}

	parts := make([]string, 0, len(layout))
	for _, f := range layout {
		_, right := rightAligned[f.name]
		parts = append(parts, pad(render(values[f.name]), f.width, right))
	}

	line := strings.Join(parts, "|")
	if e.TrailingDelimiter {
		line += "|"
	}
	return line + "\n", nil
}

func render(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case decimal.Decimal:
		return ScaleAmount(x)
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprint(x)
	}
}

// pad truncates or pads s to exactly width characters. Widths are counted
// in runes so accented text occupies the columns the importer expects.
func pad(s string, width int, right bool) string {
	r := []rune(s)
	if len(r) > width {
		return string(r[:width])
	}

	fill := strings.Repeat(" ", width-len(r))
	if right {
		return fill + s
	}
	return s + fill
}
