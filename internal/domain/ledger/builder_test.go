package ledger

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pometrix/ledger-export/internal/domain/entity"
)

func testRate(buy string) *entity.ExchangeRate {
	return &entity.ExchangeRate{
		Date: time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC),
		Buy:  decimal.RequireFromString(buy),
		Sell: decimal.RequireFromString(buy).Add(decimal.RequireFromString("0.5")),
	}
}

func TestBuildSingleForeignItem(t *testing.T) {
	builder := NewBuilder(nil)

	batch := []entity.PostingItem{{
		Account:      "101",
		Description:  "Insumos",
		Amount:       decimal.RequireFromString("100.00"),
		Currency:     "USD",
		Date:         "2024-05-13",
		SupplierID:   "555",
		SupplierName: "ACME",
	}}

	doc, err := builder.Build(batch, testRate("41.95"))
	require.NoError(t, err)

	lines := doc.Lines()
	require.Len(t, lines, 3)

	assert.Equal(t, "L|20240513|GASTOS|0\n", lines[0])

	summary := strings.Split(strings.TrimSuffix(lines[1], "\n"), "|")
	assert.Equal(t, "A", summary[0])
	assert.Equal(t, "    41950000", summary[3])
	assert.True(t, strings.HasPrefix(summary[4], "- 555 ACME"))

	detail := strings.Split(strings.TrimSuffix(lines[2], "\n"), "|")
	assert.Equal(t, "R", detail[0])
	// 100.00 USD at 41.95 is 4195.00 local, scaled to cents.
	assert.Equal(t, "       419500", detail[4])
	assert.Equal(t, "D", detail[3], "debit/credit flag defaults to D")
}

func TestBuildLocalCurrencyUnconverted(t *testing.T) {
	builder := NewBuilder(nil)

	batch := []entity.PostingItem{{
		Account:     "430",
		Description: "Honorarios",
		DebitCredit: "H",
		Amount:      decimal.RequireFromString("2500.50"),
		Currency:    "UYU",
		Date:        "2024-05-13",
	}}

	doc, err := builder.Build(batch, testRate("41.95"))
	require.NoError(t, err)

	detail := strings.Split(strings.TrimSuffix(doc.Lines()[2], "\n"), "|")
	assert.Equal(t, "       250050", detail[4])
	assert.Equal(t, "H", detail[3])
}

func TestBuildUSDAliases(t *testing.T) {
	builder := NewBuilder(nil)

	for _, alias := range []string{"USD", "US$", "DOL", "DÓLAR", "dólar", "usd"} {
		t.Run(alias, func(t *testing.T) {
			batch := []entity.PostingItem{{
				Account:  "101",
				Amount:   decimal.NewFromInt(10),
				Currency: alias,
				Date:     "2024-05-13",
			}}

			doc, err := builder.Build(batch, testRate("40"))
			require.NoError(t, err)

			detail := strings.Split(strings.TrimSuffix(doc.Lines()[2], "\n"), "|")
			assert.Equal(t, "40000", strings.TrimSpace(detail[4]))
		})
	}
}

func TestBuildEmptyBatch(t *testing.T) {
	builder := NewBuilder(nil)

	doc, err := builder.Build(nil, testRate("41.95"))

	assert.Nil(t, doc)
	assert.ErrorIs(t, err, entity.ErrEmptyBatch)
}

func TestBuildSupplierDefaults(t *testing.T) {
	builder := NewBuilder(nil)

	batch := []entity.PostingItem{{
		Account: "101",
		Amount:  decimal.NewFromInt(1),
		Date:    "2024-05-13",
	}}

	doc, err := builder.Build(batch, testRate("41.95"))
	require.NoError(t, err)

	summary := strings.Split(strings.TrimSuffix(doc.Lines()[1], "\n"), "|")
	assert.True(t, strings.HasPrefix(summary[4], "- 000000 SIN NOMBRE"))
}

func TestBuildNormalizesNewlines(t *testing.T) {
	builder := NewBuilder(nil)

	batch := []entity.PostingItem{{
		Account:      "101",
		Description:  "linea uno\nlinea dos",
		Amount:       decimal.NewFromInt(1),
		Date:         "2024-05-13",
		SupplierName: "ACME\nSRL",
	}}

	doc, err := builder.Build(batch, testRate("41.95"))
	require.NoError(t, err)

	for _, line := range doc.Lines() {
		assert.Equal(t, 1, strings.Count(line, "\n"), "exactly one line break per record")
	}

	summary := strings.Split(doc.Lines()[1], "|")
	assert.Contains(t, summary[4], "ACME SRL")

	detail := strings.Split(doc.Lines()[2], "|")
	assert.Contains(t, detail[2], "linea uno linea dos")
}

func TestBuildLineOrderAndCount(t *testing.T) {
	builder := NewBuilder(nil)

	batch := make([]entity.PostingItem, 5)
	for i := range batch {
		batch[i] = entity.PostingItem{
			Account: "101",
			Amount:  decimal.NewFromInt(int64(i + 1)),
			Date:    "2024-05-13",
		}
	}

	doc, err := builder.Build(batch, testRate("41.95"))
	require.NoError(t, err)

	lines := doc.Lines()
	require.Len(t, lines, 2+len(batch))
	assert.True(t, strings.HasPrefix(lines[0], "L|"))
	assert.True(t, strings.HasPrefix(lines[1], "A|"))
	for _, line := range lines[2:] {
		assert.True(t, strings.HasPrefix(line, "R|"))
	}

	assert.Equal(t, strings.Join(lines, ""), doc.Text())
	assert.Equal(t, 7, doc.LineCount())
}
