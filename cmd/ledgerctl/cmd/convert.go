package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/pometrix/ledger-export/internal/domain/entity"
	"github.com/pometrix/ledger-export/internal/domain/ledger"
	"github.com/pometrix/ledger-export/internal/infrastructure/handler"
)

var (
	convertIn       string
	convertOut      string
	convertRate     string
	convertRateDate string
	trailingBar     bool
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a posting JSON file to a ledger import file",
	Long: `Convert reads a posting batch (the same JSON shape the HTTP endpoint
accepts) and writes the fixed-width ledger file, using a rate given on the
command line instead of querying the quotation service.

Example:
  ledgerctl convert --in batch.json --rate 41.95 --out Fact0001.txt`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertIn, "in", "", "posting batch JSON file (required)")
	convertCmd.Flags().StringVar(&convertOut, "out", "", "output file (default stdout)")
	convertCmd.Flags().StringVar(&convertRate, "rate", "", "USD buy rate to apply (required)")
	convertCmd.Flags().StringVar(&convertRateDate, "rate-date", "", "business date of the rate (default: batch date)")
	convertCmd.Flags().BoolVar(&trailingBar, "trailing-bar", false, "end each record with a trailing delimiter")

	convertCmd.MarkFlagRequired("in")
	convertCmd.MarkFlagRequired("rate")
}

func runConvert(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(convertIn)
	if err != nil {
		return err
	}

	var req handler.ExportRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("parsing %s: %w", convertIn, err)
	}

	buy, err := decimal.NewFromString(convertRate)
	if err != nil {
		return fmt.Errorf("invalid rate %q: %w", convertRate, err)
	}

	items := req.ToEntities()
	if len(items) == 0 {
		return entity.ErrEmptyBatch
	}

	rateDate := convertRateDate
	if rateDate == "" {
		rateDate = items[0].Date
	}
	parsedDate, err := parseDay(rateDate)
	if err != nil {
		return err
	}

	builder := ledger.NewBuilder(&ledger.Encoder{TrailingDelimiter: trailingBar})
	doc, err := builder.Build(items, &entity.ExchangeRate{Date: parsedDate, Buy: buy, Sell: buy})
	if err != nil {
		return err
	}

	if convertOut == "" {
		fmt.Print(doc.Text())
		return nil
	}
	return os.WriteFile(convertOut, doc.Bytes(), 0644)
}
