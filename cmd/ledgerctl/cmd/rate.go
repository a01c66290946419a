package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pometrix/ledger-export/internal/application/service"
	"github.com/pometrix/ledger-export/internal/infrastructure/api"
	"github.com/pometrix/ledger-export/internal/infrastructure/logger"
)

var (
	rateQueryDate string
	rateEndpoint  string
)

var rateCmd = &cobra.Command{
	Use:   "rate",
	Short: "Look up the USD exchange rate for a date",
	Long: `Rate queries the quotation service for the given date, falling back to
the nearest prior business day with a published rate, exactly as the export
service does.`,
	RunE: runRate,
}

func init() {
	rateCmd.Flags().StringVar(&rateQueryDate, "date", "", "date to resolve, YYYY-MM-DD (default today)")
	rateCmd.Flags().StringVar(&rateEndpoint, "endpoint", "", "quotation service URL (default production)")
}

func runRate(cmd *cobra.Command, args []string) error {
	day := time.Now()
	if rateQueryDate != "" {
		var err error
		day, err = parseDay(rateQueryDate)
		if err != nil {
			return err
		}
	}

	log := logger.NewJSONLogger(cmd.ErrOrStderr(), logger.WarnLevel)
	client := api.NewBCUQuoteClient(rateEndpoint, nil, log)
	resolver := service.NewRateResolver(client, log)

	rate, err := resolver.Resolve(cmd.Context(), day)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "date:  %s\nbuy:   %s\nsell:  %s\n",
		rate.Date.Format("2006-01-02"), rate.Buy, rate.Sell)
	return nil
}

func parseDay(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD: %w", s, err)
	}
	return d, nil
}
