package internal

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/shopspring/decimal"

	"github.com/pometrix/ledger-export/internal/application/service"
	"github.com/pometrix/ledger-export/internal/domain/entity"
	"github.com/pometrix/ledger-export/internal/domain/ledger"
	"github.com/pometrix/ledger-export/internal/infrastructure/db"
)

// staticQuoteSource publishes the same buy/sell pair for every business day,
// so the pipeline can be exercised without hitting the real quotation service.
type staticQuoteSource struct {
	buy  decimal.Decimal
	sell decimal.Decimal
}

func (s *staticQuoteSource) Query(_ context.Context, date time.Time) (*entity.ExchangeRate, error) {
	if !entity.IsBusinessDay(date) {
		return nil, nil
	}
	return &entity.ExchangeRate{Date: date, Buy: s.buy, Sell: s.sell}, nil
}

func TestPerformance(t *testing.T) {
	// Skip in short mode or CI
	if testing.Short() {
		t.Skip("Skipping performance test in short mode")
	}

	dbPath, err := os.MkdirTemp("", "badger-perf-test")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(dbPath)

	badgerOpts := badger.DefaultOptions(dbPath).WithLogger(nil)
	badgerDB, err := badger.Open(badgerOpts)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer badgerDB.Close()

	store := db.NewBadgerFileStore(badgerDB)
	source := &staticQuoteSource{
		buy:  decimal.RequireFromString("41.95"),
		sell: decimal.RequireFromString("42.15"),
	}
	resolver := service.NewRateResolver(source, nil)
	builder := ledger.NewBuilder(&ledger.Encoder{})
	naming := service.NewNamingService(store, nil)
	exportSvc := service.NewExportService(resolver, builder, naming, store, nil)

	numBatches := 100
	linesPerBatch := 50
	concurrency := 10

	// Export is serialized because file naming is max+1 over the store; the
	// interesting number is end-to-end batches per second.
	t.Run("Batch Export", func(t *testing.T) {
		ctx := context.Background()
		startTime := time.Now()

		for i := 0; i < numBatches; i++ {
			batch := makeBatch(i, linesPerBatch)
			if _, err := exportSvc.Export(ctx, batch); err != nil {
				t.Fatalf("Error exporting batch %d: %v", i, err)
			}
		}

		duration := time.Since(startTime)
		throughput := float64(numBatches) / duration.Seconds()
		t.Logf("Batch export: %d batches of %d lines in %v (%.2f batches/sec)",
			numBatches, linesPerBatch, duration, throughput)
	})

	// Rate resolution and document building have no shared state and are
	// exercised concurrently.
	t.Run("Rate Resolution", func(t *testing.T) {
		startTime := time.Now()

		wg := sync.WaitGroup{}
		wg.Add(concurrency)

		lookupsPerWorker := numBatches / concurrency

		for i := 0; i < concurrency; i++ {
			go func(workerID int) {
				defer wg.Done()

				ctx := context.Background()
				for j := 0; j < lookupsPerWorker; j++ {
					date := time.Now().AddDate(0, 0, -(j % 30))
					if _, err := resolver.Resolve(ctx, date); err != nil {
						t.Logf("Error resolving rate: %v", err)
					}
				}
			}(i)
		}

		wg.Wait()
		duration := time.Since(startTime)

		throughput := float64(numBatches) / duration.Seconds()
		t.Logf("Rate resolution: %d lookups in %v (%.2f lookups/sec)",
			numBatches, duration, throughput)
	})

	t.Run("Document Building", func(t *testing.T) {
		rate := &entity.ExchangeRate{
			Date: time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC),
			Buy:  source.buy,
			Sell: source.sell,
		}

		startTime := time.Now()

		wg := sync.WaitGroup{}
		wg.Add(concurrency)

		buildsPerWorker := numBatches / concurrency

		for i := 0; i < concurrency; i++ {
			go func(workerID int) {
				defer wg.Done()

				for j := 0; j < buildsPerWorker; j++ {
					batch := makeBatch(workerID*buildsPerWorker+j, linesPerBatch)
					if _, err := builder.Build(batch, rate); err != nil {
						t.Logf("Error building document: %v", err)
					}
				}
			}(i)
		}

		wg.Wait()
		duration := time.Since(startTime)

		throughput := float64(numBatches) / duration.Seconds()
		t.Logf("Document building: %d documents in %v (%.2f docs/sec)",
			numBatches, duration, throughput)
	})
}

// makeBatch builds a posting batch mixing local and USD lines.
func makeBatch(seed, lines int) []entity.PostingItem {
	batch := make([]entity.PostingItem, lines)
	for i := 0; i < lines; i++ {
		currency := "UYU"
		if i%3 == 0 {
			currency = "USD"
		}
		batch[i] = entity.PostingItem{
			Account:      fmt.Sprintf("%06d", 100000+i),
			Description:  fmt.Sprintf("Perf line %d-%d", seed, i),
			DebitCredit:  "D",
			Amount:       decimal.NewFromInt(int64(100 + i)).Add(decimal.NewFromFloat(0.5)),
			Currency:     currency,
			CostCenter:   "CC0001",
			Date:         "2024-05-13",
			SupplierID:   fmt.Sprintf("%06d", seed),
			SupplierName: "PERF SUPPLIER",
		}
	}
	return batch
}
