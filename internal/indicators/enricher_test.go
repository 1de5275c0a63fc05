package indicators

import (
	"math"
	"testing"
	"time"

	"github.com/selivandex/stock-forecaster/pkg/models"
)

func TestEnricher_Enrich(t *testing.T) {
	enricher := NewEnricher()
	records := generateTestRecords(60, 100, 0.01)

	out := enricher.Enrich(records)
	if len(out) != len(records) {
		t.Fatalf("Expected %d records, got %d", len(records), len(out))
	}

	// First row has no previous close, so no return or volume change
	if out[0].DailyReturn != nil {
		t.Error("First row should have nil daily return")
	}
	if out[0].VolumeChange != nil {
		t.Error("First row should have nil volume change")
	}

	if out[1].DailyReturn == nil {
		t.Fatal("Second row should have a daily return")
	}
	if math.Abs(*out[1].DailyReturn-0.01) > 1e-9 {
		t.Errorf("Expected return 0.01, got %.6f", *out[1].DailyReturn)
	}

	// Moving-average warmup windows
	if out[3].MA5 != nil {
		t.Error("MA5 should be nil before 5 rows of history")
	}
	if out[4].MA5 == nil {
		t.Error("MA5 should exist from row 5")
	}
	if out[18].MA20 != nil {
		t.Error("MA20 should be nil before 20 rows of history")
	}
	if out[19].MA20 == nil {
		t.Error("MA20 should exist from row 20")
	}

	// Bollinger bands bracket the middle average
	last := out[len(out)-1]
	if last.UpperBand == nil || last.LowerBand == nil || last.MA20 == nil {
		t.Fatal("Bands and MA20 should exist on the last row")
	}
	if *last.UpperBand <= *last.MA20 || *last.MA20 <= *last.LowerBand {
		t.Errorf("Expected lower < middle < upper, got %.2f / %.2f / %.2f",
			*last.LowerBand, *last.MA20, *last.UpperBand)
	}

	// RSI needs 14 deltas; a strictly rising series pins it at 100
	if out[13].RSI != nil {
		t.Error("RSI should be nil before 14 deltas")
	}
	if out[14].RSI == nil {
		t.Fatal("RSI should exist from row 15")
	}
	if *out[14].RSI != 100 {
		t.Errorf("Expected RSI 100 on an all-gains window, got %.2f", *out[14].RSI)
	}

	// MACD recursion is defined from the first row, and the histogram
	// is always the line minus the signal
	for i, r := range out {
		if r.MACD == nil || r.MACDSignal == nil || r.MACDHistogram == nil {
			t.Fatalf("MACD fields should be non-nil at row %d", i)
		}
		if math.Abs(*r.MACDHistogram-(*r.MACD-*r.MACDSignal)) > 1e-12 {
			t.Fatalf("MACD histogram identity violated at row %d", i)
		}
	}

	// Volatility needs 20 defined returns; the first return appears at
	// row 1, so the first volatility value lands on row 20
	if out[19].Volatility != nil {
		t.Error("Volatility should be nil before a full window of returns")
	}
	if out[20].Volatility == nil {
		t.Error("Volatility should exist from row 21")
	}
}

func TestEnricher_Enrich_RSIBounds(t *testing.T) {
	enricher := NewEnricher()

	// Alternate gains and losses of uneven size so RSI lands strictly
	// between its extremes
	records := generateTestRecords(40, 100, 0)
	price := 100.0
	for i := range records {
		if i%2 == 0 {
			price *= 1.02
		} else {
			price *= 0.99
		}
		records[i].Close = price
	}

	out := enricher.Enrich(records)
	seen := 0
	for i, r := range out {
		if r.RSI == nil {
			continue
		}
		seen++
		if *r.RSI <= 0 || *r.RSI >= 100 {
			t.Fatalf("RSI out of open interval at row %d: %.4f", i, *r.RSI)
		}
	}
	if seen == 0 {
		t.Fatal("Expected RSI values on a mixed series")
	}
}

func TestEnricher_Enrich_ShortSeries(t *testing.T) {
	enricher := NewEnricher()

	out := enricher.Enrich(generateTestRecords(1, 100, 0.01))
	if len(out) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(out))
	}
	if out[0].DailyReturn != nil || out[0].MA5 != nil || out[0].MACD != nil {
		t.Error("Single-row series should come back without derived fields")
	}
}

func TestEnricher_Enrich_FlatSeries(t *testing.T) {
	enricher := NewEnricher()

	out := enricher.Enrich(generateTestRecords(30, 100, 0))
	last := out[len(out)-1]

	// No gains and no losses makes RSI undefined, not 50
	if last.RSI != nil {
		t.Errorf("Expected nil RSI on a flat series, got %.2f", *last.RSI)
	}

	if last.DailyReturn == nil || *last.DailyReturn != 0 {
		t.Error("Flat series should carry zero returns")
	}

	if last.Volatility == nil || *last.Volatility != 0 {
		t.Error("Flat series should carry zero volatility")
	}
}

func TestEnricher_Enrich_DoesNotMutateInput(t *testing.T) {
	enricher := NewEnricher()
	records := generateTestRecords(30, 100, 0.01)

	enricher.Enrich(records)
	if records[20].RSI != nil || records[20].MA5 != nil {
		t.Error("Enrich should work on a copy, not the input slice")
	}
}

// generateTestRecords builds a merged series with compounding returns
func generateTestRecords(count int, startPrice, dailyReturn float64) []models.MergedRecord {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	records := make([]models.MergedRecord, count)
	price := startPrice

	for i := 0; i < count; i++ {
		records[i] = models.MergedRecord{
			Date:   start.AddDate(0, 0, i),
			Open:   price,
			High:   price * 1.002,
			Low:    price * 0.998,
			Close:  price,
			Volume: 1000 + float64(i)*10,
		}
		price *= 1 + dailyReturn
	}

	return records
}
