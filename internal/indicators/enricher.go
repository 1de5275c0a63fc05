package indicators

import (
	"math"

	"github.com/cinar/indicator"

	"github.com/selivandex/stock-forecaster/pkg/models"
)

const (
	rsiPeriod        = 14
	bollingerPeriod  = 20
	volatilityPeriod = 20
)

// Enricher computes derived per-day technical fields over a merged
// series. Rows with insufficient history carry nil for the affected
// field; rows are never dropped.
type Enricher struct{}

// NewEnricher creates new technical enricher
func NewEnricher() *Enricher {
	return &Enricher{}
}

// Enrich returns a copy of records with technical fields populated.
// Field order matters: returns feed volatility, closes feed everything
// else. Series shorter than 2 records come back unchanged.
func (e *Enricher) Enrich(records []models.MergedRecord) []models.MergedRecord {
	out := make([]models.MergedRecord, len(records))
	copy(out, records)

	if len(out) < 2 {
		return out
	}

	n := len(out)
	closes := make([]float64, n)
	volumes := make([]float64, n)
	for i := range out {
		closes[i] = out[i].Close
		volumes[i] = out[i].Volume
	}

	// Daily return and volume change, undefined for the first row
	returns := make([]*float64, n)
	for i := 1; i < n; i++ {
		if out[i-1].Close != 0 {
			r := out[i].Close/out[i-1].Close - 1
			returns[i] = &r
			out[i].DailyReturn = &r
		}
		if out[i-1].Volume != 0 {
			v := out[i].Volume/out[i-1].Volume - 1
			out[i].VolumeChange = &v
		}
	}

	// Simple moving averages of close
	ma5 := rollingMean(closes, 5)
	ma10 := rollingMean(closes, 10)
	ma20 := rollingMean(closes, bollingerPeriod)
	sd20 := rollingStd(closes, bollingerPeriod)
	for i := 0; i < n; i++ {
		out[i].MA5 = ma5[i]
		out[i].MA10 = ma10[i]
		out[i].MA20 = ma20[i]
		if ma20[i] != nil && sd20[i] != nil {
			upper := *ma20[i] + 2**sd20[i]
			lower := *ma20[i] - 2**sd20[i]
			out[i].UpperBand = &upper
			out[i].LowerBand = &lower
		}
	}

	// RSI-14: rolling mean of gains over rolling mean of loss magnitudes
	rsi := rollingRSI(closes, rsiPeriod)
	for i := 0; i < n; i++ {
		out[i].RSI = rsi[i]
	}

	// MACD 12/26 with 9-day signal, recursive EMA convention.
	// Defined from the first row onward, matching the EMA recursion.
	macdLine, signalLine := indicator.Macd(closes)
	for i := 0; i < n; i++ {
		m, s := macdLine[i], signalLine[i]
		h := m - s
		out[i].MACD = &m
		out[i].MACDSignal = &s
		out[i].MACDHistogram = &h
	}

	// 20-day volatility of daily returns; needs a full window of
	// defined returns, so the first row's undefined return shifts the
	// first value to row volatilityPeriod
	vol := rollingStdNullable(returns, volatilityPeriod)
	for i := 0; i < n; i++ {
		out[i].Volatility = vol[i]
	}

	return out
}

// rollingMean computes a window-sized simple moving average; the first
// period-1 entries are nil
func rollingMean(values []float64, period int) []*float64 {
	result := make([]*float64, len(values))
	if len(values) < period {
		return result
	}

	var sum float64
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			mean := sum / float64(period)
			result[i] = &mean
		}
	}
	return result
}

// rollingStd computes the window-sized sample standard deviation
func rollingStd(values []float64, period int) []*float64 {
	result := make([]*float64, len(values))
	if len(values) < period || period < 2 {
		return result
	}

	for i := period - 1; i < len(values); i++ {
		window := values[i-period+1 : i+1]
		sd := sampleStd(window)
		result[i] = &sd
	}
	return result
}

// rollingStdNullable is rollingStd over a nullable series; windows
// containing a nil operand produce nil
func rollingStdNullable(values []*float64, period int) []*float64 {
	result := make([]*float64, len(values))
	if len(values) < period || period < 2 {
		return result
	}

	window := make([]float64, 0, period)
	for i := period - 1; i < len(values); i++ {
		window = window[:0]
		complete := true
		for j := i - period + 1; j <= i; j++ {
			if values[j] == nil {
				complete = false
				break
			}
			window = append(window, *values[j])
		}
		if !complete {
			continue
		}
		sd := sampleStd(window)
		result[i] = &sd
	}
	return result
}

// rollingRSI computes Wilder-style RSI over rolling means of gains and
// losses; the first `period` rows are nil because the first delta is
// undefined
func rollingRSI(closes []float64, period int) []*float64 {
	n := len(closes)
	result := make([]*float64, n)
	if n <= period {
		return result
	}

	gains := make([]float64, n)
	losses := make([]float64, n)
	for i := 1; i < n; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	for i := period; i < n; i++ {
		var gainSum, lossSum float64
		for j := i - period + 1; j <= i; j++ {
			gainSum += gains[j]
			lossSum += losses[j]
		}
		meanGain := gainSum / float64(period)
		meanLoss := lossSum / float64(period)

		var rsi float64
		switch {
		case meanLoss == 0 && meanGain == 0:
			continue // flat window, RSI undefined
		case meanLoss == 0:
			rsi = 100
		default:
			rs := meanGain / meanLoss
			rsi = 100 - 100/(1+rs)
		}
		result[i] = &rsi
	}
	return result
}

func sampleStd(window []float64) float64 {
	n := float64(len(window))
	var sum float64
	for _, v := range window {
		sum += v
	}
	mean := sum / n

	var ss float64
	for _, v := range window {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / (n - 1))
}
