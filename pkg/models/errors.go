package models

import "errors"

var (
	// ErrDataUnavailable means no price history exists for the symbol.
	// This is the only error the forecasting endpoints propagate.
	ErrDataUnavailable = errors.New("no price data available")

	// ErrSentimentUnavailable means the series carries no usable sentiment
	// variance, so scenario analysis is meaningless.
	ErrSentimentUnavailable = errors.New("no sentiment data available")

	// ErrModelFit wraps internal fitting or prediction failures. Callers
	// convert it to a fallback result instead of propagating it.
	ErrModelFit = errors.New("model fit failed")
)
