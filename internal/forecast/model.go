package forecast

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
)

const (
	weeklyOrder  = 3
	yearlyOrder  = 10
	weeklyPeriod = 7.0
	yearlyPeriod = 365.25
	intervalZ    = 1.96

	// negligible penalty keeping the normal equations positive definite
	basePenalty = 1e-8
)

// ModelParams are the tunable hyperparameters of the decomposable
// trend/seasonality model
type ModelParams struct {
	ChangepointPriorScale float64
	SeasonalityPriorScale float64
	Multiplicative        bool
	WeeklySeasonality     bool
	YearlySeasonality     bool
	Changepoints          int
}

// DefaultModelParams mirror the production configuration
func DefaultModelParams() ModelParams {
	return ModelParams{
		ChangepointPriorScale: 0.05,
		SeasonalityPriorScale: 10.0,
		Multiplicative:        true,
		WeeklySeasonality:     true,
		YearlySeasonality:     true,
		Changepoints:          25,
	}
}

// model is a fitted decomposable time-series model: piecewise-linear
// trend with ridge-penalized changepoints, weekly and yearly Fourier
// seasonality, US market holiday terms, and an optional standardized
// exogenous regressor. Multiplicative seasonality is realized by
// fitting on log-prices and exponentiating predictions.
type model struct {
	params       ModelParams
	logScale     bool
	origin       time.Time
	spanDays     float64
	changepoints []float64

	useRegressor  bool
	regressorMean float64
	regressorStd  float64

	weights  []float64
	yMean    float64
	yStd     float64
	residStd float64
	trainLen int
}

// fitModel trains the model on (date, value) pairs with an optional
// regressor series. The fit is a deterministic ridge least-squares
// solve, so identical inputs always produce identical forecasts.
func fitModel(params ModelParams, dates []time.Time, values []float64, regressor []float64) (*model, error) {
	n := len(values)
	if n != len(dates) || (regressor != nil && len(regressor) != n) {
		return nil, fmt.Errorf("mismatched series lengths")
	}
	if n < 10 {
		return nil, fmt.Errorf("insufficient history: %d rows", n)
	}

	m := &model{
		params:       params,
		origin:       dates[0],
		useRegressor: regressor != nil,
		trainLen:     n,
	}

	m.spanDays = daysBetween(m.origin, dates[n-1])
	if m.spanDays <= 0 {
		return nil, fmt.Errorf("degenerate date range")
	}

	// Changepoints spread uniformly over the first 80% of history
	m.changepoints = make([]float64, params.Changepoints)
	for j := range m.changepoints {
		m.changepoints[j] = 0.8 * float64(j+1) / float64(params.Changepoints+1)
	}

	// Log transform for multiplicative mode, only when prices allow it
	y := make([]float64, n)
	m.logScale = params.Multiplicative
	for _, v := range values {
		if v <= 0 {
			m.logScale = false
			break
		}
	}
	for i, v := range values {
		if m.logScale {
			y[i] = math.Log(v)
		} else {
			y[i] = v
		}
	}

	// Center and scale the target for conditioning
	m.yMean, m.yStd = meanStd(y)
	if m.yStd == 0 {
		m.yStd = 1
	}
	for i := range y {
		y[i] = (y[i] - m.yMean) / m.yStd
	}

	// Standardize the regressor; a flat regressor carries no signal
	// and is excluded from the design
	if m.useRegressor {
		m.regressorMean, m.regressorStd = meanStd(regressor)
		if m.regressorStd == 0 {
			m.useRegressor = false
		}
	}

	p := m.featureCount()
	X := mat.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		var reg float64
		if m.useRegressor {
			reg = regressor[i]
		}
		X.SetRow(i, m.features(dates[i], reg))
	}

	weights, err := ridgeSolve(X, y, m.penalties())
	if err != nil {
		return nil, fmt.Errorf("ridge solve: %w", err)
	}
	m.weights = weights

	// Residual spread in standardized model space drives the bands
	var ss float64
	for i := 0; i < n; i++ {
		pred := dot(m.weights, m.rowAt(X, i))
		d := y[i] - pred
		ss += d * d
	}
	m.residStd = math.Sqrt(ss / float64(n))

	return m, nil
}

// predict returns the point estimate and uncertainty band for a date.
// daysAhead is 0 for in-sample dates and grows with the horizon; the
// band widens accordingly.
func (m *model) predict(date time.Time, regressor float64, daysAhead int) (price, lower, upper float64) {
	f := dot(m.weights, m.features(date, regressor))
	band := intervalZ * m.residStd * math.Sqrt(1+float64(daysAhead)/float64(m.trainLen))

	center := f*m.yStd + m.yMean
	spread := band * m.yStd

	if m.logScale {
		return math.Exp(center), math.Exp(center - spread), math.Exp(center + spread)
	}
	return center, center - spread, center + spread
}

func (m *model) featureCount() int {
	p := 2 + len(m.changepoints) // intercept, slope, hinges
	if m.params.WeeklySeasonality {
		p += 2 * weeklyOrder
	}
	if m.params.YearlySeasonality {
		p += 2 * yearlyOrder
	}
	p += len(holidayNames)
	if m.useRegressor {
		p++
	}
	return p
}

// features builds one design-matrix row for a date and raw regressor value
func (m *model) features(date time.Time, regressor float64) []float64 {
	d := daysBetween(m.origin, date)
	t := d / m.spanDays

	row := make([]float64, 0, m.featureCount())
	row = append(row, 1, t)

	for _, s := range m.changepoints {
		if t > s {
			row = append(row, t-s)
		} else {
			row = append(row, 0)
		}
	}

	if m.params.WeeklySeasonality {
		row = appendFourier(row, d, weeklyPeriod, weeklyOrder)
	}
	if m.params.YearlySeasonality {
		row = appendFourier(row, d, yearlyPeriod, yearlyOrder)
	}

	name, isHoliday := holidayName(date)
	for _, h := range holidayNames {
		if isHoliday && h == name {
			row = append(row, 1)
		} else {
			row = append(row, 0)
		}
	}

	if m.useRegressor {
		row = append(row, (regressor-m.regressorMean)/m.regressorStd)
	}

	return row
}

// penalties returns the per-feature ridge penalty, aligned with the
// feature layout. Tighter priors mean larger penalties.
func (m *model) penalties() []float64 {
	pen := make([]float64, 0, m.featureCount())
	pen = append(pen, basePenalty, basePenalty) // intercept, slope

	cpPenalty := 1 / m.params.ChangepointPriorScale
	for range m.changepoints {
		pen = append(pen, cpPenalty)
	}

	seasPenalty := 1 / m.params.SeasonalityPriorScale
	if m.params.WeeklySeasonality {
		for i := 0; i < 2*weeklyOrder; i++ {
			pen = append(pen, seasPenalty)
		}
	}
	if m.params.YearlySeasonality {
		for i := 0; i < 2*yearlyOrder; i++ {
			pen = append(pen, seasPenalty)
		}
	}

	for range holidayNames {
		pen = append(pen, seasPenalty)
	}

	if m.useRegressor {
		pen = append(pen, seasPenalty)
	}

	return pen
}

// ridgeSolve solves (X'X + diag(penalties)) w = X'y via Cholesky
func ridgeSolve(X *mat.Dense, y, penalties []float64) ([]float64, error) {
	_, p := X.Dims()

	var xtx mat.Dense
	xtx.Mul(X.T(), X)

	sym := mat.NewSymDense(p, nil)
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			v := xtx.At(i, j)
			if i == j {
				v += penalties[i] + basePenalty
			}
			sym.SetSym(i, j, v)
		}
	}

	var xty mat.VecDense
	xty.MulVec(X.T(), mat.NewVecDense(len(y), y))

	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return nil, fmt.Errorf("normal equations not positive definite")
	}

	var w mat.VecDense
	if err := chol.SolveVecTo(&w, &xty); err != nil {
		return nil, err
	}

	weights := make([]float64, p)
	copy(weights, w.RawVector().Data)
	return weights, nil
}

func appendFourier(row []float64, day, period float64, order int) []float64 {
	for k := 1; k <= order; k++ {
		arg := 2 * math.Pi * float64(k) * day / period
		row = append(row, math.Sin(arg), math.Cos(arg))
	}
	return row
}

func (m *model) rowAt(X *mat.Dense, i int) []float64 {
	_, p := X.Dims()
	row := make([]float64, p)
	mat.Row(row, i, X)
	return row
}

func daysBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24
}

func meanStd(values []float64) (float64, float64) {
	n := float64(len(values))
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / n

	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return mean, math.Sqrt(ss / n)
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
