package core

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/finsight/finsight/schema"
)

// Options configures one analysis pass over a merged dataset.
type Options struct {
	// Measure is the target measure for anomaly detection and forecasting.
	// Empty selects the first measure column. The selection is always
	// explicit here; nothing is inherited from ambient state.
	Measure string

	// Rand feeds the two placeholder indicators. Nil gets a time-seeded
	// source; tests inject a fixed seed.
	Rand *rand.Rand

	// AnomalyHead bounds the anomaly list embedded in the summary.
	AnomalyHead int
}

// Result is the combined output of one analysis pass. A nil Health, nil
// Anomalies or nil Forecast means the dependent role was absent; Notes says
// which feature was disabled and why.
type Result struct {
	Roles     schema.ColumnRoles     `json:"roles"`
	Measure   string                 `json:"measure,omitempty"`
	Health    schema.HealthScore     `json:"health,omitempty"`
	Anomalies []schema.Anomaly       `json:"anomalies,omitempty"`
	Forecast  []schema.ForecastPoint `json:"forecast,omitempty"`
	Summary   schema.DatasetSummary  `json:"summary"`
	Notes     []string               `json:"notes,omitempty"`
}

// SelectMeasure resolves the target measure for an analysis: the requested
// column when given (it must be one of the measure columns), otherwise the
// first measure column, otherwise empty.
func SelectMeasure(roles schema.ColumnRoles, requested string) (string, error) {
	if requested == "" {
		if len(roles.MeasureColumns) == 0 {
			return "", nil
		}
		return roles.MeasureColumns[0], nil
	}
	if !slices.Contains(roles.MeasureColumns, requested) {
		return "", &MissingColumnError{Column: requested}
	}
	return requested, nil
}

// RunAnalysis infers the column roles and computes health scores, anomalies
// and the forecast over one immutable dataset. The three consumers are
// independent, so they run concurrently; none of them mutates the dataset and
// no synchronization beyond the join is needed. Missing optional roles
// disable the dependent computation with a note instead of failing; only
// precondition violations (an explicitly requested measure that does not
// exist) and malformed series fail the pass.
func RunAnalysis(ds *schema.Dataset, opts Options) (*Result, error) {
	roles := InferRoles(ds)
	measure, err := SelectMeasure(roles, opts.Measure)
	if err != nil {
		return nil, err
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	result := &Result{Roles: roles, Measure: measure}

	runHealth := len(roles.MeasureColumns) > 0
	runAnomalies := roles.CategoryColumn != "" && measure != ""
	runForecast := roles.TimeColumn != "" && measure != ""

	var (
		wg                                 sync.WaitGroup
		healthErr, anomalyErr, forecastErr error
	)
	if runHealth {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result.Health, healthErr = ScoreHealth(ds, roles.MeasureColumns, rng)
		}()
	}
	if runAnomalies {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result.Anomalies, anomalyErr = DetectAnomalies(ds, roles.CategoryColumn, measure)
		}()
	}
	if runForecast {
		wg.Add(1)
		go func() {
			defer wg.Done()
			series, err := BuildSeries(ds, roles.TimeColumn, measure)
			if err != nil {
				forecastErr = err
				return
			}
			result.Forecast, forecastErr = Forecast(series)
		}()
	}
	wg.Wait()

	// A too-short series disables the forecast; everything else is a failure.
	var insufficient *InsufficientDataError
	if errors.As(forecastErr, &insufficient) {
		result.Notes = append(result.Notes, fmt.Sprintf("forecast unavailable: %v", insufficient))
		forecastErr = nil
	}
	if err := errors.Join(healthErr, anomalyErr, forecastErr); err != nil {
		return nil, err
	}

	if !runHealth {
		result.Notes = append(result.Notes, "health scores unavailable: no measure columns")
	}
	if !runAnomalies {
		result.Notes = append(result.Notes, "anomaly detection unavailable: no category column or no measure")
	}
	if !runForecast {
		result.Notes = append(result.Notes, "forecast unavailable: no time column or no measure")
	}

	result.Summary = Summarize(ds, roles, result.Anomalies, opts.AnomalyHead)
	return result, nil
}
