package core

import "fmt"

// IngestionError reports a source that could not be parsed as tabular data.
type IngestionError struct {
	Source string
	Err    error
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("cannot ingest %q: %v", e.Source, e.Err)
}

func (e *IngestionError) Unwrap() error { return e.Err }

// MissingColumnError reports a requested column that is absent from the
// merged schema. Absence of an optional role is not an error; this fires only
// when a caller names a column explicitly.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q is not present in the dataset", e.Column)
}

// InsufficientDataError reports a time series too short to anchor a forecast.
type InsufficientDataError struct {
	Points int
	Needed int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("need at least %d data points to forecast, got %d", e.Needed, e.Points)
}

// UnsortedInputError reports a time series whose dates decrease. The
// forecaster fails fast instead of re-sorting; sorting is the caller's job.
type UnsortedInputError struct {
	Index int
}

func (e *UnsortedInputError) Error() string {
	return fmt.Sprintf("series dates must be ascending, found a decrease at index %d", e.Index)
}
