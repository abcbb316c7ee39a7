package acedash

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input workbook does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrInvalidInput indicates a request the caller must fix. It is never
// retried.
var ErrInvalidInput = errors.New("invalid input")

var (
	// ErrInvalidChartID indicates an unknown chart identifier.
	ErrInvalidChartID = fmt.Errorf("%w: chart id", ErrInvalidInput)
	// ErrInvalidMode indicates an aggregation mode other than new or cumulative.
	ErrInvalidMode = fmt.Errorf("%w: aggregation mode", ErrInvalidInput)
	// ErrInvalidTimeMode indicates a time mode other than month, semester or year.
	ErrInvalidTimeMode = fmt.Errorf("%w: time mode", ErrInvalidInput)
	// ErrEmptySelection indicates a time selection that covers no available month.
	ErrEmptySelection = fmt.Errorf("%w: empty time selection", ErrInvalidInput)
)

// DataSourceError represents a failure to fetch or read a backing table.
type DataSourceError struct {
	Table string
	Err   error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("data source error in table %q: %v", e.Table, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

// NewDataSourceError creates a new DataSourceError.
func NewDataSourceError(table string, err error) *DataSourceError {
	return &DataSourceError{
		Table: table,
		Err:   err,
	}
}
