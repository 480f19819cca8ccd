package calendar

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest    = errors.New("invalid request")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("already exists")
	ErrAggregationFailed = errors.New("aggregation failed")
)

// AggregationError reports a failed source read together with the window
// that was being aggregated.
type AggregationError struct {
	Start  string
	End    string
	Viewer string
	Source string
	Err    error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregation failed for %s..%s (source %s): %v", e.Start, e.End, e.Source, e.Err)
}

func (e *AggregationError) Unwrap() error { return e.Err }

func (e *AggregationError) Is(target error) bool { return target == ErrAggregationFailed }

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}
