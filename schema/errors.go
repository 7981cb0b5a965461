package schema

import (
	"errors"
	"fmt"
)

// Sentinel errors for the series pipeline. Match them with errors.Is.
var (
	ErrParse              = errors.New("invalid JSON")
	ErrMissingKey         = errors.New("no recognized series key")
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	ErrInvalidThroughput  = errors.New("invalid throughput value")
	ErrEmptySeries        = errors.New("series has no samples")
)

// SeriesError reports a pipeline failure for a specific file and field.
type SeriesError struct {
	Path  string // Input file, empty when the series did not come from a file
	Field string // Offending key or timestamp, empty when not applicable
	Err   error  // One of the sentinel errors, possibly wrapped
}

func (e *SeriesError) Error() string {
	switch {
	case e.Path != "" && e.Field != "":
		return fmt.Sprintf("%s: field %q: %v", e.Path, e.Field, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	case e.Field != "":
		return fmt.Sprintf("field %q: %v", e.Field, e.Err)
	default:
		return e.Err.Error()
	}
}

func (e *SeriesError) Unwrap() error {
	return e.Err
}

// WithPath returns err annotated with path. A SeriesError keeps its field and gains the path.
func WithPath(err error, path string) error {
	if err == nil {
		return nil
	}
	var se *SeriesError
	if errors.As(err, &se) {
		if se.Path != "" {
			return err
		}
		return &SeriesError{Path: path, Field: se.Field, Err: se.Err}
	}
	return &SeriesError{Path: path, Err: err}
}
