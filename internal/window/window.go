package window

import (
	"errors"
	"fmt"
	"time"
)

// Layout is the only accepted timestamp form. There is no zone suffix; values
// are read in the local time zone.
const Layout = "2006-01-02T15:04:05"

// TimeWindow is an epoch-millisecond range, inclusive on both ends.
type TimeWindow struct {
	Start int64
	End   int64
}

// ParseError reports a timestamp that does not match Layout.
type ParseError struct {
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid timestamp %q (expected %s): %v", e.Value, Layout, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse converts a Layout timestamp to epoch milliseconds.
func Parse(s string) (int64, error) {
	return parseIn(s, time.Local)
}

// errLength rejects inputs that time.Parse would otherwise accept, such as a
// fractional seconds suffix.
var errLength = errors.New("length does not match layout")

func parseIn(s string, loc *time.Location) (int64, error) {
	if len(s) != len(Layout) {
		return 0, &ParseError{Value: s, Err: errLength}
	}
	t, err := time.ParseInLocation(Layout, s, loc)
	if err != nil {
		return 0, &ParseError{Value: s, Err: err}
	}
	return t.UnixMilli(), nil
}

// New parses both ends of a window. Ordering is not checked here.
func New(start, end string) (TimeWindow, error) {
	s, err := Parse(start)
	if err != nil {
		return TimeWindow{}, err
	}
	e, err := Parse(end)
	if err != nil {
		return TimeWindow{}, err
	}
	return TimeWindow{Start: s, End: e}, nil
}

// Contains reports whether ms falls within [Start, End].
func (w TimeWindow) Contains(ms int64) bool {
	return w.Start <= ms && ms <= w.End
}
