package audio

import (
	"fmt"
	"math"
	"strconv"
)

// TrimRange is the window of source audio to keep, in seconds.
// A nil End means "until the end of the media".
type TrimRange struct {
	Start float64
	End   *float64
}

// FullRange keeps the whole media
func FullRange() TrimRange {
	return TrimRange{}
}

// NewTrimRange builds a range ending at end seconds
func NewTrimRange(start, end float64) TrimRange {
	return TrimRange{Start: start, End: &end}
}

// Unbounded reports whether the range runs to the end of the media
func (r TrimRange) Unbounded() bool {
	return r.End == nil
}

// Validate checks the range against a media duration. A zero duration skips the
// upper-bound checks.
func (r TrimRange) Validate(duration float64) error {
	if r.Start < 0 || math.IsNaN(r.Start) || math.IsInf(r.Start, 0) {
		return fmt.Errorf("%w: start %s is negative", ErrInvalidTrimRange, formatSeconds(r.Start))
	}
	if duration > 0 && r.Start >= duration {
		return fmt.Errorf("%w: start %s is beyond duration %s", ErrInvalidTrimRange, formatSeconds(r.Start), formatSeconds(duration))
	}
	if r.End == nil {
		return nil
	}
	end := *r.End
	if math.IsNaN(end) || math.IsInf(end, 0) {
		return fmt.Errorf("%w: end %s is not a finite time", ErrInvalidTrimRange, formatSeconds(end))
	}
	if end <= r.Start {
		return fmt.Errorf("%w: end time %s must be after start time %s", ErrInvalidTrimRange, formatSeconds(end), formatSeconds(r.Start))
	}
	if duration > 0 && end > duration {
		return fmt.Errorf("%w: end %s is beyond duration %s", ErrInvalidTrimRange, formatSeconds(end), formatSeconds(duration))
	}
	return nil
}

// String returns the range as "start-end" in seconds
func (r TrimRange) String() string {
	if r.End == nil {
		return formatSeconds(r.Start) + "-end"
	}
	return formatSeconds(r.Start) + "-" + formatSeconds(*r.End)
}

// SecondsArg formats seconds for command-line tools
func SecondsArg(s float64) string {
	return formatSeconds(s)
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}
