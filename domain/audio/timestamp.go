package audio

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// tupleRegex matches "(m, s)" and "(h, m, s)" forms
var tupleRegex = regexp.MustCompile(`^\(\s*([0-9.]+)\s*,\s*([0-9.]+)\s*(?:,\s*([0-9.]+)\s*)?\)$`)

// clockRegex matches MM:SS and HH:MM:SS forms
var clockRegex = regexp.MustCompile(`^(\d+):(\d{1,2})(?::(\d{1,2}(?:\.\d+)?))?$`)

// TupleSeconds converts (seconds), (minutes, seconds) or (hours, minutes, seconds)
// into seconds
func TupleSeconds(parts ...float64) (float64, error) {
	switch len(parts) {
	case 1:
		return parts[0], nil
	case 2:
		return parts[0]*60 + parts[1], nil
	case 3:
		return parts[0]*3600 + parts[1]*60 + parts[2], nil
	default:
		return 0, fmt.Errorf("invalid time tuple: expected 1 to 3 parts, got %d", len(parts))
	}
}

// ParseTimeValue parses a user-entered time. ok is false for empty input, which
// callers treat as the default for that bound.
func ParseTimeValue(s string) (seconds float64, ok bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, nil
	}

	if m := tupleRegex.FindStringSubmatch(s); m != nil {
		parts, err := parseParts(m[1:])
		if err != nil {
			return 0, false, fmt.Errorf("invalid time %q: %w", s, err)
		}
		secs, err := TupleSeconds(parts...)
		return secs, err == nil, err
	}

	if m := clockRegex.FindStringSubmatch(s); m != nil {
		parts, err := parseParts(m[1:])
		if err != nil {
			return 0, false, fmt.Errorf("invalid time %q: %w", s, err)
		}
		for _, p := range parts[1:] {
			if p >= 60 {
				return 0, false, fmt.Errorf("invalid time %q: minutes and seconds must be 0-59", s)
			}
		}
		secs, err := TupleSeconds(parts...)
		return secs, err == nil, err
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid time format %q: expected seconds, (m, s), (h, m, s) or HH:MM:SS", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false, fmt.Errorf("invalid time %q: must be a finite number of seconds", s)
	}
	if v < 0 {
		return 0, false, fmt.Errorf("invalid time %q: must not be negative", s)
	}
	return v, true, nil
}

func parseParts(raw []string) ([]float64, error) {
	var parts []float64
	for _, r := range raw {
		if r == "" {
			continue
		}
		v, err := strconv.ParseFloat(r, 64)
		if err != nil {
			return nil, err
		}
		parts = append(parts, v)
	}
	return parts, nil
}
