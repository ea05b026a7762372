// Package timecalc does the daily time record arithmetic: HH:MM clock strings,
// per-shift durations and the human readable total.
package timecalc

import (
	"fmt"
	"strconv"
	"strings"
)

// NotSet is reported instead of "0h 0m" when no time was rendered.
const NotSet = "Not set"

// ParseClock converts a 24-hour "HH:MM" string to minutes since midnight.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("timecalc: %q is not HH:MM", s)
	}
	if !digits(hh) || !digits(mm) {
		return 0, fmt.Errorf("timecalc: %q is not HH:MM", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 || len(hh) > 2 {
		return 0, fmt.Errorf("timecalc: bad hour in %q", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 || len(mm) != 2 {
		return 0, fmt.Errorf("timecalc: bad minute in %q", s)
	}
	return h*60 + m, nil
}

func digits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Shift is one in/out pair. Empty strings mean the endpoint was not logged.
type Shift struct {
	In  string
	Out string
}

// Complete reports whether both endpoints were logged.
func (s Shift) Complete() bool {
	return strings.TrimSpace(s.In) != "" && strings.TrimSpace(s.Out) != ""
}

// Minutes returns out minus in. An incomplete shift contributes zero. An out
// time earlier than the in time yields a negative duration.
func (s Shift) Minutes() (int, error) {
	if !s.Complete() {
		return 0, nil
	}
	in, err := ParseClock(s.In)
	if err != nil {
		return 0, err
	}
	out, err := ParseClock(s.Out)
	if err != nil {
		return 0, err
	}
	return out - in, nil
}

// TotalMinutes sums the contribution of every shift.
func TotalMinutes(shifts ...Shift) (int, error) {
	total := 0
	for _, s := range shifts {
		m, err := s.Minutes()
		if err != nil {
			return 0, err
		}
		total += m
	}
	return total, nil
}

// Format renders minutes as "{h}h {m}m", or NotSet for zero.
func Format(total int) string {
	if total == 0 {
		return NotSet
	}
	sign := ""
	if total < 0 {
		sign = "-"
		total = -total
	}
	return fmt.Sprintf("%s%dh %dm", sign, total/60, total%60)
}

// Hours converts minutes to fractional hours.
func Hours(total int) float64 {
	return float64(total) / 60
}
