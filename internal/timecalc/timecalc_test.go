package timecalc

import "testing"

func TestParseClock(t *testing.T) {
	cases := map[string]int{
		"00:00": 0,
		"07:00": 420,
		"7:05":  425,
		"12:30": 750,
		"23:59": 1439,
	}
	for in, want := range cases {
		got, err := ParseClock(in)
		if err != nil {
			t.Fatalf("ParseClock(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseClock(%q) = %d, want %d", in, got, want)
		}
	}
	for _, bad := range []string{"", "0700", "24:00", "12:60", "ab:cd", "12:5", "123:00", "+7:00", "-0:30", "07:+5", ":30"} {
		if _, err := ParseClock(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestFullDay(t *testing.T) {
	total, err := TotalMinutes(Shift{In: "07:00", Out: "12:00"}, Shift{In: "13:00", Out: "17:00"})
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if got := Format(total); got != "9h 0m" {
		t.Fatalf("expected 9h 0m, got %q", got)
	}
}

func TestAllEmptyIsNotSet(t *testing.T) {
	total, err := TotalMinutes(Shift{}, Shift{})
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if got := Format(total); got != NotSet {
		t.Fatalf("expected %q, got %q", NotSet, got)
	}
}

func TestMissingEndpointContributesZero(t *testing.T) {
	total, err := TotalMinutes(Shift{In: "08:15", Out: "12:00"}, Shift{In: "13:00"})
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total != 225 {
		t.Fatalf("expected 225 minutes, got %d", total)
	}
	if got := Format(total); got != "3h 45m" {
		t.Fatalf("unexpected format %q", got)
	}
}

func TestOutBeforeInIsNegative(t *testing.T) {
	total, err := TotalMinutes(Shift{In: "13:00", Out: "11:30"})
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total != -90 {
		t.Fatalf("expected -90, got %d", total)
	}
	if got := Format(total); got != "-1h 30m" {
		t.Fatalf("unexpected format %q", got)
	}
}

func TestMalformedTimeFails(t *testing.T) {
	if _, err := TotalMinutes(Shift{In: "seven", Out: "12:00"}); err == nil {
		t.Fatalf("expected error for malformed time")
	}
}

func TestHours(t *testing.T) {
	if got := Hours(90); got != 1.5 {
		t.Fatalf("expected 1.5, got %v", got)
	}
}
