package ident

import "testing"

func TestFormatSequential(t *testing.T) {
	t.Parallel()

	cases := []struct {
		prefix string
		n      int64
		want   string
	}{
		{PrefixStaff, 1, "EMP001"},
		{PrefixStaff, 42, "EMP042"},
		{PrefixIntern, 7, "INT007"},
		{PrefixStaff, 1000, "EMP1000"}, // width grows past 999
	}
	for _, tc := range cases {
		if got := FormatSequential(tc.prefix, tc.n); got != tc.want {
			t.Errorf("FormatSequential(%q, %d) = %q, want %q", tc.prefix, tc.n, got, tc.want)
		}
	}
}

func TestFormatYearScoped(t *testing.T) {
	t.Parallel()

	if got := FormatYearScoped(PrefixProject, 2026, 1); got != "PRJ-2026-0001" {
		t.Errorf("got %q, want PRJ-2026-0001", got)
	}
	if got := FormatYearScoped(PrefixTask, 2026, 123); got != "TASK-2026-0123" {
		t.Errorf("got %q, want TASK-2026-0123", got)
	}
}

func TestPhaseIdentifier(t *testing.T) {
	t.Parallel()

	cases := []struct {
		phaseType string
		want      string
	}{
		{"planning", "PRJ-2026-0001-PLN"},
		{"design", "PRJ-2026-0001-DSN"},
		{"development", "PRJ-2026-0001-DEV"},
		{"testing", "PRJ-2026-0001-TST"},
		{"deployment", "PRJ-2026-0001-DPL"},
	}
	for _, tc := range cases {
		got, err := PhaseIdentifier("PRJ-2026-0001", tc.phaseType)
		if err != nil {
			t.Fatalf("PhaseIdentifier(%q): %v", tc.phaseType, err)
		}
		if got != tc.want {
			t.Errorf("PhaseIdentifier(%q) = %q, want %q", tc.phaseType, got, tc.want)
		}
	}

	if _, err := PhaseIdentifier("PRJ-2026-0001", "review"); err == nil {
		t.Fatal("unknown phase type must fail")
	}
}

func TestPhaseIdentifierDeterministic(t *testing.T) {
	t.Parallel()

	a, _ := PhaseIdentifier("PRJ-2026-0002", "design")
	b, _ := PhaseIdentifier("PRJ-2026-0002", "design")
	if a != b {
		t.Fatalf("same inputs produced %q and %q", a, b)
	}
}

func TestNumericSuffix(t *testing.T) {
	t.Parallel()

	cases := []struct {
		id string
		n  int64
		ok bool
	}{
		{"EMP007", 7, true},
		{"INT012", 12, true},
		{"PRJ-2026-0034", 34, true},
		{"TASK-2026-1000", 1000, true},
		{"EMPX", 0, false},
		{"", 0, false},
		{"EMP", 0, false},
	}
	for _, tc := range cases {
		n, ok := NumericSuffix(tc.id)
		if n != tc.n || ok != tc.ok {
			t.Errorf("NumericSuffix(%q) = %d, %v, want %d, %v", tc.id, n, ok, tc.n, tc.ok)
		}
	}
}

func TestValidPhaseType(t *testing.T) {
	t.Parallel()

	for _, phase := range []string{"planning", "design", "development", "testing", "deployment"} {
		if !ValidPhaseType(phase) {
			t.Errorf("%q must be valid", phase)
		}
	}
	if ValidPhaseType("review") {
		t.Error("review must be invalid")
	}
}
