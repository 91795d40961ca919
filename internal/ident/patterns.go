package ident

import (
	"fmt"
	"regexp"
)

// Identifier prefixes
const (
	PrefixStaff   = "EMP"
	PrefixIntern  = "INT"
	PrefixProject = "PRJ"
	PrefixTask    = "TASK"
)

// phaseCodes maps a phase type to the short code embedded in its identifier.
var phaseCodes = map[string]string{
	"planning":    "PLN",
	"design":      "DSN",
	"development": "DEV",
	"testing":     "TST",
	"deployment":  "DPL",
}

var trailingDigits = regexp.MustCompile(`(\d+)$`)

// FormatSequential renders a plain prefixed identifier, e.g. EMP007.
func FormatSequential(prefix string, n int64) string {
	return fmt.Sprintf("%s%03d", prefix, n)
}

// FormatYearScoped renders a year-scoped identifier, e.g. PRJ-2026-0004.
func FormatYearScoped(prefix string, year int, n int64) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, year, n)
}

// YearScopeKey is the allocation scope for a year-scoped prefix. A new year
// has no sequence row yet, so its counter implicitly restarts at 1.
func YearScopeKey(prefix string, year int) string {
	return fmt.Sprintf("%s-%d", prefix, year)
}

// PhaseIdentifier derives a phase identifier from its project's identifier
// and the phase type, e.g. PRJ-2026-0001-DSN. It is deterministic: the same
// inputs always yield the same value, so no counter is involved and the
// (project, phase type) uniqueness constraint is the only guard needed.
func PhaseIdentifier(projectID, phaseType string) (string, error) {
	code, ok := phaseCodes[phaseType]
	if !ok {
		return "", fmt.Errorf("unknown phase type %q", phaseType)
	}
	return fmt.Sprintf("%s-%s", projectID, code), nil
}

// ValidPhaseType reports whether phaseType is one of the fixed phase types.
func ValidPhaseType(phaseType string) bool {
	_, ok := phaseCodes[phaseType]
	return ok
}

// NumericSuffix extracts the trailing number of an identifier. Malformed
// identifiers return 0 and false; callers treat them as a data anomaly, not
// a failure.
func NumericSuffix(id string) (int64, bool) {
	match := trailingDigits.FindString(id)
	if match == "" {
		return 0, false
	}
	var n int64
	if _, err := fmt.Sscanf(match, "%d", &n); err != nil {
		return 0, false
	}
	return n, true
}
