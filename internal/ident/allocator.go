package ident

import (
	"fmt"
	"time"

	"log/slog"

	"github.com/codeedex/hr-office/internal/apperr"
	"github.com/codeedex/hr-office/internal/db"
)

var log = slog.Default().With(
	slog.String("layer", "service"),
	slog.String("service", "IdentifierAllocator"),
)

// Scope is the set of existing identifiers a "next number" is computed
// against: everything sharing Key, assigned to Column of Table.
type Scope struct {
	Key    string // sequence key, e.g. "EMP" or "PRJ-2026"
	Prefix string // identifier prefix the existing values start with
	Table  string // owning table, scanned once to seed the sequence
	Column string // identifier column in Table
}

func EmployeeScope(prefix string) Scope {
	return Scope{Key: prefix, Prefix: prefix, Table: "employees", Column: "employee_id"}
}

func ProjectScope(now time.Time) Scope {
	key := YearScopeKey(PrefixProject, now.Year())
	return Scope{Key: key, Prefix: key, Table: "projects", Column: "project_id"}
}

func TaskScope(now time.Time) Scope {
	key := YearScopeKey(PrefixTask, now.Year())
	return Scope{Key: key, Prefix: key, Table: "phase_tasks", Column: "task_id"}
}

// Store is the persistence contract the allocator runs against. All calls
// happen inside the caller's transaction; LockSequence must take an
// exclusive row lock so allocations in the same scope serialize.
type Store interface {
	LockSequence(key string) (*db.IdentifierSequence, bool, error)
	InsertSequence(seq *db.IdentifierSequence) error
	SaveSequence(seq *db.IdentifierSequence) error
	ExistingIdentifiers(scope Scope) ([]string, error)
}

// Next allocates the next number in scope. The sequence row is created
// lazily, seeded from the highest numeric suffix already assigned in the
// owning table. Two transactions racing to create the same sequence row
// both pass the not-found check; the loser's insert hits the primary key,
// rolls back to its savepoint (see gormStore.InsertSequence) and is
// retried once against the now-existing row. Numbers are unique per
// scope; gaps are possible when an enclosing transaction rolls back.
func Next(store Store, scope Scope) (int64, error) {
	n, err := next(store, scope)
	if err != nil && apperr.IsDuplicate(err) {
		log.Warn("sequence-create-race", "scope", scope.Key)
		return next(store, scope)
	}
	return n, err
}

func next(store Store, scope Scope) (int64, error) {
	seq, found, err := store.LockSequence(scope.Key)
	if err != nil {
		return 0, fmt.Errorf("lock sequence %s: %w", scope.Key, err)
	}

	if !found {
		last, err := highestAssigned(store, scope)
		if err != nil {
			return 0, err
		}
		seq = &db.IdentifierSequence{Scope: scope.Key, LastNumber: last + 1}
		if err := store.InsertSequence(seq); err != nil {
			return 0, err
		}
		return seq.LastNumber, nil
	}

	seq.LastNumber++
	if err := store.SaveSequence(seq); err != nil {
		return 0, fmt.Errorf("save sequence %s: %w", scope.Key, err)
	}
	return seq.LastNumber, nil
}

func highestAssigned(store Store, scope Scope) (int64, error) {
	ids, err := store.ExistingIdentifiers(scope)
	if err != nil {
		return 0, fmt.Errorf("scan existing identifiers for %s: %w", scope.Key, err)
	}

	var last int64
	for _, id := range ids {
		n, ok := NumericSuffix(id)
		if !ok {
			// Data anomaly, not fatal: a stored identifier without a
			// numeric suffix counts as zero.
			log.Warn("malformed-identifier-suffix", "scope", scope.Key, "identifier", id)
			continue
		}
		if n > last {
			last = n
		}
	}
	return last, nil
}

// NextEmployeeID allocates the next EMP/INT identifier, e.g. EMP008.
func NextEmployeeID(store Store, prefix string) (string, error) {
	n, err := Next(store, EmployeeScope(prefix))
	if err != nil {
		return "", err
	}
	return FormatSequential(prefix, n), nil
}

// NextProjectID allocates the next project identifier for now's year.
func NextProjectID(store Store, now time.Time) (string, error) {
	n, err := Next(store, ProjectScope(now))
	if err != nil {
		return "", err
	}
	return FormatYearScoped(PrefixProject, now.Year(), n), nil
}

// NextTaskID allocates the next task identifier for now's year.
func NextTaskID(store Store, now time.Time) (string, error) {
	n, err := Next(store, TaskScope(now))
	if err != nil {
		return "", err
	}
	return FormatYearScoped(PrefixTask, now.Year(), n), nil
}
