package db

import (
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"
)

func TestDateOf(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 3, 2, 18, 45, 12, 999, time.UTC)
	got := time.Time(DateOf(ts))

	want := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("DateOf = %v, want %v", got, want)
	}

	// Two timestamps on the same day map to the same date.
	other := time.Time(DateOf(ts.Add(3 * time.Hour)))
	if !got.Equal(other) {
		t.Fatal("same-day timestamps produced different dates")
	}
}

func TestIsDuplicateKey(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{gorm.ErrDuplicatedKey, true},
		{errors.New("ERROR: duplicate key value violates unique constraint"), true},
		{errors.New("pq: error 23505"), true},
		{gorm.ErrRecordNotFound, false},
		{errors.New("connection refused"), false},
	}
	for _, tc := range cases {
		if got := IsDuplicateKey(tc.err); got != tc.want {
			t.Errorf("IsDuplicateKey(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
