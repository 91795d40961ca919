package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestPredicates(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err          error
		isValidation bool
		isDuplicate  bool
		isNotFound   bool
	}{
		{Validationf("bad input"), true, false, false},
		{Duplicatef("already there"), false, true, false},
		{NotFoundf("missing"), false, false, true},
		{errors.New("plain"), false, false, false},
		{nil, false, false, false},
	}
	for _, tc := range cases {
		if got := IsValidation(tc.err); got != tc.isValidation {
			t.Errorf("IsValidation(%v) = %v, want %v", tc.err, got, tc.isValidation)
		}
		if got := IsDuplicate(tc.err); got != tc.isDuplicate {
			t.Errorf("IsDuplicate(%v) = %v, want %v", tc.err, got, tc.isDuplicate)
		}
		if got := IsNotFound(tc.err); got != tc.isNotFound {
			t.Errorf("IsNotFound(%v) = %v, want %v", tc.err, got, tc.isNotFound)
		}
	}
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("create employee: %w", Duplicatef("email taken"))
	if !IsDuplicate(wrapped) {
		t.Fatal("wrapped duplicate not recognized")
	}
	if IsNotFound(wrapped) {
		t.Fatal("wrapped duplicate misread as not-found")
	}
}

func TestMessageFormatting(t *testing.T) {
	t.Parallel()

	err := NotFoundf("employee %q not found", "EMP007")
	if err.Error() != `employee "EMP007" not found` {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
