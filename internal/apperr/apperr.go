package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the API layer.
type Kind int

const (
	KindValidation Kind = iota // caller input violates an invariant
	KindDuplicate              // uniqueness constraint violated
	KindNotFound               // referenced entity does not exist
)

type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func Validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func Duplicatef(format string, args ...any) error {
	return &Error{Kind: KindDuplicate, Msg: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func IsValidation(err error) bool { return is(err, KindValidation) }
func IsDuplicate(err error) bool  { return is(err, KindDuplicate) }
func IsNotFound(err error) bool   { return is(err, KindNotFound) }
