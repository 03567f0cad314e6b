package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrZeroLengthMember  = errors.New("zero-length member")
	ErrDanglingReference = errors.New("dangling reference")
	ErrNodeNotFound      = errors.New("node not found")
	ErrMissingNodeResult = errors.New("missing node result")
	ErrResultsNotFound   = errors.New("results not found")
	ErrInvalidEntity     = errors.New("invalid entity")
)

// ValidationError reports a construction-time precondition violation.
type ValidationError struct {
	Field string
	Msg   string
	err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return e.Field + ": " + e.Msg
}

func (e *ValidationError) Unwrap() error {
	if e.err != nil {
		return e.err
	}
	return ErrInvalidEntity
}

var validate = validator.New()

// Validate checks the validate struct tags of v and converts the first
// failure into a *ValidationError.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}
	return &ValidationError{Field: verrs[0].StructNamespace(), Msg: strings.Join(fields, ", ")}
}
