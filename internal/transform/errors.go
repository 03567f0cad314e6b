package transform

import (
	"fmt"

	"github.com/alexiusacademia/gofers/internal/model"
)

// DanglingReferenceError reports a reference node or member that has no
// counterpart in the produced graph.
type DanglingReferenceError struct {
	MemberID int
	Kind     model.Kind
	TargetID int
	Copy     int
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("member %d: reference %s %d has no duplicate in copy %d", e.MemberID, e.Kind, e.TargetID, e.Copy)
}

func (e *DanglingReferenceError) Unwrap() error {
	return model.ErrDanglingReference
}
