package exam

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrNotFound      = errors.New("exam application not found")
	ErrStageNotFound = errors.New("exam stage not found")
	ErrNoStages      = errors.New("an exam application needs at least one stage")
)

// PolicyViolationError is returned when editing a stage whose predecessor has not passed.
type PolicyViolationError struct {
	Index  int
	Stage  string
	Reason Reason
}

func (e *PolicyViolationError) Error() string {
	return fmt.Sprintf("stage %d (%s) is not editable: %s", e.Index, e.Stage, e.Reason.Message)
}

// IsPolicyViolation reports whether the cause of err is a *PolicyViolationError.
func IsPolicyViolation(err error) bool {
	_, ok := errors.Cause(err).(*PolicyViolationError)
	return ok
}
