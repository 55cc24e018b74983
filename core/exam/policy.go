package exam

import (
	"fmt"
	"strings"
)

// ReasonKind tells why a stage is locked.
type ReasonKind string

const (
	ReasonNone    ReasonKind = ""
	ReasonPending ReasonKind = "pending" // previous stage not completed yet
	ReasonFailed  ReasonKind = "failed"  // previous stage not cleared, not applicable or not selected
)

// Reason explains why a stage cannot be edited.
type Reason struct {
	Kind    ReasonKind `json:"kind"`
	Message string     `json:"message"`
}

func (r Reason) String() string { return r.Message }

// IsFinalStage reports whether the stage at index is a final stage:
// the last one, or any stage whose name contains "final" (case-insensitive).
func IsFinalStage(stages []Stage, index int) bool {
	if !inRange(stages, index) {
		return false
	}
	return index == len(stages)-1 || strings.Contains(strings.ToLower(stages[index].Name), "final")
}

// AvailableStatuses lists the statuses the stage at index may take.
func AvailableStatuses(stages []Stage, index int) []StatusOption {
	statuses := StatusesFor(kindAt(stages, index))
	opts := make([]StatusOption, 0, len(statuses))
	for _, st := range statuses {
		opts = append(opts, StatusOption{Value: st, Label: st.Label()})
	}
	return opts
}

// IsStageEditable reports whether the stage at index may be edited.
// The first stage is always editable; any other stage requires its predecessor to have passed.
// Out-of-range indexes are never editable.
func IsStageEditable(stages []Stage, index int) bool {
	if !inRange(stages, index) {
		return false
	}
	if index == 0 {
		return true
	}
	return passed(stages, index-1)
}

// DisabledReason explains why the stage at index is locked.
// It returns the zero Reason when the stage is editable or out of range.
func DisabledReason(stages []Stage, index int) Reason {
	if !inRange(stages, index) || IsStageEditable(stages, index) {
		return Reason{}
	}

	prev, curr := stages[index-1], stages[index]
	if prev.Status == StatusPending || prev.Status == "" {
		return Reason{
			Kind:    ReasonPending,
			Message: fmt.Sprintf("Complete %q before updating %q.", prev.Name, curr.Name),
		}
	}
	return Reason{
		Kind:    ReasonFailed,
		Message: fmt.Sprintf("%q is marked %s, so %q cannot be updated.", prev.Name, prev.Status.Label(), curr.Name),
	}
}

// passed reports whether the stage at index unlocks its successor.
func passed(stages []Stage, index int) bool {
	if IsFinalStage(stages, index) {
		return stages[index].Status == StatusSelected
	}
	return stages[index].Status == StatusCleared
}

func kindAt(stages []Stage, index int) Kind {
	if IsFinalStage(stages, index) {
		return KindFinal
	}
	return KindIntermediate
}

func inRange(stages []Stage, index int) bool {
	return index >= 0 && index < len(stages)
}
