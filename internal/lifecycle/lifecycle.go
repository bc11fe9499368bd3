// Package lifecycle owns the intervention status model: which values exist,
// which transitions are legal, and the derived bits every layer needs
// (reference strings, public status messages, summary bucketing).
//
// The package is pure: no storage, no HTTP. Services apply its rules inside
// their transactions.
package lifecycle

import (
	"fmt"

	apperrors "maintenance-system/pkg/errors"
)

// Status is the lifecycle state of an intervention. The same value set is
// used for a treatment's final status.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusPostponed  Status = "postponed"
)

// EquipmentOperational is the equipment-level pseudo status reported for a
// machine with no intervention history. It is not part of the intervention
// state machine.
const EquipmentOperational = "operational"

// KnownStatuses is the fixed set, in presentation order. Summaries report a
// zero bucket for each of these even when no intervention carries it.
var KnownStatuses = []Status{
	StatusPending,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusPostponed,
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled, StatusPostponed:
		return Status(s), nil
	}
	return "", apperrors.NewInvalidInputError("unknown status %q", s)
}

// IsTerminal reports whether no further status change is accepted at the
// requester boundary. A treatment update may still move a terminal
// intervention; that asymmetry is deliberate.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether moving from one status to another follows
// the nominal state machine: pending -> in_progress -> {completed, cancelled,
// postponed}, with a direct pending -> terminal shortcut, and postponed
// reopening into any non-pending state.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	switch from {
	case StatusPending:
		return to == StatusInProgress || to == StatusCompleted || to == StatusCancelled || to == StatusPostponed
	case StatusInProgress:
		return to == StatusCompleted || to == StatusCancelled || to == StatusPostponed
	case StatusPostponed:
		return to == StatusInProgress || to == StatusCompleted || to == StatusCancelled
	case StatusCompleted, StatusCancelled:
		return false
	}
	return false
}

// StopType categorizes the stoppage reported by the requester.
type StopType string

const (
	StopAM StopType = "AM"
	StopAP StopType = "AP"
	StopAN StopType = "AN"
	StopCM StopType = "CM"
)

func ParseStopType(s string) (StopType, error) {
	switch StopType(s) {
	case StopAM, StopAP, StopAN, StopCM:
		return StopType(s), nil
	}
	return "", apperrors.NewInvalidInputError("unknown stop type %q", s)
}

// ProblemType categorizes the failure.
type ProblemType string

const (
	ProblemMechanical ProblemType = "mechanical"
	ProblemElectrical ProblemType = "electrical"
	ProblemHydraulic  ProblemType = "hydraulic"
	ProblemPneumatic  ProblemType = "pneumatic"
)

func ParseProblemType(s string) (ProblemType, error) {
	switch ProblemType(s) {
	case ProblemMechanical, ProblemElectrical, ProblemHydraulic, ProblemPneumatic:
		return ProblemType(s), nil
	}
	return "", apperrors.NewInvalidInputError("unknown problem type %q", s)
}

// Priority of an intervention.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), nil
	}
	return "", apperrors.NewInvalidInputError("unknown priority %q", s)
}

// Reference derives the human-readable reference for an intervention id.
// Zero-padded to six digits; wider ids keep all their digits.
func Reference(id uint64) string {
	return fmt.Sprintf("INT-%06d", id)
}

var statusMessages = map[Status]string{
	StatusPending:    "Waiting for assignment",
	StatusInProgress: "Being treated",
	StatusCompleted:  "Intervention completed",
	StatusCancelled:  "Intervention cancelled",
	StatusPostponed:  "Intervention postponed",
}

// StatusMessage returns the public tracking message for a status.
func StatusMessage(s Status) string {
	if msg, ok := statusMessages[s]; ok {
		return msg
	}
	return "Unknown status"
}

// Summarize counts statuses into a map keyed by the raw status string.
// Every known status appears, zero or not. Unexpected values are counted
// under their own key rather than dropped.
func Summarize(statuses []string) map[string]int {
	counts := make(map[string]int, len(KnownStatuses))
	for _, s := range KnownStatuses {
		counts[string(s)] = 0
	}
	for _, s := range statuses {
		counts[s]++
	}
	return counts
}
