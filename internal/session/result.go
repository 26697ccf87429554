package session

import "errors"

type Outcome string

const (
	OutcomeApplied   Outcome = "applied"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeRejected  Outcome = "rejected"
)

var (
	ErrNotPermitted       = errors.New("actor role may not control the session")
	ErrSessionEnded       = errors.New("session has ended")
	ErrSessionNotLive     = errors.New("session is not live")
	ErrSessionNotEnded    = errors.New("session has not ended")
	ErrUnknownParticipant = errors.New("actor is not in the roster")
	ErrEmptyMessage       = errors.New("message is empty")
	ErrInvalidResource    = errors.New("resource name and link are required")
	ErrViewClosed         = errors.New("view is closed")
)

// Result reports what a controller operation did. Rejections leave state
// untouched and are never returned as errors.
type Result struct {
	Outcome Outcome
	Reason  error
}

func applied() Result {
	return Result{Outcome: OutcomeApplied}
}

func unchanged() Result {
	return Result{Outcome: OutcomeUnchanged}
}

func rejected(reason error) Result {
	return Result{Outcome: OutcomeRejected, Reason: reason}
}

func (r Result) Applied() bool {
	return r.Outcome == OutcomeApplied
}

func (r Result) ReasonText() string {
	if r.Reason == nil {
		return ""
	}
	return r.Reason.Error()
}
