// Package lifecycle holds the listing status state machine shared by
// properties and projects.
//
//	(none)    --create-->   PENDING
//	PENDING   --approve-->  APPROVED
//	PENDING   --reject-->   REJECTED   (message required)
//	REJECTED  --resubmit--> PENDING    (message cleared)
//	any       --edit-->     PENDING    (message cleared)
//
// Apply never mutates its input; callers persist the returned State in a
// single conditional update.
package lifecycle

import (
	"strings"

	"github.com/inmohub/listings/shared/apperrors"
	"github.com/inmohub/listings/shared/constants"
)

type Event string

const (
	EventApprove  Event = "approve"
	EventReject   Event = "reject"
	EventResubmit Event = "resubmit"
	EventEdit     Event = "edit"
)

type State struct {
	Status           constants.ListingStatus
	RejectionMessage *string
}

// Initial is the state of a freshly created listing.
func Initial() State {
	return State{Status: constants.StatusPending}
}

// Apply returns the state reached from current on ev. message is only read
// for EventReject.
func Apply(current State, ev Event, message string) (State, error) {
	switch ev {
	case EventApprove:
		if current.Status != constants.StatusPending {
			return current, notPending(current.Status)
		}
		return State{Status: constants.StatusApproved}, nil

	case EventReject:
		if current.Status != constants.StatusPending {
			return current, notPending(current.Status)
		}
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			return current, apperrors.FieldValidation("rejection_message", "a non-empty rejection message is required")
		}
		return State{Status: constants.StatusRejected, RejectionMessage: &trimmed}, nil

	case EventResubmit:
		if current.Status != constants.StatusRejected {
			return current, apperrors.Conflict("only rejected listings can be resubmitted, current status is " + string(current.Status))
		}
		return Initial(), nil

	case EventEdit:
		return Initial(), nil
	}

	return current, apperrors.Validation("unknown lifecycle event " + string(ev))
}

// ReviewEvent maps a requested target status to the event reaching it.
func ReviewEvent(target constants.ListingStatus) (Event, error) {
	switch target {
	case constants.StatusApproved:
		return EventApprove, nil
	case constants.StatusRejected:
		return EventReject, nil
	}
	return "", apperrors.FieldValidation("status", "must be APPROVED or REJECTED")
}

func notPending(status constants.ListingStatus) error {
	return apperrors.Conflict("listing is not pending, current status is " + string(status))
}
