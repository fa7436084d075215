// Package policy decides whether a user may act on a listing. Every handler
// goes through Evaluate instead of comparing roles inline.
//
// Rules, first match wins:
//
//   - inactive actors are always denied
//   - unknown actions are denied
//   - SUPER_ADMIN is allowed everything
//   - AGENCY_ADMIN may view, approve, reject and delete listings of its own agency
//   - AGENT may create in its own agency and view, edit, delete and resubmit
//     the listings it owns
//
// Project structure (floors and quadrants) is only mutable by the owning
// agent, so agency admins get view access there and nothing more.
package policy

import (
	"github.com/google/uuid"
	"github.com/inmohub/listings/shared/constants"
)

type Action string

const (
	ActionCreate   Action = "create"
	ActionView     Action = "view"
	ActionEdit     Action = "edit"
	ActionDelete   Action = "delete"
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
	ActionResubmit Action = "resubmit"
)

// Actions lists every action the evaluator knows about.
var Actions = []Action{
	ActionCreate, ActionView, ActionEdit, ActionDelete,
	ActionApprove, ActionReject, ActionResubmit,
}

func (a Action) known() bool {
	for _, known := range Actions {
		if a == known {
			return true
		}
	}
	return false
}

type ResourceKind string

const (
	ResourceProperty         ResourceKind = "property"
	ResourceProject          ResourceKind = "project"
	ResourceProjectStructure ResourceKind = "project_structure"
)

// Actor is the acting user as far as the evaluator is concerned.
type Actor struct {
	ID       uuid.UUID
	Role     constants.RoleEnum
	AgencyID *uuid.UUID
	Active   bool
}

// Resource identifies the tenancy and ownership of the target. OwnerID is
// uuid.Nil for create checks.
type Resource struct {
	Kind     ResourceKind
	AgencyID uuid.UUID
	OwnerID  uuid.UUID
}

type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

type DenyReason int

const (
	ReasonNone DenyReason = iota
	ReasonInactive
	ReasonUnknownAction
	ReasonUnknownRole
	ReasonCrossAgency
	ReasonNotOwner
	ReasonRoleCannot
)

func (r DenyReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonInactive:
		return "actor is inactive"
	case ReasonUnknownAction:
		return "unknown action"
	case ReasonUnknownRole:
		return "unknown role"
	case ReasonCrossAgency:
		return "resource belongs to another agency"
	case ReasonNotOwner:
		return "actor does not own the resource"
	case ReasonRoleCannot:
		return "role may not perform action"
	default:
		return "unknown"
	}
}

// Verdict is the full outcome. Reason is ReasonNone when allowed.
type Verdict struct {
	Decision Decision
	Reason   DenyReason
}

func (v Verdict) Allowed() bool { return v.Decision == Allow }

func allow() Verdict { return Verdict{Decision: Allow} }

func deny(reason DenyReason) Verdict { return Verdict{Decision: Deny, Reason: reason} }

// Evaluate is pure and total: every (actor, resource, action) yields a verdict.
func Evaluate(actor Actor, resource Resource, action Action) Verdict {
	if !actor.Active {
		return deny(ReasonInactive)
	}
	if !action.known() {
		return deny(ReasonUnknownAction)
	}

	switch actor.Role {
	case constants.RoleSuperAdmin:
		return allow()
	case constants.RoleAgencyAdmin:
		return evaluateAgencyAdmin(actor, resource, action)
	case constants.RoleAgent:
		return evaluateAgent(actor, resource, action)
	default:
		return deny(ReasonUnknownRole)
	}
}

// Allowed is shorthand for Evaluate(...).Allowed().
func Allowed(actor Actor, resource Resource, action Action) bool {
	return Evaluate(actor, resource, action).Allowed()
}

func sameAgency(actor Actor, resource Resource) bool {
	return actor.AgencyID != nil && *actor.AgencyID == resource.AgencyID
}

func evaluateAgencyAdmin(actor Actor, resource Resource, action Action) Verdict {
	if !sameAgency(actor, resource) {
		return deny(ReasonCrossAgency)
	}
	if resource.Kind == ResourceProjectStructure {
		if action == ActionView {
			return allow()
		}
		return deny(ReasonRoleCannot)
	}
	switch action {
	case ActionView, ActionApprove, ActionReject, ActionDelete:
		return allow()
	}
	return deny(ReasonRoleCannot)
}

func evaluateAgent(actor Actor, resource Resource, action Action) Verdict {
	if !sameAgency(actor, resource) {
		return deny(ReasonCrossAgency)
	}
	switch action {
	case ActionCreate:
		if resource.Kind == ResourceProjectStructure && resource.OwnerID != actor.ID {
			return deny(ReasonNotOwner)
		}
		return allow()
	case ActionView, ActionEdit, ActionDelete, ActionResubmit:
		if resource.OwnerID != actor.ID {
			return deny(ReasonNotOwner)
		}
		return allow()
	}
	return deny(ReasonRoleCannot)
}
