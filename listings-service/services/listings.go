package services

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/inmohub/listings/shared/apperrors"
	"github.com/inmohub/listings/shared/constants"
	"github.com/inmohub/listings/shared/lifecycle"
	"github.com/inmohub/listings/shared/models"
	"github.com/inmohub/listings/shared/policy"
)

func actorOf(user *models.User) policy.Actor {
	return policy.Actor{
		ID:       user.ID,
		Role:     user.Role,
		AgencyID: user.AgencyID,
		Active:   user.Active,
	}
}

// authorize runs the evaluator and converts a denial into an authorization
// error.
func authorize(caller *models.User, resource policy.Resource, action policy.Action) error {
	if !policy.Evaluate(actorOf(caller), resource, action).Allowed() {
		return apperrors.Authorization()
	}
	return nil
}

// tenancyScope restricts a listing query to the rows the caller may see. It
// is applied before any client filter and cannot be widened by one.
func tenancyScope(caller *models.User) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if caller == nil || !caller.Active {
			return q.Where("1 = 0")
		}
		switch caller.Role {
		case constants.RoleSuperAdmin:
			return q
		case constants.RoleAgencyAdmin:
			if caller.AgencyID == nil {
				return q.Where("1 = 0")
			}
			return q.Where("agency_id = ?", *caller.AgencyID)
		case constants.RoleAgent:
			return q.Where("agent_id = ?", caller.ID)
		default:
			return q.Where("1 = 0")
		}
	}
}

// listingRef is the part of a property or project the lifecycle code needs.
type listingRef struct {
	ID       uuid.UUID
	AgencyID uuid.UUID
	AgentID  uuid.UUID
	Version  int
	State    lifecycle.State
}

func (r listingRef) resource(kind policy.ResourceKind) policy.Resource {
	return policy.Resource{Kind: kind, AgencyID: r.AgencyID, OwnerID: r.AgentID}
}

func propertyRef(p *models.Property) listingRef {
	return listingRef{
		ID:       p.ID,
		AgencyID: p.AgencyID,
		AgentID:  p.AgentID,
		Version:  p.Version,
		State:    lifecycle.State{Status: p.Status, RejectionMessage: p.RejectionMessage},
	}
}

func projectRef(p *models.Project) listingRef {
	return listingRef{
		ID:       p.ID,
		AgencyID: p.AgencyID,
		AgentID:  p.AgentID,
		Version:  p.Version,
		State:    lifecycle.State{Status: p.Status, RejectionMessage: p.RejectionMessage},
	}
}

// checkVersion rejects an edit made against a stale copy. Zero means the
// client did not send a version.
func checkVersion(ref listingRef, expected int) error {
	if expected != 0 && expected != ref.Version {
		return apperrors.Conflict("listing was modified by someone else, reload and retry")
	}
	return nil
}

// versionedUpdate writes updates only if the row still has the version that
// was read, and bumps it. Status and message always travel in the same
// statement.
func versionedUpdate(tx *gorm.DB, model interface{}, ref listingRef, updates map[string]interface{}) error {
	updates["version"] = gorm.Expr("version + 1")
	res := tx.Model(model).Where("id = ? AND version = ?", ref.ID, ref.Version).Updates(updates)
	if res.Error != nil {
		return apperrors.FromDB(res.Error, "listing")
	}
	if res.RowsAffected == 0 {
		return apperrors.Conflict("listing was modified by someone else, reload and retry")
	}
	return nil
}

// transition applies ev to the listing and persists the resulting state
// together with extra column updates.
func transition(tx *gorm.DB, model interface{}, ref listingRef, ev lifecycle.Event, message string, extra map[string]interface{}) (lifecycle.State, error) {
	next, err := lifecycle.Apply(ref.State, ev, message)
	if err != nil {
		return ref.State, err
	}

	updates := map[string]interface{}{
		"status":            next.Status,
		"rejection_message": next.RejectionMessage,
	}
	for column, value := range extra {
		updates[column] = value
	}
	if err := versionedUpdate(tx, model, ref, updates); err != nil {
		return ref.State, err
	}
	return next, nil
}

func mediaJSON(urls []string) (datatypes.JSON, error) {
	if urls == nil {
		urls = []string{}
	}
	raw, err := json.Marshal(urls)
	if err != nil {
		return nil, apperrors.FieldValidation("media_urls", "must be a list of urls")
	}
	return datatypes.JSON(raw), nil
}

// resolveOwner picks the agent that will own a new listing. Agents own what
// they create; a super admin must name an active agent.
func resolveOwner(tx *gorm.DB, caller *models.User, agentID *uuid.UUID) (*models.User, error) {
	if caller.Role != constants.RoleSuperAdmin {
		return caller, nil
	}
	if agentID == nil {
		return nil, apperrors.FieldValidation("agent_id", "required when creating on behalf of an agent")
	}

	var owner models.User
	if err := tx.First(&owner, "id = ?", *agentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.FieldValidation("agent_id", "agent not found")
		}
		return nil, apperrors.Internal(err)
	}
	if owner.Role != constants.RoleAgent || !owner.Active || owner.AgencyID == nil {
		return nil, apperrors.FieldValidation("agent_id", "must reference an active agent")
	}
	return &owner, nil
}

// createResource is the policy resource for creating a listing owned by owner.
func createResource(kind policy.ResourceKind, owner *models.User) (policy.Resource, error) {
	if owner.AgencyID == nil {
		return policy.Resource{}, apperrors.Authorization()
	}
	return policy.Resource{Kind: kind, AgencyID: *owner.AgencyID, OwnerID: owner.ID}, nil
}
