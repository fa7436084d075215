package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inmohub/listings/shared/apperrors"
	"github.com/inmohub/listings/shared/constants"
	"github.com/inmohub/listings/shared/models"
	"github.com/inmohub/listings/shared/query"
)

type UserService interface {
	Create(ctx context.Context, caller *models.User, req models.CreateUserRequest) (*models.User, error)
	List(ctx context.Context, caller *models.User, filter models.UserFilter) (*models.Page[models.User], error)
	Get(ctx context.Context, caller *models.User, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, caller *models.User, id uuid.UUID, req models.UpdateUserRequest) (*models.User, error)
	SetActive(ctx context.Context, caller *models.User, id uuid.UUID, active bool) (*models.User, error)
	Delete(ctx context.Context, caller *models.User, id uuid.UUID) error
}

type userService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) UserService {
	return &userService{db: db}
}

// userScope limits user queries the same way listings are limited: admins see
// their agency, agents see themselves.
func userScope(caller *models.User) func(*gorm.DB) *gorm.DB {
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
			return q.Where("id = ?", caller.ID)
		default:
			return q.Where("1 = 0")
		}
	}
}

// checkMembership enforces the role/agency pairing: a super admin has no
// agency, everyone else belongs to an existing agency.
func checkMembership(tx *gorm.DB, role constants.RoleEnum, agencyID *uuid.UUID) error {
	if !role.Valid() {
		return apperrors.FieldValidation("role", "must be SUPER_ADMIN, AGENCY_ADMIN or AGENT")
	}
	if !role.RequiresAgency() {
		if agencyID != nil {
			return apperrors.FieldValidation("agency_id", "must be empty for SUPER_ADMIN")
		}
		return nil
	}
	if agencyID == nil {
		return apperrors.FieldValidation("agency_id", "is required for "+string(role))
	}
	var count int64
	if err := tx.Model(&models.Agency{}).Where("id = ?", *agencyID).Count(&count).Error; err != nil {
		return apperrors.Internal(err)
	}
	if count == 0 {
		return apperrors.FieldValidation("agency_id", "agency not found")
	}
	return nil
}

// ======
// Create
// ======
func (s *userService) Create(ctx context.Context, caller *models.User, req models.CreateUserRequest) (*models.User, error) {
	role := req.Role
	agencyID := req.AgencyID

	switch caller.Role {
	case constants.RoleSuperAdmin:
	case constants.RoleAgencyAdmin:
		if role != constants.RoleAgent {
			return nil, apperrors.Authorization()
		}
		agencyID = caller.AgencyID
	default:
		return nil, apperrors.Authorization()
	}

	user := models.User{
		ExternalAuthID: strings.TrimSpace(req.ExternalAuthID),
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.TrimSpace(req.Email),
		Role:           role,
		AgencyID:       agencyID,
		Active:         true,
	}
	if user.ExternalAuthID == "" {
		return nil, apperrors.FieldValidation("external_auth_id", "is required")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkMembership(tx, role, agencyID); err != nil {
			return err
		}
		err := tx.Create(&user).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.FieldValidation("external_auth_id", "a user with this identity already exists")
		}
		return apperrors.FromDB(err, "user")
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) List(ctx context.Context, caller *models.User, filter models.UserFilter) (*models.Page[models.User], error) {
	q := s.db.WithContext(ctx).Model(&models.User{}).Scopes(userScope(caller))

	if caller.Role == constants.RoleSuperAdmin {
		agencyID, err := query.ParseOptionalID(filter.AgencyID, "agency_id")
		if err != nil {
			return nil, err
		}
		if agencyID != nil {
			q = q.Where("agency_id = ?", *agencyID)
		}
	}
	if filter.Role != "" {
		role := constants.RoleEnum(strings.ToUpper(filter.Role))
		if !role.Valid() {
			return nil, apperrors.FieldValidation("role", "must be SUPER_ADMIN, AGENCY_ADMIN or AGENT")
		}
		q = q.Where("role = ?", role)
	}
	return query.Paginate[models.User](q, filter.PageRequest, "created_at DESC")
}

func (s *userService) find(db *gorm.DB, caller *models.User, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := db.Scopes(userScope(caller)).First(&user, "id = ?", id).Error; err != nil {
		return nil, apperrors.FromDB(err, "user")
	}
	return &user, nil
}

func (s *userService) Get(ctx context.Context, caller *models.User, id uuid.UUID) (*models.User, error) {
	return s.find(s.db.WithContext(ctx), caller, id)
}

// canManage reports whether caller may change target. Agency admins manage
// the agents of their own agency, never other admins.
func canManage(caller, target *models.User) bool {
	switch caller.Role {
	case constants.RoleSuperAdmin:
		return true
	case constants.RoleAgencyAdmin:
		return target.Role == constants.RoleAgent
	default:
		return false
	}
}

// ======
// Update
// ======
func (s *userService) Update(ctx context.Context, caller *models.User, id uuid.UUID, req models.UpdateUserRequest) (*models.User, error) {
	var updated models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err := s.find(tx, caller, id)
		if err != nil {
			return err
		}
		if !canManage(caller, target) {
			return apperrors.Authorization()
		}

		updates := map[string]interface{}{}
		if req.Name != nil {
			updates["name"] = strings.TrimSpace(*req.Name)
		}
		if req.Email != nil {
			updates["email"] = strings.TrimSpace(*req.Email)
		}

		if req.Role != nil || req.AgencyID != nil {
			if caller.Role != constants.RoleSuperAdmin {
				return apperrors.Authorization()
			}
			role := target.Role
			if req.Role != nil {
				role = *req.Role
			}
			agencyID := target.AgencyID
			if req.AgencyID != nil {
				agencyID = req.AgencyID
			}
			if !role.RequiresAgency() {
				agencyID = nil
			}
			if err := checkMembership(tx, role, agencyID); err != nil {
				return err
			}
			if !sameAgency(target.AgencyID, agencyID) {
				owned, err := ownedListings(tx, id)
				if err != nil {
					return err
				}
				if owned > 0 {
					return apperrors.Conflict("user still owns listings in its current agency")
				}
			}
			updates["role"] = role
			updates["agency_id"] = agencyID
		}

		if len(updates) > 0 {
			if err := tx.Model(&models.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return apperrors.FromDB(err, "user")
			}
		}
		return tx.First(&updated, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// SetActive is a soft disable. A disabled user keeps its listings but can no
// longer authenticate.
func (s *userService) SetActive(ctx context.Context, caller *models.User, id uuid.UUID, active bool) (*models.User, error) {
	var updated models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err := s.find(tx, caller, id)
		if err != nil {
			return err
		}
		if !canManage(caller, target) {
			return apperrors.Authorization()
		}
		if target.ID == caller.ID && !active {
			return apperrors.Conflict("you cannot deactivate yourself")
		}
		if err := tx.Model(&models.User{}).Where("id = ?", id).Update("active", active).Error; err != nil {
			return apperrors.Internal(err)
		}
		updated = *target
		updated.Active = active
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *userService) Delete(ctx context.Context, caller *models.User, id uuid.UUID) error {
	if err := requireSuperAdmin(caller); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err := s.find(tx, caller, id)
		if err != nil {
			return err
		}
		if target.ID == caller.ID {
			return apperrors.Conflict("you cannot delete yourself")
		}

		owned, err := ownedListings(tx, id)
		if err != nil {
			return err
		}
		if owned > 0 {
			return apperrors.Conflict("user still owns listings, deactivate instead")
		}
		return apperrors.FromDB(tx.Delete(&models.User{}, "id = ?", id).Error, "user")
	})
}

func ownedListings(tx *gorm.DB, agentID uuid.UUID) (int64, error) {
	var owned int64
	for _, model := range []interface{}{&models.Property{}, &models.Project{}} {
		var count int64
		if err := tx.Model(model).Where("agent_id = ?", agentID).Count(&count).Error; err != nil {
			return 0, apperrors.Internal(err)
		}
		owned += count
	}
	return owned, nil
}

func sameAgency(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
