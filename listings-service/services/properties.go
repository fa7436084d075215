package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inmohub/listings/shared/apperrors"
	"github.com/inmohub/listings/shared/constants"
	"github.com/inmohub/listings/shared/lifecycle"
	"github.com/inmohub/listings/shared/models"
	"github.com/inmohub/listings/shared/policy"
	"github.com/inmohub/listings/shared/query"
)

type PropertyService interface {
	Create(ctx context.Context, caller *models.User, req models.PropertyRequest) (*models.Property, error)
	Get(ctx context.Context, caller *models.User, id uuid.UUID) (*models.Property, error)
	List(ctx context.Context, caller *models.User, filter models.ListingFilter) (*models.Page[models.Property], error)
	Update(ctx context.Context, caller *models.User, id uuid.UUID, req models.PropertyRequest) (*models.Property, error)
	Delete(ctx context.Context, caller *models.User, id uuid.UUID) error
	ListPending(ctx context.Context, caller *models.User, page models.PageRequest) (*models.Page[models.Property], error)
	Review(ctx context.Context, caller *models.User, req models.ReviewRequest) (*models.Property, error)
	Reject(ctx context.Context, caller *models.User, id uuid.UUID, message string) (*models.Property, error)
	Resubmit(ctx context.Context, caller *models.User, id uuid.UUID) (*models.Property, error)
}

type propertyService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewPropertyService(db *gorm.DB, notifier Notifier) PropertyService {
	return &propertyService{db: db, notifier: notifier}
}

func propertyContent(req models.PropertyRequest) (map[string]interface{}, error) {
	media, err := mediaJSON(req.MediaURLs)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"title":         req.Title,
		"description":   req.Description,
		"property_type": req.PropertyType,
		"operation":     req.Operation,
		"price":         req.Price,
		"currency":      req.Currency,
		"bedrooms":      req.Bedrooms,
		"bathrooms":     req.Bathrooms,
		"area_m2":       req.AreaM2,
		"address":       req.Address,
		"city":          req.City,
		"state":         req.State,
		"country":       req.Country,
		"latitude":      req.Latitude,
		"longitude":     req.Longitude,
		"media_urls":    media,
	}, nil
}

// ======
// Create
// ======
func (s *propertyService) Create(ctx context.Context, caller *models.User, req models.PropertyRequest) (*models.Property, error) {
	media, err := mediaJSON(req.MediaURLs)
	if err != nil {
		return nil, err
	}

	var property models.Property
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owner, err := resolveOwner(tx, caller, req.AgentID)
		if err != nil {
			return err
		}
		resource, err := createResource(policy.ResourceProperty, owner)
		if err != nil {
			return err
		}
		if err := authorize(caller, resource, policy.ActionCreate); err != nil {
			return err
		}

		initial := lifecycle.Initial()
		property = models.Property{
			Title:            req.Title,
			Description:      req.Description,
			Status:           initial.Status,
			RejectionMessage: initial.RejectionMessage,
			AgentID:          owner.ID,
			AgencyID:         *owner.AgencyID,
			PropertyType:     req.PropertyType,
			Operation:        req.Operation,
			Price:            req.Price,
			Currency:         req.Currency,
			Bedrooms:         req.Bedrooms,
			Bathrooms:        req.Bathrooms,
			AreaM2:           req.AreaM2,
			Address:          req.Address,
			City:             req.City,
			State:            req.State,
			Country:          req.Country,
			Latitude:         req.Latitude,
			Longitude:        req.Longitude,
			MediaURLs:        media,
			Version:          1,
		}
		return apperrors.FromDB(tx.Create(&property).Error, "property")
	})
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// find loads a property through the caller's tenancy scope. Rows outside the
// scope are indistinguishable from missing rows.
func (s *propertyService) find(db *gorm.DB, caller *models.User, id uuid.UUID) (*models.Property, error) {
	var property models.Property
	err := db.Scopes(tenancyScope(caller)).First(&property, "id = ?", id).Error
	if err != nil {
		return nil, apperrors.FromDB(err, "property")
	}
	return &property, nil
}

func (s *propertyService) reload(db *gorm.DB, id uuid.UUID) (*models.Property, error) {
	var property models.Property
	if err := db.First(&property, "id = ?", id).Error; err != nil {
		return nil, apperrors.FromDB(err, "property")
	}
	return &property, nil
}

func (s *propertyService) Get(ctx context.Context, caller *models.User, id uuid.UUID) (*models.Property, error) {
	property, err := s.find(s.db.WithContext(ctx), caller, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(caller, propertyRef(property).resource(policy.ResourceProperty), policy.ActionView); err != nil {
		return nil, err
	}
	return property, nil
}

func (s *propertyService) List(ctx context.Context, caller *models.User, filter models.ListingFilter) (*models.Page[models.Property], error) {
	filters, err := query.Filters(filter, query.PropertyColumns, caller.Role == constants.RoleSuperAdmin)
	if err != nil {
		return nil, err
	}
	q := s.db.WithContext(ctx).Model(&models.Property{}).Scopes(tenancyScope(caller), filters)
	return query.Paginate[models.Property](q, filter.PageRequest, "created_at DESC")
}

// ======
// Update
// ======
// Update replaces the listing content. A successful edit always leaves the
// listing PENDING with no rejection message.
func (s *propertyService) Update(ctx context.Context, caller *models.User, id uuid.UUID, req models.PropertyRequest) (*models.Property, error) {
	content, err := propertyContent(req)
	if err != nil {
		return nil, err
	}

	var updated *models.Property
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		property, err := s.find(tx, caller, id)
		if err != nil {
			return err
		}
		ref := propertyRef(property)
		if err := authorize(caller, ref.resource(policy.ResourceProperty), policy.ActionEdit); err != nil {
			return err
		}
		if err := checkVersion(ref, req.Version); err != nil {
			return err
		}
		if _, err := transition(tx, &models.Property{}, ref, lifecycle.EventEdit, "", content); err != nil {
			return err
		}
		updated, err = s.reload(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *propertyService) Delete(ctx context.Context, caller *models.User, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		property, err := s.find(tx, caller, id)
		if err != nil {
			return err
		}
		if err := authorize(caller, propertyRef(property).resource(policy.ResourceProperty), policy.ActionDelete); err != nil {
			return err
		}
		res := tx.Where("id = ? AND version = ?", property.ID, property.Version).Delete(&models.Property{})
		if res.Error != nil {
			return apperrors.Internal(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.Conflict("listing was modified by someone else, reload and retry")
		}
		return nil
	})
}

// ======
// Approval
// ======
// ListPending is the review queue: pending listings inside the caller's
// scope. Only reviewers may ask for it.
func (s *propertyService) ListPending(ctx context.Context, caller *models.User, page models.PageRequest) (*models.Page[models.Property], error) {
	if caller.Role != constants.RoleAgencyAdmin && caller.Role != constants.RoleSuperAdmin {
		return nil, apperrors.Authorization()
	}
	q := s.db.WithContext(ctx).Model(&models.Property{}).
		Scopes(tenancyScope(caller)).
		Where("status = ?", constants.StatusPending)
	return query.Paginate[models.Property](q, page, "created_at ASC")
}

func (s *propertyService) Review(ctx context.Context, caller *models.User, req models.ReviewRequest) (*models.Property, error) {
	ev, err := lifecycle.ReviewEvent(req.Status)
	if err != nil {
		return nil, err
	}
	return s.review(ctx, caller, req.ID, ev, req.RejectionReason)
}

func (s *propertyService) Reject(ctx context.Context, caller *models.User, id uuid.UUID, message string) (*models.Property, error) {
	return s.review(ctx, caller, id, lifecycle.EventReject, message)
}

func (s *propertyService) review(ctx context.Context, caller *models.User, id uuid.UUID, ev lifecycle.Event, message string) (*models.Property, error) {
	action := policy.ActionApprove
	if ev == lifecycle.EventReject {
		action = policy.ActionReject
	}

	var updated *models.Property
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		property, err := s.find(tx, caller, id)
		if err != nil {
			return err
		}
		ref := propertyRef(property)
		if err := authorize(caller, ref.resource(policy.ResourceProperty), action); err != nil {
			return err
		}
		if _, err := transition(tx, &models.Property{}, ref, ev, message, nil); err != nil {
			return err
		}
		updated, err = s.reload(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	notice := ReviewNotice{
		Kind:      policy.ResourceProperty,
		ListingID: updated.ID,
		Title:     updated.Title,
		AgentID:   updated.AgentID,
		Status:    updated.Status,
	}
	if updated.RejectionMessage != nil {
		notice.RejectionMessage = *updated.RejectionMessage
	}
	s.notifier.ListingReviewed(notice)
	return updated, nil
}

func (s *propertyService) Resubmit(ctx context.Context, caller *models.User, id uuid.UUID) (*models.Property, error) {
	var updated *models.Property
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		property, err := s.find(tx, caller, id)
		if err != nil {
			return err
		}
		ref := propertyRef(property)
		if err := authorize(caller, ref.resource(policy.ResourceProperty), policy.ActionResubmit); err != nil {
			return err
		}
		if _, err := transition(tx, &models.Property{}, ref, lifecycle.EventResubmit, "", nil); err != nil {
			return err
		}
		updated, err = s.reload(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
