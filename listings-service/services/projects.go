package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inmohub/listings/shared/apperrors"
	"github.com/inmohub/listings/shared/constants"
	"github.com/inmohub/listings/shared/lifecycle"
	"github.com/inmohub/listings/shared/models"
	"github.com/inmohub/listings/shared/policy"
	"github.com/inmohub/listings/shared/query"
)

type ProjectService interface {
	Create(ctx context.Context, caller *models.User, req models.ProjectRequest) (*models.Project, error)
	Get(ctx context.Context, caller *models.User, id uuid.UUID) (*models.Project, error)
	List(ctx context.Context, caller *models.User, filter models.ListingFilter) (*models.Page[models.Project], error)
	Update(ctx context.Context, caller *models.User, id uuid.UUID, req models.ProjectRequest) (*models.Project, error)
	Delete(ctx context.Context, caller *models.User, id uuid.UUID) error
	ListPending(ctx context.Context, caller *models.User, page models.PageRequest) (*models.Page[models.Project], error)
	Review(ctx context.Context, caller *models.User, req models.ReviewRequest) (*models.Project, error)
	Reject(ctx context.Context, caller *models.User, id uuid.UUID, message string) (*models.Project, error)
	Resubmit(ctx context.Context, caller *models.User, id uuid.UUID) (*models.Project, error)

	AddFloor(ctx context.Context, caller *models.User, projectID uuid.UUID, req models.FloorRequest) (*models.Floor, error)
	DeleteFloor(ctx context.Context, caller *models.User, projectID, floorID uuid.UUID) error
	AddQuadrant(ctx context.Context, caller *models.User, projectID, floorID uuid.UUID, req models.QuadrantRequest) (*models.Quadrant, error)
	UpdateQuadrant(ctx context.Context, caller *models.User, projectID, floorID, quadrantID uuid.UUID, req models.QuadrantRequest) (*models.Quadrant, error)
	DeleteQuadrant(ctx context.Context, caller *models.User, projectID, floorID, quadrantID uuid.UUID) error
}

type projectService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewProjectService(db *gorm.DB, notifier Notifier) ProjectService {
	return &projectService{db: db, notifier: notifier}
}

func projectContent(req models.ProjectRequest) (map[string]interface{}, error) {
	media, err := mediaJSON(req.MediaURLs)
	if err != nil {
		return nil, err
	}
	content := map[string]interface{}{
		"name":          req.Name,
		"description":   req.Description,
		"address":       req.Address,
		"city":          req.City,
		"state":         req.State,
		"country":       req.Country,
		"latitude":      req.Latitude,
		"longitude":     req.Longitude,
		"delivery_date": req.DeliveryDate,
		"media_urls":    media,
	}
	if req.Active != nil {
		content["active"] = *req.Active
	}
	return content, nil
}

// nextCustomID hands out the next quadrant id of a floor. The counter lives
// on the floor row so ids are never reused, even after deletes.
func nextCustomID(tx *gorm.DB, floorID uuid.UUID) (int, string, error) {
	res := tx.Model(&models.Floor{}).Where("id = ?", floorID).
		UpdateColumn("quadrant_seq", gorm.Expr("quadrant_seq + 1"))
	if res.Error != nil {
		return 0, "", apperrors.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, "", apperrors.NotFound("floor")
	}
	var floor models.Floor
	if err := tx.Select("quadrant_seq").First(&floor, "id = ?", floorID).Error; err != nil {
		return 0, "", apperrors.FromDB(err, "floor")
	}
	return floor.QuadrantSeq, fmt.Sprintf("Q%03d", floor.QuadrantSeq), nil
}

func newQuadrant(tx *gorm.DB, floorID uuid.UUID, req models.QuadrantRequest) (*models.Quadrant, error) {
	seq, customID, err := nextCustomID(tx, floorID)
	if err != nil {
		return nil, err
	}
	quadrant := models.Quadrant{
		FloorID:   floorID,
		CustomID:  customID,
		Seq:       seq,
		AreaM2:    req.AreaM2,
		Price:     req.Price,
		Bedrooms:  req.Bedrooms,
		Bathrooms: req.Bathrooms,
		Available: req.Available == nil || *req.Available,
	}
	if err := tx.Create(&quadrant).Error; err != nil {
		return nil, apperrors.FromDB(err, "quadrant")
	}
	return &quadrant, nil
}

func newFloor(tx *gorm.DB, projectID uuid.UUID, req models.FloorRequest) (*models.Floor, error) {
	var taken int64
	if err := tx.Model(&models.Floor{}).
		Where("project_id = ? AND number = ?", projectID, *req.Number).
		Count(&taken).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	if taken > 0 {
		return nil, apperrors.FieldValidation("number", fmt.Sprintf("floor %d already exists", *req.Number))
	}

	floor := models.Floor{ProjectID: projectID, Number: *req.Number, Name: req.Name}
	if err := tx.Omit("Quadrants").Create(&floor).Error; err != nil {
		return nil, apperrors.FromDB(err, "floor")
	}
	for _, q := range req.Quadrants {
		quadrant, err := newQuadrant(tx, floor.ID, q)
		if err != nil {
			return nil, err
		}
		floor.Quadrants = append(floor.Quadrants, *quadrant)
	}
	floor.QuadrantSeq = len(floor.Quadrants)
	return &floor, nil
}

// ======
// Create
// ======
// Create stores the project and its nested floors and quadrants in one
// transaction. Any failure leaves nothing behind.
func (s *projectService) Create(ctx context.Context, caller *models.User, req models.ProjectRequest) (*models.Project, error) {
	media, err := mediaJSON(req.MediaURLs)
	if err != nil {
		return nil, err
	}

	var created *models.Project
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owner, err := resolveOwner(tx, caller, req.AgentID)
		if err != nil {
			return err
		}
		resource, err := createResource(policy.ResourceProject, owner)
		if err != nil {
			return err
		}
		if err := authorize(caller, resource, policy.ActionCreate); err != nil {
			return err
		}

		initial := lifecycle.Initial()
		project := models.Project{
			Name:             req.Name,
			Description:      req.Description,
			Status:           initial.Status,
			RejectionMessage: initial.RejectionMessage,
			Active:           req.Active == nil || *req.Active,
			AgentID:          owner.ID,
			AgencyID:         *owner.AgencyID,
			Address:          req.Address,
			City:             req.City,
			State:            req.State,
			Country:          req.Country,
			Latitude:         req.Latitude,
			Longitude:        req.Longitude,
			DeliveryDate:     req.DeliveryDate,
			MediaURLs:        media,
			Version:          1,
		}
		if err := tx.Omit("Floors").Create(&project).Error; err != nil {
			return apperrors.FromDB(err, "project")
		}
		for _, f := range req.Floors {
			if _, err := newFloor(tx, project.ID, f); err != nil {
				return err
			}
		}

		created, err = s.reload(tx, project.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *projectService) find(db *gorm.DB, caller *models.User, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := db.Scopes(tenancyScope(caller)).First(&project, "id = ?", id).Error
	if err != nil {
		return nil, apperrors.FromDB(err, "project")
	}
	return &project, nil
}

func (s *projectService) reload(db *gorm.DB, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := db.Scopes(models.PreloadStructure).First(&project, "id = ?", id).Error; err != nil {
		return nil, apperrors.FromDB(err, "project")
	}
	return &project, nil
}

func (s *projectService) Get(ctx context.Context, caller *models.User, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := s.db.WithContext(ctx).
		Scopes(tenancyScope(caller), models.PreloadStructure).
		First(&project, "id = ?", id).Error
	if err != nil {
		return nil, apperrors.FromDB(err, "project")
	}
	if err := authorize(caller, projectRef(&project).resource(policy.ResourceProject), policy.ActionView); err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *projectService) List(ctx context.Context, caller *models.User, filter models.ListingFilter) (*models.Page[models.Project], error) {
	filters, err := query.Filters(filter, query.ProjectColumns, caller.Role == constants.RoleSuperAdmin)
	if err != nil {
		return nil, err
	}
	q := s.db.WithContext(ctx).Model(&models.Project{}).Scopes(tenancyScope(caller), filters)
	return query.Paginate[models.Project](q, filter.PageRequest, "created_at DESC")
}

// ======
// Update
// ======
func (s *projectService) Update(ctx context.Context, caller *models.User, id uuid.UUID, req models.ProjectRequest) (*models.Project, error) {
	content, err := projectContent(req)
	if err != nil {
		return nil, err
	}

	var updated *models.Project
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, err := s.find(tx, caller, id)
		if err != nil {
			return err
		}
		ref := projectRef(project)
		if err := authorize(caller, ref.resource(policy.ResourceProject), policy.ActionEdit); err != nil {
			return err
		}
		if err := checkVersion(ref, req.Version); err != nil {
			return err
		}
		if _, err := transition(tx, &models.Project{}, ref, lifecycle.EventEdit, "", content); err != nil {
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

// Delete removes the project with its floors and quadrants.
func (s *projectService) Delete(ctx context.Context, caller *models.User, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, err := s.find(tx, caller, id)
		if err != nil {
			return err
		}
		if err := authorize(caller, projectRef(project).resource(policy.ResourceProject), policy.ActionDelete); err != nil {
			return err
		}

		floors := tx.Model(&models.Floor{}).Select("id").Where("project_id = ?", id)
		if err := tx.Where("floor_id IN (?)", floors).Delete(&models.Quadrant{}).Error; err != nil {
			return apperrors.Internal(err)
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Floor{}).Error; err != nil {
			return apperrors.Internal(err)
		}
		res := tx.Where("id = ? AND version = ?", project.ID, project.Version).Delete(&models.Project{})
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
func (s *projectService) ListPending(ctx context.Context, caller *models.User, page models.PageRequest) (*models.Page[models.Project], error) {
	if caller.Role != constants.RoleAgencyAdmin && caller.Role != constants.RoleSuperAdmin {
		return nil, apperrors.Authorization()
	}
	q := s.db.WithContext(ctx).Model(&models.Project{}).
		Scopes(tenancyScope(caller)).
		Where("status = ?", constants.StatusPending)
	return query.Paginate[models.Project](q, page, "created_at ASC")
}

func (s *projectService) Review(ctx context.Context, caller *models.User, req models.ReviewRequest) (*models.Project, error) {
	ev, err := lifecycle.ReviewEvent(req.Status)
	if err != nil {
		return nil, err
	}
	return s.review(ctx, caller, req.ID, ev, req.RejectionReason)
}

func (s *projectService) Reject(ctx context.Context, caller *models.User, id uuid.UUID, message string) (*models.Project, error) {
	return s.review(ctx, caller, id, lifecycle.EventReject, message)
}

func (s *projectService) review(ctx context.Context, caller *models.User, id uuid.UUID, ev lifecycle.Event, message string) (*models.Project, error) {
	action := policy.ActionApprove
	if ev == lifecycle.EventReject {
		action = policy.ActionReject
	}

	var updated *models.Project
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, err := s.find(tx, caller, id)
		if err != nil {
			return err
		}
		ref := projectRef(project)
		if err := authorize(caller, ref.resource(policy.ResourceProject), action); err != nil {
			return err
		}
		if _, err := transition(tx, &models.Project{}, ref, ev, message, nil); err != nil {
			return err
		}
		updated, err = s.reload(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	notice := ReviewNotice{
		Kind:      policy.ResourceProject,
		ListingID: updated.ID,
		Title:     updated.Name,
		AgentID:   updated.AgentID,
		Status:    updated.Status,
	}
	if updated.RejectionMessage != nil {
		notice.RejectionMessage = *updated.RejectionMessage
	}
	s.notifier.ListingReviewed(notice)
	return updated, nil
}

func (s *projectService) Resubmit(ctx context.Context, caller *models.User, id uuid.UUID) (*models.Project, error) {
	var updated *models.Project
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, err := s.find(tx, caller, id)
		if err != nil {
			return err
		}
		ref := projectRef(project)
		if err := authorize(caller, ref.resource(policy.ResourceProject), policy.ActionResubmit); err != nil {
			return err
		}
		if _, err := transition(tx, &models.Project{}, ref, lifecycle.EventResubmit, "", nil); err != nil {
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

// ======
// Structure
// ======
// structureChange loads the project in scope, checks action against the
// project structure and runs change. The project then goes back to PENDING
// like any other owner edit.
func (s *projectService) structureChange(ctx context.Context, caller *models.User, projectID uuid.UUID, action policy.Action, change func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, err := s.find(tx, caller, projectID)
		if err != nil {
			return err
		}
		ref := projectRef(project)
		if err := authorize(caller, ref.resource(policy.ResourceProjectStructure), action); err != nil {
			return err
		}
		if err := change(tx); err != nil {
			return err
		}
		_, err = transition(tx, &models.Project{}, ref, lifecycle.EventEdit, "", nil)
		return err
	})
}

func findFloor(tx *gorm.DB, projectID, floorID uuid.UUID) (*models.Floor, error) {
	var floor models.Floor
	if err := tx.First(&floor, "id = ? AND project_id = ?", floorID, projectID).Error; err != nil {
		return nil, apperrors.FromDB(err, "floor")
	}
	return &floor, nil
}

func findQuadrant(tx *gorm.DB, floorID, quadrantID uuid.UUID) (*models.Quadrant, error) {
	var quadrant models.Quadrant
	if err := tx.First(&quadrant, "id = ? AND floor_id = ?", quadrantID, floorID).Error; err != nil {
		return nil, apperrors.FromDB(err, "quadrant")
	}
	return &quadrant, nil
}

func (s *projectService) AddFloor(ctx context.Context, caller *models.User, projectID uuid.UUID, req models.FloorRequest) (*models.Floor, error) {
	var floor *models.Floor
	err := s.structureChange(ctx, caller, projectID, policy.ActionCreate, func(tx *gorm.DB) error {
		var err error
		floor, err = newFloor(tx, projectID, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return floor, nil
}

func (s *projectService) DeleteFloor(ctx context.Context, caller *models.User, projectID, floorID uuid.UUID) error {
	return s.structureChange(ctx, caller, projectID, policy.ActionDelete, func(tx *gorm.DB) error {
		floor, err := findFloor(tx, projectID, floorID)
		if err != nil {
			return err
		}
		if err := tx.Where("floor_id = ?", floor.ID).Delete(&models.Quadrant{}).Error; err != nil {
			return apperrors.Internal(err)
		}
		return apperrors.FromDB(tx.Delete(floor).Error, "floor")
	})
}

func (s *projectService) AddQuadrant(ctx context.Context, caller *models.User, projectID, floorID uuid.UUID, req models.QuadrantRequest) (*models.Quadrant, error) {
	var quadrant *models.Quadrant
	err := s.structureChange(ctx, caller, projectID, policy.ActionCreate, func(tx *gorm.DB) error {
		if _, err := findFloor(tx, projectID, floorID); err != nil {
			return err
		}
		var err error
		quadrant, err = newQuadrant(tx, floorID, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return quadrant, nil
}

// UpdateQuadrant changes the quadrant attributes. The custom id is fixed.
func (s *projectService) UpdateQuadrant(ctx context.Context, caller *models.User, projectID, floorID, quadrantID uuid.UUID, req models.QuadrantRequest) (*models.Quadrant, error) {
	var quadrant *models.Quadrant
	err := s.structureChange(ctx, caller, projectID, policy.ActionEdit, func(tx *gorm.DB) error {
		if _, err := findFloor(tx, projectID, floorID); err != nil {
			return err
		}
		current, err := findQuadrant(tx, floorID, quadrantID)
		if err != nil {
			return err
		}
		updates := map[string]interface{}{
			"area_m2":   req.AreaM2,
			"price":     req.Price,
			"bedrooms":  req.Bedrooms,
			"bathrooms": req.Bathrooms,
		}
		if req.Available != nil {
			updates["available"] = *req.Available
		}
		if err := tx.Model(current).Updates(updates).Error; err != nil {
			return apperrors.FromDB(err, "quadrant")
		}
		quadrant, err = findQuadrant(tx, floorID, quadrantID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return quadrant, nil
}

func (s *projectService) DeleteQuadrant(ctx context.Context, caller *models.User, projectID, floorID, quadrantID uuid.UUID) error {
	return s.structureChange(ctx, caller, projectID, policy.ActionDelete, func(tx *gorm.DB) error {
		if _, err := findFloor(tx, projectID, floorID); err != nil {
			return err
		}
		quadrant, err := findQuadrant(tx, floorID, quadrantID)
		if err != nil {
			return err
		}
		return apperrors.FromDB(tx.Delete(quadrant).Error, "quadrant")
	})
}
