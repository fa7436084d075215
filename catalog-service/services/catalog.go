package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inmohub/listings/shared/apperrors"
	"github.com/inmohub/listings/shared/constants"
	"github.com/inmohub/listings/shared/models"
	"github.com/inmohub/listings/shared/query"
)

// CatalogService serves the anonymous, read-only view of the platform. Only
// approved listings are ever visible.
type CatalogService interface {
	ListProperties(ctx context.Context, filter models.ListingFilter) (*models.Page[models.Property], error)
	GetProperty(ctx context.Context, id uuid.UUID) (*models.Property, error)
	ListProjects(ctx context.Context, filter models.ListingFilter) (*models.Page[models.Project], error)
	GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error)
	LandingImages(ctx context.Context) ([]models.LandingImage, error)
}

type catalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) CatalogService {
	return &catalogService{db: db}
}

func publishedProperties(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", constants.StatusApproved)
}

func publishedProjects(db *gorm.DB) *gorm.DB {
	return db.Where("status = ? AND active = ?", constants.StatusApproved, true)
}

// publicFilter drops the client status filter. Visibility is decided by the
// published scopes alone.
func publicFilter(filter models.ListingFilter) models.ListingFilter {
	filter.Status = ""
	return filter
}

func (s *catalogService) ListProperties(ctx context.Context, filter models.ListingFilter) (*models.Page[models.Property], error) {
	filters, err := query.Filters(publicFilter(filter), query.PropertyColumns, true)
	if err != nil {
		return nil, err
	}
	q := s.db.WithContext(ctx).Model(&models.Property{}).Scopes(publishedProperties, filters)
	return query.Paginate[models.Property](q, filter.PageRequest, "created_at DESC")
}

func (s *catalogService) GetProperty(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	var property models.Property
	if err := s.db.WithContext(ctx).Scopes(publishedProperties).First(&property, "id = ?", id).Error; err != nil {
		return nil, apperrors.FromDB(err, "property")
	}
	return &property, nil
}

func (s *catalogService) ListProjects(ctx context.Context, filter models.ListingFilter) (*models.Page[models.Project], error) {
	filters, err := query.Filters(publicFilter(filter), query.ProjectColumns, true)
	if err != nil {
		return nil, err
	}
	q := s.db.WithContext(ctx).Model(&models.Project{}).Scopes(publishedProjects, filters)
	return query.Paginate[models.Project](q, filter.PageRequest, "created_at DESC")
}

func (s *catalogService) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := s.db.WithContext(ctx).
		Scopes(publishedProjects, models.PreloadStructure).
		First(&project, "id = ?", id).Error
	if err != nil {
		return nil, apperrors.FromDB(err, "project")
	}
	return &project, nil
}

func (s *catalogService) LandingImages(ctx context.Context) ([]models.LandingImage, error) {
	images := []models.LandingImage{}
	err := s.db.WithContext(ctx).
		Where("status = ?", constants.LandingImageActive).
		Order("position ASC, created_at ASC").
		Find(&images).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return images, nil
}
