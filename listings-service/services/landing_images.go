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

// LandingImageService manages the homepage carousel. Every operation is
// reserved to super admins.
type LandingImageService interface {
	Create(ctx context.Context, caller *models.User, req models.LandingImageRequest) (*models.LandingImage, error)
	List(ctx context.Context, caller *models.User, page models.PageRequest) (*models.Page[models.LandingImage], error)
	Update(ctx context.Context, caller *models.User, id uuid.UUID, req models.LandingImageRequest) (*models.LandingImage, error)
	Delete(ctx context.Context, caller *models.User, id uuid.UUID) error
}

type landingImageService struct {
	db *gorm.DB
}

func NewLandingImageService(db *gorm.DB) LandingImageService {
	return &landingImageService{db: db}
}

func landingStatus(status constants.LandingImageStatus) constants.LandingImageStatus {
	if status == "" {
		return constants.LandingImageActive
	}
	return status
}

func (s *landingImageService) Create(ctx context.Context, caller *models.User, req models.LandingImageRequest) (*models.LandingImage, error) {
	if err := requireSuperAdmin(caller); err != nil {
		return nil, err
	}
	image := models.LandingImage{
		Title:    req.Title,
		ImageURL: req.ImageURL,
		LinkURL:  req.LinkURL,
		Position: req.Position,
		Status:   landingStatus(req.Status),
	}
	if err := s.db.WithContext(ctx).Create(&image).Error; err != nil {
		return nil, apperrors.FromDB(err, "landing image")
	}
	return &image, nil
}

func (s *landingImageService) List(ctx context.Context, caller *models.User, page models.PageRequest) (*models.Page[models.LandingImage], error) {
	if err := requireSuperAdmin(caller); err != nil {
		return nil, err
	}
	q := s.db.WithContext(ctx).Model(&models.LandingImage{})
	return query.Paginate[models.LandingImage](q, page, "position ASC, created_at ASC")
}

func (s *landingImageService) Update(ctx context.Context, caller *models.User, id uuid.UUID, req models.LandingImageRequest) (*models.LandingImage, error) {
	if err := requireSuperAdmin(caller); err != nil {
		return nil, err
	}

	var image models.LandingImage
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&image, "id = ?", id).Error; err != nil {
			return apperrors.FromDB(err, "landing image")
		}
		updates := map[string]interface{}{
			"title":     req.Title,
			"image_url": req.ImageURL,
			"link_url":  req.LinkURL,
			"position":  req.Position,
			"status":    landingStatus(req.Status),
		}
		if err := tx.Model(&image).Updates(updates).Error; err != nil {
			return apperrors.FromDB(err, "landing image")
		}
		return tx.First(&image, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (s *landingImageService) Delete(ctx context.Context, caller *models.User, id uuid.UUID) error {
	if err := requireSuperAdmin(caller); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Delete(&models.LandingImage{}, "id = ?", id)
	if res.Error != nil {
		return apperrors.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("landing image")
	}
	return nil
}
