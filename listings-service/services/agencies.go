package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inmohub/listings/shared/apperrors"
	"github.com/inmohub/listings/shared/constants"
	"github.com/inmohub/listings/shared/models"
	"github.com/inmohub/listings/shared/query"
)

type AgencyService interface {
	Create(ctx context.Context, caller *models.User, req models.CreateAgencyRequest) (*models.Agency, error)
	List(ctx context.Context, caller *models.User, filter models.AgencyFilter) (*models.Page[models.Agency], error)
	Get(ctx context.Context, caller *models.User, id uuid.UUID) (*models.Agency, error)
	Update(ctx context.Context, caller *models.User, id uuid.UUID, req models.UpdateAgencyRequest) (*models.Agency, error)
	SetActive(ctx context.Context, caller *models.User, id uuid.UUID, active bool) (*models.Agency, error)
}

type agencyService struct {
	db *gorm.DB
}

func NewAgencyService(db *gorm.DB) AgencyService {
	return &agencyService{db: db}
}

func requireSuperAdmin(caller *models.User) error {
	if caller == nil || !caller.Active || caller.Role != constants.RoleSuperAdmin {
		return apperrors.Authorization()
	}
	return nil
}

func agencyNameTaken(db *gorm.DB, name string, except uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&models.Agency{}).
		Where("LOWER(name) = ? AND id <> ?", strings.ToLower(name), except).
		Count(&count).Error
	return count > 0, err
}

func (s *agencyService) Create(ctx context.Context, caller *models.User, req models.CreateAgencyRequest) (*models.Agency, error) {
	if err := requireSuperAdmin(caller); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.FieldValidation("name", "is required")
	}

	agency := models.Agency{
		Name:    name,
		Address: strings.TrimSpace(req.Address),
		Phone:   strings.TrimSpace(req.Phone),
		Active:  true,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := agencyNameTaken(tx, name, uuid.Nil)
		if err != nil {
			return apperrors.Internal(err)
		}
		if taken {
			return apperrors.FieldValidation("name", "an agency with this name already exists")
		}
		return apperrors.FromDB(tx.Create(&agency).Error, "agency")
	})
	if err != nil {
		return nil, err
	}
	return &agency, nil
}

func (s *agencyService) List(ctx context.Context, caller *models.User, filter models.AgencyFilter) (*models.Page[models.Agency], error) {
	if err := requireSuperAdmin(caller); err != nil {
		return nil, err
	}
	q := s.db.WithContext(ctx).Model(&models.Agency{})
	if search := strings.TrimSpace(filter.Query); search != "" {
		q = query.Search(q, "name", search)
	}
	return query.Paginate[models.Agency](q, filter.PageRequest, "name ASC")
}

func (s *agencyService) Get(ctx context.Context, caller *models.User, id uuid.UUID) (*models.Agency, error) {
	if err := requireSuperAdmin(caller); err != nil {
		return nil, err
	}
	var agency models.Agency
	if err := s.db.WithContext(ctx).First(&agency, "id = ?", id).Error; err != nil {
		return nil, apperrors.FromDB(err, "agency")
	}
	return &agency, nil
}

func (s *agencyService) Update(ctx context.Context, caller *models.User, id uuid.UUID, req models.UpdateAgencyRequest) (*models.Agency, error) {
	if err := requireSuperAdmin(caller); err != nil {
		return nil, err
	}

	var agency models.Agency
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&agency, "id = ?", id).Error; err != nil {
			return apperrors.FromDB(err, "agency")
		}
		updates := map[string]interface{}{}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return apperrors.FieldValidation("name", "must not be empty")
			}
			taken, err := agencyNameTaken(tx, name, id)
			if err != nil {
				return apperrors.Internal(err)
			}
			if taken {
				return apperrors.FieldValidation("name", "an agency with this name already exists")
			}
			updates["name"] = name
		}
		if req.Address != nil {
			updates["address"] = strings.TrimSpace(*req.Address)
		}
		if req.Phone != nil {
			updates["phone"] = strings.TrimSpace(*req.Phone)
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&agency).Updates(updates).Error; err != nil {
			return apperrors.FromDB(err, "agency")
		}
		return tx.First(&agency, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &agency, nil
}

// SetActive toggles the agency. Members of a disabled agency resolve as
// inactive and are rejected at authentication.
func (s *agencyService) SetActive(ctx context.Context, caller *models.User, id uuid.UUID, active bool) (*models.Agency, error) {
	if err := requireSuperAdmin(caller); err != nil {
		return nil, err
	}

	var agency models.Agency
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&agency, "id = ?", id).Error; err != nil {
			return apperrors.FromDB(err, "agency")
		}
		if err := tx.Model(&agency).Update("active", active).Error; err != nil {
			return apperrors.Internal(err)
		}
		agency.Active = active
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &agency, nil
}
