package services

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/inmohub/listings/shared/apperrors"
	"github.com/inmohub/listings/shared/constants"
	"github.com/inmohub/listings/shared/models"
	"github.com/inmohub/listings/shared/utils"
)

// IdentityService maps verified identities to platform profiles.
type IdentityService interface {
	Resolve(ctx context.Context, identity utils.Identity) (*models.User, error)
}

type identityService struct {
	db           *gorm.DB
	provisioning string
}

func NewIdentityService(db *gorm.DB, provisioning string) IdentityService {
	if provisioning == "" {
		provisioning = constants.ProvisioningDisabled
	}
	return &identityService{db: db, provisioning: provisioning}
}

// Resolve returns (nil, nil) when the identity has no profile and none may be
// provisioned. A profile whose agency is disabled comes back inactive.
func (s *identityService) Resolve(ctx context.Context, identity utils.Identity) (*models.User, error) {
	if identity.ExternalID == "" {
		return nil, nil
	}

	var user models.User
	err := s.db.WithContext(ctx).Preload("Agency").
		First(&user, "external_auth_id = ?", identity.ExternalID).Error
	switch {
	case err == nil:
		if user.Agency != nil && !user.Agency.Active {
			user.Active = false
		}
		return &user, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperrors.Internal(err)
	}

	if s.provisioning != constants.ProvisioningBootstrap {
		return nil, nil
	}
	return s.bootstrap(ctx, identity)
}

// bootstrap provisions the very first identity as SUPER_ADMIN. Once any
// profile exists it provisions nothing. Concurrent first logins can both pass
// the count; the unique bootstrap marker lets only one of them commit.
func (s *identityService) bootstrap(ctx context.Context, identity utils.Identity) (*models.User, error) {
	var created *models.User
	marker := true
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		user := models.User{
			ExternalAuthID: identity.ExternalID,
			Email:          identity.Email,
			Name:           identity.Email,
			Role:           constants.RoleSuperAdmin,
			Active:         true,
			Bootstrap:      &marker,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		created = &user
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil
		}
		return nil, apperrors.Internal(err)
	}
	if created != nil {
		slog.Info("bootstrapped super admin", "user_id", created.ID, "external_auth_id", created.ExternalAuthID)
	}
	return created, nil
}
