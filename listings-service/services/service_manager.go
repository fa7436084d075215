package services

import (
	"gorm.io/gorm"
)

type Options struct {
	// Provisioning is the identity provisioning policy, see constants.Provisioning*.
	Provisioning string
	Notifier     Notifier
}

type ServiceManager struct {
	IdentityService     IdentityService
	AgencyService       AgencyService
	UserService         UserService
	PropertyService     PropertyService
	ProjectService      ProjectService
	LandingImageService LandingImageService
}

func NewServiceManager(db *gorm.DB, opts Options) *ServiceManager {
	notifier := opts.Notifier
	if notifier == nil {
		notifier = logNotifier{}
	}
	return &ServiceManager{
		IdentityService:     NewIdentityService(db, opts.Provisioning),
		AgencyService:       NewAgencyService(db),
		UserService:         NewUserService(db),
		PropertyService:     NewPropertyService(db, notifier),
		ProjectService:      NewProjectService(db, notifier),
		LandingImageService: NewLandingImageService(db),
	}
}
