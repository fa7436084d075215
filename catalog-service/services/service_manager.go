package services

import (
	"gorm.io/gorm"
)

type ServiceManager struct {
	CatalogService CatalogService
}

func NewServiceManager(db *gorm.DB) *ServiceManager {
	return &ServiceManager{
		CatalogService: NewCatalogService(db),
	}
}
