package handlers

import (
	"github.com/inmohub/listings/catalog-service/services"
)

type HandlerManager struct {
	CatalogHandler *CatalogHandler
}

func NewHandlerManager(sm *services.ServiceManager) *HandlerManager {
	return &HandlerManager{
		CatalogHandler: NewCatalogHandler(sm.CatalogService),
	}
}
