// Package testutil provides an in-memory database and fixtures for service
// and handler tests.
package testutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/inmohub/listings/shared/constants"
	"github.com/inmohub/listings/shared/db"
	"github.com/inmohub/listings/shared/models"
)

// NewDB opens a migrated in-memory sqlite database. The pool is pinned to a
// single connection so every query sees the same database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(database))
	return database
}

func CreateAgency(t *testing.T, database *gorm.DB, name string) *models.Agency {
	t.Helper()
	agency := &models.Agency{Name: name, Active: true}
	require.NoError(t, database.Create(agency).Error)
	return agency
}

// CreateUser inserts an active user. agency must be nil for SUPER_ADMIN.
func CreateUser(t *testing.T, database *gorm.DB, role constants.RoleEnum, agency *models.Agency) *models.User {
	t.Helper()
	user := &models.User{
		ExternalAuthID: "auth|" + uuid.NewString(),
		Name:           string(role),
		Email:          uuid.NewString()[:8] + "@example.com",
		Role:           role,
		Active:         true,
	}
	if agency != nil {
		user.AgencyID = &agency.ID
	}
	require.NoError(t, database.Create(user).Error)
	return user
}

// Tenant is an agency with one admin and two agents.
type Tenant struct {
	Agency *models.Agency
	Admin  *models.User
	Agent  *models.User
	Peer   *models.User
}

func CreateTenant(t *testing.T, database *gorm.DB, name string) Tenant {
	t.Helper()
	agency := CreateAgency(t, database, name)
	return Tenant{
		Agency: agency,
		Admin:  CreateUser(t, database, constants.RoleAgencyAdmin, agency),
		Agent:  CreateUser(t, database, constants.RoleAgent, agency),
		Peer:   CreateUser(t, database, constants.RoleAgent, agency),
	}
}
