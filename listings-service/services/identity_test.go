package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/inmohub/listings/shared/constants"
	"github.com/inmohub/listings/shared/models"
	"github.com/inmohub/listings/shared/testutil"
	"github.com/inmohub/listings/shared/utils"
)

func identityOf(user *models.User) utils.Identity {
	return utils.Identity{ExternalID: user.ExternalAuthID, Email: user.Email}
}

func TestResolveKnownIdentity(t *testing.T) {
	database := testutil.NewDB(t)
	ag1 := testutil.CreateTenant(t, database, "AG1")
	svc := NewIdentityService(database, constants.ProvisioningDisabled)

	user, err := svc.Resolve(context.Background(), identityOf(ag1.Agent))
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, ag1.Agent.ID, user.ID)
	assert.True(t, user.Active)
	require.NotNil(t, user.Agency)
	assert.Equal(t, "AG1", user.Agency.Name)
}

func TestResolveUnknownIdentityWhenDisabled(t *testing.T) {
	database := testutil.NewDB(t)
	svc := NewIdentityService(database, constants.ProvisioningDisabled)

	user, err := svc.Resolve(context.Background(), utils.Identity{ExternalID: "auth|nobody"})
	require.NoError(t, err)
	assert.Nil(t, user)

	var count int64
	require.NoError(t, database.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestBootstrapProvisionsOnlyFirstIdentity(t *testing.T) {
	database := testutil.NewDB(t)
	svc := NewIdentityService(database, constants.ProvisioningBootstrap)
	ctx := context.Background()

	first, err := svc.Resolve(ctx, utils.Identity{ExternalID: "auth|founder", Email: "founder@example.com"})
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, constants.RoleSuperAdmin, first.Role)
	assert.Nil(t, first.AgencyID)
	assert.True(t, first.Active)

	again, err := svc.Resolve(ctx, utils.Identity{ExternalID: "auth|founder"})
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.Equal(t, first.ID, again.ID)

	stranger, err := svc.Resolve(ctx, utils.Identity{ExternalID: "auth|stranger"})
	require.NoError(t, err)
	assert.Nil(t, stranger)
}

func TestBootstrapMarkerIsUnique(t *testing.T) {
	database := testutil.NewDB(t)
	svc := NewIdentityService(database, constants.ProvisioningBootstrap)

	first, err := svc.Resolve(context.Background(), utils.Identity{ExternalID: "auth|founder"})
	require.NoError(t, err)
	require.NotNil(t, first)
	require.NotNil(t, first.Bootstrap)

	// a concurrent first login that passed the empty-table check loses here
	marker := true
	rival := models.User{
		ExternalAuthID: "auth|rival",
		Role:           constants.RoleSuperAdmin,
		Active:         true,
		Bootstrap:      &marker,
	}
	err = database.Create(&rival).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	ordinary := testutil.CreateUser(t, database, constants.RoleSuperAdmin, nil)
	assert.Nil(t, ordinary.Bootstrap)
}

func TestResolveEmptySubject(t *testing.T) {
	database := testutil.NewDB(t)
	user, err := NewIdentityService(database, constants.ProvisioningBootstrap).Resolve(context.Background(), utils.Identity{})
	require.NoError(t, err)
	assert.Nil(t, user)
}
