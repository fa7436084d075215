package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inmohub/listings/shared/apperrors"
	"github.com/inmohub/listings/shared/constants"
	"github.com/inmohub/listings/shared/models"
	"github.com/inmohub/listings/shared/testutil"
)

func TestAgencyNamesAreUnique(t *testing.T) {
	database, sm, _ := newTestServices(t)
	ctx := context.Background()
	super := testutil.CreateUser(t, database, constants.RoleSuperAdmin, nil)
	svc := sm.AgencyService

	norte, err := svc.Create(ctx, super, models.CreateAgencyRequest{Name: "Agencia Norte"})
	require.NoError(t, err)
	assert.True(t, norte.Active)

	_, err = svc.Create(ctx, super, models.CreateAgencyRequest{Name: "Agencia Norte"})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
	_, err = svc.Create(ctx, super, models.CreateAgencyRequest{Name: "  agencia norte "})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	sur, err := svc.Create(ctx, super, models.CreateAgencyRequest{Name: "Agencia Sur"})
	require.NoError(t, err)
	rename := "Agencia Norte"
	_, err = svc.Update(ctx, super, sur.ID, models.UpdateAgencyRequest{Name: &rename})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	page, err := svc.List(ctx, super, models.AgencyFilter{Query: "norte"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, norte.ID, page.Items[0].ID)

	page, err = svc.List(ctx, super, models.AgencyFilter{Query: "%"})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestAgencyManagementIsSuperAdminOnly(t *testing.T) {
	database, sm, _ := newTestServices(t)
	ctx := context.Background()
	ag1 := testutil.CreateTenant(t, database, "AG1")
	svc := sm.AgencyService

	_, err := svc.Create(ctx, ag1.Admin, models.CreateAgencyRequest{Name: "Otra"})
	assert.True(t, apperrors.Is(err, apperrors.KindAuthorization))
	_, err = svc.Get(ctx, ag1.Agent, ag1.Agency.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindAuthorization))
	_, err = svc.SetActive(ctx, ag1.Admin, ag1.Agency.ID, false)
	assert.True(t, apperrors.Is(err, apperrors.KindAuthorization))
}

func TestDisabledAgencyMembersResolveInactive(t *testing.T) {
	database, sm, _ := newTestServices(t)
	ctx := context.Background()
	super := testutil.CreateUser(t, database, constants.RoleSuperAdmin, nil)
	ag1 := testutil.CreateTenant(t, database, "AG1")

	agency, err := sm.AgencyService.SetActive(ctx, super, ag1.Agency.ID, false)
	require.NoError(t, err)
	assert.False(t, agency.Active)

	user, err := sm.IdentityService.Resolve(ctx, identityOf(ag1.Agent))
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.False(t, user.Active)
}
