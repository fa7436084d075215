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

func propertyRequest(title string) models.PropertyRequest {
	return models.PropertyRequest{
		Title:     title,
		City:      "Quito",
		Price:     120000,
		Operation: "sale",
		MediaURLs: []string{"https://cdn.example.com/a.jpg"},
	}
}

func pendingIDs(t *testing.T, svc PropertyService, caller *models.User) []string {
	t.Helper()
	page, err := svc.ListPending(context.Background(), caller, models.PageRequest{})
	require.NoError(t, err)
	ids := make([]string, 0, len(page.Items))
	for _, p := range page.Items {
		ids = append(ids, p.ID.String())
	}
	return ids
}

func TestPropertyReviewAcrossAgencies(t *testing.T) {
	database, sm, notifier := newTestServices(t)
	ctx := context.Background()
	ag1 := testutil.CreateTenant(t, database, "AG1")
	ag2 := testutil.CreateTenant(t, database, "AG2")
	svc := sm.PropertyService

	casa, err := svc.Create(ctx, ag1.Agent, propertyRequest("Casa X"))
	require.NoError(t, err)
	assert.Equal(t, constants.StatusPending, casa.Status)
	assert.Equal(t, ag1.Agency.ID, casa.AgencyID)
	assert.Equal(t, 1, casa.Version)

	assert.NotContains(t, pendingIDs(t, svc, ag2.Admin), casa.ID.String())
	assert.Contains(t, pendingIDs(t, svc, ag1.Admin), casa.ID.String())

	rejected, err := svc.Reject(ctx, ag1.Admin, casa.ID, "Fotos de baja calidad")
	require.NoError(t, err)
	assert.Equal(t, constants.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionMessage)
	assert.Equal(t, "Fotos de baja calidad", *rejected.RejectionMessage)

	resubmitted, err := svc.Resubmit(ctx, ag1.Agent, casa.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusPending, resubmitted.Status)
	assert.Nil(t, resubmitted.RejectionMessage)

	notices := notifier.all()
	require.Len(t, notices, 1)
	assert.Equal(t, ag1.Agent.ID, notices[0].AgentID)
	assert.Equal(t, constants.StatusRejected, notices[0].Status)
	assert.Equal(t, "Fotos de baja calidad", notices[0].RejectionMessage)
}

func TestPropertyTenancyIsolation(t *testing.T) {
	database, sm, _ := newTestServices(t)
	ctx := context.Background()
	ag1 := testutil.CreateTenant(t, database, "AG1")
	ag2 := testutil.CreateTenant(t, database, "AG2")
	svc := sm.PropertyService

	p, err := svc.Create(ctx, ag1.Agent, propertyRequest("Casa X"))
	require.NoError(t, err)

	filters := []models.ListingFilter{
		{},
		{AgencyID: ag1.Agency.ID.String()},
		{AgentID: ag1.Agent.ID.String()},
		{Status: "PENDING", AgencyID: ag1.Agency.ID.String()},
		{Query: "casa", City: "quito"},
	}
	for _, f := range filters {
		page, err := svc.List(ctx, ag2.Admin, f)
		require.NoError(t, err)
		assert.Empty(t, page.Items, "filter %+v", f)
		assert.EqualValues(t, 0, page.Pagination.Total)
	}

	_, err = svc.Get(ctx, ag2.Admin, p.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	_, err = svc.Review(ctx, ag2.Admin, models.ReviewRequest{ID: p.ID, Status: constants.StatusApproved})
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	_, err = svc.Reject(ctx, ag2.Admin, p.ID, "nope")
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	assert.True(t, apperrors.Is(svc.Delete(ctx, ag2.Admin, p.ID), apperrors.KindNotFound))

	stored, err := svc.Get(ctx, ag1.Admin, p.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusPending, stored.Status)
}

func TestPropertyOwnershipIsolation(t *testing.T) {
	database, sm, _ := newTestServices(t)
	ctx := context.Background()
	ag1 := testutil.CreateTenant(t, database, "AG1")
	svc := sm.PropertyService

	p, err := svc.Create(ctx, ag1.Agent, propertyRequest("Casa X"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, ag1.Peer, p.ID, propertyRequest("Casa Y"))
	assert.Error(t, err)
	assert.Error(t, svc.Delete(ctx, ag1.Peer, p.ID))
	_, err = svc.Resubmit(ctx, ag1.Peer, p.ID)
	assert.Error(t, err)

	page, err := svc.List(ctx, ag1.Peer, models.ListingFilter{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	stored, err := svc.Get(ctx, ag1.Agent, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Casa X", stored.Title)
}

func TestAgencyAdminCannotEditOrCreate(t *testing.T) {
	database, sm, _ := newTestServices(t)
	ctx := context.Background()
	ag1 := testutil.CreateTenant(t, database, "AG1")
	svc := sm.PropertyService

	p, err := svc.Create(ctx, ag1.Agent, propertyRequest("Casa X"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, ag1.Admin, p.ID, propertyRequest("Casa Y"))
	assert.True(t, apperrors.Is(err, apperrors.KindAuthorization))
	_, err = svc.Create(ctx, ag1.Admin, propertyRequest("Casa Z"))
	assert.True(t, apperrors.Is(err, apperrors.KindAuthorization))

	require.NoError(t, svc.Delete(ctx, ag1.Admin, p.ID))
	_, err = svc.Get(ctx, ag1.Agent, p.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestPropertyReviewRequiresPending(t *testing.T) {
	database, sm, _ := newTestServices(t)
	ctx := context.Background()
	ag1 := testutil.CreateTenant(t, database, "AG1")
	svc := sm.PropertyService

	p, err := svc.Create(ctx, ag1.Agent, propertyRequest("Casa X"))
	require.NoError(t, err)
	approved, err := svc.Review(ctx, ag1.Admin, models.ReviewRequest{ID: p.ID, Status: constants.StatusApproved})
	require.NoError(t, err)
	assert.Equal(t, constants.StatusApproved, approved.Status)

	_, err = svc.Review(ctx, ag1.Admin, models.ReviewRequest{ID: p.ID, Status: constants.StatusApproved})
	assert.True(t, apperrors.Is(err, apperrors.KindConflict))
	_, err = svc.Reject(ctx, ag1.Admin, p.ID, "too late")
	assert.True(t, apperrors.Is(err, apperrors.KindConflict))
	_, err = svc.Resubmit(ctx, ag1.Agent, p.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindConflict))

	stored, err := svc.Get(ctx, ag1.Agent, p.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusApproved, stored.Status)
	assert.Equal(t, approved.Version, stored.Version)
}

func TestPropertyRejectRequiresMessage(t *testing.T) {
	database, sm, _ := newTestServices(t)
	ctx := context.Background()
	ag1 := testutil.CreateTenant(t, database, "AG1")
	svc := sm.PropertyService

	p, err := svc.Create(ctx, ag1.Agent, propertyRequest("Casa X"))
	require.NoError(t, err)

	_, err = svc.Reject(ctx, ag1.Admin, p.ID, "   ")
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
	_, err = svc.Review(ctx, ag1.Admin, models.ReviewRequest{ID: p.ID, Status: constants.StatusRejected})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	rejected, err := svc.Review(ctx, ag1.Admin, models.ReviewRequest{
		ID:              p.ID,
		Status:          constants.StatusRejected,
		RejectionReason: "  precio incorrecto ",
	})
	require.NoError(t, err)
	require.NotNil(t, rejected.RejectionMessage)
	assert.Equal(t, "precio incorrecto", *rejected.RejectionMessage)
}

func TestPropertyEditReturnsToPending(t *testing.T) {
	database, sm, _ := newTestServices(t)
	ctx := context.Background()
	ag1 := testutil.CreateTenant(t, database, "AG1")
	svc := sm.PropertyService

	p, err := svc.Create(ctx, ag1.Agent, propertyRequest("Casa X"))
	require.NoError(t, err)
	_, err = svc.Reject(ctx, ag1.Admin, p.ID, "Fotos de baja calidad")
	require.NoError(t, err)

	req := propertyRequest("Casa X renovada")
	req.Price = 99000
	edited, err := svc.Update(ctx, ag1.Agent, p.ID, req)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusPending, edited.Status)
	assert.Nil(t, edited.RejectionMessage)
	assert.Equal(t, "Casa X renovada", edited.Title)
	assert.Equal(t, 99000.0, edited.Price)
	assert.Equal(t, ag1.Agency.ID, edited.AgencyID)
	assert.Equal(t, 3, edited.Version)

	_, err = svc.Review(ctx, ag1.Admin, models.ReviewRequest{ID: p.ID, Status: constants.StatusApproved})
	require.NoError(t, err)
	edited, err = svc.Update(ctx, ag1.Agent, p.ID, propertyRequest("Casa X otra vez"))
	require.NoError(t, err)
	assert.Equal(t, constants.StatusPending, edited.Status)
}

func TestPropertyStaleVersionConflicts(t *testing.T) {
	database, sm, _ := newTestServices(t)
	ctx := context.Background()
	ag1 := testutil.CreateTenant(t, database, "AG1")
	svc := sm.PropertyService

	p, err := svc.Create(ctx, ag1.Agent, propertyRequest("Casa X"))
	require.NoError(t, err)

	first := propertyRequest("Casa X v2")
	first.Version = p.Version
	_, err = svc.Update(ctx, ag1.Agent, p.ID, first)
	require.NoError(t, err)

	stale := propertyRequest("Casa X v2 bis")
	stale.Version = p.Version
	_, err = svc.Update(ctx, ag1.Agent, p.ID, stale)
	assert.True(t, apperrors.Is(err, apperrors.KindConflict))

	stored, err := svc.Get(ctx, ag1.Agent, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Casa X v2", stored.Title)
}

func TestVersionedUpdateDetectsLostUpdate(t *testing.T) {
	database, sm, _ := newTestServices(t)
	ag1 := testutil.CreateTenant(t, database, "AG1")

	p, err := sm.PropertyService.Create(context.Background(), ag1.Agent, propertyRequest("Casa X"))
	require.NoError(t, err)
	ref := propertyRef(p)

	require.NoError(t, versionedUpdate(database, &models.Property{}, ref, map[string]interface{}{"title": "first"}))
	err = versionedUpdate(database, &models.Property{}, ref, map[string]interface{}{"title": "second"})
	assert.True(t, apperrors.Is(err, apperrors.KindConflict))
}

func TestSuperAdminCreatesOnBehalfOfAgent(t *testing.T) {
	database, sm, _ := newTestServices(t)
	ctx := context.Background()
	ag1 := testutil.CreateTenant(t, database, "AG1")
	super := testutil.CreateUser(t, database, constants.RoleSuperAdmin, nil)
	svc := sm.PropertyService

	_, err := svc.Create(ctx, super, propertyRequest("Casa X"))
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	req := propertyRequest("Casa X")
	req.AgentID = &ag1.Admin.ID
	_, err = svc.Create(ctx, super, req)
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	req.AgentID = &ag1.Agent.ID
	p, err := svc.Create(ctx, super, req)
	require.NoError(t, err)
	assert.Equal(t, ag1.Agent.ID, p.AgentID)
	assert.Equal(t, ag1.Agency.ID, p.AgencyID)
}

func TestAgentIgnoresForeignAgentID(t *testing.T) {
	database, sm, _ := newTestServices(t)
	ag1 := testutil.CreateTenant(t, database, "AG1")

	req := propertyRequest("Casa X")
	req.AgentID = &ag1.Peer.ID
	p, err := sm.PropertyService.Create(context.Background(), ag1.Agent, req)
	require.NoError(t, err)
	assert.Equal(t, ag1.Agent.ID, p.AgentID)
}

func TestPropertyListFilters(t *testing.T) {
	database, sm, _ := newTestServices(t)
	ctx := context.Background()
	ag1 := testutil.CreateTenant(t, database, "AG1")
	svc := sm.PropertyService

	cheap := propertyRequest("Depto centro")
	cheap.Price = 50000
	cheap.City = "Cuenca"
	_, err := svc.Create(ctx, ag1.Agent, cheap)
	require.NoError(t, err)
	for i := 0; i < 11; i++ {
		_, err := svc.Create(ctx, ag1.Agent, propertyRequest("Casa"))
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, ag1.Admin, models.ListingFilter{})
	require.NoError(t, err)
	assert.Len(t, page.Items, models.DefaultPageLimit)
	assert.EqualValues(t, 12, page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.Pages)

	maxPrice := 60000.0
	page, err = svc.List(ctx, ag1.Admin, models.ListingFilter{MaxPrice: &maxPrice})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Depto centro", page.Items[0].Title)

	page, err = svc.List(ctx, ag1.Admin, models.ListingFilter{City: "CUENCA"})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)

	_, err = svc.List(ctx, ag1.Admin, models.ListingFilter{Status: "ARCHIVED"})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	minPrice := 70000.0
	_, err = svc.List(ctx, ag1.Admin, models.ListingFilter{MinPrice: &minPrice, MaxPrice: &maxPrice})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
}

func TestAgentCannotReadPendingQueue(t *testing.T) {
	database, sm, _ := newTestServices(t)
	ag1 := testutil.CreateTenant(t, database, "AG1")

	_, err := sm.PropertyService.ListPending(context.Background(), ag1.Agent, models.PageRequest{})
	assert.True(t, apperrors.Is(err, apperrors.KindAuthorization))
}
