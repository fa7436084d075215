package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inmohub/listings/shared/apperrors"
	"github.com/inmohub/listings/shared/constants"
	"github.com/inmohub/listings/shared/models"
	"github.com/inmohub/listings/shared/testutil"
)

func TestLandingImagesAreSuperAdminOnly(t *testing.T) {
	database, sm, _ := newTestServices(t)
	ctx := context.Background()
	super := testutil.CreateUser(t, database, constants.RoleSuperAdmin, nil)
	ag1 := testutil.CreateTenant(t, database, "AG1")
	svc := sm.LandingImageService

	image, err := svc.Create(ctx, super, models.LandingImageRequest{ImageURL: "https://cdn.example.com/a.jpg"})
	require.NoError(t, err)

	for _, caller := range []*models.User{ag1.Admin, ag1.Agent, nil} {
		_, err = svc.Create(ctx, caller, models.LandingImageRequest{ImageURL: "https://cdn.example.com/b.jpg"})
		assert.True(t, apperrors.Is(err, apperrors.KindAuthorization))
		_, err = svc.List(ctx, caller, models.PageRequest{})
		assert.True(t, apperrors.Is(err, apperrors.KindAuthorization))
		_, err = svc.Update(ctx, caller, image.ID, models.LandingImageRequest{ImageURL: "https://cdn.example.com/c.jpg"})
		assert.True(t, apperrors.Is(err, apperrors.KindAuthorization))
		err = svc.Delete(ctx, caller, image.ID)
		assert.True(t, apperrors.Is(err, apperrors.KindAuthorization))
	}

	var count int64
	require.NoError(t, database.Model(&models.LandingImage{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLandingImageLifecycle(t *testing.T) {
	database, sm, _ := newTestServices(t)
	ctx := context.Background()
	super := testutil.CreateUser(t, database, constants.RoleSuperAdmin, nil)
	svc := sm.LandingImageService

	hero, err := svc.Create(ctx, super, models.LandingImageRequest{
		Title:    "Hero",
		ImageURL: "https://cdn.example.com/hero.jpg",
		Position: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, constants.LandingImageActive, hero.Status)

	promo, err := svc.Create(ctx, super, models.LandingImageRequest{
		Title:    "Promo",
		ImageURL: "https://cdn.example.com/promo.jpg",
		Position: 1,
		Status:   constants.LandingImageInactive,
	})
	require.NoError(t, err)
	assert.Equal(t, constants.LandingImageInactive, promo.Status)

	page, err := svc.List(ctx, super, models.PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, promo.ID, page.Items[0].ID)
	assert.Equal(t, hero.ID, page.Items[1].ID)

	updated, err := svc.Update(ctx, super, hero.ID, models.LandingImageRequest{
		Title:    "Hero v2",
		ImageURL: "https://cdn.example.com/hero-2.jpg",
		LinkURL:  "https://example.com/projects",
		Position: 0,
		Status:   constants.LandingImageInactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Hero v2", updated.Title)
	assert.Equal(t, "https://cdn.example.com/hero-2.jpg", updated.ImageURL)
	assert.Equal(t, "https://example.com/projects", updated.LinkURL)
	assert.Equal(t, 0, updated.Position)
	assert.Equal(t, constants.LandingImageInactive, updated.Status)

	require.NoError(t, svc.Delete(ctx, super, promo.ID))
	page, err = svc.List(ctx, super, models.PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, hero.ID, page.Items[0].ID)
}

func TestLandingImageMissingID(t *testing.T) {
	database, sm, _ := newTestServices(t)
	ctx := context.Background()
	super := testutil.CreateUser(t, database, constants.RoleSuperAdmin, nil)
	svc := sm.LandingImageService

	_, err := svc.Update(ctx, super, uuid.New(), models.LandingImageRequest{ImageURL: "https://cdn.example.com/x.jpg"})
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	err = svc.Delete(ctx, super, uuid.New())
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}
