package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrocat-app/astrocat/internal/domain/entity"
	repo "github.com/astrocat-app/astrocat/internal/domain/repository"
	"github.com/astrocat-app/astrocat/pkg/helpers"
)

func newCatalogService(t *testing.T, superUserID string) (*CatalogService, *memUserRepo) {
	t.Helper()
	users := newMemUserRepo()
	objects := newMemObjectRepo()
	systems := newMemSystemRepo(objects)
	svc := NewCatalogService(systems, objects, users, nil, "", nil, "", helpers.NewLogger("test", "test"), superUserID)
	return svc, users
}

func TestCatalogService_Systems(t *testing.T) {
	ctx := context.Background()
	svc, users := newCatalogService(t, "")
	creator := seedUser(t, users, "creator")
	outsider := seedUser(t, users, "outsider")

	sys, err := svc.CreateSystem(ctx, creator.ID, SystemInput{Name: "Kepler-90", Galaxy: "Milky Way"})
	require.NoError(t, err)

	t.Run("DuplicateName", func(t *testing.T) {
		_, err := svc.CreateSystem(ctx, outsider.ID, SystemInput{Name: "Kepler-90", Galaxy: "Milky Way"})
		assert.ErrorIs(t, err, repo.ErrConflict)
	})

	t.Run("CreateThenGetRoundTrip", func(t *testing.T) {
		got, err := svc.GetSystem(sys.ID)
		require.NoError(t, err)
		assert.Equal(t, "Kepler-90", got.Name)
		assert.Equal(t, creator.ID, got.CreatorID)
	})

	t.Run("UpdateReturnsPreviousName", func(t *testing.T) {
		got, oldName, err := svc.UpdateSystem(ctx, creator.ID, sys.ID, SystemInput{Name: "Kepler-90b", Galaxy: "Milky Way"})
		require.NoError(t, err)
		assert.Equal(t, "Kepler-90", oldName)
		assert.Equal(t, "Kepler-90b", got.Name)
	})

	t.Run("NonOwnerUpdateForbidden", func(t *testing.T) {
		_, _, err := svc.UpdateSystem(ctx, outsider.ID, sys.ID, SystemInput{Name: "Stolen", Galaxy: "Milky Way"})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("RenameToTakenName", func(t *testing.T) {
		other, err := svc.CreateSystem(ctx, creator.ID, SystemInput{Name: "TRAPPIST-1", Galaxy: "Milky Way"})
		require.NoError(t, err)
		_, _, err = svc.UpdateSystem(ctx, creator.ID, other.ID, SystemInput{Name: "Kepler-90b", Galaxy: "Milky Way"})
		assert.ErrorIs(t, err, repo.ErrConflict)
	})

	t.Run("NonOwnerDeleteForbidden", func(t *testing.T) {
		err := svc.DeleteSystem(ctx, outsider.ID, sys.ID)
		assert.ErrorIs(t, err, ErrForbidden)
		_, err = svc.GetSystem(sys.ID)
		assert.NoError(t, err)
	})

	t.Run("DeleteTwice", func(t *testing.T) {
		require.NoError(t, svc.DeleteSystem(ctx, creator.ID, sys.ID))
		err := svc.DeleteSystem(ctx, creator.ID, sys.ID)
		assert.ErrorIs(t, err, repo.ErrNotFound)
	})
}

func TestCatalogService_SuperUser(t *testing.T) {
	ctx := context.Background()
	users := newMemUserRepo()
	admin := &entity.User{Username: "admin", Email: "admin@example.com", Name: "Admin"}
	require.NoError(t, users.Create(admin))

	objects := newMemObjectRepo()
	systems := newMemSystemRepo(objects)
	svc := NewCatalogService(systems, objects, users, nil, "", nil, "", helpers.NewLogger("test", "test"), admin.ID)

	creator := &entity.User{Username: "mortal", Email: "mortal@example.com", Name: "Mortal"}
	require.NoError(t, users.Create(creator))

	sys, err := svc.CreateSystem(ctx, creator.ID, SystemInput{Name: "Gliese 581", Galaxy: "Milky Way"})
	require.NoError(t, err)

	got, oldName, err := svc.UpdateSystem(ctx, admin.ID, sys.ID, SystemInput{Name: "Gliese 581 (rev)", Galaxy: "Milky Way"})
	require.NoError(t, err)
	assert.Equal(t, "Gliese 581", oldName)
	assert.Equal(t, creator.ID, got.CreatorID)

	assert.NoError(t, svc.DeleteSystem(ctx, admin.ID, sys.ID))
}

func TestCatalogService_Objects(t *testing.T) {
	ctx := context.Background()
	svc, users := newCatalogService(t, "")
	creator := seedUser(t, users, "astronomer")
	outsider := seedUser(t, users, "tourist")

	sys, err := svc.CreateSystem(ctx, creator.ID, SystemInput{Name: "Kepler-11", Galaxy: "Milky Way"})
	require.NoError(t, err)

	obj, err := svc.CreateObject(ctx, creator.ID, ObjectInput{
		Name:      "Kepler-11b",
		SpaceType: "planet",
		Radius:    12700,
		SystemID:  sys.ID,
	})
	require.NoError(t, err)

	t.Run("UnknownSystem", func(t *testing.T) {
		_, err := svc.CreateObject(ctx, creator.ID, ObjectInput{Name: "Rogue", SpaceType: "planet", SystemID: "missing"})
		assert.ErrorIs(t, err, repo.ErrNotFound)
	})

	t.Run("DuplicateName", func(t *testing.T) {
		_, err := svc.CreateObject(ctx, creator.ID, ObjectInput{Name: "Kepler-11b", SpaceType: "planet", SystemID: sys.ID})
		assert.ErrorIs(t, err, repo.ErrConflict)
	})

	t.Run("ListBySystem", func(t *testing.T) {
		list, err := svc.SystemObjects(sys.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, obj.ID, list[0].ID)
	})

	t.Run("NonOwnerUpdateForbidden", func(t *testing.T) {
		_, err := svc.UpdateObject(ctx, outsider.ID, obj.ID, ObjectInput{Name: "Taken", SpaceType: "planet", SystemID: sys.ID})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("NonOwnerDeleteForbidden", func(t *testing.T) {
		err := svc.DeleteObject(ctx, outsider.ID, obj.ID)
		assert.ErrorIs(t, err, ErrForbidden)
		_, err = svc.GetObject(obj.ID)
		assert.NoError(t, err)
	})

	t.Run("OwnerUpdate", func(t *testing.T) {
		got, err := svc.UpdateObject(ctx, creator.ID, obj.ID, ObjectInput{
			Name:       "Kepler-11b",
			SpaceType:  "planet",
			Radius:     12800,
			Satellites: 1,
			SystemID:   sys.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, 12800.0, got.Radius)
		assert.Equal(t, 1, got.Satellites)
	})

	t.Run("DeleteTwice", func(t *testing.T) {
		require.NoError(t, svc.DeleteObject(ctx, creator.ID, obj.ID))
		err := svc.DeleteObject(ctx, creator.ID, obj.ID)
		assert.ErrorIs(t, err, repo.ErrNotFound)
	})
}

func TestCatalogService_SolarSystem(t *testing.T) {
	ctx := context.Background()
	svc, users := newCatalogService(t, "")
	admin := seedUser(t, users, "admin")

	_, err := svc.CreateSystem(ctx, admin.ID, SystemInput{Name: entity.SolarSystemName, Galaxy: "Milky Way"})
	require.NoError(t, err)
	other, err := svc.CreateSystem(ctx, admin.ID, SystemInput{Name: "Alpha Centauri", Galaxy: "Milky Way"})
	require.NoError(t, err)

	t.Run("ExcludedFromListing", func(t *testing.T) {
		list, err := svc.ListSystems()
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, other.ID, list[0].ID)
	})

	t.Run("OwnEndpointFindsIt", func(t *testing.T) {
		got, err := svc.SolarSystem()
		require.NoError(t, err)
		assert.True(t, got.IsSolar())
	})
}

func TestImagePrefix(t *testing.T) {
	assert.Equal(t, "img/kepler-90/", imagePrefix("Kepler-90"))
	assert.Equal(t, "img/solar-system/", imagePrefix("Solar System"))
}
