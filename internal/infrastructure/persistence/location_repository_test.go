package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopcart/backend/internal/domain/location"
	"github.com/shopcart/backend/internal/domain/shared"
	"github.com/shopcart/backend/internal/infrastructure/persistence/models"
)

type testTree struct {
	india, telangana, karnataka, hyderabad, bangalore, madhapur *location.Location
}

func seedTestTree(t *testing.T, repo *GormLocationRepository) testTree {
	t.Helper()
	mk := func(name string, typ location.Type, parent *location.Location) *location.Location {
		l, err := location.NewLocation(name, typ, parent)
		require.NoError(t, err)
		return l
	}
	var tr testTree
	tr.india = mk("India", location.TypeCountry, nil)
	tr.telangana = mk("Telangana", location.TypeState, tr.india)
	tr.karnataka = mk("Karnataka", location.TypeState, tr.india)
	tr.hyderabad = mk("Hyderabad", location.TypeCity, tr.telangana)
	tr.bangalore = mk("Bangalore", location.TypeCity, tr.karnataka)
	tr.madhapur = mk("Madhapur", location.TypeArea, tr.hyderabad)

	require.NoError(t, repo.CreateBatch(context.Background(), []location.Location{
		*tr.india, *tr.telangana, *tr.karnataka, *tr.hyderabad, *tr.bangalore, *tr.madhapur,
	}))
	return tr
}

func TestGormLocationRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormLocationRepository(db)
	ctx := context.Background()
	tr := seedTestTree(t, repo)

	t.Run("finds by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, tr.hyderabad.ID)
		require.NoError(t, err)
		assert.Equal(t, "Hyderabad", found.Name)
		assert.Equal(t, location.TypeCity, found.Type)
		require.NotNil(t, found.ParentID)
		assert.Equal(t, tr.telangana.ID, *found.ParentID)
	})

	t.Run("root has no parent", func(t *testing.T) {
		found, err := repo.FindByID(ctx, tr.india.ID)
		require.NoError(t, err)
		assert.True(t, found.IsRoot())
	})

	t.Run("finds by name ignoring case", func(t *testing.T) {
		found, err := repo.FindByName(ctx, "  india ")
		require.NoError(t, err)
		assert.Equal(t, tr.india.ID, found.ID)
	})

	t.Run("unknown name is not found", func(t *testing.T) {
		_, err := repo.FindByName(ctx, "Atlantis")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("lists direct children of a type in name order", func(t *testing.T) {
		states, err := repo.ListChildren(ctx, tr.india.ID, location.TypeState)
		require.NoError(t, err)
		require.Len(t, states, 2)
		assert.Equal(t, "Karnataka", states[0].Name)
		assert.Equal(t, "Telangana", states[1].Name)
	})

	t.Run("type mismatch yields no children", func(t *testing.T) {
		cities, err := repo.ListChildren(ctx, tr.india.ID, location.TypeCity)
		require.NoError(t, err)
		assert.Empty(t, cities)
	})

	t.Run("lists children of every node with a name", func(t *testing.T) {
		delhiState, err := location.NewLocation("Delhi", location.TypeState, tr.india)
		require.NoError(t, err)
		delhiCity, err := location.NewLocation("Delhi", location.TypeCity, delhiState)
		require.NoError(t, err)
		karolBagh, err := location.NewLocation("Karol Bagh", location.TypeArea, delhiCity)
		require.NoError(t, err)
		require.NoError(t, repo.CreateBatch(ctx, []location.Location{*delhiState, *delhiCity, *karolBagh}))
		t.Cleanup(func() {
			require.NoError(t, db.Delete(&models.LocationModel{}, "id IN ?",
				[]uuid.UUID{karolBagh.ID, delhiCity.ID, delhiState.ID}).Error)
		})

		areas, err := repo.ListChildrenOfNamed(ctx, " DELHI ", location.TypeArea)
		require.NoError(t, err)
		require.Len(t, areas, 1)
		assert.Equal(t, karolBagh.ID, areas[0].ID)

		cities, err := repo.ListChildrenOfNamed(ctx, "delhi", location.TypeCity)
		require.NoError(t, err)
		require.Len(t, cities, 1)
		assert.Equal(t, delhiCity.ID, cities[0].ID)

		none, err := repo.ListChildrenOfNamed(ctx, "Atlantis", location.TypeState)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("lists by type", func(t *testing.T) {
		cities, err := repo.ListByType(ctx, location.TypeCity)
		require.NoError(t, err)
		assert.Len(t, cities, 2)
	})

	t.Run("walks ancestors through the repository", func(t *testing.T) {
		chain, err := location.Ancestors(ctx, repo, tr.madhapur.ID)
		require.NoError(t, err)
		require.Len(t, chain, 4)
		assert.Equal(t, tr.india.ID, chain[3].ID)
	})

	t.Run("counts", func(t *testing.T) {
		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(6), n)
	})
}

func TestGormAddressRepository(t *testing.T) {
	db := setupTestDB(t)
	locRepo := NewGormLocationRepository(db)
	repo := NewGormAddressRepository(db)
	ctx := context.Background()
	tr := seedTestTree(t, locRepo)

	addr, err := location.NewAddress(tr.madhapur, "Home", "9999999999", "1-2-3 Street", "Near Park", "500081")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, addr))

	found, err := repo.FindByID(ctx, addr.ID)
	require.NoError(t, err)
	assert.Equal(t, tr.madhapur.ID, found.LocationID)
	assert.Equal(t, "500081", found.PostalCode)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
