package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shopcart/backend/internal/application/seed"
	"github.com/shopcart/backend/internal/domain/account"
	"github.com/shopcart/backend/internal/domain/catalog"
	"github.com/shopcart/backend/internal/domain/identity"
	"github.com/shopcart/backend/internal/domain/location"
	"github.com/shopcart/backend/internal/infrastructure/persistence"
	"github.com/shopcart/backend/internal/infrastructure/persistence/models"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

func TestLoadDataset(t *testing.T) {
	ds, err := seed.LoadDataset()
	require.NoError(t, err)

	assert.Equal(t, "india", ds.Country.Name)
	assert.NotEmpty(t, ds.Country.States)
	assert.Len(t, ds.Stores, 10)
	assert.NotEmpty(t, ds.Products)

	names := map[string]bool{}
	for _, u := range ds.Users {
		names[u.UserName] = true
	}
	assert.True(t, names["Admin"])
	assert.True(t, names["Test"])
}

func TestSeeder_Run(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	ds, err := seed.LoadDataset()
	require.NoError(t, err)
	seeder := seed.NewSeeder(persistence.NewGormSeedScope(db), ds, seed.Options{
		AdminPassword:   "Admin@2021",
		DefaultPassword: "User@2021",
		RandomSeed:      42,
	}, zap.NewNop())

	report, err := seeder.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 43, report.Locations)
	assert.Equal(t, len(ds.Users), report.Users)
	assert.Equal(t, 10, report.Stores)
	assert.Equal(t, 5, report.Categories)
	assert.Equal(t, len(ds.Products), report.Products)
	assert.Empty(t, report.Skipped)

	t.Run("location names are title cased", func(t *testing.T) {
		locations := persistence.NewGormLocationRepository(db)
		root, err := locations.FindByName(ctx, location.RootName)
		require.NoError(t, err)
		assert.True(t, root.IsRoot())

		states, err := locations.ListChildren(ctx, root.ID, location.TypeState)
		require.NoError(t, err)
		var stateNames []string
		for _, s := range states {
			stateNames = append(stateNames, s.Name)
		}
		assert.Contains(t, stateNames, "Tamil Nadu")

		_, err = locations.FindByName(ctx, "Banjara Hills")
		assert.NoError(t, err)
	})

	t.Run("admin holds every role and the larger balance", func(t *testing.T) {
		users := persistence.NewGormUserRepository(db)
		admin, err := users.FindByUsername(ctx, seed.AdminUsername)
		require.NoError(t, err)
		assert.ElementsMatch(t, identity.AllRoles(), admin.Roles)
		assert.True(t, admin.VerifyPassword("Admin@2021"))
		require.NotNil(t, admin.AddressID)

		acc, err := persistence.NewGormAccountRepository(db).FindByOwner(ctx, account.OwnerUser, admin.ID)
		require.NoError(t, err)
		assert.True(t, acc.Balance.Equal(seed.AdminOpeningBalance))
	})

	t.Run("regular users get the default password and balance", func(t *testing.T) {
		users := persistence.NewGormUserRepository(db)
		ravi, err := users.FindByUsername(ctx, "ravi")
		require.NoError(t, err)
		assert.Equal(t, []identity.Role{identity.RoleUser}, ravi.Roles)
		assert.True(t, ravi.VerifyPassword("User@2021"))

		acc, err := persistence.NewGormAccountRepository(db).FindByOwner(ctx, account.OwnerUser, ravi.ID)
		require.NoError(t, err)
		assert.True(t, acc.Balance.Equal(seed.UserOpeningBalance))
	})

	t.Run("every store has an account and an address", func(t *testing.T) {
		stores, err := persistence.NewGormStoreRepository(db).List(ctx)
		require.NoError(t, err)
		require.Len(t, stores, 10)
		for _, st := range stores {
			assert.NotNil(t, st.AddressID)
			acc, err := persistence.NewGormAccountRepository(db).FindByOwner(ctx, account.OwnerStore, st.ID)
			require.NoError(t, err)
			assert.True(t, acc.Balance.IsZero())
		}
	})

	t.Run("products are stocked in two stores with derived availability", func(t *testing.T) {
		products, total, err := persistence.NewGormProductRepository(db).Search(ctx, catalog.ProductSearch{})
		require.NoError(t, err)
		assert.Equal(t, int64(len(ds.Products)), total)

		items := persistence.NewGormStoreItemRepository(db)
		for _, p := range products {
			stock, err := items.ListByProduct(ctx, p.ID)
			require.NoError(t, err)
			assert.Len(t, stock, 2)
			assert.Equal(t, catalog.IsAvailable(stock), p.Available, p.Name)
			for _, it := range stock {
				assert.GreaterOrEqual(t, it.Quantity, 0)
				assert.Less(t, it.Quantity, 1000)
			}
		}
	})

	t.Run("second run skips populated tables", func(t *testing.T) {
		again, err := seeder.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"locations", "users", "stores", "categories", "products"}, again.Skipped)
		assert.Zero(t, again.Users)

		count, err := persistence.NewGormUserRepository(db).Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(len(ds.Users)), count)
	})
}

func TestSeeder_ProductWithUnknownPropertyFails(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	ds := &seed.Dataset{
		Country: seed.CountryData{Name: "India", States: []seed.StateData{{
			Name:   "Goa",
			Cities: []seed.CityData{{Name: "Panaji", Areas: []string{"Miramar"}}},
		}}},
		Stores:     []string{"HomeKart"},
		Categories: []seed.CategoryData{{Category: "Books", URL: "books"}},
		Products: []seed.ProductData{{
			Name: "Malgudi Days", Category: "Books", Amount: 150,
			Properties: []seed.PropertyValueData{{Name: "Weight", Value: "1"}},
		}},
	}
	seeder := seed.NewSeeder(persistence.NewGormSeedScope(db), ds, seed.Options{RandomSeed: 7}, zap.NewNop())

	_, err := seeder.Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed products")

	count, err := persistence.NewGormProductRepository(db).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	stores, err := persistence.NewGormStoreRepository(db).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stores)
}
