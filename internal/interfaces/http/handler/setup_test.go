package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	accountapp "github.com/shopcart/backend/internal/application/account"
	catalogapp "github.com/shopcart/backend/internal/application/catalog"
	identityapp "github.com/shopcart/backend/internal/application/identity"
	locationapp "github.com/shopcart/backend/internal/application/location"
	"github.com/shopcart/backend/internal/application/seed"
	"github.com/shopcart/backend/internal/domain/shared"
	"github.com/shopcart/backend/internal/infrastructure/auth"
	"github.com/shopcart/backend/internal/infrastructure/cache"
	"github.com/shopcart/backend/internal/infrastructure/config"
	"github.com/shopcart/backend/internal/infrastructure/persistence"
	"github.com/shopcart/backend/internal/infrastructure/persistence/models"
	"github.com/shopcart/backend/internal/infrastructure/storage"
	"github.com/shopcart/backend/internal/interfaces/http/dto"
	"github.com/shopcart/backend/internal/interfaces/http/handler"
	"github.com/shopcart/backend/internal/interfaces/http/middleware"
	"github.com/shopcart/backend/internal/interfaces/http/router"
)

const (
	adminPassword = "Admin@2021"
	userPassword  = "User@2021"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testEnv is a seeded in-memory shop served through the real route table
type testEnv struct {
	db      *gorm.DB
	engine  *gin.Engine
	storage *storage.StubPhotoStorage
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.AllModels()...))

	ds, err := seed.LoadDataset()
	require.NoError(t, err)
	_, err = seed.NewSeeder(persistence.NewGormSeedScope(db), ds, seed.Options{
		AdminPassword:   adminPassword,
		DefaultPassword: userPassword,
		RandomSeed:      42,
	}, zap.NewNop()).Run(ctx)
	require.NoError(t, err)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "handler-test-secret-at-least-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "shopcart-test",
		MaxRefreshCount:        5,
	})

	users := persistence.NewGormUserRepository(db)
	products := persistence.NewGormProductRepository(db)
	storeItems := persistence.NewGormStoreItemRepository(db)
	categories := persistence.NewGormCategoryRepository(db)
	favorites := persistence.NewGormFavoriteRepository(db)
	stores := persistence.NewGormStoreRepository(db)
	accounts := persistence.NewGormAccountRepository(db)
	transactions := persistence.NewGormTransactionRepository(db)

	idem := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = idem.Close() })
	photos := storage.NewStubPhotoStorage()

	authService := identityapp.NewAuthService(users, jwtService, auth.NewInMemoryTokenBlacklist(), zap.NewNop())
	handlers := router.Handlers{
		System: handler.NewSystemHandler("shopcart", "test", map[string]handler.HealthCheck{
			"database": sqlDB.PingContext,
		}),
		Auth: handler.NewAuthHandler(authService),
		Product: handler.NewProductHandler(
			catalogapp.NewProductService(products, storeItems, categories, favorites),
			catalogapp.NewCategoryService(categories),
		),
		Favorite: handler.NewFavoriteHandler(catalogapp.NewFavoriteService(products, favorites, nil)),
		Inventory: handler.NewInventoryHandler(
			catalogapp.NewAvailabilityService(persistence.NewGormCatalogTransactionScope(db), stores, nil),
			catalogapp.NewPhotoService(products, photos, catalogapp.PhotoPolicy{
				MaxSize:      1 << 20,
				AllowedTypes: []string{"image/jpeg", "image/png", "image/webp"},
			}),
		),
		Account: handler.NewAccountHandler(
			accountapp.NewAccountService(accounts, transactions),
			accountapp.NewTransferService(persistence.NewGormAccountTransactionScope(db), idem,
				shared.IdempotencyConfig{Enabled: true, TTL: time.Hour}, nil),
		),
		Location: handler.NewLocationHandler(locationapp.NewLocationService(
			persistence.NewGormLocationRepository(db),
			persistence.NewGormAddressRepository(db),
			users,
			stores,
		)),
	}

	middleware.SetupValidator()
	engine := gin.New()
	engine.Use(middleware.RequestID())
	guards := router.Guards{
		Authenticated: middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
			JWTService:  jwtService,
			Revocations: authService,
		}),
		Optional:   middleware.OptionalJWTAuthMiddleware(jwtService),
		StoreAdmin: middleware.RequireRoles("StoreAdmin", "Admin"),
		JSONBody:   middleware.BodyLimit(64 << 10),
		UploadBody: middleware.BodyLimit(2 << 20),
	}
	router.NewRouter(engine).Register(router.ShopRoutes(handlers, guards)...).Setup()

	return &testEnv{db: db, engine: engine, storage: photos}
}

// apiResponse mirrors dto.Response with a raw payload
type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

type call struct {
	method  string
	path    string
	token   string
	body    any
	headers map[string]string
}

func (e *testEnv) do(t *testing.T, c call) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var body io.Reader
	if c.body != nil {
		raw, err := json.Marshal(c.body)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(c.method, "/api/v1"+c.path, body)
	if c.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	return e.serve(t, req)
}

func (e *testEnv) serve(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	e.engine.ServeHTTP(rec, req)

	var resp apiResponse
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	}
	return rec, resp
}

func decodeData[T any](t *testing.T, resp apiResponse) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(resp.Data, &out), string(resp.Data))
	return out
}

// login returns an access token for username
func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	rec, resp := e.do(t, call{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   identityapp.LoginRequest{Username: username, Password: password},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decodeData[identityapp.LoginResult](t, resp).AccessToken
}
