package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	locationapp "github.com/shopcart/backend/internal/application/location"
	"github.com/shopcart/backend/internal/domain/location"
	"github.com/shopcart/backend/internal/infrastructure/persistence"
	"github.com/shopcart/backend/internal/interfaces/http/dto"
)

func names(summaries []location.Summary) []string {
	out := make([]string, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, s.Name)
	}
	return out
}

func TestLocationHandler_Children(t *testing.T) {
	env := newTestEnv(t)

	t.Run("empty and zero parent mean the root", func(t *testing.T) {
		for _, path := range []string{"/locations/children?type=State", "/locations/children?parent=0&type=state"} {
			rec, resp := env.do(t, call{method: http.MethodGet, path: path})
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Contains(t, names(decodeData[[]location.Summary](t, resp)), "Telangana", path)
		}
	})

	t.Run("parent by name", func(t *testing.T) {
		rec, resp := env.do(t, call{method: http.MethodGet, path: "/locations/children?parent=Hyderabad&type=Area"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Contains(t, names(decodeData[[]location.Summary](t, resp)), "Banjara Hills")
	})

	t.Run("missing or unknown type", func(t *testing.T) {
		for _, path := range []string{"/locations/children", "/locations/children?type=Country"} {
			rec, resp := env.do(t, call{method: http.MethodGet, path: path})
			assert.Equal(t, http.StatusBadRequest, rec.Code, path)
			assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		}
	})

	t.Run("unknown parent name is an empty list", func(t *testing.T) {
		rec, resp := env.do(t, call{method: http.MethodGet, path: "/locations/children?parent=Atlantis&type=City"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Empty(t, decodeData[[]location.Summary](t, resp))
	})

	t.Run("unknown parent id", func(t *testing.T) {
		rec, _ := env.do(t, call{method: http.MethodGet, path: "/locations/children?parent=" + uuid.NewString() + "&type=City"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestLocationHandler_Chain(t *testing.T) {
	env := newTestEnv(t)
	locations := persistence.NewGormLocationRepository(env.db)
	area, err := locations.FindByName(context.Background(), "Banjara Hills")
	require.NoError(t, err)

	rec, resp := env.do(t, call{method: http.MethodGet, path: "/locations/areas/" + area.ID.String() + "/chain"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	chain := decodeData[location.Chain](t, resp)
	assert.Equal(t, area.ID, chain.AreaID)
	assert.Contains(t, names(chain.Areas), "Gachibowli")
	assert.Contains(t, names(chain.Cities), "Hyderabad")
	assert.Contains(t, names(chain.States), "Tamil Nadu")

	t.Run("only areas have a chain", func(t *testing.T) {
		city, err := locations.FindByName(context.Background(), "Hyderabad")
		require.NoError(t, err)
		rec, resp := env.do(t, call{method: http.MethodGet, path: "/locations/areas/" + city.ID.String() + "/chain"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, dto.ErrCodeInvalidInput, resp.Error.Code)
	})

	t.Run("unknown area", func(t *testing.T) {
		rec, _ := env.do(t, call{method: http.MethodGet, path: "/locations/areas/" + uuid.NewString() + "/chain"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestLocationHandler_CallerLocation(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "meera", userPassword)

	rec, resp := env.do(t, call{method: http.MethodGet, path: "/locations/me", token: token})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	me := decodeData[locationapp.UserLocationResponse](t, resp)
	assert.NotEqual(t, uuid.Nil, me.Area.ID)
	assert.NotEqual(t, uuid.Nil, me.State.ID)

	stores, err := persistence.NewGormStoreRepository(env.db).List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, stores)

	for _, st := range stores {
		rec, resp := env.do(t, call{method: http.MethodGet, path: "/locations/interstate?storeId=" + st.ID.String(), token: token})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		got := decodeData[locationapp.InterStateResponse](t, resp)
		assert.Equal(t, me.State, got.UserState)
		assert.Equal(t, got.UserState.ID != got.StoreState.ID, got.InterState, st.Name)
	}

	t.Run("bad store id", func(t *testing.T) {
		rec, _ := env.do(t, call{method: http.MethodGet, path: "/locations/interstate?storeId=nope", token: token})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		rec, _ = env.do(t, call{method: http.MethodGet, path: "/locations/interstate?storeId=" + uuid.NewString(), token: token})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("anonymous caller", func(t *testing.T) {
		rec, _ := env.do(t, call{method: http.MethodGet, path: "/locations/me"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
