package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/quackworks/duckfarm/internal/broadcast"
	"github.com/quackworks/duckfarm/internal/domain/models"
	"github.com/quackworks/duckfarm/internal/snapshot"
	"github.com/quackworks/duckfarm/internal/store"
)

func newHandlerStore(t *testing.T) *store.Store {
	t.Helper()
	snaps, err := snapshot.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return store.New(snaps, broadcast.NewBus(nil), nil)
}

func postJSON(t *testing.T, engine *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestUpsertDailyProduction(t *testing.T) {
	gin.SetMode(gin.TestMode)

	st := newHandlerStore(t)
	st.AddDuck(store.DuckInput{Cage: 1, Quantity: 100, EntryDate: time.Now().AddDate(0, -8, 0)})

	handler := NewProductionHandler(st, nil)
	engine := gin.New()
	engine.POST("/daily", handler.UpsertDaily)

	// First submission creates.
	w := postJSON(t, engine, "/daily", gin.H{
		"date":     "2024-05-01T00:00:00Z",
		"cageEggs": gin.H{"1": 80},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.DailyProduction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, 80, created.TotalEggs)
	require.Equal(t, 80.0, created.Productivity)

	// Second submission for the same calendar day updates in place.
	w = postJSON(t, engine, "/daily", gin.H{
		"date":     "2024-05-01T10:30:00Z",
		"cageEggs": gin.H{"1": 90},
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, st.State().DailyProduction, 1)
	require.Equal(t, 90, st.State().DailyProduction[0].TotalEggs)
}

func TestLoginEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	st := newHandlerStore(t)
	handler := NewAuthHandler(st, nil)
	engine := gin.New()
	engine.POST("/login", handler.Login)

	// No credentials configured: anything authenticates.
	w := postJSON(t, engine, "/login", gin.H{"username": "", "password": ""})
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, st.IsAuthenticated())

	st.UpdateCompanyInfo(models.CompanyInfo{Username: "farmer", Password: "secret"})
	st.Logout(context.Background())

	w = postJSON(t, engine, "/login", gin.H{"username": "farmer", "password": "nope"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.False(t, st.IsAuthenticated())

	w = postJSON(t, engine, "/login", gin.H{"username": "farmer", "password": "secret"})
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, st.IsAuthenticated())
}

func TestRestoreRejectsMalformedBackup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	st := newHandlerStore(t)
	st.AddDuck(store.DuckInput{Cage: 1, Quantity: 10, EntryDate: time.Now().AddDate(0, -2, 0)})

	handler := NewStateHandler(st, nil)
	engine := gin.New()
	engine.POST("/restore", handler.Restore)

	req := httptest.NewRequest(http.MethodPost, "/restore", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, st.State().Ducks, 1, "state must be left unchanged")
}
