package dependency

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpi-tracker/backend/config"
	"github.com/kpi-tracker/backend/internal/domain/entity"
	"github.com/kpi-tracker/backend/internal/infra/db"
	"github.com/kpi-tracker/backend/internal/integration/gateway"
	"github.com/kpi-tracker/backend/internal/integration/persistence"
)

func newTestConfig() *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{Environment: "test"},
		Database: config.DatabaseConfig{Driver: db.DriverSQLite, URL: ":memory:"},
		Sync: config.SyncConfig{
			Mode:          SyncModeDatabase,
			Timeout:       time.Second,
			QueueSize:     4,
			WriteLimit:    1,
			WriteLimitWin: time.Minute,
		},
		KPI: config.KPIConfig{BandPreset: "classic"},
	}
}

func newTestInjector(t *testing.T, cfg *config.Config) *Injector {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := db.NewConnection(&cfg.Database)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, database.AutoMigrate())

	catalog, err := config.LoadCatalog("")
	require.NoError(t, err)

	injector, err := NewInjector(cfg, database.DB(), nil, catalog)
	require.NoError(t, err)
	return injector
}

func TestInjector_HydratesFromDatabaseRemote(t *testing.T) {
	injector := newTestInjector(t, newTestConfig())
	ctx := context.Background()

	err := persistence.NewMonthlyRecordRepository(injector.DB).UpsertBatch(ctx, []entity.MonthlyRecord{
		{EmployeeID: "p1", Month: 0, Category: "Reformas", Section: entity.SectionSanitario, Actual: 5},
	})
	require.NoError(t, err)

	source := injector.Hydrate(ctx)

	assert.Equal(t, gateway.SourceRemote, source)
	assert.Len(t, injector.Store.Snapshot().Records, 1)

	rec := httptest.NewRecorder()
	injector.Router.Setup("test").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var health map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, "connected", health["database"])
	assert.Equal(t, "disabled", health["cache"])
	assert.Equal(t, "remote", health["record_source"])
}

func TestInjector_RoutesAreWired(t *testing.T) {
	injector := newTestInjector(t, newTestConfig())
	engine := injector.Router.Setup("test")

	cases := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/api?action=loadData", "", http.StatusOK},
		{http.MethodGet, "/api/v1/sections", "", http.StatusOK},
		{http.MethodGet, "/api/v1/sections/Sanitario/months", "", http.StatusOK},
		{http.MethodPut, "/api/v1/records", `{"employee_id":"p1","month":1,"category":"Reformas","section":"Sanitario","value":3}`, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			engine.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
		})
	}
}

func TestInjector_WriteLimitDisabledInTestEnv(t *testing.T) {
	injector := newTestInjector(t, newTestConfig())
	engine := injector.Router.Setup("test")

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api", strings.NewReader(`{"action":"saveData","payload":[]}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestNewInjector_InvalidConfig(t *testing.T) {
	catalog, err := config.LoadCatalog("")
	require.NoError(t, err)

	cfg := newTestConfig()
	cfg.Sync.Mode = SyncModeHTTP
	_, err = NewInjector(cfg, nil, nil, catalog)
	assert.ErrorContains(t, err, "SYNC_REMOTE_URL")

	cfg = newTestConfig()
	cfg.Sync.Mode = "ftp"
	_, err = NewInjector(cfg, nil, nil, catalog)
	assert.ErrorContains(t, err, "unsupported sync mode")

	cfg = newTestConfig()
	cfg.KPI.BandPreset = "exotic"
	_, err = NewInjector(cfg, nil, nil, catalog)
	assert.Error(t, err)
}
