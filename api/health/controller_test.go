package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"erp/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type downPinger struct{}

func (downPinger) PingContext(context.Context) error { return errors.New("connection refused") }

func serve(t *testing.T, db Pinger, path string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		App:      config.AppConfig{Version: "test", Env: "test"},
		Database: config.DatabaseConfig{Driver: "mysql"},
	}
	engine := gin.New()
	NewController(cfg, db).RegisterRoutes(engine.Group("/api/v1"))

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthReportsPoolUsage(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectPing()

	rec := serve(t, db, "/api/v1/health")

	require.Equal(t, http.StatusOK, rec.Code)
	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "mysql", body.Driver)
	require.Contains(t, body.Checks, "database")
	assert.NotNil(t, body.Checks["database"].Pool)
	assert.Nil(t, body.System)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnreachableDatabase(t *testing.T) {
	rec := serve(t, downPinger{}, "/api/v1/health")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = serve(t, downPinger{}, "/api/v1/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = serve(t, downPinger{}, "/api/v1/health/live")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMemoryDriverIsAlwaysReady(t *testing.T) {
	rec := serve(t, nil, "/api/v1/health/ready")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())
}
