package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 1000, cfg.Query.MaxPageSize)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
app:
  env: production
database:
  driver: sqlite
  dsn: ":memory:"
query:
  page_sizes:
    customer: 200
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("ERP_SERVER_PORT", "9090")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, ":memory:", cfg.Database.DSN)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 200, cfg.Query.PageSize("customer", 50))
	assert.Equal(t, 20, cfg.Query.PageSize("booking", 20))
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  driver: oracle\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}

func TestQueryConfig_PageSizeClampedToMax(t *testing.T) {
	q := QueryConfig{MaxPageSize: 100, PageSizes: map[string]int{"stock": 500, "course": 0}}
	assert.Equal(t, 100, q.PageSize("stock", 50))
	assert.Equal(t, 20, q.PageSize("course", 20))
}

func TestLoad_BookingAPIRequiresBaseURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("external_api:\n  use_for_bookings: true\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bookings_base_url")

	t.Setenv("ERP_EXTERNAL_API_BOOKINGS_BASE_URL", "http://bookings.local")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.ExternalAPI.UseForBookings)
	assert.Equal(t, 10*time.Second, cfg.ExternalAPI.Timeout)
}
