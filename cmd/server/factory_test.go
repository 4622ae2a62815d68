package main

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	crm "github.com/smdydx/bidua-crm"
)

var allTables = []string{
	"activities", "companies", "contacts", "deals", "departments",
	"designations", "employees", "leads", "leave_requests",
	"leave_types", "projects", "tasks", "users",
}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func tableRows(names ...string) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"table_name"})
	for _, n := range names {
		rows.AddRow(n)
	}
	return rows
}

func TestVerifyTablesAllPresent(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery("SELECT table_name").WillReturnRows(tableRows(allTables...))

	require.NoError(t, verifyTables(context.Background(), mock))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyTablesIgnoresExtraTables(t *testing.T) {
	mock := newMockPool(t)
	names := append([]string{"schema_migrations", "audit_log"}, allTables...)
	mock.ExpectQuery("SELECT table_name").WillReturnRows(tableRows(names...))

	require.NoError(t, verifyTables(context.Background(), mock))
}

func TestVerifyTablesReportsMissing(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery("SELECT table_name").WillReturnRows(tableRows("users", "companies"))

	err := verifyTables(context.Background(), mock)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
	assert.Contains(t, err.Error(), "tasks")
	assert.Contains(t, err.Error(), "leave_requests")
	assert.NotContains(t, err.Error(), "companies")
}

func TestNewBackendBuildsEveryStore(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery("SELECT table_name").WillReturnRows(tableRows(allTables...))

	cfg := crm.DefaultConfig()
	backend, err := newBackend(context.Background(), cfg, mock)
	require.NoError(t, err)

	assert.NotNil(t, backend.DB)
	assert.NotNil(t, backend.Users)
	assert.NotNil(t, backend.Companies)
	assert.NotNil(t, backend.Contacts)
	assert.NotNil(t, backend.Leads)
	assert.NotNil(t, backend.Deals)
	assert.NotNil(t, backend.Activities)
	assert.NotNil(t, backend.Departments)
	assert.NotNil(t, backend.Designations)
	assert.NotNil(t, backend.Employees)
	assert.NotNil(t, backend.LeaveTypes)
	assert.NotNil(t, backend.LeaveRequests)
	assert.NotNil(t, backend.Projects)
	assert.NotNil(t, backend.Tasks)

	// No redis configured, so both fall back to in-memory engines.
	assert.NotNil(t, backend.Cache)
	assert.NotNil(t, backend.Limiter)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewBackendSkipsDisabledExtras(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery("SELECT table_name").WillReturnRows(tableRows(allTables...))

	cfg := crm.DefaultConfig()
	cfg.Cache.Enabled = false
	cfg.RateLimit.Enabled = false

	backend, err := newBackend(context.Background(), cfg, mock)
	require.NoError(t, err)
	assert.Nil(t, backend.Cache)
	assert.Nil(t, backend.Limiter)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://app:secret@db:5432/crm")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := loadConfig()
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres://app:secret@db:5432/crm", cfg.Database.URL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 90*time.Second, cfg.Cache.TTL)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfigIgnoresMalformedValues(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")
	t.Setenv("CACHE_TTL", "soon")
	t.Setenv("CACHE_ENABLED", "kinda")

	cfg := loadConfig()
	defaults := crm.DefaultConfig()
	assert.Equal(t, defaults.Server.Port, cfg.Server.Port)
	assert.Equal(t, defaults.Cache.TTL, cfg.Cache.TTL)
	assert.Equal(t, defaults.Cache.Enabled, cfg.Cache.Enabled)
}
