package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("AAD_APP_CLIENT_ID", "client-id")
	t.Setenv("AAD_APP_TENANT_ID", "tenant-id")
	t.Setenv("WORKDAY_TOKEN_URL", "https://wd.example.com/oauth2/token")
	t.Setenv("WORKDAY_CLIENT_CREDENTIALS", "wd-client")
	t.Setenv("WORKDAY_CLIENT_SECRET", "wd-secret")
	t.Setenv("WORKDAY_REFRESH_TOKEN", "wd-refresh")
	t.Setenv("WORKDAY_TENANT", "acme_corp")
	t.Setenv("WORKDAY_BASE_URL", "https://wd.example.com/")
	t.Setenv("GRAPH_CLIENT_ID", "graph-client")
	t.Setenv("GRAPH_CLIENT_SECRET", "graph-secret")
	t.Setenv("GRAPH_TENANT_ID", "graph-tenant")
}

func TestLoad(t *testing.T) {
	setRequiredEnv(t)
	Reset()
	t.Cleanup(Reset)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "client-id", cfg.Entra.ClientID)
	assert.Equal(t, "https://login.microsoftonline.com/tenant-id/v2.0", cfg.Entra.Issuer())
	assert.Equal(t, "https://login.microsoftonline.com/tenant-id/.well-known/openid-configuration", cfg.Entra.MetadataURL())

	// trailing slash on the base URL is trimmed
	assert.Equal(t, "https://wd.example.com", cfg.Workday.BaseURL)
	assert.Equal(t, "https://wd.example.com/ccx/api/workday/v3/workers", cfg.Workday.WorkersURL())
	assert.Equal(t, "https://wd.example.com/ccx/api/absenceManagement/v1/acme_corp/workers/123/leaveBalances", cfg.Workday.AbsenceURL("/workers/123/leaveBalances"))
	assert.Equal(t, "https://wd.example.com/ccx/api/common/v1/acme_corp/workers/123/directReports", cfg.Workday.CommonURL("/workers/123/directReports"))
	assert.Equal(t, "https://wd.example.com/ccx/api/learning/v1/acme_corp/content", cfg.Workday.LearningURL("/content"))
	assert.Equal(t, "https://wd.example.com/ccx/service/customreport2/acme_corp/svasireddy/Required_Learning", cfg.Workday.RequiredLearningReportURL())

	assert.Equal(t, "https://login.microsoftonline.com/graph-tenant/oauth2/v2.0/token", cfg.Graph.TokenURL())
}

func TestLoadWorkersURLOverride(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("WORKDAY_WORKERS_API_URL", "https://override.example.com/workers/")
	Reset()
	t.Cleanup(Reset)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://override.example.com/workers", cfg.Workday.WorkersURL())
}

func TestLoadReportOwnerOverride(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("WORKDAY_REPORT_OWNER", "reportadmin")
	Reset()
	t.Cleanup(Reset)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://wd.example.com/ccx/service/customreport2/acme_corp/reportadmin/Required_Learning", cfg.Workday.RequiredLearningReportURL())
}

func TestLoadMissingValues(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("WORKDAY_REFRESH_TOKEN", "")
	t.Setenv("GRAPH_CLIENT_SECRET", "")
	Reset()
	t.Cleanup(Reset)

	_, err := Load()
	require.Error(t, err)
	assert.ErrorContains(t, err, "WORKDAY_REFRESH_TOKEN")
	assert.ErrorContains(t, err, "GRAPH_CLIENT_SECRET")
}

func TestLoadCachesUntilReset(t *testing.T) {
	setRequiredEnv(t)
	Reset()
	t.Cleanup(Reset)

	first, err := Load()
	require.NoError(t, err)

	t.Setenv("WORKDAY_TENANT", "other_tenant")
	second, err := Load()
	require.NoError(t, err)
	assert.Same(t, first, second)

	Reset()
	third, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "other_tenant", third.Workday.Tenant)
}
