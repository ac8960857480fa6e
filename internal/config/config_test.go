package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainfolio/price-indexer/internal/domain"
)

func TestLoadAPIConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *APIConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
server:
  host: 127.0.0.1
  port: 9090
  read_timeout: 15
redis:
  addr: "redis.example.com:6379"
  password: "secret"
  db: 2
  classification_db: 3
chains:
  "1":
    rpc_url: "https://eth.example.com"
    multicall: "0xcA11bde05977b3631167028862bE2a173976CA11"
  "137":
    rpc_url: "https://polygon.example.com"
price_source:
  url: "https://prices.example.com"
  timeout: "20s"
worker:
  pool_size: 20
  queue_size: 2048
engine:
  call_timeout: "5s"
  redirect_path: "config/redirects.json"
rate_limit:
  providers:
    pricesource:
      requests_per_second: 25
      burst: 50
`,
			expectError: false,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 15, cfg.Server.ReadTimeout)
				assert.Equal(t, "redis.example.com:6379", cfg.Redis.Addr)
				assert.Equal(t, "secret", cfg.Redis.Password)
				assert.Equal(t, 2, cfg.Redis.DB)
				assert.Equal(t, 3, cfg.Redis.ClassificationDB)
				require.Len(t, cfg.Chains, 2)
				assert.Equal(t, "https://eth.example.com", cfg.Chains["1"].RPCURL)
				assert.Equal(t, "0xcA11bde05977b3631167028862bE2a173976CA11", cfg.Chains["1"].Multicall)
				assert.Equal(t, "https://prices.example.com", cfg.PriceSource.URL)
				assert.Equal(t, 20*time.Second, cfg.PriceSource.Timeout)
				assert.Equal(t, 20, cfg.Worker.WorkerPoolSize)
				assert.Equal(t, 2048, cfg.Worker.WorkerQueueSize)
				assert.Equal(t, 5*time.Second, cfg.Engine.CallTimeout)
				assert.Equal(t, "config/redirects.json", cfg.Engine.RedirectPath)
				assert.Equal(t, 25, cfg.RateLimit.Providers["pricesource"].RequestsPerSecond)
				assert.Equal(t, 50, cfg.RateLimit.Providers["pricesource"].Burst)
			},
		},
		{
			name: "config with defaults",
			configFile: `
chains:
  "1":
    rpc_url: "https://eth.example.com"
`,
			expectError: false,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.False(t, cfg.Debug)
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 10, cfg.Server.ReadTimeout)
				assert.Equal(t, 30, cfg.Server.WriteTimeout)
				assert.Equal(t, 120, cfg.Server.IdleTimeout)
				assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
				assert.Equal(t, 0, cfg.Redis.DB)
				assert.Equal(t, 1, cfg.Redis.ClassificationDB)
				assert.Equal(t, 10*time.Second, cfg.PriceSource.Timeout)
				assert.Equal(t, 10, cfg.Worker.WorkerPoolSize)
				assert.Equal(t, 1024, cfg.Worker.WorkerQueueSize)
				assert.Equal(t, 10*time.Second, cfg.Engine.CallTimeout)
				assert.Equal(t, "price-indexer:limiter:", cfg.RateLimit.KeyPrefix)
				assert.True(t, cfg.RateLimit.EnableLocalFallback)
				assert.Equal(t, 0.5, cfg.RateLimit.LocalFallbackMultiplier)
				assert.Equal(t, 10*time.Second, cfg.RateLimit.RecoveryInterval)
			},
		},
		{
			name: "no chains configured",
			configFile: `
redis:
  addr: "localhost:6379"
`,
			expectError: true,
		},
		{
			name: "invalid chain id",
			configFile: `
chains:
  ethereum:
    rpc_url: "https://eth.example.com"
`,
			expectError: true,
		},
		{
			name: "missing rpc url",
			configFile: `
chains:
  "1":
    multicall: "0xcA11bde05977b3631167028862bE2a173976CA11"
`,
			expectError: true,
		},
		{
			name: "invalid multicall address",
			configFile: `
chains:
  "1":
    rpc_url: "https://eth.example.com"
    multicall: "not-an-address"
`,
			expectError: true,
		},
		{
			name: "invalid yaml",
			configFile: `
				server:
				  port: invalid
			`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configFile := filepath.Join(tmpDir, "config.yaml")
			err := os.WriteFile(configFile, []byte(tt.configFile), 0600)
			require.NoError(t, err)

			cfg, err := LoadAPIConfig(configFile, tmpDir)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)
				if tt.validate != nil {
					tt.validate(t, cfg)
				}
			}
		})
	}
}

func TestLoadRefresherConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")
	content := `
chains:
  "1":
    rpc_url: "https://eth.example.com"
refresh:
  cron_spec: "@every 5m"
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0600))

	cfg, err := LoadRefresherConfig(configFile, tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "@every 5m", cfg.Refresh.CronSpec)
}

func TestLoadRefresherConfig_DefaultCronSpec(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")
	content := `
chains:
  "1":
    rpc_url: "https://eth.example.com"
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0600))

	cfg, err := LoadRefresherConfig(configFile, tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "@every 15m", cfg.Refresh.CronSpec)
}

func TestChainIDs(t *testing.T) {
	ids := ChainIDs(map[string]ChainConfig{
		"1":   {RPCURL: "https://eth.example.com"},
		"137": {RPCURL: "https://polygon.example.com"},
	})
	assert.Len(t, ids, 2)
	assert.Contains(t, ids, domain.ChainID("1"))
	assert.Contains(t, ids, domain.ChainID("137"))
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	tmpDir := t.TempDir()

	// Create temporary directory for env files
	envDir := filepath.Join(tmpDir, "env")
	err := os.MkdirAll(envDir, 0750)
	require.NoError(t, err)

	// Note: Viper uses the PRICE_INDEXER_ prefix, so env vars need the prefix
	envFile := filepath.Join(envDir, ".env")
	envContent := `PRICE_INDEXER_DEBUG=true
PRICE_INDEXER_REDIS_ADDR=env-host:6380
PRICE_INDEXER_REDIS_PASSWORD=env-pass
PRICE_INDEXER_PRICE_SOURCE_URL=https://env.example.com
`
	err = os.WriteFile(envFile, []byte(envContent), 0600)
	require.NoError(t, err)

	// Create config file with different values to verify env vars override
	configPath := filepath.Join(tmpDir, "config.yaml")
	configFile := `
debug: false
redis:
  addr: "file-host:6379"
  password: "file-pass"
price_source:
  url: "https://file.example.com"
chains:
  "1":
    rpc_url: "https://eth.example.com"
`
	err = os.WriteFile(configPath, []byte(configFile), 0600)
	require.NoError(t, err)

	cfg, err := LoadAPIConfig(configPath, envDir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// Environment variables from the .env file override config file values
	assert.True(t, cfg.Debug)
	assert.Equal(t, "env-host:6380", cfg.Redis.Addr)
	assert.Equal(t, "env-pass", cfg.Redis.Password)
	assert.Equal(t, "https://env.example.com", cfg.PriceSource.URL)
}
