package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/chainfolio/price-indexer/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// ChainConfig holds the RPC endpoint for one supported chain
type ChainConfig struct {
	RPCURL    string `mapstructure:"rpc_url"`
	Multicall string `mapstructure:"multicall"` // multicall aggregator contract address
}

// RedisConfig holds cache store configuration. The LP classification cache
// lives in a separate database on the same instance.
type RedisConfig struct {
	Addr             string `mapstructure:"addr"`
	Password         string `mapstructure:"password"`
	DB               int    `mapstructure:"db"`
	ClassificationDB int    `mapstructure:"classification_db"`
}

// PriceSourceConfig holds the external price provider configuration
type PriceSourceConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// WorkerConfig holds worker pool configuration
type WorkerConfig struct {
	WorkerPoolSize  int `mapstructure:"pool_size"`
	WorkerQueueSize int `mapstructure:"queue_size"`
}

// RefreshConfig holds scheduled refresh configuration
type RefreshConfig struct {
	CronSpec string `mapstructure:"cron_spec"`
}

// ProviderLimit holds the rate limit for one external provider
type ProviderLimit struct {
	RequestsPerSecond int `mapstructure:"requests_per_second"`
	Burst             int `mapstructure:"burst"`
}

// RateLimiterConfig holds outbound rate limiting configuration. With no
// providers configured, outbound requests are not throttled.
type RateLimiterConfig struct {
	KeyPrefix               string                   `mapstructure:"key_prefix"`
	EnableLocalFallback     bool                     `mapstructure:"enable_local_fallback"`
	LocalFallbackMultiplier float64                  `mapstructure:"local_fallback_multiplier"`
	RecoveryInterval        time.Duration            `mapstructure:"recovery_interval"`
	Providers               map[string]ProviderLimit `mapstructure:"providers"`
}

// EngineConfig holds settings shared by the on-demand and scheduled pricing paths
type EngineConfig struct {
	CallTimeout  time.Duration `mapstructure:"call_timeout"` // per on-chain/provider round-trip
	RedirectPath string        `mapstructure:"redirect_path"`
}

// APIConfig holds configuration for the price API server
type APIConfig struct {
	BaseConfig  `mapstructure:",squash"`
	Server      ServerConfig           `mapstructure:"server"`
	Redis       RedisConfig            `mapstructure:"redis"`
	Chains      map[string]ChainConfig `mapstructure:"chains"`
	PriceSource PriceSourceConfig      `mapstructure:"price_source"`
	Worker      WorkerConfig           `mapstructure:"worker"`
	Engine      EngineConfig           `mapstructure:"engine"`
	RateLimit   RateLimiterConfig      `mapstructure:"rate_limit"`
}

// RefresherConfig holds configuration for the scheduled refresh runner
type RefresherConfig struct {
	BaseConfig  `mapstructure:",squash"`
	Redis       RedisConfig            `mapstructure:"redis"`
	Chains      map[string]ChainConfig `mapstructure:"chains"`
	PriceSource PriceSourceConfig      `mapstructure:"price_source"`
	Worker      WorkerConfig           `mapstructure:"worker"`
	Refresh     RefreshConfig          `mapstructure:"refresh"`
	Engine      EngineConfig           `mapstructure:"engine"`
	RateLimit   RateLimiterConfig      `mapstructure:"rate_limit"`
}

// ChainIDs returns the configured chain identifiers
func ChainIDs(chains map[string]ChainConfig) []domain.ChainID {
	ids := make([]domain.ChainID, 0, len(chains))
	for id := range chains {
		ids = append(ids, domain.ChainID(id))
	}
	return ids
}

// LoadAPIConfig loads configuration for the price API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.idle_timeout", 120)
	setSharedDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use environment variables
	}

	var cfg APIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateChains(cfg.Chains); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadRefresherConfig loads configuration for the scheduled refresh runner
func LoadRefresherConfig(configFile string, envPath string) (*RefresherConfig, error) {
	v := configureViper("refresher", configFile, envPath)

	// Set defaults
	v.SetDefault("refresh.cron_spec", "@every 15m")
	setSharedDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use environment variables
	}

	var cfg RefresherConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateChains(cfg.Chains); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setSharedDefaults(v *viper.Viper) {
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.classification_db", 1)
	v.SetDefault("price_source.timeout", "10s")
	v.SetDefault("worker.pool_size", 10)
	v.SetDefault("worker.queue_size", 1024)
	v.SetDefault("engine.call_timeout", "10s")
	v.SetDefault("rate_limit.key_prefix", "price-indexer:limiter:")
	v.SetDefault("rate_limit.enable_local_fallback", true)
	v.SetDefault("rate_limit.local_fallback_multiplier", 0.5)
	v.SetDefault("rate_limit.recovery_interval", "10s")
}

func validateChains(chains map[string]ChainConfig) error {
	if len(chains) == 0 {
		return errors.New("at least one chain must be configured")
	}
	for id, chain := range chains {
		if !domain.ChainID(id).Valid() {
			return fmt.Errorf("invalid chain id %q", id)
		}
		if chain.RPCURL == "" {
			return fmt.Errorf("chains.%s.rpc_url is required", id)
		}
		if chain.Multicall != "" && !domain.ValidAddress(chain.Multicall) {
			return fmt.Errorf("chains.%s.multicall is not a valid address", id)
		}
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("PRICE_INDEXER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables.
// This is required for viper to map env vars to config struct fields when no config file exists.
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Redis
		"redis.addr",
		"redis.password",
		"redis.db",
		"redis.classification_db",
		// Price source
		"price_source.url",
		"price_source.timeout",
		// Worker
		"worker.pool_size",
		"worker.queue_size",
		// Refresh
		"refresh.cron_spec",
		// Engine
		"engine.call_timeout",
		"engine.redirect_path",
		// Rate limiting
		"rate_limit.key_prefix",
		"rate_limit.enable_local_fallback",
		"rate_limit.local_fallback_multiplier",
		"rate_limit.recovery_interval",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}
