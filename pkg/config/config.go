package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "ORGANICS"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv         = "ORGANICS_APP_ENV"
	EnvPort           = "ORGANICS_APP_PORT"
	EnvLogLevel       = "ORGANICS_LOG_LEVEL"
	EnvLogFormat      = "ORGANICS_LOG_FORMAT"
	EnvStorageBackend = "ORGANICS_STORAGE_BACKEND"
	EnvStorageDir     = "ORGANICS_STORAGE_DIR"
	EnvCartKey        = "ORGANICS_CART_KEY"
	EnvDBDriver       = "ORGANICS_DB_DRIVER"
	EnvDBDSN          = "ORGANICS_DB_DSN"
	EnvRedisURL       = "ORGANICS_REDIS_URL"
	EnvRedisAddr      = "ORGANICS_REDIS_ADDR"
	EnvAPIBaseURL     = "ORGANICS_API_BASE_URL"
	EnvDeliveryFee    = "ORGANICS_CHECKOUT_DELIVERY_FEE"
)

// Storage backends accepted by StorageConfig.Backend.
const (
	StorageFile     = "file"
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// DefaultSQLiteDSN is used when the sqlite backend is selected without a DSN.
const DefaultSQLiteDSN = "file:organics.db?cache=shared"

type Config struct {
	App          AppConfig
	Storage      StorageConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	API          APIConfig
	Checkout     CheckoutConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ORGANICS_APP_ENV" required:"true"`
	Port         string `envconfig:"ORGANICS_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"ORGANICS_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"ORGANICS_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"ORGANICS_LOG_WARN_STACK" default:"false"`

	// CORSOrigins lists the storefront front-ends allowed to call the API.
	CORSOrigins []string `envconfig:"ORGANICS_CORS_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StorageConfig selects where the cart serialization is kept between restarts.
type StorageConfig struct {
	Backend string `envconfig:"ORGANICS_STORAGE_BACKEND" default:"file"`
	Dir     string `envconfig:"ORGANICS_STORAGE_DIR" default:".organics"`
	CartKey string `envconfig:"ORGANICS_CART_KEY" default:"cartItems"`
}

// NormalizedBackend returns the lower-cased backend name, defaulting to file.
func (s StorageConfig) NormalizedBackend() string {
	backend := strings.ToLower(strings.TrimSpace(s.Backend))
	if backend == "" {
		return StorageFile
	}
	return backend
}

type DBConfig struct {
	Driver string `envconfig:"ORGANICS_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"ORGANICS_DB_DSN"`

	MaxOpenConns    int           `envconfig:"ORGANICS_DB_MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int           `envconfig:"ORGANICS_DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"ORGANICS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ORGANICS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ORGANICS_REDIS_URL"`
	Address      string        `envconfig:"ORGANICS_REDIS_ADDR"`
	Password     string        `envconfig:"ORGANICS_REDIS_PASSWORD"`
	DB           int           `envconfig:"ORGANICS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ORGANICS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ORGANICS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ORGANICS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ORGANICS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ORGANICS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ORGANICS_AUTO_MIGRATE" default:"false"`
}

type APIConfig struct {
	BaseURL string        `envconfig:"ORGANICS_API_BASE_URL" default:"https://b-organics-backend.onrender.com/api"`
	Timeout time.Duration `envconfig:"ORGANICS_API_TIMEOUT" default:"10s"`
}

type CheckoutConfig struct {
	DeliveryFee    int64    `envconfig:"ORGANICS_CHECKOUT_DELIVERY_FEE" default:"40"`
	PaymentMethods []string `envconfig:"ORGANICS_CHECKOUT_PAYMENT_METHODS" default:"COD"`
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Storage.CartKey) == "" {
		return fmt.Errorf("%s must not be empty", EnvCartKey)
	}
	switch c.Storage.NormalizedBackend() {
	case StorageFile:
		if strings.TrimSpace(c.Storage.Dir) == "" {
			return fmt.Errorf("%s is required for the file storage backend", EnvStorageDir)
		}
	case StorageMemory:
	case StorageSQLite, StoragePostgres:
		c.DB.Driver = c.Storage.NormalizedBackend()
		return c.DB.ensureDSN()
	case StorageRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("either %s or %s is required for the redis storage backend", EnvRedisURL, EnvRedisAddr)
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvStorageBackend, c.Storage.Backend)
	}
	return nil
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if strings.EqualFold(db.Driver, StorageSQLite) {
		db.DSN = DefaultSQLiteDSN
		return nil
	}
	return fmt.Errorf("%s is required for the %s driver", EnvDBDSN, db.Driver)
}
