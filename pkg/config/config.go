package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Catalog      CatalogConfig
	Checkout     CheckoutConfig
	Orders       OrdersConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BAKERIA_APP_ENV" required:"true"`
	Port         string `envconfig:"BAKERIA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BAKERIA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BAKERIA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BAKERIA_DB_DSN"`
	Driver string `envconfig:"BAKERIA_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"BAKERIA_DB_HOST"`
	Port     int    `envconfig:"BAKERIA_DB_PORT" default:"5432"`
	User     string `envconfig:"BAKERIA_DB_USER"`
	Password string `envconfig:"BAKERIA_DB_PASSWORD"`
	Name     string `envconfig:"BAKERIA_DB_NAME"`
	SSLMode  string `envconfig:"BAKERIA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BAKERIA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BAKERIA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BAKERIA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BAKERIA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BAKERIA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"BAKERIA_REDIS_ADDR"`
	Password     string        `envconfig:"BAKERIA_REDIS_PASSWORD"`
	DB           int           `envconfig:"BAKERIA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BAKERIA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BAKERIA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BAKERIA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BAKERIA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BAKERIA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// JWTConfig covers token verification only. Tokens are minted by the external
// identity provider; the secret/issuer pair is what the gateway trusts.
type JWTConfig struct {
	Secret string `envconfig:"BAKERIA_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"BAKERIA_JWT_ISSUER" required:"true"`
}

type CatalogConfig struct {
	BaseURL string        `envconfig:"BAKERIA_CATALOG_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"BAKERIA_CATALOG_TIMEOUT" default:"5s"`
}

type CheckoutConfig struct {
	IdempotencyTTL time.Duration `envconfig:"BAKERIA_CHECKOUT_IDEMPOTENCY_TTL" default:"168h"`
}

// OrdersConfig carries the display/reporting time zone. Order timestamps are
// stored as UTC instants; this zone formats the time-of-day string and anchors
// the inclusive day bounds of the staff order listing.
type OrdersConfig struct {
	Timezone string `envconfig:"BAKERIA_ORDERS_TIMEZONE" default:"Asia/Bangkok"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"BAKERIA_GCP_PROJECT_ID"`
}

type PubSubConfig struct {
	OrdersTopic string `envconfig:"BAKERIA_PUBSUB_ORDERS_TOPIC"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"BAKERIA_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"BAKERIA_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
