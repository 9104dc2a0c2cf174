package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Geocoder      GeocoderConfig
	Polling       PollingConfig
	Kafka         KafkaConfig
	CallCenter    CallCenterConfig
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
	Env          string `envconfig:"FIELDLINE_APP_ENV" required:"true"`
	Port         string `envconfig:"FIELDLINE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FIELDLINE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FIELDLINE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FIELDLINE_DB_DSN"`
	Driver string `envconfig:"FIELDLINE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FIELDLINE_DB_HOST"`
	LegacyPort     int    `envconfig:"FIELDLINE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FIELDLINE_DB_USER"`
	LegacyPassword string `envconfig:"FIELDLINE_DB_PASSWORD"`
	LegacyName     string `envconfig:"FIELDLINE_DB_NAME"`
	LegacySSLMode  string `envconfig:"FIELDLINE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FIELDLINE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FIELDLINE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FIELDLINE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FIELDLINE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FIELDLINE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"FIELDLINE_REDIS_ADDR"`
	Password     string        `envconfig:"FIELDLINE_REDIS_PASSWORD"`
	DB           int           `envconfig:"FIELDLINE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FIELDLINE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FIELDLINE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FIELDLINE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FIELDLINE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FIELDLINE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"FIELDLINE_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"FIELDLINE_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"FIELDLINE_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"FIELDLINE_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
	CookieName             string `envconfig:"FIELDLINE_JWT_COOKIE_NAME" default:"auth_token"`
	CookieSecure           bool   `envconfig:"FIELDLINE_JWT_COOKIE_SECURE" default:"false"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"FIELDLINE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"FIELDLINE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"FIELDLINE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"FIELDLINE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"FIELDLINE_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"FIELDLINE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"FIELDLINE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"FIELDLINE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"FIELDLINE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"FIELDLINE_AUTO_MIGRATE" default:"false"`
}

type GeocoderConfig struct {
	BaseURL   string        `envconfig:"FIELDLINE_GEOCODER_BASE_URL" default:"https://nominatim.openstreetmap.org"`
	UserAgent string        `envconfig:"FIELDLINE_GEOCODER_USER_AGENT" default:"fieldline-dispatch/1.0"`
	Timeout   time.Duration `envconfig:"FIELDLINE_GEOCODER_TIMEOUT" default:"10s"`
}

type PollingConfig struct {
	Interval     time.Duration `envconfig:"FIELDLINE_POLL_INTERVAL" default:"30s"`
	PauseTimeout time.Duration `envconfig:"FIELDLINE_POLL_PAUSE_TIMEOUT" default:"5m"`
}

type KafkaConfig struct {
	Brokers       []string `envconfig:"FIELDLINE_KAFKA_BROKERS"`
	BookingsTopic string   `envconfig:"FIELDLINE_KAFKA_BOOKINGS_TOPIC" default:"fl-booking-events"`
	ConsumerGroup string   `envconfig:"FIELDLINE_KAFKA_CONSUMER_GROUP" default:"fl-notify-worker"`
}

// Enabled reports whether event publishing is configured at all.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

type CallCenterConfig struct {
	APIKey string `envconfig:"FIELDLINE_CALL_CENTER_API_KEY"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
