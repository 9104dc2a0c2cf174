package config

// EnvPrefix is the envconfig namespace for every Fieldline variable.
const EnvPrefix = "FIELDLINE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Environment variable names referenced outside struct tags (error messages, tests).
const (
	EnvAppEnv                 = "FIELDLINE_APP_ENV"
	EnvPort                   = "FIELDLINE_APP_PORT"
	EnvDBDSN                  = "FIELDLINE_DB_DSN"
	EnvDBHost                 = "FIELDLINE_DB_HOST"
	EnvDBUser                 = "FIELDLINE_DB_USER"
	EnvDBName                 = "FIELDLINE_DB_NAME"
	EnvRedisURL               = "FIELDLINE_REDIS_URL"
	EnvJWTSecret              = "FIELDLINE_JWT_SECRET"
	EnvJWTIssuer              = "FIELDLINE_JWT_ISSUER"
	EnvJWTExpMins             = "FIELDLINE_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "FIELDLINE_REFRESH_TOKEN_TTL_MINUTES"
	EnvGeocoderUserAgent      = "FIELDLINE_GEOCODER_USER_AGENT"
	EnvKafkaBrokers           = "FIELDLINE_KAFKA_BROKERS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
