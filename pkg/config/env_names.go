package config

// EnvPrefix is passed to envconfig; individual fields carry explicit
// HOSTELDESK_-prefixed names so the prefix stays empty here.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv                 = "HOSTELDESK_APP_ENV"
	EnvPort                   = "HOSTELDESK_APP_PORT"
	EnvDBDSN                  = "HOSTELDESK_DB_DSN"
	EnvDBHost                 = "HOSTELDESK_DB_HOST"
	EnvDBUser                 = "HOSTELDESK_DB_USER"
	EnvDBName                 = "HOSTELDESK_DB_NAME"
	EnvRedisURL               = "HOSTELDESK_REDIS_URL"
	EnvJWTSecret              = "HOSTELDESK_JWT_SECRET"
	EnvJWTIssuer              = "HOSTELDESK_JWT_ISSUER"
	EnvJWTExpMins             = "HOSTELDESK_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "HOSTELDESK_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
