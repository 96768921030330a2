package config

// EnvPrefix is the envconfig prefix shared by every setting.
const EnvPrefix = "BAKERIA"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv         = "BAKERIA_APP_ENV"
	EnvPort           = "BAKERIA_APP_PORT"
	EnvDBDSN          = "BAKERIA_DB_DSN"
	EnvDBHost         = "BAKERIA_DB_HOST"
	EnvDBUser         = "BAKERIA_DB_USER"
	EnvDBName         = "BAKERIA_DB_NAME"
	EnvRedisURL       = "BAKERIA_REDIS_URL"
	EnvJWTSecret      = "BAKERIA_JWT_SECRET"
	EnvJWTIssuer      = "BAKERIA_JWT_ISSUER"
	EnvCatalogBaseURL = "BAKERIA_CATALOG_BASE_URL"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
