package config

// EnvPrefix namespaces every environment variable consumed by the app.
const EnvPrefix = "FRIDGE"

const (
	AppEnvLocal = "local"
	AppEnvTest  = "test"
	AppEnvDev   = "dev"
	AppEnvProd  = "prod"
)

// AllowedEnvs is the closed set of deployable environments; anything else is
// fatal at startup.
var AllowedEnvs = []string{AppEnvLocal, AppEnvTest, AppEnvDev, AppEnvProd}

const (
	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"
)

// AllowedDBDrivers is the closed set of storage backends.
var AllowedDBDrivers = []string{DBDriverSQLite, DBDriverPostgres}

// DefaultSQLiteDSN keeps local runs and tests on a shared in-process store.
const DefaultSQLiteDSN = "file:fridge.db?cache=shared"

const (
	EnvDBDSN  = "FRIDGE_DB_DSN"
	EnvDBHost = "FRIDGE_DB_HOST"
	EnvDBUser = "FRIDGE_DB_USER"
	EnvDBName = "FRIDGE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
