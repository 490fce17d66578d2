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
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.App.validate(); err != nil {
		return nil, err
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FRIDGE_APP_ENV" default:"local"`
	Port         string `envconfig:"FRIDGE_APP_PORT" default:"8000"`
	LogLevel     string `envconfig:"FRIDGE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FRIDGE_LOG_WARN_STACK" default:"false"`
	Timezone     string `envconfig:"FRIDGE_TIMEZONE" default:"Europe/Brussels"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev) || strings.EqualFold(a.Env, AppEnvLocal)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// Location resolves the configured IANA timezone used for creation stamps.
func (a AppConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", a.Timezone, err)
	}
	return loc, nil
}

func (a AppConfig) validate() error {
	for _, allowed := range AllowedEnvs {
		if strings.EqualFold(a.Env, allowed) {
			return nil
		}
	}
	return fmt.Errorf("environment %q not allowed, allowed environments are %s",
		a.Env, strings.Join(AllowedEnvs, ", "))
}

type DBConfig struct {
	Driver string `envconfig:"FRIDGE_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"FRIDGE_DB_DSN"`

	LegacyHost     string `envconfig:"FRIDGE_DB_HOST"`
	LegacyPort     int    `envconfig:"FRIDGE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FRIDGE_DB_USER"`
	LegacyPassword string `envconfig:"FRIDGE_DB_PASSWORD"`
	LegacyName     string `envconfig:"FRIDGE_DB_NAME"`
	LegacySSLMode  string `envconfig:"FRIDGE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FRIDGE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FRIDGE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FRIDGE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FRIDGE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) IsSQLite() bool {
	return db.Driver == DBDriverSQLite
}

func (db DBConfig) validate() error {
	for _, allowed := range AllowedDBDrivers {
		if db.Driver == allowed {
			return nil
		}
	}
	return fmt.Errorf("db driver %q not allowed, allowed drivers are %s",
		db.Driver, strings.Join(AllowedDBDrivers, ", "))
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	if db.IsSQLite() {
		db.DSN = DefaultSQLiteDSN
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, name := range legacyDBEnvVars {
		if legacyValues[name] == "" {
			missing = append(missing, name)
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

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FRIDGE_AUTO_MIGRATE" default:"false"`
}
