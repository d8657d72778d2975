package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/yungbote/ideascore-backend/internal/platform/db"
)

// Config is the service configuration, loaded from flags, an optional config
// file and IDEASCORE_* environment variables.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Database DatabaseConfig `mapstructure:"database"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Ranking  RankingConfig  `mapstructure:"ranking"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Otel     OtelConfig     `mapstructure:"otel"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

type LogConfig struct {
	Mode  string `mapstructure:"mode"`
	Level string `mapstructure:"level"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

type RedisConfig struct {
	Addr       string        `mapstructure:"addr"`
	LockTTL    time.Duration `mapstructure:"lock_ttl"`
	LockPrefix string        `mapstructure:"lock_prefix"`
}

type RankingConfig struct {
	Concurrency  int `mapstructure:"concurrency"`
	DefaultLimit int `mapstructure:"default_limit"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type OtelConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	ServiceName  string  `mapstructure:"service_name"`
	Environment  string  `mapstructure:"environment"`
	Endpoint     string  `mapstructure:"endpoint"`
	Insecure     bool    `mapstructure:"insecure"`
	SamplerRatio float64 `mapstructure:"sampler_ratio"`
}

type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// SetDefaults registers every key so AutomaticEnv can resolve it.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.mode", "development")
	v.SetDefault("log.level", "")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("database.driver", db.DriverPostgres)
	v.SetDefault("database.dsn", "")
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.name", "ideascore")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("sqlite.path", "ideascore.db")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.lock_ttl", 10*time.Second)
	v.SetDefault("redis.lock_prefix", "ideascore:lock:")
	v.SetDefault("ranking.concurrency", 4)
	v.SetDefault("ranking.default_limit", 10)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("otel.enabled", false)
	v.SetDefault("otel.service_name", "ideascore-backend")
	v.SetDefault("otel.environment", "")
	v.SetDefault("otel.endpoint", "")
	v.SetDefault("otel.insecure", false)
	v.SetDefault("otel.sampler_ratio", 1.0)
	v.SetDefault("cors.allow_origins", []string{})
}

// LoadConfig reads configFile (when set, else ./ideascore.yaml if present)
// and the environment into a Config.
func LoadConfig(v *viper.Viper, configFile string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix("IDEASCORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("ideascore")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch strings.ToLower(c.Database.Driver) {
	case db.DriverPostgres, db.DriverSQLite:
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q", db.DriverPostgres, db.DriverSQLite, c.Database.Driver)
	}
	if c.Ranking.Concurrency < 1 {
		return fmt.Errorf("ranking.concurrency must be at least 1")
	}
	if c.Ranking.DefaultLimit < 1 {
		return fmt.Errorf("ranking.default_limit must be at least 1")
	}
	if c.Otel.SamplerRatio < 0 || c.Otel.SamplerRatio > 1 {
		return fmt.Errorf("otel.sampler_ratio must be within [0,1]")
	}
	return nil
}

// DatabaseOptions resolves the DSN for the configured driver.
func (c Config) DatabaseOptions() db.Options {
	driver := strings.ToLower(c.Database.Driver)
	dsn := strings.TrimSpace(c.Database.DSN)
	if dsn == "" {
		switch driver {
		case db.DriverSQLite:
			dsn = c.SQLite.Path
		default:
			p := c.Postgres
			dsn = db.PostgresDSN(p.Host, p.Port, p.User, p.Password, p.Name, p.SSLMode)
		}
	}
	return db.Options{Driver: driver, DSN: dsn, Silent: strings.EqualFold(c.Log.Mode, "production")}
}
