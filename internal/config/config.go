package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	DB         DBConfig         `mapstructure:"db"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Visibility VisibilityConfig `mapstructure:"visibility"`
	Pagination PaginationConfig `mapstructure:"pagination"`
	Cron       CronConfig       `mapstructure:"cron"`
	Expiry     ExpiryConfig     `mapstructure:"expiry"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr        string        `mapstructure:"http_addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
	AccessLog         bool   `mapstructure:"access_log"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

// RedisConfig enables the distributed per-call lock when Addr is set.
type RedisConfig struct {
	Addr      string        `mapstructure:"addr"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db"`
	LockTTL   time.Duration `mapstructure:"lock_ttl"`
	LockWait  time.Duration `mapstructure:"lock_wait"`
	KeyPrefix string        `mapstructure:"key_prefix"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

type VisibilityConfig struct {
	DefaultLimit int            `mapstructure:"default_limit"`
	TierLimits   map[string]int `mapstructure:"tier_limits"`
}

type PaginationConfig struct {
	DefaultLimit int `mapstructure:"default_limit"`
	MaxLimit     int `mapstructure:"max_limit"`
}

type CronConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ExpirySweep string `mapstructure:"expiry_sweep"`
}

type ExpiryConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	TradeType string `mapstructure:"trade_type"`
}

// LoadDotEnv reads a .env file into the process environment. A missing file
// is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("log.access_log", true)
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.lock_ttl", "10s")
	v.SetDefault("redis.lock_wait", "3s")
	v.SetDefault("redis.key_prefix", "calldesk:lock:")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "calldesk")
	v.SetDefault("visibility.default_limit", 6)
	v.SetDefault("visibility.tier_limits", map[string]int{"Regular": 2})
	v.SetDefault("pagination.default_limit", 10)
	v.SetDefault("pagination.max_limit", 100)
	v.SetDefault("cron.enabled", true)
	// 00:05 IST: the runner is created in the trading calendar location.
	v.SetDefault("cron.expiry_sweep", "0 5 0 * * *")
	v.SetDefault("expiry.enabled", true)
	v.SetDefault("expiry.trade_type", "intraday")

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
