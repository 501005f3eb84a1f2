package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

const envPrefix = "CHALLENGE"

// Config is the whole runtime configuration. Every key has a default, can be set in
// configs/config.yml and overridden by CHALLENGE_<KEY> (dots become underscores).
type Config struct {
	Port    string        `mapstructure:"port"`
	DB      DBConfig      `mapstructure:"db"`
	Log     LogConfig     `mapstructure:"log"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Admin   AdminConfig   `mapstructure:"admin"`
	Contest ContestConfig `mapstructure:"contest"`
	WS      WSConfig      `mapstructure:"ws"`
	HTTP    HTTPConfig    `mapstructure:"http"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"` // console or json
}

type AuthConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
	BcryptCost int           `mapstructure:"bcrypt_cost"`
}

// AdminConfig seeds the admin account on first start and after a reset.
type AdminConfig struct {
	Username string `mapstructure:"username"`
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

type ContestConfig struct {
	DefaultWord string `mapstructure:"default_word"`
}

type WSConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type HTTPConfig struct {
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

var defaults = map[string]any{
	"port":                     "8080",
	"db.path":                  "challenge.db",
	"log.level":                "info",
	"log.encoding":             "console",
	"auth.signing_key":         "change-me",
	"auth.token_ttl":           "12h",
	"auth.bcrypt_cost":         bcrypt.DefaultCost,
	"admin.username":           "Admin",
	"admin.email":              "admin@humansonplanetearth.com",
	"admin.password":           "admin123",
	"contest.default_word":     "Resilience",
	"ws.interval":              "2s",
	"http.read_header_timeout": "10s",
	"http.write_timeout":       "10s",
	"http.idle_timeout":        "60s",
	"http.shutdown_timeout":    "10s",
}

// Load reads configuration. An empty path searches ./configs and . for config.yml and
// tolerates its absence; an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yml")
		v.AddConfigPath("configs")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Port) == "" {
		errs = append(errs, errors.New("port is empty"))
	}
	if c.DB.Path == "" {
		errs = append(errs, errors.New("db.path is empty"))
	}
	if c.Auth.SigningKey == "" {
		errs = append(errs, errors.New("auth.signing_key is empty"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token_ttl must be positive"))
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("auth.bcrypt_cost must be in [%d, %d]", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.Admin.Email == "" || c.Admin.Password == "" {
		errs = append(errs, errors.New("admin.email and admin.password are required"))
	}
	if strings.TrimSpace(c.Contest.DefaultWord) == "" {
		errs = append(errs, errors.New("contest.default_word is empty"))
	}
	if c.WS.Interval <= 0 {
		errs = append(errs, errors.New("ws.interval must be positive"))
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("http.shutdown_timeout must be positive"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
