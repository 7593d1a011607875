package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	StorageDriverLocal = "local"
	StorageDriverGCS   = "gcs"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	Admin    *AdminConfig    `mapstructure:"admin"`
	Storage  *StorageConfig  `mapstructure:"storage"`
	Mux      *MuxConfig      `mapstructure:"mux"`
	Redis    *RedisConfig    `mapstructure:"redis"`
	Tracing  *TracingConfig  `mapstructure:"tracing"`
}

type APIConfig struct {
	Environment        string        `mapstructure:"environment"`
	Port               string        `mapstructure:"port"`
	BaseURL            string        `mapstructure:"base_url"`
	AllowedCORSDomains []string      `mapstructure:"allowed_cors_domains"`
	JWTSigningKey      string        `mapstructure:"jwt_signing_key"`
	JWTTTL             time.Duration `mapstructure:"jwt_ttl"`
	MaxUploadMB        int64         `mapstructure:"max_upload_mb"`

	mu sync.RWMutex
}

// CORSDomains is safe to call while the config file is being reloaded.
func (c *APIConfig) CORSDomains() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]string(nil), c.AllowedCORSDomains...)
}

func (c *APIConfig) setCORSDomains(domains []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.AllowedCORSDomains = domains
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DB, c.SSLMode,
	)
}

// AdminConfig seeds the first administrator. Both fields empty disables seeding.
type AdminConfig struct {
	Name     string `mapstructure:"name"`
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

func (c *AdminConfig) Enabled() bool {
	return c != nil && c.Email != "" && c.Password != ""
}

type StorageConfig struct {
	Driver        string `mapstructure:"driver"`
	LocalDir      string `mapstructure:"local_dir"`
	PublicPrefix  string `mapstructure:"public_prefix"`
	GCSBucket     string `mapstructure:"gcs_bucket"`
	GCSPublicBase string `mapstructure:"gcs_public_base"`
}

type MuxConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	TokenID     string        `mapstructure:"token_id"`
	TokenSecret string        `mapstructure:"token_secret"`
	CORSOrigin  string        `mapstructure:"cors_origin"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Channel  string `mapstructure:"channel"`
}

func (c *RedisConfig) Enabled() bool {
	return c != nil && c.Addr != ""
}

type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	ServiceName string  `mapstructure:"service_name"`
	Endpoint    string  `mapstructure:"endpoint"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.base_url", "localhost:8080")
	v.SetDefault("api.allowed_cors_domains", []string{"http://localhost:3000"})
	v.SetDefault("api.jwt_signing_key", "")
	v.SetDefault("api.jwt_ttl", 24*time.Hour)
	v.SetDefault("api.max_upload_mb", 10)
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.db", "asamfx")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("admin.name", "Administrator")
	v.SetDefault("admin.email", "")
	v.SetDefault("admin.password", "")
	v.SetDefault("storage.driver", StorageDriverLocal)
	v.SetDefault("storage.local_dir", "./uploads")
	v.SetDefault("storage.public_prefix", "/uploads")
	v.SetDefault("storage.gcs_bucket", "")
	v.SetDefault("storage.gcs_public_base", "")
	v.SetDefault("mux.base_url", "https://api.mux.com")
	v.SetDefault("mux.token_id", "")
	v.SetDefault("mux.token_secret", "")
	v.SetDefault("mux.cors_origin", "*")
	v.SetDefault("mux.timeout", 15*time.Second)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.channel", "payments")
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "asamfx-api")
	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.sample_ratio", 1.0)
}

// Load reads the YAML file at path, then environment variables such as
// API_PORT or POSTGRES_HOST. A missing file is not an error. Every key must
// have a default, otherwise AutomaticEnv cannot see it during Unmarshal.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	fileLoaded := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
		}
		fileLoaded = false
	}

	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("conf.Validate -> %w", err)
	}

	if fileLoaded {
		watch(v, conf)
	}

	return conf, nil
}

// watch hot-reloads the CORS allow list; every other change needs a restart.
func watch(v *viper.Viper, conf *AppConfig) {
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		conf.API.setCORSDomains(v.GetStringSlice("api.allowed_cors_domains"))
		zap.L().Info("config file changed", zap.String("file", e.Name), zap.String("op", e.Op.String()))
	})
	v.WatchConfig()
}

func (c *AppConfig) Validate() error {
	if c.API == nil || c.Gin == nil || c.Postgres == nil || c.Storage == nil {
		return errors.New("api, gin, postgres and storage sections are required")
	}

	err := validation.ValidateStruct(
		c.API,
		validation.Field(&c.API.Port, validation.Required, is.Digit),
		validation.Field(&c.API.JWTSigningKey, validation.Required, validation.Length(16, 0)),
		validation.Field(&c.API.MaxUploadMB, validation.Required, validation.Min(int64(1))),
	)
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}

	err = validation.ValidateStruct(
		c.Storage,
		validation.Field(&c.Storage.Driver, validation.Required, validation.In(StorageDriverLocal, StorageDriverGCS)),
	)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if c.Storage.Driver == StorageDriverLocal && c.Storage.LocalDir == "" {
		return errors.New("storage: local_dir is required for the local driver")
	}
	if c.Storage.Driver == StorageDriverGCS && c.Storage.GCSBucket == "" {
		return errors.New("storage: gcs_bucket is required for the gcs driver")
	}

	if c.Admin.Enabled() {
		err = validation.ValidateStruct(
			c.Admin,
			validation.Field(&c.Admin.Email, is.Email),
			validation.Field(&c.Admin.Password, validation.Length(8, 0)),
		)
		if err != nil {
			return fmt.Errorf("admin: %w", err)
		}
	}

	return nil
}
