package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	Stripe   *StripeConfig   `mapstructure:"stripe"`
	Storage  *StorageConfig  `mapstructure:"storage"`
	Site     *SiteConfig     `mapstructure:"site"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	Port               string   `mapstructure:"port"`
	BaseURL            string   `mapstructure:"base_url"`
	JWTSigningKey      string   `mapstructure:"jwt_signing_key"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"db_name"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

type StripeConfig struct {
	SecretKey string `mapstructure:"secret_key"`
	Currency  string `mapstructure:"currency"`
	// Price of the premium upgrade in minor currency units.
	PremiumPrice int64 `mapstructure:"premium_price"`
}

type StorageConfig struct {
	AccountID       string `mapstructure:"account_id"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	Bucket          string `mapstructure:"bucket"`
	CDNBaseURL      string `mapstructure:"cdn_base_url"`
}

// SiteConfig is the mutable site chrome served by /api/settings.
// It is re-read when the config file changes on disk.
type SiteConfig struct {
	Name    string `mapstructure:"name"`
	Tagline string `mapstructure:"tagline"`

	mu       sync.RWMutex
	onUpdate []func()
}

// OnUpdate registers a callback fired after a hot reload lands.
func (c *SiteConfig) OnUpdate(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.onUpdate = append(c.onUpdate, fn)
}

func (c *SiteConfig) Snapshot() (name, tagline string) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.Name, c.Tagline
}

func (c *SiteConfig) update(name, tagline string) {
	c.mu.Lock()
	c.Name = name
	c.Tagline = tagline
	callbacks := make([]func(), len(c.onUpdate))
	copy(callbacks, c.onUpdate)
	c.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}

func Load(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	// Site settings are editable without a restart.
	v.OnConfigChange(func(e fsnotify.Event) {
		fresh := &AppConfig{}
		if err := v.Unmarshal(fresh); err != nil {
			zap.L().Warn("ignoring config change", zap.String("file", e.Name), zap.Error(err))
			return
		}
		if fresh.Site != nil {
			conf.Site.update(fresh.Site.Name, fresh.Site.Tagline)
			zap.L().Info("site settings reloaded", zap.String("file", e.Name))
		}
	})
	v.WatchConfig()

	return conf, nil
}
