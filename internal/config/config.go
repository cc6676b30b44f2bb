package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Behyna/sms-services/scheduler/pkg/schedulerapi"
	"github.com/spf13/viper"
)

const envPrefix = "SCHEDULER"

type Config struct {
	API schedulerapi.Config `mapstructure:"api"`
	Web Web                 `mapstructure:"web"`
	UI  UI                  `mapstructure:"ui"`
	Log Log                 `mapstructure:"log"`
}

type Web struct {
	Port        string `mapstructure:"port"`
	ServiceName string `mapstructure:"service_name"`
}

type UI struct {
	Timezone           string `mapstructure:"timezone"`
	NotificationBuffer int    `mapstructure:"notification_buffer"`
}

type Log struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

func Load() (*Config, error) {
	return LoadFrom("./config")
}

// LoadFrom reads config.yml from path. A missing file is not an error; the
// defaults and SCHEDULER_* environment variables still apply.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(path)

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", schedulerapi.DefaultBaseURL)
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("web.port", ":3000")
	v.SetDefault("web.service_name", "sms-scheduler")
	v.SetDefault("ui.timezone", "Local")
	v.SetDefault("ui.notification_buffer", 20)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("invalid api.base_url %q", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	if _, err := time.LoadLocation(c.UI.Timezone); err != nil {
		return fmt.Errorf("invalid ui.timezone %q: %w", c.UI.Timezone, err)
	}
	if c.UI.NotificationBuffer <= 0 {
		return fmt.Errorf("ui.notification_buffer must be positive, got %d", c.UI.NotificationBuffer)
	}
	return nil
}

// Location is the zone date-time inputs are read and displayed in.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.UI.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
