// Package config loads application configuration from file and environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const envPrefix = "NOTEVAULT"

var (
	mu sync.Mutex
	v  = viper.New()
)

// Config represents the configuration implementation.
type Config struct {
	AppName  string
	RunMode  string
	Host     string
	Port     int
	Domain   string
	Auth     *Auth
	Data     *Data
	Logger   *Logger
	Frontend *Frontend
	Viper    *viper.Viper
}

// IsProduction reports whether the production run mode is active.
// Production tightens cookie transport flags and serves the built client.
func (c *Config) IsProduction() bool {
	return c.RunMode == "production" || c.RunMode == "release"
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoadConfig loads the configuration from the file.
func LoadConfig(configPath string) (*Config, error) {
	mu.Lock()
	defer mu.Unlock()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		ex, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to get executable path: %w", err)
		}
		v.SetConfigName("config")
		v.AddConfigPath("/etc/notevault")
		v.AddConfigPath("$HOME/.notevault")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Dir(ex))
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return fromViper(v), nil
}

// fromViper builds the config from a loaded viper instance.
func fromViper(v *viper.Viper) *Config {
	return &Config{
		AppName:  v.GetString("app_name"),
		RunMode:  v.GetString("run_mode"),
		Host:     v.GetString("server.host"),
		Port:     v.GetInt("server.port"),
		Domain:   v.GetString("server.domain"),
		Auth:     getAuth(v),
		Data:     getDataConfig(v),
		Logger:   getLoggerConfig(v),
		Frontend: getFrontendConfig(v),
		Viper:    v,
	}
}

// setDefaults applies defaults for optional keys.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "notevault")
	v.SetDefault("run_mode", "development")
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 4000)
	v.SetDefault("data.mongodb.database", "notevault")
	v.SetDefault("logger.level", 4) // logrus info
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
}

// Watch watches the configuration file and invokes the callback with the
// re-read configuration when it changes.
func Watch(callback func(*Config)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		mu.Lock()
		cfg := fromViper(v)
		mu.Unlock()
		callback(cfg)
	})
	v.WatchConfig()
}
