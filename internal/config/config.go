package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"polaris/components/internal/domain"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Routes   RoutesConfig   `mapstructure:"routes"`
	Pages    PagesConfig    `mapstructure:"pages"`
	Render   RenderConfig   `mapstructure:"render"`
	Icons    IconsConfig    `mapstructure:"icons"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            int    `mapstructure:"port"`
	Host            string `mapstructure:"host"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
}

func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// RoutesConfig selects where the route hierarchy comes from
type RoutesConfig struct {
	Source      string                   `mapstructure:"source"` // config or database
	Definitions []domain.RouteDefinition `mapstructure:"definitions"`
}

type PagesConfig struct {
	Dir string `mapstructure:"dir"`
}

type RenderConfig struct {
	StrictBreadcrumbs bool   `mapstructure:"strict_breadcrumbs"`
	BreadcrumbIcon    string `mapstructure:"breadcrumb_icon"`
}

// IconsConfig holds the icon lookup configuration
type IconsConfig struct {
	Source               string   `mapstructure:"source"` // static or remote
	Set                  string   `mapstructure:"set"`
	Mirrors              []string `mapstructure:"mirrors"`
	Timeout              int      `mapstructure:"timeout"`
	MaxRetries           int      `mapstructure:"max_retries"`
	MaxRequestsPerSecond int      `mapstructure:"max_requests_per_second"`
	BreakerThreshold     int      `mapstructure:"breaker_threshold"`
	BreakerCooldown      int      `mapstructure:"breaker_cooldown"`
	CacheTTL             int      `mapstructure:"cache_ttl"`
	Prefetch             []string `mapstructure:"prefetch"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Name)
}

// RedisConfig holds Redis connection details
type RedisConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	Password      string `mapstructure:"password"`
	Database      int    `mapstructure:"database"`
	Stream        string `mapstructure:"stream"`
	ConsumerGroup string `mapstructure:"consumer_group"`
	MinIdleTime   int    `mapstructure:"min_idle_time"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load loads configuration from a YAML file with environment variable overrides.
// An empty path searches for config.yaml in the current directory; a missing
// file there is not an error and yields the defaults.
func Load(path string) (*Config, error) {
	v, err := read(path)
	if err != nil {
		return nil, err
	}
	return decode(v)
}

// Watch loads the configuration and calls onChange every time the file
// changes on disk. It requires an existing config file.
func Watch(path string, onChange func(*Config, error)) (*Config, error) {
	v, err := read(path)
	if err != nil {
		return nil, err
	}
	if v.ConfigFileUsed() == "" {
		return nil, fmt.Errorf("no config file to watch")
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		onChange(decode(v))
	})
	v.WatchConfig()

	return cfg, nil
}

func read(path string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("POLARIS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	return v, nil
}

func decode(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	switch config.Routes.Source {
	case "config", "database":
	default:
		return nil, fmt.Errorf("unknown routes.source %q", config.Routes.Source)
	}

	switch config.Icons.Source {
	case "static", "remote":
	default:
		return nil, fmt.Errorf("unknown icons.source %q", config.Icons.Source)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.shutdown_timeout", 10)

	v.SetDefault("log.level", "info")

	v.SetDefault("routes.source", "config")
	v.SetDefault("pages.dir", "./pages")

	v.SetDefault("render.strict_breadcrumbs", false)
	v.SetDefault("render.breadcrumb_icon", "chevron-left")

	v.SetDefault("icons.source", "static")
	v.SetDefault("icons.set", "polaris")
	v.SetDefault("icons.timeout", 10)
	v.SetDefault("icons.max_retries", 2)
	v.SetDefault("icons.max_requests_per_second", 20)
	v.SetDefault("icons.breaker_threshold", 5)
	v.SetDefault("icons.breaker_cooldown", 60)
	v.SetDefault("icons.cache_ttl", 3600)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "polaris")
	v.SetDefault("database.user", "polaris_user")
	v.SetDefault("database.password", "polaris_pass")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.stream", "polaris:stream:actions")
	v.SetDefault("redis.consumer_group", "polaris_consumer")
	v.SetDefault("redis.min_idle_time", 120)
}
