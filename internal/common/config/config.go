package config

import (
	"os"
	"regexp"
	"time"

	"github.com/sofrahq/sofra/pkg/helper"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type (
	// SuperAdminConfig holds the bootstrap credentials for the first super admin.
	SuperAdminConfig struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	}

	// ServerConfig holds the HTTP listener settings.
	ServerConfig struct {
		Port int `yaml:"port"`
		// PublicBaseURL is the externally reachable origin used to build
		// public menu links and QR payloads, e.g. https://menu.sofra.app
		PublicBaseURL  string   `yaml:"public_base_url"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	}

	// SessionConfig selects and configures the server-side session store.
	SessionConfig struct {
		Type  string             `yaml:"type"` // "memory" or "redis"
		TTL   time.Duration      `yaml:"ttl"`
		Redis SessionRedisConfig `yaml:"redis"`
	}

	// SessionRedisConfig is the Redis backing for session storage.
	SessionRedisConfig struct {
		Addr     string `yaml:"addr"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix"`
	}

	// PreviewConfig configures signed menu preview tokens.
	PreviewConfig struct {
		SecretKey string        `yaml:"secret_key"`
		Duration  time.Duration `yaml:"duration"`
	}

	// CacheConfig controls the rendered menu document cache. The Redis
	// layer is optional; with no addr the cache stays in memory only.
	CacheConfig struct {
		Enabled    bool             `yaml:"enabled"`
		TTL        time.Duration    `yaml:"ttl"`
		MaxEntries int              `yaml:"max_entries"`
		Redis      CacheRedisConfig `yaml:"redis"`
	}

	// CacheRedisConfig is the optional Redis backing for the menu cache.
	CacheRedisConfig struct {
		Addr     string `yaml:"addr"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	}

	// LoggerConfig represents the logger configuration
	LoggerConfig struct {
		Level      string `yaml:"level"`       // debug, info, warn, error
		Format     string `yaml:"format"`      // json, console
		Output     string `yaml:"output"`      // stdout, file
		FilePath   string `yaml:"file_path"`   // path to log file when output is file
		MaxSize    int    `yaml:"max_size"`    // max size of log file in MB
		MaxBackups int    `yaml:"max_backups"` // max number of backup files
		MaxAge     int    `yaml:"max_age"`     // max age of backup files in days
		Compress   bool   `yaml:"compress"`    // whether to compress backup files
		Color      bool   `yaml:"color"`       // whether to use color in console output
		Stacktrace bool   `yaml:"stacktrace"`  // whether to include stacktrace in error logs
		TimeZone   string `yaml:"time_zone"`   // time zone for log timestamps, default is local
		TimeFormat string `yaml:"time_format"` // time format for log timestamps
	}

	// MetricsConfig configures the Prometheus registry.
	MetricsConfig struct {
		Namespace string    `yaml:"namespace"`
		Buckets   []float64 `yaml:"buckets"`
	}

	// I18nConfig points at the translation catalogs.
	I18nConfig struct {
		Path string `yaml:"path"`
	}

	// QRConfig controls rendered QR images.
	QRConfig struct {
		Size int `yaml:"size"` // image width/height in pixels
	}
)

type Type interface {
	APIServerConfig
}

// LoadConfig loads configuration from a YAML file with environment variable support
func LoadConfig[T Type](filename string) (*T, string, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	cfgPath := helper.GetCfgPath(filename)
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, cfgPath, err
	}

	// Resolve environment variables
	data = resolveEnv(data)
	var cfg T
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, cfgPath, err
	}

	if apiCfg, ok := any(&cfg).(*APIServerConfig); ok {
		apiCfg.setDefaults()
	}

	return &cfg, cfgPath, nil
}

// resolveEnv replaces environment variable placeholders in YAML content
func resolveEnv(content []byte) []byte {
	regex := regexp.MustCompile(`\$\{(\w+)(?::([^}]*))?\}`)

	return regex.ReplaceAllFunc(content, func(match []byte) []byte {
		matches := regex.FindSubmatch(match)
		envKey := string(matches[1])
		var defaultValue string

		if len(matches) > 2 {
			defaultValue = string(matches[2])
		}

		if value, exists := os.LookupEnv(envKey); exists {
			return []byte(value)
		}
		return []byte(defaultValue)
	})
}
