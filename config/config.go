package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Map defaults: the Friuli Venezia Giulia region.
const DEFAULT_MAP_LAT = 46.06
const DEFAULT_MAP_LNG = 13.23
const DEFAULT_MAP_ZOOM = 9
const SELECTED_MAP_ZOOM = 14

// Viewports narrower than this render the list as a drawer.
const MOBILE_BREAKPOINT_PX = 768

// Redis keys
const BUSINESSES_GEO_KEY_V1 = "businesses_geo_v1"
const BUSINESSES_GEO_MEMBER_FORMAT_V1 = "businesses_geo_member_v1:%s"

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const PUBLIC_RESOURCE_DIR = "public"

// Published dataset, relative to the static dir. It replaces the bundled one
// at the companies path when present.
const PUBLISHED_SNAPSHOT_FILE = "data/companies.json"

// Config holds the environment driven settings.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`
	Timezone string `mapstructure:"TIMEZONE"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	SnapshotBaseURL        string `mapstructure:"SNAPSHOT_BASE_URL"`
	SnapshotPath           string `mapstructure:"SNAPSHOT_PATH"`
	SnapshotTimeoutSeconds int    `mapstructure:"SNAPSHOT_TIMEOUT_SECONDS"`

	// SnapshotFile, when set, replaces the remote fetch with a local file.
	SnapshotFile string `mapstructure:"SNAPSHOT_FILE"`

	GeminiAPIKey            string  `mapstructure:"GEMINI_API_KEY"`
	GeminiModel             string  `mapstructure:"GEMINI_MODEL"`
	GeminiTemperature       float32 `mapstructure:"GEMINI_TEMPERATURE"`
	GeminiMaxOutputTokens   int32   `mapstructure:"GEMINI_MAX_OUTPUT_TOKENS"`
	GeminiRequestsPerMinute int     `mapstructure:"GEMINI_REQUESTS_PER_MINUTE"`

	StatusRefreshSeconds int    `mapstructure:"STATUS_REFRESH_SECONDS"`
	SessionIdleMinutes   int    `mapstructure:"SESSION_IDLE_MINUTES"`
	StaticDir            string `mapstructure:"STATIC_DIR"`
}

var defaults = map[string]interface{}{
	"APP_PORT":                   "8080",
	"ENV":                        "development",
	"LOG_LEVEL":                  "info",
	"TIMEZONE":                   "Europe/Rome",
	"REDIS_ADDR":                 "redis:6379",
	"REDIS_PASSWORD":             "",
	"REDIS_DB":                   0,
	"SNAPSHOT_BASE_URL":          "http://localhost:8080",
	"SNAPSHOT_PATH":              "/data/companies.json",
	"SNAPSHOT_TIMEOUT_SECONDS":   10,
	"SNAPSHOT_FILE":              "",
	"GEMINI_API_KEY":             "",
	"GEMINI_MODEL":               "gemini-2.5-flash",
	"GEMINI_TEMPERATURE":         0.6,
	"GEMINI_MAX_OUTPUT_TOKENS":   1000,
	"GEMINI_REQUESTS_PER_MINUTE": 10,
	"STATUS_REFRESH_SECONDS":     60,
	"SESSION_IDLE_MINUTES":       120,
	"STATIC_DIR":                 "",
}

// LoadConfig reads config.yaml from . or ./config when present, then lets
// environment variables override it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "couldn't load config file")
		}
		log.Infof("[Config] No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "couldn't decode config")
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// PublicDir is STATIC_DIR, or resources/public under the project root.
func (c *Config) PublicDir() string {
	if c.StaticDir != "" {
		return c.StaticDir
	}
	return GetResourcePath(PUBLIC_RESOURCE_DIR)
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resourceFile string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resourceFile)
}
