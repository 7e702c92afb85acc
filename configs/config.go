// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package config loads the configuration shared by the docs server and the
maintenance commands.

Values are applied in order: built-in defaults, the YAML file, a .env file,
then environment variables.
*/
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/aicoding-caret/caretdocs/core/brand"
	"github.com/aicoding-caret/caretdocs/core/idgen"
)

// Global exposes the loaded configuration.
var Global ServerConfig

// ServerConfig holds the application configuration.
type ServerConfig struct {
	Build buildInfo `yaml:"-"`

	Basic struct {
		Host string `env:"CARETDOCS_HOST,overwrite" yaml:"host"`
		Port string `env:"CARETDOCS_PORT,overwrite" yaml:"port"`
	} `yaml:"basic"`

	Site struct {
		// URL is the public origin used for canonical, hreflang and og:image links.
		URL        string `env:"CARETDOCS_SITE_URL,overwrite" yaml:"url"`
		ContentDir string `env:"CARETDOCS_CONTENT_DIR,overwrite" yaml:"contentDir"`
		StaticDir  string `env:"CARETDOCS_STATIC_DIR,overwrite" yaml:"staticDir"`

		// RawBrand is the brand served to hosts missing from the host table.
		RawBrand string   `env:"BRAND,overwrite" yaml:"brand"`
		Brand    brand.ID `yaml:"-"`
	} `yaml:"site"`

	Cache struct {
		Enabled bool          `env:"CARETDOCS_CACHE,overwrite" yaml:"enabled"`
		Size    int           `env:"CARETDOCS_CACHE_SIZE,overwrite" yaml:"cacheSize"`
		TTL     time.Duration `env:"CARETDOCS_CACHE_TTL,overwrite" yaml:"cacheTTL"`
	} `yaml:"cache"`

	HTTPCache struct {
		MaxAge               time.Duration `env:"CARETDOCS_CACHE_CONTROL_MAX_AGE,overwrite" yaml:"cacheControlMaxAge"`
		StaleWhileRevalidate time.Duration `env:"CARETDOCS_CACHE_CONTROL_STALE_WHILE_REVALIDATE,overwrite" yaml:"cacheControlStaleWhileRevalidate"`
	} `yaml:"httpCache"`

	Translator struct {
		APIKeys       []string      `env:"GEMINI_TOKEN|GEMINI_API_KEY" yaml:"apiKeys"`
		Endpoint      string        `env:"CARETDOCS_GEMINI_ENDPOINT,overwrite" yaml:"endpoint"`
		Model         string        `env:"CARETDOCS_GEMINI_MODEL,overwrite" yaml:"model"`
		Delay         time.Duration `env:"CARETDOCS_TRANSLATE_DELAY,overwrite" yaml:"delay"`
		Timeout       time.Duration `env:"CARETDOCS_TRANSLATE_TIMEOUT,overwrite" yaml:"timeout"`
		LogDir        string        `env:"CARETDOCS_TRANSLATE_LOG_DIR,overwrite" yaml:"logDir"`
		LoadBalancing string        `env:"CARETDOCS_KEY_LOAD_BALANCING,overwrite" yaml:"keyLoadBalancing"`
		BaseTimeout   time.Duration `env:"CARETDOCS_KEY_BASE_TIMEOUT,overwrite" yaml:"keyBaseTimeout"`
		MaxBackoff    time.Duration `env:"CARETDOCS_KEY_MAX_BACKOFF_TIME,overwrite" yaml:"keyMaxBackoffTime"`
	} `yaml:"translator"`

	Limiter struct {
		Enabled           bool     `env:"CARETDOCS_LIMITER,overwrite" yaml:"enabled"`
		RequestsPerMinute int      `env:"CARETDOCS_LIMITER_RPM,overwrite" yaml:"requestsPerMinute"`
		Burst             int      `env:"CARETDOCS_LIMITER_BURST,overwrite" yaml:"burst"`
		IPv4Prefix        int      `env:"CARETDOCS_LIMITER_IPV4_PREFIX,overwrite" yaml:"ipv4Prefix"`
		IPv6Prefix        int      `env:"CARETDOCS_LIMITER_IPV6_PREFIX,overwrite" yaml:"ipv6Prefix"`
		PassIPs           []string `env:"CARETDOCS_LIMITER_PASS_LIST,overwrite" yaml:"passList"`
	} `yaml:"limiter"`

	Instance struct {
		StartingTime      string `yaml:"-"`
		FileServerCacheID string `yaml:"-"`
		RepoURL           string `env:"CARETDOCS_REPO_URL,overwrite" yaml:"repoUrl"`
	} `yaml:"instance"`

	Development struct {
		InDevelopment        bool   `env:"CARETDOCS_DEV" yaml:"inDevelopment"`
		SaveResponses        bool   `env:"CARETDOCS_SAVE_RESPONSES,overwrite" yaml:"saveResponses"`
		ResponseSaveLocation string `env:"CARETDOCS_RESPONSE_SAVE_LOCATION,overwrite" yaml:"responseSaveLocation"`
	} `yaml:"development"`

	Log struct {
		Level   string   `env:"CARETDOCS_LOG_LEVEL,overwrite" yaml:"logLevel"`
		Outputs []string `env:"CARETDOCS_LOG_OUTPUTS,overwrite" yaml:"logOutputs"`
		Format  string   `env:"CARETDOCS_LOG_FORMAT,overwrite" yaml:"logFormat"`
	} `yaml:"log"`

	Internationalization struct {
		// When enabled, missing catalogue entries are logged once per
		// locale and key, and rendered wrapped in markers.
		StrictMissingKeys bool `env:"CARETDOCS_STRICT_MISSING_KEYS" yaml:"strictMissingKeys"`
	} `yaml:"internationalization"`
}

// LoadConfig loads the configuration from the -config flag or
// CARETDOCS_CONFIGFILE, the .env file and the environment, then validates it
// and installs the global logger.
func (cfg *ServerConfig) LoadConfig() error {
	parsedConfigFlagValue := parseCommandLineArgs()

	configFlagUserSet := false

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			configFlagUserSet = true
		}
	})

	configFilePath := parsedConfigFlagValue

	switch envVar := os.Getenv("CARETDOCS_CONFIGFILE"); {
	case configFlagUserSet:
	case envVar != "":
		configFilePath = envVar
	default:
		if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
			if _, statErr := os.Stat("./config.yml"); statErr == nil {
				configFilePath = "./config.yml"
			}
		}
	}

	return cfg.load(configFilePath)
}

// load applies every configuration source on top of the defaults.
func (cfg *ServerConfig) load(configFilePath string) error {
	cfg.SetDefaults()

	cfg.Build.load()

	cfg.Instance.FileServerCacheID = idgen.Make()
	cfg.Instance.StartingTime = time.Now().UTC().Format("2006-01-02 15:04")

	if err := cfg.readYAML(configFilePath); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := useDotEnv(); err != nil {
		return fmt.Errorf("error using .env file: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if err := cfg.validateAndSet(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	cfg.setupLogging()

	return nil
}

var staticSkippedPathPrefixes = []string{"/img/", "/css/", "/og/"}

// ShouldSkipServerLogging reports whether requests for path are too noisy to log.
func (cfg *ServerConfig) ShouldSkipServerLogging(path string) bool {
	if cfg.Development.InDevelopment {
		return false
	}

	for _, prefix := range staticSkippedPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}

// GetDurationEncoderOption returns a YAML encoder option that marshals
// time.Duration into a human-readable string format (e.g., "30m", "1h").
func GetDurationEncoderOption() yaml.EncodeOption {
	return yaml.CustomMarshaler[time.Duration](
		func(d time.Duration) ([]byte, error) {
			return yaml.Marshal(d.String())
		},
	)
}
