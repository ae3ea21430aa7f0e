// Package config loads Configuration in layers via viper, then
// unmarshals it into a typed struct via mapstructure. Precedence, from
// highest to lowest: cobra flags explicitly set on the command line,
// PERMLATTICE_-prefixed environment variables, the config file, and
// the built-in defaults.
package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config holds everything the resolution core and its surrounding
// services need at startup.
type Config struct {
	DataDir  string `mapstructure:"data_dir"`
	LogLevel string `mapstructure:"log_level"`

	Resolution ResolutionConfig `mapstructure:"resolution"`
	Directory  DirectoryConfig  `mapstructure:"directory"`
	Audit      AuditConfig      `mapstructure:"audit"`
	Webhook    WebhookConfig    `mapstructure:"webhook"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// ResolutionConfig carries the four applicability flags from §4.5/§4.6
// plus §4.7's export-time case folding.
type ResolutionConfig struct {
	ApplyWildcards       bool `mapstructure:"apply_wildcards"`
	ApplyShorthand       bool `mapstructure:"apply_shorthand"`
	ApplyingRegex        bool `mapstructure:"applying_regex"`
	IncludingGlobalPerms bool `mapstructure:"including_global_perms"`
	LowercasePermissions bool `mapstructure:"lowercase_permissions"`
}

// DirectoryConfig configures the Badger-backed holder registry.
type DirectoryConfig struct {
	SyncWrites bool `mapstructure:"sync_writes"`
}

// AuditConfig configures the durable SQLite audit sink.
type AuditConfig struct {
	Enable bool   `mapstructure:"enable"`
	DBFile string `mapstructure:"db_file"`
}

// WebhookConfig optionally wires a webhook eventbus.Output.
type WebhookConfig struct {
	Enable        bool   `mapstructure:"enable"`
	URL           string `mapstructure:"url"`
	AuthToken     string `mapstructure:"auth_token"`
	BatchSize     int    `mapstructure:"batch_size"`
	FlushInterval int    `mapstructure:"flush_interval_seconds"`
}

// MetricsConfig configures the Prometheus registry.
type MetricsConfig struct {
	Enable bool   `mapstructure:"enable"`
	Listen string `mapstructure:"listen"`
}

// Load layers cobra flags, an optional config file, and
// PERMLATTICE_-prefixed environment variables into a Config.
func Load(cmd *cobra.Command) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if err := bindFlags(cmd, v); err != nil {
		return nil, fmt.Errorf("config: bind flags: %w", err)
	}

	if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	v.SetEnvPrefix("PERMLATTICE")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")

	v.SetDefault("resolution.apply_wildcards", true)
	v.SetDefault("resolution.apply_shorthand", true)
	v.SetDefault("resolution.applying_regex", false)
	v.SetDefault("resolution.including_global_perms", true)
	v.SetDefault("resolution.lowercase_permissions", true)

	v.SetDefault("directory.sync_writes", true)

	v.SetDefault("audit.enable", true)
	v.SetDefault("audit.db_file", "audit.db")

	v.SetDefault("webhook.enable", false)
	v.SetDefault("webhook.batch_size", 20)
	v.SetDefault("webhook.flush_interval_seconds", 5)

	v.SetDefault("metrics.enable", true)
	v.SetDefault("metrics.listen", ":9090")
}

func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	flags := map[string]string{
		"data-dir":       "data_dir",
		"log-level":      "log_level",
		"apply-wildcards": "resolution.apply_wildcards",
		"apply-shorthand": "resolution.apply_shorthand",
		"applying-regex":  "resolution.applying_regex",
		"include-global":  "resolution.including_global_perms",
	}

	for flag, key := range flags {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

func validate(cfg *Config) error {
	if cfg.DataDir == "" {
		return fmt.Errorf("data_dir is required: specify via --data-dir, a config file, or PERMLATTICE_DATA_DIR")
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	if cfg.Audit.Enable && cfg.Audit.DBFile == "" {
		cfg.Audit.DBFile = "audit.db"
	}

	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", cfg.LogLevel, err)
	}

	if cfg.Webhook.Enable && cfg.Webhook.URL == "" {
		return fmt.Errorf("webhook.enable is set but webhook.url is empty")
	}

	return nil
}
