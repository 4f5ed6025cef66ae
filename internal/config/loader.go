package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	platformerrors "github.com/jmgilman/repodriller/errors"
	"github.com/jmgilman/repodriller/internal/logging"
	"github.com/jmgilman/repodriller/remote"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. REPODRILLER_CLONE_DEPTH.
const EnvPrefix = "REPODRILLER"

// Default values.
const (
	DefaultEngine    = EngineGoGit
	DefaultOutput    = OutputText
	DefaultLogLevel  = "info"
	DefaultLogFormat = logging.FormatPretty
)

// SetDefaults registers default values on v. Every key the CLI reads has a
// default so environment variables are picked up during Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("clone.directory", "")
	v.SetDefault("clone.branch", "")
	v.SetDefault("clone.bare", false)
	v.SetDefault("clone.depth", 0)
	v.SetDefault("clone.engine", DefaultEngine)
	v.SetDefault("clone.temp_root", "")
	v.SetDefault("clone.concurrency", remote.DefaultConcurrency)
	v.SetDefault("clone.progress", false)

	v.SetDefault("auth.username", "")
	v.SetDefault("auth.token", "")
	v.SetDefault("auth.ssh_key", "")
	v.SetDefault("auth.ssh_user", "git")

	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)

	v.SetDefault("output", DefaultOutput)
	v.SetDefault("retries", 0)
}

// Load reads the configuration into a Config using v, which may already
// carry bound flags. file names an explicit config file; when empty the
// first existing file of DefaultFiles is used, if any.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)

	if file == "" {
		file = findConfigFile()
	}
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, platformerrors.Wrapf(err, platformerrors.CodeInvalidConfig, "failed to read config file %s", file)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, platformerrors.Wrap(err, platformerrors.CodeInvalidConfig, "failed to decode configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultFiles lists the config files searched when none is given.
func DefaultFiles() []string {
	var files []string
	if dir, err := os.UserConfigDir(); err == nil {
		files = append(files, filepath.Join(dir, "repodriller", "config.yaml"))
	}
	return append(files, "repodriller.yaml")
}

func findConfigFile() string {
	for _, f := range DefaultFiles() {
		if _, err := os.Stat(f); !errors.Is(err, os.ErrNotExist) {
			return f
		}
	}
	return ""
}
