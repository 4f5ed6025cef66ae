// Package config loads the repodriller CLI configuration from defaults, an
// optional YAML file, REPODRILLER_* environment variables and command-line
// flags, in increasing order of precedence.
package config

import (
	"fmt"
	"slices"

	platformerrors "github.com/jmgilman/repodriller/errors"
	"github.com/jmgilman/repodriller/git"
	"github.com/jmgilman/repodriller/internal/logging"
	"github.com/jmgilman/repodriller/remote"
)

// Engine names.
const (
	EngineGoGit = "gogit"
	EngineCLI   = "cli"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config is the complete CLI configuration.
type Config struct {
	// Repositories is used by the info command when no URL is given.
	Repositories []remote.Config `mapstructure:"repositories" yaml:"repositories"`

	Clone   CloneConfig   `mapstructure:"clone" yaml:"clone"`
	Auth    AuthConfig    `mapstructure:"auth" yaml:"auth"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Output is the result format: text, json or yaml.
	Output string `mapstructure:"output" yaml:"output"`

	// Retries is how many times a failed acquisition is retried when the
	// failure is retryable. Zero disables retries.
	Retries int `mapstructure:"retries" yaml:"retries"`
}

// CloneConfig holds the settings applied to repositories given on the
// command line.
type CloneConfig struct {
	Directory   string `mapstructure:"directory" yaml:"directory"`
	Branch      string `mapstructure:"branch" yaml:"branch"`
	Bare        bool   `mapstructure:"bare" yaml:"bare"`
	Depth       int    `mapstructure:"depth" yaml:"depth"`
	Engine      string `mapstructure:"engine" yaml:"engine"`
	TempRoot    string `mapstructure:"temp_root" yaml:"temp_root"`
	Concurrency int    `mapstructure:"concurrency" yaml:"concurrency"`
	Progress    bool   `mapstructure:"progress" yaml:"progress"`
}

// AuthConfig holds credentials for the go-git engine.
type AuthConfig struct {
	Username string `mapstructure:"username" yaml:"username"`
	Token    string `mapstructure:"token" yaml:"token"`
	SSHKey   string `mapstructure:"ssh_key" yaml:"ssh_key"`
	SSHUser  string `mapstructure:"ssh_user" yaml:"ssh_user"`
}

// LoggingConfig configures the CLI logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate checks enumerated values and numeric bounds.
func (c *Config) Validate() error {
	if !slices.Contains([]string{OutputText, OutputJSON, OutputYAML}, c.Output) {
		return invalid("unsupported output format %q", c.Output)
	}
	if !slices.Contains([]string{EngineGoGit, EngineCLI}, c.Clone.Engine) {
		return invalid("unsupported engine %q", c.Clone.Engine)
	}
	if !logging.ValidFormat(c.Logging.Format) {
		return invalid("unsupported log format %q", c.Logging.Format)
	}
	if c.Retries < 0 {
		return invalid("retries must not be negative: %d", c.Retries)
	}
	if c.Clone.Depth < 0 {
		return invalid("depth must not be negative: %d", c.Clone.Depth)
	}
	if c.Clone.Concurrency < 1 {
		return invalid("concurrency must be at least 1: %d", c.Clone.Concurrency)
	}
	if c.Auth.Token != "" && c.Auth.SSHKey != "" {
		return invalid("token and ssh key are mutually exclusive")
	}
	for i, r := range c.Repositories {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("repositories[%d]: %w", i, err)
		}
	}
	return nil
}

// Credentials builds the git credentials described by the auth section, or
// nil when none are configured.
func (c *Config) Credentials() (git.Auth, error) {
	switch {
	case c.Auth.Token != "":
		return git.BasicAuth(c.Auth.Username, c.Auth.Token), nil
	case c.Auth.SSHKey != "":
		return git.SSHKeyFile(c.Auth.SSHUser, c.Auth.SSHKey)
	default:
		return nil, nil
	}
}

// RepositoryConfigs returns the acquisitions to perform. URLs given on the
// command line use the clone section; without URLs the configured
// repositories are used. Credentials are attached to every entry.
func (c *Config) RepositoryConfigs(urls []string) ([]remote.Config, error) {
	auth, err := c.Credentials()
	if err != nil {
		return nil, err
	}

	var cfgs []remote.Config
	if len(urls) > 0 {
		if len(urls) > 1 && c.Clone.Directory != "" {
			return nil, invalid("a clone directory can only be used with a single URL")
		}
		for _, u := range urls {
			cfgs = append(cfgs, remote.Config{
				URL:       u,
				Directory: c.Clone.Directory,
				Branch:    c.Clone.Branch,
				Bare:      c.Clone.Bare,
				Depth:     c.Clone.Depth,
			})
		}
	} else {
		cfgs = slices.Clone(c.Repositories)
	}

	if len(cfgs) == 0 {
		return nil, invalid("no repositories given, pass a URL or configure repositories")
	}

	for i := range cfgs {
		cfgs[i].Auth = auth
	}
	return cfgs, nil
}

func invalid(format string, args ...any) error {
	return platformerrors.Newf(platformerrors.CodeInvalidConfig, format, args...)
}
