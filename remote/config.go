package remote

import (
	"strings"

	platformerrors "github.com/jmgilman/repodriller/errors"
	"github.com/jmgilman/repodriller/git"
)

// Config describes a single repository acquisition.
type Config struct {
	// URL is the clone URL of the remote repository. Local paths and file://
	// URLs are accepted as well.
	URL string `mapstructure:"url" yaml:"url" json:"url"`

	// Directory is the target directory. It must be missing or empty. When
	// empty, a unique temporary directory is generated and owned by the
	// handle.
	Directory string `mapstructure:"directory" yaml:"directory,omitempty" json:"directory,omitempty"`

	// Branch clones only this branch and checks it out. Empty clones every
	// branch and uses the remote's default branch.
	Branch string `mapstructure:"branch" yaml:"branch,omitempty" json:"branch,omitempty"`

	// Bare requests a clone without a working tree.
	Bare bool `mapstructure:"bare" yaml:"bare,omitempty" json:"bare,omitempty"`

	// Depth limits the history fetched. Zero fetches the full history. For
	// shallow clones Info reports the shallow boundary as the first commit.
	Depth int `mapstructure:"depth" yaml:"depth,omitempty" json:"depth,omitempty"`

	// Auth is passed through to the engine unchanged.
	Auth git.Auth `mapstructure:"-" yaml:"-" json:"-"`
}

// Validate checks the configuration before any filesystem or network work.
func (c Config) Validate() error {
	if strings.TrimSpace(c.URL) == "" {
		return platformerrors.New(platformerrors.CodeInvalidConfig, "repository URL is required")
	}
	if strings.TrimSpace(c.Branch) != c.Branch || strings.HasPrefix(c.Branch, "-") {
		return platformerrors.Newf(platformerrors.CodeInvalidConfig, "invalid branch name %q", c.Branch)
	}
	if c.Depth < 0 {
		return platformerrors.Newf(platformerrors.CodeInvalidConfig, "clone depth must not be negative: %d", c.Depth)
	}
	return nil
}

// Strategy returns the clone strategy selected by the configuration.
func (c Config) Strategy() Strategy {
	if c.Bare {
		return StrategyBare
	}
	return StrategyFull
}
