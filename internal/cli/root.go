// Package cli implements the repodriller command line.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/jmgilman/repodriller/internal/config"
	"github.com/jmgilman/repodriller/internal/logging"
	"github.com/jmgilman/repodriller/remote"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries the state shared by every command of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	stdout  io.Writer
	stderr  io.Writer

	// retryInterval is the first backoff interval between attempts.
	retryInterval time.Duration
}

// Execute runs the CLI with args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{
		v:             viper.New(),
		stdout:        stdout,
		stderr:        stderr,
		retryInterval: time.Second,
	}

	cmd := a.rootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		a.renderError(err)
		return 1
	}
	return 0
}

func (a *app) rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repodriller",
		Short: "Acquire remote Git repositories as disposable local clones",
		Long: `repodriller clones remote Git repositories into local directories,
reports their metadata (path, origin URL, first commit) and removes them again.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/repodriller/config.yaml or ./repodriller.yaml)")
	flags.String("log-level", config.DefaultLogLevel, "log level (trace, debug, info, warn, error)")
	flags.String("log-format", config.DefaultLogFormat, "log format (pretty, json)")
	flags.StringP("output", "o", config.DefaultOutput, "output format (text, json, yaml)")
	flags.String("dir", "", "clone into this directory instead of a temporary one")
	flags.String("branch", "", "clone only this branch (default the remote's default branch)")
	flags.Bool("bare", false, "clone without a working tree")
	flags.Int("depth", 0, "limit history to this many commits (0 = full history)")
	flags.String("engine", config.DefaultEngine, "clone engine (gogit, cli)")
	flags.String("temp-root", "", "directory for generated clone directories (default system temp dir)")
	flags.IntP("concurrency", "j", remote.DefaultConcurrency, "number of repositories cloned at once")
	flags.Bool("progress", false, "stream clone progress to stderr")
	flags.Int("retries", 0, "retry retryable failures this many times with exponential backoff")
	flags.String("username", "", "username for HTTP basic authentication")
	flags.String("token", "", "password or token for HTTP basic authentication")
	flags.String("ssh-key", "", "path to a private SSH key")

	bindings := map[string]string{
		"logging.level":     "log-level",
		"logging.format":    "log-format",
		"output":            "output",
		"clone.directory":   "dir",
		"clone.branch":      "branch",
		"clone.bare":        "bare",
		"clone.depth":       "depth",
		"clone.engine":      "engine",
		"clone.temp_root":   "temp-root",
		"clone.concurrency": "concurrency",
		"clone.progress":    "progress",
		"retries":           "retries",
		"auth.username":     "username",
		"auth.token":        "token",
		"auth.ssh_key":      "ssh-key",
	}
	for key, flag := range bindings {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	cmd.AddCommand(a.infoCommand(), a.cloneCommand())
	return cmd
}

// setup loads the configuration and attaches the logger to the command
// context.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: a.stderr,
	})
	if used := a.v.ConfigFileUsed(); used != "" {
		logger.Debug().Str("file", used).Msg("loaded config file")
	}

	cmd.SetContext(logger.WithContext(cmd.Context()))
	return nil
}

// remoteOptions translates the clone settings into acquisition options.
func (a *app) remoteOptions() []remote.Option {
	opts := []remote.Option{
		remote.WithConcurrency(a.cfg.Clone.Concurrency),
	}

	switch a.cfg.Clone.Engine {
	case config.EngineCLI:
		opts = append(opts, remote.WithEngine(remote.NewCLIEngine(nil)))
	default:
		opts = append(opts, remote.WithEngine(remote.NewGoGitEngine()))
	}

	if a.cfg.Clone.TempRoot != "" {
		opts = append(opts, remote.WithTempRoot(a.cfg.Clone.TempRoot))
	}
	if a.cfg.Clone.Progress {
		opts = append(opts, remote.WithProgress(&syncWriter{w: a.stderr}))
	}
	return opts
}
