package cli

import (
	"errors"
	"fmt"

	"github.com/jmgilman/repodriller/remote"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func (a *app) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info [url...]",
		Short: "Print metadata of repositories and remove the clones",
		Long: `info clones every repository, prints its path, origin URL and first
commit, and deletes every clone before exiting. Without URL arguments the
repositories listed in the config file are used.`,
		RunE: a.runInfo,
	}
}

func (a *app) cloneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clone <url>",
		Short: "Clone a repository and keep it",
		Long: `clone acquires a repository, prints its metadata and leaves the clone
on disk. Removing it is up to the caller.`,
		Args: cobra.ExactArgs(1),
		RunE: a.runClone,
	}
}

func (a *app) runInfo(cmd *cobra.Command, args []string) (err error) {
	ctx := cmd.Context()
	cfgs, err := a.cfg.RepositoryConfigs(args)
	if err != nil {
		return err
	}

	var handles []*remote.Handle
	err = a.retry(ctx, a.cfg.Retries, func() error {
		var acquireErr error
		handles, acquireErr = remote.AcquireAll(ctx, cfgs, a.remoteOptions()...)
		return acquireErr
	})
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, remote.DeleteAll(handles))
	}()

	infos := make([]remote.Info, 0, len(handles))
	for _, h := range handles {
		info, err := h.Info()
		if err != nil {
			return err
		}
		infos = append(infos, info)
	}

	zerolog.Ctx(ctx).Debug().Int("repositories", len(infos)).Msg("collected repository metadata")
	return renderInfos(a.stdout, a.cfg.Output, infos)
}

func (a *app) runClone(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfgs, err := a.cfg.RepositoryConfigs(args)
	if err != nil {
		return err
	}
	cfg := cfgs[0]

	var h *remote.Handle
	err = a.retry(ctx, a.cfg.Retries, func() error {
		var acquireErr error
		h, acquireErr = remote.Acquire(ctx, cfg, a.remoteOptions()...)
		return acquireErr
	})
	if err != nil {
		return err
	}

	info, err := h.Info()
	if err != nil {
		if delErr := h.Delete(); delErr != nil {
			err = errors.Join(err, delErr)
		}
		return fmt.Errorf("failed to read metadata of %s: %w", cfg.URL, err)
	}

	zerolog.Ctx(ctx).Info().Str("path", info.Path).Msg("repository cloned")
	return renderInfos(a.stdout, a.cfg.Output, []remote.Info{info})
}
