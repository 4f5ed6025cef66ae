package cli

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	platformerrors "github.com/jmgilman/repodriller/errors"
	"github.com/rs/zerolog"
)

const maxRetryInterval = 30 * time.Second

// retry runs op and retries it up to retries times with exponential backoff
// while its error is retryable. Permanent errors are returned immediately.
func (a *app) retry(ctx context.Context, retries int, op func() error) error {
	if retries <= 0 {
		return op()
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = a.retryInterval
	b.MaxInterval = maxRetryInterval
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5
	b.Reset()

	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(retries)), ctx)
	logger := zerolog.Ctx(ctx)

	return backoff.RetryNotify(func() error {
		err := op()
		if err != nil && !platformerrors.IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, policy, func(err error, wait time.Duration) {
		logger.Warn().Err(err).Dur("wait", wait).Msg("retrying after retryable failure")
	})
}
