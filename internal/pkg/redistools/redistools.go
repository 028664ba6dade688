package redistools

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect pings until redis answers, backing off one extra second per
// attempt. maxWait caps the total backoff; a non-positive value falls
// back to ten seconds.
func Connect(ctx context.Context, rdb *redis.Client, maxWait time.Duration) error {
	if maxWait <= 0 {
		maxWait = time.Second * 10
	}

	errCh := make(chan error)

	go func() {
		defer close(errCh)

		delay := time.Second

		for {
			err := rdb.Ping(ctx).Err()
			if err == nil {
				return
			}

			time.Sleep(delay)
			delay += time.Second

			if delay > maxWait {
				errCh <- fmt.Errorf("cannot ping redis db error: %w", err)

				return
			}
		}
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("context error: %w", ctx.Err())
	case err := <-errCh:
		return err
	}
}
