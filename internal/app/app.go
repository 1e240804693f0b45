package app

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter"
	"github.com/niksmo/storefront/pkg/retry"
	"golang.org/x/sync/errgroup"
)

const (
	pingAttempts = 5
	pingDelay    = 200 * time.Millisecond
)

// A lifecycle runs background components and closes them in reverse
// order of registration.
type lifecycle struct {
	group   *errgroup.Group
	ctx     context.Context
	closers []func()
}

func newLifecycle(ctx context.Context) lifecycle {
	group, groupCtx := errgroup.WithContext(ctx)
	return lifecycle{group: group, ctx: groupCtx}
}

func (l *lifecycle) goRun(run func(context.Context) error) {
	l.group.Go(func() error { return run(l.ctx) })
}

func (l *lifecycle) onClose(fn func()) {
	l.closers = append(l.closers, fn)
}

// watch calls stop once any background component fails or all of them
// are done.
func (l *lifecycle) watch(stop context.CancelFunc) {
	go func() {
		if err := l.group.Wait(); err != nil {
			slog.Error("background component failed", "err", err)
		}
		stop()
	}()
}

func (l *lifecycle) closeAll() {
	for _, fn := range slices.Backward(l.closers) {
		fn()
	}
}

func initLogger(level slog.Leveler) {
	opts := &slog.HandlerOptions{Level: level}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

// pingWithRetry waits for a dependency that may still be starting.
func pingWithRetry(ctx context.Context, ping func(context.Context) error) error {
	return retry.Do(ctx, retry.RetryConfig{
		MaxAttempts: pingAttempts,
		Backoff:     retry.ExponentialBackoff(pingDelay),
	}, func() error {
		return ping(ctx)
	})
}

// brokerTLS returns nil when the broker connection is plaintext.
func brokerTLS(cfg config.Config) (*tls.Config, error) {
	files := cfg.Broker.TLS
	if !files.Enabled() {
		return nil, nil
	}
	return adapter.MakeTLSConfig(files.CA, files.Cert, files.Key)
}

func fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
