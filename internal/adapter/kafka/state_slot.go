package kafka

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"time"

	"github.com/lovoo/goka"
	"github.com/lovoo/goka/codec"
	"github.com/niksmo/storefront/internal/core/port"
	"golang.org/x/sync/errgroup"
)

var _ port.StateSlotRunner = (*StateSlot)(nil)

const viewRecoveryPoll = 100 * time.Millisecond

// A StateSlotConfig used for setup [StateSlot].
//
// TLSConfig is optional, other fields are required.
type StateSlotConfig struct {
	SeedBrokers []string
	Stream      string
	Group       string
	TLSConfig   *tls.Config
}

// gokaOpts lets tests swap the brokers for goka's tester.
type gokaOpts struct {
	proc    []goka.ProcessorOption
	view    []goka.ViewOption
	emitter []goka.EmitterOption
}

// A StateSlot keeps snapshots in a compacted goka group table.
//
// Save emits the snapshot to the stream, the processor persists it into the
// group table and Load reads the table through a view. Reads are eventually
// consistent with writes.
type StateSlot struct {
	emitter *goka.Emitter
	proc    processor
	view    *goka.View
}

func NewStateSlot(config StateSlotConfig) (*StateSlot, error) {
	applyTLS(config.TLSConfig)
	return newStateSlot(config, gokaOpts{})
}

func newStateSlot(config StateSlotConfig, opts gokaOpts) (*StateSlot, error) {
	const op = "NewStateSlot"

	proc, err := newSnapshotProcessor(
		config.SeedBrokers, config.Stream, config.Group, opts.proc...,
	)
	if err != nil {
		return nil, opErr(err, op)
	}

	view, err := goka.NewView(
		config.SeedBrokers,
		goka.GroupTable(goka.Group(config.Group)),
		new(codec.Bytes),
		opts.view...,
	)
	if err != nil {
		return nil, opErr(err, op)
	}

	emitter, err := goka.NewEmitter(
		config.SeedBrokers,
		goka.Stream(config.Stream),
		new(codec.Bytes),
		opts.emitter...,
	)
	if err != nil {
		return nil, opErr(err, op)
	}

	return &StateSlot{emitter: emitter, proc: proc, view: view}, nil
}

// Run blocks until ctx is done or the processor or view fails.
func (s *StateSlot) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.proc.run(ctx) })
	g.Go(func() error { return s.runView(ctx) })
	return g.Wait()
}

// WaitReady blocks until the processor is running and the view has
// recovered the table.
func (s *StateSlot) WaitReady(ctx context.Context) error {
	const op = "StateSlot.WaitReady"

	if err := s.proc.waitForReady(ctx); err != nil {
		return opErr(err, op)
	}

	ticker := time.NewTicker(viewRecoveryPoll)
	defer ticker.Stop()
	for !s.view.Recovered() {
		select {
		case <-ctx.Done():
			return opErr(ctx.Err(), op)
		case <-ticker.C:
		}
	}
	return nil
}

func (s *StateSlot) Load(_ context.Context, key string) ([]byte, error) {
	const op = "StateSlot.Load"

	v, err := s.view.Get(key)
	if err != nil {
		return nil, opErr(err, op)
	}
	if v == nil {
		return nil, opErr(port.ErrSlotEmpty, op)
	}
	data, ok := v.([]byte)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %T", op, ErrInvalidValueType, v)
	}
	return data, nil
}

func (s *StateSlot) Save(ctx context.Context, key string, data []byte) error {
	const op = "StateSlot.Save"

	if err := ctx.Err(); err != nil {
		return opErr(err, op)
	}
	if err := s.emitter.EmitSync(key, data); err != nil {
		return opErr(err, op)
	}
	return nil
}

func (s *StateSlot) Close() {
	const op = "StateSlot.Close"
	log := slog.With("op", op)

	log.Info("closing emitter...")
	if err := s.emitter.Finish(); err != nil {
		log.Error("failed to finish gracefully", "err", err)
	} else {
		log.Info("emitter is closed")
	}
	s.proc.close()
}

func (s *StateSlot) runView(ctx context.Context) error {
	const op = "StateSlot.runView"
	log := slog.With("op", op)

	if err := s.view.Run(ctx); err != nil {
		log.Error("view stopped", "err", err)
		return opErr(err, op)
	}
	log.Info("view stopped")
	return nil
}
