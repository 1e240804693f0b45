package kafka

import (
	"context"
	"errors"
	"log/slog"

	"github.com/lovoo/goka"
	"github.com/lovoo/goka/codec"
)

// A processor is used for composition.
//
// Running and closing the underlying [goka.Processor]
type processor struct {
	opPrefix string
	gp       *goka.Processor
}

func (p *processor) run(ctx context.Context) error {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	err := p.gp.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("stopped", "err", err)
		return opErr(err, p.opPrefix, op)
	}
	log.Info("stopped")
	return nil
}

func (p *processor) waitForReady(ctx context.Context) error {
	const op = "waitForReady"
	log := slog.With("op", makeOp(p.opPrefix, op))

	log.Info("preparing...")
	if err := p.gp.WaitForReadyContext(ctx); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	log.Info("running")
	return nil
}

func (p *processor) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

// newSnapshotProcessor keeps the latest snapshot per slot key: every record
// of the input stream replaces the group table value under its key.
func newSnapshotProcessor(
	seedBrokers []string,
	inputStream string,
	group string,
	opts ...goka.ProcessorOption,
) (processor, error) {
	const op = "newSnapshotProcessor"

	gg := goka.DefineGroup(goka.Group(group),
		goka.Input(goka.Stream(inputStream), new(codec.Bytes), processSnapshot),
		goka.Persist(new(codec.Bytes)),
	)

	opts = append([]goka.ProcessorOption{withNoLogProcOpt()}, opts...)
	gp, err := goka.NewProcessor(seedBrokers, gg, opts...)
	if err != nil {
		return processor{}, opErr(err, op)
	}

	return processor{opPrefix: "SnapshotProcessor", gp: gp}, nil
}

func processSnapshot(ctx goka.Context, msg any) {
	const op = "SnapshotProcessor.processSnapshot"
	log := slog.With("op", op, "key", ctx.Key())

	data, ok := msg.([]byte)
	if !ok {
		log.Error("unexpected message", "err", ErrInvalidValueType)
		return
	}
	ctx.SetValue(data)
	log.Debug("snapshot stored", "size", len(data))
}
