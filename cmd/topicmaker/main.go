package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lovoo/goka"
	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter"
	"github.com/niksmo/storefront/pkg/sigctx"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

const (
	partitions        = 3
	replicationFactor = 3
	minInsyncReplicas = "1"

	cleanupDelete  = "delete"
	cleanupCompact = "compact"
)

type topic struct {
	name          string
	cleanupPolicy string
}

func main() {
	sigCtx, closeApp := sigctx.NotifyContext(context.Background())
	defer closeApp()

	cfg := config.Load()

	cl, err := createClient(cfg)
	if err != nil {
		printFail(err)
		return
	}
	defer cl.Close()

	topics := storefrontTopics(cfg)
	printStart(topics)
	defer printComplete(time.Now())

	if err := makeTopics(sigCtx, cl, topics); err != nil {
		printFail(err)
	}
}

// storefrontTopics lists the order events stream and the kafka state slot
// topics. Snapshots are keyed by slot, so only the latest value per key
// is kept.
func storefrontTopics(cfg config.Config) []topic {
	return []topic{
		{cfg.Broker.Topics.Orders, cleanupDelete},
		{cfg.Broker.Topics.StateSnapshots, cleanupCompact},
		{toGroupTable(cfg.Broker.StateGroup), cleanupCompact},
	}
}

func createClient(cfg config.Config) (*kadm.Client, error) {
	opts := []kgo.Opt{kgo.SeedBrokers(cfg.Broker.SeedBrokers...)}

	if files := cfg.Broker.TLS; files.Enabled() {
		tlsConfig, err := adapter.MakeTLSConfig(files.CA, files.Cert, files.Key)
		if err != nil {
			return nil, err
		}
		opts = append(opts, kgo.DialTLSConfig(tlsConfig))
	}

	return kadm.NewOptClient(opts...)
}

func makeTopics(ctx context.Context, cl *kadm.Client, topics []topic) error {
	var errs []error
	for _, t := range topics {
		policy, minISR := t.cleanupPolicy, minInsyncReplicas
		configs := map[string]*string{
			"cleanup.policy":      &policy,
			"min.insync.replicas": &minISR,
		}

		res, err := cl.CreateTopic(ctx, partitions, replicationFactor, configs, t.name)
		switch {
		case err == nil:
			fmt.Printf("topic: %q successfully created\n", res.Topic)
		case errors.Is(err, kerr.TopicAlreadyExists):
			fmt.Printf("topic: %q already exists\n", t.name)
		default:
			errs = append(errs, fmt.Errorf("%s: %w", t.name, err))
		}
	}
	return errors.Join(errs...)
}

func printStart(topics []topic) {
	fmt.Println("initializing topics...")
	for _, t := range topics {
		fmt.Printf("\t- %q (%s)\n", t.name, t.cleanupPolicy)
	}
	fmt.Println()
}

func printComplete(start time.Time) {
	fmt.Printf("\ncomplete in %s\n", time.Since(start))
}

func printFail(err error) {
	fmt.Printf("failed to create topics: \n%s\n", err)
}

func toGroupTable(group string) string {
	return string(goka.GroupTable(goka.Group(group)))
}
