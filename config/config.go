package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "STOREFRONT_CONFIG_FILE"

const (
	SourceMemory   = "memory"
	SourcePostgres = "postgres"

	SlotMemory = "memory"
	SlotFile   = "file"
	SlotRedis  = "redis"
	SlotKafka  = "kafka"
)

var ErrInvalidConfig = errors.New("invalid config")

type catalog struct {
	HTTPServerAddr string        `mapstructure:"http_server_addr"`
	Latency        time.Duration `mapstructure:"latency"`
	Source         string        `mapstructure:"source"`
	SQLDB          string        `mapstructure:"sql_db"`
	SeedSQL        bool          `mapstructure:"seed_sql"`
	URL            string        `mapstructure:"url"`
}

type storefront struct {
	HTTPServerAddr string `mapstructure:"http_server_addr"`
}

type state struct {
	Slot     string `mapstructure:"slot"`
	Codec    string `mapstructure:"codec"`
	Dir      string `mapstructure:"dir"`
	RedisURL string `mapstructure:"redis_url"`
}

type topics struct {
	StateSnapshots string `mapstructure:"state_snapshots"`
	Orders         string `mapstructure:"orders"`
}

type tlsFiles struct {
	CA   string `mapstructure:"ca"`
	Cert string `mapstructure:"cert"`
	Key  string `mapstructure:"key"`
}

// Enabled reports whether all three files are set.
func (t tlsFiles) Enabled() bool {
	return t.CA != "" && t.Cert != "" && t.Key != ""
}

type broker struct {
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	Topics             topics   `mapstructure:"topics"`
	StateGroup         string   `mapstructure:"state_group"`
	PublishOrders      bool     `mapstructure:"publish_orders"`
	TLS                tlsFiles `mapstructure:"tls"`
}

type Config struct {
	LogLevel   slog.Level `mapstructure:"log_level"`
	Catalog    catalog    `mapstructure:"catalog"`
	Storefront storefront `mapstructure:"storefront"`
	State      state      `mapstructure:"state"`
	Broker     broker     `mapstructure:"broker"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")

	v.SetDefault("catalog.http_server_addr", ":3001")
	v.SetDefault("catalog.latency", 800*time.Millisecond)
	v.SetDefault("catalog.source", SourceMemory)
	v.SetDefault("catalog.sql_db", "")
	v.SetDefault("catalog.seed_sql", false)
	v.SetDefault("catalog.url", "http://127.0.0.1:3001")

	v.SetDefault("storefront.http_server_addr", ":3000")

	v.SetDefault("state.slot", SlotMemory)
	v.SetDefault("state.codec", "json")
	v.SetDefault("state.dir", "./data")
	v.SetDefault("state.redis_url", "redis://127.0.0.1:6379/0")

	v.SetDefault("broker.seed_brokers", []string{"127.0.0.1:9094"})
	v.SetDefault("broker.schema_registry_urls", []string{"http://127.0.0.1:8081"})
	v.SetDefault("broker.topics.state_snapshots", "storefront-state-snapshots")
	v.SetDefault("broker.topics.orders", "storefront-orders")
	v.SetDefault("broker.state_group", "storefront-state")
	v.SetDefault("broker.publish_orders", false)
	v.SetDefault("broker.tls.ca", "")
	v.SetDefault("broker.tls.cert", "")
	v.SetDefault("broker.tls.key", "")
}

// Load reads the file named by --config or STOREFRONT_CONFIG_FILE and exits
// the process on failure.
func Load() Config {
	cfg, err := LoadFile(getConfigFilepath())
	if err != nil {
		die(err)
	}
	return cfg
}

func LoadFile(path string) (Config, error) {
	const op = "config.LoadFile"

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}

	var cfg Config
	err := v.UnmarshalExact(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if !slices.Contains([]string{SourceMemory, SourcePostgres}, c.Catalog.Source) {
		errs = append(errs, fmt.Errorf("catalog.source: unknown %q", c.Catalog.Source))
	}
	if c.Catalog.Source == SourcePostgres && c.Catalog.SQLDB == "" {
		errs = append(errs, errors.New("catalog.sql_db: required for postgres source"))
	}
	if c.Catalog.Latency < 0 {
		errs = append(errs, errors.New("catalog.latency: negative"))
	}

	slots := []string{SlotMemory, SlotFile, SlotRedis, SlotKafka}
	if !slices.Contains(slots, c.State.Slot) {
		errs = append(errs, fmt.Errorf("state.slot: unknown %q", c.State.Slot))
	}
	if !slices.Contains([]string{"json", "avro"}, c.State.Codec) {
		errs = append(errs, fmt.Errorf("state.codec: unknown %q", c.State.Codec))
	}

	usesBroker := c.State.Slot == SlotKafka || c.Broker.PublishOrders
	if usesBroker && len(c.Broker.SeedBrokers) == 0 {
		errs = append(errs, errors.New("broker.seed_brokers: required"))
	}
	if c.Broker.PublishOrders && len(c.Broker.SchemaRegistryURLs) == 0 {
		errs = append(errs, errors.New("broker.schema_registry_urls: required"))
	}

	if len(errs) != 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	template := `
	General:
	LogLevel=%q

	Catalog:
	HTTPServerAddr=%q
	Latency=%q
	Source=%q
	SeedSQL=%t
	URL=%q

	Storefront:
	HTTPServerAddr=%q

	State:
	Slot=%q
	Codec=%q
	Dir=%q

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	StateGroup=%q
	PublishOrders=%t
	TLS=%t
	Topics:
		StateSnapshots=%q
		Orders=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(template, "\n"),
		c.LogLevel,
		c.Catalog.HTTPServerAddr,
		c.Catalog.Latency,
		c.Catalog.Source,
		c.Catalog.SeedSQL,
		c.Catalog.URL,
		c.Storefront.HTTPServerAddr,
		c.State.Slot,
		c.State.Codec,
		c.State.Dir,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.StateGroup,
		c.Broker.PublishOrders,
		c.Broker.TLS.Enabled(),
		c.Broker.Topics.StateSnapshots,
		c.Broker.Topics.Orders,
	)
}
