package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/weiawesome/uidgen/internal/dispatch"
	"github.com/weiawesome/uidgen/internal/generator"
	"github.com/weiawesome/uidgen/internal/links"
	pkgconfig "github.com/weiawesome/uidgen/pkg/config"
	"github.com/weiawesome/uidgen/pkg/storage"
)

// DefaultExportDir is where local exports are written unless configured.
const DefaultExportDir = "./exports"

type Config struct {
	Server    ServerConfig
	GRPC      GRPCConfig
	Generate  GenerateConfig
	UUID      UUIDConfig `mapstructure:"uuid"`
	Snowflake SnowflakeConfig
	Sonyflake SonyflakeConfig
	TSID      TSIDConfig   `mapstructure:"tsid"`
	NanoID    NanoIDConfig `mapstructure:"nanoid"`
	CUID2     CUID2Config  `mapstructure:"cuid2"`
	FlexID    FlexIDConfig `mapstructure:"flexid"`
	UPID      UPIDConfig   `mapstructure:"upid"`
	Export    ExportConfig
	Links     links.Config
	Log       LogConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type GRPCConfig struct {
	Host string
	Port int
}

type GenerateConfig struct {
	MaxCount        int  `mapstructure:"max_count"`
	StrictNamespace bool `mapstructure:"strict_namespace"`
}

type UUIDConfig struct {
	NodeID string `mapstructure:"node_id"`
}

type SnowflakeConfig struct {
	MachineID int64 `mapstructure:"machine_id"`
	Epoch     int64
}

type SonyflakeConfig struct {
	MachineID uint16    `mapstructure:"machine_id"`
	StartTime time.Time `mapstructure:"start_time"`
}

type TSIDConfig struct {
	Node int64 `mapstructure:"node"`
}

type NanoIDConfig struct {
	Size     int    `mapstructure:"size"`
	Alphabet string `mapstructure:"alphabet"`
}

type CUID2Config struct {
	Length int `mapstructure:"length"`
}

type FlexIDConfig struct {
	Epoch       time.Time     `mapstructure:"epoch"`
	Tick        time.Duration `mapstructure:"tick"`
	RandomChars int           `mapstructure:"random_chars"`
}

type UPIDConfig struct {
	DefaultPrefix string `mapstructure:"default_prefix"`
}

type ExportConfig struct {
	Driver string              `mapstructure:"driver"` // local | s3
	Local  storage.LocalConfig `mapstructure:"local"`
	S3     storage.S3Config    `mapstructure:"s3"`
}

type LogConfig struct {
	Level  string
	Pretty bool
}

// Load reads ./config/config.yaml (or $UIDGEN_CONFIG_DIR) plus UIDGEN_*
// environment overrides.
func Load() (*Config, error) {
	v, err := pkgconfig.Load(pkgconfig.GetEnv("UIDGEN_CONFIG_DIR", "./config"), "config")
	if err != nil {
		return nil, err
	}
	return FromViper(v)
}

// LoadFile reads an explicit config file plus environment overrides.
func LoadFile(file string) (*Config, error) {
	v, err := pkgconfig.LoadFile(file)
	if err != nil {
		return nil, err
	}
	return FromViper(v)
}

// FromViper applies defaults and env bindings to v and decodes it.
func FromViper(v *viper.Viper) (*Config, error) {
	gen := generator.DefaultConfig()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8090)
	v.SetDefault("grpc.host", "0.0.0.0")
	v.SetDefault("grpc.port", 50053)
	v.SetDefault("generate.max_count", dispatch.DefaultMaxCount)
	v.SetDefault("generate.strict_namespace", false)
	v.SetDefault("uuid.node_id", "")
	v.SetDefault("snowflake.machine_id", gen.SnowflakeMachineID)
	v.SetDefault("snowflake.epoch", gen.SnowflakeEpoch)
	v.SetDefault("sonyflake.machine_id", gen.SonyflakeMachineID)
	v.SetDefault("sonyflake.start_time", time.Time{})
	v.SetDefault("tsid.node", gen.TSIDNode)
	v.SetDefault("nanoid.size", gen.NanoIDSize)
	v.SetDefault("nanoid.alphabet", gen.NanoIDAlphabet)
	v.SetDefault("cuid2.length", gen.CUID2Length)
	v.SetDefault("flexid.epoch", gen.FlexIDEpoch)
	v.SetDefault("flexid.tick", gen.FlexIDTick)
	v.SetDefault("flexid.random_chars", gen.FlexIDRandomChars)
	v.SetDefault("upid.default_prefix", generator.DefaultUPIDPrefix)
	v.SetDefault("export.driver", "local")
	v.SetDefault("export.local.base_path", DefaultExportDir)
	v.SetDefault("export.s3.region", "us-east-1")
	v.SetDefault("links.github", links.DefaultGitHubURL)
	v.SetDefault("links.rfc9562", links.DefaultRFC9562URL)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// Short aliases on top of the UIDGEN_* automatic env.
	v.BindEnv("server.port", "PORT")
	v.BindEnv("grpc.port", "GRPC_PORT")
	v.BindEnv("snowflake.machine_id", "SNOWFLAKE_MACHINE_ID")
	v.BindEnv("sonyflake.machine_id", "SONYFLAKE_MACHINE_ID")
	v.BindEnv("nanoid.size", "NANOID_SIZE")
	v.BindEnv("nanoid.alphabet", "NANOID_ALPHABET")
	v.BindEnv("cuid2.length", "CUID2_LENGTH")
	v.BindEnv("export.s3.access_key_id", "AWS_ACCESS_KEY_ID")
	v.BindEnv("export.s3.secret_access_key", "AWS_SECRET_ACCESS_KEY")

	var cfg Config
	hooks := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hooks); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	switch cfg.Export.Driver {
	case "local", "s3":
	default:
		return nil, fmt.Errorf("unknown export driver %q", cfg.Export.Driver)
	}

	return &cfg, nil
}

// Generator returns the generator settings.
func (c *Config) Generator() generator.Config {
	return generator.Config{
		UUIDNodeID:         c.UUID.NodeID,
		SnowflakeMachineID: c.Snowflake.MachineID,
		SnowflakeEpoch:     c.Snowflake.Epoch,
		SonyflakeMachineID: c.Sonyflake.MachineID,
		SonyflakeStartTime: c.Sonyflake.StartTime,
		TSIDNode:           c.TSID.Node,
		NanoIDSize:         c.NanoID.Size,
		NanoIDAlphabet:     c.NanoID.Alphabet,
		CUID2Length:        c.CUID2.Length,
		FlexIDEpoch:        c.FlexID.Epoch,
		FlexIDTick:         c.FlexID.Tick,
		FlexIDRandomChars:  c.FlexID.RandomChars,
	}
}
