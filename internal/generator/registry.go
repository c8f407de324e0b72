package generator

import (
	"errors"
	"fmt"
	"time"

	"github.com/weiawesome/uidgen/internal/kind"
)

// Config carries the tunables of the generators that need them.
type Config struct {
	UUIDNodeID         string
	SnowflakeMachineID int64
	SnowflakeEpoch     int64
	SonyflakeMachineID uint16
	SonyflakeStartTime time.Time
	TSIDNode           int64
	NanoIDSize         int
	NanoIDAlphabet     string
	CUID2Length        int
	FlexIDEpoch        time.Time
	FlexIDTick         time.Duration
	FlexIDRandomChars  int
}

// Defaults and bounds of the tunable generators.
const (
	DefaultNanoIDSize     = 21
	DefaultNanoIDAlphabet = "_-0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	DefaultCUID2Length    = 24

	MinNanoIDSize          = 1
	MaxNanoIDSize          = 256
	MinNanoIDAlphabet      = 2
	MaxNanoIDAlphabetBytes = 255
	MinCUID2Length         = 2
	MaxCUID2Length         = 32
)

// DefaultConfig returns the defaults used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		SnowflakeMachineID: 1,
		SnowflakeEpoch:     DefaultSnowflakeEpoch,
		SonyflakeMachineID: 1,
		TSIDNode:           1,
		NanoIDSize:         DefaultNanoIDSize,
		NanoIDAlphabet:     DefaultNanoIDAlphabet,
		CUID2Length:        DefaultCUID2Length,
		FlexIDEpoch:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		FlexIDTick:         10 * time.Millisecond,
		FlexIDRandomChars:  3,
	}
}

// Validate reports every out of range setting at once.
func (c Config) Validate() error {
	return errors.Join(c.checkNanoID(), c.checkCUID2())
}

func (c Config) checkNanoID() error {
	if c.NanoIDSize < MinNanoIDSize || c.NanoIDSize > MaxNanoIDSize {
		return fmt.Errorf("nanoid size must be between %d and %d, got %d", MinNanoIDSize, MaxNanoIDSize, c.NanoIDSize)
	}
	seen := make(map[rune]bool)
	for _, r := range c.NanoIDAlphabet {
		if seen[r] {
			return fmt.Errorf("nanoid alphabet repeats %q", r)
		}
		seen[r] = true
	}
	if len(seen) < MinNanoIDAlphabet {
		return fmt.Errorf("nanoid alphabet must have at least %d characters, got %d", MinNanoIDAlphabet, len(seen))
	}
	// nanoid bounds the encoded alphabet, not its rune count.
	if len(c.NanoIDAlphabet) > MaxNanoIDAlphabetBytes {
		return fmt.Errorf("nanoid alphabet exceeds %d bytes", MaxNanoIDAlphabetBytes)
	}
	return nil
}

func (c Config) checkCUID2() error {
	if c.CUID2Length < MinCUID2Length || c.CUID2Length > MaxCUID2Length {
		return fmt.Errorf("cuid2 length must be between %d and %d, got %d", MinCUID2Length, MaxCUID2Length, c.CUID2Length)
	}
	return nil
}

// Registry binds every kind to the instance that produces it. Each instance
// is owned by the registry; nothing is shared through package globals except
// what the underlying libraries keep privately.
type Registry struct {
	Sources    map[kind.Kind]Source
	Named      map[kind.Kind]NameSource
	Prefixed   map[kind.Kind]PrefixSource
	Inspectors map[kind.Kind]Inspector
	// Namespaces supplies substitute namespaces for name-based kinds.
	Namespaces Source
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		Sources:    make(map[kind.Kind]Source),
		Named:      make(map[kind.Kind]NameSource),
		Prefixed:   make(map[kind.Kind]PrefixSource),
		Inspectors: make(map[kind.Kind]Inspector),
	}
}

// Build constructs one generator per kind from cfg.
func Build(cfg Config) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := SetUUIDNodeID(cfg.UUIDNodeID); err != nil {
		return nil, err
	}

	r := NewRegistry()

	for k, v := range map[kind.Kind]int{kind.UUIDv1: 1, kind.UUIDv4: 4, kind.UUIDv6: 6, kind.UUIDv7: 7} {
		g, err := NewUUIDGenerator(v)
		if err != nil {
			return nil, err
		}
		r.add(k, g)
	}
	for k, v := range map[kind.Kind]int{kind.UUIDv3: 3, kind.UUIDv5: 5} {
		g, err := NewUUIDNameGenerator(v)
		if err != nil {
			return nil, err
		}
		r.Named[k] = g
		r.Inspectors[k] = g
	}
	r.Namespaces = r.Sources[kind.UUIDv4]

	r.add(kind.NilUUID, NewConstantGenerator(kind.NilLiteral))
	r.add(kind.MaxUUID, NewConstantGenerator(kind.MaxLiteral))
	r.add(kind.ShortUUID, NewShortUUIDGenerator())
	r.add(kind.ULID, NewULIDGenerator())
	r.add(kind.KSUID, NewKSUIDGenerator())
	r.add(kind.CUID, NewCUIDGenerator())
	r.add(kind.NUID, NewNUIDGenerator())
	r.add(kind.SCRU128, NewSCRU128Generator())
	r.add(kind.ObjectID, NewObjectIDGenerator())
	r.Prefixed[kind.UPID] = NewUPIDGenerator()

	nanoid, err := NewNanoIDGenerator(cfg)
	if err != nil {
		return nil, err
	}
	r.add(kind.NanoID, nanoid)

	cuid2, err := NewCUID2Generator(cfg)
	if err != nil {
		return nil, err
	}
	r.add(kind.CUID2, cuid2)

	snowflake, err := NewSnowflakeGenerator(cfg.SnowflakeMachineID, cfg.SnowflakeEpoch)
	if err != nil {
		return nil, err
	}
	r.add(kind.Snowflake, snowflake)

	sonyflake, err := NewSonyflakeGenerator(cfg.SonyflakeMachineID, cfg.SonyflakeStartTime)
	if err != nil {
		return nil, err
	}
	r.add(kind.Sonyflake, sonyflake)

	tsid, err := NewTSIDGenerator(cfg.TSIDNode)
	if err != nil {
		return nil, err
	}
	r.add(kind.TSID, tsid)

	flexid, err := NewFlexIDGenerator(cfg.FlexIDEpoch, cfg.FlexIDTick, cfg.FlexIDRandomChars)
	if err != nil {
		return nil, err
	}
	r.add(kind.FlexID, flexid)

	for _, k := range kind.All() {
		if !r.Has(k) {
			return nil, fmt.Errorf("no generator registered for %s", k)
		}
	}
	return r, nil
}

// Has reports whether any generator is bound to k.
func (r *Registry) Has(k kind.Kind) bool {
	if _, ok := r.Sources[k]; ok {
		return true
	}
	if _, ok := r.Named[k]; ok {
		return true
	}
	_, ok := r.Prefixed[k]
	return ok
}

// add registers s and, when it can decode its own output, its inspector.
func (r *Registry) add(k kind.Kind, s Source) {
	r.Sources[k] = s
	if in, ok := s.(Inspector); ok {
		r.Inspectors[k] = in
	}
}
