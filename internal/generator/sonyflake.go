package generator

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sony/sonyflake"
)

// sonyflake counts time in 10ms units.
const sonyflakeTimeUnitMs = 10

// SonyflakeGenerator generates Sonyflake IDs from an owned *sonyflake.Sonyflake.
type SonyflakeGenerator struct {
	sf        *sonyflake.Sonyflake
	startTime time.Time
}

// NewSonyflakeGenerator creates a new SonyflakeGenerator. A zero startTime
// selects the library default (2014-09-01 UTC). The machine id is taken from
// configuration rather than the host's private IP.
func NewSonyflakeGenerator(machineID uint16, startTime time.Time) (*SonyflakeGenerator, error) {
	sf, err := sonyflake.New(sonyflake.Settings{
		StartTime: startTime,
		MachineID: func() (uint16, error) { return machineID, nil },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init sonyflake: %w", err)
	}
	if startTime.IsZero() {
		startTime = time.Date(2014, 9, 1, 0, 0, 0, 0, time.UTC)
	}
	return &SonyflakeGenerator{sf: sf, startTime: startTime}, nil
}

func (g *SonyflakeGenerator) Next() (string, error) {
	id, err := g.sf.NextID()
	if err != nil {
		return "", fmt.Errorf("failed to generate Sonyflake: %w", err)
	}
	return strconv.FormatUint(id, 10), nil
}

func (g *SonyflakeGenerator) Validate(id string) (bool, string) {
	if _, err := strconv.ParseUint(id, 10, 64); err != nil {
		return false, "invalid integer format"
	}
	return true, ""
}

func (g *SonyflakeGenerator) Parse(id string) (*ParseResult, error) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid integer format: %w", err)
	}

	parts := sonyflake.Decompose(n)
	return &ParseResult{
		TimestampMs: g.startTime.UnixMilli() + int64(parts["time"])*sonyflakeTimeUnitMs,
		MachineID:   int64(parts["machine-id"]),
		Sequence:    int64(parts["sequence"]),
	}, nil
}
