package generator

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"
)

const (
	timestampBits = 41
	machineIDBits = 10
	sequenceBits  = 12

	maxMachineID = (1 << machineIDBits) - 1 // 1023
	maxSequence  = (1 << sequenceBits) - 1  // 4095

	machineIDShift = sequenceBits
	timestampShift = sequenceBits + machineIDBits
)

// DefaultSnowflakeEpoch is 2024-01-01T00:00:00Z in unix milliseconds.
const DefaultSnowflakeEpoch int64 = 1704067200000

var (
	ErrClockBackwards = errors.New("clock moved backwards")
	ErrBeforeEpoch    = errors.New("current time is before custom epoch")
)

// SnowflakeGenerator generates 64-bit snowflake IDs.
// Layout: 41-bit ms since epoch | 10-bit machine | 12-bit sequence.
type SnowflakeGenerator struct {
	mu        sync.Mutex
	epoch     int64 // custom epoch in ms
	machineID int64 // 10-bit machine ID
	sequence  int64 // 12-bit sequence
	lastTime  int64 // last generation timestamp in ms
	now       func() int64
}

// NewSnowflakeGenerator creates a new SnowflakeGenerator.
// machineID must be in range [0, 1023].
// epoch is the custom epoch in unix milliseconds.
func NewSnowflakeGenerator(machineID int64, epoch int64) (*SnowflakeGenerator, error) {
	if machineID < 0 || machineID > maxMachineID {
		return nil, fmt.Errorf("machine_id must be between 0 and %d, got %d", maxMachineID, machineID)
	}
	return &SnowflakeGenerator{
		epoch:     epoch,
		machineID: machineID,
		now:       func() int64 { return time.Now().UnixMilli() },
	}, nil
}

func (g *SnowflakeGenerator) Next() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if now-g.epoch < 0 {
		return "", ErrBeforeEpoch
	}
	if now < g.lastTime {
		return "", fmt.Errorf("%w: current=%d, last=%d", ErrClockBackwards, now, g.lastTime)
	}

	if now == g.lastTime {
		g.sequence = (g.sequence + 1) & maxSequence
		if g.sequence == 0 {
			// Sequence exhausted, wait for next millisecond
			for now <= g.lastTime {
				now = g.now()
			}
		}
	} else {
		g.sequence = 0
	}

	g.lastTime = now

	id := ((now - g.epoch) << timestampShift) | (g.machineID << machineIDShift) | g.sequence
	return strconv.FormatInt(id, 10), nil
}

func (g *SnowflakeGenerator) Validate(id string) (bool, string) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return false, "invalid integer format"
	}
	if n < 0 {
		return false, "id must be a positive integer"
	}

	ts := (n >> timestampShift) & ((1 << timestampBits) - 1)
	if ts+g.epoch > g.now() {
		return false, "timestamp is in the future"
	}
	return true, ""
}

func (g *SnowflakeGenerator) Parse(id string) (*ParseResult, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid integer format: %w", err)
	}
	if n < 0 {
		return nil, fmt.Errorf("id must be a positive integer")
	}

	return &ParseResult{
		TimestampMs: ((n >> timestampShift) & ((1 << timestampBits) - 1)) + g.epoch,
		MachineID:   (n >> machineIDShift) & maxMachineID,
		Sequence:    n & maxSequence,
	}, nil
}
