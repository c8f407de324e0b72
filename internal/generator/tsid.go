package generator

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const (
	// TSIDEpoch is 2020-01-01T00:00:00Z in unix milliseconds.
	TSIDEpoch int64 = 1577836800000

	tsidRandomBits  = 22
	tsidNodeBits    = 10
	tsidCounterBits = tsidRandomBits - tsidNodeBits
	tsidMaxNode     = (1 << tsidNodeBits) - 1
	tsidCounterMask = (1 << tsidCounterBits) - 1
	tsidEncodedLen  = 13

	crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"
)

// TSIDGenerator generates time-sorted 64-bit IDs encoded as 13 Crockford
// base32 characters. Layout: 42-bit ms since 2020 | 10-bit node | 12-bit counter.
// The counter starts at a random value every millisecond; when it overflows the
// generator borrows the next millisecond.
type TSIDGenerator struct {
	mu       sync.Mutex
	node     int64
	counter  int64
	lastTime int64
	now      func() int64
	random   io.Reader
}

// NewTSIDGenerator creates a new TSIDGenerator. node must be in [0, 1023].
func NewTSIDGenerator(node int64) (*TSIDGenerator, error) {
	if node < 0 || node > tsidMaxNode {
		return nil, fmt.Errorf("tsid node must be between 0 and %d, got %d", tsidMaxNode, node)
	}
	return &TSIDGenerator{
		node:   node,
		now:    func() int64 { return time.Now().UnixMilli() },
		random: rand.Reader,
	}, nil
}

func (g *TSIDGenerator) Next() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now() - TSIDEpoch
	if now < 0 {
		return "", ErrBeforeEpoch
	}

	if now > g.lastTime {
		var b [2]byte
		if _, err := io.ReadFull(g.random, b[:]); err != nil {
			return "", fmt.Errorf("failed to read tsid entropy: %w", err)
		}
		g.counter = int64(binary.BigEndian.Uint16(b[:])) & tsidCounterMask
		g.lastTime = now
	} else {
		g.counter++
		if g.counter > tsidCounterMask {
			g.counter = 0
			g.lastTime++
		}
	}

	n := g.lastTime<<tsidRandomBits | g.node<<tsidCounterBits | g.counter
	return encodeTSID(uint64(n)), nil
}

func (g *TSIDGenerator) Validate(id string) (bool, string) {
	if _, err := decodeTSID(id); err != nil {
		return false, err.Error()
	}
	return true, ""
}

func (g *TSIDGenerator) Parse(id string) (*ParseResult, error) {
	n, err := decodeTSID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid TSID: %w", err)
	}
	return &ParseResult{
		TimestampMs: int64(n>>tsidRandomBits) + TSIDEpoch,
		MachineID:   int64(n>>tsidCounterBits) & tsidMaxNode,
		Sequence:    int64(n) & tsidCounterMask,
	}, nil
}

func encodeTSID(n uint64) string {
	var b [tsidEncodedLen]byte
	// 64 bits: the first character carries the top 4 bits.
	for i := tsidEncodedLen - 1; i >= 0; i-- {
		b[i] = crockford[n&0x1f]
		n >>= 5
	}
	return string(b[:])
}

func decodeTSID(s string) (uint64, error) {
	if len(s) != tsidEncodedLen {
		return 0, fmt.Errorf("expected length %d, got %d", tsidEncodedLen, len(s))
	}
	var n uint64
	for i, c := range strings.ToUpper(s) {
		v := strings.IndexRune(crockford, c)
		if v < 0 {
			return 0, fmt.Errorf("character '%c' not in alphabet", c)
		}
		if i == 0 && v > 0x0f {
			return 0, fmt.Errorf("value overflows 64 bits")
		}
		n = n<<5 | uint64(v)
	}
	return n, nil
}
