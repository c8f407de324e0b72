package generator

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates ULID (Universally Unique Lexicographically Sortable Identifier) IDs.
// IDs minted within the same millisecond increase monotonically.
type ULIDGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

func (g *ULIDGenerator) Next() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(g.now()), g.entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate ULID: %w", err)
	}
	return id.String(), nil
}

func (g *ULIDGenerator) Validate(id string) (bool, string) {
	if len(id) != ulid.EncodedSize {
		return false, fmt.Sprintf("expected length %d, got %d", ulid.EncodedSize, len(id))
	}
	if _, err := ulid.ParseStrict(id); err != nil {
		return false, fmt.Sprintf("invalid ULID format: %v", err)
	}
	return true, ""
}

func (g *ULIDGenerator) Parse(id string) (*ParseResult, error) {
	parsed, err := ulid.ParseStrict(id)
	if err != nil {
		return nil, fmt.Errorf("invalid ULID format: %w", err)
	}

	return &ParseResult{
		TimestampMs:   int64(parsed.Time()),
		RandomPayload: hex.EncodeToString(parsed.Entropy()),
	}, nil
}
