package generator

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/segmentio/ksuid"
)

// KSUIDs are 20 bytes, base62 encoded.
const ksuidEncodedLen = 27

// KSUIDGenerator stamps each KSUID with its clock, at one second resolution.
type KSUIDGenerator struct {
	now func() time.Time
}

// NewKSUIDGenerator creates a KSUIDGenerator on the wall clock.
func NewKSUIDGenerator() *KSUIDGenerator {
	return &KSUIDGenerator{now: time.Now}
}

func (g *KSUIDGenerator) Next() (string, error) {
	id, err := ksuid.NewRandomWithTime(g.now())
	if err != nil {
		return "", fmt.Errorf("ksuid: %w", err)
	}
	return id.String(), nil
}

func (g *KSUIDGenerator) Validate(id string) (bool, string) {
	if _, err := g.decode(id); err != nil {
		return false, err.Error()
	}
	return true, ""
}

func (g *KSUIDGenerator) Parse(id string) (*ParseResult, error) {
	k, err := g.decode(id)
	if err != nil {
		return nil, fmt.Errorf("not a ksuid: %w", err)
	}
	return &ParseResult{
		TimestampMs:   k.Time().UnixMilli(),
		RandomPayload: hex.EncodeToString(k.Payload()),
	}, nil
}

func (g *KSUIDGenerator) decode(id string) (ksuid.KSUID, error) {
	if len(id) != ksuidEncodedLen {
		return ksuid.Nil, fmt.Errorf("expected length %d, got %d", ksuidEncodedLen, len(id))
	}
	return ksuid.Parse(id)
}
