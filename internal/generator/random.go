package generator

import (
	"fmt"
	"sync"

	"github.com/lithammer/shortuuid/v4"
	"github.com/lucsky/cuid"
	"github.com/nats-io/nuid"
	"github.com/scru128/go-scru128"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewShortUUIDGenerator returns a Source of base57 encoded v4 UUIDs.
func NewShortUUIDGenerator() Source {
	return SourceFunc(func() (string, error) {
		return shortuuid.New(), nil
	})
}

// NewCUIDGenerator returns a Source of first generation CUIDs.
func NewCUIDGenerator() Source {
	return SourceFunc(func() (string, error) {
		return cuid.New(), nil
	})
}

// NewSCRU128Generator returns a Source of SCRU128 strings. The library keeps
// its own monotonic counter state.
func NewSCRU128Generator() Source {
	return SourceFunc(func() (string, error) {
		return scru128.NewString(), nil
	})
}

// NUIDGenerator generates NATS unique IDs from an owned *nuid.NUID.
type NUIDGenerator struct {
	mu   sync.Mutex
	nuid *nuid.NUID
}

// NewNUIDGenerator creates a new NUIDGenerator.
func NewNUIDGenerator() *NUIDGenerator {
	return &NUIDGenerator{nuid: nuid.New()}
}

func (g *NUIDGenerator) Next() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.nuid.Next(), nil
}

// ObjectIDGenerator generates BSON ObjectIDs as 24 hex characters.
type ObjectIDGenerator struct{}

// NewObjectIDGenerator creates a new ObjectIDGenerator.
func NewObjectIDGenerator() *ObjectIDGenerator {
	return &ObjectIDGenerator{}
}

func (g *ObjectIDGenerator) Next() (string, error) {
	return primitive.NewObjectID().Hex(), nil
}

func (g *ObjectIDGenerator) Validate(id string) (bool, string) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return false, fmt.Sprintf("invalid ObjectID: %v", err)
	}
	return true, ""
}

func (g *ObjectIDGenerator) Parse(id string) (*ParseResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid ObjectID: %w", err)
	}
	return &ParseResult{
		TimestampMs:   oid.Timestamp().UnixMilli(),
		RandomPayload: id[8:],
	}, nil
}

// ConstantGenerator returns the same literal on every call.
type ConstantGenerator struct {
	literal string
}

// NewConstantGenerator creates a new ConstantGenerator.
func NewConstantGenerator(literal string) *ConstantGenerator {
	return &ConstantGenerator{literal: literal}
}

func (g *ConstantGenerator) Next() (string, error) {
	return g.literal, nil
}
