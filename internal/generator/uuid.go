package generator

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// UUIDGenerator generates time-based (v1, v6, v7) or random (v4) UUIDs.
type UUIDGenerator struct {
	version int
	newUUID func() (uuid.UUID, error)
}

// NewUUIDGenerator creates a new UUIDGenerator for the given version.
func NewUUIDGenerator(version int) (*UUIDGenerator, error) {
	g := &UUIDGenerator{version: version}
	switch version {
	case 1:
		g.newUUID = uuid.NewUUID
	case 4:
		g.newUUID = uuid.NewRandom
	case 6:
		g.newUUID = uuid.NewV6
	case 7:
		g.newUUID = uuid.NewV7
	default:
		return nil, fmt.Errorf("unsupported UUID version %d", version)
	}
	return g, nil
}

func (g *UUIDGenerator) Next() (string, error) {
	id, err := g.newUUID()
	if err != nil {
		return "", fmt.Errorf("failed to generate UUID v%d: %w", g.version, err)
	}
	return id.String(), nil
}

func (g *UUIDGenerator) Validate(id string) (bool, string) {
	return validateUUID(id, g.version)
}

func (g *UUIDGenerator) Parse(id string) (*ParseResult, error) {
	return parseUUID(id)
}

// UUIDNameGenerator derives v3 (MD5) or v5 (SHA-1) UUIDs.
type UUIDNameGenerator struct {
	version int
}

// NewUUIDNameGenerator creates a new UUIDNameGenerator. version must be 3 or 5.
func NewUUIDNameGenerator(version int) (*UUIDNameGenerator, error) {
	if version != 3 && version != 5 {
		return nil, fmt.Errorf("unsupported name-based UUID version %d", version)
	}
	return &UUIDNameGenerator{version: version}, nil
}

func (g *UUIDNameGenerator) Derive(namespace uuid.UUID, name string) string {
	if g.version == 3 {
		return uuid.NewMD5(namespace, []byte(name)).String()
	}
	return uuid.NewSHA1(namespace, []byte(name)).String()
}

func (g *UUIDNameGenerator) Validate(id string) (bool, string) {
	return validateUUID(id, g.version)
}

func (g *UUIDNameGenerator) Parse(id string) (*ParseResult, error) {
	return parseUUID(id)
}

// SetUUIDNodeID pins the node field of v1 and v6 UUIDs. nodeID is hex encoded,
// separators are ignored. An empty value keeps the interface derived node.
func SetUUIDNodeID(nodeID string) error {
	cleaned := strings.NewReplacer(":", "", "-", "").Replace(strings.TrimSpace(nodeID))
	if cleaned == "" {
		return nil
	}
	b, err := hex.DecodeString(cleaned)
	if err != nil {
		return fmt.Errorf("invalid uuid node id %q: %w", nodeID, err)
	}
	if len(b) != 6 {
		return fmt.Errorf("uuid node id must be 6 bytes, got %d", len(b))
	}
	uuid.SetNodeID(b)
	return nil
}

func validateUUID(id string, version int) (bool, string) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return false, fmt.Sprintf("invalid UUID format: %v", err)
	}
	if int(parsed.Version()) != version {
		return false, fmt.Sprintf("expected UUID v%d, got v%d", version, parsed.Version())
	}
	return true, ""
}

func parseUUID(id string) (*ParseResult, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid UUID format: %w", err)
	}

	var variantStr string
	switch parsed.Variant() {
	case uuid.RFC4122:
		variantStr = "RFC4122"
	case uuid.Reserved:
		variantStr = "Reserved"
	case uuid.Microsoft:
		variantStr = "Microsoft"
	case uuid.Future:
		variantStr = "Future"
	default:
		variantStr = "Unknown"
	}

	res := &ParseResult{
		UUIDVersion: int32(parsed.Version()),
		UUIDVariant: variantStr,
	}
	switch parsed.Version() {
	case 1, 6, 7:
		sec, nsec := parsed.Time().UnixTime()
		res.TimestampMs = sec*1000 + nsec/1e6
	}
	return res, nil
}
