package generator

import "github.com/google/uuid"

// Source produces the next identifier of a single kind.
type Source interface {
	Next() (string, error)
}

// NameSource derives deterministic identifiers from a namespace and a name.
type NameSource interface {
	Derive(namespace uuid.UUID, name string) string
}

// PrefixSource produces identifiers that embed a caller supplied prefix.
type PrefixSource interface {
	NextWithPrefix(prefix string) (string, error)
}

// Inspector validates and decodes identifiers of one kind.
type Inspector interface {
	Validate(id string) (bool, string) // (valid, reason)
	Parse(id string) (*ParseResult, error)
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func() (string, error)

func (f SourceFunc) Next() (string, error) { return f() }

// ParseResult holds the parsed fields from an ID.
type ParseResult struct {
	TimestampMs   int64  `json:"timestamp_ms,omitempty"`   // time-based kinds: absolute unix ms
	MachineID     int64  `json:"machine_id,omitempty"`     // Snowflake/Sonyflake
	Sequence      int64  `json:"sequence,omitempty"`       // Snowflake/Sonyflake
	UUIDVersion   int32  `json:"uuid_version,omitempty"`   // UUID only
	UUIDVariant   string `json:"uuid_variant,omitempty"`   // UUID only ("RFC4122")
	RandomPayload string `json:"random_payload,omitempty"` // hex-encoded random bytes
	IDLength      int32  `json:"id_length,omitempty"`      // NanoID/CUID2: ID string length
	Alphabet      string `json:"alphabet,omitempty"`       // NanoID: character set used
}
