package kind

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknown is returned for a label that names no kind.
var ErrUnknown = errors.New("unknown identifier kind")

// Kind identifies an identifier format.
type Kind string

const (
	UUIDv1    Kind = "uuidv1"
	UUIDv3    Kind = "uuidv3"
	UUIDv4    Kind = "uuidv4"
	UUIDv5    Kind = "uuidv5"
	UUIDv6    Kind = "uuidv6"
	UUIDv7    Kind = "uuidv7"
	ShortUUID Kind = "shortuuid"
	NilUUID   Kind = "niluuid"
	MaxUUID   Kind = "maxuuid"
	ULID      Kind = "ulid"
	UPID      Kind = "upid"
	CUID      Kind = "cuid"
	CUID2     Kind = "cuid2"
	NanoID    Kind = "nanoid"
	NUID      Kind = "nuid"
	TSID      Kind = "tsid"
	SCRU128   Kind = "scru128"
	Snowflake Kind = "snowflake"
	Sonyflake Kind = "sonyflake"
	ObjectID  Kind = "objectid"
	KSUID     Kind = "ksuid"
	FlexID    Kind = "flexid"
)

// Class groups kinds by the inputs their generation needs.
type Class int

const (
	ClassUnknown Class = iota
	ClassConstant
	ClassName
	ClassTime
	ClassRandom
	ClassPrefix
)

func (c Class) String() string {
	switch c {
	case ClassConstant:
		return "constant"
	case ClassName:
		return "name"
	case ClassTime:
		return "time"
	case ClassRandom:
		return "random"
	case ClassPrefix:
		return "prefix"
	default:
		return "unknown"
	}
}

// Literals for the constant kinds.
const (
	NilLiteral = "00000000-0000-0000-0000-000000000000"
	MaxLiteral = "FFFFFFFF-FFFF-FFFF-FFFF-FFFFFFFFFFFF"
)

// Info describes a kind for listings.
type Info struct {
	Kind  Kind   `json:"kind" yaml:"kind"`
	Name  string `json:"name" yaml:"name"`
	Class string `json:"class" yaml:"class"`
}

type entry struct {
	name  string
	class Class
}

// order is the listing order shown to users.
var order = []Kind{
	UUIDv1, UUIDv3, UUIDv4, UUIDv5, UUIDv6, UUIDv7,
	ShortUUID, NilUUID, MaxUUID,
	ULID, UPID, CUID, CUID2, NanoID, NUID, TSID, SCRU128,
	Snowflake, Sonyflake, ObjectID, KSUID, FlexID,
}

var table = map[Kind]entry{
	UUIDv1:    {"UUID v1 (Gregorian Time-based)", ClassTime},
	UUIDv3:    {"UUID v3 (MD5 Name-based)", ClassName},
	UUIDv4:    {"UUID v4 (Random)", ClassRandom},
	UUIDv5:    {"UUID v5 (SHA-1 Name-based)", ClassName},
	UUIDv6:    {"UUID v6 (Reordered Gregorian Time-based)", ClassTime},
	UUIDv7:    {"UUID v7 (Unix Time-based)", ClassTime},
	ShortUUID: {"Short UUID", ClassRandom},
	NilUUID:   {"Nil UUID", ClassConstant},
	MaxUUID:   {"Max UUID", ClassConstant},
	ULID:      {"ULID", ClassTime},
	UPID:      {"UPID", ClassPrefix},
	CUID:      {"CUID", ClassTime},
	CUID2:     {"CUID2", ClassRandom},
	NanoID:    {"Nano ID", ClassRandom},
	NUID:      {"NUID", ClassRandom},
	TSID:      {"TSID", ClassTime},
	SCRU128:   {"SCRU128", ClassTime},
	Snowflake: {"Snowflake", ClassTime},
	Sonyflake: {"Sonyflake", ClassTime},
	ObjectID:  {"Object ID", ClassTime},
	KSUID:     {"KSUID", ClassTime},
	FlexID:    {"FlexID", ClassTime},
}

// Parse resolves a user supplied label, ignoring case and surrounding space.
func Parse(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := table[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknown, s)
	}
	return k, nil
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	_, ok := table[k]
	return ok
}

// Class returns ClassUnknown for unknown kinds.
func (k Kind) Class() Class {
	return table[k].class
}

// DisplayName returns the human readable name, or the key for unknown kinds.
func (k Kind) DisplayName() string {
	if e, ok := table[k]; ok {
		return e.name
	}
	return string(k)
}

func (k Kind) String() string {
	return string(k)
}

// All returns every kind in listing order.
func All() []Kind {
	out := make([]Kind, len(order))
	copy(out, order)
	return out
}

// Infos returns the listing for every kind.
func Infos() []Info {
	infos := make([]Info, 0, len(order))
	for _, k := range order {
		infos = append(infos, Info{
			Kind:  k,
			Name:  k.DisplayName(),
			Class: k.Class().String(),
		})
	}
	return infos
}
