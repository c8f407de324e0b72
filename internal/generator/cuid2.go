package generator

import (
	"fmt"

	"github.com/nrednav/cuid2"
)

// CUID2Generator wraps a cuid2 generator initialised with a fixed length.
type CUID2Generator struct {
	length int
	next   func() string
}

// NewCUID2Generator uses cfg.CUID2Length.
func NewCUID2Generator(cfg Config) (*CUID2Generator, error) {
	if err := cfg.checkCUID2(); err != nil {
		return nil, err
	}
	next, err := cuid2.Init(cuid2.WithLength(cfg.CUID2Length))
	if err != nil {
		return nil, fmt.Errorf("cuid2: %w", err)
	}
	return &CUID2Generator{length: cfg.CUID2Length, next: next}, nil
}

func (g *CUID2Generator) Next() (string, error) {
	return g.next(), nil
}

// Validate accepts only IDs of the configured length; a shorter CUID2 from
// another generator is reported as such.
func (g *CUID2Generator) Validate(id string) (bool, string) {
	if !cuid2.IsCuid(id) {
		return false, "not a CUID2: want lowercase base36 starting with a letter"
	}
	if len(id) != g.length {
		return false, fmt.Sprintf("expected length %d, got %d", g.length, len(id))
	}
	return true, ""
}

func (g *CUID2Generator) Parse(id string) (*ParseResult, error) {
	if ok, reason := g.Validate(id); !ok {
		return nil, fmt.Errorf("not a cuid2: %s", reason)
	}
	return &ParseResult{IDLength: int32(len(id))}, nil
}
