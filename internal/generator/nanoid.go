package generator

import (
	"fmt"
	"unicode/utf8"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// NanoIDGenerator draws fixed size IDs from a configured alphabet.
type NanoIDGenerator struct {
	size     int
	alphabet string
	allowed  map[rune]struct{}
}

// NewNanoIDGenerator uses cfg.NanoIDSize and cfg.NanoIDAlphabet.
func NewNanoIDGenerator(cfg Config) (*NanoIDGenerator, error) {
	if err := cfg.checkNanoID(); err != nil {
		return nil, err
	}
	allowed := make(map[rune]struct{}, len(cfg.NanoIDAlphabet))
	for _, r := range cfg.NanoIDAlphabet {
		allowed[r] = struct{}{}
	}
	return &NanoIDGenerator{
		size:     cfg.NanoIDSize,
		alphabet: cfg.NanoIDAlphabet,
		allowed:  allowed,
	}, nil
}

func (g *NanoIDGenerator) Next() (string, error) {
	id, err := gonanoid.Generate(g.alphabet, g.size)
	if err != nil {
		return "", fmt.Errorf("nanoid: %w", err)
	}
	return id, nil
}

// Validate counts characters, not bytes, so multi-byte alphabets work.
func (g *NanoIDGenerator) Validate(id string) (bool, string) {
	if n := utf8.RuneCountInString(id); n != g.size {
		return false, fmt.Sprintf("expected length %d, got %d", g.size, n)
	}
	pos := 0
	for _, r := range id {
		if _, ok := g.allowed[r]; !ok {
			return false, fmt.Sprintf("character %q at position %d is not in the alphabet", r, pos)
		}
		pos++
	}
	return true, ""
}

func (g *NanoIDGenerator) Parse(id string) (*ParseResult, error) {
	if ok, reason := g.Validate(id); !ok {
		return nil, fmt.Errorf("not a nanoid: %s", reason)
	}
	return &ParseResult{
		IDLength: int32(g.size),
		Alphabet: g.alphabet,
	}, nil
}
