package generator

import (
	"fmt"
	"sync"
	"time"

	fid "github.com/amterp/flexid"
)

// FlexIDGenerator generates short, time ordered flexid IDs.
type FlexIDGenerator struct {
	mu  sync.Mutex
	gen *fid.Generator
}

// NewFlexIDGenerator creates a new FlexIDGenerator. randomChars must be
// between 0 and 8.
func NewFlexIDGenerator(epoch time.Time, tick time.Duration, randomChars int) (*FlexIDGenerator, error) {
	if randomChars < 0 || randomChars > 8 {
		return nil, fmt.Errorf("flexid random chars must be between 0 and 8, got %d", randomChars)
	}
	if tick <= 0 {
		return nil, fmt.Errorf("flexid tick must be positive, got %s", tick)
	}
	config := fid.NewConfig().
		WithEpoch(epoch).
		WithTickSize(tick).
		WithNumRandomChars(randomChars)

	return &FlexIDGenerator{gen: fid.MustNewGenerator(config)}, nil
}

func (g *FlexIDGenerator) Next() (id string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to generate FlexID: %v", r)
		}
	}()
	return g.gen.MustGenerate(), nil
}
