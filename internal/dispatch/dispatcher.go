// Package dispatch turns a batch request into a list of identifiers by
// routing it to the generator bound to the requested kind.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/weiawesome/uidgen/internal/generator"
	"github.com/weiawesome/uidgen/internal/kind"
	"github.com/weiawesome/uidgen/internal/namespace"
	pkglog "github.com/weiawesome/uidgen/pkg/log"
)

// DefaultMaxCount is the largest batch accepted unless configured otherwise.
const DefaultMaxCount = 500

var (
	ErrUnknownKind      = kind.ErrUnknown
	ErrInvalidCount     = errors.New("count must not be negative")
	ErrCountTooLarge    = errors.New("count exceeds the batch limit")
	ErrInvalidNamespace = errors.New("invalid namespace")
	ErrGenerate         = errors.New("identifier generation failed")
)

// Request describes one batch.
type Request struct {
	Kind      kind.Kind
	Namespace string
	Name      string
	Prefix    string
	Count     int
}

// Result is the outcome of a batch. IDs is never nil.
type Result struct {
	Kind kind.Kind `json:"kind" yaml:"kind"`
	IDs  []string  `json:"ids" yaml:"ids"`
	// NamespaceSubstituted is set when an unparsable namespace was replaced
	// by random ones.
	NamespaceSubstituted bool `json:"namespace_substituted,omitempty" yaml:"namespace_substituted,omitempty"`
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithMaxCount sets the batch limit. Values below 1 keep the default.
func WithMaxCount(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.maxCount = n
		}
	}
}

// WithStrictNamespace makes an unparsable namespace an error instead of
// substituting random namespaces.
func WithStrictNamespace(strict bool) Option {
	return func(d *Dispatcher) { d.strict = strict }
}

// Dispatcher is synchronous; it holds no per-request state.
type Dispatcher struct {
	reg      *generator.Registry
	maxCount int
	strict   bool
}

// New binds a dispatcher to the generators in reg.
func New(reg *generator.Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{reg: reg, maxCount: DefaultMaxCount}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// MaxCount returns the configured batch limit.
func (d *Dispatcher) MaxCount() int { return d.maxCount }

// Generate produces exactly req.Count identifiers of req.Kind, except for
// name-based kinds given an empty name or namespace, which yield none.
func (d *Dispatcher) Generate(ctx context.Context, req Request) (*Result, error) {
	if !req.Kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, req.Kind)
	}
	if req.Count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, req.Count)
	}
	if req.Count > d.maxCount {
		return nil, fmt.Errorf("%w: %d > %d", ErrCountTooLarge, req.Count, d.maxCount)
	}

	var (
		ids         []string
		substituted bool
		err         error
	)
	switch req.Kind.Class() {
	case kind.ClassConstant:
		ids, err = d.constant(req)
	case kind.ClassName:
		ids, substituted, err = d.named(ctx, req)
	case kind.ClassPrefix:
		ids, err = d.prefixed(req)
	case kind.ClassTime, kind.ClassRandom:
		ids, err = d.sequential(req)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, req.Kind)
	}
	if err != nil {
		return nil, err
	}

	l := pkglog.Ctx(ctx)
	l.Debug().Str(pkglog.FieldKind, req.Kind.String()).Int(pkglog.FieldCount, len(ids)).Msg("batch generated")
	return &Result{Kind: req.Kind, IDs: ids, NamespaceSubstituted: substituted}, nil
}

func (d *Dispatcher) source(k kind.Kind) (generator.Source, error) {
	s, ok := d.reg.Sources[k]
	if !ok {
		return nil, fmt.Errorf("%w: no generator bound to %s", ErrUnknownKind, k)
	}
	return s, nil
}

func (d *Dispatcher) constant(req Request) ([]string, error) {
	ids := make([]string, 0, req.Count)
	if req.Count == 0 {
		return ids, nil
	}
	s, err := d.source(req.Kind)
	if err != nil {
		return nil, err
	}
	lit, err := s.Next()
	if err != nil {
		return nil, generateError(req.Kind, err)
	}
	for i := 0; i < req.Count; i++ {
		ids = append(ids, lit)
	}
	return ids, nil
}

func (d *Dispatcher) sequential(req Request) ([]string, error) {
	s, err := d.source(req.Kind)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		id, err := s.Next()
		if err != nil {
			return nil, generateError(req.Kind, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (d *Dispatcher) prefixed(req Request) ([]string, error) {
	s, ok := d.reg.Prefixed[req.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: no generator bound to %s", ErrUnknownKind, req.Kind)
	}
	ids := make([]string, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		id, err := s.NextWithPrefix(req.Prefix)
		if err != nil {
			return nil, generateError(req.Kind, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (d *Dispatcher) named(ctx context.Context, req Request) ([]string, bool, error) {
	s, ok := d.reg.Named[req.Kind]
	if !ok {
		return nil, false, fmt.Errorf("%w: no generator bound to %s", ErrUnknownKind, req.Kind)
	}
	ids := make([]string, 0, req.Count)
	if req.Name == "" || strings.TrimSpace(req.Namespace) == "" {
		return ids, false, nil
	}

	ns, err := namespace.Resolve(req.Namespace)
	if err == nil {
		id := s.Derive(ns, req.Name)
		for i := 0; i < req.Count; i++ {
			ids = append(ids, id)
		}
		return ids, false, nil
	}
	if d.strict {
		return nil, false, fmt.Errorf("%w: %q", ErrInvalidNamespace, req.Namespace)
	}

	l := pkglog.Ctx(ctx)
	l.Warn().
		Str(pkglog.FieldKind, req.Kind.String()).
		Str(pkglog.FieldNamespace, req.Namespace).
		Msg("namespace is not a uuid, substituting random namespaces")

	for i := 0; i < req.Count; i++ {
		sub, err := d.randomNamespace()
		if err != nil {
			return nil, false, generateError(req.Kind, err)
		}
		ids = append(ids, s.Derive(sub, req.Name))
	}
	return ids, true, nil
}

func (d *Dispatcher) randomNamespace() (uuid.UUID, error) {
	if d.reg.Namespaces == nil {
		return uuid.NewRandom()
	}
	raw, err := d.reg.Namespaces.Next()
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(raw)
}

func generateError(k kind.Kind, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrGenerate, k, err)
}
