package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/weiawesome/uidgen/internal/dispatch"
	"github.com/weiawesome/uidgen/internal/export"
	"github.com/weiawesome/uidgen/internal/generator"
	"github.com/weiawesome/uidgen/internal/kind"
	"github.com/weiawesome/uidgen/internal/links"
	"github.com/weiawesome/uidgen/internal/namespace"
	"github.com/weiawesome/uidgen/pkg/log"
	"github.com/weiawesome/uidgen/pkg/storage"
)

var (
	ErrUnsupported = errors.New("kind cannot be inspected")
	ErrInvalidID   = errors.New("invalid identifier")
	ErrNoExporter  = errors.New("export storage is not configured")
)

// idServiceImpl implements IDService.
type idServiceImpl struct {
	dispatcher *dispatch.Dispatcher
	inspectors map[kind.Kind]generator.Inspector
	exporter   *export.Exporter
	links      *links.Links
}

// NewIDService creates the facade. exporter may be nil when nothing is
// ever saved.
func NewIDService(reg *generator.Registry, dispatcher *dispatch.Dispatcher, exporter *export.Exporter, l *links.Links) IDService {
	return &idServiceImpl{
		dispatcher: dispatcher,
		inspectors: reg.Inspectors,
		exporter:   exporter,
		links:      l,
	}
}

// Generate runs one batch.
func (s *idServiceImpl) Generate(ctx context.Context, req dispatch.Request) (*dispatch.Result, error) {
	res, err := s.dispatcher.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	if res.NamespaceSubstituted {
		l := log.Ctx(ctx)
		l.Info().
			Str(log.FieldKind, req.Kind.String()).
			Str(log.FieldNamespace, req.Namespace).
			Msg("batch used substitute namespaces")
	}
	return res, nil
}

func (s *idServiceImpl) Kinds(ctx context.Context) []kind.Info {
	return kind.Infos()
}

func (s *idServiceImpl) Namespaces(ctx context.Context) []namespace.Namespace {
	return namespace.All()
}

func (s *idServiceImpl) Links(ctx context.Context) []links.Link {
	return s.links.All()
}

func (s *idServiceImpl) MaxCount() int {
	return s.dispatcher.MaxCount()
}

func (s *idServiceImpl) inspector(k kind.Kind) (generator.Inspector, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %q", kind.ErrUnknown, k)
	}
	in, ok := s.inspectors[k]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, k)
	}
	return in, nil
}

// Validate reports whether id is well formed for k.
func (s *idServiceImpl) Validate(ctx context.Context, k kind.Kind, id string) (*Validation, error) {
	in, err := s.inspector(k)
	if err != nil {
		return nil, err
	}
	valid, reason := in.Validate(id)
	return &Validation{Kind: k, ID: id, Valid: valid, Reason: reason}, nil
}

// Parse decodes the fields embedded in id.
func (s *idServiceImpl) Parse(ctx context.Context, k kind.Kind, id string) (*generator.ParseResult, error) {
	in, err := s.inspector(k)
	if err != nil {
		return nil, err
	}
	res, err := in.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidID, err)
	}
	return res, nil
}

// Export saves req.IDs, generating them first when none are given.
func (s *idServiceImpl) Export(ctx context.Context, req ExportRequest) (*export.Receipt, error) {
	if s.exporter == nil {
		return nil, ErrNoExporter
	}
	if !req.Generate.Kind.Valid() {
		return nil, fmt.Errorf("%w: %q", kind.ErrUnknown, req.Generate.Kind)
	}
	if req.FileName != "" && !export.IsExportKey(req.FileName) {
		return nil, fmt.Errorf("%w: %q", export.ErrInvalidKey, req.FileName)
	}

	ids := req.IDs
	if len(ids) == 0 {
		res, err := s.Generate(ctx, req.Generate)
		if err != nil {
			return nil, err
		}
		ids = res.IDs
	}

	return s.exporter.Export(ctx, req.Generate.Kind, req.Format, ids, req.FileName)
}

// ListExports returns saved exports.
func (s *idServiceImpl) ListExports(ctx context.Context, prefix string) ([]storage.FileInfo, error) {
	if s.exporter == nil {
		return nil, ErrNoExporter
	}
	return s.exporter.List(ctx, prefix)
}

// OpenExport returns a reader over a saved export.
func (s *idServiceImpl) OpenExport(ctx context.Context, key string) (io.ReadCloser, error) {
	if s.exporter == nil {
		return nil, ErrNoExporter
	}
	return s.exporter.Open(ctx, key)
}
