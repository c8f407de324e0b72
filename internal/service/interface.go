package service

import (
	"context"
	"io"

	"github.com/weiawesome/uidgen/internal/dispatch"
	"github.com/weiawesome/uidgen/internal/export"
	"github.com/weiawesome/uidgen/internal/generator"
	"github.com/weiawesome/uidgen/internal/kind"
	"github.com/weiawesome/uidgen/internal/links"
	"github.com/weiawesome/uidgen/internal/namespace"
	"github.com/weiawesome/uidgen/pkg/storage"
)

// Validation is the outcome of checking one identifier.
type Validation struct {
	Kind   kind.Kind `json:"kind"`
	ID     string    `json:"id"`
	Valid  bool      `json:"valid"`
	Reason string    `json:"reason,omitempty"`
}

// ExportRequest saves IDs, or a freshly generated batch when IDs is empty.
type ExportRequest struct {
	Generate dispatch.Request
	Format   export.Format
	IDs      []string
	FileName string
}

// IDService is the business facade shared by the HTTP, gRPC and CLI surfaces.
type IDService interface {
	Generate(ctx context.Context, req dispatch.Request) (*dispatch.Result, error)
	Kinds(ctx context.Context) []kind.Info
	Namespaces(ctx context.Context) []namespace.Namespace
	Links(ctx context.Context) []links.Link
	Validate(ctx context.Context, k kind.Kind, id string) (*Validation, error)
	Parse(ctx context.Context, k kind.Kind, id string) (*generator.ParseResult, error)
	Export(ctx context.Context, req ExportRequest) (*export.Receipt, error)
	ListExports(ctx context.Context, prefix string) ([]storage.FileInfo, error)
	OpenExport(ctx context.Context, key string) (io.ReadCloser, error)
	MaxCount() int
}
