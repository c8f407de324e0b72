package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/weiawesome/uidgen/internal/config"
	"github.com/weiawesome/uidgen/internal/dispatch"
	"github.com/weiawesome/uidgen/internal/export"
	"github.com/weiawesome/uidgen/internal/generator"
	"github.com/weiawesome/uidgen/internal/links"
	"github.com/weiawesome/uidgen/internal/service"
	pkglog "github.com/weiawesome/uidgen/pkg/log"
	"github.com/weiawesome/uidgen/pkg/storage"
)

// App wires every component a command may need.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Registry *generator.Registry
	Exporter *export.Exporter
	Links    *links.Links
	Service  service.IDService

	Stdout io.Writer
	Stderr io.Writer
}

// NewApp loads configuration from configFile (or the default locations when
// empty) and builds the application. Logs go to stderr.
func NewApp(ctx context.Context, configFile string) (*App, error) {
	var (
		cfg *config.Config
		err error
	)
	if configFile != "" {
		cfg, err = config.LoadFile(configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	pkglog.Init(pkglog.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Pretty,
		ServiceName: "uidgen",
		Output:      os.Stderr,
	})

	return Build(ctx, cfg, pkglog.L(), os.Stdout, os.Stderr)
}

// Build assembles an App from an already loaded configuration.
func Build(ctx context.Context, cfg *config.Config, logger zerolog.Logger, stdout, stderr io.Writer) (*App, error) {
	reg, err := generator.Build(cfg.Generator())
	if err != nil {
		return nil, fmt.Errorf("failed to build generators: %w", err)
	}

	store, err := newStorage(ctx, cfg.Export)
	if err != nil {
		return nil, err
	}

	exporter := export.NewExporter(store)
	l := links.New(cfg.Links)
	d := dispatch.New(reg,
		dispatch.WithMaxCount(cfg.Generate.MaxCount),
		dispatch.WithStrictNamespace(cfg.Generate.StrictNamespace),
	)

	return &App{
		Config:   cfg,
		Logger:   logger,
		Registry: reg,
		Exporter: exporter,
		Links:    l,
		Service:  service.NewIDService(reg, d, exporter, l),
		Stdout:   stdout,
		Stderr:   stderr,
	}, nil
}

func newStorage(ctx context.Context, cfg config.ExportConfig) (storage.Storage, error) {
	switch cfg.Driver {
	case "s3":
		s, err := storage.NewS3Storage(ctx, cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("failed to create s3 storage: %w", err)
		}
		return s, nil
	default:
		s, err := storage.NewLocalStorage(cfg.Local)
		if err != nil {
			return nil, fmt.Errorf("failed to create local storage: %w", err)
		}
		return s, nil
	}
}

// fileExporter returns an exporter rooted at the directory of path and the
// key of path inside it, so --out accepts absolute and relative paths.
func fileExporter(path string) (*export.Exporter, string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", err
	}
	store, err := storage.NewLocalStorage(storage.LocalConfig{BasePath: filepath.Dir(abs)})
	if err != nil {
		return nil, "", err
	}
	return export.NewExporter(store), filepath.Base(abs), nil
}

// Context returns a context carrying the app logger.
func (a *App) Context(ctx context.Context) context.Context {
	return pkglog.WithLogger(ctx, a.Logger)
}

// Fatal prints err and exits non-zero.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
