package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/amterp/ra"

	"github.com/weiawesome/uidgen/internal/client"
	"github.com/weiawesome/uidgen/internal/dispatch"
	"github.com/weiawesome/uidgen/internal/export"
	"github.com/weiawesome/uidgen/internal/kind"
	pkglog "github.com/weiawesome/uidgen/pkg/log"
)

func registerGen(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("gen")
	cmd.SetDescription("Generate a batch of identifiers")

	ctx.GenKind, _ = ra.NewString("kind").
		SetUsage("Identifier kind (see 'uidgen kinds')").
		Register(cmd)

	ctx.GenCount, _ = ra.NewInt("count").
		SetShort("n").
		SetOptional(true).
		SetDefault(1).
		SetFlagOnly(true).
		SetUsage("Number of identifiers").
		Register(cmd)

	ctx.GenNamespace, _ = ra.NewString("namespace").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Namespace UUID or label (dns, url, oid, x500) for uuidv3/uuidv5").
		Register(cmd)

	ctx.GenName, _ = ra.NewString("name").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Name for uuidv3/uuidv5").
		Register(cmd)

	ctx.GenPrefix, _ = ra.NewString("prefix").
		SetShort("p").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("UPID prefix (default from upid.default_prefix)").
		Register(cmd)

	ctx.GenFormat, _ = ra.NewString("format").
		SetShort("f").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Output format: raw, json, yaml, toml, msgpack (default raw, or json with --json)").
		Register(cmd)

	ctx.GenOut, _ = ra.NewString("out").
		SetShort("o").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Also save the batch to this file").
		Register(cmd)

	ctx.GenSave, _ = ra.NewBool("save").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Also save the batch to export storage under a suggested name").
		Register(cmd)

	ctx.GenRemote, _ = ra.NewString("remote").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Generate on a uidgen gRPC server at host:port").
		Register(cmd)

	ctx.GenUsed, _ = parent.RegisterCmd(cmd)
}

type genOptions struct {
	Kind      string
	Count     int
	Namespace string
	Name      string
	Prefix    string
	Format    string
	Out       string
	Save      bool
	Remote    string
	JSON      bool // json format when Format is empty
}

func runGen(ctx context.Context, app *App, opts genOptions) error {
	k, err := kind.Parse(opts.Kind)
	if err != nil {
		return err
	}
	if opts.Format == "" && opts.JSON {
		opts.Format = string(export.FormatJSON)
	}
	format, err := export.ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	prefix := opts.Prefix
	if prefix == "" && k == kind.UPID {
		prefix = app.Config.UPID.DefaultPrefix
	}

	req := dispatch.Request{
		Kind:      k,
		Namespace: opts.Namespace,
		Name:      opts.Name,
		Prefix:    prefix,
		Count:     opts.Count,
	}

	var ids []string
	if opts.Remote != "" {
		c, err := client.NewIDClient(opts.Remote, app.Logger)
		if err != nil {
			return err
		}
		defer c.Close()

		ids, err = c.GenerateBatch(ctx, req)
		if err != nil {
			return err
		}
	} else {
		res, err := app.Service.Generate(ctx, req)
		if err != nil {
			return err
		}
		ids = res.IDs
	}

	out, err := export.Render(format, ids)
	if err != nil {
		return err
	}
	if _, err := app.Stdout.Write(out); err != nil {
		return err
	}
	if !format.Binary() && len(out) > 0 && !strings.HasSuffix(string(out), "\n") {
		fmt.Fprintln(app.Stdout)
	}

	if opts.Out != "" {
		saveTo(ctx, app, k, format, ids, opts.Out)
	}
	if opts.Save {
		save(ctx, app, app.Exporter, k, format, ids, "")
	}
	return nil
}

// saveTo writes to a file path. Failures are logged only; the command
// still succeeds.
func saveTo(ctx context.Context, app *App, k kind.Kind, format export.Format, ids []string, path string) {
	e, key, err := fileExporter(path)
	if err != nil {
		l := pkglog.Ctx(ctx)
		l.Error().Err(err).Str(pkglog.FieldKey, path).Msg("failed to prepare export")
		return
	}
	save(ctx, app, e, k, format, ids, key)
}

func save(ctx context.Context, app *App, e *export.Exporter, k kind.Kind, format export.Format, ids []string, key string) {
	l := pkglog.Ctx(ctx)

	r, err := e.Export(ctx, k, format, ids, key)
	if err != nil {
		// Export already logged the write failure.
		return
	}
	if r.Skipped {
		l.Info().Str(pkglog.FieldKey, r.Key).Msg("nothing to export")
		return
	}
	loc := r.Location
	if loc == "" {
		loc = r.Key
	}
	fmt.Fprintf(app.Stderr, "saved %d ids to %s\n", r.Count, loc)
}
