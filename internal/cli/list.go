package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/amterp/ra"
)

func registerKinds(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("kinds")
	cmd.SetDescription("List identifier kinds")
	ctx.KindsUsed, _ = parent.RegisterCmd(cmd)
}

func registerNamespaces(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("namespaces")
	cmd.SetDescription("List predefined UUID namespaces")
	ctx.NamespacesUsed, _ = parent.RegisterCmd(cmd)
}

func registerExports(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("exports")
	cmd.SetDescription("List saved exports")

	ctx.ExportsPrefix, _ = ra.NewString("prefix").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Only list keys starting with this prefix").
		Register(cmd)

	ctx.ExportsUsed, _ = parent.RegisterCmd(cmd)
}

func printJson(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

func runKinds(ctx context.Context, app *App, jsonOutput bool) error {
	infos := app.Service.Kinds(ctx)
	if jsonOutput {
		return printJson(app.Stdout, infos)
	}

	tw := tabwriter.NewWriter(app.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tNAME\tCLASS")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Kind, info.Name, info.Class)
	}
	return tw.Flush()
}

func runNamespaces(ctx context.Context, app *App, jsonOutput bool) error {
	all := app.Service.Namespaces(ctx)
	if jsonOutput {
		return printJson(app.Stdout, all)
	}

	tw := tabwriter.NewWriter(app.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LABEL\tNAME\tUUID")
	for _, ns := range all {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", ns.Label, ns.Name, ns.UUID)
	}
	return tw.Flush()
}

func runExports(ctx context.Context, app *App, prefix string, jsonOutput bool) error {
	files, err := app.Service.ListExports(ctx, prefix)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJson(app.Stdout, files)
	}

	tw := tabwriter.NewWriter(app.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tSIZE\tMODIFIED")
	for _, f := range files {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", f.Key, f.Size, f.LastModified.Format("2006-01-02 15:04:05"))
	}
	return tw.Flush()
}
