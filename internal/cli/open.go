package cli

import (
	"context"
	"fmt"

	"github.com/amterp/ra"

	"github.com/weiawesome/uidgen/internal/audit"
	"github.com/weiawesome/uidgen/internal/links"
)

func registerOpen(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("open")
	cmd.SetDescription("Open the project page or RFC 9562 in a browser")

	ctx.OpenTarget, _ = ra.NewString("target").
		SetUsage("Page to open").
		SetEnumConstraint([]string{links.GitHub, links.RFC9562}).
		Register(cmd)

	ctx.OpenPrint, _ = ra.NewBool("print").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Print the URL instead of opening it").
		Register(cmd)

	ctx.OpenUsed, _ = parent.RegisterCmd(cmd)
}

func runOpen(ctx context.Context, app *App, target string, printOnly bool) error {
	if printOnly {
		u, err := app.Links.URL(target)
		if err != nil {
			return err
		}
		fmt.Fprintln(app.Stdout, u)
		return nil
	}

	u, err := app.Links.Open(target)
	if err != nil {
		return err
	}
	audit.Log(ctx, audit.ActionOpen, target, "link opened")
	fmt.Fprintf(app.Stderr, "opened %s\n", u)
	return nil
}
