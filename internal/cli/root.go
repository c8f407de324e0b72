package cli

import (
	"context"
	"errors"
	"os"

	"github.com/amterp/ra"
)

// CommandContext holds parsed values and used flags for all commands.
type CommandContext struct {
	// Global flags
	ConfigFile *string
	JSON       *bool

	// gen command
	GenUsed      *bool
	GenKind      *string
	GenCount     *int
	GenNamespace *string
	GenName      *string
	GenPrefix    *string
	GenFormat    *string
	GenOut       *string
	GenSave      *bool
	GenRemote    *string

	// kinds / namespaces / exports
	KindsUsed      *bool
	NamespacesUsed *bool
	ExportsUsed    *bool
	ExportsPrefix  *string

	// validate command
	ValidateUsed *bool
	ValidateKind *string
	ValidateID   *string

	// parse command
	ParseUsed *bool
	ParseKind *string
	ParseID   *string

	// open command
	OpenUsed   *bool
	OpenTarget *string
	OpenPrint  *bool

	// serve command
	ServeUsed     *bool
	ServePort     *int
	ServeGRPCPort *int
}

// Run is the main entry point for the CLI.
func Run() {
	ctx := &CommandContext{}

	cmd := ra.NewCmd("uidgen")
	cmd.SetDescription("Generate unique identifiers in many formats")

	ctx.ConfigFile, _ = ra.NewString("config").
		SetShort("c").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Config file (default ./config/config.yaml)").
		Register(cmd, ra.WithGlobal(true))

	ctx.JSON, _ = ra.NewBool("json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Print listings and results as JSON").
		Register(cmd, ra.WithGlobal(true))

	registerGen(cmd, ctx)
	registerKinds(cmd, ctx)
	registerNamespaces(cmd, ctx)
	registerExports(cmd, ctx)
	registerValidate(cmd, ctx)
	registerParse(cmd, ctx)
	registerOpen(cmd, ctx)
	registerServe(cmd, ctx)

	cmd.ParseOrExit(os.Args[1:])

	app, err := NewApp(context.Background(), *ctx.ConfigFile)
	if err != nil {
		Fatal(err)
	}

	if err := executeCommand(app.Context(context.Background()), app, ctx); err != nil {
		if errors.Is(err, errInvalid) {
			os.Exit(1)
		}
		Fatal(err)
	}
}

func executeCommand(c context.Context, app *App, ctx *CommandContext) error {
	jsonOutput := *ctx.JSON

	switch {
	case *ctx.GenUsed:
		return runGen(c, app, genOptions{
			Kind:      *ctx.GenKind,
			Count:     *ctx.GenCount,
			Namespace: *ctx.GenNamespace,
			Name:      *ctx.GenName,
			Prefix:    *ctx.GenPrefix,
			Format:    *ctx.GenFormat,
			Out:       *ctx.GenOut,
			Save:      *ctx.GenSave,
			Remote:    *ctx.GenRemote,
			JSON:      jsonOutput,
		})

	case *ctx.KindsUsed:
		return runKinds(c, app, jsonOutput)

	case *ctx.NamespacesUsed:
		return runNamespaces(c, app, jsonOutput)

	case *ctx.ExportsUsed:
		return runExports(c, app, *ctx.ExportsPrefix, jsonOutput)

	case *ctx.ValidateUsed:
		return runValidate(c, app, *ctx.ValidateKind, *ctx.ValidateID, jsonOutput)

	case *ctx.ParseUsed:
		return runParse(c, app, *ctx.ParseKind, *ctx.ParseID, jsonOutput)

	case *ctx.OpenUsed:
		return runOpen(c, app, *ctx.OpenTarget, *ctx.OpenPrint)

	case *ctx.ServeUsed:
		return runServe(app, *ctx.ServePort, *ctx.ServeGRPCPort)
	}
	return nil
}
