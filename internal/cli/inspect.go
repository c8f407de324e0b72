package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/amterp/ra"

	"github.com/weiawesome/uidgen/internal/kind"
)

func registerValidate(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("validate")
	cmd.SetDescription("Check that an identifier is well formed")

	ctx.ValidateKind, _ = ra.NewString("kind").
		SetUsage("Identifier kind").
		Register(cmd)

	ctx.ValidateID, _ = ra.NewString("id").
		SetUsage("Identifier to check").
		Register(cmd)

	ctx.ValidateUsed, _ = parent.RegisterCmd(cmd)
}

func registerParse(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("parse")
	cmd.SetDescription("Decode the fields embedded in an identifier")

	ctx.ParseKind, _ = ra.NewString("kind").
		SetUsage("Identifier kind").
		Register(cmd)

	ctx.ParseID, _ = ra.NewString("id").
		SetUsage("Identifier to decode").
		Register(cmd)

	ctx.ParseUsed, _ = parent.RegisterCmd(cmd)
}

// errInvalid makes an invalid id exit non-zero after its reason is printed.
var errInvalid = fmt.Errorf("identifier is not valid")

func runValidate(ctx context.Context, app *App, rawKind, id string, jsonOutput bool) error {
	k, err := kind.Parse(rawKind)
	if err != nil {
		return err
	}
	v, err := app.Service.Validate(ctx, k, id)
	if err != nil {
		return err
	}

	if jsonOutput {
		if err := printJson(app.Stdout, v); err != nil {
			return err
		}
	} else if v.Valid {
		fmt.Fprintf(app.Stdout, "valid %s\n", k)
	} else {
		fmt.Fprintf(app.Stdout, "invalid %s: %s\n", k, v.Reason)
	}

	if !v.Valid {
		return errInvalid
	}
	return nil
}

func runParse(ctx context.Context, app *App, rawKind, id string, jsonOutput bool) error {
	k, err := kind.Parse(rawKind)
	if err != nil {
		return err
	}
	res, err := app.Service.Parse(ctx, k, id)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJson(app.Stdout, res)
	}

	w := app.Stdout
	if res.TimestampMs != 0 {
		fmt.Fprintf(w, "timestamp:  %s (%d)\n", time.UnixMilli(res.TimestampMs).UTC().Format(time.RFC3339Nano), res.TimestampMs)
	}
	if res.MachineID != 0 {
		fmt.Fprintf(w, "machine_id: %d\n", res.MachineID)
	}
	if res.Sequence != 0 {
		fmt.Fprintf(w, "sequence:   %d\n", res.Sequence)
	}
	if res.UUIDVersion != 0 {
		fmt.Fprintf(w, "version:    %d\n", res.UUIDVersion)
		fmt.Fprintf(w, "variant:    %s\n", res.UUIDVariant)
	}
	if res.RandomPayload != "" {
		fmt.Fprintf(w, "random:     %s\n", res.RandomPayload)
	}
	if res.IDLength != 0 {
		fmt.Fprintf(w, "length:     %d\n", res.IDLength)
	}
	if res.Alphabet != "" {
		fmt.Fprintf(w, "alphabet:   %s\n", res.Alphabet)
	}
	return nil
}
