package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dgaraym/cardtrack/internal/common"
	"github.com/dgaraym/cardtrack/internal/custody"
)

// Codes manages access codes. Usage:
//
//	codes          — list stored codes
//	codes add      — add a code (prompted without echo)
//	codes rm <id>  — remove a code
func (a *App) Codes(ctx context.Context, args []string) error {
	if err := a.ensureSession(ctx); err != nil {
		return err
	}

	if len(args) == 0 {
		codes, err := a.access.ListAccessCodes(ctx)
		if err != nil {
			fmt.Fprintf(a.out, "Error: %v\n", err)
			return err
		}
		w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCREATED")
		for _, c := range codes {
			fmt.Fprintf(w, "%d\t%s\n", c.ID, custody.FormatTime(c.CreatedAt))
		}
		return w.Flush()
	}

	switch args[0] {
	case "add":
		plain, err := getPassword(a.out)
		if err != nil {
			fmt.Fprintf(a.out, "Error: %v\n", err)
			return err
		}
		code, err := a.access.AddAccessCode(ctx, string(plain))
		if err != nil {
			if errors.Is(err, common.ErrorValidation) {
				fmt.Fprintln(a.out, "Access code must not be empty.")
			} else {
				fmt.Fprintf(a.out, "Error: %v\n", err)
			}
			return err
		}
		fmt.Fprintf(a.out, "Access code %d added.\n", code.ID)
		return nil

	case "rm":
		if len(args) != 2 {
			fmt.Fprintln(a.out, "Usage: codes rm <id>")
			return nil
		}
		id, err := parseID(args[1])
		if err != nil {
			fmt.Fprintf(a.out, "Error: %v\n", err)
			return err
		}
		if err := a.access.RemoveAccessCode(ctx, id); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				fmt.Fprintln(a.out, "No such access code.")
			} else {
				fmt.Fprintf(a.out, "Error: %v\n", err)
			}
			return err
		}
		fmt.Fprintln(a.out, "Access code removed.")
		return nil

	default:
		fmt.Fprintln(a.out, "Usage: codes [add|rm <id>]")
		return nil
	}
}
