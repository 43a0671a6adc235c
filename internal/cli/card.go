package cli

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dgaraym/cardtrack/internal/categories"
	"github.com/dgaraym/cardtrack/internal/common"
)

// Add creates a card interactively, prompting for every field of the
// category schema. Usage: add <category>.
func (a *App) Add(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: add <category>")
		return nil
	}
	if err := a.ensureSession(ctx); err != nil {
		return err
	}

	def, ok := categories.Get(args[0])
	if !ok {
		fmt.Fprintf(a.out, "Unknown category %q.\n", args[0])
		return common.ErrorNotFound
	}

	values := make(map[string]string, len(def.Fields))
	for _, f := range def.Fields {
		v, err := getSimpleText(a.reader, f.Label, a.out)
		if err != nil {
			fmt.Fprintf(a.out, "Error: %v\n", err)
			return err
		}
		values[f.Key] = v
	}
	status, err := getSimpleText(a.reader, categories.StatusColumnLabel, a.out)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return err
	}

	card, err := a.registry.CreateCard(ctx, def.Code, values, status)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Card %d created.\n", card.ID)
	return nil
}

// Delete removes a card and its delivery history. Usage:
// delete <category> <id>.
func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 2 {
		fmt.Fprintln(a.out, "Usage: delete <category> <id>")
		return nil
	}
	if err := a.ensureSession(ctx); err != nil {
		return err
	}

	id, err := parseID(args[1])
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return err
	}

	confirm, err := getSimpleText(a.reader, "Delete the card and its whole history? (yes/no)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return err
	}
	if !strings.EqualFold(confirm, "yes") && !strings.EqualFold(confirm, "y") {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	if err := a.registry.DeleteCard(ctx, args[0], id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			fmt.Fprintln(a.out, "Card not found.")
		} else {
			fmt.Fprintf(a.out, "Error: %v\n", err)
		}
		return err
	}
	fmt.Fprintln(a.out, "Card deleted.")
	return nil
}

// Template prints the import header row of a category, or writes it as
// a one-row CSV template file. Usage: template <category> [file].
func (a *App) Template(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(a.out, "Usage: template <category> [file]")
		return nil
	}

	header, err := a.registry.TemplateHeader(args[0])
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return err
	}

	if len(args) == 2 {
		f, err := os.Create(args[1])
		if err != nil {
			fmt.Fprintf(a.out, "Error: %v\n", err)
			return err
		}
		defer f.Close()

		w := csv.NewWriter(f)
		if err := w.Write(header); err != nil {
			fmt.Fprintf(a.out, "Error: %v\n", err)
			return err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			fmt.Fprintf(a.out, "Error: %v\n", err)
			return err
		}
		fmt.Fprintf(a.out, "Template written to %s\n", args[1])
		return nil
	}

	fmt.Fprintln(a.out, strings.Join(header, ","))
	return nil
}
