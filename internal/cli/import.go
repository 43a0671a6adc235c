package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
)

// Import bulk-loads cards from a CSV file whose first row is the header
// (see the template command). Usage: import <category> <file>.
func (a *App) Import(ctx context.Context, args []string) error {
	if len(args) != 2 {
		fmt.Fprintln(a.out, "Usage: import <category> <file>")
		return nil
	}
	if err := a.ensureSession(ctx); err != nil {
		return err
	}

	f, err := os.Open(args[1])
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		fmt.Fprintf(a.out, "Error reading %s: %v\n", args[1], err)
		return err
	}

	imported, err := a.registry.ImportCards(ctx, args[0], rows)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return err
	}
	fmt.Fprintf(a.out, "%d cards imported.\n", imported)
	return nil
}
