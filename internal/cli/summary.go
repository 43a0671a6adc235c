package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dgaraym/cardtrack/internal/services"
)

// Summary prints the per-category inventory overview.
func (a *App) Summary(ctx context.Context) error {
	if err := a.ensureSession(ctx); err != nil {
		return err
	}

	rows, err := a.summary.Summary(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tTOTAL\tACTIVE\tINACTIVE\tPENDING RETURN")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n", r.Category, r.Total, r.Active, r.Inactive, r.PendingReturn)
	}
	return w.Flush()
}

// Export writes the summary to a CSV file. Usage: export <file>.
func (a *App) Export(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: export <file>")
		return nil
	}
	if err := a.ensureSession(ctx); err != nil {
		return err
	}

	rows, err := a.summary.Summary(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return err
	}

	f, err := os.Create(args[0])
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return err
	}
	defer f.Close()

	if err := services.WriteSummaryCSV(f, rows); err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Summary written to %s\n", args[0])
	return nil
}
