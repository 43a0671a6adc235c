package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dgaraym/cardtrack/internal/services"
)

// parseFilterArg maps an optional trailing argument to a custody filter.
func parseFilterArg(args []string) string {
	if len(args) == 0 {
		return services.FilterAll
	}
	switch strings.ToLower(args[0]) {
	case "delivered", "out":
		return services.FilterDelivered
	case "returned", "in":
		return services.FilterReturned
	default:
		return services.FilterAll
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// List prints the cards of a category with their resolved custody
// status. Usage: list <category> [delivered|returned].
func (a *App) List(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(a.out, "Usage: list <category> [delivered|returned]")
		return nil
	}
	if err := a.ensureSession(ctx); err != nil {
		return err
	}

	rows, err := a.registry.ListCards(ctx, args[0], parseFilterArg(args[1:]))
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "No cards.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNUMBER\tNAME\tTYPE\tACTIVE\tCUSTODY")
	for _, r := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			r.Card.ID, r.Card.Number, r.Card.Name, r.Card.Type, r.Card.Status, r.StatusText)
	}
	return w.Flush()
}
