package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dgaraym/cardtrack/internal/common"
	"github.com/dgaraym/cardtrack/internal/custody"
	"github.com/dgaraym/cardtrack/internal/models"
)

func writeHistoryTable(w *tabwriter.Writer, events []*models.Delivery) {
	fmt.Fprintln(w, "ID\tCARD\tHOLDER\tROLE\tORGANIZATION\tDELIVERED\tRETURNED")
	for _, ev := range events {
		returned := "-"
		if ev.ReturnedAt != nil {
			returned = custody.FormatTime(*ev.ReturnedAt)
		}
		fmt.Fprintf(w, "%d\t%s\t%s (%s)\t%s\t%s\t%s\t%s\n",
			ev.ID, ev.CardNumber, ev.HolderName, ev.HolderID, ev.HolderRole, ev.HolderOrg,
			custody.FormatTime(ev.DeliveredAt), returned)
	}
}

// History prints the delivery history of one card, or of a whole
// category when no card id is given. Usage:
// history <category> [id|delivered|returned].
func (a *App) History(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(a.out, "Usage: history <category> [id|delivered|returned]")
		return nil
	}
	if err := a.ensureSession(ctx); err != nil {
		return err
	}

	var events []*models.Delivery
	if len(args) > 1 {
		if id, err := parseID(args[1]); err == nil {
			card, cardEvents, err := a.custody.CardHistory(ctx, args[0], id)
			if err != nil {
				if errors.Is(err, common.ErrorNotFound) {
					fmt.Fprintln(a.out, "Card not found.")
				} else {
					fmt.Fprintf(a.out, "Error: %v\n", err)
				}
				return err
			}
			fmt.Fprintf(a.out, "Card %s (%s)\n", card.Number, card.Name)
			events = cardEvents
		}
	}
	if events == nil {
		categoryEvents, err := a.custody.CategoryHistory(ctx, args[0], parseFilterArg(args[1:]))
		if err != nil {
			fmt.Fprintf(a.out, "Error: %v\n", err)
			return err
		}
		events = categoryEvents
	}

	if len(events) == 0 {
		fmt.Fprintln(a.out, "No deliveries.")
		return nil
	}
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	writeHistoryTable(w, events)
	return w.Flush()
}
