package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgaraym/cardtrack/internal/common"
	"github.com/dgaraym/cardtrack/internal/custody"
	"github.com/dgaraym/cardtrack/internal/services"
)

// promptWithDefault reads a line, falling back to def when the user
// enters nothing.
func (a *App) promptWithDefault(prompt, def string) (string, error) {
	label := prompt
	if def != "" {
		label = fmt.Sprintf("%s [%s]", prompt, def)
	}
	v, err := getSimpleText(a.reader, label, a.out)
	if err != nil {
		return "", err
	}
	if v == "" {
		return def, nil
	}
	return v, nil
}

// Deliver records a handover or a return for a card. When the card has
// an open delivery its data prefills the prompts, and the transaction
// updates that same event; otherwise a new event is created. Usage:
// deliver <category> <id>.
func (a *App) Deliver(ctx context.Context, args []string) error {
	if len(args) != 2 {
		fmt.Fprintln(a.out, "Usage: deliver <category> <id>")
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

	prefill, err := a.custody.DeliverContext(ctx, args[0], id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			fmt.Fprintln(a.out, "Card not found.")
		} else {
			fmt.Fprintf(a.out, "Error: %v\n", err)
		}
		return err
	}

	fmt.Fprintf(a.out, "Card %s (%s)\n", prefill.Card.Number, prefill.Card.Name)
	var p services.RecordDeliveryParams
	if open := prefill.Open; open != nil {
		fmt.Fprintf(a.out, "Open delivery to %s since %s — editing it.\n",
			open.HolderName, custody.FormatTime(open.DeliveredAt))
		p = services.RecordDeliveryParams{
			HolderID:    open.HolderID,
			HolderName:  open.HolderName,
			HolderRole:  open.HolderRole,
			HolderOrg:   open.HolderOrg,
			DeliveredAt: custody.FormatTime(open.DeliveredAt),
		}
	}

	prompts := []struct {
		label string
		field *string
	}{
		{"Holder id", &p.HolderID},
		{"Holder name", &p.HolderName},
		{"Holder role", &p.HolderRole},
		{"Holder organization", &p.HolderOrg},
		{"Delivered at (YYYY-MM-DD HH:MM:SS, empty = now)", &p.DeliveredAt},
		{"Returned at (YYYY-MM-DD HH:MM:SS, empty = not returned)", &p.ReturnedAt},
	}
	for _, pr := range prompts {
		v, err := a.promptWithDefault(pr.label, *pr.field)
		if err != nil {
			fmt.Fprintf(a.out, "Error: %v\n", err)
			return err
		}
		*pr.field = v
	}

	d, err := a.custody.RecordDelivery(ctx, args[0], id, p)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			fmt.Fprintf(a.out, "Invalid input: %v\n", err)
		case errors.Is(err, common.ErrOpenDeliveryConflict):
			fmt.Fprintln(a.out, "The card already has an open delivery recorded by someone else. Reload and try again.")
		default:
			fmt.Fprintf(a.out, "Error: %v\n", err)
		}
		return err
	}

	if d.Open() {
		fmt.Fprintf(a.out, "Delivery %d recorded: card with %s.\n", d.ID, d.HolderName)
	} else {
		fmt.Fprintf(a.out, "Delivery %d recorded: card returned.\n", d.ID)
	}
	return nil
}
