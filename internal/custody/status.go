// Package custody derives a card's current custody status from its
// delivery history. Everything here is pure: no clock, no store, fully
// deterministic for a given event sequence.
package custody

import (
	"fmt"
	"time"

	"github.com/dgaraym/cardtrack/internal/models"
)

// State classifies the custody status of a card.
//
// StateReturned still means the card is available for redelivery; it is
// kept distinct from StateAvailable only for reporting, so that "never
// delivered" and "delivered and returned" can be told apart.
type State int

const (
	StateAvailable State = iota
	StateDelivered
	StateReturned
)

func (s State) String() string {
	switch s {
	case StateDelivered:
		return "Delivered"
	case StateReturned:
		return "Returned"
	default:
		return "Available"
	}
}

// TimeLayout is the display and input format for custody timestamps.
const TimeLayout = "2006-01-02 15:04:05"

// FormatTime renders t in TimeLayout; the zero time renders as "".
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimeLayout)
}

// Resolve maps a card's delivery history to its display text and state.
//
// events must be all deliveries of one card, ordered ascending by
// delivered_at with id as the secondary key (the repositories return
// histories in exactly that order). Only the last event determines the
// outcome; earlier events are history.
func Resolve(events []*models.Delivery) (string, State) {
	if len(events) == 0 {
		return "Available", StateAvailable
	}

	last := events[len(events)-1]
	if last.ReturnedAt != nil {
		return fmt.Sprintf("Available (returned at %s)", FormatTime(*last.ReturnedAt)), StateReturned
	}

	text := "Delivered"
	if last.HolderName != "" {
		text = "Delivered to " + last.HolderName
	}
	if !last.DeliveredAt.IsZero() {
		text += fmt.Sprintf(" (%s)", FormatTime(last.DeliveredAt))
	}
	return text, StateDelivered
}

// FindOpen returns the delivery with no recorded return, if any.
//
// A well-formed history has at most one open delivery; the storage layer
// enforces that with a partial unique index. Should the data still be
// corrupted, FindOpen picks the open delivery with the latest delivered_at
// (ties broken by highest id) as authoritative and reports conflict=true
// so the caller can log a data-integrity warning.
func FindOpen(events []*models.Delivery) (open *models.Delivery, conflict bool) {
	n := 0
	for _, ev := range events {
		if !ev.Open() {
			continue
		}
		n++
		if open == nil || ev.DeliveredAt.After(open.DeliveredAt) ||
			(ev.DeliveredAt.Equal(open.DeliveredAt) && ev.ID > open.ID) {
			open = ev
		}
	}
	return open, n > 1
}
