package models

import "time"

// Delivery is one custody transaction for a card: the handover and,
// once recorded, the matching return. A delivery with ReturnedAt == nil
// is "open" — the card is currently out.
//
// CardID is nullable so that history survives card deletion at the schema
// level; CardNumber is a snapshot taken when the delivery is created and
// is kept for the same reason.
type Delivery struct {
	ID          int64
	Category    string
	CardID      *int64
	CardNumber  string
	HolderID    string
	HolderName  string
	HolderRole  string
	HolderOrg   string
	DeliveredAt time.Time
	ReturnedAt  *time.Time
	CreatedAt   time.Time
}

// Open reports whether the delivery has no recorded return.
func (d *Delivery) Open() bool {
	return d.ReturnedAt == nil
}
