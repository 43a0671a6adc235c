// Package models contains the persisted entities of the custody tracker.
package models

import "time"

// Card statuses. Status is an administrative flag and is independent of
// custody: an inactive card can still be out on delivery.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// NormalizeStatus maps arbitrary input to a valid card status. Anything
// that is not exactly "Inactive" counts as Active, matching how imports
// treat unrecognized values.
func NormalizeStatus(s string) string {
	if s == StatusInactive {
		return StatusInactive
	}
	return StatusActive
}

// Card is one trackable access/identification card. Which descriptive
// fields are meaningful depends on the card's category (see the
// categories package); unused fields stay empty.
type Card struct {
	ID        int64
	Category  string
	SeqNo     string
	Sector    string
	Class     string
	Subclass  string
	Name      string
	Type      string
	Number    string
	Status    string
	CreatedAt time.Time
}

// FieldValue returns the descriptive field addressed by its canonical key,
// or "" for unknown keys.
func (c *Card) FieldValue(key string) string {
	switch key {
	case "seq_no":
		return c.SeqNo
	case "sector":
		return c.Sector
	case "card_class":
		return c.Class
	case "subclass":
		return c.Subclass
	case "card_name":
		return c.Name
	case "card_type":
		return c.Type
	case "card_number":
		return c.Number
	}
	return ""
}

// SetField assigns the descriptive field addressed by its canonical key.
// It reports whether the key was recognized.
func (c *Card) SetField(key, value string) bool {
	switch key {
	case "seq_no":
		c.SeqNo = value
	case "sector":
		c.Sector = value
	case "card_class":
		c.Class = value
	case "subclass":
		c.Subclass = value
	case "card_name":
		c.Name = value
	case "card_type":
		c.Type = value
	case "card_number":
		c.Number = value
	default:
		return false
	}
	return true
}
