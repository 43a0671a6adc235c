package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dgaraym/cardtrack/internal/categories"
	"github.com/dgaraym/cardtrack/internal/common"
	"github.com/dgaraym/cardtrack/internal/custody"
	"github.com/dgaraym/cardtrack/internal/dbx"
	"github.com/dgaraym/cardtrack/internal/logging"
	"github.com/dgaraym/cardtrack/internal/models"
	"github.com/dgaraym/cardtrack/internal/repositories/repomanager"
)

// CustodyService records handovers and returns, and answers history
// queries. The clock is injectable for tests.
type CustodyService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
	now         func() time.Time
}

// NewCustodyService constructs a CustodyService using the real clock.
func NewCustodyService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *CustodyService {
	return &CustodyService{db: db, repomanager: m, log: log, now: time.Now}
}

// RecordDeliveryParams carries the form input of one custody
// transaction. Timestamps are strings in custody.TimeLayout; an empty or
// unparsable delivered-at falls back to the current time, an empty or
// unparsable returned-at means "not returned".
type RecordDeliveryParams struct {
	HolderID    string
	HolderName  string
	HolderRole  string
	HolderOrg   string
	DeliveredAt string
	ReturnedAt  string
}

// parseEventTime parses s in custody.TimeLayout, returning nil when s is
// empty or malformed. Malformed input is recovered with a default by the
// caller, matching how the entry form behaves.
func parseEventTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse(custody.TimeLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

// RecordDelivery records a custody handover or its resolution for one
// card.
//
// If the card has an open delivery, that same event is updated in place —
// this is how a return is recorded or an in-progress handover corrected.
// Otherwise a new event is created, snapshotting the card's current
// number. The whole operation runs in a single transaction.
func (s *CustodyService) RecordDelivery(ctx context.Context, category string, cardID int64, p RecordDeliveryParams) (*models.Delivery, error) {
	def, ok := categories.Get(category)
	if !ok {
		return nil, fmt.Errorf("unknown category %q: %w", category, common.ErrorNotFound)
	}

	p.HolderID = strings.TrimSpace(p.HolderID)
	p.HolderName = strings.TrimSpace(p.HolderName)
	if p.HolderID == "" || p.HolderName == "" {
		return nil, fmt.Errorf("holder id and holder name are required: %w", common.ErrorValidation)
	}

	deliveredAt := s.now()
	if t := parseEventTime(p.DeliveredAt); t != nil {
		deliveredAt = *t
	}
	returnedAt := parseEventTime(p.ReturnedAt)

	var result *models.Delivery
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		card, err := s.repomanager.Cards(tx).GetByID(ctx, def.Code, cardID)
		if err != nil {
			return err
		}

		deliveryRepo := s.repomanager.Deliveries(tx)
		events, err := deliveryRepo.ListByCard(ctx, def.Code, card.ID)
		if err != nil {
			return fmt.Errorf("error loading card history: %w", err)
		}

		open, conflict := custody.FindOpen(events)
		if conflict {
			s.log.Warn(ctx, "card has more than one open delivery, using the latest",
				"category", def.Code, "card_id", card.ID, "delivery_id", open.ID)
		}

		if open != nil {
			open.HolderID = p.HolderID
			open.HolderName = p.HolderName
			open.HolderRole = strings.TrimSpace(p.HolderRole)
			open.HolderOrg = strings.TrimSpace(p.HolderOrg)
			open.DeliveredAt = deliveredAt
			open.ReturnedAt = returnedAt
			if err := deliveryRepo.Update(ctx, open); err != nil {
				return err
			}
			result = open
			return nil
		}

		d := &models.Delivery{
			Category:    def.Code,
			CardID:      &card.ID,
			CardNumber:  card.Number,
			HolderID:    p.HolderID,
			HolderName:  p.HolderName,
			HolderRole:  strings.TrimSpace(p.HolderRole),
			HolderOrg:   strings.TrimSpace(p.HolderOrg),
			DeliveredAt: deliveredAt,
			ReturnedAt:  returnedAt,
		}
		result, err = deliveryRepo.Create(ctx, d)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeliverPrefill is the context shown before recording a transaction:
// the card, its open delivery if one exists, and its most recent
// delivery of any kind.
type DeliverPrefill struct {
	Card *models.Card
	Open *models.Delivery
	Last *models.Delivery
}

// DeliverContext loads the prefill data for a card's delivery form.
func (s *CustodyService) DeliverContext(ctx context.Context, category string, cardID int64) (*DeliverPrefill, error) {
	def, ok := categories.Get(category)
	if !ok {
		return nil, fmt.Errorf("unknown category %q: %w", category, common.ErrorNotFound)
	}

	card, err := s.repomanager.Cards(s.db).GetByID(ctx, def.Code, cardID)
	if err != nil {
		return nil, err
	}

	events, err := s.repomanager.Deliveries(s.db).ListByCard(ctx, def.Code, card.ID)
	if err != nil {
		return nil, fmt.Errorf("error loading card history: %w", err)
	}

	prefill := &DeliverPrefill{Card: card}
	if len(events) > 0 {
		prefill.Last = events[len(events)-1]
	}
	open, conflict := custody.FindOpen(events)
	if conflict {
		s.log.Warn(ctx, "card has more than one open delivery, using the latest",
			"category", def.Code, "card_id", card.ID, "delivery_id", open.ID)
	}
	prefill.Open = open

	return prefill, nil
}

// CardHistory returns a card together with its full ordered delivery
// history.
func (s *CustodyService) CardHistory(ctx context.Context, category string, cardID int64) (*models.Card, []*models.Delivery, error) {
	def, ok := categories.Get(category)
	if !ok {
		return nil, nil, fmt.Errorf("unknown category %q: %w", category, common.ErrorNotFound)
	}

	card, err := s.repomanager.Cards(s.db).GetByID(ctx, def.Code, cardID)
	if err != nil {
		return nil, nil, err
	}

	events, err := s.repomanager.Deliveries(s.db).ListByCard(ctx, def.Code, card.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading card history: %w", err)
	}
	return card, events, nil
}

// CategoryHistory returns every delivery of a category, optionally
// narrowed to still-open (FilterDelivered) or resolved (FilterReturned)
// events.
func (s *CustodyService) CategoryHistory(ctx context.Context, category, filter string) ([]*models.Delivery, error) {
	def, ok := categories.Get(category)
	if !ok {
		return nil, fmt.Errorf("unknown category %q: %w", category, common.ErrorNotFound)
	}

	events, err := s.repomanager.Deliveries(s.db).ListByCategory(ctx, def.Code)
	if err != nil {
		return nil, fmt.Errorf("error listing deliveries: %w", err)
	}

	if filter != FilterDelivered && filter != FilterReturned {
		return events, nil
	}

	filtered := make([]*models.Delivery, 0, len(events))
	for _, ev := range events {
		if filter == FilterDelivered && !ev.Open() {
			continue
		}
		if filter == FilterReturned && ev.Open() {
			continue
		}
		filtered = append(filtered, ev)
	}
	return filtered, nil
}
