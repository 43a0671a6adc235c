package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dgaraym/cardtrack/internal/categories"
	"github.com/dgaraym/cardtrack/internal/common"
	"github.com/dgaraym/cardtrack/internal/custody"
	"github.com/dgaraym/cardtrack/internal/dbx"
	"github.com/dgaraym/cardtrack/internal/logging"
	"github.com/dgaraym/cardtrack/internal/models"
	"github.com/dgaraym/cardtrack/internal/repositories/repomanager"
)

// Custody classification filters for listings and history views.
const (
	FilterAll       = "All"
	FilterDelivered = "Delivered"
	FilterReturned  = "Returned"
)

// RegistryService provides category-scoped CRUD over cards plus bulk
// import from tabular input.
type RegistryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

// NewRegistryService constructs a RegistryService.
func NewRegistryService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *RegistryService {
	return &RegistryService{db: db, repomanager: m, log: log}
}

// CardRow is one listing entry: the card plus its resolved custody
// status.
type CardRow struct {
	Card       *models.Card
	StatusText string
	State      custody.State
}

// CreateCard validates the category and stores a new card. Unknown
// categories yield common.ErrorNotFound; unrecognized statuses default
// to Active.
func (s *RegistryService) CreateCard(ctx context.Context, category string, values map[string]string, status string) (*models.Card, error) {
	def, ok := categories.Get(category)
	if !ok {
		return nil, fmt.Errorf("unknown category %q: %w", category, common.ErrorNotFound)
	}

	card := &models.Card{Category: def.Code, Status: models.NormalizeStatus(status)}
	for _, f := range def.Fields {
		card.SetField(f.Key, strings.TrimSpace(values[f.Key]))
	}

	repo := s.repomanager.Cards(s.db)
	created, err := repo.Create(ctx, card)
	if err != nil {
		return nil, fmt.Errorf("error creating card: %w", err)
	}
	return created, nil
}

// ListCards returns the cards of a category with their resolved custody
// status, optionally narrowed to a custody classification
// (FilterDelivered / FilterReturned).
func (s *RegistryService) ListCards(ctx context.Context, category, filter string) ([]CardRow, error) {
	def, ok := categories.Get(category)
	if !ok {
		return nil, fmt.Errorf("unknown category %q: %w", category, common.ErrorNotFound)
	}

	cardRepo := s.repomanager.Cards(s.db)
	cards, err := cardRepo.ListByCategory(ctx, def.Code)
	if err != nil {
		return nil, fmt.Errorf("error listing cards: %w", err)
	}

	byCard, err := s.eventsByCard(ctx, def.Code)
	if err != nil {
		return nil, err
	}

	rows := make([]CardRow, 0, len(cards))
	for _, card := range cards {
		text, state := custody.Resolve(byCard[card.ID])

		if filter == FilterDelivered && state != custody.StateDelivered {
			continue
		}
		if filter == FilterReturned && state != custody.StateReturned {
			continue
		}

		rows = append(rows, CardRow{Card: card, StatusText: text, State: state})
	}
	return rows, nil
}

// DeleteCard removes a card and, through the schema cascade, its
// delivery history.
func (s *RegistryService) DeleteCard(ctx context.Context, category string, id int64) error {
	def, ok := categories.Get(category)
	if !ok {
		return fmt.Errorf("unknown category %q: %w", category, common.ErrorNotFound)
	}

	repo := s.repomanager.Cards(s.db)
	if err := repo.Delete(ctx, def.Code, id); err != nil {
		return err
	}
	s.log.Info(ctx, "card deleted", "category", def.Code, "card_id", id)
	return nil
}

// ImportCards loads cards from tabular input: a header row followed by
// data rows. Headers are matched against canonical field keys first and
// human-readable labels second; rows contributing no non-empty field are
// skipped. The whole import is one transaction. Returns the number of
// cards imported.
func (s *RegistryService) ImportCards(ctx context.Context, category string, rows [][]string) (int, error) {
	def, ok := categories.Get(category)
	if !ok {
		return 0, fmt.Errorf("unknown category %q: %w", category, common.ErrorNotFound)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	mapping := def.MapHeader(rows[0])

	imported := 0
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Cards(tx)

		for _, row := range rows[1:] {
			card := &models.Card{Category: def.Code}
			empty := true

			for key, col := range mapping.Fields {
				if col >= len(row) {
					continue
				}
				value := strings.TrimSpace(row[col])
				if value == "" {
					continue
				}
				card.SetField(key, value)
				empty = false
			}
			if empty {
				continue
			}

			status := ""
			if mapping.Status >= 0 && mapping.Status < len(row) {
				status = strings.TrimSpace(row[mapping.Status])
			}
			card.Status = models.NormalizeStatus(status)

			if _, err := repo.Create(ctx, card); err != nil {
				return fmt.Errorf("error importing card: %w", err)
			}
			imported++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Info(ctx, "cards imported", "category", def.Code, "count", imported)
	return imported, nil
}

// TemplateHeader returns the header row of an import template for the
// category.
func (s *RegistryService) TemplateHeader(category string) ([]string, error) {
	def, ok := categories.Get(category)
	if !ok {
		return nil, fmt.Errorf("unknown category %q: %w", category, common.ErrorNotFound)
	}
	return def.TemplateHeader(), nil
}

// eventsByCard loads a category's deliveries grouped per card, preserving
// the repository's delivered_at/id ordering inside each group.
func (s *RegistryService) eventsByCard(ctx context.Context, category string) (map[int64][]*models.Delivery, error) {
	repo := s.repomanager.Deliveries(s.db)
	events, err := repo.ListByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("error listing deliveries: %w", err)
	}

	byCard := make(map[int64][]*models.Delivery)
	for _, ev := range events {
		if ev.CardID == nil {
			continue
		}
		byCard[*ev.CardID] = append(byCard[*ev.CardID], ev)
	}
	return byCard, nil
}
