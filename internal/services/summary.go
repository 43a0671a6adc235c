package services

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/dgaraym/cardtrack/internal/categories"
	"github.com/dgaraym/cardtrack/internal/custody"
	"github.com/dgaraym/cardtrack/internal/models"
	"github.com/dgaraym/cardtrack/internal/repositories/repomanager"
)

// SummaryService computes the per-category inventory overview.
type SummaryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewSummaryService constructs a SummaryService.
func NewSummaryService(db *sql.DB, m repomanager.RepositoryManager) *SummaryService {
	return &SummaryService{db: db, repomanager: m}
}

// SummaryRow aggregates one category. PendingReturn counts cards whose
// latest delivery has no recorded return.
type SummaryRow struct {
	Category      string
	Total         int
	Active        int
	Inactive      int
	PendingReturn int
}

// Summary returns one row per category, in the fixed category order.
func (s *SummaryService) Summary(ctx context.Context) ([]SummaryRow, error) {
	cardRepo := s.repomanager.Cards(s.db)
	deliveryRepo := s.repomanager.Deliveries(s.db)

	rows := make([]SummaryRow, 0, len(categories.Order))
	for _, code := range categories.Order {
		cards, err := cardRepo.ListByCategory(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("error listing cards: %w", err)
		}

		events, err := deliveryRepo.ListByCategory(ctx, code)
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

		row := SummaryRow{Category: code, Total: len(cards)}
		for _, card := range cards {
			if models.NormalizeStatus(card.Status) == models.StatusActive {
				row.Active++
			} else {
				row.Inactive++
			}
			if _, state := custody.Resolve(byCard[card.ID]); state == custody.StateDelivered {
				row.PendingReturn++
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteSummaryCSV renders the summary as a tabular export.
func WriteSummaryCSV(w io.Writer, rows []SummaryRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Category", "Total", "Active", "Inactive", "Pending Return"}); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.Category,
			strconv.Itoa(r.Total),
			strconv.Itoa(r.Active),
			strconv.Itoa(r.Inactive),
			strconv.Itoa(r.PendingReturn),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
