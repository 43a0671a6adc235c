// Package cards provides the PostgreSQL-backed repository for card
// records.
package cards

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dgaraym/cardtrack/internal/common"
	"github.com/dgaraym/cardtrack/internal/dbx"
	"github.com/dgaraym/cardtrack/internal/models"
)

// PostgresRepository implements card storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the card and fills in its generated id and created_at.
func (r *PostgresRepository) Create(ctx context.Context, card *models.Card) (*models.Card, error) {
	query := `
		INSERT INTO cards (category, seq_no, sector, card_class, subclass, card_name, card_type, card_number, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		card.Category, card.SeqNo, card.Sector, card.Class, card.Subclass,
		card.Name, card.Type, card.Number, card.Status,
	).Scan(&card.ID, &card.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return card, nil
}

// GetByID returns the card with the given id inside the given category, or
// common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, category string, id int64) (*models.Card, error) {
	query := `
		SELECT id, category, seq_no, sector, card_class, subclass, card_name, card_type, card_number, status, created_at
		FROM cards
		WHERE category = $1 AND id = $2
	`

	card := &models.Card{}
	err := r.db.QueryRowContext(ctx, query, category, id).Scan(
		&card.ID, &card.Category, &card.SeqNo, &card.Sector, &card.Class, &card.Subclass,
		&card.Name, &card.Type, &card.Number, &card.Status, &card.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return card, nil
}

// ListByCategory returns all cards of a category in insertion order.
func (r *PostgresRepository) ListByCategory(ctx context.Context, category string) ([]*models.Card, error) {
	query := `
		SELECT id, category, seq_no, sector, card_class, subclass, card_name, card_type, card_number, status, created_at
		FROM cards
		WHERE category = $1
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Card
	for rows.Next() {
		card := &models.Card{}
		if err := rows.Scan(
			&card.ID, &card.Category, &card.SeqNo, &card.Sector, &card.Class, &card.Subclass,
			&card.Name, &card.Type, &card.Number, &card.Status, &card.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, card)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes the card; its deliveries go with it via the schema's
// ON DELETE CASCADE. Returns common.ErrorNotFound when nothing matched.
func (r *PostgresRepository) Delete(ctx context.Context, category string, id int64) error {
	query := `DELETE FROM cards WHERE category = $1 AND id = $2`

	res, err := r.db.ExecContext(ctx, query, category, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
