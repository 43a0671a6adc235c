// Package deliveries provides the PostgreSQL-backed repository for
// custody transactions. Histories are always returned ordered ascending
// by delivered_at with id as the secondary key, which is the ordering the
// status resolution contract requires.
package deliveries

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgaraym/cardtrack/internal/common"
	"github.com/dgaraym/cardtrack/internal/dbx"
	"github.com/dgaraym/cardtrack/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// PostgresRepository implements delivery storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// openConflict maps the partial unique index violation (second open
// delivery for the same card) to its sentinel error.
func openConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return common.ErrOpenDeliveryConflict
	}
	return fmt.Errorf("db error: %w", err)
}

// Create inserts a delivery and fills in its generated id and created_at.
func (r *PostgresRepository) Create(ctx context.Context, delivery *models.Delivery) (*models.Delivery, error) {
	query := `
		INSERT INTO deliveries (category, card_id, card_number, holder_id, holder_name, holder_role, holder_org, delivered_at, returned_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		delivery.Category, delivery.CardID, delivery.CardNumber,
		delivery.HolderID, delivery.HolderName, delivery.HolderRole, delivery.HolderOrg,
		delivery.DeliveredAt, delivery.ReturnedAt,
	).Scan(&delivery.ID, &delivery.CreatedAt)
	if err != nil {
		return nil, openConflict(err)
	}

	return delivery, nil
}

// Update rewrites the mutable fields of an existing delivery in place.
// The id never changes; this is how an open handover is corrected or
// resolved with a return.
func (r *PostgresRepository) Update(ctx context.Context, delivery *models.Delivery) error {
	query := `
		UPDATE deliveries
		SET holder_id = $1, holder_name = $2, holder_role = $3, holder_org = $4, delivered_at = $5, returned_at = $6
		WHERE id = $7
	`

	res, err := r.db.ExecContext(ctx, query,
		delivery.HolderID, delivery.HolderName, delivery.HolderRole, delivery.HolderOrg,
		delivery.DeliveredAt, delivery.ReturnedAt, delivery.ID,
	)
	if err != nil {
		return openConflict(err)
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

// ListByCard returns the full ordered history of one card.
func (r *PostgresRepository) ListByCard(ctx context.Context, category string, cardID int64) ([]*models.Delivery, error) {
	query := `
		SELECT id, category, card_id, card_number, holder_id, holder_name, holder_role, holder_org, delivered_at, returned_at, created_at
		FROM deliveries
		WHERE category = $1 AND card_id = $2
		ORDER BY delivered_at ASC, id ASC
	`
	return r.list(ctx, query, category, cardID)
}

// ListByCategory returns every delivery of a category, ordered like
// ListByCard.
func (r *PostgresRepository) ListByCategory(ctx context.Context, category string) ([]*models.Delivery, error) {
	query := `
		SELECT id, category, card_id, card_number, holder_id, holder_name, holder_role, holder_org, delivered_at, returned_at, created_at
		FROM deliveries
		WHERE category = $1
		ORDER BY delivered_at ASC, id ASC
	`
	return r.list(ctx, query, category)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Delivery, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Delivery
	for rows.Next() {
		d := &models.Delivery{}
		if err := rows.Scan(
			&d.ID, &d.Category, &d.CardID, &d.CardNumber,
			&d.HolderID, &d.HolderName, &d.HolderRole, &d.HolderOrg,
			&d.DeliveredAt, &d.ReturnedAt, &d.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
