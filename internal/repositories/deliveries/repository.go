package deliveries

import (
	"context"

	"github.com/dgaraym/cardtrack/internal/models"
)

type Repository interface {
	Create(ctx context.Context, delivery *models.Delivery) (*models.Delivery, error)
	Update(ctx context.Context, delivery *models.Delivery) error
	ListByCard(ctx context.Context, category string, cardID int64) ([]*models.Delivery, error)
	ListByCategory(ctx context.Context, category string) ([]*models.Delivery, error)
}
