package cards

import (
	"context"

	"github.com/dgaraym/cardtrack/internal/models"
)

type Repository interface {
	Create(ctx context.Context, card *models.Card) (*models.Card, error)
	GetByID(ctx context.Context, category string, id int64) (*models.Card, error)
	ListByCategory(ctx context.Context, category string) ([]*models.Card, error)
	Delete(ctx context.Context, category string, id int64) error
}
