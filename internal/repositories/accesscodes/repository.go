package accesscodes

import (
	"context"

	"github.com/dgaraym/cardtrack/internal/models"
)

type Repository interface {
	Create(ctx context.Context, code *models.AccessCode) (*models.AccessCode, error)
	List(ctx context.Context) ([]*models.AccessCode, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id int64) error
}
