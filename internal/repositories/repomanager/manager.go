package repomanager

import (
	"context"
	"database/sql"

	"github.com/dgaraym/cardtrack/internal/dbx"
	"github.com/dgaraym/cardtrack/internal/repositories/accesscodes"
	"github.com/dgaraym/cardtrack/internal/repositories/cards"
	"github.com/dgaraym/cardtrack/internal/repositories/deliveries"
)

// RepositoryManager hands out repositories bound to a specific DBTX, so
// that a service can use the same repository type inside and outside a
// transaction.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Cards(db dbx.DBTX) cards.Repository
	Deliveries(db dbx.DBTX) deliveries.Repository
	AccessCodes(db dbx.DBTX) accesscodes.Repository
}
