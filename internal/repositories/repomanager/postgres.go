package repomanager

import (
	"context"
	"database/sql"

	"github.com/dgaraym/cardtrack/internal/dbx"
	"github.com/dgaraym/cardtrack/internal/migrations"
	"github.com/dgaraym/cardtrack/internal/repositories/accesscodes"
	"github.com/dgaraym/cardtrack/internal/repositories/cards"
	"github.com/dgaraym/cardtrack/internal/repositories/deliveries"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct {
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Cards(db dbx.DBTX) cards.Repository {
	return cards.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Deliveries(db dbx.DBTX) deliveries.Repository {
	return deliveries.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) AccessCodes(db dbx.DBTX) accesscodes.Repository {
	return accesscodes.NewPostgresRepository(db)
}

// RunMigrations applies the embedded goose migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}
