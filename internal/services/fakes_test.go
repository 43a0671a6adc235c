package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dgaraym/cardtrack/internal/common"
	"github.com/dgaraym/cardtrack/internal/dbx"
	"github.com/dgaraym/cardtrack/internal/logging"
	"github.com/dgaraym/cardtrack/internal/models"
	"github.com/dgaraym/cardtrack/internal/repositories/accesscodes"
	"github.com/dgaraym/cardtrack/internal/repositories/cards"
	"github.com/dgaraym/cardtrack/internal/repositories/deliveries"
)

// --- shared test fakes ---
//
// The fakes behave like tiny in-memory stores so service flows can be
// exercised end to end; transactions still go through a sqlmock *sql.DB
// so Begin/Commit expectations hold.

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type fakeCardsRepo struct {
	nextID int64
	items  []*models.Card

	createErr error
}

func (f *fakeCardsRepo) Create(ctx context.Context, card *models.Card) (*models.Card, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	card.ID = f.nextID
	f.items = append(f.items, card)
	return card, nil
}

func (f *fakeCardsRepo) GetByID(ctx context.Context, category string, id int64) (*models.Card, error) {
	for _, c := range f.items {
		if c.Category == category && c.ID == id {
			return c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeCardsRepo) ListByCategory(ctx context.Context, category string) ([]*models.Card, error) {
	var result []*models.Card
	for _, c := range f.items {
		if c.Category == category {
			result = append(result, c)
		}
	}
	return result, nil
}

func (f *fakeCardsRepo) Delete(ctx context.Context, category string, id int64) error {
	for i, c := range f.items {
		if c.Category == category && c.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

type fakeDeliveriesRepo struct {
	nextID  int64
	items   []*models.Delivery
	updates int
}

func (f *fakeDeliveriesRepo) Create(ctx context.Context, d *models.Delivery) (*models.Delivery, error) {
	f.nextID++
	d.ID = f.nextID
	f.items = append(f.items, d)
	return d, nil
}

func (f *fakeDeliveriesRepo) Update(ctx context.Context, d *models.Delivery) error {
	for _, item := range f.items {
		if item.ID == d.ID {
			f.updates++
			return nil
		}
	}
	return common.ErrorNotFound
}

func (f *fakeDeliveriesRepo) ListByCard(ctx context.Context, category string, cardID int64) ([]*models.Delivery, error) {
	var result []*models.Delivery
	for _, d := range f.items {
		if d.Category == category && d.CardID != nil && *d.CardID == cardID {
			result = append(result, d)
		}
	}
	return result, nil
}

func (f *fakeDeliveriesRepo) ListByCategory(ctx context.Context, category string) ([]*models.Delivery, error) {
	var result []*models.Delivery
	for _, d := range f.items {
		if d.Category == category {
			result = append(result, d)
		}
	}
	return result, nil
}

type fakeAccessCodesRepo struct {
	nextID int64
	items  []*models.AccessCode

	countErr error
}

func (f *fakeAccessCodesRepo) Create(ctx context.Context, code *models.AccessCode) (*models.AccessCode, error) {
	f.nextID++
	code.ID = f.nextID
	f.items = append(f.items, code)
	return code, nil
}

func (f *fakeAccessCodesRepo) List(ctx context.Context) ([]*models.AccessCode, error) {
	return f.items, nil
}

func (f *fakeAccessCodesRepo) Count(ctx context.Context) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return int64(len(f.items)), nil
}

func (f *fakeAccessCodesRepo) Delete(ctx context.Context, id int64) error {
	for i, c := range f.items {
		if c.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

type fakeRepoManager struct {
	cards       *fakeCardsRepo
	deliveries  *fakeDeliveriesRepo
	accessCodes *fakeAccessCodesRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		cards:       &fakeCardsRepo{},
		deliveries:  &fakeDeliveriesRepo{},
		accessCodes: &fakeAccessCodesRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Cards(db dbx.DBTX) cards.Repository { return m.cards }

func (m *fakeRepoManager) Deliveries(db dbx.DBTX) deliveries.Repository { return m.deliveries }

func (m *fakeRepoManager) AccessCodes(db dbx.DBTX) accesscodes.Repository { return m.accessCodes }
