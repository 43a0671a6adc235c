package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dgaraym/cardtrack/internal/categories"
	"github.com/dgaraym/cardtrack/internal/common"
	"github.com/dgaraym/cardtrack/internal/custody"
	"github.com/dgaraym/cardtrack/internal/models"
)

func newRegistryService(t *testing.T, m *fakeRepoManager) *RegistryService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	return NewRegistryService(db, m, discardLogger())
}

func TestCreateCard(t *testing.T) {
	m := newFakeRepoManager()
	s := newRegistryService(t, m)

	card, err := s.CreateCard(context.Background(), "module", map[string]string{
		"seq_no":      "1",
		"sector":      "B Wing",
		"card_name":   "Storage room",
		"card_number": " M-042 ",
	}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if card.ID == 0 {
		t.Error("expected created card to get an id")
	}
	if card.Category != categories.Module {
		t.Errorf("expected normalized category, got %q", card.Category)
	}
	if card.Number != "M-042" {
		t.Errorf("expected trimmed card number, got %q", card.Number)
	}
	if card.Status != models.StatusActive {
		t.Errorf("expected blank status to default to Active, got %q", card.Status)
	}
}

func TestCreateCardUnknownCategory(t *testing.T) {
	s := newRegistryService(t, newFakeRepoManager())

	_, err := s.CreateCard(context.Background(), "GARAGE", nil, "")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Errorf("expected ErrorNotFound, got %v", err)
	}
}

func TestListCards(t *testing.T) {
	m := newFakeRepoManager()
	delivered := seedCard(m, categories.Module, "M-001")
	returned := seedCard(m, categories.Module, "M-002")
	seedCard(m, categories.Module, "M-003")

	t1 := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	seedDelivery(m, categories.Module, delivered.ID, t1, nil)
	r1 := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	seedDelivery(m, categories.Module, returned.ID, t1, &r1)

	s := newRegistryService(t, m)

	rows, err := s.ListCards(context.Background(), categories.Module, FilterAll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].State != custody.StateDelivered {
		t.Errorf("expected first card delivered, got %v", rows[0].State)
	}
	if rows[0].StatusText != "Delivered to A. Lopez (2024-01-01 10:00:00)" {
		t.Errorf("unexpected status text %q", rows[0].StatusText)
	}
	if rows[1].State != custody.StateReturned {
		t.Errorf("expected second card returned, got %v", rows[1].State)
	}
	if rows[2].State != custody.StateAvailable {
		t.Errorf("expected third card available, got %v", rows[2].State)
	}
	if rows[2].StatusText != "Available" {
		t.Errorf("unexpected status text %q", rows[2].StatusText)
	}
}

func TestListCardsFiltered(t *testing.T) {
	m := newFakeRepoManager()
	delivered := seedCard(m, categories.Module, "M-001")
	returned := seedCard(m, categories.Module, "M-002")
	seedCard(m, categories.Module, "M-003")

	t1 := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	seedDelivery(m, categories.Module, delivered.ID, t1, nil)
	r1 := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	seedDelivery(m, categories.Module, returned.ID, t1, &r1)

	s := newRegistryService(t, m)

	rows, err := s.ListCards(context.Background(), categories.Module, FilterDelivered)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].Card.ID != delivered.ID {
		t.Errorf("expected only the delivered card, got %d rows", len(rows))
	}

	rows, err = s.ListCards(context.Background(), categories.Module, FilterReturned)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].Card.ID != returned.ID {
		t.Errorf("expected only the returned card, got %d rows", len(rows))
	}
}

func TestDeleteCard(t *testing.T) {
	m := newFakeRepoManager()
	card := seedCard(m, categories.Master, "K-007")
	s := newRegistryService(t, m)

	if err := s.DeleteCard(context.Background(), categories.Master, card.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.cards.items) != 0 {
		t.Error("expected card to be removed")
	}

	if err := s.DeleteCard(context.Background(), categories.Master, 99); !errors.Is(err, common.ErrorNotFound) {
		t.Errorf("expected ErrorNotFound, got %v", err)
	}
}

func TestImportCards(t *testing.T) {
	m := newFakeRepoManager()
	db, mock := newSQLMockDB(t)
	s := NewRegistryService(db, m, discardLogger())

	mock.ExpectBegin()
	mock.ExpectCommit()

	rows := [][]string{
		{"No.", "Module / Sector", "Card Name", "Card Type", "Card Number", "Active / Inactive"},
		{"1", "B Wing", "Storage room", "Standard", "M-001", "Active"},
		{"2", "B Wing", "Server room", "Restricted", "M-002", "Inactive"},
		{"", "", "", "", "", ""},
		{"3", "C Wing", "Archive", "Standard", "M-003", "whatever"},
	}

	imported, err := s.ImportCards(context.Background(), categories.Module, rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if imported != 3 {
		t.Errorf("expected 3 imported cards, got %d", imported)
	}
	if got := len(m.cards.items); got != 3 {
		t.Fatalf("expected 3 stored cards, got %d", got)
	}

	first := m.cards.items[0]
	if first.Sector != "B Wing" || first.Number != "M-001" {
		t.Errorf("unexpected first card %+v", first)
	}
	if first.Status != models.StatusActive {
		t.Errorf("expected Active, got %q", first.Status)
	}
	if m.cards.items[1].Status != models.StatusInactive {
		t.Errorf("expected Inactive, got %q", m.cards.items[1].Status)
	}
	if m.cards.items[2].Status != models.StatusActive {
		t.Errorf("expected unrecognized status to default to Active, got %q", m.cards.items[2].Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestImportCardsByCanonicalKeys(t *testing.T) {
	m := newFakeRepoManager()
	db, mock := newSQLMockDB(t)
	s := NewRegistryService(db, m, discardLogger())

	mock.ExpectBegin()
	mock.ExpectCommit()

	rows := [][]string{
		{"card_number", "card_name", "status"},
		{"K-001", "Main gate", "Inactive"},
	}

	imported, err := s.ImportCards(context.Background(), categories.Master, rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if imported != 1 {
		t.Fatalf("expected 1 imported card, got %d", imported)
	}
	card := m.cards.items[0]
	if card.Number != "K-001" || card.Name != "Main gate" || card.Status != models.StatusInactive {
		t.Errorf("unexpected card %+v", card)
	}
}

func TestImportCardsRollsBackOnError(t *testing.T) {
	m := newFakeRepoManager()
	m.cards.createErr = common.ErrorInternal
	db, mock := newSQLMockDB(t)
	s := NewRegistryService(db, m, discardLogger())

	mock.ExpectBegin()
	mock.ExpectRollback()

	rows := [][]string{
		{"card_number"},
		{"M-001"},
	}

	_, err := s.ImportCards(context.Background(), categories.Module, rows)
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("expected ErrorInternal, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestImportCardsEmptyInput(t *testing.T) {
	s := newRegistryService(t, newFakeRepoManager())

	imported, err := s.ImportCards(context.Background(), categories.Module, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if imported != 0 {
		t.Errorf("expected 0 imported cards, got %d", imported)
	}
}

func TestTemplateHeader(t *testing.T) {
	s := newRegistryService(t, newFakeRepoManager())

	header, err := s.TemplateHeader("maintenance")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"No.", "Category", "Subcategory", "Card Name", "Card Type", "Card Number", "Active / Inactive"}
	if len(header) != len(want) {
		t.Fatalf("expected %d columns, got %d", len(want), len(header))
	}
	for i := range want {
		if header[i] != want[i] {
			t.Errorf("column %d: expected %q, got %q", i, want[i], header[i])
		}
	}

	if _, err := s.TemplateHeader("GARAGE"); !errors.Is(err, common.ErrorNotFound) {
		t.Errorf("expected ErrorNotFound, got %v", err)
	}
}
