// Package cli implements the interactive console of the card custody
// tracker. Commands are dispatched by a small REPL; every protected
// command revalidates the session token and falls back to a login
// prompt when it is missing or expired.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"

	"github.com/dgaraym/cardtrack/internal/config"
	"github.com/dgaraym/cardtrack/internal/logging"
	"github.com/dgaraym/cardtrack/internal/models"
	"github.com/dgaraym/cardtrack/internal/repositories/repomanager"
	"github.com/dgaraym/cardtrack/internal/services"
)

// Test seams for the interactive input helpers.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// accessService is the slice of services.AccessService the CLI needs.
type accessService interface {
	Login(ctx context.Context, plain string) (string, error)
	CheckSession(token string) error
	AddAccessCode(ctx context.Context, plain string) (*models.AccessCode, error)
	RemoveAccessCode(ctx context.Context, id int64) error
	ListAccessCodes(ctx context.Context) ([]*models.AccessCode, error)
}

type registryService interface {
	CreateCard(ctx context.Context, category string, values map[string]string, status string) (*models.Card, error)
	ListCards(ctx context.Context, category, filter string) ([]services.CardRow, error)
	DeleteCard(ctx context.Context, category string, id int64) error
	ImportCards(ctx context.Context, category string, rows [][]string) (int, error)
	TemplateHeader(category string) ([]string, error)
}

type custodyService interface {
	RecordDelivery(ctx context.Context, category string, cardID int64, p services.RecordDeliveryParams) (*models.Delivery, error)
	DeliverContext(ctx context.Context, category string, cardID int64) (*services.DeliverPrefill, error)
	CardHistory(ctx context.Context, category string, cardID int64) (*models.Card, []*models.Delivery, error)
	CategoryHistory(ctx context.Context, category, filter string) ([]*models.Delivery, error)
}

type summaryService interface {
	Summary(ctx context.Context) ([]services.SummaryRow, error)
}

// App wires the services to the interactive console.
type App struct {
	config   *config.Config
	log      logging.Logger
	access   accessService
	registry registryService
	custody  custodyService
	summary  summaryService

	sessionToken string
	reader       *bufio.Reader
	out          io.Writer
}

// NewApp builds the console application on top of an open database
// connection.
func NewApp(cfg *config.Config, db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *App {
	return &App{
		config:   cfg,
		log:      log,
		access:   services.NewAccessService(db, m, log, cfg),
		registry: services.NewRegistryService(db, m, log),
		custody:  services.NewCustodyService(db, m, log),
		summary:  services.NewSummaryService(db, m),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}
}

func (a *App) isLoggedIn() bool {
	return a.sessionToken != "" && a.access.CheckSession(a.sessionToken) == nil
}

// Run starts the REPL and blocks until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	printlnFn("Card custody tracker (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) status() string {
	if a.isLoggedIn() {
		return "unlocked"
	}
	return "locked"
}
