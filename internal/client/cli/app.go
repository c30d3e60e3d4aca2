package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/printdraft/internal/client/api"
	"github.com/dmitrijs2005/printdraft/internal/client/config"
	"github.com/dmitrijs2005/printdraft/internal/client/draft"
	"github.com/dmitrijs2005/printdraft/internal/client/repositories"
	"github.com/dmitrijs2005/printdraft/internal/client/repositories/progress"
	"github.com/dmitrijs2005/printdraft/internal/logging"
)

// Wizard stages, persisted between runs.
const (
	StageFiles  = "files"
	StageRanges = "ranges"
)

type App struct {
	config     *config.Config
	controller *draft.Controller
	repos      *repositories.Repositories
	log        logging.Logger

	reader *bufio.Reader
	out    io.Writer

	stage string
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	repos, err := repositories.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	a := &App{
		config: c,
		repos:  repos,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		stage:  StageFiles,
	}

	orderID := ""
	if marker, err := repos.Progress.Get(ctx); err != nil {
		log.Error(ctx, "error reading saved progress", "error", err)
	} else if marker != nil {
		if a.Confirm(ctx, fmt.Sprintf("Resume draft for order %s (stage: %s)?", marker.OrderID, marker.Stage)) {
			orderID = marker.OrderID
			a.stage = marker.Stage
		} else if err := repos.Progress.Clear(ctx); err != nil {
			log.Error(ctx, "error clearing saved progress", "error", err)
		}
	}
	if orderID == "" {
		orderID = uuid.NewString()
	}

	apiClient := api.NewHTTPClient(c.APIBaseURL, c.RequestTimeout)

	controller, err := draft.NewController(ctx, orderID, apiClient, a, log)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}
	a.controller = controller

	if err := a.saveStage(ctx); err != nil {
		log.Error(ctx, "error saving progress", "error", err)
	}

	return a, nil
}

// Confirm implements the draft.Dialog collaborator: destructive actions ask
// the user before proceeding.
func (a *App) Confirm(_ context.Context, prompt string) bool {
	answer, err := GetSimpleText(a.reader, prompt+" [y/n]", a.out)
	if err != nil {
		return false
	}
	return answer == "y" || answer == "yes"
}

func (a *App) saveStage(ctx context.Context) error {
	return a.repos.Progress.Save(ctx, &progress.Marker{
		Stage:     a.stage,
		OrderID:   a.controller.OrderID(),
		ExpiresAt: time.Now().Add(a.config.DraftTTL),
	})
}

func (a *App) setStage(ctx context.Context, stage string) {
	if a.stage == stage {
		return
	}
	a.stage = stage
	if err := a.saveStage(ctx); err != nil {
		a.log.Error(ctx, "error saving progress", "error", err)
	}
}

func (a *App) getStatus() string {
	s := a.stage
	if n := a.controller.TransfersInFlight(); n > 0 {
		s = fmt.Sprintf("%s, %d uploading", s, n)
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()

	printlnFn("Welcome to the print order wizard (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) Close() {
	a.controller.Close()
	if err := a.repos.Close(); err != nil {
		a.log.Error(context.Background(), "error closing database", "error", err)
	}
}
