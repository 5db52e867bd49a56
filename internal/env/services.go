package environment

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"numbers-bot/internal/config"
	"numbers-bot/internal/localization"
	"numbers-bot/internal/storage"
	"numbers-bot/internal/stories/catalog"
	"numbers-bot/internal/stories/lookups"
	"numbers-bot/internal/stories/users"
	"numbers-bot/internal/telegram"
	"numbers-bot/internal/telegram/cmds"
	"numbers-bot/internal/telegram/flows/buynumber"
	"numbers-bot/internal/telegram/presenter"
	"numbers-bot/internal/telegram/states"
	"numbers-bot/internal/workers"
	"numbers-bot/internal/workers/sessionsweep"
)

type Services struct {
	TelegramRouter *telegram.Router
	StateManager   *states.Manager
	Workers        *workers.Manager
}

func newServices(ctx context.Context, clients *Clients, cfg *config.Config, logger *slog.Logger) (*Services, error) {
	storageImpl := storage.New(clients.SQLiteDB.DB)
	if err := storageImpl.Migrate(ctx); err != nil {
		return nil, errors.Wrap(err, "migrate storage")
	}

	l10n, err := localization.NewService()
	if err != nil {
		return nil, errors.Wrap(err, "load translations")
	}

	userService := users.NewService(storageImpl)
	lookupService := lookups.NewService(storageImpl, time.Now)
	catalogService := catalog.NewService(clients.SMSActivate)

	stateManager := states.NewManager(cfg.Session.TTL)
	adminChecker := telegram.NewAdminChecker(cfg.Telegram)

	buyNumberHandler := buynumber.NewHandler(
		clients.TelegramBot,
		stateManager,
		catalogService,
		newCatalogPresenter(cfg.Catalog),
		lookupService,
		l10n,
		logger.With("flow", "buynumber"),
	)

	statsCommand := cmds.NewStatsCommand(
		clients.TelegramBot,
		lookupService,
		userService,
		l10n,
	)

	router := telegram.NewRouter(
		clients.TelegramBot,
		stateManager,
		userService,
		adminChecker,
		l10n,
		buyNumberHandler,
		statsCommand,
		logger.With("component", "router"),
	)

	workerManager := workers.NewManager(
		logger.With("component", "workers"),
		sessionsweep.NewWorker(stateManager, cfg.Session.SweepSchedule, logger.With("worker", "session-sweep")),
	)

	return &Services{
		TelegramRouter: router,
		StateManager:   stateManager,
		Workers:        workerManager,
	}, nil
}

func newCatalogPresenter(cfg config.CatalogConfig) *presenter.Catalog {
	opts := []presenter.Option{
		presenter.WithSort(presenter.SortMode(cfg.Sort)),
	}
	if cfg.AllowListEnabled {
		opts = append(opts, presenter.WithAllowList(catalog.DefaultAllowList(cfg.AllowedIDs)))
	}
	return presenter.NewCatalog(opts...)
}
