package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	electionadmin "ballotbox/contexts/election-operations/election-admin"
	adminpostgres "ballotbox/contexts/election-operations/election-admin/adapters/postgres"
	adminworkers "ballotbox/contexts/election-operations/election-admin/application/workers"
	voteengine "ballotbox/contexts/election-operations/vote-engine"
	enginepostgres "ballotbox/contexts/election-operations/vote-engine/adapters/postgres"
	voterregistry "ballotbox/contexts/election-operations/voter-registry"
	registrypostgres "ballotbox/contexts/election-operations/voter-registry/adapters/postgres"
	"ballotbox/contexts/election-operations/voter-registry/application/commands"
	registryworkers "ballotbox/contexts/election-operations/voter-registry/application/workers"
	"ballotbox/internal/platform/config"
	"ballotbox/internal/platform/db"
	"ballotbox/internal/platform/httpserver"
	"ballotbox/internal/platform/mailer"
	"ballotbox/internal/platform/messaging"

	"golang.org/x/sync/errgroup"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	mailRelay    registryworkers.MailRelay
	mailConsumer registryworkers.MailConsumer
	sweeper      adminworkers.FinishSweeper
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	adminModule, registryModule, engineModule := buildModules(cfg, pg, logger, nil)

	server := httpserver.New(adminModule, registryModule, engineModule, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	bus := messaging.NewBus(logger)
	adminModule, registryModule, _ := buildModules(cfg, pg, logger, bus)

	return &WorkerApp{
		postgres:  pg,
		mailRelay: registryModule.Relay,
		mailConsumer: registryworkers.MailConsumer{
			Subscriber: bus,
			Sender: mailer.SMTPSender{
				Host:     cfg.SMTPHost,
				Port:     cfg.SMTPPort,
				Username: cfg.SMTPUsername,
				Password: cfg.SMTPPassword,
				Logger:   logger,
			},
			ConsumerGroup: "ballotbox-mail-cg",
			Logger:        logger,
		},
		sweeper: adminworkers.FinishSweeper{
			Admin:  adminModule.Admin,
			Clock:  adminpostgres.SystemClock{},
			Logger: logger,
		},
		pollInterval: cfg.WorkerPollInterval,
		logger:       logger,
	}, nil
}

func buildModules(
	cfg config.Config,
	pg *db.Postgres,
	logger *slog.Logger,
	bus *messaging.Bus,
) (electionadmin.Module, voterregistry.Module, voteengine.Module) {
	adminRepo := adminpostgres.NewRepository(pg.DB, logger)
	adminModule := electionadmin.NewModule(electionadmin.Dependencies{
		Elections:   adminRepo,
		Clock:       adminpostgres.SystemClock{},
		IDGen:       adminpostgres.UUIDGenerator{},
		AdminEmails: cfg.AdminEmails,
		Logger:      logger,
	})

	registryRepo := registrypostgres.NewRepository(pg.DB, logger)
	registryDeps := voterregistry.Dependencies{
		Voters:    registryRepo,
		Elections: registryRepo,
		Mail:      registryRepo,
		Clock:     registrypostgres.SystemClock{},
		Tokens:    registrypostgres.SecretTokenGenerator{},
		IDGen:     registrypostgres.UUIDGenerator{},
		Settings: commands.MailSettings{
			FromAddress:       cfg.MailFrom,
			HelpAddress:       cfg.MailHelpAddress,
			StudentMailDomain: cfg.StudentMailDomain,
			PublicBaseURL:     cfg.PublicBaseURL,
		},
		Logger: logger,
	}
	if bus != nil {
		registryDeps.Publisher = bus
	}
	registryModule := voterregistry.NewModule(registryDeps)

	engineRepo := enginepostgres.NewRepository(pg, logger)
	engineModule := voteengine.NewModule(voteengine.Dependencies{
		Reader: engineRepo,
		Caster: engineRepo,
		Logger: logger,
	})

	return adminModule, registryModule, engineModule
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return w.mailConsumer.Start(ctx)
	})
	group.Go(func() error {
		ticker := time.NewTicker(w.pollInterval)
		defer ticker.Stop()

		w.logger.Info("worker app started",
			"event", "bootstrap_worker_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
			"poll_interval", w.pollInterval.String(),
		)

		for {
			if err := w.sweeper.RunOnce(ctx); err != nil {
				return err
			}
			if err := w.mailRelay.RunOnce(ctx); err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		}
	})

	return group.Wait()
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
