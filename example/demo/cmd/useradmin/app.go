package main

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/AntonStoeckl/entity-change-events-go/example/core"
	"github.com/AntonStoeckl/entity-change-events-go/example/features/command/createuser"
	"github.com/AntonStoeckl/entity-change-events-go/example/features/command/updateuser"
	"github.com/AntonStoeckl/entity-change-events-go/example/features/query/getauditlogs"
	"github.com/AntonStoeckl/entity-change-events-go/example/features/query/getusers"
	"github.com/AntonStoeckl/entity-change-events-go/example/shell"
	"github.com/AntonStoeckl/entity-change-events-go/example/shell/config"
	"github.com/AntonStoeckl/entity-change-events-go/example/shell/observable"
	"github.com/AntonStoeckl/entity-change-events-go/example/shell/postgres"
)

const (
	driverPGX  = "pgx"
	driverSQL  = "sql"
	driverSQLX = "sqlx"
)

// App holds the wired use cases.
type App struct {
	cfg          Config
	logger       *slog.Logger
	applications postgres.ApplicationRepository

	createUser   *observable.CommandWrapper[createuser.Command, shell.UserView]
	updateUser   *observable.CommandWrapper[updateuser.Command, shell.UserView]
	getUsers     *observable.QueryWrapper[getusers.Query, getusers.Users]
	getAuditLogs *observable.QueryWrapper[getauditlogs.Query, getauditlogs.AuditLogs]
}

// NewApp connects to the database and wires repositories, publisher, handlers and the transaction
// boundary. The returned function closes the database connection.
func NewApp(ctx context.Context, cfg Config, logger *slog.Logger, registry prometheus.Registerer) (*App, func(), error) {
	db, beginner, closeDB, err := connect(ctx, cfg.Driver)
	if err != nil {
		return nil, nil, err
	}

	metrics := shell.NewPrometheusMetricsCollector(registry, metricsNamespace, logger)
	repositoryOptions := []postgres.Option{postgres.WithLogger(logger)}

	if err = postgres.CreateSchema(ctx, db, repositoryOptions...); err != nil {
		closeDB()
		return nil, nil, err
	}

	users, err := postgres.NewUserRepository(db, repositoryOptions...)
	if err != nil {
		closeDB()
		return nil, nil, err
	}

	applications, err := postgres.NewApplicationRepository(db, repositoryOptions...)
	if err != nil {
		closeDB()
		return nil, nil, err
	}

	auditLogs, err := postgres.NewAuditLogRepository(db, repositoryOptions...)
	if err != nil {
		closeDB()
		return nil, nil, err
	}

	publisher, err := shell.NewPublisher(shell.WithPublisherLogger(logger), shell.WithPublisherMetrics(metrics))
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	shell.NewAuditLogHandler(auditLogs).SubscribeTo(publisher)
	shell.NewEventJournalHandler(logger).SubscribeTo(publisher)

	boundary, err := shell.NewTransactionBoundary(beginner, publisher, shell.WithLogger(logger), shell.WithMetrics(metrics))
	if err != nil {
		closeDB()
		return nil, nil, err
	}

	app := &App{cfg: cfg, logger: logger, applications: applications}

	app.createUser, err = observable.NewCommandWrapper[createuser.Command, shell.UserView](
		createuser.NewCommandHandler(boundary, users),
		observable.WithCommandMetrics[createuser.Command, shell.UserView](metrics),
		observable.WithCommandLogging[createuser.Command, shell.UserView](logger),
	)
	if err != nil {
		closeDB()
		return nil, nil, err
	}

	app.updateUser, err = observable.NewCommandWrapper[updateuser.Command, shell.UserView](
		updateuser.NewCommandHandler(boundary, users, applications, core.NewAlphanumericGenerator()),
		observable.WithCommandMetrics[updateuser.Command, shell.UserView](metrics),
		observable.WithCommandLogging[updateuser.Command, shell.UserView](logger),
	)
	if err != nil {
		closeDB()
		return nil, nil, err
	}

	app.getUsers, err = observable.NewQueryWrapper[getusers.Query, getusers.Users](
		getusers.NewQueryHandler(users),
		observable.WithQueryMetrics[getusers.Query, getusers.Users](metrics),
		observable.WithQueryLogging[getusers.Query, getusers.Users](logger),
	)
	if err != nil {
		closeDB()
		return nil, nil, err
	}

	app.getAuditLogs, err = observable.NewQueryWrapper[getauditlogs.Query, getauditlogs.AuditLogs](
		getauditlogs.NewQueryHandler(auditLogs),
		observable.WithQueryMetrics[getauditlogs.Query, getauditlogs.AuditLogs](metrics),
		observable.WithQueryLogging[getauditlogs.Query, getauditlogs.AuditLogs](logger),
	)
	if err != nil {
		closeDB()
		return nil, nil, err
	}

	return app, closeDB, nil
}

// connect opens the connection pool for driver and returns an adapter and transaction source on it.
func connect(ctx context.Context, driver string) (postgres.DBAdapter, shell.BeginsTransactions, func(), error) {
	switch driver {
	case driverSQL:
		db, err := config.PostgresSQLDB(ctx)
		if err != nil {
			return nil, nil, nil, err
		}

		return postgres.NewSQLAdapter(db), postgres.NewSQLTxBeginner(db), func() { _ = db.Close() }, nil

	case driverSQLX:
		db, err := config.PostgresSQLXDB(ctx)
		if err != nil {
			return nil, nil, nil, err
		}

		return postgres.NewSQLXAdapter(db), postgres.NewSQLXTxBeginner(db), func() { _ = db.Close() }, nil

	default:
		poolConfig, err := config.PostgresPGXPoolConfig()
		if err != nil {
			return nil, nil, nil, err
		}

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, nil, nil, err
		}

		if err = pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}

		return postgres.NewPGXAdapter(pool), postgres.NewPGXTxBeginner(pool), pool.Close, nil
	}
}

// RunScenario seeds the applications, creates and changes users and logs the resulting state.
func (a *App) RunScenario(ctx context.Context) error {
	if err := a.seedApplications(ctx); err != nil {
		return err
	}

	for range a.cfg.Users {
		userCtx := shell.WithCorrelationID(ctx, uuid.New())

		created, err := a.createUser.Handle(userCtx, createuser.BuildCommand())
		if err != nil {
			return err
		}
		a.logger.Info("user created", "user", created.UserObjectID.String(), "domain_events", created.DomainEvents)

		for range a.cfg.Updates {
			updated, updateErr := a.updateUser.Handle(userCtx, updateuser.BuildCommand(created.UserObjectID))
			if updateErr != nil {
				return updateErr
			}
			a.logger.Info("user updated", "user", updated.UserObjectID.String(), "domain_events", updated.DomainEvents)
		}
	}

	users, err := a.getUsers.Handle(ctx, getusers.BuildQuery())
	if err != nil {
		return err
	}
	a.logger.Info("users", "count", len(users.Users), "users", users.Users)

	auditLogs, err := a.getAuditLogs.Handle(ctx, getauditlogs.BuildQuery())
	if err != nil {
		return err
	}
	a.logger.Info("audit logs", "count", len(auditLogs.Logs), "logs", auditLogs.Logs)

	return nil
}

func (a *App) seedApplications(ctx context.Context) error {
	existing, err := a.applications.List(ctx)
	if err != nil {
		return err
	}

	if len(existing) > 0 {
		return nil
	}

	for _, code := range a.cfg.Applications {
		if err = a.applications.Add(ctx, core.NewApplication(code)); err != nil {
			return err
		}
	}

	return nil
}
