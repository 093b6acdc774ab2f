package postgres

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration

	"github.com/AntonStoeckl/entity-change-events-go/example/core"
	"github.com/AntonStoeckl/entity-change-events-go/internal/rehydration"
)

const (
	colID   = "id"
	colCode = "code"
)

// ApplicationRepository stores the applications access rights are granted for.
type ApplicationRepository struct {
	db       DBAdapter
	settings settings
}

// NewApplicationRepository creates an ApplicationRepository running statements on db outside of transactions.
func NewApplicationRepository(db DBAdapter, options ...Option) (ApplicationRepository, error) {
	s, err := newSettings(options)
	if err != nil {
		return ApplicationRepository{}, err
	}

	return ApplicationRepository{db: db, settings: s}, nil
}

// Add stores a transient application and assigns its ID. Persisted applications are left alone.
func (r ApplicationRepository) Add(ctx context.Context, application *core.Application) error {
	if application.ID() != 0 {
		return nil
	}

	sqlQuery, err := toSQL(goqu.Dialect(dialectPostgres).
		Insert(r.settings.tables.Applications).
		Rows(goqu.Record{colCode: application.Code()}).
		Returning(goqu.C(colID)))
	if err != nil {
		return err
	}

	id, err := r.settings.insertReturningID(ctx, adapterFrom(ctx, r.db), sqlQuery)
	if err != nil {
		return err
	}

	application.AssignID(rehydration.Grant(), id)

	return nil
}

// GetRandom returns a randomly chosen application.
func (r ApplicationRepository) GetRandom(ctx context.Context) (*core.Application, error) {
	applications, err := r.list(ctx, goqu.Dialect(dialectPostgres).
		From(r.settings.tables.Applications).
		Select(colID, colCode).
		Order(goqu.L("RANDOM()").Asc()).
		Limit(1))
	if err != nil {
		return nil, err
	}

	if len(applications) == 0 {
		return nil, ErrNoApplicationFound
	}

	return applications[0], nil
}

// List returns all applications ordered by ID.
func (r ApplicationRepository) List(ctx context.Context) ([]*core.Application, error) {
	return r.list(ctx, goqu.Dialect(dialectPostgres).
		From(r.settings.tables.Applications).
		Select(colID, colCode).
		Order(goqu.C(colID).Asc()))
}

func (r ApplicationRepository) list(ctx context.Context, selectStmt *goqu.SelectDataset) ([]*core.Application, error) {
	sqlQuery, err := toSQL(selectStmt)
	if err != nil {
		return nil, err
	}

	applications := make([]*core.Application, 0)
	err = r.settings.query(ctx, adapterFrom(ctx, r.db), sqlQuery, func(rows DBRows) error {
		var id int64
		var code string
		if scanErr := rows.Scan(&id, &code); scanErr != nil {
			return scanErr
		}

		applications = append(applications, core.ReconstructApplication(rehydration.Grant(), id, code))

		return nil
	})
	if err != nil {
		return nil, err
	}

	return applications, nil
}
