package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/entity-change-events-go/example/core"
	"github.com/AntonStoeckl/entity-change-events-go/internal/rehydration"
)

const (
	colObjectID          = "object_id"
	colAuthenticationID  = "authentication_id"
	colUsername          = "username"
	colUserID            = "user_id"
	colApplicationID     = "application_id"
	colApplicationUserID = "application_user_id"

	aliasUser           = "u"
	aliasAuthentication = "a"
	aliasAccessRight    = "r"
	aliasApplication    = "p"
)

// UserRepository stores users together with their authentication and access rights.
//
// Loading rebuilds users without recording domain events.
type UserRepository struct {
	db           DBAdapter
	settings     settings
	applications ApplicationRepository
}

// NewUserRepository creates a UserRepository running statements on db outside of transactions.
func NewUserRepository(db DBAdapter, options ...Option) (UserRepository, error) {
	s, err := newSettings(options)
	if err != nil {
		return UserRepository{}, err
	}

	return UserRepository{
		db:           db,
		settings:     s,
		applications: ApplicationRepository{db: db, settings: s},
	}, nil
}

// Add stores a new user and assigns the generated IDs to it and its members.
func (r UserRepository) Add(ctx context.Context, user *core.User) error {
	db := adapterFrom(ctx, r.db)

	if err := r.addAuthentication(ctx, db, user.Authentication()); err != nil {
		return err
	}

	sqlQuery, err := toSQL(goqu.Dialect(dialectPostgres).
		Insert(r.settings.tables.Users).
		Rows(goqu.Record{
			colObjectID:         user.ObjectID().String(),
			colAuthenticationID: nullableID(user.AuthenticationID()),
		}).
		Returning(goqu.C(colID)))
	if err != nil {
		return err
	}

	id, err := r.settings.insertReturningID(ctx, db, sqlQuery)
	if err != nil {
		return err
	}

	user.AssignID(rehydration.Grant(), id)

	return r.addAccessRights(ctx, user)
}

// Save writes the current state of a user loaded or added before.
//
// A replaced authentication is deleted, as are access rights the user no longer holds.
func (r UserRepository) Save(ctx context.Context, user *core.User) error {
	if user.ID() == 0 {
		return ErrUserNotPersisted
	}

	db := adapterFrom(ctx, r.db)

	previousAuthenticationID, err := r.storedAuthenticationID(ctx, db, user.ID())
	if err != nil {
		return err
	}

	if err = r.addAuthentication(ctx, db, user.Authentication()); err != nil {
		return err
	}

	updateSQL, err := toSQL(goqu.Dialect(dialectPostgres).
		Update(r.settings.tables.Users).
		Set(goqu.Record{colAuthenticationID: nullableID(user.AuthenticationID())}).
		Where(goqu.C(colID).Eq(user.ID())))
	if err != nil {
		return err
	}

	if err = r.settings.exec(ctx, db, updateSQL); err != nil {
		return err
	}

	if previousAuthenticationID != 0 && previousAuthenticationID != user.AuthenticationID() {
		deleteSQL, buildErr := toSQL(goqu.Dialect(dialectPostgres).
			Delete(r.settings.tables.Authentications).
			Where(goqu.C(colID).Eq(previousAuthenticationID)))
		if buildErr != nil {
			return buildErr
		}

		if err = r.settings.exec(ctx, db, deleteSQL); err != nil {
			return err
		}
	}

	if err = r.deleteRevokedAccessRights(ctx, db, user); err != nil {
		return err
	}

	return r.addAccessRights(ctx, user)
}

// GetByObjectID loads the user with the given object ID.
func (r UserRepository) GetByObjectID(ctx context.Context, objectID uuid.UUID) (*core.User, error) {
	users, err := r.load(ctx, goqu.I(aliasUser+"."+colObjectID).Eq(objectID.String()))
	if err != nil {
		return nil, err
	}

	if len(users) == 0 {
		return nil, ErrUserNotFound
	}

	return users[0], nil
}

// List loads all users ordered by ID.
func (r UserRepository) List(ctx context.Context) ([]*core.User, error) {
	return r.load(ctx, nil)
}

type userRow struct {
	id               int64
	objectID         string
	authenticationID sql.NullInt64
	username         sql.NullString
}

type accessRightRow struct {
	id                int64
	userID            int64
	applicationUserID string
	applicationID     int64
	applicationCode   string
}

func (r UserRepository) load(ctx context.Context, where exp.Expression) ([]*core.User, error) {
	db := adapterFrom(ctx, r.db)

	selectStmt := goqu.Dialect(dialectPostgres).
		From(goqu.T(r.settings.tables.Users).As(aliasUser)).
		LeftJoin(
			goqu.T(r.settings.tables.Authentications).As(aliasAuthentication),
			goqu.On(goqu.I(aliasUser+"."+colAuthenticationID).Eq(goqu.I(aliasAuthentication+"."+colID))),
		).
		Select(
			goqu.I(aliasUser+"."+colID),
			goqu.Cast(goqu.I(aliasUser+"."+colObjectID), "TEXT"),
			goqu.I(aliasUser+"."+colAuthenticationID),
			goqu.I(aliasAuthentication+"."+colUsername),
		).
		Order(goqu.I(aliasUser + "." + colID).Asc())

	if where != nil {
		selectStmt = selectStmt.Where(where)
	}

	sqlQuery, err := toSQL(selectStmt)
	if err != nil {
		return nil, err
	}

	userRows := make([]userRow, 0)
	err = r.settings.query(ctx, db, sqlQuery, func(rows DBRows) error {
		var row userRow
		if scanErr := rows.Scan(&row.id, &row.objectID, &row.authenticationID, &row.username); scanErr != nil {
			return scanErr
		}

		userRows = append(userRows, row)

		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(userRows) == 0 {
		return []*core.User{}, nil
	}

	userIDs := make([]any, 0, len(userRows))
	for _, row := range userRows {
		userIDs = append(userIDs, row.id)
	}

	accessRightsByUser, err := r.loadAccessRights(ctx, db, userIDs)
	if err != nil {
		return nil, err
	}

	users := make([]*core.User, 0, len(userRows))
	for _, row := range userRows {
		user, buildErr := reconstructUser(row, accessRightsByUser[row.id])
		if buildErr != nil {
			return nil, buildErr
		}

		users = append(users, user)
	}

	return users, nil
}

func (r UserRepository) loadAccessRights(ctx context.Context, db DBAdapter, userIDs []any) (map[int64][]accessRightRow, error) {
	sqlQuery, err := toSQL(goqu.Dialect(dialectPostgres).
		From(goqu.T(r.settings.tables.AccessRights).As(aliasAccessRight)).
		Join(
			goqu.T(r.settings.tables.Applications).As(aliasApplication),
			goqu.On(goqu.I(aliasAccessRight+"."+colApplicationID).Eq(goqu.I(aliasApplication+"."+colID))),
		).
		Select(
			goqu.I(aliasAccessRight+"."+colID),
			goqu.I(aliasAccessRight+"."+colUserID),
			goqu.I(aliasAccessRight+"."+colApplicationUserID),
			goqu.I(aliasApplication+"."+colID),
			goqu.I(aliasApplication+"."+colCode),
		).
		Where(goqu.I(aliasAccessRight+"."+colUserID).In(userIDs...)).
		Order(goqu.I(aliasAccessRight + "." + colID).Asc()))
	if err != nil {
		return nil, err
	}

	accessRightsByUser := make(map[int64][]accessRightRow)
	err = r.settings.query(ctx, db, sqlQuery, func(rows DBRows) error {
		var row accessRightRow
		scanErr := rows.Scan(&row.id, &row.userID, &row.applicationUserID, &row.applicationID, &row.applicationCode)
		if scanErr != nil {
			return scanErr
		}

		accessRightsByUser[row.userID] = append(accessRightsByUser[row.userID], row)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return accessRightsByUser, nil
}

func reconstructUser(row userRow, accessRightRows []accessRightRow) (*core.User, error) {
	objectID, err := uuid.Parse(row.objectID)
	if err != nil {
		return nil, errors.Join(ErrScanningRowFailed, err)
	}

	token := rehydration.Grant()
	state := core.UserState{ID: row.id, ObjectID: objectID}

	if row.authenticationID.Valid {
		state.Authentication = core.ReconstructAuthentication(token, row.authenticationID.Int64, row.username.String)
	}

	for _, accessRight := range accessRightRows {
		application := core.ReconstructApplication(token, accessRight.applicationID, accessRight.applicationCode)
		state.AccessRights = append(
			state.AccessRights,
			core.ReconstructAccessRight(token, accessRight.id, nil, application, accessRight.applicationUserID),
		)
	}

	return core.ReconstructUser(token, state), nil
}

func (r UserRepository) addAuthentication(ctx context.Context, db DBAdapter, authentication *core.Authentication) error {
	if authentication == nil || authentication.ID() != 0 {
		return nil
	}

	sqlQuery, err := toSQL(goqu.Dialect(dialectPostgres).
		Insert(r.settings.tables.Authentications).
		Rows(goqu.Record{colUsername: authentication.Username()}).
		Returning(goqu.C(colID)))
	if err != nil {
		return err
	}

	id, err := r.settings.insertReturningID(ctx, db, sqlQuery)
	if err != nil {
		return err
	}

	authentication.AssignID(rehydration.Grant(), id)

	return nil
}

// addAccessRights stores the transient access rights of user, and their applications if needed.
func (r UserRepository) addAccessRights(ctx context.Context, user *core.User) error {
	db := adapterFrom(ctx, r.db)

	for _, accessRight := range user.AccessRights() {
		if accessRight.ID() != 0 {
			continue
		}

		application := accessRight.Application()
		if err := r.applications.Add(ctx, application); err != nil {
			return err
		}

		sqlQuery, err := toSQL(goqu.Dialect(dialectPostgres).
			Insert(r.settings.tables.AccessRights).
			Rows(goqu.Record{
				colUserID:            user.ID(),
				colApplicationID:     application.ID(),
				colApplicationUserID: accessRight.ApplicationUserID(),
			}).
			Returning(goqu.C(colID)))
		if err != nil {
			return err
		}

		id, err := r.settings.insertReturningID(ctx, db, sqlQuery)
		if err != nil {
			return err
		}

		accessRight.AssignID(rehydration.Grant(), id)
	}

	return nil
}

func (r UserRepository) deleteRevokedAccessRights(ctx context.Context, db DBAdapter, user *core.User) error {
	kept := make([]any, 0)
	for _, accessRight := range user.AccessRights() {
		if accessRight.ID() != 0 {
			kept = append(kept, accessRight.ID())
		}
	}

	conditions := []exp.Expression{goqu.C(colUserID).Eq(user.ID())}
	if len(kept) > 0 {
		conditions = append(conditions, goqu.C(colID).NotIn(kept...))
	}

	sqlQuery, err := toSQL(goqu.Dialect(dialectPostgres).
		Delete(r.settings.tables.AccessRights).
		Where(conditions...))
	if err != nil {
		return err
	}

	return r.settings.exec(ctx, db, sqlQuery)
}

func (r UserRepository) storedAuthenticationID(ctx context.Context, db DBAdapter, userID int64) (int64, error) {
	sqlQuery, err := toSQL(goqu.Dialect(dialectPostgres).
		From(r.settings.tables.Users).
		Select(colAuthenticationID).
		Where(goqu.C(colID).Eq(userID)))
	if err != nil {
		return 0, err
	}

	var authenticationID sql.NullInt64
	found := false
	err = r.settings.query(ctx, db, sqlQuery, func(rows DBRows) error {
		found = true
		return rows.Scan(&authenticationID)
	})
	if err != nil {
		return 0, err
	}

	if !found {
		return 0, ErrUserNotFound
	}

	return authenticationID.Int64, nil
}
