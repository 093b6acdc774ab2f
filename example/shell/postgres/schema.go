package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// CreateSchema creates the tables used by the repositories if they do not exist yet.
func CreateSchema(ctx context.Context, db DBAdapter, options ...Option) error {
	s, err := newSettings(options)
	if err != nil {
		return err
	}

	for _, statement := range schemaStatements(s.tables) {
		if err = s.exec(ctx, db, statement); err != nil {
			return err
		}
	}

	return nil
}

// TruncateAll removes all rows from the repository tables and resets their ID sequences.
func TruncateAll(ctx context.Context, db DBAdapter, options ...Option) error {
	s, err := newSettings(options)
	if err != nil {
		return err
	}

	t := quotedTables(s.tables)
	statement := fmt.Sprintf(
		"TRUNCATE TABLE %s RESTART IDENTITY CASCADE",
		strings.Join([]string{t.AccessRights, t.Users, t.Authentications, t.Applications, t.AuditLogs}, ", "),
	)

	return s.exec(ctx, db, statement)
}

func schemaStatements(tables Tables) []string {
	t := quotedTables(tables)

	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id BIGSERIAL PRIMARY KEY,
	username TEXT NOT NULL
)`, t.Authentications),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id BIGSERIAL PRIMARY KEY,
	object_id UUID NOT NULL UNIQUE,
	authentication_id BIGINT NULL REFERENCES %s (id)
)`, t.Users, t.Authentications),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id BIGSERIAL PRIMARY KEY,
	code TEXT NOT NULL
)`, t.Applications),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id BIGSERIAL PRIMARY KEY,
	user_id BIGINT NOT NULL REFERENCES %s (id) ON DELETE CASCADE,
	application_id BIGINT NOT NULL REFERENCES %s (id),
	application_user_id TEXT NOT NULL
)`, t.AccessRights, t.Users, t.Applications),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id BIGSERIAL PRIMARY KEY,
	log TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
)`, t.AuditLogs),
	}
}

func quotedTables(tables Tables) Tables {
	return Tables{
		Users:           pq.QuoteIdentifier(tables.Users),
		Authentications: pq.QuoteIdentifier(tables.Authentications),
		Applications:    pq.QuoteIdentifier(tables.Applications),
		AccessRights:    pq.QuoteIdentifier(tables.AccessRights),
		AuditLogs:       pq.QuoteIdentifier(tables.AuditLogs),
	}
}
