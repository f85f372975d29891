package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SQLConnection is a Connection over database/sql. Every statement runs on
// one pinned session so session settings carry over between statements.
type SQLConnection struct {
	name    string
	dialect Dialect
	db      *sqlx.DB
	conn    *sqlx.Conn
}

func Open(ctx context.Context, params OpenParams) (*SQLConnection, error) {
	dialect, err := LookupDialect(params.Driver)
	if err != nil {
		return nil, err
	}

	if params.ConnectionString == "" {
		return nil, fmt.Errorf("connection string is required for %s", dialect.Name)
	}

	db, err := sqlx.Open(dialect.SQLDriver, params.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	conn, err := db.Connx(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to acquire session: %w", err)
	}

	return &SQLConnection{
		name:    params.Name,
		dialect: dialect,
		db:      db,
		conn:    conn,
	}, nil
}

func (c *SQLConnection) Name() string {
	return c.name
}

func (c *SQLConnection) Platform() string {
	return c.dialect.Platform
}

func (c *SQLConnection) ListTableNames(ctx context.Context) ([]string, error) {
	var tables []string
	if err := c.conn.SelectContext(ctx, &tables, c.dialect.TablesQuery); err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	return tables, nil
}

func (c *SQLConnection) ListSequences(ctx context.Context) ([]string, error) {
	if !c.dialect.HasSequences() {
		return nil, nil
	}

	var sequences []string
	if err := c.conn.SelectContext(ctx, &sequences, c.dialect.SequencesQuery); err != nil {
		return nil, fmt.Errorf("failed to query sequences: %w", err)
	}
	return sequences, nil
}

func (c *SQLConnection) DropSequence(ctx context.Context, name string) error {
	if !c.dialect.HasSequences() {
		return fmt.Errorf("%s has no sequences", c.dialect.Name)
	}
	return c.Exec(ctx, c.dialect.DropSequenceStatement(name))
}

func (c *SQLConnection) Exec(ctx context.Context, statement string) error {
	_, err := c.conn.ExecContext(ctx, statement)
	return err
}

func (c *SQLConnection) Close() error {
	connErr := c.conn.Close()
	if err := c.db.Close(); err != nil {
		return err
	}
	return connErr
}
