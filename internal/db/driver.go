package db

import "context"

// Connection is a live database session the resetter issues statements
// against. Implementations own introspection and sequence removal.
type Connection interface {
	Platform() string
	ListTableNames(ctx context.Context) ([]string, error)
	ListSequences(ctx context.Context) ([]string, error)
	DropSequence(ctx context.Context, name string) error
	Exec(ctx context.Context, statement string) error
}

type OpenParams struct {
	Name             string
	Driver           string
	ConnectionString string
}
