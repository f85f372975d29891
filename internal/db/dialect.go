package db

import (
	"fmt"
	"sort"
	"strings"

	// database/sql drivers for every supported connection type
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "github.com/microsoft/go-mssqldb"
	_ "github.com/sijms/go-ora/v2"
	_ "modernc.org/sqlite"
)

// Dialect describes how to reach and introspect one kind of database.
type Dialect struct {
	Name           string
	SQLDriver      string
	Platform       string
	TablesQuery    string
	SequencesQuery string
	DropSequence   string
}

var (
	mysqlDialect = Dialect{
		Name:      "mysql",
		SQLDriver: "mysql",
		Platform:  "mysql",
		TablesQuery: `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
			AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`,
	}

	postgresDialect = Dialect{
		Name:      "postgres",
		SQLDriver: "postgres",
		Platform:  "postgresql",
		TablesQuery: `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = current_schema()
			AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`,
		SequencesQuery: `
		SELECT sequence_name
		FROM information_schema.sequences
		WHERE sequence_schema = current_schema()
		ORDER BY sequence_name
	`,
		DropSequence: "DROP SEQUENCE %s CASCADE",
	}

	sqlserverDialect = Dialect{
		Name:      "sqlserver",
		SQLDriver: "sqlserver",
		Platform:  "mssql",
		TablesQuery: `
		SELECT TABLE_NAME
		FROM INFORMATION_SCHEMA.TABLES
		WHERE TABLE_TYPE = 'BASE TABLE'
			AND TABLE_SCHEMA = SCHEMA_NAME()
		ORDER BY TABLE_NAME
	`,
		SequencesQuery: `
		SELECT name
		FROM sys.sequences
		WHERE schema_id = SCHEMA_ID()
		ORDER BY name
	`,
		DropSequence: "DROP SEQUENCE %s",
	}

	sqliteDialect = Dialect{
		Name:      "sqlite",
		SQLDriver: "sqlite",
		Platform:  "sqlite",
		TablesQuery: `
		SELECT name
		FROM sqlite_master
		WHERE type='table'
		AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`,
	}

	oracleDialect = Dialect{
		Name:      "oracle",
		SQLDriver: "oracle",
		Platform:  "oracle",
		TablesQuery: `
		SELECT table_name
		FROM user_tables
		ORDER BY table_name
	`,
		SequencesQuery: `
		SELECT sequence_name
		FROM user_sequences
		ORDER BY sequence_name
	`,
		DropSequence: "DROP SEQUENCE %s",
	}
)

var dialects = map[string]Dialect{
	"mysql":      mysqlDialect,
	"mariadb":    mysqlDialect,
	"postgres":   postgresDialect,
	"postgresql": postgresDialect,
	"pgx":        withSQLDriver(postgresDialect, "pgx"),
	"sqlserver":  sqlserverDialect,
	"mssql":      sqlserverDialect,
	"sqlite":     sqliteDialect,
	"sqlite3":    sqliteDialect,
	"oracle":     oracleDialect,
}

func withSQLDriver(d Dialect, driver string) Dialect {
	d.Name = driver
	d.SQLDriver = driver
	return d
}

func LookupDialect(driver string) (Dialect, error) {
	d, ok := dialects[strings.ToLower(driver)]
	if !ok {
		return Dialect{}, fmt.Errorf("unknown database type: %s (known: %s)", driver, strings.Join(Dialects(), ", "))
	}
	return d, nil
}

// Dialects returns every accepted connection type, sorted.
func Dialects() []string {
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (d Dialect) HasSequences() bool {
	return d.SequencesQuery != ""
}

func (d Dialect) DropSequenceStatement(name string) string {
	return expand(d.DropSequence, name)
}
