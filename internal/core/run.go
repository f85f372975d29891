package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/ntancardoso/dbreset/internal/db"
	"github.com/ntancardoso/dbreset/internal/logger"
)

const version = "0.1.0"

type session interface {
	db.Connection
	io.Closer
}

type runner struct {
	in          io.Reader
	out         io.Writer
	errOut      io.Writer
	interactive func() bool
	open        func(ctx context.Context, params db.OpenParams) (session, error)
}

func newRunner() *runner {
	return &runner{
		in:          os.Stdin,
		out:         os.Stdout,
		errOut:      os.Stderr,
		interactive: func() bool { return isTerminal(os.Stdin) },
		open: func(ctx context.Context, params db.OpenParams) (session, error) {
			return db.Open(ctx, params)
		},
	}
}

func Run(args []string) error {
	_ = godotenv.Load()
	return newRunner().run(args)
}

func (r *runner) run(args []string) error {
	if len(args) < 2 {
		r.printUsage()
		return nil
	}

	command := args[1]

	switch command {
	case "reset", "migrations:reset", "doctrine:migrations:reset":
		return r.runReset(args[2:])
	case "platforms":
		return r.runPlatforms()
	case "version", "--version", "-v":
		fmt.Fprintf(r.out, "dbreset version %s\n", version)
		return nil
	case "help", "--help", "-h":
		r.printUsage()
		return nil
	default:
		return fmt.Errorf("unknown command: %s (use 'dbreset help' for usage)", command)
	}
}

func (r *runner) runReset(args []string) error {
	fs := pflag.NewFlagSet("reset", pflag.ContinueOnError)
	fs.SetOutput(r.errOut)

	connection := fs.String("connection", "", "Named connection to reset (default: configured default)")
	configPath := fs.String("config", "", "Connections file (default: dbreset.yaml)")
	force := fs.BoolP("force", "f", false, "Skip the confirmation prompt")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	logFormat := fs.String("log-format", "", "Log format (console, json)")

	dbType := fs.String("dbtype", "", "Database type (mysql, postgres, pgx, sqlserver, sqlite, oracle)")
	host := fs.String("host", "", "Database host")
	port := fs.Int("port", 0, "Database port")
	user := fs.String("user", "", "Database user")
	password := fs.String("password", "", "Database password")
	database := fs.String("database", "", "Database name or file path (for sqlite)")
	dsn := fs.String("dsn", "", "Full connection string, overrides host/port/user/password/database")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	cfg := DefaultConfig()
	if path, ok := ConfigFilePath(*configPath); ok {
		if err := cfg.LoadFile(path); err != nil {
			return err
		}
	}
	cfg.LoadFromEnv()

	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	logCloser, err := logger.Init(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logCloser.Close()
	log := logger.WithComponent("reset")

	conn, err := cfg.Connection(*connection)
	if err != nil {
		return err
	}

	if *dbType != "" {
		conn.DBType = *dbType
	}
	if *host != "" {
		conn.Host = *host
	}
	if *port != 0 {
		conn.Port = *port
	}
	if *user != "" {
		conn.User = *user
	}
	if *password != "" {
		conn.Password = *password
	}
	if *database != "" {
		conn.Database = *database
	}
	if *dsn != "" {
		conn.DSN = *dsn
	}

	if err := conn.Validate(); err != nil {
		return err
	}

	if !*force && !cfg.Force {
		if !r.interactive() {
			return ErrNotInteractive
		}

		warning := fmt.Sprintf("WARNING: every table of %s database '%s' (connection '%s') will be dropped.",
			conn.DBType, r.describeTarget(conn), conn.Name)
		ok, err := Confirm(r.in, r.out, warning)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(r.out, "Command cancelled.")
			return nil
		}
	}

	ctx := context.Background()

	log.Debug().Str("connection", conn.Name).Str("driver", conn.DBType).Msg("opening connection")
	sess, err := r.open(ctx, db.OpenParams{
		Name:             conn.Name,
		Driver:           conn.DBType,
		ConnectionString: conn.GetConnectionString(),
	})
	if err != nil {
		return fmt.Errorf("failed to open connection '%s': %w", conn.Name, err)
	}
	defer func() {
		if err := sess.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close connection")
		}
	}()

	resetter := db.NewSchemaResetter(db.WithLogger(logger.WithComponent("resetter")))
	report, err := resetter.Reset(ctx, sess)
	if err != nil {
		return fmt.Errorf("failed to reset database: %w", err)
	}
	report.Connection = conn.Name

	fmt.Fprintln(r.out, "✓ Database was reset")
	fmt.Fprintf(r.out, "  Connection: %s (%s)\n", report.Connection, report.Platform)
	fmt.Fprintf(r.out, "  Tables dropped: %d\n", report.TableCount())
	if report.SequenceCount() > 0 {
		fmt.Fprintf(r.out, "  Sequences dropped: %d\n", report.SequenceCount())
	}

	return nil
}

func (r *runner) describeTarget(conn *ConnectionConfig) string {
	if conn.Database != "" {
		return conn.Database
	}
	return conn.Name
}

func (r *runner) runPlatforms() error {
	fmt.Fprintf(r.out, "%-12s %-10s %-28s %-40s %s\n", "PLATFORM", "SEQUENCES", "BEFORE DROP", "AFTER DROP", "DROP STATEMENT")
	fmt.Fprintln(r.out, strings.Repeat("-", 120))

	registry := db.Platforms()
	for _, name := range db.PlatformNames() {
		profile := registry[name]

		before, after := "-", "-"
		if profile.Isolation != nil {
			if profile.Isolation.Enable != "" {
				before = profile.Isolation.Enable
			}
			if profile.Isolation.Disable != "" {
				after = profile.Isolation.Disable
			}
		}

		fmt.Fprintf(r.out, "%-12s %-10t %-28s %-40s %s\n", name, profile.DropSequences, before, after, profile.DropStatement)
	}

	fmt.Fprintf(r.out, "\nConnection types: %s\n", strings.Join(db.Dialects(), ", "))

	return nil
}

func (r *runner) printUsage() {
	usage := `dbreset - Drop every table and sequence of a database

Usage:
  dbreset <command> [options]

Commands:
  reset                    Reset the database (aliases: migrations:reset, doctrine:migrations:reset)
  platforms                Show how each platform is reset
  version                  Show version

Reset Options:
  --connection <name>      Named connection (default: configured default)
  --config <path>          Connections file (default: dbreset.yaml)
  -f, --force              Skip the confirmation prompt
  --dbtype <type>          Database type (mysql, postgres, pgx, sqlserver, sqlite, oracle)
  --host <host>            Database host
  --port <port>            Database port (default depends on type)
  --user <user>            Database user
  --password <password>    Database password
  --database <name>        Database name or file path (for sqlite)
  --dsn <dsn>              Full connection string
  --log-level <level>      Log level (default: warn)
  --log-format <format>    Log format: console or json (default: console)

Environment Variables:
  DB_CONNECTION            Default connection name
  DB_TYPE                  Database type
  DB_HOST                  Database host
  DB_PORT                  Database port
  DB_USER                  Database user
  DB_PASSWORD              Database password
  DB_NAME                  Database name
  DB_DSN                   Full connection string
  DBRESET_CONFIG           Connections file
  DBRESET_FORCE            Skip the confirmation prompt (true/false)
  DBRESET_LOG_LEVEL        Log level
  DBRESET_LOG_FORMAT       Log format

Examples:
  # Reset the default connection, asking first
  dbreset reset

  # Reset a named connection from dbreset.yaml without asking
  dbreset reset --connection=reporting --force

  # Reset a sqlite file
  dbreset reset --dbtype sqlite --database ./app.db

Version: %s
`
	fmt.Fprintf(r.out, usage, version)
}
