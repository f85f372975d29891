package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ntancardoso/dbreset/internal/models"
)

type SchemaResetter struct {
	log zerolog.Logger
}

type Option func(r *SchemaResetter)

func WithLogger(log zerolog.Logger) Option {
	return func(r *SchemaResetter) {
		r.log = log
	}
}

func NewSchemaResetter(opts ...Option) *SchemaResetter {
	r := &SchemaResetter{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reset drops every table and, where the platform has them, every sequence
// visible through conn. The platform is checked before anything is issued.
// Driver errors abort the reset where they happen; objects already dropped
// stay dropped.
func (r *SchemaResetter) Reset(ctx context.Context, conn Connection) (*models.ResetReport, error) {
	platformName := conn.Platform()
	profile, err := LookupPlatform(platformName)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	report := &models.ResetReport{
		Platform:  profile.Name,
		Tables:    []string{},
		StartedAt: startTime,
	}

	tables, err := conn.ListTableNames(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to list tables: %w", err)
	}

	for _, table := range tables {
		if err := r.dropTableSafely(ctx, conn, profile, table); err != nil {
			return report, err
		}
		report.Tables = append(report.Tables, table)
	}

	if profile.DropSequences {
		sequences, err := conn.ListSequences(ctx)
		if err != nil {
			return report, fmt.Errorf("failed to list sequences: %w", err)
		}

		for _, sequence := range sequences {
			r.log.Debug().Str("sequence", sequence).Msg("dropping sequence")
			if err := conn.DropSequence(ctx, sequence); err != nil {
				return report, fmt.Errorf("failed to drop sequence %s: %w", sequence, err)
			}
			report.Sequences = append(report.Sequences, sequence)
		}
	}

	report.Duration = time.Since(startTime).String()

	r.log.Info().
		Str("platform", profile.Name).
		Int("tables", report.TableCount()).
		Int("sequences", report.SequenceCount()).
		Str("duration", report.Duration).
		Msg("schema reset")

	return report, nil
}

func (r *SchemaResetter) dropTableSafely(ctx context.Context, conn Connection, profile PlatformProfile, table string) error {
	if stmt, ok := profile.EnableStatement(table); ok {
		if err := r.exec(ctx, conn, stmt); err != nil {
			return fmt.Errorf("failed to prepare drop of table %s: %w", table, err)
		}
	}

	if err := r.exec(ctx, conn, profile.DropTable(table)); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", table, err)
	}

	if stmt, ok := profile.DisableStatement(table); ok {
		if err := r.exec(ctx, conn, stmt); err != nil {
			return fmt.Errorf("failed to finish drop of table %s: %w", table, err)
		}
	}

	return nil
}

func (r *SchemaResetter) exec(ctx context.Context, conn Connection, stmt string) error {
	r.log.Debug().Str("statement", stmt).Msg("executing")
	return conn.Exec(ctx, stmt)
}
