package db

import (
	"sort"
	"strings"
)

const tablePlaceholder = "%s"

// Isolation holds the statements issued around each table drop to toggle
// constraint enforcement. An empty template is not issued.
type Isolation struct {
	Enable  string `json:"enable,omitempty"`
	Disable string `json:"disable,omitempty"`
}

type PlatformProfile struct {
	Name          string     `json:"name"`
	DropSequences bool       `json:"drop_sequences"`
	Isolation     *Isolation `json:"isolation,omitempty"`
	DropStatement string     `json:"drop_statement"`
}

// The mssql entry only re-checks constraints after the drop; nothing is
// issued before it.
var platforms = map[string]PlatformProfile{
	"mssql": {
		Name:          "mssql",
		DropSequences: true,
		Isolation: &Isolation{
			Disable: "ALTER TABLE %s CHECK CONSTRAINT ALL",
		},
		DropStatement: "DROP TABLE %s",
	},
	"mysql": {
		Name:          "mysql",
		DropSequences: false,
		Isolation: &Isolation{
			Enable:  "SET FOREIGN_KEY_CHECKS = 1",
			Disable: "SET FOREIGN_KEY_CHECKS = 0",
		},
		DropStatement: "DROP TABLE %s",
	},
	"postgresql": {
		Name:          "postgresql",
		DropSequences: true,
		DropStatement: "DROP TABLE IF EXISTS %s CASCADE",
	},
	"sqlite": {
		Name:          "sqlite",
		DropSequences: false,
		Isolation: &Isolation{
			Enable:  "PRAGMA foreign_keys = ON",
			Disable: "PRAGMA foreign_keys = OFF",
		},
		DropStatement: "DROP TABLE %s",
	},
}

// Platforms returns a copy of the registered platform profiles keyed by name.
func Platforms() map[string]PlatformProfile {
	out := make(map[string]PlatformProfile, len(platforms))
	for name, profile := range platforms {
		out[name] = profile.clone()
	}
	return out
}

func PlatformNames() []string {
	names := make([]string, 0, len(platforms))
	for name := range platforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func LookupPlatform(name string) (PlatformProfile, error) {
	profile, ok := platforms[name]
	if !ok {
		return PlatformProfile{}, &UnsupportedPlatformError{Platform: name}
	}
	return profile.clone(), nil
}

func (p PlatformProfile) clone() PlatformProfile {
	if p.Isolation != nil {
		iso := *p.Isolation
		p.Isolation = &iso
	}
	return p
}

func (p PlatformProfile) EnableStatement(table string) (string, bool) {
	if p.Isolation == nil || p.Isolation.Enable == "" {
		return "", false
	}
	return expand(p.Isolation.Enable, table), true
}

func (p PlatformProfile) DisableStatement(table string) (string, bool) {
	if p.Isolation == nil || p.Isolation.Disable == "" {
		return "", false
	}
	return expand(p.Isolation.Disable, table), true
}

func (p PlatformProfile) DropTable(table string) string {
	return expand(p.DropStatement, table)
}

// expand substitutes the table name verbatim. Templates without a
// placeholder are global statements and come back unchanged.
func expand(template, table string) string {
	return strings.ReplaceAll(template, tablePlaceholder, table)
}
