package core

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ntancardoso/dbreset/internal/logger"
)

const (
	defaultConnectionName = "default"
	defaultConfigFile     = "dbreset.yaml"
)

type ConnectionConfig struct {
	Name     string `yaml:"-"`
	DBType   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	DSN      string `yaml:"dsn"`
}

type Config struct {
	DefaultConnection string
	Connections       map[string]*ConnectionConfig
	Log               logger.Config
	Force             bool
}

type fileConfig struct {
	Default     string                       `yaml:"default"`
	Connections map[string]*ConnectionConfig `yaml:"connections"`
	Log         logger.Config                `yaml:"log"`
}

func DefaultConfig() *Config {
	return &Config{
		DefaultConnection: defaultConnectionName,
		Connections: map[string]*ConnectionConfig{
			defaultConnectionName: {
				Name:   defaultConnectionName,
				DBType: "mysql",
				Host:   "localhost",
				User:   "root",
			},
		},
		Log: *logger.DefaultConfig(),
	}
}

// ConfigFilePath picks the connections file: explicit path, then
// DBRESET_CONFIG, then dbreset.yaml when it exists. The bool reports whether
// a missing file is an error.
func ConfigFilePath(explicit string) (string, bool) {
	if explicit != "" {
		return explicit, true
	}
	if val := os.Getenv("DBRESET_CONFIG"); val != "" {
		return val, true
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, true
	}
	return "", false
}

func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(fc.Connections) > 0 {
		c.Connections = make(map[string]*ConnectionConfig, len(fc.Connections))
		for name, conn := range fc.Connections {
			if conn == nil {
				conn = &ConnectionConfig{}
			}
			conn.Name = name
			c.Connections[name] = conn
		}
		if fc.Default == "" && len(fc.Connections) == 1 {
			for name := range fc.Connections {
				fc.Default = name
			}
		}
	}

	if fc.Default != "" {
		c.DefaultConnection = fc.Default
	}
	if fc.Log.Level != "" {
		c.Log.Level = fc.Log.Level
	}
	if fc.Log.Format != "" {
		c.Log.Format = fc.Log.Format
	}
	if fc.Log.Output != "" {
		c.Log.Output = fc.Log.Output
	}

	return nil
}

// LoadFromEnv applies DB_* variables to the default connection.
func (c *Config) LoadFromEnv() {
	if val := os.Getenv("DB_CONNECTION"); val != "" {
		c.DefaultConnection = val
	}

	conn := c.Connections[c.DefaultConnection]
	if conn == nil {
		conn = &ConnectionConfig{Name: c.DefaultConnection}
	}

	changed := false
	if val := os.Getenv("DB_TYPE"); val != "" {
		conn.DBType = val
		changed = true
	}
	if val := os.Getenv("DB_HOST"); val != "" {
		conn.Host = val
		changed = true
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			conn.Port = port
			changed = true
		}
	}
	if val := os.Getenv("DB_USER"); val != "" {
		conn.User = val
		changed = true
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		conn.Password = val
		changed = true
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		conn.Database = val
		changed = true
	}
	if val := os.Getenv("DB_DSN"); val != "" {
		conn.DSN = val
		changed = true
	}
	if changed {
		c.Connections[c.DefaultConnection] = conn
	}

	if val := os.Getenv("DBRESET_LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("DBRESET_LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
	if val := os.Getenv("DBRESET_FORCE"); val != "" {
		c.Force = strings.ToLower(val) == "true"
	}
}

func (c *Config) ConnectionNames() []string {
	names := make([]string, 0, len(c.Connections))
	for name := range c.Connections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Connection returns a copy of the named connection, or of the default one
// when name is empty.
func (c *Config) Connection(name string) (*ConnectionConfig, error) {
	if name == "" {
		name = c.DefaultConnection
	}

	conn, ok := c.Connections[name]
	if !ok {
		return nil, fmt.Errorf("connection '%s' is not configured (known: %s)", name, strings.Join(c.ConnectionNames(), ", "))
	}

	resolved := *conn
	resolved.Name = name
	return &resolved, nil
}

func DefaultPort(dbType string) int {
	switch strings.ToLower(dbType) {
	case "mysql", "mariadb":
		return 3306
	case "postgres", "postgresql", "pgx":
		return 5432
	case "sqlserver", "mssql":
		return 1433
	case "oracle":
		return 1521
	default:
		return 0
	}
}

func (c *ConnectionConfig) Validate() error {
	if c.DBType == "" {
		return errors.New("database type is required (use --dbtype or DB_TYPE)")
	}
	if c.DSN == "" && c.Database == "" {
		return errors.New("database name is required (use --database or DB_NAME)")
	}
	return nil
}

func (c *ConnectionConfig) port() int {
	if c.Port != 0 {
		return c.Port
	}
	return DefaultPort(c.DBType)
}

func (c *ConnectionConfig) GetConnectionString() string {
	if c.DSN != "" {
		return c.DSN
	}

	switch strings.ToLower(c.DBType) {
	case "mysql", "mariadb":
		// go-sql-driver/mysql expects user:password@tcp(host:port)/database
		userInfo := c.User
		if c.Password != "" {
			userInfo += ":" + c.Password
		}
		return fmt.Sprintf("%s@tcp(%s:%d)/%s", userInfo, c.Host, c.port(), c.Database)
	case "postgres", "postgresql", "pgx":
		u := &url.URL{
			Scheme: "postgres",
			Host:   fmt.Sprintf("%s:%d", c.Host, c.port()),
			Path:   "/" + c.Database,
		}
		u.User = c.userInfo()
		query := url.Values{}
		query.Set("sslmode", "disable")
		u.RawQuery = query.Encode()
		return u.String()
	case "sqlserver", "mssql":
		u := &url.URL{
			Scheme: "sqlserver",
			Host:   fmt.Sprintf("%s:%d", c.Host, c.port()),
		}
		u.User = c.userInfo()
		query := url.Values{}
		query.Set("database", c.Database)
		u.RawQuery = query.Encode()
		return u.String()
	case "sqlite", "sqlite3":
		return c.Database
	case "oracle":
		u := &url.URL{
			Scheme: "oracle",
			Host:   fmt.Sprintf("%s:%d", c.Host, c.port()),
			Path:   "/" + c.Database,
		}
		u.User = c.userInfo()
		return u.String()
	default:
		return ""
	}
}

func (c *ConnectionConfig) userInfo() *url.Userinfo {
	if c.User == "" {
		return nil
	}
	if c.Password != "" {
		return url.UserPassword(c.User, c.Password)
	}
	return url.User(c.User)
}
