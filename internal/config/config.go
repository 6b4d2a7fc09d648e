package config

import (
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		UI
		Log
		Session
		Security
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Driver     string // "sqlite" (default) or "postgres"
		Path       string // SQLite file path
		DSN        string // PostgreSQL connection string
		LogQueries bool
	}
	UI struct {
		TemplatesPath string
		StaticPath    string
	}
	Log struct {
		Level  string
		Format string // "console" or "json"
	}
	Session struct {
		Lifetime      time.Duration
		SecureCookies bool // Set to false for local dev without HTTPS
	}
	Security struct {
		CSRFSecret string // CSRF protection on form routes is enabled when set
		ReadOnly   bool   // Reject every write request with 403
	}
)

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"host":            "host",
	"port":            "port",
	"database-driver": "database_driver",
	"database-path":   "database_path",
	"log-level":       "log_level",
	"read-only":       "read_only",
}

// RegisterFlags adds the serve command flags to fs. Flags that are set on the
// command line take precedence over environment variables.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("host", "0.0.0.0", "Host to listen on")
	fs.Int32("port", DefaultPort, "Port to listen on")
	fs.String("database-driver", DriverSQLite, "Database driver: sqlite or postgres")
	fs.String("database-path", DefaultDatabasePath, "Path to the SQLite database file")
	fs.String("log-level", "info", "Log level: debug, info, warn, error")
	fs.Bool("read-only", false, "Reject all write requests")
}

func NewConfig(fs *pflag.FlagSet) *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", DefaultPort)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("database_driver", DriverSQLite)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")
	v.SetDefault("database_log_queries", false)
	v.SetDefault("templates_path", "./templates")
	v.SetDefault("static_path", "./static")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("session_lifetime", "24h")
	v.SetDefault("session_secure_cookies", false)
	v.SetDefault("csrf_secret", "")
	v.SetDefault("read_only", false)

	if fs != nil {
		for name, key := range flagKeys {
			if flag := fs.Lookup(name); flag != nil {
				// Only an error for a nil flag, which is excluded above
				_ = v.BindPFlag(key, flag)
			}
		}
	}

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver:     v.GetString("DATABASE_DRIVER"),
			Path:       v.GetString("DATABASE_PATH"),
			DSN:        v.GetString("DATABASE_DSN"),
			LogQueries: v.GetBool("DATABASE_LOG_QUERIES"),
		},
		UI: UI{
			TemplatesPath: v.GetString("TEMPLATES_PATH"),
			StaticPath:    v.GetString("STATIC_PATH"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Session: Session{
			Lifetime:      v.GetDuration("SESSION_LIFETIME"),
			SecureCookies: v.GetBool("SESSION_SECURE_COOKIES"),
		},
		Security: Security{
			CSRFSecret: v.GetString("CSRF_SECRET"),
			ReadOnly:   v.GetBool("READ_ONLY"),
		},
	}
}
