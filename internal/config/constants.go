package config

const (
	// DefaultDatabasePath is the default path for the SQLite database file
	DefaultDatabasePath = "./librarylite.db"

	// DefaultPort matches the port the application has always listened on
	DefaultPort = 8000
)

// Supported values for DATABASE_DRIVER
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)
