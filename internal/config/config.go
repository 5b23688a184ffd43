package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL         string
	DatabaseDriver      string
	RemoteMarkersURL    string
	RemoteMarkersDriver string
	TicketPrefix        string
	InvoiceDir          string
	DevMode             bool
}

func Load(dbConn, dbDriver, devMode string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	if dbConn == "" {
		dbConn = getEnv("DATABASE_URL", "./ionex.db")
	}

	if dbDriver == "" {
		dbDriver = getEnv("DATABASE_DRIVER", "sqlite3")
	}

	// Dev mode defaults to true for local builds, false for prod
	isDevMode := devMode == "true" || (devMode == "" && getEnv("DEV_MODE", "true") == "true")

	cfg := &Config{
		DatabaseURL:         dbConn,
		DatabaseDriver:      dbDriver,
		RemoteMarkersURL:    getEnv("REMOTE_MARKERS_URL", ""),
		RemoteMarkersDriver: getEnv("REMOTE_MARKERS_DRIVER", "libsql"),
		TicketPrefix:        getEnv("TICKET_PREFIX", "DB_"),
		InvoiceDir:          getEnv("INVOICE_DIR", "./invoices"),
		DevMode:             isDevMode,
	}

	return cfg, nil
}

// HasRemoteMarkers reports whether a shared invoiced-marker store is
// configured.
func (c *Config) HasRemoteMarkers() bool {
	return c.RemoteMarkersURL != ""
}

func (c *Config) Dump() {
	fmt.Printf("Database URL: %s\n", c.DatabaseURL)
	fmt.Printf("Database Driver: %s\n", c.DatabaseDriver)
	fmt.Printf("Remote Markers URL: %s\n", c.RemoteMarkersURL)
	fmt.Printf("Ticket Prefix: %s\n", c.TicketPrefix)
	fmt.Printf("Invoice Dir: %s\n", c.InvoiceDir)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
