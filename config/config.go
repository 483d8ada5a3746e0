package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// Database holds the Postgres connection settings. Every field can be
// overridden by environment variables so the yaml file never has to carry
// the password.
type Database struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// Event is a named one-off calendar date whose surrounding days are
// treated as anomalous by the forecaster (e.g. a halving).
type Event struct {
	Name       string
	Date       time.Time
	WindowDays int
}

type Config struct {
	AssetID         int
	AssetLabel      string
	StartDate       time.Time
	ShortWindow     int
	ForecastHorizon int
	OutputDir       string
	ListenAddr      string
	Events          []Event
	Database        Database
}

type eventTmp struct {
	Name       string `yaml:"name"`
	Date       string `yaml:"date"`
	WindowDays int    `yaml:"window_days"`
}

type configTmp struct {
	AssetID         int        `yaml:"asset_id"`
	AssetLabel      string     `yaml:"asset_label"`
	StartDate       string     `yaml:"start_date"`
	ShortWindow     int        `yaml:"short_window"`
	ForecastHorizon int        `yaml:"forecast_horizon"`
	OutputDir       string     `yaml:"output_dir"`
	ListenAddr      string     `yaml:"listen_addr"`
	Events          []eventTmp `yaml:"events"`
	Database        Database   `yaml:"database"`
}

// Default returns the configuration used when no yaml file is provided.
func Default() Config {
	start, _ := time.Parse(dateLayout, "2015-01-01")
	return Config{
		AssetID:         1,
		AssetLabel:      "BTC",
		StartDate:       start,
		ShortWindow:     155,
		ForecastHorizon: 365,
		OutputDir:       "charts-out",
		ListenAddr:      ":8080",
		Database: Database{
			Host:     "localhost",
			Port:     "5432",
			User:     "postgres",
			Password: "password",
			Name:     "finance_data",
		},
	}
}

// Get loads the configuration from the yaml file at path, or the defaults
// when path is empty. Database settings always pick up env overrides last.
func Get(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		loaded, err := fromYaml(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}
	cfg.Database = applyEnv(cfg.Database)
	return cfg, nil
}

func fromYaml(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var tmp configTmp
	if err := yaml.Unmarshal(data, &tmp); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := Default()
	if tmp.AssetID != 0 {
		cfg.AssetID = tmp.AssetID
	}
	if tmp.AssetLabel != "" {
		cfg.AssetLabel = tmp.AssetLabel
	}
	if tmp.StartDate != "" {
		start, err := time.Parse(dateLayout, tmp.StartDate)
		if err != nil {
			return Config{}, fmt.Errorf("invalid start_date %q: %w", tmp.StartDate, err)
		}
		cfg.StartDate = start
	}
	if tmp.ShortWindow != 0 {
		if tmp.ShortWindow < 1 {
			return Config{}, fmt.Errorf("short_window must be positive, got %d", tmp.ShortWindow)
		}
		cfg.ShortWindow = tmp.ShortWindow
	}
	if tmp.ForecastHorizon != 0 {
		if tmp.ForecastHorizon < 1 {
			return Config{}, fmt.Errorf("forecast_horizon must be positive, got %d", tmp.ForecastHorizon)
		}
		cfg.ForecastHorizon = tmp.ForecastHorizon
	}
	if tmp.OutputDir != "" {
		cfg.OutputDir = tmp.OutputDir
	}
	if tmp.ListenAddr != "" {
		cfg.ListenAddr = tmp.ListenAddr
	}
	cfg.Database = mergeDatabase(cfg.Database, tmp.Database)

	for _, e := range tmp.Events {
		date, err := time.Parse(dateLayout, e.Date)
		if err != nil {
			return Config{}, fmt.Errorf("invalid event date %q for %q: %w", e.Date, e.Name, err)
		}
		window := e.WindowDays
		if window < 0 {
			window = -window
		}
		cfg.Events = append(cfg.Events, Event{Name: e.Name, Date: date, WindowDays: window})
	}

	return cfg, nil
}

// mergeDatabase overlays the fields a partial yaml database block sets,
// keeping defaults for the ones it omits.
func mergeDatabase(base, overlay Database) Database {
	if overlay.Host != "" {
		base.Host = overlay.Host
	}
	if overlay.Port != "" {
		base.Port = overlay.Port
	}
	if overlay.User != "" {
		base.User = overlay.User
	}
	if overlay.Password != "" {
		base.Password = overlay.Password
	}
	if overlay.Name != "" {
		base.Name = overlay.Name
	}
	return base
}

func applyEnv(db Database) Database {
	db.Host = getEnv("DB_HOST", db.Host)
	db.Port = getEnv("DB_PORT", db.Port)
	db.User = getEnv("DB_USER", db.User)
	db.Password = getEnv("DB_PASSWORD", db.Password)
	db.Name = getEnv("DB_NAME", db.Name)
	return db
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
