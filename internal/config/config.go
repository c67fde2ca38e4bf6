package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/arpg/internal/world"
)

// Template sources.
const (
	TemplateSourceFile     = "file"
	TemplateSourceDatabase = "database"
)

// Simulation holds all configuration for the simulation binary.
type Simulation struct {
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	// Loop
	TickRate       int    `yaml:"tick_rate"`       // ticks per second
	ReportInterval int    `yaml:"report_interval"` // seconds, 0 = no reports
	Seed           uint64 `yaml:"seed"`            // 0 = seeded from clock

	Map       MapConfig       `yaml:"map"`
	Templates TemplatesConfig `yaml:"templates"`
	Database  DatabaseConfig  `yaml:"database"`
	Spawns    []SpawnEntry    `yaml:"spawns"`

	// Combat
	ProjectileHitRadius float32 `yaml:"projectile_hit_radius"`
	EffectLifetime      float32 `yaml:"effect_lifetime"` // seconds
}

// MapConfig describes the map grid.
type MapConfig struct {
	Cols     int          `yaml:"cols"`
	Rows     int          `yaml:"rows"`
	CellSize float32      `yaml:"cell_size"`
	Blocked  []world.Cell `yaml:"blocked"`
}

// TemplatesConfig selects where monster templates come from.
type TemplatesConfig struct {
	Source string `yaml:"source"` // file or database
	Path   string `yaml:"path"`   // .yaml/.yml or line format
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// SpawnEntry is one spawn line: count monsters of a template at a level.
// Negative coordinates let the map pick a free position.
type SpawnEntry struct {
	Title        string  `yaml:"title"`
	Level        int     `yaml:"level"`
	Count        int32   `yaml:"count"`
	X            float32 `yaml:"x"`
	Y            float32 `yaml:"y"`
	RespawnDelay int     `yaml:"respawn_delay"` // seconds, 0 = no respawn
}

// RespawnDuration returns RespawnDelay as a duration.
func (e SpawnEntry) RespawnDuration() time.Duration {
	return time.Duration(e.RespawnDelay) * time.Second
}

// DefaultSimulation returns Simulation config with sensible defaults.
func DefaultSimulation() Simulation {
	return Simulation{
		LogLevel:       "info",
		TickRate:       60,
		ReportInterval: 5,
		Map: MapConfig{
			Cols:     16,
			Rows:     12,
			CellSize: 64,
		},
		Templates: TemplatesConfig{
			Source: TemplateSourceFile,
			Path:   "config/monsters.yaml",
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "arpg",
			Password: "arpg",
			DBName:   "arpg",
			SSLMode:  "disable",
		},
		Spawns: []SpawnEntry{
			{Title: "Tiger", Level: 1, Count: 3, X: -1, Y: -1, RespawnDelay: 10},
			{Title: "Goblin", Level: 2, Count: 3, X: -1, Y: -1, RespawnDelay: 10},
		},
		ProjectileHitRadius: 30,
		EffectLifetime:      0.5,
	}
}

// TickInterval returns the duration of one simulation tick.
func (s Simulation) TickInterval() time.Duration {
	if s.TickRate <= 0 {
		return 0
	}
	return time.Second / time.Duration(s.TickRate)
}

// ReportDuration returns the interval between snapshot reports.
func (s Simulation) ReportDuration() time.Duration {
	return time.Duration(s.ReportInterval) * time.Second
}

// Validate checks the config for values the simulation cannot run with.
func (s Simulation) Validate() error {
	if s.TickRate <= 0 {
		return fmt.Errorf("tick_rate must be positive, got %d", s.TickRate)
	}
	if s.Map.Cols <= 0 || s.Map.Rows <= 0 || s.Map.CellSize <= 0 {
		return fmt.Errorf("invalid map %dx%d cell %.1f", s.Map.Cols, s.Map.Rows, s.Map.CellSize)
	}
	switch s.Templates.Source {
	case TemplateSourceFile:
		if s.Templates.Path == "" {
			return fmt.Errorf("templates.path is required for source %q", TemplateSourceFile)
		}
	case TemplateSourceDatabase:
	default:
		return fmt.Errorf("unknown templates.source %q", s.Templates.Source)
	}
	for i, e := range s.Spawns {
		if e.Title == "" {
			return fmt.Errorf("spawns[%d]: empty title", i)
		}
		if e.Level < 1 {
			return fmt.Errorf("spawns[%d] %s: level must be >= 1", i, e.Title)
		}
		if e.Count < 1 {
			return fmt.Errorf("spawns[%d] %s: count must be >= 1", i, e.Title)
		}
	}
	return nil
}

// LoadSimulation loads simulation config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadSimulation(path string) (Simulation, error) {
	cfg := DefaultSimulation()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
