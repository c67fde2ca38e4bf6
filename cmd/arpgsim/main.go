package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/arpg/internal/ai"
	"github.com/udisondev/arpg/internal/config"
	"github.com/udisondev/arpg/internal/db"
	"github.com/udisondev/arpg/internal/game/combat"
	"github.com/udisondev/arpg/internal/game/effect"
	"github.com/udisondev/arpg/internal/game/projectile"
	"github.com/udisondev/arpg/internal/model"
	"github.com/udisondev/arpg/internal/spawn"
	"github.com/udisondev/arpg/internal/world"
)

const ConfigPath = "config/arpgsim.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config FIRST to determine log level
	cfgPath := ConfigPath
	if p := os.Getenv("ARPG_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadSimulation(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	// Enable AI debug logging if log level is debug
	ai.EnableDebugLogging(logLevel == slog.LevelDebug)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", cfgPath, err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rnd := ai.NewRandom(seed)

	slog.Info("arpg simulation starting",
		"config", cfgPath,
		"log_level", cfg.LogLevel,
		"tick_rate", cfg.TickRate,
		"seed", seed)

	gameMap, err := world.NewMap(cfg.Map.Cols, cfg.Map.Rows, cfg.Map.CellSize, cfg.Map.Blocked)
	if err != nil {
		return fmt.Errorf("building map: %w", err)
	}
	w := world.New(gameMap)

	templateRepo, closeTemplates, err := openTemplates(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeTemplates()

	// Collaborators of every monster controller
	combatMgr := combat.NewCombatManager(rnd)
	effects := effect.NewController(cfg.EffectLifetime)
	projectiles := projectile.NewController(w, combatMgr.CalculateDamage, combatMgr.ApplyDamage)
	projectiles.SetHitRadius(cfg.ProjectileHitRadius)
	projectiles.SetPassableFunc(gameMap.IsPassable)

	aiMgr := ai.NewTickManager(cfg.TickInterval())
	aiMgr.AddPostTickHook(projectiles.Update)
	aiMgr.AddPostTickHook(effects.Update)

	spawnMgr := spawn.NewManager(templateRepo, w, aiMgr, rnd)
	spawnMgr.SetCombat(combatMgr)
	spawnMgr.SetEffects(effects)
	spawnMgr.SetProjectiles(projectiles)

	respawnMgr := spawn.NewRespawnTaskManager(spawnMgr, spawn.DefaultRespawnCheckInterval)
	spawnMgr.SetRespawnScheduler(respawnMgr)

	if err := spawnMgr.LoadTemplates(ctx); err != nil {
		return err
	}
	for i, e := range cfg.Spawns {
		spawnMgr.AddSpawn(model.NewSpawn(int64(i+1), e.Title, e.Level, e.X, e.Y, e.Count, e.RespawnDuration()))
	}
	if err := spawnMgr.SpawnAll(ctx); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting AI tick manager", "interval", cfg.TickInterval())
		if err := aiMgr.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("AI tick manager: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := respawnMgr.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("respawn task manager: %w", err)
		}
		return nil
	})

	if interval := cfg.ReportDuration(); interval > 0 {
		r := &reporter{
			ai:          aiMgr,
			world:       w,
			combat:      combatMgr,
			projectiles: projectiles,
			effects:     effects,
		}
		g.Go(func() error {
			r.run(gctx, interval)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("simulation error: %w", err)
	}

	slog.Info("arpg simulation stopped",
		"ticks", aiMgr.TickCount(),
		"kills", combatMgr.Kills())
	return nil
}

// openTemplates returns the configured template source and its cleanup func.
func openTemplates(ctx context.Context, cfg config.Simulation) (spawn.TemplateRepository, func(), error) {
	if cfg.Templates.Source != config.TemplateSourceDatabase {
		slog.Info("monster templates from file", "path", cfg.Templates.Path)
		return spawn.NewFileTemplateRepo(cfg.Templates.Path), func() {}, nil
	}

	dsn := cfg.Database.DSN()
	database, err := db.New(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}
	slog.Info("database connected")

	if err := db.RunMigrations(ctx, dsn); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations applied")

	return db.NewTemplateRepository(database.Pool()), database.Close, nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
