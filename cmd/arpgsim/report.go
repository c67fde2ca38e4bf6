package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/udisondev/arpg/internal/ai"
	"github.com/udisondev/arpg/internal/game/combat"
	"github.com/udisondev/arpg/internal/game/effect"
	"github.com/udisondev/arpg/internal/game/projectile"
	"github.com/udisondev/arpg/internal/model"
	"github.com/udisondev/arpg/internal/world"
)

// reporter periodically logs the published simulation snapshot.
type reporter struct {
	ai          *ai.TickManager
	world       *world.World
	combat      *combat.CombatManager
	projectiles *projectile.Controller
	effects     *effect.Controller
}

func (r *reporter) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.report()
		}
	}
}

func (r *reporter) report() {
	views := r.ai.Snapshot()
	fired, landed := r.projectiles.Stats()

	slog.Info("simulation snapshot",
		"tick", r.ai.TickCount(),
		"monsters", len(views),
		"units", r.world.Count(),
		"states", countStates(views),
		"hits", r.combat.Hits(),
		"kills", r.combat.Kills(),
		"projectiles", r.projectiles.Count(),
		"fired", fired,
		"landed", landed,
		"effects", len(r.effects.Active()))

	for _, v := range views {
		slog.Debug("monster",
			"objectID", v.ObjectID,
			"monster", v.Title,
			"level", v.Level,
			"state", v.State,
			"facing", v.Direction,
			"x", v.Position.X,
			"y", v.Position.Y,
			"hp", v.HP,
			"hpMax", v.HPMax,
			"flash", v.FlashAlpha)
	}
}

// countStates returns number of monsters per behavior state label.
func countStates(views []model.MonsterView) map[string]int {
	counts := make(map[string]int, 3)
	for _, v := range views {
		counts[v.State]++
	}
	return counts
}
