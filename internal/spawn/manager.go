package spawn

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/udisondev/arpg/internal/ai"
	"github.com/udisondev/arpg/internal/game/combat"
	"github.com/udisondev/arpg/internal/game/effect"
	"github.com/udisondev/arpg/internal/game/projectile"
	"github.com/udisondev/arpg/internal/model"
	"github.com/udisondev/arpg/internal/world"
)

// RespawnScheduler schedules a spawn entry to refill after delay.
type RespawnScheduler interface {
	ScheduleRespawn(spawn *model.Spawn, delay time.Duration)
}

// Manager manages monster spawns and respawns.
// It owns the wiring of every MonsterAI to its collaborators.
type Manager struct {
	templates sync.Map // map[string]*model.MonsterTemplate — title → template
	spawns    sync.Map // map[int64]*model.Spawn — spawnID → spawn
	owners    sync.Map // map[uint32]*model.Spawn — monster objectID → spawn

	templateRepo TemplateRepository
	world        *world.World
	aiManager    *ai.TickManager
	rnd          ai.Random

	combat      *combat.CombatManager
	effects     *effect.Controller
	projectiles *projectile.Controller
	respawner   RespawnScheduler

	objectIDCounter atomic.Uint32
	spawnCount      atomic.Int32
	templateCount   atomic.Int32
}

// NewManager creates new spawn manager.
func NewManager(
	templateRepo TemplateRepository,
	w *world.World,
	aiManager *ai.TickManager,
	rnd ai.Random,
) *Manager {
	mgr := &Manager{
		templateRepo: templateRepo,
		world:        w,
		aiManager:    aiManager,
		rnd:          rnd,
	}

	// Start objectID counter from 100000 (lower IDs are free for other units)
	mgr.objectIDCounter.Store(100000)

	return mgr
}

// SetCombat wires damage calculation and application; the manager also becomes
// the combat death handler.
func (m *Manager) SetCombat(c *combat.CombatManager) {
	m.combat = c
	if c != nil {
		c.SetDeathFunc(m.OnDeath)
	}
}

// SetEffects wires the visual effect controller.
func (m *Manager) SetEffects(e *effect.Controller) {
	m.effects = e
}

// SetProjectiles wires the projectile controller.
func (m *Manager) SetProjectiles(p *projectile.Controller) {
	m.projectiles = p
}

// SetRespawnScheduler sets who refills spawn entries after deaths.
func (m *Manager) SetRespawnScheduler(r RespawnScheduler) {
	m.respawner = r
}

// LoadTemplates loads all templates from the repository.
// A later template with the same title replaces the earlier one.
func (m *Manager) LoadTemplates(ctx context.Context) error {
	templates, err := m.templateRepo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("loading monster templates: %w", err)
	}

	for _, t := range templates {
		if _, loaded := m.templates.Swap(t.Title, t); !loaded {
			m.templateCount.Add(1)
		}
	}

	slog.Info("monster templates loaded", "count", len(templates))
	return nil
}

// Template returns the template with title.
func (m *Manager) Template(title string) (*model.MonsterTemplate, error) {
	value, ok := m.templates.Load(title)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, title)
	}
	return value.(*model.MonsterTemplate), nil
}

// TemplateCount returns number of loaded templates.
func (m *Manager) TemplateCount() int {
	return int(m.templateCount.Load())
}

// AddSpawn registers a spawn entry.
func (m *Manager) AddSpawn(spawn *model.Spawn) {
	if _, loaded := m.spawns.LoadOrStore(spawn.SpawnID(), spawn); loaded {
		slog.Warn("spawn already registered", "spawnID", spawn.SpawnID())
		return
	}
	m.spawnCount.Add(1)
}

// DoSpawn spawns one monster of spawn.
// Returns spawned monster or error
func (m *Manager) DoSpawn(ctx context.Context, spawn *model.Spawn) (*model.Monster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if spawn.CurrentCount() >= spawn.MaximumCount() {
		return nil, fmt.Errorf("spawn %d is full (%d/%d)", spawn.SpawnID(), spawn.CurrentCount(), spawn.MaximumCount())
	}

	template, err := m.Template(spawn.Title())
	if err != nil {
		return nil, fmt.Errorf("spawn %d: %w", spawn.SpawnID(), err)
	}

	pos := spawn.Position()
	if spawn.RandomPosition() {
		if err := m.world.Map().AssignSpawnPosition(m.rnd, &pos); err != nil {
			return nil, fmt.Errorf("placing spawn %d: %w", spawn.SpawnID(), err)
		}
	}

	objectID := m.objectIDCounter.Add(1)
	monster, err := model.NewMonster(objectID, template, spawn.Level())
	if err != nil {
		return nil, fmt.Errorf("creating monster for spawn %d: %w", spawn.SpawnID(), err)
	}
	monster.SetPosition(pos)

	spawn.IncreaseCount()
	spawn.AddMonster(monster)

	if err := m.world.AddUnit(monster); err != nil {
		// Rollback
		spawn.DecreaseCount()
		spawn.RemoveMonster(monster)
		return nil, fmt.Errorf("adding monster to world: %w", err)
	}
	m.owners.Store(objectID, spawn)

	m.aiManager.Register(objectID, m.newController(monster))

	slog.Info("monster spawned",
		"objectID", objectID,
		"monster", monster.Title(),
		"level", monster.Level(),
		"weapon", monster.Weapon().Name,
		"spawnID", spawn.SpawnID(),
		"x", pos.X,
		"y", pos.Y)

	return monster, nil
}

// newController builds the behavior controller of monster with every
// configured collaborator attached.
func (m *Manager) newController(monster *model.Monster) *ai.MonsterAI {
	ctrl := ai.NewMonsterAI(monster, m.rnd, m.world.GetUnit)
	ctrl.SetMoveFunc(m.world.MoveMonster)
	if m.effects != nil {
		ctrl.SetEffectFunc(m.effects.Setup)
	}
	if m.combat != nil {
		ctrl.SetDamageFuncs(m.combat.CalculateDamage, m.combat.ApplyDamage)
	}
	if m.projectiles != nil {
		ctrl.SetProjectileFunc(m.projectiles.Setup)
	}
	return ctrl
}

// Despawn removes monster from the simulation.
func (m *Manager) Despawn(monster *model.Monster) {
	m.aiManager.Unregister(monster.ObjectID())
	m.world.RemoveUnit(monster.ObjectID())

	value, ok := m.owners.LoadAndDelete(monster.ObjectID())
	if !ok {
		slog.Warn("despawning monster without spawn", "objectID", monster.ObjectID())
		return
	}
	spawn := value.(*model.Spawn)
	if spawn.RemoveMonster(monster) {
		spawn.DecreaseCount()
	}

	slog.Info("monster despawned",
		"objectID", monster.ObjectID(),
		"monster", monster.Title(),
		"spawnID", spawn.SpawnID())
}

// OnDeath despawns a killed monster and schedules its respawn.
// Units that are not monsters of this manager are ignored.
func (m *Manager) OnDeath(victim, _ model.Unit) {
	monster, ok := victim.(*model.Monster)
	if !ok {
		return
	}
	value, ok := m.owners.Load(monster.ObjectID())
	if !ok {
		return
	}
	spawn := value.(*model.Spawn)

	m.Despawn(monster)

	if spawn.DoRespawn() && m.respawner != nil {
		m.respawner.ScheduleRespawn(spawn, spawn.RespawnDelay())
	}
}

// ScheduleRespawn refills one slot of spawn.
// Used by RespawnTaskManager
func (m *Manager) ScheduleRespawn(ctx context.Context, spawn *model.Spawn) (*model.Monster, error) {
	return m.DoSpawn(ctx, spawn)
}

// GetSpawn returns spawn by ID
func (m *Manager) GetSpawn(spawnID int64) (*model.Spawn, bool) {
	value, ok := m.spawns.Load(spawnID)
	if !ok {
		return nil, false
	}
	return value.(*model.Spawn), true
}

// SpawnCount returns total number of spawn entries (O(1) cached count)
func (m *Manager) SpawnCount() int {
	return int(m.spawnCount.Load())
}

// sortedSpawns returns spawn entries ordered by spawnID.
func (m *Manager) sortedSpawns() []*model.Spawn {
	spawns := make([]*model.Spawn, 0, m.SpawnCount())
	m.spawns.Range(func(_, value any) bool {
		spawns = append(spawns, value.(*model.Spawn))
		return true
	})
	slices.SortFunc(spawns, func(a, b *model.Spawn) int {
		return cmp.Compare(a.SpawnID(), b.SpawnID())
	})
	return spawns
}

// SpawnAll fills every registered spawn entry up to its maximum count.
func (m *Manager) SpawnAll(ctx context.Context) error {
	count := 0
	var firstErr error

	for _, spawn := range m.sortedSpawns() {
		for spawn.CurrentCount() < spawn.MaximumCount() {
			if _, err := m.DoSpawn(ctx, spawn); err != nil {
				if firstErr == nil {
					firstErr = err
				}
				slog.Error("failed to spawn monster",
					"spawnID", spawn.SpawnID(),
					"monster", spawn.Title(),
					"error", err)
				break // continue with next spawn
			}
			count++
		}
	}

	if firstErr != nil {
		slog.Warn("SpawnAll completed with errors", "spawned", count, "error", firstErr)
		return fmt.Errorf("spawning all monsters: %w", firstErr)
	}

	slog.Info("all monsters spawned", "count", count)
	return nil
}
