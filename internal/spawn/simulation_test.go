package spawn

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/udisondev/arpg/internal/ai"
	"github.com/udisondev/arpg/internal/game/combat"
	"github.com/udisondev/arpg/internal/game/effect"
	"github.com/udisondev/arpg/internal/game/projectile"
	"github.com/udisondev/arpg/internal/model"
	"github.com/udisondev/arpg/internal/world"
)

const simStep = float32(1.0 / 60)

// simulation is the full wiring cmd/arpgsim builds, stepped by hand.
type simulation struct {
	world       *world.World
	ai          *ai.TickManager
	combat      *combat.CombatManager
	projectiles *projectile.Controller
	effects     *effect.Controller
	spawns      *Manager
}

func newSimulation(ctx context.Context, seed uint64) (*simulation, error) {
	gameMap, err := world.NewMap(8, 8, 64, []world.Cell{{X: 3, Y: 3}, {X: 4, Y: 3}})
	if err != nil {
		return nil, err
	}
	rnd := ai.NewRandom(seed)

	sim := &simulation{
		world: world.New(gameMap),
		ai:    ai.NewTickManager(0),
	}
	sim.combat = combat.NewCombatManager(rnd)
	sim.effects = effect.NewController(effect.DefaultLifetime)
	sim.projectiles = projectile.NewController(sim.world, sim.combat.CalculateDamage, sim.combat.ApplyDamage)
	sim.projectiles.SetPassableFunc(gameMap.IsPassable)
	sim.ai.AddPostTickHook(sim.projectiles.Update)
	sim.ai.AddPostTickHook(sim.effects.Update)

	sim.spawns = NewManager(StaticTemplateRepo{
		{Title: "Tiger", BaseAttack: 6, BaseDefense: 2, BaseHP: 60, AttackPerLevel: 2, DefensePerLevel: 1, HPPerLevel: 10, Speed: 120},
		{Title: "Goblin", BaseAttack: 4, BaseDefense: 1, BaseHP: 40, AttackPerLevel: 1, DefensePerLevel: 1, HPPerLevel: 8, Speed: 90},
	}, sim.world, sim.ai, rnd)
	sim.spawns.SetCombat(sim.combat)
	sim.spawns.SetEffects(sim.effects)
	sim.spawns.SetProjectiles(sim.projectiles)

	if err := sim.spawns.LoadTemplates(ctx); err != nil {
		return nil, err
	}
	sim.spawns.AddSpawn(model.NewSpawn(1, "Tiger", 2, -1, -1, 2, 0))
	sim.spawns.AddSpawn(model.NewSpawn(2, "Goblin", 1, -1, -1, 3, 0))
	if err := sim.spawns.SpawnAll(ctx); err != nil {
		return nil, err
	}
	return sim, nil
}

func (s *simulation) run(steps int) {
	for range steps {
		s.ai.Step(simStep)
	}
}

type SimulationSuite struct {
	suite.Suite
	ctx context.Context
}

func TestSimulationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping simulation tests in short mode")
	}
	suite.Run(t, new(SimulationSuite))
}

func (s *SimulationSuite) SetupSuite() {
	s.ctx = context.Background()
}

func (s *SimulationSuite) newSim(seed uint64) *simulation {
	sim, err := newSimulation(s.ctx, seed)
	s.Require().NoError(err)
	return sim
}

// TestInvariants runs a minute of simulated time and checks every published frame.
func (s *SimulationSuite) TestInvariants() {
	sim := s.newSim(7)
	gameMap := sim.world.Map()

	for range 3600 {
		sim.ai.Step(simStep)

		views := sim.ai.Snapshot()
		s.Equal(len(views), sim.ai.Count())
		s.Equal(len(views), sim.world.Count())

		for _, v := range views {
			s.Positive(v.HP, "dead monster %d published", v.ObjectID)
			s.LessOrEqual(v.HP, v.HPMax)
			s.Contains([]string{"HUNT", "WALK"}, v.State)
			s.GreaterOrEqual(v.FlashAlpha, float32(0))
			s.LessOrEqual(v.FlashAlpha, float32(1))
			s.True(gameMap.IsPassable(v.Position), "monster %d on blocked cell %v", v.ObjectID, v.Position)
		}
	}

	fired, _ := sim.projectiles.Stats()
	s.Positive(fired)
	s.Equal(int64(5-sim.world.Count()), sim.combat.Kills())
}

// TestSeededReplay checks two runs with the same seed publish identical frames.
func (s *SimulationSuite) TestSeededReplay() {
	a := s.newSim(42)
	b := s.newSim(42)

	for range 20 {
		a.run(60)
		b.run(60)
		s.Require().Equal(a.ai.Snapshot(), b.ai.Snapshot())
	}

	s.Equal(a.combat.Hits(), b.combat.Hits())
	s.Equal(a.combat.Kills(), b.combat.Kills())
	s.Equal(a.effects.Total(), b.effects.Total())
}
