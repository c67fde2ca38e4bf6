package ai

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/udisondev/arpg/internal/model"
)

// DefaultTickInterval is the simulation step used when none is configured (60 Hz).
const DefaultTickInterval = time.Second / 60

// PostTickFunc runs after every controller finished its tick (projectiles, effects, cleanup).
type PostTickFunc func(dt float32)

// TickManager manages AI ticks for all registered monsters.
// Every controller completes its tick, then post-tick hooks run, then the
// render snapshot is published. Readers never see a partially ticked frame.
type TickManager struct {
	controllers     sync.Map // map[uint32]Controller — objectID → controller
	controllerCount atomic.Int32
	interval        time.Duration
	stopCh          chan struct{}
	stopOnce        sync.Once

	hooksMu   sync.Mutex
	postTicks []PostTickFunc

	tickCount atomic.Uint64

	snapshotMu sync.RWMutex
	snapshot   []model.MonsterView
}

// NewTickManager creates new AI tick manager.
// A non-positive interval falls back to DefaultTickInterval.
func NewTickManager(interval time.Duration) *TickManager {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &TickManager{
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Register registers AI controller for monster and starts it.
func (m *TickManager) Register(objectID uint32, controller Controller) {
	if _, loaded := m.controllers.LoadOrStore(objectID, controller); loaded {
		slog.Warn("AI controller already registered", "objectID", objectID)
		return
	}
	m.controllerCount.Add(1)
	controller.Start()

	slog.Debug("AI controller registered",
		"objectID", objectID,
		"state", controller.CurrentState())
}

// Unregister stops and removes AI controller.
func (m *TickManager) Unregister(objectID uint32) {
	value, ok := m.controllers.LoadAndDelete(objectID)
	if !ok {
		return
	}
	m.controllerCount.Add(-1)

	controller := value.(Controller)
	controller.Stop()

	slog.Debug("AI controller unregistered", "objectID", objectID)
}

// AddPostTickHook appends fn to the hooks run after every tick, in registration order.
func (m *TickManager) AddPostTickHook(fn PostTickFunc) {
	m.hooksMu.Lock()
	defer m.hooksMu.Unlock()
	m.postTicks = append(m.postTicks, fn)
}

// Start starts AI tick loop (blocks until context is canceled or Stop is called).
// dt of each step is the wall time elapsed since the previous step.
func (m *TickManager) Start(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	slog.Info("AI tick manager started", "interval", m.interval)

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			slog.Info("AI tick manager stopping")
			return ctx.Err()

		case <-m.stopCh:
			slog.Info("AI tick manager stopped")
			return nil

		case now := <-ticker.C:
			dt := float32(now.Sub(last).Seconds())
			last = now
			m.Step(dt)
		}
	}
}

// Stop stops AI tick loop
func (m *TickManager) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

// Step advances the whole simulation by dt seconds synchronously.
// Controllers tick in objectID order so seeded runs replay identically.
func (m *TickManager) Step(dt float32) {
	ids := make([]uint32, 0, m.Count())
	m.controllers.Range(func(key, _ any) bool {
		ids = append(ids, key.(uint32))
		return true
	})
	slices.Sort(ids)

	for _, id := range ids {
		// A controller may be unregistered by an earlier tick (death).
		value, ok := m.controllers.Load(id)
		if !ok {
			continue
		}
		value.(Controller).Tick(dt)
	}

	m.hooksMu.Lock()
	hooks := slices.Clone(m.postTicks)
	m.hooksMu.Unlock()
	for _, hook := range hooks {
		hook(dt)
	}

	m.publish(ids)
	ticks := m.tickCount.Add(1)

	if IsDebugEnabled() && len(ids) > 0 {
		slog.Debug("AI tick completed", "tick", ticks, "controllers", len(ids))
	}
}

// publish rebuilds the render snapshot from controllers that are still registered.
func (m *TickManager) publish(ids []uint32) {
	views := make([]model.MonsterView, 0, len(ids))
	for _, id := range ids {
		value, ok := m.controllers.Load(id)
		if !ok {
			continue
		}
		if v, ok := value.(viewer); ok {
			views = append(views, v.View())
		}
	}

	m.snapshotMu.Lock()
	m.snapshot = views
	m.snapshotMu.Unlock()
}

// Snapshot returns the render views published after the last completed tick.
func (m *TickManager) Snapshot() []model.MonsterView {
	m.snapshotMu.RLock()
	defer m.snapshotMu.RUnlock()
	return slices.Clone(m.snapshot)
}

// TickCount returns number of completed ticks.
func (m *TickManager) TickCount() uint64 {
	return m.tickCount.Load()
}

// Count returns number of registered controllers (O(1) cached count)
func (m *TickManager) Count() int {
	return int(m.controllerCount.Load())
}

// GetController returns controller for monster
func (m *TickManager) GetController(objectID uint32) (Controller, error) {
	value, ok := m.controllers.Load(objectID)
	if !ok {
		return nil, fmt.Errorf("controller not found for objectID %d", objectID)
	}
	return value.(Controller), nil
}
