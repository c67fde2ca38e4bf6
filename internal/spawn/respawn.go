package spawn

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/udisondev/arpg/internal/model"
)

// DefaultRespawnCheckInterval is how often due respawns are processed.
const DefaultRespawnCheckInterval = time.Second

// RespawnTask represents a scheduled respawn task
type RespawnTask struct {
	Spawn       *model.Spawn
	RespawnTime time.Time
}

// RespawnTaskManager manages scheduled respawns
type RespawnTaskManager struct {
	spawnManager *Manager
	interval     time.Duration
	now          func() time.Time
	stopCh       chan struct{}
	stopOnce     sync.Once

	mu     sync.Mutex
	nextID uint64
	tasks  map[uint64]*RespawnTask // taskID → task
}

// NewRespawnTaskManager creates new respawn task manager
func NewRespawnTaskManager(spawnManager *Manager, interval time.Duration) *RespawnTaskManager {
	if interval <= 0 {
		interval = DefaultRespawnCheckInterval
	}
	return &RespawnTaskManager{
		spawnManager: spawnManager,
		interval:     interval,
		now:          time.Now,
		stopCh:       make(chan struct{}),
		tasks:        make(map[uint64]*RespawnTask),
	}
}

// Start starts respawn task manager (blocks until context is canceled)
func (m *RespawnTaskManager) Start(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	slog.Info("respawn task manager started", "interval", m.interval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("respawn task manager stopping")
			return ctx.Err()

		case <-m.stopCh:
			slog.Info("respawn task manager stopped")
			return nil

		case now := <-ticker.C:
			m.ProcessDue(ctx, now)
		}
	}
}

// Stop stops respawn task manager
func (m *RespawnTaskManager) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

// ScheduleRespawn schedules one respawn of spawn after delay.
func (m *RespawnTaskManager) ScheduleRespawn(spawn *model.Spawn, delay time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	respawnTime := m.now().Add(delay)
	m.nextID++
	m.tasks[m.nextID] = &RespawnTask{
		Spawn:       spawn,
		RespawnTime: respawnTime,
	}

	slog.Debug("respawn scheduled",
		"spawnID", spawn.SpawnID(),
		"monster", spawn.Title(),
		"delay", delay,
		"respawnTime", respawnTime.Format(time.RFC3339))
}

// CancelRespawn cancels every scheduled respawn of spawnID.
func (m *RespawnTaskManager) CancelRespawn(spawnID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, task := range m.tasks {
		if task.Spawn.SpawnID() == spawnID {
			delete(m.tasks, id)
		}
	}

	slog.Debug("respawn cancelled", "spawnID", spawnID)
}

// ProcessDue executes the tasks due at now and returns how many monsters respawned.
func (m *RespawnTaskManager) ProcessDue(ctx context.Context, now time.Time) int {
	m.mu.Lock()
	var due []*RespawnTask
	for id, task := range m.tasks {
		if !now.Before(task.RespawnTime) {
			due = append(due, task)
			delete(m.tasks, id)
		}
	}
	m.mu.Unlock()

	// Process due tasks outside lock
	return m.executeTasks(ctx, due)
}

// executeTasks executes respawn tasks
func (m *RespawnTaskManager) executeTasks(ctx context.Context, tasks []*RespawnTask) int {
	respawned := 0
	for _, task := range tasks {
		spawn := task.Spawn

		if spawn.CurrentCount() >= spawn.MaximumCount() {
			slog.Debug("respawn skipped (spawn full)",
				"spawnID", spawn.SpawnID(),
				"currentCount", spawn.CurrentCount(),
				"maximumCount", spawn.MaximumCount())
			continue
		}

		monster, err := m.spawnManager.ScheduleRespawn(ctx, spawn)
		if err != nil {
			slog.Error("respawn failed",
				"spawnID", spawn.SpawnID(),
				"monster", spawn.Title(),
				"error", err)
			continue
		}
		respawned++

		slog.Info("monster respawned",
			"objectID", monster.ObjectID(),
			"monster", monster.Title(),
			"spawnID", spawn.SpawnID())
	}
	return respawned
}

// TaskCount returns number of scheduled respawn tasks
func (m *RespawnTaskManager) TaskCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Tasks returns scheduled tasks of spawnID (for testing)
func (m *RespawnTaskManager) Tasks(spawnID int64) []RespawnTask {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []RespawnTask
	for _, task := range m.tasks {
		if task.Spawn.SpawnID() == spawnID {
			out = append(out, *task)
		}
	}
	return out
}
