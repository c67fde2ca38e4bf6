package ai

import "github.com/udisondev/arpg/internal/model"

// Controller represents AI controller interface for monsters
type Controller interface {
	// Start starts AI controller
	Start()

	// Stop stops AI controller
	Stop()

	// SetState forces a behavior state
	SetState(state model.BehaviorState)

	// CurrentState returns current behavior state
	CurrentState() model.BehaviorState

	// Tick performs one simulation step of dt seconds
	Tick(dt float32)
}

// viewer is implemented by controllers that can publish a render snapshot.
type viewer interface {
	View() model.MonsterView
}
