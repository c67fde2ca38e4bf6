package model

// BehaviorState is the top-level AI mode of a monster.
type BehaviorState int32

const (
	// StateHunt - monster chases and attacks its target
	StateHunt BehaviorState = iota + 1
	// StateIdle - monster has nothing to do (never produced by the random re-roll)
	StateIdle
	// StateWalk - monster wanders along its facing
	StateWalk
)

// String returns human-readable state name
func (s BehaviorState) String() string {
	switch s {
	case StateHunt:
		return "HUNT"
	case StateIdle:
		return "IDLE"
	case StateWalk:
		return "WALK"
	default:
		return "UNKNOWN"
	}
}
