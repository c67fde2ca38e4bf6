package ai

import "github.com/udisondev/arpg/internal/model"

// State machine constants.
const (
	rethinkMin       = 2.0  // min seconds between behavior re-rolls
	rethinkMax       = 4.0  // max seconds between behavior re-rolls
	idleTimerDivisor = 4.0  // IDLE lasts a quarter of a normal re-roll period
	demoteTimer      = 1.0  // timer after HUNT is dropped for lack of a target
	huntTimer        = 30.0 // timer after aggro
	aggroChance      = 20   // percent
	aggroRollMax     = 100
)

// rerollStates is the set the periodic re-roll draws from. IDLE is not part of it.
var rerollStates = [...]model.BehaviorState{model.StateHunt, model.StateWalk}

// TargetAction tells the caller what to do with the monster's target handle.
type TargetAction uint8

const (
	// TargetKeep leaves the target untouched
	TargetKeep TargetAction = iota
	// TargetClear drops a dead or vanished target
	TargetClear
	// TargetAcquireAttacker makes the last attacker the new target
	TargetAcquireAttacker
)

// TransitionInput is everything the state machine reads in one step.
type TransitionInput struct {
	State     model.BehaviorState
	Direction model.Direction
	Timer     float32
	DT        float32

	HasTarget   bool
	TargetAlive bool

	HasAttacker   bool
	AttackerAlive bool
}

// TransitionOutput is the state machine result of one step.
type TransitionOutput struct {
	State     model.BehaviorState
	Direction model.Direction
	Timer     float32
	Target    TargetAction

	Rerolled         bool // timer expired, direction and state were re-drawn
	Demoted          bool // HUNT without target fell back to WALK
	Aggro            bool // last attacker became the target
	AttackerConsumed bool // a last-attacker signal was present and is now spent
}

// Transition advances the behavior state machine by dt.
//
// Steps run in a fixed order:
//  1. count the timer down;
//  2. on expiry re-draw direction, then state from {HUNT, WALK}, then the timer;
//  3. drop a dead target;
//  4. demote HUNT without a target to WALK;
//  5. roll aggro against a live attacker when there is no target, and consume the attacker.
//
// Random draws happen only in steps 2 and 5, in that order.
func Transition(in TransitionInput, rnd Random) TransitionOutput {
	out := TransitionOutput{
		State:     in.State,
		Direction: in.Direction,
		Timer:     in.Timer - in.DT,
		Target:    TargetKeep,
	}

	if out.Timer <= 0 {
		out.Direction = model.Directions[rnd.IntN(0, len(model.Directions))]
		out.State = rerollStates[rnd.IntN(0, len(rerollStates))]
		out.Timer = rnd.Float32(rethinkMin, rethinkMax)
		if out.State == model.StateIdle {
			out.Timer /= idleTimerDivisor
		}
		out.Rerolled = true
	}

	hasTarget := in.HasTarget
	if hasTarget && !in.TargetAlive {
		hasTarget = false
		out.Target = TargetClear
	}

	if out.State == model.StateHunt && !hasTarget {
		out.State = model.StateWalk
		out.Timer = demoteTimer
		out.Demoted = true
	}

	if in.HasAttacker {
		if in.AttackerAlive && !hasTarget && rnd.IntN(0, aggroRollMax) < aggroChance {
			out.State = model.StateHunt
			out.Target = TargetAcquireAttacker
			out.Timer = huntTimer
			out.Aggro = true
		}
		out.AttackerConsumed = true
	}

	return out
}
