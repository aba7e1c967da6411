package ai

import (
	"github.com/looplab/fsm"
)

// Enemy states.
const (
	StateIdle   = "idle"
	StateMove   = "move"
	StateAttack = "attack"
	StateHitted = "hitted"
	StateDie    = "die"
)

// Enemy state machine events.
const (
	EventChase   = "chase"
	EventEngage  = "engage"
	EventHit     = "hit"
	EventRecover = "recover"
	EventHalt    = "halt"
	EventDie     = "die"
)

// enemyEvents is the transition table. Die has no outgoing transitions.
var enemyEvents = fsm.Events{
	{Name: EventChase, Src: []string{StateIdle, StateAttack, StateHitted}, Dst: StateMove},
	{Name: EventEngage, Src: []string{StateIdle, StateMove, StateHitted}, Dst: StateAttack},
	{Name: EventHit, Src: []string{StateIdle, StateMove, StateAttack}, Dst: StateHitted},
	{Name: EventRecover, Src: []string{StateHitted}, Dst: StateIdle},
	{Name: EventHalt, Src: []string{StateMove, StateAttack, StateHitted}, Dst: StateIdle},
	{Name: EventDie, Src: []string{StateIdle, StateMove, StateAttack, StateHitted}, Dst: StateDie},
}

func newEnemyMachine() *fsm.FSM {
	return fsm.NewFSM(StateIdle, enemyEvents, fsm.Callbacks{})
}
