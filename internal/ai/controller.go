package ai

import "time"

// Controller is a ticked AI driver owned by TickManager.
type Controller interface {
	// ObjectID returns the id of the controlled actor.
	ObjectID() uint32

	// Start prepares the controller before its first tick.
	Start()

	// Stop cancels pending timers. Idempotent.
	Stop()

	// State returns the current state name.
	State() string

	// Tick advances the controller by dt.
	Tick(dt time.Duration)

	// Destroyed reports whether the actor is gone and the controller can be dropped.
	Destroyed() bool
}
