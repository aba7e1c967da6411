package ai

import (
	"fmt"
	"log/slog"
	"time"
)

// TickManager ticks registered controllers in registration order.
// Single-threaded: called from the simulation goroutine only.
type TickManager struct {
	order       []Controller
	controllers map[uint32]Controller
}

// NewTickManager creates new AI tick manager
func NewTickManager() *TickManager {
	return &TickManager{
		controllers: make(map[uint32]Controller),
	}
}

// Register starts controller and adds it to the tick list.
// Registering an id twice replaces the previous controller.
func (m *TickManager) Register(controller Controller) {
	id := controller.ObjectID()
	if _, ok := m.controllers[id]; ok {
		m.Unregister(id)
	}
	m.controllers[id] = controller
	m.order = append(m.order, controller)
	controller.Start()

	if IsDebugEnabled() {
		slog.Debug("AI controller registered", "objectID", id, "state", controller.State())
	}
}

// Unregister stops and removes a controller.
func (m *TickManager) Unregister(objectID uint32) {
	controller, ok := m.controllers[objectID]
	if !ok {
		return
	}
	delete(m.controllers, objectID)
	for i, c := range m.order {
		if c == controller {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	controller.Stop()

	if IsDebugEnabled() {
		slog.Debug("AI controller unregistered", "objectID", objectID)
	}
}

// TickAll ticks every controller once, then drops destroyed ones.
// Controllers registered during the pass are ticked from the next pass.
func (m *TickManager) TickAll(dt time.Duration) {
	pass := append([]Controller(nil), m.order...)
	for _, c := range pass {
		if c.Destroyed() {
			continue
		}
		c.Tick(dt)
	}

	removed := 0
	for _, c := range pass {
		if c.Destroyed() {
			m.Unregister(c.ObjectID())
			removed++
		}
	}

	if IsDebugEnabled() && len(pass) > 0 {
		slog.Debug("AI tick completed", "controllers", len(pass), "removed", removed)
	}
}

// Clear stops and removes every controller.
func (m *TickManager) Clear() {
	for _, c := range m.order {
		c.Stop()
	}
	m.order = nil
	m.controllers = make(map[uint32]Controller)
}

// Count returns number of registered controllers.
func (m *TickManager) Count() int {
	return len(m.order)
}

// GetController returns controller for an actor.
func (m *TickManager) GetController(objectID uint32) (Controller, error) {
	c, ok := m.controllers[objectID]
	if !ok {
		return nil, fmt.Errorf("controller not found for objectID %d", objectID)
	}
	return c, nil
}
