package model

// Health is the shared damage/heal/death contract of an actor.
// Once health reaches zero the actor is dead: further damage and heals are ignored,
// and the death edge is reported exactly once.
type Health struct {
	current float64
	max     float64
	dead    bool
}

// NewHealth создаёт Health с текущим значением, равным максимальному.
func NewHealth(max float64) *Health {
	if max < 1 {
		max = 1
	}
	return &Health{current: max, max: max}
}

// Current returns current health.
func (h *Health) Current() float64 {
	return h.current
}

// Max returns max health.
func (h *Health) Max() float64 {
	return h.max
}

// IsDead проверяет мёртв ли актор (HP <= 0).
func (h *Health) IsDead() bool {
	return h.current <= 0
}

// TakeDamage reduces health by amount (clamp at 0).
// Returns the damage actually applied and whether this call killed the actor.
// Non-positive amounts and damage to a dead actor are no-ops.
func (h *Health) TakeDamage(amount float64) (applied float64, killed bool) {
	if h.IsDead() || amount <= 0 {
		return 0, false
	}
	before := h.current
	h.current -= amount
	if h.current < 0 {
		h.current = 0
	}
	applied = before - h.current
	if h.current <= 0 && !h.dead {
		h.dead = true
		killed = true
	}
	return applied, killed
}

// Heal restores amount up to max. Dead actors are not healed.
// Returns the amount actually restored.
func (h *Health) Heal(amount float64) float64 {
	if h.IsDead() || amount <= 0 {
		return 0
	}
	before := h.current
	h.current += amount
	if h.current > h.max {
		h.current = h.max
	}
	return h.current - before
}

// SetMax changes max health and clamps current health if needed.
func (h *Health) SetMax(max float64) {
	if max < 1 {
		max = 1
	}
	h.max = max
	if h.current > h.max {
		h.current = h.max
	}
}

// Ratio returns current/max in [0, 1].
func (h *Health) Ratio() float64 {
	return h.current / h.max
}
