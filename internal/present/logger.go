package present

import (
	"log/slog"
	"time"

	"github.com/udisondev/maskborn/internal/model"
)

// Logger renders presentation calls as debug log records.
// Used by the headless simulator.
type Logger struct {
	log  *slog.Logger
	next uint64
}

// NewLogger creates a Logger writing to log (slog.Default if nil).
func NewLogger(log *slog.Logger) *Logger {
	if log == nil {
		log = slog.Default()
	}
	return &Logger{log: log.With("component", "present")}
}

// Collaborators returns l in every collaborator slot.
func (l *Logger) Collaborators() Collaborators {
	return Collaborators{Effects: l, Text: l, Health: l, Anim: l}
}

func (l *Logger) PlayEffect(id string, pos, facing model.Vec3, duration time.Duration) Handle {
	l.next++
	l.log.Debug("play effect",
		"effect", id,
		"handle", l.next,
		"x", pos.X, "y", pos.Y, "z", pos.Z,
		"duration", duration)
	return Handle(l.next)
}

func (l *Logger) StopEffect(h Handle) {
	l.log.Debug("stop effect", "handle", uint64(h))
}

func (l *Logger) ShowDamageText(pos model.Vec3, amount float64, kind model.TextKind) {
	l.log.Debug("combat text", "kind", kind.String(), "amount", amount, "x", pos.X, "z", pos.Z)
}

func (l *Logger) RegisterDisplay(objectID uint32, maxHealth, heightOffset float64) DisplayHandle {
	l.next++
	l.log.Debug("health bar registered", "objectID", objectID, "max", maxHealth, "offset", heightOffset)
	return DisplayHandle(l.next)
}

func (l *Logger) UpdateDisplay(h DisplayHandle, current, max float64) {
	l.log.Debug("health bar", "handle", uint64(h), "current", current, "max", max)
}

func (l *Logger) UnregisterDisplay(h DisplayHandle) {
	l.log.Debug("health bar removed", "handle", uint64(h))
}

func (l *Logger) PlayAttack(objectID uint32) {
	l.log.Debug("attack animation", "objectID", objectID)
}

func (l *Logger) PlayDeath(objectID uint32) {
	l.log.Debug("death animation", "objectID", objectID)
}
