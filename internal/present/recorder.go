package present

import (
	"time"

	"github.com/udisondev/maskborn/internal/model"
)

// TextRecord is one ShowDamageText call.
type TextRecord struct {
	Pos    model.Vec3
	Amount float64
	Kind   model.TextKind
}

// EffectRecord is one PlayEffect call.
type EffectRecord struct {
	ID       string
	Pos      model.Vec3
	Duration time.Duration
}

// Recorder stores every presentation call. Used by tests and by the
// simulator summary.
type Recorder struct {
	Effects      []EffectRecord
	Stopped      []Handle
	Texts        []TextRecord
	Registered   map[DisplayHandle]uint32
	Unregistered []DisplayHandle
	Attacks      []uint32
	Deaths       []uint32

	next uint64
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{Registered: make(map[DisplayHandle]uint32)}
}

// Collaborators returns r in every collaborator slot.
func (r *Recorder) Collaborators() Collaborators {
	return Collaborators{Effects: r, Text: r, Health: r, Anim: r}
}

func (r *Recorder) PlayEffect(id string, pos, _ model.Vec3, duration time.Duration) Handle {
	r.next++
	r.Effects = append(r.Effects, EffectRecord{ID: id, Pos: pos, Duration: duration})
	return Handle(r.next)
}

func (r *Recorder) StopEffect(h Handle) {
	r.Stopped = append(r.Stopped, h)
}

func (r *Recorder) ShowDamageText(pos model.Vec3, amount float64, kind model.TextKind) {
	r.Texts = append(r.Texts, TextRecord{Pos: pos, Amount: amount, Kind: kind})
}

// TextsOfKind returns recorded texts of one kind.
func (r *Recorder) TextsOfKind(kind model.TextKind) []TextRecord {
	var out []TextRecord
	for _, t := range r.Texts {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

func (r *Recorder) RegisterDisplay(objectID uint32, _, _ float64) DisplayHandle {
	r.next++
	h := DisplayHandle(r.next)
	r.Registered[h] = objectID
	return h
}

func (r *Recorder) UpdateDisplay(DisplayHandle, float64, float64) {}

func (r *Recorder) UnregisterDisplay(h DisplayHandle) {
	r.Unregistered = append(r.Unregistered, h)
}

func (r *Recorder) PlayAttack(objectID uint32) {
	r.Attacks = append(r.Attacks, objectID)
}

func (r *Recorder) PlayDeath(objectID uint32) {
	r.Deaths = append(r.Deaths, objectID)
}
