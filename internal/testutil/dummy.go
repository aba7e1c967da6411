package testutil

import (
	"github.com/udisondev/maskborn/internal/model"
)

// Dummy is a damageable target for combat tests.
type Dummy struct {
	ID        uint32
	Pos       model.Vec3
	Mask      model.Layer
	Health    *model.Health
	Hits      []model.DamageResult
	Destroyed bool
}

// NewDummy creates an enemy-layer dummy.
func NewDummy(id uint32, pos model.Vec3, maxHealth float64) *Dummy {
	return &Dummy{ID: id, Pos: pos, Mask: model.LayerEnemy, Health: model.NewHealth(maxHealth)}
}

func (d *Dummy) ObjectID() uint32     { return d.ID }
func (d *Dummy) Position() model.Vec3 { return d.Pos }
func (d *Dummy) Layer() model.Layer   { return d.Mask }
func (d *Dummy) IsDead() bool         { return d.Health.IsDead() }
func (d *Dummy) IsDestroyed() bool    { return d.Destroyed }

// TakeDamage records the hit and applies it to Health.
func (d *Dummy) TakeDamage(result model.DamageResult) {
	d.Hits = append(d.Hits, result)
	if !result.IsMiss {
		d.Health.TakeDamage(result.FinalDamage)
	}
}

// Query is a spatial query over a fixed set of targets.
type Query []model.Damageable

// QuerySphere returns targets on mask within radius of center.
func (q Query) QuerySphere(center model.Vec3, radius float64, mask model.Layer) []model.Damageable {
	var out []model.Damageable
	for _, d := range q {
		if mask.Has(d.Layer()) && d.Position().DistanceSquared(center) <= radius*radius {
			out = append(out, d)
		}
	}
	return out
}
