package model

// Layer is a bit mask of collision layers used by spatial queries.
type Layer uint8

const (
	LayerPlayer Layer = 1 << iota
	LayerEnemy
	LayerPickup
)

// Has reports whether mask includes any bit of l.
func (mask Layer) Has(l Layer) bool {
	return mask&l != 0
}

// Damageable is any actor a hit or an area effect can land on.
type Damageable interface {
	ObjectID() uint32
	Position() Vec3
	Layer() Layer
	IsDead() bool
	// TakeDamage applies an already-resolved damage instance.
	TakeDamage(result DamageResult)
}

// SpatialQuery finds damageable entities around a point.
type SpatialQuery interface {
	QuerySphere(center Vec3, radius float64, mask Layer) []Damageable
}
