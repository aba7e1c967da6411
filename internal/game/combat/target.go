package combat

import (
	"math"

	"github.com/udisondev/maskborn/internal/model"
)

// DefaultDetectionRange is how far the player looks for targets.
const DefaultDetectionRange = 10.0

// nearbyEnemies returns alive enemies within radius of from.
func nearbyEnemies(query model.SpatialQuery, from model.Vec3, radius float64) []model.Damageable {
	if query == nil {
		return nil
	}
	hits := query.QuerySphere(from, radius, model.LayerEnemy)
	alive := hits[:0:0]
	for _, h := range hits {
		if h != nil && !h.IsDead() {
			alive = append(alive, h)
		}
	}
	return alive
}

// ClosestEnemy returns the nearest alive enemy within radius, or nil.
func ClosestEnemy(query model.SpatialQuery, from model.Vec3, radius float64) model.Damageable {
	var closest model.Damageable
	minDist := math.Inf(1)
	for _, e := range nearbyEnemies(query, from, radius) {
		if d := from.DistanceSquared(e.Position()); d < minDist {
			minDist = d
			closest = e
		}
	}
	return closest
}

// BestTarget picks a melee target: closer is better, and enemies in front of
// facing get a bonus of up to 0.5.
func BestTarget(query model.SpatialQuery, from, facing model.Vec3, radius float64) model.Damageable {
	var best model.Damageable
	bestScore := 0.0
	forward := facing.Flat().Normalized()
	for _, e := range nearbyEnemies(query, from, radius) {
		toEnemy := e.Position().Sub(from)
		score := 1 - toEnemy.Length()/radius

		dir := toEnemy.Flat().Normalized()
		if dot := forward.X*dir.X + forward.Z*dir.Z; dot > 0 {
			score += dot * 0.5
		}
		if score > bestScore {
			bestScore = score
			best = e
		}
	}
	return best
}
