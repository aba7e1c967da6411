// Package world is the entity registry of a session and the spatial query
// the combat code runs against.
package world

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/udisondev/maskborn/internal/model"
)

// Entity is anything registered in the world.
type Entity = model.Damageable

// destroyable entities are pruned once destroyed.
type destroyable interface {
	IsDestroyed() bool
}

type entry struct {
	entity Entity
	cell   cellKey
}

// World buckets entities into a uniform grid on the ground plane.
// Buckets are refreshed by Update; queries look one cell further than the
// radius so entities that moved since the last refresh are still found.
type World struct {
	cellSize float64
	regions  map[cellKey]*Region
	entries  map[uint32]*entry
}

// New creates an empty world. cellSize <= 0 selects DefaultCellSize.
func New(cellSize float64) *World {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &World{
		cellSize: cellSize,
		regions:  make(map[cellKey]*Region),
		entries:  make(map[uint32]*entry),
	}
}

// Add registers e. Object ids must be unique.
func (w *World) Add(e Entity) error {
	id := e.ObjectID()
	if _, ok := w.entries[id]; ok {
		return fmt.Errorf("object %d already in world", id)
	}
	pos := e.Position()
	ent := &entry{entity: e, cell: cellOf(pos.X, pos.Z, w.cellSize)}
	w.entries[id] = ent
	w.region(ent.cell, true).add(e)
	return nil
}

// Remove unregisters the object. Returns false if it was not registered.
func (w *World) Remove(id uint32) bool {
	ent, ok := w.entries[id]
	if !ok {
		return false
	}
	delete(w.entries, id)
	w.detach(id, ent.cell)
	return true
}

// Get returns a registered object.
func (w *World) Get(id uint32) (Entity, bool) {
	ent, ok := w.entries[id]
	if !ok {
		return nil, false
	}
	return ent.entity, true
}

// Count returns the number of registered objects.
func (w *World) Count() int {
	return len(w.entries)
}

// RegionCount returns the number of non-empty grid cells.
func (w *World) RegionCount() int {
	return len(w.regions)
}

// QuerySphere returns live entities on mask within radius of center, ordered
// by object id. Implements model.SpatialQuery.
func (w *World) QuerySphere(center model.Vec3, radius float64, mask model.Layer) []model.Damageable {
	if radius < 0 || math.IsNaN(radius) {
		return nil
	}
	var out []model.Damageable
	r2 := radius * radius
	w.regionsAround(center, radius+w.cellSize, func(region *Region) {
		region.ForEach(func(e Entity) bool {
			if !mask.Has(e.Layer()) || isDestroyed(e) {
				return true
			}
			if e.Position().DistanceSquared(center) <= r2 {
				out = append(out, e)
			}
			return true
		})
	})
	slices.SortFunc(out, func(a, b model.Damageable) int {
		return cmp.Compare(a.ObjectID(), b.ObjectID())
	})
	return out
}

// regionsAround calls fn for every non-empty region overlapping the square of
// half-size radius around center. When that square spans more cells than
// there are regions, the regions are scanned directly instead.
func (w *World) regionsAround(center model.Vec3, radius float64, fn func(*Region)) {
	span := math.Floor(2*radius/w.cellSize) + 2
	if span*span > float64(len(w.regions)) {
		for _, region := range w.regions {
			fn(region)
		}
		return
	}
	for _, key := range cellsAround(center.X, center.Z, radius, w.cellSize) {
		if region, ok := w.regions[key]; ok {
			fn(region)
		}
	}
}

// Update removes destroyed entities and re-buckets the ones that moved.
// Returns the ids of pruned entities.
func (w *World) Update() []uint32 {
	var pruned []uint32
	for id, ent := range w.entries {
		if isDestroyed(ent.entity) {
			pruned = append(pruned, id)
			continue
		}
		pos := ent.entity.Position()
		if cell := cellOf(pos.X, pos.Z, w.cellSize); cell != ent.cell {
			w.detach(id, ent.cell)
			ent.cell = cell
			w.region(cell, true).add(ent.entity)
		}
	}
	slices.Sort(pruned)
	for _, id := range pruned {
		w.Remove(id)
	}
	return pruned
}

// Clear removes every entity.
func (w *World) Clear() {
	clear(w.entries)
	clear(w.regions)
}

func (w *World) region(key cellKey, create bool) *Region {
	r, ok := w.regions[key]
	if !ok && create {
		r = newRegion(key)
		w.regions[key] = r
	}
	return r
}

func (w *World) detach(id uint32, key cellKey) {
	r := w.region(key, false)
	if r == nil {
		return
	}
	r.remove(id)
	if r.empty() {
		delete(w.regions, key)
	}
}

func isDestroyed(e Entity) bool {
	d, ok := e.(destroyable)
	return ok && d.IsDestroyed()
}
