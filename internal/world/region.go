package world

// Region is one grid cell holding the entities standing in it.
type Region struct {
	key      cellKey
	entities map[uint32]Entity
}

func newRegion(key cellKey) *Region {
	return &Region{key: key, entities: make(map[uint32]Entity)}
}

func (r *Region) add(e Entity)     { r.entities[e.ObjectID()] = e }
func (r *Region) remove(id uint32) { delete(r.entities, id) }
func (r *Region) empty() bool      { return len(r.entities) == 0 }
func (r *Region) Len() int         { return len(r.entities) }

// ForEach calls fn for every entity in the region until fn returns false.
func (r *Region) ForEach(fn func(Entity) bool) {
	for _, e := range r.entities {
		if !fn(e) {
			return
		}
	}
}
