package core

// IDPool hands out the lowest free identifier from a bounded range.
// Used wherever a fixed-size table of device slots is indexed by small
// ids (hardware lights, geometry slots).
type IDPool struct {
	used []bool
}

// NewIDPool creates a pool covering ids 0..size-1.
func NewIDPool(size int) *IDPool {
	return &IDPool{used: make([]bool, size)}
}

// Acquire returns the lowest free id, or -1 if the pool is exhausted.
func (p *IDPool) Acquire() int {
	for i, u := range p.used {
		if !u {
			p.used[i] = true
			return i
		}
	}
	return -1
}

// Claim marks a specific id as used. Out-of-range ids are ignored.
func (p *IDPool) Claim(id int) {
	if id >= 0 && id < len(p.used) {
		p.used[id] = true
	}
}

// Release returns an id to the pool. Out-of-range ids are ignored.
func (p *IDPool) Release(id int) {
	if id >= 0 && id < len(p.used) {
		p.used[id] = false
	}
}

// Free reports whether the given id is available.
func (p *IDPool) Free(id int) bool {
	return id >= 0 && id < len(p.used) && !p.used[id]
}

// Size returns the total number of ids managed by the pool.
func (p *IDPool) Size() int {
	return len(p.used)
}
