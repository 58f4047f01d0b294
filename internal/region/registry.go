package region

import "fmt"

// Registry is the read-only view handed to rendering and info lookups.
type Registry struct {
	order   []ID
	recs    map[ID]Record
	periods []Period
	max     float64
}

// Get returns a copy of the record for id.
func (r *Registry) Get(id ID) (Record, error) {
	rec, ok := r.recs[id]
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return rec.clone(), nil
}

// Entries returns copies of every record in insertion order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, Entry{ID: id, Record: r.recs[id].clone()})
	}
	return out
}

// Periods returns the discovered periods in header order.
func (r *Registry) Periods() []Period {
	return append([]Period(nil), r.periods...)
}

// HasPeriod reports whether p was discovered.
func (r *Registry) HasPeriod(p Period) bool {
	for _, q := range r.periods {
		if q == p {
			return true
		}
	}
	return false
}

// Max is the largest value seen during ingestion.
func (r *Registry) Max() float64 { return r.max }

func (r *Registry) Len() int { return len(r.order) }

// Renderable lists the ids whose records carry a contour.
func (r *Registry) Renderable() []ID {
	var out []ID
	for _, id := range r.order {
		if r.recs[id].Renderable() {
			out = append(out, id)
		}
	}
	return out
}
