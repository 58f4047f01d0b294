package region

import "fmt"

// Builder accumulates records in insertion order. It is not safe for
// concurrent use; the load phase finishes before anything reads.
type Builder struct {
	order []ID
	recs  map[ID]*Record
}

func NewBuilder() *Builder {
	return &Builder{recs: make(map[ID]*Record)}
}

// Get returns the live record for id so callers can mutate it in place.
func (b *Builder) Get(id ID) (*Record, error) {
	r, ok := b.recs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r, nil
}

// Ensure returns the record for id, creating an empty one when absent.
func (b *Builder) Ensure(id ID) *Record {
	if r, ok := b.recs[id]; ok {
		return r
	}
	r := &Record{Series: make(map[Period]float64)}
	b.recs[id] = r
	b.order = append(b.order, id)
	return r
}

// Set replaces the record for id. A new id is appended to the order.
func (b *Builder) Set(id ID, rec Record) {
	if rec.Series == nil {
		rec.Series = make(map[Period]float64)
	}
	if _, ok := b.recs[id]; !ok {
		b.order = append(b.order, id)
	}
	b.recs[id] = &rec
}

func (b *Builder) Len() int { return len(b.order) }

// Entries lists records in insertion order.
func (b *Builder) Entries() []Entry {
	out := make([]Entry, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, Entry{ID: id, Record: *b.recs[id]})
	}
	return out
}

// Build freezes a deep copy of the builder's records together with the
// discovered periods and the observed maximum.
func (b *Builder) Build(periods []Period, max float64) *Registry {
	reg := &Registry{
		order:   append([]ID(nil), b.order...),
		recs:    make(map[ID]Record, len(b.recs)),
		periods: append([]Period(nil), periods...),
		max:     max,
	}
	for id, r := range b.recs {
		reg.recs[id] = r.clone()
	}
	return reg
}
