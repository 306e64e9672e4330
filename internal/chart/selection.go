package chart

import (
	"fmt"

	"wdikit/internal/frame"
)

// Selection is the live predicate behind a linked-chart interaction.
//
// It is a two-state machine. Unset (the initial state, restored by
// Clear) is the identity filter: every row of every dataset passes,
// so dependent charts render their full data before any interaction.
// Active holds a committed interval or discrete set per participating
// field; a row passes only if every constrained field accepts it.
//
// Exactly one Selection exists per source chart. Dependent charts hold
// the same pointer — never a copy — so all of them observe the same
// state at all times.
type Selection struct {
	name      string
	fields    []string
	active    bool
	intervals map[string]Interval
	points    map[string]map[string]bool
}

// Interval is an inclusive numeric range over one field.
type Interval struct {
	Lo, Hi float64
}

func newSelection(name string, fields ...string) *Selection {
	return &Selection{
		name:      name,
		fields:    append([]string(nil), fields...),
		intervals: make(map[string]Interval),
		points:    make(map[string]map[string]bool),
	}
}

// Name returns the parameter name wired into the serialized specs.
func (s *Selection) Name() string { return s.name }

// Fields returns the participating columns.
func (s *Selection) Fields() []string {
	return append([]string(nil), s.fields...)
}

// Active reports whether an interaction region is committed.
func (s *Selection) Active() bool { return s.active }

// SetInterval commits an interval over one participating field, moving
// the selection to Active. An update replaces the field's previous
// interval; it does not accumulate.
func (s *Selection) SetInterval(field string, lo, hi float64) error {
	if !s.participates(field) {
		return fmt.Errorf("column %q does not participate in selection %q", field, s.name)
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	s.intervals[field] = Interval{Lo: lo, Hi: hi}
	delete(s.points, field)
	s.active = true
	return nil
}

// SetPoints commits a discrete value set over one participating field,
// replacing any previous set for that field.
func (s *Selection) SetPoints(field string, values ...string) error {
	if !s.participates(field) {
		return fmt.Errorf("column %q does not participate in selection %q", field, s.name)
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	s.points[field] = set
	delete(s.intervals, field)
	s.active = true
	return nil
}

// Clear resets to Unset. Every dependent chart returns to its full,
// unfiltered dataset.
func (s *Selection) Clear() {
	s.active = false
	s.intervals = make(map[string]Interval)
	s.points = make(map[string]map[string]bool)
}

func (s *Selection) participates(field string) bool {
	for _, f := range s.fields {
		if f == field {
			return true
		}
	}
	return false
}

// Passes evaluates the predicate against one row. Unset passes
// everything. Under Active, constrained fields are combined with AND;
// a null value never satisfies a bounded interval or a value set.
func (s *Selection) Passes(row frame.Row) bool {
	if !s.active {
		return true
	}
	for field, iv := range s.intervals {
		v, ok := row.Value(field)
		if !ok {
			return false
		}
		n, ok := v.Float()
		if !ok || n < iv.Lo || n > iv.Hi {
			return false
		}
	}
	for field, set := range s.points {
		v, ok := row.Value(field)
		if !ok {
			return false
		}
		t, ok := v.Text()
		if !ok || !set[t] {
			return false
		}
	}
	return true
}

// MatchCount returns how many rows of the dataset pass right now.
func (s *Selection) MatchCount(ds *frame.Dataset) int {
	n := 0
	for i := 0; i < ds.Len(); i++ {
		if s.Passes(ds.Row(i)) {
			n++
		}
	}
	return n
}

// Apply returns the subset of rows passing the predicate in its current
// state. Unset returns every row.
func (s *Selection) Apply(ds *frame.Dataset) *frame.Dataset {
	return ds.Filter(s.Passes)
}
