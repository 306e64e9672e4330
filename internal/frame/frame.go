package frame

import (
	"fmt"
)

// Kind is the declared semantic type of a column.
type Kind int

const (
	String Kind = iota
	Number
	Year
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Number:
		return "number"
	case Year:
		return "year"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Column declares a named column and its kind.
type Column struct {
	Name string
	Kind Kind
}

// Value is a single cell. Null is distinct from zero and from the empty
// string; a null cell carries neither a number nor a string.
type Value struct {
	null  bool
	num   float64
	str   string
	isNum bool
}

// Num returns a numeric value.
func Num(v float64) Value { return Value{num: v, isNum: true} }

// Str returns a string value.
func Str(s string) Value { return Value{str: s} }

// Null returns the explicit missing-value marker.
func Null() Value { return Value{null: true} }

// NumPtr converts an optional number into a value, mapping nil to Null.
func NumPtr(p *float64) Value {
	if p == nil {
		return Null()
	}
	return Num(*p)
}

func (v Value) IsNull() bool { return v.null }

// Float returns the numeric content. ok is false for null or string cells.
func (v Value) Float() (float64, bool) {
	if v.null || !v.isNum {
		return 0, false
	}
	return v.num, true
}

// Text returns the string content. Numeric cells render via %v, null
// cells return ok=false.
func (v Value) Text() (string, bool) {
	if v.null {
		return "", false
	}
	if v.isNum {
		return fmt.Sprintf("%v", v.num), true
	}
	return v.str, true
}

// Any returns the cell as a plain Go value: nil, float64, or string.
func (v Value) Any() any {
	if v.null {
		return nil
	}
	if v.isNum {
		return v.num
	}
	return v.str
}

// Dataset is an ordered sequence of rows over a uniform column set.
// Transforms return new datasets; a dataset is never mutated after it
// is handed to the chart layer.
type Dataset struct {
	cols  []Column
	index map[string]int
	rows  [][]Value
}

// New creates an empty dataset with the given column set.
func New(cols ...Column) *Dataset {
	d := &Dataset{
		cols:  append([]Column(nil), cols...),
		index: make(map[string]int, len(cols)),
	}
	for i, c := range cols {
		d.index[c.Name] = i
	}
	return d
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.rows) }

// Columns returns a copy of the column declarations in order.
func (d *Dataset) Columns() []Column {
	return append([]Column(nil), d.cols...)
}

// Column looks up a column declaration by name.
func (d *Dataset) Column(name string) (Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return Column{}, false
	}
	return d.cols[i], true
}

// HasColumn reports whether the dataset declares the named column.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// AppendRow adds one row. The value count must match the column set.
func (d *Dataset) AppendRow(vals ...Value) error {
	if len(vals) != len(d.cols) {
		return fmt.Errorf("row has %d values, dataset has %d columns", len(vals), len(d.cols))
	}
	d.rows = append(d.rows, append([]Value(nil), vals...))
	return nil
}

// MustAppendRow is AppendRow for construction sites where the arity is
// statically known, such as tests.
func (d *Dataset) MustAppendRow(vals ...Value) {
	if err := d.AppendRow(vals...); err != nil {
		panic(err)
	}
}

// Value returns the cell at (row, column). ok is false when the column
// does not exist or the row index is out of range.
func (d *Dataset) Value(row int, column string) (Value, bool) {
	i, ok := d.index[column]
	if !ok || row < 0 || row >= len(d.rows) {
		return Value{}, false
	}
	return d.rows[row][i], true
}

// Row returns a read-only view of one row.
func (d *Dataset) Row(i int) Row { return Row{d: d, i: i} }

// Row is a read-only view of a single dataset row.
type Row struct {
	d *Dataset
	i int
}

// Value returns the named cell of this row.
func (r Row) Value(column string) (Value, bool) {
	if r.d == nil {
		return Value{}, false
	}
	return r.d.Value(r.i, column)
}

// Index returns the row's position within its dataset.
func (r Row) Index() int { return r.i }

// clone copies the column layout into a fresh empty dataset.
func (d *Dataset) clone(extra ...Column) *Dataset {
	return New(append(d.Columns(), extra...)...)
}

// appendFrom copies row i of src onto dst, followed by extra values.
func appendFrom(dst *Dataset, src *Dataset, i int, extra ...Value) {
	vals := make([]Value, 0, len(src.cols)+len(extra))
	vals = append(vals, src.rows[i]...)
	vals = append(vals, extra...)
	dst.rows = append(dst.rows, vals)
}

// columnIndex resolves a column name or fails with an error naming it.
func (d *Dataset) columnIndex(name string) (int, error) {
	i, ok := d.index[name]
	if !ok {
		return 0, fmt.Errorf("dataset has no column %q", name)
	}
	return i, nil
}
