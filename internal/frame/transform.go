package frame

import (
	"fmt"
	"sort"
)

// Select returns a new dataset with only the named columns, in the
// order given.
func (d *Dataset) Select(columns ...string) (*Dataset, error) {
	idx := make([]int, 0, len(columns))
	cols := make([]Column, 0, len(columns))
	for _, name := range columns {
		i, err := d.columnIndex(name)
		if err != nil {
			return nil, err
		}
		idx = append(idx, i)
		cols = append(cols, d.cols[i])
	}

	out := New(cols...)
	for _, row := range d.rows {
		vals := make([]Value, len(idx))
		for j, i := range idx {
			vals[j] = row[i]
		}
		out.rows = append(out.rows, vals)
	}
	return out, nil
}

// Filter returns the rows for which keep returns true.
func (d *Dataset) Filter(keep func(Row) bool) *Dataset {
	out := d.clone()
	for i := range d.rows {
		if keep(d.Row(i)) {
			appendFrom(out, d, i)
		}
	}
	return out
}

// DropNull removes rows holding a null in any of the named columns.
func (d *Dataset) DropNull(columns ...string) (*Dataset, error) {
	idx := make([]int, 0, len(columns))
	for _, name := range columns {
		i, err := d.columnIndex(name)
		if err != nil {
			return nil, err
		}
		idx = append(idx, i)
	}

	out := d.clone()
	for i, row := range d.rows {
		hasNull := false
		for _, j := range idx {
			if row[j].IsNull() {
				hasNull = true
				break
			}
		}
		if !hasNull {
			appendFrom(out, d, i)
		}
	}
	return out, nil
}

// Rename returns a dataset with one column renamed.
func (d *Dataset) Rename(column, newName string) (*Dataset, error) {
	if _, err := d.columnIndex(column); err != nil {
		return nil, err
	}
	if d.HasColumn(newName) {
		return nil, fmt.Errorf("dataset already has column %q", newName)
	}

	cols := d.Columns()
	for i := range cols {
		if cols[i].Name == column {
			cols[i].Name = newName
		}
	}
	out := New(cols...)
	for i := range d.rows {
		appendFrom(out, d, i)
	}
	return out, nil
}

// JoinInner joins on a single key column, keeping left rows with at
// least one match. All non-key columns of other are appended; name
// collisions are an error.
func (d *Dataset) JoinInner(other *Dataset, on string) (*Dataset, error) {
	return d.join(other, on, false)
}

// JoinLeft joins on a single key column, keeping every left row and
// filling unmatched right columns with nulls.
func (d *Dataset) JoinLeft(other *Dataset, on string) (*Dataset, error) {
	return d.join(other, on, true)
}

func (d *Dataset) join(other *Dataset, on string, left bool) (*Dataset, error) {
	if _, err := d.columnIndex(on); err != nil {
		return nil, err
	}
	keyIdx, err := other.columnIndex(on)
	if err != nil {
		return nil, err
	}

	var rightCols []Column
	var rightIdx []int
	for i, c := range other.cols {
		if i == keyIdx {
			continue
		}
		if d.HasColumn(c.Name) {
			return nil, fmt.Errorf("join would duplicate column %q", c.Name)
		}
		rightCols = append(rightCols, c)
		rightIdx = append(rightIdx, i)
	}

	// Index the right side by key text. First match wins, matching the
	// single-key lookups this layer is used for.
	lookup := make(map[string]int, other.Len())
	for i := range other.rows {
		key, ok := other.rows[i][keyIdx].Text()
		if !ok {
			continue
		}
		if _, seen := lookup[key]; !seen {
			lookup[key] = i
		}
	}

	out := d.clone(rightCols...)
	for i := range d.rows {
		var match int
		var found bool
		if key, ok := d.rows[i][d.index[on]].Text(); ok {
			match, found = lookup[key]
		}
		if !found {
			if !left {
				continue
			}
			nulls := make([]Value, len(rightIdx))
			for j := range nulls {
				nulls[j] = Null()
			}
			appendFrom(out, d, i, nulls...)
			continue
		}
		extra := make([]Value, len(rightIdx))
		for j, ri := range rightIdx {
			extra[j] = other.rows[match][ri]
		}
		appendFrom(out, d, i, extra...)
	}
	return out, nil
}

// PivotWide pivots long-format data to wide format: one row per index
// value, one column per distinct `on` value, in first-seen order.
// Missing combinations become nulls.
func (d *Dataset) PivotWide(index, on, values string) (*Dataset, error) {
	for _, name := range []string{index, on, values} {
		if _, err := d.columnIndex(name); err != nil {
			return nil, err
		}
	}

	var pivotNames []string
	pivotSeen := make(map[string]bool)
	var indexOrder []string
	indexSeen := make(map[string]bool)
	cells := make(map[string]map[string]Value)

	for i := range d.rows {
		row := d.Row(i)
		idxVal, ok := row.valueText(index)
		if !ok {
			continue
		}
		onVal, ok := row.valueText(on)
		if !ok {
			continue
		}
		if !pivotSeen[onVal] {
			pivotSeen[onVal] = true
			pivotNames = append(pivotNames, onVal)
		}
		if !indexSeen[idxVal] {
			indexSeen[idxVal] = true
			indexOrder = append(indexOrder, idxVal)
			cells[idxVal] = make(map[string]Value)
		}
		v, _ := row.Value(values)
		cells[idxVal][onVal] = v
	}

	idxCol, _ := d.Column(index)
	valCol, _ := d.Column(values)
	cols := []Column{idxCol}
	for _, name := range pivotNames {
		cols = append(cols, Column{Name: name, Kind: valCol.Kind})
	}

	out := New(cols...)
	for _, idxVal := range indexOrder {
		vals := make([]Value, 0, len(cols))
		vals = append(vals, Str(idxVal))
		for _, name := range pivotNames {
			if v, ok := cells[idxVal][name]; ok {
				vals = append(vals, v)
			} else {
				vals = append(vals, Null())
			}
		}
		out.rows = append(out.rows, vals)
	}
	return out, nil
}

// GrowthRate appends a growth_rate column holding the period-over-period
// percent change of valueCol within each group, in row order. The first
// `periods` rows of each group, null bases, and zero bases yield null.
func (d *Dataset) GrowthRate(valueCol string, periods int, groupCol string) (*Dataset, error) {
	vi, err := d.columnIndex(valueCol)
	if err != nil {
		return nil, err
	}
	if groupCol != "" {
		if _, err := d.columnIndex(groupCol); err != nil {
			return nil, err
		}
	}
	if periods < 1 {
		return nil, fmt.Errorf("periods must be at least 1, got %d", periods)
	}

	out := d.clone(Column{Name: "growth_rate", Kind: Number})
	history := make(map[string][]Value)
	for i := range d.rows {
		group := ""
		if groupCol != "" {
			group, _ = d.Row(i).valueText(groupCol)
		}
		prior := history[group]
		cur := d.rows[i][vi]

		rate := Null()
		if len(prior) >= periods {
			base := prior[len(prior)-periods]
			bv, bok := base.Float()
			cv, cok := cur.Float()
			if bok && cok && bv != 0 {
				rate = Num((cv - bv) / bv * 100)
			}
		}
		history[group] = append(prior, cur)
		appendFrom(out, d, i, rate)
	}
	return out, nil
}

// Rank appends an ordinal rank column over valueCol. Ties break by row
// order; null values receive a null rank.
func (d *Dataset) Rank(valueCol string, descending bool) (*Dataset, error) {
	vi, err := d.columnIndex(valueCol)
	if err != nil {
		return nil, err
	}

	type entry struct {
		row int
		val float64
	}
	var entries []entry
	for i := range d.rows {
		if v, ok := d.rows[i][vi].Float(); ok {
			entries = append(entries, entry{row: i, val: v})
		}
	}
	sort.SliceStable(entries, func(a, b int) bool {
		if descending {
			return entries[a].val > entries[b].val
		}
		return entries[a].val < entries[b].val
	})

	ranks := make(map[int]float64, len(entries))
	for pos, e := range entries {
		ranks[e.row] = float64(pos + 1)
	}

	out := d.clone(Column{Name: "rank", Kind: Number})
	for i := range d.rows {
		if r, ok := ranks[i]; ok {
			appendFrom(out, d, i, Num(r))
		} else {
			appendFrom(out, d, i, Null())
		}
	}
	return out, nil
}

// Agg names a group aggregation.
type Agg string

const (
	AggMean   Agg = "mean"
	AggSum    Agg = "sum"
	AggMedian Agg = "median"
	AggMin    Agg = "min"
	AggMax    Agg = "max"
	AggCount  Agg = "count"
)

// AggregateBy groups rows by groupCol and aggregates valueCol. Null
// values are skipped. The result has two columns: the group key and
// "<valueCol>_<agg>". Group order is first-seen.
func (d *Dataset) AggregateBy(groupCol, valueCol string, agg Agg) (*Dataset, error) {
	if _, err := d.columnIndex(groupCol); err != nil {
		return nil, err
	}
	vi, err := d.columnIndex(valueCol)
	if err != nil {
		return nil, err
	}

	var order []string
	groups := make(map[string][]float64)
	for i := range d.rows {
		key, ok := d.Row(i).valueText(groupCol)
		if !ok {
			continue
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
			groups[key] = nil
		}
		if v, ok := d.rows[i][vi].Float(); ok {
			groups[key] = append(groups[key], v)
		}
	}

	groupDecl, _ := d.Column(groupCol)
	out := New(groupDecl, Column{Name: fmt.Sprintf("%s_%s", valueCol, agg), Kind: Number})
	for _, key := range order {
		v, ok := aggregate(groups[key], agg)
		val := Null()
		if ok {
			val = Num(v)
		}
		out.rows = append(out.rows, []Value{Str(key), val})
	}
	return out, nil
}

func aggregate(vals []float64, agg Agg) (float64, bool) {
	if agg == AggCount {
		return float64(len(vals)), true
	}
	if len(vals) == 0 {
		return 0, false
	}
	switch agg {
	case AggSum, AggMean:
		sum := 0.0
		for _, v := range vals {
			sum += v
		}
		if agg == AggSum {
			return sum, true
		}
		return sum / float64(len(vals)), true
	case AggMedian:
		sorted := append([]float64(nil), vals...)
		sort.Float64s(sorted)
		mid := len(sorted) / 2
		if len(sorted)%2 == 1 {
			return sorted[mid], true
		}
		return (sorted[mid-1] + sorted[mid]) / 2, true
	case AggMin:
		m := vals[0]
		for _, v := range vals[1:] {
			if v < m {
				m = v
			}
		}
		return m, true
	case AggMax:
		m := vals[0]
		for _, v := range vals[1:] {
			if v > m {
				m = v
			}
		}
		return m, true
	default:
		return 0, false
	}
}

// LatestYear keeps, for each group, only the rows carrying that group's
// most recent year.
func (d *Dataset) LatestYear(groupCol, yearCol string) (*Dataset, error) {
	if _, err := d.columnIndex(groupCol); err != nil {
		return nil, err
	}
	yi, err := d.columnIndex(yearCol)
	if err != nil {
		return nil, err
	}

	latest := make(map[string]float64)
	for i := range d.rows {
		key, ok := d.Row(i).valueText(groupCol)
		if !ok {
			continue
		}
		if y, ok := d.rows[i][yi].Float(); ok {
			if cur, seen := latest[key]; !seen || y > cur {
				latest[key] = y
			}
		}
	}

	out := d.clone()
	for i := range d.rows {
		key, ok := d.Row(i).valueText(groupCol)
		if !ok {
			continue
		}
		y, ok := d.rows[i][yi].Float()
		if ok && y == latest[key] {
			appendFrom(out, d, i)
		}
	}
	return out, nil
}

// valueText is Text() tolerant of missing columns, for internal keys.
func (r Row) valueText(column string) (string, bool) {
	v, ok := r.Value(column)
	if !ok {
		return "", false
	}
	return v.Text()
}
