package chart

import (
	"encoding/json"
	"fmt"
	"strings"

	"wdikit/internal/frame"
)

// Mark is the visual primitive used to render a chart.
type Mark int

const (
	MarkPoint Mark = iota
	MarkBar
	MarkLine
	MarkHistogram
)

func (m Mark) String() string {
	switch m {
	case MarkPoint:
		return "point"
	case MarkBar:
		return "bar"
	case MarkLine:
		return "line"
	case MarkHistogram:
		return "histogram"
	default:
		return fmt.Sprintf("mark(%d)", int(m))
	}
}

// Role states how a chart participates in linked selection.
type Role int

const (
	// RoleNone builds a standalone chart.
	RoleNone Role = iota
	// RoleSource makes this chart the interaction surface; Build creates
	// the chart's Selection, bound to its x/y columns.
	RoleSource
	// RoleFilter restricts this chart by an existing shared Selection.
	RoleFilter
)

// Channel selects a column for a visual channel plus its display
// options.
type Channel struct {
	Column string
	Kind   Kind // format override; KindAuto infers from the column name
	Log    bool
	Title  string
}

// Params is the full configuration surface of one Build call.
// Everything not listed here is a fixed theme constant.
type Params struct {
	Mark     Mark
	X        Channel
	Y        Channel
	CountY   bool // y is a row-count aggregate instead of a column
	Color    string
	Tooltip  []string
	Title    string
	Subtitle string
	Width    int
	Height   int
	Bins     int // histogram only
	Role     Role
	Filter   *Selection // required for RoleFilter, forbidden otherwise

	// SelectionName overrides the default parameter name for RoleSource.
	SelectionName string
}

// Spec is an immutable chart specification. Further composition wraps
// it; nothing mutates it after Build returns.
type Spec struct {
	ds     *frame.Dataset
	params Params
	source *Selection
	filter *Selection
	xFmt   FormatRule
	yFmt   FormatRule
	doc    vegaDoc
}

// Selection returns the predicate created for a RoleSource chart, nil
// otherwise. This is the shared handle dependents are wired to.
func (s *Spec) Selection() *Selection { return s.source }

// FilteredBy returns the predicate attached with RoleFilter, nil
// otherwise.
func (s *Spec) FilteredBy() *Selection { return s.filter }

// Dataset returns the dataset the spec was built on.
func (s *Spec) Dataset() *frame.Dataset { return s.ds }

// Mark returns the mark kind.
func (s *Spec) Mark() Mark { return s.params.Mark }

// XFormat and YFormat expose the resolved format rules.
func (s *Spec) XFormat() FormatRule { return s.xFmt }
func (s *Spec) YFormat() FormatRule { return s.yFmt }

// MarshalJSON emits the Vega-Lite view specification.
func (s *Spec) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.doc)
}

// Build assembles a chart specification from a dataset and display
// parameters. An empty dataset is valid and produces an empty chart;
// referencing a column the dataset does not declare is a configuration
// error naming the column.
func Build(ds *frame.Dataset, p Params) (*Spec, error) {
	if p.Mark < MarkPoint || p.Mark > MarkHistogram {
		return nil, fmt.Errorf("unsupported mark kind %v", p.Mark)
	}
	if p.Mark == MarkHistogram {
		p.CountY = true
		if p.Bins <= 0 {
			p.Bins = defaultHistogramBins
		}
	}
	if p.Width <= 0 {
		if p.Mark == MarkPoint {
			p.Width = defaultPointWidth
		} else {
			p.Width = defaultBarWidth
		}
	}
	if p.Height <= 0 {
		p.Height = defaultHeight
	}

	if p.X.Column == "" {
		return nil, fmt.Errorf("x channel requires a column")
	}
	required := []string{p.X.Column}
	if !p.CountY {
		if p.Y.Column == "" {
			return nil, fmt.Errorf("y channel requires a column or a row-count aggregate")
		}
		required = append(required, p.Y.Column)
	}
	if p.Color != "" {
		required = append(required, p.Color)
	}
	required = append(required, p.Tooltip...)
	for _, column := range required {
		if !ds.HasColumn(column) {
			return nil, fmt.Errorf("dataset has no column %q", column)
		}
	}

	s := &Spec{ds: ds, params: p}
	s.xFmt = ResolveFormat(p.X.Column, p.X.Kind)
	if p.CountY {
		s.yFmt = ResolveFormat("count", KindInteger)
	} else {
		s.yFmt = ResolveFormat(p.Y.Column, p.Y.Kind)
	}

	switch p.Role {
	case RoleNone:
		if p.Filter != nil {
			return nil, fmt.Errorf("filter selection supplied without the filter role")
		}
	case RoleSource:
		if p.Filter != nil {
			// One chart cannot answer to two predicates over its own
			// channel set.
			return nil, fmt.Errorf("chart cannot be both selection source and filter consumer")
		}
		name := p.SelectionName
		if name == "" {
			name = "brush"
		}
		fields := []string{p.X.Column}
		if !p.CountY {
			fields = append(fields, p.Y.Column)
		}
		s.source = newSelection(name, fields...)
	case RoleFilter:
		if p.Filter == nil {
			return nil, fmt.Errorf("filter role requires a selection")
		}
		for _, field := range p.Filter.Fields() {
			if !ds.HasColumn(field) {
				return nil, fmt.Errorf("dataset has no column %q required by selection %q", field, p.Filter.Name())
			}
		}
		s.filter = p.Filter
	default:
		return nil, fmt.Errorf("unsupported selection role %d", p.Role)
	}

	s.doc = s.assemble()
	return s, nil
}

// assemble builds the Vega-Lite document once, at Build time.
func (s *Spec) assemble() vegaDoc {
	p := s.params
	doc := vegaDoc{
		Data:   &vegaData{Values: dataValues(s.ds)},
		Width:  p.Width,
		Height: p.Height,
	}
	if p.Title != "" {
		doc.Title = themeTitle(p.Title, p.Subtitle)
	}

	enc := vegaEncoding{
		X:       s.xChannel(),
		Y:       s.yChannel(),
		Color:   s.colorChannel(),
		Tooltip: s.tooltips(),
	}

	switch p.Role {
	case RoleSource:
		doc.Params = []vegaParam{{
			Name:   s.source.Name(),
			Select: &vegaSelect{Type: selectType(p.Mark), Encodings: selectEncodings(p)},
		}}
		enc.Opacity = dimmedOpacity(s.source.Name())
		enc.Color = conditionalColor(enc.Color, s.source.Name())
	case RoleFilter:
		if p.Mark == MarkBar || p.Mark == MarkHistogram {
			// Aggregate marks cannot de-emphasize per row; a muted
			// full-data layer keeps the dataset's overall shape visible
			// under the selection-filtered foreground.
			return s.layeredFiltered(doc, enc)
		}
		enc.Opacity = dimmedOpacity(s.filter.Name())
		enc.Color = conditionalColor(enc.Color, s.filter.Name())
	}

	doc.Mark = markDef(p.Mark)
	doc.Encoding = &enc
	return doc
}

func (s *Spec) layeredFiltered(doc vegaDoc, enc vegaEncoding) vegaDoc {
	muted := *markDef(s.params.Mark)
	muted.Color = deselectedColor
	background := vegaDoc{
		Mark:     &muted,
		Encoding: &vegaEncoding{X: enc.X, Y: enc.Y},
	}
	foreground := vegaDoc{
		Transform: []vegaTransform{{Filter: &vegaFilter{Param: s.filter.Name()}}},
		Mark:      markDef(s.params.Mark),
		Encoding:  &enc,
	}
	doc.Layer = []vegaDoc{background, foreground}
	return doc
}

func (s *Spec) xChannel() *vegaField {
	p := s.params
	title := p.X.Title
	if title == "" {
		title = Humanize(p.X.Column)
	}
	f := &vegaField{
		Field: p.X.Column,
		Title: title,
	}
	switch p.Mark {
	case MarkBar:
		f.Type = "nominal"
		axis := &vegaAxis{LabelFontSize: labelFontSize, TitleFontSize: labelFontSize + 1}
		if len(colorDomain(s.ds, p.X.Column)) > 5 {
			axis.LabelAngle = -45
		}
		f.Axis = axis
	case MarkHistogram:
		f.Type = "quantitative"
		f.Bin = &vegaBin{Maxbins: p.Bins}
		f.Axis = themeAxis(s.xFmt.D3())
	default:
		f.Type = "quantitative"
		f.Axis = themeAxis(s.xFmt.D3())
		if p.X.Log {
			f.Scale = &vegaScale{Type: "log"}
		}
	}
	return f
}

func (s *Spec) yChannel() *vegaField {
	p := s.params
	if p.CountY {
		return &vegaField{
			Type:      "quantitative",
			Aggregate: "count",
			Axis:      themeAxis(s.yFmt.D3()),
			Title:     "Count",
		}
	}
	title := p.Y.Title
	if title == "" {
		title = Humanize(p.Y.Column)
	}
	f := &vegaField{
		Field: p.Y.Column,
		Type:  "quantitative",
		Axis:  themeAxis(s.yFmt.D3()),
		Title: title,
	}
	if p.Y.Log {
		f.Scale = &vegaScale{Type: "log"}
	}
	return f
}

func (s *Spec) colorChannel() *vegaColor {
	p := s.params
	if p.Color == "" {
		return &vegaColor{Value: palette[0]}
	}
	return &vegaColor{
		Field:  p.Color,
		Type:   "nominal",
		Scale:  &vegaScale{Domain: colorDomain(s.ds, p.Color), Range: palette},
		Legend: themeLegend(Humanize(p.Color)),
	}
}

func (s *Spec) tooltips() []vegaTooltip {
	var out []vegaTooltip
	for _, column := range s.params.Tooltip {
		decl, _ := s.ds.Column(column)
		t := vegaTooltip{Field: column, Title: Humanize(column)}
		if decl.Kind == frame.Number || decl.Kind == frame.Year {
			t.Type = "quantitative"
			t.Format = ResolveFormat(column, KindAuto).D3()
		} else {
			t.Type = "nominal"
		}
		out = append(out, t)
	}
	return out
}

func markDef(m Mark) *vegaMark {
	switch m {
	case MarkPoint:
		return &vegaMark{Type: "point", Filled: true, Size: pointSize, Opacity: pointOpacity}
	case MarkLine:
		return &vegaMark{
			Type:        "line",
			StrokeWidth: lineStrokeWidth,
			Point:       &vegaPointMarker{Size: linePointSize, Filled: true},
		}
	default:
		return &vegaMark{
			Type:                 "bar",
			Opacity:              barOpacity,
			CornerRadiusTopLeft:  barCornerRadius,
			CornerRadiusTopRight: barCornerRadius,
		}
	}
}

// selectType picks the interaction style per mark: interval regions on
// continuous marks, discrete point picks on bars.
func selectType(m Mark) string {
	if m == MarkBar {
		return "point"
	}
	return "interval"
}

func selectEncodings(p Params) []string {
	if p.CountY {
		return []string{"x"}
	}
	return []string{"x", "y"}
}

func dimmedOpacity(param string) *vegaOpacity {
	return &vegaOpacity{
		Condition: &vegaOpacityCondition{Param: param, Value: pointOpacitySelected},
		Value:     pointOpacityDimmed,
	}
}

// conditionalColor wraps a resolved color channel so rows outside the
// live selection fall back to the muted deselected color.
func conditionalColor(c *vegaColor, param string) *vegaColor {
	if c.Field == "" {
		return c
	}
	return &vegaColor{
		Condition: &vegaColorCondition{
			Param:  param,
			Field:  c.Field,
			Type:   c.Type,
			Scale:  c.Scale,
			Legend: c.Legend,
		},
		Value: deselectedColor,
	}
}

// dataValues inlines the dataset rows so the artifact is viewable with
// no further data dependency. Null cells serialize as JSON null.
func dataValues(ds *frame.Dataset) []map[string]any {
	cols := ds.Columns()
	values := make([]map[string]any, 0, ds.Len())
	for i := 0; i < ds.Len(); i++ {
		row := make(map[string]any, len(cols))
		for _, c := range cols {
			v, _ := ds.Value(i, c.Name)
			row[c.Name] = v.Any()
		}
		values = append(values, row)
	}
	return values
}

// Humanize converts a column name to an axis/legend title.
func Humanize(column string) string {
	switch column {
	case "income_group":
		return "Income"
	case "country_name":
		return "Country"
	}
	// Indicator codes like NY.GDP.PCAP.CD pass through untouched.
	if strings.Contains(column, ".") {
		return column
	}
	words := strings.Join(strings.Split(column, "_"), " ")
	if words == "" {
		return ""
	}
	return strings.ToUpper(words[:1]) + strings.ToLower(words[1:])
}
