package chart

// Typed subset of the Vega-Lite v5 grammar that the composition layer
// emits. Struct field order fixes the serialized key order, which keeps
// golden files stable.

type vegaDoc struct {
	Schema     string          `json:"$schema,omitempty"`
	Title      *vegaTitle      `json:"title,omitempty"`
	Background string          `json:"background,omitempty"`
	Padding    int             `json:"padding,omitempty"`
	Data       *vegaData       `json:"data,omitempty"`
	Params     []vegaParam     `json:"params,omitempty"`
	Transform  []vegaTransform `json:"transform,omitempty"`
	Mark       *vegaMark       `json:"mark,omitempty"`
	Encoding   *vegaEncoding   `json:"encoding,omitempty"`
	Layer      []vegaDoc       `json:"layer,omitempty"`
	HConcat    []vegaDoc       `json:"hconcat,omitempty"`
	Width      int             `json:"width,omitempty"`
	Height     int             `json:"height,omitempty"`
}

type vegaTitle struct {
	Text             string `json:"text"`
	Subtitle         string `json:"subtitle,omitempty"`
	Anchor           string `json:"anchor"`
	Align            string `json:"align"`
	Font             string `json:"font,omitempty"`
	FontSize         int    `json:"fontSize"`
	FontWeight       int    `json:"fontWeight"`
	SubtitleFontSize int    `json:"subtitleFontSize,omitempty"`
	SubtitleColor    string `json:"subtitleColor,omitempty"`
	SubtitlePadding  int    `json:"subtitlePadding,omitempty"`
	Offset           int    `json:"offset"`
	Orient           string `json:"orient"`
}

type vegaData struct {
	Values []map[string]any `json:"values"`
}

type vegaParam struct {
	Name   string      `json:"name"`
	Select *vegaSelect `json:"select,omitempty"`
}

type vegaSelect struct {
	Type      string   `json:"type"`
	Encodings []string `json:"encodings,omitempty"`
}

type vegaTransform struct {
	Filter *vegaFilter `json:"filter,omitempty"`
}

type vegaFilter struct {
	Param string `json:"param"`
}

type vegaMark struct {
	Type                 string           `json:"type"`
	Filled               bool             `json:"filled,omitempty"`
	Size                 float64          `json:"size,omitempty"`
	Opacity              float64          `json:"opacity,omitempty"`
	StrokeWidth          float64          `json:"strokeWidth,omitempty"`
	Point                *vegaPointMarker `json:"point,omitempty"`
	CornerRadiusTopLeft  int              `json:"cornerRadiusTopLeft,omitempty"`
	CornerRadiusTopRight int              `json:"cornerRadiusTopRight,omitempty"`
	Color                string           `json:"color,omitempty"`
}

type vegaPointMarker struct {
	Size   float64 `json:"size"`
	Filled bool    `json:"filled"`
}

type vegaEncoding struct {
	X       *vegaField    `json:"x,omitempty"`
	Y       *vegaField    `json:"y,omitempty"`
	Color   *vegaColor    `json:"color,omitempty"`
	Opacity *vegaOpacity  `json:"opacity,omitempty"`
	Tooltip []vegaTooltip `json:"tooltip,omitempty"`
}

type vegaField struct {
	Field     string     `json:"field,omitempty"`
	Type      string     `json:"type,omitempty"`
	Aggregate string     `json:"aggregate,omitempty"`
	Bin       *vegaBin   `json:"bin,omitempty"`
	Scale     *vegaScale `json:"scale,omitempty"`
	Axis      *vegaAxis  `json:"axis,omitempty"`
	Title     string     `json:"title,omitempty"`
}

type vegaBin struct {
	Maxbins int `json:"maxbins"`
}

type vegaScale struct {
	Type   string   `json:"type,omitempty"`
	Domain []string `json:"domain,omitempty"`
	Range  []string `json:"range,omitempty"`
}

type vegaAxis struct {
	Format        string  `json:"format,omitempty"`
	LabelFontSize int     `json:"labelFontSize,omitempty"`
	TitleFontSize int     `json:"titleFontSize,omitempty"`
	GridColor     string  `json:"gridColor,omitempty"`
	LabelAngle    float64 `json:"labelAngle,omitempty"`
}

type vegaColor struct {
	Condition *vegaColorCondition `json:"condition,omitempty"`
	Field     string              `json:"field,omitempty"`
	Type      string              `json:"type,omitempty"`
	Scale     *vegaScale          `json:"scale,omitempty"`
	Legend    *vegaLegend         `json:"legend,omitempty"`
	Value     string              `json:"value,omitempty"`
}

type vegaColorCondition struct {
	Param  string      `json:"param"`
	Field  string      `json:"field,omitempty"`
	Type   string      `json:"type,omitempty"`
	Scale  *vegaScale  `json:"scale,omitempty"`
	Legend *vegaLegend `json:"legend,omitempty"`
	Value  string      `json:"value,omitempty"`
}

type vegaOpacity struct {
	Condition *vegaOpacityCondition `json:"condition,omitempty"`
	Value     float64               `json:"value,omitempty"`
}

type vegaOpacityCondition struct {
	Param string  `json:"param"`
	Value float64 `json:"value"`
}

type vegaLegend struct {
	Title         string `json:"title,omitempty"`
	TitleFontSize int    `json:"titleFontSize,omitempty"`
	LabelFontSize int    `json:"labelFontSize,omitempty"`
}

type vegaTooltip struct {
	Field  string `json:"field"`
	Type   string `json:"type,omitempty"`
	Format string `json:"format,omitempty"`
	Title  string `json:"title,omitempty"`
}

func themeTitle(title, subtitle string) *vegaTitle {
	t := &vegaTitle{
		Text:       title,
		Anchor:     "middle",
		Align:      "center",
		Font:       fontFamily,
		FontSize:   titleFontSize,
		FontWeight: titleFontWeight,
		Offset:     15,
		Orient:     "top",
	}
	if subtitle != "" {
		t.Subtitle = subtitle
		t.SubtitleFontSize = subtitleFontSize
		t.SubtitleColor = subtitleColor
		t.SubtitlePadding = 8
	}
	return t
}

func themeAxis(format string) *vegaAxis {
	return &vegaAxis{
		Format:        format,
		LabelFontSize: labelFontSize,
		TitleFontSize: labelFontSize + 1,
		GridColor:     gridColor,
	}
}

func themeLegend(title string) *vegaLegend {
	return &vegaLegend{
		Title:         title,
		TitleFontSize: labelFontSize + 1,
		LabelFontSize: labelFontSize,
	}
}
