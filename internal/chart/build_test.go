package chart

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"wdikit/internal/frame"
)

func golden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestBuild_Validation(t *testing.T) {
	ds := selectionDataset(t)

	t.Run("unsupported mark", func(t *testing.T) {
		_, err := Build(ds, Params{Mark: Mark(99), X: Channel{Column: "x_value"}, Y: Channel{Column: "y_value"}})
		if err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("missing x column", func(t *testing.T) {
		_, err := Build(ds, Params{Mark: MarkPoint, Y: Channel{Column: "y_value"}})
		if err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("missing y column", func(t *testing.T) {
		_, err := Build(ds, Params{Mark: MarkPoint, X: Channel{Column: "x_value"}})
		if err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("unknown column is named", func(t *testing.T) {
		_, err := Build(ds, Params{Mark: MarkPoint, X: Channel{Column: "nope"}, Y: Channel{Column: "y_value"}})
		if err == nil || !strings.Contains(err.Error(), `"nope"`) {
			t.Fatalf("expected error naming the column, got %v", err)
		}
	})

	t.Run("unknown tooltip column", func(t *testing.T) {
		_, err := Build(ds, Params{
			Mark:    MarkPoint,
			X:       Channel{Column: "x_value"},
			Y:       Channel{Column: "y_value"},
			Tooltip: []string{"missing"},
		})
		if err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("unknown color column", func(t *testing.T) {
		_, err := Build(ds, Params{
			Mark:  MarkPoint,
			X:     Channel{Column: "x_value"},
			Y:     Channel{Column: "y_value"},
			Color: "missing",
		})
		if err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestBuild_RoleValidation(t *testing.T) {
	ds := selectionDataset(t)
	source := sourceSelection(t, ds)

	t.Run("source cannot also consume a filter", func(t *testing.T) {
		_, err := Build(ds, Params{
			Mark:   MarkPoint,
			X:      Channel{Column: "x_value"},
			Y:      Channel{Column: "y_value"},
			Role:   RoleSource,
			Filter: source,
		})
		if err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("filter role requires a selection", func(t *testing.T) {
		_, err := Build(ds, Params{
			Mark: MarkPoint,
			X:    Channel{Column: "x_value"},
			Y:    Channel{Column: "y_value"},
			Role: RoleFilter,
		})
		if err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("filter supplied without role", func(t *testing.T) {
		_, err := Build(ds, Params{
			Mark:   MarkPoint,
			X:      Channel{Column: "x_value"},
			Y:      Channel{Column: "y_value"},
			Filter: source,
		})
		if err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("filter fields must exist in dataset", func(t *testing.T) {
		other := frame.New(frame.Column{Name: "amount", Kind: frame.Number})
		_, err := Build(other, Params{
			Mark:   MarkHistogram,
			X:      Channel{Column: "amount"},
			Role:   RoleFilter,
			Filter: source,
		})
		if err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestBuild_Defaults(t *testing.T) {
	ds := selectionDataset(t)

	point, err := Build(ds, Params{Mark: MarkPoint, X: Channel{Column: "x_value"}, Y: Channel{Column: "y_value"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if point.doc.Width != defaultPointWidth || point.doc.Height != defaultHeight {
		t.Fatalf("unexpected point dimensions %dx%d", point.doc.Width, point.doc.Height)
	}

	hist, err := Build(ds, Params{Mark: MarkHistogram, X: Channel{Column: "x_value"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hist.doc.Width != defaultBarWidth {
		t.Fatalf("unexpected histogram width %d", hist.doc.Width)
	}
	if hist.doc.Encoding.X.Bin == nil || hist.doc.Encoding.X.Bin.Maxbins != defaultHistogramBins {
		t.Fatalf("expected default bin cap, got %+v", hist.doc.Encoding.X.Bin)
	}
	if hist.doc.Encoding.Y.Aggregate != "count" {
		t.Fatalf("expected histogram to force a count aggregate")
	}
}

func TestBuild_SelectionNaming(t *testing.T) {
	ds := selectionDataset(t)

	spec, err := Build(ds, Params{
		Mark: MarkPoint,
		X:    Channel{Column: "x_value"},
		Y:    Channel{Column: "y_value"},
		Role: RoleSource,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Selection().Name() != "brush" {
		t.Fatalf("unexpected default name %q", spec.Selection().Name())
	}

	named, err := Build(ds, Params{
		Mark:          MarkPoint,
		X:             Channel{Column: "x_value"},
		Y:             Channel{Column: "y_value"},
		Role:          RoleSource,
		SelectionName: "pick",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if named.Selection().Name() != "pick" {
		t.Fatalf("unexpected name %q", named.Selection().Name())
	}
}

func TestBuild_SelectType(t *testing.T) {
	ds := frame.New(
		frame.Column{Name: "income_group", Kind: frame.String},
		frame.Column{Name: "x_value", Kind: frame.Number},
	)
	ds.MustAppendRow(frame.Str("High income"), frame.Num(1))

	bar, err := Build(ds, Params{
		Mark:   MarkBar,
		X:      Channel{Column: "income_group"},
		CountY: true,
		Role:   RoleSource,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := bar.doc.Params[0].Select.Type; got != "point" {
		t.Fatalf("bar select type = %q, want point", got)
	}
	if got := bar.doc.Params[0].Select.Encodings; len(got) != 1 || got[0] != "x" {
		t.Fatalf("bar select encodings = %v, want [x]", got)
	}

	hist, err := Build(ds, Params{
		Mark: MarkHistogram,
		X:    Channel{Column: "x_value"},
		Role: RoleSource,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := hist.doc.Params[0].Select.Type; got != "interval" {
		t.Fatalf("histogram select type = %q, want interval", got)
	}
}

func TestBuild_FilterRoleLayersAggregates(t *testing.T) {
	ds := selectionDataset(t)
	source := sourceSelection(t, ds)

	hist, err := Build(ds, Params{
		Mark:   MarkHistogram,
		X:      Channel{Column: "x_value"},
		Role:   RoleFilter,
		Filter: source,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hist.doc.Layer) != 2 {
		t.Fatalf("expected a two-layer histogram, got %d layers", len(hist.doc.Layer))
	}
	background, foreground := hist.doc.Layer[0], hist.doc.Layer[1]
	if background.Mark.Color != deselectedColor {
		t.Fatalf("expected muted background layer")
	}
	if len(background.Transform) != 0 {
		t.Fatalf("background layer must keep the full dataset")
	}
	if len(foreground.Transform) != 1 || foreground.Transform[0].Filter.Param != "brush" {
		t.Fatalf("foreground layer must filter on the selection, got %+v", foreground.Transform)
	}

	// Points de-emphasize in place instead of layering.
	point, err := Build(ds, Params{
		Mark:   MarkPoint,
		X:      Channel{Column: "x_value"},
		Y:      Channel{Column: "y_value"},
		Role:   RoleFilter,
		Filter: source,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(point.doc.Layer) != 0 {
		t.Fatalf("point filter chart must not layer")
	}
	if point.doc.Encoding.Opacity == nil || point.doc.Encoding.Opacity.Condition.Param != "brush" {
		t.Fatalf("expected conditional opacity on the selection")
	}
}

func TestBuild_EmptyDataset(t *testing.T) {
	ds := frame.New(
		frame.Column{Name: "x_value", Kind: frame.Number},
		frame.Column{Name: "y_value", Kind: frame.Number},
	)
	spec, err := Build(ds, Params{Mark: MarkPoint, X: Channel{Column: "x_value"}, Y: Channel{Column: "y_value"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	payload, err := json.Marshal(spec)
	if err != nil {
		t.Fatalf("marshaling: %v", err)
	}
	if !strings.Contains(string(payload), `"values":[]`) {
		t.Fatalf("expected empty data values, got %s", payload)
	}
}

func TestBuild_GoldenBarCount(t *testing.T) {
	ds := frame.New(
		frame.Column{Name: "category", Kind: frame.String},
		frame.Column{Name: "amount", Kind: frame.Number},
	)
	ds.MustAppendRow(frame.Str("a"), frame.Num(10))
	ds.MustAppendRow(frame.Str("b"), frame.Num(20))

	spec, err := Build(ds, Params{
		Mark:   MarkBar,
		X:      Channel{Column: "category"},
		CountY: true,
		Width:  200,
		Height: 100,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	payload, err := json.Marshal(spec)
	if err != nil {
		t.Fatalf("marshaling: %v", err)
	}
	golden(t).Assert(t, "bar_count", payload)
}

func TestBuild_GoldenPointSource(t *testing.T) {
	ds := frame.New(
		frame.Column{Name: "country_name", Kind: frame.String},
		frame.Column{Name: "income_group", Kind: frame.String},
		frame.Column{Name: "x_value", Kind: frame.Number},
		frame.Column{Name: "y_value", Kind: frame.Number},
	)
	ds.MustAppendRow(frame.Str("Norway"), frame.Str("High income"), frame.Num(1000), frame.Num(50))
	ds.MustAppendRow(frame.Str("India"), frame.Str("Low income"), frame.Num(2000), frame.Num(60))

	spec, err := Build(ds, Params{
		Mark:    MarkPoint,
		X:       Channel{Column: "x_value", Kind: KindCurrency, Title: "GDP per capita"},
		Y:       Channel{Column: "y_value"},
		Color:   "income_group",
		Tooltip: []string{"country_name"},
		Width:   300,
		Height:  200,
		Role:    RoleSource,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	payload, err := json.Marshal(spec)
	if err != nil {
		t.Fatalf("marshaling: %v", err)
	}
	golden(t).Assert(t, "point_source", payload)
}
