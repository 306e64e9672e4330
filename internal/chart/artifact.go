package chart

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
)

const vegaSchema = "https://vega.github.io/schema/vega-lite/v5.json"

// Artifact is the terminal output: two chart specs side by side with
// their shared selection wiring, serializable to one self-contained
// document. Write-once; never mutated after ComposeLinked returns.
type Artifact struct {
	left     *Spec
	right    *Spec
	title    string
	subtitle string
}

// ComposeOption adjusts artifact-level presentation.
type ComposeOption func(*Artifact)

// WithTitle sets the shared top-level title block.
func WithTitle(title, subtitle string) ComposeOption {
	return func(a *Artifact) {
		a.title = title
		a.subtitle = subtitle
	}
}

// ComposeLinked places two chart specs side by side. Every filter-role
// predicate consumed by either chart must be defined as the selection
// source of the other, or the wiring would dangle in the rendered
// document.
func ComposeLinked(left, right *Spec, opts ...ComposeOption) (*Artifact, error) {
	if left == nil || right == nil {
		return nil, fmt.Errorf("compose requires two charts")
	}
	if err := checkWiring(left, right); err != nil {
		return nil, err
	}
	if err := checkWiring(right, left); err != nil {
		return nil, err
	}
	if left.Selection() != nil && right.Selection() != nil &&
		left.Selection().Name() == right.Selection().Name() {
		return nil, fmt.Errorf("both charts define a selection named %q", left.Selection().Name())
	}

	a := &Artifact{left: left, right: right}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// checkWiring verifies that the filter predicate of spec, if any, is
// the very selection instance its sibling created.
func checkWiring(spec, sibling *Spec) error {
	pred := spec.FilteredBy()
	if pred == nil {
		return nil
	}
	if sibling.Selection() != pred {
		return fmt.Errorf("filter selection %q is not defined by the sibling chart", pred.Name())
	}
	return nil
}

// Left and Right return the embedded chart specs, unchanged from the
// Build calls that produced them.
func (a *Artifact) Left() *Spec  { return a.left }
func (a *Artifact) Right() *Spec { return a.right }

// MarshalJSON emits one Vega-Lite document embedding both views and the
// shared selection parameter.
func (a *Artifact) MarshalJSON() ([]byte, error) {
	doc := vegaDoc{
		Schema:     vegaSchema,
		Background: backgroundColor,
		Padding:    artifactPadding,
		HConcat:    []vegaDoc{a.left.doc, a.right.doc},
	}
	if a.title != "" {
		doc.Title = themeTitle(a.title, a.subtitle)
	}
	return json.Marshal(doc)
}

var htmlTemplate = template.Must(template.New("artifact").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <script src="https://cdn.jsdelivr.net/npm/vega@5"></script>
  <script src="https://cdn.jsdelivr.net/npm/vega-lite@5"></script>
  <script src="https://cdn.jsdelivr.net/npm/vega-embed@6"></script>
  <style>body { margin: 0; font-family: {{.Font}}; }</style>
</head>
<body>
<div id="vis"></div>
<script>
  vegaEmbed("#vis", {{.Spec}}, {actions: false});
</script>
</body>
</html>
`))

// WriteHTML writes the self-contained viewing document: both specs,
// their data values, and the selection wiring inlined, rendered by an
// external engine loaded from a CDN.
func (a *Artifact) WriteHTML(w io.Writer) error {
	spec, err := a.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshaling artifact: %w", err)
	}
	data := struct {
		Font template.CSS
		Spec template.JS
	}{
		Font: template.CSS(fontFamily),
		Spec: template.JS(spec),
	}
	if err := htmlTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("writing artifact html: %w", err)
	}
	return nil
}

// Save writes the HTML document to a file.
func (a *Artifact) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := a.WriteHTML(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
