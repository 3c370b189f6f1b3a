package offset

import (
	"fmt"

	"honnef.co/go/curve"

	"github.com/gogpu/offset/document"
	"github.com/gogpu/offset/fit"
	"github.com/gogpu/offset/text"
)

// Geometry extracts the outline of an element.
type Geometry interface {
	// PathData returns the element outline in its local frame, or
	// document.ErrNoOutline when the element has none.
	PathData(el *document.Element) (curve.BezPath, error)

	// BBox returns the local-frame bounding box.
	BBox(el *document.Element) (document.Rect, error)

	// Rotation returns the rotation angle in degrees, 0 when unrotated.
	Rotation(el *document.Element) float64
}

// RotationPivot is implemented by a Geometry that knows the point an
// element rotates about. Without it elements rotate about their bounding
// box centre.
type RotationPivot interface {
	RotationCenter(el *document.Element) (cx, cy float64, ok bool)
}

// TextConverter turns a text element into a path element.
// The returned command has been applied; the validator reverts it.
type TextConverter interface {
	Convert(el *document.Element) (*document.Element, document.Command, error)
}

// History records committed commands for undo.
type History interface {
	AddToHistory(cmd document.Command)
}

// Canvas is the selection and element factory of the editor.
type Canvas interface {
	SelectedElements() []*document.Element
	CreateElement(tag string, attrs map[string]string) (*document.Element, document.Command)
	SelectOnly(els []*document.Element)
	NextID() string
}

// Progress shows a busy indicator while an invocation runs.
type Progress interface {
	Open(message string)
	Close()
}

// Alerter shows a failure message to the user.
type Alerter interface {
	Alert(message string)
}

// CurveFitter approximates a point sequence with curve segments.
type CurveFitter interface {
	Fit(pts []curve.Point) curve.BezPath
}

// Deps bundles the collaborators of an Offsetter.
//
// Geometry, History and Canvas are required. A nil Text fails every text
// element, nil Progress and Alerter do nothing and a nil Fitter uses
// fit.Default.
type Deps struct {
	Geometry Geometry
	Text     TextConverter
	History  History
	Canvas   Canvas
	Progress Progress
	Alerter  Alerter
	Fitter   CurveFitter
}

func (d Deps) withDefaults() (Deps, error) {
	switch {
	case d.Geometry == nil:
		return d, fmt.Errorf("%w: Geometry", ErrMissingDependency)
	case d.History == nil:
		return d, fmt.Errorf("%w: History", ErrMissingDependency)
	case d.Canvas == nil:
		return d, fmt.Errorf("%w: Canvas", ErrMissingDependency)
	}
	if d.Text == nil {
		d.Text = noText{}
	}
	if d.Progress == nil {
		d.Progress = nopProgress{}
	}
	if d.Alerter == nil {
		d.Alerter = nopAlerter{}
	}
	if d.Fitter == nil {
		d.Fitter = fit.Default
	}
	return d, nil
}

// DocumentDeps wires an in-memory document as every collaborator, with a
// text converter using the embedded default font.
func DocumentDeps(doc *document.Document, opts ...text.Option) (Deps, error) {
	conv, err := text.NewConverter(doc, opts...)
	if err != nil {
		return Deps{}, err
	}
	return Deps{
		Geometry: document.Geometry{},
		Text:     conv,
		History:  doc,
		Canvas:   doc,
		Fitter:   fit.Default,
	}, nil
}

type noText struct{}

func (noText) Convert(*document.Element) (*document.Element, document.Command, error) {
	return nil, nil, errNoConverter
}

type nopProgress struct{}

func (nopProgress) Open(string) {}
func (nopProgress) Close()      {}

type nopAlerter struct{}

func (nopAlerter) Alert(string) {}
