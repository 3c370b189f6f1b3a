package offset

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync/atomic"
	"testing"

	"honnef.co/go/curve"

	"github.com/gogpu/offset/document"
	"github.com/gogpu/offset/engine"
	"github.com/gogpu/offset/geom"
	"github.com/gogpu/offset/internal/hierarchy"
	"github.com/gogpu/offset/svgpath"
)

type recProgress struct {
	opens, closes int
	msg           string
}

func (p *recProgress) Open(msg string) {
	p.opens++
	p.msg = msg
}

func (p *recProgress) Close() { p.closes++ }

type recAlerter struct{ msgs []string }

func (a *recAlerter) Alert(msg string) { a.msgs = append(a.msgs, msg) }

type fixture struct {
	t        *testing.T
	doc      *document.Document
	progress *recProgress
	alerts   *recAlerter
	o        *Offsetter
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	doc := document.New()
	deps, err := DocumentDeps(doc)
	if err != nil {
		t.Fatalf("DocumentDeps: %v", err)
	}
	f := &fixture{t: t, doc: doc, progress: &recProgress{}, alerts: &recAlerter{}}
	deps.Progress = f.progress
	deps.Alerter = f.alerts
	f.o, err = New(deps, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f
}

func (f *fixture) add(el *document.Element) *document.Element { return f.doc.Append(nil, el) }

func (f *fixture) offset(req Request) (*Result, error) {
	return f.o.Offset(context.Background(), req)
}

// checkProgress verifies the progress indicator was opened and closed once.
func (f *fixture) checkProgress() {
	f.t.Helper()
	if f.progress.opens != 1 || f.progress.closes != 1 {
		f.t.Errorf("progress opened %d and closed %d times, want 1 and 1", f.progress.opens, f.progress.closes)
	}
}

func els(e ...*document.Element) []*document.Element { return e }

func rect(x, y, w, h float64) *document.Element {
	return document.NewElement("rect", map[string]string{
		"x":      svgpath.FormatNumber(x),
		"y":      svgpath.FormatNumber(y),
		"width":  svgpath.FormatNumber(w),
		"height": svgpath.FormatNumber(h),
	})
}

func pathEl(d string) *document.Element {
	return document.NewElement("path", map[string]string{"d": d})
}

type box struct{ minX, minY, maxX, maxY float64 }

// loops returns the bounding box of every subpath of d. Curves are sampled
// so the box follows the drawn outline rather than the control points.
func loops(t *testing.T, d string) []box {
	t.Helper()
	bez, err := svgpath.Parse(d)
	if err != nil {
		t.Fatalf("result d %q does not parse: %v", d, err)
	}
	var out []box
	grow := func(pt curve.Point) {
		b := &out[len(out)-1]
		b.minX, b.minY = math.Min(b.minX, pt.X), math.Min(b.minY, pt.Y)
		b.maxX, b.maxY = math.Max(b.maxX, pt.X), math.Max(b.maxY, pt.Y)
	}
	const samples = 64
	var last curve.Point
	for _, el := range bez {
		switch el.Kind {
		case curve.MoveToKind:
			out = append(out, box{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)})
			grow(el.P0)
			last = el.P0
		case curve.LineToKind:
			grow(el.P0)
			last = el.P0
		case curve.QuadToKind:
			for i := 1; i <= samples; i++ {
				grow(quadAt(last, el.P0, el.P1, float64(i)/samples))
			}
			last = el.P1
		case curve.CubicToKind:
			for i := 1; i <= samples; i++ {
				grow(cubicAt(last, el.P0, el.P1, el.P2, float64(i)/samples))
			}
			last = el.P2
		}
	}
	return out
}

func quadAt(p0, p1, p2 curve.Point, t float64) curve.Point {
	u := 1 - t
	return curve.Point{
		X: u*u*p0.X + 2*u*t*p1.X + t*t*p2.X,
		Y: u*u*p0.Y + 2*u*t*p1.Y + t*t*p2.Y,
	}
}

func cubicAt(p0, p1, p2, p3 curve.Point, t float64) curve.Point {
	u := 1 - t
	a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return curve.Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

func near(a, b float64) bool { return math.Abs(a-b) <= 0.02 }

func checkBox(t *testing.T, got, want box) {
	t.Helper()
	if !near(got.minX, want.minX) || !near(got.minY, want.minY) || !near(got.maxX, want.maxX) || !near(got.maxY, want.maxY) {
		t.Errorf("bounds = %+v, want %+v", got, want)
	}
}

func TestOutwardSquareSharp(t *testing.T) {
	for _, name := range []string{engine.NameWorker, engine.NameInProcess} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, WithEngine(name))
			sq := f.add(rect(0, 0, 10, 10))
			before := f.doc.Count()

			res, err := f.offset(Request{Elements: els(sq), Mode: ModeOutward, Corner: CornerSharp, Distance: 2})
			if err != nil {
				t.Fatalf("Offset: %v", err)
			}

			got := loops(t, res.Element.Attr("d"))
			if len(got) != 1 {
				t.Fatalf("got %d loops, want 1: %s", len(got), res.Element.Attr("d"))
			}
			checkBox(t, got[0], box{-2, -2, 12, 12})

			if f.doc.Count() != before+1 {
				t.Errorf("Count() = %d, want %d", f.doc.Count(), before+1)
			}
			if f.doc.Find(res.Element.ID) != res.Element {
				t.Error("result element is not attached")
			}
			for k, v := range resultStyle {
				if res.Element.Attr(k) != v {
					t.Errorf("attr %s = %q, want %q", k, res.Element.Attr(k), v)
				}
			}
			if sel := f.doc.SelectedElements(); len(sel) != 1 || sel[0] != res.Element {
				t.Errorf("selection = %v, want only the result", sel)
			}
			if !res.Committed || f.doc.UndoLen() != 1 {
				t.Errorf("Committed = %v, UndoLen() = %d, want true and 1", res.Committed, f.doc.UndoLen())
			}
			if res.Command.Text() != "Offset Elements" || res.Command.Len() != 1 {
				t.Errorf("batch %q with %d commands", res.Command.Text(), res.Command.Len())
			}
			f.checkProgress()
			if len(f.alerts.msgs) != 0 {
				t.Errorf("alerts = %v, want none", f.alerts.msgs)
			}
		})
	}
}

func TestOutwardUnion(t *testing.T) {
	tests := []struct {
		name      string
		elements  func(f *fixture) []*document.Element
		wantLoops int
	}{
		{
			name: "overlapping squares merge",
			elements: func(f *fixture) []*document.Element {
				return els(f.add(rect(0, 0, 10, 10)), f.add(rect(5, 0, 10, 10)))
			},
			wantLoops: 1,
		},
		{
			name: "disjoint squares whose expansions overlap",
			elements: func(f *fixture) []*document.Element {
				return els(f.add(rect(0, 0, 10, 10)), f.add(rect(12, 0, 10, 10)))
			},
			wantLoops: 1,
		},
		{
			name: "distant squares stay apart",
			elements: func(f *fixture) []*document.Element {
				return els(f.add(rect(0, 0, 10, 10)), f.add(rect(30, 0, 10, 10)))
			},
			wantLoops: 2,
		},
		{
			name: "group members are merged",
			elements: func(f *fixture) []*document.Element {
				g := document.NewElement(document.TagGroup, nil,
					rect(0, 0, 10, 10),
					document.NewElement(document.TagGroup, nil, rect(10.5, 0, 10, 10)),
				)
				return els(f.add(g))
			},
			wantLoops: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			res, err := f.offset(Request{Elements: tt.elements(f), Mode: ModeOutward, Corner: CornerRound, Distance: 1})
			if err != nil {
				t.Fatalf("Offset: %v", err)
			}
			if got := loops(t, res.Element.Attr("d")); len(got) != tt.wantLoops {
				t.Errorf("got %d loops, want %d", len(got), tt.wantLoops)
			}
		})
	}
}

func TestOverlapUnionBounds(t *testing.T) {
	f := newFixture(t)
	a, b := f.add(rect(0, 0, 10, 10)), f.add(rect(5, 0, 10, 10))
	res, err := f.offset(Request{Elements: els(a, b), Mode: ModeOutward, Corner: CornerSharp, Distance: 1})
	if err != nil {
		t.Fatal(err)
	}
	got := loops(t, res.Element.Attr("d"))
	if len(got) != 1 {
		t.Fatalf("got %d loops, want 1", len(got))
	}
	checkBox(t, got[0], box{-1, -1, 16, 11})
}

func TestOutwardRingFillsHole(t *testing.T) {
	f := newFixture(t)
	ring := f.add(pathEl("M0,0 L20,0 L20,20 L0,20Z M5,5 L5,15 L15,15 L15,5Z"))

	res, err := f.offset(Request{Elements: els(ring), Mode: ModeOutward, Corner: CornerSharp, Distance: 1})
	if err != nil {
		t.Fatalf("Offset: %v", err)
	}
	got := loops(t, res.Element.Attr("d"))
	if len(got) != 1 {
		t.Fatalf("got %d loops, want only the outer one: %s", len(got), res.Element.Attr("d"))
	}
	checkBox(t, got[0], box{-1, -1, 21, 21})
}

func TestExpandKeepsOverlaps(t *testing.T) {
	f := newFixture(t)
	a, b := f.add(rect(0, 0, 10, 10)), f.add(rect(5, 0, 10, 10))
	res, err := f.offset(Request{Elements: els(a, b), Mode: ModeExpand, Corner: CornerSharp, Distance: 1})
	if err != nil {
		t.Fatal(err)
	}
	got := loops(t, res.Element.Attr("d"))
	if len(got) != 2 {
		t.Fatalf("got %d loops, want 2", len(got))
	}
	checkBox(t, got[0], box{-1, -1, 11, 11})
	checkBox(t, got[1], box{4, -1, 16, 11})
}

func TestShrink(t *testing.T) {
	f := newFixture(t)
	sq := f.add(rect(0, 0, 10, 10))
	res, err := f.offset(Request{Elements: els(sq), Mode: ModeShrink, Corner: CornerSharp, Distance: 2})
	if err != nil {
		t.Fatal(err)
	}
	got := loops(t, res.Element.Attr("d"))
	if len(got) != 1 {
		t.Fatalf("got %d loops, want 1", len(got))
	}
	checkBox(t, got[0], box{2, 2, 8, 8})
}

func TestUnsupportedElement(t *testing.T) {
	tests := []struct {
		name string
		el   *document.Element
	}{
		{"image", document.NewElement("image", map[string]string{"width": "10", "height": "10", "href": "a.png"})},
		{"use", document.NewElement("use", map[string]string{"href": "#a"})},
		{"empty group", document.NewElement(document.TagGroup, nil)},
		{"zero size rect", rect(0, 0, 0, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			sq := f.add(rect(0, 0, 10, 10))
			bad := f.add(tt.el)
			before := f.doc.Count()

			_, err := f.offset(Request{Elements: els(sq, bad), Mode: ModeOutward, Distance: 1})
			if !errors.Is(err, ErrUnsupportedElement) {
				t.Fatalf("err = %v, want ErrUnsupportedElement", err)
			}
			var opErr *OperationError
			if !errors.As(err, &opErr) || opErr.ElementID != bad.ID {
				t.Errorf("OperationError = %+v, want element %q", opErr, bad.ID)
			}
			if f.doc.Count() != before || f.doc.UndoLen() != 0 {
				t.Error("document changed on failure")
			}
			if len(f.alerts.msgs) != 1 {
				t.Errorf("alerts = %v, want exactly one", f.alerts.msgs)
			}
			f.checkProgress()
		})
	}
}

func TestProcessingFailed(t *testing.T) {
	tests := []struct {
		name string
		el   *document.Element
	}{
		{"degenerate path", pathEl("M0,0 L0,0")},
		{"bad path data", pathEl("M0,0 L")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			el := f.add(tt.el)
			_, err := f.offset(Request{Elements: els(el), Mode: ModeExpand, Distance: 1})
			if !errors.Is(err, ErrProcessingFailed) {
				t.Fatalf("err = %v, want ErrProcessingFailed", err)
			}
			if len(f.alerts.msgs) != 1 || f.doc.UndoLen() != 0 {
				t.Errorf("alerts = %v, UndoLen() = %d", f.alerts.msgs, f.doc.UndoLen())
			}
			f.checkProgress()
		})
	}
}

func TestInwardOpenPolyline(t *testing.T) {
	f := newFixture(t)
	var filtered int
	f.o.holes = func(p geom.Paths) geom.Paths {
		filtered++
		return hierarchy.Filter(p)
	}
	pl := f.add(document.NewElement("polyline", map[string]string{"points": "0,0 10,0 10,10"}))

	res, err := f.offset(Request{Elements: els(pl), Mode: ModeInward, Corner: CornerRound, Distance: 1})
	if err != nil {
		t.Fatalf("Offset: %v", err)
	}
	if filtered != 0 {
		t.Errorf("hierarchy filter ran %d times for a single loop, want 0", filtered)
	}
	got := loops(t, res.Element.Attr("d"))
	if len(got) != 1 {
		t.Fatalf("got %d loops, want 1", len(got))
	}
	checkBox(t, got[0], box{-1, -1, 11, 11})
}

func TestInwardClosedSquare(t *testing.T) {
	tests := []struct {
		name   string
		corner CornerType
	}{
		{"sharp", CornerSharp},
		{"round", CornerRound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			var filtered int
			f.o.holes = func(p geom.Paths) geom.Paths {
				filtered++
				return hierarchy.Filter(p)
			}
			sq := f.add(rect(0, 0, 10, 10))

			res, err := f.offset(Request{Elements: els(sq), Mode: ModeInward, Corner: tt.corner, Distance: 1})
			if err != nil {
				t.Fatalf("Offset: %v", err)
			}
			if filtered != 1 {
				t.Errorf("hierarchy filter ran %d times, want 1", filtered)
			}
			got := loops(t, res.Element.Attr("d"))
			if len(got) != 1 {
				t.Fatalf("got %d loops, want only the inner one", len(got))
			}
			if tt.corner == CornerSharp {
				checkBox(t, got[0], box{1, 1, 9, 9})
			}
		})
	}
}

func TestNoElements(t *testing.T) {
	f := newFixture(t)
	_, err := f.offset(Request{Mode: ModeOutward, Distance: 1})
	if !errors.Is(err, ErrNoElements) {
		t.Fatalf("err = %v, want ErrNoElements", err)
	}
	if len(f.alerts.msgs) != 0 {
		t.Errorf("alerts = %v, want none for no elements", f.alerts.msgs)
	}
	f.checkProgress()
}

func TestSelectionUsedWhenNoElements(t *testing.T) {
	f := newFixture(t)
	sq := f.add(rect(0, 0, 10, 10))
	f.doc.SelectOnly(els(sq))

	res, err := f.offset(Request{Mode: ModeExpand, Corner: CornerSharp, Distance: 1})
	if err != nil {
		t.Fatal(err)
	}
	checkBox(t, loops(t, res.Element.Attr("d"))[0], box{-1, -1, 11, 11})
}

func TestInvalidRequest(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{"zero distance", Request{Distance: 0}},
		{"negative distance", Request{Distance: -1}},
		{"NaN distance", Request{Distance: math.NaN()}},
		{"infinite distance", Request{Distance: math.Inf(1)}},
		{"unknown mode", Request{Mode: Mode(9), Distance: 1}},
		{"unknown corner", Request{Corner: CornerType(9), Distance: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.req.Elements = els(f.add(rect(0, 0, 10, 10)))
			if _, err := f.offset(tt.req); !errors.Is(err, ErrInvalidRequest) {
				t.Fatalf("err = %v, want ErrInvalidRequest", err)
			}
			if f.progress.opens != 0 || len(f.alerts.msgs) != 0 {
				t.Error("invalid request reached the pipeline")
			}
		})
	}
}

func TestTextIsConvertedAndRestored(t *testing.T) {
	f := newFixture(t)
	txt := f.add(document.NewText("Hi", map[string]string{"x": "0", "y": "20", "font-size": "16"}))

	res, err := f.offset(Request{Elements: els(txt), Mode: ModeOutward, Corner: CornerRound, Distance: 0.5})
	if err != nil {
		t.Fatalf("Offset: %v", err)
	}
	if got := f.doc.Find(txt.ID); got != txt {
		t.Errorf("text element not restored: Find(%q) = %v", txt.ID, got)
	}
	if f.doc.Count() != 2 {
		t.Errorf("Count() = %d, want text plus result", f.doc.Count())
	}
	if len(loops(t, res.Element.Attr("d"))) == 0 {
		t.Error("empty result for text")
	}
}

func TestTextWithoutConverter(t *testing.T) {
	doc := document.New()
	alerts := &recAlerter{}
	o, err := New(Deps{Geometry: document.Geometry{}, History: doc, Canvas: doc, Alerter: alerts})
	if err != nil {
		t.Fatal(err)
	}
	txt := doc.Append(nil, document.NewText("Hi", nil))

	_, err = o.Offset(context.Background(), Request{Elements: els(txt), Distance: 1})
	if !errors.Is(err, ErrProcessingFailed) {
		t.Fatalf("err = %v, want ErrProcessingFailed", err)
	}
	if len(alerts.msgs) != 1 {
		t.Errorf("alerts = %v, want one", alerts.msgs)
	}
}

func TestPreview(t *testing.T) {
	f := newFixture(t, WithPreview(true))
	sq := f.add(rect(0, 0, 10, 10))
	before := f.doc.Count()

	res, err := f.offset(Request{Elements: els(sq), Mode: ModeExpand, Distance: 1})
	if err != nil {
		t.Fatal(err)
	}
	if res.Committed || f.doc.UndoLen() != 0 {
		t.Errorf("Committed = %v, UndoLen() = %d, want uncommitted", res.Committed, f.doc.UndoLen())
	}
	if f.doc.Count() != before+1 {
		t.Fatal("preview element not created")
	}
	if err := res.Command.Unapply(); err != nil {
		t.Fatal(err)
	}
	if f.doc.Count() != before {
		t.Error("Unapply did not remove the preview element")
	}
}

func TestUndoRemovesResult(t *testing.T) {
	f := newFixture(t)
	sq := f.add(rect(0, 0, 10, 10))
	res, err := f.offset(Request{Elements: els(sq), Mode: ModeOutward, Distance: 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := f.doc.Undo(); err != nil {
		t.Fatal(err)
	}
	if f.doc.Find(res.Element.ID) != nil {
		t.Error("result still attached after Undo")
	}
	if err := f.doc.Redo(); err != nil {
		t.Fatal(err)
	}
	if f.doc.Find(res.Element.ID) == nil {
		t.Error("result not attached after Redo")
	}
}

func TestUnknownEngine(t *testing.T) {
	f := newFixture(t, WithEngine("nope"))
	sq := f.add(rect(0, 0, 10, 10))
	_, err := f.offset(Request{Elements: els(sq), Mode: ModeOutward, Distance: 1})
	if !errors.Is(err, ErrProcessingFailed) || !errors.Is(err, engine.ErrNotAvailable) {
		t.Fatalf("err = %v, want ErrProcessingFailed wrapping ErrNotAvailable", err)
	}
}

func TestCanceledContext(t *testing.T) {
	f := newFixture(t)
	sq := f.add(rect(0, 0, 10, 10))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.o.Offset(ctx, Request{Elements: els(sq), Mode: ModeOutward, Distance: 1})
	if !errors.Is(err, ErrProcessingFailed) || !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want ErrProcessingFailed wrapping context.Canceled", err)
	}
	f.checkProgress()
}

func TestSimplify(t *testing.T) {
	f := newFixture(t, WithWorkers(2))
	a := f.add(document.NewElement("circle", map[string]string{"cx": "10", "cy": "10", "r": "5"}))
	b := f.add(document.NewElement("circle", map[string]string{"cx": "40", "cy": "10", "r": "5"}))

	res, err := f.offset(Request{Elements: els(a, b), Mode: ModeExpand, Corner: CornerRound, Distance: 1, Simplify: true})
	if err != nil {
		t.Fatal(err)
	}
	d := res.Element.Attr("d")
	if !strings.Contains(d, "C") {
		t.Errorf("simplified d has no curves: %s", d)
	}
	got := loops(t, d)
	if len(got) != 2 {
		t.Fatalf("got %d loops, want 2", len(got))
	}
	for i, c := range []float64{10, 40} {
		if w := got[i].maxX - got[i].minX; math.Abs(w-12) > 0.5 || math.Abs((got[i].minX+got[i].maxX)/2-c) > 0.5 {
			t.Errorf("loop %d bounds %+v, want a circle of radius 6 around x=%v", i, got[i], c)
		}
	}
}

func TestRotatedElement(t *testing.T) {
	tests := []struct {
		name      string
		transform string
		bboxPivot bool
		want      box
	}{
		{"about the origin", "rotate(90)", false, box{-5, -1, 1, 11}},
		{"about an explicit centre", "rotate(90 5 2)", false, box{2, -4, 8, 8}},
		{"about the bbox centre without a pivot", "rotate(90 0 0)", true, box{2, -4, 8, 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.bboxPivot {
				// hides RotationCenter
				f.o.deps.Geometry = struct{ Geometry }{f.o.deps.Geometry}
			}
			r := rect(0, 0, 10, 4)
			r.SetAttr("transform", tt.transform)
			f.add(r)

			res, err := f.offset(Request{Elements: els(r), Mode: ModeExpand, Corner: CornerSharp, Distance: 1})
			if err != nil {
				t.Fatal(err)
			}
			checkBox(t, loops(t, res.Element.Attr("d"))[0], tt.want)
		})
	}
}

// countingEngine records terminations.
type countingEngine struct {
	engine.Engine
	terminated *atomic.Int32
}

func (c countingEngine) Terminate() {
	c.terminated.Add(1)
	c.Engine.Terminate()
}

func TestEnginesTerminated(t *testing.T) {
	var created, terminated atomic.Int32
	engine.Register("counting", func(cfg engine.Config) (engine.Engine, error) {
		e, err := engine.Get(engine.NameInProcess, cfg)
		if err != nil {
			return nil, err
		}
		created.Add(1)
		return countingEngine{Engine: e, terminated: &terminated}, nil
	})
	t.Cleanup(func() { engine.Unregister("counting") })

	tests := []struct {
		name        string
		elements    func(f *fixture) []*document.Element
		wantErr     error
		wantCreated int32
	}{
		{
			name: "outward success",
			elements: func(f *fixture) []*document.Element {
				return els(f.add(rect(0, 0, 10, 10)), f.add(rect(5, 0, 10, 10)))
			},
			wantCreated: 3,
		},
		{
			name: "failure mid batch",
			elements: func(f *fixture) []*document.Element {
				return els(f.add(rect(0, 0, 10, 10)), f.add(document.NewElement("image", nil)), f.add(rect(5, 0, 10, 10)))
			},
			wantErr:     ErrUnsupportedElement,
			wantCreated: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created.Store(0)
			terminated.Store(0)
			f := newFixture(t, WithEngine("counting"))
			_, err := f.offset(Request{Elements: tt.elements(f), Mode: ModeOutward, Distance: 1})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if created.Load() != tt.wantCreated || terminated.Load() != created.Load() {
				t.Errorf("created %d, terminated %d, want %d each", created.Load(), terminated.Load(), tt.wantCreated)
			}
		})
	}
}
