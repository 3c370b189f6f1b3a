// Command ggoffset offsets vector shapes and writes the result as SVG.
//
// Without -path arguments it offsets a small demo drawing.
//
//	ggoffset -mode outward -corner round -distance 2 -output out.svg
//	ggoffset -path "M0,0 L40,0 L40,20Z" -path "M30,10 L60,10 L60,40Z" -simplify
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	svg "github.com/ajstarks/svgo"

	"github.com/gogpu/offset"
	"github.com/gogpu/offset/document"
	"github.com/gogpu/offset/engine"
	"github.com/gogpu/offset/svgpath"
)

func main() {
	var (
		mode     = flag.String("mode", "outward", "offset mode: outward, inward, expand or shrink")
		corner   = flag.String("corner", "round", "corner type: round or sharp")
		distance = flag.Float64("distance", 2, "offset distance")
		simplify = flag.Bool("simplify", false, "fit curves to the result")
		backend  = flag.String("engine", "", "engine implementation ("+strings.Join(engine.Available(), ", ")+")")
		timeout  = flag.Duration("timeout", engine.DefaultTimeout, "worker round trip timeout")
		label    = flag.String("text", "", "add a text element with this content")
		output   = flag.String("output", "offset.svg", "output file")
		verbose  = flag.Bool("v", false, "log pipeline stages")
		paths    []string
	)
	flag.Func("path", "path data to offset (repeatable)", func(s string) error {
		paths = append(paths, s)
		return nil
	})
	flag.Parse()

	if *verbose {
		offset.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	m, err := offset.ParseMode(*mode)
	if err != nil {
		log.Fatal(err)
	}
	c, err := offset.ParseCorner(*corner)
	if err != nil {
		log.Fatal(err)
	}

	doc := document.New()
	var targets []*document.Element
	if len(paths) == 0 {
		targets = drawDemo(doc)
	}
	for _, d := range paths {
		targets = append(targets, doc.Append(nil, document.NewElement(document.TagPath, map[string]string{"d": d})))
	}
	if *label != "" {
		targets = append(targets, doc.Append(nil, document.NewText(*label, map[string]string{
			"x": "10", "y": "120", "font-size": "32",
		})))
	}

	deps, err := offset.DocumentDeps(doc)
	if err != nil {
		log.Fatalf("Failed to set up: %v", err)
	}
	deps.Alerter = alerter{}

	opts := []offset.Option{offset.WithTimeout(*timeout)}
	if *backend != "" {
		opts = append(opts, offset.WithEngine(*backend))
	}
	o, err := offset.New(deps, opts...)
	if err != nil {
		log.Fatal(err)
	}

	start := time.Now()
	res, err := o.Offset(context.Background(), offset.Request{
		Elements: targets,
		Mode:     m,
		Corner:   c,
		Distance: *distance,
		Simplify: *simplify,
	})
	if err != nil {
		log.Fatalf("Offset failed: %v", err)
	}

	var buf bytes.Buffer
	render(&buf, doc)
	if err := os.WriteFile(*output, buf.Bytes(), 0o644); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Offset saved to %s (%s, %v)\n", *output, res.Element.ID, time.Since(start).Round(time.Microsecond))
}

type alerter struct{}

func (alerter) Alert(msg string) { fmt.Fprintln(os.Stderr, msg) }

func drawDemo(doc *document.Document) []*document.Element {
	circles := document.NewElement(document.TagGroup, nil,
		document.NewElement("circle", map[string]string{"cx": "40", "cy": "40", "r": "20"}),
		document.NewElement("circle", map[string]string{"cx": "65", "cy": "40", "r": "20"}),
	)
	box := document.NewElement("rect", map[string]string{
		"x": "110", "y": "20", "width": "50", "height": "40", "rx": "6",
		"transform": "rotate(15 135 40)",
	})
	zigzag := document.NewElement("polyline", map[string]string{"points": "180,60 195,20 210,60 225,20"})
	return []*document.Element{doc.Append(nil, circles), doc.Append(nil, box), doc.Append(nil, zigzag)}
}

// render writes the document as a standalone SVG file framing every outline.
func render(w io.Writer, doc *document.Document) {
	var (
		geo  document.Geometry
		box  = document.Rect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
		draw []*document.Element
	)
	doc.Root().Walk(func(el *document.Element) bool {
		if el == doc.Root() || el.IsGroup() {
			return true
		}
		draw = append(draw, el)
		if r, err := geo.BBox(el); err == nil {
			box.MinX, box.MinY = math.Min(box.MinX, r.MinX), math.Min(box.MinY, r.MinY)
			box.MaxX, box.MaxY = math.Max(box.MaxX, r.MaxX), math.Max(box.MaxY, r.MaxY)
		}
		return true
	})
	if math.IsInf(box.MinX, 0) {
		box = document.Rect{MaxX: 100, MaxY: 100}
	}

	const pad = 10
	minX, minY := int(math.Floor(box.MinX))-pad, int(math.Floor(box.MinY))-pad
	width, height := int(math.Ceil(box.Width()))+2*pad, int(math.Ceil(box.Height()))+2*pad

	canvas := svg.New(w)
	canvas.Startview(width*4, height*4, minX, minY, width, height)
	for _, el := range draw {
		style := "fill:none;stroke:#888;stroke-width:0.5"
		if stroke := el.Attr("stroke"); stroke != "" {
			style = "fill:none;stroke-width:0.5;stroke:" + stroke
		}
		attrs := []string{style}
		if t := el.Attr("transform"); t != "" {
			attrs = append(attrs, fmt.Sprintf("transform=%q", t))
		}

		if el.IsText() {
			size := el.Float("font-size", 16)
			attrs[0] += fmt.Sprintf(";font-size:%gpx", size)
			canvas.Text(int(el.Float("x", 0)), int(el.Float("y", 0)), el.Text, attrs...)
			continue
		}
		bez, err := geo.PathData(el)
		if err != nil || len(bez) == 0 {
			continue
		}
		canvas.Path(svgpath.Format(bez), attrs...)
	}
	canvas.End()
}
