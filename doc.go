// Package offset produces offset outlines of vector shapes for laser cutting
// and engraving.
//
// # Overview
//
// Given selected elements of a document, an [Offsetter] creates one new
// <path> whose outline is displaced by a fixed distance from the originals:
// outward (merged into one outline), inward (holes only), expanded or
// shrunk, with round or sharp corners.
//
// # Quick Start
//
//	doc := document.New()
//	sq := doc.Append(nil, document.NewElement("rect", map[string]string{
//		"width": "10", "height": "10",
//	}))
//
//	deps, err := offset.DocumentDeps(doc)
//	if err != nil {
//		log.Fatal(err)
//	}
//	o, err := offset.New(deps)
//	if err != nil {
//		log.Fatal(err)
//	}
//	res, err := o.Offset(ctx, offset.Request{
//		Elements: []*document.Element{sq},
//		Mode:     offset.ModeOutward,
//		Corner:   offset.CornerSharp,
//		Distance: 2,
//	})
//
// # Pipeline
//
// An invocation runs these stages in order:
//   - Validating: groups are flattened, text is converted to paths
//   - PerElementOffsetting: each element is flattened to scaled integer
//     polygons and offset on its own engine instance
//   - HierarchyFiltering (inward), Unioning (outward) or PassThrough
//   - PathBuilding: the loops become path data, optionally curve-fitted
//   - Applying: the new element is created and recorded for undo
//
// Any failure aborts the whole invocation without touching the document.
// Engine instances are terminated on every exit path.
//
// # Collaborators
//
// The document, canvas, history, progress and alert surfaces are consumed
// through the interfaces in [Deps]. The document package provides an
// in-memory implementation of all of them.
//
// # Logging
//
// The package is silent by default. Use [SetLogger] to enable logging.
package offset
