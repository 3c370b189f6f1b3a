package offset

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/offset/document"
	"github.com/gogpu/offset/engine"
	"github.com/gogpu/offset/geom"
)

// joinEnd returns the join and end types for an element.
//
// Inward offsets are computed as a band around the outline: closed sharp
// outlines use a closed-line end so both sides of the band are produced,
// and the hierarchy filter later keeps the inner side.
func joinEnd(mode Mode, corner CornerType, closed bool) (engine.JoinType, engine.EndType) {
	if mode == ModeInward {
		switch {
		case corner == CornerRound:
			return engine.JoinRound, engine.EndOpenRound
		case closed:
			return engine.JoinMiter, engine.EndClosedLine
		default:
			return engine.JoinMiter, engine.EndOpenSquare
		}
	}

	switch {
	case closed && corner == CornerRound:
		return engine.JoinRound, engine.EndClosedPolygon
	case closed:
		return engine.JoinMiter, engine.EndClosedPolygon
	case corner == CornerRound:
		return engine.JoinRound, engine.EndOpenRound
	default:
		return engine.JoinSquare, engine.EndOpenSquare
	}
}

// processElement extracts the outline of el and submits it to e.
// It only accumulates; the caller executes.
func (o *Offsetter) processElement(ctx context.Context, el *document.Element, e engine.Engine, corner CornerType, mode Mode) Outcome {
	bez, err := o.deps.Geometry.PathData(el)
	if errors.Is(err, document.ErrNoOutline) {
		return unsupported(err)
	}
	if err != nil {
		return failed(err)
	}
	if geom.Count(bez) == 0 {
		return unsupported(fmt.Errorf("%s element has no subpaths", el.Tag))
	}

	var xf geom.Transform
	if deg := o.deps.Geometry.Rotation(el); deg != 0 {
		cx, cy, err := o.pivot(el)
		if err != nil {
			return failed(err)
		}
		xf = geom.RotateAbout(deg, cx, cy)
	}

	paths := geom.FromBezPath(bez, o.opts.flattenTolerance, xf)
	if len(paths) == 0 {
		return failed(errDegenerate)
	}

	closed := true
	for _, p := range paths {
		if !p.IsClosed() {
			closed = false
			break
		}
	}
	join, end := joinEnd(mode, corner, closed)

	Logger().Debug("offset: submitting element",
		"id", el.ID, "tag", el.Tag, "subpaths", len(paths),
		"closed", closed, "join", join, "end", end)

	if err := e.AddPaths(ctx, engine.AddRequest{Paths: paths, Join: join, End: end}); err != nil {
		return failed(err)
	}
	return Outcome{}
}

func (o *Offsetter) pivot(el *document.Element) (cx, cy float64, err error) {
	if p, ok := o.deps.Geometry.(RotationPivot); ok {
		if x, y, ok := p.RotationCenter(el); ok {
			return x, y, nil
		}
	}
	box, err := o.deps.Geometry.BBox(el)
	if err != nil {
		return 0, 0, err
	}
	cx, cy = box.Center()
	return cx, cy, nil
}
