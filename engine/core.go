package engine

import (
	"fmt"

	clipper "github.com/ctessum/go.clipper"

	"github.com/gogpu/offset/geom"
)

// core is the synchronous computation shared by all implementations.
// It is not safe for concurrent use.
type core interface {
	addPaths(req AddRequest) error
	execute(req ExecuteRequest) (geom.Paths, error)
}

func newCore(cfg Config) (core, error) {
	switch cfg.Kind {
	case KindOffset:
		o := &offsetCore{cfg: cfg}
		o.reset()
		return o, nil
	case KindBoolean:
		return &booleanCore{c: clipper.NewClipper(clipper.IoNone)}, nil
	default:
		return nil, fmt.Errorf("engine: unknown kind %d", cfg.Kind)
	}
}

// offsetCore wraps clipper.ClipperOffset.
type offsetCore struct {
	cfg Config
	co  *clipper.ClipperOffset
	n   int
}

func (o *offsetCore) reset() {
	o.co = clipper.NewClipperOffset()
	o.co.MiterLimit = o.cfg.MiterLimit
	o.co.ArcTolerance = o.cfg.ArcTolerance
	o.n = 0
}

func (o *offsetCore) addPaths(req AddRequest) (err error) {
	defer recoverInto(&err, "add paths")
	paths := toClipper(req.Paths, req.End.IsClosed())
	o.co.AddPaths(paths, joinTypes[req.Join], endTypes[req.End])
	o.n += len(paths)
	return nil
}

func (o *offsetCore) execute(req ExecuteRequest) (out geom.Paths, err error) {
	defer recoverInto(&err, "execute offset")
	defer o.reset()
	if o.n == 0 {
		return nil, nil
	}
	return fromClipper(o.co.Execute(req.Delta)), nil
}

// booleanCore wraps clipper.Clipper.
type booleanCore struct {
	c       *clipper.Clipper
	hasOpen bool
}

func (b *booleanCore) addPaths(req AddRequest) (err error) {
	if !req.Closed && req.Role == RoleClip {
		return ErrOpenClip
	}
	defer recoverInto(&err, "add paths")
	b.c.AddPaths(toClipper(req.Paths, req.Closed), polyTypes[req.Role], req.Closed)
	if !req.Closed {
		b.hasOpen = true
	}
	return nil
}

func (b *booleanCore) execute(req ExecuteRequest) (out geom.Paths, err error) {
	defer recoverInto(&err, "execute boolean")
	defer func() {
		b.c = clipper.NewClipper(clipper.IoNone)
		b.hasOpen = false
	}()
	if b.hasOpen {
		return nil, ErrOpenBoolean
	}
	sol, ok := b.c.Execute1(clipTypes[req.Clip], fillTypes[req.SubjectFill], fillTypes[req.ClipFill])
	if !ok {
		return nil, ErrExecuteFailed
	}
	return fromClipper(sol), nil
}

// recoverInto turns a clipper panic into an error.
func recoverInto(err *error, op string) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("engine: %s: %v", op, r)
	}
}

// toClipper converts paths for submission. Consecutive duplicates are
// removed and, for closed input, so is a repeated closing point: clipper
// compares vertices by pointer and would keep them.
func toClipper(ps geom.Paths, closed bool) clipper.Paths {
	out := make(clipper.Paths, 0, len(ps))
	for _, p := range ps {
		p = p.Compact()
		if closed && len(p) > 1 && p.IsClosed() {
			p = p[:len(p)-1]
		}
		if len(p) == 0 {
			continue
		}
		out = append(out, p.ToClipper())
	}
	return out
}

func fromClipper(cps clipper.Paths) geom.Paths {
	return geom.PathsFromClipper(cps).NonEmpty()
}

var (
	joinTypes = map[JoinType]clipper.JoinType{
		JoinSquare: clipper.JtSquare,
		JoinRound:  clipper.JtRound,
		JoinMiter:  clipper.JtMiter,
	}
	endTypes = map[EndType]clipper.EndType{
		EndClosedPolygon: clipper.EtClosedPolygon,
		EndClosedLine:    clipper.EtClosedLine,
		EndOpenButt:      clipper.EtOpenButt,
		EndOpenSquare:    clipper.EtOpenSquare,
		EndOpenRound:     clipper.EtOpenRound,
	}
	polyTypes = map[Role]clipper.PolyType{
		RoleSubject: clipper.PtSubject,
		RoleClip:    clipper.PtClip,
	}
	clipTypes = map[ClipType]clipper.ClipType{
		ClipIntersection: clipper.CtIntersection,
		ClipUnion:        clipper.CtUnion,
		ClipDifference:   clipper.CtDifference,
		ClipXor:          clipper.CtXor,
	}
	fillTypes = map[FillRule]clipper.PolyFillType{
		FillEvenOdd:  clipper.PftEvenOdd,
		FillNonZero:  clipper.PftNonZero,
		FillPositive: clipper.PftPositive,
		FillNegative: clipper.PftNegative,
	}
)
