package offset

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/gogpu/offset/document"
	"github.com/gogpu/offset/engine"
	"github.com/gogpu/offset/geom"
	"github.com/gogpu/offset/internal/hierarchy"
	"github.com/gogpu/offset/internal/parallel"
	"github.com/gogpu/offset/internal/pathbuild"
)

// Offsetter runs offset invocations against a set of collaborators.
//
// An Offsetter holds no per-invocation state; concurrent calls to Offset
// are independent, although the collaborators must tolerate them.
type Offsetter struct {
	deps Deps
	opts options

	// holes filters one element's inward result down to its inner loops.
	holes func(geom.Paths) geom.Paths
}

// New creates an Offsetter.
// It returns ErrMissingDependency when a required collaborator is nil.
func New(deps Deps, opts ...Option) (*Offsetter, error) {
	deps, err := deps.withDefaults()
	if err != nil {
		return nil, err
	}
	o := &Offsetter{
		deps:  deps,
		opts:  defaultOptions(),
		holes: hierarchy.Filter,
	}
	for _, opt := range opts {
		opt(&o.opts)
	}
	return o, nil
}

// Offset creates one path outlining the requested elements displaced by
// req.Distance.
//
// The invocation is all or nothing: on error the document is unchanged,
// one alert is shown (none for ErrNoElements) and the returned
// *OperationError unwraps to the error kind and its cause. A malformed
// request returns ErrInvalidRequest before anything is shown.
func (o *Offsetter) Offset(ctx context.Context, req Request) (*Result, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	r := &run{
		o:   o,
		req: req,
		log: Logger().With("mode", req.Mode, "corner", req.Corner, "distance", req.Distance),
	}
	res, err := r.execute(ctx)
	if err != nil {
		r.transition(stateError)
		r.log.Debug("offset: invocation failed", "err", err)
		if msg := alertMessage(err); msg != "" {
			o.deps.Alerter.Alert(msg)
		}
		return nil, err
	}
	r.transition(stateDone)
	r.log.Info("offset: created outline", "id", res.Element.ID, "committed", res.Committed)
	return res, nil
}

// run is the state of one invocation.
type run struct {
	o     *Offsetter
	req   Request
	log   *slog.Logger
	state state
}

func (r *run) transition(next state) {
	r.log.Debug("offset: stage", "from", r.state, "to", next)
	r.state = next
}

func (r *run) execute(ctx context.Context) (*Result, error) {
	r.transition(stateValidating)
	r.o.deps.Progress.Open("Offsetting elements...")
	var closeOnce sync.Once
	closeProgress := func() { closeOnce.Do(r.o.deps.Progress.Close) }
	defer closeProgress()

	elements, err := r.o.validate(r.req)
	if err != nil {
		return nil, err
	}

	r.transition(statePerElementOffsetting)
	delta := r.req.Mode.Sign() * r.req.Distance * geom.ScaleFactor
	sets := make([]geom.Paths, 0, len(elements))
	for _, el := range elements {
		paths, err := r.offsetElement(ctx, el, delta)
		if err != nil {
			return nil, err
		}
		sets = append(sets, paths)
	}

	merged, err := r.merge(ctx, sets)
	if err != nil {
		return nil, err
	}
	if merged = merged.NonEmpty(); len(merged) == 0 {
		return nil, opError(ErrUnionFailed, "", errEmptyResult)
	}

	r.transition(statePathBuilding)
	d := r.build(merged)
	if d == "" {
		return nil, opError(ErrUnionFailed, "", errEmptyResult)
	}

	r.transition(stateApplying)
	closeProgress()
	return r.o.apply(d), nil
}

// offsetElement runs one element on its own engine instance.
func (r *run) offsetElement(ctx context.Context, el *document.Element, delta float64) (geom.Paths, error) {
	e, err := r.o.newEngine(engine.KindOffset)
	if err != nil {
		return nil, opError(ErrProcessingFailed, el.ID, err)
	}
	defer e.Terminate()

	switch out := r.o.processElement(ctx, el, e, r.req.Corner, r.req.Mode); out.Kind {
	case OutcomeUnsupported:
		return nil, opError(ErrUnsupportedElement, el.ID, out.Err)
	case OutcomeFailed:
		return nil, opError(ErrProcessingFailed, el.ID, out.Err)
	}

	paths, err := e.Execute(ctx, engine.ExecuteRequest{Delta: delta})
	if err != nil {
		return nil, opError(ErrProcessingFailed, el.ID, err)
	}
	if paths = paths.NonEmpty(); len(paths) == 0 {
		return nil, opError(ErrProcessingFailed, el.ID, errEmptyResult)
	}
	r.log.Debug("offset: element done", "id", el.ID, "engine", e.Name(), "loops", len(paths))
	return paths, nil
}

func (r *run) build(paths geom.Paths) string {
	opts := pathbuild.Options{
		Simplify:  r.req.Simplify,
		Fitter:    r.o.deps.Fitter,
		Precision: r.o.opts.precision,
		Logger:    r.log,
	}
	if r.req.Simplify && len(paths) > 1 {
		workers := r.o.opts.workers
		if workers <= 0 {
			workers = runtime.GOMAXPROCS(0)
		}
		pool := parallel.NewWorkerPool(min(workers, len(paths)))
		defer pool.Close()
		opts.Pool = pool
	}
	return pathbuild.Build(paths, opts)
}

func (o *Offsetter) newEngine(kind engine.Kind) (engine.Engine, error) {
	cfg := engine.Config{
		Kind:         kind,
		MiterLimit:   o.opts.miterLimit,
		ArcTolerance: o.opts.arcTolerance,
		Timeout:      o.opts.timeout,
	}
	if o.opts.engine == "" {
		return engine.Default(cfg)
	}
	return engine.Get(o.opts.engine, cfg)
}
