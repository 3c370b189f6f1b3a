package offset

import (
	"time"

	"github.com/gogpu/offset/engine"
	"github.com/gogpu/offset/geom"
	"github.com/gogpu/offset/internal/pathbuild"
)

// Option configures an Offsetter during creation.
//
// Example:
//
//	// Defaults: worker engine, literal output unless the request simplifies
//	o, err := offset.New(deps)
//
//	// Synchronous engine, finer arcs
//	o, err := offset.New(deps,
//		offset.WithEngine(engine.NameInProcess),
//		offset.WithArcTolerance(0.1))
type Option func(*options)

// options holds optional configuration for an Offsetter.
type options struct {
	engine           string // "" selects engine.Default
	miterLimit       float64
	arcTolerance     float64
	timeout          time.Duration
	flattenTolerance float64
	precision        int
	preview          bool
	workers          int
}

// defaultOptions returns the default offsetter options.
func defaultOptions() options {
	return options{
		miterLimit:       engine.DefaultMiterLimit,
		arcTolerance:     engine.DefaultArcTolerance,
		timeout:          engine.DefaultTimeout,
		flattenTolerance: geom.DefaultTolerance,
		precision:        pathbuild.DefaultPrecision,
		workers:          0, // GOMAXPROCS
	}
}

// WithEngine selects the engine implementation by registry name
// (engine.NameWorker or engine.NameInProcess). Without it the registry
// default is used, which falls back to in-process when the worker cannot
// start.
func WithEngine(name string) Option {
	return func(o *options) {
		o.engine = name
	}
}

// WithMiterLimit sets the miter limit for sharp corners.
// Values <= 0 are ignored.
func WithMiterLimit(v float64) Option {
	return func(o *options) {
		if v > 0 {
			o.miterLimit = v
		}
	}
}

// WithArcTolerance sets the maximum deviation of round joins and caps from
// the true arc, in scaled units. Values <= 0 are ignored.
func WithArcTolerance(v float64) Option {
	return func(o *options) {
		if v > 0 {
			o.arcTolerance = v
		}
	}
}

// WithTimeout bounds every worker round trip.
// Values <= 0 are ignored.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithFlattenTolerance sets how far flattened curves may deviate from the
// original geometry, in working units. Values <= 0 are ignored.
func WithFlattenTolerance(v float64) Option {
	return func(o *options) {
		if v > 0 {
			o.flattenTolerance = v
		}
	}
}

// WithSimplifyPrecision sets the number of decimals points are rounded to
// before curve fitting. Values <= 0 are ignored.
func WithSimplifyPrecision(decimals int) Option {
	return func(o *options) {
		if decimals > 0 {
			o.precision = decimals
		}
	}
}

// WithPreview makes Offset return the batch command without committing it
// to history. The new element is still created; the caller keeps it by
// passing Result.Command to history or drops it with Unapply.
func WithPreview(preview bool) Option {
	return func(o *options) {
		o.preview = preview
	}
}

// WithWorkers sets the number of goroutines fitting curves when a request
// simplifies. Zero or negative selects GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}
