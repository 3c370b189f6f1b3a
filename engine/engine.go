package engine

import (
	"context"
	"errors"
	"time"

	"github.com/gogpu/offset/geom"
)

// Common engine errors.
var (
	// ErrNotAvailable is returned when a requested implementation is not registered.
	ErrNotAvailable = errors.New("engine: not available")

	// ErrTerminated is returned by calls made after Terminate.
	ErrTerminated = errors.New("engine: terminated")

	// ErrTimeout is returned when a worker round trip exceeds Config.Timeout.
	ErrTimeout = errors.New("engine: worker round trip timed out")

	// ErrWrongKind is returned when a request does not match the instance kind.
	ErrWrongKind = errors.New("engine: request does not match instance kind")

	// ErrOpenClip is returned when open paths are added with RoleClip.
	ErrOpenClip = errors.New("engine: open paths must be subject paths")

	// ErrOpenBoolean is returned when a boolean operation is executed with
	// open subject paths.
	ErrOpenBoolean = errors.New("engine: boolean operations need closed paths")

	// ErrExecuteFailed is returned when the clipping computation reports failure.
	ErrExecuteFailed = errors.New("engine: execute failed")
)

// Default configuration values.
const (
	DefaultMiterLimit   = 2.0
	DefaultArcTolerance = 0.25
	DefaultTimeout      = 30 * time.Second
)

// Kind selects the computation an instance performs.
type Kind uint8

const (
	// KindOffset displaces paths by a signed delta.
	KindOffset Kind = iota

	// KindBoolean combines subject and clip paths.
	KindBoolean
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindOffset:
		return "offset"
	case KindBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// JoinType is the corner geometry between two offset edges.
type JoinType uint8

const (
	JoinSquare JoinType = iota
	JoinRound
	JoinMiter
)

// String returns the join name.
func (j JoinType) String() string {
	switch j {
	case JoinSquare:
		return "square"
	case JoinRound:
		return "round"
	case JoinMiter:
		return "miter"
	default:
		return "unknown"
	}
}

// EndType controls how path ends are offset.
type EndType uint8

const (
	// EndClosedPolygon offsets a closed path as a filled polygon.
	EndClosedPolygon EndType = iota

	// EndClosedLine offsets a closed path as a line, producing a band.
	EndClosedLine

	EndOpenButt
	EndOpenSquare
	EndOpenRound
)

// String returns the end type name.
func (e EndType) String() string {
	switch e {
	case EndClosedPolygon:
		return "closed-polygon"
	case EndClosedLine:
		return "closed-line"
	case EndOpenButt:
		return "open-butt"
	case EndOpenSquare:
		return "open-square"
	case EndOpenRound:
		return "open-round"
	default:
		return "unknown"
	}
}

// IsClosed reports whether the end type treats paths as closed loops.
func (e EndType) IsClosed() bool {
	return e == EndClosedPolygon || e == EndClosedLine
}

// ClipType is a boolean operation.
type ClipType uint8

const (
	ClipIntersection ClipType = iota
	ClipUnion
	ClipDifference
	ClipXor
)

// String returns the operation name.
func (c ClipType) String() string {
	switch c {
	case ClipIntersection:
		return "intersection"
	case ClipUnion:
		return "union"
	case ClipDifference:
		return "difference"
	case ClipXor:
		return "xor"
	default:
		return "unknown"
	}
}

// FillRule decides which regions count as inside.
type FillRule uint8

const (
	FillEvenOdd FillRule = iota
	FillNonZero
	FillPositive
	FillNegative
)

// String returns the fill rule name.
func (f FillRule) String() string {
	switch f {
	case FillEvenOdd:
		return "evenodd"
	case FillNonZero:
		return "nonzero"
	case FillPositive:
		return "positive"
	case FillNegative:
		return "negative"
	default:
		return "unknown"
	}
}

// Role marks paths as subject or clip for boolean instances.
type Role uint8

const (
	RoleSubject Role = iota
	RoleClip
)

// String returns the role name.
func (r Role) String() string {
	if r == RoleClip {
		return "clip"
	}
	return "subject"
}

// Config holds the constructor arguments of an instance.
type Config struct {
	Kind Kind

	// MiterLimit and ArcTolerance apply to offset instances. Zero selects
	// the default. ArcTolerance is in scaled units.
	MiterLimit   float64
	ArcTolerance float64

	// Timeout bounds each worker round trip. Zero selects DefaultTimeout.
	Timeout time.Duration
}

// withDefaults fills zero fields with default values.
func (c Config) withDefaults() Config {
	if c.MiterLimit <= 0 {
		c.MiterLimit = DefaultMiterLimit
	}
	if c.ArcTolerance <= 0 {
		c.ArcTolerance = DefaultArcTolerance
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// AddRequest submits paths to an instance.
type AddRequest struct {
	Paths geom.Paths

	// Join and End apply to offset instances.
	Join JoinType
	End  EndType

	// Role and Closed apply to boolean instances.
	Role   Role
	Closed bool
}

// ExecuteRequest triggers the computation.
type ExecuteRequest struct {
	// Delta is the offset distance in scaled units (offset instances).
	Delta float64

	// Clip and the fill rules apply to boolean instances.
	Clip        ClipType
	SubjectFill FillRule
	ClipFill    FillRule
}

// Engine is a polygon offset or boolean computation.
//
// AddPaths only accumulates input. Execute computes the result from the
// accumulated input and consumes it, so the next Execute starts empty.
// Terminate must be called exactly once after the last use; later calls
// return ErrTerminated.
type Engine interface {
	// Name returns the implementation identifier (e.g., "worker").
	Name() string

	// Kind returns the instance kind.
	Kind() Kind

	AddPaths(ctx context.Context, req AddRequest) error
	Execute(ctx context.Context, req ExecuteRequest) (geom.Paths, error)
	Terminate()
}
