package offset

import (
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/offset/document"
)

// Mode selects the direction and merge behavior of an offset.
type Mode uint8

const (
	// ModeOutward grows every element and merges the results into one
	// outline.
	ModeOutward Mode = iota

	// ModeInward offsets every element as a band and keeps only the loops
	// that lie inside another loop.
	ModeInward

	// ModeExpand grows every element and keeps all results.
	ModeExpand

	// ModeShrink shrinks every element and keeps all results.
	ModeShrink
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeOutward:
		return "outward"
	case ModeInward:
		return "inward"
	case ModeExpand:
		return "expand"
	case ModeShrink:
		return "shrink"
	default:
		return "unknown"
	}
}

// Sign returns the sign applied to the offset distance:
// -1 for shrink, +1 otherwise.
func (m Mode) Sign() float64 {
	if m == ModeShrink {
		return -1
	}
	return 1
}

func (m Mode) valid() bool { return m <= ModeShrink }

// ParseMode returns the mode with the given name.
func ParseMode(s string) (Mode, error) {
	for m := ModeOutward; m <= ModeShrink; m++ {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidRequest, s)
}

// CornerType selects how corners are joined.
type CornerType uint8

const (
	// CornerRound joins with arcs.
	CornerRound CornerType = iota

	// CornerSharp joins with miters.
	CornerSharp
)

// String returns the corner type name.
func (c CornerType) String() string {
	switch c {
	case CornerRound:
		return "round"
	case CornerSharp:
		return "sharp"
	default:
		return "unknown"
	}
}

func (c CornerType) valid() bool { return c <= CornerSharp }

// ParseCorner returns the corner type with the given name.
func ParseCorner(s string) (CornerType, error) {
	for c := CornerRound; c <= CornerSharp; c++ {
		if strings.EqualFold(s, c.String()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown corner type %q", ErrInvalidRequest, s)
}

// Request describes one offset invocation.
type Request struct {
	// Elements to offset. When empty the canvas selection is used.
	Elements []*document.Element

	Mode   Mode
	Corner CornerType

	// Distance is the offset distance in working units. It must be positive.
	Distance float64

	// Simplify fits curves to the result instead of emitting line segments.
	Simplify bool
}

func (r Request) validate() error {
	switch {
	case !r.Mode.valid():
		return fmt.Errorf("%w: mode %d", ErrInvalidRequest, r.Mode)
	case !r.Corner.valid():
		return fmt.Errorf("%w: corner type %d", ErrInvalidRequest, r.Corner)
	case math.IsNaN(r.Distance) || math.IsInf(r.Distance, 0) || r.Distance <= 0:
		return fmt.Errorf("%w: distance %v", ErrInvalidRequest, r.Distance)
	}
	return nil
}

// Result is the outcome of a successful invocation.
type Result struct {
	// Element is the created path.
	Element *document.Element

	// Command is the applied batch that created Element.
	Command *document.BatchCommand

	// Committed reports whether Command was added to history.
	// It is false in preview mode.
	Committed bool
}

// OutcomeKind tags the result of the per-element stage.
type OutcomeKind uint8

const (
	OutcomeOK OutcomeKind = iota
	OutcomeUnsupported
	OutcomeFailed
)

// String returns the outcome name.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeOK:
		return "ok"
	case OutcomeUnsupported:
		return "unsupported"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of submitting one element to an engine.
type Outcome struct {
	Kind OutcomeKind
	Err  error
}

func unsupported(err error) Outcome { return Outcome{Kind: OutcomeUnsupported, Err: err} }

func failed(err error) Outcome { return Outcome{Kind: OutcomeFailed, Err: err} }

// state is a stage of an invocation.
type state uint8

const (
	stateIdle state = iota
	stateValidating
	statePerElementOffsetting
	stateHierarchyFiltering
	stateUnioning
	statePassThrough
	statePathBuilding
	stateApplying
	stateDone
	stateError
)

var stateNames = [...]string{
	stateIdle:                 "Idle",
	stateValidating:           "Validating",
	statePerElementOffsetting: "PerElementOffsetting",
	stateHierarchyFiltering:   "HierarchyFiltering",
	stateUnioning:             "Unioning",
	statePassThrough:          "PassThrough",
	statePathBuilding:         "PathBuilding",
	stateApplying:             "Applying",
	stateDone:                 "Done",
	stateError:                "Error",
}

func (s state) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}
