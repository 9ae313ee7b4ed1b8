// Package search defines the configuration surface, result types, and
// sentinel errors of the motion-primitive graph search engine.
package search

import (
	"errors"
	"runtime"
	"time"

	"github.com/shaoyifei96/motion-primitive/core"
)

// Sentinel errors returned by the search engine.
var (
	// ErrNilGraph indicates that a nil *core.Graph was passed to New.
	ErrNilGraph = errors.New("search: graph is nil")

	// ErrDimensionMismatch indicates that a start or goal state does not
	// match the graph's state dimension.
	ErrDimensionMismatch = errors.New("search: state dimension mismatch")

	// ErrBadThreshold indicates a negative goal distance threshold.
	ErrBadThreshold = errors.New("search: distance threshold must be non-negative")

	// ErrBadWorkers indicates a non-positive parallel worker count.
	ErrBadWorkers = errors.New("search: worker count must be positive")

	// ErrBadResolution indicates a non-positive quantization step.
	ErrBadResolution = errors.New("search: quantization step must be positive")

	// ErrBadHeuristic indicates a heuristic constructor received a
	// non-positive dimension or velocity bound.
	ErrBadHeuristic = errors.New("search: heuristic needs positive dimension and velocity")

	// ErrStartIndexRange indicates that the configured start vertex index
	// is outside the graph's canonical vertex range.
	ErrStartIndexRange = errors.New("search: start vertex index out of range")
)

// Heuristic estimates the remaining cost from state to goal. It must be
// admissible (never overestimate) for the search to return cost-optimal
// paths, and safe for concurrent use when parallel expansion is enabled.
type Heuristic func(state, goal []float64) float64

// CollisionFunc reports whether a world-frame primitive is traversable.
// A nil CollisionFunc treats every primitive as traversable. The function
// must be safe for concurrent use when parallel expansion is enabled.
type CollisionFunc func(p core.Primitive) bool

// Outcome tags how a Search call ended. Exhaustion and cancellation both
// produce empty paths with a nil error; the tag is the only way to tell
// them apart.
type Outcome uint8

const (
	// OutcomeReached means a frontier node satisfied the goal proximity
	// test and a path was reconstructed.
	OutcomeReached Outcome = iota

	// OutcomeTrivial means the start already satisfied the goal proximity
	// test; nothing was expanded.
	OutcomeTrivial

	// OutcomeExhausted means the frontier emptied before any node
	// satisfied the goal proximity test.
	OutcomeExhausted

	// OutcomeCancelled means the context was cancelled mid-search.
	OutcomeCancelled
)

// String returns the lowercase name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeReached:
		return "reached"
	case OutcomeTrivial:
		return "trivial"
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Timings accumulates wall-clock time per search phase. Counters reset at
// the start of every Search call.
type Timings struct {
	// Pop is the time spent extracting frontier minima.
	Pop time.Duration

	// Expand is the time spent generating successor nodes.
	Expand time.Duration

	// Push is the time spent filtering successors against the history and
	// pushing improvements.
	Push time.Duration
}

// Result is the outcome of one Search call.
type Result struct {
	// Primitives is the world-frame path from start to goal, one primitive
	// per hop. Empty unless Outcome is OutcomeReached.
	Primitives []core.Primitive

	// Cost is the accumulated motion cost of the returned path.
	Cost float64

	// Outcome tags how the call ended.
	Outcome Outcome

	// Expanded counts the states closed during the call.
	Expanded int

	// Timings holds the per-phase elapsed-time counters of the call.
	Timings Timings
}

// Options configures a Searcher.
//
// Heuristic  - remaining-cost estimate; ZeroHeuristic by default.
// Collision  - traversability test; nil admits every primitive.
// Step       - quantization cell size for state identity.
// Parallel   - expand the frontier with worker goroutines.
// Workers    - goroutine count for parallel expansion.
// StartIndex - canonical vertex the start state is anchored to.
// Verbose    - print per-call diagnostics via fmt.Printf.
type Options struct {
	Heuristic  Heuristic
	Collision  CollisionFunc
	Step       float64
	Parallel   bool
	Workers    int
	StartIndex int
	Verbose    bool
}

// Option represents a functional option for configuring a Searcher.
type Option func(*Options)

// DefaultOptions returns the baseline configuration: zero heuristic, no
// collision checking, core.DefaultStep quantization, serial expansion with
// runtime.NumCPU() workers on standby, start vertex 0, quiet.
func DefaultOptions() Options {
	return Options{
		Heuristic:  ZeroHeuristic,
		Collision:  nil,
		Step:       core.DefaultStep,
		Parallel:   false,
		Workers:    runtime.NumCPU(),
		StartIndex: 0,
		Verbose:    false,
	}
}

// WithHeuristic sets the remaining-cost estimate. Nil values are ignored,
// keeping the previous heuristic.
func WithHeuristic(h Heuristic) Option {
	return func(o *Options) {
		if h != nil {
			o.Heuristic = h
		}
	}
}

// WithCollisionCheck sets the traversability test applied to every
// world-frame candidate primitive during expansion.
func WithCollisionCheck(f CollisionFunc) Option {
	return func(o *Options) {
		if f != nil {
			o.Collision = f
		}
	}
}

// WithResolution sets the quantization cell size used for state identity.
// Must pass a positive value; zero or negative panic with ErrBadResolution.
func WithResolution(step float64) Option {
	return func(o *Options) {
		if step <= 0 {
			panic(ErrBadResolution.Error())
		}
		o.Step = step
	}
}

// WithParallel enables parallel frontier expansion.
func WithParallel() Option {
	return func(o *Options) {
		o.Parallel = true
	}
}

// WithWorkers sets the goroutine count for parallel expansion. Must pass a
// positive value; zero or negative panic with ErrBadWorkers.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			panic(ErrBadWorkers.Error())
		}
		o.Workers = n
	}
}

// WithStartIndex anchors the start state to the given canonical vertex.
// Range validation against the graph happens in New (ErrStartIndexRange).
func WithStartIndex(i int) Option {
	return func(o *Options) {
		o.StartIndex = i
	}
}

// WithVerbose enables fmt.Printf diagnostics: graph shape at call start,
// frontier and bookkeeping sizes at call end.
func WithVerbose() Option {
	return func(o *Options) {
		o.Verbose = true
	}
}
