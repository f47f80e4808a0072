// SPDX-License-Identifier: MIT
// Package streamobserver implements the reference streaming Observer
// (spec.md §6): length-prefixed frames of a tagged union, shipped over TCP
// on DefaultPort. Framing uses encoding/gob (teacher has no existing
// wire-format dependency to reuse; gob is the standard-library choice for
// a length-prefixed tagged union and is justified in DESIGN.md since no
// pack example ships a more specific binary framing library).
package streamobserver

// DefaultPort is the reference observer's default TCP port.
const DefaultPort = 5498

// Kind tags which frame variant a Frame carries.
type Kind uint8

const (
	KindNewRun Kind = iota
	KindSamples
	KindFuncCounts
	KindParam
	KindBestParam
	KindTermination
)

// NewRunFrame announces a run's static configuration.
type NewRunFrame struct {
	Name        string
	Solver      string
	MaxIter     int
	TargetCost  float64
	InitParam   []float64
	HasInit     bool
	Settings    map[string]string
	Selected    []string
}

// SamplesFrame carries per-iteration scalar kv samples.
type SamplesFrame struct {
	Name              string
	Iter              int
	TimeNanos         int64
	TerminationStatus string
	KV                map[string]float64
}

// FuncCountsFrame carries per-iteration capability call counts.
type FuncCountsFrame struct {
	Name string
	Iter int
	KV   map[string]uint64
}

// ParamFrame carries the current parameter vector.
type ParamFrame struct {
	Name  string
	Iter  int
	Param []float64
}

// BestParamFrame carries the best-so-far parameter vector.
type BestParamFrame struct {
	Name  string
	Iter  int
	Param []float64
}

// TerminationFrame closes the stream.
type TerminationFrame struct {
	Name              string
	TerminationStatus string
}

// Frame is the tagged union sent over the wire: exactly one of the
// pointer fields matching Kind is non-nil.
type Frame struct {
	Kind        Kind
	NewRun      *NewRunFrame
	Samples     *SamplesFrame
	FuncCounts  *FuncCountsFrame
	Param       *ParamFrame
	BestParam   *BestParamFrame
	Termination *TerminationFrame
}
