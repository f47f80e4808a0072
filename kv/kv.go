// SPDX-License-Identifier: MIT
// Package kv implements the ordered key/value log solvers emit per
// iteration for observation (spec.md §4.4's kv, GLOSSARY's "KV"): an
// insertion-ordered sequence of (name, value) pairs, distinct from a plain
// map so observers see a deterministic, solver-chosen field order.
package kv

// Pair is a single named value in a Log.
type Pair struct {
	Name  string
	Value any
}

// Log is an insertion-ordered sequence of (name, value) pairs; pairs are
// never removed, and re-setting a name overwrites its value in place.
type Log struct {
	pairs []Pair
}

// New returns an empty Log.
func New() *Log {
	return &Log{}
}

// Set appends (name, value), or overwrites value in place if name was
// already set earlier in this Log (keeping its original position — the
// common case is solvers calling Set once per name per iteration).
func (l *Log) Set(name string, value any) *Log {
	for i, p := range l.pairs {
		if p.Name == name {
			l.pairs[i].Value = value
			return l
		}
	}
	l.pairs = append(l.pairs, Pair{Name: name, Value: value})
	return l
}

// Pairs returns the ordered pairs. The returned slice aliases the Log's
// storage and must not be mutated by callers.
func (l *Log) Pairs() []Pair {
	return l.pairs
}

// Get returns the value for name and whether it was present.
func (l *Log) Get(name string) (any, bool) {
	for _, p := range l.pairs {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

// Merge Sets every pair of other onto l, in other's order: names new to l
// are appended after l's own pairs, names l already holds are overwritten
// in place (used to combine a solver's kv with the Executor's core kv,
// spec.md §4.8 steps 2/3c).
func (l *Log) Merge(other *Log) *Log {
	if other == nil {
		return l
	}
	for _, p := range other.pairs {
		l.Set(p.Name, p.Value)
	}
	return l
}

// AsMap flattens the Log to a plain map, losing order. The streamobserver
// frames build their own maps and do not call it.
func (l *Log) AsMap() map[string]any {
	out := make(map[string]any, len(l.pairs))
	for _, p := range l.pairs {
		out[p.Name] = p.Value
	}
	return out
}
