// SPDX-License-Identifier: MIT
// Package checkpoint implements the reference Checkpointer (spec.md §4.6):
// save/load a (solver, state) pair at `<dir>/<name>.ckpt`, as a versioned
// envelope (gopkg.in/yaml.v3-encoded header carrying a format version and a
// github.com/google/uuid run ID) followed by a gob-encoded payload.
// Grounded on the teacher's "options with strong validation, fail fast"
// ethos (builder/options.go, matrix/options.go) applied to envelope
// validation: an unknown version surfaces CheckpointCorrupt rather than
// attempting a best-effort decode.
package checkpoint

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/optimcore/optimerr"
)

// FormatVersion is the current envelope version this package writes and
// the only version it accepts on load without surfacing CheckpointCorrupt.
const FormatVersion = 1

// envelope is the yaml-encoded header written before the gob payload.
type envelope struct {
	Version int    `yaml:"version"`
	RunID   string `yaml:"run_id"`
}

// Frequency selects when the Executor invokes Save.
type Frequency struct {
	kind freqKind
	n    int
}

type freqKind int

const (
	never freqKind = iota
	always
	every
)

// Never disables checkpointing.
func Never() Frequency { return Frequency{kind: never} }

// Always checkpoints every iteration.
func Always() Frequency { return Frequency{kind: always} }

// Every checkpoints when iter % n == 0. Panics if n <= 0.
func Every(n int) Frequency {
	if n <= 0 {
		panic("checkpoint: Every: n must be > 0")
	}
	return Frequency{kind: every, n: n}
}

// Fires reports whether this Frequency triggers a save at iter.
func (f Frequency) Fires(iter int) bool {
	switch f.kind {
	case never:
		return false
	case always:
		return true
	case every:
		return iter%f.n == 0
	default:
		return false
	}
}

// Checkpointer persists and restores a state snapshot, serialized by the
// caller into an opaque byte payload (the Checkpointer itself doesn't know
// the payload's shape — see Save/Load's []byte parameter; EncodeGob/DecodeGob
// below are convenience helpers for gob-encoding a concrete payload type).
type Checkpointer struct {
	dir  string
	name string
}

// New returns a Checkpointer writing to <dir>/<name>.ckpt.
func New(dir, name string) *Checkpointer {
	return &Checkpointer{dir: dir, name: name}
}

func (c *Checkpointer) path() string {
	return filepath.Join(c.dir, c.name+".ckpt")
}

// Save writes payload under a fresh envelope, creating dir if needed.
func (c *Checkpointer) Save(payload []byte) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return optimerr.Wrap(optimerr.Other, "checkpoint: Save: mkdir failed", err)
	}
	env := envelope{Version: FormatVersion, RunID: uuid.New().String()}
	header, err := yaml.Marshal(env)
	if err != nil {
		return optimerr.Wrap(optimerr.Other, "checkpoint: Save: envelope marshal failed", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(header)
	buf.WriteString("---\n")
	buf.Write(payload)

	tmp := c.path() + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return optimerr.Wrap(optimerr.Other, "checkpoint: Save: write failed", err)
	}
	if err := os.Rename(tmp, c.path()); err != nil {
		return optimerr.Wrap(optimerr.Other, "checkpoint: Save: rename failed", err)
	}
	return nil
}

// Load reads and validates the envelope, returning the raw payload bytes.
// Fails with CheckpointNotFound if the file does not exist, or
// CheckpointCorrupt if the envelope is malformed or carries an unknown
// version.
func (c *Checkpointer) Load() ([]byte, error) {
	raw, err := os.ReadFile(c.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, optimerr.New(optimerr.CheckpointNotFound, fmt.Sprintf("checkpoint: no checkpoint at %s", c.path()))
		}
		return nil, optimerr.Wrap(optimerr.Other, "checkpoint: Load: read failed", err)
	}

	const sep = "---\n"
	if !bytes.HasPrefix(raw, []byte(sep)) {
		return nil, optimerr.New(optimerr.CheckpointCorrupt, "checkpoint: Load: missing envelope header")
	}
	rest := raw[len(sep):]
	idx := bytes.Index(rest, []byte(sep))
	if idx < 0 {
		return nil, optimerr.New(optimerr.CheckpointCorrupt, "checkpoint: Load: malformed envelope (no closing marker)")
	}
	header := rest[:idx]
	payload := rest[idx+len(sep):]

	var env envelope
	if err := yaml.Unmarshal(header, &env); err != nil {
		return nil, optimerr.Wrap(optimerr.CheckpointCorrupt, "checkpoint: Load: envelope unmarshal failed", err)
	}
	if env.Version != FormatVersion {
		return nil, optimerr.New(optimerr.CheckpointCorrupt, fmt.Sprintf("checkpoint: Load: unknown format version %d", env.Version))
	}
	return payload, nil
}

// EncodeGob is a convenience helper for callers that want to serialize a
// (solver, state) pair with encoding/gob before calling Save.
func EncodeGob(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, optimerr.Wrap(optimerr.Other, "checkpoint: EncodeGob failed", err)
	}
	return buf.Bytes(), nil
}

// DecodeGob is EncodeGob's counterpart, decoding into dst (a pointer).
func DecodeGob(payload []byte, dst any) error {
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(dst); err != nil {
		return optimerr.Wrap(optimerr.CheckpointCorrupt, "checkpoint: DecodeGob failed", err)
	}
	return nil
}
