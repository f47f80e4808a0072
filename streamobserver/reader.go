package streamobserver

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"

	"github.com/katalvlaran/optimcore/optimerr"
)

// ReadFrame reads one length-prefixed gob-encoded Frame from r. It is the
// counterpart a terminal logger or TCP plotter (external collaborators per
// spec.md §1) would use to decode the stream this package writes.
func ReadFrame(r io.Reader) (Frame, error) {
	var lenPrefix [4]byte
	if _, err := io.ReadFull(r, lenPrefix[:]); err != nil {
		return Frame{}, err // io.EOF propagates unwrapped so callers can loop until EOF
	}
	n := binary.BigEndian.Uint32(lenPrefix[:])
	if n == 0 || n > 64<<20 {
		return Frame{}, optimerr.New(optimerr.Other, fmt.Sprintf("streamobserver: implausible frame length %d", n))
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return Frame{}, optimerr.Wrap(optimerr.Other, "streamobserver: short read on frame body", err)
	}
	var f Frame
	dec := gob.NewDecoder(bytes.NewReader(buf))
	if err := dec.Decode(&f); err != nil {
		return Frame{}, optimerr.Wrap(optimerr.Other, "streamobserver: gob decode failed", err)
	}
	return f, nil
}
