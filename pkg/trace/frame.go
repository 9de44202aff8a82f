// pkg/trace/frame.go
package trace

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Body is one body's node positions in a frame, pinned end last
type Body struct {
	Name   string       `json:"name"`
	Points [][2]float64 `json:"points"`
}

// Frame is one recorded tick
type Frame struct {
	Session   string `json:"session"`
	Tick      uint64 `json:"tick"`
	Timestamp int64  `json:"ts"`
	Scene     string `json:"scene"`
	Gesture   string `json:"gesture"`
	Bodies    []Body `json:"bodies"`
	// Checksum is the hex xxhash64 of every coordinate's IEEE-754 bits, so two
	// runs can be compared without diffing positions.
	Checksum string `json:"checksum"`
}

// Sum hashes the frame's body coordinates
func (f *Frame) Sum() uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, b := range f.Bodies {
		_, _ = d.WriteString(b.Name)
		for _, p := range b.Points {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(p[0]))
			_, _ = d.Write(buf[:])
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(p[1]))
			_, _ = d.Write(buf[:])
		}
	}
	return d.Sum64()
}

// Seal fills in the checksum
func (f *Frame) Seal() {
	f.Checksum = strconv.FormatUint(f.Sum(), 16)
}
