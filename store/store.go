// Package store implements fixed size byte regions that back a ring buffer.
//
// A store never grows or shrinks. The ring buffer addresses it with
// physical slots in [0, Len()) and does all of its wraparound arithmetic
// itself, so a store only has to hand out its memory and release it once
// the buffer is done with it.
package store

import "io"

// Store defines an abstraction for a fixed length region of memory
type Store interface {
	io.Closer
	Bytes() []byte
	Len() int
}
