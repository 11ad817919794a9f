package seqring

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/seqring/seqring/store"
)

// RingBuffer is a fixed capacity byte buffer with four logical cursors.
//
// All positions live in an unbounded logical index space that begins at the
// start index passed on construction. A logical index i is stored in the
// physical slot i % Capacity() of the backing store. The cursors always
// satisfy
//
//	start <= kept <= nextRead <= nextWrite <= lastWritten+1
//	lastWritten+1 - kept <= capacity
//
// and never move backward. Bytes below kept may be overwritten, bytes in
// [nextRead, nextWrite) are readable and bytes in [nextWrite, lastWritten]
// may have been filled by WriteAt but are not readable until SetNextWrite
// publishes them.
//
// A RingBuffer is not safe for concurrent use, see SyncRingBuffer.
type RingBuffer struct {
	store    store.Store
	buf      []byte
	capacity uint64
	start    uint64

	kept      uint64
	nextRead  uint64
	nextWrite uint64
	end       uint64 // one past the highest written index
}

// NewRingBuffer creates a heap backed RingBuffer of capacity bytes whose
// logical index space begins at start
func NewRingBuffer(capacity int, start uint64) (*RingBuffer, error) {
	if capacity <= 0 {
		return nil, errors.Wrapf(ErrInvalidCapacity, "cannot create a buffer of %d bytes", capacity)
	}

	s, err := store.NewByteStore(capacity)
	if err != nil {
		return nil, err
	}

	return NewRingBufferStore(s, start)
}

// NewRingBufferStore creates a RingBuffer over the passed store. The buffer
// capacity is the length of the store, and the buffer takes ownership of it.
func NewRingBufferStore(s store.Store, start uint64) (*RingBuffer, error) {
	if s == nil || s.Len() <= 0 {
		return nil, errors.Wrap(ErrInvalidCapacity, "store has no space")
	}

	return &RingBuffer{
		store:     s,
		buf:       s.Bytes(),
		capacity:  uint64(s.Len()),
		start:     start,
		kept:      start,
		nextRead:  start,
		nextWrite: start,
		end:       start,
	}, nil
}

// Capacity returns the fixed size of the buffer
func (b *RingBuffer) Capacity() int { return int(b.capacity) }

// Start returns the logical origin of the buffer
func (b *RingBuffer) Start() uint64 { return b.start }

// Kept returns the lowest logical index still protected from overwrites
func (b *RingBuffer) Kept() uint64 { return b.kept }

// NextRead returns the logical index the next consuming read starts at
func (b *RingBuffer) NextRead() uint64 { return b.nextRead }

// NextWrite returns the logical index the next sequential write starts at
func (b *RingBuffer) NextWrite() uint64 { return b.nextWrite }

// LastWritten returns the highest logical index written so far, or
// Start()-1 when nothing has been written
func (b *RingBuffer) LastWritten() uint64 { return b.end - 1 }

// UsedSpace returns the number of bytes written and not yet released
func (b *RingBuffer) UsedSpace() int { return int(b.nextWrite - b.kept) }

// FreeSpace returns the number of bytes a sequential write can take
func (b *RingBuffer) FreeSpace() int { return int(b.capacity - (b.nextWrite - b.kept)) }

// Readable returns the number of bytes a read can return right now
func (b *RingBuffer) Readable() int { return int(b.nextWrite - b.nextRead) }

func (b *RingBuffer) slot(index uint64) int { return int(index % b.capacity) }

// copyIn and copyOut split at the physical end of the store,
// len(p) must not exceed the capacity
func (b *RingBuffer) copyIn(index uint64, p []byte) {
	n := copy(b.buf[b.slot(index):], p)
	copy(b.buf, p[n:])
}

func (b *RingBuffer) copyOut(index uint64, p []byte) {
	n := copy(p, b.buf[b.slot(index):])
	copy(p[n:], b.buf)
}

// Write appends p at the write cursor. Either all of p is written or,
// if p does not fit in FreeSpace, nothing is and ErrCapacityExceeded is
// returned.
func (b *RingBuffer) Write(p []byte) (int, error) {
	l := len(p)
	if l > b.FreeSpace() {
		return 0, errors.Wrapf(ErrCapacityExceeded, "write of %d bytes with %d free", l, b.FreeSpace())
	}

	b.copyIn(b.nextWrite, p)
	b.nextWrite += uint64(l)
	if b.nextWrite > b.end {
		b.end = b.nextWrite
	}

	return l, nil
}

// MustWrite is a Write that will panic if p cannot be written
func (b *RingBuffer) MustWrite(p []byte) {
	if _, err := b.Write(p); err != nil {
		panic(err)
	}
}

// Read copies up to len(p) readable bytes into p and returns how many were
// copied. Reading from an empty buffer returns 0.
//
// With EraseData the read cursor moves past the returned bytes. With
// KeepData it stays, and the same bytes are returned again until
// SetNextRead acknowledges them. Read never moves the kept watermark.
func (b *RingBuffer) Read(p []byte, mode ReadMode) int {
	n := len(p)
	if r := b.Readable(); n > r {
		n = r
	}

	if n == 0 {
		return 0
	}

	b.copyOut(b.nextRead, p[:n])
	if mode == EraseData {
		b.nextRead += uint64(n)
	}

	return n
}

// SetNextRead moves the read cursor forward to pos, which must lie in
// [NextRead(), NextWrite()]
func (b *RingBuffer) SetNextRead(pos uint64) error {
	if pos < b.nextRead || pos > b.nextWrite {
		return errors.Wrapf(ErrInvalidCursor, "next read %d outside [%d, %d]", pos, b.nextRead, b.nextWrite)
	}

	b.nextRead = pos
	return nil
}

// WriteAt copies p at the logical index, without moving the write cursor.
// The whole write must land in [Kept(), Kept()+Capacity()).
func (b *RingBuffer) WriteAt(index uint64, p []byte) (int, error) {
	if index < b.kept {
		return 0, errors.Wrapf(ErrInvalidOffset, "index %d precedes kept index %d", index, b.kept)
	}

	l, off := uint64(len(p)), index-b.kept
	if off > b.capacity || l > b.capacity-off {
		return 0, errors.Wrapf(ErrCapacityExceeded, "write of %d bytes at %d outside [%d, %d)", len(p), index, b.kept, b.kept+b.capacity)
	}

	if l == 0 {
		return 0, nil
	}

	b.copyIn(index, p)
	if e := index + l; e > b.end {
		b.end = e
	}

	return len(p), nil
}

// MustWriteAt is a WriteAt that will panic on error
func (b *RingBuffer) MustWriteAt(index uint64, p []byte) {
	if _, err := b.WriteAt(index, p); err != nil {
		panic(err)
	}
}

// SetNextWrite moves the write cursor forward to pos, making everything
// before it readable. pos must lie in [NextWrite(), LastWritten()+1]. The
// caller is responsible for knowing that the range has no holes.
func (b *RingBuffer) SetNextWrite(pos uint64) error {
	if pos < b.nextWrite || pos > b.end {
		return errors.Wrapf(ErrInvalidCursor, "next write %d outside [%d, %d]", pos, b.nextWrite, b.end)
	}

	b.nextWrite = pos
	return nil
}

// SetKeepIndex releases everything below pos for reuse. pos must lie in
// [Kept(), NextRead()].
func (b *RingBuffer) SetKeepIndex(pos uint64) error {
	if pos < b.kept || pos > b.nextRead {
		return errors.Wrapf(ErrInvalidCursor, "keep index %d outside [%d, %d]", pos, b.kept, b.nextRead)
	}

	b.kept = pos
	return nil
}

// Close releases the backing store. The buffer must not be used afterwards.
func (b *RingBuffer) Close() error {
	b.buf = nil
	return b.store.Close()
}

// Cursors is a snapshot of the logical state of a RingBuffer
type Cursors struct {
	Capacity    int
	Start       uint64
	Kept        uint64
	NextRead    uint64
	NextWrite   uint64
	LastWritten uint64
}

func (c Cursors) String() string {
	return fmt.Sprintf("capacity=%d start=%d kept=%d read=%d write=%d last=%d",
		c.Capacity, c.Start, c.Kept, c.NextRead, c.NextWrite, int64(c.LastWritten))
}

// Cursors returns the current cursor positions
func (b *RingBuffer) Cursors() Cursors {
	return Cursors{
		Capacity:    b.Capacity(),
		Start:       b.start,
		Kept:        b.kept,
		NextRead:    b.nextRead,
		NextWrite:   b.nextWrite,
		LastWritten: b.LastWritten(),
	}
}
