package seqring

import "io"

// ReadMode selects whether a read consumes the data it returns
type ReadMode int

// values for ReadMode
const (
	// EraseData advances the read cursor past the returned bytes
	EraseData ReadMode = iota
	// KeepData leaves the read cursor in place so the same bytes are
	// returned again by the next read
	KeepData
)

func (m ReadMode) String() string {
	switch m {
	case EraseData:
		return "EraseData"
	case KeepData:
		return "KeepData"
	}
	return "ReadMode(?)"
}

// Buffer defines the operations of a fixed capacity byte buffer addressed
// by logical indices.
//
// Positions are absolute logical indices starting at the buffer's start
// index, so a transport can use its own sequence numbers directly.
type Buffer interface {
	io.Writer                                    // appends at the write cursor, all or nothing
	Read(p []byte, mode ReadMode) int            // reads up to len(p) bytes from the read cursor
	WriteAt(index uint64, p []byte) (int, error) // writes anywhere inside [kept, kept+capacity)
	SetNextRead(pos uint64) error                // acknowledges bytes returned by KeepData reads
	SetNextWrite(pos uint64) error               // publishes bytes written by WriteAt
	SetKeepIndex(pos uint64) error               // releases space below pos

	UsedSpace() int
	FreeSpace() int
	Readable() int
	LastWritten() uint64
}

var (
	_ Buffer = &RingBuffer{}
	_ Buffer = &SyncRingBuffer{}
	_ Buffer = &MeteredBuffer{}
)
