package seqring

import "sync"

// SyncRingBuffer is a RingBuffer whose every operation holds an exclusive
// lock, for hosts that share one buffer between goroutines
type SyncRingBuffer struct {
	mu sync.Mutex
	b  *RingBuffer
}

// NewSyncRingBuffer wraps b. b must not be used directly afterwards.
func NewSyncRingBuffer(b *RingBuffer) *SyncRingBuffer {
	return &SyncRingBuffer{b: b}
}

// Write appends p, see RingBuffer.Write
func (s *SyncRingBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

// Read reads into p, see RingBuffer.Read
func (s *SyncRingBuffer) Read(p []byte, mode ReadMode) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Read(p, mode)
}

// WriteAt writes p at index, see RingBuffer.WriteAt
func (s *SyncRingBuffer) WriteAt(index uint64, p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.WriteAt(index, p)
}

// SetNextRead moves the read cursor, see RingBuffer.SetNextRead
func (s *SyncRingBuffer) SetNextRead(pos uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.SetNextRead(pos)
}

// SetNextWrite moves the write cursor, see RingBuffer.SetNextWrite
func (s *SyncRingBuffer) SetNextWrite(pos uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.SetNextWrite(pos)
}

// SetKeepIndex releases space, see RingBuffer.SetKeepIndex
func (s *SyncRingBuffer) SetKeepIndex(pos uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.SetKeepIndex(pos)
}

func (s *SyncRingBuffer) UsedSpace() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.UsedSpace()
}

func (s *SyncRingBuffer) FreeSpace() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.FreeSpace()
}

func (s *SyncRingBuffer) Readable() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Readable()
}

func (s *SyncRingBuffer) LastWritten() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.LastWritten()
}

// Cursors returns a consistent snapshot of all cursors
func (s *SyncRingBuffer) Cursors() Cursors {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Cursors()
}

// Close releases the backing store
func (s *SyncRingBuffer) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Close()
}
