package seqring

import (
	"sync"

	"github.com/codahale/hdrhistogram"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// HistogramSummary holds a few values of a recorded distribution
type HistogramSummary struct {
	Count int64
	Min   int64
	Max   int64
	Mean  float64
	P50   int64
	P99   int64
}

func summarize(h *hdrhistogram.Histogram) HistogramSummary {
	if h.TotalCount() == 0 {
		return HistogramSummary{}
	}

	return HistogramSummary{
		Count: h.TotalCount(),
		Min:   h.Min(),
		Max:   h.Max(),
		Mean:  h.Mean(),
		P50:   h.ValueAtQuantile(50),
		P99:   h.ValueAtQuantile(99),
	}
}

// Stats is a snapshot of the activity seen by a MeteredBuffer
type Stats struct {
	WriteBytes int64 // bytes accepted by Write and WriteAt
	ReadBytes  int64 // bytes returned by Read, in either mode
	EmptyReads int64

	CapacityExceeded int64
	InvalidOffset    int64
	InvalidCursor    int64

	WriteSize HistogramSummary // sizes of successful non empty writes
	ReadSize  HistogramSummary // sizes of non empty reads
	Used      HistogramSummary // used space after each successful write
}

// MeteredBuffer wraps a Buffer and records the size of every transfer and
// every rejected operation.
//
// The recording is guarded by its own lock, the wrapped Buffer still
// decides whether concurrent calls are allowed.
type MeteredBuffer struct {
	b Buffer

	mu    sync.Mutex
	stats Stats
	write *hdrhistogram.Histogram
	read  *hdrhistogram.Histogram
	used  *hdrhistogram.Histogram
}

// NewMeteredBuffer wraps b
func NewMeteredBuffer(b Buffer) *MeteredBuffer {
	highest := int64(b.UsedSpace() + b.FreeSpace())

	return &MeteredBuffer{
		b:     b,
		write: hdrhistogram.New(1, highest, 3),
		read:  hdrhistogram.New(1, highest, 3),
		used:  hdrhistogram.New(1, highest, 3),
	}
}

func (m *MeteredBuffer) recordWrite(n int, err error) {
	if err != nil {
		m.reject("write", err)
		return
	}

	if n == 0 {
		return
	}

	used := m.b.UsedSpace()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.stats.WriteBytes += int64(n)
	_ = m.write.RecordValue(int64(n))
	if used > 0 {
		_ = m.used.RecordValue(int64(used))
	}
}

func (m *MeteredBuffer) reject(op string, err error) {
	m.mu.Lock()
	switch errors.Cause(err) {
	case ErrCapacityExceeded:
		m.stats.CapacityExceeded++
	case ErrInvalidOffset:
		m.stats.InvalidOffset++
	case ErrInvalidCursor:
		m.stats.InvalidCursor++
	}
	m.mu.Unlock()

	if logging {
		logger.Warn("operation rejected",
			zap.String("module", "metered"),
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

// Write appends p to the wrapped buffer
func (m *MeteredBuffer) Write(p []byte) (int, error) {
	n, err := m.b.Write(p)
	m.recordWrite(n, err)
	return n, err
}

// WriteAt writes p at index in the wrapped buffer
func (m *MeteredBuffer) WriteAt(index uint64, p []byte) (int, error) {
	n, err := m.b.WriteAt(index, p)
	m.recordWrite(n, err)
	return n, err
}

// Read reads from the wrapped buffer
func (m *MeteredBuffer) Read(p []byte, mode ReadMode) int {
	n := m.b.Read(p, mode)

	m.mu.Lock()
	defer m.mu.Unlock()

	if n == 0 {
		m.stats.EmptyReads++
		return 0
	}

	m.stats.ReadBytes += int64(n)
	_ = m.read.RecordValue(int64(n))

	return n
}

// SetNextRead moves the read cursor of the wrapped buffer
func (m *MeteredBuffer) SetNextRead(pos uint64) error {
	err := m.b.SetNextRead(pos)
	if err != nil {
		m.reject("set next read", err)
	}
	return err
}

// SetNextWrite moves the write cursor of the wrapped buffer
func (m *MeteredBuffer) SetNextWrite(pos uint64) error {
	err := m.b.SetNextWrite(pos)
	if err != nil {
		m.reject("set next write", err)
	}
	return err
}

// SetKeepIndex moves the kept watermark of the wrapped buffer
func (m *MeteredBuffer) SetKeepIndex(pos uint64) error {
	err := m.b.SetKeepIndex(pos)
	if err != nil {
		m.reject("set keep index", err)
	}
	return err
}

func (m *MeteredBuffer) UsedSpace() int      { return m.b.UsedSpace() }
func (m *MeteredBuffer) FreeSpace() int      { return m.b.FreeSpace() }
func (m *MeteredBuffer) Readable() int       { return m.b.Readable() }
func (m *MeteredBuffer) LastWritten() uint64 { return m.b.LastWritten() }

// Stats returns a snapshot of everything recorded so far
func (m *MeteredBuffer) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.stats
	s.WriteSize = summarize(m.write)
	s.ReadSize = summarize(m.read)
	s.Used = summarize(m.used)

	return s
}

// Reset clears all recorded values
func (m *MeteredBuffer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stats = Stats{}
	m.write.Reset()
	m.read.Reset()
	m.used.Reset()
}
