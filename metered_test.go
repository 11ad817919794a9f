package seqring

import (
	"bytes"
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeteredBuffer(t *testing.T) {
	m := NewMeteredBuffer(newTestBuffer(t, 16, 0))

	n, err := m.Write([]byte("abcd"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = m.WriteAt(8, []byte("ij"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, uint64(9), m.LastWritten())

	_, err = m.Write(make([]byte, 13))
	assert.Equal(t, ErrCapacityExceeded, errors.Cause(err))

	_, err = m.WriteAt(17, []byte("x"))
	assert.Equal(t, ErrCapacityExceeded, errors.Cause(err))

	out := make([]byte, 8)
	assert.Equal(t, 4, m.Read(out, KeepData))
	assert.Equal(t, 4, m.Readable())
	assert.Equal(t, 4, m.Read(out, EraseData))
	assert.Equal(t, 0, m.Read(out, EraseData))

	assert.Equal(t, ErrInvalidCursor, errors.Cause(m.SetNextRead(5)))
	assert.Equal(t, ErrInvalidCursor, errors.Cause(m.SetNextWrite(11)))
	assert.Equal(t, ErrInvalidCursor, errors.Cause(m.SetKeepIndex(5)))
	require.NoError(t, m.SetKeepIndex(4))

	_, err = m.WriteAt(3, []byte("x"))
	assert.Equal(t, ErrInvalidOffset, errors.Cause(err))

	assert.Equal(t, 0, m.UsedSpace())
	assert.Equal(t, 16, m.FreeSpace())

	s := m.Stats()
	assert.Equal(t, int64(6), s.WriteBytes)
	assert.Equal(t, int64(8), s.ReadBytes)
	assert.Equal(t, int64(1), s.EmptyReads)
	assert.Equal(t, int64(2), s.CapacityExceeded)
	assert.Equal(t, int64(1), s.InvalidOffset)
	assert.Equal(t, int64(3), s.InvalidCursor)

	assert.Equal(t, int64(2), s.WriteSize.Count)
	assert.Equal(t, int64(2), s.WriteSize.Min)
	assert.Equal(t, int64(4), s.WriteSize.Max)
	assert.Equal(t, int64(2), s.ReadSize.Count)
	assert.Equal(t, int64(4), s.ReadSize.Max)
	assert.Equal(t, int64(2), s.Used.Count)
	assert.Equal(t, int64(4), s.Used.Max)

	m.Reset()
	assert.Equal(t, Stats{}, m.Stats())
}

func TestMeteredBufferLogsRejections(t *testing.T) {
	var out bytes.Buffer
	SetLogWriters(&out)
	EnableLogging(true)
	defer func() {
		EnableLogging(false)
		SetLogWriters(os.Stdout)
	}()

	m := NewMeteredBuffer(NewSyncRingBuffer(newTestBuffer(t, 4, 0)))
	_, err := m.Write([]byte("abcde"))
	require.Error(t, err)

	assert.Contains(t, out.String(), "operation rejected")
	assert.Contains(t, out.String(), "capacity exceeded")
}
