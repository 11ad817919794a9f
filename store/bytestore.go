package store

import "github.com/pkg/errors"

// ByteStore is a simple wrapper over a heap allocated byte slice
type ByteStore struct {
	buffer []byte
}

// NewByteStore creates a new ByteStore of the specified size
func NewByteStore(n int) (*ByteStore, error) {
	if n <= 0 {
		return nil, errors.Errorf("cannot allocate a store of %d bytes", n)
	}

	return &ByteStore{
		buffer: make([]byte, n),
	}, nil
}

// NewByteStoreSlice creates a new ByteStore using the passed slice
func NewByteStoreSlice(buffer []byte) *ByteStore {
	return &ByteStore{
		buffer: buffer,
	}
}

// Len returns the size of the ByteStore
func (s *ByteStore) Len() int { return len(s.buffer) }

// Bytes returns the internal byte array of the ByteStore
func (s *ByteStore) Bytes() []byte { return s.buffer }

// Close drops the reference to the internal byte array
func (s *ByteStore) Close() error {
	s.buffer = nil
	return nil
}
