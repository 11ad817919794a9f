package store

import (
	"os"
	"path"

	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
)

// MappedStore is a ByteStore whose memory is a shared mapping of a file,
// so the region can be inspected from outside the process
type MappedStore struct {
	*ByteStore
	m      mmap.MMap
	f      *os.File
	loc    string // location of the memory mapped file
	size   int    // size in bytes
	remove bool   // delete the file on Close
}

// NewMappedStore will create and return a new instance of a MappedStore.
// Any existing file at loc is replaced. If remove is true the file is
// deleted when the store is closed.
func NewMappedStore(loc string, size int, remove bool) (*MappedStore, error) {
	if size <= 0 {
		return nil, errors.Errorf("cannot map a store of %d bytes", size)
	}

	if _, err := os.Stat(loc); err == nil {
		if err = os.Remove(loc); err != nil {
			return nil, errors.Wrap(err, "cannot remove stale mapping")
		}
	}

	// ensure destination directory exists
	if err := os.MkdirAll(path.Dir(loc), 0700); err != nil {
		return nil, errors.Wrap(err, "cannot create mapping directory")
	}

	f, err := os.OpenFile(loc, os.O_CREATE|os.O_RDWR|os.O_EXCL, 0644)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create mapping file")
	}

	if err = f.Truncate(int64(size)); err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "could not initialize %d bytes", size)
	}

	m, err := mmap.MapRegion(f, size, mmap.RDWR, 0, 0)
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "cannot map file")
	}

	return &MappedStore{
		ByteStore: NewByteStoreSlice(m),
		m:         m,
		f:         f,
		loc:       loc,
		size:      size,
		remove:    remove,
	}, nil
}

// Location returns the path of the mapped file
func (s *MappedStore) Location() string { return s.loc }

// Flush writes the mapped region back to the file
func (s *MappedStore) Flush() error { return s.m.Flush() }

// Close will unmap the region, close the file and remove it if the store
// was created with remove set
func (s *MappedStore) Close() error {
	if s.m == nil {
		return errors.New("trying to close an already closed mapping")
	}

	err := s.m.Unmap()
	s.m = nil
	s.ByteStore.Close()
	if err != nil {
		s.f.Close()
		return errors.Wrap(err, "cannot unmap store")
	}

	if err = s.f.Close(); err != nil {
		return errors.Wrap(err, "cannot close mapping file")
	}

	if s.remove {
		if err = os.Remove(s.loc); err != nil {
			return errors.Wrap(err, "cannot remove mapping file")
		}
	}

	return nil
}
