package seqring

import (
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
	"github.com/seqring/seqring/store"
	"go.uber.org/zap"
)

// EraseFileOnClose if set to true, will also delete the memory mapped file
// when a mapped buffer is closed
var EraseFileOnClose = false

func mappedFileLocation(name string) (string, error) {
	if name == "" || strings.ContainsRune(name, os.PathSeparator) {
		return "", errors.Errorf("invalid buffer name %q", name)
	}

	return path.Join(tmpDir(), "seqring", name), nil
}

// NewMappedRingBuffer creates a RingBuffer backed by a shared memory
// mapping of a file named name in the configured temporary directory, so
// another process can watch the buffer's memory
func NewMappedRingBuffer(name string, capacity int, start uint64) (*RingBuffer, error) {
	if capacity <= 0 {
		return nil, errors.Wrapf(ErrInvalidCapacity, "cannot map a buffer of %d bytes", capacity)
	}

	loc, err := mappedFileLocation(name)
	if err != nil {
		return nil, err
	}

	if logging {
		logger.Info("deduced location to map the buffer",
			zap.String("module", "mapped"),
			zap.String("location", loc),
			zap.Int("capacity", capacity),
		)
	}

	s, err := store.NewMappedStore(loc, capacity, EraseFileOnClose)
	if err != nil {
		if logging {
			logger.Error("cannot create MappedStore",
				zap.String("module", "mapped"),
				zap.Error(err),
			)
		}
		return nil, err
	}

	return NewRingBufferStore(s, start)
}
