package seqring

import (
	"bufio"
	"os"
	"path"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
)

// DefaultCapacity is the capacity used by NewDefaultRingBuffer when the
// config does not set SEQRING_CAPACITY
const DefaultCapacity = 1 << 16

// rootPath stores the root that relative config paths are resolved against
var rootPath string

// confPath stores path to seqring.conf
var confPath string

// config stores the key value pairs read from confPath
var config map[string]string

// pat stores a valid key-value pattern line
var pat = regexp.MustCompile("^([A-Z0-9_]+)=(.*)$")

// initConfig initializes the config constants
func initConfig() error {
	rootPath = "/"
	if p, ok := os.LookupEnv("SEQRING_DIR"); ok {
		rootPath = p
	}

	confPath = path.Join(rootPath, "etc", "seqring.conf")
	if p, ok := os.LookupEnv("SEQRING_CONF"); ok {
		confPath = p
	}

	config = nil

	f, err := os.Open(confPath)
	if err != nil {
		return errors.Wrap(err, "cannot open config")
	}
	defer f.Close()

	// if we reach at this point, it means we have a valid config
	// that can be read, so we can make the map non-nil
	config = make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if matches := pat.FindStringSubmatch(scanner.Text()); matches != nil {
			config[matches[1]] = matches[2]
		}
	}

	return errors.Wrap(scanner.Err(), "cannot read config")
}

// configCapacity returns SEQRING_CAPACITY, or DefaultCapacity when it is
// missing or not a positive integer
func configCapacity() int {
	v, ok := config["SEQRING_CAPACITY"]
	if !ok {
		return DefaultCapacity
	}

	c, err := strconv.Atoi(v)
	if err != nil || c <= 0 {
		return DefaultCapacity
	}

	return c
}

// tmpDir returns the directory that mapped buffers are created in
func tmpDir() string {
	if d, ok := config["SEQRING_TMP_DIR"]; ok {
		return path.Join(rootPath, d)
	}

	return os.TempDir()
}

// NewDefaultRingBuffer creates a heap backed RingBuffer with the configured
// capacity
func NewDefaultRingBuffer(start uint64) (*RingBuffer, error) {
	return NewRingBuffer(configCapacity(), start)
}
