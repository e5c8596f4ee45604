package trace

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"
)

var (
	// logger is the logger to use for tracing.
	logger = log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds|log.Lshortfile)

	// current is the targets that are enabled for tracing.
	current atomic.Int32
)

// Target is a tracing target.
type Target int

const (
	// General traces general operations.
	General Target = 1 << iota

	// Index traces revlog header and index record decoding.
	Index

	// Payload traces payload reads and changeset decoding.
	Payload

	// Storage traces file access and caching in the storage layer.
	Storage

	// All enables every target.
	All = General | Index | Payload | Storage
)

// SetTarget sets the tracing targets.
func SetTarget(target Target) {
	current.Store(int32(target))
}

// SetLogger sets the logger to use for tracing.
func SetLogger(l *log.Logger) {
	logger = l
}

// Enabled reports whether t is currently traced.
func (t Target) Enabled() bool {
	return int32(t)&current.Load() != 0
}

// Printf prints the given message if tracing is enabled.
func (t Target) Printf(format string, args ...interface{}) {
	if t.Enabled() {
		logger.Output(2, fmt.Sprintf(format, args...)) // nolint: errcheck
	}
}
