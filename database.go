package hscan

import (
	"sync/atomic"

	"github.com/PhucNguyen204/hscan/internal/automaton"
)

// Mode selects the scanning discipline a database is compiled for.
type Mode int

const (
	// BlockMode compiles for single-buffer, stateless scans.
	BlockMode Mode = iota + 1
	// VectoredMode compiles for multi-buffer scans over one logical
	// concatenation.
	VectoredMode
	// StreamingMode compiles for stateful scans across sequential chunks.
	StreamingMode
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case BlockMode:
		return "block"
	case VectoredMode:
		return "vectored"
	case StreamingMode:
		return "streaming"
	default:
		return "unknown"
	}
}

// Database is an opaque, immutable compiled pattern database. It is safe to
// share one database across any number of concurrent scans; each scan needs
// its own scratch space. The owner that compiled or deserialized the
// database closes it exactly once.
type Database interface {
	// Mode reports the scanning mode the database was compiled for.
	Mode() Mode
	// PatternCount reports the number of compiled patterns.
	PatternCount() int
	// ScratchSize reports the scratch requirement of the database in
	// bytes.
	ScratchSize() int
	// Marshal serializes the database for storage or transmission.
	Marshal() ([]byte, error)
	// Close releases the database. Scans against a closed database fail
	// with ErrDatabaseClosed.
	Close() error

	program() *automaton.Program
	isClosed() bool
}

// database carries the state common to all modes.
type database struct {
	mode Mode
	prog *automaton.Program
	pats []*Pattern
	done uint32
}

func (d *database) Mode() Mode                  { return d.mode }
func (d *database) PatternCount() int           { return d.prog.PatternCount() }
func (d *database) ScratchSize() int            { return d.prog.ScratchSize() }
func (d *database) program() *automaton.Program { return d.prog }
func (d *database) isClosed() bool              { return atomic.LoadUint32(&d.done) == 1 }

// Close implements Database.
func (d *database) Close() error {
	if !atomic.CompareAndSwapUint32(&d.done, 0, 1) {
		return ErrDatabaseClosed
	}
	return nil
}

// BlockDatabase scans a single contiguous buffer per call. When every
// pattern shares the same case sensitivity the database carries an
// accelerated DFA matcher; mixed pattern sets fall back to the general
// engine.
type BlockDatabase struct {
	database
	acc *accelerated
}

// VectoredDatabase scans an ordered buffer sequence as one logical stream.
type VectoredDatabase struct {
	database
}

// StreamingDatabase opens stateful scanning sessions.
type StreamingDatabase struct {
	database
}
