package hscan

import "github.com/PhucNguyen204/hscan/internal/automaton"

// maxScratchBytes caps a single scratch allocation.
const maxScratchBytes = 1 << 30

// Scratch is the per-scan working memory of the engine. One scratch space
// per concurrent caller is required; sharing a scratch between simultaneous
// scans is not safe. Clone a template scratch to hand each worker its own.
//
// Allocation and reallocation are fallible and return errors. Clone and Free
// are assumed infallible; misuse (clone of a freed scratch, double free)
// denotes corrupted resource handling and panics.
type Scratch struct {
	size  int
	ws    *automaton.Workspace
	freed bool
}

// NewScratch allocates a scratch space sized for db.
func NewScratch(db Database) (*Scratch, error) {
	if db == nil {
		return nil, ErrInvalidDatabase
	}
	if db.isClosed() {
		return nil, ErrDatabaseClosed
	}
	if db.ScratchSize() > maxScratchBytes {
		return nil, ErrResourceExhausted
	}
	s := &Scratch{ws: automaton.NewWorkspace()}
	s.grow(db)
	return s, nil
}

// Size reports the current byte footprint of the scratch space.
func (s *Scratch) Size() (int, error) {
	if s == nil || s.freed {
		return 0, ErrInvalidScratch
	}
	return s.size, nil
}

// Realloc grows the scratch in place until it is sufficient for db. A
// scratch that is already large enough is left unchanged; the footprint
// never shrinks. Returns s for chaining.
func (s *Scratch) Realloc(db Database) (*Scratch, error) {
	if s == nil || s.freed {
		return nil, ErrInvalidScratch
	}
	if db == nil {
		return nil, ErrInvalidDatabase
	}
	if db.isClosed() {
		return nil, ErrDatabaseClosed
	}
	if db.ScratchSize() > maxScratchBytes {
		return nil, ErrResourceExhausted
	}
	s.grow(db)
	return s, nil
}

func (s *Scratch) grow(db Database) {
	if need := db.ScratchSize(); need > s.size {
		s.size = need
	}
	s.ws.Grow(db.program().EventSlots())
}

// Clone returns an independent scratch space with equivalent capacity.
func (s *Scratch) Clone() *Scratch {
	if s == nil || s.freed {
		panic("hscan: clone of freed scratch")
	}
	return &Scratch{size: s.size, ws: s.ws.Clone()}
}

// Free releases the scratch space. Freeing twice panics.
func (s *Scratch) Free() {
	if s == nil || s.freed {
		panic("hscan: double free of scratch")
	}
	s.freed = true
	s.ws = nil
}

// check validates the scratch against db before a scan.
func (s *Scratch) check(db Database) error {
	if s == nil || s.freed {
		return ErrInvalidScratch
	}
	if s.size < db.ScratchSize() {
		return ErrScratchUndersized
	}
	return nil
}
