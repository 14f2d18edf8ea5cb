package hscan

import (
	"errors"
	"testing"
)

func mustBlockDB(t *testing.T, patterns ...*Pattern) *BlockDatabase {
	t.Helper()
	db, err := NewBlockDatabase(patterns...)
	if err != nil {
		t.Fatalf("NewBlockDatabase: %v", err)
	}
	return db
}

func TestScratchAllocSize(t *testing.T) {
	db := mustBlockDB(t, NewPattern("test", Caseless))

	s, err := NewScratch(db)
	if err != nil {
		t.Fatalf("NewScratch: %v", err)
	}
	size, err := s.Size()
	if err != nil {
		t.Fatalf("Size: %v", err)
	}
	if size <= 0 {
		t.Fatalf("Size = %d, want > 0", size)
	}

	// Deterministic for the same database.
	s2, err := NewScratch(db)
	if err != nil {
		t.Fatalf("NewScratch: %v", err)
	}
	size2, _ := s2.Size()
	if size2 != size {
		t.Fatalf("Size = %d and %d for the same database", size2, size)
	}
}

func TestScratchRealloc(t *testing.T) {
	small := mustBlockDB(t, NewPattern("test", Caseless))
	large := mustBlockDB(t, NewPattern("foobar", 0))

	s, err := NewScratch(small)
	if err != nil {
		t.Fatalf("NewScratch: %v", err)
	}
	before, _ := s.Size()

	ret, err := s.Realloc(large)
	if err != nil {
		t.Fatalf("Realloc: %v", err)
	}
	if ret != s {
		t.Fatal("Realloc did not return the same scratch instance")
	}
	after, _ := s.Size()
	if after <= before {
		t.Fatalf("Size after realloc = %d, want > %d", after, before)
	}
	if after < large.ScratchSize() {
		t.Fatalf("Size = %d, want >= %d", after, large.ScratchSize())
	}

	// Realloc against a smaller requirement never shrinks.
	if _, err := s.Realloc(small); err != nil {
		t.Fatalf("Realloc: %v", err)
	}
	if got, _ := s.Size(); got != after {
		t.Fatalf("Size after no-op realloc = %d, want %d", got, after)
	}
}

func TestScratchClone(t *testing.T) {
	small := mustBlockDB(t, NewPattern("test", Caseless))
	large := mustBlockDB(t, NewPattern("foobar", 0))

	s, err := NewScratch(small)
	if err != nil {
		t.Fatalf("NewScratch: %v", err)
	}
	clone := s.Clone()

	cloneSize, _ := clone.Size()
	origSize, _ := s.Size()
	if cloneSize != origSize {
		t.Fatalf("clone Size = %d, want %d", cloneSize, origSize)
	}

	// Growing the clone leaves the original untouched.
	if _, err := clone.Realloc(large); err != nil {
		t.Fatalf("Realloc: %v", err)
	}
	if got, _ := s.Size(); got != origSize {
		t.Fatalf("original Size = %d after clone realloc, want %d", got, origSize)
	}
}

func TestScratchUseAfterFree(t *testing.T) {
	db := mustBlockDB(t, NewPattern("test", 0))
	s, _ := NewScratch(db)
	s.Free()

	if _, err := s.Size(); !errors.Is(err, ErrInvalidScratch) {
		t.Fatalf("Size error = %v, want %v", err, ErrInvalidScratch)
	}
	if _, err := s.Realloc(db); !errors.Is(err, ErrInvalidScratch) {
		t.Fatalf("Realloc error = %v, want %v", err, ErrInvalidScratch)
	}
	if err := db.Scan([]byte("test"), s, nil); !errors.Is(err, ErrInvalidScratch) {
		t.Fatalf("Scan error = %v, want %v", err, ErrInvalidScratch)
	}
}

func TestScratchDoubleFreePanics(t *testing.T) {
	db := mustBlockDB(t, NewPattern("test", 0))
	s, _ := NewScratch(db)
	s.Free()

	defer func() {
		if recover() == nil {
			t.Fatal("double Free did not panic")
		}
	}()
	s.Free()
}

func TestScratchCloneAfterFreePanics(t *testing.T) {
	db := mustBlockDB(t, NewPattern("test", 0))
	s, _ := NewScratch(db)
	s.Free()

	defer func() {
		if recover() == nil {
			t.Fatal("Clone of freed scratch did not panic")
		}
	}()
	s.Clone()
}

func TestScratchNilDatabase(t *testing.T) {
	if _, err := NewScratch(nil); !errors.Is(err, ErrInvalidDatabase) {
		t.Fatalf("NewScratch(nil) error = %v, want %v", err, ErrInvalidDatabase)
	}
}

func TestScratchClosedDatabase(t *testing.T) {
	db := mustBlockDB(t, NewPattern("test", 0))
	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := NewScratch(db); !errors.Is(err, ErrDatabaseClosed) {
		t.Fatalf("NewScratch error = %v, want %v", err, ErrDatabaseClosed)
	}
	if err := db.Close(); !errors.Is(err, ErrDatabaseClosed) {
		t.Fatalf("second Close error = %v, want %v", err, ErrDatabaseClosed)
	}
}
