package hscan

import "github.com/PhucNguyen204/hscan/internal/automaton"

// scanPreflight validates the database and scratch shared by every scan
// entry point.
func scanPreflight(db Database, scratch *Scratch) error {
	if db == nil {
		return ErrInvalidDatabase
	}
	if db.isClosed() {
		return ErrDatabaseClosed
	}
	return scratch.check(db)
}

// Scan scans data once against the database, delivering matches to handler.
// It returns nil when scanning completes, ErrScanTerminated when the handler
// requested an early stop, or an engine error for malformed inputs. The
// scratch must have been allocated or reallocated against a database of at
// least this database's requirement.
func (db *BlockDatabase) Scan(data []byte, scratch *Scratch, handler MatchHandler) error {
	if err := scanPreflight(db, scratch); err != nil {
		return err
	}
	if handler == nil {
		return nil
	}
	if db.acc != nil {
		return db.scanAccelerated(data, handler)
	}
	var cur automaton.Cursor
	if db.prog.Feed(&cur, scratch.ws, data, bridge(handler)) == automaton.Stop {
		return ErrScanTerminated
	}
	return nil
}

// ScanString is Scan over the bytes of s.
func (db *BlockDatabase) ScanString(s string, scratch *Scratch, handler MatchHandler) error {
	return db.Scan([]byte(s), scratch, handler)
}

func (db *BlockDatabase) scanAccelerated(data []byte, handler MatchHandler) error {
	it := db.acc.ac.IterOverlappingByte(data)
	for m := it.Next(); m != nil; m = it.Next() {
		p := db.pats[m.Pattern()]
		var from uint64
		if p.Flags&SomLeftmost != 0 {
			from = uint64(m.Start())
		}
		if !handler(p.ID, from, uint64(m.End()), 0) {
			return ErrScanTerminated
		}
	}
	return nil
}

// Scan scans an ordered sequence of buffers as one logical contiguous
// stream; matches may span buffer boundaries and offsets are computed over
// the concatenation. Buffer order is preserved exactly as supplied. The
// underlying bytes stay owned by the caller for the duration of the call.
func (db *VectoredDatabase) Scan(blocks [][]byte, scratch *Scratch, handler MatchHandler) error {
	if err := scanPreflight(db, scratch); err != nil {
		return err
	}
	var cur automaton.Cursor
	emit := bridge(handler)
	for _, block := range blocks {
		if db.prog.Feed(&cur, scratch.ws, block, emit) == automaton.Stop {
			return ErrScanTerminated
		}
	}
	return nil
}

// ScanStrings is Scan over the bytes of each string in corpus.
func (db *VectoredDatabase) ScanStrings(corpus []string, scratch *Scratch, handler MatchHandler) error {
	blocks := make([][]byte, len(corpus))
	for i, s := range corpus {
		blocks[i] = []byte(s)
	}
	return db.Scan(blocks, scratch, handler)
}
