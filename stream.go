package hscan

import "github.com/PhucNguyen204/hscan/internal/automaton"

// StreamFlag configures stream-level behavior on Open and Reset.
type StreamFlag uint32

// Stream is a stateful scanning session bound to one streaming database. It
// retains match progress across sequential Scan calls until Reset or Close.
// A stream must be confined to one concurrent caller; use Clone to fork
// independent sessions.
type Stream struct {
	db    *StreamingDatabase
	cur   automaton.Cursor
	flags StreamFlag
	done  bool
}

// Open allocates a new stream with empty match history.
func (db *StreamingDatabase) Open(flags StreamFlag) (*Stream, error) {
	if db.isClosed() {
		return nil, ErrDatabaseClosed
	}
	return &Stream{db: db, flags: flags}, nil
}

// Scan feeds the next sequential chunk to the stream. Matches completed
// inside the chunk, including ones spanning the boundary with earlier
// chunks, are delivered to handler before Scan returns. Chunks must arrive
// in logical stream order; calls on one stream must be serialized by the
// caller.
func (st *Stream) Scan(chunk []byte, scratch *Scratch, handler MatchHandler) error {
	if st.done {
		return ErrStreamClosed
	}
	if err := scanPreflight(st.db, scratch); err != nil {
		return err
	}
	if st.db.prog.Feed(&st.cur, scratch.ws, chunk, bridge(handler)) == automaton.Stop {
		return ErrScanTerminated
	}
	return nil
}

// Reset flushes pending match state through handler, then reinitializes the
// stream to its empty state. The handle remains valid and reusable.
func (st *Stream) Reset(flags StreamFlag, scratch *Scratch, handler MatchHandler) error {
	if st.done {
		return ErrStreamClosed
	}
	if err := scanPreflight(st.db, scratch); err != nil {
		return err
	}
	verdict := st.db.prog.Flush(&st.cur, scratch.ws, bridge(handler))
	st.cur = automaton.Cursor{}
	st.flags = flags
	if verdict == automaton.Stop {
		return ErrScanTerminated
	}
	return nil
}

// Close flushes pending match state through handler, then permanently
// invalidates the stream. A closed stream cannot be reopened; any further
// use fails with ErrStreamClosed.
func (st *Stream) Close(scratch *Scratch, handler MatchHandler) error {
	if st.done {
		return ErrStreamClosed
	}
	if err := scanPreflight(st.db, scratch); err != nil {
		return err
	}
	verdict := st.db.prog.Flush(&st.cur, scratch.ws, bridge(handler))
	st.done = true
	if verdict == automaton.Stop {
		return ErrScanTerminated
	}
	return nil
}

// Clone forks an independent stream carrying an exact copy of the current
// match progress. Scans on the clone never affect the original and vice
// versa. Cloning a closed stream panics.
func (st *Stream) Clone() *Stream {
	if st.done {
		panic("hscan: clone of closed stream")
	}
	cp := *st
	return &cp
}

// Offset reports the number of stream bytes consumed so far.
func (st *Stream) Offset() uint64 { return st.cur.Offset() }
