package automaton

// Goto/fail literal automaton with persistent cursor state. A compiled
// Program is immutable and may be shared by any number of scans; all mutable
// matching state lives in the Cursor and Workspace the caller passes in.
//
// Case handling is per pattern: case-sensitive patterns are compiled into a
// raw-byte machine, caseless patterns into a second machine that is fed
// ASCII-folded input. Both machines advance in lockstep, one byte at a time,
// so a cursor can be suspended at any chunk boundary and resumed later.

// Verdict is the outcome of delivering one match event.
type Verdict int

const (
	// Continue keeps the scan running.
	Continue Verdict = iota
	// Stop aborts the scan immediately.
	Stop
)

// EmitFunc receives one match event. Returning Stop aborts the scan.
type EmitFunc func(id uint32, from, to uint64) Verdict

// Spec is one literal pattern as handed over by the compiler.
type Spec struct {
	ID       uint32
	Literal  []byte
	Caseless bool
	Som      bool
}

// Program is a compiled, immutable automaton over a set of pattern specs.
type Program struct {
	specs []Spec
	sens  machine // raw-byte machine for case-sensitive specs
	fold  machine // folded machine for caseless specs
}

// NewProgram compiles specs into a program. Specs are copied; the caller may
// reuse the slice afterwards.
func NewProgram(specs []Spec) *Program {
	p := &Program{specs: append([]Spec(nil), specs...)}

	var sensIdx, foldIdx []int32
	for i := range p.specs {
		if p.specs[i].Caseless {
			foldIdx = append(foldIdx, int32(i))
		} else {
			sensIdx = append(sensIdx, int32(i))
		}
	}
	p.sens = buildMachine(p.specs, sensIdx, false)
	p.fold = buildMachine(p.specs, foldIdx, true)

	return p
}

// PatternCount reports the number of compiled specs.
func (p *Program) PatternCount() int { return len(p.specs) }

// Specs exposes the compiled specs for serialization and inspection.
func (p *Program) Specs() []Spec { return p.specs }

// EventSlots is the staging capacity a workspace needs for this program: the
// largest number of events a single input position can produce.
func (p *Program) EventSlots() int { return p.sens.maxChain + p.fold.maxChain }

const (
	scratchHeaderBytes = 64
	eventBytes         = 16
	stateBytes         = 4
)

// ScratchSize is the deterministic scratch requirement of the program, in
// bytes. It grows with automaton size so a scratch allocated for a small
// database must be reallocated before serving a larger one.
func (p *Program) ScratchSize() int {
	states := len(p.sens.next) + len(p.fold.next)
	return scratchHeaderBytes + eventBytes*p.EventSlots() + stateBytes*states
}

// Cursor is the resumable matching position of one logical stream. The zero
// value is the initial state.
type Cursor struct {
	sens   int32
	fold   int32
	offset uint64
}

// Offset reports the number of bytes consumed so far.
func (c *Cursor) Offset() uint64 { return c.offset }

// Feed advances the cursor over chunk, emitting every match that ends inside
// it. Offsets are absolute over all bytes the cursor has consumed. A nil emit
// advances state without reporting. On Stop the cursor keeps the position of
// the terminating event.
func (p *Program) Feed(cur *Cursor, ws *Workspace, chunk []byte, emit EmitFunc) Verdict {
	sens, fold, off := cur.sens, cur.fold, cur.offset

	for _, b := range chunk {
		sens = p.sens.step(sens, b)
		fold = p.fold.step(fold, asciiLower(b))
		off++

		if emit == nil {
			continue
		}
		if len(p.sens.out[sens]) == 0 && len(p.fold.out[fold]) == 0 {
			continue
		}

		// Stage every event ending at this position, then dispatch, so
		// the two machines contribute in a fixed order.
		ws.events = ws.events[:0]
		for _, ix := range p.sens.out[sens] {
			ws.events = append(ws.events, event{spec: ix, to: off})
		}
		for _, ix := range p.fold.out[fold] {
			ws.events = append(ws.events, event{spec: ix, to: off})
		}
		for _, ev := range ws.events {
			sp := &p.specs[ev.spec]
			var from uint64
			if sp.Som {
				from = ev.to - uint64(len(sp.Literal))
			}
			if emit(sp.ID, from, ev.to) == Stop {
				cur.sens, cur.fold, cur.offset = sens, fold, off
				return Stop
			}
		}
	}

	cur.sens, cur.fold, cur.offset = sens, fold, off
	return Continue
}

// Flush delivers matches held back until end of data. Literal programs never
// hold back matches, so nothing is reported today; reset and close still
// route through here to keep the delivery contract in one place.
func (p *Program) Flush(cur *Cursor, ws *Workspace, emit EmitFunc) Verdict {
	_ = cur
	_ = ws
	_ = emit
	return Continue
}

func asciiLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b | 0x20
	}
	return b
}
