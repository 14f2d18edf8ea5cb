package hscan

import "github.com/PhucNguyen204/hscan/internal/automaton"

// MatchHandler is invoked once per match, in the order the engine discovers
// matches, strictly within the scan call that triggered it. The from offset
// is zero unless the pattern was compiled with SomLeftmost. Returning false
// stops the scan; the enclosing call then fails with ErrScanTerminated.
//
// A nil handler means matches are discovered and discarded and the scan
// always runs to completion.
type MatchHandler func(id uint32, from, to uint64, flags uint32) bool

// bridge adapts a handler to the engine's internal verdict protocol. The
// returned function is only ever invoked inside the dynamic extent of the
// scan call it was built for.
func bridge(handler MatchHandler) automaton.EmitFunc {
	if handler == nil {
		return nil
	}
	return func(id uint32, from, to uint64) automaton.Verdict {
		if handler(id, from, to, 0) {
			return automaton.Continue
		}
		return automaton.Stop
	}
}
