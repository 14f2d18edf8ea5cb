package hscan

import (
	"fmt"

	ac "github.com/petar-dambovaliev/aho-corasick"

	"github.com/PhucNguyen204/hscan/internal/automaton"
)

// Compile builds a pattern database for the given scanning mode. The
// returned database is immutable and safe for concurrent scans.
func Compile(patterns []*Pattern, mode Mode) (Database, error) {
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}
	if mode < BlockMode || mode > StreamingMode {
		return nil, fmt.Errorf("%w: unknown mode %d", ErrInvalidDatabase, mode)
	}

	specs := make([]automaton.Spec, len(patterns))
	pats := make([]*Pattern, len(patterns))
	for i, p := range patterns {
		if p == nil || p.Expression == "" {
			return nil, fmt.Errorf("error compiling pattern %d: empty expression", i)
		}
		cp := *p
		pats[i] = &cp
		specs[i] = automaton.Spec{
			ID:       cp.ID,
			Literal:  []byte(cp.Expression),
			Caseless: cp.Flags&Caseless != 0,
			Som:      cp.Flags&SomLeftmost != 0,
		}
	}

	base := database{mode: mode, prog: automaton.NewProgram(specs), pats: pats}
	switch mode {
	case BlockMode:
		return &BlockDatabase{database: base, acc: buildAccelerated(pats)}, nil
	case VectoredMode:
		return &VectoredDatabase{database: base}, nil
	default:
		return &StreamingDatabase{database: base}, nil
	}
}

// NewBlockDatabase compiles patterns in block mode.
func NewBlockDatabase(patterns ...*Pattern) (*BlockDatabase, error) {
	db, err := Compile(patterns, BlockMode)
	if err != nil {
		return nil, err
	}
	return db.(*BlockDatabase), nil
}

// NewVectoredDatabase compiles patterns in vectored mode.
func NewVectoredDatabase(patterns ...*Pattern) (*VectoredDatabase, error) {
	db, err := Compile(patterns, VectoredMode)
	if err != nil {
		return nil, err
	}
	return db.(*VectoredDatabase), nil
}

// NewStreamingDatabase compiles patterns in streaming mode.
func NewStreamingDatabase(patterns ...*Pattern) (*StreamingDatabase, error) {
	db, err := Compile(patterns, StreamingMode)
	if err != nil {
		return nil, err
	}
	return db.(*StreamingDatabase), nil
}

// accelerated is the DFA fast path for block scans.
type accelerated struct {
	ac ac.AhoCorasick
}

// buildAccelerated returns nil when the pattern set mixes case sensitivity,
// which the DFA matcher cannot express per pattern.
func buildAccelerated(pats []*Pattern) *accelerated {
	caseless := pats[0].Flags&Caseless != 0
	for _, p := range pats[1:] {
		if (p.Flags&Caseless != 0) != caseless {
			return nil
		}
	}

	exprs := make([]string, len(pats))
	for i, p := range pats {
		exprs[i] = p.Expression
	}
	builder := ac.NewAhoCorasickBuilder(ac.Opts{
		AsciiCaseInsensitive: caseless,
		MatchKind:            ac.StandardMatch,
		DFA:                  true,
	})
	return &accelerated{ac: builder.Build(exprs)}
}
