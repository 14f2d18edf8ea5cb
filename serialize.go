package hscan

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/klauspost/compress/s2"
)

// dbMagic prefixes every serialized database; the trailing byte is the
// format version.
const dbMagic = "HSDB\x01"

type dbWire struct {
	Mode     Mode
	Patterns []wirePattern
}

type wirePattern struct {
	ID         uint32
	Expression string
	Flags      CompileFlag
}

// Marshal serializes the database into a self-describing, s2-compressed
// byte stream. The deserialized database is scan-equivalent.
func (d *database) Marshal() ([]byte, error) {
	if d.isClosed() {
		return nil, ErrDatabaseClosed
	}

	wire := dbWire{Mode: d.mode, Patterns: make([]wirePattern, len(d.pats))}
	for i, p := range d.pats {
		wire.Patterns[i] = wirePattern{ID: p.ID, Expression: p.Expression, Flags: p.Flags}
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(wire); err != nil {
		return nil, fmt.Errorf("encode database: %w", err)
	}

	out := append([]byte(nil), dbMagic...)
	return append(out, s2.Encode(nil, buf.Bytes())...), nil
}

// UnmarshalDatabase reconstructs a database serialized by Marshal. The
// result is freshly compiled and independently owned by the caller.
func UnmarshalDatabase(data []byte) (Database, error) {
	if len(data) < len(dbMagic) || string(data[:len(dbMagic)]) != dbMagic {
		return nil, fmt.Errorf("%w: bad magic", ErrInvalidDatabase)
	}

	raw, err := s2.Decode(nil, data[len(dbMagic):])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDatabase, err)
	}

	var wire dbWire
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDatabase, err)
	}

	pats := make([]*Pattern, len(wire.Patterns))
	for i, w := range wire.Patterns {
		pats[i] = &Pattern{ID: w.ID, Expression: w.Expression, Flags: w.Flags}
	}
	return Compile(pats, wire.Mode)
}
