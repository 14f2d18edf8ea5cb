package hscan

import (
	"fmt"
	"strings"
)

// CompileFlag adjusts how a single pattern is compiled.
type CompileFlag uint32

const (
	// Caseless enables ASCII case-insensitive matching.
	Caseless CompileFlag = 1 << iota
	// SomLeftmost reports the start offset of each match; without it the
	// start offset delivered to the handler is always zero.
	SomLeftmost
)

// String renders the flag set in ParsePattern notation.
func (f CompileFlag) String() string {
	var sb strings.Builder
	if f&Caseless != 0 {
		sb.WriteByte('i')
	}
	if f&SomLeftmost != 0 {
		sb.WriteByte('L')
	}
	return sb.String()
}

// ParseCompileFlag parses a flag string: 'i' for Caseless, 'L' for
// SomLeftmost.
func ParseCompileFlag(s string) (CompileFlag, error) {
	var flags CompileFlag
	for _, c := range s {
		switch c {
		case 'i':
			flags |= Caseless
		case 'L':
			flags |= SomLeftmost
		default:
			return 0, fmt.Errorf("invalid pattern, unknown flag `%c`", c)
		}
	}
	return flags, nil
}

// Pattern is one literal expression to compile into a database. ID is the
// value reported to match handlers; patterns in one database may share IDs.
type Pattern struct {
	ID         uint32
	Expression string
	Flags      CompileFlag
}

// NewPattern returns a pattern with ID zero.
func NewPattern(expression string, flags CompileFlag) *Pattern {
	return &Pattern{Expression: expression, Flags: flags}
}

// ParsePattern parses "/expression/flags" notation; input without a leading
// '/' is taken as a bare expression with no flags.
func ParsePattern(s string) (*Pattern, error) {
	if !strings.HasPrefix(s, "/") {
		return NewPattern(s, 0), nil
	}
	end := strings.LastIndex(s, "/")
	if end == 0 {
		return nil, fmt.Errorf("error parsing pattern %s: missing closing `/`", s)
	}
	flags, err := ParseCompileFlag(s[end+1:])
	if err != nil {
		return nil, fmt.Errorf("error parsing pattern %s: %w", s, err)
	}
	return NewPattern(s[1:end], flags), nil
}

// String renders the pattern in ParsePattern notation.
func (p *Pattern) String() string {
	return fmt.Sprintf("/%s/%s", p.Expression, p.Flags)
}
