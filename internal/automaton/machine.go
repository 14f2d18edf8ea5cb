package automaton

// machine is one goto/fail automaton: dense transition rows, BFS fail links
// and per-state merged output sets.
type machine struct {
	next [][256]int32
	fail []int32
	// out[s] lists spec indexes ending at state s, own match first, then the
	// matches inherited from the fail chain (longest to shortest).
	out      [][]int32
	maxChain int
}

// buildMachine compiles the specs selected by idx. When folded is true the
// literals are ASCII-folded before insertion; the caller feeds folded input.
func buildMachine(specs []Spec, idx []int32, folded bool) machine {
	m := machine{
		next: make([][256]int32, 1),
		fail: make([]int32, 1),
		out:  make([][]int32, 1),
	}

	for _, ix := range idx {
		lit := specs[ix].Literal
		state := int32(0)
		for _, b := range lit {
			if folded {
				b = asciiLower(b)
			}
			if m.next[state][b] == 0 {
				m.next = append(m.next, [256]int32{})
				m.fail = append(m.fail, 0)
				m.out = append(m.out, nil)
				m.next[state][b] = int32(len(m.next) - 1)
			}
			state = m.next[state][b]
		}
		m.out[state] = append(m.out[state], ix)
	}

	m.computeFail()
	return m
}

// computeFail assigns fail links in BFS order and merges each state's output
// set with that of its fail state. BFS order guarantees the fail state's set
// is final when it is merged in.
func (m *machine) computeFail() {
	queue := make([]int32, 0, len(m.next))
	queue = append(queue, 0)

	for head := 0; head < len(queue); head++ {
		state := queue[head]
		for c := 0; c < 256; c++ {
			t := m.next[state][c]
			if t == 0 {
				continue
			}

			fail := m.fail[state]
			for fail != 0 && m.next[fail][byte(c)] == 0 {
				fail = m.fail[fail]
			}
			fail = m.next[fail][byte(c)]
			if fail != t {
				m.fail[t] = fail
			}

			m.out[t] = append(m.out[t], m.out[m.fail[t]]...)
			if len(m.out[t]) > m.maxChain {
				m.maxChain = len(m.out[t])
			}
			queue = append(queue, t)
		}
	}
}

// step consumes one byte, following fail links until a transition exists.
func (m *machine) step(state int32, b byte) int32 {
	for state != 0 && m.next[state][b] == 0 {
		state = m.fail[state]
	}
	return m.next[state][b]
}
