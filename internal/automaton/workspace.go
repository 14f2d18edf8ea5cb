package automaton

// event is one staged match, resolved to an absolute end offset.
type event struct {
	spec int32
	to   uint64
}

// Workspace is the mutable per-scan working area owned by a scratch space.
// It must not be shared between concurrent scans.
type Workspace struct {
	events []event
}

// NewWorkspace returns an empty workspace. Grow sizes it for a program.
func NewWorkspace() *Workspace {
	return &Workspace{}
}

// Grow ensures the staging slab holds at least slots events. It never
// shrinks.
func (ws *Workspace) Grow(slots int) {
	if cap(ws.events) < slots {
		ws.events = make([]event, 0, slots)
	}
}

// Slots reports the current staging capacity.
func (ws *Workspace) Slots() int { return cap(ws.events) }

// Clone returns an independent workspace with the same capacity.
func (ws *Workspace) Clone() *Workspace {
	return &Workspace{events: make([]event, 0, cap(ws.events))}
}
