package simcore

// SystemContext is the contract shared by LeafContext and DiagramContext:
// time, state, input ports, a cache, and output freshness bookkeeping,
// plus a Clone returning the interface type. The concrete types add
// covariantly typed CloneLeaf and CloneDiagram.
type SystemContext[T Scalar] interface {
	Time() T
	SetTime(t T)

	State() *State[T]
	MutableState() *State[T]

	NumInputPorts() int
	SetInputPort(i int, port InputPort[T]) error
	VectorInput(i int) ([]T, bool)
	AbstractInput(i int) (Value, bool)

	Cache() *Cache

	MarkOutputPortFresh(i int) error
	IsOutputPortFresh(i int) (bool, error)

	Clone() SystemContext[T]
}

// LeafContext is the Context for a single, non-composite subsystem: time,
// state, input ports, and a cache, plus (once installed into a
// DiagramContext via AddSystem) a back-reference to its parent and index.
type LeafContext[T Scalar] struct {
	time    T
	state   *State[T]
	inputs  []InputPort[T]
	cache   *Cache
	outputs *OutputPortSet[T]

	timeTicket   Ticket
	stateTicket  Ticket
	inputTickets []Ticket

	parent      *DiagramContext[T]
	parentIndex int
}

// NewLeafContext builds a leaf context over state and outputs with
// numInputs freestanding, initially-empty input ports, and allocates the
// well-known time/state/input cache tickets. A nil state or outputs is
// replaced with an empty container of that kind.
func NewLeafContext[T Scalar](state *State[T], outputs *OutputPortSet[T], numInputs int) *LeafContext[T] {
	if state == nil {
		state = NewState[T](nil, nil, nil)
	}
	if outputs == nil {
		outputs = NewOutputPortSet[T]()
	}

	c := &LeafContext[T]{
		state:       state,
		inputs:      make([]InputPort[T], numInputs),
		cache:       NewCache(),
		outputs:     outputs,
		parentIndex: -1,
	}
	for i := range c.inputs {
		c.inputs[i] = NewFreestandingVectorPort[T](nil)
	}
	c.buildCacheTickets()
	return c
}

// buildCacheTickets allocates the time, state, and per-input tickets that
// SetTime, MutableState, and SetInputPort invalidate. A System's own
// tickets list these (or each other) as prerequisites.
func (c *LeafContext[T]) buildCacheTickets() {
	c.timeTicket, _ = c.cache.MakeTicket()
	c.stateTicket, _ = c.cache.MakeTicket()
	c.inputTickets = make([]Ticket, len(c.inputs))
	for i := range c.inputs {
		c.inputTickets[i], _ = c.cache.MakeTicket()
	}
}

func (c *LeafContext[T]) Time() T { return c.time }

// SetTime invalidates every time-dependent cache ticket before installing
// the new time, mirroring the original's invalidate-then-assign ordering
// so a cached value can never be read against a mismatched time.
func (c *LeafContext[T]) SetTime(t T) {
	_ = c.cache.Invalidate(c.timeTicket)
	c.time = t
}

func (c *LeafContext[T]) State() *State[T] { return c.state }

// MutableState invalidates every state-dependent cache ticket and returns
// the mutable State. The invalidation is unconditional and whole-state;
// finer-grained invalidation is left for a future change (see DESIGN.md).
func (c *LeafContext[T]) MutableState() *State[T] {
	_ = c.cache.Invalidate(c.stateTicket)
	return c.state
}

func (c *LeafContext[T]) NumInputPorts() int { return len(c.inputs) }

// SetInputPort replaces input i and invalidates every ticket registered as
// depending on it.
func (c *LeafContext[T]) SetInputPort(i int, port InputPort[T]) error {
	if i < 0 || i >= len(c.inputs) {
		return &IndexOutOfRangeError{Kind: "input port", Index: i, Size: len(c.inputs)}
	}
	c.inputs[i] = port
	return c.cache.Invalidate(c.inputTickets[i])
}

func (c *LeafContext[T]) VectorInput(i int) ([]T, bool) {
	if i < 0 || i >= len(c.inputs) || c.inputs[i] == nil {
		return nil, false
	}
	return c.inputs[i].VectorValue()
}

func (c *LeafContext[T]) AbstractInput(i int) (Value, bool) {
	if i < 0 || i >= len(c.inputs) || c.inputs[i] == nil {
		return nil, false
	}
	return c.inputs[i].AbstractValue()
}

// InputTicket returns the well-known ticket SetInputPort(i, ...)
// invalidates, so a System can declare its own tickets with it as a
// prerequisite.
func (c *LeafContext[T]) InputTicket(i int) (Ticket, error) {
	if i < 0 || i >= len(c.inputTickets) {
		return NoTicket, &IndexOutOfRangeError{Kind: "input port", Index: i, Size: len(c.inputTickets)}
	}
	return c.inputTickets[i], nil
}

// TimeTicket returns the well-known ticket SetTime invalidates.
func (c *LeafContext[T]) TimeTicket() Ticket { return c.timeTicket }

// StateTicket returns the well-known ticket MutableState invalidates.
func (c *LeafContext[T]) StateTicket() Ticket { return c.stateTicket }

func (c *LeafContext[T]) Cache() *Cache { return c.cache }

// Outputs returns this context's output port set. MarkOutputPortFresh and
// IsOutputPortFresh both forward to it; the leaf context and its parent
// diagram (once installed) hold the same *OutputPortSet pointer, so both
// views stay consistent.
func (c *LeafContext[T]) Outputs() *OutputPortSet[T] { return c.outputs }

// SetOutputs attaches outputs as this context's output set, for a System
// factory that builds the context and the output set separately before
// either is installed into a diagram.
func (c *LeafContext[T]) SetOutputs(outputs *OutputPortSet[T]) {
	if outputs == nil {
		outputs = NewOutputPortSet[T]()
	}
	c.outputs = outputs
}

func (c *LeafContext[T]) MarkOutputPortFresh(i int) error {
	return c.outputs.MarkFresh(i)
}

func (c *LeafContext[T]) IsOutputPortFresh(i int) (bool, error) {
	return c.outputs.IsFresh(i)
}

// setParent installs the back-reference to the owning diagram and this
// context's index within it. Called by DiagramContext.AddSystem
// immediately after installation.
func (c *LeafContext[T]) setParent(parent *DiagramContext[T], index int) {
	c.parent = parent
	c.parentIndex = index
}

// Parent returns the owning diagram and this context's index within it,
// or (nil, -1) if this context has not been installed into a diagram.
func (c *LeafContext[T]) Parent() (*DiagramContext[T], int) {
	return c.parent, c.parentIndex
}

// Clone satisfies SystemContext with the base interface's static type.
func (c *LeafContext[T]) Clone() SystemContext[T] {
	return c.CloneLeaf()
}

// CloneLeaf is the covariantly-typed clone: a deep, independent copy whose
// dependent input ports, if any, become freestanding snapshots of their
// referent's current value. The clone is not installed into any diagram.
func (c *LeafContext[T]) CloneLeaf() *LeafContext[T] {
	clone := &LeafContext[T]{
		time:         c.time,
		state:        c.state.Clone(),
		inputs:       make([]InputPort[T], len(c.inputs)),
		cache:        c.cache.Clone(),
		outputs:      c.outputs.Clone(),
		timeTicket:   c.timeTicket,
		stateTicket:  c.stateTicket,
		inputTickets: append([]Ticket(nil), c.inputTickets...),
		parentIndex:  -1,
	}
	for i, p := range c.inputs {
		if p != nil {
			clone.inputs[i] = p.Clone()
		}
	}
	return clone
}
