package simcore

// PortIdentifier names one port on one child subsystem of a diagram. The
// dependency graph and its inverse are keyed by these pairs.
type PortIdentifier struct {
	SystemIndex int
	PortIndex   int
}

// DiagramContext is the Context for a composite subsystem: a fixed-size
// list of child leaf contexts plus the wiring between them. Children are
// flat LeafContexts rather than arbitrarily nested DiagramContexts, a
// deliberate simplification from the original's recursive Context<T> tree
// (see DESIGN.md).
type DiagramContext[T Scalar] struct {
	children []*LeafContext[T] // nil at index i until AddSystem(i, ...)

	exportedInputs  []PortIdentifier
	exportedOutputs []PortIdentifier

	dependencyGraph        map[PortIdentifier]PortIdentifier   // dest input -> source output
	inverseDependencyGraph map[PortIdentifier][]PortIdentifier // source output -> dest inputs

	state *State[T]
	cache *Cache

	parent      *DiagramContext[T]
	parentIndex int
}

// NewDiagramContext allocates a diagram context with room for exactly
// numSystems children, each installed later via AddSystem.
func NewDiagramContext[T Scalar](numSystems int) *DiagramContext[T] {
	return &DiagramContext[T]{
		children:               make([]*LeafContext[T], numSystems),
		dependencyGraph:        make(map[PortIdentifier]PortIdentifier),
		inverseDependencyGraph: make(map[PortIdentifier][]PortIdentifier),
		cache:                  NewCache(),
		parentIndex:            -1,
	}
}

func (d *DiagramContext[T]) NumSystems() int { return len(d.children) }

func (d *DiagramContext[T]) child(i int) (*LeafContext[T], error) {
	if i < 0 || i >= len(d.children) {
		return nil, &IndexOutOfRangeError{Kind: "subsystem", Index: i, Size: len(d.children)}
	}
	if d.children[i] == nil {
		return nil, &MissingSystemError{Index: i}
	}
	return d.children[i], nil
}

// AddSystem installs ctx as child index, setting its parent back-reference
// immediately.
func (d *DiagramContext[T]) AddSystem(index int, ctx *LeafContext[T]) error {
	if index < 0 || index >= len(d.children) {
		return &IndexOutOfRangeError{Kind: "subsystem", Index: index, Size: len(d.children)}
	}
	if d.children[index] != nil {
		return &DuplicateSystemError{Index: index}
	}
	d.children[index] = ctx
	ctx.setParent(d, index)
	return nil
}

// GetSubsystemContext returns the installed child context at index.
func (d *DiagramContext[T]) GetSubsystemContext(index int) (*LeafContext[T], error) {
	return d.child(index)
}

// ExportInput declares diagram input port len(exportedInputs) as an alias
// for child childIndex's input port portIndex, returning the new
// diagram-level input index.
func (d *DiagramContext[T]) ExportInput(childIndex, portIndex int) (int, error) {
	child, err := d.child(childIndex)
	if err != nil {
		return -1, &WiringError{Cause: err}
	}
	if portIndex < 0 || portIndex >= child.NumInputPorts() {
		return -1, &WiringError{Cause: &IndexOutOfRangeError{Kind: "input port", Index: portIndex, Size: child.NumInputPorts()}}
	}
	d.exportedInputs = append(d.exportedInputs, PortIdentifier{SystemIndex: childIndex, PortIndex: portIndex})
	return len(d.exportedInputs) - 1, nil
}

// ExportOutput declares diagram output port len(exportedOutputs) as an
// alias for child childIndex's output port portIndex.
func (d *DiagramContext[T]) ExportOutput(childIndex, portIndex int) (int, error) {
	child, err := d.child(childIndex)
	if err != nil {
		return -1, &WiringError{Cause: err}
	}
	if _, err := child.Outputs().Port(portIndex); err != nil {
		return -1, &WiringError{Cause: err}
	}
	d.exportedOutputs = append(d.exportedOutputs, PortIdentifier{SystemIndex: childIndex, PortIndex: portIndex})
	return len(d.exportedOutputs) - 1, nil
}

// Connect wires destChild's input port destPort to read srcChild's output
// port srcPort, validating both endpoints against their own container's
// port count before installing a DependentInputPort.
func (d *DiagramContext[T]) Connect(srcChild, srcPort, destChild, destPort int) error {
	src, err := d.child(srcChild)
	if err != nil {
		return &WiringError{Cause: err}
	}
	if _, err := src.Outputs().Port(srcPort); err != nil {
		return &WiringError{Cause: err}
	}

	dest, err := d.child(destChild)
	if err != nil {
		return &WiringError{Cause: err}
	}
	if destPort < 0 || destPort >= dest.NumInputPorts() {
		return &WiringError{Cause: &IndexOutOfRangeError{Kind: "input port", Index: destPort, Size: dest.NumInputPorts()}}
	}

	port := NewDependentInputPort[T](src.Outputs(), srcPort)
	if err := dest.SetInputPort(destPort, port); err != nil {
		return &WiringError{Cause: err}
	}

	from := PortIdentifier{SystemIndex: srcChild, PortIndex: srcPort}
	to := PortIdentifier{SystemIndex: destChild, PortIndex: destPort}
	d.dependencyGraph[to] = from
	d.inverseDependencyGraph[from] = appendUniquePort(d.inverseDependencyGraph[from], to)
	return nil
}

func appendUniquePort(ids []PortIdentifier, id PortIdentifier) []PortIdentifier {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

// MakeState builds the diagram's aggregate state view over every
// installed child's current state. Call once after all children
// have been added; the view tracks each child's state container for its
// lifetime, so later state replacement on a child (SetContinuous, etc.)
// requires calling MakeState again.
func (d *DiagramContext[T]) MakeState() error {
	continuous := make([]ContinuousState[T], len(d.children))
	discrete := make([]DiscreteState[T], len(d.children))
	modal := make([]ModalState, len(d.children))
	for i, c := range d.children {
		if c == nil {
			return &MissingSystemError{Index: i}
		}
		continuous[i] = c.State().Continuous()
		discrete[i] = c.State().Discrete()
		modal[i] = c.State().Modal()
	}
	d.state = NewState[T](
		newDiagramContinuousState[T](continuous),
		newDiagramDiscreteState[T](discrete),
		newDiagramModalState(modal),
	)
	return nil
}

func (d *DiagramContext[T]) State() *State[T] { return d.state }

// MutableState invalidates every child's state ticket, since a write
// through the aggregate view may land on any of them, and returns the
// aggregate.
func (d *DiagramContext[T]) MutableState() *State[T] {
	for _, c := range d.children {
		if c != nil {
			_ = c.cache.Invalidate(c.stateTicket)
		}
	}
	return d.state
}

// Time returns the first installed child's time; SetTime keeps every
// child's time in lockstep, so any of them serves as the diagram's time.
func (d *DiagramContext[T]) Time() T {
	for _, c := range d.children {
		if c != nil {
			return c.Time()
		}
	}
	var zero T
	return zero
}

// SetTime propagates t to every child in index order.
func (d *DiagramContext[T]) SetTime(t T) {
	for _, c := range d.children {
		if c != nil {
			c.SetTime(t)
		}
	}
}

func (d *DiagramContext[T]) NumInputPorts() int { return len(d.exportedInputs) }

func (d *DiagramContext[T]) SetInputPort(i int, port InputPort[T]) error {
	if i < 0 || i >= len(d.exportedInputs) {
		return &IndexOutOfRangeError{Kind: "input port", Index: i, Size: len(d.exportedInputs)}
	}
	id := d.exportedInputs[i]
	return d.children[id.SystemIndex].SetInputPort(id.PortIndex, port)
}

func (d *DiagramContext[T]) VectorInput(i int) ([]T, bool) {
	if i < 0 || i >= len(d.exportedInputs) {
		return nil, false
	}
	id := d.exportedInputs[i]
	return d.children[id.SystemIndex].VectorInput(id.PortIndex)
}

func (d *DiagramContext[T]) AbstractInput(i int) (Value, bool) {
	if i < 0 || i >= len(d.exportedInputs) {
		return nil, false
	}
	id := d.exportedInputs[i]
	return d.children[id.SystemIndex].AbstractInput(id.PortIndex)
}

func (d *DiagramContext[T]) NumOutputPorts() int { return len(d.exportedOutputs) }

func (d *DiagramContext[T]) OutputVectorValue(i int) ([]T, bool) {
	if i < 0 || i >= len(d.exportedOutputs) {
		return nil, false
	}
	id := d.exportedOutputs[i]
	slot, err := d.children[id.SystemIndex].Outputs().Port(id.PortIndex)
	if err != nil {
		return nil, false
	}
	return slot.VectorValue()
}

func (d *DiagramContext[T]) OutputAbstractValue(i int) (Value, bool) {
	if i < 0 || i >= len(d.exportedOutputs) {
		return nil, false
	}
	id := d.exportedOutputs[i]
	slot, err := d.children[id.SystemIndex].Outputs().Port(id.PortIndex)
	if err != nil {
		return nil, false
	}
	return slot.AbstractValue()
}

func (d *DiagramContext[T]) MarkOutputPortFresh(i int) error {
	if i < 0 || i >= len(d.exportedOutputs) {
		return &IndexOutOfRangeError{Kind: "output port", Index: i, Size: len(d.exportedOutputs)}
	}
	id := d.exportedOutputs[i]
	return d.children[id.SystemIndex].Outputs().MarkFresh(id.PortIndex)
}

func (d *DiagramContext[T]) IsOutputPortFresh(i int) (bool, error) {
	if i < 0 || i >= len(d.exportedOutputs) {
		return false, &IndexOutOfRangeError{Kind: "output port", Index: i, Size: len(d.exportedOutputs)}
	}
	id := d.exportedOutputs[i]
	return d.children[id.SystemIndex].Outputs().IsFresh(id.PortIndex)
}

// IsEvaluationFresh reports whether every output of child childIndex is
// fresh (grounded on original_source diagram_context.h's IsEvaluationFresh(SystemIndex)).
func (d *DiagramContext[T]) IsEvaluationFresh(childIndex int) (bool, error) {
	child, err := d.child(childIndex)
	if err != nil {
		return false, err
	}
	return child.Outputs().AllFresh(), nil
}

// MarkEvaluationFresh marks every output of child childIndex fresh.
func (d *DiagramContext[T]) MarkEvaluationFresh(childIndex int) error {
	child, err := d.child(childIndex)
	if err != nil {
		return err
	}
	child.Outputs().MarkAllFresh()
	return nil
}

// PropagateInvalidOutputs marks not-fresh the output at (childIndex,
// portIndex) and, transitively through the inverse dependency graph,
// every output of every child downstream of it. On each downstream child
// it also invalidates the cache ticket registered against the input that
// wires it to its upstream source, since that ticket's cached value
// depended on the now-stale output. Invalidating one output invalidates
// all of its owning child's outputs too, since a child recomputes them
// together, and propagation continues from there. The dependency graph is
// acyclic, so the visited set is a safety net rather than a required
// terminator.
func (d *DiagramContext[T]) PropagateInvalidOutputs(childIndex, portIndex int) error {
	child, err := d.child(childIndex)
	if err != nil {
		return err
	}
	if _, err := child.Outputs().Port(portIndex); err != nil {
		return err
	}

	visited := make(map[PortIdentifier]bool)
	stack := []PortIdentifier{{SystemIndex: childIndex, PortIndex: portIndex}}
	child.Outputs().MarkAllNotFresh()
	visited[stack[0]] = true

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, dest := range d.inverseDependencyGraph[cur] {
			downstream := d.children[dest.SystemIndex]
			if downstream == nil {
				continue
			}
			if dest.PortIndex >= 0 && dest.PortIndex < len(downstream.inputTickets) {
				_ = downstream.cache.Invalidate(downstream.inputTickets[dest.PortIndex])
			}
			downstream.Outputs().MarkAllNotFresh()
			for p := 0; p < downstream.Outputs().NumPorts(); p++ {
				next := PortIdentifier{SystemIndex: dest.SystemIndex, PortIndex: p}
				if !visited[next] {
					visited[next] = true
					stack = append(stack, next)
				}
			}
		}
	}
	return nil
}

func (d *DiagramContext[T]) Cache() *Cache { return d.cache }

// Connection names one wired edge installed by Connect: Dest's input port
// reads Src's output port.
type Connection struct {
	Src  PortIdentifier
	Dest PortIdentifier
}

// Connections returns every edge installed via Connect, in no particular
// order.
func (d *DiagramContext[T]) Connections() []Connection {
	out := make([]Connection, 0, len(d.dependencyGraph))
	for to, from := range d.dependencyGraph {
		out = append(out, Connection{Src: from, Dest: to})
	}
	return out
}

func (d *DiagramContext[T]) setParent(parent *DiagramContext[T], index int) {
	d.parent = parent
	d.parentIndex = index
}

// Parent returns the owning diagram and this context's index within it,
// or (nil, -1) for a top-level diagram.
func (d *DiagramContext[T]) Parent() (*DiagramContext[T], int) {
	return d.parent, d.parentIndex
}

func (d *DiagramContext[T]) Clone() SystemContext[T] {
	return d.CloneDiagram()
}

// CloneDiagram deep-copies every child, replays every connection and every
// exported input and output, and rebuilds the aggregate state view over
// the cloned children.
func (d *DiagramContext[T]) CloneDiagram() *DiagramContext[T] {
	clone := NewDiagramContext[T](len(d.children))

	for i, c := range d.children {
		if c == nil {
			continue
		}
		clone.children[i] = c.CloneLeaf()
		clone.children[i].setParent(clone, i)
	}

	for to, from := range d.dependencyGraph {
		_ = clone.Connect(from.SystemIndex, from.PortIndex, to.SystemIndex, to.PortIndex)
	}

	clone.exportedInputs = append([]PortIdentifier(nil), d.exportedInputs...)
	clone.exportedOutputs = append([]PortIdentifier(nil), d.exportedOutputs...)

	if d.state != nil {
		_ = clone.MakeState()
	}
	return clone
}
