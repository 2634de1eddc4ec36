package simcore

// diagramContinuousState presents one logical q/v/z container formed by
// concatenating the children's continuous states in child-index order.
// It owns none of the underlying slices: Vector/Q/V/Z concatenate the
// children's current slices on every read, and SetQ/SetV/SetZ split the
// incoming slice along the children's fixed segment lengths and write each
// segment straight into its owning child, so mutating the aggregate always
// writes through.
type diagramContinuousState[T Scalar] struct {
	children []ContinuousState[T]
}

func newDiagramContinuousState[T Scalar](children []ContinuousState[T]) ContinuousState[T] {
	return &diagramContinuousState[T]{children: children}
}

func (d *diagramContinuousState[T]) Q() []T {
	var out []T
	for _, c := range d.children {
		out = append(out, c.Q()...)
	}
	return out
}

func (d *diagramContinuousState[T]) V() []T {
	var out []T
	for _, c := range d.children {
		out = append(out, c.V()...)
	}
	return out
}

func (d *diagramContinuousState[T]) Z() []T {
	var out []T
	for _, c := range d.children {
		out = append(out, c.Z()...)
	}
	return out
}

func (d *diagramContinuousState[T]) SetQ(v []T) {
	offset := 0
	for _, c := range d.children {
		n := len(c.Q())
		c.SetQ(v[offset : offset+n])
		offset += n
	}
}

func (d *diagramContinuousState[T]) SetV(v []T) {
	offset := 0
	for _, c := range d.children {
		n := len(c.V())
		c.SetV(v[offset : offset+n])
		offset += n
	}
}

func (d *diagramContinuousState[T]) SetZ(v []T) {
	offset := 0
	for _, c := range d.children {
		n := len(c.Z())
		c.SetZ(v[offset : offset+n])
		offset += n
	}
}

func (d *diagramContinuousState[T]) Vector() []T {
	out := make([]T, 0, d.Size())
	out = append(out, d.Q()...)
	out = append(out, d.V()...)
	out = append(out, d.Z()...)
	return out
}

func (d *diagramContinuousState[T]) Size() int {
	total := 0
	for _, c := range d.children {
		total += c.Size()
	}
	return total
}

// Clone detaches the aggregate from its children, returning an owning leaf
// snapshot: the diagram-level state view itself is never cloned as a view
// (a DiagramContext clone rebuilds a fresh aggregate over its own cloned
// children via MakeState, see diagram_context.go).
func (d *diagramContinuousState[T]) Clone() ContinuousState[T] {
	return NewContinuousState[T](CloneSlice(d.Q()), CloneSlice(d.V()), CloneSlice(d.Z()))
}

// diagramDiscreteState concatenates the children's discrete-state groups,
// in child-index order, into one logical group sequence. Each group is
// owned by exactly one child; Group/SetGroup simply dispatch to that child.
type diagramDiscreteState[T Scalar] struct {
	children []DiscreteState[T]
	owner    []int // group index -> child index
	local    []int // group index -> that child's own group index
}

func newDiagramDiscreteState[T Scalar](children []DiscreteState[T]) DiscreteState[T] {
	d := &diagramDiscreteState[T]{children: children}
	for ci, c := range children {
		for g := 0; g < c.NumGroups(); g++ {
			d.owner = append(d.owner, ci)
			d.local = append(d.local, g)
		}
	}
	return d
}

func (d *diagramDiscreteState[T]) NumGroups() int { return len(d.owner) }

func (d *diagramDiscreteState[T]) Group(i int) ([]T, error) {
	if i < 0 || i >= len(d.owner) {
		return nil, &IndexOutOfRangeError{Kind: "discrete state group", Index: i, Size: len(d.owner)}
	}
	return d.children[d.owner[i]].Group(d.local[i])
}

func (d *diagramDiscreteState[T]) SetGroup(i int, v []T) error {
	if i < 0 || i >= len(d.owner) {
		return &IndexOutOfRangeError{Kind: "discrete state group", Index: i, Size: len(d.owner)}
	}
	return d.children[d.owner[i]].SetGroup(d.local[i], v)
}

func (d *diagramDiscreteState[T]) Clone() DiscreteState[T] {
	groups := make([][]T, d.NumGroups())
	for i := range groups {
		groups[i], _ = d.Group(i)
		groups[i] = CloneSlice(groups[i])
	}
	return NewDiscreteState[T](groups...)
}

// diagramModalState concatenates the children's modal-state variables, in
// child-index order, analogously to diagramDiscreteState.
type diagramModalState struct {
	children []ModalState
	owner    []int
	local    []int
}

func newDiagramModalState(children []ModalState) ModalState {
	d := &diagramModalState{children: children}
	for ci, c := range children {
		for g := 0; g < c.Size(); g++ {
			d.owner = append(d.owner, ci)
			d.local = append(d.local, g)
		}
	}
	return d
}

func (d *diagramModalState) Size() int { return len(d.owner) }

func (d *diagramModalState) Get(i int) (Value, error) {
	if i < 0 || i >= len(d.owner) {
		return nil, &IndexOutOfRangeError{Kind: "modal state variable", Index: i, Size: len(d.owner)}
	}
	return d.children[d.owner[i]].Get(d.local[i])
}

func (d *diagramModalState) Set(i int, v Value) error {
	if i < 0 || i >= len(d.owner) {
		return &IndexOutOfRangeError{Kind: "modal state variable", Index: i, Size: len(d.owner)}
	}
	return d.children[d.owner[i]].Set(d.local[i], v)
}

func (d *diagramModalState) Clone() ModalState {
	values := make([]Value, d.Size())
	for i := range values {
		v, _ := d.Get(i)
		if v != nil {
			values[i] = v.Clone()
		}
	}
	return NewModalState(values...)
}
