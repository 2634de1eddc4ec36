package simcore

// ContinuousState partitions a subsystem's continuous state into three
// independently-sized numeric slices: generalized position (q), generalized
// velocity (v), and miscellaneous continuous state (z). Vector presents
// them concatenated as q‖v‖z. Two implementations exist: leafContinuousState owns
// its slices directly; diagramContinuousState (diagram_state.go) presents
// a non-owning, write-through view over a diagram's children.
type ContinuousState[T Scalar] interface {
	Q() []T
	V() []T
	Z() []T
	SetQ([]T)
	SetV([]T)
	SetZ([]T)
	Vector() []T
	Size() int
	Clone() ContinuousState[T]
}

// leafContinuousState is the owning implementation used by every leaf
// context.
type leafContinuousState[T Scalar] struct {
	q, v, z []T
}

// NewContinuousState takes ownership of q, v, and z (no copy).
func NewContinuousState[T Scalar](q, v, z []T) ContinuousState[T] {
	return &leafContinuousState[T]{q: q, v: v, z: z}
}

func (c *leafContinuousState[T]) Q() []T { return c.q }
func (c *leafContinuousState[T]) V() []T { return c.v }
func (c *leafContinuousState[T]) Z() []T { return c.z }

func (c *leafContinuousState[T]) SetQ(q []T) { c.q = q }
func (c *leafContinuousState[T]) SetV(v []T) { c.v = v }
func (c *leafContinuousState[T]) SetZ(z []T) { c.z = z }

func (c *leafContinuousState[T]) Vector() []T {
	out := make([]T, 0, len(c.q)+len(c.v)+len(c.z))
	out = append(out, c.q...)
	out = append(out, c.v...)
	out = append(out, c.z...)
	return out
}

func (c *leafContinuousState[T]) Size() int {
	return len(c.q) + len(c.v) + len(c.z)
}

func (c *leafContinuousState[T]) Clone() ContinuousState[T] {
	return &leafContinuousState[T]{q: CloneSlice(c.q), v: CloneSlice(c.v), z: CloneSlice(c.z)}
}

// DiscreteState is an ordered sequence of numeric vectors, one per logical
// discrete-state group.
type DiscreteState[T Scalar] interface {
	NumGroups() int
	Group(i int) ([]T, error)
	SetGroup(i int, v []T) error
	Clone() DiscreteState[T]
}

type leafDiscreteState[T Scalar] struct {
	groups [][]T
}

// NewDiscreteState takes ownership of groups (no copy).
func NewDiscreteState[T Scalar](groups ...[]T) DiscreteState[T] {
	return &leafDiscreteState[T]{groups: groups}
}

func (d *leafDiscreteState[T]) NumGroups() int { return len(d.groups) }

func (d *leafDiscreteState[T]) Group(i int) ([]T, error) {
	if i < 0 || i >= len(d.groups) {
		return nil, &IndexOutOfRangeError{Kind: "discrete state group", Index: i, Size: len(d.groups)}
	}
	return d.groups[i], nil
}

func (d *leafDiscreteState[T]) SetGroup(i int, v []T) error {
	if i < 0 || i >= len(d.groups) {
		return &IndexOutOfRangeError{Kind: "discrete state group", Index: i, Size: len(d.groups)}
	}
	d.groups[i] = v
	return nil
}

func (d *leafDiscreteState[T]) Clone() DiscreteState[T] {
	out := make([][]T, len(d.groups))
	for i, g := range d.groups {
		out[i] = CloneSlice(g)
	}
	return &leafDiscreteState[T]{groups: out}
}

// ModalState is an ordered sequence of type-erased values, used for
// integer/enumerated mode variables that do not fit the numeric continuous
// or discrete containers.
type ModalState interface {
	Size() int
	Get(i int) (Value, error)
	Set(i int, v Value) error
	Clone() ModalState
}

type leafModalState struct {
	values []Value
}

// NewModalState takes ownership of values (no copy).
func NewModalState(values ...Value) ModalState {
	return &leafModalState{values: values}
}

func (m *leafModalState) Size() int { return len(m.values) }

func (m *leafModalState) Get(i int) (Value, error) {
	if i < 0 || i >= len(m.values) {
		return nil, &IndexOutOfRangeError{Kind: "modal state variable", Index: i, Size: len(m.values)}
	}
	return m.values[i], nil
}

func (m *leafModalState) Set(i int, v Value) error {
	if i < 0 || i >= len(m.values) {
		return &IndexOutOfRangeError{Kind: "modal state variable", Index: i, Size: len(m.values)}
	}
	m.values[i] = v
	return nil
}

func (m *leafModalState) Clone() ModalState {
	out := make([]Value, len(m.values))
	for i, v := range m.values {
		if v != nil {
			out[i] = v.Clone()
		}
	}
	return &leafModalState{values: out}
}

// State bundles the three sub-state containers a Context owns.
type State[T Scalar] struct {
	continuous ContinuousState[T]
	discrete   DiscreteState[T]
	modal      ModalState
}

// NewState bundles already-constructed sub-states into a State. A nil
// sub-state is replaced with an empty leaf container of that kind.
func NewState[T Scalar](continuous ContinuousState[T], discrete DiscreteState[T], modal ModalState) *State[T] {
	if continuous == nil {
		continuous = NewContinuousState[T](nil, nil, nil)
	}
	if discrete == nil {
		discrete = NewDiscreteState[T]()
	}
	if modal == nil {
		modal = NewModalState()
	}
	return &State[T]{continuous: continuous, discrete: discrete, modal: modal}
}

func (s *State[T]) Continuous() ContinuousState[T] { return s.continuous }
func (s *State[T]) Discrete() DiscreteState[T]     { return s.discrete }
func (s *State[T]) Modal() ModalState              { return s.modal }

func (s *State[T]) SetContinuous(c ContinuousState[T]) { s.continuous = c }
func (s *State[T]) SetDiscrete(d DiscreteState[T])     { s.discrete = d }
func (s *State[T]) SetModal(m ModalState)              { s.modal = m }

// Clone returns an independent deep copy of s.
func (s *State[T]) Clone() *State[T] {
	return &State[T]{
		continuous: s.continuous.Clone(),
		discrete:   s.discrete.Clone(),
		modal:      s.modal.Clone(),
	}
}
