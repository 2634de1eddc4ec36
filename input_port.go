package simcore

// InputPort is the shared contract both input-port variants satisfy: a
// freestanding port that owns a value supplied by the client, or a
// dependent port that is a non-owning view onto another subsystem's
// output slot.
type InputPort[T Scalar] interface {
	// VectorValue returns the port's numeric vector, or ok=false if the
	// port is disconnected or holds an abstract (non-vector) value.
	VectorValue() (v []T, ok bool)

	// AbstractValue returns the port's type-erased value, or ok=false if
	// the port is disconnected or holds a vector value.
	AbstractValue() (v Value, ok bool)

	// DataVersion returns a counter that increases every time the value
	// this port reads changes. A dependent port forwards its referent's
	// version, so a downstream cache ticket can tell whether an upstream
	// recomputation actually changed anything without re-deriving it.
	DataVersion() uint64

	// Clone returns an owned, freestanding copy of this port's current
	// value. A dependent port cloned in isolation snapshots its referent's
	// current value rather than carrying the reference forward, so the
	// clone does not depend on the original's wiring.
	Clone() InputPort[T]
}

// FreestandingInputPort exclusively owns a client-supplied payload, either
// a numeric vector or an abstract value (never both at once).
type FreestandingInputPort[T Scalar] struct {
	vector   []T
	hasVec   bool
	abstract Value
	version  uint64
}

// NewFreestandingVectorPort creates a freestanding port holding v.
func NewFreestandingVectorPort[T Scalar](v []T) *FreestandingInputPort[T] {
	return &FreestandingInputPort[T]{vector: v, hasVec: true}
}

// NewFreestandingAbstractPort creates a freestanding port holding v.
func NewFreestandingAbstractPort[T Scalar](v Value) *FreestandingInputPort[T] {
	return &FreestandingInputPort[T]{abstract: v}
}

func (p *FreestandingInputPort[T]) VectorValue() ([]T, bool) {
	if !p.hasVec {
		return nil, false
	}
	return p.vector, true
}

func (p *FreestandingInputPort[T]) AbstractValue() (Value, bool) {
	if p.hasVec {
		return nil, false
	}
	return p.abstract, p.abstract != nil
}

func (p *FreestandingInputPort[T]) DataVersion() uint64 { return p.version }

// SetVector replaces the port's vector value and bumps its version.
func (p *FreestandingInputPort[T]) SetVector(v []T) {
	p.vector = v
	p.hasVec = true
	p.abstract = nil
	p.version++
}

// SetAbstract replaces the port's abstract value and bumps its version.
func (p *FreestandingInputPort[T]) SetAbstract(v Value) {
	p.abstract = v
	p.hasVec = false
	p.vector = nil
	p.version++
}

func (p *FreestandingInputPort[T]) Clone() InputPort[T] {
	clone := &FreestandingInputPort[T]{hasVec: p.hasVec, version: p.version}
	if p.hasVec {
		clone.vector = CloneSlice(p.vector)
	} else if p.abstract != nil {
		clone.abstract = p.abstract.Clone()
	}
	return clone
}

// DependentInputPort is a non-owning reference to a sibling subsystem's
// output slot. It holds a direct pointer to the referent's OutputPortSet
// plus a slot index rather than a pointer to the slot itself, so that the
// referent can be looked up freshly after a clone rebuilds the wiring.
type DependentInputPort[T Scalar] struct {
	source *OutputPortSet[T]
	index  int
}

// NewDependentInputPort creates a port that reads source's slot at index.
// The caller (normally DiagramContext.Connect) is responsible for
// guaranteeing source outlives the returned port.
func NewDependentInputPort[T Scalar](source *OutputPortSet[T], index int) *DependentInputPort[T] {
	return &DependentInputPort[T]{source: source, index: index}
}

func (p *DependentInputPort[T]) VectorValue() ([]T, bool) {
	slot, err := p.source.Port(p.index)
	if err != nil {
		return nil, false
	}
	return slot.VectorValue()
}

func (p *DependentInputPort[T]) AbstractValue() (Value, bool) {
	slot, err := p.source.Port(p.index)
	if err != nil {
		return nil, false
	}
	return slot.AbstractValue()
}

func (p *DependentInputPort[T]) DataVersion() uint64 {
	slot, err := p.source.Port(p.index)
	if err != nil {
		return 0
	}
	return slot.version
}

// Clone snapshots the referent's current value into a freestanding port
// rather than carrying the dependency forward.
func (p *DependentInputPort[T]) Clone() InputPort[T] {
	if v, ok := p.VectorValue(); ok {
		return NewFreestandingVectorPort(CloneSlice(v))
	}
	if v, ok := p.AbstractValue(); ok && v != nil {
		return NewFreestandingAbstractPort[T](v.Clone())
	}
	return NewFreestandingVectorPort[T](nil)
}
