package simcore

// Value is a type-erased, cloneable payload. Cache entries, modal state
// slots, and abstract input/output ports all store a Value without ever
// inspecting its concrete type; only the owner that boxed it knows how to
// unbox it again, via ValueAs.
type Value interface {
	// Clone returns a new Value holding an independently owned copy of the
	// same concrete payload. Mutating the clone must never be observable
	// through the original.
	Clone() Value
}

// boxedValue adapts any Go value into a Value by pairing it with the clone
// function that knows how to deep-copy it.
type boxedValue[T any] struct {
	payload T
	cloneFn func(T) T
}

// NewValue boxes payload as a Value. cloneFn must return an independently
// owned copy of payload; for payloads that are safe to copy by assignment
// (most structs and scalars), pass Identity[T] for cloneFn.
func NewValue[T any](payload T, cloneFn func(T) T) Value {
	return &boxedValue[T]{payload: payload, cloneFn: cloneFn}
}

// NewSimpleValue boxes a payload whose zero-cost Go assignment already
// produces an independent copy (numeric scalars, fixed-size structs with no
// pointer/slice fields).
func NewSimpleValue[T any](payload T) Value {
	return NewValue(payload, Identity[T])
}

// NewVectorValue boxes a []T payload, cloning via element-wise copy so the
// clone shares no backing array with the original.
func NewVectorValue[T any](payload []T) Value {
	return NewValue(payload, CloneSlice[T])
}

func (b *boxedValue[T]) Clone() Value {
	return &boxedValue[T]{payload: b.cloneFn(b.payload), cloneFn: b.cloneFn}
}

// ValueAs unboxes v as T. It reports false, not an error, if v is nil or
// was boxed with a different concrete type: a type mismatch on unboxing is
// a caller bug to detect, not a Cache-level failure.
func ValueAs[T any](v Value) (T, bool) {
	if v == nil {
		var zero T
		return zero, false
	}
	b, ok := v.(*boxedValue[T])
	if !ok {
		var zero T
		return zero, false
	}
	return b.payload, true
}

// Identity is a no-op clone for value types that copy safely by assignment.
func Identity[T any](v T) T { return v }

// CloneSlice returns an independent copy of s, sharing no backing array.
func CloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
