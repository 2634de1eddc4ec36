package simcore

// Scalar is the numeric type a Cache, State, and Context are parameterized
// over. float64 is the common case; float32 and any defined type whose
// underlying type is float32 or float64 also satisfy it. Struct-based
// number types, such as an autodiff scalar carrying derivatives, do not.
type Scalar interface {
	~float32 | ~float64
}
