package simcore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiagramContinuousStateWritesThroughToChildren(t *testing.T) {
	childA := NewContinuousState[float64]([]float64{1, 2}, []float64{10}, nil)
	childB := NewContinuousState[float64]([]float64{3}, []float64{20, 21}, nil)

	agg := newDiagramContinuousState[float64]([]ContinuousState[float64]{childA, childB})
	require.Equal(t, []float64{1, 2, 3}, agg.Q())
	require.Equal(t, []float64{10, 20, 21}, agg.V())

	agg.SetQ([]float64{100, 101, 102})
	require.Equal(t, []float64{100, 101}, childA.Q())
	require.Equal(t, []float64{102}, childB.Q())
}

func TestDiagramDiscreteStateDispatchesToOwningChild(t *testing.T) {
	childA := NewDiscreteState[float64]([]float64{1})
	childB := NewDiscreteState[float64]([]float64{2}, []float64{3})

	agg := newDiagramDiscreteState[float64]([]DiscreteState[float64]{childA, childB})
	require.Equal(t, 3, agg.NumGroups())

	require.NoError(t, agg.SetGroup(2, []float64{99}))
	g, err := childB.Group(1)
	require.NoError(t, err)
	require.Equal(t, []float64{99}, g)
}

func TestDiagramModalStateDispatchesToOwningChild(t *testing.T) {
	childA := NewModalState(NewSimpleValue("a0"))
	childB := NewModalState(NewSimpleValue("b0"), NewSimpleValue("b1"))

	agg := newDiagramModalState([]ModalState{childA, childB})
	require.Equal(t, 3, agg.Size())

	require.NoError(t, agg.Set(2, NewSimpleValue("b1-updated")))
	v, err := childB.Get(1)
	require.NoError(t, err)
	got, _ := ValueAs[string](v)
	require.Equal(t, "b1-updated", got)
}
