package simcore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContinuousStateSlicesAreIndependent(t *testing.T) {
	cs := NewContinuousState[float64]([]float64{1, 2}, []float64{3}, []float64{4, 5, 6})

	require.Equal(t, []float64{1, 2, 3, 4, 5, 6}, cs.Vector())

	cs.SetV([]float64{9})
	require.Equal(t, []float64{1, 2}, cs.Q())
	require.Equal(t, []float64{4, 5, 6}, cs.Z())
	require.Equal(t, []float64{1, 2, 9, 4, 5, 6}, cs.Vector())
}

func TestContinuousStateCloneSharesNoBackingArray(t *testing.T) {
	cs := NewContinuousState[float64]([]float64{1}, []float64{2}, []float64{3})
	clone := cs.Clone()

	clone.Q()[0] = 100
	require.Equal(t, []float64{1}, cs.Q(), "mutating the clone must not affect the original")
}

func TestDiscreteStateGroups(t *testing.T) {
	ds := NewDiscreteState[float64]([]float64{1, 2}, []float64{3})
	require.Equal(t, 2, ds.NumGroups())

	g, err := ds.Group(1)
	require.NoError(t, err)
	require.Equal(t, []float64{3}, g)

	_, err = ds.Group(5)
	require.Error(t, err)
}

func TestModalStateGetSet(t *testing.T) {
	ms := NewModalState(NewSimpleValue(1), NewSimpleValue(2))

	v, err := ms.Get(0)
	require.NoError(t, err)
	got, ok := ValueAs[int](v)
	require.True(t, ok)
	require.Equal(t, 1, got)

	require.NoError(t, ms.Set(0, NewSimpleValue(42)))
	v, _ = ms.Get(0)
	got, _ = ValueAs[int](v)
	require.Equal(t, 42, got)

	require.Error(t, ms.Set(9, NewSimpleValue(0)))
}

func TestStateCloneIsDeep(t *testing.T) {
	s := NewState[float64](
		NewContinuousState[float64]([]float64{1}, []float64{2}, []float64{3}),
		NewDiscreteState[float64]([]float64{4}),
		NewModalState(NewSimpleValue("mode-a")),
	)

	clone := s.Clone()
	clone.Continuous().Q()[0] = 99
	require.Equal(t, []float64{1}, s.Continuous().Q())

	mv, _ := clone.Modal().Get(0)
	clone.Modal().Set(0, NewSimpleValue("mode-b"))
	orig, _ := s.Modal().Get(0)
	origStr, _ := ValueAs[string](orig)
	require.Equal(t, "mode-a", origStr)
	_ = mv
}
