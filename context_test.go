package simcore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLeafContextSetTimeInvalidatesTimeTicket(t *testing.T) {
	ctx := NewLeafContext[float64](NewState[float64](nil, nil, nil), nil, 0)
	derived, err := ctx.Cache().MakeTicket(ctx.TimeTicket())
	require.NoError(t, err)
	ctx.Cache().Set(derived, NewSimpleValue(1.0))

	ctx.SetTime(2.5)

	_, ok, err := ctx.Cache().Get(derived)
	require.NoError(t, err)
	require.False(t, ok, "a ticket depending on time must be invalidated by SetTime")
	require.Equal(t, 2.5, ctx.Time())
}

func TestLeafContextMutableStateInvalidatesStateTicket(t *testing.T) {
	ctx := NewLeafContext[float64](NewState[float64](NewContinuousState[float64]([]float64{1}, nil, nil), nil, nil), nil, 0)
	derived, err := ctx.Cache().MakeTicket(ctx.StateTicket())
	require.NoError(t, err)
	ctx.Cache().Set(derived, NewSimpleValue(1.0))

	ctx.MutableState().Continuous().SetQ([]float64{9})

	_, ok, err := ctx.Cache().Get(derived)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, []float64{9}, ctx.State().Continuous().Q())
}

func TestLeafContextSetInputPortInvalidatesInputTicket(t *testing.T) {
	ctx := NewLeafContext[float64](nil, nil, 1)
	inputTicket, err := ctx.InputTicket(0)
	require.NoError(t, err)
	derived, err := ctx.Cache().MakeTicket(inputTicket)
	require.NoError(t, err)
	ctx.Cache().Set(derived, NewSimpleValue(1.0))

	require.NoError(t, ctx.SetInputPort(0, NewFreestandingVectorPort[float64]([]float64{3, 4})))

	_, ok, err := ctx.Cache().Get(derived)
	require.NoError(t, err)
	require.False(t, ok)

	v, ok := ctx.VectorInput(0)
	require.True(t, ok)
	require.Equal(t, []float64{3, 4}, v)
}

func TestLeafContextOutputFreshness(t *testing.T) {
	outputs := NewOutputPortSet[float64](NewVectorOutputSlot[float64](1))
	ctx := NewLeafContext[float64](nil, outputs, 0)

	fresh, err := ctx.IsOutputPortFresh(0)
	require.NoError(t, err)
	require.False(t, fresh)

	require.NoError(t, ctx.MarkOutputPortFresh(0))
	fresh, err = ctx.IsOutputPortFresh(0)
	require.NoError(t, err)
	require.True(t, fresh)
}

func TestLeafContextCloneIsIndependent(t *testing.T) {
	ctx := NewLeafContext[float64](NewState[float64](NewContinuousState[float64]([]float64{1, 2}, nil, nil), nil, nil), nil, 1)
	ctx.SetTime(5)
	require.NoError(t, ctx.SetInputPort(0, NewFreestandingVectorPort[float64]([]float64{7})))

	clone := ctx.CloneLeaf()
	clone.SetTime(10)
	clone.MutableState().Continuous().SetQ([]float64{100, 200})
	require.NoError(t, clone.SetInputPort(0, NewFreestandingVectorPort[float64]([]float64{99})))

	require.Equal(t, float64(5), ctx.Time())
	require.Equal(t, []float64{1, 2}, ctx.State().Continuous().Q())
	v, _ := ctx.VectorInput(0)
	require.Equal(t, []float64{7}, v)

	parent, index := clone.Parent()
	require.Nil(t, parent)
	require.Equal(t, -1, index)
}

func TestLeafContextInputPortOutOfRange(t *testing.T) {
	ctx := NewLeafContext[float64](nil, nil, 1)
	err := ctx.SetInputPort(5, NewFreestandingVectorPort[float64](nil))
	require.Error(t, err)
	var rangeErr *IndexOutOfRangeError
	require.ErrorAs(t, err, &rangeErr)
}

func TestLeafContextDependentInputPortTracksSource(t *testing.T) {
	outputs := NewOutputPortSet[float64](NewVectorOutputSlot[float64](1))
	slot, err := outputs.Port(0)
	require.NoError(t, err)
	slot.SetVector([]float64{1})

	ctx := NewLeafContext[float64](nil, nil, 1)
	require.NoError(t, ctx.SetInputPort(0, NewDependentInputPort[float64](outputs, 0)))

	v, ok := ctx.VectorInput(0)
	require.True(t, ok)
	require.Equal(t, []float64{1}, v)

	slot.SetVector([]float64{42})
	v, ok = ctx.VectorInput(0)
	require.True(t, ok)
	require.Equal(t, []float64{42}, v, "a dependent port must see the source's latest value")
}
