package simcore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCacheSetGetSwap(t *testing.T) {
	c := NewCache()
	tk, err := c.MakeTicket()
	require.NoError(t, err)

	_, err = c.Set(tk, NewSimpleValue(42))
	require.NoError(t, err)

	v, ok, err := c.Get(tk)
	require.NoError(t, err)
	require.True(t, ok)
	got, ok := ValueAs[int](v)
	require.True(t, ok)
	require.Equal(t, 42, got)

	prev, err := c.Swap(tk, NewSimpleValue(43))
	require.NoError(t, err)
	prevVal, ok := ValueAs[int](prev)
	require.True(t, ok)
	require.Equal(t, 42, prevVal)

	v, ok, err = c.Get(tk)
	require.NoError(t, err)
	require.True(t, ok)
	got, _ = ValueAs[int](v)
	require.Equal(t, 43, got)
}

func TestCacheRecursiveInvalidation(t *testing.T) {
	c := NewCache()
	t0, err := c.MakeTicket()
	require.NoError(t, err)
	t1, err := c.MakeTicket(t0)
	require.NoError(t, err)
	t2, err := c.MakeTicket(t0, t1)
	require.NoError(t, err)

	_, err = c.Set(t0, NewSimpleValue(0))
	require.NoError(t, err)
	_, err = c.Set(t1, NewSimpleValue(1))
	require.NoError(t, err)
	_, err = c.Set(t2, NewSimpleValue(2))
	require.NoError(t, err)

	require.NoError(t, c.Invalidate(t1))

	_, ok, _ := c.Get(t0)
	require.True(t, ok, "t0 is not a dependent of t1")

	_, ok, _ = c.Get(t1)
	require.False(t, ok)

	_, ok, _ = c.Get(t2)
	require.False(t, ok)
}

func TestCacheInvalidationContinuesThroughAlreadyInvalid(t *testing.T) {
	c := NewCache()
	t0, _ := c.MakeTicket()
	t1, _ := c.MakeTicket(t0)
	t2, _ := c.MakeTicket(t0, t1)

	_, _ = c.Set(t0, NewSimpleValue(0))
	_, _ = c.Set(t1, NewSimpleValue(1))
	_, _ = c.Set(t2, NewSimpleValue(2))

	require.NoError(t, c.Invalidate(t1))

	// t2 is repopulated without re-invalidating t1's ancestors.
	_, err := c.Set(t2, NewSimpleValue(76))
	require.NoError(t, err)

	require.NoError(t, c.Invalidate(t1))

	_, ok, _ := c.Get(t2)
	require.False(t, ok, "invalidate must propagate through an already-invalid intermediate")
}

func TestCacheBorrowSurvivesInvalidation(t *testing.T) {
	c := NewCache()
	t0, _ := c.MakeTicket()
	t1, _ := c.MakeTicket(t0)

	_, _ = c.Set(t0, NewSimpleValue(0))
	_, _ = c.Set(t1, NewSimpleValue(1))

	p, ok, err := c.Get(t1)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, c.Invalidate(t1))

	_, ok, _ = c.Get(t1)
	require.False(t, ok)

	// The borrow obtained before Invalidate is still readable and unchanged.
	val, ok := ValueAs[int](p)
	require.True(t, ok)
	require.Equal(t, 1, val)
}

func TestCacheCloneIndependence(t *testing.T) {
	c := NewCache()
	t0, _ := c.MakeTicket()
	t1, _ := c.MakeTicket(t0)
	t2, _ := c.MakeTicket(t0, t1)

	_, _ = c.Set(t0, NewSimpleValue(0))
	_, _ = c.Set(t1, NewSimpleValue(1))
	_, _ = c.Set(t2, NewSimpleValue(2))

	clone := c.Clone()
	require.NoError(t, clone.Invalidate(t0))

	_, ok, _ := clone.Get(t0)
	require.False(t, ok)
	_, ok, _ = clone.Get(t1)
	require.False(t, ok)
	_, ok, _ = clone.Get(t2)
	require.False(t, ok)

	_, ok, _ = c.Get(t0)
	require.True(t, ok, "original must be unaffected by clone invalidation")
	v, ok, _ := c.Get(t2)
	require.True(t, ok)
	got, _ := ValueAs[int](v)
	require.Equal(t, 2, got)
}

func TestCacheUnknownTicket(t *testing.T) {
	c := NewCache()
	bogus := Ticket(17)

	_, err := c.Set(bogus, NewSimpleValue(1))
	var unknown *UnknownTicketError
	require.True(t, errors.As(err, &unknown))
	require.Equal(t, bogus, unknown.Ticket)

	_, _, err = c.Get(bogus)
	require.True(t, errors.As(err, &unknown))

	_, err = c.MakeTicket(bogus)
	require.True(t, errors.As(err, &unknown))
}

func TestCacheGetNeverComputes(t *testing.T) {
	c := NewCache()
	tk, _ := c.MakeTicket()

	_, ok, err := c.Get(tk)
	require.NoError(t, err)
	require.False(t, ok, "a freshly allocated ticket starts invalid")
}
