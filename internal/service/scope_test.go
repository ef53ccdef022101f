package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopes_BeginAndDone(t *testing.T) {
	s := NewScopes()
	ctx, done := s.Begin(context.Background(), ViewOrders)
	assert.Equal(t, []string{ViewOrders}, s.Active())
	assert.NoError(t, ctx.Err())

	done()
	assert.Empty(t, s.Active())
	assert.Error(t, ctx.Err(), "done releases the scope context")
	assert.NoError(t, discarded(context.Background()))
}

func TestScopes_NewerFetchSupersedesOlder(t *testing.T) {
	s := NewScopes()
	first, doneFirst := s.Begin(context.Background(), ViewOrders)
	second, doneSecond := s.Begin(context.Background(), ViewOrders)
	defer doneSecond()

	require.Error(t, first.Err())
	assert.ErrorIs(t, context.Cause(first), ErrSuperseded)
	assert.ErrorIs(t, discarded(first), context.Canceled)
	assert.NoError(t, second.Err())

	// Finishing the stale fetch must not drop the newer one.
	doneFirst()
	assert.Equal(t, []string{ViewOrders}, s.Active())
}

func TestScopes_Teardown(t *testing.T) {
	s := NewScopes()
	ctx, done := s.Begin(context.Background(), ViewProducts)
	defer done()

	assert.True(t, s.Teardown(ViewProducts))
	assert.ErrorIs(t, context.Cause(ctx), ErrViewClosed)
	assert.False(t, s.Teardown(ViewProducts))
}

func TestScopes_ViewsAreIndependent(t *testing.T) {
	s := NewScopes()
	orders, doneOrders := s.Begin(context.Background(), ViewOrders)
	defer doneOrders()
	support, doneSupport := s.Begin(context.Background(), ViewSupport)
	defer doneSupport()

	s.Teardown(ViewSupport)
	assert.NoError(t, orders.Err())
	assert.Error(t, support.Err())
}

func TestScopes_TeardownAll(t *testing.T) {
	s := NewScopes()
	a, doneA := s.Begin(context.Background(), ViewDashboard)
	defer doneA()
	b, doneB := s.Begin(context.Background(), ViewAnalytics)
	defer doneB()

	s.TeardownAll()
	assert.Error(t, a.Err())
	assert.Error(t, b.Err())
	assert.Empty(t, s.Active())
}

func TestScopes_ParentCancellation(t *testing.T) {
	s := NewScopes()
	parent, cancel := context.WithCancel(context.Background())
	ctx, done := s.Begin(parent, ViewUploads)
	defer done()

	cancel()
	assert.ErrorIs(t, discarded(ctx), context.Canceled)
}

func TestIsView(t *testing.T) {
	assert.True(t, IsView(ViewOrders))
	assert.False(t, IsView("billing"))
}
