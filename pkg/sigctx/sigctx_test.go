package sigctx_test

import (
	"context"
	"testing"

	"github.com/niksmo/storefront/pkg/sigctx"
	"github.com/stretchr/testify/assert"
)

func TestNotifyContextFollowsParent(t *testing.T) {
	parent, cancelParent := context.WithCancel(t.Context())
	ctx, stop := sigctx.NotifyContext(parent)
	defer stop()

	assert.NoError(t, ctx.Err())
	cancelParent()
	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestNotifyContextStop(t *testing.T) {
	ctx, stop := sigctx.NotifyContext(t.Context())
	stop()
	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
