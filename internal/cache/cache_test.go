package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNop(t *testing.T) {
	var c Cache = Nop{}
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "worker:1", "{}", time.Minute))
	_, err := c.Get(ctx, "worker:1")
	assert.ErrorIs(t, err, ErrMiss)
	assert.NoError(t, c.Del(ctx, "worker:1"))
}
