// pkg/object/redis_test.go

package object

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	data := testData(6000)
	require.NoError(t, mr.Set("docs/c.pdf", string(data)))

	b, err := CreateStorage("redis", mr.Addr(), "", "")
	require.NoError(t, err)
	defer b.(*redisStore).Close()
	testBackend(t, b, "docs/c.pdf", data)
	assert.Equal(t, "redis://"+mr.Addr(), b.String())
}

func TestRedisStoreURL(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.Select(2)
	require.NoError(t, mr.Set("doc", "hello world"))

	b, err := CreateStorage("redis", "redis://"+mr.Addr()+"/2", "", "")
	require.NoError(t, err)
	defer b.(*redisStore).Close()

	got, err := b.ReadRange(context.Background(), "doc", 5, 6)
	require.NoError(t, err)
	assert.Equal(t, "world", string(got))
}
