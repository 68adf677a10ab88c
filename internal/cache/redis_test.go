package cache

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

var _ fiber.Storage = (*Storage)(nil)

func unreachable(t *testing.T) *Storage {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 200 * time.Millisecond,
	})
	s := NewStorage(rdb, "limiter:")
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStorage_EmptyKeysSkipRedis(t *testing.T) {
	s := unreachable(t)

	v, err := s.Get("")
	assert.NoError(t, err)
	assert.Nil(t, v)
	assert.NoError(t, s.Set("", []byte("1"), time.Minute))
	assert.NoError(t, s.Set("k", nil, time.Minute))
	assert.NoError(t, s.Delete(""))
}

func TestStorage_SurfacesConnectionErrors(t *testing.T) {
	s := unreachable(t)

	_, err := s.Get("relay:1.2.3.4")
	assert.Error(t, err)
	assert.Error(t, s.Set("relay:1.2.3.4", []byte("1"), time.Minute))
}
