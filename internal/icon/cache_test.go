package icon

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	mu     sync.Mutex
	data   map[string]string
	ttls   map[string]time.Duration
	getErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	val, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(val, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = fmt.Sprint(value)
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

type countingProvider struct {
	mu    sync.Mutex
	calls map[string]int
	err   error
}

func (c *countingProvider) Icon(_ context.Context, name string) (template.HTML, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.calls == nil {
		c.calls = map[string]int{}
	}
	c.calls[name]++
	if c.err != nil {
		return "", c.err
	}
	return template.HTML(`<svg data-icon-source="polaris/` + name + `"></svg>`), nil
}

func TestCached_StoresAndServes(t *testing.T) {
	store := newFakeRedis()
	next := &countingProvider{}
	p := NewCached(next, store, "polaris", time.Hour)

	first, err := p.Icon(context.Background(), "add")
	require.NoError(t, err)
	second, err := p.Icon(context.Background(), "add")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, next.calls["add"])
	assert.Equal(t, string(first), store.data["polaris:icon:polaris/add"])
	assert.Equal(t, time.Hour, store.ttls["polaris:icon:polaris/add"])
}

func TestCached_FallsThroughOnCacheError(t *testing.T) {
	store := newFakeRedis()
	store.getErr = errors.New("connection refused")
	next := &countingProvider{}
	p := NewCached(next, store, "polaris", time.Minute)

	_, err := p.Icon(context.Background(), "cancel")
	require.NoError(t, err)
	_, err = p.Icon(context.Background(), "cancel")
	require.NoError(t, err)

	assert.Equal(t, 2, next.calls["cancel"])
}

func TestCached_DoesNotStoreFailures(t *testing.T) {
	store := newFakeRedis()
	next := &countingProvider{err: ErrNotFound}
	p := NewCached(next, store, "polaris", time.Minute)

	_, err := p.Icon(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, store.data)
}
