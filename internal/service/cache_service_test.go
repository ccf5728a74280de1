package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hassansardar246/eclero-availability-api/internal/dto"
	"github.com/hassansardar246/eclero-availability-api/internal/models"
	appErrors "github.com/hassansardar246/eclero-availability-api/pkg/errors"
)

type fakeCacheRepo struct {
	store map[string][]byte
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{store: map[string][]byte{}}
}

func (f *fakeCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := f.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.store[key] = raw
	return nil
}

func (f *fakeCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	f.store = map[string][]byte{}
	return nil
}

func TestCacheServiceMissThenHit(t *testing.T) {
	cache := NewCacheService(newFakeCacheRepo(), nil, time.Minute, nil, true)

	var out string
	hit, err := cache.Get(context.Background(), "profile:email:sam@eclero.com", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, cache.Set(context.Background(), "profile:email:sam@eclero.com", "tutor-9", 0))

	hit, err = cache.Get(context.Background(), "profile:email:sam@eclero.com", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "tutor-9", out)
}

func TestCacheServiceDisabled(t *testing.T) {
	var cache *CacheService
	assert.False(t, cache.Enabled())

	hit, err := cache.Get(context.Background(), "any", nil)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, cache.Set(context.Background(), "any", "value", time.Minute))
}

func TestAvailabilityServiceProfileCacheAvoidsRepeatLookups(t *testing.T) {
	profiles := &profileReaderStub{profile: &models.Profile{ID: "tutor-9", Email: "sam@eclero.com"}}
	cache := NewCacheService(newFakeCacheRepo(), nil, time.Minute, nil, true)
	svc := NewAvailabilityService(availabilityRepoStub{}, profiles, cache, nil, nil, nil, AvailabilityOptions{
		Now: func() time.Time { return mondayUTC },
	})

	for i := 0; i < 3; i++ {
		_, err := svc.ResolveWindow(context.Background(), dto.CalendarRequest{Email: "Sam@Eclero.com", Days: 1})
		require.NoError(t, err)
	}
	assert.Equal(t, 1, profiles.calls)
}
