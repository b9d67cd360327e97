package service

import (
	"context"
	"testing"

	"dental-clinic-api/internal/domain/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*DayScheduleCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewDayScheduleCache(client, testLogger()), mr
}

func TestDayScheduleCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	_, ok := cache.Get(ctx, "2026-09-01")
	assert.False(t, ok)

	appointments := []entity.Appointment{
		{ID: 1, PatientID: 1, PatientName: "Ana García", Date: "2026-09-01", Time: "09:00", Duration: 45, Status: entity.AppointmentStatusConfirmed},
	}
	cache.Set(ctx, "2026-09-01", appointments)

	cached, ok := cache.Get(ctx, "2026-09-01")
	require.True(t, ok)
	require.Len(t, cached, 1)
	assert.Equal(t, "Ana García", cached[0].PatientName)
	assert.Equal(t, "09:00", cached[0].Time)
}

func TestDayScheduleCacheInvalidate(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, "2026-09-01", []entity.Appointment{{ID: 1}})
	cache.Invalidate(ctx, "2026-09-01")

	_, ok := cache.Get(ctx, "2026-09-01")
	assert.False(t, ok)
}

func TestDayScheduleCacheEntryExpires(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, "2026-09-01", []entity.Appointment{{ID: 1}})
	mr.FastForward(defaultDayScheduleTTL * 2)

	_, ok := cache.Get(ctx, "2026-09-01")
	assert.False(t, ok)
}

func TestDayScheduleCacheDropsCorruptEntries(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(dayScheduleKeyPrefix+"2026-09-01", "not json"))

	_, ok := cache.Get(ctx, "2026-09-01")
	assert.False(t, ok)
	assert.False(t, mr.Exists(dayScheduleKeyPrefix+"2026-09-01"))
}

func TestDayScheduleCacheNilClientIsDisabled(t *testing.T) {
	cache := NewDayScheduleCache(nil, testLogger())
	ctx := context.Background()

	assert.False(t, cache.Enabled())
	cache.Set(ctx, "2026-09-01", []entity.Appointment{{ID: 1}})
	_, ok := cache.Get(ctx, "2026-09-01")
	assert.False(t, ok)
	cache.Invalidate(ctx, "2026-09-01")
}
