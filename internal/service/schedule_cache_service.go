package service

import (
	"context"
	"encoding/json"
	"time"

	"dental-clinic-api/internal/domain/entity"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Redis key prefix for cached day views of the appointment calendar
	dayScheduleKeyPrefix = "schedule:day:"

	defaultDayScheduleTTL = 5 * time.Minute
)

// DayScheduleCache keeps per-day appointment lists in Redis so dashboard and
// calendar reads skip the store. A nil client disables the cache entirely;
// every cache failure degrades to a store read, never to an error.
type DayScheduleCache struct {
	redisClient *redis.Client
	ttl         time.Duration
	log         *logrus.Logger
}

func NewDayScheduleCache(redisClient *redis.Client, log *logrus.Logger) *DayScheduleCache {
	return &DayScheduleCache{
		redisClient: redisClient,
		ttl:         defaultDayScheduleTTL,
		log:         log,
	}
}

func (c *DayScheduleCache) Enabled() bool {
	return c != nil && c.redisClient != nil
}

// Get returns the cached appointments for a date and whether the cache held
// an entry.
func (c *DayScheduleCache) Get(ctx context.Context, date string) ([]entity.Appointment, bool) {
	if !c.Enabled() {
		return nil, false
	}

	raw, err := c.redisClient.Get(ctx, dayScheduleKeyPrefix+date).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warnf("Day schedule cache read failed for %s: %+v", date, err)
		}
		return nil, false
	}

	var appointments []entity.Appointment
	if err := json.Unmarshal(raw, &appointments); err != nil {
		c.log.Warnf("Day schedule cache entry for %s is corrupt, dropping it: %+v", date, err)
		c.redisClient.Del(ctx, dayScheduleKeyPrefix+date)
		return nil, false
	}
	return appointments, true
}

func (c *DayScheduleCache) Set(ctx context.Context, date string, appointments []entity.Appointment) {
	if !c.Enabled() {
		return
	}

	raw, err := json.Marshal(appointments)
	if err != nil {
		c.log.Warnf("Failed to marshal day schedule for %s: %+v", date, err)
		return
	}
	if err := c.redisClient.Set(ctx, dayScheduleKeyPrefix+date, raw, c.ttl).Err(); err != nil {
		c.log.Warnf("Day schedule cache write failed for %s: %+v", date, err)
	}
}

// Invalidate drops the cached view for a date after any appointment write
func (c *DayScheduleCache) Invalidate(ctx context.Context, date string) {
	if !c.Enabled() {
		return
	}
	if err := c.redisClient.Del(ctx, dayScheduleKeyPrefix+date).Err(); err != nil {
		c.log.Warnf("Day schedule cache invalidation failed for %s: %+v", date, err)
	}
}
