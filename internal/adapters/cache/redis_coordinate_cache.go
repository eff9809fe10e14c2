package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"fuel-route-service/internal/domain"
)

const redisKeyPrefix = "stationcoord:"

// Redis-backed coordinate cache. Values are stored as "lat,lon" strings
// under a prefixed key per station; entries never expire (coordinates do
// not go stale within the dataset's lifetime).
type RedisCoordinateCache struct {
	Client *redis.Client
}

func NewRedisCoordinateCache(client *redis.Client) *RedisCoordinateCache {
	return &RedisCoordinateCache{Client: client}
}

// Fetch cached coordinates for the given station keys in one MGET.
func (r *RedisCoordinateCache) GetMany(ctx context.Context, keys []string) (map[string]domain.Coordinates, error) {
	if r.Client == nil {
		return nil, errors.New("coordinate cache: redis client is nil")
	}

	uniq := dedupeKeys(keys)
	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	redisKeys := make([]string, len(uniq))
	for i, k := range uniq {
		redisKeys[i] = redisKeyPrefix + k
	}

	values, err := r.Client.MGet(ctx, redisKeys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get coordinate cache: mget: %w", err)
	}

	out := make(map[string]domain.Coordinates, len(uniq))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		coords, err := parseCoordValue(s)
		if err != nil {
			return nil, fmt.Errorf("get coordinate cache: key=%q: %w", uniq[i], err)
		}
		out[uniq[i]] = coords
	}
	return out, nil
}

// Store station-key -> coordinate mappings in one pipeline.
func (r *RedisCoordinateCache) PutMany(ctx context.Context, coords map[string]domain.Coordinates) error {
	if r.Client == nil {
		return errors.New("coordinate cache: redis client is nil")
	}

	if len(coords) == 0 {
		return nil
	}

	pipe := r.Client.Pipeline()
	for key, c := range coords {
		if strings.TrimSpace(key) == "" {
			return errors.New("insert coordinate cache: empty station key")
		}
		pipe.Set(ctx, redisKeyPrefix+key, formatCoordValue(c), 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert coordinate cache: pipeline exec: %w", err)
	}
	return nil
}

func formatCoordValue(c domain.Coordinates) string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}

func parseCoordValue(s string) (domain.Coordinates, error) {
	lat, lon, ok := strings.Cut(s, ",")
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("malformed value %q", s)
	}
	latF, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("malformed latitude in %q: %w", s, err)
	}
	lonF, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("malformed longitude in %q: %w", s, err)
	}
	return domain.Coordinates{Lat: latF, Lon: lonF}, nil
}
