package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"fuel-route-service/internal/adapters/cache"
	"fuel-route-service/internal/adapters/mapbox"
	"fuel-route-service/internal/config"
	"fuel-route-service/internal/geocode"
	"fuel-route-service/internal/platform/db"
	"fuel-route-service/internal/ports"
	"fuel-route-service/internal/stations"
)

// prewarm geocodes the cheapest unresolved stations into the persistent
// coordinate cache ahead of serving traffic.
func main() {
	limit := flag.Int("limit", 0, "max geocoder calls (0 = config value)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load("config.yml")
	if err != nil {
		log.Fatal(err)
	}
	if *limit > 0 {
		cfg.Prewarm.Limit = *limit
	}

	client, err := mapbox.NewClient(cfg.Mapbox.AccessToken)
	if err != nil {
		log.Fatal(err)
	}

	coordCache, closeCache, err := openCoordinateCache(cfg.Cache)
	if err != nil {
		log.Fatal(err)
	}
	defer closeCache()

	sts, err := stations.LoadCSV(cfg.FuelCSV)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("loaded stations=%d path=%s", len(sts), cfg.FuelCSV)

	broker := geocode.NewBroker(client, coordCache)
	geocode.Prewarm(context.Background(), sts, broker, cfg.Prewarm.Limit)
}

func openCoordinateCache(cfg config.CacheConfig) (ports.CoordinateCache, func(), error) {
	switch cfg.Backend {
	case "sqlite":
		conn, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := cache.InitSQLiteSchema(conn); err != nil {
			conn.Close()
			return nil, nil, err
		}
		return cache.NewSqliteCoordinateCache(conn), func() { conn.Close() }, nil

	case "postgres":
		conn, err := db.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := cache.InitPostgresSchema(conn); err != nil {
			conn.Close()
			return nil, nil, err
		}
		return cache.NewSQLCoordinateCache(conn), func() { conn.Close() }, nil

	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(context.Background()).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("verify redis connection to %q: %w", cfg.RedisAddr, err)
		}
		return cache.NewRedisCoordinateCache(client), func() { client.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

