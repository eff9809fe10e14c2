package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"fuel-route-service/internal/adapters/cache"
	"fuel-route-service/internal/adapters/mapbox"
	"fuel-route-service/internal/api"
	"fuel-route-service/internal/api/handlers"
	"fuel-route-service/internal/config"
	"fuel-route-service/internal/geocode"
	"fuel-route-service/internal/platform/db"
	"fuel-route-service/internal/ports"
	"fuel-route-service/internal/stations"
)

// main is the application composition root.
// It wires concrete adapters (Mapbox, the coordinate cache backend)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load("config.yml")
	if err != nil {
		log.Fatal(err)
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

	// The price dataset is the planner's whole world; refusing to start
	// without it beats serving empty plans.
	sts, err := stations.LoadCSV(cfg.FuelCSV)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("loaded stations=%d path=%s", len(sts), cfg.FuelCSV)

	broker := geocode.NewBroker(client, coordCache)

	if cfg.Prewarm.Enabled {
		go geocode.Prewarm(context.Background(), sts, broker, cfg.Prewarm.Limit)
	}

	router := api.NewRouter(api.Deps{
		Stations:   sts,
		Broker:     broker,
		Directions: client,
		Geocoder:   client,
		Maps:       client,
		Defaults: handlers.PlanDefaults{
			RangeMiles:         cfg.Defaults.RangeMiles,
			MPG:                cfg.Defaults.MPG,
			StationRadiusMiles: cfg.Defaults.StationRadiusMiles,
			GeocodeBudget:      cfg.Defaults.GeocodeBudget,
		},
	})

	// Timeouts are tuned for cold-cache planning (external API latency).
	log.Printf("Server listening addr=:%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
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
