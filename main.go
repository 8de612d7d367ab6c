package main

import (
	"crypto/tls"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"tasks-api/api"
	"tasks-api/storage"
)

func main() {
	if dbg, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil && dbg {
		log.SetLevel(log.DebugLevel)
	}

	version := os.Getenv("APP_VERSION")
	if version == "" {
		version = "1.0.0"
	}

	// The store is process-local: every replica owns an independent
	// collection and ID counter, so scaling out fragments the data.
	store := storage.NewMemory()
	var backing api.Storage = store
	if redisConn := os.Getenv("REDIS_CONNECTION_STRING"); redisConn != "" {
		ttl := time.Minute
		if v := os.Getenv("TASKS_CACHE_TTL"); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil || d <= 0 {
				log.Fatalf("invalid TASKS_CACHE_TTL: %v", err)
			}
			ttl = d
		}
		rc := redis.NewClient(parseRedisOptions(redisConn))
		backing = storage.NewCache(store, rc, ttl)
	}

	e := echo.New()
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(api.GzipRequestMiddleware())
	e.Use(echoprometheus.NewMiddleware("tasks_api"))
	e.GET("/metrics", echoprometheus.NewHandler())

	logger := log.New()
	api.Register(e, backing, version, logger)

	listenAddr := ":8080"
	if val, ok := os.LookupEnv("PORT"); ok {
		listenAddr = ":" + val
	}

	e.Logger.Fatal(e.Start(listenAddr))
}

// parseRedisOptions accepts a redis URL or a comma separated connection
// string of the form "host:port,password=...,ssl=true".
func parseRedisOptions(connStr string) *redis.Options {
	opts, err := redis.ParseURL(connStr)
	if err == nil {
		return opts
	}
	parts := strings.Split(connStr, ",")
	opts = &redis.Options{Addr: parts[0]}
	for _, p := range parts[1:] {
		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch strings.ToLower(kv[0]) {
		case "password":
			opts.Password = kv[1]
		case "ssl":
			if strings.ToLower(kv[1]) == "true" {
				opts.TLSConfig = &tls.Config{}
			}
		}
	}
	return opts
}
