package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ncalf/draftboard/go/internal/apiutil"
	"github.com/ncalf/draftboard/go/internal/session"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

func setupSessionBackend(ctx context.Context, config *Config) (session.Backend, func(), error) {
	if config.Session.Backend == "memory" {
		log.Info().Dur("ttl", config.Session.TTL).Msg("using in-memory session store")
		return session.NewMemoryBackend(nil, config.Session.TTL), func() {}, nil
	}

	client, err := session.NewRedisClient(config.Session.RedisAddr, config.Session.RedisDB)
	if err != nil {
		return nil, nil, err
	}
	backend := session.NewRedisBackend(client, config.Session.TTL)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := backend.Ping(pingCtx); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return backend, func() { client.Close() }, nil
}

func newRouter(services *Services) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// Register services
	services.Players.RegisterRoutes(r)
	services.Views.RegisterRoutes(r)
	services.Session.RegisterRoutes(r)
	services.Nomination.RegisterRoutes(r)

	// Add health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return r
}

func setupServer(services *Services) *http.Server {
	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{apiutil.ClientIDHeader},
	})

	handler := c.Handler(newRouter(services))

	// Setup HTTP/2 server
	return &http.Server{
		Addr:              fmt.Sprintf(":%s", getEnv("PORT", "8080")),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
