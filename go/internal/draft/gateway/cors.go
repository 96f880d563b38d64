package gateway

import (
	"net/http"

	"github.com/rs/cors"
)

// CORSMiddleware allows dashboards served from any origin
func CORSMiddleware(next http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With"},
		AllowCredentials: false,
		MaxAge:           86400,
	}).Handler(next)
}
