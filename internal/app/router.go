package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/poofware/contractor-access-service/internal/routes"
	"github.com/rs/cors"
)

// NewHTTPHandler mounts the service routes and wraps them in CORS.
// Twilio posts from its own infrastructure; browsers only ever send
// preflights, which rs/cors answers before the router sees them.
func NewHTTPHandler(health, smsWebhook http.HandlerFunc) http.Handler {
	router := mux.NewRouter()
	router.HandleFunc(routes.Health, health).Methods(http.MethodGet)
	router.HandleFunc(routes.AccessSMSWebhook, smsWebhook).Methods(http.MethodPost)

	co := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	return co.Handler(router)
}
