package router

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/unilife-dev/unilife/internal/middleware/metrics"
	"github.com/unilife-dev/unilife/internal/setup"
)

// New creates and configures the mux router with all the routes.
func New(deps *setup.Dependencies) *mux.Router {
	r := mux.NewRouter()

	// gzip every response
	r.Use(handlers.CompressHandler)

	// credentialed CORS for the browser frontend
	r.Use(handlers.CORS(
		handlers.AllowedOrigins(deps.Config.Public.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowCredentials(),
	))

	r.Use(metrics.Middleware)

	// wildcard OPTIONS handler so preflight requests don't 404
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.HandleFunc("/health", h.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// uploaded media
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.Media.Root()))))

	api := r.PathPrefix("/api").Subrouter()

	// auth
	api.HandleFunc("/register", h.Register).Methods("POST")
	api.HandleFunc("/login", h.Login).Methods("POST")
	api.HandleFunc("/logout", h.Logout).Methods("POST")

	// users
	users := api.PathPrefix("/users").Subrouter()
	users.Handle("/me", authMw.NeedAuth()(http.HandlerFunc(h.Me))).Methods("GET")
	users.Handle("/me/avatar", authMw.NeedAuth()(http.HandlerFunc(h.UploadAvatar))).Methods("POST")
	users.HandleFunc("/by-email", h.UserByEmail).Methods("GET")

	// posts and comments
	api.HandleFunc("/posts", h.GetPosts).Methods("GET")
	api.Handle("/posts", authMw.OptionalAuth()(http.HandlerFunc(h.CreatePost))).Methods("POST")
	api.HandleFunc("/posts/{id}", h.GetPost).Methods("GET")
	api.HandleFunc("/posts/{id}/comments", h.GetComments).Methods("GET")
	api.Handle("/posts/{id}/comments", authMw.NeedAuth()(http.HandlerFunc(h.CreateComment))).Methods("POST")
	api.Handle("/posts/{id}/comments/{cid}", authMw.NeedAuth()(http.HandlerFunc(h.DeleteComment))).Methods("DELETE")

	// direct messages
	api.Handle("/messages", authMw.NeedAuth()(http.HandlerFunc(h.GetMessages))).Methods("GET")
	api.Handle("/messages", authMw.NeedAuth()(http.HandlerFunc(h.SendMessage))).Methods("POST")
	api.Handle("/messages/threads", authMw.NeedAuth()(http.HandlerFunc(h.GetThreads))).Methods("GET")

	return r
}
