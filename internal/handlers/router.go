package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gestdata/registrosgo/internal/auth"
	"github.com/gestdata/registrosgo/internal/config"
	"github.com/gestdata/registrosgo/internal/database"
	"github.com/gestdata/registrosgo/internal/middleware"
	"github.com/gorilla/mux"
)

// Router wraps the mux router and database
type Router struct {
	*mux.Router
	db      *database.DB
	cfg     *config.Config
	checker auth.CredentialChecker
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB, cfg *config.Config) *Router {
	r := &Router{
		Router: mux.NewRouter(),
		db:     db,
		cfg:    cfg,
		checker: auth.StaticChecker{
			Username: cfg.Auth.Username,
			Password: cfg.Auth.Password,
		},
	}

	// Health check endpoint (no DB involved)
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Auth routes
	r.HandleFunc("/auth/login", r.login).Methods("POST")

	// API routes
	api := r.PathPrefix("/api").Subrouter()
	if cfg.Auth.Required {
		api.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))
	}
	api.HandleFunc("/test-db", r.testDB).Methods("GET")
	api.HandleFunc("/registros", r.listRegistros).Methods("GET")
	api.HandleFunc("/registros", r.createRegistro).Methods("POST")
	api.HandleFunc("/registros/{id}", r.deleteRegistro).Methods("DELETE")
	api.HandleFunc("/registros", r.clearRegistros).Methods("DELETE")

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// testDB verifies database connectivity
func (r *Router) testDB(w http.ResponseWriter, req *http.Request) {
	if err := r.db.Ping(); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ok":      true,
		"message": "Conectado a la base de datos",
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error envelope
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"ok":    false,
		"error": message,
	})
}
