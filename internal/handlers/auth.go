package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gestdata/registrosgo/internal/auth"
)

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// login handles user login
func (r *Router) login(w http.ResponseWriter, req *http.Request) {
	var loginReq LoginRequest
	if err := json.NewDecoder(req.Body).Decode(&loginReq); err != nil {
		respondError(w, http.StatusBadRequest, "Payload inválido")
		return
	}

	if err := r.checker.Check(loginReq.Username, loginReq.Password); err != nil {
		respondError(w, http.StatusUnauthorized, "Credenciales inválidas")
		return
	}

	token, err := auth.GenerateToken(loginReq.Username, r.cfg.Auth.JWTSecret)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error generando token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ok":    true,
		"token": token,
	})
}
