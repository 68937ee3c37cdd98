package handlers

import (
	"log"
	"net/http"

	"github.com/taskforge/taskmanager/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// TokenResponse is the body of a successful register or authenticate call.
type TokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.Credentials
	if err := decodeBody(r, &req); err != nil {
		log.Printf("ERROR [auth.Register] decode body: %v", err)
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.authService.Register(r.Context(), req)
	if err != nil {
		respondServiceError(w, "auth.Register", err)
		return
	}

	respondJSON(w, http.StatusCreated, TokenResponse{
		Message: "User registered successfully",
		Token:   result.Token,
	})
}

// Authenticate reads credentials from the body. It is served on GET for
// existing clients and on POST.
func (h *AuthHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req service.Credentials
	if err := decodeBody(r, &req); err != nil {
		log.Printf("ERROR [auth.Authenticate] decode body: %v", err)
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.authService.Authenticate(r.Context(), req)
	if err != nil {
		respondServiceError(w, "auth.Authenticate", err)
		return
	}

	respondJSON(w, http.StatusOK, TokenResponse{
		Message: "Authentication successful",
		Token:   result.Token,
	})
}
