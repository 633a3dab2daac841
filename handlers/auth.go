package handlers

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/contra19/book-search/models"
	"github.com/contra19/book-search/service"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	Store  UserStore
	Tokens *service.TokenService
	// Limiter throttles login attempts per client IP; nil disables limiting.
	Limiter *service.TokenBucket
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse pairs a fresh token with the user it was issued for.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// Register creates a user and logs them straight in. Username and email
// must be unique; the unique indexes are the backstop for races the
// pre-checks miss.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadUserInput, "invalid json")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, CodeBadUserInput, "username, email, and password required")
		return
	}
	if !models.EmailRx.MatchString(req.Email) {
		writeError(w, http.StatusBadRequest, CodeBadUserInput, "must use a valid email address")
		return
	}

	if existing, err := h.Store.UserByUsername(r.Context(), req.Username); err != nil {
		writeError(w, http.StatusInternalServerError, CodeInternal, "failed to create user")
		return
	} else if existing != nil {
		writeError(w, http.StatusConflict, CodeBadUserInput, "username already in use")
		return
	}
	if existing, err := h.Store.UserByEmail(r.Context(), req.Email); err != nil {
		writeError(w, http.StatusInternalServerError, CodeInternal, "failed to create user")
		return
	} else if existing != nil {
		writeError(w, http.StatusConflict, CodeBadUserInput, "email already in use")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, CodeInternal, "failed to create user")
		return
	}
	user := &models.User{
		Username:   req.Username,
		Email:      req.Email,
		Password:   string(hash),
		SavedBooks: []models.SavedBook{},
		CreatedAt:  time.Now(),
	}
	id, err := h.Store.CreateUser(r.Context(), user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			writeError(w, http.StatusConflict, CodeBadUserInput, "username or email already in use")
			return
		}
		writeError(w, http.StatusInternalServerError, CodeInternal, "failed to create user")
		return
	}
	user.ID = id

	token, err := h.Tokens.Issue(service.Identity{ID: id.Hex(), Username: user.Username, Email: user.Email})
	if err != nil {
		writeError(w, http.StatusInternalServerError, CodeInternal, "could not create token")
		return
	}
	writeJSON(w, http.StatusCreated, AuthResponse{Token: token, User: userToResponse(user)})
}

// Login authenticates by email and password. A missing user and a wrong
// password produce the same response; the hash comparison is constant-time
// inside bcrypt.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.Limiter != nil && !h.Limiter.Allow(clientIP(r)) {
		writeError(w, http.StatusTooManyRequests, CodeRateLimited, "too many login attempts, slow down")
		return
	}
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadUserInput, "invalid json")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, CodeBadUserInput, "email and password required")
		return
	}

	user, err := h.Store.UserByEmail(r.Context(), req.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, CodeInternal, "login failed")
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, CodeUnauthenticated, "could not authenticate user")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, CodeUnauthenticated, "could not authenticate user")
		return
	}

	token, err := h.Tokens.Issue(service.Identity{ID: user.ID.Hex(), Username: user.Username, Email: user.Email})
	if err != nil {
		writeError(w, http.StatusInternalServerError, CodeInternal, "could not create token")
		return
	}
	writeJSON(w, http.StatusOK, AuthResponse{Token: token, User: userToResponse(user)})
}

func clientIP(r *http.Request) string {
	// RealIP middleware rewrites RemoteAddr; it may or may not carry a port.
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
