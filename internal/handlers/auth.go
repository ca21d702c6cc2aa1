package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sumitsharma12k/timesheet-portal/internal/auth"
	"github.com/sumitsharma12k/timesheet-portal/internal/store"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Store     *store.Store
	Secret    []byte
	ExpireDur time.Duration
}

// ==========================
// Login (plain credential check against the users collection)
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	user, err := auth.Authenticate(h.Store, input.Username, input.Password)
	if err != nil {
		slog.Error("login: load users", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if user == nil {
		// One message for unknown user and wrong password.
		JSONError(w, "invalid username or password", http.StatusUnauthorized)
		return
	}

	expire := h.ExpireDur
	if expire == 0 {
		expire = 24 * time.Hour
	}
	claims := jwt.MapClaims{
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(expire).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.Secret)
	if err != nil {
		JSONError(w, "failed to issue token", http.StatusInternalServerError)
		return
	}

	JSONResponse(w, map[string]interface{}{
		"token": signed,
		"user":  user.Public(),
	}, http.StatusOK)
}
