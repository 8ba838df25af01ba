package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/zentask/zentask/internal/server/auth"
	"github.com/zentask/zentask/internal/server/store"
)

// AuthHandler handles registration, login, token refresh, and identity.
type AuthHandler struct {
	users            store.UserStore
	tokens           *auth.TokenService
	passwordVerifier auth.PasswordVerifier
	validator        *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(users store.UserStore, tokens *auth.TokenService, passwordVerifier auth.PasswordVerifier) *AuthHandler {
	return &AuthHandler{
		users:            users,
		tokens:           tokens,
		passwordVerifier: passwordVerifier,
		validator:        validator.New(),
	}
}

// Register handles POST /api/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to create user")
		return
	}

	user := store.User{
		ID:             uuid.New(),
		Username:       req.Username,
		HashedPassword: hashed,
		CreatedAt:      time.Now().UTC(),
	}
	if err := h.users.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			RespondWithError(w, r, http.StatusConflict, "Username already exists")
			return
		}
		slog.Error("failed to create user", "error", err, "username", req.Username)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to create user")
		return
	}

	pair, err := h.issueTokenPair(user.ID)
	if err != nil {
		slog.Error("failed to generate tokens", "error", err, "user_id", user.ID)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication tokens")
		return
	}
	RespondWithJSON(w, r, http.StatusCreated, pair)
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.users.UserByName(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		slog.Error("failed to look up user", "error", err, "username", req.Username)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to authenticate user")
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	pair, err := h.issueTokenPair(user.ID)
	if err != nil {
		slog.Error("failed to generate tokens", "error", err, "user_id", user.ID)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication tokens")
		return
	}
	RespondWithJSON(w, r, http.StatusOK, pair)
}

// RefreshToken handles POST /api/refresh-token. It exchanges a valid
// refresh token for a new access token; the refresh token itself is
// not rotated.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := h.tokens.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		RespondWithError(w, r, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	// The account may have been removed since the token was issued.
	if _, err := h.users.UserByID(r.Context(), userID); err != nil {
		RespondWithError(w, r, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	accessToken, err := h.tokens.GenerateAccessToken(userID)
	if err != nil {
		slog.Error("failed to generate access token", "error", err, "user_id", userID)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate access token")
		return
	}
	RespondWithJSON(w, r, http.StatusOK, AccessTokenResponse{AccessToken: accessToken})
}

// Me handles GET /api/user/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.users.UserByID(r.Context(), userID)
	if err != nil {
		RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	})
}

func (h *AuthHandler) issueTokenPair(userID uuid.UUID) (TokenPairResponse, error) {
	accessToken, err := h.tokens.GenerateAccessToken(userID)
	if err != nil {
		return TokenPairResponse{}, err
	}
	refreshToken, err := h.tokens.GenerateRefreshToken(userID)
	if err != nil {
		return TokenPairResponse{}, err
	}
	return TokenPairResponse{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
