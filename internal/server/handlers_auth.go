package server

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/priyanshps/fundtrack/internal/common"
	"github.com/priyanshps/fundtrack/internal/models"
)

// --- JWT helpers ---

// signJWT creates a signed HMAC-SHA256 JWT for the given user.
func signJWT(user *models.User, config *common.AuthConfig) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.UserID,
		"email": user.Email,
		"iss":   "fundtrack-server",
		"iat":   now.Unix(),
		"exp":   now.Add(config.GetTokenExpiry()).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWTSecret))
}

// validateJWT parses and validates a JWT token string using the given secret.
func validateJWT(tokenString string, secret []byte) (*jwt.Token, jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return token, claims, nil
}

// --- Credential validation ---

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// isValidPassword enforces the password policy: at least 8 characters with at
// least one lowercase letter, one uppercase letter, one digit, and one
// special character from @$!%*?&, using only those character classes.
func isValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, c := range password {
		switch {
		case c >= 'a' && c <= 'z':
			hasLower = true
		case c >= 'A' && c <= 'Z':
			hasUpper = true
		case c >= '0' && c <= '9':
			hasDigit = true
		case strings.ContainsRune("@$!%*?&", c):
			hasSpecial = true
		default:
			return false
		}
	}
	return hasLower && hasUpper && hasDigit && hasSpecial
}

// --- Auth handlers ---

// handleRegister handles POST /api/auth/register.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := req.Password

	if email == "" || password == "" {
		WriteError(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	if !isValidEmail(email) {
		WriteError(w, http.StatusBadRequest, "Invalid email format")
		return
	}
	if !isValidPassword(password) {
		WriteError(w, http.StatusBadRequest, "Password must be at least 8 characters long, with at least 1 uppercase letter, 1 lowercase letter, 1 number, and 1 special character.")
		return
	}

	ctx := r.Context()
	store := s.app.Storage.UserStore()

	if _, err := store.GetUserByEmail(ctx, email); err == nil {
		WriteError(w, http.StatusBadRequest, "Email already in use")
		return
	}

	// Hash password with bcrypt (truncate to 72 bytes, the bcrypt input limit)
	passwordBytes := []byte(password)
	if len(passwordBytes) > 72 {
		passwordBytes = passwordBytes[:72]
	}
	hash, err := bcrypt.GenerateFromPassword(passwordBytes, 10)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	user := &models.User{
		UserID:       uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := store.SaveUser(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("Failed to save user")
		WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	s.logger.Info().Str("user_id", user.UserID).Msg("User registered")

	WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered",
		"userId":  user.UserID,
	})
}

// handleLogin handles POST /api/auth/login.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := req.Password

	if email == "" || password == "" {
		WriteError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := s.app.Storage.UserStore().GetUserByEmail(r.Context(), email)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	passwordBytes := []byte(password)
	if len(passwordBytes) > 72 {
		passwordBytes = passwordBytes[:72]
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), passwordBytes); err != nil {
		WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := signJWT(user, &s.app.Config.Auth)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to sign JWT")
		WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
	})
}
