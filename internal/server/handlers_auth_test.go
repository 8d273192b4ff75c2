package server

import (
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Success(t *testing.T) {
	srv := newTestServer(t, &stubNAVClient{})

	rec := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "user@example.com",
		"password": "Valid1Pass!",
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, "User registered", body["message"])
	assert.NotEmpty(t, body["userId"])
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantMsg  string
	}{
		{"missing email", "", "Valid1Pass!", "Email and password are required"},
		{"missing password", "user@example.com", "", "Email and password are required"},
		{"bad email", "not-an-email", "Valid1Pass!", "Invalid email format"},
		{"email without tld", "user@host", "Valid1Pass!", "Invalid email format"},
		{"short password", "user@example.com", "V1a!", "Password must be at least 8 characters long, with at least 1 uppercase letter, 1 lowercase letter, 1 number, and 1 special character."},
		{"no uppercase", "user@example.com", "valid1pass!", "Password must be at least 8 characters long, with at least 1 uppercase letter, 1 lowercase letter, 1 number, and 1 special character."},
		{"no digit", "user@example.com", "ValidPass!", "Password must be at least 8 characters long, with at least 1 uppercase letter, 1 lowercase letter, 1 number, and 1 special character."},
		{"no special", "user@example.com", "Valid1Pass", "Password must be at least 8 characters long, with at least 1 uppercase letter, 1 lowercase letter, 1 number, and 1 special character."},
		{"disallowed character", "user@example.com", "Valid1Pass#", "Password must be at least 8 characters long, with at least 1 uppercase letter, 1 lowercase letter, 1 number, and 1 special character."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, &stubNAVClient{})

			rec := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
				"email":    tt.email,
				"password": tt.password,
			})

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantMsg, decodeBody(t, rec)["error"])
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	srv := newTestServer(t, &stubNAVClient{})
	creds := map[string]string{"email": "user@example.com", "password": "Valid1Pass!"}

	rec := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", creds)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/auth/register", "", creds)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already in use", decodeBody(t, rec)["error"])
}

func TestRegister_EmailNormalized(t *testing.T) {
	srv := newTestServer(t, &stubNAVClient{})

	rec := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "  User@Example.COM  ",
		"password": "Valid1Pass!",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Same address in canonical form collides
	rec = doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "user@example.com",
		"password": "Valid1Pass!",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already in use", decodeBody(t, rec)["error"])
}

func TestLogin_Success(t *testing.T) {
	srv := newTestServer(t, &stubNAVClient{})
	token := registerAndLogin(t, srv, "user@example.com", "Valid1Pass!")
	require.NotEmpty(t, token)

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	assert.Equal(t, "user@example.com", claims["email"])
	assert.Equal(t, "fundtrack-server", claims["iss"])
	assert.NotEmpty(t, claims["sub"])
}

func TestLogin_WrongPassword(t *testing.T) {
	srv := newTestServer(t, &stubNAVClient{})
	registerAndLogin(t, srv, "user@example.com", "Valid1Pass!")

	rec := doJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "user@example.com",
		"password": "Wrong1Pass!",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", decodeBody(t, rec)["error"])
}

func TestLogin_UnknownUser(t *testing.T) {
	srv := newTestServer(t, &stubNAVClient{})

	rec := doJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "Valid1Pass!",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", decodeBody(t, rec)["error"])
}

func TestLogin_MissingFields(t *testing.T) {
	srv := newTestServer(t, &stubNAVClient{})

	rec := doJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "user@example.com",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email and password are required", decodeBody(t, rec)["error"])
}
