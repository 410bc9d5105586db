package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is what a signed token asserts about its bearer.
type Claims struct {
	UserID uint   `json:"id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HS256 tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

func (m *TokenManager) Generate(u *User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Verify returns the principal a valid token describes.
func (m *TokenManager) Verify(tokenString string) (Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return Principal{}, ErrInvalidToken
	}
	if err := claims.Role.Validate(); err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return Principal{ID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// ========================
// REGISTER HANDLER
// ========================

// Register lets anyone sign up as user or event_planner. Admin accounts
// only come from the ADMIN_EMAIL bootstrap.
func (a *API) Register(c *gin.Context) {
	var body RegisterRequest
	if !bindJSON(c, &body) {
		return
	}
	if body.Role == "" {
		body.Role = RoleUser
	}
	if err := body.Role.Validate(); err != nil {
		respondError(c, "register", err)
		return
	}
	if body.Role == RoleAdmin {
		respondError(c, "register", forbidden("register as admin"))
		return
	}

	ctx := c.Request.Context()
	email := strings.ToLower(strings.TrimSpace(body.Email))
	if _, err := a.store.FindUserByEmail(ctx, email); err == nil {
		jsonError(c, http.StatusBadRequest, "user already exists")
		return
	} else if !isNotFound(err) {
		respondError(c, "register", err)
		return
	}

	hash, err := hashPassword(body.Password)
	if err != nil {
		respondError(c, "register", err)
		return
	}
	user := User{Name: strings.TrimSpace(body.Name), Email: email, PasswordHash: hash, Role: body.Role}
	if err := a.store.Create(ctx, &user); err != nil {
		respondError(c, "register", err)
		return
	}

	token, err := a.tokens.Generate(&user)
	if err != nil {
		respondError(c, "register", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

// ========================
// LOGIN HANDLER
// ========================

func (a *API) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := a.store.FindUserByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if isNotFound(err) {
			jsonError(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		respondError(c, "login", err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		jsonError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := a.tokens.Generate(user)
	if err != nil {
		respondError(c, "login", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func (a *API) Profile(c *gin.Context) {
	user, err := a.store.FindUser(c.Request.Context(), currentPrincipal(c).ID)
	if err != nil {
		respondError(c, "profile", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// EnsureAdmin creates the bootstrap admin once. An existing account with the
// same email is left untouched.
func EnsureAdmin(ctx context.Context, store *Store, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := store.FindUserByEmail(ctx, email); err == nil {
		return nil
	} else if !isNotFound(err) {
		return err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	admin := User{Name: "Administrator", Email: email, PasswordHash: hash, Role: RoleAdmin}
	if err := store.Create(ctx, &admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	slog.Info("admin account created", "email", email)
	return nil
}
