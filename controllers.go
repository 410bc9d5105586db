package main

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// API bundles the collaborators every handler needs.
type API struct {
	store  *Store
	files  FileStore
	tokens *TokenManager
	cfg    Config
}

func NewAPI(store *Store, files FileStore, tokens *TokenManager, cfg Config) *API {
	return &API{store: store, files: files, tokens: tokens, cfg: cfg}
}

// -----------------------------
// Helper functions
// -----------------------------

func jsonError(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"error": msg})
}

// respondError maps the error taxonomy onto status codes. Anything outside
// it is logged and answered with a generic 500.
func respondError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		jsonError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrForbidden):
		jsonError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrBadRequest):
		jsonError(c, http.StatusBadRequest, strings.TrimPrefix(err.Error(), ErrBadRequest.Error()+": "))
	default:
		slog.ErrorContext(c.Request.Context(), op+" failed", "error", err, "path", c.FullPath())
		jsonError(c, http.StatusInternalServerError, "server error")
		return
	}
	slog.WarnContext(c.Request.Context(), op+" rejected", "error", err, "user_id", currentPrincipal(c).ID)
}

// currentPrincipal returns the principal AuthMiddleware attached. Routes
// without the middleware get the zero value, which no rule authorizes.
func currentPrincipal(c *gin.Context) Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(Principal); ok {
			return p
		}
	}
	return Principal{}
}

func idParam(c *gin.Context, name, resource string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		jsonError(c, http.StatusBadRequest, "invalid "+resource+" id")
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return false
	}
	return true
}

// required reports the first empty field, in argument order.
func required(fields ...string) error {
	for i := 0; i+1 < len(fields); i += 2 {
		if strings.TrimSpace(fields[i+1]) == "" {
			return badRequest(fields[i] + " is required")
		}
	}
	return nil
}
