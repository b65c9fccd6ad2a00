package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"wedding-eticket/models"
)

// GuestDirectory resolves invitation tokens to guest display names.
type GuestDirectory interface {
	Resolve(ctx context.Context, token string) (string, error)
	Configured() bool
	HasSnapshot() bool
}

// GuestController serves the guest lookup endpoint. It only ever
// returns the single requested name, never the full list.
type GuestController struct {
	directory GuestDirectory
	log       zerolog.Logger
}

func NewGuestController(directory GuestDirectory, log zerolog.Logger) *GuestController {
	return &GuestController{directory: directory, log: log}
}

// Lookup handles GET /api/guest?g=token or ?b=token. The response is
// {"name": <string|null>}; a backend failure during the fallback fetch
// reads as an unknown guest, while a missing backend configuration is a
// distinct 503.
func (gc *GuestController) Lookup(c *gin.Context) {
	c.Header("Cache-Control", "private, max-age=300")

	token := models.NormalizeToken(tokenFromQuery(c))
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing token"})
		return
	}

	if !gc.directory.HasSnapshot() && !gc.directory.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Guest list not configured"})
		return
	}

	name, err := gc.directory.Resolve(c.Request.Context(), token)
	if err != nil {
		gc.log.Error().Err(err).Str("token", token).Msg("guest lookup failed")
		c.JSON(http.StatusOK, gin.H{"name": nil})
		return
	}
	if name == "" {
		c.JSON(http.StatusOK, gin.H{"name": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name})
}

// tokenFromQuery accepts the token under either side's parameter name.
func tokenFromQuery(c *gin.Context) string {
	if g := c.Query("g"); g != "" {
		return g
	}
	return c.Query("b")
}
