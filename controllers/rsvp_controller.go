package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"wedding-eticket/models"
	"wedding-eticket/sheets"
	"wedding-eticket/utils"
)

// RSVPService is the slice of the RSVP store the handlers need.
type RSVPService interface {
	Get(ctx context.Context, token string) (models.Submission, error)
	Create(ctx context.Context, token, status, message, deviceType, location string) (*models.RSVPRecord, error)
	Update(ctx context.Context, token, status, message, deviceType, location string) (*models.RSVPRecord, error)
	Configured() bool
}

// RSVPController serves GET/POST/PATCH /api/rsvp.
type RSVPController struct {
	store          RSVPService
	guestListSheet string // only used to pick the not-found hint
	log            zerolog.Logger
}

func NewRSVPController(store RSVPService, guestListSheet string, log zerolog.Logger) *RSVPController {
	return &RSVPController{store: store, guestListSheet: guestListSheet, log: log}
}

// RSVPInput is the POST/PATCH body.
type RSVPInput struct {
	Token      string `json:"token"`
	Status     string `json:"status"`
	Message    string `json:"message"`
	DeviceType string `json:"device_type"`
}

// Get handles GET /api/rsvp?g=token or ?b=token, reporting whether the
// guest has submitted and, if so, the stored submission.
func (rc *RSVPController) Get(c *gin.Context) {
	if !rc.store.Configured() {
		rc.unavailable(c)
		return
	}
	token := models.NormalizeToken(tokenFromQuery(c))
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing token"})
		return
	}

	sub, err := rc.store.Get(c.Request.Context(), token)
	switch {
	case errors.Is(err, sheets.ErrNoSubmission):
		c.JSON(http.StatusOK, gin.H{"submitted": false})
	case errors.Is(err, sheets.ErrNotConfigured):
		rc.unavailable(c)
	case err != nil:
		rc.log.Error().Err(err).Str("token", token).Msg("rsvp fetch failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch RSVP"})
	default:
		c.JSON(http.StatusOK, gin.H{
			"submitted": true,
			"status":    sub.Status,
			"reg_dttm":  orNull(sub.RegDttm),
			"mod_dttm":  orNull(sub.ModDttm),
			"message":   sub.Message,
		})
	}
}

// Create handles POST /api/rsvp, the guest's first submission.
func (rc *RSVPController) Create(c *gin.Context) {
	if !rc.store.Configured() {
		rc.unavailable(c)
		return
	}
	token, status, message, device, ok := rc.parseInput(c)
	if !ok {
		return
	}
	location := utils.LocationFromHeaders(c.Request.Header)

	rec, err := rc.store.Create(c.Request.Context(), token, status, message, device, location)
	switch {
	case errors.Is(err, sheets.ErrGuestNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Guest not found", "hint": rc.notFoundHint()})
	case errors.Is(err, sheets.ErrAlreadySubmitted):
		c.JSON(http.StatusConflict, gin.H{"error": "Already submitted. Use update to change."})
	case errors.Is(err, sheets.ErrNotConfigured):
		rc.unavailable(c)
	case err != nil:
		rc.fail(c, err)
	default:
		c.JSON(http.StatusOK, gin.H{"ok": true, "status": rec.Status})
	}
}

// Update handles PATCH /api/rsvp, rewriting an existing submission.
func (rc *RSVPController) Update(c *gin.Context) {
	if !rc.store.Configured() {
		rc.unavailable(c)
		return
	}
	token, status, message, device, ok := rc.parseInput(c)
	if !ok {
		return
	}
	location := utils.LocationFromHeaders(c.Request.Header)

	rec, err := rc.store.Update(c.Request.Context(), token, status, message, device, location)
	switch {
	case errors.Is(err, sheets.ErrGuestNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Guest not found", "hint": rc.notFoundHint()})
	case errors.Is(err, sheets.ErrNoSubmission):
		c.JSON(http.StatusNotFound, gin.H{"error": "No RSVP found. Submit first."})
	case errors.Is(err, sheets.ErrNotConfigured):
		rc.unavailable(c)
	case err != nil:
		rc.fail(c, err)
	default:
		c.JSON(http.StatusOK, gin.H{"ok": true, "status": rec.Status, "updated": true})
	}
}

// parseInput binds and validates the POST/PATCH body. On failure the
// response has already been written and ok is false. Nothing reaches
// storage before these checks pass.
func (rc *RSVPController) parseInput(c *gin.Context) (token, status, message, device string, ok bool) {
	var input RSVPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	token = models.NormalizeToken(input.Token)
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing token"})
		return
	}
	status, err := models.ParseStatus(input.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	message = strings.TrimSpace(models.TruncateRunes(input.Message, models.MaxMessageLen))
	device = strings.TrimSpace(models.TruncateRunes(input.DeviceType, models.MaxDeviceTypeLen))
	return token, status, message, device, true
}

func (rc *RSVPController) unavailable(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": "RSVP requires GOOGLE_SHEET_ID and GUEST_SHEET_CREDENTIALS"})
}

// fail logs the store failure in full and answers with either a
// recognized operator hint or a generic message carrying a capped
// excerpt of the cause.
func (rc *RSVPController) fail(c *gin.Context, err error) {
	rc.log.Error().Err(err).Msg("rsvp store failure")
	msg := "Failed to save RSVP"
	if hint := sheets.Hint(err); hint != "" {
		msg = hint
	} else {
		msg += ": " + models.TruncateRunes(err.Error(), 100)
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

func (rc *RSVPController) notFoundHint() string {
	if rc.guestListSheet != "" {
		return "Token not in guest list. Check GUEST_LIST_SHEET and sheet columns A:B (groom), D:E (bride)."
	}
	return "Token not in guest list. If guest list is on a named sheet (not first tab), set GUEST_LIST_SHEET env var."
}

func orNull(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
