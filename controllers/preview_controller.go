package controllers

import (
	"html/template"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"wedding-eticket/middleware"
	"wedding-eticket/models"
)

// PreviewConfig is the site copy rendered into link previews.
type PreviewConfig struct {
	SiteTitle  string
	ShortTitle string
	InviteLine string
	ImagePath  string
	FBAppID    string
}

// PreviewConfigFromEnv reads the preview copy, with generic defaults so
// the site works before any branding is configured.
func PreviewConfigFromEnv() PreviewConfig {
	cfg := PreviewConfig{
		SiteTitle:  getenv("SITE_TITLE", "Wedding Invitation"),
		InviteLine: getenv("SITE_INVITE_LINE", "You are cordially invited —"),
		ImagePath:  getenv("SITE_PREVIEW_IMAGE", "/images/ticket-cover.jpg"),
		FBAppID:    os.Getenv("META_APP_ID"),
	}
	cfg.ShortTitle = getenv("SITE_SHORT_TITLE", cfg.SiteTitle)
	if cfg.FBAppID == "" {
		cfg.FBAppID = os.Getenv("FB_APP_ID")
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// PreviewController renders the Open Graph HTML served to link-preview
// crawlers, with the resolved guest name worked into the meta tags so a
// shared invitation shows who it is for.
type PreviewController struct {
	directory GuestDirectory
	cfg       PreviewConfig
	tmpl      *template.Template
	log       zerolog.Logger
}

func NewPreviewController(directory GuestDirectory, cfg PreviewConfig, log zerolog.Logger) *PreviewController {
	return &PreviewController{
		directory: directory,
		cfg:       cfg,
		tmpl:      template.Must(template.New("og").Parse(previewTemplate)),
		log:       log,
	}
}

// Home serves the invitation page, diverting recognized link-preview
// crawlers that carry a well-formed token to the Open Graph variant.
func (pc *PreviewController) Home(staticDir string) gin.HandlerFunc {
	index := filepath.Join(staticDir, "index.html")
	return func(c *gin.Context) {
		token := models.NormalizeToken(tokenFromQuery(c))
		if middleware.IsCrawler(c.GetHeader("User-Agent")) && models.ValidToken(token) {
			pc.Render(c)
			return
		}
		c.File(index)
	}
}

// Render handles the preview request itself.
func (pc *PreviewController) Render(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=300")

	param := "g"
	token := models.NormalizeToken(c.Query("g"))
	if token == "" {
		param = "b"
		token = models.NormalizeToken(c.Query("b"))
	}

	baseURL := requestBaseURL(c.Request)
	pageURL := baseURL + "/"
	if token != "" {
		pageURL = baseURL + "/?" + param + "=" + token
	}

	var guestName string
	if token != "" {
		name, err := pc.directory.Resolve(c.Request.Context(), token)
		if err != nil {
			pc.log.Error().Err(err).Str("token", token).Msg("preview guest lookup failed")
		}
		guestName = name
	}

	title := pc.cfg.SiteTitle
	description := pc.cfg.InviteLine
	if guestName != "" {
		title = pc.cfg.ShortTitle + " — " + guestName
		description = pc.cfg.InviteLine + "\n" + guestName
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	err := pc.tmpl.Execute(c.Writer, map[string]string{
		"Title":       title,
		"Description": description,
		"ImageURL":    baseURL + pc.cfg.ImagePath,
		"PageURL":     pageURL,
		"FBAppID":     pc.cfg.FBAppID,
	})
	if err != nil {
		pc.log.Error().Err(err).Msg("preview render failed")
	}
}

// requestBaseURL reconstructs the externally visible origin, trusting
// the forwarding headers the hosting edge sets.
func requestBaseURL(r *http.Request) string {
	host := r.Header.Get("X-Forwarded-Host")
	if host == "" {
		host = r.Host
	}
	proto := r.Header.Get("X-Forwarded-Proto")
	if proto != "https" && proto != "http" {
		proto = "https"
	}
	return proto + "://" + host
}

const previewTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<meta property="og:type" content="website">
<meta property="og:image" content="{{.ImageURL}}">
<meta property="og:image:url" content="{{.ImageURL}}">
<meta property="og:image:secure_url" content="{{.ImageURL}}">
<meta property="og:title" content="{{.Title}}">
<meta property="og:description" content="{{.Description}}">
<meta property="og:url" content="{{.PageURL}}">
<meta property="og:site_name" content="Wedding Invitation">
{{if .FBAppID}}<meta property="fb:app_id" content="{{.FBAppID}}">
{{end}}<meta name="twitter:card" content="summary_large_image">
<meta name="twitter:title" content="{{.Title}}">
<meta name="twitter:description" content="{{.Description}}">
<meta name="twitter:image" content="{{.ImageURL}}">
</head>
<body>
<p><a href="{{.PageURL}}">Click to open the invitation</a></p>
</body>
</html>
`
