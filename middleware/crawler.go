package middleware

import "strings"

// Link-preview fetchers that should receive Open Graph HTML instead of
// the normal page. Only actual crawler bots belong here — the Messenger
// in-app browser (FBAN/FBAV/FB_IAB) must NOT match, or guests opening
// shared links inside Messenger would see the preview stub.
var crawlerUserAgents = []string{
	"facebookexternalhit",
	"facebookcatalog",
	"facebot",
	"telegrambot",
	"twitterbot",
	"linkedinbot",
	"whatsapp",
	"slackbot",
	"discordbot",
	"pinterest",
	"meta-externalagent",
	"meta-externalfetcher",
	"meta-webindexer",
}

// IsCrawler reports whether userAgent identifies a known link-preview
// crawler, by case-insensitive substring match.
func IsCrawler(userAgent string) bool {
	if userAgent == "" {
		return false
	}
	ua := strings.ToLower(userAgent)
	for _, bot := range crawlerUserAgents {
		if strings.Contains(ua, bot) {
			return true
		}
	}
	return false
}
