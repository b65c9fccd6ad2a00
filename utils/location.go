package utils

import (
	"net/http"
	"net/url"
	"strings"
)

// LocationFromHeaders assembles a coarse location string from the geo
// headers the hosting edge attaches to each request. Present fields are
// joined as "city, region, country (postal) [lat,lng]"; empty fields
// are omitted entirely. The city value arrives URL-encoded, so it is
// decoded defensively.
func LocationFromHeaders(h http.Header) string {
	city := h.Get("X-Vercel-Ip-City")
	if city != "" {
		if decoded, err := url.QueryUnescape(city); err == nil {
			city = decoded
		}
	}
	region := h.Get("X-Vercel-Ip-Country-Region")
	country := h.Get("X-Vercel-Ip-Country")
	postal := h.Get("X-Vercel-Ip-Postal-Code")
	lat := h.Get("X-Vercel-Ip-Latitude")
	lng := h.Get("X-Vercel-Ip-Longitude")

	parts := make([]string, 0, 3)
	for _, p := range []string{city, region, country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	loc := strings.Join(parts, ", ")
	if postal != "" {
		if loc != "" {
			loc += " "
		}
		loc += "(" + postal + ")"
	}
	if lat != "" && lng != "" {
		if loc != "" {
			loc += " "
		}
		loc += "[" + lat + "," + lng + "]"
	}
	return strings.TrimSpace(loc)
}
