package sheets

import (
	"errors"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
)

// Operator hints for the two failure modes guests actually hit when the
// spreadsheet is misconfigured.
const (
	HintPermission = "Sheet permission denied. Share the spreadsheet with the service account email (Editor)."
	HintRange      = "Sheet or range not found. Check GUEST_LIST_SHEET and RSVP tab names."
)

// Hint classifies a storage failure into operator guidance, or "" when
// the cause is not recognizable. Explicit googleapi status codes are
// checked first; matching on error text is a best-effort fallback for
// errors that arrive unwrapped.
func Hint(err error) string {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusForbidden:
			return HintPermission
		case http.StatusNotFound:
			return HintRange
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "permission") || strings.Contains(msg, "forbidden"):
		return HintPermission
	case strings.Contains(msg, "not found") || strings.Contains(msg, "unable to parse range"):
		return HintRange
	}
	return ""
}
