package sheets

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/api/googleapi"
)

func TestHintFromStatusCode(t *testing.T) {
	err := fmt.Errorf("append rsvp row: %w", &googleapi.Error{Code: 403, Message: "The caller does not have permission"})
	if have, want := Hint(err), HintPermission; have != want {
		t.Errorf("403: have %q, want %q", have, want)
	}

	err = fmt.Errorf("fetch rsvp rows: %w", &googleapi.Error{Code: 404, Message: "Requested entity was not found"})
	if have, want := Hint(err), HintRange; have != want {
		t.Errorf("404: have %q, want %q", have, want)
	}
}

func TestHintFromMessageFallback(t *testing.T) {
	cases := map[string]string{
		"rpc error: PERMISSION_DENIED":        HintPermission,
		"request forbidden by policy":         HintPermission,
		"Unable to parse range: RSVP!A2:I":    HintRange,
		"sheet not found":                     HintRange,
		"connection reset by peer":            "",
	}
	for msg, want := range cases {
		if have := Hint(errors.New(msg)); have != want {
			t.Errorf("Hint(%q): have %q, want %q", msg, have, want)
		}
	}
}
