package sheets

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// LoadSnapshot reads the static guest snapshot exported at build time.
// Inline JSON in GUEST_LIST_JSON takes precedence, then the file named
// by GUEST_LIST_FILE (default data/guests.json). A missing snapshot is
// normal and yields an empty map; only malformed JSON is an error.
func LoadSnapshot() (map[string]string, error) {
	if raw := strings.TrimSpace(os.Getenv("GUEST_LIST_JSON")); raw != "" {
		var data map[string]string
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return nil, fmt.Errorf("parse GUEST_LIST_JSON: %w", err)
		}
		return data, nil
	}

	path := os.Getenv("GUEST_LIST_FILE")
	if path == "" {
		path = "data/guests.json"
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read guest snapshot: %w", err)
	}
	var data map[string]string
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse guest snapshot %s: %w", path, err)
	}
	if data == nil {
		data = map[string]string{}
	}
	return data, nil
}
