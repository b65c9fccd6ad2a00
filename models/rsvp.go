package models

import (
	"fmt"
	"strings"
)

// RSVP status values accepted from clients.
const (
	StatusConfirm   = "confirm"
	StatusDecline   = "decline"
	StatusUndecided = "undecided"
)

// Field caps applied before anything reaches storage.
const (
	MaxMessageLen    = 500
	MaxDeviceTypeLen = 50
)

// RSVPRecord is one row of the RSVP sheet range:
// token | guest_name | guest_side | status | reg_dttm | mod_dttm | message | device_type | location
type RSVPRecord struct {
	Token      string `json:"token"`
	GuestName  string `json:"guest_name"`
	Side       string `json:"guest_side"`
	Status     string `json:"status"`
	RegDttm    string `json:"reg_dttm"`
	ModDttm    string `json:"mod_dttm"`
	Message    string `json:"message"`
	DeviceType string `json:"device_type"`
	Location   string `json:"location"`
}

// Row encodes the record as a sheet row in column order.
func (r *RSVPRecord) Row() []interface{} {
	return []interface{}{
		r.Token, r.GuestName, r.Side, r.Status,
		r.RegDttm, r.ModDttm, r.Message, r.DeviceType, r.Location,
	}
}

// ParseStatus validates and canonicalizes a client-supplied status.
func ParseStatus(s string) (string, error) {
	switch status := strings.ToLower(strings.TrimSpace(s)); status {
	case StatusConfirm, StatusDecline, StatusUndecided:
		return status, nil
	default:
		return "", fmt.Errorf("status must be %s, %s, or %s",
			StatusConfirm, StatusDecline, StatusUndecided)
	}
}

// TruncateRunes caps s at n characters, counting runes so multi-byte
// guest scripts are not cut mid-character.
func TruncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// Submission is the client-visible slice of a stored RSVP row.
type Submission struct {
	Status  string
	RegDttm string
	ModDttm string
	Message string
}

// ParseRSVPRow normalizes a raw sheet row into a Submission. The RSVP
// sheet has had two shapes: the current one carries a guest_side column,
// legacy rows do not. The current shape is tried first, then the legacy
// one; rows matching neither are reported as unparseable.
func ParseRSVPRow(row []interface{}) (Submission, bool) {
	if sub, ok := parseCurrentRow(row); ok {
		return sub, true
	}
	return parseLegacyRow(row)
}

// parseCurrentRow handles the nine-column shape with guest_side at
// column C.
func parseCurrentRow(row []interface{}) (Submission, bool) {
	if len(row) < 9 {
		return Submission{}, false
	}
	if side := CellString(row, 2); side != SideGroom && side != SideBride {
		return Submission{}, false
	}
	return Submission{
		Status:  strings.ToLower(CellString(row, 3)),
		RegDttm: CellString(row, 4),
		ModDttm: CellString(row, 5),
		Message: CellString(row, 6),
	}, true
}

// parseLegacyRow handles pre-guest_side rows where status starts at
// column C.
func parseLegacyRow(row []interface{}) (Submission, bool) {
	if len(row) < 6 {
		return Submission{}, false
	}
	return Submission{
		Status:  strings.ToLower(CellString(row, 2)),
		RegDttm: CellString(row, 3),
		ModDttm: CellString(row, 4),
		Message: CellString(row, 5),
	}, true
}

// CellString reads cell i of a sheet row as a trimmed string. Sheet
// values arrive untyped; anything non-string is formatted.
func CellString(row []interface{}, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	if s, ok := row[i].(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(row[i]))
}
