package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// ErrNotConfigured signals that the spreadsheet backend is missing its
// sheet ID or service-account credentials. Callers surface this as
// "service unavailable", never as "guest not found".
var ErrNotConfigured = errors.New("sheets backend not configured")

// Config holds the spreadsheet backend settings.
type Config struct {
	SpreadsheetID   string
	CredentialsJSON string
	GuestListSheet  string
}

// ConfigFromEnv reads the backend settings from the environment.
// GUEST_SHEET_CREDENTIALS takes precedence over the older
// GOOGLE_SHEET_CREDENTIALS name.
func ConfigFromEnv() Config {
	creds := os.Getenv("GUEST_SHEET_CREDENTIALS")
	if creds == "" {
		creds = os.Getenv("GOOGLE_SHEET_CREDENTIALS")
	}
	return Config{
		SpreadsheetID:   strings.TrimSpace(os.Getenv("GOOGLE_SHEET_ID")),
		CredentialsJSON: strings.TrimSpace(creds),
		GuestListSheet:  os.Getenv("GUEST_LIST_SHEET"),
	}
}

// Configured reports whether both required settings are present.
func (c Config) Configured() bool {
	return c.SpreadsheetID != "" && c.CredentialsJSON != ""
}

// GuestListRanges returns the groom (A:B) and bride (D:E) ranges,
// prefixed with the quoted tab name when the guest list lives on a
// named sheet. Apostrophes in the tab name are escaped by doubling.
func (c Config) GuestListRanges() (groom, bride string) {
	prefix := ""
	if c.GuestListSheet != "" {
		prefix = "'" + strings.ReplaceAll(c.GuestListSheet, "'", "''") + "'!"
	}
	return prefix + "A:B", prefix + "D:E"
}

// Client wraps the Sheets API for the one spreadsheet this app uses.
type Client struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

// NewClient authenticates against the Sheets API with the configured
// service-account credentials. Returns ErrNotConfigured when the sheet
// ID or credentials are absent, without attempting network I/O.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if !cfg.Configured() {
		return nil, ErrNotConfigured
	}
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets auth: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: cfg.SpreadsheetID}, nil
}

// Read fetches all rows of one value range.
func (c *Client) Read(ctx context.Context, rng string) ([][]interface{}, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

// Append inserts row at the end of rng. RAW keeps the values as given,
// with no format inheritance from neighboring rows.
func (c *Client) Append(ctx context.Context, rng string, row []interface{}) error {
	_, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, rng, &sheetsapi.ValueRange{Values: [][]interface{}{row}}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	return err
}

// Update rewrites rng in place with row.
func (c *Client) Update(ctx context.Context, rng string, row []interface{}) error {
	_, err := c.svc.Spreadsheets.Values.
		Update(c.spreadsheetID, rng, &sheetsapi.ValueRange{Values: [][]interface{}{row}}).
		ValueInputOption("RAW").
		Context(ctx).Do()
	return err
}
