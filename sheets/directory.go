package sheets

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"wedding-eticket/models"
)

// DirectoryTTL is how long a fetched guest list is served from memory
// before the sheet is consulted again.
const DirectoryTTL = 5 * time.Minute

// RangeReader reads one value range from the backing spreadsheet.
type RangeReader interface {
	Read(ctx context.Context, rng string) ([][]interface{}, error)
}

// Directory resolves invitation tokens to guest display names. A static
// snapshot exported at build time answers hits instantly; the live sheet
// is consulted only for snapshot misses, through a TTL cache.
type Directory struct {
	reader     RangeReader // nil when the backend is unconfigured
	groomRange string
	brideRange string
	snapshot   map[string]string
	cache      *directoryCache
	log        zerolog.Logger
}

// NewDirectory builds a Directory over client (which may be nil when the
// backend is unconfigured) and an optional static snapshot.
func NewDirectory(client *Client, cfg Config, snapshot map[string]string, log zerolog.Logger) *Directory {
	groom, bride := cfg.GuestListRanges()
	d := &Directory{
		groomRange: groom,
		brideRange: bride,
		snapshot:   snapshot,
		cache:      newDirectoryCache(DirectoryTTL, time.Now),
		log:        log,
	}
	if client != nil {
		d.reader = client
	}
	return d
}

// Configured reports whether the live sheet backend is reachable.
func (d *Directory) Configured() bool {
	return d.reader != nil
}

// HasSnapshot reports whether a non-empty static snapshot was loaded.
func (d *Directory) HasSnapshot() bool {
	return len(d.snapshot) > 0
}

// Resolve looks up a guest name by token. Snapshot first; on miss the
// live directory is fetched. An unknown token returns "" with a nil
// error so callers can distinguish "no such guest" from backend failure.
func (d *Directory) Resolve(ctx context.Context, token string) (string, error) {
	if name, ok := d.snapshot[token]; ok {
		return name, nil
	}
	data, err := d.FetchAll(ctx)
	if err != nil {
		return "", err
	}
	return data[token], nil
}

// FetchAll returns the full token→name mapping from the live sheet,
// served from cache within DirectoryTTL of the last successful fetch.
// Both side ranges are read in parallel; failure of either aborts the
// fetch rather than returning a one-sided list.
func (d *Directory) FetchAll(ctx context.Context) (map[string]string, error) {
	if d.reader == nil {
		return nil, ErrNotConfigured
	}
	if data, ok := d.cache.get(); ok {
		return data, nil
	}

	var groomRows, brideRows [][]interface{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := d.reader.Read(gctx, d.groomRange)
		groomRows = rows
		return err
	})
	g.Go(func() error {
		rows, err := d.reader.Read(gctx, d.brideRange)
		brideRows = rows
		return err
	})
	if err := g.Wait(); err != nil {
		d.log.Error().Err(err).Msg("guest list fetch failed")
		return nil, fmt.Errorf("guest list fetch: %w", err)
	}

	// Tokens are prefix-disjoint across sides, so merging cannot collide.
	data := normalizeSide(groomRows, "g", models.GroomToken)
	for token, name := range normalizeSide(brideRows, "b", models.BrideToken) {
		data[token] = name
	}
	d.cache.put(data)
	return data, nil
}

var urlPattern = regexp.MustCompile(`(?i)^https?://`)

// normalizeSide turns raw two-column rows of one invitation side into
// token→name entries. A row either carries an explicit token in its
// first column with the name in the second, or just a name in the first
// column, for which a token is synthesized from the row position. The
// URL check keeps image-link cells from being mistaken for names.
func normalizeSide(rows [][]interface{}, prefix string, isSideToken func(string) bool) map[string]string {
	data := make(map[string]string, len(rows))
	for i, row := range rows {
		first := models.CellString(row, 0)
		second := models.CellString(row, 1)

		var token, name string
		secondIsName := second != "" && !urlPattern.MatchString(second)
		switch {
		case secondIsName && isSideToken(first):
			token = strings.ToLower(first)
			name = second
		case first != "":
			token = fmt.Sprintf("%s%03d", prefix, i+1)
			name = first
		}
		if token != "" && name != "" {
			data[token] = name
		}
	}
	return data
}
