package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"wedding-eticket/models"
)

// RSVP rows live on their own tab, below a single header row.
const (
	rsvpRange        = "RSVP!A2:I"
	rsvpHeaderOffset = 2 // data row 0 is sheet row 2
)

// RSVP store outcomes the handler layer maps to status codes.
var (
	ErrGuestNotFound    = errors.New("guest not found")
	ErrAlreadySubmitted = errors.New("rsvp already submitted")
	ErrNoSubmission     = errors.New("no rsvp submitted")
)

// RangeWriter appends or rewrites rows in the backing spreadsheet.
type RangeWriter interface {
	Append(ctx context.Context, rng string, row []interface{}) error
	Update(ctx context.Context, rng string, row []interface{}) error
}

// RSVPStore reads and mutates RSVP rows, one row per token. There is no
// transactional guard in the backing store: two concurrent creates for
// the same token can both pass the existing-row scan and produce
// duplicate rows. Accepted for guest-list-sized traffic.
type RSVPStore struct {
	reader    RangeReader
	writer    RangeWriter
	directory *Directory
	now       func() time.Time
	log       zerolog.Logger
}

// NewRSVPStore builds the store over client (nil when the backend is
// unconfigured) and the guest directory used for token validation.
func NewRSVPStore(client *Client, directory *Directory, log zerolog.Logger) *RSVPStore {
	s := &RSVPStore{
		directory: directory,
		now:       time.Now,
		log:       log,
	}
	if client != nil {
		s.reader = client
		s.writer = client
	}
	return s
}

// Configured reports whether the live sheet backend is reachable.
func (s *RSVPStore) Configured() bool {
	return s.reader != nil && s.writer != nil
}

// Get returns the stored submission for token, or ErrNoSubmission.
func (s *RSVPStore) Get(ctx context.Context, token string) (models.Submission, error) {
	if !s.Configured() {
		return models.Submission{}, ErrNotConfigured
	}
	rows, err := s.reader.Read(ctx, rsvpRange)
	if err != nil {
		return models.Submission{}, fmt.Errorf("fetch rsvp rows: %w", err)
	}
	_, row, ok := findRow(rows, token)
	if !ok {
		return models.Submission{}, ErrNoSubmission
	}
	sub, ok := models.ParseRSVPRow(row)
	if !ok {
		return models.Submission{}, ErrNoSubmission
	}
	return sub, nil
}

// Create appends a first-time RSVP row. The registration timestamp is
// set once here and never changes afterwards.
func (s *RSVPStore) Create(ctx context.Context, token, status, message, deviceType, location string) (*models.RSVPRecord, error) {
	if !s.Configured() {
		return nil, ErrNotConfigured
	}
	name, rows, err := s.lookup(ctx, token)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrGuestNotFound
	}
	if _, _, ok := findRow(rows, token); ok {
		return nil, ErrAlreadySubmitted
	}

	rec := &models.RSVPRecord{
		Token:      token,
		GuestName:  name,
		Side:       models.SideOf(token),
		Status:     status,
		RegDttm:    s.now().UTC().Format(time.RFC3339),
		Message:    message,
		DeviceType: deviceType,
		Location:   location,
	}
	if err := s.writer.Append(ctx, rsvpRange, rec.Row()); err != nil {
		return nil, fmt.Errorf("append rsvp row: %w", err)
	}
	return rec, nil
}

// Update rewrites an existing RSVP row in place, preserving the original
// registration timestamp and stamping the modification time.
func (s *RSVPStore) Update(ctx context.Context, token, status, message, deviceType, location string) (*models.RSVPRecord, error) {
	if !s.Configured() {
		return nil, ErrNotConfigured
	}
	name, rows, err := s.lookup(ctx, token)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrGuestNotFound
	}
	idx, row, ok := findRow(rows, token)
	if !ok {
		return nil, ErrNoSubmission
	}

	now := s.now().UTC().Format(time.RFC3339)
	reg := now
	if sub, parsed := models.ParseRSVPRow(row); parsed && sub.RegDttm != "" {
		reg = sub.RegDttm
	}
	rec := &models.RSVPRecord{
		Token:      token,
		GuestName:  name,
		Side:       models.SideOf(token),
		Status:     status,
		RegDttm:    reg,
		ModDttm:    now,
		Message:    message,
		DeviceType: deviceType,
		Location:   location,
	}
	rng := fmt.Sprintf("RSVP!A%d:I%d", idx+rsvpHeaderOffset, idx+rsvpHeaderOffset)
	if err := s.writer.Update(ctx, rng, rec.Row()); err != nil {
		return nil, fmt.Errorf("update rsvp row: %w", err)
	}
	return rec, nil
}

// lookup fetches the guest directory and the RSVP rows concurrently,
// saving a round-trip before every mutation.
func (s *RSVPStore) lookup(ctx context.Context, token string) (string, [][]interface{}, error) {
	var (
		guests map[string]string
		rows   [][]interface{}
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := s.directory.FetchAll(gctx)
		guests = m
		return err
	})
	g.Go(func() error {
		r, err := s.reader.Read(gctx, rsvpRange)
		if err != nil {
			return fmt.Errorf("fetch rsvp rows: %w", err)
		}
		rows = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return "", nil, err
	}
	return guests[token], rows, nil
}

// findRow scans all RSVP rows for token, case-insensitively, returning
// the first match and its 0-based data row index. Linear scan is fine at
// guest-list scale.
func findRow(rows [][]interface{}, token string) (int, []interface{}, bool) {
	t := strings.ToLower(strings.TrimSpace(token))
	for i, row := range rows {
		if strings.ToLower(models.CellString(row, 0)) == t {
			return i, row, true
		}
	}
	return 0, nil, false
}
