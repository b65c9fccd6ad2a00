package sheets

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"wedding-eticket/models"
)

type fakeReader struct {
	rows    map[string][][]interface{}
	failRng string
	err     error
	calls   int
}

func (f *fakeReader) Read(ctx context.Context, rng string) ([][]interface{}, error) {
	f.calls++
	if f.err != nil && (f.failRng == "" || f.failRng == rng) {
		return nil, f.err
	}
	return f.rows[rng], nil
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func testDirectory(reader RangeReader, snapshot map[string]string, clock *fakeClock) *Directory {
	return &Directory{
		reader:     reader,
		groomRange: "A:B",
		brideRange: "D:E",
		snapshot:   snapshot,
		cache:      newDirectoryCache(DirectoryTTL, clock.now),
		log:        zerolog.Nop(),
	}
}

func TestNormalizeSide(t *testing.T) {
	rows := [][]interface{}{
		{"g007", "Jane Doe"},           // explicit token
		{"Sok Dara"},                   // name only, token synthesized
		{"G003", "Bob"},                // explicit token, mixed case
		{},                             // skipped
		{"", "orphan name"},            // skipped, no first column
		{"g010", "https://example.com/pic.jpg"}, // URL is not a name
	}
	have := normalizeSide(rows, "g", models.GroomToken)
	want := map[string]string{
		"g007": "Jane Doe",
		"g002": "Sok Dara",
		"g003": "Bob",
		"g006": "g010", // URL row treated as name-only at index 5
	}
	if !reflect.DeepEqual(have, want) {
		t.Errorf("have %v, want %v", have, want)
	}
}

func TestNormalizeSideZeroPadding(t *testing.T) {
	rows := make([][]interface{}, 12)
	for i := range rows {
		rows[i] = []interface{}{"Guest"}
	}
	have := normalizeSide(rows, "b", models.BrideToken)
	if _, ok := have["b001"]; !ok {
		t.Error("first synthesized token should be b001")
	}
	if _, ok := have["b012"]; !ok {
		t.Error("twelfth synthesized token should be b012")
	}
}

func TestFetchAllMergesSides(t *testing.T) {
	reader := &fakeReader{rows: map[string][][]interface{}{
		"A:B": {{"g001", "Jane Doe"}},
		"D:E": {{"b001", "Sok Dara"}},
	}}
	d := testDirectory(reader, nil, &fakeClock{t: time.Now()})

	have, err := d.FetchAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{"g001": "Jane Doe", "b001": "Sok Dara"}
	if !reflect.DeepEqual(have, want) {
		t.Errorf("have %v, want %v", have, want)
	}
}

func TestFetchAllCacheTTL(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	reader := &fakeReader{rows: map[string][][]interface{}{
		"A:B": {{"g001", "Jane Doe"}},
		"D:E": {},
	}}
	d := testDirectory(reader, nil, clock)

	first, err := d.FetchAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if have, want := reader.calls, 2; have != want {
		t.Fatalf("calls after first fetch: have %d, want %d", have, want)
	}

	// Inside the TTL: served from cache, same data, no network.
	clock.advance(DirectoryTTL - time.Second)
	second, err := d.FetchAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if have, want := reader.calls, 2; have != want {
		t.Errorf("calls within TTL: have %d, want %d", have, want)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("cached fetch diverged: %v vs %v", first, second)
	}

	// Past expiry: exactly one refresh (two range reads).
	clock.advance(2 * time.Second)
	if _, err := d.FetchAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	if have, want := reader.calls, 4; have != want {
		t.Errorf("calls after expiry: have %d, want %d", have, want)
	}
}

func TestFetchAllPartialFailureAborts(t *testing.T) {
	reader := &fakeReader{
		rows:    map[string][][]interface{}{"A:B": {{"g001", "Jane Doe"}}},
		failRng: "D:E",
		err:     errors.New("boom"),
	}
	d := testDirectory(reader, nil, &fakeClock{t: time.Now()})

	if _, err := d.FetchAll(context.Background()); err == nil {
		t.Fatal("one failed side must abort the whole fetch")
	}
	// The failed fetch must not have been cached.
	reader.err = nil
	reader.rows["D:E"] = [][]interface{}{}
	data, err := d.FetchAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := data["g001"]; !ok {
		t.Error("retry after failure should fetch fresh data")
	}
}

func TestFetchAllUnconfigured(t *testing.T) {
	d := testDirectory(nil, nil, &fakeClock{t: time.Now()})
	if _, err := d.FetchAll(context.Background()); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("have %v, want ErrNotConfigured", err)
	}
}

func TestResolveSnapshotFirst(t *testing.T) {
	reader := &fakeReader{rows: map[string][][]interface{}{
		"A:B": {{"g001", "Live Name"}},
		"D:E": {},
	}}
	d := testDirectory(reader, map[string]string{"g001": "Snapshot Name"}, &fakeClock{t: time.Now()})

	name, err := d.Resolve(context.Background(), "g001")
	if err != nil {
		t.Fatal(err)
	}
	if have, want := name, "Snapshot Name"; have != want {
		t.Errorf("have %q, want %q", have, want)
	}
	if reader.calls != 0 {
		t.Errorf("snapshot hit must not touch the network, saw %d calls", reader.calls)
	}
}

func TestResolveFallsBackToLive(t *testing.T) {
	reader := &fakeReader{rows: map[string][][]interface{}{
		"A:B": {{"g002", "New Guest"}},
		"D:E": {},
	}}
	d := testDirectory(reader, map[string]string{"g001": "Jane Doe"}, &fakeClock{t: time.Now()})

	name, err := d.Resolve(context.Background(), "g002")
	if err != nil {
		t.Fatal(err)
	}
	if have, want := name, "New Guest"; have != want {
		t.Errorf("have %q, want %q", have, want)
	}
}

func TestResolveAbsentIsNotAnError(t *testing.T) {
	reader := &fakeReader{rows: map[string][][]interface{}{"A:B": {}, "D:E": {}}}
	d := testDirectory(reader, nil, &fakeClock{t: time.Now()})

	name, err := d.Resolve(context.Background(), "g007")
	if err != nil {
		t.Fatalf("absent token must not error: %v", err)
	}
	if name != "" {
		t.Errorf("have %q, want empty", name)
	}
}
