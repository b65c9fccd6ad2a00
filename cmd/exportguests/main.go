// Command exportguests fetches the live guest directory once and emits
// the static snapshot JSON the server loads at startup. Run it before
// deploy so guest lookups answer without a network call:
//
//	go run ./cmd/exportguests -o data/guests.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"wedding-eticket/sheets"
)

func main() {
	out := flag.String("o", "", "write the snapshot to this file instead of stdout")
	flag.Parse()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := sheets.ConfigFromEnv()
	client, err := sheets.NewClient(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("set GOOGLE_SHEET_ID and GUEST_SHEET_CREDENTIALS")
	}

	directory := sheets.NewDirectory(client, cfg, nil, logger)
	guests, err := directory.FetchAll(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("guest list fetch failed")
	}

	data, err := json.Marshal(guests)
	if err != nil {
		logger.Fatal().Err(err).Msg("snapshot encode failed")
	}

	if *out == "" {
		fmt.Println(string(data))
		return
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		logger.Fatal().Err(err).Str("path", *out).Msg("snapshot write failed")
	}
	logger.Info().Str("path", *out).Int("guests", len(guests)).Msg("snapshot written")
}
