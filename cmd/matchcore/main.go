// Copyright 2025 Foundrly
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/foundrly/matchcore"
	"github.com/foundrly/matchcore/ai"
	"github.com/foundrly/matchcore/index"
	"github.com/foundrly/matchcore/index/memory"
	"github.com/foundrly/matchcore/index/qdrant"
	"github.com/foundrly/matchcore/reindex"
)

func main() {
	app := &cli.App{
		Name:  "matchcore",
		Usage: "Candidate discovery and matching engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Search candidates with a free-text query",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: append(engineFlags(),
					&cli.StringFlag{
						Name:  "caller",
						Usage: "Caller's candidate ID, used for exclusions and scoring",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of candidates to return",
						Value: 20,
					},
				),
			},
			{
				Name:   "swipe",
				Usage:  "Record a swipe decision",
				Action: swipeCommand,
				Flags: append(engineFlags(),
					&cli.StringFlag{
						Name:     "caller",
						Usage:    "Caller's candidate ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "target",
						Usage:    "Target candidate ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "action",
						Usage:    "One of: like, ignore, super_like",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "query",
						Usage: "Query the card came from",
					},
					&cli.IntFlag{
						Name:  "tier",
						Usage: "Relaxation tier the card came from",
					},
					&cli.IntFlag{
						Name:  "position",
						Usage: "Card position within the result stack",
					},
					&cli.StringFlag{
						Name:  "key",
						Usage: "Idempotency key; generated when omitted",
					},
				),
			},
			{
				Name:   "sync",
				Usage:  "Drain the caller's pending swipe queue",
				Action: syncCommand,
				Flags: append(engineFlags(),
					&cli.StringFlag{
						Name:     "caller",
						Usage:    "Caller's candidate ID",
						Required: true,
					},
				),
			},
			{
				Name:   "card",
				Usage:  "Show or clear the caller's current card session",
				Action: cardCommand,
				Flags: append(engineFlags(),
					&cli.StringFlag{
						Name:     "caller",
						Usage:    "Caller's candidate ID",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "clear",
						Usage: "Clear the card session instead of showing it",
					},
				),
			},
			{
				Name:   "reindex",
				Usage:  "Re-embed stored profiles whose canonical text changed",
				Action: reindexCommand,
				Flags: append(engineFlags(),
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of profiles to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N profiles",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed batches",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// engineFlags are shared by every command that opens the engine.
func engineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "qdrant",
			Usage: "Qdrant gRPC address; omit for an in-process index",
		},
		&cli.StringFlag{
			Name:  "collection",
			Usage: "Qdrant collection name",
			Value: "candidates",
		},
		&cli.IntFlag{
			Name:  "dims",
			Usage: "Dense embedding dimensionality",
			Value: 768,
		},
		&cli.StringFlag{
			Name:  "ai-host",
			Usage: "OpenAI-compatible service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
		&cli.StringFlag{
			Name:  "intent-model",
			Usage: "Intent extraction model name",
			Value: "qwen2.5:3b",
		},
	}
}

// openEngine builds the vector index and engine from the shared flags.
// With no qdrant address the index is in-process and empty, so commands
// that retrieve must reindex first to populate it.
func openEngine(ctx context.Context, c *cli.Context) (*matchcore.Engine, index.VectorIndex, error) {
	var vectorIndex index.VectorIndex
	if addr := c.String("qdrant"); addr != "" {
		store, err := qdrant.New(addr, c.String("collection"))
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to qdrant: %w", err)
		}
		if err := store.EnsureCollection(ctx, c.Int("dims")); err != nil {
			store.Close()
			return nil, nil, err
		}
		vectorIndex = store
	} else {
		vectorIndex = memory.NewStore()
	}

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("ai-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithIntentModel(c.String("intent-model")),
	)

	engine, err := matchcore.NewEngine(c.String("db"), vectorIndex, matchcore.WithAIConfig(aiConfig))
	if err != nil {
		vectorIndex.Close()
		return nil, nil, fmt.Errorf("opening engine: %w", err)
	}
	return engine, vectorIndex, nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	engine, vectorIndex, err := openEngine(ctx, c)
	if err != nil {
		return err
	}
	defer engine.Close()
	defer vectorIndex.Close()

	// An in-process index starts empty each run; fill it from storage.
	if c.String("qdrant") == "" {
		reindexer, err := engine.NewReindexer(reindex.DefaultConfig(), os.Stderr)
		if err != nil {
			return err
		}
		if _, err := reindexer.Run(ctx); err != nil {
			return fmt.Errorf("populating in-process index: %w", err)
		}
	}

	req := &matchcore.SearchRequest{
		RawQuery: query,
		Limit:    c.Int("limit"),
	}
	if callerId := c.String("caller"); callerId != "" {
		profiles, err := engine.ProfileRepository().GetProfiles(ctx, callerId)
		if err != nil {
			return fmt.Errorf("loading caller profile: %w", err)
		}
		if len(profiles) == 0 {
			return fmt.Errorf("caller profile %q not found", callerId)
		}
		req.CallerProfile = profiles[0]
	}

	resp, err := engine.Search(ctx, req)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Printf("Intent: skills=%v preferred=%v collaboration=%s location=%q\n",
		resp.Intent.RequiredSkills, resp.Intent.PreferredSkills,
		resp.Intent.Collaboration, resp.Intent.LocationHint)
	for i, candidate := range resp.Candidates {
		fmt.Printf("%2d. %-20s overall=%3d tier=%d  %s\n",
			i+1, candidate.Profile.Id, candidate.Score.Overall, candidate.Tier,
			candidate.Explanation)
	}
	return nil
}

func swipeCommand(c *cli.Context) error {
	ctx := context.Background()

	engine, vectorIndex, err := openEngine(ctx, c)
	if err != nil {
		return err
	}
	defer engine.Close()
	defer vectorIndex.Close()

	resp, err := engine.Swipe(ctx, &matchcore.SwipeRequest{
		CallerId:       c.String("caller"),
		TargetId:       c.String("target"),
		Action:         c.String("action"),
		SourceQuery:    c.String("query"),
		SourceTier:     c.Int("tier"),
		CardPosition:   c.Int("position"),
		IdempotencyKey: c.String("key"),
	})
	if err != nil {
		return fmt.Errorf("swipe rejected: %w", err)
	}
	fmt.Printf("Swipe accepted: %v\n", resp.Accepted)
	return nil
}

func syncCommand(c *cli.Context) error {
	ctx := context.Background()

	engine, vectorIndex, err := openEngine(ctx, c)
	if err != nil {
		return err
	}
	defer engine.Close()
	defer vectorIndex.Close()

	if err := engine.SyncSwipes(ctx, c.String("caller")); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	fmt.Println("Swipe queue drained")
	return nil
}

func cardCommand(c *cli.Context) error {
	ctx := context.Background()

	engine, vectorIndex, err := openEngine(ctx, c)
	if err != nil {
		return err
	}
	defer engine.Close()
	defer vectorIndex.Close()

	callerId := c.String("caller")
	if c.Bool("clear") {
		if err := engine.ClearCard(ctx, callerId); err != nil {
			return err
		}
		fmt.Println("Card session cleared")
		return nil
	}

	card, err := engine.GetCard(ctx, callerId)
	if err != nil {
		return err
	}
	if card == nil {
		fmt.Println("No card displayed")
		return nil
	}
	fmt.Printf("Candidate: %s\nQuery: %q\nTier: %d\nPosition: %d\nUpdated: %s\n",
		card.CandidateId, card.SourceQuery, card.SourceTier, card.Position,
		card.UpdatedAt.Format(time.RFC3339))
	return nil
}

func reindexCommand(c *cli.Context) error {
	ctx := context.Background()

	config := &reindex.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	engine, vectorIndex, err := openEngine(ctx, c)
	if err != nil {
		return err
	}
	defer engine.Close()
	defer vectorIndex.Close()

	reindexer, err := engine.NewReindexer(config, os.Stderr)
	if err != nil {
		return err
	}
	if _, err := reindexer.Run(ctx); err != nil {
		return fmt.Errorf("reindex failed: %w", err)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
