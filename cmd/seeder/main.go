package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"iter"
	"log/slog"
	"os"

	"github.com/foundrly/matchcore"
	"github.com/foundrly/matchcore/core"
	"github.com/foundrly/matchcore/index/memory"
	"github.com/foundrly/matchcore/ingest"
)

var demoProfiles = []*core.CandidateProfile{
	{
		Id:                "ada-chen",
		Name:              "Ada Chen",
		Skills:            []string{"Python", "Machine Learning", "Data Engineering"},
		Goals:             []string{"build an AI startup"},
		Demands:           []string{"technical co-founder"},
		Resources:         []string{"seed funding"},
		Location:          "Beijing",
		Institutions:      []string{"Tsinghua University"},
		Projects:          []string{"open-source feature store"},
		ResponseRate:      92,
		MutualConnections: 6,
		Online:            true,
	},
	{
		Id:                "marco-silva",
		Name:              "Marco Silva",
		Skills:            []string{"Go", "Kubernetes", "Distributed Systems"},
		Goals:             []string{"scale infrastructure products"},
		Resources:         []string{"platform engineering team"},
		Location:          "Berlin",
		Institutions:      []string{"TU Berlin"},
		ResponseRate:      78,
		MutualConnections: 2,
	},
	{
		Id:           "yuki-tanaka",
		Name:         "Yuki Tanaka",
		Skills:       []string{"Product Design", "User Research"},
		Goals:        []string{"mentor early-stage founders"},
		Location:     "Tokyo",
		Institutions: []string{"Keio University"},
		Projects:     []string{"design systems handbook"},
		ResponseRate: 85,
		Online:       true,
	},
	{
		Id:                "sara-nouri",
		Name:              "Sara Nouri",
		Skills:            []string{"Rust", "Embedded", "Robotics"},
		Goals:             []string{"commercialize warehouse robotics"},
		Demands:           []string{"hardware investor"},
		Location:          "Munich",
		Institutions:      []string{"TUM"},
		ResponseRate:      64,
		MutualConnections: 1,
	},
	{
		Id:                "li-wei",
		Name:              "Li Wei",
		Skills:            []string{"Python", "Backend", "PostgreSQL"},
		Goals:             []string{"join an AI startup as founding engineer"},
		Location:          "Beijing",
		Institutions:      []string{"Peking University"},
		ResponseRate:      88,
		MutualConnections: 4,
		Online:            true,
	},
	{
		Id:           "emma-jones",
		Name:         "Emma Jones",
		Skills:       []string{"Growth Marketing", "Sales"},
		Goals:        []string{"invest in consumer startups"},
		Resources:    []string{"angel capital", "operator network"},
		Location:     "London",
		ResponseRate: 71,
	},
	{
		Id:                "diego-ramos",
		Name:              "Diego Ramos",
		Skills:            []string{"Machine Learning", "Computer Vision"},
		Goals:             []string{"collaborate on research projects"},
		Location:          "Barcelona",
		Institutions:      []string{"UPC"},
		Projects:          []string{"satellite imagery pipeline"},
		ResponseRate:      core.ResponseRateUnknown,
		MutualConnections: 3,
	},
	{
		Id:           "nina-kovacs",
		Name:         "Nina Kovacs",
		Skills:       []string{"Finance", "Fundraising"},
		Goals:        []string{"mentor first-time founders on fundraising"},
		Resources:    []string{"VC introductions"},
		Location:     "Budapest",
		ResponseRate: 95,
		Online:       true,
	},
}

var (
	seedFileName = flag.String("src", "", "JSON-lines file of candidate profiles")
	dbPath       = flag.String("db", "./match_db", "Path to BadgerDB database directory")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// profilesFromFile returns an iterator over JSON-encoded profiles, one per
// line.
func profilesFromFile(filename string) (iter.Seq[*core.CandidateProfile], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(*core.CandidateProfile) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			var profile core.CandidateProfile
			if err := json.Unmarshal(scanner.Bytes(), &profile); err != nil {
				slog.Warn("skipping malformed profile line", "err", err)
				continue
			}
			if !yield(&profile) {
				return
			}
		}
	}, nil
}

// profilesFromSlice returns an iterator over a slice of profiles.
func profilesFromSlice(profiles []*core.CandidateProfile) iter.Seq[*core.CandidateProfile] {
	return func(yield func(*core.CandidateProfile) bool) {
		for _, p := range profiles {
			if !yield(p) {
				return
			}
		}
	}
}

// ingestBatched reads from a source iterator and ingests profiles in batches.
func ingestBatched(ctx context.Context, pipeline *ingest.Pipeline, source iter.Seq[*core.CandidateProfile], batchSize int) error {
	batch := make([]*core.CandidateProfile, 0, batchSize)

	for profile := range source {
		batch = append(batch, profile)
		if len(batch) == batchSize {
			if err := pipeline.Ingest(ctx, batch...); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := pipeline.Ingest(ctx, batch...); err != nil {
			return err
		}
	}

	return nil
}

func main() {
	engine, err := matchcore.NewEngine(*dbPath, memory.NewStore())
	if err != nil {
		panic(err)
	}
	defer engine.Close()

	ingester, err := engine.NewIngestionPipeline()
	if err != nil {
		panic(err)
	}
	defer ingester.Release()

	ctx := context.Background()

	var source iter.Seq[*core.CandidateProfile]
	if seedFileName != nil && *seedFileName != "" {
		source, err = profilesFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	} else {
		source = profilesFromSlice(demoProfiles)
	}

	if err := ingestBatched(ctx, ingester, source, 5); err != nil {
		panic(err)
	}
}
