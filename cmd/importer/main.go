package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/samirrijal/venuehub/internal/adapters/postgres"
	"github.com/samirrijal/venuehub/internal/adapters/valkey"
	"github.com/samirrijal/venuehub/internal/core/ports"
	"github.com/samirrijal/venuehub/internal/core/usecases"
	"github.com/samirrijal/venuehub/internal/pkg/config"
	"github.com/samirrijal/venuehub/internal/pkg/logging"
)

// Manifest lists the GeoJSON sources and the app config of a solution.
type Manifest struct {
	Solution  string   `json:"solution"`
	AppConfig string   `json:"app_config,omitempty"` // path to the raw app config JSON
	Sources   []string `json:"sources"`              // file paths or http(s) URLs
}

func main() {
	cfg, err := config.Load("venuehub-importer")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Setup("venuehub-importer", cfg.Log.Level, "text")

	ctx := context.Background()

	manifestPath := "manifest.json"
	if len(os.Args) > 1 {
		manifestPath = os.Args[1]
	}
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		log.Fatalf("read manifest: %v", err)
	}
	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		log.Fatalf("parse manifest: %v", err)
	}
	if manifest.Solution == "" {
		manifest.Solution = cfg.Venues.Solution
	}

	db, err := postgres.New(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	slog.Info("importing", "solution", manifest.Solution, "sources", len(manifest.Sources))

	results := fetchAll(ctx, manifest.Sources)

	// The running API caches single lookups; drop the entries we overwrite.
	var cache ports.CacheService
	if vc, err := valkey.New(cfg.Valkey.Addr, cfg.Valkey.KeyPrefix); err != nil {
		slog.Warn("valkey unavailable, cached venues expire after their TTL", "error", err)
	} else {
		defer vc.Close()
		cache = vc
	}

	// Venues before buildings: buildings reference their venue.
	repo := postgres.NewVenueRepo(db)
	venueSvc := usecases.NewVenueService(repo, nil, nil, nil, cache)
	var venues, buildings int
	for _, r := range results {
		for i := range r.Venues {
			if err := repo.UpsertVenue(ctx, &r.Venues[i]); err != nil {
				log.Fatalf("upsert venue %s: %v", r.Venues[i].ID, err)
			}
			if err := venueSvc.InvalidateVenue(ctx, r.Venues[i].ID); err != nil {
				slog.Warn("invalidate cached venue", "venue_id", r.Venues[i].ID, "error", err)
			}
			venues++
		}
	}
	for _, r := range results {
		for i := range r.Buildings {
			if err := repo.UpsertBuilding(ctx, &r.Buildings[i]); err != nil {
				log.Fatalf("upsert building %s: %v", r.Buildings[i].ID, err)
			}
			if err := venueSvc.InvalidateBuilding(ctx, r.Buildings[i].ID); err != nil {
				slog.Warn("invalidate cached building", "building_id", r.Buildings[i].ID, "error", err)
			}
			buildings++
		}
	}

	if manifest.AppConfig != "" {
		raw, err := os.ReadFile(manifest.AppConfig)
		if err != nil {
			log.Fatalf("read app config: %v", err)
		}
		if !json.Valid(raw) {
			log.Fatalf("app config %s is not valid JSON", manifest.AppConfig)
		}
		if err := postgres.NewConfigRepo(db, manifest.Solution).SaveConfig(ctx, raw); err != nil {
			log.Fatalf("save app config: %v", err)
		}
		slog.Info("app config saved", "solution", manifest.Solution)
	}

	slog.Info("import complete", "venues", venues, "buildings", buildings)
}

// fetchAll loads and parses every source, at most four at a time. Sources
// that fail are logged and skipped.
func fetchAll(ctx context.Context, sources []string) []*parsed {
	client := &http.Client{Timeout: 60 * time.Second}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results []*parsed
	)
	sem := make(chan struct{}, 4)

	for _, src := range sources {
		wg.Add(1)
		go func(src string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			data, err := load(ctx, client, src)
			if err != nil {
				slog.Error("load source", "source", src, "error", err)
				return
			}
			p, err := parseFeatureCollection(data)
			if err != nil {
				slog.Error("parse source", "source", src, "error", err)
				return
			}
			slog.Info("parsed source", "source", src, "venues", len(p.Venues), "buildings", len(p.Buildings))

			mu.Lock()
			results = append(results, p)
			mu.Unlock()
		}(src)
	}

	wg.Wait()
	return results
}

func load(ctx context.Context, client *http.Client, src string) ([]byte, error) {
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		return os.ReadFile(src)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, src)
	}
	return io.ReadAll(resp.Body)
}
