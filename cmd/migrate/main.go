package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/samirrijal/venuehub/internal/pkg/config"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: migrate <up|down>")
	}

	cfg, err := config.Load("venuehub-migrate")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	switch os.Args[1] {
	case "up":
		runMigrations(ctx, pool, upFiles())
	case "down":
		runMigrations(ctx, pool, downFiles())
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}

// upFiles returns migrations/NNN_*.sql in order, excluding down scripts.
func upFiles() []string {
	all, _ := filepath.Glob("migrations/*.sql")
	var files []string
	for _, f := range all {
		if !strings.HasSuffix(f, ".down.sql") {
			files = append(files, f)
		}
	}
	sort.Strings(files)
	return files
}

// downFiles returns migrations/NNN_*.down.sql in reverse order.
func downFiles() []string {
	files, _ := filepath.Glob("migrations/*.down.sql")
	sort.Sort(sort.Reverse(sort.StringSlice(files)))
	return files
}

func runMigrations(ctx context.Context, pool *pgxpool.Pool, files []string) {
	if len(files) == 0 {
		log.Fatal("no migration files found in ./migrations")
	}

	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			log.Fatalf("read %s: %v", f, err)
		}

		if _, err := pool.Exec(ctx, string(data)); err != nil {
			log.Fatalf("exec %s: %v", f, err)
		}

		fmt.Printf("OK  %s\n", f)
	}

	log.Println("migrations applied")
}
