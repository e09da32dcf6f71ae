package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/JaimeStill/scribe/internal/config"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

func main() {
	var (
		dsn       = flag.String("dsn", "", "Database connection string (defaults to the service configuration)")
		all       = flag.Bool("all", false, "Run all seeders")
		agents    = flag.Bool("agents", false, "Seed agents")
		documents = flag.Bool("documents", false, "Seed context documents")
		file      = flag.String("file", "", "External seed file (overrides embedded, single seeder only)")
		list      = flag.Bool("list", false, "List available seeders")
	)
	flag.Parse()

	if *list {
		fmt.Println("Available seeders:")
		for _, s := range registry {
			fmt.Printf("  - %s: %s\n", s.Name(), s.Description())
		}
		return
	}

	var selected []Seeder
	switch {
	case *all:
		selected = registry
	case *agents:
		selected = pick("agents")
	case *documents:
		selected = pick("documents")
	default:
		fmt.Println("usage: seed -dsn <connection-string> [-all|-agents|-documents] [-file <path>] [-list]")
		flag.PrintDefaults()
		return
	}

	if *file != "" {
		if len(selected) != 1 {
			log.Fatal("-file requires a single seeder")
		}
		selected[0].SetFile(*file)
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("failed to load .env: %v", err)
	}

	if *dsn == "" {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("no -dsn given and configuration failed to load: %v", err)
		}
		*dsn = cfg.Database.Dsn()
	}

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := run(ctx, db, selected...); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	for _, s := range selected {
		fmt.Printf("%s seeded successfully\n", s.Name())
	}
}

func pick(name string) []Seeder {
	s, ok := getSeeder(name)
	if !ok {
		log.Fatalf("unknown seeder: %s", name)
	}
	return []Seeder{s}
}
