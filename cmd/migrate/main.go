package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"missioncopilot/internal/config"
)

const migrationsDir = "file://db/migrations"

func usage() {
	fmt.Println("Usage: migrate [up|down|steps N|force N|status]")
	fmt.Println("Applies the mission database schema from db/migrations.")
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	m, err := migrate.New(migrationsDir, cfg.DB.DSN())
	if err != nil {
		log.Fatalf("failed to create migrate instance: %v", err)
	}
	defer m.Close()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	log.Printf("mission database %s at %s:%d", cfg.DB.Name, cfg.DB.Host, cfg.DB.Port)

	switch cmd := os.Args[1]; cmd {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("migration up failed: %v", err)
		}
		logVersion(m, "schema up to date")

	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("migration down failed: %v", err)
		}
		log.Println("schema reverted")

	case "steps":
		n := intArg("steps")
		if err := m.Steps(n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("migration steps failed: %v", err)
		}
		log.Printf("applied %d migration steps", n)

	case "force":
		// Clears a dirty version after a failed migration was fixed by hand.
		n := intArg("force")
		if err := m.Force(n); err != nil {
			log.Fatalf("force failed: %v", err)
		}
		log.Printf("forced schema version to %d", n)

	case "status":
		logVersion(m, "schema status")

	default:
		fmt.Printf("unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func intArg(cmd string) int {
	if len(os.Args) < 3 {
		log.Fatalf("%s requires a number argument", cmd)
	}
	n, err := strconv.Atoi(os.Args[2])
	if err != nil {
		log.Fatalf("invalid %s argument: %v", cmd, err)
	}
	return n
}

func logVersion(m *migrate.Migrate, prefix string) {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.Printf("%s: no migrations applied yet", prefix)
		return
	}
	if err != nil {
		log.Fatalf("failed to read schema version: %v", err)
	}
	log.Printf("%s: version %d, dirty %v", prefix, version, dirty)
}
