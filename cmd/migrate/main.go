package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"

	"profiler-backend/config"
	"profiler-backend/pkg/database"
	"profiler-backend/pkg/logger"
)

const usage = `usage: migrate <command>

commands:
  up         apply all pending migrations
  down [n]   roll back n migrations (default 1)
  drop       drop everything in the database
  version    print the current schema version
`

func main() {
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel)

	if cfg.DBDriver != "postgres" {
		logger.Log.Error("Migrations apply to postgres only; sqlite schemas are created on startup", "db_driver", cfg.DBDriver)
		os.Exit(1)
	}

	if err := run(cfg.DBUrl, flag.Args()); err != nil {
		logger.Log.Error("Migration failed", "command", flag.Arg(0), "error", err)
		os.Exit(1)
	}
}

func run(dsn string, args []string) error {
	m, err := database.NewMigrator(dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	switch args[0] {
	case "up":
		err = m.Up()
	case "down":
		steps := 1
		if len(args) > 1 {
			if steps, err = strconv.Atoi(args[1]); err != nil || steps < 1 {
				return fmt.Errorf("invalid step count %q", args[1])
			}
		}
		err = m.Steps(-steps)
	case "drop":
		err = m.Drop()
	case "version":
		version, dirty, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			fmt.Println("no migrations applied")
			return nil
		}
		if verr != nil {
			return verr
		}
		fmt.Printf("version %d (dirty: %t)\n", version, dirty)
		return nil
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Log.Info("No change")
		return nil
	}
	if err != nil {
		return err
	}
	logger.Log.Info("Migration complete", "command", args[0])
	return nil
}
