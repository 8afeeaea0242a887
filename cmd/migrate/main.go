package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noorfashion/backend/internal/infrastructure/config"
	"github.com/noorfashion/backend/internal/infrastructure/logger"
	"github.com/noorfashion/backend/internal/infrastructure/migration"
)

const defaultMigrationsPath = "migrations"

func main() {
	var (
		migrationsPath string
		logLevel       string
	)

	flag.StringVar(&migrationsPath, "path", "", "Path to migrations directory (default: ./migrations)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	if migrationsPath == "" {
		migrationsPath = defaultMigrationsPath
	}
	absPath, err := filepath.Abs(migrationsPath)
	if err != nil {
		log.Fatal("invalid migrations path", zap.Error(err))
	}

	// create and list work without a database connection
	switch command {
	case "create":
		runCreate(log, absPath, args[1:])
		return
	case "list":
		runList(log, absPath)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("failed to ping database", zap.Error(err))
	}

	migrator, err := migration.New(db, absPath, log)
	if err != nil {
		log.Fatal("failed to create migrator", zap.Error(err))
	}
	defer migrator.Close()

	switch command {
	case "up":
		if err := migrator.Up(); err != nil {
			log.Fatal("migration up failed", zap.Error(err))
		}
	case "down":
		if err := migrator.Down(); err != nil {
			log.Fatal("migration down failed", zap.Error(err))
		}
	case "steps":
		if len(args) < 2 {
			log.Fatal("steps requires a count, e.g. 'steps -1'")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("invalid step count", zap.String("arg", args[1]))
		}
		if err := migrator.Steps(n); err != nil {
			log.Fatal("migration steps failed", zap.Error(err))
		}
	case "goto":
		if len(args) < 2 {
			log.Fatal("goto requires a version")
		}
		v, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			log.Fatal("invalid version", zap.String("arg", args[1]))
		}
		if err := migrator.GoTo(uint(v)); err != nil {
			log.Fatal("migration goto failed", zap.Error(err))
		}
	case "version":
		version, dirty, err := migrator.Version()
		if err != nil {
			log.Fatal("failed to read version", zap.Error(err))
		}
		log.Info("current migration version",
			zap.Uint("version", version),
			zap.Bool("dirty", dirty),
		)
	case "force":
		if len(args) < 2 {
			log.Fatal("force requires a version")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("invalid version", zap.String("arg", args[1]))
		}
		if err := migrator.Force(v); err != nil {
			log.Fatal("migration force failed", zap.Error(err))
		}
	case "drop":
		if err := migrator.Drop(); err != nil {
			log.Fatal("migration drop failed", zap.Error(err))
		}
	default:
		printUsage()
		os.Exit(1)
	}
}

func runCreate(log *zap.Logger, migrationsPath string, args []string) {
	if len(args) == 0 {
		log.Fatal("create requires a migration name, e.g. 'create add_orders_index'")
	}
	name := args[0]
	description := ""
	if len(args) > 1 {
		description = args[1]
	}

	mf, err := migration.CreateMigration(migrationsPath, name, description)
	if err != nil {
		log.Fatal("failed to create migration", zap.Error(err))
	}
	log.Info("migration created",
		zap.String("up", mf.UpPath),
		zap.String("down", mf.DownPath),
	)
}

func runList(log *zap.Logger, migrationsPath string) {
	files, err := migration.ListMigrations(migrationsPath)
	if err != nil {
		log.Fatal("failed to list migrations", zap.Error(err))
	}
	if len(files) == 0 {
		log.Info("no migrations found", zap.String("path", migrationsPath))
		return
	}
	for _, f := range files {
		fmt.Println(f)
	}
}

func printUsage() {
	fmt.Println(`Usage: migrate [flags] <command> [args]

Commands:
  up                  Apply all pending migrations
  down                Roll back all migrations
  steps <n>           Apply n migrations (negative rolls back)
  goto <version>      Migrate to a specific version
  version             Print the current version
  force <version>     Force-set the version without running migrations
  drop                Drop everything in the database
  create <name> [desc] Create a new migration file pair
  list                List migration files

Flags:
  -path <dir>         Migrations directory (default: ./migrations)
  -log-level <level>  Log level (default: info)`)
}
