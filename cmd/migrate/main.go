package main

// Run database migrations:
//   go run ./cmd/migrate [up|down|version]

import (
	"context"
	"fmt"
	"os"

	"automation-coach/internal/shared/config"
	"automation-coach/internal/shared/storage/db"
	"automation-coach/internal/shared/telemetry"
)

func main() {
	defer telemetry.Sync()
	cfg := config.Load()
	ctx := context.Background()

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		fail("connect", err)
	}
	defer sqlDB.Close()

	switch command {
	case "up":
		err = db.RunMigrations(ctx, sqlDB)
	case "down":
		err = db.RollbackMigration(ctx, sqlDB)
	case "version":
		var version int64
		version, err = db.MigrationVersion(ctx, sqlDB)
		if err == nil {
			fmt.Println(version)
		}
	default:
		err = fmt.Errorf("unknown command %q (want up, down or version)", command)
	}
	if err != nil {
		fail(command, err)
	}
	telemetry.Info("migrate.done", map[string]any{"command": command})
}

func fail(step string, err error) {
	telemetry.Error("migrate.failed", map[string]any{"step": step, "error": err.Error()})
	telemetry.Sync()
	os.Exit(1)
}
