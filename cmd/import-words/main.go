package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ereyga/internal/config"
	"ereyga/internal/importer"
	"ereyga/internal/repository/postgres"
	"ereyga/internal/service"

	"go.uber.org/zap"
)

func main() {
	file := flag.String("file", "", "path to an .xlsx or .csv word list")
	sheet := flag.String("sheet", "", "Excel sheet name (default: first sheet)")
	noHeader := flag.Bool("no-header", false, "import the first row as data")
	migrate := flag.Bool("migrate", true, "apply pending migrations before importing")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: import-words -file words.xlsx [-sheet Sheet1] [-no-header]")
		os.Exit(2)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	dbCfg, err := config.LoadDatabase()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	db, err := postgres.Connect(dbCfg.DSN(), logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if *migrate {
		if err := postgres.RunMigrations(db.DB, migrationsPath(), logger); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	admin := service.NewAdminService(postgres.NewWordRepo(db), postgres.NewFeedbackRepo(db), logger)
	im := importer.New(admin, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := im.Import(ctx, importer.Config{
		FilePath:   *file,
		SheetName:  *sheet,
		SkipHeader: !*noHeader,
	})
	if err != nil {
		logger.Fatal("Import failed", zap.Error(err))
	}

	fmt.Printf("Processed: %d, created: %d, skipped (already present): %d, errors: %d\n",
		result.TotalProcessed, result.Created, result.Skipped, len(result.Errors))
	for _, e := range result.Errors {
		fmt.Println("  " + e)
	}
}

func migrationsPath() string {
	if p := os.Getenv("MIGRATIONS_PATH"); p != "" {
		return p
	}
	return "file://migrations"
}
