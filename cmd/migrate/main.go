package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/chynybekuuludastan/content_gateway/internal/database/migration"
	"github.com/chynybekuuludastan/content_gateway/internal/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	migrateCmd := flag.Bool("migrate", false, "Run migrations")
	rollbackCmd := flag.Bool("rollback", false, "Rollback the last batch of migrations")
	resetCmd := flag.Bool("reset", false, "Rollback all migrations and re-run them")
	statusCmd := flag.Bool("status", false, "Show migration status")
	dsn := flag.String("dsn", os.Getenv("POSTGRES_URI"), "PostgreSQL connection string")
	flag.Parse()

	if !(*migrateCmd || *rollbackCmd || *resetCmd || *statusCmd) {
		flag.Usage()
		os.Exit(1)
	}

	appLogger, err := logger.New(os.Getenv("LOG_LEVEL"), true)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	if *dsn == "" {
		appLogger.Error("No database configured, set POSTGRES_URI or pass -dsn")
		os.Exit(1)
	}

	db, err := gorm.Open(postgres.Open(*dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		appLogger.Error("Failed to connect to the database", "error", err)
		os.Exit(1)
	}

	migrator, err := migration.NewMigrator(db, appLogger)
	if err != nil {
		appLogger.Error("Failed to create migrator", "error", err)
		os.Exit(1)
	}

	switch {
	case *migrateCmd:
		run(appLogger, "Migration", migrator.Migrate)
	case *rollbackCmd:
		run(appLogger, "Rollback", migrator.Rollback)
	case *resetCmd:
		run(appLogger, "Reset", migrator.Reset)
	case *statusCmd:
		status, err := migrator.GetStatus()
		if err != nil {
			appLogger.Error("Failed to get migration status", "error", err)
			os.Exit(1)
		}
		printStatus(status)
	}
}

func run(appLogger *logger.Logger, name string, fn func() error) {
	if err := fn(); err != nil {
		appLogger.Error(name+" failed", "error", err)
		os.Exit(1)
	}
	appLogger.Info(name + " completed successfully")
}

func printStatus(status []migration.Status) {
	fmt.Println("+----------------------------------+----------+-------+---------------------+")
	fmt.Println("| Migration                        | Applied? | Batch | Applied At          |")
	fmt.Println("+----------------------------------+----------+-------+---------------------+")

	for _, s := range status {
		appliedStr, batchStr, timestampStr := "No", "-", "-"
		if s.Applied {
			appliedStr = "Yes"
			batchStr = fmt.Sprintf("%d", s.Batch)
			timestampStr = s.AppliedAt.Format("2006-01-02 15:04:05")
		}
		fmt.Printf("| %-32s | %-8s | %-5s | %-19s |\n", s.Name, appliedStr, batchStr, timestampStr)
	}

	fmt.Println("+----------------------------------+----------+-------+---------------------+")
}
