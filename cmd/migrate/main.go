package main

import (
	"log"
	"os"
	"strings"

	"notes-repository-be/internal/model"
	"notes-repository-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn, os.Getenv("DB_LOG_SQL") == "true")
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	// 3. Postgres extras (skipped for SQLite)
	if !strings.HasPrefix(dsn, database.SQLitePrefix) {
		log.Println("Step 1: Setting up extensions...")
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
			log.Printf("Warn: Failed to create pgcrypto extension: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate
	models := model.All()
	log.Printf("Step 2: Running AutoMigrate for %d tables...", len(models))
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Catalog read path: newest notes first, filter by subject
	log.Println("Step 3: Creating indexes...")
	indexSQL := []string{
		`CREATE INDEX IF NOT EXISTS idx_notes_created_at ON notes (created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_notes_subject_id ON notes (subject_id);`,
		`CREATE INDEX IF NOT EXISTS idx_subjects_name ON subjects (name);`,
	}
	for _, sql := range indexSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute index SQL: %v", err)
		}
	}

	log.Println("Success: Database migration completed.")
}
