package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"hotel-pipeline/config"
	"hotel-pipeline/models"
	"hotel-pipeline/scraper/booking"
	"hotel-pipeline/services"
	"hotel-pipeline/storage"
	"hotel-pipeline/utils"
)

func main() {
	cfg := config.Load()

	inputPath := flag.String("input", cfg.InputCSVPath, "raw hotel CSV to clean; empty runs the Booking.com scraper instead")
	outputPath := flag.String("output", cfg.CleanCSVPath, "path for the cleaned hotel CSV")
	flag.Parse()

	// ================== Bootstrap ====================
	logger := utils.NewLogger()
	if cfg.LogFilePath != "" {
		fileLogger, err := utils.NewFileLogger(cfg.LogFilePath)
		if err != nil {
			logger.Warn("Log file disabled: %v", err)
		} else {
			logger = fileLogger
			defer logger.Close()
		}
	}

	logger.Info("Hotel Listing Cleaning & Insights Pipeline")

	// =============== Raw rows: file or scrape ===================
	var rawHotels []*models.RawHotel
	var err error

	if *inputPath != "" {
		reader := storage.NewCSVReader(*inputPath, logger)
		rawHotels, err = reader.ReadRawHotels()
		if err != nil {
			var schemaErr *storage.SchemaError
			if errors.As(err, &schemaErr) {
				logger.Error("Schema mismatch in %s: %v", *inputPath, schemaErr)
			} else {
				logger.Error("Cannot read input: %v", err)
			}
			os.Exit(1)
		}
	} else {
		logger.Info("No -input file given, scraping Booking.com")
		logger.Info("Pages: %d | Rate delay: %dms | Retries: %d",
			cfg.MaxPages, cfg.RateLimitDelay, cfg.MaxRetries)

		scraper := booking.NewBookingScraper(cfg, logger)
		rawHotels, err = scraper.Scrape()
		if err != nil {
			logger.Error("Scraping failed: %v", err)
			os.Exit(1)
		}

		// ========= CSV: store raw snapshot ===========================
		rawWriter := storage.NewCSVWriter(cfg.RawCSVPath, logger)
		if err := rawWriter.WriteRawHotels(rawHotels); err != nil {
			logger.Error("Failed to write raw CSV: %v", err)
			// Non-fatal: the cleaning pass still runs
		}
	}

	if len(rawHotels) == 0 {
		logger.Warn("No raw hotel rows to process")
		os.Exit(0)
	}

	// =========== Data Cleaning ======================
	cleaner := services.NewCleaner(logger)
	cleanHotels, cleanReport := cleaner.Clean(rawHotels)

	// ========= CSV: store clean data ============
	cleanWriter := storage.NewCSVWriter(*outputPath, logger)
	if err := cleanWriter.WriteHotels(cleanHotels); err != nil {
		logger.Error("Failed to write cleaned CSV: %v", err)
		os.Exit(1)
	}

	// ========= PostgreSQL: optional sink ============
	if cfg.DatabaseURL != "" {
		pgWriter, err := storage.NewPostgresWriter(cfg.DatabaseURL, logger)
		if err != nil {
			logger.Error("Cannot connect to PostgreSQL: %v", err)
			os.Exit(1)
		}
		defer pgWriter.Close()

		if err := pgWriter.CreateTable(); err != nil {
			logger.Error("Failed to create DB table: %v", err)
			os.Exit(1)
		}
		if err := pgWriter.BatchInsert(cleanHotels); err != nil {
			logger.Error("Failed to insert into PostgreSQL: %v", err)
			os.Exit(1)
		}
	} else {
		logger.Info("DATABASE_URL not set, skipping PostgreSQL sink")
	}

	// ==== Insights + audit ============================
	insightSvc := services.NewInsightService(logger)
	report := insightSvc.Generate(cleanHotels)
	services.PrintInsightReport(report)
	services.PrintCleanReport(cleanReport)

	fmt.Println(" Done! Clean data →", *outputPath)
}
