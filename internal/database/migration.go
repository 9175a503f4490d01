package database

import (
	"log"

	"back_movies/internal/catalog"
	"back_movies/internal/models"
)

func RunMigrations() {
    if err := AutoMigrate(); err != nil {
        log.Fatalf("Migration failed: %v", err)
    }
}

// SeedFromCSVIfEmpty imports the three source tables from CSV when the
// movies table has no rows yet, so a fresh database becomes queryable
// without a separate import step.
func SeedFromCSVIfEmpty(dataDir string) error {
    var count int64
    if err := DB.Model(&models.Movie{}).Count(&count).Error; err != nil {
        return err
    }
    if count > 0 {
        return nil
    }

    log.Printf("🚀 Empty movies table, seeding database from %s...", dataDir)

    movies, err := catalog.LoadMoviesCSV(dataDir + "/movies.csv")
    if err != nil {
        return err
    }
    ratings, err := catalog.LoadRatingsCSV(dataDir + "/ratings.csv")
    if err != nil {
        return err
    }
    links, err := catalog.LoadLinksCSV(dataDir + "/links.csv")
    if err != nil {
        return err
    }

    if err := DB.CreateInBatches(movies, 500).Error; err != nil {
        return err
    }
    if err := DB.CreateInBatches(ratings, 500).Error; err != nil {
        return err
    }
    if err := DB.CreateInBatches(links, 500).Error; err != nil {
        return err
    }

    log.Printf("✅ Seeded %d movies, %d ratings, %d links", len(movies), len(ratings), len(links))
    return nil
}
