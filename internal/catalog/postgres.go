package catalog

import (
	"log"

	"back_movies/internal/models"

	"gorm.io/gorm"
)

// LoadFromDB loads the three source tables from Postgres. Order by movie_id
// keeps row positions stable across restarts.
func LoadFromDB(db *gorm.DB) (*Catalog, error) {
    var movies []models.Movie
    if err := db.Order("movie_id").Find(&movies).Error; err != nil {
        return nil, err
    }

    var ratings []models.Rating
    if err := db.Order("id").Find(&ratings).Error; err != nil {
        return nil, err
    }

    var links []models.Link
    if err := db.Order("movie_id").Find(&links).Error; err != nil {
        return nil, err
    }

    log.Printf("[Catalog] Loaded %d movies, %d ratings, %d links from database",
        len(movies), len(ratings), len(links))
    return New(movies, ratings, links), nil
}
