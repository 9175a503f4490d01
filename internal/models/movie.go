package models

// Movie is one row of the movies table. The catalog preserves table order
// because the content similarity matrix is indexed by row position.
type Movie struct {
    MovieID int    `gorm:"primaryKey;column:movie_id;autoIncrement:false" json:"movieId"`
    Title   string `gorm:"type:varchar(255);not null" json:"title"`
    Genres  string `gorm:"type:varchar(255)" json:"genres"`
}

// Rating is one row of the ratings table. Duplicate (user, movie) pairs are
// tolerated here; the collaborative pivot averages them.
type Rating struct {
    ID        uint    `gorm:"primaryKey" json:"-"`
    UserID    int     `gorm:"not null;index" json:"userId"`
    MovieID   int     `gorm:"not null;index" json:"movieId"`
    Rating    float64 `gorm:"not null" json:"rating"`
    Timestamp int64   `gorm:"not null" json:"timestamp"`
}

// Link maps an internal movie id to its TMDB id. TmdbID is nullable: a movie
// without one simply has no poster.
type Link struct {
    MovieID int    `gorm:"primaryKey;column:movie_id;autoIncrement:false" json:"movieId"`
    TmdbID  *int64 `gorm:"column:tmdb_id" json:"tmdbId"`
}

// RecommendedMovie is the row shape returned by the hybrid and item-to-item
// recommenders.
type RecommendedMovie struct {
    Title  string `json:"title"`
    Genres string `json:"genres"`
    TmdbID *int64 `json:"tmdbId"`
}

// TrendingMovie is the row shape returned by the trending aggregator.
type TrendingMovie struct {
    Title       string  `json:"title"`
    Genres      string  `json:"genres"`
    AvgRating   float64 `json:"avg_rating"`
    RatingCount int     `json:"rating_count"`
    TmdbID      *int64  `json:"tmdbId"`
}
