package catalog

import (
	"strings"

	"back_movies/internal/models"
)

// Catalog holds the three source tables, loaded once at startup and
// read-only afterwards. Movie table order is preserved: the content
// similarity matrix is positional.
type Catalog struct {
    movies  []models.Movie
    ratings []models.Rating
    links   map[int]int64 // movieId -> tmdbId; absent key = no external id
    byID    map[int]int   // movieId -> row position
}

func New(movies []models.Movie, ratings []models.Rating, links []models.Link) *Catalog {
    c := &Catalog{
        movies:  movies,
        ratings: ratings,
        links:   make(map[int]int64, len(links)),
        byID:    make(map[int]int, len(movies)),
    }
    for i, m := range movies {
        c.byID[m.MovieID] = i
    }
    for _, l := range links {
        if l.TmdbID != nil {
            c.links[l.MovieID] = *l.TmdbID
        }
    }
    return c
}

func (c *Catalog) Movies() []models.Movie   { return c.movies }
func (c *Catalog) Ratings() []models.Rating { return c.ratings }
func (c *Catalog) MovieCount() int          { return len(c.movies) }

func (c *Catalog) MovieAt(pos int) models.Movie { return c.movies[pos] }

func (c *Catalog) MovieByID(movieID int) (models.Movie, bool) {
    pos, ok := c.byID[movieID]
    if !ok {
        return models.Movie{}, false
    }
    return c.movies[pos], true
}

// PositionOf returns the row position of a movie id in the movies table.
func (c *Catalog) PositionOf(movieID int) (int, bool) {
    pos, ok := c.byID[movieID]
    return pos, ok
}

// TmdbID returns the external id for a movie, or nil when the links table
// has none.
func (c *Catalog) TmdbID(movieID int) *int64 {
    id, ok := c.links[movieID]
    if !ok {
        return nil
    }
    return &id
}

// FindByTitle returns the row position of the first movie whose title
// contains the given substring, case-insensitive.
func (c *Catalog) FindByTitle(substr string) (int, bool) {
    needle := strings.ToLower(substr)
    for i, m := range c.movies {
        if strings.Contains(strings.ToLower(m.Title), needle) {
            return i, true
        }
    }
    return 0, false
}

// SearchByTitle returns every movie whose title contains the substring,
// case-insensitive, in table order.
func (c *Catalog) SearchByTitle(substr string, limit int) []models.Movie {
    needle := strings.ToLower(substr)
    var out []models.Movie
    for _, m := range c.movies {
        if strings.Contains(strings.ToLower(m.Title), needle) {
            out = append(out, m)
            if limit > 0 && len(out) >= limit {
                break
            }
        }
    }
    return out
}

// GenreTokens normalizes a movie's pipe-delimited genre string into
// lowercase whitespace tokens. The MovieLens "(no genres listed)" marker
// normalizes to an empty tag set.
func GenreTokens(genres string) []string {
    if strings.EqualFold(strings.TrimSpace(genres), "(no genres listed)") {
        return nil
    }
    normalized := strings.ReplaceAll(genres, "|", " ")
    return strings.Fields(strings.ToLower(normalized))
}
