package services

import (
	"log"
	"math"
	"sort"

	"back_movies/internal/catalog"
	"back_movies/internal/models"
)

// ContentBasedService serves item-to-item lookups over a movie-by-movie
// cosine similarity matrix built once from TF-IDF genre vectors. The matrix
// is positional: row i is the i-th row of the movies table.
type ContentBasedService interface {
    GetSimilarMovies(title string, limit int) []models.RecommendedMovie
    SimilarityAt(i, j int) float64
    Row(i int) []float64
    Size() int
}

type contentBasedService struct {
    catalog *catalog.Catalog
    matrix  [][]float64
}

func NewContentBasedService(cat *catalog.Catalog) ContentBasedService {
    s := &contentBasedService{catalog: cat}
    s.buildMatrix()
    log.Printf("✅ Content similarity index built (%d movies)", len(s.matrix))
    return s
}

// buildMatrix vectorizes every movie's genre tags with TF-IDF and computes
// pairwise cosine similarity. Vectors are L2-normalized up front so cosine
// reduces to a dot product. A movie with no tags keeps an all-zero vector
// and similarity 0 to everything, itself included (cosine is undefined
// there; 0 is the guarded answer, never NaN).
func (s *contentBasedService) buildMatrix() {
    movies := s.catalog.Movies()
    n := len(movies)

    tokens := make([][]string, n)
    df := make(map[string]int)
    for i, m := range movies {
        tokens[i] = catalog.GenreTokens(m.Genres)
        seen := make(map[string]bool, len(tokens[i]))
        for _, t := range tokens[i] {
            if !seen[t] {
                seen[t] = true
                df[t]++
            }
        }
    }

    // Smoothed idf: ln((1+n)/(1+df)) + 1.
    idf := make(map[string]float64, len(df))
    for t, d := range df {
        idf[t] = math.Log(float64(1+n)/float64(1+d)) + 1
    }

    vectors := make([]map[string]float64, n)
    for i := range tokens {
        vec := make(map[string]float64, len(tokens[i]))
        for _, t := range tokens[i] {
            vec[t]++ // term frequency
        }
        var norm float64
        for t := range vec {
            vec[t] *= idf[t]
            norm += vec[t] * vec[t]
        }
        if norm > 0 {
            norm = math.Sqrt(norm)
            for t := range vec {
                vec[t] /= norm
            }
        }
        vectors[i] = vec
    }

    s.matrix = make([][]float64, n)
    for i := range s.matrix {
        s.matrix[i] = make([]float64, n)
    }
    for i := 0; i < n; i++ {
        for j := i; j < n; j++ {
            sim := dotSparse(vectors[i], vectors[j])
            s.matrix[i][j] = sim
            s.matrix[j][i] = sim
        }
    }
}

func dotSparse(a, b map[string]float64) float64 {
    if len(b) < len(a) {
        a, b = b, a
    }
    var dot float64
    for t, w := range a {
        dot += w * b[t]
    }
    return dot
}

func (s *contentBasedService) SimilarityAt(i, j int) float64 { return s.matrix[i][j] }
func (s *contentBasedService) Row(i int) []float64           { return s.matrix[i] }
func (s *contentBasedService) Size() int                     { return len(s.matrix) }

// GetSimilarMovies finds the first movie whose title contains the given
// substring (case-insensitive) and returns the movies most similar to it by
// content. An unmatched title returns an empty result, not an error. The
// query movie itself is skipped by position; ties keep table order (stable
// sort), and duplicate titles are not deduplicated.
func (s *contentBasedService) GetSimilarMovies(title string, limit int) []models.RecommendedMovie {
    queryPos, ok := s.catalog.FindByTitle(title)
    if !ok {
        return []models.RecommendedMovie{}
    }

    type scored struct {
        pos   int
        score float64
    }
    candidates := make([]scored, 0, s.Size()-1)
    for pos, score := range s.matrix[queryPos] {
        if pos == queryPos {
            continue
        }
        candidates = append(candidates, scored{pos: pos, score: score})
    }

    sort.SliceStable(candidates, func(i, j int) bool {
        return candidates[i].score > candidates[j].score
    })

    if limit > 0 && len(candidates) > limit {
        candidates = candidates[:limit]
    }

    results := make([]models.RecommendedMovie, 0, len(candidates))
    for _, c := range candidates {
        movie := s.catalog.MovieAt(c.pos)
        results = append(results, models.RecommendedMovie{
            Title:  movie.Title,
            Genres: movie.Genres,
            TmdbID: s.catalog.TmdbID(movie.MovieID),
        })
    }
    return results
}
