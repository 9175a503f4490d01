package services

import (
	"sort"

	"back_movies/internal/catalog"
	"back_movies/internal/models"
)

// likedThreshold is the rating at or above which a movie counts as liked on
// the 1-5 scale. Fixed design constant, not configuration.
const likedThreshold = 4.0

// HybridService blends the collaborative and content indices into one
// per-user ranking. alpha is the collaborative weight; content always gets
// 1-alpha. The documented blend semantics hold for alpha in [0,1].
type HybridService interface {
    GetHybridRecommendations(userID, limit int, alpha float64) []models.RecommendedMovie
}

type hybridService struct {
    catalog       *catalog.Catalog
    content       ContentBasedService
    collaborative CollaborativeService
}

func NewHybridService(cat *catalog.Catalog, content ContentBasedService, collaborative CollaborativeService) HybridService {
    return &hybridService{
        catalog:       cat,
        content:       content,
        collaborative: collaborative,
    }
}

// GetHybridRecommendations accumulates, for every movie the user rated >=
// likedThreshold, alpha-weighted collaborative similarity plus
// (1-alpha)-weighted content similarity into a per-candidate score map.
// Contributions from multiple liked movies add up with no normalization:
// users who like more movies get proportionally larger scores. Movies the
// user has rated at all are never recommended, and a user with no liked
// movies (or no ratings) gets an empty result rather than a popularity
// fallback.
func (s *hybridService) GetHybridRecommendations(userID, limit int, alpha float64) []models.RecommendedMovie {
    var liked []int
    watched := make(map[int]bool)
    for _, r := range s.catalog.Ratings() {
        if r.UserID != userID {
            continue
        }
        watched[r.MovieID] = true
        if r.Rating >= likedThreshold {
            liked = append(liked, r.MovieID)
        }
    }
    if len(liked) == 0 {
        return []models.RecommendedMovie{}
    }

    // Candidate keys are unknown up front; absent keys default to zero on
    // first touch.
    scores := make(map[int]float64)

    for _, likedID := range liked {
        if ids, sims, ok := s.collaborative.Neighbors(likedID); ok {
            for i, movieID := range ids {
                scores[movieID] += alpha * sims[i]
            }
        }

        if pos, ok := s.catalog.PositionOf(likedID); ok {
            for i, sim := range s.content.Row(pos) {
                movieID := s.catalog.MovieAt(i).MovieID
                scores[movieID] += (1 - alpha) * sim
            }
        }
    }

    type scored struct {
        movieID int
        score   float64
    }
    ranked := make([]scored, 0, len(scores))
    for movieID, score := range scores {
        ranked = append(ranked, scored{movieID: movieID, score: score})
    }
    // Ties break on ascending movie id so rankings are deterministic.
    sort.Slice(ranked, func(i, j int) bool {
        if ranked[i].score != ranked[j].score {
            return ranked[i].score > ranked[j].score
        }
        return ranked[i].movieID < ranked[j].movieID
    })

    results := make([]models.RecommendedMovie, 0, limit)
    for _, c := range ranked {
        if watched[c.movieID] {
            continue
        }
        movie, ok := s.catalog.MovieByID(c.movieID)
        if !ok {
            continue
        }
        results = append(results, models.RecommendedMovie{
            Title:  movie.Title,
            Genres: movie.Genres,
            TmdbID: s.catalog.TmdbID(movie.MovieID),
        })
        if limit > 0 && len(results) >= limit {
            break
        }
    }
    return results
}
