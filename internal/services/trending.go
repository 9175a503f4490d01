package services

import (
	"sort"

	"back_movies/internal/catalog"
	"back_movies/internal/models"
)

const secondsPerDay = int64(86400)

// TrendingService ranks movies by recent popularity. "Recent" is relative
// to the dataset's own latest rating, not wall-clock now, so static and
// historical datasets still produce a window.
type TrendingService interface {
    GetTrendingMovies(days, limit int) []models.TrendingMovie
}

type trendingService struct {
    catalog *catalog.Catalog
}

func NewTrendingService(cat *catalog.Catalog) TrendingService {
    return &trendingService{catalog: cat}
}

// GetTrendingMovies keeps ratings within the last `days` before the
// dataset's max timestamp, aggregates mean rating, count and latest rating
// time per movie, and ranks by trending score = mean * count. A movie with
// one 5-star rating scores below one with ten 4-star ratings. Ties go to
// the movie with more recent activity. An empty ratings table returns an
// empty result; the cutoff is never computed from nothing.
func (s *trendingService) GetTrendingMovies(days, limit int) []models.TrendingMovie {
    ratings := s.catalog.Ratings()
    if len(ratings) == 0 {
        return []models.TrendingMovie{}
    }

    var maxTS int64
    for _, r := range ratings {
        if r.Timestamp > maxTS {
            maxTS = r.Timestamp
        }
    }
    // Epoch-second arithmetic: days never passes through time.Duration,
    // whose nanosecond range a very large window would overflow.
    cutoff := maxTS - int64(days)*secondsPerDay

    type stats struct {
        sum      float64
        count    int
        latestTS int64
    }
    byMovie := make(map[int]*stats)
    for _, r := range ratings {
        if r.Timestamp < cutoff {
            continue
        }
        st, ok := byMovie[r.MovieID]
        if !ok {
            st = &stats{}
            byMovie[r.MovieID] = st
        }
        st.sum += r.Rating
        st.count++
        if r.Timestamp > st.latestTS {
            st.latestTS = r.Timestamp
        }
    }

    type scored struct {
        movieID  int
        avg      float64
        count    int
        latestTS int64
        score    float64
    }
    ranked := make([]scored, 0, len(byMovie))
    for movieID, st := range byMovie {
        avg := st.sum / float64(st.count)
        ranked = append(ranked, scored{
            movieID:  movieID,
            avg:      avg,
            count:    st.count,
            latestTS: st.latestTS,
            score:    avg * float64(st.count),
        })
    }

    sort.Slice(ranked, func(i, j int) bool {
        if ranked[i].score != ranked[j].score {
            return ranked[i].score > ranked[j].score
        }
        if ranked[i].latestTS != ranked[j].latestTS {
            return ranked[i].latestTS > ranked[j].latestTS
        }
        return ranked[i].movieID < ranked[j].movieID
    })

    if limit > 0 && len(ranked) > limit {
        ranked = ranked[:limit]
    }

    results := make([]models.TrendingMovie, 0, len(ranked))
    for _, c := range ranked {
        movie, ok := s.catalog.MovieByID(c.movieID)
        if !ok {
            // Rating rows referencing an unknown movie id have nothing to
            // join against.
            continue
        }
        results = append(results, models.TrendingMovie{
            Title:       movie.Title,
            Genres:      movie.Genres,
            AvgRating:   c.avg,
            RatingCount: c.count,
            TmdbID:      s.catalog.TmdbID(movie.MovieID),
        })
    }
    return results
}
