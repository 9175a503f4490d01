package services

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	json "github.com/goccy/go-json"

	"back_movies/internal/cache"
	"back_movies/internal/config"
)

const (
    tmdbBaseURL      = "https://api.themoviedb.org/3"
    tmdbImageBaseURL = "https://image.tmdb.org/t/p/w500"

    posterCacheSize = 500
    posterTimeout   = 5 * time.Second
)

// TMDBService resolves TMDB ids to poster image URLs. Every failure mode
// (missing API key, timeout, non-2xx, malformed payload, no poster) folds
// into "no poster" at this boundary; callers never see an error. Results,
// negative ones included, are memoized in a bounded LRU so the same id is
// fetched at most once per process.
type TMDBService interface {
    FetchPosterURL(tmdbID int64) (string, bool)
    CacheStats() (hits, misses int64, size int)
}

type tmdbService struct {
    apiKey       string
    baseURL      string
    imageBaseURL string
    client       *http.Client
    cache        *cache.LRUCache
}

func NewTMDBService() TMDBService {
    return newTMDBService(config.GlobalConfig.TMDBAPIKey, tmdbBaseURL, tmdbImageBaseURL)
}

func newTMDBService(apiKey, baseURL, imageBaseURL string) *tmdbService {
    return &tmdbService{
        apiKey:       apiKey,
        baseURL:      baseURL,
        imageBaseURL: imageBaseURL,
        client:       &http.Client{Timeout: posterTimeout},
        cache:        cache.NewLRUCache(posterCacheSize),
    }
}

type tmdbMovieResponse struct {
    PosterPath string `json:"poster_path"`
}

func (s *tmdbService) FetchPosterURL(tmdbID int64) (string, bool) {
    if s.apiKey == "" {
        return "", false
    }

    key := strconv.FormatInt(tmdbID, 10)
    if url, ok := s.cache.Get(key); ok {
        return url, url != ""
    }

    url := s.lookupPoster(tmdbID)
    s.cache.Add(key, url)
    return url, url != ""
}

func (s *tmdbService) lookupPoster(tmdbID int64) string {
    url := fmt.Sprintf("%s/movie/%d?api_key=%s", s.baseURL, tmdbID, s.apiKey)

    resp, err := s.client.Get(url)
    if err != nil {
        log.Printf("⚠️ TMDB lookup failed for %d: %v", tmdbID, err)
        return ""
    }
    defer resp.Body.Close()

    if resp.StatusCode < 200 || resp.StatusCode > 299 {
        log.Printf("⚠️ TMDB lookup for %d returned status %d", tmdbID, resp.StatusCode)
        return ""
    }

    body, err := io.ReadAll(resp.Body)
    if err != nil {
        log.Printf("⚠️ TMDB response read failed for %d: %v", tmdbID, err)
        return ""
    }

    var movie tmdbMovieResponse
    if err := json.Unmarshal(body, &movie); err != nil {
        log.Printf("⚠️ TMDB response parse failed for %d: %v", tmdbID, err)
        return ""
    }
    if movie.PosterPath == "" {
        return ""
    }

    return s.imageBaseURL + movie.PosterPath
}

func (s *tmdbService) CacheStats() (hits, misses int64, size int) {
    return s.cache.Stats()
}
