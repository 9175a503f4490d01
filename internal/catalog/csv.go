package catalog

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"back_movies/internal/models"
)

// The load path is strict on schema: a missing required column is a fatal
// startup error, never a silently wrong recommendation.

// columnIndex validates that every required column is present in the header
// and returns a name -> position map.
func columnIndex(header []string, required ...string) (map[string]int, error) {
    idx := make(map[string]int, len(header))
    for i, col := range header {
        idx[col] = i
    }
    for _, col := range required {
        if _, ok := idx[col]; !ok {
            return nil, fmt.Errorf("missing required column %q", col)
        }
    }
    return idx, nil
}

func openCSV(path string) (*os.File, *csv.Reader, error) {
    f, err := os.Open(path)
    if err != nil {
        return nil, nil, err
    }
    // The reader enforces header-consistent field counts, so a short row
    // surfaces as csv.ErrFieldCount instead of an index panic downstream.
    r := csv.NewReader(bufio.NewReader(f))
    return f, r, nil
}

func LoadMoviesCSV(path string) ([]models.Movie, error) {
    f, r, err := openCSV(path)
    if err != nil {
        return nil, err
    }
    defer f.Close()

    header, err := r.Read()
    if err != nil {
        return nil, fmt.Errorf("reading movies header: %w", err)
    }
    idx, err := columnIndex(header, "movieId", "title", "genres")
    if err != nil {
        return nil, fmt.Errorf("movies.csv: %w", err)
    }

    var movies []models.Movie
    for {
        rec, err := r.Read()
        if errors.Is(err, io.EOF) {
            break
        }
        if err != nil {
            return nil, fmt.Errorf("reading movies: %w", err)
        }
        id, err := strconv.Atoi(rec[idx["movieId"]])
        if err != nil {
            return nil, fmt.Errorf("movies.csv: bad movieId %q: %w", rec[idx["movieId"]], err)
        }
        movies = append(movies, models.Movie{
            MovieID: id,
            Title:   rec[idx["title"]],
            Genres:  rec[idx["genres"]],
        })
    }
    return movies, nil
}

func LoadRatingsCSV(path string) ([]models.Rating, error) {
    f, r, err := openCSV(path)
    if err != nil {
        return nil, err
    }
    defer f.Close()

    header, err := r.Read()
    if err != nil {
        return nil, fmt.Errorf("reading ratings header: %w", err)
    }
    idx, err := columnIndex(header, "userId", "movieId", "rating", "timestamp")
    if err != nil {
        return nil, fmt.Errorf("ratings.csv: %w", err)
    }

    var ratings []models.Rating
    for {
        rec, err := r.Read()
        if errors.Is(err, io.EOF) {
            break
        }
        if err != nil {
            return nil, fmt.Errorf("reading ratings: %w", err)
        }
        userID, err := strconv.Atoi(rec[idx["userId"]])
        if err != nil {
            return nil, fmt.Errorf("ratings.csv: bad userId %q: %w", rec[idx["userId"]], err)
        }
        movieID, err := strconv.Atoi(rec[idx["movieId"]])
        if err != nil {
            return nil, fmt.Errorf("ratings.csv: bad movieId %q: %w", rec[idx["movieId"]], err)
        }
        value, err := strconv.ParseFloat(rec[idx["rating"]], 64)
        if err != nil {
            return nil, fmt.Errorf("ratings.csv: bad rating %q: %w", rec[idx["rating"]], err)
        }
        ts, err := strconv.ParseInt(rec[idx["timestamp"]], 10, 64)
        if err != nil {
            return nil, fmt.Errorf("ratings.csv: bad timestamp %q: %w", rec[idx["timestamp"]], err)
        }
        ratings = append(ratings, models.Rating{
            UserID:    userID,
            MovieID:   movieID,
            Rating:    value,
            Timestamp: ts,
        })
    }
    return ratings, nil
}

func LoadLinksCSV(path string) ([]models.Link, error) {
    f, r, err := openCSV(path)
    if err != nil {
        return nil, err
    }
    defer f.Close()

    header, err := r.Read()
    if err != nil {
        return nil, fmt.Errorf("reading links header: %w", err)
    }
    idx, err := columnIndex(header, "movieId", "tmdbId")
    if err != nil {
        return nil, fmt.Errorf("links.csv: %w", err)
    }

    var links []models.Link
    for {
        rec, err := r.Read()
        if errors.Is(err, io.EOF) {
            break
        }
        if err != nil {
            return nil, fmt.Errorf("reading links: %w", err)
        }
        movieID, err := strconv.Atoi(rec[idx["movieId"]])
        if err != nil {
            return nil, fmt.Errorf("links.csv: bad movieId %q: %w", rec[idx["movieId"]], err)
        }
        link := models.Link{MovieID: movieID}
        // tmdbId is nullable: an empty cell means no external id.
        if raw := rec[idx["tmdbId"]]; raw != "" {
            tmdbID, err := strconv.ParseInt(raw, 10, 64)
            if err != nil {
                return nil, fmt.Errorf("links.csv: bad tmdbId %q: %w", raw, err)
            }
            link.TmdbID = &tmdbID
        }
        links = append(links, link)
    }
    return links, nil
}

// LoadFromCSV loads the three source tables from dataDir.
func LoadFromCSV(dataDir string) (*Catalog, error) {
    movies, err := LoadMoviesCSV(filepath.Join(dataDir, "movies.csv"))
    if err != nil {
        return nil, err
    }
    ratings, err := LoadRatingsCSV(filepath.Join(dataDir, "ratings.csv"))
    if err != nil {
        return nil, err
    }
    links, err := LoadLinksCSV(filepath.Join(dataDir, "links.csv"))
    if err != nil {
        return nil, err
    }

    log.Printf("[Catalog] Loaded %d movies, %d ratings, %d links from %s",
        len(movies), len(ratings), len(links), dataDir)
    return New(movies, ratings, links), nil
}
