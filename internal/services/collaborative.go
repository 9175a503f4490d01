package services

import (
	"log"
	"math"
	"sort"

	"back_movies/internal/catalog"
)

// CollaborativeService holds an item-based cosine similarity matrix built
// once from the ratings table. Unlike the content index it is labeled by
// movie id: only rated movies appear in it.
type CollaborativeService interface {
    Similarity(movieID1, movieID2 int) (float64, bool)
    Neighbors(movieID int) ([]int, []float64, bool)
    MovieIDs() []int
}

type collaborativeService struct {
    ids    []int       // rated movie ids, ascending
    index  map[int]int // movie id -> matrix row
    matrix [][]float64
}

func NewCollaborativeService(cat *catalog.Catalog) CollaborativeService {
    s := &collaborativeService{index: make(map[int]int)}
    s.buildMatrix(cat)
    log.Printf("✅ Collaborative similarity index built (%d rated movies)", len(s.ids))
    return s
}

// buildMatrix pivots ratings into one vector per movie across all users,
// with missing ratings as 0 (a deliberate approximation, not a missing-data
// model), then computes pairwise cosine similarity. Duplicate (user, movie)
// pairs are averaged so the pivot is deterministic regardless of input
// order. An empty ratings table yields an empty matrix and hybrid scoring
// degrades to content-only contributions.
func (s *collaborativeService) buildMatrix(cat *catalog.Catalog) {
    ratings := cat.Ratings()

    // movieID -> userID -> (sum, count) for duplicate averaging
    type cell struct {
        sum   float64
        count int
    }
    pivot := make(map[int]map[int]*cell)
    userSet := make(map[int]bool)
    for _, r := range ratings {
        row, ok := pivot[r.MovieID]
        if !ok {
            row = make(map[int]*cell)
            pivot[r.MovieID] = row
        }
        c, ok := row[r.UserID]
        if !ok {
            c = &cell{}
            row[r.UserID] = c
        }
        c.sum += r.Rating
        c.count++
        userSet[r.UserID] = true
    }

    s.ids = make([]int, 0, len(pivot))
    for movieID := range pivot {
        s.ids = append(s.ids, movieID)
    }
    sort.Ints(s.ids)
    for i, movieID := range s.ids {
        s.index[movieID] = i
    }

    users := make([]int, 0, len(userSet))
    for userID := range userSet {
        users = append(users, userID)
    }
    sort.Ints(users)
    userIndex := make(map[int]int, len(users))
    for i, userID := range users {
        userIndex[userID] = i
    }

    // Dense movie-by-user vectors, then cosine between movie rows.
    vectors := make([][]float64, len(s.ids))
    norms := make([]float64, len(s.ids))
    for i, movieID := range s.ids {
        vec := make([]float64, len(users))
        for userID, c := range pivot[movieID] {
            vec[userIndex[userID]] = c.sum / float64(c.count)
        }
        var norm float64
        for _, v := range vec {
            norm += v * v
        }
        vectors[i] = vec
        norms[i] = math.Sqrt(norm)
    }

    s.matrix = make([][]float64, len(s.ids))
    for i := range s.matrix {
        s.matrix[i] = make([]float64, len(s.ids))
    }
    for i := range s.ids {
        for j := i; j < len(s.ids); j++ {
            sim := 0.0
            if norms[i] > 0 && norms[j] > 0 {
                var dot float64
                for u := range vectors[i] {
                    dot += vectors[i][u] * vectors[j][u]
                }
                sim = dot / (norms[i] * norms[j])
            }
            s.matrix[i][j] = sim
            s.matrix[j][i] = sim
        }
    }
}

// Similarity returns the cosine similarity between two movies, reporting
// false when either never appears in the ratings table.
func (s *collaborativeService) Similarity(movieID1, movieID2 int) (float64, bool) {
    i, ok1 := s.index[movieID1]
    j, ok2 := s.index[movieID2]
    if !ok1 || !ok2 {
        return 0, false
    }
    return s.matrix[i][j], true
}

// Neighbors returns the full similarity column for a movie: the aligned
// movie id and similarity slices. Reports false for movies with no ratings.
func (s *collaborativeService) Neighbors(movieID int) ([]int, []float64, bool) {
    i, ok := s.index[movieID]
    if !ok {
        return nil, nil, false
    }
    return s.ids, s.matrix[i], true
}

func (s *collaborativeService) MovieIDs() []int { return s.ids }
