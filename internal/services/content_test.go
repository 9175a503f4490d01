package services

import (
	"math"
	"testing"

	"back_movies/internal/catalog"
	"back_movies/internal/models"
)

const epsilon = 1e-9

func int64Ptr(v int64) *int64 { return &v }

// Three movies where A and B share a tag and C shares nothing.
func contentTestCatalog() *catalog.Catalog {
	movies := []models.Movie{
		{MovieID: 1, Title: "Alpha", Genres: "Action|Comedy"},
		{MovieID: 2, Title: "Beta", Genres: "Action"},
		{MovieID: 3, Title: "Gamma", Genres: "Drama"},
	}
	links := []models.Link{
		{MovieID: 1, TmdbID: int64Ptr(100)},
	}
	return catalog.New(movies, nil, links)
}

func TestContentSimilarity_Diagonal(t *testing.T) {
	s := NewContentBasedService(contentTestCatalog())

	for i := 0; i < s.Size(); i++ {
		if got := s.SimilarityAt(i, i); math.Abs(got-1) > epsilon {
			t.Errorf("Expected similarity(%d,%d) = 1, got %v", i, i, got)
		}
	}
}

func TestContentSimilarity_Symmetry(t *testing.T) {
	s := NewContentBasedService(contentTestCatalog())

	for i := 0; i < s.Size(); i++ {
		for j := 0; j < s.Size(); j++ {
			if s.SimilarityAt(i, j) != s.SimilarityAt(j, i) {
				t.Errorf("similarity(%d,%d) = %v, similarity(%d,%d) = %v",
					i, j, s.SimilarityAt(i, j), j, i, s.SimilarityAt(j, i))
			}
		}
	}
}

func TestContentSimilarity_SharedTagRanksHigher(t *testing.T) {
	s := NewContentBasedService(contentTestCatalog())

	simAB := s.SimilarityAt(0, 1)
	simAC := s.SimilarityAt(0, 2)
	if simAB <= simAC {
		t.Errorf("Expected similarity(A,B) > similarity(A,C), got %v <= %v", simAB, simAC)
	}
	if simAB <= 0 {
		t.Errorf("Expected positive similarity for shared tag, got %v", simAB)
	}
	if simAC != 0 {
		t.Errorf("Expected 0 similarity for disjoint tags, got %v", simAC)
	}
}

func TestContentSimilarity_EmptyTagVector(t *testing.T) {
	movies := []models.Movie{
		{MovieID: 1, Title: "Tagged", Genres: "Action"},
		{MovieID: 2, Title: "Untagged", Genres: "(no genres listed)"},
	}
	s := NewContentBasedService(catalog.New(movies, nil, nil))

	// A zero vector has similarity 0 to everything, itself included.
	// Cosine is undefined there; the guard must produce 0, never NaN.
	for j := 0; j < s.Size(); j++ {
		got := s.SimilarityAt(1, j)
		if math.IsNaN(got) {
			t.Fatalf("similarity(1,%d) is NaN", j)
		}
		if got != 0 {
			t.Errorf("Expected similarity(1,%d) = 0, got %v", j, got)
		}
	}
}

func TestContentSimilarity_EmptyCatalog(t *testing.T) {
	s := NewContentBasedService(catalog.New(nil, nil, nil))
	if s.Size() != 0 {
		t.Errorf("Expected empty matrix, got size %d", s.Size())
	}
}

func TestGetSimilarMovies_ExcludesQueryMovie(t *testing.T) {
	s := NewContentBasedService(contentTestCatalog())

	results := s.GetSimilarMovies("Alpha", 10)
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if r.Title == "Alpha" {
			t.Error("Query movie must never appear in its own results")
		}
	}
}

func TestGetSimilarMovies_Ranking(t *testing.T) {
	s := NewContentBasedService(contentTestCatalog())

	results := s.GetSimilarMovies("Alpha", 10)
	if results[0].Title != "Beta" {
		t.Errorf("Expected Beta (shared tag) first, got %s", results[0].Title)
	}
	if results[1].Title != "Gamma" {
		t.Errorf("Expected Gamma last, got %s", results[1].Title)
	}
}

func TestGetSimilarMovies_JoinsExternalID(t *testing.T) {
	s := NewContentBasedService(contentTestCatalog())

	results := s.GetSimilarMovies("Beta", 10)
	for _, r := range results {
		switch r.Title {
		case "Alpha":
			if r.TmdbID == nil || *r.TmdbID != 100 {
				t.Errorf("Expected Alpha tmdbId 100, got %v", r.TmdbID)
			}
		case "Gamma":
			// Left join: missing external id stays null, row is kept.
			if r.TmdbID != nil {
				t.Errorf("Expected nil tmdbId for Gamma, got %v", r.TmdbID)
			}
		}
	}
}

func TestGetSimilarMovies_CaseInsensitiveSubstring(t *testing.T) {
	s := NewContentBasedService(contentTestCatalog())

	if got := s.GetSimilarMovies("alp", 10); len(got) == 0 {
		t.Error("Expected case-insensitive substring to match Alpha")
	}
}

func TestGetSimilarMovies_UnmatchedTitle(t *testing.T) {
	s := NewContentBasedService(contentTestCatalog())

	results := s.GetSimilarMovies("zzz-nonexistent", 10)
	if len(results) != 0 {
		t.Errorf("Expected empty result for unmatched title, got %d rows", len(results))
	}
}

func TestGetSimilarMovies_LimitApplied(t *testing.T) {
	s := NewContentBasedService(contentTestCatalog())

	if got := s.GetSimilarMovies("Alpha", 1); len(got) != 1 {
		t.Errorf("Expected 1 result with limit 1, got %d", len(got))
	}
}
