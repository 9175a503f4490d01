package services

import (
	"testing"

	"back_movies/internal/catalog"
	"back_movies/internal/models"
)

// Fixture where the content and collaborative indices disagree about the
// best candidate for user 1:
//
//   - content: Beta shares Alpha's genre, Gamma and Delta do not
//   - collaborative: Gamma is co-rated with Alpha by user 2, Beta is not
//
// User 1 liked only Alpha, so alpha=1 must rank Gamma first and alpha=0
// must rank Beta first.
func hybridTestCatalog() *catalog.Catalog {
	movies := []models.Movie{
		{MovieID: 1, Title: "Alpha", Genres: "Action"},
		{MovieID: 2, Title: "Beta", Genres: "Action"},
		{MovieID: 3, Title: "Gamma", Genres: "Drama"},
		{MovieID: 4, Title: "Delta", Genres: "Comedy"},
	}
	ratings := []models.Rating{
		{UserID: 1, MovieID: 1, Rating: 5, Timestamp: 1},
		{UserID: 2, MovieID: 1, Rating: 5, Timestamp: 2},
		{UserID: 2, MovieID: 3, Rating: 5, Timestamp: 3},
		{UserID: 3, MovieID: 2, Rating: 5, Timestamp: 4},
	}
	links := []models.Link{
		{MovieID: 2, TmdbID: int64Ptr(200)},
	}
	return catalog.New(movies, ratings, links)
}

func newHybrid(cat *catalog.Catalog) HybridService {
	content := NewContentBasedService(cat)
	collaborative := NewCollaborativeService(cat)
	return NewHybridService(cat, content, collaborative)
}

func titles(recs []models.RecommendedMovie) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Title
	}
	return out
}

func TestHybrid_WatchedNeverRecommended(t *testing.T) {
	s := newHybrid(hybridTestCatalog())

	for _, alpha := range []float64{0, 0.3, 0.6, 1} {
		for _, r := range s.GetHybridRecommendations(1, 10, alpha) {
			if r.Title == "Alpha" {
				t.Errorf("alpha=%v: recommended a movie the user already rated", alpha)
			}
		}
		// User 2 rated Alpha and Gamma; neither may ever come back.
		for _, r := range s.GetHybridRecommendations(2, 10, alpha) {
			if r.Title == "Alpha" || r.Title == "Gamma" {
				t.Errorf("alpha=%v: recommended watched movie %s to user 2", alpha, r.Title)
			}
		}
	}
}

func TestHybrid_AlphaOne_CollaborativeOnly(t *testing.T) {
	s := newHybrid(hybridTestCatalog())

	got := titles(s.GetHybridRecommendations(1, 10, 1))
	// Collaborative similarity to Alpha: Gamma 0.707, Beta 0, Delta absent.
	// Content contributions are exactly 0, so Beta's shared genre cannot
	// pull it ahead; zero-score ties fall back to ascending movie id.
	want := []string{"Gamma", "Beta", "Delta"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, got)
		}
	}
}

func TestHybrid_AlphaZero_ContentOnly(t *testing.T) {
	s := newHybrid(hybridTestCatalog())

	got := titles(s.GetHybridRecommendations(1, 10, 0))
	// Content similarity to Alpha: Beta 1, Gamma 0, Delta 0. Collaborative
	// similarity to Gamma is ignored entirely at alpha=0.
	want := []string{"Beta", "Gamma", "Delta"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, got)
		}
	}
}

func TestHybrid_BlendPrefersCollaborativeAtHighAlpha(t *testing.T) {
	s := newHybrid(hybridTestCatalog())

	// Beta: alpha*0 + (1-alpha)*1, Gamma: alpha*0.707 + 0. They cross at
	// alpha = 1/1.707 ≈ 0.586.
	if got := titles(s.GetHybridRecommendations(1, 1, 0.9)); got[0] != "Gamma" {
		t.Errorf("alpha=0.9: expected Gamma first, got %v", got[0])
	}
	if got := titles(s.GetHybridRecommendations(1, 1, 0.1)); got[0] != "Beta" {
		t.Errorf("alpha=0.1: expected Beta first, got %v", got[0])
	}
}

func TestHybrid_EmptyLikedSet(t *testing.T) {
	cat := catalog.New(
		[]models.Movie{
			{MovieID: 1, Title: "Alpha", Genres: "Action"},
			{MovieID: 2, Title: "Beta", Genres: "Action"},
		},
		[]models.Rating{
			// Everything rated below the liked threshold.
			{UserID: 1, MovieID: 1, Rating: 3.5, Timestamp: 1},
			{UserID: 1, MovieID: 2, Rating: 2, Timestamp: 2},
		},
		nil,
	)
	s := newHybrid(cat)

	// No liked movies means an empty result, never a popularity fallback.
	if got := s.GetHybridRecommendations(1, 10, 0.6); len(got) != 0 {
		t.Errorf("Expected empty result for user with no liked movies, got %d rows", len(got))
	}
}

func TestHybrid_UnknownUser(t *testing.T) {
	s := newHybrid(hybridTestCatalog())

	if got := s.GetHybridRecommendations(999, 10, 0.6); len(got) != 0 {
		t.Errorf("Expected empty result for unknown user, got %d rows", len(got))
	}
}

func TestHybrid_EmptyRatingsTable(t *testing.T) {
	cat := catalog.New(
		[]models.Movie{{MovieID: 1, Title: "Alpha", Genres: "Action"}},
		nil, nil,
	)
	s := newHybrid(cat)

	if got := s.GetHybridRecommendations(1, 10, 0.6); len(got) != 0 {
		t.Errorf("Expected empty result on empty ratings, got %d rows", len(got))
	}
}

func TestHybrid_MultipleLikedMoviesAccumulate(t *testing.T) {
	s := newHybrid(hybridTestCatalog())

	// User 2 liked Alpha and Gamma; with alpha=0 Beta collects content
	// similarity from Alpha (1) while Delta collects nothing, so Beta
	// leads.
	got := titles(s.GetHybridRecommendations(2, 10, 0))
	want := []string{"Beta", "Delta"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, got)
		}
	}
}

func TestHybrid_LimitApplied(t *testing.T) {
	s := newHybrid(hybridTestCatalog())

	if got := s.GetHybridRecommendations(1, 2, 0.6); len(got) != 2 {
		t.Errorf("Expected 2 rows with limit 2, got %d", len(got))
	}
}

func TestHybrid_JoinsExternalID(t *testing.T) {
	s := newHybrid(hybridTestCatalog())

	for _, r := range s.GetHybridRecommendations(1, 10, 0) {
		switch r.Title {
		case "Beta":
			if r.TmdbID == nil || *r.TmdbID != 200 {
				t.Errorf("Expected Beta tmdbId 200, got %v", r.TmdbID)
			}
		default:
			if r.TmdbID != nil {
				t.Errorf("Expected nil tmdbId for %s, got %v", r.Title, r.TmdbID)
			}
		}
	}
}
