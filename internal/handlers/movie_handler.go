package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"back_movies/internal/catalog"
	"back_movies/internal/services"
)

type MovieHandler struct {
    catalog     *catalog.Catalog
    tmdbService services.TMDBService
}

func NewMovieHandler(cat *catalog.Catalog, tmdb services.TMDBService) *MovieHandler {
    return &MovieHandler{
        catalog:     cat,
        tmdbService: tmdb,
    }
}

// GET /api/movies
func (h *MovieHandler) GetAllMovies(c *gin.Context) {
    movies := h.catalog.Movies()
    c.JSON(http.StatusOK, gin.H{
        "status": "success",
        "data":   movies,
        "count":  len(movies),
    })
}

// GET /api/movies/search?title=matrix&limit=20
func (h *MovieHandler) SearchMovies(c *gin.Context) {
    title := c.Query("title")
    if title == "" {
        c.JSON(http.StatusBadRequest, gin.H{
            "status":  "error",
            "message": "Query parameter 'title' is required",
        })
        return
    }

    limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
    if err != nil || limit <= 0 {
        limit = 20
    }

    movies := h.catalog.SearchByTitle(title, limit)
    c.JSON(http.StatusOK, gin.H{
        "status": "success",
        "data":   movies,
        "count":  len(movies),
    })
}

// GET /api/movies/:movie_id
func (h *MovieHandler) GetMovieByID(c *gin.Context) {
    movieID, err := strconv.Atoi(c.Param("movie_id"))
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{
            "status":  "error",
            "message": "Invalid movie ID",
        })
        return
    }

    movie, ok := h.catalog.MovieByID(movieID)
    if !ok {
        c.JSON(http.StatusNotFound, gin.H{
            "status":  "error",
            "message": "Movie not found",
        })
        return
    }

    c.JSON(http.StatusOK, gin.H{
        "status": "success",
        "data":   movie,
    })
}

// GET /api/movies/:movie_id/poster
//
// A movie without a TMDB id, or any lookup failure, resolves to a null
// poster URL. Lookup problems never surface as HTTP errors.
func (h *MovieHandler) GetMoviePoster(c *gin.Context) {
    movieID, err := strconv.Atoi(c.Param("movie_id"))
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{
            "status":  "error",
            "message": "Invalid movie ID",
        })
        return
    }

    if _, ok := h.catalog.MovieByID(movieID); !ok {
        c.JSON(http.StatusNotFound, gin.H{
            "status":  "error",
            "message": "Movie not found",
        })
        return
    }

    var posterURL *string
    if tmdbID := h.catalog.TmdbID(movieID); tmdbID != nil {
        if url, ok := h.tmdbService.FetchPosterURL(*tmdbID); ok {
            posterURL = &url
        }
    }

    c.JSON(http.StatusOK, gin.H{
        "status": "success",
        "data": gin.H{
            "movieId":    movieID,
            "poster_url": posterURL,
        },
    })
}
