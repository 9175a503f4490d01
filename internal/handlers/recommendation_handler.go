package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"back_movies/internal/config"
	"back_movies/internal/services"
)

type RecommendationHandler struct {
    trendingService services.TrendingService
    hybridService   services.HybridService
    contentService  services.ContentBasedService
    config          *config.Config
}

func NewRecommendationHandler(
    trending services.TrendingService,
    hybrid services.HybridService,
    content services.ContentBasedService,
) *RecommendationHandler {
    return &RecommendationHandler{
        trendingService: trending,
        hybridService:   hybrid,
        contentService:  content,
        config:          config.GlobalConfig,
    }
}

// GET /api/recommendations/trending?days=30&limit=20
func (h *RecommendationHandler) GetTrendingMovies(c *gin.Context) {
    days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
    if err != nil || days <= 0 {
        days = 30
    }
    limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
    if err != nil || limit <= 0 {
        limit = 20
    }

    movies := h.trendingService.GetTrendingMovies(days, limit)

    c.JSON(http.StatusOK, gin.H{
        "status": "success",
        "data":   movies,
        "count":  len(movies),
    })
}

// GET /api/recommendations/user/:user_id?limit=10&alpha=0.6
func (h *RecommendationHandler) GetUserRecommendations(c *gin.Context) {
    userID, err := strconv.Atoi(c.Param("user_id"))
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{
            "status":  "error",
            "message": "Invalid user ID",
        })
        return
    }

    limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
    if err != nil || limit <= 0 {
        limit = 10
    }

    alpha := h.config.Alpha
    if raw := c.Query("alpha"); raw != "" {
        if v, err := strconv.ParseFloat(raw, 64); err == nil {
            alpha = v
        }
    }

    // A user with no liked movies gets an empty list, not an error.
    movies := h.hybridService.GetHybridRecommendations(userID, limit, alpha)

    c.JSON(http.StatusOK, gin.H{
        "status": "success",
        "data":   movies,
        "count":  len(movies),
    })
}

// GET /api/recommendations/movie?title=Inception&limit=10
func (h *RecommendationHandler) GetSimilarMovies(c *gin.Context) {
    title := c.Query("title")
    if title == "" {
        c.JSON(http.StatusBadRequest, gin.H{
            "status":  "error",
            "message": "Query parameter 'title' is required",
        })
        return
    }

    limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
    if err != nil || limit <= 0 {
        limit = 10
    }

    movies := h.contentService.GetSimilarMovies(title, limit)

    c.JSON(http.StatusOK, gin.H{
        "status": "success",
        "data":   movies,
        "count":  len(movies),
    })
}
