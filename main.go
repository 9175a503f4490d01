// main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"back_movies/internal/catalog"
	"back_movies/internal/config"
	"back_movies/internal/database"
	"back_movies/internal/handlers"
	"back_movies/internal/routes"
	"back_movies/internal/services"
)

func main() {

	// =========================
	// LOAD CONFIG (SAFE)
	// =========================
	if err := config.LoadConfig(); err != nil {
		log.Println("⚠️ Config load warning:", err)
		log.Println("⚠️ Using environment variables only")
	}
	cfg := config.GlobalConfig

	// =========================
	// LOAD CATALOG
	// =========================
	// Malformed source tables abort startup; a half-loaded catalog would
	// produce silently wrong recommendations.
	var cat *catalog.Catalog
	var err error

	switch cfg.CatalogSource {
	case "postgres":
		if err := database.ConnectDB(); err != nil {
			log.Fatalf("❌ Database connection failed: %v", err)
		}
		database.RunMigrations()
		if err := database.SeedFromCSVIfEmpty(cfg.DataDir); err != nil {
			log.Fatalf("❌ Database seeding failed: %v", err)
		}
		cat, err = catalog.LoadFromDB(database.DB)
	default:
		cat, err = catalog.LoadFromCSV(cfg.DataDir)
	}
	if err != nil {
		log.Fatalf("❌ Catalog load failed: %v", err)
	}

	// =========================
	// BUILD SIMILARITY INDICES
	// =========================
	// Built once at startup, read-only for the process lifetime. No query
	// path ever rebuilds them.
	start := time.Now()
	contentService := services.NewContentBasedService(cat)
	collaborativeService := services.NewCollaborativeService(cat)
	log.Printf("✅ Similarity indices built in %s", time.Since(start).Round(time.Millisecond))

	// =========================
	// INIT SERVICES
	// =========================
	hybridService := services.NewHybridService(cat, contentService, collaborativeService)
	trendingService := services.NewTrendingService(cat)
	tmdbService := services.NewTMDBService()

	// =========================
	// INIT HANDLERS
	// =========================
	movieHandler := handlers.NewMovieHandler(cat, tmdbService)
	recommendationHandler := handlers.NewRecommendationHandler(
		trendingService,
		hybridService,
		contentService,
	)

	// =========================
	// ROUTES
	// =========================
	router := routes.SetupRoutes(movieHandler, recommendationHandler)

	// =========================
	// PORT
	// =========================
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.ServerPort
	}
	if port == "" {
		port = "8080"
	}

	bindAddr := "0.0.0.0:" + port

	// =========================
	// SERVER CONFIG
	// =========================
	server := &http.Server{
		Addr:         bindAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// =========================
	// START SERVER
	// =========================
	go func() {
		log.Println("🎬 =======================================")
		log.Println("🎬   BACK MOVIES API SERVER")
		log.Println("🎬 =======================================")
		log.Printf("🎬   Running on: %s", bindAddr)
		log.Printf("🎬   Catalog: %d movies, %d ratings", cat.MovieCount(), len(cat.Ratings()))
		log.Println("🎬 =======================================")
		log.Println("🚀 Server started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Println("❌ Server error:", err)
		}
	}()

	// =========================
	// GRACEFUL SHUTDOWN
	// =========================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Println("❌ Forced shutdown:", err)
	}

	log.Println("✅ Server exited properly")
}
