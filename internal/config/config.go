package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
    TMDBAPIKey string

    DataDir       string
    CatalogSource string // "csv" | "postgres"

    DBHost     string
    DBPort     string
    DBUser     string
    DBPassword string
    DBName     string
    DBSSLMode  string

    ServerPort string

    // Alpha is the default collaborative weight of the hybrid blend.
    // Content weight is always 1-Alpha.
    Alpha float64
}

var GlobalConfig *Config

func LoadConfig() error {
    if err := godotenv.Load(); err != nil {
        log.Println("No .env file found, using environment variables")
    }

    env := getEnv("ENV", "development")

    alpha, _ := strconv.ParseFloat(getEnv("ALPHA", "0.6"), 64)

    // Set DB defaults based on environment. Postgres is only dialed when
    // CATALOG_SOURCE=postgres; the default catalog source is plain CSV.
    var dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode string
    if env == "production" {
        dbHost = getEnv("DB_HOST", "")
        dbPort = getEnv("DB_PORT", "5432")
        dbUser = getEnv("DB_USER", "")
        dbPassword = getEnv("DB_PASSWORD", "")
        dbName = getEnv("DB_NAME", "")
        dbSSLMode = getEnv("DB_SSLMODE", "require")
    } else {
        dbHost = getEnv("DB_HOST", "localhost")
        dbPort = getEnv("DB_PORT", "5432")
        dbUser = getEnv("DB_USER", "postgres")
        dbPassword = getEnv("DB_PASSWORD", "password")
        dbName = getEnv("DB_NAME", "movie_recs")
        dbSSLMode = getEnv("DB_SSLMODE", "disable")
    }

    GlobalConfig = &Config{
        TMDBAPIKey: getEnv("TMDB_API_KEY", ""),

        DataDir:       getEnv("DATA_DIR", "data"),
        CatalogSource: getEnv("CATALOG_SOURCE", "csv"),

        DBHost:     dbHost,
        DBPort:     dbPort,
        DBUser:     dbUser,
        DBPassword: dbPassword,
        DBName:     dbName,
        DBSSLMode:  dbSSLMode,

        ServerPort: getEnv("SERVER_PORT", "8080"),

        Alpha: alpha,
    }

    if GlobalConfig.TMDBAPIKey == "" {
        log.Println("⚠️ TMDB_API_KEY not set, poster lookup disabled")
    }

    return nil
}

func getEnv(key, defaultValue string) string {
    if value := os.Getenv(key); value != "" {
        return value
    }
    return defaultValue
}
