package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig
	Server ServerConfig
	TMDB   TMDBConfig
	Reco   RecoConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type TMDBConfig struct {
	APIKey  string
	BaseURL string
}

type RecoConfig struct {
	TopN                   int
	GenreScoreThreshold    float64
	DetailedScoreThreshold float64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	topN, err := strconv.Atoi(getEnv("RECO_TOP_N", "30"))
	if err != nil {
		return nil, errors.New("invalid reco top n")
	}

	genreThreshold, err := strconv.ParseFloat(getEnv("GENRE_SCORE_THRESHOLD", "0.05"), 64)
	if err != nil {
		return nil, errors.New("invalid genre score threshold")
	}

	detailedThreshold, err := strconv.ParseFloat(getEnv("DETAILED_SCORE_THRESHOLD", "0.15"), 64)
	if err != nil {
		return nil, errors.New("invalid detailed score threshold")
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "ML Recommendation Service"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "5001"),
		},
		TMDB: TMDBConfig{
			APIKey:  getEnv("TMDB_API_KEY", ""),
			BaseURL: getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		},
		Reco: RecoConfig{
			TopN:                   topN,
			GenreScoreThreshold:    genreThreshold,
			DetailedScoreThreshold: detailedThreshold,
		},
	}

	if cfg.TMDB.APIKey == "" {
		return nil, errors.New("missing tmdb api key")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}
