package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"movieReco/domain"
	"movieReco/pkg/logger"
	"movieReco/pkg/metrics"
)

// Fixed quality policy for the candidate pool: well-voted, reasonably rated,
// English-language releases only. Not tunable per request.
const (
	sortByPopularity = "popularity.desc"
	resultLanguage   = "en-US"
	minVoteCount     = "100"
	minVoteAverage   = "6.0"
	maxReleaseDate   = "2024-12-31"
	originalLanguage = "en"

	directorJob    = "Director"
	maxCastMembers = 5

	requestTimeout = 10 * time.Second
)

type TMDBConfig struct {
	APIKey  string
	BaseURL string
}

type TMDBRepository struct {
	tmdbConfig TMDBConfig
	client     *http.Client
}

func NewTMDBRepository(cfg TMDBConfig) *TMDBRepository {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.themoviedb.org/3"
	}
	return &TMDBRepository{
		tmdbConfig: cfg,
		client:     &http.Client{Timeout: requestTimeout},
	}
}

type discoverResponse struct {
	Results []domain.Candidate `json:"results"`
}

type creditPerson struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Job  string `json:"job"`
}

type movieDetails struct {
	Credits struct {
		Crew []creditPerson `json:"crew"`
		Cast []creditPerson `json:"cast"`
	} `json:"credits"`
}

// FetchByGenres queries the discover endpoint filtered by the genre set and
// the fixed quality policy, truncated to limit. Any transport or non-200
// failure degrades to an empty candidate pool; it is never surfaced as an
// error to the caller.
func (r *TMDBRepository) FetchByGenres(ctx context.Context, genreIDs []int, page, limit int) []domain.Candidate {
	if len(genreIDs) == 0 {
		return []domain.Candidate{}
	}

	params := url.Values{}
	params.Set("api_key", r.tmdbConfig.APIKey)
	params.Set("with_genres", joinGenreIDs(genreIDs))
	params.Set("page", strconv.Itoa(page))
	params.Set("sort_by", sortByPopularity)
	params.Set("language", resultLanguage)
	params.Set("vote_count.gte", minVoteCount)
	params.Set("vote_average.gte", minVoteAverage)
	params.Set("primary_release_date.lte", maxReleaseDate)
	params.Set("with_original_language", originalLanguage)

	var out discoverResponse
	if !r.get(ctx, "/discover/movie", params, "discover", &out) {
		return []domain.Candidate{}
	}

	movies := out.Results
	if len(movies) > limit {
		movies = movies[:limit]
	}

	logger.Debug("tmdb discover ok", "genres", joinGenreIDs(genreIDs), "movies", len(movies))
	return movies
}

// FetchByGenresDetailed fetches candidates and enriches each with directors
// and top-billed cast from the per-movie credits. A failed details call
// keeps the candidate with empty credits rather than dropping it.
func (r *TMDBRepository) FetchByGenresDetailed(ctx context.Context, genreIDs []int, limit int) []domain.Candidate {
	movies := r.FetchByGenres(ctx, genreIDs, 1, limit)

	for i := range movies {
		details := r.fetchDetails(ctx, movies[i].ID)
		if details == nil {
			logger.Warn("tmdb details unavailable, keeping candidate without credits",
				"movie_id", movies[i].ID,
				"title", movies[i].Title,
			)
			continue
		}

		for _, member := range details.Credits.Crew {
			if member.Job == directorJob {
				movies[i].Directors = append(movies[i].Directors, domain.Person{ID: member.ID, Name: member.Name})
			}
		}

		cast := details.Credits.Cast
		if len(cast) > maxCastMembers {
			cast = cast[:maxCastMembers]
		}
		for _, member := range cast {
			movies[i].Cast = append(movies[i].Cast, domain.Person{ID: member.ID, Name: member.Name})
		}
	}

	return movies
}

func (r *TMDBRepository) fetchDetails(ctx context.Context, movieID int) *movieDetails {
	params := url.Values{}
	params.Set("api_key", r.tmdbConfig.APIKey)
	params.Set("append_to_response", "credits,keywords")

	var out movieDetails
	if !r.get(ctx, fmt.Sprintf("/movie/%d", movieID), params, "details", &out) {
		return nil
	}
	return &out
}

// get performs one GET against the catalog and decodes the body into out.
// Returns false on any failure, after logging and counting it.
func (r *TMDBRepository) get(ctx context.Context, path string, params url.Values, endpoint string, out any) bool {
	reqURL := r.tmdbConfig.BaseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		logger.Error("tmdb request build failed", "endpoint", endpoint, "error", err)
		metrics.TMDBErrorsTotal.WithLabelValues(endpoint).Inc()
		return false
	}

	res, err := r.client.Do(req)
	if err != nil {
		logger.Warn("tmdb request failed", "endpoint", endpoint, "error", err)
		metrics.TMDBErrorsTotal.WithLabelValues(endpoint).Inc()
		return false
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		logger.Warn("tmdb non-ok status", "endpoint", endpoint, "status", res.StatusCode)
		metrics.TMDBErrorsTotal.WithLabelValues(endpoint).Inc()
		return false
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		logger.Warn("tmdb response decode failed", "endpoint", endpoint, "error", err)
		metrics.TMDBErrorsTotal.WithLabelValues(endpoint).Inc()
		return false
	}

	return true
}

func joinGenreIDs(genreIDs []int) string {
	parts := make([]string, 0, len(genreIDs))
	for _, id := range genreIDs {
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, ",")
}
