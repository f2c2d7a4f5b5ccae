package recommender

import (
	"context"
	"fmt"
	"sort"

	"movieReco/domain"
	"movieReco/pkg/logger"
	"movieReco/pkg/metrics"
)

const (
	SourceEnhanced = "python_ml_enhanced"
	SourceGenre    = "python_ml"
	SourceFallback = "python_ml_fallback"

	candidateLimit = 15

	defaultTopN                   = 30
	defaultGenreScoreThreshold    = 0.05
	defaultDetailedScoreThreshold = 0.15

	maxCreditedActors = 3
)

// ---- Repository interfaces ----

type CatalogRepository interface {
	FetchByGenres(ctx context.Context, genreIDs []int, page, limit int) []domain.Candidate
	FetchByGenresDetailed(ctx context.Context, genreIDs []int, limit int) []domain.Candidate
}

// ---- Usecase / Service ----

// Config carries the tuning constants of the pipeline. The thresholds are
// empirically tuned values; they are configuration, not derived quantities.
type Config struct {
	TopN                   int
	GenreScoreThreshold    float64
	DetailedScoreThreshold float64
}

type Service struct {
	catalog CatalogRepository
	reasons *ReasonGenerator
	cfg     Config
}

func NewService(catalog CatalogRepository, reasons *ReasonGenerator, cfg Config) *Service {
	if cfg.TopN <= 0 {
		cfg.TopN = defaultTopN
	}
	if cfg.GenreScoreThreshold <= 0 {
		cfg.GenreScoreThreshold = defaultGenreScoreThreshold
	}
	if cfg.DetailedScoreThreshold <= 0 {
		cfg.DetailedScoreThreshold = defaultDetailedScoreThreshold
	}
	if reasons == nil {
		reasons = NewReasonGenerator()
	}
	return &Service{
		catalog: catalog,
		reasons: reasons,
		cfg:     cfg,
	}
}

// Recommend runs the tiered pipeline over the liked movies: the detailed
// (genre + director + actor) tier first, falling back to the plain genre
// tier when it fails or yields nothing. All state is request-scoped.
func (s *Service) Recommend(ctx context.Context, liked []domain.LikedMovie) ([]domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if len(liked) == 0 {
		return []domain.Recommendation{}, nil
	}

	tid := TraceIDFromContext(ctx)

	recs, err := s.detailedRecommendations(ctx, liked)
	if err != nil {
		logger.Warn("detailed pipeline failed, using genre pipeline",
			"trace_id", tid,
			"error", err,
		)
		return s.genreRecommendations(ctx, liked)
	}
	if len(recs) == 0 {
		logger.Info("detailed pipeline empty, using genre pipeline", "trace_id", tid)
		return s.genreRecommendations(ctx, liked)
	}

	return recs, nil
}

// detailedRecommendations scores detail-enriched candidates per liked movie
// against the global affinity profile.
func (s *Service) detailedRecommendations(ctx context.Context, liked []domain.LikedMovie) ([]domain.Recommendation, error) {
	analysis := AnalyzeDetailedPreferences(liked)
	tid := TraceIDFromContext(ctx)

	recommendations := make([]domain.Recommendation, 0, len(liked)*candidateLimit)

	for _, movie := range liked {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context error: %w", err)
		}

		genreIDs := resolveGenreIDs(movie.Genres)
		if len(genreIDs) == 0 {
			logger.Debug("liked movie has no resolvable genres, skipping",
				"trace_id", tid,
				"title", movie.Title,
			)
			continue
		}

		userDirectors := personKeys(movie.Directors, 0)
		userActors := personKeys(movie.Cast, 0)

		candidates := s.catalog.FetchByGenresDetailed(ctx, genreIDs, candidateLimit)

		for _, candidate := range candidates {
			movieGenres := candidateGenreIDs(candidate, nil)
			movieDirectors := personKeys(candidate.Directors, 0)
			movieActors := personKeys(candidate.Cast, maxActorsPerMovie)

			score := DetailedSimilarity(
				genreIDs, userDirectors, userActors,
				movieGenres, movieDirectors, movieActors,
				analysis,
			)
			if score <= s.cfg.DetailedScoreThreshold {
				continue
			}

			recommendations = append(recommendations, domain.Recommendation{
				MovieID:     candidate.ID,
				Title:       candidate.Title,
				Score:       score,
				Source:      SourceEnhanced,
				Reason:      s.reasons.DetailedReason(movie, candidate, genreIDs, movieGenres),
				PosterPath:  candidate.PosterPath,
				VoteAverage: candidate.VoteAverage,
				ReleaseDate: candidate.ReleaseDate,
				Overview:    candidate.Overview,
				GenreIDs:    movieGenres,
				Directors:   personNames(candidate.Directors, 0),
				Actors:      personNames(candidate.Cast, maxCreditedActors),
			})
		}
	}

	final := dedupAndRank(recommendations, s.cfg.TopN)
	countServed(final)

	logger.Info("detailed recommendations ready",
		"trace_id", tid,
		"liked_movies", len(liked),
		"recommendations", len(final),
	)

	return final, nil
}

// genreRecommendations is the plain tier: genre-only scoring, with a static
// fallback recommendation for any liked movie the catalog produced nothing
// for.
func (s *Service) genreRecommendations(ctx context.Context, liked []domain.LikedMovie) ([]domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	analysis := AnalyzeGenrePreferences(liked)
	tid := TraceIDFromContext(ctx)

	recommendations := make([]domain.Recommendation, 0, len(liked)*candidateLimit)

	for _, movie := range liked {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context error: %w", err)
		}

		genreIDs := resolveGenreIDs(movie.Genres)
		if len(genreIDs) == 0 {
			logger.Debug("liked movie has no resolvable genres, skipping",
				"trace_id", tid,
				"title", movie.Title,
			)
			continue
		}

		perMovie := s.genreCandidates(ctx, movie, genreIDs, analysis)
		if len(perMovie) == 0 {
			logger.Warn("no catalog candidates, emitting static fallback",
				"trace_id", tid,
				"title", movie.Title,
			)
			metrics.FallbackRecommendationsTotal.Inc()
			perMovie = []domain.Recommendation{fallbackRecommendation(movie.Title)}
		}

		recommendations = append(recommendations, perMovie...)
	}

	final := dedupAndRank(recommendations, s.cfg.TopN)
	countServed(final)

	logger.Info("genre recommendations ready",
		"trace_id", tid,
		"liked_movies", len(liked),
		"recommendations", len(final),
	)

	return final, nil
}

func (s *Service) genreCandidates(ctx context.Context, movie domain.LikedMovie, genreIDs []int, analysis Analysis) []domain.Recommendation {
	candidates := s.catalog.FetchByGenres(ctx, genreIDs, 1, candidateLimit)

	out := make([]domain.Recommendation, 0, len(candidates))
	for _, candidate := range candidates {
		movieGenres := candidateGenreIDs(candidate, genreIDs)

		score := GenreSimilarity(genreIDs, movieGenres, analysis)
		if score <= s.cfg.GenreScoreThreshold {
			continue
		}

		out = append(out, domain.Recommendation{
			MovieID:     candidate.ID,
			Title:       candidate.Title,
			Score:       score,
			Source:      SourceGenre,
			Reason:      s.reasons.GenreReason(genreIDs, movieGenres, movie.Title),
			PosterPath:  candidate.PosterPath,
			VoteAverage: candidate.VoteAverage,
			ReleaseDate: candidate.ReleaseDate,
			Overview:    candidate.Overview,
			GenreIDs:    movieGenres,
		})
	}

	return out
}

// candidateGenreIDs resolves a candidate's genre ids, trying the flat id
// list, then the structured genre objects, then the caller-supplied
// fallback ids.
func candidateGenreIDs(candidate domain.Candidate, fallback []int) []int {
	if len(candidate.GenreIDs) > 0 {
		return candidate.GenreIDs
	}
	if len(candidate.Genres) > 0 {
		ids := make([]int, 0, len(candidate.Genres))
		for _, genre := range candidate.Genres {
			if genre.ID != 0 {
				ids = append(ids, genre.ID)
			}
		}
		if len(ids) > 0 {
			return ids
		}
	}
	return fallback
}

// fallbackRecommendation is the fixed well-known movie served when the
// catalog yields nothing for a liked movie.
func fallbackRecommendation(originalTitle string) domain.Recommendation {
	return domain.Recommendation{
		MovieID:     550,
		Title:       "Fight Club",
		Score:       0.7,
		Source:      SourceFallback,
		Reason:      fmt.Sprintf("Recommended based on %s", originalTitle),
		VoteAverage: 8.8,
		ReleaseDate: "1999-10-15",
	}
}

// dedupAndRank sorts by score descending, keeps the first (highest-scoring)
// occurrence of each movie id, and truncates to topN.
func dedupAndRank(recs []domain.Recommendation, topN int) []domain.Recommendation {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})

	seen := make(map[int]struct{}, len(recs))
	out := make([]domain.Recommendation, 0, len(recs))
	for _, rec := range recs {
		if _, ok := seen[rec.MovieID]; ok {
			continue
		}
		seen[rec.MovieID] = struct{}{}
		out = append(out, rec)
	}

	if len(out) > topN {
		out = out[:topN]
	}
	return out
}

func countServed(recs []domain.Recommendation) {
	for _, rec := range recs {
		metrics.RecommendationsServedTotal.WithLabelValues(rec.Source).Inc()
	}
}

func personKeys(people []domain.Person, limit int) []string {
	if limit > 0 && len(people) > limit {
		people = people[:limit]
	}
	keys := make([]string, 0, len(people))
	for _, person := range people {
		keys = append(keys, person.Key())
	}
	return keys
}

func personNames(people []domain.Person, limit int) []string {
	if limit > 0 && len(people) > limit {
		people = people[:limit]
	}
	names := make([]string, 0, len(people))
	for _, person := range people {
		names = append(names, person.Name)
	}
	return names
}
