package recommender

import (
	"context"
	"testing"

	"movieReco/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	plain    func(genreIDs []int, page, limit int) []domain.Candidate
	detailed func(genreIDs []int, limit int) []domain.Candidate
}

func (f *fakeCatalog) FetchByGenres(_ context.Context, genreIDs []int, page, limit int) []domain.Candidate {
	if f.plain == nil {
		return []domain.Candidate{}
	}
	return f.plain(genreIDs, page, limit)
}

func (f *fakeCatalog) FetchByGenresDetailed(_ context.Context, genreIDs []int, limit int) []domain.Candidate {
	if f.detailed == nil {
		return []domain.Candidate{}
	}
	return f.detailed(genreIDs, limit)
}

func newTestService(catalog CatalogRepository) *Service {
	return NewService(catalog, NewReasonGeneratorWithPicker(func(int) int { return 0 }), Config{})
}

func TestRecommend_EmptyInput(t *testing.T) {
	svc := newTestService(&fakeCatalog{})

	recs, err := svc.Recommend(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestRecommend_DetailedTier(t *testing.T) {
	liked := []domain.LikedMovie{
		{
			Title:     "Inception",
			Genres:    []domain.Genre{{ID: 28, Name: "Action"}},
			Directors: []domain.Person{{ID: 7, Name: "Christopher Nolan"}},
		},
	}

	catalog := &fakeCatalog{
		detailed: func(genreIDs []int, limit int) []domain.Candidate {
			assert.Equal(t, []int{28}, genreIDs)
			return []domain.Candidate{
				{
					ID:        101,
					Title:     "Tenet",
					GenreIDs:  []int{28},
					Directors: []domain.Person{{ID: 7, Name: "Christopher Nolan"}},
				},
				{
					ID:        102,
					Title:     "Scary House",
					GenreIDs:  []int{27},
					Directors: []domain.Person{{ID: 8, Name: "Someone Else"}},
				},
			}
		},
	}

	svc := newTestService(catalog)
	recs, err := svc.Recommend(context.Background(), liked)
	require.NoError(t, err)

	require.Len(t, recs, 1, "the Horror candidate scores below the detailed threshold")
	assert.Equal(t, 101, recs[0].MovieID)
	assert.Equal(t, SourceEnhanced, recs[0].Source)
	assert.Equal(t, "Same director: Christopher Nolan", recs[0].Reason)
	assert.Greater(t, recs[0].Score, 0.15)
	assert.Equal(t, []string{"Christopher Nolan"}, recs[0].Directors)
}

func TestRecommend_FallsBackToGenreTier(t *testing.T) {
	liked := []domain.LikedMovie{likedActionMovie("Mad Max")}

	catalog := &fakeCatalog{
		// Detailed tier yields nothing; plain tier has candidates.
		plain: func(genreIDs []int, page, limit int) []domain.Candidate {
			assert.Equal(t, 1, page)
			return []domain.Candidate{
				{ID: 201, Title: "John Wick", GenreIDs: []int{28, 53}},
			}
		},
	}

	svc := newTestService(catalog)
	recs, err := svc.Recommend(context.Background(), liked)
	require.NoError(t, err)

	require.Len(t, recs, 1)
	assert.Equal(t, SourceGenre, recs[0].Source)
	assert.Equal(t, 201, recs[0].MovieID)
}

func TestRecommend_StaticFallbackWhenCatalogEmpty(t *testing.T) {
	liked := []domain.LikedMovie{likedActionMovie("Mad Max")}

	svc := newTestService(&fakeCatalog{})
	recs, err := svc.Recommend(context.Background(), liked)
	require.NoError(t, err)

	require.Len(t, recs, 1, "empty catalog must still produce the static fallback")
	assert.Equal(t, 550, recs[0].MovieID)
	assert.Equal(t, "Fight Club", recs[0].Title)
	assert.Equal(t, SourceFallback, recs[0].Source)
	assert.InDelta(t, 0.7, recs[0].Score, 1e-9)
	assert.Equal(t, "Recommended based on Mad Max", recs[0].Reason)
}

func TestRecommend_SkipsMoviesWithoutResolvableGenres(t *testing.T) {
	liked := []domain.LikedMovie{
		{Title: "Mystery Tape", Genres: []domain.Genre{{Name: "Telenovela"}}},
	}

	calls := 0
	catalog := &fakeCatalog{
		plain: func([]int, int, int) []domain.Candidate {
			calls++
			return nil
		},
		detailed: func([]int, int) []domain.Candidate {
			calls++
			return nil
		},
	}

	svc := newTestService(catalog)
	recs, err := svc.Recommend(context.Background(), liked)
	require.NoError(t, err)

	assert.Empty(t, recs)
	assert.Zero(t, calls, "unresolvable movies must not hit the catalog")
}

func TestRecommend_CandidateGenreFallbackToLikedGenres(t *testing.T) {
	liked := []domain.LikedMovie{likedActionMovie("Mad Max")}

	catalog := &fakeCatalog{
		plain: func([]int, int, int) []domain.Candidate {
			// Candidate without any genre information at all.
			return []domain.Candidate{{ID: 301, Title: "Unlabeled"}}
		},
	}

	svc := newTestService(catalog)
	recs, err := svc.Recommend(context.Background(), liked)
	require.NoError(t, err)

	require.Len(t, recs, 1)
	assert.Equal(t, 301, recs[0].MovieID)
	assert.Equal(t, []int{28}, recs[0].GenreIDs, "liked movie's own genres substitute for missing candidate genres")
}

func TestRecommend_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := newTestService(&fakeCatalog{})
	_, err := svc.Recommend(ctx, []domain.LikedMovie{likedActionMovie("Heat")})
	assert.Error(t, err)
}

func TestDedupAndRank(t *testing.T) {
	recs := []domain.Recommendation{
		{MovieID: 1, Score: 0.4},
		{MovieID: 2, Score: 0.8},
		{MovieID: 1, Score: 0.9},
		{MovieID: 3, Score: 0.6},
	}

	out := dedupAndRank(recs, 30)

	require.Len(t, out, 3)
	assert.Equal(t, 1, out[0].MovieID)
	assert.InDelta(t, 0.9, out[0].Score, 1e-9, "dedup keeps the highest-scoring duplicate")
	assert.Equal(t, 2, out[1].MovieID)
	assert.Equal(t, 3, out[2].MovieID)

	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i-1].Score, out[i].Score, "sorted by score descending")
	}
}

func TestDedupAndRank_Truncates(t *testing.T) {
	recs := make([]domain.Recommendation, 0, 40)
	for i := 0; i < 40; i++ {
		recs = append(recs, domain.Recommendation{MovieID: i, Score: float64(i) / 40})
	}

	out := dedupAndRank(recs, 30)
	assert.Len(t, out, 30)
}

func TestRecommend_UniqueMovieIDsAcrossLikedMovies(t *testing.T) {
	liked := []domain.LikedMovie{
		likedActionMovie("Mad Max"),
		likedActionMovie("John Wick"),
	}

	catalog := &fakeCatalog{
		plain: func([]int, int, int) []domain.Candidate {
			// The same candidate comes back for both liked movies.
			return []domain.Candidate{{ID: 401, Title: "Heat", GenreIDs: []int{28}}}
		},
	}

	svc := newTestService(catalog)
	recs, err := svc.Recommend(context.Background(), liked)
	require.NoError(t, err)

	seen := make(map[int]bool)
	for _, rec := range recs {
		assert.False(t, seen[rec.MovieID], "movie %d appears twice", rec.MovieID)
		seen[rec.MovieID] = true
	}
	assert.Len(t, recs, 1)
}
