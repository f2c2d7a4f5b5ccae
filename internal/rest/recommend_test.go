package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"movieReco/domain"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecommender struct {
	recs []domain.Recommendation
	err  error
}

func (f *fakeRecommender) Recommend(context.Context, []domain.LikedMovie) ([]domain.Recommendation, error) {
	return f.recs, f.err
}

func doRecommend(t *testing.T, svc RecommenderService, body string) (*httptest.ResponseRecorder, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/ml/recommend", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewRecommendHandler(svc, "ML Recommendation Service", "1.0.0")
	return rec, handler.Recommend(c)
}

func TestRecommend_EmptyLikedMovies(t *testing.T) {
	rec, err := doRecommend(t, &fakeRecommender{}, `{"user_id":"u1","liked_movies":[]}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp RecommendResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Recommendations)
	assert.Empty(t, resp.Recommendations)
	assert.NotEmpty(t, resp.Message)
}

func TestRecommend_Success(t *testing.T) {
	recs := []domain.Recommendation{
		{MovieID: 101, Title: "Tenet", Score: 0.6, Source: "python_ml_enhanced", Reason: "Same director: Christopher Nolan"},
	}

	body := `{"user_id":"u1","liked_movies":[{"movieId":1,"title":"Inception","genres":[{"id":28,"name":"Action"}]}]}`
	rec, err := doRecommend(t, &fakeRecommender{recs: recs}, body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp RecommendResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "hybrid_content_based", resp.Algorithm)
	assert.Equal(t, "u1", resp.UserID)
	assert.Equal(t, 1, resp.LikedMoviesCount)
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Recommendations, 1)
	assert.Equal(t, 101, resp.Recommendations[0].MovieID)
}

func TestRecommend_MixedGenreRepresentations(t *testing.T) {
	var captured []domain.LikedMovie
	svc := recommenderFunc(func(_ context.Context, liked []domain.LikedMovie) ([]domain.Recommendation, error) {
		captured = liked
		return []domain.Recommendation{}, nil
	})

	body := `{"user_id":"u1","liked_movies":[{"movieId":1,"title":"Alien","genres":["Horror",{"id":878,"name":"Science Fiction"}],"directors":["Ridley Scott"]}]}`
	rec, err := doRecommend(t, svc, body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, captured, 1)
	require.Len(t, captured[0].Genres, 2)
	assert.Equal(t, "Horror", captured[0].Genres[0].Name)
	assert.Equal(t, 0, captured[0].Genres[0].ID)
	assert.Equal(t, 878, captured[0].Genres[1].ID)
	require.Len(t, captured[0].Directors, 1)
	assert.Equal(t, "Ridley Scott", captured[0].Directors[0].Name)
}

func TestRecommend_ServiceErrorReturns500(t *testing.T) {
	svc := &fakeRecommender{err: errors.New("pipeline blew up")}

	body := `{"user_id":"u1","liked_movies":[{"movieId":1,"title":"Heat","genres":[{"id":28,"name":"Action"}]}]}`
	rec, err := doRecommend(t, svc, body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "pipeline blew up")
}

func TestRecommend_MalformedBodyReturns500(t *testing.T) {
	rec, err := doRecommend(t, &fakeRecommender{}, `{"user_id": not-json`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
}

func TestHealth(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/ml/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewRecommendHandler(&fakeRecommender{}, "ML Recommendation Service", "1.0.0")
	require.NoError(t, handler.Health(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "ML Recommendation Service", resp.Service)
	assert.Equal(t, "1.0.0", resp.Version)
	assert.NotEmpty(t, resp.Timestamp)
}

type recommenderFunc func(ctx context.Context, liked []domain.LikedMovie) ([]domain.Recommendation, error)

func (f recommenderFunc) Recommend(ctx context.Context, liked []domain.LikedMovie) ([]domain.Recommendation, error) {
	return f(ctx, liked)
}
