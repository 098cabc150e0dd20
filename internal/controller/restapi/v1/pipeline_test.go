package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleksmelnikov/meme-annotator/internal/dto"
	"github.com/aleksmelnikov/meme-annotator/internal/entity"
	"github.com/aleksmelnikov/meme-annotator/pkg/types/errs"
)

type fakeEnrich struct {
	gotOrigin entity.Origin
	gotIDs    []string
	outcomes  []dto.EnrichOutcome
	err       error
}

func (f *fakeEnrich) EnrichBatch(_ context.Context, origin entity.Origin, ids []string) ([]dto.EnrichOutcome, error) {
	f.gotOrigin = origin
	f.gotIDs = ids

	return f.outcomes, f.err
}

type fakeAnnotate struct {
	gotIDs   []string
	gotToken string
	summary  *dto.AnnotateSummary
	err      error
}

func (f *fakeAnnotate) SubmitBatch(_ context.Context, ids []string, authToken string) (*dto.AnnotateSummary, error) {
	f.gotIDs = ids
	f.gotToken = authToken

	return f.summary, f.err
}

type fakePosts struct {
	posts     []*entity.Post
	deleteErr error
}

func (f *fakePosts) History(_ context.Context, _ entity.Origin) ([]*entity.Post, error) {
	return f.posts, nil
}

func (f *fakePosts) UploadPost(_ context.Context, _ io.Reader, _, _ string) (*entity.Post, error) {
	return nil, nil
}

func (f *fakePosts) DeletePost(_ context.Context, _ string) error { return f.deleteErr }

func (f *fakePosts) DeleteFolder(_ context.Context, _ string) error { return f.deleteErr }

type noopLogger struct{}

func (noopLogger) Debug(_ interface{}, _ ...interface{}) {}
func (noopLogger) Info(_ string, _ ...interface{})       {}
func (noopLogger) Warn(_ string, _ ...interface{})       {}
func (noopLogger) Error(_ interface{}, _ ...interface{}) {}
func (noopLogger) Fatal(_ interface{}, _ ...interface{}) {}

func newTestApp(enrich *fakeEnrich, annotate *fakeAnnotate, posts *fakePosts) *fiber.App {
	app := fiber.New()
	NewPipelineRoutes(app.Group("/v1"), enrich, annotate, posts, noopLogger{})

	return app
}

func batchBody(t *testing.T, ids []string) *bytes.Buffer {
	t.Helper()

	body, err := json.Marshal(map[string][]string{"post_ids": ids})
	require.NoError(t, err)

	return bytes.NewBuffer(body)
}

func TestEnrichScraped(t *testing.T) {
	enrich := &fakeEnrich{outcomes: []dto.EnrichOutcome{
		{PostID: "p1", Kind: dto.OutcomeSuccess},
		{PostID: "p2", Kind: dto.OutcomeNotFound},
	}}
	app := newTestApp(enrich, &fakeAnnotate{}, &fakePosts{})

	req := httptest.NewRequest(http.MethodPost, "/v1/enrich", batchBody(t, []string{"p1", "p2"}))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.OriginScraped, enrich.gotOrigin)
	assert.Equal(t, []string{"p1", "p2"}, enrich.gotIDs)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"not_found"`)
}

func TestEnrichUploadedOrigin(t *testing.T) {
	enrich := &fakeEnrich{}
	app := newTestApp(enrich, &fakeAnnotate{}, &fakePosts{})

	req := httptest.NewRequest(http.MethodPost, "/v1/uploads/enrich", batchBody(t, []string{"upload_1"}))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.OriginUploaded, enrich.gotOrigin)
}

func TestEnrichBadRequests(t *testing.T) {
	app := newTestApp(&fakeEnrich{}, &fakeAnnotate{}, &fakePosts{})

	tooMany := make([]string, 101)
	for i := range tooMany {
		tooMany[i] = "p"
	}

	tests := []struct {
		name string
		body *bytes.Buffer
	}{
		{name: "empty ids", body: batchBody(t, nil)},
		{name: "oversized batch", body: batchBody(t, tooMany)},
		{name: "garbage body", body: bytes.NewBufferString("not json")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/enrich", tt.body)
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestAnnotate(t *testing.T) {
	annotate := &fakeAnnotate{summary: &dto.AnnotateSummary{Submitted: 3, Accepted: 2}}
	app := newTestApp(&fakeEnrich{}, annotate, &fakePosts{})

	req := httptest.NewRequest(http.MethodPost, "/v1/annotate", batchBody(t, []string{"p1", "p2", "p3"}))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer secret-token")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "secret-token", annotate.gotToken)

	var got struct {
		Submitted int `json:"submitted"`
		Accepted  int `json:"accepted"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, 3, got.Submitted)
	assert.Equal(t, 2, got.Accepted)
}

func TestAnnotateErrors(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		ucErr      error
		wantStatus int
	}{
		{name: "missing token", authHeader: "", wantStatus: http.StatusUnauthorized},
		{name: "not a bearer token", authHeader: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "nothing to submit", authHeader: "Bearer t", ucErr: errs.ErrNothingToSubmit, wantStatus: http.StatusBadRequest},
		{name: "catalog rejection", authHeader: "Bearer t", ucErr: &errs.SubmissionError{StatusCode: 401, Body: "expired"}, wantStatus: http.StatusBadGateway},
		{name: "internal failure", authHeader: "Bearer t", ucErr: io.ErrUnexpectedEOF, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(&fakeEnrich{}, &fakeAnnotate{err: tt.ucErr}, &fakePosts{})

			req := httptest.NewRequest(http.MethodPost, "/v1/annotate", batchBody(t, []string{"p1"}))
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			if tt.authHeader != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.authHeader)
			}

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestHistory(t *testing.T) {
	posts := &fakePosts{posts: []*entity.Post{
		{ID: "p1", Origin: entity.OriginScraped, Username: "memes_daily", Status: entity.Pending},
	}}
	app := newTestApp(&fakeEnrich{}, &fakeAnnotate{}, posts)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/history", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), `"post_id":"p1"`))
}

func TestDeletePost(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		app := newTestApp(&fakeEnrich{}, &fakeAnnotate{}, &fakePosts{})

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/v1/post/p1", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("not found", func(t *testing.T) {
		app := newTestApp(&fakeEnrich{}, &fakeAnnotate{}, &fakePosts{deleteErr: errs.ErrRecordNotFound})

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/v1/post/ghost", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
