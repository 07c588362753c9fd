package article

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redsys/internal/application/article/dto"
	"redsys/internal/application/article/usecases"
	uservo "redsys/internal/domain/user/valueobjects"
	"redsys/internal/interfaces/http/handlers/testutil"
	"redsys/internal/shared/errors"
	"redsys/internal/shared/logger"
)

type mockCreateArticleUC struct {
	got    usecases.CreateArticleCommand
	result *dto.ArticleDTO
	err    error
}

func (m *mockCreateArticleUC) Execute(_ context.Context, cmd usecases.CreateArticleCommand) (*dto.ArticleDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockUpdateArticleUC struct {
	got    usecases.UpdateArticleContentCommand
	result *dto.ArticleDTO
	err    error
}

func (m *mockUpdateArticleUC) Execute(_ context.Context, cmd usecases.UpdateArticleContentCommand) (*dto.ArticleDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockGetArticleUC struct {
	got    usecases.GetArticleQuery
	result *dto.ArticleDTO
	err    error
}

func (m *mockGetArticleUC) Execute(_ context.Context, query usecases.GetArticleQuery) (*dto.ArticleDTO, error) {
	m.got = query
	return m.result, m.err
}

type mockGetVersionUC struct {
	got    usecases.GetArticleVersionQuery
	result *dto.ArticleVersionDTO
	err    error
}

func (m *mockGetVersionUC) Execute(_ context.Context, query usecases.GetArticleVersionQuery) (*dto.ArticleVersionDTO, error) {
	m.got = query
	return m.result, m.err
}

type mockListVersionsUC struct {
	got    usecases.ListArticleVersionsQuery
	result *usecases.ListArticleVersionsResult
	err    error
}

func (m *mockListVersionsUC) Execute(_ context.Context, query usecases.ListArticleVersionsQuery) (*usecases.ListArticleVersionsResult, error) {
	m.got = query
	return m.result, m.err
}

type mockListArticlesUC struct {
	got    usecases.ListArticlesQuery
	called bool
	result *usecases.ListArticlesResult
	err    error
}

func (m *mockListArticlesUC) Execute(_ context.Context, query usecases.ListArticlesQuery) (*usecases.ListArticlesResult, error) {
	m.got = query
	m.called = true
	return m.result, m.err
}

type testDeps struct {
	create       *mockCreateArticleUC
	update       *mockUpdateArticleUC
	get          *mockGetArticleUC
	list         *mockListArticlesUC
	getVersion   *mockGetVersionUC
	listVersions *mockListVersionsUC
}

func newTestHandler() (*ArticleHandler, testDeps) {
	deps := testDeps{
		create:       &mockCreateArticleUC{},
		update:       &mockUpdateArticleUC{},
		get:          &mockGetArticleUC{},
		list:         &mockListArticlesUC{},
		getVersion:   &mockGetVersionUC{},
		listVersions: &mockListVersionsUC{},
	}
	h := NewArticleHandler(deps.create, deps.update, deps.get, deps.list, deps.getVersion, deps.listVersions, logger.NewNopLogger())
	return h, deps
}

func TestArticleHandler_CreateArticle(t *testing.T) {
	handler, deps := newTestHandler()
	deps.create.result = &dto.ArticleDTO{ID: 3, Title: "Budget", State: "draft", VersionNumber: 1}

	c, w := testutil.NewTestContext(http.MethodPost, "/api/articles", CreateArticleRequest{
		Title:       "Budget",
		Content:     "# Budget",
		CategoryIDs: []uint{4, 5},
	})
	actor := testutil.SetActor(c, 11, uservo.RoleEditor)

	handler.CreateArticle(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, actor, deps.create.got.Actor)
	assert.Equal(t, "# Budget", deps.create.got.Content)
	assert.Equal(t, []uint{4, 5}, deps.create.got.CategoryIDs)
}

func TestArticleHandler_UpdateArticle(t *testing.T) {
	t.Run("passes the article id", func(t *testing.T) {
		handler, deps := newTestHandler()
		deps.update.result = &dto.ArticleDTO{ID: 3, VersionNumber: 2}

		c, w := testutil.NewTestContext(http.MethodPut, "/api/articles/3", UpdateArticleRequest{
			Title:   "Budget",
			Content: "new text",
		})
		testutil.SetURLParam(c, "id", "3")
		testutil.SetActor(c, 11, uservo.RoleEditor)

		handler.UpdateArticle(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint(3), deps.update.got.ArticleID)
		assert.Equal(t, "new text", deps.update.got.Content)
	})

	t.Run("conflict", func(t *testing.T) {
		handler, deps := newTestHandler()
		deps.update.err = errors.NewConflictError("article was modified concurrently")

		c, w := testutil.NewTestContext(http.MethodPut, "/api/articles/3", UpdateArticleRequest{Title: "Budget"})
		testutil.SetURLParam(c, "id", "3")
		testutil.SetActor(c, 11, uservo.RoleEditor)

		handler.UpdateArticle(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestArticleHandler_GetArticle_NotFound(t *testing.T) {
	handler, deps := newTestHandler()
	deps.get.err = errors.NewNotFoundError("article 9 not found")

	c, w := testutil.NewTestContext(http.MethodGet, "/api/articles/9", nil)
	testutil.SetURLParam(c, "id", "9")
	testutil.SetActor(c, 11, uservo.RoleUser)

	handler.GetArticle(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, uint(9), deps.get.got.ArticleID)
}

func TestArticleHandler_ListVersions(t *testing.T) {
	handler, deps := newTestHandler()
	deps.listVersions.result = &usecases.ListArticleVersionsResult{
		Versions: []dto.ArticleVersionSummaryDTO{{VersionNumber: 3}, {VersionNumber: 2}, {VersionNumber: 1}},
		Total:    3,
	}

	c, w := testutil.NewTestContext(http.MethodGet, "/api/articles/3/versions", nil)
	testutil.SetURLParam(c, "id", "3")
	testutil.SetQueryParams(c, map[string]string{"page_size": "2"})
	testutil.SetActor(c, 12, uservo.RoleReviewer)

	handler.ListVersions(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, deps.listVersions.got.Page)
	assert.Equal(t, 2, deps.listVersions.got.PageSize)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data testutil.ListData
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, 2, data.TotalPages)
}

func TestArticleHandler_GetVersion(t *testing.T) {
	tests := []struct {
		name       string
		number     string
		err        error
		wantStatus int
	}{
		{"found", "2", nil, http.StatusOK},
		{"bad number", "two", nil, http.StatusBadRequest},
		{"zero", "0", nil, http.StatusBadRequest},
		{"forbidden", "2", errors.NewForbiddenError("not the editor"), http.StatusForbidden},
		{"missing", "8", errors.NewNotFoundError("version 8 not found"), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, deps := newTestHandler()
			deps.getVersion.result = &dto.ArticleVersionDTO{ArticleID: 3, VersionNumber: 2}
			deps.getVersion.err = tt.err

			c, w := testutil.NewTestContext(http.MethodGet, "/api/articles/3/versions/"+tt.number, nil)
			testutil.SetURLParam(c, "id", "3")
			testutil.SetURLParam(c, "number", tt.number)
			testutil.SetActor(c, 11, uservo.RoleEditor)

			handler.GetVersion(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, 2, deps.getVersion.got.VersionNumber)
			}
		})
	}
}

func TestArticleHandler_ListArticles(t *testing.T) {
	handler, deps := newTestHandler()
	deps.list.result = &usecases.ListArticlesResult{
		Articles: []dto.ArticleDTO{{ID: 8, Title: "Budget vote", CategoryIDs: []uint{3, 5}}},
		Total:    1,
	}

	c, w := testutil.NewTestContext(http.MethodGet, "/api/articles", nil)
	testutil.SetQueryParams(c, map[string]string{"category_id": "5", "state": "published"})
	testutil.SetActor(c, 3, uservo.RoleUser)

	handler.ListArticles(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, deps.list.got.CategoryID)
	assert.Equal(t, uint(5), *deps.list.got.CategoryID)
	assert.Equal(t, "published", deps.list.got.State)
	assert.Equal(t, 1, deps.list.got.Page)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data testutil.ListData
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	var items []map[string]any
	require.NoError(t, json.Unmarshal(data.Items, &items))
	require.Len(t, items, 1)
	assert.NotContains(t, items[0], "content")
}

func TestArticleHandler_ListArticles_InvalidFilter(t *testing.T) {
	for _, query := range []map[string]string{
		{"state": "shredded"},
		{"category_id": "politics"},
	} {
		handler, deps := newTestHandler()

		c, w := testutil.NewTestContext(http.MethodGet, "/api/articles", nil)
		testutil.SetQueryParams(c, query)

		handler.ListArticles(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, deps.list.called)
	}
}
