package usecases

import (
	"context"
	"sort"
	"sync"
	"time"

	"redsys/internal/domain/article"
	articlevo "redsys/internal/domain/article/valueobjects"
	uservo "redsys/internal/domain/user/valueobjects"
	"redsys/internal/domain/workflow"
	"redsys/internal/shared/lock"
)

type mockArticleRepository struct {
	CreateFunc  func(ctx context.Context, a *article.Article) error
	UpdateFunc  func(ctx context.Context, a *article.Article) error
	GetByIDFunc func(ctx context.Context, id uint) (*article.Article, error)
	ListFunc    func(ctx context.Context, filter article.ListFilter) ([]*article.Article, int64, error)
}

func (m *mockArticleRepository) Create(ctx context.Context, a *article.Article) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, a)
	}
	return nil
}

func (m *mockArticleRepository) Update(ctx context.Context, a *article.Article) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, a)
	}
	return nil
}

func (m *mockArticleRepository) GetByID(ctx context.Context, id uint) (*article.Article, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, article.ErrArticleNotFound
}

func (m *mockArticleRepository) List(ctx context.Context, filter article.ListFilter) ([]*article.Article, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

// memVersionRepository is an in-memory version table with the unique
// (article, number) constraint.
type memVersionRepository struct {
	mu       sync.Mutex
	versions map[uint][]*article.ArticleVersion
	nextID   uint
	creates  int

	// staleLatest makes GetLatestForUpdate ignore the newest n versions.
	staleLatest int
}

func newMemVersionRepository() *memVersionRepository {
	return &memVersionRepository{versions: make(map[uint][]*article.ArticleVersion)}
}

func (r *memVersionRepository) seed(articleID uint, contents ...string) {
	for i, c := range contents {
		v, err := article.NewArticleVersion(articleID, i+1, c, 1)
		if err != nil {
			panic(err)
		}
		if err := r.Create(context.Background(), v); err != nil {
			panic(err)
		}
	}
	r.mu.Lock()
	r.creates = 0
	r.mu.Unlock()
}

func (r *memVersionRepository) Create(_ context.Context, v *article.ArticleVersion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.versions[v.ArticleID()] {
		if existing.Number() == v.Number() {
			return article.ErrVersionNumberTaken
		}
	}
	r.nextID++
	if err := v.SetID(r.nextID); err != nil {
		return err
	}
	r.versions[v.ArticleID()] = append(r.versions[v.ArticleID()], v)
	r.creates++
	return nil
}

func (r *memVersionRepository) latest(articleID uint, skip int) (*article.ArticleVersion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.sorted(articleID)
	if len(list) == 0 {
		return nil, article.ErrNoVersions
	}
	idx := skip
	if idx >= len(list) {
		idx = len(list) - 1
	}
	return list[idx], nil
}

func (r *memVersionRepository) GetLatestForUpdate(_ context.Context, articleID uint) (*article.ArticleVersion, error) {
	return r.latest(articleID, r.staleLatest)
}

func (r *memVersionRepository) GetLatest(_ context.Context, articleID uint) (*article.ArticleVersion, error) {
	return r.latest(articleID, 0)
}

func (r *memVersionRepository) GetByNumber(_ context.Context, articleID uint, number int) (*article.ArticleVersion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, v := range r.versions[articleID] {
		if v.Number() == number {
			return v, nil
		}
	}
	return nil, article.ErrArticleVersionNotFound
}

func (r *memVersionRepository) ListByArticle(_ context.Context, articleID uint, filter article.VersionFilter) ([]*article.ArticleVersion, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.sorted(articleID)
	total := int64(len(list))
	start := (filter.Page - 1) * filter.PageSize
	if start > len(list) {
		start = len(list)
	}
	end := start + filter.PageSize
	if end > len(list) {
		end = len(list)
	}
	return list[start:end], total, nil
}

// sorted returns versions newest first. Callers hold mu.
func (r *memVersionRepository) sorted(articleID uint) []*article.ArticleVersion {
	list := append([]*article.ArticleVersion(nil), r.versions[articleID]...)
	sort.Slice(list, func(i, j int) bool { return list[i].Number() > list[j].Number() })
	return list
}

func (r *memVersionRepository) numbers(articleID uint) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	var nums []int
	for _, v := range r.versions[articleID] {
		nums = append(nums, v.Number())
	}
	sort.Ints(nums)
	return nums
}

func (r *memVersionRepository) createCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.creates
}

// passthroughTransactor runs fn directly; the fakes have no transactions.
type passthroughTransactor struct {
	mu    sync.Mutex
	calls int
}

func (t *passthroughTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	t.calls++
	t.mu.Unlock()
	return fn(ctx)
}

// noopLocker grants every key immediately.
type noopLocker struct{}

func (noopLocker) Acquire(ctx context.Context, key string) (context.Context, func(), error) {
	return lock.MarkHeld(ctx, key), func() {}, nil
}

type failingLocker struct {
	err error
}

func (l failingLocker) Acquire(ctx context.Context, _ string) (context.Context, func(), error) {
	return ctx, func() {}, l.err
}

type stubRenderer struct {
	html string
	err  error
}

func (r stubRenderer) Render(string) (string, error) {
	return r.html, r.err
}

func uintPtr(v uint) *uint {
	return &v
}

func testArticle(id uint, editorID *uint) *article.Article {
	now := time.Now().UTC()
	a, err := article.ReconstructArticle(id, "Harbour redevelopment", articlevo.ArticleStateDraft, nil, 1, editorID, []uint{3}, 1, now, now)
	if err != nil {
		panic(err)
	}
	return a
}

func actor(id uint, role uservo.Role) workflow.Actor {
	return workflow.NewActor(id, role)
}

func defaultAuthorizer() workflow.Authorizer {
	a, err := workflow.NewMatrixAuthorizer(workflow.DefaultMatrix(), workflow.DefaultReadScopes())
	if err != nil {
		panic(err)
	}
	return a
}
