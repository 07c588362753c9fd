package usecases

import (
	"context"
	"sort"
	"sync"

	"redsys/internal/domain/article"
	"redsys/internal/domain/ticket"
)

// memTicketRepository stores copies so that unsaved mutations never leak,
// and enforces the compare-and-swap token on Update.
type memTicketRepository struct {
	mu      sync.Mutex
	rows    map[uint]*ticket.Ticket
	updates int

	// conflicts makes the next n Update calls fail as stale writes.
	conflicts int
}

func newMemTicketRepository() *memTicketRepository {
	return &memTicketRepository{rows: make(map[uint]*ticket.Ticket)}
}

func cloneTicket(t *ticket.Ticket) *ticket.Ticket {
	var assignee *uint
	if t.AssigneeID() != nil {
		id := *t.AssigneeID()
		assignee = &id
	}
	c, err := ticket.ReconstructTicket(
		t.ID(), t.Title(), t.Description(), t.State(), assignee,
		t.AuthorID(), t.ArticleID(), t.Version(), t.CreatedAt(), t.UpdatedAt(),
	)
	if err != nil {
		panic(err)
	}
	return c
}

func (r *memTicketRepository) put(t *ticket.Ticket) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[t.ID()] = cloneTicket(t)
}

func (r *memTicketRepository) get(id uint) *ticket.Ticket {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneTicket(r.rows[id])
}

func (r *memTicketRepository) Create(_ context.Context, t *ticket.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := t.SetID(uint(len(r.rows) + 1)); err != nil {
		return err
	}
	r.rows[t.ID()] = cloneTicket(t)
	return nil
}

func (r *memTicketRepository) Update(_ context.Context, t *ticket.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates++

	if r.conflicts > 0 {
		r.conflicts--
		return ticket.ErrVersionConflict
	}
	stored, ok := r.rows[t.ID()]
	if !ok || stored.Version() != t.Version() {
		return ticket.ErrVersionConflict
	}
	t.AdvanceVersion()
	r.rows[t.ID()] = cloneTicket(t)
	return nil
}

func (r *memTicketRepository) GetByID(_ context.Context, id uint) (*ticket.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.rows[id]
	if !ok {
		return nil, ticket.ErrTicketNotFound
	}
	return cloneTicket(t), nil
}

func (r *memTicketRepository) List(_ context.Context, filter ticket.ListFilter) ([]*ticket.Ticket, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*ticket.Ticket
	for _, t := range r.rows {
		if filter.State != "" && t.State() != filter.State {
			continue
		}
		result = append(result, cloneTicket(t))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() > result[j].ID() })
	return result, int64(len(result)), nil
}

type memCommentRepository struct {
	mu       sync.Mutex
	comments []*ticket.Comment
	creates  int
}

func (r *memCommentRepository) seed(ticketID uint, numbers ...int) {
	for _, n := range numbers {
		c, err := ticket.NewComment(ticketID, n, 1, "earlier note")
		if err != nil {
			panic(err)
		}
		r.comments = append(r.comments, c)
	}
}

func (r *memCommentRepository) NextNumber(_ context.Context, ticketID uint) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	highest := 0
	for _, c := range r.comments {
		if c.TicketID() == ticketID && c.Number() > highest {
			highest = c.Number()
		}
	}
	return highest + 1, nil
}

func (r *memCommentRepository) Create(_ context.Context, c *ticket.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.comments {
		if existing.TicketID() == c.TicketID() && existing.Number() == c.Number() {
			return ticket.ErrCommentNumberTaken
		}
	}
	if err := c.SetID(uint(len(r.comments) + 1)); err != nil {
		return err
	}
	r.comments = append(r.comments, c)
	r.creates++
	return nil
}

func (r *memCommentRepository) ListByTicket(_ context.Context, ticketID uint, _ ticket.CommentFilter) ([]*ticket.Comment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*ticket.Comment
	for _, c := range r.comments {
		if c.TicketID() == ticketID {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Number() > result[j].Number() })
	return result, int64(len(result)), nil
}

func (r *memCommentRepository) GetByNumber(_ context.Context, ticketID uint, number int) (*ticket.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.comments {
		if c.TicketID() == ticketID && c.Number() == number {
			return c, nil
		}
	}
	return nil, ticket.ErrCommentNotFound
}

func (r *memCommentRepository) Update(_ context.Context, c *ticket.Comment) error {
	return nil
}

func (r *memCommentRepository) Delete(_ context.Context, c *ticket.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.comments {
		if existing == c {
			r.comments = append(r.comments[:i], r.comments[i+1:]...)
			return nil
		}
	}
	return ticket.ErrCommentNotFound
}

func (r *memCommentRepository) latest() *ticket.Comment {
	r.mu.Lock()
	defer r.mu.Unlock()
	var newest *ticket.Comment
	for _, c := range r.comments {
		if newest == nil || c.Number() > newest.Number() {
			newest = c
		}
	}
	return newest
}

type memArticleRepository struct {
	mu      sync.Mutex
	rows    map[uint]*article.Article
	updates int
}

func newMemArticleRepository() *memArticleRepository {
	return &memArticleRepository{rows: make(map[uint]*article.Article)}
}

func cloneArticle(a *article.Article) *article.Article {
	c, err := article.ReconstructArticle(
		a.ID(), a.Title(), a.State(), a.PublishedAt(), a.AuthorID(), a.EditorID(),
		a.CategoryIDs(), a.Version(), a.CreatedAt(), a.UpdatedAt(),
	)
	if err != nil {
		panic(err)
	}
	return c
}

func (r *memArticleRepository) put(a *article.Article) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[a.ID()] = cloneArticle(a)
}

func (r *memArticleRepository) get(id uint) *article.Article {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneArticle(r.rows[id])
}

func (r *memArticleRepository) Create(_ context.Context, a *article.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := a.SetID(uint(len(r.rows) + 1)); err != nil {
		return err
	}
	r.rows[a.ID()] = cloneArticle(a)
	return nil
}

func (r *memArticleRepository) Update(_ context.Context, a *article.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates++
	stored, ok := r.rows[a.ID()]
	if !ok || stored.Version() != a.Version() {
		return article.ErrVersionConflict
	}
	a.AdvanceVersion()
	r.rows[a.ID()] = cloneArticle(a)
	return nil
}

func (r *memArticleRepository) GetByID(_ context.Context, id uint) (*article.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.rows[id]
	if !ok {
		return nil, article.ErrArticleNotFound
	}
	return cloneArticle(a), nil
}

func (r *memArticleRepository) List(_ context.Context, filter article.ListFilter) ([]*article.Article, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*article.Article
	for _, a := range r.rows {
		if filter.State != "" && a.State() != filter.State {
			continue
		}
		result = append(result, cloneArticle(a))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() > result[j].ID() })
	return result, int64(len(result)), nil
}

type memVersionRepository struct {
	mu       sync.Mutex
	versions map[uint][]*article.ArticleVersion
	creates  int
}

func newMemVersionRepository() *memVersionRepository {
	return &memVersionRepository{versions: make(map[uint][]*article.ArticleVersion)}
}

func (r *memVersionRepository) seed(articleID uint, contents ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, content := range contents {
		v, err := article.NewArticleVersion(articleID, i+1, content, 1)
		if err != nil {
			panic(err)
		}
		r.versions[articleID] = append(r.versions[articleID], v)
	}
}

func (r *memVersionRepository) count(articleID uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.versions[articleID])
}

func (r *memVersionRepository) Create(_ context.Context, v *article.ArticleVersion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.versions[v.ArticleID()] {
		if existing.Number() == v.Number() {
			return article.ErrVersionNumberTaken
		}
	}
	r.versions[v.ArticleID()] = append(r.versions[v.ArticleID()], v)
	r.creates++
	return nil
}

func (r *memVersionRepository) latest(articleID uint) (*article.ArticleVersion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var newest *article.ArticleVersion
	for _, v := range r.versions[articleID] {
		if newest == nil || v.Number() > newest.Number() {
			newest = v
		}
	}
	if newest == nil {
		return nil, article.ErrNoVersions
	}
	return newest, nil
}

func (r *memVersionRepository) GetLatestForUpdate(_ context.Context, articleID uint) (*article.ArticleVersion, error) {
	return r.latest(articleID)
}

func (r *memVersionRepository) GetLatest(_ context.Context, articleID uint) (*article.ArticleVersion, error) {
	return r.latest(articleID)
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

func (r *memVersionRepository) ListByArticle(_ context.Context, articleID uint, _ article.VersionFilter) ([]*article.ArticleVersion, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := append([]*article.ArticleVersion(nil), r.versions[articleID]...)
	sort.Slice(result, func(i, j int) bool { return result[i].Number() > result[j].Number() })
	return result, int64(len(result)), nil
}

type passthroughTransactor struct {
	calls int
}

func (p *passthroughTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	p.calls++
	return fn(ctx)
}
