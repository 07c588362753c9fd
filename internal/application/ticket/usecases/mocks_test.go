package usecases

import (
	"context"
	"time"

	"redsys/internal/domain/article"
	articlevo "redsys/internal/domain/article/valueobjects"
	"redsys/internal/domain/ticket"
	ticketvo "redsys/internal/domain/ticket/valueobjects"
	"redsys/internal/domain/user"
)

type mockTicketRepository struct {
	CreateFunc  func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc  func(ctx context.Context, t *ticket.Ticket) error
	GetByIDFunc func(ctx context.Context, id uint) (*ticket.Ticket, error)
	ListFunc    func(ctx context.Context, filter ticket.ListFilter) ([]*ticket.Ticket, int64, error)
}

func (m *mockTicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ticket.ErrTicketNotFound
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.ListFilter) ([]*ticket.Ticket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

type mockCommentRepository struct {
	NextNumberFunc   func(ctx context.Context, ticketID uint) (int, error)
	CreateFunc       func(ctx context.Context, c *ticket.Comment) error
	ListByTicketFunc func(ctx context.Context, ticketID uint, filter ticket.CommentFilter) ([]*ticket.Comment, int64, error)
	GetByNumberFunc  func(ctx context.Context, ticketID uint, number int) (*ticket.Comment, error)
	UpdateFunc       func(ctx context.Context, c *ticket.Comment) error
	DeleteFunc       func(ctx context.Context, c *ticket.Comment) error
}

func (m *mockCommentRepository) NextNumber(ctx context.Context, ticketID uint) (int, error) {
	if m.NextNumberFunc != nil {
		return m.NextNumberFunc(ctx, ticketID)
	}
	return 1, nil
}

func (m *mockCommentRepository) Create(ctx context.Context, c *ticket.Comment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return nil
}

func (m *mockCommentRepository) ListByTicket(ctx context.Context, ticketID uint, filter ticket.CommentFilter) ([]*ticket.Comment, int64, error) {
	if m.ListByTicketFunc != nil {
		return m.ListByTicketFunc(ctx, ticketID, filter)
	}
	return nil, 0, nil
}

func (m *mockCommentRepository) GetByNumber(ctx context.Context, ticketID uint, number int) (*ticket.Comment, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, ticketID, number)
	}
	return nil, ticket.ErrCommentNotFound
}

func (m *mockCommentRepository) Update(ctx context.Context, c *ticket.Comment) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, c)
	}
	return nil
}

func (m *mockCommentRepository) Delete(ctx context.Context, c *ticket.Comment) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, c)
	}
	return nil
}

type mockArticleRepository struct {
	GetByIDFunc func(ctx context.Context, id uint) (*article.Article, error)
}

func (m *mockArticleRepository) Create(ctx context.Context, a *article.Article) error {
	return nil
}

func (m *mockArticleRepository) Update(ctx context.Context, a *article.Article) error {
	return nil
}

func (m *mockArticleRepository) GetByID(ctx context.Context, id uint) (*article.Article, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, article.ErrArticleNotFound
}

func (m *mockArticleRepository) List(ctx context.Context, filter article.ListFilter) ([]*article.Article, int64, error) {
	return nil, 0, nil
}

type mockUserRepository struct {
	GetByIDFunc func(ctx context.Context, id uint) (*user.User, error)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	return nil
}

func existingArticle(id uint) *article.Article {
	now := time.Now().UTC()
	a, err := article.ReconstructArticle(id, "Article", articlevo.ArticleStateDraft, nil, 1, nil, nil, 1, now, now)
	if err != nil {
		panic(err)
	}
	return a
}

func existingTicket(id uint) *ticket.Ticket {
	now := time.Now().UTC()
	t, err := ticket.ReconstructTicket(id, "Ticket", "", ticketvo.StateOpen, nil, 1, 2, 1, now, now)
	if err != nil {
		panic(err)
	}
	return t
}

func existingComment(ticketID uint, number int, authorID uint) *ticket.Comment {
	now := time.Now().UTC()
	c, err := ticket.ReconstructComment(uint(number), ticketID, number, authorID, "first take", now, now)
	if err != nil {
		panic(err)
	}
	return c
}

type passthroughTransactor struct {
	calls int
}

func (p *passthroughTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	p.calls++
	return fn(ctx)
}

func uintPtr(v uint) *uint {
	return &v
}
