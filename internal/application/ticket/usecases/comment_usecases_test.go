package usecases

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redsys/internal/domain/ticket"
	ticketvo "redsys/internal/domain/ticket/valueobjects"
	uservo "redsys/internal/domain/user/valueobjects"
	"redsys/internal/domain/workflow"
	apperrors "redsys/internal/shared/errors"
	"redsys/internal/shared/lock"
	"redsys/internal/shared/logger"
)

func ticketsWith(ids ...uint) *mockTicketRepository {
	return &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			for _, known := range ids {
				if id == known {
					return existingTicket(id), nil
				}
			}
			return nil, ticket.ErrTicketNotFound
		},
	}
}

// ---------------------------------------------------------------------------
// AddTicketComment
// ---------------------------------------------------------------------------

func TestAddTicketCommentUseCase_Execute_Success(t *testing.T) {
	var created []*ticket.Comment
	comments := &mockCommentRepository{
		NextNumberFunc: func(ctx context.Context, ticketID uint) (int, error) {
			assert.True(t, lock.IsHeld(ctx, lock.TicketKey(ticketID)))
			return 4, nil
		},
		CreateFunc: func(ctx context.Context, c *ticket.Comment) error {
			created = append(created, c)
			return c.SetID(40)
		},
	}
	tx := &passthroughTransactor{}
	uc := NewAddTicketCommentUseCase(ticketsWith(1), comments, lock.NewLocalLocker(time.Second), tx, logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), AddTicketCommentCommand{
		TicketID: 1,
		Content:  "  Tom & Jerry's \"go live\" <embargo>\n",
		Actor:    workflow.NewActor(3, uservo.RoleReviewer),
	})
	require.NoError(t, err)

	assert.Equal(t, 4, result.Number)
	assert.Equal(t, uint(3), result.AuthorID)
	assert.Equal(t, `Tom & Jerry's "go live" <embargo>`, result.Content)
	assert.Equal(t, 1, tx.calls)
	require.Len(t, created, 1)
}

func TestAddTicketCommentUseCase_Execute_Errors(t *testing.T) {
	taken := &mockCommentRepository{
		CreateFunc: func(ctx context.Context, c *ticket.Comment) error {
			return ticket.ErrCommentNumberTaken
		},
	}

	tests := []struct {
		name     string
		comments *mockCommentRepository
		cmd      AddTicketCommentCommand
		wantType apperrors.ErrorType
	}{
		{
			name:     "role outside the pipeline",
			comments: &mockCommentRepository{},
			cmd:      AddTicketCommentCommand{TicketID: 1, Content: "hi", Actor: workflow.NewActor(3, uservo.RoleUser)},
			wantType: apperrors.ErrorTypeForbidden,
		},
		{
			name:     "blank content",
			comments: &mockCommentRepository{},
			cmd:      AddTicketCommentCommand{TicketID: 1, Content: " \t ", Actor: workflow.NewActor(3, uservo.RoleEditor)},
			wantType: apperrors.ErrorTypeValidation,
		},
		{
			name:     "content too long",
			comments: &mockCommentRepository{},
			cmd:      AddTicketCommentCommand{TicketID: 1, Content: strings.Repeat("ř", ticket.MaxCommentLength+1), Actor: workflow.NewActor(3, uservo.RoleEditor)},
			wantType: apperrors.ErrorTypeValidation,
		},
		{
			name:     "unknown ticket",
			comments: &mockCommentRepository{},
			cmd:      AddTicketCommentCommand{TicketID: 9, Content: "hi", Actor: workflow.NewActor(3, uservo.RoleEditor)},
			wantType: apperrors.ErrorTypeNotFound,
		},
		{
			name:     "number already taken",
			comments: taken,
			cmd:      AddTicketCommentCommand{TicketID: 1, Content: "hi", Actor: workflow.NewActor(3, uservo.RoleEditor)},
			wantType: apperrors.ErrorTypeConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewAddTicketCommentUseCase(ticketsWith(1), tt.comments, lock.NewLocalLocker(time.Second), &passthroughTransactor{}, logger.NewNopLogger())

			_, err := uc.Execute(context.Background(), tt.cmd)
			require.Error(t, err)
			assert.Equal(t, tt.wantType, apperrors.GetAppError(err).Type)
		})
	}
}

// ---------------------------------------------------------------------------
// UpdateTicketComment / DeleteTicketComment
// ---------------------------------------------------------------------------

func commentsWith(c *ticket.Comment) *mockCommentRepository {
	return &mockCommentRepository{
		GetByNumberFunc: func(ctx context.Context, ticketID uint, number int) (*ticket.Comment, error) {
			if ticketID == c.TicketID() && number == c.Number() {
				return c, nil
			}
			return nil, ticket.ErrCommentNotFound
		},
	}
}

func TestUpdateTicketCommentUseCase_Execute(t *testing.T) {
	tests := []struct {
		name     string
		actor    workflow.Actor
		number   int
		content  string
		wantType apperrors.ErrorType
	}{
		{name: "author", actor: workflow.NewActor(3, uservo.RoleEditor), number: 2, content: " second take "},
		{name: "admin", actor: workflow.NewActor(1, uservo.RoleAdmin), number: 2, content: "second take"},
		{name: "someone else", actor: workflow.NewActor(4, uservo.RoleChiefEditor), number: 2, content: "second take", wantType: apperrors.ErrorTypeForbidden},
		{name: "missing comment", actor: workflow.NewActor(3, uservo.RoleEditor), number: 7, content: "second take", wantType: apperrors.ErrorTypeNotFound},
		{name: "blank content", actor: workflow.NewActor(3, uservo.RoleEditor), number: 2, content: "   ", wantType: apperrors.ErrorTypeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comment := existingComment(1, 2, 3)
			comments := commentsWith(comment)
			var updated *ticket.Comment
			comments.UpdateFunc = func(ctx context.Context, c *ticket.Comment) error {
				updated = c
				return nil
			}
			uc := NewUpdateTicketCommentUseCase(ticketsWith(1), comments, logger.NewNopLogger())

			result, err := uc.Execute(context.Background(), UpdateTicketCommentCommand{
				TicketID: 1,
				Number:   tt.number,
				Content:  tt.content,
				Actor:    tt.actor,
			})

			if tt.wantType != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantType, apperrors.GetAppError(err).Type)
				assert.Nil(t, updated)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "second take", result.Content)
			assert.Equal(t, 2, result.Number)
			assert.Equal(t, uint(3), result.AuthorID)
			require.NotNil(t, updated)
		})
	}
}

func TestUpdateTicketCommentUseCase_Execute_Unchanged(t *testing.T) {
	comments := commentsWith(existingComment(1, 2, 3))
	writes := 0
	comments.UpdateFunc = func(ctx context.Context, c *ticket.Comment) error {
		writes++
		return nil
	}
	uc := NewUpdateTicketCommentUseCase(ticketsWith(1), comments, logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), UpdateTicketCommentCommand{
		TicketID: 1, Number: 2, Content: "first take", Actor: workflow.NewActor(3, uservo.RoleEditor),
	})
	require.NoError(t, err)
	assert.Equal(t, "first take", result.Content)
	assert.Zero(t, writes)
}

func TestDeleteTicketCommentUseCase_Execute(t *testing.T) {
	tests := []struct {
		name     string
		actor    workflow.Actor
		ticketID uint
		wantType apperrors.ErrorType
	}{
		{name: "author", actor: workflow.NewActor(3, uservo.RoleReviewer), ticketID: 1},
		{name: "admin", actor: workflow.NewActor(1, uservo.RoleAdmin), ticketID: 1},
		{name: "someone else", actor: workflow.NewActor(4, uservo.RoleEditor), ticketID: 1, wantType: apperrors.ErrorTypeForbidden},
		{name: "role outside the pipeline", actor: workflow.NewActor(3, uservo.RoleUser), ticketID: 1, wantType: apperrors.ErrorTypeForbidden},
		{name: "unknown ticket", actor: workflow.NewActor(3, uservo.RoleEditor), ticketID: 9, wantType: apperrors.ErrorTypeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comments := commentsWith(existingComment(1, 2, 3))
			deleted := 0
			comments.DeleteFunc = func(ctx context.Context, c *ticket.Comment) error {
				deleted++
				return nil
			}
			uc := NewDeleteTicketCommentUseCase(ticketsWith(1), comments, logger.NewNopLogger())

			err := uc.Execute(context.Background(), DeleteTicketCommentCommand{
				TicketID: tt.ticketID,
				Number:   2,
				Actor:    tt.actor,
			})

			if tt.wantType != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantType, apperrors.GetAppError(err).Type)
				assert.Zero(t, deleted)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, deleted)
		})
	}
}

func TestDeleteTicketCommentUseCase_Execute_Gone(t *testing.T) {
	comments := commentsWith(existingComment(1, 2, 3))
	comments.DeleteFunc = func(ctx context.Context, c *ticket.Comment) error {
		return ticket.ErrCommentNotFound
	}
	uc := NewDeleteTicketCommentUseCase(ticketsWith(1), comments, logger.NewNopLogger())

	err := uc.Execute(context.Background(), DeleteTicketCommentCommand{TicketID: 1, Number: 2, Actor: workflow.NewActor(3, uservo.RoleEditor)})
	assert.True(t, apperrors.IsNotFoundError(err))
}

// ---------------------------------------------------------------------------
// ListTickets
// ---------------------------------------------------------------------------

func TestListTicketsUseCase_Execute(t *testing.T) {
	var gotFilter ticket.ListFilter
	tickets := &mockTicketRepository{
		ListFunc: func(ctx context.Context, filter ticket.ListFilter) ([]*ticket.Ticket, int64, error) {
			gotFilter = filter
			return []*ticket.Ticket{existingTicket(3), existingTicket(2)}, 2, nil
		},
	}
	uc := NewListTicketsUseCase(tickets, logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), ListTicketsQuery{
		State:      "open",
		AssigneeID: uintPtr(5),
		Page:       2,
		PageSize:   10,
		Actor:      workflow.NewActor(3, uservo.RoleEditor),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.Total)
	require.Len(t, result.Tickets, 2)
	assert.Equal(t, uint(3), result.Tickets[0].ID)
	assert.Equal(t, ticketvo.StateOpen, gotFilter.State)
	require.NotNil(t, gotFilter.AssigneeID)
	assert.Equal(t, uint(5), *gotFilter.AssigneeID)
	assert.Nil(t, gotFilter.ArticleID)
	assert.Equal(t, 2, gotFilter.Page)
	assert.Equal(t, 10, gotFilter.PageSize)
}

func TestListTicketsUseCase_Execute_Errors(t *testing.T) {
	uc := NewListTicketsUseCase(&mockTicketRepository{}, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), ListTicketsQuery{Actor: workflow.NewActor(1, uservo.RoleUser)})
	assert.True(t, apperrors.IsForbiddenError(err))

	_, err = uc.Execute(context.Background(), ListTicketsQuery{State: "archived", Actor: workflow.NewActor(1, uservo.RoleAdmin)})
	assert.True(t, apperrors.IsValidationError(err))
}
