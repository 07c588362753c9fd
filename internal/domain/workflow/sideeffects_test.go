package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	ticketvo "redsys/internal/domain/ticket/valueobjects"
	uservo "redsys/internal/domain/user/valueobjects"
)

func TestPlanSideEffects(t *testing.T) {
	editor := NewActor(assigneeID, uservo.RoleEditor)
	chief := NewActor(otherID, uservo.RoleChiefEditor)

	tests := []struct {
		name     string
		from     ticketvo.TicketState
		to       ticketvo.TicketState
		assignee *uint
		actor    Actor
		want     SideEffects
	}{
		{
			name: "editor claims open ticket",
			from: ticketvo.StateOpen, to: ticketvo.StateInProgress, actor: editor,
			want: SideEffects{ClaimTicket: true},
		},
		{
			name: "chief editor starts open ticket without claiming",
			from: ticketvo.StateOpen, to: ticketvo.StateInProgress, actor: chief,
			want: SideEffects{},
		},
		{
			name: "back from review returns article to draft",
			from: ticketvo.StateForReview, to: ticketvo.StateInProgress, assignee: uintPtr(assigneeID), actor: editor,
			want: SideEffects{Article: ArticleToDraft},
		},
		{
			name: "back from review on unassigned ticket also claims",
			from: ticketvo.StateForReview, to: ticketvo.StateInProgress, actor: editor,
			want: SideEffects{Article: ArticleToDraft, ClaimTicket: true},
		},
		{
			name: "submit for review snapshots",
			from: ticketvo.StateInProgress, to: ticketvo.StateForReview, assignee: uintPtr(assigneeID), actor: editor,
			want: SideEffects{Article: ArticleToReview, Snapshot: true},
		},
		{
			name: "approve is a pure gate",
			from: ticketvo.StateForReview, to: ticketvo.StateApproved, actor: chief,
			want: SideEffects{},
		},
		{
			name: "publish goes live and snapshots",
			from: ticketvo.StateApproved, to: ticketvo.StatePublished, actor: chief,
			want: SideEffects{Article: ArticleToPublished, Snapshot: true},
		},
		{
			name: "reopen leaves the article alone",
			from: ticketvo.StateInProgress, to: ticketvo.StateOpen, assignee: uintPtr(assigneeID), actor: chief,
			want: SideEffects{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := newTicket(t, tt.from, tt.assignee)
			got := PlanSideEffects(tk, tt.to, tt.actor)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Article != ArticleUnchanged || tt.want.Snapshot, got.TouchesArticle())
		})
	}
}
