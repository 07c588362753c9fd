package workflow

import (
	"redsys/internal/domain/ticket"
	ticketvo "redsys/internal/domain/ticket/valueobjects"
	uservo "redsys/internal/domain/user/valueobjects"
)

// ArticleEffect is the change a ticket transition applies to its article.
type ArticleEffect int

const (
	ArticleUnchanged ArticleEffect = iota
	ArticleToDraft
	ArticleToReview
	ArticleToPublished
)

// SideEffects describes everything a transition does besides the ticket
// state change itself.
type SideEffects struct {
	Article ArticleEffect
	// Snapshot records the article content as a new version when it changed.
	Snapshot bool
	// ClaimTicket assigns the acting editor to the unassigned ticket.
	ClaimTicket bool
}

// PlanSideEffects derives the side effects of moving t to target.
// APPROVED and OPEN leave the article untouched.
func PlanSideEffects(t *ticket.Ticket, target ticketvo.TicketState, actor Actor) SideEffects {
	var effects SideEffects

	switch target {
	case ticketvo.StateInProgress:
		if t.State().IsForReview() {
			effects.Article = ArticleToDraft
		}
		effects.ClaimTicket = t.IsUnassigned() && actor.Role == uservo.RoleEditor
	case ticketvo.StateForReview:
		effects.Article = ArticleToReview
		effects.Snapshot = true
	case ticketvo.StatePublished:
		effects.Article = ArticleToPublished
		effects.Snapshot = true
	}

	return effects
}

func (e SideEffects) TouchesArticle() bool {
	return e.Article != ArticleUnchanged || e.Snapshot
}
