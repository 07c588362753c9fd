package permission

import (
	"fmt"
	"strings"

	ticketvo "redsys/internal/domain/ticket/valueobjects"
	uservo "redsys/internal/domain/user/valueobjects"
	"redsys/internal/domain/workflow"
)

const (
	resourceTicket         = "ticket"
	resourceArticleVersion = "article_version"

	actionTransitionPrefix = "transition:"
	actionReadAll          = "read_all"
	actionReadOwn          = "read_own"
)

func transitionAction(target ticketvo.TicketState) string {
	return actionTransitionPrefix + target.String()
}

// policiesFrom flattens the workflow tables into casbin "p" rules.
func policiesFrom(matrix workflow.Matrix, readScopes map[uservo.Role]workflow.ReadScope) [][]string {
	var rules [][]string
	for _, state := range ticketvo.AllTicketStates() {
		for _, role := range matrix[state] {
			rules = append(rules, []string{role.String(), resourceTicket, transitionAction(state)})
		}
	}
	for _, role := range uservo.AllRoles() {
		switch readScopes[role] {
		case workflow.ReadAll:
			rules = append(rules, []string{role.String(), resourceArticleVersion, actionReadAll})
		case workflow.ReadOwn:
			rules = append(rules, []string{role.String(), resourceArticleVersion, actionReadOwn})
		}
	}
	return rules
}

// DefaultPolicies are stored on first start.
func DefaultPolicies() [][]string {
	return policiesFrom(workflow.DefaultMatrix(), workflow.DefaultReadScopes())
}

// matrixFrom rebuilds the transition matrix from stored rules. Rules for
// other resources are ignored; malformed transition rules are an error.
func matrixFrom(rules [][]string) (workflow.Matrix, error) {
	matrix := make(workflow.Matrix)
	for _, rule := range rules {
		if len(rule) < 3 || rule[1] != resourceTicket {
			continue
		}
		target, ok := strings.CutPrefix(rule[2], actionTransitionPrefix)
		if !ok {
			return nil, fmt.Errorf("%w: unknown ticket action %q", workflow.ErrIncompleteMatrix, rule[2])
		}
		state, err := ticketvo.NewTicketState(target)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", workflow.ErrIncompleteMatrix, err)
		}
		role := uservo.Role(rule[0])
		if !matrix.Allows(role, state) {
			matrix[state] = append(matrix[state], role)
		}
	}
	return matrix, nil
}
