// Package permission serves the workflow's role decisions from casbin
// policies stored in the casbin_rule table.
package permission

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	ticketvo "redsys/internal/domain/ticket/valueobjects"
	uservo "redsys/internal/domain/user/valueobjects"
	"redsys/internal/domain/workflow"
	"redsys/internal/shared/logger"
)

// Admins match every request without a stored rule.
const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == "admin" || (r.sub == p.sub && r.obj == p.obj && r.act == p.act)
`

var _ workflow.Authorizer = (*Enforcer)(nil)

type Enforcer struct {
	enforcer *casbin.Enforcer
	matrix   workflow.Matrix
	logger   logger.Interface
}

// NewEnforcer loads the stored policies, seeding the defaults into an empty
// table. With a nil db the policies live in memory only. The loaded matrix
// must pass workflow validation or the enforcer is not created.
func NewEnforcer(db *gorm.DB, log logger.Interface) (*Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	var enforcer *casbin.Enforcer
	if db != nil {
		adapter, err := gormadapter.NewAdapterByDB(db)
		if err != nil {
			return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
		}
		enforcer, err = casbin.NewEnforcer(m, adapter)
		if err != nil {
			return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
		}
	} else {
		enforcer, err = casbin.NewEnforcer(m)
		if err != nil {
			return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
		}
	}

	e := &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}
	if err := e.seedIfEmpty(); err != nil {
		return nil, err
	}
	if err := e.rebuildMatrix(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Enforcer) seedIfEmpty() error {
	rules, err := e.enforcer.GetPolicy()
	if err != nil {
		return fmt.Errorf("failed to read policies: %w", err)
	}
	if len(rules) > 0 {
		return nil
	}

	defaults := DefaultPolicies()
	if _, err := e.enforcer.AddPolicies(defaults); err != nil {
		e.logger.Errorw("failed to seed workflow policies", "error", err)
		return fmt.Errorf("failed to seed workflow policies: %w", err)
	}
	e.logger.Infow("workflow policies seeded", "count", len(defaults))
	return nil
}

func (e *Enforcer) rebuildMatrix() error {
	rules, err := e.enforcer.GetPolicy()
	if err != nil {
		return fmt.Errorf("failed to read policies: %w", err)
	}

	matrix, err := matrixFrom(rules)
	if err != nil {
		return err
	}
	if err := matrix.Validate(); err != nil {
		e.logger.Errorw("stored workflow policies are incomplete", "error", err)
		return err
	}

	e.matrix = matrix
	return nil
}

func (e *Enforcer) CanTransition(role uservo.Role, target ticketvo.TicketState) (bool, error) {
	return e.enforce(role, resourceTicket, transitionAction(target))
}

func (e *Enforcer) VersionReadScope(role uservo.Role) (workflow.ReadScope, error) {
	all, err := e.enforce(role, resourceArticleVersion, actionReadAll)
	if err != nil || all {
		return workflow.ReadAll, err
	}
	own, err := e.enforce(role, resourceArticleVersion, actionReadOwn)
	if err != nil {
		return workflow.ReadNone, err
	}
	if own {
		return workflow.ReadOwn, nil
	}
	return workflow.ReadNone, nil
}

// Matrix returns a copy of the transition matrix loaded at startup.
// Policy edits take effect on restart.
func (e *Enforcer) Matrix() workflow.Matrix {
	matrix := make(workflow.Matrix, len(e.matrix))
	for state, roles := range e.matrix {
		matrix[state] = append([]uservo.Role(nil), roles...)
	}
	return matrix
}

func (e *Enforcer) enforce(role uservo.Role, resource, action string) (bool, error) {
	allowed, err := e.enforcer.Enforce(role.String(), resource, action)
	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "role", role, "resource", resource, "action", action)
		return false, fmt.Errorf("permission check failed: %w", err)
	}
	return allowed, nil
}
