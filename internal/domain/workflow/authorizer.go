package workflow

import (
	ticketvo "redsys/internal/domain/ticket/valueobjects"
	uservo "redsys/internal/domain/user/valueobjects"
)

// Authorizer answers role-level questions. Ownership is checked separately.
type Authorizer interface {
	CanTransition(role uservo.Role, target ticketvo.TicketState) (bool, error)
	VersionReadScope(role uservo.Role) (ReadScope, error)
	// Matrix returns the transition eligibility the authorizer enforces.
	Matrix() Matrix
}

// MatrixAuthorizer serves decisions straight from in-memory tables.
type MatrixAuthorizer struct {
	matrix     Matrix
	readScopes map[uservo.Role]ReadScope
}

var _ Authorizer = (*MatrixAuthorizer)(nil)

func NewMatrixAuthorizer(matrix Matrix, readScopes map[uservo.Role]ReadScope) (*MatrixAuthorizer, error) {
	if err := matrix.Validate(); err != nil {
		return nil, err
	}
	return &MatrixAuthorizer{
		matrix:     matrix,
		readScopes: readScopes,
	}, nil
}

func (a *MatrixAuthorizer) CanTransition(role uservo.Role, target ticketvo.TicketState) (bool, error) {
	if role.IsAdmin() {
		return true, nil
	}
	return a.matrix.Allows(role, target), nil
}

func (a *MatrixAuthorizer) VersionReadScope(role uservo.Role) (ReadScope, error) {
	if role.IsAdmin() {
		return ReadAll, nil
	}
	return a.readScopes[role], nil
}

func (a *MatrixAuthorizer) Matrix() Matrix {
	return a.matrix
}
