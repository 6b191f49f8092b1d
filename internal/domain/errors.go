package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrDuplicate      = errors.New("duplicate resource")
	ErrConflict       = errors.New("conflict with current state")
	ErrReconciliation = errors.New("aggregate totals do not reconcile")
)
