package repository

import "errors"

// Sentinel errors surfaced by repositories for expected conditions. The
// usecase layer maps these onto the caller-facing taxonomy.
var (
	ErrDuplicateEmail  = errors.New("email already exists")
	ErrDuplicateName   = errors.New("name already exists")
	ErrDuplicateSKU    = errors.New("sku already exists")
	ErrNotFound        = errors.New("record not found")
	ErrLastRole        = errors.New("account must keep at least one role")
	ErrRoleNotAssigned = errors.New("role not assigned to account")
)
