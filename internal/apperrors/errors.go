package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that the caller lacks the role required for the action.
var ErrUnauthorized = errors.New("caller is not authorized for this action")

// ErrNotAdmin indicates that an admin-only action was attempted by a non-admin caller.
var ErrNotAdmin = errors.New("caller is not an admin of this community")

// ErrForbidden indicates that the caller is known but access is denied.
var ErrForbidden = errors.New("access forbidden")

// ErrConflict indicates that an operation was attempted on an entity that is
// not in the required lifecycle state.
var ErrConflict = errors.New("entity is not in the required state")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")
