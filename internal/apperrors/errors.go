package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("operation not allowed")

// ErrUnbalancedEntry indicates that a journal entry's debit and credit lines do not balance.
var ErrUnbalancedEntry = errors.New("journal entry is not balanced")

// ErrAccountInactive indicates that a referenced account has been deactivated.
var ErrAccountInactive = errors.New("account is inactive")

// ErrAlreadyPosted indicates that a journal entry has already been posted.
var ErrAlreadyPosted = errors.New("journal entry already posted")

// ErrInvalidStateTransition indicates that a workflow transition was attempted
// from a state that does not permit it.
var ErrInvalidStateTransition = errors.New("invalid journal entry state transition")

// ErrUnknownTransactionType indicates the classifier cannot map a business event type.
var ErrUnknownTransactionType = errors.New("unknown transaction type")

// ErrStorage wraps unexpected failures from the data store (connection loss,
// constraint violations). These roll back the enclosing transaction.
var ErrStorage = errors.New("storage error")
