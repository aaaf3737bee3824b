package apperrors

import "errors"

// Domain entity errors represent missing entities.
var (
	// ErrIncomeSourceNotFound indicates that an income source with the given ID does not exist for the owner.
	ErrIncomeSourceNotFound = errors.New("income source not found")

	// ErrExpenseNotFound indicates that an expense with the given ID does not exist for the owner.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrGoalNotFound indicates that no goal matched the request.
	ErrGoalNotFound = errors.New("goal not found")
)

// Request errors represent caller mistakes.
var (
	// ErrInvalidInput indicates a request body or parameter failed validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrUnauthorized indicates a missing or invalid bearer token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the entity belongs to another owner.
	ErrForbidden = errors.New("forbidden")
)

// Operation failure errors
var (
	ErrFailedToRetrieveSources  = errors.New("failed to retrieve income sources")
	ErrFailedToRetrieveExpenses = errors.New("failed to retrieve expenses")
	ErrFailedToBuildDashboard   = errors.New("failed to build dashboard")
	ErrFailedToSendReminder     = errors.New("failed to send reminder")
)
