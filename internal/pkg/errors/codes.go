package errors

import "net/http"

var (
	ErrStationNotFound = New(
		"STATION_NOT_FOUND",
		"Station not found",
		http.StatusNotFound,
	)

	ErrUserNotFound = New(
		"USER_NOT_FOUND",
		"User not found",
		http.StatusNotFound,
	)

	ErrAssignmentNotFound = New(
		"ASSIGNMENT_NOT_FOUND",
		"Assignment not found",
		http.StatusNotFound,
	)

	ErrNoActiveAssignment = New(
		"NO_ACTIVE_ASSIGNMENT",
		"No active manager assigned to this station",
		http.StatusNotFound,
	)

	ErrInvalidRole = New(
		"INVALID_ROLE",
		"Only users with station role can be assigned as managers",
		http.StatusUnprocessableEntity,
	)

	ErrInactiveManager = New(
		"INACTIVE_MANAGER",
		"Cannot assign an inactive user as manager",
		http.StatusUnprocessableEntity,
	)

	ErrAssignmentConflict = New(
		"ASSIGNMENT_CONFLICT",
		"Concurrent assignment detected, please retry",
		http.StatusConflict,
	)

	ErrInvalidPrice = New(
		"INVALID_PRICE",
		"Price must be a non-negative value",
		http.StatusUnprocessableEntity,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrInvalidCredentials = New(
		"INVALID_CREDENTIALS",
		"Invalid email or password",
		http.StatusUnauthorized,
	)

	ErrEmailTaken = New(
		"EMAIL_TAKEN",
		"Email is already registered",
		http.StatusUnprocessableEntity,
	)

	ErrUnauthorized = New(
		"UNAUTHORIZED",
		"Authentication required",
		http.StatusUnauthorized,
	)

	ErrForbidden = New(
		"FORBIDDEN",
		"You can only manage your assigned station",
		http.StatusForbidden,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
