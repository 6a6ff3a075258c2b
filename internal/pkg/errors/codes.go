package errors

import "net/http"

var (
	ErrPlaceNotFound = New(
		"PLACE_NOT_FOUND",
		"Place not found",
		http.StatusNotFound,
	)

	ErrInvalidShape = New(
		"INVALID_SHAPE",
		"Request does not describe a valid shape",
		http.StatusBadRequest,
	)

	ErrInvalidUnit = New(
		"INVALID_UNIT",
		"Unknown measurement unit",
		http.StatusBadRequest,
	)

	ErrInvalidOperator = New(
		"INVALID_OPERATOR",
		"Unknown comparison operator",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
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

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
